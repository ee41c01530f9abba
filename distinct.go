package sqlext

// Distinct returns the distinct non-NULL values of a column, in
// ascending order.
func (sess *Session) Distinct(table string, column string) ([]interface{}, error) {
	return sess.distinct(table, column, false)
}

// DistinctWithNull returns the distinct values of a column in
// ascending order. If any row holds SQL NULL in the column, a single
// nil sentinel is included before the smallest non-NULL value.
func (sess *Session) DistinctWithNull(table string, column string) ([]interface{}, error) {
	return sess.distinct(table, column, true)
}

func (sess *Session) distinct(table string, column string, includeNull bool) ([]interface{}, error) {
	dialect := sess.schema.dialect
	query := "select distinct " + dialect.Quote(column) +
		" from " + dialect.Quote(table) +
		" order by " + dialect.Quote(column)
	rows, err := sess.query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []interface{}
	var sawNull bool
	for rows.Next() {
		var value interface{}
		if err := rows.Scan(&value); err != nil {
			return nil, wrapError(KindStatement, err, "cannot scan distinct value", "table", table, "column", column)
		}
		if value == nil {
			// NULL sorts first on some servers and last on others,
			// so it is folded in below rather than trusted in place
			sawNull = true
			continue
		}
		if b, ok := value.([]byte); ok {
			// the mysql driver reports text columns as []byte
			value = string(b)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if includeNull && sawNull {
		values = append([]interface{}{nil}, values...)
	}
	return values, nil
}
