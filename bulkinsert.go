package sqlext

import (
	"bytes"
	"sort"

	"github.com/jjeffery/kv"
)

// Row is a mapping from column name to value for one row of a
// bulk insert.
type Row map[string]interface{}

// BulkInsert inserts rows into the named table using multi-row
// INSERT statements. If rows is empty, no statement is issued and
// BulkInsert returns nil.
//
// All rows must share the same set of column names: a batch with
// heterogeneous key sets is rejected. Batches larger than the
// schema's bulk row limit (see WithMaxBulkRows) are split across
// multiple statements.
//
// BulkInsert does not report generated identifiers; it is intended
// for fire-and-forget bulk loading.
func (sess *Session) BulkInsert(table string, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	columns := make([]string, 0, len(rows[0]))
	for column := range rows[0] {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for i, row := range rows {
		if len(row) != len(columns) {
			return kv.NewError("bulk insert rows must share the same columns").With("table", table, "row", i)
		}
		for _, column := range columns {
			if _, ok := row[column]; !ok {
				return kv.NewError("bulk insert rows must share the same columns").With("table", table, "row", i, "missing", column)
			}
		}
	}

	maxRows := sess.schema.maxBulkRows
	for start := 0; start < len(rows); start += maxRows {
		end := start + maxRows
		if end > len(rows) {
			end = len(rows)
		}
		query, args := buildBulkInsert(sess.schema.dialect, table, columns, rows[start:end])
		if _, err := sess.exec(query, args...); err != nil {
			return err
		}
	}
	return nil
}

func buildBulkInsert(dialect Dialect, table string, columns []string, rows []Row) (string, []interface{}) {
	var buf bytes.Buffer
	buf.WriteString("insert into ")
	buf.WriteString(dialect.Quote(table))
	buf.WriteRune('(')
	for i, column := range columns {
		if i > 0 {
			buf.WriteRune(',')
		}
		buf.WriteString(dialect.Quote(column))
	}
	buf.WriteString(") values ")

	args := make([]interface{}, 0, len(rows)*len(columns))
	n := 0
	for i, row := range rows {
		if i > 0 {
			buf.WriteRune(',')
		}
		buf.WriteRune('(')
		for j, column := range columns {
			if j > 0 {
				buf.WriteRune(',')
			}
			n++
			buf.WriteString(dialect.Placeholder(n))
			args = append(args, row[column])
		}
		buf.WriteRune(')')
	}
	return buf.String(), args
}
