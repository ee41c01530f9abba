package sqlext

import (
	"bytes"
	"strconv"
	"strings"
)

// RankSQL returns a CASE expression that ranks the value of expr
// into ordered buckets. Values in the first group rank 0, values in
// the second group rank 1, and so on. Any value not present in a
// group ranks one past the last group:
//
//	RankSQL([][]string{{"a"}, {"b", "c"}, {"d"}}, "foo")
//
// returns
//
//	CASE WHEN foo IN ('a') THEN 0 WHEN foo IN ('b', 'c') THEN 1 WHEN foo IN ('d') THEN 2 ELSE 3 END
//
// Group order determines rank and is preserved in the order of the
// WHEN clauses.
func RankSQL(groups [][]string, expr string) string {
	var buf bytes.Buffer
	buf.WriteString("CASE")
	for rank, group := range groups {
		buf.WriteString(" WHEN ")
		buf.WriteString(expr)
		buf.WriteString(" IN (")
		for i, value := range group {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(quoteStringLiteral(value))
		}
		buf.WriteString(") THEN ")
		buf.WriteString(strconv.Itoa(rank))
	}
	buf.WriteString(" ELSE ")
	buf.WriteString(strconv.Itoa(len(groups)))
	buf.WriteString(" END")
	return buf.String()
}

// RankMap returns a map from each value in groups to its one-based
// rank: values in the first group map to 1, values in the second
// group to 2, and so on. A value that appears in more than one group
// keeps the rank of the first group that contains it.
//
// Values absent from every group are not present in the map; callers
// must treat a missing value as ranking one past the last group,
// ie len(groups)+1.
func RankMap(groups [][]string) map[string]int {
	ranks := make(map[string]int)
	for rank, group := range groups {
		for _, value := range group {
			if _, ok := ranks[value]; !ok {
				ranks[value] = rank + 1
			}
		}
	}
	return ranks
}

// quoteStringLiteral quotes a value as an SQL string literal,
// doubling any embedded quote characters.
func quoteStringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
