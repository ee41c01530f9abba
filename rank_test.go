package sqlext

import (
	"reflect"
	"testing"
)

func TestRankSQL(t *testing.T) {
	tests := []struct {
		groups [][]string
		expr   string
		want   string
	}{
		{
			groups: [][]string{{"a"}, {"b", "c"}, {"d"}},
			expr:   "foo",
			want:   "CASE WHEN foo IN ('a') THEN 0 WHEN foo IN ('b', 'c') THEN 1 WHEN foo IN ('d') THEN 2 ELSE 3 END",
		},
		{
			groups: [][]string{{"active", "pending"}},
			expr:   "workflow_state",
			want:   "CASE WHEN workflow_state IN ('active', 'pending') THEN 0 ELSE 1 END",
		},
		{
			groups: nil,
			expr:   "foo",
			want:   "CASE ELSE 0 END",
		},
		{
			groups: [][]string{{"o'brien"}},
			expr:   "surname",
			want:   "CASE WHEN surname IN ('o''brien') THEN 0 ELSE 1 END",
		},
	}

	for i, tt := range tests {
		if got := RankSQL(tt.groups, tt.expr); got != tt.want {
			t.Errorf("%d:\nwant=%q\ngot=%q", i, tt.want, got)
		}
	}
}

func TestRankMap(t *testing.T) {
	tests := []struct {
		groups [][]string
		want   map[string]int
	}{
		{
			groups: [][]string{{"a"}, {"b", "c"}, {"d"}},
			want:   map[string]int{"a": 1, "b": 2, "c": 2, "d": 3},
		},
		{
			groups: nil,
			want:   map[string]int{},
		},
		{
			// a value in two groups keeps the rank of the first
			groups: [][]string{{"a"}, {"a", "b"}},
			want:   map[string]int{"a": 1, "b": 2},
		},
	}

	for i, tt := range tests {
		got := RankMap(tt.groups)
		if !reflect.DeepEqual(tt.want, got) {
			t.Errorf("%d: want=%v got=%v", i, tt.want, got)
		}
	}
}

func TestRankMapAbsentValue(t *testing.T) {
	groups := [][]string{{"a"}, {"b", "c"}, {"d"}}
	ranks := RankMap(groups)
	if _, ok := ranks["zzz"]; ok {
		t.Fatal("absent value should not be in the map")
	}
	// callers rank a missing value one past the last group
	if want, got := 4, len(groups)+1; want != got {
		t.Errorf("want=%d got=%d", want, got)
	}
}
