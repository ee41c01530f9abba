package sqlext

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{
			err:  nil,
			want: KindOther,
		},
		{
			err:  errors.New("some arbitrary failure"),
			want: KindOther,
		},
		{
			err:  sql.ErrNoRows,
			want: KindNotFound,
		},
		{
			err:  fmt.Errorf("query failed: %w", sql.ErrNoRows),
			want: KindNotFound,
		},
		{
			err:  &pq.Error{Code: "23505"},
			want: KindUniqueViolation,
		},
		{
			err:  &pq.Error{Code: "23503"}, // foreign key violation
			want: KindStatement,
		},
		{
			err:  &pq.Error{Code: "42P01"}, // undefined table
			want: KindSchema,
		},
		{
			err:  &mysql.MySQLError{Number: 1062},
			want: KindUniqueViolation,
		},
		{
			err:  &mysql.MySQLError{Number: 1146},
			want: KindSchema,
		},
		{
			err:  &mysql.MySQLError{Number: 1048}, // column cannot be null
			want: KindStatement,
		},
		{
			err:  fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062}),
			want: KindUniqueViolation,
		},
		{
			err: sqlite3.Error{
				Code:         sqlite3.ErrConstraint,
				ExtendedCode: sqlite3.ErrConstraintUnique,
			},
			want: KindUniqueViolation,
		},
		{
			err: sqlite3.Error{
				Code:         sqlite3.ErrConstraint,
				ExtendedCode: sqlite3.ErrConstraintPrimaryKey,
			},
			want: KindUniqueViolation,
		},
		{
			err: sqlite3.Error{
				Code:         sqlite3.ErrConstraint,
				ExtendedCode: sqlite3.ErrConstraintNotNull,
			},
			want: KindStatement,
		},
		{
			err:  newError(KindTypeMismatch, "entity kind does not match accessor"),
			want: KindTypeMismatch,
		},
		{
			err:  wrapError(KindNotFound, sql.ErrNoRows, "cannot load"),
			want: KindNotFound,
		},
	}

	for i, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("%d: want=%v got=%v (err=%v)", i, tt.want, got, tt.err)
		}
	}
}

// The sqlite driver reports unique violations and unknown tables
// through real statement execution; verify classification end to end.
func TestKindSQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("sql.Open:", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, `create table kinds(id integer primary key, name text unique)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, `insert into kinds(name) values('one')`); err != nil {
		t.Fatal(err)
	}

	_, err = db.ExecContext(ctx, `insert into kinds(name) values('one')`)
	if want, got := KindUniqueViolation, Kind(err); want != got {
		t.Errorf("want=%v got=%v (err=%v)", want, got, err)
	}

	_, err = db.ExecContext(ctx, `insert into missing(name) values('one')`)
	if want, got := KindSchema, Kind(err); want != got {
		t.Errorf("want=%v got=%v (err=%v)", want, got, err)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindOther, "other"},
		{KindStatement, "statement"},
		{KindUniqueViolation, "unique violation"},
		{KindSchema, "schema"},
		{KindNotFound, "not found"},
		{KindTypeMismatch, "type mismatch"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("want=%q got=%q", tt.want, got)
		}
	}
}

func TestKindErrorMessage(t *testing.T) {
	err := newError(KindSchema, "no such table", "table", "users")
	if want, got := "no such table table=users", err.Error(); want != got {
		t.Errorf("want=%q got=%q", want, got)
	}
}
