package sqlext

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jjeffery/kv"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorKind classifies an error encountered while executing
// a database statement.
type ErrorKind int

// Recognized error classifications.
const (
	// KindOther is any failure that was not reported by the
	// database, eg an arbitrary error returned from a callback.
	KindOther ErrorKind = iota

	// KindStatement is a failure reported by the database that
	// does not fall into a more specific classification.
	KindStatement

	// KindUniqueViolation is a statement failure caused by a
	// unique (or primary key) constraint violation. It is the only
	// classification eligible for retry by RetryOnDuplicate.
	KindUniqueViolation

	// KindSchema is a reference to an unknown table or column.
	KindSchema

	// KindNotFound indicates that a row referenced by identifier
	// does not exist.
	KindNotFound

	// KindTypeMismatch indicates that an entity of the wrong type
	// was supplied to a typed polymorphic accessor.
	KindTypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindStatement:
		return "statement"
	case KindUniqueViolation:
		return "unique violation"
	case KindSchema:
		return "schema"
	case KindNotFound:
		return "not found"
	case KindTypeMismatch:
		return "type mismatch"
	}
	return "other"
}

// kindError attaches an ErrorKind to an error produced
// by this package. The underlying error carries the message
// and any key/value context.
type kindError struct {
	kind ErrorKind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

func newError(kind ErrorKind, msg string, keyvals ...interface{}) error {
	return &kindError{kind: kind, err: kv.NewError(msg).With(keyvals...)}
}

func wrapError(kind ErrorKind, err error, msg string, keyvals ...interface{}) error {
	return &kindError{kind: kind, err: kv.Wrap(err, msg).With(keyvals...)}
}

// Kind classifies err. Errors created by this package carry their
// classification directly; errors reported by the PostgreSQL, MySQL
// and SQLite drivers are classified by inspecting their driver-specific
// error codes. Kind(nil) and any unrecognized error return KindOther.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindOther
	}

	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}

	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "23505":
			return KindUniqueViolation
		case pqErr.Code.Class() == "42":
			// undefined_table (42P01), undefined_column (42703), etc
			return KindSchema
		}
		return KindStatement
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1022, 1062, 1586:
			// ER_DUP_KEY, ER_DUP_ENTRY, ER_DUP_ENTRY_WITH_KEY_NAME
			return KindUniqueViolation
		case 1054, 1146:
			// ER_BAD_FIELD_ERROR, ER_NO_SUCH_TABLE
			return KindSchema
		}
		return KindStatement
	}

	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		if sqErr.Code == sqlite3.ErrConstraint {
			switch sqErr.ExtendedCode {
			case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
				return KindUniqueViolation
			}
			return KindStatement
		}
		// SQLite reports unknown tables and columns as generic errors,
		// the message text is the only indication.
		msg := sqErr.Error()
		if strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column") {
			return KindSchema
		}
		return KindStatement
	}

	return KindOther
}
