package sqlext

import (
	"context"
	"database/sql"
)

// A Session is a request-scoped database session. It combines a
// context, a querier (*sql.DB, *sql.Tx or *sql.Conn) and a schema,
// and provides the operations exposed by this package.
type Session struct {
	context context.Context
	cancel  func()
	querier Querier
	schema  *Schema
}

// NewSession returns a new, request-scoped session.
//
// Although it is not mandatory, it is a good practice to
// call a session's Close method at the end of a request.
func NewSession(ctx context.Context, querier Querier, schema *Schema) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	if querier == nil {
		panic("querier cannot be nil")
	}
	if schema == nil {
		panic("schema cannot be nil")
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		context: ctx,
		cancel:  cancel,
		querier: querier,
		schema:  schema,
	}
}

// Close releases resources associated with the session. Any attempt
// to query using the session will fail after Close has been called.
//
// Close implements the io.Closer interface. It always returns nil.
func (sess *Session) Close() error {
	sess.cancel()
	return nil
}

// Context returns the context associated with the session.
func (sess *Session) Context() context.Context {
	return sess.context
}

// Schema returns the schema associated with the session.
func (sess *Session) Schema() *Schema {
	return sess.schema
}

// Exec executes a query without returning any rows. The args are for
// any placeholder parameters in the query.
func (sess *Session) Exec(query string, args ...interface{}) (sql.Result, error) {
	return sess.exec(query, args...)
}

// Query executes a query that returns rows, typically a SELECT. The
// args are for any placeholder parameters in the query.
func (sess *Session) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return sess.query(query, args...)
}

// withQuerier returns a session that shares this session's context
// and schema, but issues statements through a different querier.
// Used to thread a transaction handle through a retried unit of work.
func (sess *Session) withQuerier(querier Querier) *Session {
	return &Session{
		context: sess.context,
		cancel:  func() {},
		querier: querier,
		schema:  sess.schema,
	}
}

func (sess *Session) exec(query string, args ...interface{}) (sql.Result, error) {
	result, err := sess.querier.ExecContext(sess.context, query, args...)
	if logger := sess.schema.logger; logger != nil {
		rowsAffected := -1
		if err == nil && result != nil {
			if n, raErr := result.RowsAffected(); raErr == nil {
				rowsAffected = int(n)
			}
		}
		logger.LogSQL(query, args, rowsAffected, err)
	}
	return result, err
}

func (sess *Session) query(query string, args ...interface{}) (*sql.Rows, error) {
	rows, err := sess.querier.QueryContext(sess.context, query, args...)
	if logger := sess.schema.logger; logger != nil {
		logger.LogSQL(query, args, -1, err)
	}
	return rows, err
}
