package sqlext

import (
	"strings"

	"github.com/google/uuid"
)

// RetryOnDuplicate runs fn inside a nested transaction scope and
// retries it exactly once if it fails with a uniqueness constraint
// violation.
//
// If the session's querier can begin a transaction (*sql.DB,
// *sql.Conn), a new transaction is opened for the duration of the
// call and committed on success. If the querier is already inside a
// transaction (*sql.Tx), only savepoints are issued: the enclosing
// transaction is never committed or rolled back by this method, and
// writes made before the call survive even when an attempt is rolled
// back.
//
// Each attempt runs under its own savepoint. On success the
// savepoint is released and fn's result is returned. If fn fails
// with a uniqueness violation (see Kind), the attempt's writes are
// rolled back to the savepoint and fn is run once more under a fresh
// savepoint. Any other failure, and any failure of the second
// attempt, rolls back to the savepoint and is returned unchanged.
//
// fn receives a session bound to the transaction handle and must
// issue all of its statements through it. Because fn can run twice,
// it must be safe to re-run: in particular it must not have
// irreversible side effects outside the database.
func (sess *Session) RetryOnDuplicate(fn func(sess *Session) error) error {
	b, ok := sess.querier.(beginner)
	if !ok {
		// already inside a transaction
		return sess.retrySavepoint(fn)
	}
	tx, err := b.BeginTx(sess.context, nil)
	if err != nil {
		return wrapError(KindStatement, err, "cannot begin transaction")
	}
	txSess := sess.withQuerier(tx)
	if err := txSess.retrySavepoint(fn); err != nil {
		// rollback error is unreachable once the retry has failed;
		// the original failure is the one the caller needs
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapError(KindStatement, err, "cannot commit transaction")
	}
	return nil
}

func (sess *Session) retrySavepoint(fn func(sess *Session) error) error {
	const maxAttempts = 2
	dialect := sess.schema.dialect
	for attempt := 1; ; attempt++ {
		name := savepointName()
		if _, err := sess.exec(dialect.Savepoint(name)); err != nil {
			return wrapError(KindStatement, err, "cannot create savepoint", "savepoint", name)
		}
		err := fn(sess)
		if err == nil {
			if stmt := dialect.ReleaseSavepoint(name); stmt != "" {
				if _, err := sess.exec(stmt); err != nil {
					return wrapError(KindStatement, err, "cannot release savepoint", "savepoint", name)
				}
			}
			return nil
		}
		// Undo this attempt's writes only. Anything written before
		// the savepoint was created remains intact.
		if _, rbErr := sess.exec(dialect.RollbackToSavepoint(name)); rbErr != nil {
			return wrapError(KindStatement, rbErr, "cannot rollback to savepoint", "savepoint", name)
		}
		if attempt < maxAttempts && Kind(err) == KindUniqueViolation {
			continue
		}
		return err
	}
}

// savepointName returns an identifier that will not collide with any
// savepoint already established on the connection.
func savepointName() string {
	return "sp_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
