package sqlext

import (
	"context"
	"sync"
	"testing"
)

type recordingLogger struct {
	mu      sync.Mutex
	queries []string
}

func (l *recordingLogger) LogSQL(query string, args []interface{}, rowsAffected int, err error) {
	l.mu.Lock()
	l.queries = append(l.queries, query)
	l.mu.Unlock()
}

func TestSessionLogsSQL(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.Exec(`create table notes(body text)`); err != nil {
		t.Fatal(err)
	}

	logger := &recordingLogger{}
	schema := NewSchema(ForDB(db), WithLogger(logger))
	sess := NewSession(context.Background(), db, schema)
	defer sess.Close()

	if _, err := sess.Exec(`insert into notes(body) values(?)`, "hello"); err != nil {
		t.Fatal(err)
	}
	rows, err := sess.Query(`select body from notes`)
	if err != nil {
		t.Fatal(err)
	}
	rows.Close()

	if want, got := 2, len(logger.queries); want != got {
		t.Fatalf("want=%d got=%d (%v)", want, got, logger.queries)
	}
	if want, got := `insert into notes(body) values(?)`, logger.queries[0]; want != got {
		t.Errorf("want=%q got=%q", want, got)
	}
}

func TestSessionLogsSavepoints(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.Exec(`create table notes(body text)`); err != nil {
		t.Fatal(err)
	}

	logger := &recordingLogger{}
	schema := NewSchema(ForDB(db), WithLogger(logger))
	sess := NewSession(context.Background(), db, schema)
	defer sess.Close()

	err := sess.RetryOnDuplicate(func(sess *Session) error {
		_, err := sess.Exec(`insert into notes(body) values(?)`, "hello")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	// savepoint, insert, release
	if want, got := 3, len(logger.queries); want != got {
		t.Fatalf("want=%d got=%d (%v)", want, got, logger.queries)
	}
}

func TestNewSessionPanics(t *testing.T) {
	db := newTestDB(t)
	schema := NewSchema(ForDB(db))

	assertPanic := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	assertPanic("nil querier", func() { NewSession(context.Background(), nil, schema) })
	assertPanic("nil schema", func() { NewSession(context.Background(), db, nil) })
}

func TestSessionCloseCancelsContext(t *testing.T) {
	db := newTestDB(t)
	schema := NewSchema(ForDB(db))
	sess := NewSession(context.Background(), db, schema)

	if err := sess.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-sess.Context().Done():
	default:
		t.Error("context should be cancelled after Close")
	}
}
