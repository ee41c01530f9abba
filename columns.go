package sqlext

import (
	"context"
	"strings"
	"sync"
)

// ColumnInfo describes a single column of a database table.
type ColumnInfo struct {
	// Name of the column.
	Name string

	// DatabaseType is the column type as reported by the database,
	// eg "integer", "character varying".
	DatabaseType string

	// Nullable reports whether the column accepts NULL values.
	Nullable bool

	// Position is the ordinal position of the column in the
	// table, starting at one.
	Position int
}

// ColumnLister is the interface for obtaining raw, unfiltered column
// metadata from the database. Implementations should return columns
// in their ordinal position order.
//
// A lister based on the database's information schema is provided by
// default; supply a custom implementation with the WithColumnLister
// schema option.
type ColumnLister interface {
	ListColumns(ctx context.Context, querier Querier, table string) ([]ColumnInfo, error)
}

// HiddenColumns is the configuration of columns that exist physically
// in the database but should be treated as absent. It is used during
// controlled rollout of column removal: the column is hidden first,
// and dropped from the database schema once no code refers to it.
//
// All methods are safe for concurrent use. Changes take effect on the
// next metadata request; callers reading column metadata concurrently
// with a change may briefly observe either view.
type HiddenColumns struct {
	mu     sync.RWMutex
	tables map[string]map[string]bool
}

// NewHiddenColumns returns an empty hidden column configuration.
func NewHiddenColumns() *HiddenColumns {
	return &HiddenColumns{}
}

// Hide marks the columns of the named table as hidden.
func (h *HiddenColumns) Hide(table string, columns ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tables == nil {
		h.tables = make(map[string]map[string]bool)
	}
	cols := h.tables[table]
	if cols == nil {
		cols = make(map[string]bool)
		h.tables[table] = cols
	}
	for _, column := range columns {
		cols[column] = true
	}
}

// Unhide removes the columns of the named table from the
// configuration, restoring their visibility.
func (h *HiddenColumns) Unhide(table string, columns ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cols := h.tables[table]
	for _, column := range columns {
		delete(cols, column)
	}
}

// Reset restores visibility of all columns of the named table.
func (h *HiddenColumns) Reset(table string) {
	h.mu.Lock()
	delete(h.tables, table)
	h.mu.Unlock()
}

// Clear restores visibility of all columns of all tables.
func (h *HiddenColumns) Clear() {
	h.mu.Lock()
	h.tables = nil
	h.mu.Unlock()
}

// filter returns the columns that are not hidden, preserving order.
func (h *HiddenColumns) filter(table string, columns []ColumnInfo) []ColumnInfo {
	h.mu.RLock()
	hidden := h.tables[table]
	h.mu.RUnlock()
	visible := make([]ColumnInfo, 0, len(columns))
	for _, col := range columns {
		if !hidden[col.Name] {
			visible = append(visible, col)
		}
	}
	return visible
}

// Columns returns the columns of the named table, in ordinal position
// order, with any hidden columns removed. Metadata is cached on the
// schema after the first request for a table; use
// Schema.InvalidateColumns after altering the table.
func (sess *Session) Columns(table string) ([]ColumnInfo, error) {
	raw, ok := sess.schema.columns.lookup(table)
	if !ok {
		cols, err := sess.schema.lister.ListColumns(sess.context, sess.querier, table)
		if err != nil {
			return nil, err
		}
		raw = sess.schema.columns.set(table, cols)
	}
	return sess.schema.hidden.filter(table, raw), nil
}

// ColumnNames returns the column names of the named table, in ordinal
// position order, with any hidden columns removed.
func (sess *Session) ColumnNames(table string) ([]string, error) {
	cols, err := sess.Columns(table)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names, nil
}

// introspector is the default ColumnLister. It queries the
// information schema, or for SQLite the table_info pragma.
type introspector struct {
	dialect Dialect
}

func newIntrospector(dialect Dialect) ColumnLister {
	return &introspector{dialect: dialect}
}

func (in *introspector) ListColumns(ctx context.Context, querier Querier, table string) ([]ColumnInfo, error) {
	if in.dialect.Name() == "sqlite" {
		return in.listSQLite(ctx, querier, table)
	}
	return in.listInformationSchema(ctx, querier, table)
}

func (in *introspector) listSQLite(ctx context.Context, querier Querier, table string) ([]ColumnInfo, error) {
	rows, err := querier.QueryContext(ctx,
		`select name, type, "notnull" from pragma_table_info(?) order by cid`, table)
	if err != nil {
		return nil, wrapError(KindSchema, err, "cannot list columns", "table", table)
	}
	defer rows.Close()
	var cols []ColumnInfo
	for rows.Next() {
		var col ColumnInfo
		var notNull int
		if err := rows.Scan(&col.Name, &col.DatabaseType, &notNull); err != nil {
			return nil, wrapError(KindSchema, err, "cannot list columns", "table", table)
		}
		col.Nullable = notNull == 0
		col.Position = len(cols) + 1
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(KindSchema, err, "cannot list columns", "table", table)
	}
	if len(cols) == 0 {
		// the pragma returns no rows rather than an error
		return nil, newError(KindSchema, "no such table", "table", table)
	}
	return cols, nil
}

func (in *introspector) listInformationSchema(ctx context.Context, querier Querier, table string) ([]ColumnInfo, error) {
	var schemaExpr string
	switch in.dialect.Name() {
	case "postgres":
		schemaExpr = "current_schema()"
	case "mysql":
		schemaExpr = "database()"
	default:
		schemaExpr = "schema_name()"
	}
	query := "select column_name, data_type, is_nullable" +
		" from information_schema.columns" +
		" where table_schema = " + schemaExpr +
		" and table_name = " + in.dialect.Placeholder(1) +
		" order by ordinal_position"
	rows, err := querier.QueryContext(ctx, query, table)
	if err != nil {
		return nil, wrapError(KindSchema, err, "cannot list columns", "table", table)
	}
	defer rows.Close()
	var cols []ColumnInfo
	for rows.Next() {
		var col ColumnInfo
		var nullable string
		if err := rows.Scan(&col.Name, &col.DatabaseType, &nullable); err != nil {
			return nil, wrapError(KindSchema, err, "cannot list columns", "table", table)
		}
		col.Nullable = strings.EqualFold(nullable, "YES")
		col.Position = len(cols) + 1
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(KindSchema, err, "cannot list columns", "table", table)
	}
	if len(cols) == 0 {
		return nil, newError(KindSchema, "no such table", "table", table)
	}
	return cols, nil
}
