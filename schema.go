package sqlext

import (
	"sync"
)

// DefaultMaxBulkRows is the maximum number of rows included in a
// single multi-row INSERT statement when no limit is configured
// on the schema.
const DefaultMaxBulkRows = 1000

// Schema contains configuration information that is common to
// statements prepared for the same database schema: the SQL dialect,
// the hidden column configuration, and limits that apply to
// generated statements.
//
// A schema maintains a cache of column metadata obtained from the
// database, so a single schema should be shared by all sessions
// operating against the same database.
type Schema struct {
	dialect     Dialect
	hidden      *HiddenColumns
	lister      ColumnLister
	logger      SQLLogger
	maxBulkRows int
	columns     columnCache
}

// NewSchema creates a schema with the supplied options.
//
// If no dialect is specified, the dialect is inferred from the list
// of SQL database drivers loaded in the program. If the program only
// uses one database driver, this will be the correct choice.
func NewSchema(opts ...SchemaOption) *Schema {
	schema := &Schema{
		hidden:      NewHiddenColumns(),
		maxBulkRows: DefaultMaxBulkRows,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(schema)
		}
	}
	if schema.dialect == nil {
		schema.dialect = DialectFor("")
	}
	if schema.lister == nil {
		schema.lister = newIntrospector(schema.dialect)
	}
	return schema
}

// Dialect returns the SQL dialect used by this schema.
func (s *Schema) Dialect() Dialect {
	return s.dialect
}

// HiddenColumns returns the hidden column configuration for this
// schema. Changes made to the configuration take effect on the next
// call to Session.Columns or Session.ColumnNames.
func (s *Schema) HiddenColumns() *HiddenColumns {
	return s.hidden
}

// InvalidateColumns discards cached column metadata for the named
// table, forcing the next metadata request to query the database
// again. If table is blank, cached metadata for all tables is
// discarded.
func (s *Schema) InvalidateColumns(table string) {
	s.columns.invalidate(table)
}

// columnCache caches unfiltered column metadata per table. Hidden
// columns are filtered on every read, so changes to the hidden
// column configuration never require cache invalidation.
type columnCache struct {
	mu     sync.RWMutex
	tables map[string][]ColumnInfo
}

func (c *columnCache) lookup(table string) ([]ColumnInfo, bool) {
	c.mu.RLock()
	cols, ok := c.tables[table]
	c.mu.RUnlock()
	return cols, ok
}

func (c *columnCache) set(table string, cols []ColumnInfo) []ColumnInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tables == nil {
		c.tables = make(map[string][]ColumnInfo)
	}
	if existing, ok := c.tables[table]; ok {
		// another goroutine beat us to it, use its value
		return existing
	}
	c.tables[table] = cols
	return cols
}

func (c *columnCache) invalidate(table string) {
	c.mu.Lock()
	if table == "" {
		c.tables = nil
	} else {
		delete(c.tables, table)
	}
	c.mu.Unlock()
}
