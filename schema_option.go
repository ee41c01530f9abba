package sqlext

import "database/sql"

// A SchemaOption provides optional configuration and is supplied when
// creating a new Schema.
type SchemaOption func(schema *Schema)

// ForDB creates an option that sets the dialect for the open DB handle.
func ForDB(db *sql.DB) SchemaOption {
	return func(schema *Schema) {
		schema.dialect = dialectFor(db)
		schema.columns.invalidate("")
	}
}

// WithDialect creates an option that sets the schema's dialect.
func WithDialect(dialect Dialect) SchemaOption {
	return func(schema *Schema) {
		schema.dialect = dialect
		schema.columns.invalidate("")
	}
}

// WithHiddenColumns creates an option that sets the schema's hidden
// column configuration. Use this option to share one configuration
// between multiple schemas.
func WithHiddenColumns(hidden *HiddenColumns) SchemaOption {
	return func(schema *Schema) {
		if hidden != nil {
			schema.hidden = hidden
		}
	}
}

// WithColumnLister creates an option that sets the collaborator used
// to obtain raw, unfiltered column metadata from the database. If not
// specified, an information-schema based lister appropriate for the
// schema's dialect is used.
func WithColumnLister(lister ColumnLister) SchemaOption {
	return func(schema *Schema) {
		schema.lister = lister
		schema.columns.invalidate("")
	}
}

// WithMaxBulkRows creates an option that limits the number of rows
// included in a single multi-row INSERT statement issued by
// Session.BulkInsert. Batches larger than the limit are split into
// multiple statements.
func WithMaxBulkRows(n int) SchemaOption {
	return func(schema *Schema) {
		if n > 0 {
			schema.maxBulkRows = n
		}
	}
}

// WithLogger creates an option that sets a logger which is called
// with every SQL statement issued by this package.
func WithLogger(logger SQLLogger) SchemaOption {
	return func(schema *Schema) {
		schema.logger = logger
	}
}
