package sqlext

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jamesvl/sqlext/private/dialect"
)

// Dialect is an interface used to handle differences
// in SQL dialects.
type Dialect interface {
	// Name of the dialect.
	Name() string

	// Quote a table name or column name so that it does
	// not clash with any reserved words. The SQL-99 standard
	// specifies double quotes (eg "table_name"), but many
	// dialects, including MySQL use the backtick (eg `table_name`).
	// SQL server uses square brackets (eg [table_name]).
	Quote(name string) string

	// Return the placeholder for binding a variable value.
	// Most SQL dialects support a single question mark (?), but
	// PostgreSQL uses numbered placeholders (eg $1).
	Placeholder(n int) string

	// Savepoint returns the statement that creates a savepoint
	// with the given name inside the current transaction.
	Savepoint(name string) string

	// RollbackToSavepoint returns the statement that rolls the
	// current transaction back to the named savepoint.
	RollbackToSavepoint(name string) string

	// ReleaseSavepoint returns the statement that releases the
	// named savepoint, or an empty string if the dialect has no
	// release verb.
	ReleaseSavepoint(name string) string
}

// Pre-defined dialects.
var (
	Postgres Dialect // Quote: "column_name", Placeholders: $1, $2, $3
	MySQL    Dialect // Quote: `column_name`, Placeholders: ?, ?, ?
	MSSQL    Dialect // Quote: [column_name], Placeholders: ?, ?, ?
	SQLite   Dialect // Quote: `column_name`, Placeholders: ?, ?, ?
	ANSISQL  Dialect // Quote: "column_name", Placeholders: ?, ?, ?
)

func init() {
	Postgres = dialect.New("postgres")
	MySQL = dialect.New("mysql")
	MSSQL = dialect.New("mssql")
	SQLite = dialect.New("sqlite")
	ANSISQL = dialect.New("default")
}

// DialectFor returns the dialect for the specified database driver name.
// If name is blank, the dialect is inferred from the list of SQL drivers
// loaded in the program. If the driver name is unknown, the ANSI SQL
// dialect is returned.
func DialectFor(name string) Dialect {
	return dialect.New(name)
}

// dialectFor infers the dialect from the driver associated
// with the open database handle.
func dialectFor(db *sql.DB) Dialect {
	// The driver type name is the most reliable indication
	// available at runtime, eg "*pq.Driver", "*mysql.MySQLDriver",
	// "*sqlite3.SQLiteDriver", "*mssql.Driver".
	driverType := strings.ToLower(fmt.Sprintf("%T", db.Driver()))
	for _, name := range []string{"postgres", "pq", "mysql", "sqlite", "mssql"} {
		if strings.Contains(driverType, name) {
			return dialect.New(name)
		}
	}
	return dialect.New("")
}
