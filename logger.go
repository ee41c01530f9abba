package sqlext

// SQLLogger is an interface for logging SQL statements executed
// by this package. Any implementation must support concurrent
// access by multiple goroutines.
type SQLLogger interface {
	// LogSQL is called after this package executes an SQL query or statement.
	//
	// The query and args variables provide the query and associated arguments
	// supplied to the database server. The rowsAffected and err variables
	// provide a summary of the query results. If the number of rows affected
	// cannot be determined for any reason, then rowsAffected is set to -1.
	LogSQL(query string, args []interface{}, rowsAffected int, err error)
}
