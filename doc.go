/*
Package sqlext is a thin extension layer that sits between application
code and the standard library "database/sql" package. It adds a small
number of capabilities that "database/sql" does not provide on its own:

 (a) Hiding columns that exist physically in a table but must be
     treated as absent while they are being rolled out or removed;
 (b) Generating SQL CASE expressions that rank rows into ordered
     priority buckets, along with an equivalent in-memory lookup;
 (c) Safely retrying a unit of work that fails with a uniqueness
     constraint violation, without corrupting an enclosing
     transaction; and
 (d) Exposing multiple type-specific accessors over a single
     polymorphic (type, id) column pair.

This package does not provide an ORM, query builder or migration
tool. It is designed to work seamlessly with "database/sql": it does
not wrap *sql.DB or *sql.Tx, and the calling program remains free to
execute queries independently of this package.

Configuration that is common to a database schema (SQL dialect,
hidden column configuration, statement limits) is collected in a
Schema. Operations are performed through a request-scoped Session,
which combines a context, a Querier (*sql.DB, *sql.Tx or *sql.Conn)
and a Schema:

	schema := sqlext.NewSchema(sqlext.ForDB(db))
	sess := sqlext.NewSession(ctx, db, schema)
	defer sess.Close()

	names, err := sess.ColumnNames("users")
*/
package sqlext
