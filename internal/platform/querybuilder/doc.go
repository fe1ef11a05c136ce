// Package querybuilder renders the PostgreSQL statements the repositories
// issue. Values are always bound as $n placeholders, except for the
// explicit literal conditions used when a connection pooler cannot keep
// prepared statements.
package querybuilder
