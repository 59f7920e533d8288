// Package db declares the narrow interface a SQL-backed store is accessed
// through, along with the Query implementations used to build calls to it.
// The concrete SQL implementation lives in a subpackage so this package can
// be mocked by callers that only need the interface.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"
)

type (
	// Database runs queries against a SQL-backed store.
	Database interface {
		// Setup initializes the database by reading the files and executing their contents as raw queries.
		Setup(ctx context.Context, files []io.Reader) error
		// Query returns the row referenced by the query.
		Query(ctx context.Context, q Query) Scanner
		// Exec evaluates multiple queries in a transaction.
		Exec(ctx context.Context, queries ...Query) error
	}

	// Scanner reads data from the database.
	Scanner interface {
		// Scan reads from the database into the destination array.
		Scan(dest ...interface{}) error
	}

	// Query is a SQL statement with arguments that can be run against a Database.
	Query interface {
		// Cmd returns the SQL to run.
		Cmd() string
		// Args returns the arguments to the SQL statement.
		Args() []interface{}
	}

	// QueryFunction is a Query that reads data by calling a stored function.
	QueryFunction struct {
		name      string
		cols      []string
		arguments []interface{}
	}

	// ExecFunction is a Query that changes data by calling a stored function.
	ExecFunction struct {
		name      string
		arguments []interface{}
	}

	// RawQuery is a Query with a literal SQL command and no arguments.
	RawQuery string

	// Config contains options for how the database should run.
	Config struct {
		// QueryPeriod is the amount of time that any database action can take before it should timeout.
		QueryPeriod time.Duration
	}
)

// ErrNoRows is returned by the Scanner when there are no rows to scan.
var ErrNoRows = sql.ErrNoRows

// NewQueryFunction creates a Query to call a query function.
func NewQueryFunction(name string, cols []string, args ...interface{}) QueryFunction {
	return QueryFunction{
		name:      name,
		cols:      cols,
		arguments: args,
	}
}

// NewExecFunction creates a Query to call an exec function.
func NewExecFunction(name string, args ...interface{}) ExecFunction {
	return ExecFunction{
		name:      name,
		arguments: args,
	}
}

// Cmd returns a SQL string to execute the function with arguments.
func (q QueryFunction) Cmd() string {
	argIndexes := make([]string, len(q.arguments))
	for i := range argIndexes {
		argIndexes[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("SELECT %s FROM %s(%s)", strings.Join(q.cols, ", "), q.name, strings.Join(argIndexes, ", "))
}

// Cmd returns a SQL string to execute the function with arguments.
func (e ExecFunction) Cmd() string {
	argIndexes := make([]string, len(e.arguments))
	for i := range argIndexes {
		argIndexes[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("SELECT %s(%s)", e.name, strings.Join(argIndexes, ", "))
}

// Cmd returns the raw SQL query.
func (r RawQuery) Cmd() string {
	return string(r)
}

// Args returns the arguments for the query function.
func (q QueryFunction) Args() []interface{} {
	return q.arguments
}

// Args returns the arguments for the exec function.
func (e ExecFunction) Args() []interface{} {
	return e.arguments
}

// Args returns nil for the raw SQL query.
func (RawQuery) Args() []interface{} {
	return nil
}

// Name exposes the function name of an ExecFunction, for implementations
// that want to report it in errors.
func (e ExecFunction) Name() string {
	return e.name
}
