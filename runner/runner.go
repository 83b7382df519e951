// Package runner defines the thin execution boundary the core compiles
// SQL for but never calls into itself (spec.md §1/§5/§6): a real
// database/sql driver, an async driver, or — for this module's own tests
// — the in-process Memory fake in memory.go.
package runner

import "context"

// Runner executes compiled (sql, params) pairs against some backing
// store and returns raw results. Implementations outside this module
// wrap a real driver; this core depends only on the interface.
type Runner interface {
	Exec(ctx context.Context, sql string, params map[string]interface{}) (rowsAffected int64, lastInsertID int64, err error)
	Query(ctx context.Context, sql string, params map[string]interface{}) ([]map[string]interface{}, error)
}
