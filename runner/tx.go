package runner

import "errors"

// ErrNoOpenTransaction is returned by Commit or Rollback called with no
// matching Begin.
var ErrNoOpenTransaction = errors.New("runner: commit/rollback without a matching begin")

// Tx tracks nested-transaction depth the way spec.md §5 describes driver
// transaction policy: autocommit happens only at depth zero, and any
// failure below the root marks the whole transaction for rollback. This
// is explicitly driver-layer policy, not part of the compiled core. It is
// a standalone helper: Memory does not use it, and it is exercised only
// by this package's tests.
type Tx struct {
	depth   int
	aborted bool
}

// Begin increments the nesting depth and returns the new depth.
func (t *Tx) Begin() int {
	t.depth++
	return t.depth
}

// Depth returns the current nesting depth (zero means no open
// transaction).
func (t *Tx) Depth() int { return t.depth }

// Aborted reports whether any nested Rollback has marked this
// transaction for rollback.
func (t *Tx) Aborted() bool { return t.aborted }

// Commit closes one nesting level. autocommit is true when depth returns
// to zero, meaning the root transaction just committed for real.
func (t *Tx) Commit() (autocommit bool, err error) {
	if t.depth == 0 {
		return false, ErrNoOpenTransaction
	}
	t.depth--
	return t.depth == 0, nil
}

// Rollback marks the transaction aborted and closes one nesting level.
// Per spec.md §5, a failure at any depth forces rollback of the whole
// transaction, so Aborted stays true even after depth returns to zero.
func (t *Tx) Rollback() (depth int, err error) {
	if t.depth == 0 {
		return 0, ErrNoOpenTransaction
	}
	t.aborted = true
	t.depth--
	return t.depth, nil
}
