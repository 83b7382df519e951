package sqlstratum

import "fmt"

// baseError carries the common Error() rendering for the three diagnostic
// kinds the compiler and builders raise. Applications that want to branch
// on kind should use errors.As against the concrete type instead of
// string-matching Error().
type baseError struct {
	message string
}

func (e *baseError) Error() string { return e.message }

// ConstructionError is raised synchronously while a statement is being
// built: multiple unqualified ORDER_BY expressions, an ORDER_BY item of
// the wrong type, an INSERT or UPDATE with no assignments, and similar
// builder misuse. It is recorded on the offending statement value's err
// field and surfaces the first time that statement is compiled.
type ConstructionError struct {
	baseError
	Field string
}

// NewConstructionError builds a ConstructionError for the named field or
// operation (e.g. "ORDER_BY", "IN"). Field may be empty when no single
// field is responsible.
func NewConstructionError(field, message string) *ConstructionError {
	return &ConstructionError{baseError: baseError{message: message}, Field: field}
}

// DialectFeatureError is raised during compilation: an unknown dialect, a
// construct the target dialect does not support, a missing LIMIT
// companion for OFFSET, an unresolved pending ORDER_BY direction, or a
// dialect-binding mismatch. Its Error() rendering matches spec.md §6
// exactly: "Dialect '<d>' does not support feature: <feature>. <hint?>".
type DialectFeatureError struct {
	baseError
	Dialect string
	Feature string
	Hint    string
}

// NewDialectFeatureError builds the structured diagnostic used throughout
// the compilers and the dialect-binding wrapper.
func NewDialectFeatureError(dialect, feature, hint string) *DialectFeatureError {
	message := fmt.Sprintf("Dialect '%s' does not support feature: %s", dialect, feature)
	if hint != "" {
		message = fmt.Sprintf("%s. %s", message, hint)
	}
	return &DialectFeatureError{
		baseError: baseError{message: message},
		Dialect:   dialect,
		Feature:   feature,
		Hint:      hint,
	}
}

// HydrationError is raised while shaping raw rows into an application
// facing value: an unaliased aggregate projection, a duplicate projection
// key, or an unsupported hydration target.
type HydrationError struct {
	baseError
}

// NewHydrationError builds a HydrationError with the given message.
func NewHydrationError(message string) *HydrationError {
	return &HydrationError{baseError: baseError{message: message}}
}

// IsUnsupportedFeature reports whether err is a DialectFeatureError, the
// kind capability-gating failures use.
func IsUnsupportedFeature(err error) bool {
	_, ok := err.(*DialectFeatureError)
	return ok
}

// Sentinel construction errors for the handful of builder misuses that do
// not need a dynamic message.
var (
	// ErrInvalidTable is returned when compiling an INSERT, UPDATE, or
	// DELETE whose table has no name.
	ErrInvalidTable = NewConstructionError("table", "invalid table: must have a name")
	// ErrUnknownColumn describes a lookup of a column that was never
	// declared on a table. Table.C does not return it: it panics with a
	// message naming the table and the column.
	ErrUnknownColumn = NewConstructionError("column", "unknown column")
)
