package sqlstratum

import "reflect"

// SubqueryLike marks the two statement kinds usable as a bare (unaliased)
// subquery inside IN/NOT IN and EXISTS/NOT EXISTS: SelectQuery and
// SetQuery. A row-source or scalar-expression subquery, by contrast, is
// always the aliased Subquery wrapper (see subquery.go) — spec.md §4.1
// draws this same distinction between "a SelectQuery, or a SetQuery" for
// set membership and the aliased Subquery for everything else.
type SubqueryLike interface {
	subqueryNode()
}

// coerceInValue implements the IN/NOT IN value coercion rules of
// spec.md §4.1: a SelectQuery or SetQuery is used as-is; a slice or array
// is expanded element-by-element (detected with reflect); anything else
// is treated as a single scalar and wrapped into a one-element tuple.
func coerceInValue(value interface{}) ([]Expression, SubqueryLike) {
	switch v := value.(type) {
	case SelectQuery:
		return nil, v
	case SetQuery:
		return nil, v
	}

	rv := reflect.ValueOf(value)
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		values := make([]Expression, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			values[i] = ensureExpr(rv.Index(i).Interface())
		}
		return values, nil
	}

	return []Expression{ensureExpr(value)}, nil
}
