package sqlstratum

// OrderSpec is a completed ORDER BY item: an expression paired with an
// explicit direction. OrderSpec values are produced by Expression.ASC(),
// Expression.DESC(), or the package-level ASC/DESC helpers, and are the
// only item ORDER_BY may accept anywhere but the final position.
type OrderSpec struct {
	Expr      Expression
	Direction Direction
}

// ASC builds a completed ascending OrderSpec over expr.
func ASC(expr Expression) OrderSpec { return OrderSpec{Expr: expr, Direction: Asc} }

// DESC builds a completed descending OrderSpec over expr.
func DESC(expr Expression) OrderSpec { return OrderSpec{Expr: expr, Direction: Desc} }

// orderState implements the pending-ORDER_BY state machine described in
// spec.md §4.2 and resolved per the design note in spec.md §9 option (b):
// rather than a distinct PendingOrder type, every statement that supports
// ORDER_BY carries this small value alongside its resolved specs. A bare
// trailing expression is held in pending until .ASC()/.DESC() supplies a
// direction; Compile rejects any statement with a non-nil pending.
type orderState struct {
	specs   []OrderSpec
	pending Expression
}

// append processes the arguments of an ORDER_BY call: each item must be
// an OrderSpec or an Expression, and only the last item may be a bare
// Expression. Calling ORDER_BY again while a previous call left a pending
// item unresolved is itself an error — THEN exists for that purpose.
func (s orderState) append(items []interface{}) (orderState, error) {
	if s.pending != nil {
		return s, NewConstructionError("ORDER_BY", "ORDER_BY requires an explicit direction")
	}
	if len(items) == 0 {
		return s, nil
	}
	next := orderState{specs: append([]OrderSpec(nil), s.specs...)}
	for i, item := range items {
		isLast := i == len(items)-1
		switch v := item.(type) {
		case OrderSpec:
			next.specs = append(next.specs, v)
		case Expression:
			if !isLast {
				return s, NewConstructionError("ORDER_BY", "ORDER_BY received an unqualified expression before the final position; call .ASC()/.DESC() on it or pass a completed OrderSpec")
			}
			next.pending = v
		default:
			return s, NewConstructionError("ORDER_BY", "ORDER_BY accepts only OrderSpec or Expression values")
		}
	}
	return next, nil
}

// resolve supplies a direction for the pending expression, completing it
// into an OrderSpec.
func (s orderState) resolve(dir Direction) (orderState, error) {
	if s.pending == nil {
		return s, NewConstructionError("ORDER_BY", "ASC/DESC called without a pending ORDER_BY expression")
	}
	next := orderState{specs: append(append([]OrderSpec(nil), s.specs...), OrderSpec{Expr: s.pending, Direction: dir})}
	return next, nil
}

// then appends one more ORDER_BY item after a pending direction has been
// resolved: a completed OrderSpec is appended outright, a bare Expression
// becomes the new pending item.
func (s orderState) then(item interface{}) (orderState, error) {
	if s.pending != nil {
		return s, NewConstructionError("ORDER_BY", "ORDER_BY requires an explicit direction before THEN")
	}
	switch v := item.(type) {
	case OrderSpec:
		return orderState{specs: append(append([]OrderSpec(nil), s.specs...), v)}, nil
	case Expression:
		return orderState{specs: append([]OrderSpec(nil), s.specs...), pending: v}, nil
	default:
		return s, NewConstructionError("ORDER_BY", "THEN accepts only an OrderSpec or an Expression")
	}
}

// isPending reports whether a direction is still owed before compilation.
func (s orderState) isPending() bool { return s.pending != nil }
