package sqlstratum

// SetQuery is an immutable set-operation statement combining two
// SubqueryLike operands (a SelectQuery or another SetQuery) with UNION,
// UNION ALL, INTERSECT, or EXCEPT. Its own ORDER BY/LIMIT/OFFSET apply to
// the combined result, matching SQL's placement rules for set operations.
type SetQuery struct {
	left    SubqueryLike
	op      SetOp
	right   SubqueryLike
	order   orderState
	limit   *int
	offset  *int
	hydrate interface{}
	err     error
}

func (SetQuery) subqueryNode() {}

func newSetQuery(op SetOp, left, right SubqueryLike) SetQuery {
	return SetQuery{left: left, op: op, right: right}
}

// Union combines left and right, deduplicating rows.
func Union(left, right SubqueryLike) SetQuery { return newSetQuery(SetUnion, left, right) }

// UnionAll combines left and right, keeping duplicate rows.
func UnionAll(left, right SubqueryLike) SetQuery { return newSetQuery(SetUnionAll, left, right) }

// Intersect keeps only rows present in both left and right.
func Intersect(left, right SubqueryLike) SetQuery { return newSetQuery(SetIntersect, left, right) }

// Except keeps rows from left not present in right.
func Except(left, right SubqueryLike) SetQuery { return newSetQuery(SetExcept, left, right) }

// ORDER_BY appends ORDER BY items applying to the combined result. Same
// pending-direction rules as SelectQuery.ORDER_BY.
func (q SetQuery) ORDER_BY(items ...interface{}) SetQuery {
	if q.err != nil {
		return q
	}
	next, err := q.order.append(items)
	if err != nil {
		q.err = err
		return q
	}
	q.order = next
	return q
}

// ASC resolves a pending ORDER_BY expression to ascending order.
func (q SetQuery) ASC() SetQuery {
	if q.err != nil {
		return q
	}
	next, err := q.order.resolve(Asc)
	if err != nil {
		q.err = err
		return q
	}
	q.order = next
	return q
}

// DESC resolves a pending ORDER_BY expression to descending order.
func (q SetQuery) DESC() SetQuery {
	if q.err != nil {
		return q
	}
	next, err := q.order.resolve(Desc)
	if err != nil {
		q.err = err
		return q
	}
	q.order = next
	return q
}

// THEN appends another ORDER_BY item after a direction has been resolved.
func (q SetQuery) THEN(item interface{}) SetQuery {
	if q.err != nil {
		return q
	}
	next, err := q.order.then(item)
	if err != nil {
		q.err = err
		return q
	}
	q.order = next
	return q
}

// LIMIT sets the maximum number of rows returned from the combined result.
func (q SetQuery) LIMIT(n int) SetQuery {
	if q.err != nil {
		return q
	}
	q.limit = &n
	return q
}

// OFFSET sets the number of rows to skip in the combined result.
func (q SetQuery) OFFSET(n int) SetQuery {
	if q.err != nil {
		return q
	}
	q.offset = &n
	return q
}

// HYDRATE sets the row-shaping target for the combined result. If not
// set explicitly, effectiveHydrationTarget falls back to the leftmost
// SelectQuery's own HYDRATE target (spec.md §4.7); Compile itself does
// not consult hydration targets.
func (q SetQuery) HYDRATE(target interface{}) SetQuery {
	if q.err != nil {
		return q
	}
	q.hydrate = target
	return q
}

// Left returns the left operand.
func (q SetQuery) Left() SubqueryLike { return q.left }

// Op returns the set operator.
func (q SetQuery) Op() SetOp { return q.op }

// Right returns the right operand.
func (q SetQuery) Right() SubqueryLike { return q.right }

// Err returns the first construction error recorded on this statement.
func (q SetQuery) Err() error { return q.err }

// effectiveHydrationTarget implements the inheritance rule of spec.md
// §4.7: a SetQuery with no HYDRATE of its own inherits the target from
// its leftmost operand, recursing through nested SetQuery lefts down to
// the first SelectQuery.
func (q SetQuery) effectiveHydrationTarget() interface{} {
	if q.hydrate != nil {
		return q.hydrate
	}
	switch left := q.left.(type) {
	case SelectQuery:
		return left.HydrationTarget()
	case SetQuery:
		return left.effectiveHydrationTarget()
	default:
		return nil
	}
}
