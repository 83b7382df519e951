package sqlstratum

// SelectQuery is an immutable SELECT statement value. Every builder
// method returns a new SelectQuery with the requested clause extended or
// replaced; the receiver is never mutated, matching the chain grammar of
// spec.md §4.2:
//
//	SELECT => (FROM) => (JOIN|LEFT_JOIN|RIGHT_JOIN|FULL_JOIN)* => (WHERE)? =>
//	(GROUP_BY)? => (HAVING)? => (ORDER_BY => (ASC|DESC) [=> THEN => ...])? =>
//	(LIMIT)? => (OFFSET)? => (DISTINCT)? => (AS(alias))? => (HYDRATE)?
type SelectQuery struct {
	projections []Expression
	from        Source
	joins       []Join
	where       []Predicate
	groupBy     []Expression
	having      []Predicate
	order       orderState
	limit       *int
	offset      *int
	distinct    bool
	hydrate     interface{}
	err         error
}

func (SelectQuery) subqueryNode() {}

// SELECT starts a new SELECT statement projecting the given expressions.
func SELECT(projections ...Expression) SelectQuery {
	return SelectQuery{projections: append([]Expression(nil), projections...)}
}

// FROM sets the row source. Repeated calls replace the previous source,
// matching the grammar's single FROM slot.
func (q SelectQuery) FROM(source Source) SelectQuery {
	if q.err != nil {
		return q
	}
	q.from = source
	return q
}

// JOIN appends an INNER JOIN against source with the given ON predicate.
func (q SelectQuery) JOIN(source Source, on Predicate) SelectQuery {
	return q.addJoin(JoinInner, source, on)
}

// LEFT_JOIN appends a LEFT OUTER JOIN.
func (q SelectQuery) LEFT_JOIN(source Source, on Predicate) SelectQuery {
	return q.addJoin(JoinLeft, source, on)
}

// RIGHT_JOIN appends a RIGHT OUTER JOIN. Rejected at compile time by the
// sqlite dialect (spec.md §4.4).
func (q SelectQuery) RIGHT_JOIN(source Source, on Predicate) SelectQuery {
	return q.addJoin(JoinRight, source, on)
}

// FULL_JOIN appends a FULL OUTER JOIN. Rejected at compile time by both
// dialects in scope (spec.md §4.4, §4.5).
func (q SelectQuery) FULL_JOIN(source Source, on Predicate) SelectQuery {
	return q.addJoin(JoinFull, source, on)
}

func (q SelectQuery) addJoin(kind JoinKind, source Source, on Predicate) SelectQuery {
	if q.err != nil {
		return q
	}
	q.joins = append(append([]Join(nil), q.joins...), Join{Kind: kind, Source: source, On: on})
	return q
}

// WHERE appends predicates to the WHERE clause. Repeated calls append;
// all WHERE predicates on a statement are combined with AND at compile
// time (spec.md §4.2).
func (q SelectQuery) WHERE(predicates ...Predicate) SelectQuery {
	if q.err != nil {
		return q
	}
	q.where = append(append([]Predicate(nil), q.where...), predicates...)
	return q
}

// GROUP_BY appends expressions to the GROUP BY clause.
func (q SelectQuery) GROUP_BY(exprs ...Expression) SelectQuery {
	if q.err != nil {
		return q
	}
	q.groupBy = append(append([]Expression(nil), q.groupBy...), exprs...)
	return q
}

// HAVING appends predicates to the HAVING clause, combined with AND at
// compile time just like WHERE.
func (q SelectQuery) HAVING(predicates ...Predicate) SelectQuery {
	if q.err != nil {
		return q
	}
	q.having = append(append([]Predicate(nil), q.having...), predicates...)
	return q
}

// ORDER_BY appends ORDER BY items. Every item but the last must be a
// completed OrderSpec (from ASC()/DESC()); a bare trailing Expression
// puts the statement into the pending state described in spec.md §4.2,
// requiring a following .ASC() or .DESC() before it can compile.
func (q SelectQuery) ORDER_BY(items ...interface{}) SelectQuery {
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
func (q SelectQuery) ASC() SelectQuery {
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
func (q SelectQuery) DESC() SelectQuery {
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

// THEN appends another ORDER_BY item after a direction has been resolved:
// a completed OrderSpec is appended outright, a bare Expression becomes a
// new pending item requiring its own .ASC()/.DESC().
func (q SelectQuery) THEN(item interface{}) SelectQuery {
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

// LIMIT sets the maximum number of rows to return.
func (q SelectQuery) LIMIT(n int) SelectQuery {
	if q.err != nil {
		return q
	}
	q.limit = &n
	return q
}

// OFFSET sets the number of rows to skip.
func (q SelectQuery) OFFSET(n int) SelectQuery {
	if q.err != nil {
		return q
	}
	q.offset = &n
	return q
}

// DISTINCT marks the statement to deduplicate result rows.
func (q SelectQuery) DISTINCT() SelectQuery {
	if q.err != nil {
		return q
	}
	q.distinct = true
	return q
}

// AS wraps the statement as an aliased Subquery, usable as a row source
// or a scalar expression. This is the statement-level AS of spec.md §9's
// open question (a), distinct from Expression.AS.
func (q SelectQuery) AS(alias string) Subquery {
	return Subquery{Query: q, Alias: alias}
}

// HYDRATE sets the row-shaping target used when this statement's result
// rows are passed to the hydrate package. target may be nil (dict-style
// rows), a reflect.Type for a struct, or a func(map[string]any) (any, error).
func (q SelectQuery) HYDRATE(target interface{}) SelectQuery {
	if q.err != nil {
		return q
	}
	q.hydrate = target
	return q
}

// Projections returns the statement's SELECT-list expressions.
func (q SelectQuery) Projections() []Expression { return q.projections }

// Where returns the statement's WHERE predicates.
func (q SelectQuery) Where() []Predicate { return q.where }

// HydrationTarget returns the target set by HYDRATE, or nil.
func (q SelectQuery) HydrationTarget() interface{} { return q.hydrate }

// Err returns the first construction error recorded on this statement, or
// nil. Compile surfaces this before attempting to lower anything.
func (q SelectQuery) Err() error { return q.err }
