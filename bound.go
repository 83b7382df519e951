package sqlstratum

// BoundSelect carries an explicit dialect tag through SelectQuery's
// builder chain. Every method forwards to the wrapped SelectQuery and
// re-wraps the result with the same tag, the "forwarding decorator per
// statement kind" design-note option in place of Python's dynamic
// __getattr__ delegation (spec.md §9, §4.6).
type BoundSelect struct {
	Inner   SelectQuery
	Dialect string
}

func (b BoundSelect) FROM(source Source) BoundSelect {
	return BoundSelect{Inner: b.Inner.FROM(source), Dialect: b.Dialect}
}

func (b BoundSelect) JOIN(source Source, on Predicate) BoundSelect {
	return BoundSelect{Inner: b.Inner.JOIN(source, on), Dialect: b.Dialect}
}

func (b BoundSelect) LEFT_JOIN(source Source, on Predicate) BoundSelect {
	return BoundSelect{Inner: b.Inner.LEFT_JOIN(source, on), Dialect: b.Dialect}
}

func (b BoundSelect) RIGHT_JOIN(source Source, on Predicate) BoundSelect {
	return BoundSelect{Inner: b.Inner.RIGHT_JOIN(source, on), Dialect: b.Dialect}
}

func (b BoundSelect) FULL_JOIN(source Source, on Predicate) BoundSelect {
	return BoundSelect{Inner: b.Inner.FULL_JOIN(source, on), Dialect: b.Dialect}
}

func (b BoundSelect) WHERE(predicates ...Predicate) BoundSelect {
	return BoundSelect{Inner: b.Inner.WHERE(predicates...), Dialect: b.Dialect}
}

func (b BoundSelect) GROUP_BY(exprs ...Expression) BoundSelect {
	return BoundSelect{Inner: b.Inner.GROUP_BY(exprs...), Dialect: b.Dialect}
}

func (b BoundSelect) HAVING(predicates ...Predicate) BoundSelect {
	return BoundSelect{Inner: b.Inner.HAVING(predicates...), Dialect: b.Dialect}
}

func (b BoundSelect) ORDER_BY(items ...interface{}) BoundSelect {
	return BoundSelect{Inner: b.Inner.ORDER_BY(items...), Dialect: b.Dialect}
}

func (b BoundSelect) ASC() BoundSelect {
	return BoundSelect{Inner: b.Inner.ASC(), Dialect: b.Dialect}
}

func (b BoundSelect) DESC() BoundSelect {
	return BoundSelect{Inner: b.Inner.DESC(), Dialect: b.Dialect}
}

func (b BoundSelect) THEN(item interface{}) BoundSelect {
	return BoundSelect{Inner: b.Inner.THEN(item), Dialect: b.Dialect}
}

func (b BoundSelect) LIMIT(n int) BoundSelect {
	return BoundSelect{Inner: b.Inner.LIMIT(n), Dialect: b.Dialect}
}

func (b BoundSelect) OFFSET(n int) BoundSelect {
	return BoundSelect{Inner: b.Inner.OFFSET(n), Dialect: b.Dialect}
}

func (b BoundSelect) DISTINCT() BoundSelect {
	return BoundSelect{Inner: b.Inner.DISTINCT(), Dialect: b.Dialect}
}

func (b BoundSelect) HYDRATE(target interface{}) BoundSelect {
	return BoundSelect{Inner: b.Inner.HYDRATE(target), Dialect: b.Dialect}
}

// AS wraps the inner statement as a Subquery. The dialect tag stops here:
// a Subquery is a row-source/expression node, not a statement a caller
// compiles directly, so it carries no binding of its own.
func (b BoundSelect) AS(alias string) Subquery {
	return b.Inner.AS(alias)
}

// BoundSetQuery is BoundSelect's counterpart for SetQuery, the other
// statement kind with post-construction chaining in the grammar.
type BoundSetQuery struct {
	Inner   SetQuery
	Dialect string
}

func (b BoundSetQuery) ORDER_BY(items ...interface{}) BoundSetQuery {
	return BoundSetQuery{Inner: b.Inner.ORDER_BY(items...), Dialect: b.Dialect}
}

func (b BoundSetQuery) ASC() BoundSetQuery {
	return BoundSetQuery{Inner: b.Inner.ASC(), Dialect: b.Dialect}
}

func (b BoundSetQuery) DESC() BoundSetQuery {
	return BoundSetQuery{Inner: b.Inner.DESC(), Dialect: b.Dialect}
}

func (b BoundSetQuery) THEN(item interface{}) BoundSetQuery {
	return BoundSetQuery{Inner: b.Inner.THEN(item), Dialect: b.Dialect}
}

func (b BoundSetQuery) LIMIT(n int) BoundSetQuery {
	return BoundSetQuery{Inner: b.Inner.LIMIT(n), Dialect: b.Dialect}
}

func (b BoundSetQuery) OFFSET(n int) BoundSetQuery {
	return BoundSetQuery{Inner: b.Inner.OFFSET(n), Dialect: b.Dialect}
}

func (b BoundSetQuery) HYDRATE(target interface{}) BoundSetQuery {
	return BoundSetQuery{Inner: b.Inner.HYDRATE(target), Dialect: b.Dialect}
}

// Bound is the opaque carrier used for InsertQuery, UpdateQuery, and
// DeleteQuery: by the time a caller binds a dialect to one of these, its
// table and values are already fixed, so there is no further chaining
// surface to forward (spec.md §4.6 addendum).
type Bound struct {
	Inner   interface{}
	Dialect string
}

// WithDialect tags query with dialect, producing the appropriate wrapper
// for its statement kind. Re-binding an already-bound query to the same
// dialect is a no-op; re-binding it to a different dialect is the
// "conflicting nested dialect bindings" error from spec.md §4.6.
func WithDialect(query interface{}, dialect string) (interface{}, error) {
	switch q := query.(type) {
	case BoundSelect:
		if !sameDialect(q.Dialect, dialect) {
			return nil, NewDialectFeatureError(dialect, "dialect binding", "conflicting nested dialect bindings ('"+q.Dialect+"' and '"+dialect+"')")
		}
		return q, nil
	case BoundSetQuery:
		if !sameDialect(q.Dialect, dialect) {
			return nil, NewDialectFeatureError(dialect, "dialect binding", "conflicting nested dialect bindings ('"+q.Dialect+"' and '"+dialect+"')")
		}
		return q, nil
	case Bound:
		if !sameDialect(q.Dialect, dialect) {
			return nil, NewDialectFeatureError(dialect, "dialect binding", "conflicting nested dialect bindings ('"+q.Dialect+"' and '"+dialect+"')")
		}
		return q, nil
	case SelectQuery:
		return BoundSelect{Inner: q, Dialect: dialect}, nil
	case SetQuery:
		return BoundSetQuery{Inner: q, Dialect: dialect}, nil
	case InsertQuery, UpdateQuery, DeleteQuery:
		return Bound{Inner: q, Dialect: dialect}, nil
	default:
		return nil, NewConstructionError("dialect", "WithDialect requires a statement value")
	}
}

// unwrap strips any dialect-binding wrapper from query, returning the
// bare inner statement and the tag it carried (""  if unbound).
func unwrap(query interface{}) (interface{}, string, error) {
	switch q := query.(type) {
	case BoundSelect:
		return q.Inner, q.Dialect, nil
	case BoundSetQuery:
		return q.Inner, q.Dialect, nil
	case Bound:
		return q.Inner, q.Dialect, nil
	default:
		return query, "", nil
	}
}
