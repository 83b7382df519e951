package sqlstratum

// Subquery wraps a SelectQuery with an alias, making it usable both as a
// FROM/JOIN row source and as a scalar expression (e.g. a correlated
// scalar subquery in a projection). This is the aliased counterpart to
// SubqueryLike, which covers the bare (unaliased) SelectQuery/SetQuery
// forms accepted by IN and EXISTS (spec.md §4.1, §9 open question (a)).
type Subquery struct {
	Query SelectQuery
	Alias string
}

func (Subquery) sourceNode()     {}
func (Subquery) expressionNode() {}

// C returns a synthetic column referencing one of the subquery's output
// expressions by its projection key, scoped to this subquery's alias.
// Unlike Table.C, the column carries no declared type since the
// subquery's projection may be an arbitrary expression.
func (s Subquery) C(name string) Column {
	return Column{name: name, table: tableRef{name: s.Alias, alias: s.Alias}}
}
