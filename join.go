package sqlstratum

// Source is the marker interface for anything usable in a FROM or JOIN
// clause: a Table or a Subquery.
type Source interface {
	sourceNode()
}

// Join represents one JOIN clause: its kind, the source being joined,
// and the ON predicate relating it to the rest of the query.
type Join struct {
	Kind   JoinKind
	Source Source
	On     Predicate
}
