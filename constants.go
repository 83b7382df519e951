package sqlstratum

type (
	// Logic represents the logical operators used to combine predicates.
	Logic string
	// JoinKind represents the supported SQL join kinds.
	JoinKind string
	// Direction represents an ORDER BY sort direction.
	Direction string
	// SetOp represents a set-operation combinator between two queries.
	SetOp string
)

const (
	// LogicAnd combines predicates with AND.
	LogicAnd Logic = "AND"
	// LogicOr combines predicates with OR.
	LogicOr Logic = "OR"

	// JoinInner is a plain INNER JOIN.
	JoinInner JoinKind = "INNER"
	// JoinLeft is a LEFT OUTER JOIN.
	JoinLeft JoinKind = "LEFT"
	// JoinRight is a RIGHT OUTER JOIN, rejected by the sqlite dialect.
	JoinRight JoinKind = "RIGHT"
	// JoinFull is a FULL OUTER JOIN, rejected by both dialects in scope.
	JoinFull JoinKind = "FULL"

	// Asc sorts ascending.
	Asc Direction = "ASC"
	// Desc sorts descending.
	Desc Direction = "DESC"

	// SetUnion deduplicates rows from both sides.
	SetUnion SetOp = "UNION"
	// SetUnionAll keeps every row from both sides.
	SetUnionAll SetOp = "UNION ALL"
	// SetIntersect keeps only rows present on both sides.
	SetIntersect SetOp = "INTERSECT"
	// SetExcept keeps rows from the left side absent on the right.
	SetExcept SetOp = "EXCEPT"
)

// comparison operators used by BinaryPredicate.Op. These are plain string
// constants rather than a closed Operator type because dialect compilers
// render them verbatim and never switch on operator identity.
const (
	opEqual        = "="
	opNotEqual     = "!="
	opLessThan     = "<"
	opLessOrEqual  = "<="
	opGreaterThan  = ">"
	opGreaterEqual = ">="
	opLike         = "LIKE"

	opIsNull    = "IS NULL"
	opIsNotNull = "IS NOT NULL"
)
