package sqlstratum

// Predicate is the marker interface for every boolean-valued expression
// tree node usable in WHERE, HAVING, or a JOIN's ON clause:
// BinaryPredicate, UnaryPredicate, LogicalPredicate, NotPredicate,
// InPredicate, BetweenPredicate, and ExistsPredicate.
type Predicate interface {
	predicateNode()
}

// BinaryPredicate compares two expressions with a binary SQL operator
// (=, !=, <, <=, >, >=, LIKE).
type BinaryPredicate struct {
	Left  Expression
	Op    string
	Right Expression
}

func (BinaryPredicate) predicateNode() {}

// UnaryPredicate applies a postfix SQL operator to a single expression
// (IS NULL, IS NOT NULL).
type UnaryPredicate struct {
	Expr Expression
	Op   string
}

func (UnaryPredicate) predicateNode() {}

// LogicalPredicate groups predicates with AND or OR. Op is always
// LogicAnd or LogicOr.
type LogicalPredicate struct {
	Op         Logic
	Predicates []Predicate
}

func (LogicalPredicate) predicateNode() {}

// NotPredicate negates its inner predicate, always rendered as
// "NOT (<inner>)".
type NotPredicate struct {
	Inner Predicate
}

func (NotPredicate) predicateNode() {}

// InPredicate tests an expression against either a frozen tuple of value
// expressions or a subquery (SelectQuery or SetQuery), never both.
type InPredicate struct {
	Expr     Expression
	Values   []Expression
	Sub      SubqueryLike
	Negated  bool
}

func (InPredicate) predicateNode() {}

// BetweenPredicate tests an expression against an inclusive range.
type BetweenPredicate struct {
	Expr    Expression
	Low     Expression
	High    Expression
	Negated bool
}

func (BetweenPredicate) predicateNode() {}

// ExistsPredicate tests whether a subquery returns any row.
type ExistsPredicate struct {
	Sub     SubqueryLike
	Negated bool
}

func (ExistsPredicate) predicateNode() {}

// And combines predicates with AND, always rendered parenthesized
// ("(a AND b)") since it is an explicit LogicalPredicate node rather than
// the implicit AND-list a statement's WHERE/HAVING clauses build from
// repeated calls.
func And(predicates ...Predicate) Predicate {
	return LogicalPredicate{Op: LogicAnd, Predicates: append([]Predicate(nil), predicates...)}
}

// Or combines predicates with OR, always rendered parenthesized.
func Or(predicates ...Predicate) Predicate {
	return LogicalPredicate{Op: LogicOr, Predicates: append([]Predicate(nil), predicates...)}
}

// Not negates a predicate, rendered as "NOT (<inner>)".
func Not(p Predicate) Predicate {
	return NotPredicate{Inner: p}
}

// Eq builds "left = right". right may be any Expression or a bare Go
// value, which is lifted to a Literal.
func Eq(left Expression, right interface{}) Predicate {
	return BinaryPredicate{Left: left, Op: opEqual, Right: ensureExpr(right)}
}

// NotEq builds "left != right".
func NotEq(left Expression, right interface{}) Predicate {
	return BinaryPredicate{Left: left, Op: opNotEqual, Right: ensureExpr(right)}
}

// Lt builds "left < right".
func Lt(left Expression, right interface{}) Predicate {
	return BinaryPredicate{Left: left, Op: opLessThan, Right: ensureExpr(right)}
}

// Lte builds "left <= right".
func Lte(left Expression, right interface{}) Predicate {
	return BinaryPredicate{Left: left, Op: opLessOrEqual, Right: ensureExpr(right)}
}

// Gt builds "left > right".
func Gt(left Expression, right interface{}) Predicate {
	return BinaryPredicate{Left: left, Op: opGreaterThan, Right: ensureExpr(right)}
}

// Gte builds "left >= right".
func Gte(left Expression, right interface{}) Predicate {
	return BinaryPredicate{Left: left, Op: opGreaterEqual, Right: ensureExpr(right)}
}

// IsNull builds "expr IS NULL".
func IsNull(expr Expression) Predicate {
	return UnaryPredicate{Expr: expr, Op: opIsNull}
}

// IsNotNull builds "expr IS NOT NULL".
func IsNotNull(expr Expression) Predicate {
	return UnaryPredicate{Expr: expr, Op: opIsNotNull}
}

// Contains builds "expr LIKE :pN" with the bound value "%text%".
func Contains(expr Expression, text string) Predicate {
	return BinaryPredicate{Left: expr, Op: opLike, Right: Literal{Value: "%" + text + "%"}}
}

// IsTrue builds "expr = :pN" with a bound boolean true value. Per
// spec.md §9 this is intentional even against integer-typed columns: it
// is never rewritten as "<> 0".
func IsTrue(expr Expression) Predicate {
	return BinaryPredicate{Left: expr, Op: opEqual, Right: Literal{Value: true}}
}

// IsFalse builds "expr = :pN" with a bound boolean false value.
func IsFalse(expr Expression) Predicate {
	return BinaryPredicate{Left: expr, Op: opEqual, Right: Literal{Value: false}}
}

// Between builds "expr BETWEEN low AND high". Scalar endpoints are lifted
// to Literal.
func Between(expr Expression, low, high interface{}) Predicate {
	return BetweenPredicate{Expr: expr, Low: ensureExpr(low), High: ensureExpr(high)}
}

// NotBetween builds "expr NOT BETWEEN low AND high".
func NotBetween(expr Expression, low, high interface{}) Predicate {
	return BetweenPredicate{Expr: expr, Low: ensureExpr(low), High: ensureExpr(high), Negated: true}
}

// In builds an IN predicate. value may be a scalar (wrapped to a
// single-element tuple), a slice or array of scalars (each lifted to a
// Literal), a SelectQuery, or a SetQuery. Values are frozen into an
// ordered slice at construction time by coerceInValue (filter_value.go),
// which detects slice/array values with reflect.
func In(expr Expression, value interface{}) Predicate {
	values, sub := coerceInValue(value)
	return InPredicate{Expr: expr, Values: values, Sub: sub}
}

// NotIn builds a NOT IN predicate with the same value coercion as In.
func NotIn(expr Expression, value interface{}) Predicate {
	values, sub := coerceInValue(value)
	return InPredicate{Expr: expr, Values: values, Sub: sub, Negated: true}
}

// Exists builds an EXISTS predicate over a subquery.
func Exists(sub SubqueryLike) Predicate {
	return ExistsPredicate{Sub: sub}
}

// NotExists builds a NOT EXISTS predicate over a subquery.
func NotExists(sub SubqueryLike) Predicate {
	return ExistsPredicate{Sub: sub, Negated: true}
}
