package sqlstratum

import "reflect"

// Expression is the marker interface for every node of the expression
// algebra: Column, Literal, FunctionExpr, AliasExpr, and Subquery used as
// a scalar expression. Compilers visit the tree with a type switch rather
// than dynamic dispatch through the interface, so every compiler can be
// checked for exhaustive coverage of the variant set (spec.md §9).
type Expression interface {
	expressionNode()
}

// Column is a named, typed leaf of the expression algebra that also
// carries a back-reference to its owning table. It is created
// declaratively by Table/NewTable and is immutable for its lifetime.
// Identity is (table name, table alias, column name).
type Column struct {
	name  string
	typ   reflect.Type
	table tableRef
}

func (c Column) expressionNode() {}

// Name returns the column's bare name.
func (c Column) Name() string { return c.name }

// Type returns the column's declared Go value type.
func (c Column) Type() reflect.Type { return c.typ }

// AS wraps the column in an alias for use as a projection.
func (c Column) AS(alias string) AliasExpr { return AliasExpr{Inner: c, Alias: alias} }

// ASC builds a completed ascending OrderSpec over this column.
func (c Column) ASC() OrderSpec { return OrderSpec{Expr: c, Direction: Asc} }

// DESC builds a completed descending OrderSpec over this column.
func (c Column) DESC() OrderSpec { return OrderSpec{Expr: c, Direction: Desc} }

// Eq builds "column = value".
func (c Column) Eq(value interface{}) Predicate { return Eq(c, value) }

// NotEq builds "column != value".
func (c Column) NotEq(value interface{}) Predicate { return NotEq(c, value) }

// Lt builds "column < value".
func (c Column) Lt(value interface{}) Predicate { return Lt(c, value) }

// Lte builds "column <= value".
func (c Column) Lte(value interface{}) Predicate { return Lte(c, value) }

// Gt builds "column > value".
func (c Column) Gt(value interface{}) Predicate { return Gt(c, value) }

// Gte builds "column >= value".
func (c Column) Gte(value interface{}) Predicate { return Gte(c, value) }

// IsNull builds "column IS NULL".
func (c Column) IsNull() Predicate { return IsNull(c) }

// IsNotNull builds "column IS NOT NULL".
func (c Column) IsNotNull() Predicate { return IsNotNull(c) }

// Contains builds "column LIKE '%text%'" with the pattern bound as a
// parameter.
func (c Column) Contains(text string) Predicate { return Contains(c, text) }

// IsTrue builds "column = :pN" with a bound boolean true value.
func (c Column) IsTrue() Predicate { return IsTrue(c) }

// IsFalse builds "column = :pN" with a bound boolean false value.
func (c Column) IsFalse() Predicate { return IsFalse(c) }

// In builds an IN predicate. value may be a scalar, a slice/array of
// scalars, a SelectQuery, or a SetQuery; see In in filter.go for the
// full coercion rules.
func (c Column) In(value interface{}) Predicate { return In(c, value) }

// NotIn builds a NOT IN predicate with the same value coercion as In.
func (c Column) NotIn(value interface{}) Predicate { return NotIn(c, value) }

// Between builds "column BETWEEN low AND high".
func (c Column) Between(low, high interface{}) Predicate { return Between(c, low, high) }

// NotBetween builds "column NOT BETWEEN low AND high".
func (c Column) NotBetween(low, high interface{}) Predicate { return NotBetween(c, low, high) }

// Literal wraps a bare Go value as an expression leaf, always compiled as
// a bound parameter, never inlined into the generated SQL text.
type Literal struct {
	Value interface{}
}

func (Literal) expressionNode() {}

// FunctionExpr is a named SQL function or aggregate call over zero or
// more argument expressions.
type FunctionExpr struct {
	Name string
	Args []Expression
}

func (FunctionExpr) expressionNode() {}

// AS wraps the function call in an alias. Hydration requires aggregate
// projections to be aliased (spec.md §4.7); an un-aliased FunctionExpr
// projection is a HydrationError raised at hydrate time, not at AS time.
func (f FunctionExpr) AS(alias string) AliasExpr { return AliasExpr{Inner: f, Alias: alias} }

// ASC builds a completed ascending OrderSpec over this function call
// (e.g. ORDER BY COUNT(*) DESC).
func (f FunctionExpr) ASC() OrderSpec { return OrderSpec{Expr: f, Direction: Asc} }

// DESC builds a completed descending OrderSpec over this function call.
func (f FunctionExpr) DESC() OrderSpec { return OrderSpec{Expr: f, Direction: Desc} }

// AliasExpr wraps an inner expression with an output alias, the mechanism
// both SELECT projections and hydration keys rely on.
type AliasExpr struct {
	Inner Expression
	Alias string
}

func (AliasExpr) expressionNode() {}

// AS re-aliases an already-aliased expression, discarding the previous
// alias in favor of the new one.
func (a AliasExpr) AS(alias string) AliasExpr { return AliasExpr{Inner: a.Inner, Alias: alias} }

// ASC builds a completed ascending OrderSpec over the aliased expression.
func (a AliasExpr) ASC() OrderSpec { return OrderSpec{Expr: a, Direction: Asc} }

// DESC builds a completed descending OrderSpec over the aliased expression.
func (a AliasExpr) DESC() OrderSpec { return OrderSpec{Expr: a, Direction: Desc} }

// ensureExpr lifts a raw Go value to a Literal unless it is already an
// Expression, mirroring the DSL's implicit scalar-to-literal coercion
// wherever a bare value is accepted alongside expressions.
func ensureExpr(value interface{}) Expression {
	if e, ok := value.(Expression); ok {
		return e
	}
	return Literal{Value: value}
}

// COUNT builds COUNT(expr), or COUNT over the Literal 1 when called with
// no argument. Like every Literal, that 1 is bound as a parameter, so the
// compiled text reads COUNT(:p0) (sqlite) rather than an inlined COUNT(1).
func COUNT(expr ...Expression) FunctionExpr {
	if len(expr) == 0 {
		return FunctionExpr{Name: "COUNT", Args: []Expression{Literal{Value: 1}}}
	}
	return FunctionExpr{Name: "COUNT", Args: []Expression{expr[0]}}
}

// SUM builds SUM(expr).
func SUM(expr Expression) FunctionExpr {
	return FunctionExpr{Name: "SUM", Args: []Expression{expr}}
}

// AVG builds AVG(expr).
func AVG(expr Expression) FunctionExpr {
	return FunctionExpr{Name: "AVG", Args: []Expression{expr}}
}

// MIN builds MIN(expr).
func MIN(expr Expression) FunctionExpr {
	return FunctionExpr{Name: "MIN", Args: []Expression{expr}}
}

// MAX builds MAX(expr).
func MAX(expr Expression) FunctionExpr {
	return FunctionExpr{Name: "MAX", Args: []Expression{expr}}
}

// TOTAL builds sqlite's TOTAL(expr) aggregate. Compiling it against any
// dialect but sqlite fails capability gating (spec.md §4.5).
func TOTAL(expr Expression) FunctionExpr {
	return FunctionExpr{Name: "TOTAL", Args: []Expression{expr}}
}

// GROUP_CONCAT builds sqlite's GROUP_CONCAT(expr[, separator]) aggregate.
// A separator argument is kept as a Literal so it is always bound as a
// parameter rather than inlined (spec.md §4.1).
func GROUP_CONCAT(expr Expression, separator ...string) FunctionExpr {
	args := []Expression{expr}
	if len(separator) > 0 {
		args = append(args, Literal{Value: separator[0]})
	}
	return FunctionExpr{Name: "GROUP_CONCAT", Args: args}
}
