package sqlstratum

import (
	"fmt"
	"strings"
)

// Compiled is the result of compiling a statement value: a single-line
// SQL string with no trailing whitespace, and a name-to-value parameter
// map keyed by the "pN" names embedded in the SQL text.
type Compiled struct {
	SQL    string
	Params map[string]interface{}
}

// DialectCompiler lowers statement values into Compiled output for one
// SQL dialect. SQLiteCompiler and MySQLCompiler are the two
// implementations in scope; RegisterDialect admits more.
type DialectCompiler interface {
	Name() string
	Compile(query interface{}) (Compiled, error)
}

// capabilities advertises which constructs a dialect accepts, the
// mechanism behind capability gating (spec.md §4.4/§4.5).
type capabilities struct {
	rightJoin              bool
	fullJoin               bool
	sqliteOnlyAggregates   bool
	requireLimitForOffset  bool
}

// compiler is the shared visitor walking a statement tree and emitting
// text while recording bound parameters. One compiler is allocated per
// Compile call, so its counter is never shared across concurrent
// compilations of the same statement (spec.md §5).
type compiler struct {
	dialect      string
	quote        func(string) string
	placeholder  func(int) string
	caps         capabilities
	params       map[string]interface{}
	count        int
}

func newCompiler(dialect string, quote func(string) string, placeholder func(int) string, caps capabilities) *compiler {
	return &compiler{
		dialect:     dialect,
		quote:       quote,
		placeholder: placeholder,
		caps:        caps,
		params:      make(map[string]interface{}),
	}
}

// bind records value under the next "pN" name and returns the dialect's
// placeholder text for it.
func (c *compiler) bind(value interface{}) string {
	name := fmt.Sprintf("p%d", c.count)
	c.count++
	c.params[name] = value
	return c.placeholder(c.count - 1)
}

func (c *compiler) unsupported(feature, hint string) error {
	return NewDialectFeatureError(c.dialect, feature, hint)
}

// qualify renders a column reference qualified by its owning table's
// identifier (alias if present, else table name), per spec.md §4.3.
func (c *compiler) qualify(col Column) string {
	if col.table.ident() == "" {
		return c.quote(col.name)
	}
	return c.quote(col.table.ident()) + "." + c.quote(col.name)
}

// compileExpr renders a scalar expression. AliasExpr is rendered without
// its alias here; callers that project output columns (compileProjection)
// add the "AS <alias>" suffix explicitly, since an alias only has meaning
// at the point a value becomes a named output.
func (c *compiler) compileExpr(expr Expression) (string, error) {
	switch e := expr.(type) {
	case Column:
		return c.qualify(e), nil
	case Literal:
		return c.bind(e.Value), nil
	case FunctionExpr:
		return c.compileFunction(e)
	case AliasExpr:
		return c.compileExpr(e.Inner)
	case Subquery:
		sql, err := c.compileSelectBody(e.Query)
		if err != nil {
			return "", err
		}
		return "(" + sql + ")", nil
	default:
		return "", c.unsupported("expression", fmt.Sprintf("unknown expression node %T", expr))
	}
}

func (c *compiler) compileFunction(f FunctionExpr) (string, error) {
	if !c.caps.sqliteOnlyAggregates && (f.Name == "TOTAL" || f.Name == "GROUP_CONCAT") {
		return "", c.unsupported(f.Name, fmt.Sprintf("%s is a sqlite-only aggregate", f.Name))
	}
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		s, err := c.compileExpr(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")", nil
}

// compileProjection renders one SELECT-list item, adding "AS <alias>"
// when the expression is aliased.
func (c *compiler) compileProjection(expr Expression) (string, error) {
	if a, ok := expr.(AliasExpr); ok {
		inner, err := c.compileExpr(a.Inner)
		if err != nil {
			return "", err
		}
		return inner + " AS " + c.quote(a.Alias), nil
	}
	return c.compileExpr(expr)
}

func (c *compiler) compileExprList(exprs []Expression) (string, error) {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := c.compileExpr(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func (c *compiler) compileProjections(exprs []Expression) (string, error) {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := c.compileProjection(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

// compilePredicate renders a single predicate node.
func (c *compiler) compilePredicate(p Predicate) (string, error) {
	switch pr := p.(type) {
	case BinaryPredicate:
		left, err := c.compileExpr(pr.Left)
		if err != nil {
			return "", err
		}
		right, err := c.compileExpr(pr.Right)
		if err != nil {
			return "", err
		}
		return left + " " + pr.Op + " " + right, nil
	case UnaryPredicate:
		expr, err := c.compileExpr(pr.Expr)
		if err != nil {
			return "", err
		}
		return expr + " " + pr.Op, nil
	case LogicalPredicate:
		parts := make([]string, len(pr.Predicates))
		for i, sub := range pr.Predicates {
			s, err := c.compilePredicate(sub)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "(" + strings.Join(parts, " "+string(pr.Op)+" ") + ")", nil
	case NotPredicate:
		inner, err := c.compilePredicate(pr.Inner)
		if err != nil {
			return "", err
		}
		return "NOT (" + inner + ")", nil
	case InPredicate:
		return c.compileIn(pr)
	case BetweenPredicate:
		expr, err := c.compileExpr(pr.Expr)
		if err != nil {
			return "", err
		}
		low, err := c.compileExpr(pr.Low)
		if err != nil {
			return "", err
		}
		high, err := c.compileExpr(pr.High)
		if err != nil {
			return "", err
		}
		op := "BETWEEN"
		if pr.Negated {
			op = "NOT BETWEEN"
		}
		return expr + " " + op + " " + low + " AND " + high, nil
	case ExistsPredicate:
		sub, err := c.compileSubqueryLike(pr.Sub)
		if err != nil {
			return "", err
		}
		op := "EXISTS"
		if pr.Negated {
			op = "NOT EXISTS"
		}
		return op + " (" + sub + ")", nil
	default:
		return "", c.unsupported("predicate", fmt.Sprintf("unknown predicate node %T", p))
	}
}

func (c *compiler) compileIn(pr InPredicate) (string, error) {
	expr, err := c.compileExpr(pr.Expr)
	if err != nil {
		return "", err
	}
	op := "IN"
	if pr.Negated {
		op = "NOT IN"
	}
	if pr.Sub != nil {
		sub, err := c.compileSubqueryLike(pr.Sub)
		if err != nil {
			return "", err
		}
		return expr + " " + op + " (" + sub + ")", nil
	}
	if len(pr.Values) == 0 {
		if pr.Negated {
			return "1=1", nil
		}
		return "1=0", nil
	}
	values, err := c.compileExprList(pr.Values)
	if err != nil {
		return "", err
	}
	return expr + " " + op + " (" + values + ")", nil
}

func (c *compiler) compileSubqueryLike(sub SubqueryLike) (string, error) {
	switch s := sub.(type) {
	case SelectQuery:
		return c.compileSelectBody(s)
	case SetQuery:
		return c.compileSetBody(s)
	default:
		return "", c.unsupported("subquery", fmt.Sprintf("unknown subquery node %T", sub))
	}
}

// compileAndList joins WHERE/HAVING predicates with AND, unparenthesized
// at the statement level (spec.md §4.3); explicit Logical/Not nodes add
// their own parentheses.
func (c *compiler) compileAndList(preds []Predicate) (string, error) {
	parts := make([]string, len(preds))
	for i, p := range preds {
		s, err := c.compilePredicate(p)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, " AND "), nil
}

func (c *compiler) compileSource(src Source) (string, error) {
	switch s := src.(type) {
	case Table:
		if s.Alias() != "" {
			return c.quote(s.Name()) + " AS " + c.quote(s.Alias()), nil
		}
		return c.quote(s.Name()), nil
	case Subquery:
		sql, err := c.compileSelectBody(s.Query)
		if err != nil {
			return "", err
		}
		return "(" + sql + ") AS " + c.quote(s.Alias), nil
	default:
		return "", c.unsupported("source", fmt.Sprintf("unknown source node %T", src))
	}
}

func (c *compiler) compileJoins(joins []Join) (string, error) {
	parts := make([]string, 0, len(joins))
	for _, j := range joins {
		switch j.Kind {
		case JoinRight:
			if !c.caps.rightJoin {
				return "", c.unsupported("RIGHT OUTER JOIN", fmt.Sprintf("RIGHT OUTER JOIN not supported by %s dialect", c.dialect))
			}
		case JoinFull:
			if !c.caps.fullJoin {
				return "", c.unsupported("FULL OUTER JOIN", fmt.Sprintf("FULL OUTER JOIN not supported by %s dialect", c.dialect))
			}
		}
		source, err := c.compileSource(j.Source)
		if err != nil {
			return "", err
		}
		on, err := c.compilePredicate(j.On)
		if err != nil {
			return "", err
		}
		kind := string(j.Kind)
		if j.Kind == JoinInner {
			parts = append(parts, "JOIN "+source+" ON "+on)
		} else {
			parts = append(parts, kind+" JOIN "+source+" ON "+on)
		}
	}
	return strings.Join(parts, " "), nil
}

func (c *compiler) compileOrder(order orderState) (string, error) {
	if order.isPending() {
		return "", c.unsupported("ORDER_BY direction", "ORDER_BY requires an explicit direction")
	}
	parts := make([]string, len(order.specs))
	for i, spec := range order.specs {
		s, err := c.compileExpr(spec.Expr)
		if err != nil {
			return "", err
		}
		parts[i] = s + " " + string(spec.Direction)
	}
	return strings.Join(parts, ", "), nil
}

// compileSelectBody renders a SELECT statement's full text without
// applying a trailing alias, used both for the top-level Compile entry
// and for subquery/set-operand nesting.
func (c *compiler) compileSelectBody(q SelectQuery) (string, error) {
	if q.err != nil {
		return "", q.err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if q.distinct {
		sb.WriteString("DISTINCT ")
	}
	projections, err := c.compileProjections(q.projections)
	if err != nil {
		return "", err
	}
	sb.WriteString(projections)

	if q.from != nil {
		source, err := c.compileSource(q.from)
		if err != nil {
			return "", err
		}
		sb.WriteString(" FROM ")
		sb.WriteString(source)
	}

	if len(q.joins) > 0 {
		joins, err := c.compileJoins(q.joins)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ")
		sb.WriteString(joins)
	}

	if len(q.where) > 0 {
		where, err := c.compileAndList(q.where)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	if len(q.groupBy) > 0 {
		groupBy, err := c.compileExprList(q.groupBy)
		if err != nil {
			return "", err
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(groupBy)
	}

	if len(q.having) > 0 {
		having, err := c.compileAndList(q.having)
		if err != nil {
			return "", err
		}
		sb.WriteString(" HAVING ")
		sb.WriteString(having)
	}

	if len(q.order.specs) > 0 || q.order.isPending() {
		orderBy, err := c.compileOrder(q.order)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderBy)
	}

	if err := c.writeLimitOffset(&sb, q.limit, q.offset); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (c *compiler) writeLimitOffset(sb *strings.Builder, limit, offset *int) error {
	if offset != nil && limit == nil && c.caps.requireLimitForOffset {
		return c.unsupported("OFFSET without LIMIT", fmt.Sprintf("OFFSET without LIMIT not supported by %s dialect", c.dialect))
	}
	if limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(c.bind(*limit))
	}
	if offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(c.bind(*offset))
	}
	return nil
}

// compileSetBody renders a SetQuery's full text, recursively composing
// its operands left-to-right (spec.md §4.3).
func (c *compiler) compileSetBody(q SetQuery) (string, error) {
	if q.err != nil {
		return "", q.err
	}

	left, err := c.compileSubqueryLike(q.left)
	if err != nil {
		return "", err
	}
	right, err := c.compileSubqueryLike(q.right)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(left)
	sb.WriteString(" ")
	sb.WriteString(string(q.op))
	sb.WriteString(" ")
	sb.WriteString(right)

	if len(q.order.specs) > 0 || q.order.isPending() {
		orderBy, err := c.compileOrder(q.order)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderBy)
	}

	if err := c.writeLimitOffset(&sb, q.limit, q.offset); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (c *compiler) compileInsert(q InsertQuery) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if q.table.Name() == "" {
		return "", ErrInvalidTable
	}
	if len(q.values) == 0 {
		return "", NewConstructionError("VALUES", "INSERT requires at least one column assignment")
	}

	columns := make([]string, len(q.values))
	placeholders := make([]string, len(q.values))
	for i, a := range q.values {
		columns[i] = c.quote(a.Column)
		s, err := c.compileExpr(a.Value)
		if err != nil {
			return "", err
		}
		placeholders[i] = s
	}

	return "INSERT INTO " + c.quote(q.table.Name()) + " (" + strings.Join(columns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")", nil
}

func (c *compiler) compileUpdate(q UpdateQuery) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if q.table.Name() == "" {
		return "", ErrInvalidTable
	}
	if len(q.values) == 0 {
		return "", NewConstructionError("SET", "UPDATE requires at least one column assignment")
	}

	assignments := make([]string, len(q.values))
	for i, a := range q.values {
		s, err := c.compileExpr(a.Value)
		if err != nil {
			return "", err
		}
		assignments[i] = c.quote(a.Column) + " = " + s
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(c.quote(q.table.Name()))
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(assignments, ", "))

	if len(q.where) > 0 {
		where, err := c.compileAndList(q.where)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	return sb.String(), nil
}

func (c *compiler) compileDelete(q DeleteQuery) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if q.table.Name() == "" {
		return "", ErrInvalidTable
	}

	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(c.quote(q.table.Name()))

	if len(q.where) > 0 {
		where, err := c.compileAndList(q.where)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	return sb.String(), nil
}

// compile is the shared dispatch every DialectCompiler.Compile
// implementation delegates to once it has constructed a fresh *compiler
// with its own quoting/placeholder/capability configuration.
func (c *compiler) compile(query interface{}) (Compiled, error) {
	var (
		sql string
		err error
	)
	switch q := query.(type) {
	case SelectQuery:
		sql, err = c.compileSelectBody(q)
	case InsertQuery:
		sql, err = c.compileInsert(q)
	case UpdateQuery:
		sql, err = c.compileUpdate(q)
	case DeleteQuery:
		sql, err = c.compileDelete(q)
	case SetQuery:
		sql, err = c.compileSetBody(q)
	default:
		err = c.unsupported("statement", fmt.Sprintf("unknown statement type %T", query))
	}
	if err != nil {
		return Compiled{}, err
	}
	return Compiled{SQL: sql, Params: c.params}, nil
}
