package sqlstratum

import "reflect"

// tableRef is the lightweight identity a Column carries back to its
// owning table: a name and an optional alias, never a pointer to the
// Table itself. This keeps the table/column graph acyclic from the
// ownership standpoint (spec.md §9) — a Table owns its Columns, and a
// Column only ever points back at a value, not at the Table that holds it.
type tableRef struct {
	name  string
	alias string
}

// ident returns the identifier a compiler should qualify columns with:
// the alias when present, otherwise the table name.
func (t tableRef) ident() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// ColumnDef declares one column when building a Table with NewTable.
type ColumnDef struct {
	Name string
	Type reflect.Type
}

// Col declares a typed column for use with NewTable. typ is the Go type
// values of this column are expected to take on the application side
// (e.g. reflect.TypeOf(int64(0))); it is carried for documentation and
// exposed through Column.Type, and neither the compilers nor the hydrate
// package interpret it.
func Col(name string, typ reflect.Type) ColumnDef {
	return ColumnDef{Name: name, Type: typ}
}

// Table represents a named table with a fixed, ordered set of typed
// columns. Tables are immutable after construction: AS returns a new
// Table whose columns are rebound to the new alias, leaving the receiver
// untouched.
type Table struct {
	name    string
	alias   string
	columns map[string]Column
	order   []string
}

// NewTable declares a table with the given name and columns.
func NewTable(name string, defs ...ColumnDef) Table {
	t := Table{
		name:    name,
		columns: make(map[string]Column, len(defs)),
		order:   make([]string, 0, len(defs)),
	}
	ref := tableRef{name: name}
	for _, d := range defs {
		t.columns[d.Name] = Column{name: d.Name, typ: d.Type, table: ref}
		t.order = append(t.order, d.Name)
	}
	return t
}

func (t Table) sourceNode() {}

// Name returns the table's bare name, ignoring any alias.
func (t Table) Name() string { return t.name }

// Alias returns the table's alias, or "" if it has none.
func (t Table) Alias() string { return t.alias }

// C looks up a declared column by name. It panics if the column was never
// declared on this table — a programming error, not a data error, so it
// is not reported through the construction-error channel.
func (t Table) C(name string) Column {
	c, ok := t.columns[name]
	if !ok {
		panic("sqlstratum: table \"" + t.name + "\" has no column \"" + name + "\"")
	}
	return c
}

// Columns returns the table's columns in declaration order.
func (t Table) Columns() []Column {
	cols := make([]Column, len(t.order))
	for i, name := range t.order {
		cols[i] = t.columns[name]
	}
	return cols
}

// AS returns a new Table bound to alias, with every column rebound to
// point at the aliased identity. The receiver is never mutated.
func (t Table) AS(alias string) Table {
	ref := tableRef{name: t.name, alias: alias}
	nt := Table{
		name:    t.name,
		alias:   alias,
		columns: make(map[string]Column, len(t.columns)),
		order:   append([]string(nil), t.order...),
	}
	for _, name := range t.order {
		old := t.columns[name]
		nt.columns[name] = Column{name: old.name, typ: old.typ, table: ref}
	}
	return nt
}
