package sqlstratum

import (
	"fmt"
	"strings"
)

// SQLiteCompiler lowers the algebra into sqlite SQL: double-quoted
// identifiers, ":pN" named placeholders, the full §4.3 feature set, and
// the sqlite-only TOTAL/GROUP_CONCAT aggregates. It registers itself
// under the name "sqlite" on package init, generalizing the teacher's
// newSQLiteBuilder constructor into the registry entry spec.md §6 calls
// for in place of a switch in every Build*Query method.
type SQLiteCompiler struct{}

func init() {
	RegisterDialect("sqlite", SQLiteCompiler{})
}

func (SQLiteCompiler) Name() string { return "sqlite" }

func sqliteQuote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func sqlitePlaceholder(n int) string {
	return fmt.Sprintf(":p%d", n)
}

// Compile lowers query against the sqlite dialect.
func (d SQLiteCompiler) Compile(query interface{}) (Compiled, error) {
	c := newCompiler("sqlite", sqliteQuote, sqlitePlaceholder, capabilities{
		rightJoin:             false,
		fullJoin:              false,
		sqliteOnlyAggregates:  true,
		requireLimitForOffset: false,
	})
	return c.compile(query)
}
