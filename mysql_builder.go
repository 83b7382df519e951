package sqlstratum

import (
	"fmt"
	"strings"
)

// MySQLCompiler lowers the algebra into mysql SQL: backtick-quoted
// identifiers, "%(pN)s" named placeholders, RIGHT JOIN but not FULL JOIN,
// no TOTAL/GROUP_CONCAT, and a hard requirement that OFFSET always be
// paired with LIMIT. It registers itself under the name "mysql" on
// package init.
type MySQLCompiler struct{}

func init() {
	RegisterDialect("mysql", MySQLCompiler{})
}

func (MySQLCompiler) Name() string { return "mysql" }

func mysqlQuote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func mysqlPlaceholder(n int) string {
	return fmt.Sprintf("%%(p%d)s", n)
}

// Compile lowers query against the mysql dialect.
func (d MySQLCompiler) Compile(query interface{}) (Compiled, error) {
	c := newCompiler("mysql", mysqlQuote, mysqlPlaceholder, capabilities{
		rightJoin:             true,
		fullJoin:              false,
		sqliteOnlyAggregates:  false,
		requireLimitForOffset: true,
	})
	return c.compile(query)
}
