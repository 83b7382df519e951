package sqlstratum

import "strings"

// Compile is the public compile entrypoint. query may be a bare statement
// value (SelectQuery, InsertQuery, UpdateQuery, DeleteQuery, SetQuery) or
// one of the dialect-bound wrapper types; dialect is one of "sqlite",
// "mysql" (case-insensitive), or "" to defer entirely to a bound query's
// own tag. A wrapped query may be passed with no explicit dialect, in
// which case the wrapper's tag wins.
func Compile(query interface{}, dialect string) (Compiled, error) {
	inner, tag, err := unwrap(query)
	if err != nil {
		return Compiled{}, err
	}

	resolved := dialect
	switch {
	case tag != "" && dialect != "" && !sameDialect(tag, dialect):
		return Compiled{}, NewDialectFeatureError(dialect, "dialect binding", "query bound to dialect '"+tag+"'")
	case tag != "":
		resolved = tag
	}

	if resolved == "" {
		resolved = "sqlite"
	}

	compiler, err := GetDialect(resolved)
	if err != nil {
		return Compiled{}, err
	}

	return compiler.Compile(inner)
}

func sameDialect(a, b string) bool {
	return strings.EqualFold(a, b)
}
