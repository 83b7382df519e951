package sqlstratum

import (
	"sort"
	"strings"
	"sync"
)

var (
	dialectMu sync.RWMutex
	dialects  = make(map[string]DialectCompiler)
)

// RegisterDialect adds c to the runtime registry under name, lower-cased.
// sqlite and mysql self-register this way on package init; application
// code may call it to extend the registry with its own compiler.
func RegisterDialect(name string, c DialectCompiler) {
	dialectMu.Lock()
	defer dialectMu.Unlock()
	dialects[strings.ToLower(name)] = c
}

// GetDialect looks up a compiler by name, case-insensitively. An unknown
// name yields the same structured diagnostic Compile returns.
func GetDialect(name string) (DialectCompiler, error) {
	dialectMu.RLock()
	c, ok := dialects[strings.ToLower(name)]
	dialectMu.RUnlock()
	if !ok {
		return nil, NewDialectFeatureError(name, "dialect", "Supported dialects: "+strings.Join(ListDialects(), ", "))
	}
	return c, nil
}

// ListDialects returns every registered dialect name, sorted
// lexicographically.
func ListDialects() []string {
	dialectMu.RLock()
	defer dialectMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
