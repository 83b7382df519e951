package runner

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Memory is an in-process Runner backed by Go maps and slices. It is not
// a SQL engine: it interprets only the small subset of compiled shapes
// this module's own sqlite compiler emits (plain INSERT/SELECT/UPDATE/
// DELETE over a single table, ":pN" placeholders, AND-only equality
// WHERE clauses) strictly to round-trip test the hydration contract end
// to end. It never parses arbitrary SQL and is unsuitable for anything
// beyond tests and examples.
type Memory struct {
	mu     sync.Mutex
	tables map[string][]map[string]interface{}
	nextID map[string]int64
}

// NewMemory returns an empty Memory runner.
func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string][]map[string]interface{}),
		nextID: make(map[string]int64),
	}
}

var (
	insertRe = regexp.MustCompile(`(?is)^INSERT INTO "([^"]+)" \(([^)]*)\) VALUES \(([^)]*)\)$`)
	updateRe = regexp.MustCompile(`(?is)^UPDATE "([^"]+)" SET (.+?)(?: WHERE (.+))?$`)
	deleteRe = regexp.MustCompile(`(?is)^DELETE FROM "([^"]+)"(?: WHERE (.+))?$`)
	selectRe = regexp.MustCompile(`(?is)^SELECT (?:DISTINCT )?(.+?) FROM "([^"]+)"(?: WHERE (.+?))?(?: ORDER BY .+?)?(?: LIMIT (:p\d+))?(?: OFFSET (:p\d+))?$`)
)

// Exec runs an INSERT, UPDATE, or DELETE statement previously produced by
// this module's sqlite compiler.
func (m *Memory) Exec(ctx context.Context, sql string, params map[string]interface{}) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sql = strings.TrimSpace(sql)
	switch {
	case insertRe.MatchString(sql):
		return m.execInsert(sql, params)
	case updateRe.MatchString(sql):
		return m.execUpdate(sql, params)
	case deleteRe.MatchString(sql):
		return m.execDelete(sql, params)
	default:
		return 0, 0, fmt.Errorf("runner: memory engine cannot interpret statement: %s", sql)
	}
}

// Query runs a SELECT statement previously produced by this module's
// sqlite compiler, returning raw rows keyed by each projection's alias,
// or by its bare column name when it has none.
func (m *Memory) Query(ctx context.Context, sql string, params map[string]interface{}) ([]map[string]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sql = strings.TrimSpace(sql)
	match := selectRe.FindStringSubmatch(sql)
	if match == nil {
		return nil, fmt.Errorf("runner: memory engine cannot interpret statement: %s", sql)
	}
	columns := splitTopLevel(match[1])
	table := match[2]
	whereClause := match[3]
	limitPh := match[4]
	offsetPh := match[5]

	rows := m.tables[table]
	var filtered []map[string]interface{}
	for _, row := range rows {
		ok, err := matchesWhere(row, table, whereClause, params)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, row)
		}
	}

	if offsetPh != "" {
		n, err := intParam(params, offsetPh)
		if err != nil {
			return nil, err
		}
		if n < int64(len(filtered)) {
			filtered = filtered[n:]
		} else {
			filtered = nil
		}
	}
	if limitPh != "" {
		n, err := intParam(params, limitPh)
		if err != nil {
			return nil, err
		}
		if n < int64(len(filtered)) {
			filtered = filtered[:n]
		}
	}

	out := make([]map[string]interface{}, len(filtered))
	for i, row := range filtered {
		projected := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			key, name := projectionIdentity(col)
			projected[key] = row[name]
		}
		out[i] = projected
	}
	return out, nil
}

func (m *Memory) execInsert(sql string, params map[string]interface{}) (int64, int64, error) {
	match := insertRe.FindStringSubmatch(sql)
	table := match[1]
	columns := splitTopLevel(match[2])
	values := splitTopLevel(match[3])
	if len(columns) != len(values) {
		return 0, 0, fmt.Errorf("runner: column/value count mismatch in %s", sql)
	}

	row := make(map[string]interface{}, len(columns))
	for i, col := range columns {
		v, err := resolveValue(values[i], params)
		if err != nil {
			return 0, 0, err
		}
		row[unquote(col)] = v
	}

	m.nextID[table]++
	id := m.nextID[table]
	row["id"] = id
	m.tables[table] = append(m.tables[table], row)
	return 1, id, nil
}

func (m *Memory) execUpdate(sql string, params map[string]interface{}) (int64, int64, error) {
	match := updateRe.FindStringSubmatch(sql)
	table := match[1]
	setClause := match[2]
	whereClause := match[3]

	assignments := splitTopLevel(setClause)
	var affected int64
	for _, row := range m.tables[table] {
		ok, err := matchesWhere(row, table, whereClause, params)
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			continue
		}
		for _, a := range assignments {
			parts := strings.SplitN(a, "=", 2)
			if len(parts) != 2 {
				return 0, 0, fmt.Errorf("runner: malformed SET assignment %q", a)
			}
			v, err := resolveValue(strings.TrimSpace(parts[1]), params)
			if err != nil {
				return 0, 0, err
			}
			row[unquote(strings.TrimSpace(parts[0]))] = v
		}
		affected++
	}
	return affected, 0, nil
}

func (m *Memory) execDelete(sql string, params map[string]interface{}) (int64, int64, error) {
	match := deleteRe.FindStringSubmatch(sql)
	table := match[1]
	whereClause := match[2]

	var kept []map[string]interface{}
	var affected int64
	for _, row := range m.tables[table] {
		ok, err := matchesWhere(row, table, whereClause, params)
		if err != nil {
			return 0, 0, err
		}
		if ok {
			affected++
			continue
		}
		kept = append(kept, row)
	}
	m.tables[table] = kept
	return affected, 0, nil
}

// matchesWhere evaluates an AND-only list of "<col> = :pN" comparisons,
// the only WHERE shape this fake engine understands.
func matchesWhere(row map[string]interface{}, table, whereClause string, params map[string]interface{}) (bool, error) {
	whereClause = strings.TrimSpace(whereClause)
	if whereClause == "" {
		return true, nil
	}
	if whereClause == "1=0" {
		return false, nil
	}
	if whereClause == "1=1" {
		return true, nil
	}
	for _, cond := range strings.Split(whereClause, " AND ") {
		cond = strings.TrimSpace(cond)
		parts := strings.SplitN(cond, "=", 2)
		if len(parts) != 2 {
			return false, fmt.Errorf("runner: memory engine cannot interpret WHERE clause: %s", whereClause)
		}
		name := unquote(lastSegment(strings.TrimSpace(parts[0])))
		want, err := resolveValue(strings.TrimSpace(parts[1]), params)
		if err != nil {
			return false, err
		}
		if fmt.Sprint(row[name]) != fmt.Sprint(want) {
			return false, nil
		}
	}
	return true, nil
}

func resolveValue(token string, params map[string]interface{}) (interface{}, error) {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, ":") {
		v, ok := params[strings.TrimPrefix(token, ":")]
		if !ok {
			return nil, fmt.Errorf("runner: missing parameter %s", token)
		}
		return v, nil
	}
	return unquote(token), nil
}

func intParam(params map[string]interface{}, placeholder string) (int64, error) {
	v, err := resolveValue(placeholder, params)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("runner: expected integer parameter, got %T", v)
	}
}

// projectionIdentity returns the key raw rows are stored under for a
// projected column: the alias after " AS " if present, else the bare
// column name with any table qualifier and quoting stripped.
func projectionIdentity(projection string) (key, name string) {
	projection = strings.TrimSpace(projection)
	if idx := strings.LastIndex(strings.ToUpper(projection), " AS "); idx >= 0 {
		alias := unquote(strings.TrimSpace(projection[idx+4:]))
		return alias, unquote(lastSegment(projection[:idx]))
	}
	bare := unquote(lastSegment(projection))
	return bare, bare
}

func lastSegment(qualified string) string {
	parts := strings.Split(qualified, ".")
	return parts[len(parts)-1]
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return s
}

// splitTopLevel splits a comma list, ignoring commas nested inside
// parentheses — enough for the column/value lists this fake engine sees.
func splitTopLevel(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	last := strings.TrimSpace(s[start:])
	if last != "" {
		out = append(out, last)
	}
	return out
}
