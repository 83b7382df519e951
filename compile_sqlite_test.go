package sqlstratum

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompile_SQLite_SimpleSelectWhere(t *testing.T) {
	users := testUsersTable()
	q := SELECT(users.C("id"), users.C("email")).FROM(users).WHERE(users.C("id").Eq(1))

	got, err := Compile(q, "sqlite")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := Compiled{
		SQL:    `SELECT "users"."id", "users"."email" FROM "users" WHERE "users"."id" = :p0`,
		Params: map[string]interface{}{"p0": 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_SQLite_InsertOrdersColumnsAsGiven(t *testing.T) {
	users := testUsersTable()
	q := INSERT(users).VALUES(
		Assign("email", "a@b.com"),
		Assign("full_name", "A"),
		Assign("active", 1),
	)

	got, err := Compile(q, "sqlite")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := Compiled{
		SQL: `INSERT INTO "users" ("email", "full_name", "active") VALUES (:p0, :p1, :p2)`,
		Params: map[string]interface{}{
			"p0": "a@b.com",
			"p1": "A",
			"p2": 1,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_SQLite_EmptyInLowersToFalse(t *testing.T) {
	users := testUsersTable()
	q := SELECT(users.C("id")).FROM(users).WHERE(users.C("id").In([]int{}))

	got, err := Compile(q, "sqlite")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.HasSuffix(got.SQL, "WHERE 1=0") {
		t.Fatalf("SQL = %q, want it to end with WHERE 1=0", got.SQL)
	}
	if len(got.Params) != 0 {
		t.Fatalf("Params = %v, want empty", got.Params)
	}
}

func TestCompile_SQLite_EmptyNotInLowersToTrue(t *testing.T) {
	users := testUsersTable()
	q := SELECT(users.C("id")).FROM(users).WHERE(users.C("id").NotIn([]int{}))

	got, err := Compile(q, "sqlite")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.HasSuffix(got.SQL, "WHERE 1=1") {
		t.Fatalf("SQL = %q, want it to end with WHERE 1=1", got.SQL)
	}
}

func TestCompile_SQLite_PendingOrderByFailsUntilResolved(t *testing.T) {
	users := testUsersTable()
	pending := SELECT(users.C("id")).FROM(users).ORDER_BY(users.C("id"))

	if _, err := Compile(pending, "sqlite"); err == nil {
		t.Fatal("expected a compile error for an unresolved ORDER_BY direction")
	} else if !strings.Contains(err.Error(), "ORDER_BY requires an explicit direction") {
		t.Fatalf("error = %v, want it to mention the missing direction", err)
	}

	resolved := pending.ASC()
	got, err := Compile(resolved, "sqlite")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.HasSuffix(got.SQL, `ORDER BY "users"."id" ASC`) {
		t.Fatalf("SQL = %q, want it to end with the resolved ORDER BY", got.SQL)
	}
}

func TestCompile_SQLite_RejectsRightAndFullJoin(t *testing.T) {
	users, orders := testUsersTable(), testOrdersTable()

	right := SELECT(users.C("id")).FROM(users).RIGHT_JOIN(orders, orders.C("user_id").Eq(users.C("id")))
	if _, err := Compile(right, "sqlite"); !IsUnsupportedFeature(err) {
		t.Fatalf("RIGHT JOIN error = %v, want an UnsupportedDialectFeature error", err)
	}

	full := SELECT(users.C("id")).FROM(users).FULL_JOIN(orders, orders.C("user_id").Eq(users.C("id")))
	if _, err := Compile(full, "sqlite"); !IsUnsupportedFeature(err) {
		t.Fatalf("FULL JOIN error = %v, want an UnsupportedDialectFeature error", err)
	}
}

func TestCompile_SQLite_SupportsSQLiteOnlyAggregates(t *testing.T) {
	users := testUsersTable()
	q := SELECT(TOTAL(users.C("id")).AS("total_id")).FROM(users)

	if _, err := Compile(q, "sqlite"); err != nil {
		t.Fatalf("Compile() error = %v, want TOTAL to be supported on sqlite", err)
	}
}

func TestCompile_Determinism(t *testing.T) {
	users := testUsersTable()
	q := SELECT(users.C("id")).FROM(users).WHERE(users.C("active").IsTrue())

	first, err := Compile(q, "sqlite")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	second, err := Compile(q, "sqlite")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated Compile() calls diverged (-first +second):\n%s", diff)
	}
}

func TestCompile_ConcurrentCompilesOfSharedQueryAgree(t *testing.T) {
	users := testUsersTable()
	q := SELECT(users.C("id")).FROM(users).WHERE(users.C("active").IsTrue())

	const n = 32
	results := make([]Compiled, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			results[i], errs[i] = Compile(q, "sqlite")
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Compile() [%d] error = %v", i, err)
		}
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Fatalf("goroutine %d diverged from goroutine 0 (-want +got):\n%s", i, diff)
		}
	}
}

func TestCompile_ParameterCoverage(t *testing.T) {
	users := testUsersTable()
	q := SELECT(users.C("id")).FROM(users).
		WHERE(users.C("id").Between(1, 10)).
		LIMIT(5).OFFSET(2)

	got, err := Compile(q, "sqlite")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	for name := range got.Params {
		if !strings.Contains(got.SQL, ":"+name) {
			t.Fatalf("param %q never appears in SQL %q", name, got.SQL)
		}
	}
	wantNames := []string{"p0", "p1", "p2", "p3"}
	for _, name := range wantNames {
		if _, ok := got.Params[name]; !ok {
			t.Fatalf("Params missing %q: %v", name, got.Params)
		}
	}
}

func TestSelectQuery_Immutability(t *testing.T) {
	users := testUsersTable()
	base := SELECT(users.C("id")).FROM(users)
	withWhere := base.WHERE(users.C("id").Eq(1))

	if len(base.Where()) != 0 {
		t.Fatalf("base.Where() = %v, want empty after deriving withWhere", base.Where())
	}
	if len(withWhere.Where()) != 1 {
		t.Fatalf("withWhere.Where() = %v, want one predicate", withWhere.Where())
	}
}

func testOrdersTable() Table {
	return NewTable("orders",
		Col("id", testUsersTable().C("id").Type()),
		Col("user_id", testUsersTable().C("id").Type()),
	)
}
