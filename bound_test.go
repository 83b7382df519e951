package sqlstratum

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWithDialect_CompilesEquivalentlyToExplicitDialect(t *testing.T) {
	users := testUsersTable()
	q := SELECT(users.C("id")).FROM(users).WHERE(users.C("id").Eq(1))

	bound, err := WithDialect(q, "sqlite")
	if err != nil {
		t.Fatalf("WithDialect() error = %v", err)
	}

	boundResult, err := Compile(bound, "")
	if err != nil {
		t.Fatalf("Compile(bound) error = %v", err)
	}
	explicitResult, err := Compile(q, "sqlite")
	if err != nil {
		t.Fatalf("Compile(explicit) error = %v", err)
	}

	if diff := cmp.Diff(explicitResult, boundResult); diff != "" {
		t.Fatalf("bound vs explicit compile mismatch (-explicit +bound):\n%s", diff)
	}
}

func TestWithDialect_ChainingPreservesBinding(t *testing.T) {
	users := testUsersTable()
	bound, err := WithDialect(SELECT(users.C("id")).FROM(users), "mysql")
	if err != nil {
		t.Fatalf("WithDialect() error = %v", err)
	}

	chained := bound.(BoundSelect).WHERE(users.C("id").Eq(1)).LIMIT(10)
	if chained.Dialect != "mysql" {
		t.Fatalf("Dialect = %q, want it preserved across chaining", chained.Dialect)
	}

	got, err := Compile(chained, "")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got.SQL == "" {
		t.Fatal("SQL is empty")
	}
}

func TestWithDialect_ConflictingExplicitDialectFails(t *testing.T) {
	users := testUsersTable()
	bound, _ := WithDialect(SELECT(users.C("id")).FROM(users), "sqlite")

	_, err := Compile(bound, "mysql")
	if !IsUnsupportedFeature(err) {
		t.Fatalf("error = %v, want an UnsupportedDialectFeature conflict error", err)
	}
}

func TestWithDialect_ConflictingRebindFails(t *testing.T) {
	users := testUsersTable()
	bound, _ := WithDialect(SELECT(users.C("id")).FROM(users), "sqlite")

	_, err := WithDialect(bound, "mysql")
	if !IsUnsupportedFeature(err) {
		t.Fatalf("error = %v, want a conflicting nested dialect bindings error", err)
	}
}
