package sqlstratum

import (
	"reflect"
	"testing"
)

func testUsersTable() Table {
	return NewTable("users",
		Col("id", reflect.TypeOf(int64(0))),
		Col("email", reflect.TypeOf("")),
		Col("active", reflect.TypeOf(false)),
	)
}

func TestTable_ColumnsPreserveDeclarationOrder(t *testing.T) {
	users := testUsersTable()
	cols := users.Columns()
	want := []string{"id", "email", "active"}
	for i, name := range want {
		if cols[i].Name() != name {
			t.Fatalf("Columns()[%d] = %q, want %q", i, cols[i].Name(), name)
		}
	}
}

func TestTable_ASDoesNotMutateReceiver(t *testing.T) {
	users := testUsersTable()
	aliased := users.AS("u")

	if users.Alias() != "" {
		t.Fatalf("original table alias = %q, want empty", users.Alias())
	}
	if aliased.Alias() != "u" {
		t.Fatalf("aliased table alias = %q, want \"u\"", aliased.Alias())
	}
	if users.C("id").table.ident() != "users" {
		t.Fatalf("original column ident = %q, want \"users\"", users.C("id").table.ident())
	}
	if aliased.C("id").table.ident() != "u" {
		t.Fatalf("aliased column ident = %q, want \"u\"", aliased.C("id").table.ident())
	}
}

func TestTable_CPanicsOnUnknownColumn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected C to panic on an undeclared column")
		}
	}()
	testUsersTable().C("does_not_exist")
}
