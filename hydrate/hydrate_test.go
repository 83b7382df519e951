package hydrate_test

import (
	"reflect"
	"testing"

	"github.com/aognio/sqlstratum"
	"github.com/aognio/sqlstratum/hydrate"
)

func testUsersTable() sqlstratum.Table {
	return sqlstratum.NewTable("users",
		sqlstratum.Col("id", reflect.TypeOf(int64(0))),
		sqlstratum.Col("email", reflect.TypeOf("")),
	)
}

func TestProjectionKeys_PrefersAliasOverColumnName(t *testing.T) {
	users := testUsersTable()
	keys, err := hydrate.ProjectionKeys([]sqlstratum.Expression{
		users.C("id").AS("user_id"),
		users.C("email"),
	})
	if err != nil {
		t.Fatalf("ProjectionKeys() error = %v", err)
	}
	want := []string{"user_id", "email"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestProjectionKeys_RejectsBareAggregate(t *testing.T) {
	users := testUsersTable()
	_, err := hydrate.ProjectionKeys([]sqlstratum.Expression{sqlstratum.COUNT(users.C("id"))})
	if err == nil {
		t.Fatal("expected an error for an un-aliased aggregate projection")
	}
}

func TestProjectionKeys_RejectsDuplicateKeys(t *testing.T) {
	users := testUsersTable()
	_, err := hydrate.ProjectionKeys([]sqlstratum.Expression{
		users.C("id"),
		users.C("id").AS("id"),
	})
	if err == nil {
		t.Fatal("expected an error for a duplicate projection key")
	}
}

func TestRows_NilTargetPassesThrough(t *testing.T) {
	users := testUsersTable()
	rows := []map[string]interface{}{{"id": int64(1)}}
	out, err := hydrate.Rows(rows, []sqlstratum.Expression{users.C("id")}, nil)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if out[0].(map[string]interface{})["id"] != int64(1) {
		t.Fatalf("out[0] = %v, want the row passed through unchanged", out[0])
	}
}

type userRecord struct {
	ID    int64  `db:"id"`
	Email string `db:"email"`
}

func TestRows_StructTargetMatchesByDBTag(t *testing.T) {
	users := testUsersTable()
	rows := []map[string]interface{}{{"id": int64(7), "email": "a@b.com"}}

	out, err := hydrate.Rows(rows, []sqlstratum.Expression{users.C("id"), users.C("email")}, hydrate.TypeOf[userRecord]())
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	rec := out[0].(userRecord)
	if rec.ID != 7 || rec.Email != "a@b.com" {
		t.Fatalf("rec = %+v, want {ID:7 Email:a@b.com}", rec)
	}
}

func TestRows_CallableTargetInvokedPerRow(t *testing.T) {
	users := testUsersTable()
	rows := []map[string]interface{}{{"id": int64(1)}, {"id": int64(2)}}

	var seen []interface{}
	target := func(row map[string]interface{}) (interface{}, error) {
		seen = append(seen, row["id"])
		return row["id"], nil
	}

	out, err := hydrate.Rows(rows, []sqlstratum.Expression{users.C("id")}, target)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(out) != 2 || len(seen) != 2 {
		t.Fatalf("out = %v, seen = %v, want 2 invocations", out, seen)
	}
}
