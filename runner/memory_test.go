package runner_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/aognio/sqlstratum"
	"github.com/aognio/sqlstratum/runner"
)

func testUsersTable() sqlstratum.Table {
	return sqlstratum.NewTable("users",
		sqlstratum.Col("id", reflect.TypeOf(int64(0))),
		sqlstratum.Col("email", reflect.TypeOf("")),
		sqlstratum.Col("active", reflect.TypeOf(false)),
	)
}

func TestMemory_InsertThenSelectRoundTrips(t *testing.T) {
	ctx := context.Background()
	mem := runner.NewMemory()
	users := testUsersTable()

	insert := sqlstratum.INSERT(users).VALUES(
		sqlstratum.Assign("email", "a@b.com"),
		sqlstratum.Assign("active", true),
	)
	compiled, err := sqlstratum.Compile(insert, "sqlite")
	if err != nil {
		t.Fatalf("Compile(insert) error = %v", err)
	}
	affected, lastID, err := mem.Exec(ctx, compiled.SQL, compiled.Params)
	if err != nil {
		t.Fatalf("Exec(insert) error = %v", err)
	}
	if affected != 1 || lastID == 0 {
		t.Fatalf("Exec(insert) = (%d, %d), want (1, nonzero)", affected, lastID)
	}

	sel := sqlstratum.SELECT(users.C("email")).FROM(users).WHERE(users.C("email").Eq("a@b.com"))
	compiled, err = sqlstratum.Compile(sel, "sqlite")
	if err != nil {
		t.Fatalf("Compile(select) error = %v", err)
	}
	rows, err := mem.Query(ctx, compiled.SQL, compiled.Params)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(rows) != 1 || rows[0]["email"] != "a@b.com" {
		t.Fatalf("rows = %v, want one row with email a@b.com", rows)
	}
}

func TestMemory_UpdateThenDelete(t *testing.T) {
	ctx := context.Background()
	mem := runner.NewMemory()
	users := testUsersTable()

	insert := sqlstratum.INSERT(users).VALUES(sqlstratum.Assign("email", "a@b.com"), sqlstratum.Assign("active", false))
	compiled, _ := sqlstratum.Compile(insert, "sqlite")
	if _, _, err := mem.Exec(ctx, compiled.SQL, compiled.Params); err != nil {
		t.Fatalf("Exec(insert) error = %v", err)
	}

	update := sqlstratum.UPDATE(users).SET(sqlstratum.Assign("active", true)).WHERE(users.C("email").Eq("a@b.com"))
	compiled, _ = sqlstratum.Compile(update, "sqlite")
	affected, _, err := mem.Exec(ctx, compiled.SQL, compiled.Params)
	if err != nil {
		t.Fatalf("Exec(update) error = %v", err)
	}
	if affected != 1 {
		t.Fatalf("Exec(update) affected = %d, want 1", affected)
	}

	del := sqlstratum.DELETE(users).WHERE(users.C("email").Eq("a@b.com"))
	compiled, _ = sqlstratum.Compile(del, "sqlite")
	affected, _, err = mem.Exec(ctx, compiled.SQL, compiled.Params)
	if err != nil {
		t.Fatalf("Exec(delete) error = %v", err)
	}
	if affected != 1 {
		t.Fatalf("Exec(delete) affected = %d, want 1", affected)
	}

	sel := sqlstratum.SELECT(users.C("email")).FROM(users)
	compiled, _ = sqlstratum.Compile(sel, "sqlite")
	rows, err := mem.Query(ctx, compiled.SQL, compiled.Params)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %v, want none left after delete", rows)
	}
}

func TestTx_CommitAutocommitsOnlyAtDepthZero(t *testing.T) {
	var tx runner.Tx
	tx.Begin()
	tx.Begin()

	autocommit, err := tx.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if autocommit {
		t.Fatal("autocommit = true at depth 1, want false")
	}

	autocommit, err = tx.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if !autocommit {
		t.Fatal("autocommit = false at depth 0, want true")
	}
}

func TestTx_RollbackAtAnyDepthMarksAborted(t *testing.T) {
	var tx runner.Tx
	tx.Begin()
	tx.Begin()

	if _, err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if !tx.Aborted() {
		t.Fatal("Aborted() = false after a nested rollback, want true")
	}
}

func TestTx_CommitWithoutBeginFails(t *testing.T) {
	var tx runner.Tx
	if _, err := tx.Commit(); err != runner.ErrNoOpenTransaction {
		t.Fatalf("Commit() error = %v, want ErrNoOpenTransaction", err)
	}
}
