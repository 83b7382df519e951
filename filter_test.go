package sqlstratum

import "testing"

func TestIn_ScalarBecomesSingleElementTuple(t *testing.T) {
	users := testUsersTable()
	p := In(users.C("id"), 1).(InPredicate)
	if len(p.Values) != 1 {
		t.Fatalf("len(Values) = %d, want 1", len(p.Values))
	}
	if p.Sub != nil {
		t.Fatalf("Sub = %v, want nil for a scalar value", p.Sub)
	}
}

func TestIn_SliceExpandsElementByElement(t *testing.T) {
	users := testUsersTable()
	p := In(users.C("id"), []int{1, 2, 3}).(InPredicate)
	if len(p.Values) != 3 {
		t.Fatalf("len(Values) = %d, want 3", len(p.Values))
	}
}

func TestIn_SelectQueryBecomesSubquery(t *testing.T) {
	users := testUsersTable()
	sub := SELECT(users.C("id")).FROM(users)
	p := In(users.C("id"), sub).(InPredicate)
	if p.Sub == nil {
		t.Fatal("Sub = nil, want the SelectQuery")
	}
	if len(p.Values) != 0 {
		t.Fatalf("len(Values) = %d, want 0 when Sub is set", len(p.Values))
	}
}

func TestNotIn_MirrorsInCoercion(t *testing.T) {
	users := testUsersTable()
	p := NotIn(users.C("id"), []int{1, 2}).(InPredicate)
	if !p.Negated {
		t.Fatal("Negated = false, want true")
	}
	if len(p.Values) != 2 {
		t.Fatalf("len(Values) = %d, want 2", len(p.Values))
	}
}

func TestIsTrue_BindsBooleanEvenOnIntegerColumn(t *testing.T) {
	users := testUsersTable()
	p := users.C("id").IsTrue().(BinaryPredicate)
	lit, ok := p.Right.(Literal)
	if !ok {
		t.Fatalf("Right = %T, want Literal", p.Right)
	}
	if lit.Value != true {
		t.Fatalf("Right.Value = %v, want true", lit.Value)
	}
}

func TestContains_WrapsPatternInPercent(t *testing.T) {
	users := testUsersTable()
	p := users.C("email").Contains("acme").(BinaryPredicate)
	lit := p.Right.(Literal)
	if lit.Value != "%acme%" {
		t.Fatalf("Right.Value = %v, want %%acme%%", lit.Value)
	}
}
