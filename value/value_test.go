package value

import "testing"

func TestValueEquality(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"int-int-equal", NewInt(5), NewInt(5), true},
		{"int-int-diff", NewInt(5), NewInt(6), false},
		{"int-float-never-match", NewInt(5), NewFloat(5), false},
		{"float-float-equal", NewFloat(1.5), NewFloat(1.5), true},
		{"bool-bool", NewBool(true), NewBool(true), true},
		{"string-string", NewString("hi"), NewString("hi"), true},
		{"null-null", Null{}, Null{}, true},
		{"null-int", Null{}, NewInt(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.equal)
			}
		})
	}
}

func TestListEqualityAndReference(t *testing.T) {
	l1 := NewList([]Value{NewInt(1), NewInt(2)})
	l2 := NewList([]Value{NewInt(1), NewInt(2)})
	if !l1.Equal(l2) {
		t.Fatal("structurally equal lists should be Equal")
	}

	// Assignment shares the pointer (reference semantics).
	alias := l1
	alias.Elements[0] = NewInt(99)
	if l1.Elements[0].(Int) != 99 {
		t.Fatal("list assignment should share the underlying value, not copy it")
	}
}

func TestTruthinessLaws(t *testing.T) {
	if !IsTruthy(NewBool(true)) {
		t.Fatal("true must be truthy")
	}
	if IsTruthy(NewInt(0)) {
		t.Fatal("0 must not be truthy")
	}
	if IsTruthy(NewString("")) {
		t.Fatal(`"" must not be truthy`)
	}
	list := NewList([]Value{NewInt(1), NewInt(2)})
	if !IsTruthy(list) {
		t.Fatal("list of truthy elements must be truthy")
	}
	list2 := NewList([]Value{NewInt(1), NewInt(0)})
	if IsTruthy(list2) {
		t.Fatal("list containing a falsy element must not be truthy")
	}
	if IsStrictTrue(NewInt(1)) {
		t.Fatal("strict truth only accepts bool true or lists thereof")
	}
	if !IsStrictTrue(NewBool(true)) {
		t.Fatal("bool true must be strictly true")
	}
}

func TestObjectInsertionOrderAndTryClear(t *testing.T) {
	obj := NewObject()
	obj.Set("b", NewInt(2))
	obj.Set("a", NewInt(1))
	keys := obj.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("expected insertion order [b a], got %v", keys)
	}
	if !obj.TryClear("b") {
		t.Fatal("TryClear on existing key should succeed")
	}
	if obj.TryClear("b") {
		t.Fatal("TryClear on missing key should fail")
	}
	if got := obj.Keys(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected [a] after clearing b, got %v", got)
	}
}
