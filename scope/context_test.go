package scope

import (
	"testing"

	"github.com/chebwaplus/losp/value"
)

func TestGetWalksToParent(t *testing.T) {
	root := New()
	root.Define("x", value.NewInt(1))
	child := NewChild(root)

	got, ok := child.Get("x")
	if !ok || got.(value.Int) != 1 {
		t.Fatalf("expected child to see parent binding x=1, got %v, %v", got, ok)
	}
	if _, ok := root.Get("missing"); ok {
		t.Fatal("root should not find a name that was never defined")
	}
}

func TestAssignWritesInnermostHolder(t *testing.T) {
	root := New()
	root.Define("x", value.NewInt(1))
	child := NewChild(root)

	child.Assign("x", value.NewInt(2))
	if v, _ := root.Get("x"); v.(value.Int) != 2 {
		t.Fatalf("Assign should write into the scope that already holds x, got %v", v)
	}
	if _, ok := child.vars["x"]; ok {
		t.Fatal("child scope should not have gained its own copy of x")
	}
}

func TestAssignDefinesInCurrentFrameWhenUnbound(t *testing.T) {
	root := New()
	child := NewChild(root)

	child.Assign("y", value.NewInt(5))
	if _, ok := root.Get("y"); ok {
		t.Fatal("assigning an unbound name must not leak into the parent scope")
	}
	if v, ok := child.Get("y"); !ok || v.(value.Int) != 5 {
		t.Fatal("assigning an unbound name must define it in the current frame")
	}
}

func TestLambdaScopeLexicality(t *testing.T) {
	// A variable assigned inside a lambda body is invisible to the caller
	// after the call returns: since calls create a fresh child scope,
	// bindings made there never touch the caller's scope unless they were
	// already defined there.
	caller := New()
	lambdaScope := NewChild(caller)
	lambdaScope.Define("local", value.NewInt(42))

	if _, ok := caller.Get("local"); ok {
		t.Fatal("a binding local to the callee must not be visible to the caller")
	}
}
