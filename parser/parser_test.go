package parser

import "testing"

func mustParse(t *testing.T, src string) *ListNode {
	t.Helper()
	n, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	root, ok := n.(*ListNode)
	if !ok {
		t.Fatalf("Parse(%q) root is %T, want *ListNode", src, n)
	}
	return root
}

func TestParseOperatorCall(t *testing.T) {
	root := mustParse(t, `(+ 1 2)`)
	items := root.Children().Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 top-level form, got %d", len(items))
	}
	op, ok := items[0].(*OperatorNode)
	if !ok {
		t.Fatalf("expected OperatorNode, got %T", items[0])
	}
	if op.Id() != "+" {
		t.Fatalf("expected operator id +, got %q", op.Id())
	}
	if op.Children().Len() != 2 {
		t.Fatalf("expected 2 arguments, got %d", op.Children().Len())
	}
}

func TestParseMultipleTopLevelForms(t *testing.T) {
	root := mustParse(t, `(+ 1 2) (- 3 4)`)
	if root.Children().Len() != 2 {
		t.Fatalf("expected synthetic outer list to wrap 2 forms, got %d", root.Children().Len())
	}
}

func TestParseIfPreparesHiddenChildren(t *testing.T) {
	root := mustParse(t, `IF(true 1 2)`)
	items := root.Children().Items()
	so, ok := items[0].(*SpecialOperatorNode)
	if !ok {
		t.Fatalf("expected SpecialOperatorNode, got %T", items[0])
	}
	if so.Id() != "IF" {
		t.Fatalf("expected IF, got %q", so.Id())
	}
	if so.Children().Len() != 1 {
		t.Fatalf("expected 1 public child (condition), got %d", so.Children().Len())
	}
	if so.Hidden.Len() != 2 {
		t.Fatalf("expected 2 hidden children (then, else), got %d", so.Hidden.Len())
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	root := mustParse(t, `IF(true 1)`)
	so := root.Children().Items()[0].(*SpecialOperatorNode)
	if so.Hidden.Len() != 1 {
		t.Fatalf("expected 1 hidden child (then only), got %d", so.Hidden.Len())
	}
}

func TestParseAssignRequiresIdentifierFirst(t *testing.T) {
	_, err := Parse(`=(1 2)`)
	if err == nil {
		t.Fatal("expected syntax error when =()'s first argument is not an identifier")
	}
}

func TestParseAssignMovesIdentifierToHidden(t *testing.T) {
	root := mustParse(t, `=(x 5)`)
	so := root.Children().Items()[0].(*SpecialOperatorNode)
	if so.Children().Len() != 1 {
		t.Fatalf("expected 1 public child (the expression), got %d", so.Children().Len())
	}
	if so.Hidden.Len() != 1 {
		t.Fatalf("expected 1 hidden child (the identifier), got %d", so.Hidden.Len())
	}
	if _, ok := so.Hidden.At(0).(*IdentifierNode); !ok {
		t.Fatalf("expected hidden child to be an identifier, got %T", so.Hidden.At(0))
	}
}

func TestParseIncDecIdentifierGoesHidden(t *testing.T) {
	root := mustParse(t, `++(x)`)
	so := root.Children().Items()[0].(*SpecialOperatorNode)
	if so.Children().Len() != 0 || so.Hidden.Len() != 1 {
		t.Fatalf("expected identifier operand hidden, got public=%d hidden=%d", so.Children().Len(), so.Hidden.Len())
	}
}

func TestParseIncDecExpressionStaysPublic(t *testing.T) {
	root := mustParse(t, `++((. obj field))`)
	so := root.Children().Items()[0].(*SpecialOperatorNode)
	if so.Children().Len() != 1 || so.Hidden.Len() != 0 {
		t.Fatalf("expected non-identifier operand public, got public=%d hidden=%d", so.Children().Len(), so.Hidden.Len())
	}
}

func TestParseWait(t *testing.T) {
	root := mustParse(t, `WAIT(100 (+ 1 2))`)
	so := root.Children().Items()[0].(*SpecialOperatorNode)
	if so.Children().Len() != 1 || so.Hidden.Len() != 1 {
		t.Fatalf("expected 1 public (ms) and 1 hidden (body), got public=%d hidden=%d", so.Children().Len(), so.Hidden.Len())
	}
}

func TestParseForRequiresDoAndCondition(t *testing.T) {
	_, err := Parse(`FOR({do 1})`)
	if err == nil {
		t.Fatal("expected error when FOR lacks a ? condition")
	}
}

func TestParseForPreparesHidden(t *testing.T) {
	root := mustParse(t, `FOR((? true) {do 1})`)
	so := root.Children().Items()[0].(*SpecialOperatorNode)
	if so.Children().Len() != 0 {
		t.Fatalf("expected no public children, got %d", so.Children().Len())
	}
	if so.Hidden.Len() != 2 {
		t.Fatalf("expected condition + do clause hidden, got %d", so.Hidden.Len())
	}
}

func TestParseForiExtractsFields(t *testing.T) {
	root := mustParse(t, `FORI({{ {from 0} {before 3} {idx i} }} (+ i 1))`)
	so := root.Children().Items()[0].(*SpecialOperatorNode)
	if so.Children().Len() != 2 {
		t.Fatalf("expected from+before public (no emit), got %d", so.Children().Len())
	}
	if so.Hidden.Len() != 2 {
		t.Fatalf("expected idx identifier + body hidden, got %d", so.Hidden.Len())
	}
	if _, ok := so.Hidden.At(0).(*IdentifierNode); !ok {
		t.Fatalf("expected idx to be an identifier, got %T", so.Hidden.At(0))
	}
}

func TestParseForiWithEmit(t *testing.T) {
	root := mustParse(t, `FORI({{ {from 0} {before 3} {idx i} {emit true} }} (+ i 1))`)
	so := root.Children().Items()[0].(*SpecialOperatorNode)
	if so.Children().Len() != 3 {
		t.Fatalf("expected from+before+emit public, got %d", so.Children().Len())
	}
}

func TestParseForiRejectsNonIdentifierIdx(t *testing.T) {
	_, err := Parse(`FORI({{ {from 0} {before 3} {idx 5} }} 1)`)
	if err == nil {
		t.Fatal("expected error when idx field is not an identifier")
	}
}

func TestParseFilterChaining(t *testing.T) {
	root := mustParse(t, `#(1 2)%(3 4)`)
	items := root.Children().Items()
	if len(items) != 1 {
		t.Fatalf("chained filter should collapse to a single top-level node, got %d", len(items))
	}
	f, ok := items[0].(*FilterNode)
	if !ok {
		t.Fatalf("expected FilterNode, got %T", items[0])
	}
	if f.Chained {
		t.Fatal("initial #( filter must not itself be marked chained")
	}
	if f.Next == nil {
		t.Fatal("expected chained %( filter to be linked via Next")
	}
	if !f.Next.Chained {
		t.Fatal("linked filter should record Chained=true")
	}
}

func TestParseObjectLiteralWithTags(t *testing.T) {
	root := mustParse(t, `{{ #tag1 #tag2 {a 1} {b 2} }}`)
	obj := root.Children().Items()[0].(*ObjectLiteralNode)
	if len(obj.Tags) != 2 || obj.Tags[0] != "tag1" || obj.Tags[1] != "tag2" {
		t.Fatalf("expected tags [tag1 tag2], got %v", obj.Tags)
	}
	if obj.Children().Len() != 2 {
		t.Fatalf("expected 2 key-value children, got %d", obj.Children().Len())
	}
	kv, ok := obj.Children().ByKey("a")
	if !ok {
		t.Fatal("expected to find key 'a' by key lookup")
	}
	if kv.Children().Len() != 1 {
		t.Fatalf("expected key 'a' to have 1 value child, got %d", kv.Children().Len())
	}
}

func TestParseFunctionLiteral(t *testing.T) {
	root := mustParse(t, `FN([x y] (+ x y))`)
	fn, ok := root.Children().Items()[0].(*FunctionNode)
	if !ok {
		t.Fatalf("expected FunctionNode, got %T", root.Children().Items()[0])
	}
	names := fn.ParamNames()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("expected params [x y], got %v", names)
	}
	if fn.Children().Len() != 1 {
		t.Fatalf("expected 1 body expression, got %d", fn.Children().Len())
	}
}

func TestParseUnterminatedOperatorIsFatal(t *testing.T) {
	if _, err := Parse(`(+ 1 2`); err == nil {
		t.Fatal("expected syntax error for unbalanced parenthesis at EOF")
	}
}

func TestParseIntAndFloatLiterals(t *testing.T) {
	root := mustParse(t, `[1 -2 3.5 -0.25 2e3]`)
	list := root.Children().Items()[0].(*ListNode)
	lits := list.Children().Items()
	want := []string{"1", "-2", "3.5", "-0.25", "2000"}
	for i, w := range want {
		lit := lits[i].(*LiteralNode)
		if lit.Value.String() != w {
			t.Errorf("element %d: got %q, want %q", i, lit.Value.String(), w)
		}
	}
}
