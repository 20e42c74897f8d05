package parser

import "fmt"

// PrepareFunc restructures a built Operator node into a SpecialOperator
// node, moving children between the public list (evaluated by the
// driving loop) and the hidden list (opaque to it). It returns a
// *SyntaxError if the operator's shape doesn't match what the special
// operator requires.
type PrepareFunc func(op *OperatorNode) (*SpecialOperatorNode, error)

var specialPrepareRegistry = map[string]PrepareFunc{
	"IF":   prepareIf,
	"FOR":  prepareFor,
	"FORI": prepareFori,
	"++":   prepareIncDec("++"),
	"--":   prepareIncDec("--"),
	"=":    prepareAssign,
	"WAIT": prepareWait,
}

// IsSpecialOperatorName reports whether name is a registered special
// operator: a built-in one, or a host-registered one (which must start
// with '$' and be at least two characters, per the host extension rule).
func IsSpecialOperatorName(name string) bool {
	_, ok := specialPrepareRegistry[name]
	return ok
}

// RegisterSpecialOperator lets a host install a brand-new special
// operator. Built-in special-operator names may not be overridden; the
// name must start with '$' and be at least two characters (mirrors
// register_operator's reserved-prefix rule for standard operators, but
// inverted: '$' marks a special operator as host-defined rather than
// reserving a prefix for the core).
func RegisterSpecialOperator(name string, prepare PrepareFunc) error {
	if len(name) < 2 || name[0] != '$' {
		return fmt.Errorf("host special operators must start with '$' and be at least two characters, got %q", name)
	}
	if _, exists := specialPrepareRegistry[name]; exists {
		return fmt.Errorf("special operator %q is already registered", name)
	}
	specialPrepareRegistry[name] = prepare
	return nil
}

// DefaultPrepare is a Prepare hook for host special operators that need no
// subtree restructuring: every child (key-value children included) stays
// public, hidden is empty.
func DefaultPrepare(op *OperatorNode) (*SpecialOperatorNode, error) {
	public := NewChildren(AdmitAny)
	for _, c := range op.Children().Items() {
		_ = public.Add(c)
	}
	return NewSpecialOperatorNode(op.SourceToken(), op.Id(), public, NewChildren(AdmitAll)), nil
}

func arityError(op *OperatorNode, want string) error {
	return newSyntaxError(op.SourceToken().Source, *op.SourceToken(),
		"%s requires %s, got %d", op.Id(), want, op.Children().Len())
}

func prepareIf(op *OperatorNode) (*SpecialOperatorNode, error) {
	items := op.Children().Items()
	if len(items) < 2 || len(items) > 3 {
		return nil, arityError(op, "2 or 3 arguments (cond then [else])")
	}
	public := NewChildren(AdmitAll)
	_ = public.Add(items[0])
	hidden := NewChildren(AdmitAll)
	_ = hidden.Add(items[1])
	if len(items) == 3 {
		_ = hidden.Add(items[2])
	}
	return NewSpecialOperatorNode(op.SourceToken(), "IF", public, hidden), nil
}

func prepareFor(op *OperatorNode) (*SpecialOperatorNode, error) {
	items := op.Children().Items()
	var doKV *KeyValueNode
	var cond Node
	for _, c := range items {
		if kv, ok := c.(*KeyValueNode); ok && kv.Key() == "do" {
			doKV = kv
		}
		if o, ok := c.(*OperatorNode); ok && o.Id() == "?" {
			cond = o
		}
	}
	if doKV == nil || cond == nil {
		return nil, arityError(op, "a `do` clause and a `?` condition")
	}
	hidden := NewChildren(AdmitAny)
	_ = hidden.Add(cond)
	_ = hidden.Add(doKV)
	return NewSpecialOperatorNode(op.SourceToken(), "FOR", NewChildren(AdmitAll), hidden), nil
}

func fieldValue(obj *ObjectLiteralNode, key string) (Node, error) {
	kv, ok := obj.Children().ByKey(key)
	if !ok {
		return nil, fmt.Errorf("FORI object literal is missing field %q", key)
	}
	if kv.Children().Len() != 1 {
		return nil, fmt.Errorf("FORI field %q must have exactly one value", key)
	}
	return kv.Children().At(0), nil
}

func prepareFori(op *OperatorNode) (*SpecialOperatorNode, error) {
	items := op.Children().Items()
	if len(items) < 2 {
		return nil, arityError(op, "an object literal and a body")
	}
	obj, ok := items[0].(*ObjectLiteralNode)
	if !ok {
		return nil, newSyntaxError(op.SourceToken().Source, *op.SourceToken(),
			"FORI's first argument must be an object literal")
	}
	from, err := fieldValue(obj, "from")
	if err != nil {
		return nil, newSyntaxError(op.SourceToken().Source, *op.SourceToken(), "%s", err.Error())
	}
	before, err := fieldValue(obj, "before")
	if err != nil {
		return nil, newSyntaxError(op.SourceToken().Source, *op.SourceToken(), "%s", err.Error())
	}
	idx, err := fieldValue(obj, "idx")
	if err != nil {
		return nil, newSyntaxError(op.SourceToken().Source, *op.SourceToken(), "%s", err.Error())
	}
	idxIdent, ok := idx.(*IdentifierNode)
	if !ok {
		return nil, newSyntaxError(op.SourceToken().Source, *op.SourceToken(), "FORI's idx field must be an identifier")
	}

	public := NewChildren(AdmitAll)
	_ = public.Add(from)
	_ = public.Add(before)
	if emit, err := fieldValue(obj, "emit"); err == nil {
		_ = public.Add(emit)
	}

	hidden := NewChildren(AdmitAll)
	_ = hidden.Add(idxIdent)
	_ = hidden.Add(items[1])

	return NewSpecialOperatorNode(op.SourceToken(), "FORI", public, hidden), nil
}

func prepareIncDec(name string) PrepareFunc {
	return func(op *OperatorNode) (*SpecialOperatorNode, error) {
		items := op.Children().Items()
		if len(items) != 1 {
			return nil, arityError(op, "exactly 1 argument")
		}
		if id, ok := items[0].(*IdentifierNode); ok {
			hidden := NewChildren(AdmitAll)
			_ = hidden.Add(id)
			return NewSpecialOperatorNode(op.SourceToken(), name, NewChildren(AdmitAll), hidden), nil
		}
		public := NewChildren(AdmitAll)
		_ = public.Add(items[0])
		return NewSpecialOperatorNode(op.SourceToken(), name, public, NewChildren(AdmitAll)), nil
	}
}

func prepareAssign(op *OperatorNode) (*SpecialOperatorNode, error) {
	items := op.Children().Items()
	if len(items) != 2 {
		return nil, arityError(op, "exactly 2 arguments (identifier, expression)")
	}
	id, ok := items[0].(*IdentifierNode)
	if !ok {
		return nil, newSyntaxError(op.SourceToken().Source, *op.SourceToken(),
			"=() first argument must be an identifier")
	}
	hidden := NewChildren(AdmitAll)
	_ = hidden.Add(id)
	public := NewChildren(AdmitAll)
	_ = public.Add(items[1])
	return NewSpecialOperatorNode(op.SourceToken(), "=", public, hidden), nil
}

func prepareWait(op *OperatorNode) (*SpecialOperatorNode, error) {
	items := op.Children().Items()
	if len(items) != 2 {
		return nil, arityError(op, "exactly 2 arguments (milliseconds, body)")
	}
	public := NewChildren(AdmitAll)
	_ = public.Add(items[0])
	hidden := NewChildren(AdmitAll)
	_ = hidden.Add(items[1])
	return NewSpecialOperatorNode(op.SourceToken(), "WAIT", public, hidden), nil
}
