// Package parser implements Losp's tokenizer and AST builder: the
// character stream is scanned into tokens (lexer.go), then assembled by a
// recursive-descent builder (parser.go) into a tree of Node values.
package parser

import "github.com/chebwaplus/losp/value"

// NodeKind identifies which of the nine node variants a Node is.
type NodeKind int

const (
	KindOperator NodeKind = iota
	KindSpecialOperator
	KindFilter
	KindIdentifier
	KindLiteral
	KindKeyValue
	KindObjectLiteral
	KindList
	KindFunction
)

func (k NodeKind) String() string {
	switch k {
	case KindOperator:
		return "Operator"
	case KindSpecialOperator:
		return "SpecialOperator"
	case KindFilter:
		return "Filter"
	case KindIdentifier:
		return "Identifier"
	case KindLiteral:
		return "Literal"
	case KindKeyValue:
		return "KeyValue"
	case KindObjectLiteral:
		return "ObjectLiteral"
	case KindList:
		return "List"
	case KindFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// Node is implemented by every AST node kind. It embeds value.Node so that
// value.Lambda can reference body nodes without the value package
// importing parser (see value/node.go for why).
type Node interface {
	value.Node
	Kind() NodeKind
	SourceToken() *Token
	Children() *Children
}

// base is embedded by every concrete node type; it carries the attributes
// common to all nodes (source token, id/name, child collection).
type base struct {
	tok      *Token
	id       string
	children *Children
}

func (b *base) SourceToken() *Token  { return b.tok }
func (b *base) Children() *Children  { return b.children }

// Id returns the node's identifier-node name (operator id, filter id,
// key-value key), empty for node kinds that don't carry one.
func (b *base) Id() string { return b.id }

// OperatorNode is `(name args...)`.
type OperatorNode struct {
	base
}

func NewOperatorNode(tok *Token, id string, children *Children) *OperatorNode {
	return &OperatorNode{base{tok: tok, id: id, children: children}}
}
func (*OperatorNode) Kind() NodeKind   { return KindOperator }
func (*OperatorNode) NodeKind() string { return KindOperator.String() }

// SpecialOperatorNode is `Name(...)`: a prepared operator whose hidden
// children are never evaluated directly by the driving loop.
type SpecialOperatorNode struct {
	base
	Hidden *Children
}

func NewSpecialOperatorNode(tok *Token, id string, public, hidden *Children) *SpecialOperatorNode {
	return &SpecialOperatorNode{base{tok: tok, id: id, children: public}, hidden}
}
func (*SpecialOperatorNode) Kind() NodeKind   { return KindSpecialOperator }
func (*SpecialOperatorNode) NodeKind() string { return KindSpecialOperator.String() }

// FilterNode is `#(...)` / `%(...)`; Next links a chained filter.
type FilterNode struct {
	base
	Chained bool
	Next    *FilterNode
}

func NewFilterNode(tok *Token, id string, children *Children, chained bool) *FilterNode {
	return &FilterNode{base: base{tok: tok, id: id, children: children}, Chained: chained}
}
func (*FilterNode) Kind() NodeKind   { return KindFilter }
func (*FilterNode) NodeKind() string { return KindFilter.String() }

// IdentifierNode names a variable.
type IdentifierNode struct {
	base
	Name string
}

func NewIdentifierNode(tok *Token, name string) *IdentifierNode {
	return &IdentifierNode{base: base{tok: tok}, Name: name}
}
func (*IdentifierNode) Kind() NodeKind   { return KindIdentifier }
func (*IdentifierNode) NodeKind() string { return KindIdentifier.String() }

// LiteralNode stores a pre-parsed value produced by the tokenizer's
// literal classification.
type LiteralNode struct {
	base
	Value value.Value
}

func NewLiteralNode(tok *Token, v value.Value) *LiteralNode {
	return &LiteralNode{base: base{tok: tok}, Value: v}
}
func (*LiteralNode) Kind() NodeKind   { return KindLiteral }
func (*LiteralNode) NodeKind() string { return KindLiteral.String() }

// KeyValueNode is `{name expr...}`; Tags holds any leading #tag tokens.
type KeyValueNode struct {
	base
	Tags []string
}

func NewKeyValueNode(tok *Token, key string, children *Children, tags []string) *KeyValueNode {
	return &KeyValueNode{base: base{tok: tok, id: key, children: children}, Tags: tags}
}
func (*KeyValueNode) Kind() NodeKind   { return KindKeyValue }
func (*KeyValueNode) NodeKind() string { return KindKeyValue.String() }
func (n *KeyValueNode) Key() string    { return n.id }

// ObjectLiteralNode is `{{ ... }}`; it may contain only KeyValue children.
type ObjectLiteralNode struct {
	base
	Tags []string
}

func NewObjectLiteralNode(tok *Token, children *Children, tags []string) *ObjectLiteralNode {
	return &ObjectLiteralNode{base: base{tok: tok, children: children}, Tags: tags}
}
func (*ObjectLiteralNode) Kind() NodeKind   { return KindObjectLiteral }
func (*ObjectLiteralNode) NodeKind() string { return KindObjectLiteral.String() }

// ListNode is `[ ... ]`; it may contain no KeyValue children.
type ListNode struct {
	base
}

func NewListNode(tok *Token, children *Children) *ListNode {
	return &ListNode{base{tok: tok, children: children}}
}
func (*ListNode) Kind() NodeKind   { return KindList }
func (*ListNode) NodeKind() string { return KindList.String() }

// FunctionNode is `FN([params] body...)`.
type FunctionNode struct {
	base
	Params *ListNode // identifiers only
}

func NewFunctionNode(tok *Token, params *ListNode, body *Children) *FunctionNode {
	return &FunctionNode{base: base{tok: tok, children: body}, Params: params}
}
func (*FunctionNode) Kind() NodeKind   { return KindFunction }
func (*FunctionNode) NodeKind() string { return KindFunction.String() }

// ParamNames returns the function's parameter names in order.
func (n *FunctionNode) ParamNames() []string {
	if n.Params == nil || n.Params.Children() == nil {
		return nil
	}
	items := n.Params.Children().Items()
	names := make([]string, 0, len(items))
	for _, it := range items {
		if id, ok := it.(*IdentifierNode); ok {
			names = append(names, id.Name)
		}
	}
	return names
}
