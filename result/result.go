// Package result implements Losp's evaluation-result tagged variant: every
// node evaluation produces exactly one of Value, Error, Async or Push.
package result

import (
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// Kind identifies which of the four Result variants a Result is.
type Kind int

const (
	KindValue Kind = iota
	KindError
	KindAsync
	KindPush
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "Value"
	case KindError:
		return "Error"
	case KindAsync:
		return "Async"
	case KindPush:
		return "Push"
	default:
		return "Unknown"
	}
}

// Result is implemented by every result variant.
type Result interface {
	Kind() Kind
}

// Value is a normal evaluation result. Key is non-empty when the node that
// produced it carries an identifying name (e.g. a KeyValue child), letting
// a parent collect results by name as well as by position. Values holds
// the produced values: most nodes emit exactly one, but a few (e.g. a
// lambda call, RUN, EXPAND, or MUTE) may emit several or none.
type Value struct {
	Key    string
	Values []value.Value
}

// NewValue builds a single-valued, unkeyed Value result — the common case.
func NewValue(v value.Value) Value {
	return Value{Values: []value.Value{v}}
}

// NewKeyedValue builds a single-valued Value result carrying a key.
func NewKeyedValue(key string, v value.Value) Value {
	return Value{Key: key, Values: []value.Value{v}}
}

func (Value) Kind() Kind { return KindValue }

// First returns the first produced value, or value.Null{} if Values is
// empty (the stray-identifier edge case: a bare `,` node emits nothing).
func (v Value) First() value.Value {
	if len(v.Values) == 0 {
		return value.Null{}
	}
	return v.Values[0]
}

// Error is a fatal evaluation result: Source names the node or operator
// that raised it, Message is the human-readable description.
type Error struct {
	Source  string
	Message string
}

func NewError(source, message string) Error {
	return Error{Source: source, Message: message}
}

func (Error) Kind() Kind     { return KindError }
func (e Error) Error() string { return e.Source + ": " + e.Message }

// Async suspends evaluation on a proxy that some later event resolves.
// The driving loop parks the frame and resumes it from a callback
// registered with Proxy.OnComplete.
type Async struct {
	Proxy *AsyncProxy
}

func NewAsync(p *AsyncProxy) Async { return Async{Proxy: p} }

func (Async) Kind() Kind { return KindAsync }

// Push asks the driving loop to evaluate Nodes (in its own new frame) and
// feed their collected ChildResults back into OnComplete, whose return
// value becomes this frame's result. This is how special operators like
// IF and FOR direct evaluation of their hidden children without
// themselves recursing through the evaluator, and how a lambda call
// evaluates its body in a fresh scope without Go call-stack recursion.
// Scope is nil for Pushes that stay in the enclosing frame's scope (FOR's
// condition, DBLPUSH); a lambda call sets it to the fresh call scope, and
// IF's branches and FOR's body set it to the scope they run in.
type Push struct {
	Nodes      []value.Node
	Scope      *scope.Context
	OnComplete func(*ChildResults) Result
}

func NewPush(nodes []value.Node, onComplete func(*ChildResults) Result) Push {
	return Push{Nodes: nodes, OnComplete: onComplete}
}

func (Push) Kind() Kind { return KindPush }
