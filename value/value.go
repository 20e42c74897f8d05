// Package value implements Losp's tagged-variant value model: Null, Int,
// Float, Bool, String, List, Lambda, Scriptable and Extrinsic.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindList
	KindLambda
	KindScriptable
	KindExtrinsic
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindLambda:
		return "lambda"
	case KindScriptable:
		return "object"
	case KindExtrinsic:
		return "extrinsic"
	default:
		return "unknown"
	}
}

// Value is implemented by every variant of the tagged-variant value model.
type Value interface {
	Kind() Kind
	String() string      // REPL-style literal representation
	Equal(other Value) bool
}

// Null is the single null value. Null matches type only with another Null.
type Null struct{}

func (Null) Kind() Kind          { return KindNull }
func (Null) String() string      { return "null" }
func (Null) Equal(o Value) bool  { _, ok := o.(Null); return ok }

// Int is a 32-bit signed integer value.
type Int int32

func NewInt(v int32) Int { return Int(v) }

func (v Int) Kind() Kind     { return KindInt }
func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Int) Equal(o Value) bool {
	ov, ok := o.(Int)
	return ok && ov == v
}

// Float is a 32-bit floating point value.
type Float float32

func NewFloat(v float32) Float { return Float(v) }

func (v Float) Kind() Kind { return KindFloat }
func (v Float) String() string {
	f := float64(v)
	if math.IsInf(f, 1) {
		return "+inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 32)
}
func (v Float) Equal(o Value) bool {
	ov, ok := o.(Float)
	return ok && ov == v
}

// Bool is a boolean value.
type Bool bool

func NewBool(v bool) Bool { return Bool(v) }

func (v Bool) Kind() Kind     { return KindBool }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }
func (v Bool) Equal(o Value) bool {
	ov, ok := o.(Bool)
	return ok && ov == v
}

// String is a text value.
type String string

func NewString(v string) String { return String(v) }

func (v String) Kind() Kind     { return KindString }
func (v String) String() string { return string(v) }
func (v String) Equal(o Value) bool {
	ov, ok := o.(String)
	return ok && ov == v
}

// List is a reference-typed sequence of values: assigning a List copies
// the pointer, not the backing slice, so two bindings can observe the
// same mutation (mirrors the spec's reference-identity rule for lists).
type List struct {
	Elements []Value
}

func NewList(elems []Value) *List { return &List{Elements: elems} }

func (v *List) Kind() Kind { return KindList }
func (v *List) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
func (v *List) Equal(o Value) bool {
	ov, ok := o.(*List)
	if !ok || len(ov.Elements) != len(v.Elements) {
		return false
	}
	for i := range v.Elements {
		if !v.Elements[i].Equal(ov.Elements[i]) {
			return false
		}
	}
	return true
}

// Extrinsic wraps a host value opaque to the interpreter core. Only
// host-registered operators inspect Data; the core never does.
type Extrinsic struct {
	TypeName string
	Data     any
}

func NewExtrinsic(typeName string, data any) *Extrinsic {
	return &Extrinsic{TypeName: typeName, Data: data}
}

func (v *Extrinsic) Kind() Kind { return KindExtrinsic }
func (v *Extrinsic) String() string {
	return fmt.Sprintf("<%s>", v.TypeName)
}
func (v *Extrinsic) Equal(o Value) bool {
	ov, ok := o.(*Extrinsic)
	return ok && ov == v
}

// IsStrictTrue implements the spec's "1" truthiness predicate: the value
// is exactly boolean true, or a list where every element is strictly true.
func IsStrictTrue(v Value) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case *List:
		for _, e := range t.Elements {
			if !IsStrictTrue(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsTruthy implements the spec's "~1" truthiness predicate: strictly
// true, or a non-zero number, or a non-empty string, or a list where
// every element is truthy.
func IsTruthy(v Value) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case Int:
		return t != 0
	case Float:
		return t != 0
	case String:
		return len(t) > 0
	case *List:
		for _, e := range t.Elements {
			if !IsTruthy(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
