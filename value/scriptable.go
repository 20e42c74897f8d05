package value

import (
	"reflect"
	"strings"
)

// Scriptable is the polymorphic "object with named fields" capability used
// by object literals and host-provided objects. The language core depends
// only on this interface, never on a concrete implementation.
type Scriptable interface {
	Keys() []string
	Get(key string) (Value, bool)
	Set(key string, v Value) bool
	TryClear(key string) bool
	ToMap(mapper func(key string, v Value) (any, error)) (map[string]any, error)
}

// Scripted wraps a Scriptable as a Value.
type Scripted struct {
	Object Scriptable
}

func NewScripted(obj Scriptable) *Scripted { return &Scripted{Object: obj} }

func (v *Scripted) Kind() Kind { return KindScriptable }
func (v *Scripted) String() string {
	keys := v.Object.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		val, _ := v.Object.Get(k)
		parts = append(parts, "{"+k+" "+val.String()+"}")
	}
	return strings.Join(parts, " ")
}
func (v *Scripted) Equal(o Value) bool {
	ov, ok := o.(*Scripted)
	if !ok {
		return false
	}
	return v.Object == ov.Object
}

// Object is the built-in object-literal implementation: an
// insertion-ordered map plus an ordered tag list, exactly the storage the
// {{...}} form needs.
type Object struct {
	order []string
	data  map[string]Value
	Tags  []string
}

func NewObject() *Object {
	return &Object{data: make(map[string]Value)}
}

func (o *Object) Keys() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.data[key]
	return v, ok
}

func (o *Object) Set(key string, v Value) bool {
	if _, exists := o.data[key]; !exists {
		o.order = append(o.order, key)
	}
	o.data[key] = v
	return true
}

func (o *Object) TryClear(key string) bool {
	if _, exists := o.data[key]; !exists {
		return false
	}
	delete(o.data, key)
	for i, k := range o.order {
		if k == key {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

func (o *Object) ToMap(mapper func(key string, v Value) (any, error)) (map[string]any, error) {
	out := make(map[string]any, len(o.order))
	for _, k := range o.order {
		mv, err := mapper(k, o.data[k])
		if err != nil {
			return nil, err
		}
		out[k] = mv
	}
	return out, nil
}

// FuncScriptable adapts host closures into a Scriptable without requiring
// the host to implement the interface directly.
type FuncScriptable struct {
	KeysFn     func() []string
	GetFn      func(key string) (Value, bool)
	SetFn      func(key string, v Value) bool
	TryClearFn func(key string) bool
}

func (f *FuncScriptable) Keys() []string {
	if f.KeysFn == nil {
		return nil
	}
	return f.KeysFn()
}

func (f *FuncScriptable) Get(key string) (Value, bool) {
	if f.GetFn == nil {
		return nil, false
	}
	return f.GetFn(key)
}

func (f *FuncScriptable) Set(key string, v Value) bool {
	if f.SetFn == nil {
		return false
	}
	return f.SetFn(key, v)
}

func (f *FuncScriptable) TryClear(key string) bool {
	if f.TryClearFn == nil {
		return false
	}
	return f.TryClearFn(key)
}

func (f *FuncScriptable) ToMap(mapper func(key string, v Value) (any, error)) (map[string]any, error) {
	out := make(map[string]any)
	for _, k := range f.Keys() {
		v, ok := f.Get(k)
		if !ok {
			continue
		}
		mv, err := mapper(k, v)
		if err != nil {
			return nil, err
		}
		out[k] = mv
	}
	return out, nil
}

// ReflectScriptable exposes a host struct's exported fields as a
// Scriptable via reflection, keyed by field name. Field values must
// already be Values (the interpreter core never converts host types on
// its own); use FuncScriptable for anything richer.
type ReflectScriptable struct {
	host reflect.Value
}

// NewReflectScriptable wraps a pointer to a struct whose exported fields
// are of type Value.
func NewReflectScriptable(hostPtr any) *ReflectScriptable {
	return &ReflectScriptable{host: reflect.ValueOf(hostPtr).Elem()}
}

func (r *ReflectScriptable) Keys() []string {
	t := r.host.Type()
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			keys = append(keys, t.Field(i).Name)
		}
	}
	return keys
}

func (r *ReflectScriptable) Get(key string) (Value, bool) {
	f := r.host.FieldByName(key)
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	v, ok := f.Interface().(Value)
	if !ok {
		return nil, false
	}
	return v, true
}

func (r *ReflectScriptable) Set(key string, v Value) bool {
	f := r.host.FieldByName(key)
	if !f.IsValid() || !f.CanSet() {
		return false
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(f.Type()) {
		return false
	}
	f.Set(rv)
	return true
}

func (r *ReflectScriptable) TryClear(key string) bool {
	f := r.host.FieldByName(key)
	if !f.IsValid() || !f.CanSet() {
		return false
	}
	f.Set(reflect.Zero(f.Type()))
	return true
}

func (r *ReflectScriptable) ToMap(mapper func(key string, v Value) (any, error)) (map[string]any, error) {
	out := make(map[string]any)
	for _, k := range r.Keys() {
		v, ok := r.Get(k)
		if !ok {
			continue
		}
		mv, err := mapper(k, v)
		if err != nil {
			return nil, err
		}
		out[k] = mv
	}
	return out, nil
}
