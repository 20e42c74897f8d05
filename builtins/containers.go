package builtins

import (
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// registerContainers installs `.` (chained property lookup on a
// Scriptable) and MERGE (combine two Scriptables). Grounded on the
// teacher's `eval/properties.go` (object.property resolution) for the
// dot-lookup shape, generalized from MOO's object-database property
// lookup to a direct Scriptable.Get call since Losp has no object store.
func (r *Registry) registerContainers() {
	r.register(".", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) < 2 {
			return argError(".", "at least 2 arguments (object, key...)", len(args))
		}
		cur, ok := args[0].(*value.Scripted)
		if !ok {
			return typeError(".", "first argument must be an object")
		}
		var v value.Value = cur
		for _, keyVal := range args[1:] {
			name, ok := keyVal.(value.String)
			if !ok {
				return typeError(".", "keys must be strings")
			}
			obj, ok := v.(*value.Scripted)
			if !ok {
				return result.NewError("TYPE", "intermediate value not a script object")
			}
			next, ok := obj.Object.Get(string(name))
			if !ok {
				return result.NewError("PROPNF", "property not found: "+string(name))
			}
			v = next
		}
		return result.NewValue(v)
	})

	r.register("MERGE", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) != 2 {
			return argError("MERGE", "exactly 2 arguments", len(args))
		}
		a, aok := args[0].(*value.Scripted)
		b, bok := args[1].(*value.Scripted)
		if !aok || !bok {
			return typeError("MERGE", "both arguments must be objects")
		}
		out := value.NewObject()
		for _, k := range a.Object.Keys() {
			v, _ := a.Object.Get(k)
			out.Set(k, v)
		}
		for _, k := range b.Object.Keys() {
			v, _ := b.Object.Get(k)
			out.Set(k, v)
		}
		return result.NewValue(value.NewScripted(out))
	})
}
