package builtins

import (
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// registerControlFlow installs `?` (IF/FOR's condition wrapper), RUN, DO,
// MUTE, LAST, EXPAND and COLLAPSE. These operate purely on already-evaluated
// child values — lambda invocation is handled generically by the
// evaluator's operator dispatch, not re-implemented here. Grounded on the
// teacher's `builtins/list.go` aggregate/flatten handlers, narrowed to
// Losp's emission-count model (success-emit vs. success-no-emit) in place
// of MOO's single-value returns; `?` forwards its evaluated argument
// through unchanged so IF/FOR can read it as an ordinary pushed child.
func (r *Registry) registerControlFlow() {
	r.register("?", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		return result.Value{Values: append([]value.Value{}, cr.Unkeyed()...)}
	})

	r.register("RUN", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		return result.Value{Values: append([]value.Value{}, cr.Unkeyed()...)}
	})

	r.register("DO", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		return result.Value{Values: append([]value.Value{}, cr.Unkeyed()...)}
	})

	r.register("MUTE", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		return result.Value{}
	})

	r.register("LAST", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) == 0 {
			return result.Value{}
		}
		return result.NewValue(args[len(args)-1])
	})

	r.register("EXPAND", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		var out []value.Value
		for _, a := range args {
			if lst, ok := a.(*value.List); ok {
				out = append(out, lst.Elements...)
				continue
			}
			out = append(out, a)
		}
		return result.Value{Values: out}
	})

	r.register("COLLAPSE", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		return result.NewValue(value.NewList(append([]value.Value{}, cr.Unkeyed()...)))
	})
}
