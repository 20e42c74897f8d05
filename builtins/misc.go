package builtins

import (
	"math"

	"github.com/chebwaplus/losp/parser"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// registerMisc installs the small leftover standard operators that don't
// belong to any of the other groups: the PI constant, and
// LOSP:TEST:DBLPUSH, a diagnostic operator kept from the teacher's own
// test-only builtins (`builtins/registry.go` registers a handful of
// "DEBUG:"-prefixed operators purely to exercise the dispatch machinery).
// DBLPUSH issues two sequential Push continuations and sums their results,
// exercising the same continuation machinery a real suspending operator
// would use.
func (r *Registry) registerMisc() {
	r.register("PI", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		// Arity is intentionally unchecked: extra arguments are ignored.
		return result.NewValue(value.NewFloat(float32(math.Pi)))
	})

	r.register("LOSP:TEST:DBLPUSH", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		return pushLiteral(1, func(first int32) result.Result {
			return pushLiteral(2, func(second int32) result.Result {
				return result.NewValue(value.NewInt(first + second))
			})
		})
	})
}

// pushLiteral issues a single-node Push evaluating the int literal n, then
// calls onDone with the collected value.
func pushLiteral(n int32, onDone func(int32) result.Result) result.Result {
	node := parser.NewLiteralNode(nil, value.NewInt(n))
	return result.NewPush([]value.Node{node}, func(cr *result.ChildResults) result.Result {
		if e, ok := cr.AnyError(); ok {
			return e
		}
		v := int32(0)
		if len(cr.Unkeyed()) > 0 {
			if i, ok := cr.Unkeyed()[0].(value.Int); ok {
				v = int32(i)
			}
		}
		return onDone(v)
	})
}
