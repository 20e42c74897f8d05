package builtins

import (
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// registerComparison installs ==, !=, <, <=, >, >=. Equality defers to
// each Value's own Equal (exact, cross-type-never-matches, per spec);
// ordering only applies to like-numeric or like-string pairs — including
// bool/bool, which Equal alone handles and order comparisons reject.
// Grounded on the teacher's `builtins/math.go` comparison handlers,
// narrowed from MOO's wider comparable-type set to Losp's numeric/string
// pair.
func (r *Registry) registerComparison() {
	r.register("==", binaryBool("==", func(a, b value.Value) bool { return a.Equal(b) }))
	r.register("!=", binaryBool("!=", func(a, b value.Value) bool { return !a.Equal(b) }))
	r.register("<", orderOp("<", func(c int) bool { return c < 0 }))
	r.register("<=", orderOp("<=", func(c int) bool { return c <= 0 }))
	r.register(">", orderOp(">", func(c int) bool { return c > 0 }))
	r.register(">=", orderOp(">=", func(c int) bool { return c >= 0 }))
}

func binaryBool(name string, f func(a, b value.Value) bool) OperatorFunc {
	return func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) != 2 {
			return argError(name, "exactly 2 arguments", len(args))
		}
		return result.NewValue(value.NewBool(f(args[0], args[1])))
	}
}

// compare returns -1/0/1 for numeric or string pairs; ordering between
// other kinds, or across number/string, is undefined and reported as a
// type error.
func compare(a, b value.Value) (int, bool) {
	if af, _, aok := toFloat(a); aok {
		if bf, _, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}
	if as, aok := a.(value.String); aok {
		if bs, bok := b.(value.String); bok {
			switch {
			case as < bs:
				return -1, true
			case as > bs:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	return 0, false
}

func orderOp(name string, accept func(c int) bool) OperatorFunc {
	return func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) != 2 {
			return argError(name, "exactly 2 arguments", len(args))
		}
		c, ok := compare(args[0], args[1])
		if !ok {
			return typeError(name, "operands must both be numbers or both be strings")
		}
		return result.NewValue(value.NewBool(accept(c)))
	}
}
