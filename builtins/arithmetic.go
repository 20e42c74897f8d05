package builtins

import (
	"math"

	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// registerArithmetic installs +, -, *, /, %, ^ with the spec's accumulator
// promotion rule: the accumulator starts in integer mode and stays there
// while every argument is an integer; the first float argument switches it
// to float permanently, independent of where in the argument list it
// appears. Grounded on the teacher's `builtins/math.go` promote-to-float
// shape (`toNumericFloat`), narrowed here to a 2-kind (int/float) numeric
// tower and generalized from MOO's binary infix operators to Losp's
// variadic operator-call form.
func (r *Registry) registerArithmetic() {
	r.register("+", accumulate("+", func(acc, v float64) float64 { return acc + v }))
	r.register("-", accumulate("-", func(acc, v float64) float64 { return acc - v }))
	r.register("*", accumulate("*", func(acc, v float64) float64 { return acc * v }))

	r.register("/", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) < 1 {
			return argError("/", "at least 1 numeric argument", len(args))
		}
		acc, float, ok := toFloat(args[0])
		if !ok {
			return typeError("/", "all operands must be numbers")
		}
		for _, a := range args[1:] {
			v, isFloat, ok := toFloat(a)
			if !ok {
				return typeError("/", "all operands must be numbers")
			}
			float = float || isFloat
			if v == 0 {
				// Division by zero saturates instead of erroring, per spec.
				if float {
					return result.NewValue(value.NewFloat(float32(math.Inf(1))))
				}
				return result.NewValue(value.NewInt(math.MaxInt32))
			}
			acc = acc / v
		}
		if float {
			return result.NewValue(value.NewFloat(float32(acc)))
		}
		return result.NewValue(value.NewInt(int32(acc)))
	})

	r.register("%", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) < 2 {
			return argError("%", "at least 2 integer arguments", len(args))
		}
		acc, ok := args[0].(value.Int)
		if !ok {
			return typeError("%", "all operands must be integers")
		}
		out := int32(acc)
		for _, a := range args[1:] {
			b, ok := a.(value.Int)
			if !ok {
				return typeError("%", "all operands must be integers")
			}
			if b == 0 {
				// Modulo by zero saturates instead of erroring, per spec.
				return result.NewValue(value.NewInt(math.MaxInt32))
			}
			out = out % int32(b)
		}
		return result.NewValue(value.NewInt(out))
	})

	r.register("^", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) < 1 {
			return argError("^", "at least 1 numeric argument", len(args))
		}
		acc, float, ok := toFloat(args[0])
		if !ok {
			return typeError("^", "all operands must be numbers")
		}
		for _, a := range args[1:] {
			v, isFloat, ok := toFloat(a)
			if !ok {
				return typeError("^", "all operands must be numbers")
			}
			float = float || isFloat
			acc = math.Pow(acc, v)
		}
		if float {
			return result.NewValue(value.NewFloat(float32(acc)))
		}
		return result.NewValue(value.NewInt(int32(math.Round(acc))))
	})
}

// toFloat widens an Int or Float value to float64, reporting whether it was
// already a Float (the promotion signal) and whether v was numeric at all.
func toFloat(v value.Value) (f float64, isFloat bool, ok bool) {
	switch t := v.(type) {
	case value.Int:
		return float64(t), false, true
	case value.Float:
		return float64(t), true, true
	default:
		return 0, false, false
	}
}

// accumulate builds a variadic handler folding every unkeyed argument left
// to right through f, starting the accumulator in integer mode and
// promoting permanently to float the moment any argument is a Float.
func accumulate(name string, f func(acc, v float64) float64) OperatorFunc {
	return func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) < 1 {
			return argError(name, "at least 1 numeric argument", len(args))
		}
		acc, float, ok := toFloat(args[0])
		if !ok {
			return typeError(name, "all operands must be numbers")
		}
		for _, a := range args[1:] {
			v, isFloat, ok := toFloat(a)
			if !ok {
				return typeError(name, "all operands must be numbers")
			}
			float = float || isFloat
			acc = f(acc, v)
		}
		if float {
			return result.NewValue(value.NewFloat(float32(acc)))
		}
		return result.NewValue(value.NewInt(int32(acc)))
	}
}
