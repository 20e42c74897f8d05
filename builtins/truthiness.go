package builtins

import (
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// registerTruthiness installs the literal truthiness predicates (1, ~1,
// 0, ~0, !, ~!) plus ANY, ALL, IN and COUNT. Grounded on the teacher's
// `builtins/lists.go` membership/aggregate handlers, generalized from
// MOO's explicit equality-based `is_member` to Losp's truthiness-based
// ANY/ALL, and on value.IsStrictTrue/IsTruthy directly for the predicate
// operators themselves.
func (r *Registry) registerTruthiness() {
	r.register("1", truthPredicate(value.IsStrictTrue))
	r.register("0", negatedTruthPredicate(value.IsStrictTrue))
	r.register("~1", truthPredicate(value.IsTruthy))
	r.register("~0", negatedTruthPredicate(value.IsTruthy))
	r.register("!", negationOp("!", value.IsStrictTrue))
	r.register("~!", negationOp("~!", value.IsTruthy))

	r.register("ANY", aggregateOp("ANY", func(acc, v bool) bool { return acc || v }, false))
	r.register("ALL", aggregateOp("ALL", func(acc, v bool) bool { return acc && v }, true))

	r.register("IN", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) != 2 {
			return argError("IN", "exactly 2 arguments (list, needle)", len(args))
		}
		lst, ok := args[0].(*value.List)
		if !ok {
			return typeError("IN", "first argument must be a list")
		}
		for _, e := range lst.Elements {
			if e.Equal(args[1]) {
				return result.NewValue(value.NewBool(true))
			}
		}
		return result.NewValue(value.NewBool(false))
	})

	r.register("COUNT", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) != 1 {
			return argError("COUNT", "exactly 1 argument", len(args))
		}
		switch v := args[0].(type) {
		case *value.List:
			return result.NewValue(value.NewInt(int32(len(v.Elements))))
		case *value.Scripted:
			return result.NewValue(value.NewInt(int32(len(v.Object.Keys()))))
		default:
			return typeError("COUNT", "argument must be a list or an object")
		}
	})
}

// truthPredicate builds "1"/"~1": applies pred directly to a single bare
// argument (matching how `(1 x)` reads), or to the argument list as a
// whole list-value when more than one is given.
func truthPredicate(pred func(value.Value) bool) OperatorFunc {
	return func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) == 1 {
			return result.NewValue(value.NewBool(pred(args[0])))
		}
		return result.NewValue(value.NewBool(pred(value.NewList(args))))
	}
}

// negatedTruthPredicate builds "0"/"~0", the negation of the matching
// truthPredicate.
func negatedTruthPredicate(pred func(value.Value) bool) OperatorFunc {
	inner := truthPredicate(pred)
	return func(sc *scope.Context, cr *result.ChildResults) result.Result {
		r := inner(sc, cr).(result.Value)
		return result.NewValue(value.NewBool(!bool(r.First().(value.Bool))))
	}
}

// negationOp builds "!"/"~!": negate a single argument's truthiness
// under pred.
func negationOp(name string, pred func(value.Value) bool) OperatorFunc {
	return func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) != 1 {
			return argError(name, "exactly 1 argument", len(args))
		}
		return result.NewValue(value.NewBool(!pred(args[0])))
	}
}

// aggregateOp builds ANY/ALL: folds the unkeyed arguments' truthiness
// (strict by default, truthy when the keyed `~` option is true) starting
// from seed. At least one unkeyed argument is required.
func aggregateOp(name string, fold func(acc, v bool) bool, seed bool) OperatorFunc {
	return func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) == 0 {
			return result.NewError("ARGS", "at least one argument is required")
		}
		pred := value.IsStrictTrue
		if opt, ok := cr.KeyedValue("~"); ok && value.IsTruthy(opt) {
			pred = value.IsTruthy
		}
		acc := seed
		for _, a := range args {
			acc = fold(acc, pred(a))
		}
		return result.NewValue(value.NewBool(acc))
	}
}
