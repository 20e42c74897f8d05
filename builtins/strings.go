package builtins

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// registerStrings installs CONCAT, LINE, STR-INT, TO-STR, STARTS, ENDS
// and CONTAINS. Grounded on the teacher's `builtins/strings.go`
// (`builtinStrcmp`/`builtinIndex`/type-conversion handlers), narrowed to
// Losp's smaller string surface.
func (r *Registry) registerStrings() {
	r.register("CONCAT", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		delim := ""
		if d, ok := cr.KeyedValue("delim"); ok {
			if s, ok := d.(value.String); ok {
				delim = string(s)
			}
		}
		args := cr.Unkeyed()
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		return result.NewValue(value.NewString(strings.Join(parts, delim)))
	})

	r.register("LINE", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		if runtime.GOOS == "windows" {
			return result.NewValue(value.NewString("\r\n"))
		}
		return result.NewValue(value.NewString("\n"))
	})

	r.register("STR-INT", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) != 1 {
			return argError("STR-INT", "exactly 1 argument", len(args))
		}
		s, ok := args[0].(value.String)
		if !ok {
			return typeError("STR-INT", "argument must be a string")
		}
		n, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 32)
		if err != nil {
			return result.NewError("INVARG", "not an integer: "+string(s))
		}
		return result.NewValue(value.NewInt(int32(n)))
	})

	r.register("TO-STR", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		out := make([]value.Value, len(args))
		for i, a := range args {
			out[i] = value.NewString(a.String())
		}
		return result.Value{Values: out}
	})

	r.register("STARTS", stringPredicate("STARTS", strings.HasPrefix))
	r.register("ENDS", stringPredicate("ENDS", strings.HasSuffix))
	r.register("CONTAINS", stringPredicate("CONTAINS", strings.Contains))
}

// stringPredicate builds STARTS/ENDS/CONTAINS: f is applied case-
// sensitively unless the keyed `i` option is true (ignore-case) or the
// keyed `case` option is explicitly false.
func stringPredicate(name string, f func(s, substr string) bool) OperatorFunc {
	return func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) != 2 {
			return argError(name, "exactly 2 string arguments", len(args))
		}
		s, ok1 := args[0].(value.String)
		t, ok2 := args[1].(value.String)
		if !ok1 || !ok2 {
			return typeError(name, "both arguments must be strings")
		}
		ignoreCase := false
		if i, ok := cr.KeyedValue("i"); ok {
			ignoreCase = value.IsTruthy(i)
		}
		if c, ok := cr.KeyedValue("case"); ok && !value.IsTruthy(c) {
			ignoreCase = true
		}
		a, b := string(s), string(t)
		if ignoreCase {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		return result.NewValue(value.NewBool(f(a, b)))
	}
}
