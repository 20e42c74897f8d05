package eval

import (
	"errors"

	"github.com/chebwaplus/losp/parser"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// SpecialRunFunc runs a prepared special operator: cr holds the
// already-evaluated public children, so.Hidden the raw, not-yet-evaluated
// nodes the handler decides whether and how to push.
type SpecialRunFunc func(ev *Evaluator, so *parser.SpecialOperatorNode, sc *scope.Context, cr *result.ChildResults) result.Result

// hostSpecialRunners holds Run handlers for host-registered special
// operators (parser.RegisterSpecialOperator only installs the Prepare
// half; a host must separately give eval a Run handler for the same
// name, since eval cannot guess what a new special operator should do at
// evaluation time). Mirrors parser's own specialPrepareRegistry shape,
// kept in the eval package since only eval knows how to run a node.
var hostSpecialRunners = map[string]SpecialRunFunc{}

// RegisterSpecialOperatorRunner installs the evaluation-time half of a
// host special operator previously registered with
// parser.RegisterSpecialOperator. Both halves are required before the
// operator can be used: Prepare restructures its children at parse time,
// Run executes it at eval time.
func RegisterSpecialOperatorRunner(name string, fn SpecialRunFunc) error {
	if !parser.IsSpecialOperatorName(name) {
		return errors.New("special operator " + name + " has no registered Prepare hook; call parser.RegisterSpecialOperator first")
	}
	if _, exists := hostSpecialRunners[name]; exists {
		return errors.New("special operator " + name + " already has a registered Run handler")
	}
	hostSpecialRunners[name] = fn
	return nil
}

// dispatchSpecial runs a prepared special operator's Run handler. cr holds
// the already-evaluated public children; so.Hidden holds the raw,
// not-yet-evaluated nodes the handler decides whether and how to push.
func (ev *Evaluator) dispatchSpecial(so *parser.SpecialOperatorNode, sc *scope.Context, cr *result.ChildResults) result.Result {
	switch so.Id() {
	case "IF":
		return runIf(so, sc, cr)
	case "FOR":
		return runFor(so, sc, cr)
	case "FORI":
		return runFori(so, sc, cr)
	case "++":
		return runIncDec(so, sc, cr, 1)
	case "--":
		return runIncDec(so, sc, cr, -1)
	case "=":
		return runAssign(so, sc, cr)
	case "WAIT":
		return runWait(ev, so, sc, cr)
	default:
		if fn, ok := hostSpecialRunners[so.Id()]; ok {
			return fn(ev, so, sc, cr)
		}
		return result.NewError("VERBNF", "no handler registered for special operator "+so.Id())
	}
}

func runIf(so *parser.SpecialOperatorNode, sc *scope.Context, cr *result.ChildResults) result.Result {
	cond := cr.At(0).(result.Value).First()
	hidden := so.Hidden.Items()
	if value.IsTruthy(cond) {
		return EvalBody([]value.Node{hidden[0]}, sc)
	}
	if len(hidden) > 1 {
		return EvalBody([]value.Node{hidden[1]}, sc)
	}
	return result.NewValue(value.Null{})
}

// runFor evaluates the `?` condition and, while it's truthy, the `do`
// clause, looping entirely through repeated Push continuations rather
// than a native Go loop — each iteration re-enters forIteration via a
// fresh Push whose OnComplete re-checks the condition.
func runFor(so *parser.SpecialOperatorNode, sc *scope.Context, cr *result.ChildResults) result.Result {
	hidden := so.Hidden.Items()
	cond := hidden[0]
	doClause := hidden[1]
	return forIteration(cond, doClause, sc)
}

func forIteration(cond, doClause value.Node, sc *scope.Context) result.Result {
	return result.NewPush([]value.Node{cond}, func(cr *result.ChildResults) result.Result {
		if e, ok := cr.AnyError(); ok {
			return e
		}
		condVal := cr.At(0).(result.Value).First()
		if !value.IsTruthy(condVal) {
			return result.NewValue(value.Null{})
		}
		body := result.NewPush([]value.Node{doClause}, func(cr2 *result.ChildResults) result.Result {
			if e, ok := cr2.AnyError(); ok {
				return e
			}
			return forIteration(cond, doClause, sc)
		})
		body.Scope = sc
		return body
	})
}

// runFori walks the prepared from/before/[emit] public values and the
// hidden idx identifier + body, binding idx fresh each iteration in a
// child scope, optionally accumulating every iteration's emitted values
// and forwarding them all as one multi-value result once the loop ends.
func runFori(so *parser.SpecialOperatorNode, sc *scope.Context, cr *result.ChildResults) result.Result {
	from, ok := asInt(cr.At(0).(result.Value).First())
	if !ok {
		return result.NewError("TYPE", "FORI's from field must be an integer")
	}
	before, ok := asInt(cr.At(1).(result.Value).First())
	if !ok {
		return result.NewError("TYPE", "FORI's before field must be an integer")
	}
	emit := cr.Len() > 2 && value.IsTruthy(cr.At(2).(result.Value).First())

	hidden := so.Hidden.Items()
	idxIdent := hidden[0].(*parser.IdentifierNode)
	body := hidden[1]

	var collected []value.Value
	return foriIteration(idxIdent, body, sc, from, before, emit, &collected)
}

func foriIteration(idxIdent *parser.IdentifierNode, body value.Node, sc *scope.Context, i, before int32, emit bool, collected *[]value.Value) result.Result {
	if i >= before {
		if emit {
			return result.Value{Values: *collected}
		}
		return result.NewValue(value.Null{})
	}
	iterScope := scope.NewChild(sc)
	iterScope.Define(idxIdent.Name, value.NewInt(i))

	push := result.NewPush([]value.Node{body}, func(cr *result.ChildResults) result.Result {
		if e, ok := cr.AnyError(); ok {
			return e
		}
		if emit && cr.Len() > 0 {
			if v, ok := cr.At(0).(result.Value); ok {
				*collected = append(*collected, v.Values...)
			}
		}
		return foriIteration(idxIdent, body, sc, i+1, before, emit, collected)
	})
	push.Scope = iterScope
	return push
}

func asInt(v value.Value) (int32, bool) {
	switch t := v.(type) {
	case value.Int:
		return int32(t), true
	case value.Float:
		return int32(t), true
	default:
		return 0, false
	}
}

// runIncDec implements ++/--. When the operand was hidden (an identifier),
// it reads, adjusts, and writes back through Assign. When it was public
// (an arbitrary expression, already evaluated into cr), the result is
// simply that value plus delta with no write-back target.
func runIncDec(so *parser.SpecialOperatorNode, sc *scope.Context, cr *result.ChildResults, delta int32) result.Result {
	if so.Hidden.Len() == 1 {
		ident := so.Hidden.At(0).(*parser.IdentifierNode)
		cur, ok := sc.Get(ident.Name)
		if !ok {
			return result.NewError("VARNF", "no variable named "+ident.Name+" was found")
		}
		next, err := addDelta(cur, delta)
		if err != nil {
			return result.NewError("TYPE", err.Error())
		}
		sc.Assign(ident.Name, next)
		return result.NewValue(next)
	}
	cur := cr.At(0).(result.Value).First()
	next, err := addDelta(cur, delta)
	if err != nil {
		return result.NewError("TYPE", err.Error())
	}
	return result.NewValue(next)
}

func addDelta(v value.Value, delta int32) (value.Value, error) {
	switch t := v.(type) {
	case value.Int:
		return value.NewInt(int32(t) + delta), nil
	case value.Float:
		return value.NewFloat(float32(t) + float32(delta)), nil
	default:
		return nil, errNotNumeric
	}
}

var errNotNumeric = errors.New("++/-- operand must be a number")

// runAssign implements =(ident expr): the expression (already evaluated
// into cr) is written into whichever scope already holds the name, or the
// current scope if it's unbound, and the assigned value is returned.
func runAssign(so *parser.SpecialOperatorNode, sc *scope.Context, cr *result.ChildResults) result.Result {
	ident := so.Hidden.At(0).(*parser.IdentifierNode)
	v := cr.At(0).(result.Value).First()
	sc.Assign(ident.Name, v)
	return result.NewValue(v)
}

// runWait implements WAIT(ms body): ms zero or negative pushes body
// immediately with no suspension; otherwise it schedules completion
// after ms milliseconds via the evaluator's injectable Clock and
// returns an Async that resolves to pushing body once the clock fires.
func runWait(ev *Evaluator, so *parser.SpecialOperatorNode, sc *scope.Context, cr *result.ChildResults) result.Result {
	ms, ok := asInt(cr.At(0).(result.Value).First())
	if !ok {
		return result.NewError("TYPE", "WAIT's first argument must be an integer number of milliseconds")
	}
	body := so.Hidden.At(0)
	if ms <= 0 {
		return EvalBody([]value.Node{body}, sc)
	}
	proxy := result.NewAsyncProxy()
	ev.Clock.AfterFunc(ms, func() {
		proxy.Resolve(EvalBody([]value.Node{body}, sc))
	})
	return result.NewAsync(proxy)
}
