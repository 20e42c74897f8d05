package eval

import (
	"strings"

	"github.com/chebwaplus/losp/parser"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// newFrame builds the frame for evaluating node: its children (possibly
// none) and the finalize function that turns their collected results into
// this node's Result.
func (ev *Evaluator) newFrame(node value.Node, sc *scope.Context) *frame {
	switch n := node.(type) {
	case *parser.LiteralNode:
		return leafFrame(node, sc, result.NewValue(n.Value))

	case *parser.IdentifierNode:
		return &frame{node: node, scope: sc, results: result.NewChildResults(),
			finalize: func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result {
				if n.Name == "," {
					return result.Value{}
				}
				v, ok := sc.Get(n.Name)
				if !ok {
					return result.NewError("VARNF", "no variable named "+n.Name+" was found")
				}
				return result.NewValue(v)
			}}

	case *parser.ListNode:
		return &frame{node: node, children: bodyNodes(n.Children()), scope: sc, results: result.NewChildResults(),
			finalize: func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result {
				return result.NewValue(value.NewList(flattenValues(cr)))
			}}

	case *parser.KeyValueNode:
		return &frame{node: node, children: bodyNodes(n.Children()), scope: sc, results: result.NewChildResults(),
			finalize: func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result {
				return finalizeKeyValue(n, cr)
			}}

	case *parser.ObjectLiteralNode:
		return &frame{node: node, children: bodyNodes(n.Children()), scope: sc, results: result.NewChildResults(),
			finalize: func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result {
				obj := value.NewObject()
				obj.Tags = n.Tags
				for _, kvNode := range n.Children().Items() {
					kv := kvNode.(*parser.KeyValueNode)
					r, ok := cr.ByKey(kv.Key())
					if !ok {
						continue
					}
					obj.Set(kv.Key(), r.First())
				}
				return result.NewValue(value.NewScripted(obj))
			}}

	case *parser.FunctionNode:
		return leafFrame(node, sc, result.NewValue(value.NewLambda(n.ParamNames(), bodyNodes(n.Children()), sc)))

	case *parser.FilterNode:
		return ev.newFilterFrame(n, sc)

	case *parser.OperatorNode:
		return &frame{node: node, children: bodyNodes(n.Children()), scope: sc, results: result.NewChildResults(),
			finalize: func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result {
				if e, ok := cr.AnyError(); ok {
					return e
				}
				return ev.dispatchOperator(n, sc, cr)
			}}

	case *parser.SpecialOperatorNode:
		return &frame{node: node, children: bodyNodes(n.Children()), scope: sc, results: result.NewChildResults(),
			finalize: func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result {
				if e, ok := cr.AnyError(); ok {
					return e
				}
				return ev.dispatchSpecial(n, sc, cr)
			}}
	}
	return leafFrame(node, sc, result.NewError("INTERNAL", "unknown node kind"))
}

func leafFrame(node value.Node, sc *scope.Context, r result.Result) *frame {
	return &frame{node: node, scope: sc, results: result.NewChildResults(),
		finalize: func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result { return r }}
}

func bodyNodes(c *parser.Children) []value.Node {
	items := c.Items()
	out := make([]value.Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// flattenValues concatenates every produced value across a ChildResults,
// in order, skipping results that didn't flow through a Value variant
// (finalize short-circuits to Error before this ever runs on one).
func flattenValues(cr *result.ChildResults) []value.Value {
	var out []value.Value
	for _, r := range cr.Items() {
		if v, ok := r.(result.Value); ok {
			out = append(out, v.Values...)
		}
	}
	return out
}

// finalizeKeyValue implements the KeyValue arity rules: no children emits
// a bare `true` under the key (presence-only flag), one child passes its
// value through, more than one collects them into a list — all under the
// key's name so ObjectLiteral and FOR/FORI's Prepare-time field
// extraction can find them again.
func finalizeKeyValue(n *parser.KeyValueNode, cr *result.ChildResults) result.Result {
	if e, ok := cr.AnyError(); ok {
		return e
	}
	switch cr.Len() {
	case 0:
		return result.NewKeyedValue(n.Key(), value.NewBool(true))
	case 1:
		return result.Value{Key: n.Key(), Values: []value.Value{cr.At(0).(result.Value).First()}}
	default:
		return result.NewKeyedValue(n.Key(), value.NewList(flattenValues(cr)))
	}
}

// dispatchOperator resolves and invokes an OperatorNode's handler, in
// order: a scope-bound Lambda of the same name (a user-defined "function
// call" shadows every builtin), then — honoring the LOSP: bypass — either
// the builtin-only table or the host-override-then-builtin table. A
// Lambda call only ever sees the unkeyed (positional) argument values;
// builtin handlers see the full ChildResults so they can read named
// options (CONCAT's `delim`, ANY/ALL's `~`, ...) alongside positionals.
func (ev *Evaluator) dispatchOperator(n *parser.OperatorNode, sc *scope.Context, cr *result.ChildResults) result.Result {
	if v, ok := sc.Get(n.Id()); ok {
		if lam, ok := v.(*value.Lambda); ok {
			return ev.callLambda(lam, cr.Unkeyed())
		}
	}

	name := n.Id()
	if strings.HasPrefix(name, "LOSP:") {
		fn, ok := ev.Registry.LookupStandard(name)
		if !ok {
			return result.NewError("VERBNF", "no standard operator named "+name)
		}
		return fn(sc, cr)
	}

	fn, ok := ev.Registry.Lookup(name)
	if !ok {
		return result.NewError("VERBNF", "no operator named "+name)
	}
	return fn(sc, cr)
}

// callLambda invokes lam with args bound to its parameters in a fresh
// child of its closure scope, via Push so the call itself never recurses
// through Go's call stack.
func (ev *Evaluator) callLambda(lam *value.Lambda, args []value.Value) result.Result {
	parent, _ := lam.Closure.(*scope.Context)
	callScope := scope.NewChild(parent)
	for i, name := range lam.Params {
		if i < len(args) {
			callScope.Define(name, args[i])
		} else {
			callScope.Define(name, value.Null{})
		}
	}
	return EvalBody(lam.Body, callScope)
}
