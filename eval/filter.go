package eval

import (
	"fmt"

	"github.com/chebwaplus/losp/parser"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// newFilterFrame flattens a #( )/%( )... chain into one frame: every
// stage's arguments are evaluated up front (left to right across the
// whole chain), then finalize walks the chain again applying each stage
// in turn. The introductory #( ) stage's first argument is the source
// list; every argument in every stage (including #( )'s remaining ones)
// is a predicate lambda the surviving elements must satisfy.
func (ev *Evaluator) newFilterFrame(n *parser.FilterNode, sc *scope.Context) *frame {
	var children []value.Node
	var counts []int
	for cur := n; cur != nil; cur = cur.Next {
		items := cur.Children().Items()
		children = append(children, bodyNodes(cur.Children())...)
		counts = append(counts, len(items))
	}

	return &frame{node: n, children: children, scope: sc, results: result.NewChildResults(),
		finalize: func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result {
			if e, ok := cr.AnyError(); ok {
				return e
			}
			idx := 0
			var source *value.List
			first := true
			for _, cnt := range counts {
				stage := make([]value.Value, 0, cnt)
				for j := 0; j < cnt; j++ {
					stage = append(stage, cr.At(idx).(result.Value).First())
					idx++
				}
				if first {
					if len(stage) == 0 {
						return result.NewError("ARGS", "filter requires a source list")
					}
					lst, ok := stage[0].(*value.List)
					if !ok {
						return result.NewError("TYPE", "filter's source must be a list")
					}
					source = lst
					stage = stage[1:]
					first = false
				}
				var err error
				source, err = ev.applyPredicates(source, stage, sc)
				if err != nil {
					return result.NewError("TYPE", err.Error())
				}
			}
			return result.NewValue(source)
		}}
}

// applyPredicates keeps the elements of src for which every predicate
// lambda returns a truthy value, calling each predicate synchronously
// (container filtering is a closed, non-suspending computation, unlike
// the evaluator's general node-walking which must stay suspension-safe).
func (ev *Evaluator) applyPredicates(src *value.List, predicates []value.Value, sc *scope.Context) (*value.List, error) {
	if len(predicates) == 0 {
		return src, nil
	}
	lambdas := make([]*value.Lambda, 0, len(predicates))
	for _, p := range predicates {
		lam, ok := p.(*value.Lambda)
		if !ok {
			return nil, fmt.Errorf("filter predicate must be a function")
		}
		lambdas = append(lambdas, lam)
	}

	kept := make([]value.Value, 0, len(src.Elements))
	for _, elem := range src.Elements {
		ok := true
		for _, lam := range lambdas {
			v, err := ev.callLambdaSync(lam, []value.Value{elem})
			if err != nil {
				return nil, err
			}
			if !value.IsTruthy(v) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, elem)
		}
	}
	return value.NewList(kept), nil
}

// callLambdaSync invokes lam to completion and returns its value directly,
// for callers (like filter predicates) that need a synchronous result
// rather than a Push continuation.
func (ev *Evaluator) callLambdaSync(lam *value.Lambda, args []value.Value) (value.Value, error) {
	parent, _ := lam.Closure.(*scope.Context)
	callScope := scope.NewChild(parent)
	for i, name := range lam.Params {
		if i < len(args) {
			callScope.Define(name, args[i])
		} else {
			callScope.Define(name, value.Null{})
		}
	}
	var last value.Value = value.Null{}
	for _, node := range lam.Body {
		r := ev.Eval(node, callScope)
		switch rv := r.(type) {
		case result.Value:
			last = rv.First()
		case result.Error:
			return nil, fmt.Errorf("%s", rv.Message)
		default:
			return nil, fmt.Errorf("unsupported result from predicate body: %v", r.Kind())
		}
	}
	return last, nil
}
