// Package eval implements Losp's tree-walking evaluator. Evaluation drives
// an explicit frame stack rather than Go's call stack, so that a node's
// Result can ask the driving loop to evaluate more nodes (result.Push)
// or park on a future (result.Async) without the evaluator itself ever
// recursing — the discipline spec.md's evaluation model requires so that
// continuations survive without goroutines. Grounded on the teacher's
// bytecode `vm.VM` (explicit operand/frame stack, an executeLoop driving
// StackFrame advancement) generalized from bytecode instructions to AST
// nodes.
package eval

import (
	"github.com/chebwaplus/losp/builtins"
	"github.com/chebwaplus/losp/parser"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// Evaluator holds everything evaluation needs beyond the node being
// evaluated: the operator registry, a tick budget against runaway
// recursion (FOR/FORI loops, lambda calls), and an injectable clock for
// WAIT.
type Evaluator struct {
	Registry  *builtins.Registry
	TickLimit int64
	Clock     Clock

	ticks int64
}

// NewEvaluator creates an Evaluator with the standard builtin registry, a
// default tick budget, and the real wall clock.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Registry:  builtins.NewRegistry(),
		TickLimit: 1_000_000,
		Clock:     RealClock{},
	}
}

// frame is one pending node evaluation: its children (if any) are
// evaluated left to right into results before finalize runs.
type frame struct {
	node     value.Node
	children []value.Node
	scope    *scope.Context
	idx      int
	results  *result.ChildResults
	finalize func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result
}

// Eval evaluates node in sc and returns its Result. This is the single
// entry point the rest of the system (lambda calls, the conformance
// runner, cmd/losp) drives evaluation through. If evaluation never
// suspends, the terminal Value or Error is returned directly; if it
// suspends at least once, an Async wrapping a top-level proxy is
// returned instead, and that proxy is completed (possibly from another
// goroutine, via the Clock) once the terminal result is ready.
func (ev *Evaluator) Eval(node value.Node, sc *scope.Context) result.Result {
	d := &driver{ev: ev, stack: []*frame{ev.newFrame(node, sc)}}
	return d.run()
}

// driver owns one evaluation's frame stack plus the top-level async
// proxy that gets created lazily the first time some frame suspends.
// Every later suspension in the same evaluation folds into that same
// proxy rather than minting a new one, per spec.
type driver struct {
	ev       *Evaluator
	stack    []*frame
	topProxy *result.AsyncProxy
}

// run drains the stack, descending into children and finalizing
// completed frames, until the stack empties (a terminal result) or a
// frame's finalize returns Async (a suspension). Either way it returns
// the Result to report at this call site — the original synchronous
// caller on the first run, or nothing useful on a resumed run (the
// terminal/suspend case already delivered through topProxy).
func (d *driver) run() result.Result {
	for len(d.stack) > 0 {
		top := d.stack[len(d.stack)-1]

		if top.idx < len(top.children) {
			child := top.children[top.idx]
			d.stack = append(d.stack, d.ev.newFrame(child, top.scope))
			continue
		}

		d.ev.ticks++
		if d.ev.TickLimit > 0 && d.ev.ticks > d.ev.TickLimit {
			return d.terminal(result.NewError("TICKS", "tick limit exceeded"))
		}

		r := top.finalize(d.ev, top.scope, top.results)
		sc := top.scope
		d.stack = d.stack[:len(d.stack)-1]

		if done, out := d.handle(r, sc); done {
			return out
		}
	}
	return d.terminal(result.NewError("INTERNAL", "evaluator stack emptied without a result"))
}

// handle processes one frame's finalize outcome r, which ran in scope
// sc: a Push grows the stack with a fresh frame and keeps looping; an
// Error, or a Value when the stack is empty, ends this pass of the loop; an
// Async suspends the whole driver; anything else folds into the new
// top frame's results and the loop continues. done reports whether run
// should stop advancing and return out.
func (d *driver) handle(r result.Result, sc *scope.Context) (done bool, out result.Result) {
	if push, ok := r.(result.Push); ok {
		pushScope := push.Scope
		if pushScope == nil {
			pushScope = sc
		}
		d.stack = append(d.stack, d.ev.newPushFrame(push, pushScope))
		return false, nil
	}

	if _, isErr := r.(result.Error); isErr {
		return true, d.terminal(r)
	}

	if asyncR, ok := r.(result.Async); ok {
		return true, d.suspend(asyncR, sc)
	}

	if len(d.stack) == 0 {
		return true, d.terminal(r)
	}

	parent := d.stack[len(d.stack)-1]
	if v, ok := r.(result.Value); ok {
		parent.results.Add(v)
	} else {
		parent.results.Add(r)
	}
	parent.idx++
	return false, nil
}

// terminal reports r as this evaluation's outcome. If some earlier
// suspension already created a top-level proxy, r also completes that
// proxy (the only way a resumed, detached run can report its result —
// nothing is left synchronously waiting on its return value at that
// point). Safe to call more than once: AsyncProxy.Resolve keeps only
// the first completion.
func (d *driver) terminal(r result.Result) result.Result {
	if d.topProxy != nil {
		d.topProxy.Resolve(r)
	}
	return r
}

// suspend parks the driver on asyncR's proxy: sc is the scope the
// suspending frame ran in, needed if the proxy resolves with a bare
// Push that carries no scope of its own. The first suspension in an
// evaluation mints the top-level proxy that gets handed back to the
// original caller; later suspensions reuse it. Once asyncR's proxy
// fires, the resolved result is handled exactly as if it had been
// returned synchronously from the frame that suspended, and the driver
// keeps running from there — this is the re-entry spec.md requires.
func (d *driver) suspend(asyncR result.Async, sc *scope.Context) result.Result {
	if d.topProxy == nil {
		d.topProxy = result.NewAsyncProxy()
	}
	asyncR.Proxy.OnComplete(func(inner result.Result) {
		if _, ok := inner.(result.Async); ok {
			d.terminal(result.NewError("ASYNC", "async processes cannot emit another async result"))
			return
		}
		if done, _ := d.handle(inner, sc); !done {
			d.run()
		}
	})
	return result.NewAsync(d.topProxy)
}

// newPushFrame builds the frame that evaluates a Push result's requested
// nodes and hands their collected ChildResults to its OnComplete
// continuation once done.
func (ev *Evaluator) newPushFrame(push result.Push, sc *scope.Context) *frame {
	return &frame{
		node:     nil,
		children: push.Nodes,
		scope:    sc,
		results:  result.NewChildResults(),
		finalize: func(ev *Evaluator, sc *scope.Context, cr *result.ChildResults) result.Result {
			return push.OnComplete(cr)
		},
	}
}

// EvalBody sequentially evaluates body nodes in sc and emits every
// evaluated result's values as one multi-value result, in order (this is
// how a lambda's accumulated results reach its caller per §4.5). It is
// expressed as a Push so it runs through the same frame machinery as
// everything else.
func EvalBody(body []value.Node, sc *scope.Context) result.Push {
	p := result.NewPush(body, func(cr *result.ChildResults) result.Result {
		var out []value.Value
		for _, r := range cr.Items() {
			if v, ok := r.(result.Value); ok {
				out = append(out, v.Values...)
			}
		}
		return result.Value{Values: out}
	})
	p.Scope = sc
	return p
}

// parserNode type-asserts a value.Node back to the full parser.Node API.
// Every concrete node type produced by Parse satisfies both; this helper
// documents the narrowing at each call site instead of repeating the
// assertion inline everywhere.
func parserNode(n value.Node) parser.Node {
	return n.(parser.Node)
}
