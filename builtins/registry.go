// Package builtins implements Losp's standard operator handlers: the
// ordinary (non-special) operators an OperatorNode resolves to once
// scope-bound lambda lookup has failed. Grounded on the teacher's
// map-based `builtins.Registry` (name -> handler, `Register`/`Get`),
// generalized with a second "standard" table so `LOSP:`-prefixed
// operator names can bypass host overrides, per spec's host-extension
// rules.
package builtins

import (
	"strings"

	"github.com/chebwaplus/losp/parser"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
)

// OperatorFunc implements one standard operator: it receives the calling
// scope (property/merge/control-flow operators need it; pure functions
// ignore it) and the already-evaluated ChildResults for its arguments —
// cr.Unkeyed() gives the positional values most operators care about;
// cr.KeyedValue(name) reaches a named option like CONCAT's `delim` or
// ANY/ALL's `~` that a positional-only view would lose.
type OperatorFunc func(sc *scope.Context, cr *result.ChildResults) result.Result

// Registry holds the immutable standard operator table plus whatever a
// host has registered as overrides or additions via RegisterOperator.
type Registry struct {
	standard map[string]OperatorFunc
	host     map[string]OperatorFunc
}

// NewRegistry creates a Registry with every standard operator installed.
func NewRegistry() *Registry {
	r := &Registry{
		standard: make(map[string]OperatorFunc),
		host:     make(map[string]OperatorFunc),
	}
	r.registerArithmetic()
	r.registerComparison()
	r.registerTruthiness()
	r.registerContainers()
	r.registerStrings()
	r.registerControlFlow()
	r.registerMisc()
	return r
}

func (r *Registry) register(name string, fn OperatorFunc) {
	r.standard[name] = fn
}

// RegisterOperator installs a host override or addition. Special-operator
// names (IF, FOR, ...) may never be overridden this way — hosts extend
// those via parser.RegisterSpecialOperator instead — and `LOSP:`-prefixed
// names are reserved for the standard table, never resolvable as host
// overrides (see Lookup/LookupStandard).
func (r *Registry) RegisterOperator(name string, fn OperatorFunc) error {
	if parser.IsSpecialOperatorName(name) {
		return errAlreadySpecial(name)
	}
	if strings.HasPrefix(name, "LOSP:") {
		return errReservedPrefix(name)
	}
	r.host[name] = fn
	return nil
}

// Lookup resolves name honoring host overrides: a host registration wins
// over the standard table of the same name.
func (r *Registry) Lookup(name string) (OperatorFunc, bool) {
	if fn, ok := r.host[name]; ok {
		return fn, true
	}
	fn, ok := r.standard[name]
	return fn, ok
}

// LookupStandard resolves name in the standard table only, ignoring any
// host override — this is what an `LOSP:`-prefixed operator name forces.
func (r *Registry) LookupStandard(name string) (OperatorFunc, bool) {
	fn, ok := r.standard[name]
	return fn, ok
}
