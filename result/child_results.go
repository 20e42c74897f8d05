package result

import "github.com/chebwaplus/losp/value"

// ChildResults collects the Results produced by evaluating a node's
// children, preserving evaluation order while also letting a parent that
// cares about names (CONCAT's `delim`, ObjectLiteral's keys) look a
// child's result up by key in O(1).
type ChildResults struct {
	items []Result
	byKey map[string]int
}

// NewChildResults creates an empty collection.
func NewChildResults() *ChildResults {
	return &ChildResults{byKey: make(map[string]int)}
}

// Add appends r in evaluation order. If r is a keyed Value, it also
// becomes reachable via ByKey; a repeated key resolves to the most
// recent addition.
func (c *ChildResults) Add(r Result) {
	idx := len(c.items)
	c.items = append(c.items, r)
	if v, ok := r.(Value); ok && v.Key != "" {
		c.byKey[v.Key] = idx
	}
}

// Items returns every collected result in evaluation order.
func (c *ChildResults) Items() []Result {
	return c.items
}

// Len returns the number of collected results.
func (c *ChildResults) Len() int {
	return len(c.items)
}

// At returns the result at position i.
func (c *ChildResults) At(i int) Result {
	return c.items[i]
}

// ByKey returns the most recently added keyed Value result under key.
func (c *ChildResults) ByKey(key string) (Value, bool) {
	idx, ok := c.byKey[key]
	if !ok {
		return Value{}, false
	}
	return c.items[idx].(Value), true
}

// Unkeyed returns the flattened values of every collected result that did
// not carry a key, in evaluation order — the positional argument view an
// operator handler uses when it ignores named options entirely. A keyed
// Value result's Values are not included here even if it carries more
// than one; use ByKey to reach them.
func (c *ChildResults) Unkeyed() []value.Value {
	var out []value.Value
	for _, r := range c.items {
		v, ok := r.(Value)
		if !ok || v.Key != "" {
			continue
		}
		out = append(out, v.Values...)
	}
	return out
}

// KeyedValue returns the first value carried by the keyed result named
// key, if one was collected.
func (c *ChildResults) KeyedValue(key string) (value.Value, bool) {
	v, ok := c.ByKey(key)
	if !ok || len(v.Values) == 0 {
		return nil, false
	}
	return v.First(), true
}

// AnyError returns the first Error result encountered, if any: the
// evaluator short-circuits a node's children on the first error, so at
// most one is ever collected in practice, but callers that build
// ChildResults from elsewhere (tests, the writer) may need to check.
func (c *ChildResults) AnyError() (Error, bool) {
	for _, r := range c.items {
		if e, ok := r.(Error); ok {
			return e, true
		}
	}
	return Error{}, false
}
