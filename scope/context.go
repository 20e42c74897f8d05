// Package scope implements Losp's lexically nested variable context: a
// chain of maps searched root-ward on lookup, written to the innermost
// scope that already holds a name (or the current frame's scope if none
// does) on assignment.
package scope

import "github.com/chebwaplus/losp/value"

// Context is one link in the scope chain.
type Context struct {
	vars   map[string]value.Value
	parent *Context
}

// New creates a root context with no parent.
func New() *Context {
	return &Context{vars: make(map[string]value.Value)}
}

// NewChild creates a context nested under parent.
func NewChild(parent *Context) *Context {
	return &Context{vars: make(map[string]value.Value), parent: parent}
}

// Get walks the chain from this context to the root, returning the first
// binding found.
func (c *Context) Get(name string) (value.Value, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define creates or overwrites a binding in this exact scope.
func (c *Context) Define(name string, v value.Value) {
	c.vars[name] = v
}

// Assign writes into the innermost scope that currently holds name; if no
// scope in the chain holds it, it writes into this context (the current
// frame's scope).
func (c *Context) Assign(name string, v value.Value) {
	for cur := c; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	c.vars[name] = v
}

// Parent returns the enclosing context, or nil at the root.
func (c *Context) Parent() *Context {
	return c.parent
}
