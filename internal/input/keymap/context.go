package keymap

import (
	"strings"
	"sync"
)

// Context holds the flags and variables "when" expressions read.
// It is safe for concurrent use.
type Context struct {
	mu         sync.RWMutex
	conditions map[string]bool
	variables  map[string]string
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		conditions: make(map[string]bool),
		variables:  make(map[string]string),
	}
}

// Set sets a condition flag.
func (c *Context) Set(name string, value bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conditions[name] = value
}

// SetVariable sets a variable.
func (c *Context) SetVariable(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.variables[name] = value
}

// Evaluate evaluates a condition expression. The empty expression is true.
// Supports: name, !name, a && b, a || b, variable == value.
func (c *Context) Evaluate(expr string) bool {
	if c == nil {
		return strings.TrimSpace(expr) == ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.evaluate(strings.TrimSpace(expr))
}

// evaluate requires the read lock.
func (c *Context) evaluate(expr string) bool {
	if expr == "" {
		return true
	}

	// || binds loosest, then &&.
	if i := strings.Index(expr, "||"); i >= 0 {
		return c.evaluate(strings.TrimSpace(expr[:i])) || c.evaluate(strings.TrimSpace(expr[i+2:]))
	}
	if i := strings.Index(expr, "&&"); i >= 0 {
		return c.evaluate(strings.TrimSpace(expr[:i])) && c.evaluate(strings.TrimSpace(expr[i+2:]))
	}

	if strings.HasPrefix(expr, "!") {
		return !c.evaluate(strings.TrimSpace(expr[1:]))
	}

	if i := strings.Index(expr, "=="); i >= 0 {
		left := strings.TrimSpace(expr[:i])
		right := strings.TrimSpace(expr[i+2:])
		val, ok := c.variables[left]
		return ok && val == right
	}

	return c.conditions[expr]
}
