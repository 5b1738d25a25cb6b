package formula

import (
	"math"
	"sort"
)

// MaxVariables is the fixed capacity of a context's variable table.
// Defining a variable beyond this limit fails without mutating the table.
const MaxVariables = 64

// Func is a custom function callback. It receives the already-evaluated
// argument values and returns the result. Arguments are always evaluated
// eagerly, left to right, before the callback is invoked.
//
// State a callback needs (counters, host entities, random sources) should be
// captured in its closure; the registrant owns that state and is responsible
// for its lifetime and thread safety.
type Func func(args []float64) float64

// Function is a registered custom function with its arity bounds.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 means variadic
	Fn      Func
}

// Context is the binding environment expressions are evaluated against: a
// variable table, a custom function table, and the error state of the most
// recent operation.
//
// A Context is owned by a single caller and is not safe for concurrent use.
// To evaluate from several goroutines, give each its own Context (Clone
// avoids re-registering constants and functions).
type Context struct {
	names   []string // insertion order, drives index-based iteration
	vars    map[string]float64
	funcs   map[string]Function
	lastErr string
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		vars:  make(map[string]float64, MaxVariables),
		funcs: make(map[string]Function),
	}
}

// Define sets a variable. Redefining an existing name overwrites its value
// and does not consume capacity. Defining a new name beyond MaxVariables
// fails with ErrTooManyVariables and leaves the table untouched.
func (c *Context) Define(name string, value float64) error {
	if err := checkName(name); err != nil {
		return err
	}

	if _, exists := c.vars[name]; !exists {
		if len(c.names) >= MaxVariables {
			return ErrTooManyVariables
		}
		c.names = append(c.names, name)
	}
	c.vars[name] = value
	return nil
}

// Get returns the value of a variable, or 0 if it is not defined. This
// default mirrors what expressions see: a reference to an undefined variable
// evaluates to 0 rather than failing.
func (c *Context) Get(name string) float64 {
	return c.vars[name]
}

// Lookup returns the value of a variable and whether it is defined.
func (c *Context) Lookup(name string) (float64, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Has reports whether a variable is defined. Lookups are case-sensitive
// exact matches.
func (c *Context) Has(name string) bool {
	_, ok := c.vars[name]
	return ok
}

// Remove deletes a variable, reporting whether it existed.
func (c *Context) Remove(name string) bool {
	if _, ok := c.vars[name]; !ok {
		return false
	}
	delete(c.vars, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes all variables. Functions and the error state are kept.
func (c *Context) Clear() {
	c.names = c.names[:0]
	for name := range c.vars {
		delete(c.vars, name)
	}
}

// Len returns the number of defined variables.
func (c *Context) Len() int {
	return len(c.names)
}

// VariableAt returns the i-th variable in definition order. ok is false when
// i is out of range.
func (c *Context) VariableAt(i int) (name string, value float64, ok bool) {
	if i < 0 || i >= len(c.names) {
		return "", 0, false
	}
	name = c.names[i]
	return name, c.vars[name], true
}

// Variables returns the defined variable names in definition order.
func (c *Context) Variables() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// RegisterFunction adds a custom function. minArgs and maxArgs bound the
// argument count checked at parse time; maxArgs of -1 means variadic.
// A custom function shadows a built-in of the same name.
func (c *Context) RegisterFunction(name string, minArgs, maxArgs int, fn Func) error {
	if err := checkName(name); err != nil {
		return err
	}
	if fn == nil {
		return ErrNilFunction
	}
	if minArgs < 0 || (maxArgs >= 0 && maxArgs < minArgs) {
		return ErrInvalidArity
	}

	c.funcs[name] = Function{Name: name, MinArgs: minArgs, MaxArgs: maxArgs, Fn: fn}
	return nil
}

// UnregisterFunction removes a custom function, reporting whether it was
// registered. Built-ins cannot be unregistered.
func (c *Context) UnregisterFunction(name string) bool {
	if _, ok := c.funcs[name]; !ok {
		return false
	}
	delete(c.funcs, name)
	return true
}

// Clone returns an independent copy of the context. The variable table is
// deep-copied; function registrations are shared by reference, since their
// closures capture caller-owned state the context cannot duplicate. The
// clone starts with a clean error state.
func (c *Context) Clone() *Context {
	clone := &Context{
		names: make([]string, len(c.names)),
		vars:  make(map[string]float64, len(c.vars)),
		funcs: make(map[string]Function, len(c.funcs)),
	}
	copy(clone.names, c.names)
	for name, v := range c.vars {
		clone.vars[name] = v
	}
	for name, fn := range c.funcs {
		clone.funcs[name] = fn
	}
	return clone
}

// SeedConstants defines the common mathematical constants pi, e, tau, and
// phi (the golden ratio) as ordinary variables. They count against the
// variable capacity and may be overwritten or removed like any other
// variable.
func (c *Context) SeedConstants() error {
	constants := []struct {
		name  string
		value float64
	}{
		{"pi", math.Pi},
		{"e", math.E},
		{"tau", 2 * math.Pi},
		{"phi", math.Phi},
	}
	for _, k := range constants {
		if err := c.Define(k.name, k.value); err != nil {
			return err
		}
	}
	return nil
}

// LastError returns the message recorded by the most recent Evaluate,
// Compile, or Check that failed, or "" if it succeeded.
func (c *Context) LastError() string {
	return c.lastErr
}

// HasError reports whether an error message is recorded.
func (c *Context) HasError() bool {
	return c.lastErr != ""
}

// ClearError discards the recorded error message.
func (c *Context) ClearError() {
	c.lastErr = ""
}

// LookupFunction implements parser.Registry. Custom functions are consulted
// first, then built-ins.
func (c *Context) LookupFunction(name string) (minArgs, maxArgs int, ok bool) {
	if fn, found := c.funcs[name]; found {
		return fn.MinArgs, fn.MaxArgs, true
	}
	if b, found := builtins[name]; found {
		return b.minArgs, b.maxArgs, true
	}
	return 0, 0, false
}

// FunctionNames implements parser.Registry. It returns custom and built-in
// function names, sorted, for use in error suggestions.
func (c *Context) FunctionNames() []string {
	names := make([]string, 0, len(c.funcs)+len(builtins))
	for name := range c.funcs {
		names = append(names, name)
	}
	for name := range builtins {
		if _, shadowed := c.funcs[name]; !shadowed {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// checkName validates that a name is a legal FEL identifier.
func checkName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		isAlpha := ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		isDigit := ch >= '0' && ch <= '9'
		if !isAlpha && !(isDigit && i > 0) {
			return ErrInvalidName
		}
	}
	return nil
}
