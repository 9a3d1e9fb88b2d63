// Package interpreter implements tree-walking evaluation of MysoreScript
// ASTs, the trampolines that bridge tiered-up compiled code back into that
// evaluator, and the symbol tables both rely on.
package interpreter

import (
	"fmt"

	"mysorescript/pkg/ast"
	"mysorescript/pkg/rt"
)

// CompileThreshold is the execution count at which a closure or method
// tiers up from tree-walking to compiled execution (§4.6). The reference
// implementation this spec is grounded on uses 10. It is a var rather
// than a const so a driver session's configuration can override it; the
// trampolines read it fresh on every call rather than snapshotting it, so
// changing it only ever affects executions from that point on.
var CompileThreshold = 10

// Backend compiles a closure or method declaration into native calling
// conventions once it crosses CompileThreshold. It is a contract the
// interpreter depends on but does not implement: pkg/backend supplies a
// reference implementation, and a host embedding may supply its own
// (§4.6/§4.7, §6 "Backend contract").
type Backend interface {
	CompileClosure(decl *ast.ClosureDecl) rt.ClosureInvoke
	CompileMethod(decl *ast.ClosureDecl) rt.CompiledMethod
}

// frame is one call's local-variable map. Lookups only ever consult the
// top frame — never a parent — because closures copy their captures by
// value at construction time rather than chaining through enclosing
// scopes (§4.4, §9 design notes; this is the one place this package
// deliberately departs from an Environment-style parent chain).
type frame map[string]rt.Value

// Context is the interpreter's whole mutable state: the heap and class
// registry, long-lived globals, the local-frame stack, the in-flight
// return value and flag, and the optional compilation backend. Exactly
// one Context is "current" for the trampolines it hands out as closures'
// Invoke functions to call back into (§5, §9's process-wide context
// pointer) — trampolines close over the Context that created them instead
// of consulting a package-level global, which keeps this package safe to
// use from more than one interpreter in the same process.
type Context struct {
	Heap    *rt.Heap
	Classes *rt.Classes
	Backend Backend

	globals     map[string]int // name -> root slot id in Heap
	globalOrder []string

	frames []frame

	returning bool
	retval    rt.Value
}

// NewContext builds a fresh interpreter with an empty global scope and no
// active call frames.
func NewContext(backend Backend) *Context {
	return &Context{
		Heap:    rt.NewHeap(),
		Classes: rt.NewClasses(),
		Backend: backend,
		globals: make(map[string]int),
	}
}

// PushFrame starts a new call's local scope.
func (c *Context) PushFrame() {
	c.frames = append(c.frames, make(frame))
}

// PopFrame discards the innermost call's local scope.
func (c *Context) PopFrame() {
	c.frames = c.frames[:len(c.frames)-1]
}

func (c *Context) top() frame {
	return c.frames[len(c.frames)-1]
}

// errUnknownSymbol is the §7 fatal condition for a VarRef that resolves to
// neither a local in the top frame nor a global. Assignments never produce
// it: Assign creates a global instead.
type errUnknownSymbol struct{ Name string }

func (e *errUnknownSymbol) Error() string { return fmt.Sprintf("unknown symbol %q", e.Name) }

// Lookup resolves a name per §4.10: the top local frame first (if one is
// active), then the global table.
func (c *Context) Lookup(name string) (rt.Value, error) {
	if len(c.frames) > 0 {
		if v, ok := c.top()[name]; ok {
			return v, nil
		}
	}
	if slot, ok := c.globals[name]; ok {
		return c.Heap.RootGet(slot), nil
	}
	return rt.Null, &errUnknownSymbol{Name: name}
}

// Declare introduces name as a fresh local in the top frame, or as a
// global when no frame is active (top-level declarations).
func (c *Context) Declare(name string, v rt.Value) {
	if len(c.frames) > 0 {
		c.top()[name] = v
		return
	}
	c.defineGlobal(name, v)
}

// Assign stores v into an existing binding for name. Per the spec's
// resolved Open Question (a), assigning a name that is unbound anywhere
// creates it as a new GLOBAL even when the assignment happens inside a
// call — it does not create a local, and it does not error.
func (c *Context) Assign(name string, v rt.Value) {
	if len(c.frames) > 0 {
		if _, ok := c.top()[name]; ok {
			c.top()[name] = v
			return
		}
	}
	if slot, ok := c.globals[name]; ok {
		c.Heap.RootSet(slot, v)
		return
	}
	c.defineGlobal(name, v)
}

func (c *Context) defineGlobal(name string, v rt.Value) {
	if slot, ok := c.globals[name]; ok {
		c.Heap.RootSet(slot, v)
		return
	}
	slot := c.Heap.AllocUncollectable(v)
	c.globals[name] = slot
	c.globalOrder = append(c.globalOrder, name)
}

// BindLocal sets a binding in the top frame unconditionally, used by the
// trampolines to install parameters and captured variables before
// interpreting a body.
func (c *Context) BindLocal(name string, v rt.Value) {
	c.top()[name] = v
}

// SetReturn records a return value and raises the returning flag; Interpret
// checks it after every statement to unwind the current Statements block
// early (§4.8).
func (c *Context) SetReturn(v rt.Value) {
	c.retval = v
	c.returning = true
}

// TakeReturn clears and returns the current return value and flag, called
// by a closure/method trampoline once its body has finished.
func (c *Context) TakeReturn() (rt.Value, bool) {
	v, r := c.retval, c.returning
	c.retval, c.returning = rt.Null, false
	return v, r
}

// Returning reports whether a Return statement is currently unwinding.
func (c *Context) Returning() bool {
	return c.returning
}

// HeapGet exposes Heap.Get through the Context so pkg/backend can resolve
// a method receiver's instance while only depending on a narrow local
// interface, not a direct import of this package.
func (c *Context) HeapGet(v rt.Value) rt.Object {
	return c.Heap.Get(v)
}
