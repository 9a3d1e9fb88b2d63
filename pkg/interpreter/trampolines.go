package interpreter

import (
	"mysorescript/pkg/ast"
	"mysorescript/pkg/rt"
)

// closureTrampoline returns the invoke function a freshly-constructed
// closure over decl starts with: it re-enters the tree-walking evaluator
// on every call, counts executions, and tiers up to a compiled invoke
// once decl crosses CompileThreshold (§4.6). Once decl.Compiled is set,
// every closure built from decl afterward is "born compiled" — evalClosureDecl
// installs the compiled invoke directly instead of calling this method.
func (c *Context) closureTrampoline(decl *ast.ClosureDecl) rt.ClosureInvoke {
	return func(self *rt.Closure, args []rt.Value) rt.Value {
		if compiled, ok := decl.Compiled.(rt.ClosureInvoke); ok {
			return compiled(self, args)
		}

		c.PushFrame()
		for i, name := range decl.Parameters {
			var v rt.Value
			if i < len(args) {
				v = args[i]
			}
			c.BindLocal(name, v)
		}
		captured := decl.Captured()
		for i, name := range captured {
			c.BindLocal(name, self.Captured[i])
		}

		if err := c.Interpret(decl.Body); err != nil {
			c.PopFrame()
			panic(err)
		}
		result, _ := c.TakeReturn()

		// A captured name is bound to the closure's own backing slot, not
		// a copy (§4.6 step 3) — write the frame's current value back so
		// an assignment inside the body is visible on the next call to
		// this same closure instance.
		for i, name := range captured {
			if v, err := c.Lookup(name); err == nil {
				self.Captured[i] = v
			}
		}
		c.PopFrame()

		decl.ExecutionCount++
		if decl.ExecutionCount >= CompileThreshold && c.Backend != nil && decl.Compiled == nil {
			compiled := c.Backend.CompileClosure(decl)
			decl.Compiled = compiled
			self.Invoke = compiled
		}

		return result
	}
}

// methodTrampoline is the method equivalent of closureTrampoline (§4.6,
// §4.7): it additionally exposes the receiver's instance variables as
// plain local bindings for the method body's duration, and writes any
// changes back to the instance afterward, since a method body assigns to
// an ivar the same way it would assign to any other name in scope.
func (c *Context) methodTrampoline(decl *ast.ClosureDecl) rt.CompiledMethod {
	return func(self rt.Value, sel rt.Selector, args []rt.Value) rt.Value {
		if compiled, ok := decl.Compiled.(rt.CompiledMethod); ok {
			return compiled(self, sel, args)
		}

		inst, _ := c.Heap.Get(self).(*rt.Instance)

		c.PushFrame()
		if inst != nil {
			for i, name := range inst.Class().IVarNames {
				c.BindLocal(name, inst.IVars[i])
			}
		}
		for i, name := range decl.Parameters {
			var v rt.Value
			if i < len(args) {
				v = args[i]
			}
			c.BindLocal(name, v)
		}

		if err := c.Interpret(decl.Body); err != nil {
			c.PopFrame()
			panic(err)
		}
		result, _ := c.TakeReturn()

		if inst != nil {
			for i, name := range inst.Class().IVarNames {
				v, err := c.Lookup(name)
				if err == nil {
					inst.IVars[i] = v
				}
			}
		}
		c.PopFrame()

		decl.ExecutionCount++
		if decl.ExecutionCount >= CompileThreshold && c.Backend != nil && decl.Compiled == nil {
			compiled := c.Backend.CompileMethod(decl)
			decl.Compiled = compiled
		}

		return result
	}
}

// invokeClosure calls a closure with the same panic-to-error recovery as
// invokeMethod, for the same reason: rt.ClosureInvoke has no error return.
func (c *Context) invokeClosure(closure *rt.Closure, args []rt.Value) (result rt.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	result = closure.Invoke(closure, args)
	return result, nil
}

// invokeMethod calls a resolved method with the trampoline calling
// convention of §4.3, recovering the panic a body's fatal Interpret error
// is smuggled out as (Go's calling convention for rt.CompiledMethod has
// no error return, matching the reference C++ trampolines' void* ABI).
func (c *Context) invokeMethod(m *rt.Method, self rt.Value, sel rt.Selector, args []rt.Value) (result rt.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	result = m.Function(self, sel, args)
	return result, nil
}
