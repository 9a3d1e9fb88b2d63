// Package backend supplies a reference implementation of the interpreter's
// Backend contract: the thing tier-up hands a declaration to once it
// crosses the execution-count threshold (§4.6/§4.7, §6 "Backend contract").
//
// A real backend would emit native code and return trampolines into it.
// This one has no native code generator to call — none of the example
// programs this module is grounded on carry one either — so it "compiles"
// by building a closure over the declaration's fields and the interpreter
// that still walks the AST, but skips the bookkeeping (execution counting,
// compiled-field checks) the tree-walking trampolines pay on every call.
// That is enough to exercise the tier-up path end to end and give callers
// a real, distinct function value after compilation, which is what the
// contract promises; it is not a claim that this produces faster code.
package backend

import (
	"mysorescript/pkg/ast"
	"mysorescript/pkg/rt"
)

// Interpreter is the subset of *interpreter.Context the backend needs to
// re-run a body. It is expressed as an interface here, rather than an
// import of pkg/interpreter, so this package depends only on the methods
// it calls; *interpreter.Context satisfies it, and pkg/driver is what
// wires the two together.
type Interpreter interface {
	PushFrame()
	PopFrame()
	BindLocal(name string, v rt.Value)
	Interpret(stmt ast.Statement) error
	TakeReturn() (rt.Value, bool)
	Lookup(name string) (rt.Value, error)
}

// Reference is a Backend that compiles by capturing the interpreter it
// was built against and running the declaration's body directly, without
// the tier-up bookkeeping the tree-walking trampolines carry.
type Reference struct {
	Interp Interpreter
}

// New returns a Reference backend bound to interp.
func New(interp Interpreter) *Reference {
	return &Reference{Interp: interp}
}

// CompileClosure returns a closure invoke function that runs decl's body
// directly, binding parameters and captured variables exactly as the
// tree-walking trampoline does, but without counting executions or
// checking for a (now redundant) compiled cache.
func (r *Reference) CompileClosure(decl *ast.ClosureDecl) rt.ClosureInvoke {
	return func(self *rt.Closure, args []rt.Value) rt.Value {
		r.Interp.PushFrame()
		for i, name := range decl.Parameters {
			var v rt.Value
			if i < len(args) {
				v = args[i]
			}
			r.Interp.BindLocal(name, v)
		}
		captured := decl.Captured()
		for i, name := range captured {
			r.Interp.BindLocal(name, self.Captured[i])
		}
		if err := r.Interp.Interpret(decl.Body); err != nil {
			r.Interp.PopFrame()
			panic(err)
		}
		result, _ := r.Interp.TakeReturn()

		// Write captured locals back to the closure's backing slots, same
		// as the tree-walking trampoline — a captured name aliases the
		// closure's own storage, not a copy (§4.6 step 3).
		for i, name := range captured {
			if v, err := r.Interp.Lookup(name); err == nil {
				self.Captured[i] = v
			}
		}
		r.Interp.PopFrame()
		return result
	}
}

// CompileMethod is CompileClosure's method-call-convention counterpart:
// the receiver's instance variables are bound as locals for the body's
// duration and any assignments are written back afterward, matching the
// tree-walking method trampoline's semantics.
func (r *Reference) CompileMethod(decl *ast.ClosureDecl) rt.CompiledMethod {
	return func(self rt.Value, sel rt.Selector, args []rt.Value) rt.Value {
		inst, ok := selfInstance(r.Interp, self)
		r.Interp.PushFrame()
		if ok {
			for i, name := range inst.Class().IVarNames {
				r.Interp.BindLocal(name, inst.IVars[i])
			}
		}
		for i, name := range decl.Parameters {
			var v rt.Value
			if i < len(args) {
				v = args[i]
			}
			r.Interp.BindLocal(name, v)
		}
		if err := r.Interp.Interpret(decl.Body); err != nil {
			r.Interp.PopFrame()
			panic(err)
		}
		result, _ := r.Interp.TakeReturn()
		if ok {
			for i, name := range inst.Class().IVarNames {
				if v, err := r.Interp.Lookup(name); err == nil {
					inst.IVars[i] = v
				}
			}
		}
		r.Interp.PopFrame()
		return result
	}
}

// instanceReader is satisfied by the one interpreter type this backend is
// ever actually built against; it lets CompileMethod reach the receiver's
// heap object without this package importing pkg/interpreter.
type instanceReader interface {
	HeapGet(rt.Value) rt.Object
}

func selfInstance(interp Interpreter, self rt.Value) (*rt.Instance, bool) {
	r, ok := interp.(instanceReader)
	if !ok {
		return nil, false
	}
	inst, ok := r.HeapGet(self).(*rt.Instance)
	return inst, ok
}
