package ast

import "sort"

// ClosureDecl is a closure declaration: a function literal, optionally
// bound to a name in its enclosing scope, or a method body owned by a
// ClassDecl. The capture analysis in §4.4 of the spec this tree implements
// is pure tree traversal — it never needs a runtime value — so it lives
// here rather than in the interpreter package.
type ClosureDecl struct {
	nodeImpl
	expressionMarker

	// Name is bound to the closure value in the enclosing scope when this
	// node is evaluated as an expression (§4.5 step 6). Empty for anonymous
	// closures. For a method it holds the method name; method nodes are
	// never evaluated this way: ClassDecl interpretation builds their method
	// table entries instead.
	Name       string
	Parameters []string
	Body       *Statements

	checked  bool
	decls    map[string]struct{}
	captured []string

	// ExecutionCount and Compiled back the tier-up mechanism of §4.6/§4.7.
	// Compiled holds an rt.ClosureInvoke or rt.CompiledMethod once tier-up
	// has occurred; it is declared as `any` here purely to avoid an import
	// cycle (the rt package already depends on this one for AST
	// back-pointers), not because the value it holds is untyped from the
	// interpreter's point of view.
	ExecutionCount int
	Compiled       any
}

func NewClosureDecl(name string, parameters []string, body *Statements) *ClosureDecl {
	return &ClosureDecl{
		nodeImpl:   nodeImpl{NodeClosureDecl},
		Name:       name,
		Parameters: parameters,
		Body:       body,
	}
}

// Check computes Captured exactly once, memoizing the result for the
// lifetime of the node (§3 invariant 7, §8 "calling Check repeatedly is a
// no-op after the first"). Captured is sorted so that its order, once
// fixed, is reproducible independent of Go's randomized map iteration —
// the spec only requires a stable order, not a particular one, and
// closures allocated from this node rely on positional agreement with it.
func (n *ClosureDecl) Check() {
	if n.checked {
		return
	}
	decls := make(map[string]struct{})
	uses := make(map[string]struct{})
	n.Body.CollectVarUses(decls, uses)
	for _, p := range n.Parameters {
		delete(uses, p)
	}
	for d := range decls {
		delete(uses, d)
	}
	n.decls = decls
	n.captured = make([]string, 0, len(uses))
	for name := range uses {
		n.captured = append(n.captured, name)
	}
	sort.Strings(n.captured)
	n.checked = true
}

// Captured returns the names this closure references from an enclosing
// scope, copied by value into the closure object at construction time
// (§4.5). Panics if called before Check — every evaluation path calls
// Check first, so this is a programmer error rather than a runtime one.
func (n *ClosureDecl) Captured() []string {
	if !n.checked {
		panic("ast: Captured called before Check")
	}
	return n.captured
}

// CollectVarUses folds this closure into an enclosing scope's analysis:
// its captured variables are uses of the enclosing scope, and its own name
// (if any) is a declaration in the enclosing scope.
func (n *ClosureDecl) CollectVarUses(decls, uses map[string]struct{}) {
	n.Check()
	for _, name := range n.captured {
		uses[name] = struct{}{}
	}
	if n.Name != "" {
		decls[n.Name] = struct{}{}
	}
}
