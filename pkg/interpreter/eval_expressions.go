package interpreter

import (
	"mysorescript/pkg/ast"
	"mysorescript/pkg/rt"
)

// Evaluate dispatches on the concrete expression type, mirroring the
// teacher's type-switch evaluator rather than virtual methods on the AST
// nodes themselves (§4.9).
func (c *Context) Evaluate(expr ast.Expression) (rt.Value, error) {
	switch n := expr.(type) {
	case *ast.Number:
		return c.evalNumber(n)
	case *ast.StringLiteral:
		return c.evalStringLiteral(n)
	case *ast.VarRef:
		return c.Lookup(n.Name)
	case *ast.BinOp:
		return c.evalBinOp(n)
	case *ast.Call:
		return c.evalCall(n)
	case *ast.NewExpr:
		return c.evalNewExpr(n)
	case *ast.ClosureDecl:
		return c.evalClosureDecl(n)
	default:
		return rt.Null, &errUnhandledNode{Node: expr}
	}
}

type errUnhandledNode struct{ Node ast.Node }

func (e *errUnhandledNode) Error() string { return "interpreter: unhandled node type" }

// evalNumber and evalStringLiteral implement the constant-expression
// memoization of §4.9: literals are always constant, and repeat
// evaluation returns the cached value instead of re-allocating.
func (c *Context) evalNumber(n *ast.Number) (rt.Value, error) {
	if cached := n.Cache(); cached != nil {
		return cached.(rt.Value), nil
	}
	v := rt.Box(n.Value)
	n.SetCache(v)
	return v, nil
}

func (c *Context) evalStringLiteral(n *ast.StringLiteral) (rt.Value, error) {
	if cached := n.Cache(); cached != nil {
		return cached.(rt.Value), nil
	}
	v := c.Heap.Alloc(rt.NewString(c.Classes.StringClass(), n.Value))
	n.SetCache(v)
	return v, nil
}

func (c *Context) evalBinOp(n *ast.BinOp) (rt.Value, error) {
	if n.Op.IsComparison() {
		return c.evalComparison(n)
	}
	if cached := n.Cache(); cached != nil {
		return cached.(rt.Value), nil
	}

	lhs, err := c.Evaluate(n.Lhs)
	if err != nil {
		return rt.Null, err
	}
	rhs, err := c.Evaluate(n.Rhs)
	if err != nil {
		return rt.Null, err
	}

	var result rt.Value
	if rt.IsInteger(lhs) && rt.IsInteger(rhs) {
		result = arithmeticOp(n.Op, rt.Unbox(lhs), rt.Unbox(rhs))
	} else {
		result, err = c.dispatchBinOp(n.Op, lhs, rhs)
		if err != nil {
			return rt.Null, err
		}
	}

	if constantExpr(n.Lhs) && constantExpr(n.Rhs) {
		n.SetCache(result)
	}
	return result, nil
}

// evalComparison always performs a raw tagged-word comparison, regardless
// of whether the operands are integers or object references — the spec's
// resolved Open Question (b) keeps this exactly as specified rather than
// routing mixed-type comparisons through method dispatch.
func (c *Context) evalComparison(n *ast.BinOp) (rt.Value, error) {
	lhs, err := c.Evaluate(n.Lhs)
	if err != nil {
		return rt.Null, err
	}
	rhs, err := c.Evaluate(n.Rhs)
	if err != nil {
		return rt.Null, err
	}
	var b bool
	switch n.Op {
	case ast.OpEq:
		b = lhs == rhs
	case ast.OpNe:
		b = lhs != rhs
	case ast.OpLt:
		b = lhs < rhs
	case ast.OpGt:
		b = lhs > rhs
	case ast.OpLe:
		b = lhs <= rhs
	case ast.OpGe:
		b = lhs >= rhs
	}
	if b {
		return rt.Box(1), nil
	}
	return rt.Box(0), nil
}

func arithmeticOp(op ast.BinOpKind, a, b int64) rt.Value {
	switch op {
	case ast.OpMul:
		return rt.Box(a * b)
	case ast.OpDiv:
		return rt.Box(a / b)
	case ast.OpAdd:
		return rt.Box(a + b)
	case ast.OpSub:
		return rt.Box(a - b)
	default:
		return rt.Null
	}
}

// dispatchBinOp routes an arithmetic operator to a method send when at
// least one operand is not a small integer (§4.9's operator table).
func (c *Context) dispatchBinOp(op ast.BinOpKind, lhs, rhs rt.Value) (rt.Value, error) {
	sel := c.Classes.Intern(op.MethodName())
	cls := c.Classes.ClassOf(c.Heap, lhs)
	method, err := rt.MethodFor(cls, sel)
	if err != nil {
		return rt.Null, err
	}
	return c.invokeMethod(method, lhs, sel, []rt.Value{rhs})
}

// constantExpr mirrors §4.9's "Number/StringLiteral literals are always
// constant; a BinOp is constant iff both operands are; everything else is
// not" rule without needing a method on every Expression type.
func constantExpr(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.Number, *ast.StringLiteral:
		return true
	case *ast.BinOp:
		return constantExpr(n.Lhs) && constantExpr(n.Rhs)
	default:
		return false
	}
}

// evalCall evaluates the callee before any argument, per §4.9's Call row:
// the callee (or receiver, for a method send) is evaluated first, then
// each argument in order — matching the reference trampolines' own
// callee-then-arguments sequencing.
func (c *Context) evalCall(n *ast.Call) (rt.Value, error) {
	if n.Method == "" {
		callee, err := c.Evaluate(n.Callee)
		if err != nil {
			return rt.Null, err
		}
		args, err := c.evalArgs(n.Args)
		if err != nil {
			return rt.Null, err
		}
		closure, ok := c.Heap.Get(callee).(*rt.Closure)
		if !ok {
			return rt.Null, &errNotAClosure{}
		}
		return c.invokeClosure(closure, args)
	}

	recv, err := c.Evaluate(n.Callee)
	if err != nil {
		return rt.Null, err
	}
	args, err := c.evalArgs(n.Args)
	if err != nil {
		return rt.Null, err
	}
	sel := c.Classes.Intern(n.Method)
	cls := c.Classes.ClassOf(c.Heap, recv)
	method, err := rt.MethodFor(cls, sel)
	if err != nil {
		return rt.Null, err
	}
	return c.invokeMethod(method, recv, sel, args)
}

func (c *Context) evalArgs(exprs []ast.Expression) ([]rt.Value, error) {
	args := make([]rt.Value, len(exprs))
	for i, a := range exprs {
		v, err := c.Evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

type errNotAClosure struct{}

func (e *errNotAClosure) Error() string { return "interpreter: call target is not a closure" }

func (c *Context) evalNewExpr(n *ast.NewExpr) (rt.Value, error) {
	cls, err := c.Classes.LookupClass(n.ClassName)
	if err != nil {
		return rt.Null, err
	}
	inst := rt.NewInstance(cls, len(cls.IVarNames))
	return c.Heap.Alloc(inst), nil
}

// evalClosureDecl constructs a closure object: its captures are copied by
// value from the current scope, in the fixed order Check established
// (§4.4, §4.5). If it has a Name, the new closure is bound into the
// enclosing scope under that name.
func (c *Context) evalClosureDecl(n *ast.ClosureDecl) (rt.Value, error) {
	if len(n.Parameters) > rt.MaxArity {
		return rt.Null, &errArityTooLarge{Args: len(n.Parameters)}
	}
	n.Check()
	captured := make([]rt.Value, len(n.Captured()))
	for i, name := range n.Captured() {
		v, err := c.Lookup(name)
		if err != nil {
			return rt.Null, err
		}
		captured[i] = v
	}

	invoke := c.closureTrampoline(n)
	if compiled, ok := n.Compiled.(rt.ClosureInvoke); ok {
		invoke = compiled
	}
	closure := rt.NewClosure(c.Classes.ClosureClass(), n, captured, invoke)
	v := c.Heap.Alloc(closure)

	if n.Name != "" {
		c.Declare(n.Name, v)
	}
	return v, nil
}
