package interpreter

import (
	"testing"

	"mysorescript/pkg/ast"
	"mysorescript/pkg/rt"
)

func boxed(t *testing.T, v rt.Value) int64 {
	t.Helper()
	if !rt.IsInteger(v) {
		t.Fatalf("expected integer value, got %#v", v)
	}
	return rt.Unbox(v)
}

// TestArithmeticOnSmallIntegers covers §8's first end-to-end scenario:
// 2 + 3 * 4 evaluates through BinOp without ever touching a method table.
func TestArithmeticOnSmallIntegers(t *testing.T) {
	c := NewContext(nil)
	expr := ast.NewBinOp(ast.OpAdd,
		ast.NewNumber(2),
		ast.NewBinOp(ast.OpMul, ast.NewNumber(3), ast.NewNumber(4)))

	v, err := c.Evaluate(expr)
	if err != nil {
		t.Fatal(err)
	}
	if got := boxed(t, v); got != 14 {
		t.Errorf("2 + 3*4 = %d, want 14", got)
	}
}

// TestComparisonIsRawBitCompare covers §8's comparison scenario: a
// comparison of two small integers yields a boxed 1 for true, computed by
// comparing the tagged words without any method dispatch.
func TestComparisonIsRawBitCompare(t *testing.T) {
	c := NewContext(nil)
	expr := ast.NewBinOp(ast.OpLt, ast.NewNumber(1), ast.NewNumber(2))
	v, err := c.Evaluate(expr)
	if err != nil {
		t.Fatal(err)
	}
	if boxed(t, v) != 1 {
		t.Errorf("1 < 2 should be true")
	}
}

// TestMethodDispatchOnNonIntegerOperand covers §8's dispatch scenario: a
// BinOp add where the left operand is an object sends "add" instead of
// doing integer arithmetic.
func TestMethodDispatchOnNonIntegerOperand(t *testing.T) {
	c := NewContext(nil)
	sel := c.Classes.Intern("add")
	counter, err := c.Classes.DeclareClass("Counter", "", []string{"total"})
	if err != nil {
		t.Fatal(err)
	}
	counter.Methods = append(counter.Methods, &rt.Method{
		Selector: sel,
		Args:     1,
		Function: func(self rt.Value, sel rt.Selector, args []rt.Value) rt.Value {
			inst := c.Heap.Get(self).(*rt.Instance)
			return rt.Box(rt.Unbox(inst.IVars[0]) + rt.Unbox(args[0]))
		},
	})

	inst := rt.NewInstance(counter, 1)
	inst.IVars[0] = rt.Box(10)
	self := c.Heap.Alloc(inst)

	recv := ast.NewVarRef("c")
	c.Declare("c", self)
	expr := ast.NewBinOp(ast.OpAdd, recv, ast.NewNumber(5))

	v, err := c.Evaluate(expr)
	if err != nil {
		t.Fatal(err)
	}
	if got := boxed(t, v); got != 15 {
		t.Errorf("dispatched add = %d, want 15", got)
	}
}

// TestClosureCapturesByValue covers §8's closure scenario: mutating the
// enclosing variable after the closure is built must not affect what the
// closure sees, because captures are copied at construction time.
func TestClosureCapturesByValue(t *testing.T) {
	c := NewContext(nil)
	c.Declare("x", rt.Box(1))

	decl := ast.NewClosureDecl("", nil, ast.NewStatements([]ast.Statement{
		ast.NewReturn(ast.NewVarRef("x")),
	}))
	closureVal, err := c.Evaluate(decl)
	if err != nil {
		t.Fatal(err)
	}

	c.Assign("x", rt.Box(99))

	closure := c.Heap.Get(closureVal).(*rt.Closure)
	result, err := c.invokeClosure(closure, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := boxed(t, result); got != 1 {
		t.Errorf("closure saw x = %d after mutation, want the captured 1", got)
	}
}

// TestClosureCapturedStatePersistsAcrossCalls covers the classic stateful
// counter idiom: a captured name aliases the closure's own backing slot
// (§4.6 step 3), so an assignment to it inside the body is visible to the
// next call on the same closure instance, not just within one call.
func TestClosureCapturedStatePersistsAcrossCalls(t *testing.T) {
	c := NewContext(nil)
	c.Declare("n", rt.Box(0))

	// func() { n = n + 1; return n; }
	decl := ast.NewClosureDecl("", nil, ast.NewStatements([]ast.Statement{
		ast.NewAssignment("n", ast.NewBinOp(ast.OpAdd, ast.NewVarRef("n"), ast.NewNumber(1))),
		ast.NewReturn(ast.NewVarRef("n")),
	}))
	closureVal, err := c.Evaluate(decl)
	if err != nil {
		t.Fatal(err)
	}
	closure := c.Heap.Get(closureVal).(*rt.Closure)

	for i, want := range []int64{1, 2, 3} {
		result, err := c.invokeClosure(closure, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := boxed(t, result); got != want {
			t.Errorf("call %d: got %d, want %d", i, got, want)
		}
	}

	// A fresh closure over the same declaration starts from its own
	// capture, unaffected by the first closure's mutated state.
	c.Assign("n", rt.Box(0))
	closureVal2, err := c.Evaluate(decl)
	if err != nil {
		t.Fatal(err)
	}
	closure2 := c.Heap.Get(closureVal2).(*rt.Closure)
	result, err := c.invokeClosure(closure2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := boxed(t, result); got != 1 {
		t.Errorf("second closure instance: got %d, want 1", got)
	}
}

// TestWhileAndReturnInMethod covers §8's control-flow scenario: a while
// loop inside a method body followed by a return, leaving the statement
// after the return unreached.
func TestWhileAndReturnInMethod(t *testing.T) {
	c := NewContext(nil)

	// class C { func count(n) { while (n < 5) { n = n + 1 } return n; n = -1; } }
	body := ast.NewStatements([]ast.Statement{
		ast.NewWhileLoop(
			ast.NewBinOp(ast.OpLt, ast.NewVarRef("n"), ast.NewNumber(5)),
			ast.NewStatements([]ast.Statement{
				ast.NewAssignment("n", ast.NewBinOp(ast.OpAdd, ast.NewVarRef("n"), ast.NewNumber(1))),
			}),
		),
		ast.NewReturn(ast.NewVarRef("n")),
		ast.NewAssignment("n", ast.NewNumber(-1)),
	})
	decl := ast.NewClosureDecl("count", []string{"n"}, body)
	if err := c.Interpret(ast.NewClassDecl("C", "", nil, []*ast.ClosureDecl{decl})); err != nil {
		t.Fatal(err)
	}

	call := ast.NewCall(ast.NewNewExpr("C"), "count", []ast.Expression{ast.NewNumber(0)})
	result, err := c.Evaluate(call)
	if err != nil {
		t.Fatal(err)
	}
	if got := boxed(t, result); got != 5 {
		t.Errorf("count(0) = %d, want 5", got)
	}
}

// TestTierUpPreservesSemantics covers §8's tier-up scenario: after
// crossing CompileThreshold, a backend compiles the closure in place and
// subsequent calls keep returning the same results.
func TestTierUpPreservesSemantics(t *testing.T) {
	c := NewContext(nil)
	c.Backend = testDoublingBackend{}

	decl := ast.NewClosureDecl("double", []string{"n"}, ast.NewStatements([]ast.Statement{
		ast.NewReturn(ast.NewBinOp(ast.OpMul, ast.NewVarRef("n"), ast.NewNumber(2))),
	}))
	closureVal, err := c.Evaluate(decl)
	if err != nil {
		t.Fatal(err)
	}
	closure := c.Heap.Get(closureVal).(*rt.Closure)

	for i := 0; i < CompileThreshold+3; i++ {
		result, err := c.invokeClosure(closure, []rt.Value{rt.Box(int64(i))})
		if err != nil {
			t.Fatal(err)
		}
		if got := boxed(t, result); got != int64(i)*2 {
			t.Errorf("call %d: double(%d) = %d, want %d", i, i, got, i*2)
		}
	}
	if decl.Compiled == nil {
		t.Error("expected closure to tier up after crossing the compile threshold")
	}
}

// testDoublingBackend is a minimal Backend stub that proves tier-up
// installs a distinct invoke function, without depending on pkg/backend.
type testDoublingBackend struct{}

func (testDoublingBackend) CompileClosure(decl *ast.ClosureDecl) rt.ClosureInvoke {
	return func(self *rt.Closure, args []rt.Value) rt.Value {
		return rt.Box(rt.Unbox(args[0]) * 2)
	}
}

func (testDoublingBackend) CompileMethod(decl *ast.ClosureDecl) rt.CompiledMethod {
	return func(self rt.Value, sel rt.Selector, args []rt.Value) rt.Value {
		return rt.Null
	}
}

func TestUnknownSymbolIsFatal(t *testing.T) {
	c := NewContext(nil)
	if _, err := c.Lookup("nope"); err == nil {
		t.Fatal("expected unknown-symbol error")
	}
}

func TestAssignUnboundNameCreatesGlobal(t *testing.T) {
	c := NewContext(nil)
	c.PushFrame()
	c.Assign("g", rt.Box(7))
	c.PopFrame()

	v, err := c.Lookup("g")
	if err != nil {
		t.Fatal(err)
	}
	if boxed(t, v) != 7 {
		t.Errorf("assigning an unbound name inside a call should create a global")
	}
}
