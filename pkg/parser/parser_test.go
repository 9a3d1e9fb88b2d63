package parser

import (
	"testing"

	"mysorescript/pkg/ast"
	"mysorescript/pkg/interpreter"
	"mysorescript/pkg/rt"
)

func run(t *testing.T, src string) *interpreter.Context {
	t.Helper()
	p, err := New(src)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	c := interpreter.NewContext(nil)
	if err := c.Interpret(prog); err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	return c
}

func mustInt(t *testing.T, c *interpreter.Context, name string) int64 {
	t.Helper()
	v, err := c.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	if !rt.IsInteger(v) {
		t.Fatalf("%q is not an integer", name)
	}
	return rt.Unbox(v)
}

func TestParseArithmetic(t *testing.T) {
	c := run(t, `var r = 2 + 3 * 4;`)
	if got := mustInt(t, c, "r"); got != 14 {
		t.Errorf("r = %d, want 14", got)
	}
}

func TestParseMethodDispatchOnNonIntegerOperand(t *testing.T) {
	c := run(t, `
		class Box {
			val;
			func add(o) { return new Box; }
		}
		var b = new Box;
		var r = b + 1;
	`)
	v, err := c.Lookup("r")
	if err != nil {
		t.Fatal(err)
	}
	if !rt.IsObject(v) {
		t.Fatalf("r should be a Box instance, got %#v", v)
	}
	cls := c.Classes.ClassOf(c.Heap, v)
	if cls.Name != "Box" {
		t.Errorf("r's class = %s, want Box", cls.Name)
	}
}

func TestParseClosureCapturesByValue(t *testing.T) {
	c := run(t, `
		var x = 1;
		func make() { return func() { return x; }; }
		var f = make();
		x = 99;
		var r = f();
	`)
	if got := mustInt(t, c, "r"); got != 1 {
		t.Errorf("r = %d, want 1", got)
	}
}

func TestParseWhileAndReturnInMethod(t *testing.T) {
	c := run(t, `
		class C {
			func fact(n) {
				var a = 1;
				while (n > 0) {
					a = a * n;
					n = n - 1;
				}
				return a;
			}
		}
		var r = (new C).fact(5);
	`)
	if got := mustInt(t, c, "r"); got != 120 {
		t.Errorf("r = %d, want 120", got)
	}
}

func TestParseNoElseClause(t *testing.T) {
	p, err := New(`if (1) { var x = 1; } else { var y = 2; }`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected a syntax error: this grammar has no else clause")
	}
}

func TestParseSyntaxErrorRejectsBatch(t *testing.T) {
	p, err := New(`var x = ;`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected a syntax error")
	}
}

func TestParseStringLiteral(t *testing.T) {
	p, err := New(`var s = "hello";`)
	if err != nil {
		t.Fatal(err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	decl, ok := prog.Body[0].(*ast.Decl)
	if !ok {
		t.Fatalf("expected *ast.Decl, got %T", prog.Body[0])
	}
	lit, ok := decl.Init.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expected *ast.StringLiteral, got %T", decl.Init)
	}
	if lit.Value != "hello" {
		t.Errorf("literal value = %q, want %q", lit.Value, "hello")
	}
}
