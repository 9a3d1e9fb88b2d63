package ast

import "testing"

func TestClosureCheckIsMemoized(t *testing.T) {
	decl := NewClosureDecl("", []string{"a"}, NewStatements([]Statement{
		NewReturn(NewBinOp(OpAdd, NewVarRef("a"), NewVarRef("b"))),
	}))
	decl.Check()
	first := append([]string(nil), decl.Captured()...)
	decl.Check()
	second := decl.Captured()

	if len(first) != len(second) {
		t.Fatalf("Captured changed across Check calls: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Captured order changed: %v vs %v", first, second)
		}
	}
}

func TestClosureCapturesExcludeParamsAndLocals(t *testing.T) {
	// func(a) { var local = a; return local + outer; }
	decl := NewClosureDecl("", []string{"a"}, NewStatements([]Statement{
		NewDecl("local", NewVarRef("a")),
		NewReturn(NewBinOp(OpAdd, NewVarRef("local"), NewVarRef("outer"))),
	}))
	decl.Check()
	captured := decl.Captured()
	if len(captured) != 1 || captured[0] != "outer" {
		t.Fatalf("Captured = %v, want [outer]", captured)
	}
}

func TestCapturedPanicsBeforeCheck(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Captured to panic before Check")
		}
	}()
	decl := NewClosureDecl("", nil, NewStatements(nil))
	decl.Captured()
}

func TestCollectVarUsesNestedClosure(t *testing.T) {
	inner := NewClosureDecl("helper", nil, NewStatements([]Statement{
		NewReturn(NewVarRef("shared")),
	}))
	outer := NewStatements([]Statement{
		inner,
		NewReturn(NewCall(NewVarRef("helper"), "", nil)),
	})

	decls := make(map[string]struct{})
	uses := make(map[string]struct{})
	outer.CollectVarUses(decls, uses)

	if _, ok := decls["helper"]; !ok {
		t.Error("named closure should declare its own name in the enclosing scope")
	}
	if _, ok := uses["shared"]; !ok {
		t.Error("inner closure's capture should surface as a use in the enclosing scope")
	}
}
