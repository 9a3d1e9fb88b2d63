package rt

import "testing"

func TestInternIsIdempotent(t *testing.T) {
	c := NewClasses()
	a := c.Intern("add")
	b := c.Intern("add")
	if a != b {
		t.Fatalf("Intern not idempotent: %d != %d", a, b)
	}
	if other := c.Intern("sub"); other == a {
		t.Fatalf("distinct names interned to the same selector")
	}
}

func TestClassOfSmallIntVsObject(t *testing.T) {
	c := NewClasses()
	h := NewHeap()

	if got := c.ClassOf(h, Box(7)); got != c.SmallIntClass() {
		t.Errorf("ClassOf(small int) = %v, want SmallInt", got.Name)
	}

	str := h.Alloc(&String{class: c.StringClass(), Value: "hi"})
	if got := c.ClassOf(h, str); got != c.StringClass() {
		t.Errorf("ClassOf(string) = %v, want String", got.Name)
	}
}

func TestMethodForWalksSuperclassChain(t *testing.T) {
	c := NewClasses()
	sel := c.Intern("greet")

	base, err := c.DeclareClass("Base", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	base.Methods = append(base.Methods, &Method{Selector: sel, Args: 0})

	derived, err := c.DeclareClass("Derived", "Base", nil)
	if err != nil {
		t.Fatal(err)
	}

	m, err := MethodFor(derived, sel)
	if err != nil {
		t.Fatalf("MethodFor returned error: %v", err)
	}
	if m.Selector != sel {
		t.Errorf("wrong method found")
	}
}

func TestMethodForUnknownSelector(t *testing.T) {
	c := NewClasses()
	if _, err := MethodFor(c.ObjectClass(), c.Intern("nope")); err == nil {
		t.Fatal("expected unknown-selector error")
	}
}

func TestDeclareClassUnknownSuperclass(t *testing.T) {
	c := NewClasses()
	if _, err := c.DeclareClass("X", "Nonexistent", nil); err == nil {
		t.Fatal("expected unknown-class error")
	}
}
