package rt

// These constants name the classes every Context wires up before interpreting
// any user code: small integers, strings, and closures each need a class
// so they can receive messages like any other object (§3, §4.2).
const (
	ClassSmallInt = "SmallInt"
	ClassString   = "String"
	ClassClosure  = "Closure"
	ClassObject   = "Object"
)

// Classes bundles the process-wide selector and class tables a running
// interpreter needs. It is separate from Heap because selectors and
// classes are immutable program structure, while the heap is mutable
// object storage — mirroring the spec's own separation in §3/§4.2.
type Classes struct {
	selectors *selectorTable
	classes   *classTable

	object   *Class
	smallInt *Class
	string   *Class
	closure  *Class
}

// NewClasses registers the built-in classes and returns a ready registry.
func NewClasses() *Classes {
	c := &Classes{selectors: newSelectorTable(), classes: newClassTable()}

	c.object = &Class{Name: ClassObject}
	c.classes.register(c.object)

	c.smallInt = &Class{Name: ClassSmallInt, Superclass: c.object}
	c.classes.register(c.smallInt)

	c.string = &Class{Name: ClassString, Superclass: c.object}
	c.classes.register(c.string)

	c.closure = &Class{Name: ClassClosure, Superclass: c.object}
	c.classes.register(c.closure)

	return c
}

// Intern returns the Selector for a method name, interning it on first
// use (§4.2 invariant 3).
func (c *Classes) Intern(name string) Selector {
	return c.selectors.intern(name)
}

// DeclareClass registers a new user class. superclass is the Object class
// when superclassName is "".
func (c *Classes) DeclareClass(name, superclassName string, ivarNames []string) (*Class, error) {
	super := c.object
	if superclassName != "" {
		s, ok := c.classes.lookup(superclassName)
		if !ok {
			return nil, &errUnknownClass{Name: superclassName}
		}
		super = s
	}
	cls := &Class{Name: name, Superclass: super, IVarNames: ivarNames}
	c.classes.register(cls)
	return cls, nil
}

// LookupClass finds a registered class by name.
func (c *Classes) LookupClass(name string) (*Class, error) {
	cls, ok := c.classes.lookup(name)
	if !ok {
		return nil, &errUnknownClass{Name: name}
	}
	return cls, nil
}

// ClassOf returns the class of any Value: the tag alone decides it for
// small integers, and the heap object's stored class decides it otherwise
// (§4.2 step 1).
func (c *Classes) ClassOf(h *Heap, v Value) *Class {
	if IsInteger(v) {
		return c.smallInt
	}
	return h.Get(v).Class()
}

// ObjectClass, SmallIntClass, StringClass, and ClosureClass expose the
// built-in classes so the interpreter can allocate instances of them
// (boxing a string literal, constructing a closure, and so on) without
// a name lookup on every use.
func (c *Classes) ObjectClass() *Class   { return c.object }
func (c *Classes) SmallIntClass() *Class { return c.smallInt }
func (c *Classes) StringClass() *Class   { return c.string }
func (c *Classes) ClosureClass() *Class  { return c.closure }

// MethodFor walks cls and its superclass chain looking for sel, exactly
// as §4.2 step 2 specifies: the most specific override wins, and absence
// all the way to Object is the unknown-selector error of §7.
func MethodFor(cls *Class, sel Selector) (*Method, error) {
	for c := cls; c != nil; c = c.Superclass {
		if m := c.MethodNamed(sel); m != nil {
			return m, nil
		}
	}
	return nil, &errUnknownSelector{ClassName: cls.Name, Selector: sel}
}
