package rt

import "sync"

// Object is anything a Value's handle bits can point to: a Closure, a
// String, or a plain class instance. Every heap object carries its class
// so ClassOf can recover it in O(1) (§4.2 step 1).
type Object interface {
	Class() *Class
}

// Instance is a plain object allocated by NewExpr: a class plus a flat
// array of instance-variable slots, one per entry in the class's
// IVarNames (§3, §4.9 NewExpr).
type Instance struct {
	class *Class
	IVars []Value
}

func (o *Instance) Class() *Class { return o.class }

// NewInstance builds a zeroed instance of cls with nSlots instance
// variables, all initialized to Null (§4.9 NewExpr: no constructor runs).
func NewInstance(cls *Class, nSlots int) *Instance {
	return &Instance{class: cls, IVars: make([]Value, nSlots)}
}

// String is a heap-allocated character string. MysoreScript strings are
// immutable once built, matching the immutability of the spec's built-in
// classes.
type String struct {
	class *Class
	Value string
}

func (o *String) Class() *Class { return o.class }

// NewString builds a heap string belonging to cls (ordinarily the
// registry's built-in String class).
func NewString(cls *Class, value string) *String {
	return &String{class: cls, Value: value}
}

// Closure is a heap object combining a closure declaration, the values it
// captured at construction time (copied by value, never re-read from the
// enclosing scope, per §4.5), and its current invoke function — which
// starts out as a trampoline into the tree-walking evaluator (or as the
// compiled function, when the declaration has already tiered up) and is
// replaced in place when a call through it triggers tier-up (§4.6/§4.7).
type Closure struct {
	class    *Class
	Decl     any // the *ast.ClosureDecl this closure was built from
	Captured []Value
	Invoke   ClosureInvoke
}

func (o *Closure) Class() *Class { return o.class }

// NewClosure builds a closure object belonging to cls (ordinarily the
// registry's built-in Closure class), holding decl (an *ast.ClosureDecl),
// its captured values in the order decl.Captured() lists their names, and
// its current invoke function.
func NewClosure(cls *Class, decl any, captured []Value, invoke ClosureInvoke) *Closure {
	return &Closure{class: cls, Decl: decl, Captured: captured, Invoke: invoke}
}

// Heap is the object table a Value's non-integer bits index into. Index 0
// is reserved so that no live object handle ever collides with Null.
// Objects are never removed from the table, so none is ever reclaimed;
// Collect is the GC interface's hook and does nothing (§5, §9).
type Heap struct {
	mu       sync.Mutex
	objects  []Object
	roots    map[int]Value
	nextRoot int
}

// NewHeap returns an empty heap with its reserved zero slot already
// consumed.
func NewHeap() *Heap {
	return &Heap{objects: make([]Object, 1), roots: make(map[int]Value)}
}

// Alloc stores obj in the table and returns a Value handle to it.
func (h *Heap) Alloc(obj Object) Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx := len(h.objects)
	h.objects = append(h.objects, obj)
	return objectHandle(idx)
}

// Get dereferences a Value handle. Calling it on anything IsObject does
// not accept is a programming error in the interpreter.
func (h *Heap) Get(v Value) Object {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.objects[handleIndex(v)]
}

// AllocUncollectable reserves a fresh global root slot holding an initial
// value, returning a slot id the interpreter's global symbol table can
// address by index (§9's long-lived globals storage). Root slots are
// never indexed by a Value's object-handle bits; they live in a separate
// namespace the interpreter owns.
func (h *Heap) AllocUncollectable(initial Value) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextRoot
	h.nextRoot++
	h.roots[id] = initial
	return id
}

// FreeUncollectable releases a root slot. MysoreScript globals are never
// actually freed during normal execution; this exists so the Heap's GC
// interface is complete and testable in isolation.
func (h *Heap) FreeUncollectable(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.roots, id)
}

// RootGet and RootSet read and write a root slot by id.
func (h *Heap) RootGet(id int) Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.roots[id]
}

func (h *Heap) RootSet(id int, v Value) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.roots[id] = v
}

// Collect is the GC hook of §5/§9. It performs no sweep: the table never
// drops an object, so every allocated object stays reachable for the
// heap's lifetime.
func (h *Heap) Collect() {}
