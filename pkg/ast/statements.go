package ast

// Statements is a block of statements executed in order. Interpretation
// stops early once the enclosing call is returning (§4.8); that behavior
// belongs to the interpreter, not to this node.
type Statements struct {
	nodeImpl
	statementMarker
	Body []Statement
}

// NewStatements builds a statement block.
func NewStatements(body []Statement) *Statements {
	return &Statements{nodeImpl: nodeImpl{NodeStatements}, Body: body}
}

func (n *Statements) CollectVarUses(decls, uses map[string]struct{}) {
	for _, s := range n.Body {
		s.CollectVarUses(decls, uses)
	}
}

// Decl is a variable declaration, with an optional initializer.
type Decl struct {
	nodeImpl
	statementMarker
	Name string
	Init Expression // nil if the declaration has no initializer
}

func NewDecl(name string, init Expression) *Decl {
	return &Decl{nodeImpl: nodeImpl{NodeDecl}, Name: name, Init: init}
}

func (n *Decl) CollectVarUses(decls, uses map[string]struct{}) {
	decls[n.Name] = struct{}{}
	if n.Init != nil {
		n.Init.CollectVarUses(decls, uses)
	}
}

// Assignment stores the result of evaluating Expr into Target. MysoreScript
// has no compound-assignment operators.
type Assignment struct {
	nodeImpl
	statementMarker
	Target string
	Expr   Expression
}

func NewAssignment(target string, expr Expression) *Assignment {
	return &Assignment{nodeImpl: nodeImpl{NodeAssignment}, Target: target, Expr: expr}
}

func (n *Assignment) CollectVarUses(decls, uses map[string]struct{}) {
	uses[n.Target] = struct{}{}
	n.Expr.CollectVarUses(decls, uses)
}

// Return evaluates Expr and unwinds to the nearest enclosing call.
type Return struct {
	nodeImpl
	statementMarker
	Expr Expression
}

func NewReturn(expr Expression) *Return {
	return &Return{nodeImpl: nodeImpl{NodeReturn}, Expr: expr}
}

func (n *Return) CollectVarUses(decls, uses map[string]struct{}) {
	n.Expr.CollectVarUses(decls, uses)
}

// IfStatement executes Body once if Cond is true. There is no else clause
// in this language (§9 design notes).
type IfStatement struct {
	nodeImpl
	statementMarker
	Cond Expression
	Body *Statements
}

func NewIfStatement(cond Expression, body *Statements) *IfStatement {
	return &IfStatement{nodeImpl: nodeImpl{NodeIfStatement}, Cond: cond, Body: body}
}

func (n *IfStatement) CollectVarUses(decls, uses map[string]struct{}) {
	n.Cond.CollectVarUses(decls, uses)
	n.Body.CollectVarUses(decls, uses)
}

// WhileLoop executes Body repeatedly while Cond remains true.
type WhileLoop struct {
	nodeImpl
	statementMarker
	Cond Expression
	Body *Statements
}

func NewWhileLoop(cond Expression, body *Statements) *WhileLoop {
	return &WhileLoop{nodeImpl: nodeImpl{NodeWhileLoop}, Cond: cond, Body: body}
}

func (n *WhileLoop) CollectVarUses(decls, uses map[string]struct{}) {
	n.Cond.CollectVarUses(decls, uses)
	n.Body.CollectVarUses(decls, uses)
}

// ClassDecl declares a class: its superclass (if any), instance variables,
// and methods. This node contributes nothing to closure-capture analysis,
// even when it appears inside a closure body: neither the class name nor
// any name used in its method bodies is recorded.
type ClassDecl struct {
	nodeImpl
	statementMarker
	Name           string
	SuperclassName string // "" if this class has no explicit superclass
	IVars          []*Decl
	Methods        []*ClosureDecl
}

func NewClassDecl(name, superclassName string, ivars []*Decl, methods []*ClosureDecl) *ClassDecl {
	return &ClassDecl{
		nodeImpl:       nodeImpl{NodeClassDecl},
		Name:           name,
		SuperclassName: superclassName,
		IVars:          ivars,
		Methods:        methods,
	}
}

func (n *ClassDecl) CollectVarUses(map[string]struct{}, map[string]struct{}) {}
