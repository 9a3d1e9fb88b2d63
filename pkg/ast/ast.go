// Package ast defines the abstract syntax tree nodes MysoreScript programs
// are parsed into. Nodes are plain data: this package has no dependency on
// the runtime value representation or the interpreter, so it can be shared
// by both the tree-walking evaluator and, eventually, a compiled backend,
// without an import cycle between "what a program looks like" and "what a
// program's values look like".
package ast

// NodeType identifies the concrete shape of a Node for diagnostics and
// type-switch defaults.
type NodeType string

const (
	NodeStatements    NodeType = "Statements"
	NodeDecl          NodeType = "Decl"
	NodeAssignment    NodeType = "Assignment"
	NodeReturn        NodeType = "Return"
	NodeIfStatement   NodeType = "IfStatement"
	NodeWhileLoop     NodeType = "WhileLoop"
	NodeClassDecl     NodeType = "ClassDecl"
	NodeNumber        NodeType = "Number"
	NodeStringLiteral NodeType = "StringLiteral"
	NodeVarRef        NodeType = "VarRef"
	NodeBinOp         NodeType = "BinOp"
	NodeCall          NodeType = "Call"
	NodeNewExpr       NodeType = "NewExpr"
	NodeClosureDecl   NodeType = "ClosureDecl"
)

// Node is the common interface satisfied by every AST node.
type Node interface {
	NodeType() NodeType
}

type nodeImpl struct {
	kind NodeType
}

func (n nodeImpl) NodeType() NodeType { return n.kind }

// Statement is any node that can appear in a statement list. Every statement
// exposes CollectVarUses, the traversal that backs closure-capture analysis
// (§4.4 of the spec this tree implements).
type Statement interface {
	Node
	// CollectVarUses adds every name this statement (and its children)
	// declares to decls, and every name it references to uses.
	CollectVarUses(decls, uses map[string]struct{})
}

type statementMarker struct{}

func (statementMarker) isStatement() {}

// Expression is a Statement that also produces a value. Evaluating an
// expression as a statement (an expression used for its side effects) is
// just evaluating it and discarding the result; the interpreter package
// handles that uniformly rather than requiring a separate method here.
type Expression interface {
	Statement
	isExpression()
}

type expressionMarker struct{ statementMarker }

func (expressionMarker) isExpression() {}
