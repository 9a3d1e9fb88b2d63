package ast

// Number is an integer literal. Literals are constant expressions.
type Number struct {
	nodeImpl
	expressionMarker
	Value int64
	cache any
}

func NewNumber(value int64) *Number {
	return &Number{nodeImpl: nodeImpl{NodeNumber}, Value: value}
}

func (n *Number) CollectVarUses(map[string]struct{}, map[string]struct{}) {}

// Cache returns the memoized evaluation result, or nil if none has been
// stored yet. SetCache stores it. Both are exported so the interpreter can
// implement the constant-expression memoization of §4.9 without this
// package needing to know the runtime value type.
func (n *Number) Cache() any     { return n.cache }
func (n *Number) SetCache(v any) { n.cache = v }

// StringLiteral is a string literal. Like Number, it is a constant
// expression and caches its evaluation result.
type StringLiteral struct {
	nodeImpl
	expressionMarker
	Value string
	cache any
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: nodeImpl{NodeStringLiteral}, Value: value}
}

func (n *StringLiteral) CollectVarUses(map[string]struct{}, map[string]struct{}) {}

func (n *StringLiteral) Cache() any     { return n.cache }
func (n *StringLiteral) SetCache(v any) { n.cache = v }

// VarRef references a variable by name.
type VarRef struct {
	nodeImpl
	expressionMarker
	Name string
}

func NewVarRef(name string) *VarRef {
	return &VarRef{nodeImpl: nodeImpl{NodeVarRef}, Name: name}
}

func (n *VarRef) CollectVarUses(decls, uses map[string]struct{}) {
	uses[n.Name] = struct{}{}
}

// BinOpKind enumerates the binary operators in §4.9's operator table.
type BinOpKind string

const (
	OpMul BinOpKind = "*"
	OpDiv BinOpKind = "/"
	OpAdd BinOpKind = "+"
	OpSub BinOpKind = "-"
	OpEq  BinOpKind = "=="
	OpNe  BinOpKind = "!="
	OpLt  BinOpKind = "<"
	OpGt  BinOpKind = ">"
	OpLe  BinOpKind = "<="
	OpGe  BinOpKind = ">="
)

// IsComparison reports whether this operator always performs a raw
// tagged-bit comparison rather than integer arithmetic or method dispatch.
func (k BinOpKind) IsComparison() bool {
	switch k {
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		return true
	default:
		return false
	}
}

// MethodName returns the selector name a non-integer operand dispatches to
// for this operator, or "" for comparisons (which never dispatch).
func (k BinOpKind) MethodName() string {
	switch k {
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	default:
		return ""
	}
}

// BinOp is a binary operator expression. MysoreScript has a single BinOp
// node parameterized by Op, rather than one node type per operator: the
// operator table in §4.9 is the authority on behavior, and a type switch
// on ten near-identical struct types would just duplicate it.
type BinOp struct {
	nodeImpl
	expressionMarker
	Op  BinOpKind
	Lhs Expression
	Rhs Expression

	cache any
}

func NewBinOp(op BinOpKind, lhs, rhs Expression) *BinOp {
	return &BinOp{nodeImpl: nodeImpl{NodeBinOp}, Op: op, Lhs: lhs, Rhs: rhs}
}

func (n *BinOp) CollectVarUses(decls, uses map[string]struct{}) {
	n.Lhs.CollectVarUses(decls, uses)
	n.Rhs.CollectVarUses(decls, uses)
}

func (n *BinOp) Cache() any     { return n.cache }
func (n *BinOp) SetCache(v any) { n.cache = v }

// Call is either a closure invocation (Method == "") or a method send
// (Method holds the selector name and Callee is the receiver).
type Call struct {
	nodeImpl
	expressionMarker
	Callee Expression
	Method string // "" for a closure call
	Args   []Expression
}

func NewCall(callee Expression, method string, args []Expression) *Call {
	return &Call{nodeImpl: nodeImpl{NodeCall}, Callee: callee, Method: method, Args: args}
}

func (n *Call) CollectVarUses(decls, uses map[string]struct{}) {
	n.Callee.CollectVarUses(decls, uses)
	for _, arg := range n.Args {
		arg.CollectVarUses(decls, uses)
	}
}

// NewExpr allocates a fresh instance of a named class. No user-defined
// constructor runs; instance variables start zeroed (null).
type NewExpr struct {
	nodeImpl
	expressionMarker
	ClassName string
}

func NewNewExpr(className string) *NewExpr {
	return &NewExpr{nodeImpl: nodeImpl{NodeNewExpr}, ClassName: className}
}

func (n *NewExpr) CollectVarUses(map[string]struct{}, map[string]struct{}) {}
