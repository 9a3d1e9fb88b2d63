package parser

// tokenKind enumerates the lexical categories the lexer emits. Unlike the
// teacher's tree-sitter grammar (generated from a separate .grammar.js and
// consumed through cgo bindings), MysoreScript has no prebuilt grammar
// anywhere in the example pack, so this package hand-rolls both the lexer
// and the recursive-descent parser instead of wrapping a generated one.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString

	tokVar
	tokFunc
	tokReturn
	tokIf
	tokWhile
	tokClass
	tokNew

	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokSemi
	tokComma
	tokDot
	tokAssign

	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokEq
	tokNe
	tokLe
	tokGe
	tokLt
	tokGt
)

var keywords = map[string]tokenKind{
	"var":    tokVar,
	"func":   tokFunc,
	"return": tokReturn,
	"if":     tokIf,
	"while":  tokWhile,
	"class":  tokClass,
	"new":    tokNew,
}

type token struct {
	kind   tokenKind
	text   string // identifier text, or the literal source of a number/string
	number int64
	line   int
}
