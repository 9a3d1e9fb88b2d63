// Package parser implements MysoreScript's surface syntax: a hand-rolled
// lexer and recursive-descent parser producing the AST that pkg/rt and
// pkg/interpreter consume. The core spec treats the parser as an external
// collaborator it only names the contract for; this package is that
// collaborator's concrete implementation.
package parser

import (
	"mysorescript/pkg/ast"
)

// Parser holds the token lookahead a recursive-descent grammar needs: one
// token of lookahead, refilled on each advance.
type Parser struct {
	lex *lexer
	tok token
}

// New returns a parser ready to read src.
func New(src string) (*Parser, error) {
	p := &Parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return p.lex.errorf(format, args...)
}

func (p *Parser) expect(kind tokenKind, what string) (token, error) {
	if p.tok.kind != kind {
		return token{}, p.errorf("expected %s", what)
	}
	t := p.tok
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

// ParseProgram parses a whole batch of top-level statements up to EOF.
// This is what both file mode and a single REPL batch call (§ driver
// surface: "each batch is parsed into a top-level statements node").
func (p *Parser) ParseProgram() (*ast.Statements, error) {
	var body []ast.Statement
	for p.tok.kind != tokEOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	return ast.NewStatements(body), nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.tok.kind {
	case tokVar:
		return p.parseDecl()
	case tokReturn:
		return p.parseReturn()
	case tokIf:
		return p.parseIf()
	case tokWhile:
		return p.parseWhile()
	case tokClass:
		return p.parseClassDecl()
	case tokFunc:
		return p.parseNamedFuncStatement()
	case tokIdent:
		return p.parseIdentStatement()
	default:
		return nil, p.errorf("unexpected token in statement position")
	}
}

func (p *Parser) parseBlock() (*ast.Statements, error) {
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for p.tok.kind != tokRBrace {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return ast.NewStatements(body), nil
}

func (p *Parser) parseDecl() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'var'
		return nil, err
	}
	name, err := p.expect(tokIdent, "identifier")
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.tok.kind == tokAssign {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tokSemi, "';'"); err != nil {
		return nil, err
	}
	return ast.NewDecl(name.text, init), nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'return'
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSemi, "';'"); err != nil {
		return nil, err
	}
	return ast.NewReturn(expr), nil
}

// parseParenCond parses "(" expr ")", shared by if and while.
func (p *Parser) parseParenCond() (ast.Expression, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseIf parses a conditional. MysoreScript has no else clause (§9
// design notes); the grammar simply never accepts one.
func (p *Parser) parseIf() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseParenCond()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewIfStatement(cond, body), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseParenCond()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(cond, body), nil
}

// parseNamedFuncStatement parses "func name(params) { body }" at
// statement position, binding name in the enclosing scope — equivalent
// to "var name = func(params) { body };" but written without var.
func (p *Parser) parseNamedFuncStatement() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'func'
		return nil, err
	}
	name, err := p.expect(tokIdent, "function name")
	if err != nil {
		return nil, err
	}
	params, body, err := p.parseFuncTail()
	if err != nil {
		return nil, err
	}
	return ast.NewDecl(name.text, ast.NewClosureDecl("", params, body)), nil
}

func (p *Parser) parseFuncTail() ([]string, *ast.Statements, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, nil, err
	}
	var params []string
	for p.tok.kind != tokRParen {
		id, err := p.expect(tokIdent, "parameter name")
		if err != nil {
			return nil, nil, err
		}
		params = append(params, id.text)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, nil, err
			}
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}
	return params, body, nil
}

// parseIdentStatement disambiguates an assignment ("x = expr;") from a
// bare declaration ("x;", parsed like "var x;"), and from an expression
// statement whose value is discarded (a method call for its side effect,
// e.g. "self.tick();"). Instance variables in class bodies are parsed by
// parseClassDecl, not here.
func (p *Parser) parseIdentStatement() (ast.Statement, error) {
	name, err := p.expect(tokIdent, "identifier")
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokAssign {
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemi, "';'"); err != nil {
			return nil, err
		}
		return ast.NewAssignment(name.text, expr), nil
	}
	if p.tok.kind == tokSemi {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewDecl(name.text, nil), nil
	}
	expr, err := p.parsePostfix(ast.NewVarRef(name.text))
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSemi, "';'"); err != nil {
		return nil, err
	}
	// Expression is itself a Statement (evaluated for its side effects,
	// its value discarded) — see the Expression doc comment in ast.go.
	return expr, nil
}

// parseClassDecl parses "class Name [Superclass] { ivar; ... func m(p) { ... } ... }" —
// the superclass, if any, is a second bare identifier immediately after
// the class name, with no punctuation marking it as such.
func (p *Parser) parseClassDecl() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'class'
		return nil, err
	}
	name, err := p.expect(tokIdent, "class name")
	if err != nil {
		return nil, err
	}
	superclass := ""
	if p.tok.kind == tokIdent {
		superTok := p.tok
		superclass = superTok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}

	var ivars []*ast.Decl
	var methods []*ast.ClosureDecl
	for p.tok.kind != tokRBrace {
		if p.tok.kind == tokFunc {
			if err := p.advance(); err != nil {
				return nil, err
			}
			mname, err := p.expect(tokIdent, "method name")
			if err != nil {
				return nil, err
			}
			params, body, err := p.parseFuncTail()
			if err != nil {
				return nil, err
			}
			methods = append(methods, ast.NewClosureDecl(mname.text, params, body))
			continue
		}
		ivarName, err := p.expect(tokIdent, "instance variable name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemi, "';'"); err != nil {
			return nil, err
		}
		ivars = append(ivars, ast.NewDecl(ivarName.text, nil))
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}

	return ast.NewClassDecl(name.text, superclass, ivars, methods), nil
}
