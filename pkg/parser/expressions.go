package parser

import "mysorescript/pkg/ast"

// parseExpression is the grammar's entry point, with comparisons binding
// loosest (matching §4.9's operator table, which treats comparisons as a
// distinct always-raw-bit-compare category from arithmetic).
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseComparison()
}

var comparisonOps = map[tokenKind]ast.BinOpKind{
	tokEq: ast.OpEq, tokNe: ast.OpNe,
	tokLt: ast.OpLt, tokGt: ast.OpGt,
	tokLe: ast.OpLe, tokGe: ast.OpGe,
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.tok.kind]
		if !ok {
			return lhs, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinOp(op, lhs, rhs)
	}
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := ast.OpAdd
		if p.tok.kind == tokMinus {
			op = ast.OpSub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinOp(op, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := ast.OpMul
		if p.tok.kind == tokSlash {
			op = ast.OpDiv
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinOp(op, lhs, rhs)
	}
	return lhs, nil
}

// parseUnary exists only to anchor the precedence chain at parsePrimary;
// MysoreScript has no unary operators (the spec's operator table is
// exhaustive and binary-only).
func (p *Parser) parseUnary() (ast.Expression, error) {
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(primary)
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.tok.kind {
	case tokNumber:
		n := p.tok.number
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewNumber(n), nil

	case tokString:
		s := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewStringLiteral(s), nil

	case tokIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewVarRef(name), nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case tokNew:
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expect(tokIdent, "class name")
		if err != nil {
			return nil, err
		}
		return ast.NewNewExpr(name.text), nil

	case tokFunc:
		if err := p.advance(); err != nil {
			return nil, err
		}
		name := ""
		if p.tok.kind == tokIdent {
			name = p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		params, body, err := p.parseFuncTail()
		if err != nil {
			return nil, err
		}
		return ast.NewClosureDecl(name, params, body), nil

	default:
		return nil, p.errorf("unexpected token in expression position")
	}
}

// parsePostfix consumes zero or more trailing call/method-send forms
// following base: "(" args ")" for a closure call, "." ident "(" args ")"
// for a method send.
func (p *Parser) parsePostfix(base ast.Expression) (ast.Expression, error) {
	expr := base
	for {
		switch p.tok.kind {
		case tokLParen:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = ast.NewCall(expr, "", args)
		case tokDot:
			if err := p.advance(); err != nil {
				return nil, err
			}
			method, err := p.expect(tokIdent, "method name")
			if err != nil {
				return nil, err
			}
			if p.tok.kind != tokLParen {
				return nil, p.errorf("expected '(' after method name")
			}
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = ast.NewCall(expr, method.text, args)
		default:
			return expr, nil
		}
	}
}

// parseArgs parses a parenthesized, comma-separated argument list. The
// number of arguments is not limited, here or in the interpreter; the
// interpreter checks only the parameter counts of closure and method
// declarations against rt.MaxArity.
func (p *Parser) parseArgs() ([]ast.Expression, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for p.tok.kind != tokRParen {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}
