package parser

import (
	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/token"
)

// parseExpression is the Pratt loop: parse one prefix expression, then
// repeatedly fold in infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur().Type]
	if !ok {
		p.errorf(SyntaxError, p.cur().Pos, "unexpected token %s", p.cur().Type)
		bad := ast.NewBad(p.cur().Pos)
		p.advance()
		return bad
	}
	left := prefix()

	for {
		t := p.cur().Type
		infix, ok := p.infixFns[t]
		if !ok || infixPrecedence(t) <= minPrec {
			break
		}
		left = infix(left)
	}
	return left
}

// infixPrecedence extends token.Precedence with the postfix operators
// (call, index/slice, selector), which always bind tighter than any
// binary operator.
func infixPrecedence(t token.Type) int {
	switch t {
	case token.LPAREN, token.LBRACK, token.DOT:
		return indexPrec
	default:
		return token.Precedence(t)
	}
}

func (p *Parser) parseIdentifier() ast.Expression {
	t := p.cur()
	p.advance()
	return p.resolve(t.Pos, t.Lit)
}

func (p *Parser) parseIntLiteral() ast.Expression {
	t := p.cur()
	p.advance()
	return ast.NewIntLiteral(t.Pos, t.IntVal, true, t.Type)
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	t := p.cur()
	p.advance()
	return ast.NewFloatLiteral(t.Pos, t.FloatVal)
}

func (p *Parser) parseCharLiteral() ast.Expression {
	t := p.cur()
	p.advance()
	return ast.NewCharLiteral(t.Pos, rune(t.IntVal))
}

func (p *Parser) parseStringLiteral() ast.Expression {
	t := p.cur()
	p.advance()
	return ast.NewStringLiteral(t.Pos, t.Lit)
}

func (p *Parser) parsePrefixExpr() ast.Expression {
	t := p.cur()
	p.advance()
	operand := p.parseExpression(prefixPrec)
	return ast.NewUnaryExpr(t.Pos, t.Type, operand)
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	t := p.cur()
	prec := token.Precedence(t.Type)
	p.advance()
	right := p.parseExpression(prec)
	return ast.NewBinaryExpr(left.Pos(), t.Type, left, right)
}

// parseParenOrTupleExpr parses `(expr)` as a parenthesized grouping, or
// `(e1, e2, …)` as a TupleExpr once a second element is seen
// (spec.md §4.2 "Tuples": a single parenthesized expression is never a
// one-element tuple).
func (p *Parser) parseParenOrTupleExpr() ast.Expression {
	pos := p.cur().Pos
	p.advance() // consume '('
	if p.curIs(token.RPAREN) {
		p.advance()
		return ast.NewTupleExpr(pos, nil)
	}
	first := p.parseExpression(lowest)
	if !p.curIs(token.COMMA) {
		p.expect(token.RPAREN)
		return first
	}
	elems := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RPAREN) {
			break // trailing comma
		}
		elems = append(elems, p.parseExpression(lowest))
	}
	p.expect(token.RPAREN)
	return ast.NewTupleExpr(pos, elems)
}

// parseListExpr parses `[e1, e2, …]`.
func (p *Parser) parseListExpr() ast.Expression {
	pos := p.cur().Pos
	p.advance() // consume '['
	var elems []ast.Expression
	for !p.curIs(token.RBRACK) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseExpression(lowest))
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACK)
	return ast.NewListExpr(pos, elems)
}

// parseIfExpr parses `if cond { then } [else (if … | { … })]`, usable as
// either an expression or (result discarded) a statement.
func (p *Parser) parseIfExpr() ast.Expression {
	pos := p.cur().Pos
	p.advance() // consume 'if'
	cond := p.parseExpression(lowest)
	then := p.parseBlock()
	var els ast.Node
	if p.curIs(token.ELSE) {
		p.advance()
		if p.curIs(token.IF) {
			els = p.parseIfExpr()
		} else {
			els = p.parseBlock()
		}
	}
	return ast.NewIfExpr(pos, cond, then, els)
}

// parseCallExpr parses the postfix `(args)` call form. When the callee
// is itself wrapped in a prior speculative type-argument parse (see
// parseLssInfixOrGenericCall in declarations.go), TypeArgs has already
// been supplied by that caller via parseCallExprWithTypeArgs; plain
// calls go through here with no type arguments.
func (p *Parser) parseCallExpr(fun ast.Expression) ast.Expression {
	return p.parseCallExprWithTypeArgs(fun, nil)
}

func (p *Parser) parseCallExprWithTypeArgs(fun ast.Expression, typeArgs []ast.TypeExpr) ast.Expression {
	pos := p.cur().Pos
	p.advance() // consume '('
	var args []ast.Expression
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpression(lowest))
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return ast.NewCallExpr(pos, fun, typeArgs, args)
}

// parseIndexOrSliceExpr parses `x[i]` or `x[lo:hi]`/`x[:hi]`/`x[lo:]`/
// `x[:]`, disambiguated by whether a COLON appears before the closing
// bracket (spec.md §4.2 "Indexing & slicing").
func (p *Parser) parseIndexOrSliceExpr(x ast.Expression) ast.Expression {
	pos := p.cur().Pos
	p.advance() // consume '['

	if p.curIs(token.COLON) {
		p.advance()
		var hi ast.Expression
		if !p.curIs(token.RBRACK) {
			hi = p.parseExpression(lowest)
		}
		p.expect(token.RBRACK)
		return ast.NewSliceExpr(pos, x, nil, hi)
	}

	first := p.parseExpression(lowest)
	if p.curIs(token.COLON) {
		p.advance()
		var hi ast.Expression
		if !p.curIs(token.RBRACK) {
			hi = p.parseExpression(lowest)
		}
		p.expect(token.RBRACK)
		return ast.NewSliceExpr(pos, x, first, hi)
	}
	p.expect(token.RBRACK)
	return ast.NewIndexExpr(pos, x, first)
}

// parseSelectorOrTupleIndex parses `x.name` or the tuple numeric index
// form `x.N`.
func (p *Parser) parseSelectorOrTupleIndex(x ast.Expression) ast.Expression {
	pos := p.cur().Pos
	p.advance() // consume '.'
	t := p.cur()
	if t.Type == token.INT {
		p.advance()
		return ast.NewTupleIndexSelector(pos, x, int(t.IntVal))
	}
	name := t.Lit.String()
	p.advance()
	return ast.NewSelectorExpr(pos, x, name)
}
