package parser

import (
	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/token"
)

// parseFunDecl parses a top-level `fun name(...) ... { ... }`. A name is
// mandatory here (spec.md §4.2): "at the top level a name is required".
func (p *Parser) parseFunDecl() *ast.FunExpr {
	fn := p.parseFunExprCommon(true)
	if fn.Name != nil {
		p.declareTopLevel(fn.Name, fn, fn.Pos())
	}
	return fn
}

// parseFunExpr parses a `fun` appearing in expression position; the name
// is optional and, when present, purely decorative — it is never
// declared in the enclosing scope (spec.md §4.2).
func (p *Parser) parseFunExpr() ast.Expression {
	return p.parseFunExprCommon(false)
}

func (p *Parser) parseFunExprCommon(nameRequired bool) *ast.FunExpr {
	pos := p.cur().Pos
	p.advance() // consume 'fun'

	var name *token.ByteStr
	if p.curIs(token.NAME) {
		name = p.cur().Lit
		p.advance()
	} else if nameRequired {
		p.errorf(SyntaxError, p.cur().Pos, "function declaration requires a name")
	}

	paramScope := p.pushScope(ast.ScopeParams, nil)
	sig := p.parseSignature()

	fn := ast.NewFunExpr(pos, name, sig, paramScope)
	paramScope.Context = fn

	isInit := name != nil && name.String() == "init"
	fn.IsInit = isInit
	if isInit {
		if len(sig.Params) != 0 {
			p.errorf(DeclarationError, pos, "init function must have no parameters")
		}
		if sig.Result != nil {
			p.errorf(DeclarationError, pos, "init function must have a void result")
		}
	}

	for _, param := range sig.Params {
		if param.Name != nil {
			param.Ent = p.declare(param.Name, &paramDeclNode{param}, param.Pos)
		}
	}

	if p.curIs(token.ARROW) {
		p.advance()
		bodyScope := p.pushScope(ast.ScopeFunction, fn)
		fn.Scope = bodyScope
		fn.ArrowBody = p.parseExpression(lowest)
		p.popScope()
		p.finishSignature(fn, sig, true)
	} else {
		fn.Body = p.parseFunctionBlock(fn)
		p.finishSignature(fn, sig, false)
	}

	p.popScope() // paramScope
	return fn
}

// paramDeclNode adapts a *ast.Param (not itself an ast.Node) to the
// ast.Node interface so it can serve as an Ent's Decl. Type() exposes the
// parameter's declared TypeExpr to the resolver package, which type-
// switches against the minimal paramDecl interface rather than importing
// parser (avoiding an import cycle).
type paramDeclNode struct{ p *ast.Param }

func (n *paramDeclNode) Pos() token.Pos      { return n.p.Pos }
func (n *paramDeclNode) String() string      { return "param " + n.p.Type.String() }
func (n *paramDeclNode) Type() ast.TypeExpr { return n.p.Type }

// parseFunctionBlock parses a `{ ... }` function body in a fresh
// function-level scope, observing `return` statements to feed signature
// inference.
func (p *Parser) parseFunctionBlock(fn *ast.FunExpr) *ast.Block {
	bodyScope := p.pushScope(ast.ScopeFunction, fn)
	fn.Scope = bodyScope
	block := p.parseBlockStatements(bodyScope)
	p.popScope()
	return block
}

// finishSignature implements spec.md §4.2's "Signature & inferred
// result" rule once the body has been fully parsed. The implicit-return
// rewrite applies only when the result type was written explicitly
// (scenario: `fun f() i32 { 3 }` rewrites `3` to `return 3`); with no
// result type written, the body is left as parsed and the result is
// void when the block holds no `return` at all.
func (p *Parser) finishSignature(fn *ast.FunExpr, sig *ast.Signature, isArrow bool) {
	if isArrow {
		// (c): arrow body. Handled lazily by the resolver using
		// fn.InferredReturnTypes() and fn.ArrowBody's own type — the
		// parser has nothing further to do since no AST rewrite is
		// needed for the arrow form.
		return
	}
	if fn.Body == nil {
		return
	}

	if sig.Result == nil {
		if len(fn.Returns) == 0 {
			// (a): no `return` seen anywhere in the block body — void.
			sig.Result = voidTypeExprMarker{}
		}
		return
	}

	// (b): explicit result type. The block body's trailing bare
	// expression-statement becomes an implicit return. If the last
	// statement is not a bare expression-statement, there is nothing to
	// rewrite.
	n := len(fn.Body.Stmts)
	if n > 0 {
		if exprStmt, ok := fn.Body.Stmts[n-1].(*ast.ExprStmt); ok {
			ret := ast.NewReturnStmt(exprStmt.Pos(), exprStmt.X)
			fn.Body.Stmts[n-1] = ret
			fn.AddReturn(ret)
		}
	}
}

// voidTypeExprMarker is a TypeExpr standing in for the `void` result
// once the parser has determined a block body never returns a value. It
// carries no position since it is synthesized, not parsed. The embedded
// (always nil) ast.TypeExpr only supplies the ast package's unexported
// marker method; Pos and String are its own.
type voidTypeExprMarker struct{ ast.TypeExpr }

func (voidTypeExprMarker) Pos() token.Pos { return token.NoPos }
func (voidTypeExprMarker) String() string { return "void" }

// isVoidMarker lets the resolver package recognize this synthesized node
// structurally (via resolver's voidMarker interface) without an import
// cycle back to parser.
func (voidTypeExprMarker) isVoidMarker() {}

var _ ast.TypeExpr = voidTypeExprMarker{}

// parseSignature parses the parenthesized parameter list and optional
// result type, implementing the three mutually-exclusive parameter-list
// modes from spec.md §4.2.
func (p *Parser) parseSignature() *ast.Signature {
	p.expect(token.LPAREN)

	var params []*ast.Param
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		params = append(params, p.parseOneParamSlot())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	p.classifyParamModes(params)

	// A result type, when written, immediately precedes the `{` of a
	// block body: `(x Int) Int { ... }`. It is never written before an
	// arrow body (`-> expr` supplies its own inferred result, see
	// parseFunExprCommon), so seeing ARROW here always means "no
	// explicit result, body is an arrow expression".
	var result ast.TypeExpr
	if !p.curIs(token.ARROW) && !p.curIs(token.LBRACE) {
		result = p.parseTypeExpr()
	}
	return &ast.Signature{Params: params, Result: result}
}

// parseOneParamSlot parses one comma-separated slot of a parameter
// list. A slot starting with anything other than a bare NAME (a
// bracketed/parenthesized/rest type) is unambiguously type-only. A slot
// that is a single NAME immediately followed by COMMA or RPAREN is left
// with Type == nil and Name set — whether it turns out to be a bare
// unnamed type reference (all-unnamed mode) or a named parameter
// awaiting a propagated type (grouped mode) depends on the rest of the
// list, decided afterward in classifyParamModes (spec.md §4.2
// "Parameter list").
func (p *Parser) parseOneParamSlot() *ast.Param {
	pos := p.cur().Pos

	// A rest parameter, `...T`, always carries an explicit type and no
	// name.
	if p.curIs(token.ELLIPSIS) {
		p.advance()
		typ := p.parseTypeExpr()
		return &ast.Param{Type: ast.NewRestTypeExpr(pos, typ), IsRest: true, Pos: pos}
	}

	if p.curIs(token.NAME) {
		nameTok := p.cur()
		if p.peekIs(token.COMMA) || p.peekIs(token.RPAREN) {
			p.advance()
			return &ast.Param{Name: nameTok.Lit, Pos: pos}
		}
		p.advance()
		typ := p.parseTypeExpr()
		return &ast.Param{Name: nameTok.Lit, Type: typ, Pos: pos}
	}

	typ := p.parseTypeExpr()
	return &ast.Param{Type: typ, Pos: pos}
}

// classifyParamModes resolves every ambiguous bare-NAME slot and
// enforces the three-mode exclusivity rule (spec.md §4.2 "Parameter
// list"): all-typed (no names), all-named-with-types, or
// named-groups-sharing-type, with right-to-left type propagation within
// a group.
func (p *Parser) classifyParamModes(params []*ast.Param) {
	if len(params) == 0 {
		return
	}

	// A slot unambiguously carries an explicit type of its own when
	// either it has no Name (forced type-only by its leading token) or
	// it has both a Name and a Type (the `name Type` spelling).
	anyExplicitlyTyped := false
	for _, prm := range params {
		if prm.Type != nil {
			anyExplicitlyTyped = true
			break
		}
	}

	if !anyExplicitlyTyped {
		// Every slot was a single bare NAME: the whole list is the
		// all-unnamed, all-typed mode, and each "name" was in fact a
		// type reference.
		for _, prm := range params {
			if prm.Name != nil {
				prm.Type = ast.NewNameTypeExpr(prm.Pos, prm.Name, p.scope)
				prm.Name = nil
			}
		}
	} else {
		mixed := false
		for _, prm := range params {
			if prm.Name == nil && prm.Type != nil {
				// A slot with no name at all alongside named slots:
				// mixed, unless it is the rest slot (checked below) —
				// rest parameters are always typed-only even in a
				// named list.
				if !prm.IsRest {
					mixed = true
				}
			}
		}
		if mixed {
			p.errorf(SyntaxError, params[0].Pos, "mixed named and unnamed parameters")
		}
		// Right-to-left propagation: a named slot lacking its own type
		// (the grouped `a, b, c T` form) inherits the type of the next
		// slot to its right.
		for i := len(params) - 2; i >= 0; i-- {
			if params[i].Name != nil && params[i].Type == nil {
				params[i].Type = params[i+1].Type
			}
		}
	}

	restSeen := false
	for _, prm := range params {
		if prm.IsRest {
			if restSeen {
				p.errorf(SyntaxError, prm.Pos, "only the last parameter may be a rest parameter")
			}
			restSeen = true
		} else if restSeen {
			p.errorf(SyntaxError, prm.Pos, "rest parameter must be last")
		}
	}
}
