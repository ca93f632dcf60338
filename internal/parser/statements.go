package parser

import (
	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/token"
)

// parseBlock parses a braced statement sequence in a fresh nested
// block scope.
func (p *Parser) parseBlock() *ast.Block {
	scope := p.pushScope(ast.ScopeBlock, nil)
	b := p.parseBlockStatements(scope)
	p.popScope()
	return b
}

// parseBlockStatements parses `{ stmt* }` using scope (already current)
// as the block's scope, without pushing/popping it itself — used by
// function-body parsing, where the caller owns the scope's lifetime so
// it can also observe InferredReturnTypes after the closing brace.
func (p *Parser) parseBlockStatements(scope *ast.Scope) *ast.Block {
	pos := p.cur().Pos
	p.expect(token.LBRACE)
	block := ast.NewBlock(pos, scope)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if s := p.parseStatement(); s != nil {
			block.Stmts = append(block.Stmts, s)
		}
	}
	p.expect(token.RBRACE)
	return block
}

// parseStatement dispatches on the leading token.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.TYPE:
		return p.parseTypeDecl()
	case token.FUN:
		return p.parseFunDecl()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		return p.parseBreakStmt()
	case token.CONTINUE:
		return p.parseContinueStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.IF:
		return p.parseIfExpr().(ast.Statement)
	case token.LBRACE:
		return p.parseBlock()
	case token.NAME:
		return p.parseVarDeclOrAssignOrExprStmt()
	default:
		stmt := ast.NewExprStmt(p.parseExpression(lowest))
		return stmt
	}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	pos := p.cur().Pos
	p.advance()
	var value ast.Expression
	if !p.curIs(token.RBRACE) && !p.curIs(token.SEMICOLON) && !p.curIs(token.EOF) {
		value = p.parseExpression(lowest)
	}
	ret := ast.NewReturnStmt(pos, value)
	if fnScope, ok := p.scope.InFunction(); ok {
		if fn, ok := fnScope.Context.(*ast.FunExpr); ok {
			fn.AddReturn(ret)
		}
	}
	return ret
}

func (p *Parser) parseBreakStmt() *ast.BreakStmt {
	pos := p.cur().Pos
	p.advance()
	if !p.ctx.InLoop() {
		p.errorf(SyntaxError, pos, "break outside a loop")
	}
	return ast.NewBreakStmt(pos)
}

func (p *Parser) parseContinueStmt() *ast.ContinueStmt {
	pos := p.cur().Pos
	p.advance()
	if !p.ctx.InLoop() {
		p.errorf(SyntaxError, pos, "continue outside a loop")
	}
	return ast.NewContinueStmt(pos)
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	pos := p.cur().Pos
	p.advance()
	cond := p.parseExpression(lowest)
	p.ctx.PushBlock("while", pos)
	p.ctx.EnterLoop()
	body := p.parseBlock()
	p.ctx.LeaveLoop()
	p.ctx.PopBlock()
	return ast.NewWhileStmt(pos, cond, body)
}

// parseForStmt parses `for init; cond; post { body }`, where each
// clause may be omitted (an empty clause still requires its
// semicolon, except that a fully-bare `for { }` with no semicolons at
// all is also accepted as an infinite loop).
func (p *Parser) parseForStmt() *ast.ForStmt {
	pos := p.cur().Pos
	p.advance()

	scope := p.pushScope(ast.ScopeBlock, nil)

	if p.curIs(token.LBRACE) {
		p.popScope()
		p.ctx.PushBlock("for", pos)
		p.ctx.EnterLoop()
		body := p.parseBlock()
		p.ctx.LeaveLoop()
		p.ctx.PopBlock()
		return ast.NewForStmt(pos, nil, nil, nil, body, nil)
	}

	var init ast.Statement
	if !p.curIs(token.SEMICOLON) {
		init = p.parseVarDeclOrAssignOrExprStmt()
	}
	p.expect(token.SEMICOLON)

	var cond ast.Expression
	if !p.curIs(token.SEMICOLON) {
		cond = p.parseExpression(lowest)
	}
	p.expect(token.SEMICOLON)

	var post ast.Statement
	if !p.curIs(token.LBRACE) {
		post = p.parseVarDeclOrAssignOrExprStmt()
	}

	p.ctx.PushBlock("for", pos)
	p.ctx.EnterLoop()
	body := p.parseBlockStatements(scope)
	p.ctx.LeaveLoop()
	p.ctx.PopBlock()
	p.popScope()

	return ast.NewForStmt(pos, init, cond, post, body, scope)
}

// parseVarDeclGroup parses a top-level multi-name `var` group: one
// `type`/`fun` keyword never introduces it, so this is reached only
// from parseTopLevelDecl for a bare leading NAME — i.e. an implicit
// variable declaration group (spec.md §3's "multi-declaration group").
func (p *Parser) parseVarDeclGroup() ast.Decl {
	stmt := p.parseVarDeclOrAssignOrExprStmt()
	if decl, ok := stmt.(ast.Decl); ok {
		return decl
	}
	p.errorf(SyntaxError, stmt.Pos(), "expected a declaration at top level")
	return nil
}

// parseVarDeclOrAssignOrExprStmt implements spec.md §4.2's "Variable
// declaration" and "Assignment" behaviors together, since both start
// with an identifier list and are only disambiguated by what follows
// it (a bare type/`=` pair vs. an assignment operator vs. neither, in
// which case it falls through to a general expression statement).
func (p *Parser) parseVarDeclOrAssignOrExprStmt() ast.Statement {
	startPos := p.cur().Pos

	// Speculatively try the declaration-list shape: NAME (, NAME)* then
	// either a type, `=`, or both. Any other shape (a single expression,
	// possibly itself starting with a NAME) falls through to assignment
	// or a bare expression statement.
	if decl, ok := tryParse(p, func() ([]*ast.VarDecl, bool) {
		var names []tok
		for {
			if !p.curIs(token.NAME) {
				return nil, false
			}
			names = append(names, p.cur())
			p.advance()
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		// A single name followed by anything but a type name (`(`, `[`,
		// `.`, `<`, `=`, `+=`, `++`, …) continues an expression or an
		// assignment, not a declaration.
		if len(names) == 1 && !p.curIs(token.NAME) {
			return nil, false
		}
		var typ ast.TypeExpr
		if !p.curIs(token.ASSIGN) && !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			typ = p.parseTypeExpr()
		}
		var inits []ast.Expression
		if p.curIs(token.ASSIGN) {
			p.advance()
			inits = append(inits, p.parseExpression(lowest))
			for p.curIs(token.COMMA) {
				p.advance()
				inits = append(inits, p.parseExpression(lowest))
			}
		}
		// A type annotation, or more than one name, unambiguously marks
		// this as spec.md §3's "multi-declaration group" production.
		// A single bare name followed only by `=` is NOT claimed here —
		// it is the genuinely ambiguous single-target `=` the
		// "Assignment" rule governs via the store-vs-declare lookup
		// below, so it falls through to the general-expression path.
		if typ == nil && len(names) == 1 {
			return nil, false
		}
		if typ == nil && len(inits) == 0 {
			return nil, false
		}
		if len(inits) > 0 && len(inits) != len(names) {
			p.errorf(SyntaxError, startPos, "expected %d initializer(s), found %d", len(names), len(inits))
		}
		decls := make([]*ast.VarDecl, len(names))
		for i, nt := range names {
			var init ast.Expression
			if i < len(inits) {
				init = inits[i]
			}
			d := ast.NewVarDecl(nt.Pos, nt.Lit, typ, init)
			d.Ent = p.declare(nt.Lit, d, nt.Pos)
			decls[i] = d
		}
		return decls, true
	}); ok {
		if len(decl) == 1 {
			return decl[0]
		}
		return ast.NewVarDeclGroup(decl)
	}

	// A bare NAME immediately followed by an assignment operator is the
	// genuinely ambiguous single-target form spec.md §4.2's "Assignment"
	// rule governs: whether it stores to an existing binding or
	// promotes to a new declaration depends on scope visibility, so it
	// must be resolved via the store rule rather than through the
	// ordinary identifier-resolution path (which would either mark a
	// read of a binding that isn't being read, or file a brand-new name
	// into the unresolved set when it is in fact about to be declared
	// right here).
	if p.curIs(token.NAME) && isAssignOpAhead(p.peek(1).Type) {
		return p.parseSimpleNameAssign(startPos)
	}

	// Any more complex LHS (selector, index, tuple, …) always refers to
	// an existing binding, so it is a genuine use-occurrence and goes
	// through ordinary expression parsing and resolution.
	lhs := p.parseExpression(lowest)
	t := p.cur().Type
	switch {
	case t == token.ASSIGN:
		p.advance()
		rhs := p.parseExpression(lowest)
		p.checkAssignTarget(lhs)
		return ast.NewAssignStmt(startPos, lhs, token.ASSIGN, rhs)
	case isCompoundAssignOp(t):
		p.advance()
		rhs := p.parseExpression(lowest)
		p.checkAssignTarget(lhs)
		return ast.NewAssignStmt(startPos, lhs, t, rhs)
	case t == token.INC || t == token.DEC:
		p.advance()
		p.checkAssignTarget(lhs)
		return ast.NewAssignStmt(startPos, lhs, incDecOp(t), ast.NewIntLiteral(startPos, 1, true, token.INT))
	default:
		return ast.NewExprStmt(lhs)
	}
}

func isCompoundAssignOp(t token.Type) bool {
	_, ok := token.BinaryOpForAssign(t)
	return ok
}

func isAssignOpAhead(t token.Type) bool {
	return t == token.ASSIGN || t == token.INC || t == token.DEC || isCompoundAssignOp(t)
}

func incDecOp(t token.Type) token.Type {
	if t == token.DEC {
		return token.SUB
	}
	return token.ADD
}

// parseSimpleNameAssign handles `name <assignop> rhs` / `name++` /
// `name--` where name is a single bare identifier. It implements the
// store rule directly (spec.md §4.2): the name resolves to an existing
// Ent only if that Ent lives in the current scope, an enclosing
// function-local scope, or — when parsing inside an `init` function —
// the package scope; otherwise the identifier is promoted to a new
// declaration in the current scope.
func (p *Parser) parseSimpleNameAssign(startPos token.Pos) *ast.AssignStmt {
	nameTok := p.cur()
	p.advance()
	op := p.cur().Type
	p.advance()

	id := ast.NewIdentifier(nameTok.Pos, nameTok.Lit, p.scope)
	if e, ok := p.lookupUnderStoreRule(nameTok.Lit); ok {
		id.Ent = e
		e.MarkWrite()
	} else if !id.IsBlank() {
		id.Ent = p.declare(nameTok.Lit, id, nameTok.Pos)
	}

	var rhs ast.Expression
	switch op {
	case token.INC, token.DEC:
		rhs = ast.NewIntLiteral(startPos, 1, true, token.INT)
		op = incDecOp(op)
	default:
		rhs = p.parseExpression(lowest)
	}

	// A freshly-promoted declaration's Ent records its defining value, so
	// later constant folding (spec.md §4.3) can see through a chain of
	// plain `name = expr` bindings the same way it sees through an
	// explicit `var` declaration's Init.
	if id.Ent != nil && id.Ent.Decl == id {
		id.Ent.Value = rhs
	}

	return ast.NewAssignStmt(startPos, id, op, rhs)
}

// lookupUnderStoreRule implements the scope-visibility test spec.md
// §4.2's "Assignment" rule uses to decide store vs. promote: the name
// must resolve within the current scope chain without crossing out of
// the innermost enclosing function (its params scope included) — "same
// scope" or "same function-local scope" — or, failing that, when the
// innermost enclosing function is `init`, the package scope.
func (p *Parser) lookupUnderStoreRule(name *token.ByteStr) (*ast.Ent, bool) {
	fnScope, inFn := p.scope.InFunction()

	boundary := fnScope
	if inFn {
		if paramScope, ok := fnScope.Outer, fnScope.Outer != nil; ok && paramScope.Kind == ast.ScopeParams {
			boundary = paramScope
		}
	}

	for sc := p.scope; sc != nil; sc = sc.Outer {
		if e, ok := sc.Local(name); ok {
			return e, true
		}
		if sc == boundary {
			break
		}
	}

	if inFn {
		if fn, ok := fnScope.Context.(*ast.FunExpr); ok && fn.IsInit {
			if e, ok := p.pkg.Local(name); ok {
				return e, true
			}
		}
	}
	return nil, false
}

// checkAssignTarget rejects assignment to an LHS shape that can never
// be a valid store target.
func (p *Parser) checkAssignTarget(lhs ast.Expression) {
	switch lhs.(type) {
	case *ast.Identifier, *ast.IndexExpr, *ast.SelectorExpr, *ast.TupleExpr:
		return
	default:
		p.errorf(SyntaxError, lhs.Pos(), "invalid assignment target")
	}
}
