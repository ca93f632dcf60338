package parser

import (
	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/token"
)

// ParseFile parses one source file's tokens into an *ast.File. Top-level
// declarations land in the shared package scope, not a fresh file scope
// of their own, per spec.md §4.2 ("top-level declarations … are declared
// in the package scope, not the file scope"); the file scope still
// exists as the scope imports bind into and the scope use-occurrences at
// top level are recorded against.
func (p *Parser) ParseFile(name string) *ast.File {
	f := &ast.File{Name: name}
	p.curFile = f
	f.Scope = ast.NewScope(p.universe, ast.ScopeFile, f)
	f.Scope.Outer = p.pkg // file scope's outer is package scope, not universe
	p.scope = f.Scope

	for p.curIs(token.IMPORT) {
		f.Imports = append(f.Imports, p.parseImportDecl())
	}

	// Top-level `fun` and `type` declarations bind into the package
	// scope through declareTopLevel. The parser's current scope stays
	// f.Scope, so top-level variable declarations, which go through
	// declare(), bind into the file scope and are not visible from the
	// package's other files. Use occurrences are resolved from f.Scope
	// outward (f.Scope's Outer is pkg, so lookups still see package-scope
	// names).
	for !p.curIs(token.EOF) {
		d := p.parseTopLevelDecl()
		if d != nil {
			f.Decls = append(f.Decls, d)
		}
	}
	return f
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	pos := p.cur().Pos
	p.advance() // consume 'import'

	d := ast.NewImportDecl(pos, nil)
	switch {
	case p.curIs(token.DOT):
		d.Dot = true
		p.advance()
	case p.cur().Type == token.NAME && p.cur().Lit.String() == "_":
		d.Blank = true
		p.advance()
	case p.cur().Type == token.NAME && p.peekIs(token.STRING):
		d.Alias = p.cur().Lit
		p.advance()
	}

	if p.curIs(token.STRING) {
		d.Path = p.cur().Lit
		p.advance()
	} else {
		p.errorf(SyntaxError, p.cur().Pos, "expected import path string")
	}

	if !d.Dot && !d.Blank {
		name := d.Alias
		if name == nil {
			name = d.Path // the binder rebinds this to the imported package's own name
		}
		d.Ent = p.scope.Declare(name, d)
	}
	return d
}

// parseTopLevelDecl dispatches on the leading keyword; a bare
// expression-statement is not legal at top level, so anything else is a
// syntax error that synchronizes to the next declaration starter.
func (p *Parser) parseTopLevelDecl() ast.Decl {
	switch p.cur().Type {
	case token.FUN:
		return p.parseFunDecl()
	case token.TYPE:
		return p.parseTypeDecl()
	case token.NAME:
		return p.parseVarDeclGroup()
	default:
		p.errorf(SyntaxError, p.cur().Pos, "expected a declaration, found %s", p.cur().Type)
		p.synchronize(topLevelStarters)
		return nil
	}
}

var topLevelStarters = []token.Type{token.FUN, token.TYPE, token.IMPORT}

// synchronize implements panic-mode recovery: skip tokens until one of
// set (or EOF) is seen (spec.md §4.2.1).
func (p *Parser) synchronize(set []token.Type) {
	for !p.curIs(token.EOF) {
		for _, t := range set {
			if p.curIs(t) {
				return
			}
		}
		p.advance()
	}
}

// functionSyncSet is the statement-starter set used for recovery inside
// a function body (spec.md §4.2.1).
var functionSyncSet = []token.Type{
	token.BREAK, token.CONTINUE, token.FOR, token.FUN, token.IF,
	token.RETURN, token.TYPE, token.WHILE,
}

// parseTypeDecl parses `type Name ["<" vars ">"] "=" typeExpr`.
func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	pos := p.cur().Pos
	p.advance() // consume 'type'

	nameTok := p.cur()
	if nameTok.Type != token.NAME {
		p.errorf(SyntaxError, nameTok.Pos, "expected type name")
	}
	p.advance()

	var vars []*ast.TypeVarDecl
	if p.curIs(token.LSS) {
		p.advance()
		for !p.curIs(token.GTR) && !p.curIs(token.EOF) {
			vt := p.cur()
			vars = append(vars, &ast.TypeVarDecl{Name: vt.Lit, Pos: vt.Pos})
			p.advance()
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.GTR)
	}

	p.expect(token.ASSIGN)

	// Template type variables are visible while parsing the right-hand
	// type expression only.
	var body ast.TypeExpr
	if len(vars) > 0 {
		tvScope := p.pushScope(ast.ScopeBlock, nil)
		for _, v := range vars {
			tvScope.Declare(v.Name, v)
		}
		body = p.parseTypeExpr()
		p.popScope()
	} else {
		body = p.parseTypeExpr()
	}

	d := ast.NewTypeDecl(pos, nameTok.Lit, vars, body)
	d.Ent = p.declareTopLevel(nameTok.Lit, d, pos)
	return d
}

// parseTypeExpr parses one syntax-level type annotation.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	var base ast.TypeExpr
	switch p.cur().Type {
	case token.LBRACE:
		base = p.parseStructTypeExpr()
	case token.LBRACK:
		pos := p.cur().Pos
		p.advance()
		elem := p.parseTypeExpr()
		p.expect(token.RBRACK)
		base = ast.NewListTypeExpr(pos, elem)
	case token.LPAREN:
		base = p.parseTupleOrFunTypeExpr()
	case token.ELLIPSIS:
		pos := p.cur().Pos
		p.advance()
		base = ast.NewRestTypeExpr(pos, p.parseTypeExpr())
	case token.NAME:
		t := p.cur()
		p.advance()
		base = ast.NewNameTypeExpr(t.Pos, t.Lit, p.scope)
	default:
		p.errorf(SyntaxError, p.cur().Pos, "expected a type, found %s", p.cur().Type)
		t := p.cur()
		p.advance()
		return ast.NewNameTypeExpr(t.Pos, t.Lit, p.scope)
	}

	if p.curIs(token.LSS) {
		pos := p.cur().Pos
		p.advance()
		var args []ast.TypeExpr
		for !p.curIs(token.GTR) && !p.curIs(token.EOF) {
			args = append(args, p.parseTypeExpr())
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.GTR)
		base = ast.NewGenericTypeExpr(pos, base, args)
	}

	if p.curIs(token.QUESTION) {
		pos := p.cur().Pos
		p.advance()
		base = ast.NewOptionalTypeExpr(pos, base)
	}
	return base
}

// parseStructTypeExpr parses `{ name Type; name Type; ... }`, the
// structural right-hand side of a `type` declaration (spec.md §3
// "StructType {name, decls}"). Field separators are optional semicolons;
// the closing brace ends the field list.
func (p *Parser) parseStructTypeExpr() *ast.StructTypeExpr {
	pos := p.cur().Pos
	p.advance() // consume '{'

	var fields []*ast.StructFieldDecl
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) {
			p.advance()
			continue
		}
		fieldPos := p.cur().Pos
		if !p.curIs(token.NAME) {
			p.errorf(SyntaxError, fieldPos, "expected a field name, found %s", p.cur().Type)
			p.synchronize([]token.Type{token.SEMICOLON, token.RBRACE})
			continue
		}
		name := p.cur().Lit
		p.advance()
		typ := p.parseTypeExpr()
		fields = append(fields, &ast.StructFieldDecl{Name: name, Type: typ, Pos: fieldPos})
		if p.curIs(token.SEMICOLON) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return ast.NewStructTypeExpr(pos, fields)
}

// parseTupleOrFunTypeExpr parses `(T, U)` as a tuple type, or
// `(T, U) -> R` as a function type, disambiguated by an ARROW following
// the closing paren.
func (p *Parser) parseTupleOrFunTypeExpr() ast.TypeExpr {
	pos := p.cur().Pos
	p.advance() // consume '('
	var elems []ast.TypeExpr
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseTypeExpr())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	if p.curIs(token.ARROW) {
		p.advance()
		result := p.parseTypeExpr()
		return ast.NewFunTypeExpr(pos, elems, result)
	}
	if len(elems) == 1 {
		return elems[0]
	}
	return ast.NewTupleTypeExpr(pos, elems)
}

// parseLssInfixOrGenericCall handles the `a < b` vs `Name<T,U>(args)`
// ambiguity (spec.md §4.2 "Generic/template call site"). It speculatively
// tries to parse a type-argument list followed by a call; if that
// succeeds, the result is a CallExpr with TypeArgs populated, otherwise
// the parser backtracks and treats '<' as the ordinary comparison
// operator (spec.md §4.2.1 "backtracking harness").
func (p *Parser) parseLssInfixOrGenericCall(left ast.Expression) ast.Expression {
	if call, ok := tryParse(p, func() (ast.Expression, bool) {
		p.advance() // consume '<'
		var args []ast.TypeExpr
		for !p.curIs(token.GTR) {
			if p.curIs(token.EOF) || p.curIs(token.SEMICOLON) {
				return nil, false
			}
			args = append(args, p.parseTypeExpr())
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if !p.curIs(token.GTR) {
			return nil, false
		}
		p.advance() // consume '>'
		if !p.curIs(token.LPAREN) {
			return nil, false
		}
		return p.parseCallExprWithTypeArgs(left, args), true
	}); ok {
		return call
	}
	return p.parseBinaryExpr(left)
}
