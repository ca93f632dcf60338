// Package parser implements the recursive-descent/Pratt parser: scoping
// and declaration/resolution, variable and function declarations,
// expression parsing with operator precedence, and the speculative
// backtracking harness ambiguous constructs need.
//
// Grounded throughout on the teacher's internal/parser (ParseContext,
// TokenCursor, ErrorRecovery), adapted from DWScript's Pascal-flavoured
// surface grammar to this language's expression-oriented, tuple/generic
// surface.
package parser

import (
	"fmt"

	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/token"
)

// precedence levels beyond what token.Precedence covers. token.Precedence
// tops out at 5 (multiplicative operators); postfix operators (call,
// index/slice, selector) and unary prefix bind tighter than every binary
// operator, so they sit well above that range.
const (
	lowest     = 0
	prefixPrec = 90
	callPrec   = 100
	indexPrec  = 100
)

type prefixParseFn func() ast.Expression
type infixParseFn func(left ast.Expression) ast.Expression

// Parser turns a token stream into a *ast.File, resolving identifiers
// against the live scope stack as it goes and deferring what it cannot
// resolve locally to the file's Unresolved set for the binder
// (spec.md §4.2, §4.4).
type Parser struct {
	in      *token.Interner
	fset    *token.FileSet
	cursor  *tokenCursor
	ctx     *ParseContext
	errors  []*ParserError
	handler diag.ErrorHandler

	universe *ast.Scope
	pkg      *ast.Scope
	file     *ast.Scope
	scope    *ast.Scope // the innermost scope currently in force

	curFile *ast.File

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New creates a Parser reading from sc, interning identifiers/strings
// through in, resolving names against pkgScope (shared across every
// file of the package being parsed — spec.md §3), and routing every
// diagnostic it raises (syntax, redeclaration, unused name) through
// handler, the same ErrorHandler contract the resolver and binder use
// (spec.md §4.2 "Syntax errors ... reported via an ErrorHandler").
func New(in *token.Interner, fset *token.FileSet, sc Scanner, universe, pkgScope *ast.Scope, handler diag.ErrorHandler) *Parser {
	p := &Parser{
		in:       in,
		fset:     fset,
		cursor:   newTokenCursor(sc),
		ctx:      NewParseContext(),
		universe: universe,
		pkg:      pkgScope,
		handler:  handler,
	}
	p.prefixFns = map[token.Type]prefixParseFn{
		token.NAME:     p.parseIdentifier,
		token.INT:      p.parseIntLiteral,
		token.INT_BIN:  p.parseIntLiteral,
		token.INT_OCT:  p.parseIntLiteral,
		token.INT_HEX:  p.parseIntLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.CHAR:     p.parseCharLiteral,
		token.STRING:   p.parseStringLiteral,
		token.SUB:      p.parsePrefixExpr,
		token.NOT:      p.parsePrefixExpr,
		token.LPAREN:   p.parseParenOrTupleExpr,
		token.LBRACK:   p.parseListExpr,
		token.IF:       p.parseIfExpr,
		token.FUN:      p.parseFunExpr,
	}
	p.infixFns = map[token.Type]infixParseFn{
		token.ADD: p.parseBinaryExpr, token.SUB: p.parseBinaryExpr,
		token.MUL: p.parseBinaryExpr, token.QUO: p.parseBinaryExpr, token.REM: p.parseBinaryExpr,
		token.AND: p.parseBinaryExpr, token.OR: p.parseBinaryExpr, token.XOR: p.parseBinaryExpr,
		token.SHL: p.parseBinaryExpr, token.SHR: p.parseBinaryExpr, token.ANDNOT: p.parseBinaryExpr,
		token.LAND: p.parseBinaryExpr, token.LOR: p.parseBinaryExpr,
		token.EQL: p.parseBinaryExpr, token.NEQ: p.parseBinaryExpr,
		token.LSS: p.parseLssInfixOrGenericCall, token.LEQ: p.parseBinaryExpr,
		token.GTR: p.parseBinaryExpr, token.GEQ: p.parseBinaryExpr,
		token.LPAREN: p.parseCallExpr,
		token.LBRACK: p.parseIndexOrSliceExpr,
		token.DOT:    p.parseSelectorOrTupleIndex,
	}
	return p
}

// Errors returns every diagnostic recorded while parsing.
func (p *Parser) Errors() []*ParserError { return p.errors }

func (p *Parser) errorf(kind ErrorKind, pos token.Pos, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, &ParserError{Kind: kind, Pos: pos, Message: msg})
	if p.handler != nil {
		p.handler.HandleError(p.fset.Position(pos), diag.Error, msg, kind.diagKind().Code())
	}
}

// warnf reports a non-fatal diagnostic (e.g. an unused name) directly
// through the ErrorHandler at Warn severity. Unlike errorf, it is not
// also recorded in p.errors: a warning must not make Errors() non-empty
// and fail a caller checking for hard parse failures.
func (p *Parser) warnf(pos token.Pos, code diag.Code, format string, args ...any) {
	if p.handler != nil {
		p.handler.HandleError(p.fset.Position(pos), diag.Warn, fmt.Sprintf(format, args...), code)
	}
}

func (p *Parser) cur() tok      { return p.cursor.Current() }
func (p *Parser) peek(n int) tok { return p.cursor.Peek(n) }
func (p *Parser) advance()      { p.cursor.Advance() }

func (p *Parser) curIs(t token.Type) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek(1).Type == t }

// expect advances past the current token if it matches t, else records
// a syntax error and returns false, leaving the cursor positioned at the
// offending token for the caller's recovery/synchronize call.
func (p *Parser) expect(t token.Type) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorf(SyntaxError, p.cur().Pos, "expected %s, found %s", t, p.cur().Type)
	return false
}

// pushScope enters a new nested scope and makes it current.
func (p *Parser) pushScope(kind ast.ScopeKind, ctx ast.Node) *ast.Scope {
	s := ast.NewScope(p.scope, kind, ctx)
	p.scope = s
	return s
}

// popScope restores the enclosing scope, first warning about every Ent
// that was declared but never read (spec.md §4.2 "declare"/unused
// diagnostics, §8 scenario 6): E_UNUSED_VAR for a plain local,
// E_UNUSED_PARAM for a function parameter (distinguished by the
// declaring node's own kind, not by severity-blind ParserError — these
// are warnings, not errors, so they never fail a caller that only
// checks Errors()). Struct fields are plain TypeExpr data, never
// scope-declared as an Ent, so E_UNUSED_FIELD has no occurrence here;
// it awaits a future resolver-side field-usage pass.
func (p *Parser) popScope() {
	for _, e := range p.scope.Entries() {
		if e.IsUnused() && e.Name.String() != "_" {
			code := diag.CodeUnusedVar
			if _, ok := e.Decl.(*paramDeclNode); ok {
				code = diag.CodeUnusedParam
			}
			p.warnf(e.Decl.Pos(), code, "%s declared and not used", e.Name.String())
		}
	}
	p.scope = p.scope.Outer
}

// declare binds name in the current scope, or records a redeclaration
// error if name is already locally bound. The wildcard "_" is never
// declared (spec.md §4.2).
func (p *Parser) declare(name *token.ByteStr, decl ast.Node, pos token.Pos) *ast.Ent {
	return p.declareIn(p.scope, name, decl, pos)
}

// declareTopLevel binds name in the package scope rather than the
// current (file) scope, implementing spec.md §4.2's "top-level
// declarations … are declared in the package scope, not the file
// scope." Nested scopes created while parsing the declaration's body
// still chain up through the file scope for name resolution — only the
// Ent's home changes.
func (p *Parser) declareTopLevel(name *token.ByteStr, decl ast.Node, pos token.Pos) *ast.Ent {
	return p.declareIn(p.pkg, name, decl, pos)
}

func (p *Parser) declareIn(scope *ast.Scope, name *token.ByteStr, decl ast.Node, pos token.Pos) *ast.Ent {
	if name.String() == "_" {
		return nil
	}
	if _, exists := scope.Local(name); exists {
		p.errorf(DeclarationError, pos, "%s redeclared in this scope", name.String())
	}
	return scope.Declare(name, decl)
}

// resolve looks up name against the live scope chain, building an
// Identifier node. On a miss, the identifier is added to the current
// file's Unresolved set instead of erroring immediately — forward
// references across declaration order, and across files, are legal
// until the binder's linking pass (spec.md §4.2, §4.4).
func (p *Parser) resolve(pos token.Pos, name *token.ByteStr) *ast.Identifier {
	id := ast.NewIdentifier(pos, name, p.scope)
	if id.IsBlank() {
		return id
	}
	if e, ok := p.scope.Lookup(name); ok {
		id.Ent = e
		e.MarkRead()
		return id
	}
	p.curFile.AddUnresolved(id)
	return id
}
