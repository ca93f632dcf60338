package resolver

import (
	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// ResolveBlock walks a statement list in order, resolving every
// expression it contains. Order matters here in a way plain expression
// resolution does not: a bare `name = expr` either stores to an
// existing binding or promotes to a brand-new one (spec.md §4.2
// "Assignment"), and a freshly-promoted name's type is only known once
// its declaring assignment has been walked.
func (r *Resolver) ResolveBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.VarDecl:
		r.resolveVarDecl(n)
	case *ast.VarDeclGroup:
		for _, d := range n.Decls {
			r.resolveVarDecl(d)
		}
	case *ast.ExprStmt:
		r.Resolve(n.X)
	case *ast.AssignStmt:
		r.resolveAssignStmt(n)
	case *ast.ReturnStmt:
		if n.Value != nil {
			r.Resolve(n.Value)
		}
	case *ast.WhileStmt:
		r.Resolve(n.Cond)
		r.ResolveBlock(n.Body)
	case *ast.ForStmt:
		if n.Init != nil {
			r.resolveStmt(n.Init)
		}
		if n.Cond != nil {
			r.Resolve(n.Cond)
		}
		r.ResolveBlock(n.Body)
		if n.Post != nil {
			r.resolveStmt(n.Post)
		}
	case *ast.BreakStmt, *ast.ContinueStmt:
		// nothing to resolve
	default:
		r.errorf(diag.KindType, s.Pos(), "cannot resolve statement %T", s)
	}
}

// resolveAssignStmt handles both forms spec.md §4.2's "Assignment" rule
// produces: a fresh single-name declaration (the parser leaves the
// Identifier's own Ent.Decl pointing back at itself when it promotes a
// name rather than finding an existing binding) and a store to an
// existing binding, which must convert losslessly against the existing
// declared type.
func (r *Resolver) resolveAssignStmt(n *ast.AssignStmt) {
	if id, ok := n.Lhs.(*ast.Identifier); ok && id.Ent != nil && id.Ent.Decl == id {
		rhsType := r.Resolve(n.Rhs)
		id.SetType(rhsType)
		return
	}

	lhsType := r.Resolve(n.Lhs)
	if n.Op == token.ASSIGN {
		r.ConvertLossless(lhsType, n.Rhs)
		return
	}

	if _, ok := token.BinaryOpForAssign(n.Op); ok {
		if types.IsNumeric(lhsType) {
			r.convNum(lhsType, n.Rhs)
		} else {
			r.Resolve(n.Rhs)
		}
	}
}
