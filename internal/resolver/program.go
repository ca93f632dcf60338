package resolver

import "github.com/cwbudde/langcore/internal/ast"

// ResolveFile resolves every top-level declaration in f: each function's
// signature and body, each top-level var's initializer, and each type
// declaration's body (so a never-referenced generic template still gets
// checked, rather than only the instantiations call sites happen to
// produce). Order doesn't matter here the way it does inside a block —
// top-level names are all visible to each other from the first parse
// pass (spec.md §4.2), so this is a single unordered pass, not a
// worklist.
func (r *Resolver) ResolveFile(f *ast.File) {
	for _, d := range f.Decls {
		r.resolveTopLevelDecl(d)
	}
}

// ResolvePkg resolves every file in pkg (spec.md §4.4 runs after the
// binder has already settled cross-file references).
func (r *Resolver) ResolvePkg(pkg *ast.Pkg) {
	for _, f := range pkg.Files {
		r.ResolveFile(f)
	}
}

func (r *Resolver) resolveTopLevelDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FunExpr:
		r.Resolve(n)
		r.ResolveBlock(n.Body)
	case *ast.VarDecl:
		r.resolveVarDecl(n)
	case *ast.VarDeclGroup:
		for _, v := range n.Decls {
			r.resolveVarDecl(v)
		}
	case *ast.TypeDecl:
		r.resolveTypeDeclBody(n)
	case *ast.ImportDecl:
		// nothing to resolve; the binder already settled it.
	}
}
