package ast

import "github.com/cwbudde/langcore/internal/token"

// ImportDecl is `import path` or `import . path` / `import _ path` /
// `import name path`. Alias distinguishes the three binding modes:
//   - Alias == nil, Dot == false, Blank == false: the package's own name
//     is bound (the common case).
//   - Dot == true: every name in the imported package's scope is merged
//     directly into the importing file's scope (spec.md §4.4 and §9 —
//     left unimplemented in the distilled source; implemented here, see
//     DESIGN.md).
//   - Blank == true: the import is evaluated for its side effects only
//     and binds nothing.
type ImportDecl struct {
	stmtBase
	Path  *token.ByteStr
	Alias *token.ByteStr // non-nil for `import name path`
	Dot   bool
	Blank bool
	Ent   *Ent // nil for Dot and Blank imports
}

func NewImportDecl(pos token.Pos, path *token.ByteStr) *ImportDecl {
	return &ImportDecl{stmtBase: stmtBase{pos: pos}, Path: path}
}
func (d *ImportDecl) declNode()      {}
func (d *ImportDecl) String() string { return "import " + d.Path.String() }

// TypeVarDecl is one template/generic type parameter, e.g. the `T` in
// `type Box<T> = { value: T }`.
type TypeVarDecl struct {
	Name *token.ByteStr
	Pos  token.Pos
}

// TypeDecl is `type Name[<vars>] = typeExpr`, covering both a plain
// alias and a templated (generic) type declaration when len(Vars) > 0.
type TypeDecl struct {
	stmtBase
	Name  *token.ByteStr
	Vars  []*TypeVarDecl
	Value TypeExpr
	Ent   *Ent
}

func NewTypeDecl(pos token.Pos, name *token.ByteStr, vars []*TypeVarDecl, value TypeExpr) *TypeDecl {
	return &TypeDecl{stmtBase: stmtBase{pos: pos}, Name: name, Vars: vars, Value: value}
}
func (d *TypeDecl) declNode()      {}
func (d *TypeDecl) String() string { return "type " + d.Name.String() }

// FunExpr also serves as the top-level function declaration: a named
// FunExpr appearing directly in a File's Decls is a declaration, an
// anonymous one appearing as a sub-expression is a literal. Both forms
// share one type per spec.md §9's "fewer node kinds, more fields".
func (n *FunExpr) declNode() {}
func (n *FunExpr) stmtNode() {}

// VarDeclGroup is spec.md §3's "multi-declaration group": one `var`
// statement introducing several names at once (`a, b, c Int = 1, 2, 3`).
// Each sibling is still its own *VarDecl with its own Ent; the group
// exists only so the parser can hand the whole statement back through a
// single Statement/Decl slot.
type VarDeclGroup struct {
	stmtBase
	Decls []*VarDecl
}

func NewVarDeclGroup(decls []*VarDecl) *VarDeclGroup {
	pos := token.NoPos
	if len(decls) > 0 {
		pos = decls[0].Pos()
	}
	return &VarDeclGroup{stmtBase: stmtBase{pos: pos}, Decls: decls}
}
func (g *VarDeclGroup) declNode()      {}
func (g *VarDeclGroup) String() string { return "var (...)" }

var (
	_ Decl = (*ImportDecl)(nil)
	_ Decl = (*TypeDecl)(nil)
	_ Decl = (*FunExpr)(nil)
	_ Decl = (*VarDeclGroup)(nil)
)
