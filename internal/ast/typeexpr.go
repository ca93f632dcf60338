package ast

import (
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// TypeExpr is a syntax-level type annotation, as written by the
// programmer — distinct from types.Type, which is the resolved,
// canonical representation the type resolver produces from it
// (spec.md §3: "syntax-level type annotations are a separate, smaller
// node family from resolved types").
type TypeExpr interface {
	Node
	typeExprNode()
}

type typeExprBase struct {
	pos token.Pos
}

func (b *typeExprBase) Pos() token.Pos { return b.pos }
func (b *typeExprBase) typeExprNode()  {}

// NameTypeExpr is a bare name reference: `Int`, `MyStruct`, or a
// template variable such as `T`. Ent is filled in once the name
// resolves to its declaring TypeDecl or TypeVarDecl.
type NameTypeExpr struct {
	typeExprBase
	Name  *token.ByteStr
	Scope *Scope
	Ent   *Ent
}

func NewNameTypeExpr(pos token.Pos, name *token.ByteStr, scope *Scope) *NameTypeExpr {
	return &NameTypeExpr{typeExprBase: typeExprBase{pos: pos}, Name: name, Scope: scope}
}
func (t *NameTypeExpr) String() string { return t.Name.String() }

// ListTypeExpr is `[T]`, a homogeneous list of T.
type ListTypeExpr struct {
	typeExprBase
	Elem TypeExpr
}

func NewListTypeExpr(pos token.Pos, elem TypeExpr) *ListTypeExpr {
	return &ListTypeExpr{typeExprBase: typeExprBase{pos: pos}, Elem: elem}
}
func (t *ListTypeExpr) String() string { return "[" + t.Elem.String() + "]" }

// TupleTypeExpr is `(T, U, …)`, a structural tuple of two or more
// element types.
type TupleTypeExpr struct {
	typeExprBase
	Elems []TypeExpr
}

func NewTupleTypeExpr(pos token.Pos, elems []TypeExpr) *TupleTypeExpr {
	return &TupleTypeExpr{typeExprBase: typeExprBase{pos: pos}, Elems: elems}
}
func (t *TupleTypeExpr) String() string { return "(...)" }

// OptionalTypeExpr is `T?`.
type OptionalTypeExpr struct {
	typeExprBase
	Inner TypeExpr
}

func NewOptionalTypeExpr(pos token.Pos, inner TypeExpr) *OptionalTypeExpr {
	return &OptionalTypeExpr{typeExprBase: typeExprBase{pos: pos}, Inner: inner}
}
func (t *OptionalTypeExpr) String() string { return t.Inner.String() + "?" }

// RestTypeExpr is `…T`, the trailing variadic-parameter type annotation.
type RestTypeExpr struct {
	typeExprBase
	Elem TypeExpr
}

func NewRestTypeExpr(pos token.Pos, elem TypeExpr) *RestTypeExpr {
	return &RestTypeExpr{typeExprBase: typeExprBase{pos: pos}, Elem: elem}
}
func (t *RestTypeExpr) String() string { return "..." + t.Elem.String() }

// GenericTypeExpr is a templated type instantiation written at the type
// level, e.g. `Box<Int>` or `Pair<Int, Str>`.
type GenericTypeExpr struct {
	typeExprBase
	Base TypeExpr
	Args []TypeExpr
}

func NewGenericTypeExpr(pos token.Pos, base TypeExpr, args []TypeExpr) *GenericTypeExpr {
	return &GenericTypeExpr{typeExprBase: typeExprBase{pos: pos}, Base: base, Args: args}
}
func (t *GenericTypeExpr) String() string { return t.Base.String() + "<...>" }

// FunTypeExpr is a function type annotation `(T, U) -> R`, used for
// parameters and fields that hold function values.
type FunTypeExpr struct {
	typeExprBase
	Params []TypeExpr
	Result TypeExpr
}

func NewFunTypeExpr(pos token.Pos, params []TypeExpr, result TypeExpr) *FunTypeExpr {
	return &FunTypeExpr{typeExprBase: typeExprBase{pos: pos}, Params: params, Result: result}
}
func (t *FunTypeExpr) String() string { return "(...) -> " + t.Result.String() }

// StructFieldDecl is one `name Type` member of a struct type expression.
type StructFieldDecl struct {
	Name *token.ByteStr
	Type TypeExpr
	Pos  token.Pos
}

// StructTypeExpr is `{ name Type; name Type; ... }`, the structural
// record form a `type` declaration's right-hand side takes (spec.md §3
// "StructType {name, decls}"; the name is supplied by the enclosing
// TypeDecl, not this node).
type StructTypeExpr struct {
	typeExprBase
	Fields []*StructFieldDecl
}

func NewStructTypeExpr(pos token.Pos, fields []*StructFieldDecl) *StructTypeExpr {
	return &StructTypeExpr{typeExprBase: typeExprBase{pos: pos}, Fields: fields}
}
func (t *StructTypeExpr) String() string { return "{...}" }

// BuiltinTypeDecl is the Ent.Decl for a predeclared primitive type name
// bound in the universe scope (spec.md §3 "universe scope holds built-in
// types and predeclared identifiers"). It is never produced by the
// parser — only by the code that constructs the universe scope — so it
// carries no source position of its own.
type BuiltinTypeDecl struct {
	Name string
	Type types.Type
}

func (d *BuiltinTypeDecl) Pos() token.Pos { return token.NoPos }
func (d *BuiltinTypeDecl) String() string { return d.Name }

var (
	_ TypeExpr = (*NameTypeExpr)(nil)
	_ TypeExpr = (*ListTypeExpr)(nil)
	_ TypeExpr = (*TupleTypeExpr)(nil)
	_ TypeExpr = (*OptionalTypeExpr)(nil)
	_ TypeExpr = (*RestTypeExpr)(nil)
	_ TypeExpr = (*GenericTypeExpr)(nil)
	_ TypeExpr = (*FunTypeExpr)(nil)
	_ TypeExpr = (*StructTypeExpr)(nil)
	_ Node     = (*BuiltinTypeDecl)(nil)
)
