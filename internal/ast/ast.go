// Package ast defines the abstract syntax tree for the language: a tree
// of tagged-variant nodes where every node carries its source position
// and the lexical scope in force where it was parsed (spec.md §3).
//
// Each node kind is its own Go type implementing Node (and Expression or
// Statement, as appropriate) rather than one polymorphic struct with a
// discriminator field, following spec.md §9's "tagged variants over
// instance-of checks" redesign guidance; a type switch in consumers
// plays the role of pattern matching.
package ast

import (
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() token.Pos
	String() string
}

// Expression is any node that produces a value and carries a type, set
// lazily by the resolver and memoized on the node (spec.md §4.3).
type Expression interface {
	Node
	exprNode()
	GetType() types.Type
	SetType(types.Type)
}

// Statement is any node that performs an action without itself producing
// a value.
type Statement interface {
	Node
	stmtNode()
}

// Decl is the subset of statements that introduce a binding: variable,
// type, import, and function declarations. Every Decl is also a
// Statement so it can appear directly in a Block.
type Decl interface {
	Statement
	declNode()
}

// exprBase factors the position/type bookkeeping shared by every
// expression node.
type exprBase struct {
	pos token.Pos
	typ types.Type
}

func (b *exprBase) Pos() token.Pos      { return b.pos }
func (b *exprBase) exprNode()           {}
func (b *exprBase) GetType() types.Type { return b.typ }
func (b *exprBase) SetType(t types.Type) {
	b.typ = t
	if u, ok := t.(*types.UnresolvedType); ok {
		u.AddRef(b)
	}
}

// File is the root node of one parsed source file: its imports, its
// top-level declarations in source order, and the set of identifiers
// the parser could not resolve locally (handed to the binder).
type File struct {
	Name       string
	Imports    []*ImportDecl
	Decls      []Decl
	Scope      *Scope // the file scope
	Unresolved []*Identifier
}

func (f *File) Pos() token.Pos { return token.NoPos }
func (f *File) String() string { return "file " + f.Name }

// AddUnresolved appends id to the file's deferred-resolution set. Called
// by the parser when a use occurrence misses in every scope up to and
// including the universe scope (spec.md §4.2).
func (f *File) AddUnresolved(id *Identifier) {
	f.Unresolved = append(f.Unresolved, id)
}

// Pkg is a parsed package: its shared package scope and every file that
// contributes to it (spec.md §3: "package scope (shared across files of
// one package)").
type Pkg struct {
	Name  string
	Scope *Scope // the package scope
	Files []*File
}

// Identifier is a named reference: a use occurrence (pre-resolution) or,
// once bound, a pointer back to its Ent. The invariant in spec.md §8
// ("i.ent = null iff i is in unresolved, or i is the wildcard _") is
// maintained by the parser and binder, never by Identifier itself.
type Identifier struct {
	exprBase
	Name  *token.ByteStr
	Scope *Scope // the scope in force where this identifier was parsed
	Ent   *Ent
}

func NewIdentifier(pos token.Pos, name *token.ByteStr, scope *Scope) *Identifier {
	id := &Identifier{Name: name, Scope: scope}
	id.pos = pos
	return id
}

func (i *Identifier) String() string { return i.Name.String() }

// IsBlank reports whether this identifier is the wildcard "_", which is
// never declared and never appears in a file's Unresolved set.
func (i *Identifier) IsBlank() bool { return i.Name.String() == "_" }

// IntLiteral is an integer literal. Value is interpreted as signed or
// unsigned depending on Signed; the resolver picks the default type
// using the policy in spec.md §4.3 and may re-type it narrower via
// convNum.
type IntLiteral struct {
	exprBase
	Value  uint64
	Signed bool
	Kind   token.Type // INT, INT_BIN, INT_OCT, or INT_HEX, for diagnostics
}

func NewIntLiteral(pos token.Pos, value uint64, signed bool, kind token.Type) *IntLiteral {
	n := &IntLiteral{Value: value, Signed: signed, Kind: kind}
	n.pos = pos
	return n
}
func (n *IntLiteral) String() string { return n.Kind.String() }

// FloatLiteral is a floating point literal; defaults to f64 (spec.md §4.3).
type FloatLiteral struct {
	exprBase
	Value float64
}

func NewFloatLiteral(pos token.Pos, value float64) *FloatLiteral {
	n := &FloatLiteral{Value: value}
	n.pos = pos
	return n
}
func (n *FloatLiteral) String() string { return "float" }

// CharLiteral is a rune literal.
type CharLiteral struct {
	exprBase
	Value rune
}

func NewCharLiteral(pos token.Pos, value rune) *CharLiteral {
	n := &CharLiteral{Value: value}
	n.pos = pos
	return n
}
func (n *CharLiteral) String() string { return "char" }

// StringLiteral is a string literal; its type is a StrType sized to its
// exact byte length (spec.md §4.3).
type StringLiteral struct {
	exprBase
	Value *token.ByteStr
}

func NewStringLiteral(pos token.Pos, value *token.ByteStr) *StringLiteral {
	n := &StringLiteral{Value: value}
	n.pos = pos
	return n
}
func (n *StringLiteral) String() string { return "\"" + n.Value.String() + "\"" }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	exprBase
	Value bool
}

func NewBoolLiteral(pos token.Pos, value bool) *BoolLiteral {
	n := &BoolLiteral{Value: value}
	n.pos = pos
	return n
}
func (n *BoolLiteral) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// Bad is the "bad/unresolved" recovery node spec.md §9 calls for: a
// placeholder Expression produced on a parse error so downstream passes
// never need to handle nil expressions.
type Bad struct {
	exprBase
}

func NewBad(pos token.Pos) *Bad {
	b := &Bad{}
	b.pos = pos
	b.typ = &types.UnresolvedType{For: "<bad>"}
	return b
}
func (b *Bad) String() string { return "<bad>" }
