package resolver

import (
	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// builtinNames maps every predeclared type keyword to its PrimType, in
// the spelling the scanner/parser surface uses (spec.md §8 scenario
// examples: "int", "f64", "bool", "str<1>", ...).
var builtinNames = map[string]types.Type{
	"bool": types.BoolType,
	"int":  types.IntType_,
	"uint": types.UintType,
	"i8":   types.Int8Type,
	"i16":  types.Int16Type,
	"i32":  types.Int32Type,
	"i64":  types.Int64Type,
	"u8":   types.Uint8Type,
	"u16":  types.U16Type,
	"u32":  types.U32Type,
	"u64":  types.U64Type,
	"f32":  types.F32Type,
	"f64":  types.F64Type,
	"void": types.VoidType,
}

// NewUniverseScope builds the read-only universe scope (spec.md §3:
// "the universe scope holds built-in types and predeclared
// identifiers"), binding every primitive type keyword to an Ent whose
// Decl is an *ast.BuiltinTypeDecl carrying its resolved types.Type.
func NewUniverseScope(in *token.Interner) *ast.Scope {
	universe := ast.NewScope(nil, ast.ScopeUniverse, nil)
	for name, t := range builtinNames {
		decl := &ast.BuiltinTypeDecl{Name: name, Type: t}
		universe.Declare(in.InternString(name), decl)
	}
	return universe
}
