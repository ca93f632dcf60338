package resolver

import (
	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// resolveSelectorExpr resolves both forms of SelectorExpr: the numeric
// tuple-index form `a.N` (spec.md §4.2 "Indexing & slicing") and the
// named member form `a.name` against a StructType.
func (r *Resolver) resolveSelectorExpr(n *ast.SelectorExpr) types.Type {
	xt := r.Resolve(n.X)
	if n.IsIndex {
		elems := tupleElems(xt)
		if n.Index < 0 || n.Index >= len(elems) {
			r.errorf(diag.KindReference, n.Pos(), "out-of-bounds tuple index %d", n.Index)
			return &types.UnresolvedType{For: "tuple index"}
		}
		return elems[n.Index]
	}

	st, ok := unwrapStruct(xt)
	if !ok {
		r.errorf(diag.KindReference, n.Pos(), "%s is not a struct, cannot access field %s", xt, n.Name)
		return &types.UnresolvedType{For: "selector " + n.Name}
	}
	f, ok := st.FieldByName(n.Name)
	if !ok {
		r.errorf(diag.KindReference, n.Pos(), "undefined field %s", n.Name)
		return &types.UnresolvedType{For: "selector " + n.Name}
	}
	return f.Type
}

// resolveIndexExpr resolves `a[expr]`: a ListType index is ordinary
// (the index need not be constant); a TupleType index must constant-fold
// to an in-range integer (spec.md §4.2/§4.3 maybeResolveTupleAccess).
func (r *Resolver) resolveIndexExpr(n *ast.IndexExpr) types.Type {
	xt := r.Resolve(n.X)
	if lt, ok := xt.(types.ListType); ok {
		r.Resolve(n.Index)
		return lt.Elem
	}

	elemT, ok := r.maybeResolveTupleAccess(xt, n.Index, n.Pos())
	if !ok {
		return &types.UnresolvedType{For: "index"}
	}
	return elemT
}

// maybeResolveTupleAccess constant-folds indexExpr against xt's tuple
// elements and returns the indexed element type, or false if the index
// is not constant or is out of range (spec.md §4.3).
func (r *Resolver) maybeResolveTupleAccess(xt types.Type, indexExpr ast.Expression, pos token.Pos) (types.Type, bool) {
	idx, ok := foldConstInt(indexExpr)
	if !ok {
		r.errorf(diag.KindReference, pos, "tuple index must be a constant expression")
		return nil, false
	}
	elems := tupleElems(xt)
	if idx < 0 || int(idx) >= len(elems) {
		r.errorf(diag.KindReference, pos, "out-of-bounds tuple index %d", idx)
		return nil, false
	}
	return elems[idx], true
}

// resolveSliceExpr resolves `a[lo:hi]`: a ListType slice keeps the same
// element type; a TupleType slice constant-folds both bounds and returns
// the canonicalized sub-tuple type (spec.md §4.3 tupleSlice).
func (r *Resolver) resolveSliceExpr(n *ast.SliceExpr) types.Type {
	xt := r.Resolve(n.X)
	if lt, ok := xt.(types.ListType); ok {
		if n.Lo != nil {
			r.Resolve(n.Lo)
		}
		if n.Hi != nil {
			r.Resolve(n.Hi)
		}
		return lt
	}

	t, ok := r.tupleSlice(n, xt)
	if !ok {
		return &types.UnresolvedType{For: "slice"}
	}
	return t
}

func (r *Resolver) tupleSlice(n *ast.SliceExpr, xt types.Type) (types.Type, bool) {
	elems := tupleElems(xt)
	lo, hi := 0, len(elems)
	if n.Lo != nil {
		v, ok := foldConstInt(n.Lo)
		if !ok {
			r.errorf(diag.KindReference, n.Pos(), "tuple slice bounds must be constant")
			return nil, false
		}
		lo = int(v)
	}
	if n.Hi != nil {
		v, ok := foldConstInt(n.Hi)
		if !ok {
			r.errorf(diag.KindReference, n.Pos(), "tuple slice bounds must be constant")
			return nil, false
		}
		hi = int(v)
	}
	if lo < 0 || hi > len(elems) || lo > hi {
		r.errorf(diag.KindReference, n.Pos(), "tuple slice [%d:%d] out of range", lo, hi)
		return nil, false
	}
	return r.cache.GetTupleType(elems[lo:hi]), true
}

// tupleElems returns t's element types, treating a non-tuple type as the
// single-element tuple it collapsed from (spec.md §3 "TupleType of
// length 1 collapses to its element").
func tupleElems(t types.Type) []types.Type {
	if tt, ok := t.(types.TupleType); ok {
		return tt.Elems
	}
	return []types.Type{t}
}

// unwrapStruct unwraps a (possibly aliased) StructType, reporting false
// for anything else.
func unwrapStruct(t types.Type) (types.StructType, bool) {
	switch x := t.(type) {
	case types.StructType:
		return x, true
	case types.AliasType:
		return unwrapStruct(x.AliasOf)
	default:
		return types.StructType{}, false
	}
}

// foldConstInt constant-folds expr to an int64, covering integer
// arithmetic over literals and variables bound by immutable Ents whose
// decl is a variable declaration with a constant RHS (spec.md §4.2
// "Indexing & slicing"). Division follows Go's truncate-toward-zero
// semantics, matching the declared literal type's integer arithmetic
// (spec.md §9's residual-folding note).
func foldConstInt(expr ast.Expression) (int64, bool) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return int64(n.Value), true
	case *ast.Identifier:
		if n.Ent == nil || n.Ent.Writes() > 0 {
			return 0, false
		}
		if vd, ok := n.Ent.Decl.(*ast.VarDecl); ok {
			if vd.Init == nil {
				return 0, false
			}
			return foldConstInt(vd.Init)
		}
		if n.Ent.Value != nil {
			// A plain `name = expr` promotion (spec.md §4.2
			// "Assignment") rather than a `var` declaration: the
			// defining value lives on the Ent itself.
			return foldConstInt(n.Ent.Value)
		}
		return 0, false
	case *ast.UnaryExpr:
		v, ok := foldConstInt(n.Expr)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case token.SUB:
			return -v, true
		case token.ADD:
			return v, true
		default:
			return 0, false
		}
	case *ast.BinaryExpr:
		l, ok := foldConstInt(n.Left)
		if !ok {
			return 0, false
		}
		rhs, ok := foldConstInt(n.Right)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case token.ADD:
			return l + rhs, true
		case token.SUB:
			return l - rhs, true
		case token.MUL:
			return l * rhs, true
		case token.QUO:
			if rhs == 0 {
				return 0, false
			}
			return l / rhs, true
		case token.REM:
			if rhs == 0 {
				return 0, false
			}
			return l % rhs, true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}
