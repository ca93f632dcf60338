package resolver

import (
	"strings"

	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// ResolveTypeExpr resolves a syntax-level TypeExpr to its canonical
// types.Type. Every TypeExpr node carries the scope it was parsed in
// (NameTypeExpr.Scope, and transitively through the scopes its children
// were parsed in), so no separate scope parameter is needed — unlike
// Identifier resolution, a type name's declaring TypeDecl is already
// present in package scope by the time any resolver pass runs (every
// top-level declaration is declared during parsing), so forward
// references to a type declared later in the same file or a sibling
// file resolve with a plain scope lookup; no UnresolvedType backpatch
// machinery is needed at the type-expression level (spec.md §8 scenario
// 4's `T1<int,f32>(...)` used before `type T1<A,B> {...}` is declared).
func (r *Resolver) ResolveTypeExpr(te ast.TypeExpr) types.Type {
	if te == nil {
		return types.VoidType
	}
	if cached, ok := r.typeExprs[te]; ok {
		return cached
	}
	t := r.resolveTypeExpr(te)
	r.typeExprs[te] = t
	return t
}

func (r *Resolver) resolveTypeExpr(te ast.TypeExpr) types.Type {
	switch n := te.(type) {
	case voidMarker:
		return types.VoidType
	case *ast.NameTypeExpr:
		return r.resolveNameTypeExpr(n)
	case *ast.ListTypeExpr:
		return types.ListType{Elem: r.ResolveTypeExpr(n.Elem)}
	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = r.ResolveTypeExpr(e)
		}
		return r.cache.GetTupleType(elems)
	case *ast.OptionalTypeExpr:
		return types.OptionalType{Inner: r.ResolveTypeExpr(n.Inner)}
	case *ast.RestTypeExpr:
		return types.RestType{Elem: r.ResolveTypeExpr(n.Elem)}
	case *ast.FunTypeExpr:
		params := make([]types.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = r.ResolveTypeExpr(p)
		}
		return types.FunType{Params: params, Result: r.ResolveTypeExpr(n.Result)}
	case *ast.StructTypeExpr:
		return r.resolveStructTypeExpr(n, "")
	case *ast.GenericTypeExpr:
		return r.resolveGenericTypeExpr(n)
	default:
		r.errorf(diag.KindType, te.Pos(), "cannot resolve type expression %s", te.String())
		return &types.UnresolvedType{For: "type expr"}
	}
}

// voidMarker is satisfied by the parser's synthesized void-result
// TypeExpr (produced once a block body is proven never to return a
// value); the resolver matches it structurally rather than importing the
// parser package, since the marker carries no data of its own.
type voidMarker interface {
	ast.TypeExpr
	isVoidMarker()
}

func (r *Resolver) resolveNameTypeExpr(n *ast.NameTypeExpr) types.Type {
	ent, ok := n.Scope.Lookup(n.Name)
	if !ok {
		r.errorf(diag.KindReference, n.Pos(), "undefined type %s", n.Name.String())
		return &types.UnresolvedType{For: "type " + n.Name.String()}
	}
	switch d := ent.Decl.(type) {
	case *ast.BuiltinTypeDecl:
		return d.Type
	case *ast.TypeVarDecl:
		return types.TypeVar{Name: d.Name.String()}
	case *ast.TypeDecl:
		if len(d.Vars) > 0 {
			r.errorf(diag.KindType, n.Pos(), "generic type %s used without type arguments", d.Name.String())
			return &types.UnresolvedType{For: "type " + n.Name.String()}
		}
		return r.resolveTypeDeclBody(d)
	default:
		r.errorf(diag.KindReference, n.Pos(), "%s does not name a type", n.Name.String())
		return &types.UnresolvedType{For: "type " + n.Name.String()}
	}
}

// resolveTypeDeclBody resolves a non-generic TypeDecl's right-hand side,
// wrapping a named StructTypeExpr body in an AliasType-free StructType
// carrying the declaration's own name.
func (r *Resolver) resolveTypeDeclBody(d *ast.TypeDecl) types.Type {
	if st, ok := d.Value.(*ast.StructTypeExpr); ok {
		return r.resolveStructTypeExpr(st, d.Name.String())
	}
	inner := r.ResolveTypeExpr(d.Value)
	return types.AliasType{Name: d.Name.String(), AliasOf: inner}
}

func (r *Resolver) resolveStructTypeExpr(n *ast.StructTypeExpr, name string) types.Type {
	fields := make([]types.Field, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = types.Field{Name: f.Name.String(), Type: r.ResolveTypeExpr(f.Type)}
	}
	return types.StructType{Name: name, Fields: fields}
}

// templateKey identifies one hash-consed template instantiation: the
// declaring TypeDecl together with the stringified argument list
// (spec.md §9 "GenericTypeInstance": "substitutes into a Template{vars,
// base} and hash-conses the instance").
type templateKey struct {
	decl *ast.TypeDecl
	args string
}

func (r *Resolver) resolveGenericTypeExpr(n *ast.GenericTypeExpr) types.Type {
	baseName, ok := n.Base.(*ast.NameTypeExpr)
	if !ok {
		r.errorf(diag.KindType, n.Pos(), "generic base must be a type name")
		return &types.UnresolvedType{For: "generic"}
	}
	ent, ok := baseName.Scope.Lookup(baseName.Name)
	if !ok {
		r.errorf(diag.KindReference, n.Pos(), "undefined type %s", baseName.Name.String())
		return &types.UnresolvedType{For: "type " + baseName.Name.String()}
	}
	decl, ok := ent.Decl.(*ast.TypeDecl)
	if !ok {
		r.errorf(diag.KindReference, n.Pos(), "%s does not name a generic type", baseName.Name.String())
		return &types.UnresolvedType{For: "generic"}
	}
	args := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		args[i] = r.ResolveTypeExpr(a)
	}
	return r.instantiateTemplate(decl, args, n.Pos())
}

// instantiateTemplate substitutes args for decl's template variables
// (positionally, by Vars order) into decl's StructTypeExpr body and
// hash-conses the result, so that `T1<int,f32>` always resolves to the
// same *types.Type instance (spec.md §8 "resolve(x) is idempotent").
func (r *Resolver) instantiateTemplate(decl *ast.TypeDecl, args []types.Type, pos token.Pos) types.Type {
	if len(args) != len(decl.Vars) {
		r.errorf(diag.KindType, pos, "generic type %s expects %d type argument(s), got %d",
			decl.Name.String(), len(decl.Vars), len(args))
		return &types.UnresolvedType{For: "generic " + decl.Name.String()}
	}

	key := templateKey{decl: decl, args: argsKey(args)}
	if cached, ok := r.templates[key]; ok {
		return cached
	}

	subst := make(map[string]types.Type, len(decl.Vars))
	for i, v := range decl.Vars {
		subst[v.Name.String()] = args[i]
	}

	st, ok := decl.Value.(*ast.StructTypeExpr)
	if !ok {
		r.errorf(diag.KindType, decl.Pos(), "generic type %s must have a struct body", decl.Name.String())
		return &types.UnresolvedType{For: "generic " + decl.Name.String()}
	}

	fields := make([]types.Field, len(st.Fields))
	for i, f := range st.Fields {
		fields[i] = types.Field{Name: f.Name.String(), Type: r.substituteTypeExpr(f.Type, subst)}
	}
	instance := types.StructType{Name: decl.Name.String(), Fields: fields}
	r.templates[key] = instance
	return instance
}

// substituteTypeExpr resolves te under a template variable substitution,
// without relying on ResolveTypeExpr's cache (the same TypeExpr node —
// e.g. a field's declared type `A` — resolves to a different concrete
// type per instantiation, so this path is deliberately uncached per
// node, cached instead at the instantiateTemplate/templateKey level).
func (r *Resolver) substituteTypeExpr(te ast.TypeExpr, subst map[string]types.Type) types.Type {
	switch n := te.(type) {
	case *ast.NameTypeExpr:
		if t, ok := subst[n.Name.String()]; ok {
			return t
		}
		return r.ResolveTypeExpr(n)
	case *ast.ListTypeExpr:
		return types.ListType{Elem: r.substituteTypeExpr(n.Elem, subst)}
	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = r.substituteTypeExpr(e, subst)
		}
		return r.cache.GetTupleType(elems)
	case *ast.OptionalTypeExpr:
		return types.OptionalType{Inner: r.substituteTypeExpr(n.Inner, subst)}
	case *ast.RestTypeExpr:
		return types.RestType{Elem: r.substituteTypeExpr(n.Elem, subst)}
	case *ast.FunTypeExpr:
		params := make([]types.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = r.substituteTypeExpr(p, subst)
		}
		return types.FunType{Params: params, Result: r.substituteTypeExpr(n.Result, subst)}
	case *ast.StructTypeExpr:
		fields := make([]types.Field, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = types.Field{Name: f.Name.String(), Type: r.substituteTypeExpr(f.Type, subst)}
		}
		return types.StructType{Fields: fields}
	case *ast.GenericTypeExpr:
		return r.resolveGenericTypeExpr(n)
	default:
		return r.ResolveTypeExpr(te)
	}
}

func argsKey(args []types.Type) string {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.String())
	}
	return sb.String()
}
