package resolver

import (
	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/types"
)

// resolveCallExpr resolves a call site. A call whose Fun identifier
// names a generic TypeDecl is a template-instantiation constructor call
// (spec.md §8 scenario 4: `T1<int,f32>(1, 2.0)`); every other call
// resolves its Fun to a FunType and yields the declared Result.
//
// Arguments resolve independently of the callee's parameter types —
// scenario 4 expects the float literal argument to default to f64 even
// though the matching field is f32, so no argument-to-parameter
// conversion happens here.
func (r *Resolver) resolveCallExpr(n *ast.CallExpr) types.Type {
	for _, a := range n.Args {
		r.Resolve(a)
	}

	if id, ok := n.Fun.(*ast.Identifier); ok && id.Ent != nil {
		if decl, ok := id.Ent.Decl.(*ast.TypeDecl); ok {
			args := make([]types.Type, len(n.TypeArgs))
			for i, ta := range n.TypeArgs {
				args[i] = r.ResolveTypeExpr(ta)
			}
			return r.instantiateTemplate(decl, args, n.Pos())
		}
	}

	funType := r.Resolve(n.Fun)
	ft, ok := funType.(types.FunType)
	if !ok {
		if _, unresolved := funType.(*types.UnresolvedType); unresolved {
			return &types.UnresolvedType{For: "call"}
		}
		r.errorf(diag.KindType, n.Pos(), "cannot call non-function type %s", funType)
		return &types.UnresolvedType{For: "call"}
	}
	return ft.Result
}
