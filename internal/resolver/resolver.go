// Package resolver implements the type resolver (spec.md §4.3): it
// assigns every expression a Type, lazily and memoized directly on the
// node via Expression.GetType/SetType, performs constant folding on
// tuple indexing, applies numeric literal conversion with loss
// detection, and resolves syntax-level TypeExprs to canonical
// types.Type values — including template (generic) instantiation.
package resolver

import (
	"fmt"

	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// Resolver holds the shared, process-wide resources the resolution
// algorithms need: a FileSet to turn Pos into diagnostic Positions, the
// tuple/string-length canonicalization Cache, and the ErrorHandler
// diagnostics are reported to (spec.md §9: "provide explicit
// construction ... so tests can reset state").
type Resolver struct {
	fset    *token.FileSet
	cache   *types.Cache
	handler diag.ErrorHandler

	typeExprs map[ast.TypeExpr]types.Type
	templates map[templateKey]types.Type
	varDecls  map[*ast.VarDecl]types.Type
}

// New creates a Resolver. cache is typically shared across every file of
// one package so tuple/string types canonicalize across file boundaries.
func New(fset *token.FileSet, cache *types.Cache, handler diag.ErrorHandler) *Resolver {
	return &Resolver{
		fset:      fset,
		cache:     cache,
		handler:   handler,
		typeExprs: make(map[ast.TypeExpr]types.Type),
		templates: make(map[templateKey]types.Type),
		varDecls:  make(map[*ast.VarDecl]types.Type),
	}
}

func (r *Resolver) errorf(kind diag.Kind, pos token.Pos, format string, args ...any) {
	r.handler.HandleError(r.fset.Position(pos), diag.Error, fmt.Sprintf(format, args...), kind.Code())
}

// Resolve returns expr's type, computing it on first call and caching it
// directly on the node. Idempotent: after the first call, further calls
// return the same Type value (spec.md §4.3, §8 "resolve(x) is idempotent").
func (r *Resolver) Resolve(expr ast.Expression) types.Type {
	if t := expr.GetType(); t != nil {
		return t
	}
	t := r.resolve(expr)
	expr.SetType(t)
	return t
}

func (r *Resolver) resolve(expr ast.Expression) types.Type {
	switch n := expr.(type) {
	case *ast.Bad:
		return n.GetType()
	case *ast.Identifier:
		return r.resolveIdentifier(n)
	case *ast.IntLiteral:
		return r.resolveIntLiteral(n)
	case *ast.FloatLiteral:
		return types.F64Type
	case *ast.CharLiteral:
		return types.Int32Type
	case *ast.StringLiteral:
		return r.cache.GetStrType(n.Value.Len())
	case *ast.BoolLiteral:
		return types.BoolType
	case *ast.BinaryExpr:
		return r.resolveBinary(n)
	case *ast.UnaryExpr:
		return r.resolveUnary(n)
	case *ast.ListExpr:
		return r.resolveListExpr(n)
	case *ast.TupleExpr:
		return r.resolveTupleExpr(n)
	case *ast.CallExpr:
		return r.resolveCallExpr(n)
	case *ast.SelectorExpr:
		return r.resolveSelectorExpr(n)
	case *ast.IndexExpr:
		return r.resolveIndexExpr(n)
	case *ast.SliceExpr:
		return r.resolveSliceExpr(n)
	case *ast.IfExpr:
		return r.resolveIfExpr(n)
	case *ast.FunExpr:
		return r.resolveFunExpr(n)
	default:
		return &types.UnresolvedType{For: "expr"}
	}
}

// resolveIntLiteral implements spec.md §4.3's integer literal typing
// rule: the literal's Kind (decimal/binary/octal/hex) doesn't change the
// default type, only its presentation — the default type follows
// straight from its bit width and signedness.
func (r *Resolver) resolveIntLiteral(n *ast.IntLiteral) types.Type {
	if n.Signed {
		if types.FitsSigned(int64(n.Value), types.Int32) {
			return types.DefaultInt32LiteralType(uint32(n.Value))
		}
		return types.DefaultIntLiteralType(n.Value)
	}
	return types.DefaultIntLiteralType(n.Value)
}

func (r *Resolver) resolveIdentifier(id *ast.Identifier) types.Type {
	if id.IsBlank() {
		return &types.UnresolvedType{For: "_"}
	}
	if id.Ent == nil {
		// Genuinely undefined: the binder already reported "X undefined"
		// (spec.md §4.4); the resolver just needs a stand-in so callers
		// never see a nil type.
		return &types.UnresolvedType{For: "identifier " + id.Name.String()}
	}
	switch d := id.Ent.Decl.(type) {
	case *ast.VarDecl:
		return r.resolveVarDecl(d)
	case *ast.Identifier:
		// The name was promoted to a fresh declaration by a bare
		// `name = expr` assignment (spec.md §4.2 "Assignment"); its Ent.Decl
		// is the declaring Identifier node itself. ResolveBlock's walk of
		// that AssignStmt normally fixes its type via SetType first, but a
		// read can also reach here before that walk happens — a
		// forward reference within a function body settled only by the binder
		// (spec.md §8 scenario 3: `xs2=(1,late_str); ...; late_str="hello"`)
		// resolves the identifier before its declaring assignment is ever
		// walked in source order. Ent.Value (the declaring RHS, wired by
		// the parser at promotion time) lets this resolve the same way
		// foldConstInt does: on demand, independent of statement order.
		if t := d.GetType(); t != nil {
			return t
		}
		if id.Ent.Value != nil {
			t := r.Resolve(id.Ent.Value)
			d.SetType(t)
			return t
		}
		return &types.UnresolvedType{For: "identifier " + id.Name.String()}
	case paramDecl:
		return r.ResolveTypeExpr(d.Type())
	case *ast.FunExpr:
		return r.Resolve(d)
	case *ast.BuiltinTypeDecl:
		return d.Type
	case *ast.TypeDecl:
		return &types.UnresolvedType{For: "type name " + d.Name.String() + " used as value"}
	default:
		return &types.UnresolvedType{For: "identifier " + id.Name.String()}
	}
}

// paramDecl is the interface the parser's unexported param-decl adapter
// satisfies (internal/parser's paramDeclNode); the resolver only needs
// the parameter's declared TypeExpr back out of an Ent.Decl, so it
// depends on this minimal shape rather than importing the parser package
// (which would create an import cycle — parser already imports ast, and
// the resolver must not depend on parser).
type paramDecl interface {
	ast.Node
	Type() ast.TypeExpr
}

// resolveVarDecl is memoized separately from Resolve's Expression cache
// since a VarDecl is a Statement/Decl, not an Expression — without this,
// every read occurrence of the variable would redo the declared/init
// conversion check and could re-report the same diagnostic once per read.
func (r *Resolver) resolveVarDecl(d *ast.VarDecl) types.Type {
	if t, ok := r.varDecls[d]; ok {
		return t
	}
	t := r.resolveVarDeclOnce(d)
	r.varDecls[d] = t
	return t
}

func (r *Resolver) resolveVarDeclOnce(d *ast.VarDecl) types.Type {
	if d.Type != nil {
		declared := r.ResolveTypeExpr(d.Type)
		if d.Init != nil {
			r.ConvertLossless(declared, d.Init)
		}
		return declared
	}
	if d.Init != nil {
		return r.Resolve(d.Init)
	}
	return &types.UnresolvedType{For: "var " + d.Name.String()}
}

func (r *Resolver) resolveBinary(n *ast.BinaryExpr) types.Type {
	left := r.Resolve(n.Left)
	right := r.Resolve(n.Right)

	switch n.Op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ, token.LAND, token.LOR:
		return types.BoolType
	}

	if types.IsNumeric(left) && !types.IsNumeric(right) {
		if r.convNum(left, n.Right) {
			return left
		}
		return &types.UnresolvedType{For: "binary"}
	}
	if types.IsNumeric(right) && !types.IsNumeric(left) {
		if r.convNum(right, n.Left) {
			return right
		}
		return &types.UnresolvedType{For: "binary"}
	}
	if types.Equals(left, right) {
		return left
	}
	// Mixed numeric widths: widen the narrower literal operand to the
	// wider side, matching the list-literal widening policy below.
	if wide, ok := widerNumeric(left, right); ok {
		if lit, litOK := n.Left.(*ast.IntLiteral); litOK && !types.Equals(left, wide) {
			r.convNum(wide, lit)
			return wide
		}
		if lit, litOK := n.Right.(*ast.IntLiteral); litOK && !types.Equals(right, wide) {
			r.convNum(wide, lit)
			return wide
		}
		if lit, litOK := n.Left.(*ast.FloatLiteral); litOK && !types.Equals(left, wide) {
			r.convNum(wide, lit)
			return wide
		}
		if lit, litOK := n.Right.(*ast.FloatLiteral); litOK && !types.Equals(right, wide) {
			r.convNum(wide, lit)
			return wide
		}
	}
	r.errorf(diag.KindType, n.Pos(), "mismatched operand types %s and %s", left, right)
	return &types.UnresolvedType{For: "binary"}
}

func (r *Resolver) resolveUnary(n *ast.UnaryExpr) types.Type {
	t := r.Resolve(n.Expr)
	if n.Op == token.NOT {
		return types.BoolType
	}
	return t
}

// resolveListExpr implements spec.md §4.2's "Lists": the element type is
// the arithmetically widest member type, and every element is
// lossless-converted to it.
func (r *Resolver) resolveListExpr(n *ast.ListExpr) types.Type {
	if len(n.Elems) == 0 {
		r.errorf(diag.KindType, n.Pos(), "cannot infer element type of an empty list literal")
		return types.ListType{Elem: &types.UnresolvedType{For: "list element"}}
	}
	elemTypes := make([]types.Type, len(n.Elems))
	for i, e := range n.Elems {
		elemTypes[i] = r.Resolve(e)
	}
	widest := elemTypes[0]
	for _, t := range elemTypes[1:] {
		if w, ok := widerNumeric(widest, t); ok {
			widest = w
		} else if !types.Equals(widest, t) {
			widest = t
		}
	}
	for i, e := range n.Elems {
		if !types.Equals(elemTypes[i], widest) {
			r.convNum(widest, e)
		}
	}
	return types.ListType{Elem: widest}
}

func (r *Resolver) resolveTupleExpr(n *ast.TupleExpr) types.Type {
	elems := make([]types.Type, len(n.Elems))
	for i, e := range n.Elems {
		elems[i] = r.Resolve(e)
	}
	return r.cache.GetTupleType(elems)
}

func (r *Resolver) resolveIfExpr(n *ast.IfExpr) types.Type {
	r.Resolve(n.Cond)
	// n.Then/n.Else are Blocks, not Expressions in this AST (IfExpr used
	// as an expression supplies its value through its trailing
	// expression-statement the same way a function arrow body does); the
	// core type this node carries as an expression is therefore void
	// unless a future extension adds an explicit yield form. No scenario
	// in spec.md §8 exercises if-as-expression typing beyond control flow.
	return types.VoidType
}

func (r *Resolver) resolveFunExpr(fn *ast.FunExpr) types.Type {
	params := make([]types.Type, len(fn.Sig.Params))
	for i, p := range fn.Sig.Params {
		pt := r.ResolveTypeExpr(p.Type)
		if p.IsRest {
			if _, ok := pt.(types.RestType); !ok {
				pt = types.RestType{Elem: pt}
			}
		}
		params[i] = pt
	}
	return types.FunType{Params: params, Result: r.resolveFunResult(fn)}
}

// resolveFunResult implements spec.md §4.2 rules (a)/(b)/(c): a declared
// result type always wins; an arrow body's result is its sole recorded
// return type (or the arrow expression's own type if no `return` fired,
// or a UnionType over everything seen); a block body with no result
// written carries the parser's void marker when it holds no `return`
// (see finishSignature), and otherwise takes its result from the types
// of its `return`s the same way.
func (r *Resolver) resolveFunResult(fn *ast.FunExpr) types.Type {
	if fn.Sig.Result != nil {
		result := r.ResolveTypeExpr(fn.Sig.Result)
		for _, ret := range fn.Returns {
			if ret.Value == nil {
				continue
			}
			if !r.ConvertLossless(result, ret.Value) {
				r.errorf(diag.KindType, ret.Pos(), "return expression does not match declared result %s", result)
			}
			fn.AddInferredReturnType(r.Resolve(ret.Value))
		}
		return result
	}

	var seen []types.Type
	for _, ret := range fn.Returns {
		var t types.Type = types.VoidType
		if ret.Value != nil {
			t = r.Resolve(ret.Value)
		}
		fn.AddInferredReturnType(t)
		seen = appendUniqueType(seen, t)
	}
	if fn.ArrowBody != nil {
		t := r.Resolve(fn.ArrowBody)
		seen = appendUniqueType(seen, t)
	}
	switch len(seen) {
	case 0:
		return types.VoidType
	case 1:
		return seen[0]
	default:
		return types.UnionType{Members: seen}
	}
}

func appendUniqueType(seen []types.Type, t types.Type) []types.Type {
	for _, s := range seen {
		if types.Equals(s, t) {
			return seen
		}
	}
	return append(seen, t)
}

// widerNumeric reports the arithmetically wider of two numeric types, for
// the list-element and binary-operand widening policies. Non-numeric
// inputs never widen.
func widerNumeric(a, b types.Type) (types.Type, bool) {
	if !types.IsNumeric(a) || !types.IsNumeric(b) {
		return nil, false
	}
	if types.Equals(a, b) {
		return a, true
	}
	ra, aok := numericRank(a)
	rb, bok := numericRank(b)
	if !aok || !bok {
		return nil, false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}

// numericRank totally orders the primitive numeric kinds by width/family
// so the widest of two literal types can be picked deterministically.
// Type-class wildcards (IntClassType/NumClassType) are never compared
// this way in practice, so they rank lowest.
func numericRank(t types.Type) (int, bool) {
	p, ok := t.(types.PrimType)
	if !ok {
		return -1, false
	}
	switch p.Kind {
	case types.Int8, types.Uint8:
		return 1, true
	case types.Int16, types.Uint16:
		return 2, true
	case types.Int32, types.Uint32:
		return 3, true
	case types.Int, types.Uint, types.Int64, types.Uint64:
		return 4, true
	case types.F32:
		return 5, true
	case types.F64:
		return 6, true
	default:
		return -1, false
	}
}
