package ast

import (
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
)

// BinaryExpr is a binary operation (a + b, x < y, …).
type BinaryExpr struct {
	exprBase
	Op    token.Type
	Left  Expression
	Right Expression
}

func NewBinaryExpr(pos token.Pos, op token.Type, left, right Expression) *BinaryExpr {
	n := &BinaryExpr{Op: op, Left: left, Right: right}
	n.pos = pos
	return n
}
func (n *BinaryExpr) String() string { return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")" }

// UnaryExpr is a prefix operation (-x, not x).
type UnaryExpr struct {
	exprBase
	Op   token.Type
	Expr Expression
}

func NewUnaryExpr(pos token.Pos, op token.Type, expr Expression) *UnaryExpr {
	n := &UnaryExpr{Op: op, Expr: expr}
	n.pos = pos
	return n
}
func (n *UnaryExpr) String() string { return n.Op.String() + n.Expr.String() }

// ListExpr is a list literal `[e, e, …]`.
type ListExpr struct {
	exprBase
	Elems []Expression
}

func NewListExpr(pos token.Pos, elems []Expression) *ListExpr {
	n := &ListExpr{Elems: elems}
	n.pos = pos
	return n
}
func (n *ListExpr) String() string { return "[...]" }

// TupleExpr is `(a, b, …)` with two or more elements; a single
// parenthesized element is unwrapped by the parser before a TupleExpr is
// ever constructed (spec.md §4.2 "Tuples").
type TupleExpr struct {
	exprBase
	Elems []Expression
}

func NewTupleExpr(pos token.Pos, elems []Expression) *TupleExpr {
	n := &TupleExpr{Elems: elems}
	n.pos = pos
	return n
}
func (n *TupleExpr) String() string { return "(...)" }

// CallExpr is a function call, optionally with explicit generic type
// arguments (`Name<T,U>(args)`), which is how the parser represents the
// instantiation once the `<…>` vs comparison-chain ambiguity has been
// resolved by backtracking (spec.md §4.2).
type CallExpr struct {
	exprBase
	Fun      Expression
	TypeArgs []TypeExpr
	Args     []Expression
}

func NewCallExpr(pos token.Pos, fun Expression, typeArgs []TypeExpr, args []Expression) *CallExpr {
	n := &CallExpr{Fun: fun, TypeArgs: typeArgs, Args: args}
	n.pos = pos
	return n
}
func (n *CallExpr) String() string { return n.Fun.String() + "(...)" }

// SelectorExpr is `a.name`, used for both numeric tuple-index syntax
// (`a.0`) and named member access.
type SelectorExpr struct {
	exprBase
	X    Expression
	Name string // field/member name; empty when Index is used instead
	// Index is set (IsIndex true) when the selector is a tuple numeric
	// index written as `a.N`, distinguishing it from `a[i]` IndexExpr
	// at parse time even though both are eligible for the same
	// constant-folding path (spec.md §4.2 "Indexing & slicing").
	Index   int
	IsIndex bool
}

func NewSelectorExpr(pos token.Pos, x Expression, name string) *SelectorExpr {
	n := &SelectorExpr{X: x, Name: name}
	n.pos = pos
	return n
}
func NewTupleIndexSelector(pos token.Pos, x Expression, index int) *SelectorExpr {
	n := &SelectorExpr{X: x, Index: index, IsIndex: true}
	n.pos = pos
	return n
}
func (n *SelectorExpr) String() string {
	if n.IsIndex {
		return n.X.String() + ".<index>"
	}
	return n.X.String() + "." + n.Name
}

// IndexExpr is `a[expr]`.
type IndexExpr struct {
	exprBase
	X     Expression
	Index Expression
}

func NewIndexExpr(pos token.Pos, x, index Expression) *IndexExpr {
	n := &IndexExpr{X: x, Index: index}
	n.pos = pos
	return n
}
func (n *IndexExpr) String() string { return n.X.String() + "[...]" }

// SliceExpr is `a[lo:hi]`, `a[:hi]`, `a[lo:]`, or `a[:]`; Lo/Hi are nil
// when omitted.
type SliceExpr struct {
	exprBase
	X      Expression
	Lo, Hi Expression
}

func NewSliceExpr(pos token.Pos, x, lo, hi Expression) *SliceExpr {
	n := &SliceExpr{X: x, Lo: lo, Hi: hi}
	n.pos = pos
	return n
}
func (n *SliceExpr) String() string { return n.X.String() + "[:]" }

// IfExpr is `if cond { then } else { else }`, usable as an expression or
// (with Else nil) as a statement.
type IfExpr struct {
	exprBase
	Cond Expression
	Then *Block
	Else Node // *Block, *IfExpr (else-if chain), or nil
}

func NewIfExpr(pos token.Pos, cond Expression, then *Block, els Node) *IfExpr {
	n := &IfExpr{Cond: cond, Then: then, Else: els}
	n.pos = pos
	return n
}
func (n *IfExpr) String() string { return "if " + n.Cond.String() + " {...}" }

// Param is one parameter in a function signature.
type Param struct {
	Name    *token.ByteStr // nil in the all-typed, unnamed parameter mode
	Type    TypeExpr
	IsRest  bool // trailing `…T` parameter
	Pos     token.Pos
	Ent     *Ent
}

// Signature is a function's parameter list and result type. Result is
// nil ("auto") until inference completes (spec.md §4.2 "Signature &
// inferred result").
type Signature struct {
	Params []*Param
	Result TypeExpr
}

// FunExpr is a function literal/declaration. Name is nil for an
// anonymous function expression; at the top level a name is mandatory
// (enforced by the parser, not this type).
type FunExpr struct {
	exprBase
	Name      *token.ByteStr
	Sig       *Signature
	Body      *Block     // nil when ArrowBody is set
	ArrowBody Expression // `-> expr` form
	Scope     *Scope     // the parameter/body scope
	IsInit    bool

	// Returns collects every return statement found directly in this
	// function's body (not in a nested FunExpr's body) in parse order.
	// The parser populates this as it parses the body; the type
	// resolver walks it to compute each return's expression type and
	// build the inferred-result-type set spec.md §4.2 describes as
	// "addInferredReturnType" — resolution of those types happens
	// lazily, so the parser records the statements themselves rather
	// than types it cannot yet compute.
	Returns  []*ReturnStmt
	inferred []types.Type
}

func NewFunExpr(pos token.Pos, name *token.ByteStr, sig *Signature, scope *Scope) *FunExpr {
	n := &FunExpr{Name: name, Sig: sig, Scope: scope}
	n.pos = pos
	return n
}
func (n *FunExpr) String() string {
	if n.Name != nil {
		return "fun " + n.Name.String()
	}
	return "fun"
}

// AddReturn records one `return` statement parsed directly in this
// function's body.
func (n *FunExpr) AddReturn(r *ReturnStmt) { n.Returns = append(n.Returns, r) }

// AddInferredReturnType records one resolved return-expression type,
// implementing spec.md §4.2's addInferredReturnType. Called by the type
// resolver once it has computed the type of each entry in Returns.
func (n *FunExpr) AddInferredReturnType(t types.Type) {
	n.inferred = append(n.inferred, t)
}

// InferredReturnTypes returns every type recorded via
// AddInferredReturnType, in the order they were added.
func (n *FunExpr) InferredReturnTypes() []types.Type { return n.inferred }
