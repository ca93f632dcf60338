package ast

import "github.com/cwbudde/langcore/internal/token"

// stmtBase factors the position bookkeeping shared by statement nodes
// that are not also expressions.
type stmtBase struct {
	pos token.Pos
}

func (b *stmtBase) Pos() token.Pos { return b.pos }
func (b *stmtBase) stmtNode()      {}

// Block is a braced sequence of statements and the scope it introduces.
type Block struct {
	stmtBase
	Stmts []Statement
	Scope *Scope
}

func NewBlock(pos token.Pos, scope *Scope) *Block {
	return &Block{stmtBase: stmtBase{pos: pos}, Scope: scope}
}
func (b *Block) String() string { return "{...}" }

// ExprStmt wraps an expression evaluated for its side effects (a bare
// call, mainly).
type ExprStmt struct {
	stmtBase
	X Expression
}

func NewExprStmt(x Expression) *ExprStmt {
	return &ExprStmt{stmtBase: stmtBase{pos: x.Pos()}, X: x}
}
func (s *ExprStmt) String() string { return s.X.String() }

// AssignStmt is `lhs = rhs` or a compound form (`lhs += rhs`, …). A
// compound form is not desugared: Op keeps the assignment operator as
// written (so diagnostics can still say "+="), and the implied binary op
// is found via token.BinaryOpForAssign (spec.md §4.2 "Assignment").
// `x++` and `x--` are the exception: the parser stores them with Op ADD
// or SUB and an integer literal 1 as Rhs.
type AssignStmt struct {
	stmtBase
	Lhs Expression
	Op  token.Type // ASSIGN for plain `=`, otherwise one of the compound ops
	Rhs Expression
}

func NewAssignStmt(pos token.Pos, lhs Expression, op token.Type, rhs Expression) *AssignStmt {
	return &AssignStmt{stmtBase: stmtBase{pos: pos}, Lhs: lhs, Op: op, Rhs: rhs}
}
func (s *AssignStmt) String() string { return s.Lhs.String() + " " + s.Op.String() + " " + s.Rhs.String() }

// VarDecl is one `name [type] [= init]` binding. A single declaration
// statement may introduce several VarDecls at once (a "multi-declaration
// group", spec.md §3, `a, b, c Int = 1, 2, 3`); the parser returns those
// wrapped in one VarDeclGroup.
type VarDecl struct {
	stmtBase
	Name *token.ByteStr
	Type TypeExpr // nil when the type is to be inferred from Init
	Init Expression
	Ent  *Ent
}

func NewVarDecl(pos token.Pos, name *token.ByteStr, typ TypeExpr, init Expression) *VarDecl {
	return &VarDecl{stmtBase: stmtBase{pos: pos}, Name: name, Type: typ, Init: init}
}
func (d *VarDecl) declNode()      {}
func (d *VarDecl) String() string { return "var " + d.Name.String() }

// ReturnStmt is `return [expr]`; Value is nil for a bare return, which
// types as void.
type ReturnStmt struct {
	stmtBase
	Value Expression
}

func NewReturnStmt(pos token.Pos, value Expression) *ReturnStmt {
	return &ReturnStmt{stmtBase: stmtBase{pos: pos}, Value: value}
}
func (s *ReturnStmt) String() string { return "return" }

// BreakStmt is `break`.
type BreakStmt struct{ stmtBase }

func NewBreakStmt(pos token.Pos) *BreakStmt { return &BreakStmt{stmtBase{pos: pos}} }
func (s *BreakStmt) String() string         { return "break" }

// ContinueStmt is `continue`.
type ContinueStmt struct{ stmtBase }

func NewContinueStmt(pos token.Pos) *ContinueStmt { return &ContinueStmt{stmtBase{pos: pos}} }
func (s *ContinueStmt) String() string            { return "continue" }

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	stmtBase
	Cond Expression
	Body *Block
}

func NewWhileStmt(pos token.Pos, cond Expression, body *Block) *WhileStmt {
	return &WhileStmt{stmtBase: stmtBase{pos: pos}, Cond: cond, Body: body}
}
func (s *WhileStmt) String() string { return "while " + s.Cond.String() + " {...}" }

// ForStmt is `for init; cond; post { body }`; each clause is optional
// and nil when omitted.
type ForStmt struct {
	stmtBase
	Init Statement
	Cond Expression
	Post Statement
	Body *Block
	Scope *Scope // owns Init's binding, if any
}

func NewForStmt(pos token.Pos, init Statement, cond Expression, post Statement, body *Block, scope *Scope) *ForStmt {
	return &ForStmt{stmtBase: stmtBase{pos: pos}, Init: init, Cond: cond, Post: post, Body: body, Scope: scope}
}
func (s *ForStmt) String() string { return "for {...}" }

// IfStmt adapts IfExpr for statement position: when an if-expression's
// value is discarded, the parser still builds an *IfExpr, and IfExpr
// already satisfies Statement via its exprBase/stmtNode combination
// below — see ast.go's exprBase. No separate IfStmt type is needed.
func (n *IfExpr) stmtNode() {}

var (
	_ Statement = (*Block)(nil)
	_ Statement = (*ExprStmt)(nil)
	_ Statement = (*AssignStmt)(nil)
	_ Decl      = (*VarDecl)(nil)
	_ Statement = (*ReturnStmt)(nil)
	_ Statement = (*BreakStmt)(nil)
	_ Statement = (*ContinueStmt)(nil)
	_ Statement = (*WhileStmt)(nil)
	_ Statement = (*ForStmt)(nil)
	_ Statement = (*IfExpr)(nil)
)
