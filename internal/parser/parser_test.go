package parser

import (
	"testing"

	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/scanner"
	"github.com/cwbudde/langcore/internal/token"
)

// testParser builds a Parser over src, mirroring the teacher's
// single-file table-driven harness (parser_test.go's testParser +
// checkParserErrors) adapted to this language's scanner/parser split
// and package-scope-shared-across-files model.
func testParser(t *testing.T, src string) (*Parser, *ast.File) {
	t.Helper()
	in := token.NewInterner()
	fset := token.NewFileSet()
	universe := ast.NewScope(nil, ast.ScopeUniverse, nil)
	pkgScope := ast.NewScope(universe, ast.ScopePackage, nil)

	sc := scanner.New(fset, in, "test.lc", src)
	p := New(in, fset, sc, universe, pkgScope, diag.NewCollector())
	f := p.ParseFile("test.lc")
	return p, f
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errs := p.Errors()
	if len(errs) == 0 {
		return
	}
	for _, e := range errs {
		t.Errorf("parser error: %s", e.Message)
	}
	t.FailNow()
}

// firstFun returns the first top-level *ast.FunExpr in f, failing the
// test if none is found.
func firstFun(t *testing.T, f *ast.File) *ast.FunExpr {
	t.Helper()
	for _, d := range f.Decls {
		if fn, ok := d.(*ast.FunExpr); ok {
			return fn
		}
	}
	t.Fatal("no top-level function found")
	return nil
}

func firstExprStmt(t *testing.T, body *ast.Block) ast.Expression {
	t.Helper()
	for _, s := range body.Stmts {
		if es, ok := s.(*ast.ExprStmt); ok {
			return es.X
		}
	}
	t.Fatal("no expression statement found in body")
	return nil
}

func TestIntLiterals(t *testing.T) {
	tests := []struct {
		input string
		value uint64
	}{
		{"5", 5},
		{"10", 10},
		{"0", 0},
		{"999", 999},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, f := testParser(t, "fun f() {\n"+tt.input+"\n}")
			fn := firstFun(t, f)
			expr := firstExprStmt(t, fn.Body)

			lit, ok := expr.(*ast.IntLiteral)
			if !ok {
				t.Fatalf("expression is not *ast.IntLiteral, got %T", expr)
			}
			if lit.Value != tt.value {
				t.Errorf("lit.Value = %d, want %d", lit.Value, tt.value)
			}
		})
	}
}

func TestFloatLiteral(t *testing.T) {
	_, f := testParser(t, "fun f() {\n3.5\n}")
	fn := firstFun(t, f)
	expr := firstExprStmt(t, fn.Body)

	lit, ok := expr.(*ast.FloatLiteral)
	if !ok {
		t.Fatalf("expression is not *ast.FloatLiteral, got %T", expr)
	}
	if lit.Value != 3.5 {
		t.Errorf("lit.Value = %v, want 3.5", lit.Value)
	}
}

func TestBinaryExprPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3), multiplicative binding
	// tighter than additive.
	_, f := testParser(t, "fun f() {\n1 + 2 * 3\n}")
	fn := firstFun(t, f)
	expr := firstExprStmt(t, fn.Body)

	add, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("top expression is not *ast.BinaryExpr, got %T", expr)
	}
	if add.Op != token.ADD {
		t.Fatalf("top operator = %v, want ADD", add.Op)
	}

	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("right operand is not *ast.BinaryExpr, got %T", add.Right)
	}
	if mul.Op != token.MUL {
		t.Fatalf("nested operator = %v, want MUL", mul.Op)
	}
}

func TestTupleLiteral(t *testing.T) {
	_, f := testParser(t, "fun f() {\n(1, 2.3, true)\n}")
	fn := firstFun(t, f)
	expr := firstExprStmt(t, fn.Body)

	tup, ok := expr.(*ast.TupleExpr)
	if !ok {
		t.Fatalf("expression is not *ast.TupleExpr, got %T", expr)
	}
	if len(tup.Elems) != 3 {
		t.Fatalf("tuple has %d elements, want 3", len(tup.Elems))
	}
}

func TestTupleIndexSelector(t *testing.T) {
	_, f := testParser(t, "fun f() {\nxs.1\n}")
	fn := firstFun(t, f)
	expr := firstExprStmt(t, fn.Body)

	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		t.Fatalf("expression is not *ast.SelectorExpr, got %T", expr)
	}
	if !sel.IsIndex {
		t.Fatal("selector following a bare integer must be recorded as a tuple index")
	}
	if sel.Index != 1 {
		t.Fatalf("tuple index = %d, want 1", sel.Index)
	}
}

func TestCallExprWithArgs(t *testing.T) {
	_, f := testParser(t, "fun f() {\ng(1, 2)\n}")
	fn := firstFun(t, f)
	expr := firstExprStmt(t, fn.Body)

	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expression is not *ast.CallExpr, got %T", expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("call has %d args, want 2", len(call.Args))
	}
}

func TestGenericCallWithTypeArgs(t *testing.T) {
	_, f := testParser(t, "fun f() {\nT1<int, f32>(1, 2.0)\n}")
	fn := firstFun(t, f)
	expr := firstExprStmt(t, fn.Body)

	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expression is not *ast.CallExpr, got %T", expr)
	}
	if len(call.TypeArgs) != 2 {
		t.Fatalf("call has %d type args, want 2", len(call.TypeArgs))
	}
	if len(call.Args) != 2 {
		t.Fatalf("call has %d args, want 2", len(call.Args))
	}
}

func TestIfExprBranches(t *testing.T) {
	_, f := testParser(t, "fun f() {\nif true { 1 } else { 2 }\n}")
	fn := firstFun(t, f)
	if len(fn.Body.Stmts) == 0 {
		t.Fatal("no statement found in body")
	}

	// An `if` in statement position is the *ast.IfExpr node itself, not
	// wrapped in an ExprStmt.
	ie, ok := fn.Body.Stmts[0].(*ast.IfExpr)
	if !ok {
		t.Fatalf("statement is not *ast.IfExpr, got %T", fn.Body.Stmts[0])
	}
	if ie.Then == nil {
		t.Fatal("if expression must have a then-branch")
	}
	if ie.Else == nil {
		t.Fatal("if expression must have an else-branch")
	}
}

func TestFunDeclSignature(t *testing.T) {
	_, f := testParser(t, "fun add(a i32, b i32) i32 {\nreturn a + b\n}")
	fn := firstFun(t, f)

	if fn.Name == nil || fn.Name.String() != "add" {
		t.Fatalf("function name = %v, want add", fn.Name)
	}
	if len(fn.Sig.Params) != 2 {
		t.Fatalf("signature has %d params, want 2", len(fn.Sig.Params))
	}
	if len(fn.Returns) != 1 {
		t.Fatalf("function has %d recorded returns, want 1", len(fn.Returns))
	}
}

func TestTypeDeclGeneric(t *testing.T) {
	_, f := testParser(t, "type Pair<A, B> = { a A; b B }")
	found := false
	for _, d := range f.Decls {
		if td, ok := d.(*ast.TypeDecl); ok && td.Name.String() == "Pair" {
			found = true
			if len(td.Vars) != 2 {
				t.Fatalf("type has %d type params, want 2", len(td.Vars))
			}
		}
	}
	if !found {
		t.Fatal("Pair type declaration not found")
	}
}

func TestVarDeclWithExplicitType(t *testing.T) {
	_, f := testParser(t, "fun f() {\nz i64 = 1\n}")
	fn := firstFun(t, f)

	found := false
	for _, s := range fn.Body.Stmts {
		if vd, ok := s.(*ast.VarDecl); ok && vd.Name.String() == "z" {
			found = true
			if vd.Type == nil {
				t.Fatal("explicit var type must be recorded")
			}
		}
	}
	if !found {
		t.Fatal("var decl for z not found")
	}
}

func TestWhileAndBreakContinue(t *testing.T) {
	p, f := testParser(t, "fun f() {\nwhile true {\nbreak\ncontinue\n}\n}")
	checkParserErrors(t, p)
	fn := firstFun(t, f)

	var ws *ast.WhileStmt
	for _, s := range fn.Body.Stmts {
		if w, ok := s.(*ast.WhileStmt); ok {
			ws = w
		}
	}
	if ws == nil {
		t.Fatal("while statement not found")
	}
	if len(ws.Body.Stmts) != 2 {
		t.Fatalf("while body has %d statements, want 2", len(ws.Body.Stmts))
	}
	if _, ok := ws.Body.Stmts[0].(*ast.BreakStmt); !ok {
		t.Fatalf("first statement is not *ast.BreakStmt, got %T", ws.Body.Stmts[0])
	}
	if _, ok := ws.Body.Stmts[1].(*ast.ContinueStmt); !ok {
		t.Fatalf("second statement is not *ast.ContinueStmt, got %T", ws.Body.Stmts[1])
	}
}
