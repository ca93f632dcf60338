package resolver

import (
	"fmt"
	"testing"

	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/binder"
	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/parser"
	"github.com/cwbudde/langcore/internal/scanner"
	"github.com/cwbudde/langcore/internal/token"
	"github.com/cwbudde/langcore/internal/types"
	"github.com/gkampitakis/go-snaps/snaps"
)

// These six tests pin the end-to-end scenarios down to literal source
// text, snapshotting the resolved type of each variable of interest so a
// regression in any pass along the way shows up as a snapshot diff
// rather than a silent type change, grounded on the teacher's own
// go-snaps fixture harness (internal/interp/fixture_test.go).

func TestScenarioTupleLiteralIndexing(t *testing.T) {
	u := parseUnit(t, `
fun f() {
	xs = (1, 2.3, true, "3")
	b0 = xs.0
	b1 = xs.1
	b2 = xs.2
	b3 = xs.3
}
`)
	fn := u.fun("f")
	u.res.ResolveBlock(fn.Body)

	got := typesOf(fn.Body, "xs", "b0", "b1", "b2", "b3")
	snaps.MatchSnapshot(t, "tuple_literal_indexing", got)
}

func TestScenarioTupleLiteralIndexOutOfBounds(t *testing.T) {
	u := parseUnit(t, `
fun f() {
	xs = (1, 2.3, true, "3")
	b4 = xs.4
}
`)
	fn := u.fun("f")
	u.res.ResolveBlock(fn.Body)

	snaps.MatchSnapshot(t, "tuple_out_of_bounds_diagnostics", u.errorStrings())
}

func TestScenarioConstFoldedTupleIndex(t *testing.T) {
	u := parseUnit(t, `
fun f() {
	xs = (1, 2.3, 4.5)
	z i64 = 1
	y = z
	a2 = xs[y + 1]
}
`)
	fn := u.fun("f")
	u.res.ResolveBlock(fn.Body)

	got := typesOf(fn.Body, "xs", "z", "y", "a2")
	snaps.MatchSnapshot(t, "const_folded_tuple_index", got)
}

func TestScenarioLateBoundTupleType(t *testing.T) {
	in, fset, col, f := parseSingleFile(t, `
fun f() {
	xs2 = (1, late_str)
	v = xs2.1
	late_str = "hello"
}
`)
	pkg := &ast.Pkg{Name: "main", Scope: f.Scope.Outer, Files: []*ast.File{f}}
	if !binder.Bind(fset, in, pkg, nil, col) {
		t.Fatalf("bind failed: %v", col.Diagnostics)
	}

	res := New(fset, types.NewCache(), col)
	fn := findTopLevelFun(f, "f")
	res.ResolveBlock(fn.Body)

	got := typesOf(fn.Body, "xs2", "v")
	snaps.MatchSnapshot(t, "late_bound_tuple_type", got)
}

func TestScenarioForwardTemplate(t *testing.T) {
	in, fset, col, f := parseSingleFile(t, `
fun foo() {
	_ = T1<int, f32>(1, 2.0)
}
type T1<A, B> = { a A; b B }
`)
	pkg := &ast.Pkg{Name: "main", Scope: f.Scope.Outer, Files: []*ast.File{f}}
	if !binder.Bind(fset, in, pkg, nil, col) {
		t.Fatalf("bind failed: %v", col.Diagnostics)
	}

	res := New(fset, types.NewCache(), col)
	res.ResolvePkg(pkg)

	fn := findTopLevelFun(f, "foo")
	call := findCall(fn.Body)
	if call == nil {
		t.Fatal("no call expression found in foo's body")
	}

	got := []string{
		"call: " + call.GetType().String(),
		"arg0: " + call.Args[0].GetType().String(),
		"arg1: " + call.Args[1].GetType().String(),
	}
	snaps.MatchSnapshot(t, "forward_template_instantiation", got)
}

func TestScenarioImplicitReturnRewriting(t *testing.T) {
	u := parseUnit(t, `
fun f() i32 {
	3
}
fun g() {
}
`)
	f1 := u.fun("f")
	f2 := u.fun("g")
	fFun := u.res.Resolve(f1).(types.FunType)
	gFun := u.res.Resolve(f2).(types.FunType)

	got := []string{
		"f result: " + fFun.Result.String(),
		"f: " + describeReturns(f1),
		"g result: " + gFun.Result.String(),
	}
	snaps.MatchSnapshot(t, "implicit_return_rewriting", got)
}

func TestScenarioUnusedVariable(t *testing.T) {
	u := parseUnit(t, `
fun h() {
	x = 1
}
`)
	fn := u.fun("h")
	u.res.ResolveBlock(fn.Body)

	id := assignTarget(fn.Body, "x")
	if id == nil || id.Ent == nil {
		t.Fatal("expected x to be declared")
	}
	if !id.Ent.IsUnused() {
		t.Fatal("expected x to be recorded as unused")
	}

	// popScope warns about x the moment its enclosing block scope is
	// popped, during parsing — before the resolver ever runs.
	var found *diag.Diagnostic
	for i := range u.col.Diagnostics {
		if u.col.Diagnostics[i].Code == diag.CodeUnusedVar {
			found = &u.col.Diagnostics[i]
		}
	}
	if found == nil {
		t.Fatalf("diagnostics = %v, want an %s diagnostic", u.col.Diagnostics, diag.CodeUnusedVar)
	}
	if found.Severity != diag.Warn {
		t.Errorf("severity = %v, want Warn", found.Severity)
	}

	snaps.MatchSnapshot(t, "unused_variable_flag", []string{
		string(found.Code),
		found.Severity.String(),
		found.Message,
	})
}

// --- helpers ---

func typesOf(body *ast.Block, names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		id := assignTarget(body, n)
		if id == nil || id.GetType() == nil {
			out[i] = n + ": <unresolved>"
			continue
		}
		out[i] = n + ": " + id.GetType().String()
	}
	return out
}

func parseSingleFile(t *testing.T, src string) (*token.Interner, *token.FileSet, *diag.Collector, *ast.File) {
	t.Helper()
	in := token.NewInterner()
	fset := token.NewFileSet()
	universe := NewUniverseScope(in)
	pkgScope := ast.NewScope(universe, ast.ScopePackage, nil)

	col := diag.NewCollector()
	cur := scanner.New(fset, in, "test.lc", src)
	p := parser.New(in, fset, cur, universe, pkgScope, col)
	f := p.ParseFile("test.lc")
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return in, fset, col, f
}

func findTopLevelFun(f *ast.File, name string) *ast.FunExpr {
	for _, d := range f.Decls {
		if fn, ok := d.(*ast.FunExpr); ok && fn.Name != nil && fn.Name.String() == name {
			return fn
		}
	}
	return nil
}

func findCall(body *ast.Block) *ast.CallExpr {
	for _, s := range body.Stmts {
		a, ok := s.(*ast.AssignStmt)
		if !ok {
			continue
		}
		if call, ok := a.Rhs.(*ast.CallExpr); ok {
			return call
		}
	}
	return nil
}

func describeReturns(fn *ast.FunExpr) string {
	if len(fn.Returns) == 0 {
		return "no returns"
	}
	out := ""
	for i, r := range fn.Returns {
		if i > 0 {
			out += ", "
		}
		if r.Value == nil {
			out += "return (void)"
			continue
		}
		out += fmt.Sprintf("return %s", r.Value.GetType())
	}
	return out
}
