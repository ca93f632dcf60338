// Package binder implements the post-parse linking pass (spec.md §4.4):
// resolving import declarations against an Importer, binding their
// names into the importing file's scope, and then settling every
// identifier the parser deferred to a file's Unresolved set — the
// forward references a single parse pass cannot see, since a use
// occurrence may precede its declaration, or name something declared in
// another file of the same package, or an imported package.
//
// The import phase is the one place this compiler does real concurrent
// work, grounded on golang.org/x/tools/go/ssa's Program.Build: a bounded
// counting semaphore sized to runtime.GOMAXPROCS(0), joined by a
// sync.WaitGroup. Name resolution that follows is sequential — it
// mutates shared scopes and gains nothing from parallelism once the
// (possibly slow) import fetches are done.
package binder

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cwbudde/langcore/internal/ast"
	"github.com/cwbudde/langcore/internal/diag"
	"github.com/cwbudde/langcore/internal/token"
)

// Importer resolves an import path to the package it names. Embedders
// supply their own (a filesystem loader, an in-memory test double, a
// cache over an already-bound workspace); the binder never constructs
// packages itself.
type Importer interface {
	Import(path string) (*ast.Pkg, error)
}

type unit struct{}

// cpuLimit bounds how many imports are fetched/bound concurrently,
// mirroring the teacher corpus's ssa.Program.Build cpuLimit channel.
var cpuLimit = make(chan unit, runtime.GOMAXPROCS(0))

// importJob pairs one ImportDecl with the file it belongs to, so the
// worker pool can report success back against the right file without
// sharing any other per-file state.
type importJob struct {
	decl *ast.ImportDecl
	file *ast.File
}

// Bind resolves every import declaration across pkg's files, then every
// remaining unresolved identifier, exactly as spec.md §4.4 describes.
// It returns whether the bind fully succeeded; on failure the AST is
// still safe to inspect — a file whose imports failed simply skips name
// resolution for that file (imports are reported as missing and nothing
// downstream would resolve correctly anyway), while every other file in
// the package still gets identifier resolution.
func Bind(fset *token.FileSet, in *token.Interner, pkg *ast.Pkg, importer Importer, handler diag.ErrorHandler) bool {
	var jobs []importJob
	for _, f := range pkg.Files {
		for _, d := range f.Imports {
			jobs = append(jobs, importJob{decl: d, file: f})
		}
	}

	results := make([]bool, len(jobs))
	var wg sync.WaitGroup
	var mu sync.Mutex // guards Scope.Declare, which is not safe for concurrent writers

	for i, j := range jobs {
		wg.Add(1)
		cpuLimit <- unit{} // acquire a token
		go func(i int, j importJob) {
			defer wg.Done()
			defer func() { <-cpuLimit }() // release a token
			results[i] = bindImport(fset, in, j, importer, handler, &mu)
		}(i, j)
	}
	wg.Wait()

	failed := make(map[*ast.File]bool)
	for i, j := range jobs {
		if !results[i] {
			failed[j.file] = true
		}
	}

	ok := true
	for _, f := range pkg.Files {
		if failed[f] {
			ok = false
			continue
		}
		if !bindIdentifiers(fset, f, handler) {
			ok = false
		}
	}
	return ok
}

// bindImport fetches one import and binds it into its file's scope
// under the rule its declaration form selects (spec.md §4.4 point 1).
func bindImport(fset *token.FileSet, in *token.Interner, j importJob, importer Importer, handler diag.ErrorHandler, mu *sync.Mutex) bool {
	d := j.decl
	if importer == nil {
		errorf(fset, handler, diag.KindImport, d.Pos(), "cannot import %q: no Importer configured", d.Path.String())
		return false
	}

	imported, err := importer.Import(d.Path.String())
	if err != nil {
		errorf(fset, handler, diag.KindImport, d.Pos(), "cannot import %q: %v", d.Path.String(), err)
		return false
	}

	if d.Blank {
		return true
	}

	mu.Lock()
	defer mu.Unlock()

	if d.Dot {
		// Merge every name in the imported package's scope directly into the file scope
		// (spec.md §4.4 point 1 "under \".\" — reserved; specified but
		// currently a no-op, see §9"; implemented here, see DESIGN.md).
		for _, e := range imported.Scope.Entries() {
			j.file.Scope.Declare(e.Name, e.Decl)
		}
		return true
	}

	if d.Alias != nil {
		// parseImportDecl already declared d under d.Alias; nothing left
		// to settle.
		return true
	}

	// parseImportDecl declared d under its literal path string as a
	// placeholder, since the real package name isn't known until the
	// import is fetched; rebind it onto that name now.
	j.file.Scope.Rebind(d.Path, in.Intern([]byte(imported.Name)))
	return true
}

// bindIdentifiers resolves every identifier f.Unresolved collected
// during parsing (spec.md §4.4 point 2): each now gets a second lookup
// against f.Scope, which — after bindImport above has run — also holds
// every name this file imports.
func bindIdentifiers(fset *token.FileSet, f *ast.File, handler diag.ErrorHandler) bool {
	ok := true
	for _, id := range f.Unresolved {
		if id.Ent != nil {
			continue
		}
		e, found := id.Scope.Lookup(id.Name)
		if !found {
			errorf(fset, handler, diag.KindReference, id.Pos(), "%s undefined", id.Name.String())
			ok = false
			continue
		}
		id.Ent = e
		e.MarkRead()
	}
	return ok
}

func errorf(fset *token.FileSet, handler diag.ErrorHandler, kind diag.Kind, pos token.Pos, format string, args ...any) {
	handler.HandleError(fset.Position(pos), diag.Error, fmt.Sprintf(format, args...), kind.Code())
}
