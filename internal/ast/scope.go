package ast

import "github.com/cwbudde/langcore/internal/token"

// Scope is a node in the lexical scope tree (spec.md §3). Every scope has
// at most one outer parent; the universe scope is the only scope with a
// nil Outer. A Scope optionally owns a Context — the AST node whose body
// this scope represents (a function, struct, file, or block) — used for
// diagnostics like "unused parameter" vs "unused field".
type Scope struct {
	Outer   *Scope
	Context Node // nil for blocks with no distinguished owner
	Kind    ScopeKind
	names   map[*token.ByteStr]*Ent
	order   []*Ent // declaration order, for deterministic unused-name diagnostics
}

// ScopeKind distinguishes the handful of scope roles spec.md §3 calls
// out by name, so the parser can apply the right store/declare and
// unused-diagnostic rules without type-asserting Context.
type ScopeKind int

const (
	ScopeBlock ScopeKind = iota
	ScopeFile
	ScopePackage
	ScopeFunction
	ScopeParams
	ScopeStruct
	ScopeUniverse
)

// NewScope creates a scope nested inside outer.
func NewScope(outer *Scope, kind ScopeKind, ctx Node) *Scope {
	return &Scope{Outer: outer, Kind: kind, Context: ctx, names: make(map[*token.ByteStr]*Ent)}
}

// Declare creates and owns a new Ent for name in this scope. It does not
// check for redeclaration — callers (the parser) do that, since the
// wildcard "_" identifier is never declared (spec.md §4.2) and must
// never reach here.
func (s *Scope) Declare(name *token.ByteStr, decl Node) *Ent {
	e := &Ent{Name: name, Decl: decl, Scope: s}
	s.names[name] = e
	s.order = append(s.order, e)
	return e
}

// Local looks up name in this scope only, without walking Outer.
func (s *Scope) Local(name *token.ByteStr) (*Ent, bool) {
	e, ok := s.names[name]
	return e, ok
}

// Lookup walks from s outward through Outer links until name resolves or
// the universe scope is exhausted (spec.md §3: "a name resolves by
// walking outer links from the use site's scope").
func (s *Scope) Lookup(name *token.ByteStr) (*Ent, bool) {
	for sc := s; sc != nil; sc = sc.Outer {
		if e, ok := sc.names[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// Entries returns every Ent declared directly in this scope, in
// declaration order.
func (s *Scope) Entries() []*Ent { return s.order }

// Rebind moves the Ent keyed under oldName onto newName, preserving its
// identity (every existing pointer to it, e.g. an Identifier.Ent or an
// ImportDecl.Ent, stays valid) and updating its recorded Name. The
// parser declares an import under its literal path string as a
// placeholder (see ImportDecl); the binder calls Rebind once it knows
// the imported package's real name (spec.md §4.4). A no-op if oldName
// isn't bound here.
func (s *Scope) Rebind(oldName, newName *token.ByteStr) {
	e, ok := s.names[oldName]
	if !ok {
		return
	}
	delete(s.names, oldName)
	e.Name = newName
	s.names[newName] = e
}

// InFunction reports whether s or an ancestor is a function-body scope,
// and returns that scope. Used by the parser's assignment "store" rule
// (spec.md §4.2).
func (s *Scope) InFunction() (*Scope, bool) {
	for sc := s; sc != nil; sc = sc.Outer {
		if sc.Kind == ScopeFunction {
			return sc, true
		}
	}
	return nil, false
}

// Ent is a resolved binding: the record a Scope holds for a declared
// name (spec.md §3). The scope owns the Ent; identifiers weakly point
// back to it once resolved.
type Ent struct {
	Name    *token.ByteStr
	Decl    Node // the declaring node: var/type/import decl, parameter field, or function
	Scope   *Scope
	Value   Expression // optional: the bound value expression, when known (e.g. a const initializer)
	nreads  int
	nwrites int
}

// MarkRead records an observed read of this Ent.
func (e *Ent) MarkRead() { e.nreads++ }

// MarkWrite records an observed write of this Ent.
func (e *Ent) MarkWrite() { e.nwrites++ }

// Reads reports how many reads have been observed.
func (e *Ent) Reads() int { return e.nreads }

// Writes reports how many writes have been observed.
func (e *Ent) Writes() int { return e.nwrites }

// IsUnused reports whether this Ent was declared but never read — the
// condition the parser warns about with E_UNUSED_VAR/E_UNUSED_PARAM on
// scope pop (spec.md §4.2).
func (e *Ent) IsUnused() bool { return e.nreads == 0 }
