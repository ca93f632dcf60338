package token

import (
	"sync"

	"golang.org/x/text/unicode/norm"
)

// ByteStr is an interned, immutable byte sequence. Two ByteStr values
// produced by the same Interner for equal (after NFC normalization)
// content are the same pointer, so identity comparison (==) is valid
// equality and ByteStr is safe to use as a map key by pointer.
type ByteStr struct {
	s string
}

// Bytes returns the normalized contents.
func (b *ByteStr) Bytes() []byte { return []byte(b.s) }

// String returns the normalized contents as a string.
func (b *ByteStr) String() string { return b.s }

// Len returns the length in bytes.
func (b *ByteStr) Len() int { return len(b.s) }

// Interner canonicalizes byte strings (identifiers and string literal
// bodies) to a single *ByteStr per distinct normalized value. It is
// process-wide in the sense that the embedder typically keeps one
// instance per compilation, per spec.md's "process-wide caches ...
// provide explicit construction" guidance: construction is explicit
// (NewInterner), not a package-level global.
type Interner struct {
	mu    sync.RWMutex
	table map[string]*ByteStr
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]*ByteStr, 256)}
}

// Intern canonicalizes b (first normalizing it to NFC, so identifiers
// that differ only in combining-character decomposition compare equal)
// and returns the shared *ByteStr for its normalized content.
func (in *Interner) Intern(b []byte) *ByteStr {
	normalized := norm.NFC.String(string(b))

	in.mu.RLock()
	if existing, ok := in.table[normalized]; ok {
		in.mu.RUnlock()
		return existing
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.table[normalized]; ok {
		return existing
	}
	bs := &ByteStr{s: normalized}
	in.table[normalized] = bs
	return bs
}

// InternString is a convenience wrapper around Intern for Go strings.
func (in *Interner) InternString(s string) *ByteStr {
	return in.Intern([]byte(s))
}

// Len reports how many distinct strings have been interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.table)
}
