package types

import "strings"

// Cache canonicalizes TupleType and StrType instances so that structurally
// equal tuples share one stored TupleType value (the same Elems slice)
// and equal lengths one StrType value, per spec.md §4.3
// (getTupleType, getStrType) and §9 ("process-wide caches ... provide
// explicit construction and teardown"): the embedder owns a Cache value
// instead of relying on package-level state, so tests can reset it.
type Cache struct {
	tuples  map[string]Type
	strings map[int]StrType
}

// NewCache creates an empty, ready-to-use Cache.
func NewCache() *Cache {
	return &Cache{tuples: make(map[string]Type), strings: make(map[int]StrType)}
}

// GetTupleType returns the canonical Type for a tuple of elems, collapsing
// a single element to itself per the TupleType invariant (spec.md §3).
func (c *Cache) GetTupleType(elems []Type) Type {
	if len(elems) == 1 {
		return elems[0]
	}
	key := tupleKey(elems)
	if existing, ok := c.tuples[key]; ok {
		return existing
	}
	t := TupleType{Elems: append([]Type(nil), elems...)}
	c.tuples[key] = t
	return t
}

func tupleKey(elems []Type) string {
	var sb strings.Builder
	for i, e := range elems {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

// GetStrType returns the canonical sized-string type for a literal of
// the given byte length.
func (c *Cache) GetStrType(length int) StrType {
	if existing, ok := c.strings[length]; ok {
		return existing
	}
	t := StrType{Len: length}
	c.strings[length] = t
	return t
}
