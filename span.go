package rapidyaml

// Span is a view into a byte slice: either the string arena of a Tree, or
// memory owned elsewhere (a source buffer a parser was given, a Go string
// literal). Spans are never read or written through unsafe; equality is
// decided by comparing contents, and arena containment by comparing
// backing-array addresses.
type Span []byte

// Empty reports whether the span has zero length. An empty span is distinct
// from a nil/unset span only by convention of the caller; the tree itself
// treats both as "no scalar".
func (s Span) Empty() bool {
	return len(s) == 0
}

// String returns the span's contents as a string. This allocates a copy;
// callers in a hot path should prefer comparing Spans directly.
func (s Span) String() string {
	return string(s)
}

// Equal reports whether two spans have identical contents (not identical
// backing memory).
func (s Span) Equal(o Span) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}
