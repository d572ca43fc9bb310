// Package text provides the immutable input view that parsers consume.
//
// A View is a window [start, end) over a source string. Indices are absolute byte
// offsets into the source, always on rune boundaries, so an index produced against
// one view stays meaningful for every view sliced from the same source. Nothing in
// this package copies the source: slicing a view is three words of arithmetic.
package text

import (
	"unicode/utf8"

	"github.com/opal-lang/pcomb/core/invariant"
)

// View is an immutable slice of input characters.
type View struct {
	src   string
	start int
	end   int
}

// New returns a view over all of s.
func New(s string) View {
	return View{src: s, start: 0, end: len(s)}
}

// Start returns the absolute index of the first character.
func (v View) Start() int { return v.start }

// End returns the absolute index one past the last character.
func (v View) End() int { return v.end }

// Len returns the length of the view in bytes.
func (v View) Len() int { return v.end - v.start }

// IsEmpty reports whether the view holds no characters.
func (v View) IsEmpty() bool { return v.start >= v.end }

// String returns the characters of the view.
func (v View) String() string { return v.src[v.start:v.end] }

// Source returns the whole source the view was sliced from.
func (v View) Source() string { return v.src }

// RuneCount returns the number of characters in the view.
func (v View) RuneCount() int { return utf8.RuneCountInString(v.String()) }

// First returns the first character of the view.
func (v View) First() (rune, bool) {
	if v.IsEmpty() {
		return utf8.RuneError, false
	}
	r, _ := v.At(v.start)
	return r, true
}

// At decodes the character at absolute index i and returns it with its width.
// i must lie in [Start, End).
func (v View) At(i int) (rune, int) {
	invariant.Precondition(i >= v.start && i < v.end, "index %d outside view [%d, %d)", i, v.start, v.end)
	r, w := utf8.DecodeRuneInString(v.src[i:v.end])
	return r, w
}

// After returns the index of the character following the one at i.
func (v View) After(i int) int {
	_, w := v.At(i)
	return i + w
}

// Before returns the index of the character preceding i. i must lie in (Start, End].
func (v View) Before(i int) int {
	invariant.Precondition(i > v.start && i <= v.end, "index %d has no predecessor in view [%d, %d)", i, v.start, v.end)
	_, w := utf8.DecodeLastRuneInString(v.src[v.start:i])
	return i - w
}

// From returns the view [i, End).
func (v View) From(i int) View {
	return v.Slice(i, v.end)
}

// Slice returns the view [i, j). Both indices are absolute and must lie inside v.
func (v View) Slice(i, j int) View {
	invariant.Precondition(v.start <= i && i <= j && j <= v.end,
		"slice [%d, %d) outside view [%d, %d)", i, j, v.start, v.end)
	return View{src: v.src, start: i, end: j}
}

// Text returns the characters in [i, j) without building a view.
func (v View) Text(i, j int) string {
	return v.Slice(i, j).String()
}

// Equal reports whether both views cover the same window of the same source.
func (v View) Equal(o View) bool {
	return v.start == o.start && v.end == o.end && v.src == o.src
}
