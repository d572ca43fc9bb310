package text

import (
	"strings"
	"unicode"
)

// Set is a character class: a membership test over Unicode scalars.
type Set func(r rune) bool

// Predefined classes.
var (
	// Whitespace matches spaces, tabs and line breaks.
	Whitespace Set = unicode.IsSpace
	// Digits matches decimal digits in any script.
	Digits Set = unicode.IsDigit
	// Letters matches letters in any script.
	Letters Set = unicode.IsLetter
	// Alphanumerics matches letters, marks and numbers.
	Alphanumerics Set = func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
	}
)

// Runes returns the class of the characters in s.
func Runes(s string) Set {
	return func(r rune) bool { return strings.ContainsRune(s, r) }
}

// Range returns the class of characters in [lo, hi].
func Range(lo, hi rune) Set {
	return func(r rune) bool { return lo <= r && r <= hi }
}

// Tables returns the class of characters in any of the given Unicode tables.
func Tables(tables ...*unicode.RangeTable) Set {
	return func(r rune) bool { return unicode.IsOneOf(tables, r) }
}

// Contains reports whether r is in the class. A nil Set contains nothing.
func (s Set) Contains(r rune) bool {
	return s != nil && s(r)
}

// Union returns the class matching s or any of others.
func (s Set) Union(others ...Set) Set {
	return func(r rune) bool {
		if s.Contains(r) {
			return true
		}
		for _, o := range others {
			if o.Contains(r) {
				return true
			}
		}
		return false
	}
}

// Not returns the complement of s.
func (s Set) Not() Set {
	return func(r rune) bool { return !s.Contains(r) }
}
