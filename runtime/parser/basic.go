package parser

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/opal-lang/pcomb/core/text"
)

// Char matches the single character c.
func Char(c rune) *Parser[string] {
	return CharMatching(fmt.Sprintf("char(%q)", c), func(r rune) bool { return r == c })
}

// CharSpaced matches c with optional whitespace on either side.
func CharSpaced(c rune) *Parser[string] {
	return Char(c).SkipSurroundingSpaces()
}

// CharIn matches one character of set.
func CharIn(set text.Set) *Parser[string] {
	return CharMatching("charInSet", set)
}

// CharMatching matches one character accepted by match. The value is the character.
func CharMatching(name string, match text.Set) *Parser[string] {
	return New(name, func(input text.View, _ Context) Status[string] {
		r, ok := input.First()
		if !ok || !match.Contains(r) {
			return NoMatch[string](input)
		}
		end := input.After(input.Start())
		return Matched(input, end, input.Text(input.Start(), end))
	})
}

// StringOpt configures String
type StringOpt func(*stringConfig)

type stringConfig struct {
	caseSensitive bool
	skipSpaces    bool
}

// CaseSensitive makes String compare characters exactly
func CaseSensitive() StringOpt {
	return func(c *stringConfig) {
		c.caseSensitive = true
	}
}

// SkipSpaces lets String consume whitespace before and after the literal
func SkipSpaces() StringOpt {
	return func(c *stringConfig) {
		c.skipSpaces = true
	}
}

// String matches literal, ignoring case unless CaseSensitive is given.
// The value is the input text that matched.
//
// The candidate is always as many characters as literal, and the two are compared
// after Unicode case folding. Folds that change the length never match, so
// String("straße") does not match "STRASSE".
func String(literal string, opts ...StringOpt) *Parser[string] {
	config := stringConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	length := utf8.RuneCountInString(literal)
	folded := literal
	if !config.caseSensitive {
		folded = cases.Fold().String(literal)
	}

	p := New(fmt.Sprintf("string(%s)", literal), func(input text.View, _ Context) Status[string] {
		end := input.Start()
		for i := 0; i < length; i++ {
			if end >= input.End() {
				return NoMatch[string](input)
			}
			end = input.After(end)
		}

		candidate := input.Text(input.Start(), end)
		if candidate == literal {
			return Matched(input, end, candidate)
		}
		// Caser keeps state, so each call folds with its own.
		if !config.caseSensitive && cases.Fold().String(candidate) == folded {
			return Matched(input, end, candidate)
		}
		return NoMatch[string](input)
	})

	if config.skipSpaces {
		return p.SkipSurroundingSpaces()
	}
	return p
}

// Space matches one whitespace character.
func Space() *Parser[string] {
	return CharIn(text.Whitespace).Named("space")
}

// Spaces matches a run of at least minCount whitespace characters.
func Spaces(minCount int) *Parser[string] {
	return TakeWhileIn(text.Whitespace, MinCount(minCount)).Named("spaces")
}

// Digit matches one decimal digit.
func Digit() *Parser[string] {
	return CharIn(text.Digits).Named("digit")
}

// Digits matches a run of at least minCount decimal digits.
func Digits(minCount int) *Parser[string] {
	return TakeWhileIn(text.Digits, MinCount(minCount)).Named("digits")
}
