package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned by Run when the parser does not match.
	ErrNoMatch = errors.New("no match")
	// ErrIncomplete is returned by Run when the parser matched but left input unconsumed.
	ErrIncomplete = errors.New("input not fully consumed")
)

// Run parses all of s with p and returns the value.
//
// Errors wrap ErrNoMatch or ErrIncomplete. They carry no position: the engine only
// knows whether the input matched.
func Run[T any](p *Parser[T], s string, opts ...Opt) (T, error) {
	var zero T
	st := p.ParseString(s, opts...)
	if !st.Match() {
		return zero, fmt.Errorf("%s: %w", p.Name(), ErrNoMatch)
	}
	if rest := st.Residual(); !rest.IsEmpty() {
		return zero, fmt.Errorf("%s: %w: %d characters left", p.Name(), ErrIncomplete, rest.RuneCount())
	}
	return st.Value(), nil
}
