package parser

import (
	"fmt"

	"github.com/opal-lang/pcomb/core/invariant"
	"github.com/opal-lang/pcomb/core/text"
)

// Status is the outcome of one parse attempt.
//
// A status matches exactly when it carries an end index. A match may carry no value:
// values are skipped in match-only mode and by Ignore. A status that does not match
// always reports the unchanged input as its residual.
type Status[T any] struct {
	Input    text.View
	end      int
	matched  bool
	value    T
	hasValue bool
}

// Maybe is an optional value, used where list results keep absent entries for
// positional alignment.
type Maybe[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Maybe.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{Value: v, Valid: true}
}

// NoMatch returns the failed status for input.
func NoMatch[T any](input text.View) Status[T] {
	return Status[T]{Input: input}
}

// Matched returns a successful status ending at end with value v.
func Matched[T any](input text.View, end int, v T) Status[T] {
	invariant.InRange(end, input.Start(), input.End(), "match end")
	return Status[T]{Input: input, end: end, matched: true, value: v, hasValue: true}
}

// MatchedEmpty returns a successful status ending at end without a value.
func MatchedEmpty[T any](input text.View, end int) Status[T] {
	invariant.InRange(end, input.Start(), input.End(), "match end")
	return Status[T]{Input: input, end: end, matched: true}
}

// Match reports whether the parse succeeded.
func (s Status[T]) Match() bool { return s.matched }

// End returns the absolute index where the match ends.
func (s Status[T]) End() (int, bool) {
	if !s.matched {
		return 0, false
	}
	return s.end, true
}

// Get returns the produced value, if any.
func (s Status[T]) Get() (T, bool) { return s.value, s.hasValue }

// Value returns the produced value or the zero value of T.
func (s Status[T]) Value() T { return s.value }

// HasValue reports whether a value was produced.
func (s Status[T]) HasValue() bool { return s.hasValue }

// Residual returns the unconsumed remainder of the input.
func (s Status[T]) Residual() text.View {
	if !s.matched {
		return s.Input
	}
	return s.Input.From(s.end)
}

// Consumed returns the matched part of the input; empty when nothing matched.
func (s Status[T]) Consumed() text.View {
	if !s.matched {
		return s.Input.Slice(s.Input.Start(), s.Input.Start())
	}
	return s.Input.Slice(s.Input.Start(), s.end)
}

func (s Status[T]) String() string {
	match := "no"
	if s.matched {
		match = "yes"
	}
	value := "none"
	if s.hasValue {
		value = fmt.Sprintf("%v", s.value)
	}
	return fmt.Sprintf("match: %s, value: %s, residual count: %d", match, value, s.Residual().RuneCount())
}

// withEnd moves the end of a matched status, keeping its value.
func (s Status[T]) withEnd(end int) Status[T] {
	invariant.InRange(end, s.Input.Start(), s.Input.End(), "match end")
	s.end = end
	s.matched = true
	return s
}

// withInput rebases a status onto a wider input with the same source.
func (s Status[T]) withInput(input text.View) Status[T] {
	s.Input = input
	return s
}

// retype converts a status to another value type, dropping the value.
func retype[U, T any](s Status[T]) Status[U] {
	return Status[U]{Input: s.Input, end: s.end, matched: s.matched}
}

// replaceValue converts a status to another value type with a new value.
func replaceValue[U, T any](s Status[T], v U, ok bool) Status[U] {
	return Status[U]{Input: s.Input, end: s.end, matched: s.matched, value: v, hasValue: ok}
}
