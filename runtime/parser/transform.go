package parser

import (
	"github.com/opal-lang/pcomb/core/text"
)

// Map replaces the value of p with f(value). f is not called in match-only mode or
// when p matched without a value; the result then carries no value either.
func Map[T, U any](p *Parser[T], f func(T) U) *Parser[U] {
	return MapCtx(p, func(v T, _ Context) (U, bool) { return f(v), true })
}

// MapOK is Map where f may reject a value. A rejected value is not a failure: the
// result matches, without a value. Wrap the result in a check when rejection must
// fail the parse.
func MapOK[T, U any](p *Parser[T], f func(T) (U, bool)) *Parser[U] {
	return MapCtx(p, func(v T, _ Context) (U, bool) { return f(v) })
}

// MapCtx is MapOK with access to the parse context.
func MapCtx[T, U any](p *Parser[T], f func(T, Context) (U, bool)) *Parser[U] {
	return New(p.Name(), func(input text.View, ctx Context) Status[U] {
		st := p.Parse(input, ctx)
		if !st.matched {
			return NoMatch[U](input)
		}
		if ctx.matchOnly || !st.hasValue {
			return retype[U](st)
		}
		v, ok := f(st.value, ctx)
		return replaceValue(st, v, ok)
	})
}

// Ignore runs p in match-only mode and drops its value, keeping the match and end.
// The result type is free so the parser fits into lists of any type.
func Ignore[U, T any](p *Parser[T]) *Parser[U] {
	return New("ignore", func(input text.View, ctx Context) Status[U] {
		return retype[U](p.Parse(input, ctx.OnlyMatching()))
	})
}

// Compact drops the absent entries of a list value.
func Compact[T any](p *Parser[[]Maybe[T]]) *Parser[[]T] {
	return Map(p, func(in []Maybe[T]) []T {
		out := make([]T, 0, len(in))
		for _, m := range in {
			if m.Valid {
				out = append(out, m.Value)
			}
		}
		return out
	}).Named("compact")
}

// Flatten concatenates the inner lists of a list value.
func Flatten[T any](p *Parser[[][]T]) *Parser[[]T] {
	return Map(p, func(in [][]T) []T {
		var out []T
		for _, inner := range in {
			out = append(out, inner...)
		}
		return out
	}).Named("flatten")
}

// Erase converts p to a parser of untyped values.
func Erase[T any](p *Parser[T]) *Parser[any] {
	return Map(p, func(v T) any { return v }).Named(p.Name())
}

// AsAny is Erase as a method.
func (p *Parser[T]) AsAny() *Parser[any] {
	return Erase(p)
}

// Cast converts an untyped parser back to T. A value that is not a T leaves the
// match without a value.
func Cast[T any](p *Parser[any]) *Parser[T] {
	return MapOK(p, func(v any) (T, bool) {
		t, ok := v.(T)
		return t, ok
	}).Named("cast")
}

// Debug logs the status of every parse of p through the context logger.
func (p *Parser[T]) Debug(msg string) *Parser[T] {
	return New("debug("+p.Name()+")", func(input text.View, ctx Context) Status[T] {
		st := p.Parse(input, ctx)
		ctx.Logger().Debug("parse result",
			"message", msg,
			"parser", p.Name(),
			"offset", input.Start(),
			"status", st.String())
		return st
	})
}

// Rewind runs p as lookahead: it always matches without consuming input, carrying
// the value of p when p matched with one.
func (p *Parser[T]) Rewind() *Parser[T] {
	return New("rewind", func(input text.View, ctx Context) Status[T] {
		st := p.Parse(input, ctx)
		if st.matched && st.hasValue {
			return Matched(input, input.Start(), st.value)
		}
		return MatchedEmpty[T](input, input.Start())
	})
}
