package parser

import "github.com/opal-lang/pcomb/core/text"

// Tuple2 is the value of Then.
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

// Tuple3 is the value of Then3.
type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// Tuple4 is the value of Then4.
type Tuple4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

// Tuple5 is the value of Then5.
type Tuple5[A, B, C, D, E any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
}

// Then matches a followed by b. The tuple is only built when both produced values;
// otherwise the match carries no value.
func Then[A, B any](a *Parser[A], b *Parser[B]) *Parser[Tuple2[A, B]] {
	return New("then", func(input text.View, ctx Context) Status[Tuple2[A, B]] {
		first := a.Parse(input, ctx)
		if !first.matched {
			return NoMatch[Tuple2[A, B]](input)
		}
		second := b.Parse(input.From(first.end), ctx)
		if !second.matched {
			return NoMatch[Tuple2[A, B]](input)
		}
		if ctx.matchOnly || !first.hasValue || !second.hasValue {
			return MatchedEmpty[Tuple2[A, B]](input, second.end)
		}
		return Matched(input, second.end, Tuple2[A, B]{V1: first.value, V2: second.value})
	})
}

// Then2 matches two parsers of the same type and returns their values as a list.
func Then2[T any](a, b *Parser[T]) *Parser[[]T] {
	return Sequential(a, b).Named("then")
}

// ThenWith matches a followed by b and combines both values with f.
func ThenWith[A, B, R any](a *Parser[A], b *Parser[B], f func(A, B) R) *Parser[R] {
	return Map(Then(a, b), func(t Tuple2[A, B]) R { return f(t.V1, t.V2) }).Named("thenWith")
}

// Then3 matches a, b and c in order and returns all three values.
func Then3[A, B, C any](a *Parser[A], b *Parser[B], c *Parser[C]) *Parser[Tuple3[A, B, C]] {
	return Map(Then(Then(a, b), c), func(t Tuple2[Tuple2[A, B], C]) Tuple3[A, B, C] {
		return Tuple3[A, B, C]{V1: t.V1.V1, V2: t.V1.V2, V3: t.V2}
	}).Named("then3")
}

// Then4 is Then3 with a fourth parser.
func Then4[A, B, C, D any](a *Parser[A], b *Parser[B], c *Parser[C], d *Parser[D]) *Parser[Tuple4[A, B, C, D]] {
	return Map(Then(Then3(a, b, c), d), func(t Tuple2[Tuple3[A, B, C], D]) Tuple4[A, B, C, D] {
		return Tuple4[A, B, C, D]{V1: t.V1.V1, V2: t.V1.V2, V3: t.V1.V3, V4: t.V2}
	}).Named("then4")
}

// Then5 is Then3 with a fourth and a fifth parser.
func Then5[A, B, C, D, E any](a *Parser[A], b *Parser[B], c *Parser[C], d *Parser[D], e *Parser[E]) *Parser[Tuple5[A, B, C, D, E]] {
	return Map(Then(Then4(a, b, c, d), e), func(t Tuple2[Tuple4[A, B, C, D], E]) Tuple5[A, B, C, D, E] {
		return Tuple5[A, B, C, D, E]{V1: t.V1.V1, V2: t.V1.V2, V3: t.V1.V3, V4: t.V1.V4, V5: t.V2}
	}).Named("then5")
}

// KeepLeft matches p followed by right and keeps the value of p.
func KeepLeft[T, R any](p *Parser[T], right *Parser[R]) *Parser[T] {
	return New("keepLeft", func(input text.View, ctx Context) Status[T] {
		st := p.Parse(input, ctx)
		if !st.matched {
			return NoMatch[T](input)
		}
		r := right.Parse(input.From(st.end), ctx.OnlyMatching())
		if !r.matched {
			return NoMatch[T](input)
		}
		return st.withEnd(r.end)
	})
}

// KeepRight matches left followed by p and keeps the value of p.
func KeepRight[L, T any](left *Parser[L], p *Parser[T]) *Parser[T] {
	return New("keepRight", func(input text.View, ctx Context) Status[T] {
		l := left.Parse(input, ctx.OnlyMatching())
		if !l.matched {
			return NoMatch[T](input)
		}
		st := p.Parse(input.From(l.end), ctx)
		if !st.matched {
			return NoMatch[T](input)
		}
		return st.withInput(input)
	})
}

// Between matches left, p and right in order and keeps the value of p.
func Between[T, L, R any](p *Parser[T], left *Parser[L], right *Parser[R]) *Parser[T] {
	return KeepLeft(KeepRight(left, p), right).Named("between")
}
