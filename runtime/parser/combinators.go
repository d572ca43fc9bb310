package parser

import (
	"fmt"
	"strings"

	"github.com/opal-lang/pcomb/core/invariant"
	"github.com/opal-lang/pcomb/core/text"
)

// Choice tries each parser against the same input and returns the first match.
// There is no longest-match disambiguation.
func Choice[T any](parsers ...*Parser[T]) *Parser[T] {
	for _, p := range parsers {
		invariant.NotNil(p, "choice alternative")
	}
	return New("choice", func(input text.View, ctx Context) Status[T] {
		for _, p := range parsers {
			if st := p.Parse(input, ctx); st.matched {
				return st
			}
		}
		return NoMatch[T](input)
	})
}

// AnyChoice is Choice over type-erased parsers, for alternatives of different types.
func AnyChoice(parsers ...*Parser[any]) *Parser[any] {
	return Choice(parsers...).Named("anyChoice")
}

// Or returns Choice(p, other).
func (p *Parser[T]) Or(other *Parser[T]) *Parser[T] {
	return Choice(p, other)
}

// OrAny is Or for parsers of different types. The value is erased.
func OrAny[A, B any](a *Parser[A], b *Parser[B]) *Parser[any] {
	return AnyChoice(Erase(a), Erase(b))
}

// Optional never fails: when p does not match the result is a zero-width match
// without a value.
func (p *Parser[T]) Optional() *Parser[T] {
	return New("optional", func(input text.View, ctx Context) Status[T] {
		if st := p.Parse(input, ctx); st.matched {
			return st
		}
		return MatchedEmpty[T](input, input.Start())
	})
}

// OptionalDefault is Optional with def as the value of the zero-width match.
func (p *Parser[T]) OptionalDefault(def T) *Parser[T] {
	return New("optional", func(input text.View, ctx Context) Status[T] {
		if st := p.Parse(input, ctx); st.matched {
			return st
		}
		return Matched(input, input.Start(), def)
	})
}

// SequentialO runs each parser on the residual of the previous one. Absent values
// are kept so positions line up with the parsers.
func SequentialO[T any](parsers ...*Parser[T]) *Parser[[]Maybe[T]] {
	return New("sequentialO", func(input text.View, ctx Context) Status[[]Maybe[T]] {
		var values []Maybe[T]
		if !ctx.matchOnly {
			values = make([]Maybe[T], 0, len(parsers))
		}
		end, ok := runSequence(parsers, input, ctx, func(v T, present bool) {
			values = append(values, Maybe[T]{Value: v, Valid: present})
		})
		if !ok {
			return NoMatch[[]Maybe[T]](input)
		}
		if ctx.matchOnly {
			return MatchedEmpty[[]Maybe[T]](input, end)
		}
		return Matched(input, end, values)
	})
}

// Sequential is SequentialO with absent values dropped.
func Sequential[T any](parsers ...*Parser[T]) *Parser[[]T] {
	return New("sequential", func(input text.View, ctx Context) Status[[]T] {
		values := []T{}
		end, ok := runSequence(parsers, input, ctx, func(v T, present bool) {
			if present {
				values = append(values, v)
			}
		})
		if !ok {
			return NoMatch[[]T](input)
		}
		if ctx.matchOnly {
			return MatchedEmpty[[]T](input, end)
		}
		return Matched(input, end, values)
	})
}

func runSequence[T any](parsers []*Parser[T], input text.View, ctx Context, emit func(T, bool)) (int, bool) {
	end := input.Start()
	for _, p := range parsers {
		st := p.Parse(input.From(end), ctx)
		if !st.matched {
			return 0, false
		}
		if !ctx.matchOnly {
			emit(st.value, st.hasValue)
		}
		end = st.end
	}
	return end, true
}

// EndOfInput matches, zero-width and without a value, only on empty input.
func EndOfInput() *Parser[string] {
	return New("endOfInput", func(input text.View, _ Context) Status[string] {
		if !input.IsEmpty() {
			return NoMatch[string](input)
		}
		return MatchedEmpty[string](input, input.End())
	})
}

// BeforeEOI requires p to consume all of its input.
func (p *Parser[T]) BeforeEOI() *Parser[T] {
	return KeepLeft(p, EndOfInput()).Named("beforeEOI")
}

// ManyO repeats p while each repetition matches and advances. A match that does not
// advance ends the loop without being counted. Fewer than minCount repetitions is no
// match. Absent values are kept.
func ManyO[T any](p *Parser[T], minCount int) *Parser[[]Maybe[T]] {
	invariant.NotNegative(minCount, "minCount")
	return New(fmt.Sprintf("manyO(%d)", minCount), func(input text.View, ctx Context) Status[[]Maybe[T]] {
		values := []Maybe[T]{}
		end, ok := repeat(p, minCount, input, ctx, func(v T, present bool) {
			values = append(values, Maybe[T]{Value: v, Valid: present})
		})
		if !ok {
			return NoMatch[[]Maybe[T]](input)
		}
		if ctx.matchOnly {
			return MatchedEmpty[[]Maybe[T]](input, end)
		}
		return Matched(input, end, values)
	})
}

// Many is ManyO with absent values dropped.
func Many[T any](p *Parser[T], minCount int) *Parser[[]T] {
	invariant.NotNegative(minCount, "minCount")
	return New(fmt.Sprintf("many(%d)", minCount), func(input text.View, ctx Context) Status[[]T] {
		values := []T{}
		end, ok := repeat(p, minCount, input, ctx, func(v T, present bool) {
			if present {
				values = append(values, v)
			}
		})
		if !ok {
			return NoMatch[[]T](input)
		}
		if ctx.matchOnly {
			return MatchedEmpty[[]T](input, end)
		}
		return Matched(input, end, values)
	})
}

func repeat[T any](p *Parser[T], minCount int, input text.View, ctx Context, emit func(T, bool)) (int, bool) {
	end := input.Start()
	count := 0
	for {
		st := p.Parse(input.From(end), ctx)
		if !st.matched || st.end <= end {
			break
		}
		if !ctx.matchOnly {
			emit(st.value, st.hasValue)
		}
		count++
		invariant.Invariant(st.end > end, "repetition %d must advance past %d", count, end)
		end = st.end
		if end == input.End() {
			break
		}
	}
	return end, count >= minCount
}

// SepBy parses one p, then (delimiter, p) pairs while both match and the pair
// advances. At least minSep pairs are required. Delimiter values are discarded and an unmatched trailing
// delimiter stays in the residual.
func SepBy[T, D any](p *Parser[T], delimiter *Parser[D], minSep int) *Parser[[]T] {
	return sepBy(fmt.Sprintf("sepBy(%d)", minSep), p, Ignore[T](delimiter), minSep, false)
}

// SepBy1 is SepBy requiring at least one delimiter.
func SepBy1[T, D any](p *Parser[T], delimiter *Parser[D]) *Parser[[]T] {
	return SepBy(p, delimiter, 1).Named("sepBy1")
}

// SepByKeep is SepBy with delimiter values interleaved into the result.
func SepByKeep[T any](p, delimiter *Parser[T], minSep int) *Parser[[]T] {
	return sepBy(fmt.Sprintf("sepByKeep(%d)", minSep), p, delimiter, minSep, true)
}

// SepBy1Keep is SepByKeep requiring at least one delimiter.
func SepBy1Keep[T any](p, delimiter *Parser[T]) *Parser[[]T] {
	return SepByKeep(p, delimiter, 1).Named("sepBy1Keep")
}

func sepBy[T any](name string, p, delimiter *Parser[T], minSep int, keep bool) *Parser[[]T] {
	invariant.NotNegative(minSep, "minSep")
	return New(name, func(input text.View, ctx Context) Status[[]T] {
		first := p.Parse(input, ctx)
		if !first.matched {
			return NoMatch[[]T](input)
		}

		values := []T{}
		if first.hasValue {
			values = append(values, first.value)
		}
		end := first.end
		pairs := 0
		for end < input.End() {
			d := delimiter.Parse(input.From(end), ctx)
			if !d.matched {
				break
			}
			next := p.Parse(input.From(d.end), ctx)
			if !next.matched || next.end <= end {
				break
			}
			if keep && d.hasValue {
				values = append(values, d.value)
			}
			if next.hasValue {
				values = append(values, next.value)
			}
			invariant.Invariant(next.end > end, "separated element must advance past %d", end)
			end = next.end
			pairs++
		}

		if pairs < minSep {
			return NoMatch[[]T](input)
		}
		if ctx.matchOnly {
			return MatchedEmpty[[]T](input, end)
		}
		return Matched(input, end, values)
	})
}

// SkipSurrounding consumes wrapper, if present, before and after p. The wrapper
// value is never built.
func SkipSurrounding[T, W any](p *Parser[T], wrapper *Parser[W]) *Parser[T] {
	return New("skipSurrounding", func(input text.View, ctx Context) Status[T] {
		start := input.Start()
		if w := wrapper.Parse(input, ctx.OnlyMatching()); w.matched {
			start = w.end
		}
		st := p.Parse(input.From(start), ctx)
		if !st.matched {
			return NoMatch[T](input)
		}
		end := st.end
		if w := wrapper.Parse(input.From(end), ctx.OnlyMatching()); w.matched {
			end = w.end
		}
		return st.withInput(input).withEnd(end)
	})
}

// SkipSurroundingSpaces consumes whitespace around p.
func (p *Parser[T]) SkipSurroundingSpaces() *Parser[T] {
	return SkipSurrounding(p, Spaces(0)).Named(p.Name())
}

// Concat joins the elements of a list value with sep. Elements that are not strings
// are formatted with fmt.
func Concat[E any](p *Parser[[]E], sep string) *Parser[string] {
	return Map(p, func(elems []E) string {
		var b strings.Builder
		for i, e := range elems {
			if i > 0 {
				b.WriteString(sep)
			}
			if s, ok := any(e).(string); ok {
				b.WriteString(s)
			} else {
				fmt.Fprint(&b, e)
			}
		}
		return b.String()
	}).Named("concat")
}

// ConcatMany matches p one or more times and joins the values.
func ConcatMany(p *Parser[string]) *Parser[string] {
	return Concat(Many(p, 1), "").Named("concatMany")
}

// ParseEach runs p over every string in the value of list. Any element p does not
// match, or matches without a value, makes the whole parse fail.
func ParseEach[T any](list *Parser[[]string], p *Parser[T]) *Parser[[]T] {
	return New("parseEach", func(input text.View, ctx Context) Status[[]T] {
		st := list.Parse(input, ctx.materializing())
		if !st.matched {
			return NoMatch[[]T](input)
		}
		values := make([]T, 0, len(st.value))
		for _, elem := range st.value {
			r := p.Parse(text.New(elem), ctx.materializing())
			if !r.matched || !r.hasValue {
				return NoMatch[[]T](input)
			}
			values = append(values, r.value)
		}
		if ctx.matchOnly {
			return MatchedEmpty[[]T](input, st.end)
		}
		return Matched(input, st.end, values)
	})
}
