package parser

import (
	"github.com/opal-lang/pcomb/core/invariant"
	"github.com/opal-lang/pcomb/core/text"
)

// LazyBetween matches prefix, then content, then suffix, where suffix-like text may
// also occur inside content.
//
// content is first run alone to find its greedy extent. If suffix matches right
// there, that boundary is used. Otherwise candidate boundaries are tried one
// character at a time from the right end of the greedy extent back towards the
// prefix, testing suffix inside the window bounded by the greedy extent. The
// rightmost boundary with a valid suffix wins, and content is re-parsed over the
// text before it to produce the value.
//
//	p := LazyBetween(Digits(0), Char('0'), Char('0'))
//	p.ParseString("0123001") // value "1230", residual "1"
//
// Worst case is quadratic in the greedy extent.
func LazyBetween[T, P, S any](content *Parser[T], prefix *Parser[P], suffix *Parser[S]) *Parser[T] {
	return New("lazyBetween", func(input text.View, ctx Context) Status[T] {
		probe := ctx.OnlyMatching()

		pre := prefix.Parse(input, probe)
		if !pre.matched {
			return NoMatch[T](input)
		}
		prefixEnd := pre.end

		greedy := content.Parse(input.From(prefixEnd), probe)
		if !greedy.matched {
			return NoMatch[T](input)
		}
		greedyEnd := greedy.end

		if s := suffix.Parse(input.From(greedyEnd), probe); s.matched {
			return lazyContent(content, input, ctx, prefixEnd, greedyEnd, s.end)
		}

		for k := greedyEnd; k > prefixEnd; {
			k = input.Before(k)
			if k <= prefixEnd {
				break
			}
			if s := suffix.Parse(input.Slice(k, greedyEnd), probe); s.matched {
				return lazyContent(content, input, ctx, prefixEnd, k, s.end)
			}
		}
		return NoMatch[T](input)
	})
}

// lazyContent parses content over [from, to) and reports a match ending at end.
func lazyContent[T any](content *Parser[T], input text.View, ctx Context, from, to, end int) Status[T] {
	st := content.Parse(input.Slice(from, to), ctx)
	if !st.matched {
		return NoMatch[T](input)
	}
	invariant.Postcondition(end >= to, "suffix end %d before content end %d", end, to)
	if ctx.matchOnly || !st.hasValue {
		return MatchedEmpty[T](input, end)
	}
	return Matched(input, end, st.value)
}
