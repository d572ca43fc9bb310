// Package parser is a parser-combinator engine over character input.
//
// A grammar is built once from primitive matchers (Char, String, TakeWhileIn, ...)
// and combinators (Sequential, Choice, Many, SepBy, LazyBetween, ...), then invoked
// any number of times, from any number of goroutines. Parsers hold no per-call state.
//
//	digit := parser.Map(parser.Digit(), func(s string) int { return int(s[0] - '0') })
//	list := parser.SepBy(digit, parser.Char(','), 0)
//	st := list.ParseString("1,2,3,")
//	// st.Match() == true, st.Value() == []int{1, 2, 3}, st.Residual().String() == ","
//
// There is one failure kind: no match. A failed status carries the unchanged input as
// its residual and no diagnostic. Recursive grammars use Declare and Bind.
package parser

import (
	"fmt"
	"reflect"

	"github.com/opal-lang/pcomb/core/invariant"
	"github.com/opal-lang/pcomb/core/text"
)

// Func is the matching function wrapped by a Parser.
type Func[T any] func(input text.View, ctx Context) Status[T]

// Parser is a named, immutable unit of composition.
type Parser[T any] struct {
	name string
	fn   Func[T]
}

// New wraps fn as a Parser.
func New[T any](name string, fn Func[T]) *Parser[T] {
	invariant.NotNil(fn, "parser func")
	return &Parser[T]{name: name, fn: fn}
}

// Name returns the parser name.
func (p *Parser[T]) Name() string {
	if p.name == "" {
		var zero T
		return fmt.Sprintf("parser(%v)", reflect.TypeOf(&zero).Elem())
	}
	return p.name
}

func (p *Parser[T]) String() string { return p.Name() }

// Named returns a copy of p with a new name.
func (p *Parser[T]) Named(name string) *Parser[T] {
	return &Parser[T]{name: name, fn: p.fn}
}

// Parse runs p against input.
func (p *Parser[T]) Parse(input text.View, ctx Context) Status[T] {
	if ctx.trace == nil {
		return p.fn(input, ctx)
	}

	ctx.recordDebugEvent("enter", p.Name(), input.Start())
	st := p.fn(input, ctx)
	ctx.recordCall(p.Name(), st.matched)
	if st.matched {
		ctx.recordDebugEvent("match", p.Name(), st.end)
	} else {
		ctx.recordDebugEvent("no_match", p.Name(), input.Start())
	}
	return st
}

// ParseString runs p against all of s with a context built from opts.
func (p *Parser[T]) ParseString(s string, opts ...Opt) Status[T] {
	return p.ParseWith(s, NewContext(opts...))
}

// ParseWith runs p against all of s with ctx, timing the parse when ctx asks for it.
func (p *Parser[T]) ParseWith(s string, ctx Context) Status[T] {
	stop := ctx.startTiming()
	defer stop()
	return p.Parse(text.New(s), ctx)
}

// Matches reports whether p consumes all of s. Values are not materialized.
func (p *Parser[T]) Matches(s string) bool {
	st := p.Parse(text.New(s), NewContext(WithMatchOnly()))
	return st.matched && st.Residual().IsEmpty()
}

// None returns a parser that never matches.
func None[T any]() *Parser[T] {
	return New("none", func(input text.View, _ Context) Status[T] {
		return NoMatch[T](input)
	})
}

// PassThrough returns a parser consuming all remaining input as its value.
func PassThrough() *Parser[string] {
	return New("passThrough", func(input text.View, _ Context) Status[string] {
		return Matched(input, input.End(), input.String())
	})
}

// Forward is a placeholder for a parser defined later, for recursive grammars.
//
// Create every Forward first, build the grammar using their Parser fields like any
// other parser, then Bind each exactly once before the grammar is used. Binding is
// not safe for concurrent use; parsing a bound grammar is.
type Forward[T any] struct {
	*Parser[T]
	target *Parser[T]
}

// Declare returns an unbound Forward. Until bound it never matches.
func Declare[T any](name string) *Forward[T] {
	f := &Forward[T]{}
	f.Parser = New(name, func(input text.View, ctx Context) Status[T] {
		if f.target == nil {
			return NoMatch[T](input)
		}
		return f.target.Parse(input, ctx)
	})
	return f
}

// Bind sets the parser f delegates to. Binding twice panics.
func (f *Forward[T]) Bind(p *Parser[T]) {
	invariant.NotNil(p, "bound parser")
	invariant.Precondition(f.target == nil, "forward parser %q already bound", f.Name())
	f.target = p
}

// Bound reports whether Bind has been called.
func (f *Forward[T]) Bound() bool { return f.target != nil }
