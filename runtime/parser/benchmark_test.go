package parser

import (
	"fmt"
	"strings"
	"testing"
)

// Benchmark suite for the engine.
//
// - BenchmarkCombinators: common grammar shapes on small inputs
// - BenchmarkTelemetryModes: observability overhead
// - BenchmarkLazyBetweenScaling: backtracking cost as the greedy extent grows
// - BenchmarkSharedRecursiveGrammar: one bound grammar parsed in parallel

func BenchmarkCombinators(b *testing.B) {
	scenarios := map[string]struct {
		parser *Parser[any]
		input  string
	}{
		"char":       {Erase(Char('y')), "yo!"},
		"string":     {Erase(String("hello")), "HELLO world"},
		"sepBy":      {Erase(SepBy(Digits(1), Char(','), 0)), "1,22,333,4444,55555"},
		"paramList":  {Erase(ParamList()), "(A ,B,(C,func(D,E)))"},
		"escapes":    {Erase(StringWithEscapesUpTo(';')), `echo "a;b" \; done;`},
		"lazy":       {Erase(LazyBetween(Digits(0), Char('0'), Char('0'))), "0123456789012345678900x"},
		"sequential": {Erase(Sequential(String("let", SkipSpaces()), Digits(1))), "let 42"},
	}

	for name, sc := range scenarios {
		b.Run(name, func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				st := sc.parser.ParseString(sc.input)
				_ = st
			}
		})

		b.Run(name+"/matchOnly", func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_ = sc.parser.Matches(sc.input)
			}
		})
	}
}

func BenchmarkTelemetryModes(b *testing.B) {
	p := SepBy(ParamList(), CharSpaced(';'), 0)
	input := strings.Repeat("(a, b, (c, d));", 50) + "(e)"

	modes := map[string][]Opt{
		"off":    nil,
		"basic":  {WithTelemetryBasic()},
		"timing": {WithTelemetryTiming()},
		"debug":  {WithDebugPaths()},
	}

	for name, opts := range modes {
		b.Run(name, func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_ = p.ParseString(input, opts...)
			}
		})
	}
}

func BenchmarkLazyBetweenScaling(b *testing.B) {
	p := LazyBetween(TakeUntilChar('\n'), String("**"), String("**"))

	for _, size := range []int{10, 100, 1000} {
		input := "**" + strings.Repeat("ab** ", size) + "**x"
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = p.ParseString(input)
			}
		})
	}
}

// BenchmarkSharedRecursiveGrammar parses with one bound recursive grammar from
// many goroutines at once.
func BenchmarkSharedRecursiveGrammar(b *testing.B) {
	list := Declare[[]string]("list")
	item := Choice(Digits(1), Map(list.Parser, func(vs []string) string { return strings.Join(vs, "|") }))
	list.Bind(Between(SepBy(item, CharSpaced(','), 0), Char('['), Char(']')))
	p := list.Parser.BeforeEOI()
	input := "[1, [2, [3, 4]], 5]"

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			st := p.ParseString(input)
			if !st.Match() || len(st.Value()) != 3 {
				b.Error("shared grammar lost its result")
				return
			}
			if !p.Matches(input) {
				b.Error("match-only disagreed")
				return
			}
		}
	})
}
