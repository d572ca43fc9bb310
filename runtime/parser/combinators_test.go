package parser

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func digitValue() *Parser[int] {
	return Map(Digit(), func(s string) int { return int(s[0] - '0') })
}

func number() *Parser[int] {
	return MapOK(Digits(1), func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	})
}

func TestSequential(t *testing.T) {
	yo := Sequential(Char('y'), Char('o'), EndOfInput())

	tests := []struct {
		name  string
		input string
		want  result[[]string]
	}{
		{"exact", "yo", match([]string{"y", "o"}, "")},
		{"trailing input", "yo!", noMatch[[]string]("yo!")},
		{"first fails", "xo", noMatch[[]string]("xo")},
		{"second fails", "yx", noMatch[[]string]("yx")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(yo, tt.input)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSequentialKeepsPositions(t *testing.T) {
	parts := []*Parser[string]{Char('a'), Ignore[string](Char('b')), Char('c')}

	compact := run(Sequential(parts...), "abcd")
	if diff := cmp.Diff(match([]string{"a", "c"}, "d"), compact); diff != "" {
		t.Errorf("Sequential mismatch (-want +got):\n%s", diff)
	}

	aligned := run(SequentialO(parts...), "abcd")
	want := match([]Maybe[string]{Some("a"), {}, Some("c")}, "d")
	if diff := cmp.Diff(want, aligned); diff != "" {
		t.Errorf("SequentialO mismatch (-want +got):\n%s", diff)
	}
}

func TestChoice(t *testing.T) {
	runStringCases(t, []stringCase{
		{"first match wins", Choice(String("ab"), String("abc")), "abcd", match("ab", "cd")},
		{"falls through", Choice(String("x"), String("abc")), "abcd", match("abc", "d")},
		{"none match", Choice(String("x"), String("y")), "abcd", noMatch[string]("abcd")},
		{"empty choice", Choice[string](), "a", noMatch[string]("a")},
		{"or", Char('a').Or(Char('b')), "ba", match("b", "a")},
	})
}

func TestOrAny(t *testing.T) {
	p := OrAny(number(), Char('x'))

	tests := []struct {
		input string
		want  result[any]
	}{
		{"42", match[any](42, "")},
		{"x1", match[any]("x", "1")},
		{"?", noMatch[any]("?")},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, run(p, tt.input)); diff != "" {
			t.Errorf("OrAny on %q mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestOptional(t *testing.T) {
	runStringCases(t, []stringCase{
		{"present", Char('a').Optional(), "ab", match("a", "b")},
		{"absent", Char('a').Optional(), "b", matchEmpty[string]("b")},
		{"absent on empty input", Char('a').Optional(), "", matchEmpty[string]("")},
		{"default", Char('a').OptionalDefault("z"), "b", match("z", "b")},
		{"default unused", Char('a').OptionalDefault("z"), "a", match("a", "")},
	})
}

func TestEndOfInput(t *testing.T) {
	runStringCases(t, []stringCase{
		{"empty", EndOfInput(), "", matchEmpty[string]("")},
		{"not empty", EndOfInput(), "a", noMatch[string]("a")},
		{"before eoi", Digits(1).BeforeEOI(), "12", match("12", "")},
		{"before eoi leftover", Digits(1).BeforeEOI(), "12a", noMatch[string]("12a")},
	})
}

func TestMany(t *testing.T) {
	tests := []struct {
		name   string
		parser *Parser[[]string]
		input  string
		want   result[[]string]
	}{
		{"repeats", Many(Char('a'), 2), "aaab", match([]string{"a", "a", "a"}, "b")},
		{"below minimum", Many(Char('a'), 2), "ab", noMatch[[]string]("ab")},
		{"zero allowed", Many(Char('a'), 0), "b", match([]string{}, "b")},
		{"empty input", Many(Digit(), 0), "", match([]string{}, "")},
		{"zero width stops", Many(Digits(0), 0), "x", match([]string{}, "x")},
		{"zero width after progress", Many(Digits(0), 1), "12x", match([]string{"12"}, "x")},
		{"absent values dropped", Many(Ignore[string](Char('a')), 1), "aab", match([]string{}, "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(tt.parser, tt.input)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestManyO(t *testing.T) {
	p := ManyO(Char('a').Optional(), 1)
	// The optional matches zero-width on "b", which does not advance.
	got := run(p, "aab")
	want := match([]Maybe[string]{Some("a"), Some("a")}, "b")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	ignored := run(ManyO(Ignore[string](Char('a')), 1), "aa")
	if diff := cmp.Diff(match([]Maybe[string]{{}, {}}, ""), ignored); diff != "" {
		t.Errorf("ignored values mismatch (-want +got):\n%s", diff)
	}
}

func TestSepBy(t *testing.T) {
	tests := []struct {
		name   string
		parser *Parser[[]int]
		input  string
		want   result[[]int]
	}{
		{"trailing delimiter left", SepBy(digitValue(), Char(','), 0), "1,1,1,", match([]int{1, 1, 1}, ",")},
		{"single element", SepBy(digitValue(), Char(','), 0), "7", match([]int{7}, "")},
		{"first element required", SepBy(digitValue(), Char(','), 0), ",1", noMatch[[]int](",1")},
		{"minimum pairs met", SepBy(digitValue(), Char(','), 2), "1,2,3", match([]int{1, 2, 3}, "")},
		{"minimum pairs missed", SepBy(digitValue(), Char(','), 3), "1,2,3", noMatch[[]int]("1,2,3")},
		{"sepBy1 needs a delimiter", SepBy1(digitValue(), Char(',')), "1", noMatch[[]int]("1")},
		{"sepBy1", SepBy1(number(), CharSpaced(';')), "10 ; 20", match([]int{10, 20}, "")},
		{"zero-width pairs stop", SepBy(digitValue().Optional(), Char(',').Optional(), 0), "x", match([]int{}, "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(tt.parser, tt.input)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSepByKeep(t *testing.T) {
	tests := []struct {
		name   string
		parser *Parser[[]string]
		input  string
		want   result[[]string]
	}{
		{"interleaves delimiters", SepByKeep(Digits(1), CharIn(isOperator), 0), "1+22-3", match([]string{"1", "+", "22", "-", "3"}, "")},
		{"trailing delimiter left", SepByKeep(Digits(1), CharIn(isOperator), 0), "1+", match([]string{"1"}, "+")},
		{"sepBy1Keep needs a delimiter", SepBy1Keep(Digits(1), CharIn(isOperator)), "1", noMatch[[]string]("1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, run(tt.parser, tt.input)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func isOperator(r rune) bool { return r == '+' || r == '-' }

func TestSkipSurrounding(t *testing.T) {
	runStringCases(t, []stringCase{
		{"both sides", SkipSurrounding(Digits(1), Char('*')), "*12*x", match("12", "x")},
		{"neither side", SkipSurrounding(Digits(1), Char('*')), "12", match("12", "")},
		{"left only", SkipSurrounding(Digits(1), Char('*')), "*12", match("12", "")},
		{"core missing", SkipSurrounding(Digits(1), Char('*')), "**", noMatch[string]("**")},
		{"spaces", Digits(1).SkipSurroundingSpaces(), " 12 \tx", match("12", "x")},
	})
}

func TestConcat(t *testing.T) {
	runStringCases(t, []stringCase{
		{"strings", Concat(Sequential(Char('a'), Char('b')), "-"), "ab", match("a-b", "")},
		{"numbers", Concat(Many(digitValue(), 1), "+"), "123", match("1+2+3", "")},
		{"concat many", ConcatMany(Char('a')), "aab", match("aa", "b")},
		{"concat many needs one", ConcatMany(Char('a')), "b", noMatch[string]("b")},
	})
}

func TestParseEach(t *testing.T) {
	p := ParseEach(ParamList(), number())

	tests := []struct {
		input string
		want  result[[]int]
	}{
		{"(1, 22,333) tail", match([]int{1, 22, 333}, " tail")},
		{"(1,x)", noMatch[[]int]("(1,x)")},
		{"1,2", noMatch[[]int]("1,2")},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, run(p, tt.input)); diff != "" {
			t.Errorf("ParseEach on %q mismatch (-want +got):\n%s", tt.input, diff)
		}
	}

	if !p.ParseString("(4,5)", WithMatchOnly()).Match() {
		t.Error("match-only ParseEach failed on valid input")
	}
}

func TestProjection(t *testing.T) {
	pair := run(Then(Char('a'), Digits(1)), "a12!")
	if diff := cmp.Diff(match(Tuple2[string, string]{V1: "a", V2: "12"}, "!"), pair); diff != "" {
		t.Errorf("Then mismatch (-want +got):\n%s", diff)
	}

	partial := run(Then(Char('a'), Ignore[string](Digits(1))), "a12")
	if diff := cmp.Diff(matchEmpty[Tuple2[string, string]](""), partial); diff != "" {
		t.Errorf("Then without right value mismatch (-want +got):\n%s", diff)
	}

	list := run(Then2(Char('a'), Char('b')), "abc")
	if diff := cmp.Diff(match([]string{"a", "b"}, "c"), list); diff != "" {
		t.Errorf("Then2 mismatch (-want +got):\n%s", diff)
	}

	three := run(Then3(Char('a'), number(), Char('c')), "a7c")
	if diff := cmp.Diff(match(Tuple3[string, int, string]{"a", 7, "c"}, ""), three); diff != "" {
		t.Errorf("Then3 mismatch (-want +got):\n%s", diff)
	}

	four := run(Then4(Char('a'), Char('b'), Char('c'), Char('d')), "abcd")
	if diff := cmp.Diff(match(Tuple4[string, string, string, string]{"a", "b", "c", "d"}, ""), four); diff != "" {
		t.Errorf("Then4 mismatch (-want +got):\n%s", diff)
	}

	five := run(Then5(Char('a'), Char('b'), Char('c'), Char('d'), number()), "abcd9")
	if diff := cmp.Diff(match(Tuple5[string, string, string, string, int]{"a", "b", "c", "d", 9}, ""), five); diff != "" {
		t.Errorf("Then5 mismatch (-want +got):\n%s", diff)
	}

	sum := run(ThenWith(number(), KeepRight(Char('+'), number()), func(a, b int) int { return a + b }), "2+40")
	if diff := cmp.Diff(match(42, ""), sum); diff != "" {
		t.Errorf("ThenWith mismatch (-want +got):\n%s", diff)
	}

	if got := run(Then(Char('a'), Char('b')), "ax"); got.Match {
		t.Errorf("Then matched %q", "ax")
	}
}

func TestKeepAndBetween(t *testing.T) {
	runStringCases(t, []stringCase{
		{"keep left", KeepLeft(Digits(1), Char(';')), "12;x", match("12", "x")},
		{"keep left right missing", KeepLeft(Digits(1), Char(';')), "12x", noMatch[string]("12x")},
		{"keep right", KeepRight(Char('$'), Digits(1)), "$5", match("5", "")},
		{"keep right left missing", KeepRight(Char('$'), Digits(1)), "5", noMatch[string]("5")},
		{"between", Between(Digits(1), Char('['), Char(']')), "[42]", match("42", "")},
		{"between unclosed", Between(Digits(1), Char('['), Char(']')), "[42", noMatch[string]("[42")},
	})
}

func TestGreetingGrammar(t *testing.T) {
	greeting := Sequential(
		Ignore[string](String("Hello")),
		Ignore[string](Spaces(1)),
		String("World"),
		Ignore[string](Spaces(0).Optional()),
		Choice(String("🤯"), String("😍"), String("💩")),
	)

	for _, in := range []string{"Hello World 🤯", "Hello World😍", "hello world 💩"} {
		if !greeting.Matches(in) {
			t.Errorf("Matches(%q) = false", in)
		}
	}
	for _, in := range []string{"HelloWorld💩", "Hello World 🤬"} {
		if greeting.Matches(in) {
			t.Errorf("Matches(%q) = true", in)
		}
	}

	if diff := cmp.Diff(match([]string{"World", "🤯"}, ""), run(greeting, "Hello World 🤯")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompactAlternatives(t *testing.T) {
	a := Char('A')
	b := MapOK(Char('B'), func(string) (string, bool) { return "", false })
	p := ManyO(a.Or(b), 1)

	want := match([]Maybe[string]{Some("A"), {}, Some("A"), {}}, "")
	if diff := cmp.Diff(want, run(p, "ABAB")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(match([]string{"A", "A"}, ""), run(Compact(p), "ABAB")); diff != "" {
		t.Errorf("compact mismatch (-want +got):\n%s", diff)
	}
}
