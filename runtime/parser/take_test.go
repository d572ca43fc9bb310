package parser

import (
	"testing"

	"github.com/opal-lang/pcomb/core/text"
)

func TestTake(t *testing.T) {
	stops := text.Runes(";,")

	runStringCases(t, []stringCase{
		{"until in", TakeUntilIn(stops), "ab;c", match("ab", ";c")},
		{"until in min count", TakeUntilIn(stops, MinCount(3)), "ab;c", noMatch[string]("ab;c")},
		{"until in runs to end", TakeUntilIn(stops), "abc", match("abc", "")},
		{"until in terminal required", TakeUntilIn(stops, RequireTerminal()), "abc", noMatch[string]("abc")},
		{"until in immediate stop", TakeUntilIn(stops), ",x", match("", ",x")},
		{"until char", TakeUntilChar(';'), "ab;c", match("ab", ";c")},
		{"until char and skip", TakeUntilChar(';', AndSkip()), "ab;c", match("ab", "c")},
		{"until char and skip at end", TakeUntilChar(';', AndSkip()), "ab", match("ab", "")},
		{"until char emoji", TakeUntilChar('😃', AndSkip()), "a😃b", match("a", "b")},
		{"until string", TakeUntilString("-->"), "abc-->rest", match("abc", "-->rest")},
		{"until string and skip", TakeUntilString("-->", AndSkip()), "abc-->rest", match("abc", "rest")},
		{"until string absent", TakeUntilString("-->"), "abc", match("abc", "")},
		{"until string absent required", TakeUntilString("-->", RequireTerminal()), "abc", noMatch[string]("abc")},
		{"until string empty terminator", TakeUntilString(""), "abc", match("", "abc")},
		{"until string after emoji", TakeUntilString("*/", AndSkip()), "😃 x*/y", match("😃 x", "y")},
		{"until string min count", TakeUntilString("*/", MinCount(2)), "x*/", noMatch[string]("x*/")},
		{"while in", TakeWhileIn(text.Letters), "abc1", match("abc", "1")},
		{"while in min count", TakeWhileIn(text.Digits, MinCount(2)), "1a", noMatch[string]("1a")},
		{"while in initial", TakeWhileInInitial(text.Letters, text.Alphanumerics), "a12 x", match("a12", " x")},
		{"while in initial rejects", TakeWhileInInitial(text.Letters, text.Alphanumerics), "1ab", noMatch[string]("1ab")},
		{"while in initial empty", TakeWhileInInitial(text.Letters, text.Alphanumerics), "", match("", "")},
		{"while in initial empty min count", TakeWhileInInitial(text.Letters, text.Alphanumerics, MinCount(1)), "", noMatch[string]("")},
	})
}
