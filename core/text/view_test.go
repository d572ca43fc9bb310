package text

import (
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
)

func TestViewSlicing(t *testing.T) {
	v := New("yo!😃x")

	if got := v.RuneCount(); got != 5 {
		t.Fatalf("RuneCount = %d, want 5", got)
	}

	emoji := 3
	r, w := v.At(emoji)
	if r != '😃' || w != 4 {
		t.Fatalf("At(%d) = %q/%d, want 😃/4", emoji, r, w)
	}
	if got := v.After(emoji); got != 7 {
		t.Errorf("After(%d) = %d, want 7", emoji, got)
	}
	if got := v.Before(7); got != emoji {
		t.Errorf("Before(7) = %d, want %d", got, emoji)
	}

	rest := v.From(emoji)
	if diff := cmp.Diff("😃x", rest.String()); diff != "" {
		t.Errorf("From mismatch (-want +got):\n%s", diff)
	}
	if rest.Start() != emoji || rest.End() != v.End() {
		t.Errorf("From kept absolute indices wrong: [%d, %d)", rest.Start(), rest.End())
	}
	if got := rest.Text(emoji, 7); got != "😃" {
		t.Errorf("Text = %q, want 😃", got)
	}
}

func TestViewFirstAndEmpty(t *testing.T) {
	v := New("ab")
	if r, ok := v.First(); !ok || r != 'a' {
		t.Errorf("First = %q/%v, want a/true", r, ok)
	}

	empty := v.From(v.End())
	if !empty.IsEmpty() {
		t.Fatal("view at end should be empty")
	}
	if _, ok := empty.First(); ok {
		t.Error("First on empty view should report false")
	}
	if empty.Source() != "ab" {
		t.Errorf("Source = %q, want ab", empty.Source())
	}
}

func TestViewEqual(t *testing.T) {
	a := New("hello")
	b := New("hello")
	if !a.Equal(b) {
		t.Error("views over equal sources should be equal")
	}
	if a.Equal(a.From(1)) {
		t.Error("views with different windows should differ")
	}
	if !a.From(2).Equal(b.Slice(2, 5)) {
		t.Error("From(2) and Slice(2, end) should be equal")
	}
}

func TestViewSliceOutsidePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic slicing outside the view")
		}
	}()
	New("abc").From(1).Slice(0, 2)
}

func TestSets(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		in   []rune
		out  []rune
	}{
		{"whitespace", Whitespace, []rune{' ', '\n', '\t'}, []rune{'a', '1'}},
		{"digits", Digits, []rune{'0', '9', '٣'}, []rune{'a', ' '}},
		{"alphanumerics", Alphanumerics, []rune{'a', 'Z', '7', 'é'}, []rune{' ', '-', '('}},
		{"runes", Runes(";,"), []rune{';', ','}, []rune{'.'}},
		{"range", Range('a', 'c'), []rune{'a', 'b', 'c'}, []rune{'d'}},
		{"tables", Tables(unicode.Greek), []rune{'λ'}, []rune{'l'}},
		{"union", Digits.Union(Runes(".")), []rune{'1', '.'}, []rune{','}},
		{"not", Digits.Not(), []rune{'x'}, []rune{'4'}},
		{"nil", nil, nil, []rune{'a'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, r := range tt.in {
				if !tt.set.Contains(r) {
					t.Errorf("expected %q in set", r)
				}
			}
			for _, r := range tt.out {
				if tt.set.Contains(r) {
					t.Errorf("expected %q not in set", r)
				}
			}
		})
	}
}
