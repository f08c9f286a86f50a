package report

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 90, nil},
		{"whitespace only", " \n\t\n ", 90, nil},
		{"single line", "Hello world", 90, []string{"Hello world", ""}},
		{"paragraphs", "first\nsecond", 90, []string{"first", "", "second", ""}},
		{"crlf paragraphs", "first\r\nsecond", 90, []string{"first", "", "second", ""}},
		{"empty paragraph", "a\n\nb", 90, []string{"a", "", "", "b", ""}},
		{"wraps at width", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc", ""}},
		{"exact width", "aaa bbb", 7, []string{"aaa bbb", ""}},
		{"collapses spaces", "a    b", 90, []string{"a b", ""}},
		{"runes not bytes", "ééé ééé", 7, []string{"ééé ééé", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := Wrap(tt.text, tt.width)
			if len(warnings) != 0 {
				t.Errorf("Wrap() warnings = %v, want none", warnings)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("Wrap() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapSplitsLongToken(t *testing.T) {
	token := strings.Repeat("x", 200)
	lines, warnings := Wrap("before "+token+" after", 90)

	want := []string{"before", strings.Repeat("x", 90), strings.Repeat("x", 90), strings.Repeat("x", 20) + " after", ""}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("Wrap() = %q, want %q", lines, want)
	}

	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	var le *LayoutError
	if !errors.As(warnings[0], &le) {
		t.Fatalf("warning %T is not a *LayoutError", warnings[0])
	}
	if le.Kind != KindToken || le.Action != ActionSplit {
		t.Errorf("LayoutError = %+v, want token/split", le)
	}
}

func TestWrapKeepsWordsContiguous(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const letters = "abcdefghijklmnopqrstuvwxyzäöü"
	alphabet := []rune(letters)

	for round := 0; round < 200; round++ {
		words := make([]string, 1+rng.Intn(400))
		for i := range words {
			w := make([]rune, 1+rng.Intn(15))
			for j := range w {
				w[j] = alphabet[rng.Intn(len(alphabet))]
			}
			words[i] = string(w)
		}

		lines, warnings := Wrap(strings.Join(words, " "), 90)
		if len(warnings) != 0 {
			t.Fatalf("round %d: unexpected warnings %v", round, warnings)
		}

		var got []string
		for _, line := range lines {
			if n := utf8.RuneCountInString(line); n > 90 {
				t.Fatalf("round %d: line %q has %d chars", round, line, n)
			}
			got = append(got, strings.Fields(line)...)
		}
		if strings.Join(got, " ") != strings.Join(words, " ") {
			t.Fatalf("round %d: words reordered or split", round)
		}
	}
}
