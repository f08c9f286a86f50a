package report

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text into paragraphs on line breaks and greedily wraps each
// one at width characters on word boundaries. Every paragraph is followed by
// one blank line. Width is a rune count, not a measured width, so lines set
// in a proportional font end unevenly.
//
// A word longer than width is split into width-sized chunks and reported as
// a LayoutError.
func Wrap(text string, width int) ([]string, []error) {
	if width < 1 {
		width = 1
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var (
		lines    []string
		warnings []error
		cur      strings.Builder
		curLen   int
	)
	flush := func() {
		if curLen > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, para := range strings.Split(text, "\n") {
		for _, word := range strings.Fields(para) {
			n := utf8.RuneCountInString(word)
			switch {
			case n > width:
				flush()
				chunks := splitRunes(word, width)
				lines = append(lines, chunks[:len(chunks)-1]...)
				last := chunks[len(chunks)-1]
				cur.WriteString(last)
				curLen = utf8.RuneCountInString(last)
				warnings = append(warnings, &LayoutError{
					Kind:   KindToken,
					Action: ActionSplit,
					Text:   word,
					Limit:  float64(width),
				})
			case curLen == 0:
				cur.WriteString(word)
				curLen = n
			case curLen+1+n > width:
				flush()
				cur.WriteString(word)
				curLen = n
			default:
				cur.WriteByte(' ')
				cur.WriteString(word)
				curLen += 1 + n
			}
		}
		flush()
		lines = append(lines, "")
	}

	return lines, warnings
}

func splitRunes(s string, n int) []string {
	r := []rune(s)
	out := make([]string, 0, len(r)/n+1)
	for len(r) > n {
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	return append(out, string(r))
}
