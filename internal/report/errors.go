package report

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is reported as a warning when the text has no visible
// content. The document still has one header-only page.
var ErrEmptyInput = errors.New("report: empty input")

type LayoutKind string

const (
	KindTitle    LayoutKind = "title"
	KindSubtitle LayoutKind = "subtitle"
	KindToken    LayoutKind = "token"
	KindEncoding LayoutKind = "encoding"
)

type LayoutAction string

const (
	ActionShrunk   LayoutAction = "shrunk"
	ActionClipped  LayoutAction = "clipped"
	ActionSplit    LayoutAction = "split"
	ActionReplaced LayoutAction = "replaced"
)

// LayoutError records content that did not fit and how it was degraded.
// It never aborts rendering.
type LayoutError struct {
	Kind   LayoutKind
	Action LayoutAction
	Text   string
	Limit  float64
}

func (e *LayoutError) Error() string {
	if e.Action == ActionReplaced {
		return fmt.Sprintf("report: no glyph for %q, %s with %q", abbreviate(e.Text, 40), e.Action, replacementRune)
	}
	return fmt.Sprintf("report: %s %q exceeds %.0f, %s", e.Kind, abbreviate(e.Text, 40), e.Limit, e.Action)
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
