package report

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"unicode/utf16"
)

var rePage = regexp.MustCompile(`/Type\s*/Page[^s]`)

func uncompressed() *Renderer {
	cfg := DefaultConfig()
	cfg.Compress = false
	return New(cfg)
}

func TestRenderHelloWorld(t *testing.T) {
	doc, err := uncompressed().RenderDocument("Hello world", "Weekly Sync", "Transcription Report")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	if !bytes.HasPrefix(doc.Bytes, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header")
	}
	if doc.Pages != 1 {
		t.Errorf("Pages = %d, want 1", doc.Pages)
	}
	if n := len(rePage.FindAll(doc.Bytes, -1)); n != 1 {
		t.Errorf("page objects = %d, want 1", n)
	}
	for _, want := range []string{"(Hello world) Tj", "(Weekly Sync) Tj", "(Transcription Report) Tj"} {
		if !bytes.Contains(doc.Bytes, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", doc.Warnings)
	}
}

func TestRenderEmpty(t *testing.T) {
	doc, err := uncompressed().RenderDocument("", "Weekly Sync", "Transcription Report")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if len(doc.Bytes) == 0 {
		t.Fatal("empty output")
	}
	if doc.Pages != 1 {
		t.Errorf("Pages = %d, want 1", doc.Pages)
	}
	if n := len(rePage.FindAll(doc.Bytes, -1)); n != 1 {
		t.Errorf("page objects = %d, want 1", n)
	}
	if !bytes.Contains(doc.Bytes, []byte("(Transcription Report) Tj")) {
		t.Error("header missing")
	}
	if !hasWarning(doc.Warnings, ErrEmptyInput) {
		t.Errorf("Warnings = %v, want ErrEmptyInput", doc.Warnings)
	}
}

func TestRenderSubtitleOnFirstPageOnly(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("transcription ", 500))
	doc, err := uncompressed().RenderDocument(text, "Weekly Sync", "Transcription Report")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	if doc.Pages < 2 {
		t.Fatalf("Pages = %d, want several", doc.Pages)
	}
	if n := len(rePage.FindAll(doc.Bytes, -1)); n != doc.Pages {
		t.Errorf("page objects = %d, want %d", n, doc.Pages)
	}
	if n := bytes.Count(doc.Bytes, []byte("(Transcription Report) Tj")); n != 1 {
		t.Errorf("subtitle drawn %d times, want 1", n)
	}
	if n := bytes.Count(doc.Bytes, []byte("(Weekly Sync) Tj")); n != doc.Pages {
		t.Errorf("title drawn %d times, want %d", n, doc.Pages)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := New(DefaultConfig())
	text := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 200)

	a, err := r.Render(text, "Weekly Sync", "Transcription Report")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := r.Render(text, "Weekly Sync", "Transcription Report")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same text differ")
	}
}

func TestRenderClipsWideTitle(t *testing.T) {
	title := strings.Repeat("An extremely long meeting title ", 20)
	doc, err := uncompressed().RenderDocument("body", title, "Transcription Report")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	var le *LayoutError
	found := false
	for _, w := range doc.Warnings {
		if errors.As(w, &le) && le.Kind == KindTitle {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("Warnings = %v, want a title LayoutError", doc.Warnings)
	}
	if le.Action != ActionClipped {
		t.Errorf("Action = %v, want %v", le.Action, ActionClipped)
	}
	if !bytes.Contains(doc.Bytes, []byte("...) Tj")) {
		t.Error("clipped title has no ellipsis")
	}
}

func TestRenderShrinksSlightlyWideTitle(t *testing.T) {
	r := uncompressed()
	// Wider than the frame at 18pt but narrow enough for a smaller size.
	title := strings.Repeat("M", 38)
	doc, err := r.RenderDocument("body", title, "")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	var le *LayoutError
	for _, w := range doc.Warnings {
		if errors.As(w, &le) {
			break
		}
	}
	if le == nil || le.Action != ActionShrunk {
		t.Fatalf("Warnings = %v, want a shrunk LayoutError", doc.Warnings)
	}
	if !bytes.Contains(doc.Bytes, []byte("("+title+") Tj")) {
		t.Error("shrunk title was altered")
	}
}

func TestRenderDrawsBodyAtCursor(t *testing.T) {
	b, err := uncompressed().Render("one\ntwo", "", "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// "one", paragraph blank line, "two": baselines 692, 676, 660.
	for _, want := range []string{"BT 50.00 692.00 Td (one) Tj", "BT 50.00 660.00 Td (two) Tj"} {
		if !bytes.Contains(b, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

// utf16Tj is the text operand fpdf writes for s in a UTF-8 font.
func utf16Tj(s string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('(')
	for _, u := range utf16.Encode([]rune(s)) {
		for _, c := range []byte{byte(u >> 8), byte(u)} {
			switch c {
			case '\\', '(', ')':
				buf.WriteByte('\\')
			case '\r':
				buf.WriteString(`\r`)
				continue
			}
			buf.WriteByte(c)
		}
	}
	buf.WriteString(") Tj")
	return buf.Bytes()
}

func TestRenderCoreFontLatin1(t *testing.T) {
	doc, err := uncompressed().RenderDocument("Grüße aus Köln, café", "Réunion", "Transcription Report")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", doc.Warnings)
	}
	if bytes.Contains(doc.Bytes, []byte("/BaseFont /utf8")) {
		t.Error("Windows-1252 text switched to the embedded font")
	}
	if !bytes.Contains(doc.Bytes, []byte("(Gr\xfc\xdfe aus K\xf6ln, caf\xe9) Tj")) {
		t.Error("body not drawn in Windows-1252")
	}
}

func TestRenderUnicode(t *testing.T) {
	doc, err := uncompressed().RenderDocument("Привет, мир. Καλημέρα", "Совещание", "Transcription Report")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", doc.Warnings)
	}
	if !bytes.Contains(doc.Bytes, []byte("/BaseFont /utf8dejavu")) {
		t.Error("embedded Unicode font not used")
	}
	for _, want := range []string{"Привет, мир. Καλημέρα", "Совещание", "Transcription Report"} {
		if !bytes.Contains(doc.Bytes, utf16Tj(want)) {
			t.Errorf("output missing text %q", want)
		}
	}
}

func TestRenderReplacesUndrawableRunes(t *testing.T) {
	doc, err := uncompressed().RenderDocument("会议 记录 你好", "周会", "")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	var le *LayoutError
	for _, w := range doc.Warnings {
		if errors.As(w, &le) && le.Kind == KindEncoding {
			break
		}
		le = nil
	}
	if le == nil {
		t.Fatalf("Warnings = %v, want an encoding LayoutError", doc.Warnings)
	}
	if le.Action != ActionReplaced {
		t.Errorf("Action = %q, want %q", le.Action, ActionReplaced)
	}
	if le.Text != "周会议记录你好" {
		t.Errorf("Text = %q, want the missing runes in order", le.Text)
	}
	for _, want := range []string{"?? ?? ??", "??"} {
		if !bytes.Contains(doc.Bytes, utf16Tj(want)) {
			t.Errorf("output missing replacement text %q", want)
		}
	}
}

func TestRenderUnicodeIsDeterministic(t *testing.T) {
	r := New(DefaultConfig())
	a, err := r.Render("Привет мир", "Совещание", "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := r.Render("Привет мир", "Совещание", "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("equal input produced different bytes")
	}
}

func TestRenderKeepsLinesAboveBottomMargin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Compress = false
	cfg.Geometry.BottomMargin = 750
	r := New(cfg)

	if err := r.cfg.Geometry.Validate(); err != nil {
		t.Fatalf("effective geometry invalid: %v", err)
	}
	doc, err := r.RenderDocument(strings.Repeat("line\n\n", 100), "", "")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if doc.Pages < 2 || doc.Pages > 10 {
		t.Errorf("Pages = %d, want a normal pagination", doc.Pages)
	}
	for _, p := range doc.Layout.Pages {
		for _, l := range p.Lines {
			if l.Y < r.cfg.Geometry.BottomMargin {
				t.Fatalf("page %d line %q at y=%v, below bottom margin %v", p.Index, l.Text, l.Y, r.cfg.Geometry.BottomMargin)
			}
		}
	}
}
