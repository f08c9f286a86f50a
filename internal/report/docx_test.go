package report

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func documentXML(t *testing.T, b []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("not a zip archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(body)
	}
	t.Fatal("word/document.xml missing")
	return ""
}

func TestRenderDOCX(t *testing.T) {
	b, err := RenderDOCX("Weekly Sync", "Transcription Report", "First paragraph.\r\n\r\nSecond paragraph.", "## Decisions\n- ship **friday**")
	if err != nil {
		t.Fatalf("RenderDOCX() error = %v", err)
	}

	xml := documentXML(t, b)
	for _, want := range []string{"Weekly Sync", "Transcription Report", "First paragraph.", "Second paragraph.", "Summary", "Decisions", "friday"} {
		if !strings.Contains(xml, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
	if strings.Contains(xml, "**") {
		t.Errorf("markdown markers leaked into the document")
	}
}

func TestRenderDOCXWithoutSummary(t *testing.T) {
	b, err := RenderDOCX("", "", "only text", "  ")
	if err != nil {
		t.Fatalf("RenderDOCX() error = %v", err)
	}
	xml := documentXML(t, b)
	if strings.Contains(xml, "Summary") {
		t.Errorf("blank summary produced a Summary section")
	}
	if !strings.Contains(xml, "only text") {
		t.Errorf("transcript missing")
	}
}

func TestRenderDOCXSubtitle(t *testing.T) {
	b, err := RenderDOCX("Weekly Sync", "Board Minutes", "text", "")
	if err != nil {
		t.Fatalf("RenderDOCX() error = %v", err)
	}
	xml := documentXML(t, b)
	if !strings.Contains(xml, "Board Minutes") {
		t.Errorf("document.xml missing subtitle")
	}
	if strings.Contains(xml, "Transcription Report") {
		t.Errorf("document.xml has the default subtitle")
	}
}

func TestHeadingSize(t *testing.T) {
	tests := []struct {
		level int
		want  uint64
	}{
		{1, 16}, {2, 15}, {3, 14}, {4, docxFontSize}, {6, docxFontSize},
	}
	for _, tt := range tests {
		if got := headingSize(tt.level); got != tt.want {
			t.Errorf("headingSize(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestCleanMarkdownInline(t *testing.T) {
	if got := cleanMarkdownInline("**a** __b__ `c`"); got != "a b c" {
		t.Errorf("cleanMarkdownInline() = %q", got)
	}
}
