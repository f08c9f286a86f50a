package storage

import (
	"context"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
)

func TestNewDisabled(t *testing.T) {
	a, err := New(context.Background(), config.StorageConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := a.(Nop); !ok {
		t.Fatalf("New() = %T, want Nop", a)
	}
	url, err := a.Archive(context.Background(), "x.pdf", []byte("%PDF"), "application/pdf")
	if err != nil || url != "" {
		t.Errorf("Archive() = %q, %v", url, err)
	}
}

func TestObjectKey(t *testing.T) {
	ts := time.Date(2026, 3, 4, 23, 30, 0, 0, time.FixedZone("X", 3*3600))
	tests := []struct {
		prefix, name, want string
	}{
		{"reports", "abc.pdf", "reports/2026-03-04/abc.pdf"},
		{"reports", "../../etc/passwd", "reports/2026-03-04/passwd"},
		{"", "a b.pdf", "2026-03-04/a b.pdf"},
	}
	for _, tt := range tests {
		if got := objectKey(tt.prefix, ts, tt.name); got != tt.want {
			t.Errorf("objectKey(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestEscapeKey(t *testing.T) {
	if got := escapeKey("reports/2026-03-04/a b.pdf"); got != "reports/2026-03-04/a%20b.pdf" {
		t.Errorf("escapeKey() = %q", got)
	}
}
