package media

import (
	"fmt"
	"io"
	"os"
)

// Upload is a media file staged in transient storage. The caller must call
// Cleanup once the file is no longer needed.
type Upload struct {
	Path string
	Kind Kind
	Ext  string
	Size int64
}

func (u *Upload) Cleanup() error {
	if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Ingester writes uploaded blobs to a temp directory.
type Ingester struct {
	dir     string
	allowed map[string]bool
}

// NewIngester accepts files with the given extensions into dir. An empty dir
// means os.TempDir.
func NewIngester(dir string, allowedExtensions []string) *Ingester {
	allowed := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[NormalizeExtension(ext)] = true
	}
	return &Ingester{dir: dir, allowed: allowed}
}

// Ingest stores r under a unique name with the given extension. When kind is
// unknown it is derived from the extension.
func (i *Ingester) Ingest(r io.Reader, kind Kind, ext string) (*Upload, error) {
	ext = NormalizeExtension(ext)
	if ext == "" || !i.allowed[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	if kind == KindUnknown {
		kind = KindFromExtension(ext)
	}
	if kind == KindUnknown {
		return nil, &UnsupportedMediaError{Path: "upload." + ext, Reason: "neither audio nor video"}
	}

	f, err := os.CreateTemp(i.dir, "upload-*."+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("write upload: %w", err)
	}

	return &Upload{Path: f.Name(), Kind: kind, Ext: ext, Size: n}, nil
}
