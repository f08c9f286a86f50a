package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
)

// Archiver keeps a copy of rendered reports.
type Archiver interface {
	// Archive stores data under name and returns its URL.
	Archive(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

type s3Archiver struct {
	client *minio.Client
	bucket string
	prefix string
	host   string
	now    func() time.Time
}

// New returns an S3-backed Archiver, or a no-op one when storage is
// disabled.
func New(ctx context.Context, cfg config.StorageConfig) (Archiver, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	scheme := "http"
	if cfg.Secure {
		scheme = "https"
	}
	return &s3Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		host:   scheme + "://" + cfg.Endpoint,
		now:    time.Now,
	}, nil
}

func (s *s3Archiver) Archive(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := objectKey(s.prefix, s.now(), name)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"uploaded-at": s.now().Format(time.RFC3339)},
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.host, s.bucket, escapeKey(key)), nil
}

// objectKey groups objects by day: prefix/2006-01-02/name.
func objectKey(prefix string, t time.Time, name string) string {
	return path.Join(prefix, t.UTC().Format("2006-01-02"), path.Base("/"+name))
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// Nop discards archived data.
type Nop struct{}

func (Nop) Archive(context.Context, string, []byte, string) (string, error) {
	return "", nil
}
