// Package media stores uploaded images and returns the references that
// content records keep in their image and logo fields.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidKey is returned for keys that are empty, absolute or climb out
// of the storage root.
var ErrInvalidKey = errors.New("media: invalid key")

// Store is a flat object store addressed by slash-separated keys.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns the public reference for key.
	URL(key string) string
}

// Backend names.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config selects and configures a backend.
type Config struct {
	Type       string
	LocalPath  string
	LocalURL   string
	S3Region   string
	S3Bucket   string
	S3Prefix   string
	S3Endpoint string
}

// Open builds the configured backend. An empty type means local.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Type) {
	case "", BackendLocal:
		return NewLocal(cfg.LocalPath, cfg.LocalURL)
	case BackendS3:
		return NewS3(ctx, S3Config{
			Region:   cfg.S3Region,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			Endpoint: cfg.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// NewKey returns images/YYYY/MM/<8 hex>-<sanitized name>.
func NewKey(filename string, now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("images/%04d/%02d/%s-%s", now.Year(), now.Month(), uuid.NewString()[:8], SanitizeFilename(filename))
}

// Upload stores r under a fresh key and returns its public reference.
func Upload(ctx context.Context, s Store, filename string, r io.Reader, contentType string, now time.Time) (string, error) {
	key := NewKey(filename, now)
	if err := s.Put(ctx, key, r, contentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	return s.URL(key), nil
}

// SanitizeFilename keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with '_'. Long names are cut to 100 bytes, keeping a short
// extension.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		name = ""
	}
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '-', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "file"
	}
	if len(out) > 100 {
		ext := path.Ext(string(out))
		if ext != "" && len(ext) < 10 {
			out = append(out[:100-len(ext)], ext...)
		} else {
			out = out[:100]
		}
	}
	return string(out)
}

func checkKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return ErrInvalidKey
		}
	}
	return nil
}
