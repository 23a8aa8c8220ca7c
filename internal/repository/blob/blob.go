// Package blob stages uploaded files behind local "blob:<key>" URLs until
// they are uploaded to the creative API or revoked.
package blob

import (
	"fmt"
	"path"
	"strings"

	"creative-editor/internal/domain"

	"github.com/google/uuid"
)

// Meta describes a staged blob.
type Meta struct {
	Filename    string
	ContentType string
	Size        int64
}

func IsLocal(url string) bool {
	return strings.HasPrefix(url, domain.BlobURLPrefix)
}

// NewKey returns a fresh object key keeping the file extension.
func NewKey(filename string) string {
	return domain.PathPrefixBlob + uuid.NewString() + strings.ToLower(path.Ext(filename))
}

func URL(key string) string {
	return domain.BlobURLPrefix + key
}

// KeyFromURL extracts the object key from a blob URL.
func KeyFromURL(url string) (string, error) {
	if !IsLocal(url) {
		return "", fmt.Errorf("%w: %q", ErrNotLocalBlob, url)
	}
	key := strings.TrimPrefix(url, domain.BlobURLPrefix)
	if !strings.HasPrefix(key, domain.PathPrefixBlob) || len(key) == len(domain.PathPrefixBlob) {
		return "", fmt.Errorf("%w: %q", ErrNotLocalBlob, url)
	}
	return key, nil
}
