// Package storage persists uploaded images (resume photos, avatars, blog
// thumbnails) on local disk and serves them back by public URL.
package storage

import (
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store writes uploads under a root directory and maps them to URLs below a
// public base path. Filenames embed a timestamp and a UUID so concurrent
// uploads never collide and stale browser caches never serve replaced images.
type Store struct {
	root    string
	baseURL string
}

// New creates a store rooted at dir, serving files under baseURL (for
// example "/uploads"). The directory is created if missing.
func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{root: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Root returns the directory files are written to, for serving via HTTP.
func (s *Store) Root() string {
	return s.root
}

// Save writes the payload under a fresh unique name and returns its public
// URL. The extension is derived from the declared content type.
func (s *Store) Save(kind string, contentType string, data []byte) (string, error) {
	name := fmt.Sprintf("%s-%d-%s%s", kind, time.Now().UnixMilli(), uuid.NewString(), extensionFor(contentType))
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", kind, err)
	}
	return s.baseURL + "/" + name, nil
}

// Delete removes a previously stored file given its public URL. Deleting a
// missing file is not an error; URLs outside the store are ignored.
func (s *Store) Delete(publicURL string) error {
	name := path.Base(publicURL)
	if name == "." || name == "/" || !strings.HasPrefix(publicURL, s.baseURL+"/") {
		return nil
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
