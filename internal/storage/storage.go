package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded blobs and hands back a retrievable URL.
// Removal is best-effort: callers log failures and carry on, a missing
// blob must never fail the owning mutation.
type Store interface {
	// Save writes the blob under the given category (e.g. "avatars",
	// "images") with a generated name keeping originalName's extension,
	// and returns the public URL.
	Save(category, originalName string, r io.Reader) (string, error)
	Remove(url string) error
}

// URLPrefix is where stored blobs are served from.
const URLPrefix = "/static"

// LocalStore is a Store backed by a directory on local disk, served as
// static files by the HTTP layer.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at dir.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStore{root: dir}, nil
}

// Root returns the directory blobs are written to.
func (s *LocalStore) Root() string {
	return s.root
}

// Save writes the blob to disk under a fresh unique name.
func (s *LocalStore) Save(category, originalName string, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create category dir %s: %w", dir, err)
	}

	// Unique name so two users uploading "photo.jpg" never collide.
	name := uuid.New().String() + filepath.Ext(originalName)
	path := filepath.Join(dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob %s: %w", path, err)
	}
	return URLPrefix + "/" + category + "/" + name, nil
}

// Remove deletes the blob behind a URL previously returned by Save.
func (s *LocalStore) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, URLPrefix+"/")
	if !ok {
		return fmt.Errorf("url %s is not under %s", url, URLPrefix)
	}
	path := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove blob %s: %w", path, err)
	}
	return nil
}
