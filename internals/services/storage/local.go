// file: internals/services/storage/local.go
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps blobs on disk under a base directory and serves them under
// a public prefix (wired as a static route in main).
type LocalStore struct {
	BaseDir   string
	PublicURL string // e.g. "/uploads"
}

func NewLocalStore(baseDir, publicURL string) *LocalStore {
	return &LocalStore{BaseDir: baseDir, PublicURL: strings.TrimRight(publicURL, "/")}
}

func (s *LocalStore) Put(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := ObjectKey(dir, filename)
	full := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return s.PublicURL + "/" + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.PublicURL+"/") {
		return nil // not ours, nothing to do
	}
	key := strings.TrimPrefix(url, s.PublicURL+"/")
	err := os.Remove(filepath.Join(s.BaseDir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
