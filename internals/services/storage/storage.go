// file: internals/services/storage/storage.go
package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
)

// BlobStore is the opaque attachment store. Deletes are best-effort: a missing
// blob is not an error, and callers never fail a request on Delete.
type BlobStore interface {
	// Put stores the content under a generated key and returns a public URL.
	Put(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes the blob behind a URL previously returned by Put.
	Delete(ctx context.Context, url string) error
}

// ObjectKey builds a collision-free key preserving the original extension.
func ObjectKey(dir, filename string) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i:])
	}
	return strings.Trim(dir, "/") + "/" + uuid.NewString() + ext
}

// SaveUpload is the convenience path used by controllers: open the multipart
// header, re-encode images to WebP when worthwhile, and store the result.
func SaveUpload(ctx context.Context, store BlobStore, dir string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if isConvertibleImage(contentType) {
		if data, ct, ok := convertToWebP(f, fh.Size); ok {
			name := replaceExt(fh.Filename, ".webp")
			return store.Put(ctx, dir, name, bytes.NewReader(data), int64(len(data)), ct)
		}
		// conversion failed, store the original
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return "", err
		}
	}
	return store.Put(ctx, dir, fh.Filename, f, fh.Size, contentType)
}

func replaceExt(filename, ext string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[:i] + ext
	}
	return filename + ext
}
