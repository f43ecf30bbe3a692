// file: internals/services/storage/local_test.go
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads/")

	url, err := store.Put(context.Background(), "materials", "syllabus.pdf",
		strings.NewReader("pdf bytes"), 9, "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/materials/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	key := strings.TrimPrefix(url, "/uploads/")
	raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(raw))

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	// a second delete and a foreign URL are both no-ops
	assert.NoError(t, store.Delete(context.Background(), url))
	assert.NoError(t, store.Delete(context.Background(), "https://cdn.example.com/other.pdf"))
}

func TestObjectKeyKeepsExtension(t *testing.T) {
	key := ObjectKey("submissions", "Essay Final.DOCX")
	assert.True(t, strings.HasPrefix(key, "submissions/"))
	assert.True(t, strings.HasSuffix(key, ".docx"))
}
