package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBlobStore_PutGetDelete(t *testing.T) {
	store, err := NewFileBlobStore(t.TempDir(), "http://localhost:8080/static/")
	require.NoError(t, err)

	url, err := store.Put("qr/record-1.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/static/qr/record-1.png", url)

	reader, err := store.Get("qr/record-1.png")
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	reader.Close()
	assert.Equal(t, "png-bytes", string(content))

	require.NoError(t, store.Delete("qr/record-1.png"))

	_, err = store.Get("qr/record-1.png")
	assert.Error(t, err)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete("qr/record-1.png"))
}

func TestFileBlobStore_RejectsEscapingNames(t *testing.T) {
	store, err := NewFileBlobStore(t.TempDir(), "http://localhost:8080/static")
	require.NoError(t, err)

	_, err = store.Put("", strings.NewReader("x"))
	assert.Error(t, err)

	// Path traversal stays inside the root.
	url, err := store.Put("../escape.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/static/escape.txt", url)

	reader, err := store.Get("../escape.txt")
	require.NoError(t, err)
	reader.Close()
}
