// Package storage provides file blob persistence for generated
// artifacts such as QR images and export files.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"seed_ledger/core/common"
)

// BlobStore persists named blobs and serves them back by URL.
type BlobStore interface {
	// Put stores the blob under name and returns its public URL.
	Put(name string, r io.Reader) (string, error)
	// Get opens a stored blob. The caller closes the reader.
	Get(name string) (io.ReadCloser, error)
	// Delete removes a stored blob. Deleting a missing blob is not an
	// error.
	Delete(name string) error
}

// FileBlobStore stores blobs on the local filesystem under a root
// directory and builds URLs from a base prefix.
type FileBlobStore struct {
	rootDir string
	baseURL string
}

// NewFileBlobStore creates the store, making the root directory if
// needed.
func NewFileBlobStore(rootDir, baseURL string) (*FileBlobStore, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Failed to create blob directory %s", rootDir), common.StatusInternalServerError, err)
	}
	return &FileBlobStore{
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// resolve maps a blob name onto the root directory. Traversal
// segments are stripped so a name can never escape the root; the
// returned relative name is what URLs are built from.
func (s *FileBlobStore) resolve(name string) (fullPath string, relName string, err error) {
	cleaned := filepath.ToSlash(filepath.Clean("/" + filepath.FromSlash(name)))
	if cleaned == "/" {
		return "", "", common.ErrInvalidInput
	}
	relName = strings.TrimPrefix(cleaned, "/")
	return filepath.Join(s.rootDir, filepath.FromSlash(relName)), relName, nil
}

func (s *FileBlobStore) Put(name string, r io.Reader) (string, error) {
	path, relName, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Failed to create blob directory", common.StatusInternalServerError, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Failed to create blob %s", name), common.StatusInternalServerError, err)
	}
	defer file.Close()
	if _, err := io.Copy(file, r); err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Failed to write blob %s", name), common.StatusInternalServerError, err)
	}
	return s.baseURL + "/" + relName, nil
}

func (s *FileBlobStore) Get(name string) (io.ReadCloser, error) {
	path, _, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrNotFound
		}
		return nil, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Failed to open blob %s", name), common.StatusInternalServerError, err)
	}
	return file, nil
}

func (s *FileBlobStore) Delete(name string) error {
	path, _, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Failed to delete blob %s", name), common.StatusInternalServerError, err)
	}
	return nil
}
