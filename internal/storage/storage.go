package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes uploaded files under a single root directory and hands back
// relative references of the form "uploads/<name>". The same references are
// served statically by the router, so they are safe to persist as-is.
type Store struct {
	root string
}

// New creates a store rooted at the given path, creating it if needed.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the directory files are written to, for static serving.
func (s *Store) Root() string {
	return s.root
}

// Save persists one uploaded file under a fresh name, keeping the original
// extension, and returns its relative reference.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return "uploads/" + name, nil
}
