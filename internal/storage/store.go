// Package storage keeps raw PDFs and their extracted plain text on disk,
// namespaced by filename, for reprocessing and debugging.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) pdfDir() string  { return filepath.Join(s.root, "pdfs") }
func (s *FileStore) textDir() string { return filepath.Join(s.root, "texts") }

// RawPath returns where the raw PDF for filename lives.
func (s *FileStore) RawPath(filename string) string {
	return filepath.Join(s.pdfDir(), filename)
}

// TextPath returns where the extracted-text artifact for filename lives.
func (s *FileStore) TextPath(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return filepath.Join(s.textDir(), base+".txt")
}

// SaveRaw writes the uploaded PDF bytes and returns the stored path.
func (s *FileStore) SaveRaw(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.pdfDir(), 0755); err != nil {
		return "", fmt.Errorf("create pdf dir: %w", err)
	}
	path := s.RawPath(filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// SaveText writes the extracted full text alongside the raw PDF.
func (s *FileStore) SaveText(filename, text string) (string, error) {
	if err := os.MkdirAll(s.textDir(), 0755); err != nil {
		return "", fmt.Errorf("create text dir: %w", err)
	}
	path := s.TextPath(filename)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes both artifacts for filename. Missing files are ignored; this
// is the cleanup path and must not fail on partial state.
func (s *FileStore) Remove(filename string) {
	os.Remove(s.RawPath(filename))
	os.Remove(s.TextPath(filename))
}
