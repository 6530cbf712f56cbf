package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TableReader turns raw document bytes into tables.
type TableReader interface {
	ProcessBytes(data []byte, filename string) ([]Table, error)
}

// Source is a document on disk.
type Source struct {
	Path string
}

// File returns the absolute path to the document, expanding ~.
func (s Source) File() (string, error) {
	if strings.HasPrefix(s.Path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, s.Path[2:]), nil
	}
	return s.Path, nil
}

// Tables reads the document and uses the provided reader to return its tables.
func (s Source) Tables(r TableReader) ([]Table, error) {
	filePath, err := s.File()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", filePath, err)
	}

	tables, err := r.ProcessBytes(data, filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to process document %s: %w", filePath, err)
	}

	return tables, nil
}
