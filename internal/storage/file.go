// Package storage implements the persistence boundary: the document file
// the store is constructed from, the sqlite-backed pending-trigger
// registry, and a watcher that refreshes the in-memory snapshot when the
// document changes externally.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"godo/internal/codec"
)

// File reads and writes the store document at a fixed path.
type File struct {
	path string
}

// NewFile creates a File for the given path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the document path.
func (f *File) Path() string { return f.path }

// Load parses the document. A missing file yields an empty document rather
// than an error, so first runs start from a clean store.
func (f *File) Load() (codec.Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return codec.Document{Version: codec.Version, LastModified: time.Now()}, nil
		}
		return codec.Document{}, fmt.Errorf("read %s: %w", f.path, err)
	}
	return codec.Unmarshal(data)
}

// Save writes the document atomically: marshal to a temp file in the same
// directory, then rename over the target.
func (f *File) Save(doc codec.Document) error {
	data, err := codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".godo-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close document: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
