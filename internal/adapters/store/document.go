// Package store provides durable whole-document persistence for the
// monitor's state. Each record is one JSON file replaced atomically on
// every save, so a crash never leaves a half-written document behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const documentMode = 0o644

// Document persists a single value as one JSON file. The backing medium
// is swappable behind Load/Save; this implementation writes a sibling
// temp file and renames it over the target.
type Document struct {
	path string
}

// NewDocument creates a document store backed by the given file path.
func NewDocument(path string) *Document {
	return &Document{path: path}
}

// Load decodes the document into v. A missing file is not an error: v is
// left untouched and callers proceed with their zero state.
func (d *Document) Load(v any) error {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrDecode, d.path, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, d.path, err)
	}
	return nil
}

// Save replaces the document with the encoding of v. The write goes to a
// temp file in the same directory first so the rename is atomic on POSIX
// filesystems.
func (d *Document) Save(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, d.path, err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, d.path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, d.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrWrite, d.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrWrite, d.path, err)
	}
	if err := os.Chmod(tmpName, documentMode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrWrite, d.path, err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrWrite, d.path, err)
	}
	return nil
}
