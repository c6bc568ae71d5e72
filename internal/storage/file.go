package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/javiermolinar/satchel/internal/item"
)

// FileStore is a DurableStore backed by a single JSON save file.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at path. The file and its parent
// directory are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the save file location.
func (f *FileStore) Path() string {
	return f.path
}

// ReadInventory reads and decodes the save file.
func (f *FileStore) ReadInventory(_ context.Context) ([]item.Item, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("reading save file: %w", err)
	}
	return Decode(data)
}

// WriteInventory replaces the save file. The new content is written to a
// temporary file and renamed into place.
func (f *FileStore) WriteInventory(_ context.Context, items []item.Item) error {
	data, err := Encode(items)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".inventory-*.json")
	if err != nil {
		return fmt.Errorf("creating temp save file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing save file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replacing save file: %w", err)
	}
	return nil
}
