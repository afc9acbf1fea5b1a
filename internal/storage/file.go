package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBlob keeps the snapshot in a single file. Writes go to a temporary file
// in the same directory and are renamed into place.
type FileBlob struct {
	path string
}

func NewFileBlob(path string) (*FileBlob, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &FileBlob{path: path}, nil
}

func (b *FileBlob) Get(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return data, nil
}

func (b *FileBlob) Put(ctx context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

func (b *FileBlob) Delete(ctx context.Context) error {
	err := os.Remove(b.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing snapshot: %w", err)
	}
	return nil
}
