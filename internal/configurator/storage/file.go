package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/autopeer-io/voltura/internal/configurator/core"
)

var _ core.KeyValueStore = (*File)(nil)

// File stores each key as "<dir>/<key>.json".
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid store key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, true, nil
}

func (f *File) Put(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	return atomicWriteFile(p, value, 0o644)
}
