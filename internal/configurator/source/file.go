package source

import (
	"context"
	"fmt"
	"os"

	"github.com/autopeer-io/voltura/internal/configurator/core"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
)

var _ core.CatalogSource = (*File)(nil)

// File reads the catalog from a local file.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string {
	return "file:" + f.path
}

func (f *File) Load(_ context.Context) ([]model.Vehicle, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Decode(data)
}
