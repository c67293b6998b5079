package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/autopeer-io/voltura/pkg/log"
)

// atomicWriteFile writes data to a temp file in the target directory, syncs
// it and renames it over filename. Readers see either the old or the new
// content, never a partial write.
func atomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(filename)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	var success bool
	defer func() {
		if !success {
			if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
				log.Warn("Failed to remove temp file", "path", tmp.Name(), "error", err)
			}
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
