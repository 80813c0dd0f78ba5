package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic writes data to path through a temporary file that is
// fsynced and renamed into place, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(mode))
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		// No-op once CloseAtomicallyReplace has succeeded.
		_ = pending.Cleanup()
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
