package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ResolveModels returns explicit verbatim when it is non-empty. Otherwise it
// lists the immediate subdirectories of root in ascending name order;
// symlinks pointing at directories count as directories.
func ResolveModels(root string, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return append([]string(nil), explicit...), nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: video root %s", ErrNotFound, root)
		}
		return nil, fmt.Errorf("listing models in %s: %w", root, err)
	}

	// os.ReadDir returns entries sorted by file name.
	models := make([]string, 0, len(entries))
	for _, e := range entries {
		if isDir(filepath.Join(root, e.Name()), e) {
			models = append(models, e.Name())
		}
	}
	return models, nil
}

func isDir(p string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
