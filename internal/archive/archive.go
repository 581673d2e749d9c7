// Package archive keeps server-side copies of processed workbooks.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save writes data to dir/name through a temporary file so readers never
// see a partial workbook. Concurrent saves of the same name overwrite each
// other. An empty dir disables archiving and returns "".
func Save(dir, name string, data []byte) (string, error) {
	if dir == "" {
		return "", nil
	}
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid archive name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write archive copy: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move archive copy: %w", err)
	}
	return path, nil
}
