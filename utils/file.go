package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path, creating the parent directory if needed
// and overwriting any existing file.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
