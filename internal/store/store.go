package store

import (
	"fmt"
	"os"
)

// Exists reports whether path exists as a regular file.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Not an error condition: a missing settings file means first run.
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}

	if info.IsDir() {
		return false, fmt.Errorf("%s exists but is a directory", path)
	}

	return true, nil
}

// ReadFile reads the whole file at path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path with owner-only permissions. The write is
// not atomic.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates dir (and parents) with owner-only permissions if it
// does not already exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}
