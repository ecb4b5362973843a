package store

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Shred overwrites the file at path with random bytes and removes it.
// This defeats casual recovery of a deleted settings file; it makes no
// guarantees on copy-on-write or journaled filesystems.
func Shred(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, use ShredDir", path)
	}

	if err := overwrite(path, info.Size()); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// ShredDir shreds every regular file under dir, then removes the tree.
func ShredDir(dir string) error {
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			return Shred(path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to shred %s: %w", dir, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return nil
}

func overwrite(path string, size int64) error {
	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s for overwrite: %w", path, err)
	}
	defer file.Close()

	if _, err := io.CopyN(file, rand.Reader, size); err != nil {
		return fmt.Errorf("failed to overwrite %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	return nil
}
