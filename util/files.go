package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// PathNotFoundError reports a deletion target that does not exist. Callers
// must not treat "already gone" as success.
type PathNotFoundError struct {
	Path string
}

// Error implements the error interface
func (e PathNotFoundError) Error() string {
	return "no file in this path: " + e.Path
}

// Delete removes a single file
func Delete(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return PathNotFoundError{Path: path}
	}
	return err
}

// RemoveTree removes a directory tree. Extracted SAFE trees can contain
// read-only files; on a permission denial every entry is made writable and
// the removal is retried once.
func RemoveTree(path string) error {
	err := os.RemoveAll(path)
	if err == nil || !errors.Is(err, fs.ErrPermission) {
		return err
	}

	filepath.WalkDir(path, func(entry string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			os.Chmod(entry, 0700)
		} else {
			os.Chmod(entry, 0600)
		}
		return nil
	})

	return os.RemoveAll(path)
}
