package datacube

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"sort"

	"github.com/venicegeo/bf-s2-datacube/util"
)

// Store is the durable storage capability the pipeline persists datasets
// through. The on-disk container format is the store's own business; the
// merge engine only relies on names round-tripping.
type Store interface {
	// Save writes a dataset to a named container file in the directory
	Save(ds *Dataset, name, directory string) error
	// Open reads one persisted dataset back into memory
	Open(path string) (*Dataset, error)
	// OpenMany opens multiple persisted datasets as one lazily-evaluated view
	OpenMany(paths []string) (*LazyCube, error)
	// Rename moves a persisted dataset to a new path
	Rename(oldPath, newPath string) error
	// Delete removes a persisted dataset; a missing target is an error
	Delete(path string) error
	// List returns the file names currently present in the directory
	List(directory string) ([]string, error)
}

// LazyCube is a deferred multi-file view; nothing is read until Concat
type LazyCube struct {
	store Store
	paths []string
}

// Paths returns the member file paths in concatenation order
func (lc *LazyCube) Paths() []string {
	return lc.paths
}

// Concat loads every member dataset and combines them along time and the
// cumulative coordinate grid. Loading is fanned out over the execution
// context; the combine itself is sequential in path order, so the result is
// identical to a single-threaded concatenation.
func (lc *LazyCube) Concat(ec *ExecContext) (*Dataset, error) {
	datasets := make([]*Dataset, len(lc.paths))
	err := ec.Do(len(lc.paths), func(i int) error {
		ds, err := lc.store.Open(lc.paths[i])
		if err != nil {
			return err
		}
		datasets[i] = ds
		return nil
	})
	if err != nil {
		return nil, err
	}
	return CombineByCoords(datasets)
}

// FileStore persists datasets as gob-encoded container files
type FileStore struct{}

// NewFileStore creates a file-backed store
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Save implements the Store interface
func (s *FileStore) Save(ds *Dataset, name, directory string) error {
	path := filepath.Join(directory, name)
	file, err := os.Create(path)
	if err != nil {
		return StorageError{Op: "save", Path: path, Err: err}
	}
	defer file.Close()

	if err = gob.NewEncoder(file).Encode(ds); err != nil {
		return StorageError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Open implements the Store interface
func (s *FileStore) Open(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, StorageError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	ds := &Dataset{}
	if err = gob.NewDecoder(file).Decode(ds); err != nil {
		return nil, StorageError{Op: "open", Path: path, Err: err}
	}
	return ds, nil
}

// OpenMany implements the Store interface
func (s *FileStore) OpenMany(paths []string) (*LazyCube, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return nil, StorageError{Op: "open", Path: path, Err: err}
		}
	}
	return &LazyCube{store: s, paths: paths}, nil
}

// Rename implements the Store interface
func (s *FileStore) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return StorageError{Op: "rename", Path: oldPath, Err: err}
	}
	return nil
}

// Delete implements the Store interface
func (s *FileStore) Delete(path string) error {
	return util.Delete(path)
}

// List implements the Store interface
func (s *FileStore) List(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, StorageError{Op: "list", Path: directory, Err: err}
	}
	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
