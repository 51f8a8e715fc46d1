package datacube

import (
	"path/filepath"
	"sort"

	"github.com/venicegeo/bf-s2-datacube/util"
)

// memStore is an in-memory Store so merge-engine behavior can be exercised
// without real file I/O
type memStore struct {
	files map[string]*Dataset
}

func newMemStore() *memStore {
	return &memStore{files: map[string]*Dataset{}}
}

func (s *memStore) Save(ds *Dataset, name, directory string) error {
	s.files[filepath.Join(directory, name)] = ds
	return nil
}

func (s *memStore) Open(path string) (*Dataset, error) {
	ds, ok := s.files[path]
	if !ok {
		return nil, StorageError{Op: "open", Path: path, Err: util.PathNotFoundError{Path: path}}
	}
	return ds, nil
}

func (s *memStore) OpenMany(paths []string) (*LazyCube, error) {
	for _, path := range paths {
		if _, ok := s.files[path]; !ok {
			return nil, StorageError{Op: "open", Path: path, Err: util.PathNotFoundError{Path: path}}
		}
	}
	return &LazyCube{store: s, paths: paths}, nil
}

func (s *memStore) Rename(oldPath, newPath string) error {
	ds, ok := s.files[oldPath]
	if !ok {
		return StorageError{Op: "rename", Path: oldPath, Err: util.PathNotFoundError{Path: oldPath}}
	}
	delete(s.files, oldPath)
	s.files[newPath] = ds
	return nil
}

func (s *memStore) Delete(path string) error {
	if _, ok := s.files[path]; !ok {
		return util.PathNotFoundError{Path: path}
	}
	delete(s.files, path)
	return nil
}

func (s *memStore) List(directory string) ([]string, error) {
	names := []string{}
	for path := range s.files {
		if filepath.Dir(path) == filepath.Clean(directory) {
			names = append(names, filepath.Base(path))
		}
	}
	sort.Strings(names)
	return names, nil
}
