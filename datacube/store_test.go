package datacube

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-s2-datacube/util"
)

func TestFileStoreRoundTrip(t *testing.T) {
	// Mock
	store := NewFileStore()
	directory := t.TempDir()
	ds := newTestDataset(t, 0)

	// Tested code
	saveErr := store.Save(ds, "datacube_2020-06-01_T32ULC_R100.nc", directory)
	loaded, openErr := store.Open(filepath.Join(directory, "datacube_2020-06-01_T32ULC_R100.nc"))

	// Asserts
	assert.Nil(t, saveErr)
	assert.Nil(t, openErr)
	assert.Equal(t, ds.Time, loaded.Time)
	assert.Equal(t, ds.Lat, loaded.Lat)
	assert.Equal(t, ds.Lon, loaded.Lon)
	assert.Equal(t, ds.Red, loaded.Red)
	assert.Equal(t, ds.NIR, loaded.NIR)
}

func TestFileStoreOpen_ErrorWhenMissing(t *testing.T) {
	store := NewFileStore()

	_, err := store.Open(filepath.Join(t.TempDir(), "nope.nc"))

	assert.NotNil(t, err)
	assert.IsType(t, StorageError{}, err)
}

func TestFileStoreOpenManyAndConcat(t *testing.T) {
	// Mock
	store := NewFileStore()
	directory := t.TempDir()
	assert.Nil(t, store.Save(newTestDataset(t, 0), "a.nc", directory))
	assert.Nil(t, store.Save(newTestDataset(t, 300), "b.nc", directory))

	// Tested code
	lazy, err := store.OpenMany([]string{
		filepath.Join(directory, "a.nc"),
		filepath.Join(directory, "b.nc"),
	})
	assert.Nil(t, err)
	cube, err := lazy.Concat(NewExecContext(2))

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, cube.Lon, 7)
	assert.Len(t, cube.Time, 1)
}

func TestFileStoreOpenMany_ErrorWhenAnyMissing(t *testing.T) {
	store := NewFileStore()
	directory := t.TempDir()
	assert.Nil(t, store.Save(newTestDataset(t, 0), "a.nc", directory))

	_, err := store.OpenMany([]string{
		filepath.Join(directory, "a.nc"),
		filepath.Join(directory, "b.nc"),
	})

	assert.NotNil(t, err)
}

func TestFileStoreRename(t *testing.T) {
	// Mock
	store := NewFileStore()
	directory := t.TempDir()
	assert.Nil(t, store.Save(newTestDataset(t, 0), "a.nc", directory))

	// Tested code
	err := store.Rename(filepath.Join(directory, "a.nc"), filepath.Join(directory, "merged_cube.nc"))

	// Asserts
	assert.Nil(t, err)
	names, listErr := store.List(directory)
	assert.Nil(t, listErr)
	assert.Equal(t, []string{"merged_cube.nc"}, names)
}

func TestFileStoreDelete_ErrorWhenMissing(t *testing.T) {
	store := NewFileStore()

	err := store.Delete(filepath.Join(t.TempDir(), "nope.nc"))

	assert.NotNil(t, err)
	assert.IsType(t, util.PathNotFoundError{}, err)
}

func TestFileStoreList_SortedFilesOnly(t *testing.T) {
	// Mock
	store := NewFileStore()
	directory := t.TempDir()
	assert.Nil(t, store.Save(newTestDataset(t, 0), "b.nc", directory))
	assert.Nil(t, store.Save(newTestDataset(t, 0), "a.nc", directory))
	assert.Nil(t, os.Mkdir(filepath.Join(directory, "sub"), 0755))

	// Tested code
	names, err := store.List(directory)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, []string{"a.nc", "b.nc"}, names)
}
