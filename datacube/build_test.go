package datacube

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/safe"
	"github.com/venicegeo/bf-s2-datacube/util"
)

const safeNameULC = "S2B_MSIL2A_20200601T104619_N0214_R008_T32ULC_20200601T133231.SAFE"
const safeNameUMC = "S2B_MSIL2A_20200601T104619_N0214_R008_T32UMC_20200601T133231.SAFE"

func mockLoader(t *testing.T) func() {
	originalExtract := extractBandsFunc
	originalLoad := loadBandsFunc

	extractBandsFunc = func(safeDir string, resolution int) (safe.BandPair, error) {
		return safe.BandPair{
			RedPath: filepath.Join(safeDir, "red.jp2"),
			NIRPath: filepath.Join(safeDir, "nir.jp2"),
		}, nil
	}
	loadBandsFunc = func(ctx util.LogContext, store Store, pair safe.BandPair, id model.TileIdentity,
		resolution int, directory, platform, processingLevel string) (*Dataset, error) {
		id.Resolution = resolution
		ds := NewDataset([]time.Time{id.AcquisitionDate}, []float64{100}, []float64{0})
		return ds, store.Save(ds, id.CubeFileName(), directory)
	}

	return func() {
		extractBandsFunc = originalExtract
		loadBandsFunc = originalLoad
	}
}

func TestBuildCube(t *testing.T) {
	// Mock
	defer mockLoader(t)()
	directory := t.TempDir()
	assert.Nil(t, os.Mkdir(filepath.Join(directory, safeNameULC), 0755))
	assert.Nil(t, os.Mkdir(filepath.Join(directory, safeNameUMC), 0755))
	assert.Nil(t, os.WriteFile(filepath.Join(directory, "stray.txt"), []byte("x"), 0644))
	store := newMemStore()

	// Tested code
	err := BuildCube(&util.BasicLogContext{}, store, directory, 60, "Sentinel-2", "Level-2A")

	// Asserts
	assert.Nil(t, err)
	names, _ := store.List(directory)
	assert.Equal(t, []string{
		"datacube_2020-06-01_T32ULC_R60.nc",
		"datacube_2020-06-01_T32UMC_R60.nc",
	}, names)
	for _, safeName := range []string{safeNameULC, safeNameUMC} {
		_, statErr := os.Stat(filepath.Join(directory, safeName))
		assert.True(t, os.IsNotExist(statErr), "extracted tile %s should be removed", safeName)
	}
}

func TestBuildCube_ErrorWhenNoSafeDirs(t *testing.T) {
	// Mock
	defer mockLoader(t)()
	directory := t.TempDir()
	assert.Nil(t, os.WriteFile(filepath.Join(directory, "stray.txt"), []byte("x"), 0644))

	// Tested code
	err := BuildCube(&util.BasicLogContext{}, newMemStore(), directory, 60, "Sentinel-2", "Level-2A")

	// Asserts
	assert.NotNil(t, err)
	assert.IsType(t, NoExtractableTilesError{}, err)
}

func TestBuildCube_PropagatesLocatorError(t *testing.T) {
	// Mock
	defer mockLoader(t)()
	extractBandsFunc = func(safeDir string, resolution int) (safe.BandPair, error) {
		return safe.BandPair{}, safe.TilePathNotFoundError{Path: safeDir}
	}
	directory := t.TempDir()
	assert.Nil(t, os.Mkdir(filepath.Join(directory, safeNameULC), 0755))

	// Tested code
	err := BuildCube(&util.BasicLogContext{}, newMemStore(), directory, 60, "Sentinel-2", "Level-2A")

	// Asserts
	assert.NotNil(t, err)
	assert.IsType(t, safe.TilePathNotFoundError{}, err)
	_, statErr := os.Stat(filepath.Join(directory, safeNameULC))
	assert.Nil(t, statErr, "failed tile must not be removed")
}
