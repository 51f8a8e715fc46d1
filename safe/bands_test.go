package safe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-s2-datacube/model"
)

const testGranule = "L2A_T32ULC_A016970_20200601T104618"

var r10mNames = []string{
	"T32ULC_20200601T104619_AOT_10m.jp2",
	"T32ULC_20200601T104619_B02_10m.jp2",
	"T32ULC_20200601T104619_B03_10m.jp2",
	"T32ULC_20200601T104619_B04_10m.jp2",
	"T32ULC_20200601T104619_B08_10m.jp2",
	"T32ULC_20200601T104619_TCI_10m.jp2",
	"T32ULC_20200601T104619_WVP_10m.jp2",
}

var r20mNames = []string{
	"T32ULC_20200601T104619_AOT_20m.jp2",
	"T32ULC_20200601T104619_B02_20m.jp2",
	"T32ULC_20200601T104619_B03_20m.jp2",
	"T32ULC_20200601T104619_B04_20m.jp2",
	"T32ULC_20200601T104619_B05_20m.jp2",
	"T32ULC_20200601T104619_B06_20m.jp2",
	"T32ULC_20200601T104619_B07_20m.jp2",
	"T32ULC_20200601T104619_B11_20m.jp2",
	"T32ULC_20200601T104619_B12_20m.jp2",
	"T32ULC_20200601T104619_B8A_20m.jp2",
	"T32ULC_20200601T104619_SCL_20m.jp2",
	"T32ULC_20200601T104619_TCI_20m.jp2",
}

var r60mNames = []string{
	"T32ULC_20200601T104619_AOT_60m.jp2",
	"T32ULC_20200601T104619_B01_60m.jp2",
	"T32ULC_20200601T104619_B02_60m.jp2",
	"T32ULC_20200601T104619_B03_60m.jp2",
	"T32ULC_20200601T104619_B04_60m.jp2",
	"T32ULC_20200601T104619_B05_60m.jp2",
	"T32ULC_20200601T104619_B06_60m.jp2",
	"T32ULC_20200601T104619_B07_60m.jp2",
	"T32ULC_20200601T104619_B09_60m.jp2",
	"T32ULC_20200601T104619_B11_60m.jp2",
	"T32ULC_20200601T104619_B12_60m.jp2",
	"T32ULC_20200601T104619_B8A_60m.jp2",
	"T32ULC_20200601T104619_SCL_60m.jp2",
}

func makeSafeTree(t *testing.T) string {
	dir := t.TempDir()
	safeDir := filepath.Join(dir, "S2B_MSIL2A_20200601T104619_N0214_R008_T32ULC_20200601T133231.SAFE")
	folders := map[string][]string{"R10m": r10mNames, "R20m": r20mNames, "R60m": r60mNames}
	for folder, names := range folders {
		imageDir := filepath.Join(safeDir, "GRANULE", testGranule, "IMG_DATA", folder)
		assert.Nil(t, os.MkdirAll(imageDir, 0755))
		for _, name := range names {
			assert.Nil(t, os.WriteFile(filepath.Join(imageDir, name), []byte("jp2"), 0644))
		}
	}
	return safeDir
}

func TestExtractBands_NativeResolutions(t *testing.T) {
	// Mock
	safeDir := makeSafeTree(t)

	expected := map[int][2]string{
		10: {"B04_10m", "B08_10m"},
		20: {"B04_20m", "B8A_20m"},
		60: {"B04_60m", "B8A_60m"},
	}

	for resolution, suffixes := range expected {
		// Tested code
		pair, err := ExtractBands(safeDir, resolution)

		// Asserts
		assert.Nil(t, err)
		assert.Contains(t, pair.RedPath, suffixes[0], "wrong red band at resolution %d", resolution)
		assert.Contains(t, pair.NIRPath, suffixes[1], "wrong NIR band at resolution %d", resolution)
	}
}

func TestExtractBands_Resolution100UsesR20m(t *testing.T) {
	// Mock
	safeDir := makeSafeTree(t)

	// Tested code
	pair, err := ExtractBands(safeDir, 100)

	// Asserts
	assert.Nil(t, err)
	assert.Contains(t, pair.RedPath, filepath.Join("IMG_DATA", "R20m"))
	assert.Contains(t, pair.NIRPath, filepath.Join("IMG_DATA", "R20m"))
	assert.Contains(t, pair.RedPath, "B04_20m")
	assert.Contains(t, pair.NIRPath, "B8A_20m")
}

func TestExtractBands_PositionalFallback(t *testing.T) {
	// Mock: band files with no recognizable band identifiers
	dir := t.TempDir()
	safeDir := filepath.Join(dir, "tile.SAFE")
	imageDir := filepath.Join(safeDir, "GRANULE", testGranule, "IMG_DATA", "R10m")
	assert.Nil(t, os.MkdirAll(imageDir, 0755))
	anonymous := []string{"img_00.jp2", "img_01.jp2", "img_02.jp2", "img_03.jp2", "img_04.jp2"}
	for _, name := range anonymous {
		assert.Nil(t, os.WriteFile(filepath.Join(imageDir, name), []byte("jp2"), 0644))
	}

	// Tested code
	pair, err := ExtractBands(safeDir, 10)

	// Asserts
	assert.Nil(t, err)
	assert.Contains(t, pair.RedPath, "img_03.jp2")
	assert.Contains(t, pair.NIRPath, "img_04.jp2")
}

func TestExtractBands_ErrorWhenUnsupportedResolution(t *testing.T) {
	safeDir := makeSafeTree(t)

	_, err := ExtractBands(safeDir, 30)

	assert.NotNil(t, err)
	assert.IsType(t, model.UnsupportedResolutionError{}, err)
}

func TestExtractBands_ErrorWhenNoGranule(t *testing.T) {
	_, err := ExtractBands(filepath.Join(t.TempDir(), "missing.SAFE"), 10)

	assert.NotNil(t, err)
	assert.IsType(t, TilePathNotFoundError{}, err)
}
