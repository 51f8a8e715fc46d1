package localindex

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-s2-datacube/localindex/db"
	"github.com/venicegeo/bf-s2-datacube/util"
	"github.com/venicegeo/geojson-go/geojson"
)

func TestBrokerResultFromProduct(t *testing.T) {
	// Mock
	os.Setenv(util.SENTINEL_HOST, "https://sentinel.example.com")
	defer os.Unsetenv(util.SENTINEL_HOST)
	product := db.Sentinel2IndexProduct{
		ProductID:       "aaaa-1111",
		Title:           "S2B_MSIL2A_20200601T104619_N0214_R008_T32ULC_20200601T133231",
		AcquisitionDate: time.Date(2020, 6, 1, 10, 46, 19, 0, time.UTC),
		CloudCover:      18.2,
		TileCode:        "T32ULC",
		Bounds:          geojson.NewPolygon([][][]float64{{{7.5, 47.8}, {8.9, 47.8}, {8.9, 48.8}, {7.5, 48.8}, {7.5, 47.8}}}),
	}

	// Tested code
	result := brokerResultFromProduct(&Context{}, product)
	feature, err := result.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "aaaa-1111", feature.IDStr())
	assert.Equal(t, 18.2, feature.Properties["cloudCover"])
	bands, ok := feature.Properties["bands"].(map[string]string)
	assert.True(t, ok, "band URLs must be attached")
	assert.Contains(t, bands["red"], "https://sentinel.example.com/tiles/32/U/LC/2020/6/1/0/B04.jp2")
}

func TestBrokerResultFromProduct_NoBandsOnUnparseableTitle(t *testing.T) {
	// Mock
	product := db.Sentinel2IndexProduct{
		ProductID: "bbbb-2222",
		Title:     "not-a-sentinel-title",
		Bounds:    geojson.NewPolygon([][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}),
	}

	// Tested code
	result := brokerResultFromProduct(&Context{}, product)
	feature, err := result.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.Empty(t, result.SentinelS3Bands.Bands)
	assert.NotNil(t, feature)
}
