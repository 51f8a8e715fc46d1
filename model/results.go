package model

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// BasicBrokerResult holds the fields common to all single product results
type BasicBrokerResult struct {
	ID           string
	Geometry     interface{}
	CloudCover   float64
	Resolution   float64
	AcquiredDate time.Time
	SensorName   string
	FileFormat   BrokerFileFormat
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (br BasicBrokerResult) GeoJSONFeature() (*geojson.Feature, error) {
	f := geojson.NewFeature(br.Geometry, br.ID, map[string]interface{}{
		"cloudCover":   br.CloudCover,
		"resolution":   br.Resolution,
		"acquiredDate": br.AcquiredDate.Format(StandardTimeLayout),
		"sensorName":   br.SensorName,
		"fileFormat":   string(br.FileFormat),
	})
	f.Bbox = f.ForceBbox()
	return f, nil
}

// IndexedSentinelBrokerResult represents a local-index result referencing the
// public Sentinel-2 archive, requiring no activation
type IndexedSentinelBrokerResult struct {
	BasicBrokerResult
	SentinelS3Bands
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (result IndexedSentinelBrokerResult) GeoJSONFeature() (*geojson.Feature, error) {
	feature, err := result.BasicBrokerResult.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	if err = result.SentinelS3Bands.Apply(feature); err != nil {
		return nil, err
	}

	return feature, nil
}

// MultiBrokerResult is a container type for bundling multiple results together,
// e.g. as results from a search endpoint
type MultiBrokerResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiBrokerResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
