package localindex

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/venicegeo/bf-s2-datacube/localindex/db"
	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/util"
	"github.com/venicegeo/geojson-go/geojson"
)

func discoverProducts(tx *sql.Tx, ctx *Context, bbox geojson.BoundingBox,
	maxCloudCover float64, minAcquiredDate time.Time, maxAcquiredDate time.Time) (model.GeoJSONFeatureCollectionCreator, error) {
	products, err := db.SearchProducts(tx, bbox, maxCloudCover, minAcquiredDate, maxAcquiredDate)
	if err != nil {
		return nil, err
	}

	multiResult := model.MultiBrokerResult{
		FeatureCreators: make([]model.GeoJSONFeatureCreator, len(products)),
	}
	for i, product := range products {
		multiResult.FeatureCreators[i] = brokerResultFromProduct(ctx, product)
	}

	return multiResult, nil
}

func brokerResultFromProduct(ctx *Context, product db.Sentinel2IndexProduct) model.IndexedSentinelBrokerResult {
	result := model.IndexedSentinelBrokerResult{
		BasicBrokerResult: model.BasicBrokerResult{
			ID:           product.ProductID,
			Geometry:     product.Bounds,
			CloudCover:   product.CloudCover,
			Resolution:   10,
			AcquiredDate: product.AcquisitionDate,
			SensorName:   "Sentinel-2",
			FileFormat:   model.JPEG2000,
		},
	}

	bands, err := model.NewSentinelS3Bands(util.GetSentinelHost(), product.Title)
	if err != nil {
		util.LogAlert(ctx, fmt.Sprintf("Could not derive band URLs for %v: %v", product.Title, err))
		return result
	}
	result.SentinelS3Bands = *bands
	return result
}
