package localindex

import (
	"database/sql"

	"github.com/venicegeo/bf-s2-datacube/localindex/db"
	"github.com/venicegeo/bf-s2-datacube/model"
)

func getMetadata(tx *sql.Tx, ctx *Context, productID string) (model.GeoJSONFeatureCreator, error) {
	product, err := db.GetProductByID(tx, productID)
	if err != nil {
		return nil, err
	}
	return brokerResultFromProduct(ctx, *product), nil
}
