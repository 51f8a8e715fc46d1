package localindex

import (
	"fmt"
	"strings"

	"github.com/venicegeo/bf-s2-datacube/localindex/db"
	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/scihub"
	"github.com/venicegeo/bf-s2-datacube/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// RecordProducts writes every fetched product into the local index so later
// runs can resolve coverage without re-querying the hub. The whole batch is
// one transaction.
func RecordProducts(ctx *Context, products []scihub.Product) error {
	tx, err := ctx.DB.Begin()
	if err != nil {
		return util.LogSimpleErr(ctx, "Could not begin DB transaction", err)
	}

	for _, product := range products {
		indexed, err := indexProductFromHubProduct(product)
		if err != nil {
			tx.Rollback()
			return util.LogSimpleErr(ctx, fmt.Sprintf("Could not index product %v", product.Title), err)
		}
		if err = db.InsertProduct(tx, indexed); err != nil {
			tx.Rollback()
			return util.LogSimpleErr(ctx, fmt.Sprintf("Could not insert product %v", product.Title), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return util.LogSimpleErr(ctx, "Could not commit product index transaction", err)
	}
	util.LogInfo(ctx, fmt.Sprintf("Recorded %v products in the local index", len(products)))
	return nil
}

func indexProductFromHubProduct(product scihub.Product) (db.Sentinel2IndexProduct, error) {
	indexed := db.Sentinel2IndexProduct{
		ProductID:       product.ID,
		Title:           product.Title,
		AcquisitionDate: product.AcquisitionDate,
		CloudCover:      product.CloudCover,
		DownloadURL:     product.DownloadURL,
	}

	// The SAFE offsets apply to the title plus its extension
	identity, err := model.ParseSafeName(product.Title + ".SAFE")
	if err != nil {
		return indexed, err
	}
	indexed.TileCode = identity.TileCode

	if product.Footprint != "" {
		bounds, err := polygonFromWKT(product.Footprint)
		if err != nil {
			return indexed, err
		}
		indexed.Bounds = bounds
	}
	return indexed, nil
}

// polygonFromWKT parses the hub's POLYGON((lon lat,...)) footprint rendering
func polygonFromWKT(wkt string) (*geojson.Polygon, error) {
	body := strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(wkt), "POLYGON"))
	if len(body) < 4 || !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return nil, fmt.Errorf("unparseable footprint %v", wkt)
	}
	body = body[1 : len(body)-1]

	rings := [][][]float64{}
	for _, rawRing := range strings.Split(body, "),") {
		rawRing = strings.Trim(strings.TrimSpace(rawRing), "()")
		ring := [][]float64{}
		for _, rawPoint := range strings.Split(rawRing, ",") {
			var lon, lat float64
			if _, err := fmt.Sscanf(strings.TrimSpace(rawPoint), "%f %f", &lon, &lat); err != nil {
				return nil, fmt.Errorf("unparseable footprint point %v: %v", rawPoint, err)
			}
			ring = append(ring, []float64{lon, lat})
		}
		rings = append(rings, ring)
	}
	return geojson.NewPolygon(rings), nil
}
