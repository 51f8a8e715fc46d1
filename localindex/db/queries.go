package db

import (
	"database/sql"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// InsertProduct records one fetched product, replacing any previous record
// with the same product ID
func InsertProduct(tx *sql.Tx, product Sentinel2IndexProduct) error {
	_, err := tx.Exec(`
		INSERT INTO public.products
		(product_id, title, acquisition_date, cloud_cover, tile_code, download_url, bounds)
		VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_GeomFromGeoJSON($7), 4326))
		ON CONFLICT (product_id) DO UPDATE SET
			title = EXCLUDED.title,
			acquisition_date = EXCLUDED.acquisition_date,
			cloud_cover = EXCLUDED.cloud_cover,
			tile_code = EXCLUDED.tile_code,
			download_url = EXCLUDED.download_url,
			bounds = EXCLUDED.bounds`,
		product.ProductID,
		product.Title,
		product.AcquisitionDate,
		product.CloudCover,
		product.TileCode,
		product.DownloadURL,
		product.Bounds.String(),
	)
	return err
}

// GetProductByID finds a single recorded product
func GetProductByID(tx *sql.Tx, productID string) (*Sentinel2IndexProduct, error) {
	var boundsBytes []byte
	product := Sentinel2IndexProduct{}

	rows, err := tx.Query(`
		SELECT product_id, title, acquisition_date, cloud_cover, tile_code, download_url, ST_AsGeoJSON(bounds)
		FROM public.products
		WHERE product_id=$1
		LIMIT 1`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	err = rows.Scan(&product.ProductID, &product.Title, &product.AcquisitionDate,
		&product.CloudCover, &product.TileCode, &product.DownloadURL, &boundsBytes)
	if err != nil {
		return nil, err
	}

	product.Bounds, err = geojson.PolygonFromBytes(boundsBytes)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// SearchProducts finds every recorded product intersecting the bounding box
// within the cloud-cover and acquisition-date limits
func SearchProducts(tx *sql.Tx, bbox geojson.BoundingBox, maxCloudCover float64,
	minAcquiredDate, maxAcquiredDate time.Time) ([]Sentinel2IndexProduct, error) {
	rows, err := tx.Query(`
		SELECT product_id, title, acquisition_date, cloud_cover, tile_code, download_url, ST_AsGeoJSON(bounds)
		FROM public.products
		WHERE cloud_cover <= $1
		  AND acquisition_date BETWEEN $2 AND $3
		  AND ST_Intersects(bounds, ST_MakeEnvelope($4, $5, $6, $7, 4326))
		ORDER BY acquisition_date`,
		maxCloudCover,
		minAcquiredDate,
		maxAcquiredDate,
		bbox[0], bbox[1], bbox[2], bbox[3],
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Sentinel2IndexProduct{}
	for rows.Next() {
		var boundsBytes []byte
		product := Sentinel2IndexProduct{}
		err = rows.Scan(&product.ProductID, &product.Title, &product.AcquisitionDate,
			&product.CloudCover, &product.TileCode, &product.DownloadURL, &boundsBytes)
		if err != nil {
			return nil, err
		}
		if product.Bounds, err = geojson.PolygonFromBytes(boundsBytes); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
