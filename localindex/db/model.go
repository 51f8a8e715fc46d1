package db

import (
	"database/sql"
	"time"

	"github.com/venicegeo/bf-s2-datacube/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// Sentinel2IndexProduct is one fetched product recorded in the local index
type Sentinel2IndexProduct struct {
	ProductID       string
	Title           string
	AcquisitionDate time.Time
	CloudCover      float64
	TileCode        string
	DownloadURL     string
	Bounds          *geojson.Polygon
}
