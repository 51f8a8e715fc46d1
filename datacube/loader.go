package datacube

import (
	"fmt"
	"time"

	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/raster"
	"github.com/venicegeo/bf-s2-datacube/safe"
	"github.com/venicegeo/bf-s2-datacube/util"
)

// LoadBands reads the tile's red and near-infrared rasters, assembles a
// time/lat/lon dataset and persists it under the identity's canonical cube
// name. Both raster handles are released on every exit path.
func LoadBands(ctx util.LogContext, store Store, pair safe.BandPair, id model.TileIdentity,
	resolution int, directory, platform, processingLevel string) (*Dataset, error) {

	size, err := model.GridSize(resolution)
	if err != nil {
		return nil, err
	}

	red, err := raster.Open(pair.RedPath)
	if err != nil {
		return nil, err
	}
	defer red.Close()

	nir, err := raster.Open(pair.NIRPath)
	if err != nil {
		return nil, err
	}
	defer nir.Close()

	bounds, err := red.Bounds()
	if err != nil {
		return nil, err
	}
	lat, lon := CoordinateVectors(bounds.Left, bounds.Bottom, resolution, size)

	// The non-native 100 m grid is produced from the 20 m bands at 1/5 scale
	resample := resolution == 100
	redValues, err := red.ReadGrid(size, resample)
	if err != nil {
		return nil, err
	}
	nirValues, err := nir.ReadGrid(size, resample)
	if err != nil {
		return nil, err
	}

	id.Resolution = resolution
	ds := &Dataset{
		Time: []time.Time{id.AcquisitionDate},
		Lat:  lat,
		Lon:  lon,
		Red:  redValues,
		NIR:  nirValues,
		Attrs: Attributes{
			Platform:        platform,
			ProcessingLevel: processingLevel,
			Source:          util.GetSciHubURL(),
			Resolution:      model.ResolutionLabel(resolution),
		},
	}

	name := id.CubeFileName()
	if err = store.Save(ds, name, directory); err != nil {
		return nil, err
	}
	util.LogInfo(ctx, fmt.Sprintf("Built tile dataset %s (%dx%d)", name, size, size))

	return ds, nil
}
