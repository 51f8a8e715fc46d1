// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package datacube builds per-tile array datasets from Sentinel-2 band
// rasters and merges them into one contiguous datacube.
package datacube

import (
	"math"
	"sort"
	"time"
)

// Attributes are the metadata attached to every dataset
type Attributes struct {
	Platform        string
	ProcessingLevel string
	Source          string
	Resolution      string
}

// Dataset is an in-memory array dataset with dimensions time, lat, lon and
// the red and near-infrared bands as data variables. Band values are stored
// time-major, then latitude (north to south), then longitude (west to east).
type Dataset struct {
	Time  []time.Time
	Lat   []float64
	Lon   []float64
	Red   []float64
	NIR   []float64
	Attrs Attributes
}

// NewDataset allocates a dataset over the given coordinates with all band
// cells set to the fill value (NaN)
func NewDataset(times []time.Time, lat, lon []float64) *Dataset {
	cells := len(times) * len(lat) * len(lon)
	ds := &Dataset{
		Time: times,
		Lat:  lat,
		Lon:  lon,
		Red:  make([]float64, cells),
		NIR:  make([]float64, cells),
	}
	for i := range ds.Red {
		ds.Red[i] = math.NaN()
		ds.NIR[i] = math.NaN()
	}
	return ds
}

// Index returns the flat offset of (time t, lat i, lon j)
func (ds *Dataset) Index(t, i, j int) int {
	return (t*len(ds.Lat)+i)*len(ds.Lon) + j
}

// CoordinateVectors derives the lat/lon coordinate vectors from the raster's
// west and south bounds: longitude increases with index, latitude decreases,
// matching raster row/column ordering (north to south, west to east).
func CoordinateVectors(left, bottom float64, resolution, size int) (lat, lon []float64) {
	lat = make([]float64, size)
	lon = make([]float64, size)
	for i := 0; i < size; i++ {
		lon[i] = left + float64(i)*float64(resolution)
		lat[i] = bottom + float64(size-1-i)*float64(resolution)
	}
	return lat, lon
}

// SelLon returns a view-copy of the dataset restricted to longitudes in
// [min, max], bounds inclusive
func (ds *Dataset) SelLon(min, max float64) *Dataset {
	first := sort.SearchFloat64s(ds.Lon, min)
	last := first
	for last < len(ds.Lon) && ds.Lon[last] <= max {
		last++
	}

	out := &Dataset{
		Time:  ds.Time,
		Lat:   ds.Lat,
		Lon:   append([]float64{}, ds.Lon[first:last]...),
		Red:   make([]float64, len(ds.Time)*len(ds.Lat)*(last-first)),
		NIR:   make([]float64, len(ds.Time)*len(ds.Lat)*(last-first)),
		Attrs: ds.Attrs,
	}
	for t := range ds.Time {
		for i := range ds.Lat {
			srcRow := ds.Index(t, i, first)
			dstRow := out.Index(t, i, 0)
			copy(out.Red[dstRow:dstRow+last-first], ds.Red[srcRow:srcRow+last-first])
			copy(out.NIR[dstRow:dstRow+last-first], ds.NIR[srcRow:srcRow+last-first])
		}
	}
	return out
}

// LonRange returns the dataset's first and last longitude
func (ds *Dataset) LonRange() (float64, float64) {
	if len(ds.Lon) == 0 {
		return 0, 0
	}
	return ds.Lon[0], ds.Lon[len(ds.Lon)-1]
}
