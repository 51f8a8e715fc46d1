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

// Package raster provides read-only access to band rasters through GDAL.
package raster

import (
	"fmt"
	"sync"

	"github.com/airbusgeo/godal"
)

var registerDrivers sync.Once

// Bounds are the geographic extents of a raster in its projected CRS
type Bounds struct {
	Left   float64
	Bottom float64
	Right  float64
	Top    float64
}

// Band is an open, read-only raster holding one spectral band
type Band struct {
	path    string
	dataset *godal.Dataset
}

// Open opens a band raster read-only. Every successful Open must be paired
// with a Close.
func Open(path string) (*Band, error) {
	registerDrivers.Do(godal.RegisterAll)

	dataset, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster access failed for %s: %w", path, err)
	}
	return &Band{path: path, dataset: dataset}, nil
}

// Close releases the underlying GDAL dataset
func (b *Band) Close() error {
	return b.dataset.Close()
}

// Size returns the raster's native pixel dimensions
func (b *Band) Size() (int, int) {
	structure := b.dataset.Structure()
	return structure.SizeX, structure.SizeY
}

// Bounds derives the geographic extents from the raster's affine transform
func (b *Band) Bounds() (Bounds, error) {
	transform, err := b.dataset.GeoTransform()
	if err != nil {
		return Bounds{}, fmt.Errorf("no geotransform on %s: %w", b.path, err)
	}
	structure := b.dataset.Structure()

	left := transform[0]
	top := transform[3]
	right := left + float64(structure.SizeX)*transform[1]
	bottom := top + float64(structure.SizeY)*transform[5]
	return Bounds{Left: left, Bottom: bottom, Right: right, Top: top}, nil
}

// ReadGrid reads the full raster window into a size x size buffer. When
// resample is set the read goes through GDAL's bilinear resampler, which is
// how the non-native 100 m case is produced from the 20 m band.
func (b *Band) ReadGrid(size int, resample bool) ([]float64, error) {
	structure := b.dataset.Structure()
	bands := b.dataset.Bands()
	if len(bands) == 0 {
		return nil, fmt.Errorf("no bands in raster %s", b.path)
	}

	options := []godal.BandIOOption{godal.Window(structure.SizeX, structure.SizeY)}
	if resample {
		options = append(options, godal.Resampling(godal.Bilinear))
	}

	buffer := make([]float64, size*size)
	if err := bands[0].Read(0, 0, buffer, size, size, options...); err != nil {
		return nil, fmt.Errorf("raster read failed for %s: %w", b.path, err)
	}
	return buffer, nil
}
