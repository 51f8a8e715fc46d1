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

// Package safe handles extracted Sentinel-2 SAFE product trees: pulling them
// out of their archives and locating band rasters inside them.
package safe

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/venicegeo/bf-s2-datacube/model"
)

// BandPair references the two rasters a tile dataset is built from
type BandPair struct {
	RedPath string
	NIRPath string
}

// TilePathNotFoundError reports a SAFE tree missing the expected layout
type TilePathNotFoundError struct {
	Path string
}

// Error implements the error interface
func (e TilePathNotFoundError) Error() string {
	return "tile path not found: " + e.Path
}

// Resolution 100 is not native; it is serviced from the 20 m folder and
// resampled by the loader.
var bandFolders = map[int]string{
	10:  "R10m",
	20:  "R20m",
	60:  "R60m",
	100: "R20m",
}

// Band identifier substrings per resolution tier. The 10 m tier carries the
// full-resolution B08 NIR band; the 20/60 m tiers only carry the narrow B8A.
var redBandIDs = map[int]string{10: "_B04", 20: "_B04", 60: "_B04", 100: "_B04"}
var nirBandIDs = map[int]string{10: "_B08", 20: "_B8A", 60: "_B8A", 100: "_B8A"}

// Fallback positions in the sorted folder listing, for archives whose band
// files do not carry the usual identifiers. These match the positions the
// conventional listings produce per tier.
var redBandPositions = map[int]int{10: 3, 20: 3, 60: 4, 100: 3}
var nirBandPositions = map[int]int{10: 4, 20: 9, 60: 11, 100: 9}

// ExtractBands locates the red and near-infrared band rasters for the given
// extracted SAFE tree and requested resolution. It returns both paths or an
// error, never a partial result.
func ExtractBands(safeDir string, resolution int) (BandPair, error) {
	if !model.ValidResolution(resolution) {
		return BandPair{}, model.UnsupportedResolutionError{Resolution: resolution}
	}

	granuleDir := filepath.Join(safeDir, "GRANULE")
	granules, err := sortedNames(granuleDir)
	if err != nil || len(granules) == 0 {
		return BandPair{}, TilePathNotFoundError{Path: granuleDir}
	}

	imageDir := filepath.Join(granuleDir, granules[0], "IMG_DATA", bandFolders[resolution])
	names, err := sortedNames(imageDir)
	if err != nil || len(names) == 0 {
		return BandPair{}, TilePathNotFoundError{Path: imageDir}
	}

	redName, ok := selectBand(names, redBandIDs[resolution], redBandPositions[resolution])
	if !ok {
		return BandPair{}, TilePathNotFoundError{Path: filepath.Join(imageDir, "*"+redBandIDs[resolution]+"*")}
	}
	nirName, ok := selectBand(names, nirBandIDs[resolution], nirBandPositions[resolution])
	if !ok {
		return BandPair{}, TilePathNotFoundError{Path: filepath.Join(imageDir, "*"+nirBandIDs[resolution]+"*")}
	}

	return BandPair{
		RedPath: filepath.Join(imageDir, redName),
		NIRPath: filepath.Join(imageDir, nirName),
	}, nil
}

// selectBand prefers a band-identifier match over the archive-order position
func selectBand(names []string, bandID string, position int) (string, bool) {
	for _, name := range names {
		if strings.Contains(name, bandID) {
			return name, true
		}
	}
	if position < len(names) {
		return names[position], true
	}
	return "", false
}

func sortedNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	sort.Strings(names)
	return names, nil
}
