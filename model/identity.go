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

package model

import (
	"fmt"
	"strings"
	"time"
)

// ISODateFormat is the date layout used inside cube file names
const ISODateFormat = "2006-01-02"

const safeDateFormat = "20060102"

// Offsets into a Sentinel-2 SAFE product name, per the ESA naming convention.
// Example: S2B_MSIL2A_20200601T104619_N0214_R008_T32ULC_20200601T133231.SAFE
const (
	safeDateOffset = 11
	safeDateLen    = 8
	safeTileOffset = 38
	safeTileLen    = 6
	safeNameMinLen = safeTileOffset + safeTileLen
)

// CubeFilePrefix and CubeFileExt frame every persisted tile dataset name.
// Example: datacube_2020-06-01_T32ULC_R100.nc
const (
	CubeFilePrefix = "datacube_"
	CubeFileExt    = ".nc"
)

// Offsets into a cube file name. The merge engine re-derives identity from
// these, so they must match what CubeFileName emits exactly.
const (
	cubeDateOffset = 9
	cubeDateLen    = 10
	cubeTileOffset = 20
	cubeResOffset  = 27
	cubeNameMinLen = cubeResOffset + 6 // "R10.nc" is the shortest tail
)

// MergedTileCode stands in for the two tile codes of a pairwise-merged
// dataset. It is exactly tile-code width so the name offsets keep working.
const MergedTileCode = "Merged"

// SupportedUTMZone is the only UTM zone the pipeline accepts
const SupportedUTMZone = "32"

// StaleUTMZone marks coverage that must be dropped during merging
const StaleUTMZone = "31"

// TileIdentity identifies one tile acquisition: date, spatial tile code and
// resolution. Two tile datasets are coincident iff all three fields are equal.
type TileIdentity struct {
	AcquisitionDate time.Time
	TileCode        string
	Resolution      int
}

// IdentityParseError reports a file name that cannot yield a TileIdentity
type IdentityParseError struct {
	Name   string
	Reason string
}

// Error implements the error interface
func (e IdentityParseError) Error() string {
	return fmt.Sprintf("cannot parse tile identity from `%s`: %s", e.Name, e.Reason)
}

// ParseSafeName derives a TileIdentity from a SAFE product name. The
// resolution field is left zero; SAFE names do not carry one.
func ParseSafeName(name string) (TileIdentity, error) {
	if len(name) < safeNameMinLen {
		return TileIdentity{}, IdentityParseError{Name: name, Reason: fmt.Sprintf("shorter than %d characters", safeNameMinLen)}
	}

	date, err := time.Parse(safeDateFormat, name[safeDateOffset:safeDateOffset+safeDateLen])
	if err != nil {
		return TileIdentity{}, IdentityParseError{Name: name, Reason: "acquisition date digits are invalid"}
	}

	return TileIdentity{
		AcquisitionDate: date,
		TileCode:        name[safeTileOffset : safeTileOffset+safeTileLen],
	}, nil
}

// ParseCubeFileName derives a TileIdentity from a persisted cube file name
func ParseCubeFileName(name string) (TileIdentity, error) {
	if len(name) < cubeNameMinLen {
		return TileIdentity{}, IdentityParseError{Name: name, Reason: fmt.Sprintf("shorter than %d characters", cubeNameMinLen)}
	}
	if !strings.HasPrefix(name, CubeFilePrefix) {
		return TileIdentity{}, IdentityParseError{Name: name, Reason: "missing `" + CubeFilePrefix + "` prefix"}
	}

	date, err := time.Parse(ISODateFormat, name[cubeDateOffset:cubeDateOffset+cubeDateLen])
	if err != nil {
		return TileIdentity{}, IdentityParseError{Name: name, Reason: "acquisition date is invalid"}
	}

	tileCode := name[cubeTileOffset : cubeTileOffset+safeTileLen]

	if name[cubeResOffset] != 'R' {
		return TileIdentity{}, IdentityParseError{Name: name, Reason: "missing resolution marker"}
	}
	resolution := 0
	for i := cubeResOffset + 1; i < len(name) && name[i] >= '0' && name[i] <= '9'; i++ {
		resolution = resolution*10 + int(name[i]-'0')
	}
	if resolution == 0 {
		return TileIdentity{}, IdentityParseError{Name: name, Reason: "resolution digits are invalid"}
	}

	return TileIdentity{
		AcquisitionDate: date,
		TileCode:        tileCode,
		Resolution:      resolution,
	}, nil
}

// CubeFileName renders the canonical persisted name for this identity. It is
// the inverse of ParseCubeFileName.
func (id TileIdentity) CubeFileName() string {
	return fmt.Sprintf("%s%s_%s_R%d%s",
		CubeFilePrefix, id.AcquisitionDate.Format(ISODateFormat), id.TileCode, id.Resolution, CubeFileExt)
}

// UTMZone returns the zone digits embedded in the tile code
func (id TileIdentity) UTMZone() string {
	if len(id.TileCode) < 3 {
		return ""
	}
	return id.TileCode[1:3]
}

// Coincident reports whether two identities describe the same coverage
func (id TileIdentity) Coincident(other TileIdentity) bool {
	return id.AcquisitionDate.Equal(other.AcquisitionDate) &&
		id.TileCode == other.TileCode &&
		id.Resolution == other.Resolution
}
