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
	"regexp"
	"strconv"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
)

// Inputs: hostURL, mgrs1, mgrs2, mgrs3, year, month, day, filename
const sentinelAWSURL = "%s/tiles/%s/%s/%s/%d/%d/%d/0/%s"

// https://earth.esa.int/web/sentinel/user-guides/sentinel-2-msi/naming-convention
var sentinelIDPattern = regexp.MustCompile("S2(A|B)_MSIL(1C|2A)_([0-9]{4})([0-9]{2})([0-9]{2})T[0-9]+_[A-Z0-9]+_[A-Z0-9]+_T([0-9]+)([A-Z])([A-Z]+)_[0-9]{8}T[0-9]")

var sentinelBandsFilenames = map[string]string{
	"coastal": "B01.jp2",
	"blue":    "B02.jp2",
	"green":   "B03.jp2",
	"red":     "B04.jp2",
	"rededge": "B05.jp2",
	"nir":     "B08.jp2",
	"nirnarr": "B8A.jp2",
	"swir1":   "B11.jp2",
	"swir2":   "B12.jp2",
	"cirrus":  "B10.jp2",
}

// IsSentinelProduct reports whether the product ID names a Sentinel-2 acquisition
func IsSentinelProduct(productID string) bool {
	return strings.HasPrefix(productID, "S2A") || strings.HasPrefix(productID, "S2B")
}

// SentinelS3Bands is a mixin containing band raster URLs on the public
// Sentinel-2 AWS archive, inferred from the product ID
type SentinelS3Bands struct {
	Bands map[string]string
}

// NewSentinelS3Bands builds band URLs from the MGRS info inside the product ID
func NewSentinelS3Bands(hostURL, productID string) (*SentinelS3Bands, error) {
	if !IsSentinelProduct(productID) {
		return nil, fmt.Errorf("Not a Sentinel-2 product ID: %s", productID)
	}
	if !sentinelIDPattern.MatchString(productID) {
		return nil, fmt.Errorf("Product ID had '%s' prefix but did not match expected Sentinel-2 format", productID[:3])
	}

	m := sentinelIDPattern.FindStringSubmatch(productID)
	m = m[3:] // Skip over whole string match, satellite A/B and processing level
	year, err := strconv.Atoi(m[0])
	if err != nil {
		return nil, err
	}
	month, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, err
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, err
	}

	bands := map[string]string{}
	for band, filename := range sentinelBandsFilenames {
		bands[band] = fmt.Sprintf(sentinelAWSURL, hostURL, m[3], m[4], m[5], year, month, day, filename)
	}

	return &SentinelS3Bands{Bands: bands}, nil
}

// Apply implements the GeoJSONFeatureMixin interface
func (sb SentinelS3Bands) Apply(feature *geojson.Feature) error {
	feature.Properties["bands"] = sb.Bands
	return nil
}
