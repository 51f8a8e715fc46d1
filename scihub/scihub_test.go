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

package scihub

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

const twoEntryFeed = `{
	"feed": {
		"opensearch:totalResults": "2",
		"entry": [
			{
				"id": "aaaa-1111",
				"title": "S2B_MSIL2A_20200601T104619_N0214_R008_T32ULC_20200601T133231",
				"link": [
					{"href": "https://hub.example.com/odata/Products('aaaa-1111')/$value"},
					{"rel": "alternative", "href": "https://hub.example.com/odata/Products('aaaa-1111')/"}
				],
				"date": [{"name": "beginposition", "content": "2020-06-01T10:46:19.024Z"}],
				"double": [{"name": "cloudcoverpercentage", "content": "18.2"}],
				"str": [{"name": "footprint", "content": "POLYGON((7.5 47.8,8.9 47.8,8.9 48.8,7.5 48.8,7.5 47.8))"}]
			},
			{
				"id": "bbbb-2222",
				"title": "S2B_MSIL2A_20200601T104619_N0214_R008_T32UMC_20200601T133231",
				"link": {"href": "https://hub.example.com/odata/Products('bbbb-2222')/$value"},
				"date": [{"name": "beginposition", "content": "2020-06-01T10:46:19.024Z"}],
				"double": [{"name": "cloudcoverpercentage", "content": "3.7"}],
				"str": []
			}
		]
	}
}`

const singleEntryFeed = `{
	"feed": {
		"opensearch:totalResults": "1",
		"entry": {
			"id": "cccc-3333",
			"title": "S2B_MSIL2A_20200601T104619_N0214_R008_T32UNC_20200601T133231",
			"link": [{"href": "https://hub.example.com/odata/Products('cccc-3333')/$value"}],
			"date": [{"name": "beginposition", "content": "2020-06-01T10:46:19Z"}],
			"double": [{"name": "cloudcoverpercentage", "content": "0.4"}]
		}
	}
}`

const emptyFeed = `{"feed": {"opensearch:totalResults": "0"}}`

func testSearchOptions() SearchOptions {
	aoi := geojson.NewPolygon([][][]float64{{{7.5, 47.8}, {8.9, 47.8}, {8.9, 48.8}, {7.5, 48.8}, {7.5, 47.8}}})
	return SearchOptions{
		AOI:             aoi,
		StartDate:       time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2020, 6, 11, 0, 0, 0, 0, time.UTC),
		Platform:        "Sentinel-2",
		ProcessingLevel: "Level-2A",
		MaxCloudCover:   30,
	}
}

func TestGetProducts(t *testing.T) {
	// Mock
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(twoEntryFeed))
	}))
	defer server.Close()
	context := &Context{BaseSciHubURL: server.URL, User: "copernicus", Password: "hunter2"}

	// Tested code
	products, err := GetProducts(testSearchOptions(), context)

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "aaaa-1111", products[0].ID)
	assert.Equal(t, "https://hub.example.com/odata/Products('aaaa-1111')/$value", products[0].DownloadURL)
	assert.Equal(t, 18.2, products[0].CloudCover)
	assert.Equal(t, 2020, products[0].AcquisitionDate.Year())
	assert.Contains(t, products[0].Footprint, "POLYGON")
	assert.Equal(t, "Basic Y29wZXJuaWN1czpodW50ZXIy", gotAuth)
}

func TestGetProducts_SingleEntryObject(t *testing.T) {
	// Mock: a one-result feed renders "entry" as an object, not an array
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(singleEntryFeed))
	}))
	defer server.Close()
	context := &Context{BaseSciHubURL: server.URL}

	// Tested code
	products, err := GetProducts(testSearchOptions(), context)

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "cccc-3333", products[0].ID)
}

func TestGetProducts_ErrorWhenEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(emptyFeed))
	}))
	defer server.Close()

	_, err := GetProducts(testSearchOptions(), &Context{BaseSciHubURL: server.URL})

	assert.NotNil(t, err)
	assert.IsType(t, NoProductsFoundError{}, err)
}

func TestGetProducts_ErrorWhenUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := GetProducts(testSearchOptions(), &Context{BaseSciHubURL: server.URL})

	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestBuildQuery(t *testing.T) {
	query := buildQuery(testSearchOptions())

	assert.Contains(t, query, `footprint:"Intersects(POLYGON((7.5 47.8,8.9 47.8,8.9 48.8,7.5 48.8,7.5 47.8)))"`)
	assert.Contains(t, query, "beginposition:[2020-06-01T00:00:00Z TO 2020-06-11T00:00:00Z]")
	assert.Contains(t, query, "platformname:Sentinel-2")
	assert.Contains(t, query, "processinglevel:Level-2A")
	assert.Contains(t, query, "cloudcoverpercentage:[0 TO 30]")
}

func TestRejectIdenticalRange(t *testing.T) {
	day := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.NotNil(t, RejectIdenticalRange(day, day))
	assert.Nil(t, RejectIdenticalRange(day, day.AddDate(0, 0, 10)))
}
