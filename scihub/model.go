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
	"encoding/json"
	"fmt"
	"time"

	"github.com/venicegeo/bf-s2-datacube/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Context is the context for a Copernicus Open Access Hub operation
type Context struct {
	BaseSciHubURL string
	User          string
	Password      string
	sessionID     string
}

// AppName returns the application name
func (c *Context) AppName() string {
	return "bf-s2-datacube"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID = util.NewSessionID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// SearchOptions are the query terms for an OpenSearch product search
type SearchOptions struct {
	AOI             *geojson.Polygon
	StartDate       time.Time
	EndDate         time.Time
	Platform        string
	ProcessingLevel string
	MinCloudCover   float64
	MaxCloudCover   float64
}

// Product is one discoverable tile archive on the hub
type Product struct {
	ID              string
	Title           string
	DownloadURL     string
	AcquisitionDate time.Time
	CloudCover      float64
	Footprint       string
}

// NoProductsFoundError means the hub matched nothing against the query
type NoProductsFoundError struct {
	Query string
}

func (e NoProductsFoundError) Error() string {
	return fmt.Sprintf("no products found for query %v", e.Query)
}

// The hub's JSON rendering of its OpenSearch feed. A single-result feed
// renders "entry" as an object rather than a one-element array.
type searchResponse struct {
	Feed struct {
		TotalResults string    `json:"opensearch:totalResults"`
		Entry        entryList `json:"entry"`
	} `json:"feed"`
}

type entryList []entry

func (l *entryList) UnmarshalJSON(data []byte) error {
	var many []entry
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one entry
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = entryList{one}
	return nil
}

type entry struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Links   entryLinks   `json:"link"`
	Dates   []namedValue `json:"date"`
	Doubles []namedValue `json:"double"`
	Strings []namedValue `json:"str"`
}

type entryLinks []entryLink

func (l *entryLinks) UnmarshalJSON(data []byte) error {
	var many []entryLink
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one entryLink
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = entryLinks{one}
	return nil
}

type entryLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type namedValue struct {
	Name    string      `json:"name"`
	Content interface{} `json:"content"`
}

func named(values []namedValue, name string) (string, bool) {
	for _, value := range values {
		if value.Name == name {
			return fmt.Sprintf("%v", value.Content), true
		}
	}
	return "", false
}
