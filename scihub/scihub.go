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
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/util"
	"github.com/venicegeo/geojson-go/geojson"
)

const searchPageSize = 100
const queryTimeLayout = "2006-01-02T15:04:05Z"

// GetProducts queries the hub's OpenSearch endpoint and returns every product
// matching the options. Zero matches is an error, not an empty result.
func GetProducts(options SearchOptions, context *Context) ([]Product, error) {
	query := buildQuery(options)

	inputURL := fmt.Sprintf("search?q=%v&rows=%v&format=json", url.QueryEscape(query), searchPageSize)
	response, err := scihubRequest(scihubRequestInput{method: "GET", inputURL: inputURL}, context)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to complete hub search %v.", query), err)
	}
	defer response.Body.Close()
	body, _ := io.ReadAll(response.Body)

	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to discover products from the hub: %v. ", response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		return nil, util.LogSimpleErr(context, "Failed to discover products from the hub.", errors.New(response.Status))
	default:
		//no op
	}

	var parsed searchResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		hubErr := util.Error{LogMsg: "Failed to Unmarshal response from the hub search: " + err.Error(),
			SimpleMsg:  "The hub returned an unexpected response for this search. See log for further details.",
			Response:   string(body),
			URL:        inputURL,
			HTTPStatus: response.StatusCode}
		return nil, hubErr.Log(context, "")
	}

	if total, _ := strconv.Atoi(parsed.Feed.TotalResults); total == 0 || len(parsed.Feed.Entry) == 0 {
		return nil, NoProductsFoundError{Query: query}
	}

	products := make([]Product, 0, len(parsed.Feed.Entry))
	for _, e := range parsed.Feed.Entry {
		product, err := e.toProduct()
		if err != nil {
			return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to interpret hub entry %v.", e.ID), err)
		}
		products = append(products, product)
	}

	util.LogInfo(context, fmt.Sprintf("Found %v products on the hub", len(products)))
	return products, nil
}

func buildQuery(options SearchOptions) string {
	terms := []string{}
	if options.AOI != nil {
		terms = append(terms, fmt.Sprintf("footprint:\"Intersects(%v)\"", polygonWKT(options.AOI)))
	}
	terms = append(terms, fmt.Sprintf("beginposition:[%v TO %v]",
		options.StartDate.UTC().Format(queryTimeLayout),
		options.EndDate.UTC().Format(queryTimeLayout)))
	if options.Platform != "" {
		terms = append(terms, "platformname:"+options.Platform)
	}
	if options.ProcessingLevel != "" {
		terms = append(terms, "processinglevel:"+options.ProcessingLevel)
	}
	terms = append(terms, fmt.Sprintf("cloudcoverpercentage:[%v TO %v]",
		options.MinCloudCover, options.MaxCloudCover))
	return strings.Join(terms, " AND ")
}

// polygonWKT renders the AOI the way the hub's footprint term expects
func polygonWKT(polygon *geojson.Polygon) string {
	rings := make([]string, len(polygon.Coordinates))
	for i, ring := range polygon.Coordinates {
		points := make([]string, len(ring))
		for j, point := range ring {
			points[j] = fmt.Sprintf("%v %v", point[0], point[1])
		}
		rings[i] = "(" + strings.Join(points, ",") + ")"
	}
	return "POLYGON(" + strings.Join(rings, ",") + ")"
}

func (e entry) toProduct() (Product, error) {
	product := Product{ID: e.ID, Title: e.Title}

	for _, link := range e.Links {
		if link.Rel == "" {
			product.DownloadURL = link.Href
		}
	}
	if product.DownloadURL == "" && len(e.Links) > 0 {
		product.DownloadURL = e.Links[0].Href
	}

	if begin, ok := named(e.Dates, "beginposition"); ok {
		acquired, err := model.ParseSciHubTime(begin)
		if err != nil {
			return product, err
		}
		product.AcquisitionDate = acquired
	}

	if cloud, ok := named(e.Doubles, "cloudcoverpercentage"); ok {
		value, err := strconv.ParseFloat(cloud, 64)
		if err != nil {
			return product, err
		}
		product.CloudCover = value
	}

	product.Footprint, _ = named(e.Strings, "footprint")
	return product, nil
}

type scihubRequestInput struct {
	method   string
	inputURL string // URL may be relative or absolute based on BaseSciHubURL
}

// scihubRequest performs the request
func scihubRequest(input scihubRequestInput, context *Context) (*http.Response, error) {
	inputURL := input.inputURL
	if !strings.Contains(inputURL, context.BaseSciHubURL) {
		baseURL, _ := url.Parse(context.BaseSciHubURL + "/")
		parsedRelativeURL, err := url.Parse(input.inputURL)
		if err != nil {
			return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to parse %v into a URL.", input.inputURL), err)
		}
		inputURL = baseURL.ResolveReference(parsedRelativeURL).String()
	}

	request, err := http.NewRequest(input.method, inputURL, nil)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to make a new HTTP request for %v.", inputURL), err)
	}
	request.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(context.User+":"+context.Password)))

	util.LogAudit(context, util.LogAuditInput{Actor: "scihub/doRequest", Action: input.method, Actee: inputURL, Message: "Requesting data from the hub", Severity: util.INFO})
	util.LogAudit(context, util.LogAuditInput{Actor: inputURL, Action: input.method + " response", Actee: "scihub/doRequest", Message: "Receiving data from the hub", Severity: util.INFO})
	return util.HTTPClient().Do(request)
}

// RejectIdenticalRange guards the pipeline's date range before any network
// traffic happens
func RejectIdenticalRange(start, end time.Time) error {
	if start.Equal(end) {
		return fmt.Errorf("start date %v equals end date, refusing to query an empty range",
			start.Format(queryTimeLayout))
	}
	return nil
}
