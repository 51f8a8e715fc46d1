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
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/venicegeo/bf-s2-datacube/util"
)

// maxDownloadAttempts bounds the per-product retry loop; long-term-archive
// products can take several polls before the hub serves bytes
const maxDownloadAttempts = 10

var downloadProductFunc = downloadProduct

// DownloadAll fetches every product archive into the workspace directory,
// retrying each a bounded number of times. Any product still failing after the
// last attempt aborts the whole download.
func DownloadAll(products []Product, directory string, context *Context) error {
	for i, product := range products {
		util.LogInfo(context, fmt.Sprintf("Downloading product %v of %v: %v", i+1, len(products), product.Title))

		var err error
		for attempt := 1; attempt <= maxDownloadAttempts; attempt++ {
			if err = downloadProductFunc(product, directory, context); err == nil {
				break
			}
			util.LogAlert(context, fmt.Sprintf("Download attempt %v of %v failed for %v: %v",
				attempt, maxDownloadAttempts, product.Title, err))
		}
		if err != nil {
			return util.LogSimpleErr(context, fmt.Sprintf("Gave up downloading %v after %v attempts.",
				product.Title, maxDownloadAttempts), err)
		}
	}
	util.LogInfo(context, fmt.Sprintf("Downloaded %v products into %v", len(products), directory))
	return nil
}

func downloadProduct(product Product, directory string, context *Context) error {
	response, err := scihubRequest(scihubRequestInput{method: "GET", inputURL: product.DownloadURL}, context)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return util.HTTPErr{Status: response.StatusCode,
			Message: fmt.Sprintf("Hub returned %v for product %v", response.Status, product.Title)}
	}

	path := filepath.Join(directory, product.Title+".zip")
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = io.Copy(file, response.Body); err != nil {
		// A partial archive would poison the extraction step
		os.Remove(path)
		return err
	}
	return nil
}
