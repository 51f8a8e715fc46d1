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

package util

import (
	"os"
	"strconv"
)

// Environment variables
const (
	SCIHUB_URL      = "SCIHUB_URL"
	SCIHUB_USER     = "SCIHUB_USER"
	SCIHUB_PASSWORD = "SCIHUB_PASSWORD"
	SENTINEL_HOST   = "SENTINEL_HOST"
	CUBE_WORKSPACE  = "CUBE_WORKSPACE"
	CUBE_WORKERS    = "CUBE_WORKERS"
)

const defaultSciHubURL = "https://scihub.copernicus.eu/dhus"
const defaultCubeWorkers = 4

// GetSciHubURL returns the base URL of the Copernicus Open Access Hub
func GetSciHubURL() string {
	sciHubURL, ok := os.LookupEnv(SCIHUB_URL)
	if !ok {
		LogInfo(&BasicLogContext{}, "Did not get SciHub URL from the environment. Using default: "+defaultSciHubURL)
		sciHubURL = defaultSciHubURL
	}
	return sciHubURL
}

// GetSciHubCredentials returns the SciHub username and password from the environment
func GetSciHubCredentials() (string, string) {
	username, ok := os.LookupEnv(SCIHUB_USER)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get SciHub username from the environment. Downloads will not be available.")
	}
	password, ok := os.LookupEnv(SCIHUB_PASSWORD)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get SciHub password from the environment. Downloads will not be available.")
	}
	return username, password
}

// GetSentinelHost returns a string for the SENTINEL_HOST environment variable
func GetSentinelHost() string {
	sentinelHost, ok := os.LookupEnv(SENTINEL_HOST)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get Sentinel Host URL from the environment. Band URLs will not be available.")
	}
	return sentinelHost
}

// GetCubeWorkspace returns the working directory for tile and cube files
func GetCubeWorkspace() string {
	workspace, ok := os.LookupEnv(CUBE_WORKSPACE)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get cube workspace from the environment.")
	}
	return workspace
}

// GetCubeWorkers returns the worker count for the final concatenation step
func GetCubeWorkers() int {
	workers, err := strconv.Atoi(os.Getenv(CUBE_WORKERS))
	if err != nil || workers < 1 {
		return defaultCubeWorkers
	}
	return workers
}
