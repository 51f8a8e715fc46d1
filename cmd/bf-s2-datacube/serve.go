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

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-s2-datacube/localindex"
	"github.com/venicegeo/bf-s2-datacube/pipeline"
	"github.com/venicegeo/bf-s2-datacube/util"
	cli "gopkg.in/urfave/cli.v1"
)

const buildFrequencyEnv = "CUBE_BUILD_FREQUENCY"
const defaultBuildFrequency = 24 * time.Hour

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})

	if discoverHandler, err := localindex.NewDiscoverHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/discover", discoverHandler)
	} else {
		return nil, err
	}

	if metadataHandler, err := localindex.NewMetadataHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/product/{id}", metadataHandler)
	} else {
		return nil, err
	}

	return router, nil
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	if router, err := createRouter(logContext); err == nil {
		launchServerFunc(getPortStr(), router)
	} else {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
}

// scheduleAction starts the build runner loop and an HTTP control endpoint
func scheduleAction(c *cli.Context) {
	options, err := buildOptionsFromFlags(c)
	if err != nil {
		log.Fatal(err)
	}
	runner := pipeline.NewRunner(options)

	//Create the channel that sends the start/stop messages to the runner.
	messageChan := make(chan string, 5) //small buffer.

	//Start the sleep/build loop.
	go runner.BuildWhile(messageChan, getBuildFrequency())

	router := mux.NewRouter()
	router.HandleFunc("/build/", func(resp http.ResponseWriter, req *http.Request) {
		handleBuildStatus(runner, resp, req)
	})
	router.HandleFunc("/build/start", func(resp http.ResponseWriter, req *http.Request) {
		handleForceStartBuild(runner, messageChan, resp, req)
	})
	router.HandleFunc("/build/cancel", func(resp http.ResponseWriter, req *http.Request) {
		handleCancelBuild(runner, messageChan, resp, req)
	})

	launchServerFunc(getPortStr(), router)
}

// handleBuildStatus requests the status from the runner and writes it out.
func handleBuildStatus(runner *pipeline.Runner, writer http.ResponseWriter, req *http.Request) {
	fmt.Fprintln(writer, runner.GetStatus())
}

// handleForceStartBuild sends a "begin" message to the runner and returns the new status to the user.
func handleForceStartBuild(runner *pipeline.Runner, messageChan chan<- string, writer http.ResponseWriter, req *http.Request) {
	select {
	case messageChan <- pipeline.BeginBuildJobMessage:
		fmt.Fprintln(writer, "Begin job request submitted.")
	default:
		fmt.Fprintln(writer, "Error submitting request.")
	}
	fmt.Fprintln(writer, runner.GetStatus())
}

// handleCancelBuild sends a "cancel" message to the runner and returns the new status to the user.
func handleCancelBuild(runner *pipeline.Runner, cancelChan chan<- string, writer http.ResponseWriter, req *http.Request) {
	select {
	case cancelChan <- pipeline.AbortBuildJobMessage:
		fmt.Fprintln(writer, "Cancel request submitted.")
	default:
		fmt.Fprintln(writer, "Error submitting cancel request.")
	}
	fmt.Fprintln(writer, runner.GetStatus())
}

func getBuildFrequency() time.Duration {
	duration, _ := time.ParseDuration(os.Getenv(buildFrequencyEnv))

	if duration < time.Minute {
		log.Printf("Specified duration of %v is too small. Setting to default.", duration)
		duration = defaultBuildFrequency
	}

	return duration
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
