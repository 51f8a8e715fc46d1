package pipeline

import (
	"fmt"

	"github.com/venicegeo/bf-s2-datacube/datacube"
	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/safe"
	"github.com/venicegeo/bf-s2-datacube/scihub"
	"github.com/venicegeo/bf-s2-datacube/util"
)

var getProductsFunc = scihub.GetProducts
var downloadAllFunc = scihub.DownloadAll
var unzipAllFunc = safe.UnzipAll
var buildCubeFunc = datacube.BuildCube
var mergeWorkspaceFunc = datacube.MergeWorkspace

type stage struct {
	name string
	run  func(*Options, *Context) error
}

var stages = []stage{
	{"fetch", fetchStage},
	{"extract", extractStage},
	{"build", buildStage},
	{"merge", mergeStage},
}

// Run executes the whole pipeline: discover and download matching products,
// extract them, build one dataset per tile, and merge the workspace into a
// single cube file.
func Run(options Options, context *Context) error {
	canceled, err := runStages(options, context, nil)
	if canceled {
		// Without a cancel channel this cannot happen
		return fmt.Errorf("pipeline run canceled")
	}
	return err
}

func runStages(options Options, context *Context, cancelChan <-chan string) (bool, error) {
	if err := validate(&options); err != nil {
		return false, err
	}
	options.applyDefaults()

	for _, s := range stages {
		if abortRequested(cancelChan) {
			util.LogAlert(context, fmt.Sprintf("Build aborted before stage %v", s.name))
			return true, nil
		}
		util.LogInfo(context, fmt.Sprintf("Starting stage %v", s.name))
		if err := s.run(&options, context); err != nil {
			return false, err
		}
	}
	return false, nil
}

func validate(options *Options) error {
	if !model.ValidResolution(options.Resolution) {
		return model.UnsupportedResolutionError{Resolution: options.Resolution}
	}
	return scihub.RejectIdenticalRange(options.StartDate, options.EndDate)
}

// abortRequested drains any pending messages and reports whether one of them
// asked for an abort
func abortRequested(cancelChan <-chan string) bool {
	aborted := false
	for {
		select {
		case msg, ok := <-cancelChan:
			if !ok {
				return aborted
			}
			aborted = aborted || (msg == AbortBuildJobMessage)
		default:
			return aborted
		}
	}
}

func fetchStage(options *Options, context *Context) error {
	hub := &scihub.Context{
		BaseSciHubURL: options.SciHubURL,
		User:          options.SciHubUser,
		Password:      options.SciHubPassword,
	}
	products, err := getProductsFunc(scihub.SearchOptions{
		AOI:             options.AOI,
		StartDate:       options.StartDate,
		EndDate:         options.EndDate,
		Platform:        options.Platform,
		ProcessingLevel: options.ProcessingLevel,
		MinCloudCover:   options.MinCloudCover,
		MaxCloudCover:   options.MaxCloudCover,
	}, hub)
	if err != nil {
		return err
	}
	if options.OnProductsFetched != nil {
		if err = options.OnProductsFetched(products); err != nil {
			return err
		}
	}
	return downloadAllFunc(products, options.Workspace, hub)
}

func extractStage(options *Options, context *Context) error {
	return unzipAllFunc(context, options.Workspace)
}

func buildStage(options *Options, context *Context) error {
	return buildCubeFunc(context, options.Store, options.Workspace, options.Resolution,
		options.Platform, options.ProcessingLevel)
}

func mergeStage(options *Options, context *Context) error {
	ec := datacube.NewExecContext(util.GetCubeWorkers())
	defer ec.Shutdown()
	return mergeWorkspaceFunc(context, options.Store, options.Workspace, options.OutputName, ec)
}
