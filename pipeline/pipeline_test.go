package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-s2-datacube/datacube"
	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/scihub"
	"github.com/venicegeo/bf-s2-datacube/util"
)

func mockStages(t *testing.T, calls *[]string) func() {
	originalGet := getProductsFunc
	originalDownload := downloadAllFunc
	originalUnzip := unzipAllFunc
	originalBuild := buildCubeFunc
	originalMerge := mergeWorkspaceFunc

	getProductsFunc = func(options scihub.SearchOptions, context *scihub.Context) ([]scihub.Product, error) {
		*calls = append(*calls, "search")
		return []scihub.Product{{Title: "S2B_MSIL2A_T32ULC"}}, nil
	}
	downloadAllFunc = func(products []scihub.Product, directory string, context *scihub.Context) error {
		*calls = append(*calls, "download")
		return nil
	}
	unzipAllFunc = func(ctx util.LogContext, directory string) error {
		*calls = append(*calls, "extract")
		return nil
	}
	buildCubeFunc = func(ctx util.LogContext, store datacube.Store, directory string, resolution int, platform, processingLevel string) error {
		*calls = append(*calls, "build")
		return nil
	}
	mergeWorkspaceFunc = func(ctx util.LogContext, store datacube.Store, directory, outputName string, ec *datacube.ExecContext) error {
		*calls = append(*calls, "merge")
		return nil
	}

	return func() {
		getProductsFunc = originalGet
		downloadAllFunc = originalDownload
		unzipAllFunc = originalUnzip
		buildCubeFunc = originalBuild
		mergeWorkspaceFunc = originalMerge
	}
}

func testOptions() Options {
	return Options{
		Resolution: 100,
		Workspace:  "/workspace",
		StartDate:  time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2020, 6, 11, 0, 0, 0, 0, time.UTC),
	}
}

func TestRun(t *testing.T) {
	// Mock
	calls := []string{}
	defer mockStages(t, &calls)()

	// Tested code
	err := Run(testOptions(), &Context{})

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, []string{"search", "download", "extract", "build", "merge"}, calls)
}

func TestRun_ErrorOnUnsupportedResolution(t *testing.T) {
	// Mock
	calls := []string{}
	defer mockStages(t, &calls)()
	options := testOptions()
	options.Resolution = 30

	// Tested code
	err := Run(options, &Context{})

	// Asserts
	assert.NotNil(t, err)
	assert.IsType(t, model.UnsupportedResolutionError{}, err)
	assert.Empty(t, calls, "no stage may run after a validation failure")
}

func TestRun_ErrorOnIdenticalDateRange(t *testing.T) {
	// Mock
	calls := []string{}
	defer mockStages(t, &calls)()
	options := testOptions()
	options.EndDate = options.StartDate

	// Tested code
	err := Run(options, &Context{})

	// Asserts
	assert.NotNil(t, err)
	assert.Empty(t, calls)
}

func TestRun_StageErrorStopsPipeline(t *testing.T) {
	// Mock
	calls := []string{}
	defer mockStages(t, &calls)()
	failure := errors.New("no extractable tiles")
	buildCubeFunc = func(ctx util.LogContext, store datacube.Store, directory string, resolution int, platform, processingLevel string) error {
		calls = append(calls, "build")
		return failure
	}

	// Tested code
	err := Run(testOptions(), &Context{})

	// Asserts
	assert.Equal(t, failure, err)
	assert.Equal(t, []string{"search", "download", "extract", "build"}, calls,
		"merge must not run after a build failure")
}

func TestRunStages_AbortBetweenStages(t *testing.T) {
	// Mock
	calls := []string{}
	defer mockStages(t, &calls)()
	cancelChan := make(chan string, 1)
	cancelChan <- AbortBuildJobMessage

	// Tested code
	canceled, err := runStages(testOptions(), &Context{}, cancelChan)

	// Asserts
	assert.Nil(t, err)
	assert.True(t, canceled)
	assert.Empty(t, calls, "an abort queued before the run stops it at the first stage")
}

func TestRunStages_IgnoresUnrelatedMessages(t *testing.T) {
	// Mock
	calls := []string{}
	defer mockStages(t, &calls)()
	cancelChan := make(chan string, 2)
	cancelChan <- "status"
	cancelChan <- BeginBuildJobMessage

	// Tested code
	canceled, err := runStages(testOptions(), &Context{}, cancelChan)

	// Asserts
	assert.Nil(t, err)
	assert.False(t, canceled)
	assert.Equal(t, []string{"search", "download", "extract", "build", "merge"}, calls)
}

func TestRun_ProductsHandedToFetchCallback(t *testing.T) {
	// Mock
	calls := []string{}
	defer mockStages(t, &calls)()
	var recorded []scihub.Product
	options := testOptions()
	options.OnProductsFetched = func(products []scihub.Product) error {
		recorded = products
		return nil
	}

	// Tested code
	err := Run(options, &Context{})

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, recorded, 1)
	assert.Equal(t, "S2B_MSIL2A_T32ULC", recorded[0].Title)
}

func TestApplyDefaults(t *testing.T) {
	options := testOptions()

	options.applyDefaults()

	assert.Equal(t, DefaultPlatform, options.Platform)
	assert.Equal(t, DefaultProcessingLevel, options.ProcessingLevel)
	assert.Equal(t, DefaultOutputName, options.OutputName)
	assert.NotNil(t, options.Store)
}
