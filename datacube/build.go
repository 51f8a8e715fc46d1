package datacube

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/safe"
	"github.com/venicegeo/bf-s2-datacube/util"
)

var extractBandsFunc = safe.ExtractBands
var loadBandsFunc = LoadBands

// BuildCube turns every extracted SAFE tree in the workspace into a
// persisted tile dataset, removing the extracted tree once its dataset is
// safely stored. A workspace with no SAFE trees is an error, not an empty
// cube.
func BuildCube(ctx util.LogContext, store Store, directory string, resolution int, platform, processingLevel string) error {
	safeDirs, err := listSafeDirs(directory)
	if err != nil {
		return err
	}
	if len(safeDirs) == 0 {
		return NoExtractableTilesError{Directory: directory}
	}

	for _, safeName := range safeDirs {
		id, err := model.ParseSafeName(safeName)
		if err != nil {
			return err
		}

		pair, err := extractBandsFunc(filepath.Join(directory, safeName), resolution)
		if err != nil {
			return err
		}

		if _, err = loadBandsFunc(ctx, store, pair, id, resolution, directory, platform, processingLevel); err != nil {
			return err
		}

		if err = util.RemoveTree(filepath.Join(directory, safeName)); err != nil {
			return err
		}
		util.LogInfo(ctx, fmt.Sprintf("Removed extracted tile %s", safeName))
	}

	return nil
}

func listSafeDirs(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() && strings.HasSuffix(entry.Name(), ".SAFE") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
