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

package datacube

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/util"
)

// The one known adjacent west/east tile pair. Generalizing to arbitrary
// neighbors needs an MGRS adjacency lookup; until a second pair shows up in
// real data this stays a designated pair.
const (
	westTileCode = "T32ULC"
	eastTileCode = "T32UMC"
)

// MergeWorkspace reduces every persisted tile dataset in the workspace to a
// single merged datacube saved under outputName. The working set is an
// explicit record set scanned once from the directory; the file system is
// only touched again on physical writes and deletes, and every mutation of
// the set is visible to the pairing decisions that follow it.
func MergeWorkspace(ctx util.LogContext, store Store, directory, outputName string, ec *ExecContext) error {
	start := time.Now()

	records, err := scanWorkspace(store, directory)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return EmptyWorkspaceError{Directory: directory}
	}

	if !strings.HasSuffix(outputName, model.CubeFileExt) {
		outputName = outputName + model.CubeFileExt
	}

	if len(records) == 1 {
		util.LogInfo(ctx, "Only one tile dataset in workspace, renaming to "+outputName)
		return store.Rename(filepath.Join(directory, records[0].name), filepath.Join(directory, outputName))
	}

	util.LogInfo(ctx, fmt.Sprintf("Start merging %d tile datasets", len(records)))
	if records, err = reduce(ctx, store, directory, records); err != nil {
		return err
	}

	paths := make([]string, len(records))
	for i, record := range records {
		paths[i] = filepath.Join(directory, record.name)
	}

	lazy, err := store.OpenMany(paths)
	if err != nil {
		return err
	}
	cube, err := lazy.Concat(ec)
	if err != nil {
		return err
	}

	util.LogInfo(ctx, "Start saving "+outputName)
	if err = store.Save(cube, outputName, directory); err != nil {
		return err
	}
	for _, path := range paths {
		if err = store.Delete(path); err != nil {
			return err
		}
	}

	util.LogInfo(ctx, fmt.Sprintf("All cubes merged in %ds", int(time.Since(start).Seconds())))
	return nil
}

// reduce applies the pairwise rules until the record set settles: stale-zone
// records are dropped, coincident duplicates collapse to one, and the
// designated adjacent pair is coordinate-joined. One mutation per pass, so
// each decision sees the current state.
func reduce(ctx util.LogContext, store Store, directory string, records []tileRecord) ([]tileRecord, error) {
	for {
		mutated, next, err := reduceOnce(ctx, store, directory, records)
		if err != nil {
			return nil, err
		}
		records = next
		if !mutated {
			return records, nil
		}
	}
}

func reduceOnce(ctx util.LogContext, store Store, directory string, records []tileRecord) (bool, []tileRecord, error) {
	// Stale coverage from the unsupported zone is deleted outright
	for i, record := range records {
		if record.identity.UTMZone() == model.StaleUTMZone {
			util.LogAlert(ctx, "Dropping stale coverage "+record.name)
			if err := store.Delete(filepath.Join(directory, record.name)); err != nil {
				return false, nil, err
			}
			return true, remove(records, i), nil
		}
	}

	// Coincident duplicates collapse to the first record. Duplicates only
	// appear on reruns; the builder never produces two.
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			if records[i].identity.Coincident(records[j].identity) {
				util.LogAlert(ctx, "Dropping duplicate coverage "+records[j].name)
				if err := store.Delete(filepath.Join(directory, records[j].name)); err != nil {
					return false, nil, err
				}
				return true, remove(records, j), nil
			}
		}
	}

	// Adjacent west/east tiles sharing date and resolution are joined
	for i, left := range records {
		if left.identity.TileCode != westTileCode {
			continue
		}
		for j, right := range records {
			if i == j || right.identity.TileCode != eastTileCode {
				continue
			}
			if !left.identity.AcquisitionDate.Equal(right.identity.AcquisitionDate) ||
				left.identity.Resolution != right.identity.Resolution {
				continue
			}

			merged, err := mergePair(ctx, store, directory, left, right)
			if err != nil {
				return false, nil, err
			}
			if j > i {
				records = remove(remove(records, j), i)
			} else {
				records = remove(remove(records, i), j)
			}
			return true, append(records, merged), nil
		}
	}

	return false, records, nil
}

// mergePair coordinate-joins the designated west/east neighbors: the west
// dataset is trimmed to the longitudes up to the east dataset's first
// longitude, then both are combined by coordinates.
func mergePair(ctx util.LogContext, store Store, directory string, left, right tileRecord) (tileRecord, error) {
	leftDS, err := store.Open(filepath.Join(directory, left.name))
	if err != nil {
		return tileRecord{}, err
	}
	rightDS, err := store.Open(filepath.Join(directory, right.name))
	if err != nil {
		return tileRecord{}, err
	}

	trimmed := leftDS.SelLon(leftDS.Lon[0], rightDS.Lon[0])
	merged, err := CombineByCoords([]*Dataset{trimmed, rightDS})
	if err != nil {
		return tileRecord{}, err
	}

	mergedIdentity := left.identity
	mergedIdentity.TileCode = model.MergedTileCode
	mergedName := mergedIdentity.CubeFileName()

	util.LogInfo(ctx, fmt.Sprintf("Merging %s + %s -> %s", left.name, right.name, mergedName))
	if err = store.Save(merged, mergedName, directory); err != nil {
		return tileRecord{}, err
	}

	if err = store.Delete(filepath.Join(directory, left.name)); err != nil {
		return tileRecord{}, err
	}
	if err = store.Delete(filepath.Join(directory, right.name)); err != nil {
		return tileRecord{}, err
	}

	return tileRecord{identity: mergedIdentity, name: mergedName}, nil
}

func remove(records []tileRecord, i int) []tileRecord {
	out := make([]tileRecord, 0, len(records)-1)
	out = append(out, records[:i]...)
	return append(out, records[i+1:]...)
}
