package datacube

import (
	"errors"
	"sort"
	"time"
)

// CombineByCoords merges datasets into one by aligning and unioning their
// coordinate axes. Band values land at their coordinate positions; cells no
// input covers stay at the fill value. On coordinates covered by more than
// one input, later datasets win.
func CombineByCoords(datasets []*Dataset) (*Dataset, error) {
	if len(datasets) == 0 {
		return nil, errors.New("no datasets to combine")
	}

	times := unionTimes(datasets)
	lat := unionLats(datasets)
	lon := unionLons(datasets)

	out := NewDataset(times, lat, lon)
	out.Attrs = datasets[0].Attrs

	timeIndex := make(map[time.Time]int, len(times))
	for i, t := range times {
		timeIndex[t.UTC()] = i
	}
	latIndex := make(map[float64]int, len(lat))
	for i, v := range lat {
		latIndex[v] = i
	}
	lonIndex := make(map[float64]int, len(lon))
	for j, v := range lon {
		lonIndex[v] = j
	}

	for _, ds := range datasets {
		for t, when := range ds.Time {
			dstT := timeIndex[when.UTC()]
			for i, latVal := range ds.Lat {
				dstI := latIndex[latVal]
				srcRow := ds.Index(t, i, 0)
				for j, lonVal := range ds.Lon {
					dst := out.Index(dstT, dstI, lonIndex[lonVal])
					out.Red[dst] = ds.Red[srcRow+j]
					out.NIR[dst] = ds.NIR[srcRow+j]
				}
			}
		}
	}

	return out, nil
}

func unionTimes(datasets []*Dataset) []time.Time {
	seen := map[time.Time]bool{}
	times := []time.Time{}
	for _, ds := range datasets {
		for _, t := range ds.Time {
			if !seen[t.UTC()] {
				seen[t.UTC()] = true
				times = append(times, t)
			}
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// unionLats returns the union of latitude vectors, descending
func unionLats(datasets []*Dataset) []float64 {
	values := unionFloats(datasets, func(ds *Dataset) []float64 { return ds.Lat })
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	return values
}

// unionLons returns the union of longitude vectors, ascending
func unionLons(datasets []*Dataset) []float64 {
	values := unionFloats(datasets, func(ds *Dataset) []float64 { return ds.Lon })
	sort.Float64s(values)
	return values
}

func unionFloats(datasets []*Dataset, axis func(*Dataset) []float64) []float64 {
	seen := map[float64]bool{}
	values := []float64{}
	for _, ds := range datasets {
		for _, v := range axis(ds) {
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
	}
	return values
}
