package datacube

import (
	"strings"

	"github.com/venicegeo/bf-s2-datacube/model"
)

// tileRecord is one entry of the merge engine's working set: a parsed
// identity plus the file name it came from
type tileRecord struct {
	identity model.TileIdentity
	name     string
}

// scanWorkspace reads the directory listing once and parses every entry.
// A file without the dataset extension or with an unparseable name aborts
// the merge; later correctness depends on every name parsing.
func scanWorkspace(store Store, directory string) ([]tileRecord, error) {
	names, err := store.List(directory)
	if err != nil {
		return nil, err
	}

	records := make([]tileRecord, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(name, model.CubeFileExt) {
			return nil, ForeignFileError{Name: name}
		}
		identity, err := model.ParseCubeFileName(name)
		if err != nil {
			return nil, err
		}
		records = append(records, tileRecord{identity: identity, name: name})
	}
	return records, nil
}
