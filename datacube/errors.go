package datacube

import "fmt"

// NoExtractableTilesError signals a workspace with no extracted SAFE trees
type NoExtractableTilesError struct {
	Directory string
}

// Error implements the error interface
func (e NoExtractableTilesError) Error() string {
	return "no SAFE file in " + e.Directory + " to build a cube from"
}

// ForeignFileError signals a workspace file that is not a tile dataset
type ForeignFileError struct {
	Name string
}

// Error implements the error interface
func (e ForeignFileError) Error() string {
	return "foreign file in workspace: " + e.Name
}

// EmptyWorkspaceError signals a merge over a workspace with nothing in it
type EmptyWorkspaceError struct {
	Directory string
}

// Error implements the error interface
func (e EmptyWorkspaceError) Error() string {
	return "nothing to merge in " + e.Directory
}

// StorageError wraps an I/O failure from the durable store
type StorageError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying error
func (e StorageError) Unwrap() error {
	return e.Err
}
