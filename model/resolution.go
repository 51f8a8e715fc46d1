package model

import "fmt"

// Sentinel-2 tiles cover a fixed 109.8 km footprint; grid sizes are that
// footprint divided by the pixel size.
const baseGridCells = 1830

// UnsupportedResolutionError signals a resolution outside the supported set
type UnsupportedResolutionError struct {
	Resolution int
}

// Error implements the error interface
func (e UnsupportedResolutionError) Error() string {
	return fmt.Sprintf("unsupported resolution %d, try 10, 20, 60 or 100", e.Resolution)
}

// GridSize returns the lat/lon vector length for a supported resolution
func GridSize(resolution int) (int, error) {
	switch resolution {
	case 10:
		return baseGridCells * 3 * 2, nil
	case 20:
		return baseGridCells * 3, nil
	case 60:
		return baseGridCells, nil
	case 100:
		return 1098, nil
	}
	return 0, UnsupportedResolutionError{Resolution: resolution}
}

// ValidResolution reports whether the resolution is in the supported set
func ValidResolution(resolution int) bool {
	_, err := GridSize(resolution)
	return err == nil
}

// ResolutionLabel renders the resolution attribute attached to datasets
func ResolutionLabel(resolution int) string {
	return fmt.Sprintf("%d x %d m", resolution, resolution)
}
