package model

import (
	"fmt"
	"time"
)

// SciHub's OpenSearch endpoints return datetime data in a handful of close but
// not identical ISO-ish layouts depending on the product family, so we need
// lenient "multi-format" parsing functionality, implemented here.

// StandardTimeLayout is the preferred format when rendering datetimes
const StandardTimeLayout = "2006-01-02T15:04:05.999999999Z"

var sciHubTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// ParseSciHubTime is a drop-in replacement for time.Parse, but matching against
// multiple possible SciHub time formats
func ParseSciHubTime(sciHubTime string) (time.Time, error) {
	for _, layout := range sciHubTimeLayouts {
		if output, err := time.Parse(layout, sciHubTime); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", sciHubTime)
}
