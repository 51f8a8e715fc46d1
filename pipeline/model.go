package pipeline

import (
	"time"

	"github.com/venicegeo/bf-s2-datacube/datacube"
	"github.com/venicegeo/bf-s2-datacube/scihub"
	"github.com/venicegeo/bf-s2-datacube/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// DefaultPlatform is the satellite family the pipeline ingests
const DefaultPlatform = "Sentinel-2"

// DefaultProcessingLevel is the product processing level the pipeline ingests
const DefaultProcessingLevel = "Level-2A"

// DefaultOutputName is the merged cube file name when the caller gives none
const DefaultOutputName = "merged_cube"

// Context is the context for one pipeline run
type Context struct {
	sessionID string
}

// AppName returns the application name
func (c *Context) AppName() string {
	return "bf-s2-datacube"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID = util.NewSessionID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// Options describe one end-to-end build: what to fetch, where to work, and
// what to call the result
type Options struct {
	Resolution      int
	Workspace       string
	StartDate       time.Time
	EndDate         time.Time
	AOI             *geojson.Polygon
	MinCloudCover   float64
	MaxCloudCover   float64
	OutputName      string
	Platform        string
	ProcessingLevel string

	SciHubURL      string
	SciHubUser     string
	SciHubPassword string

	// Store is the durable storage the cube files go through. Left nil, the
	// gob-backed file store is used.
	Store datacube.Store

	// OnProductsFetched, when set, receives every discovered product before
	// download, e.g. to record them in the local index.
	OnProductsFetched func([]scihub.Product) error
}

func (o *Options) applyDefaults() {
	if o.Platform == "" {
		o.Platform = DefaultPlatform
	}
	if o.ProcessingLevel == "" {
		o.ProcessingLevel = DefaultProcessingLevel
	}
	if o.OutputName == "" {
		o.OutputName = DefaultOutputName
	}
	if o.Workspace == "" {
		o.Workspace = util.GetCubeWorkspace()
	}
	if o.SciHubURL == "" {
		o.SciHubURL = util.GetSciHubURL()
	}
	if o.SciHubUser == "" && o.SciHubPassword == "" {
		o.SciHubUser, o.SciHubPassword = util.GetSciHubCredentials()
	}
	if o.MaxCloudCover <= 0 {
		o.MaxCloudCover = 100
	}
	if o.Store == nil {
		o.Store = datacube.NewFileStore()
	}
}
