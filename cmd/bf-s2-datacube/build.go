package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/venicegeo/bf-s2-datacube/localindex"
	"github.com/venicegeo/bf-s2-datacube/model"
	"github.com/venicegeo/bf-s2-datacube/pipeline"
	"github.com/venicegeo/bf-s2-datacube/scihub"
	"github.com/venicegeo/bf-s2-datacube/util"
	"github.com/venicegeo/geojson-go/geojson"
	cli "gopkg.in/urfave/cli.v1"
)

var buildFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "resolution, r",
		Usage: "Output pixel size in meters (10, 20, 60 or 100)",
		Value: 100,
	},
	cli.StringFlag{
		Name:  "workspace, w",
		Usage: "Working directory for archives, tiles and the merged cube (default: CUBE_WORKSPACE)",
	},
	cli.StringFlag{
		Name:  "start",
		Usage: "Earliest acquisition date, as YYYY-MM-DD",
	},
	cli.StringFlag{
		Name:  "end",
		Usage: "Latest acquisition date, as YYYY-MM-DD",
	},
	cli.StringFlag{
		Name:  "aoi",
		Usage: "Path to a GeoJSON polygon describing the area of interest",
	},
	cli.Float64Flag{
		Name:  "max-cloud",
		Usage: "Maximum cloud cover percentage",
		Value: 30,
	},
	cli.StringFlag{
		Name:  "output, o",
		Usage: "Merged cube file name",
		Value: pipeline.DefaultOutputName,
	},
}

var runPipelineFunc = pipeline.Run

func buildAction(c *cli.Context) {
	options, err := buildOptionsFromFlags(c)
	if err != nil {
		log.Fatal(err)
	}

	logContext := &util.BasicLogContext{}
	if database, dbErr := getDbConnectionFunc(logContext); dbErr == nil {
		indexContext := &localindex.Context{DB: database}
		options.OnProductsFetched = func(products []scihub.Product) error {
			return localindex.RecordProducts(indexContext, products)
		}
		defer database.Close()
	} else {
		util.LogInfo(logContext, "No database configured, product indexing disabled: "+dbErr.Error())
	}

	if err = runPipelineFunc(options, &pipeline.Context{}); err != nil {
		log.Fatal("Cube build failed: ", err)
	}
}

func buildOptionsFromFlags(c *cli.Context) (pipeline.Options, error) {
	options := pipeline.Options{
		Resolution:    c.Int("resolution"),
		Workspace:     c.String("workspace"),
		MaxCloudCover: c.Float64("max-cloud"),
		OutputName:    c.String("output"),
	}

	var err error
	if options.StartDate, err = time.Parse(model.ISODateFormat, c.String("start")); err != nil {
		return options, fmt.Errorf("invalid start date %q: %v", c.String("start"), err)
	}
	if options.EndDate, err = time.Parse(model.ISODateFormat, c.String("end")); err != nil {
		return options, fmt.Errorf("invalid end date %q: %v", c.String("end"), err)
	}

	if aoiPath := c.String("aoi"); aoiPath != "" {
		if options.AOI, err = readAOI(aoiPath); err != nil {
			return options, err
		}
	}
	return options, nil
}

func readAOI(path string) (*geojson.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := geojson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid GeoJSON in %v: %v", path, err)
	}
	polygon, ok := parsed.(*geojson.Polygon)
	if !ok {
		return nil, fmt.Errorf("expected a GeoJSON Polygon in %v and got %T", path, parsed)
	}
	return polygon, nil
}
