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

package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

const version = "1.0.0"

var commands = cli.Commands{
	cli.Command{
		Name:    "build",
		Aliases: []string{"b"},
		Usage:   "Fetch matching Sentinel-2 products and build one merged datacube",
		Flags:   buildFlags,
		Action:  buildAction,
	},
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the bf-s2-datacube webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "schedule",
		Aliases: []string{"c"},
		Usage:   "Run cube builds on a schedule with an HTTP control endpoint",
		Flags:   buildFlags,
		Action:  scheduleAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the datacube CLI",
		Action:  versionAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "bf-s2-datacube"
	app.Usage = "Launch a bf-s2-datacube process"
	app.Commands = commands
	return
}

func versionAction(c *cli.Context) {
	fmt.Fprintln(c.App.Writer, version)
}
