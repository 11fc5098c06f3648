// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyMod is a tool for the detection of phylogenetic modules.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phymod/cmd/phymod/draw"
	"github.com/js-arias/phymod/cmd/phymod/eisen"
	"github.com/js-arias/phymod/cmd/phymod/modules"
	"github.com/js-arias/phymod/cmd/phymod/nodes"
	"github.com/js-arias/phymod/cmd/phymod/paramcmd"
	"github.com/js-arias/phymod/cmd/phymod/prj"
	"github.com/js-arias/phymod/cmd/phymod/terms"
)

var app = &command.Command{
	Usage: "phymod <command> [<argument>...]",
	Short: "a tool for the detection of phylogenetic modules",
}

func init() {
	app.Add(draw.Command)
	app.Add(eisen.Command)
	app.Add(modules.Command)
	app.Add(nodes.Command)
	app.Add(paramcmd.Command)
	app.Add(prj.Command)
	app.Add(terms.Command)
}

func main() {
	app.Main()
}
