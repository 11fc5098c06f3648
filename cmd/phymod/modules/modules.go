// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package modules implements a command to print
// the modules found in the trees of a PhyMod project.
package modules

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phymod/cmd/phymod/analysis"
	"github.com/js-arias/phymod/modtree"
	"github.com/js-arias/phymod/project"
)

var Command = &command.Command{
	Usage: `modules ` + analysis.FlagsUsage + `
	[-o|--output <file>]
	<project-file>`,
	Short: "print the modules of the project trees",
	Long: `
Command modules reads the trees and leaf values of a PhyMod project, and
prints the modules found in each tree.

For each internal node of a tree, the values of the leaves descendant of the
node are compared with the values of all the other leaves of the tree. A node
is a module if its p-value is smaller than the cutoff, and smaller than the
p-value of any of its ancestors and any of its descendants. Descendants of a
module are never reported, and the root is never a module.

The argument of the command is the name of the project file.
` + analysis.FlagsHelp + `
The output is a tab-delimited table, with a row for each module, and the
following fields:

	- tree       the name of the tree
	- leaves     a comma separated list of the leaves in the module
	- direction  "lo" or "hi" if the mean of the module is lower or
	             higher than the rest of the leaves (continuous mode),
	             or "enriched" (discrete mode)
	- note       the mean of the module (continuous mode) or the
	             enriched category (discrete mode)
	- P-value    the p-value of the module

By default the results will be printed in the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var flags analysis.Flags
var output string

func setFlags(c *command.Command) {
	flags.Set(c)
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	mts, pp, err := analysis.Run(p, &flags, analysis.NewLogger(c.Stderr()))
	if err != nil {
		return err
	}

	var w io.Writer = c.Stdout()
	if output != "" {
		var f *os.File
		f, err = os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	fmt.Fprintf(w, "# modules with cutoff %g, %s mode\n", pp.Cutoff(), pp.Mode())
	fmt.Fprintf(w, "%s\n", modtree.ModuleHeader)
	for _, mt := range mts {
		if err := mt.WriteModules(w, mt.Modules(pp.Cutoff())); err != nil {
			return err
		}
	}
	return nil
}
