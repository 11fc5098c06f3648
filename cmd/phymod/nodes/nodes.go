// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package nodes implements a command to print
// the statistics of all the nodes
// of the trees in a PhyMod project.
package nodes

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phymod/cmd/phymod/analysis"
	"github.com/js-arias/phymod/project"
)

var Command = &command.Command{
	Usage: `nodes ` + analysis.FlagsUsage + `
	[-o|--output <file>]
	<project-file>`,
	Short: "print the statistics of all tree nodes",
	Long: `
Command nodes reads the trees and leaf values of a PhyMod project, and prints
the statistics of every internal node of each tree, including the root and
the nodes that are not modules.

The argument of the command is the name of the project file.
` + analysis.FlagsHelp + `
For each tree, the name of the tree is printed as a comment line, followed by
a tab-delimited table with the following fields:

	- node_id                 the index of the node in pre-order
	- ntaxa_a                 the number of leaves with values in the node
	- ntaxa_b                 the number of leaves with values outside
	                          the node
	- member_mean             the mean of the node (continuous mode) or
	                          the enriched category (discrete mode)
	- P-value                 the p-value of the node
	- min_ancestor_P-value    the minimum p-value of the ancestors
	- min_descendant_P-value  the minimum p-value of the descendants

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

	mts, _, err := analysis.Run(p, &flags, analysis.NewLogger(c.Stderr()))
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

	for _, mt := range mts {
		fmt.Fprintf(w, "# tree: %s\n", mt.Name())
		if err := mt.WriteNodes(w); err != nil {
			return err
		}
	}
	return nil
}
