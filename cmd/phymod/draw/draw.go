// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// the trees of a PhyMod project
// with the modules highlighted.
package draw

import (
	"bufio"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phymod/cmd/phymod/analysis"
	"github.com/js-arias/phymod/project"
)

var Command = &command.Command{
	Usage: `draw ` + analysis.FlagsUsage + `
	[--step <value>] [--plot]
	[-o|--output <out-prefix>]
	<project-file>`,
	Short: "draw project trees with modules as SVG files",
	Long: `
Command draw reads the trees and leaf values of a PhyMod project, search for
the modules of each tree, and draws the trees into SVG-encoded files. The
branches of each module are colored by the p-value of the module, and the
module nodes are labeled with the note and the p-value of the module.

The argument of the command is the name of the project file.
` + analysis.FlagsHelp + `
By default, 10 pixel units will be used per branch length unit; use the flag
--step to define a different value (it can have decimal points). If the tree
does not have branch lengths, each branch will have a length of one unit.

If the flag --plot is given, a histogram of the p-values of the nodes of each
tree will be saved as a PNG file.

By default, the names of the trees will be used as the output file names. Use
the flag -o, or --output, to define a prefix for the resulting files.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var flags analysis.Flags
var stepX float64
var plotFlag bool
var outPrefix string

func setFlags(c *command.Command) {
	flags.Set(c)
	c.Flags().Float64Var(&stepX, "step", 10, "")
	c.Flags().BoolVar(&plotFlag, "plot", false, "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if stepX <= 0 {
		return c.UsageError(fmt.Sprintf("invalid step value %.6f", stepX))
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	mts, pp, err := analysis.Run(p, &flags, analysis.NewLogger(c.Stderr()))
	if err != nil {
		return err
	}

	for _, mt := range mts {
		if mt.Root() == nil {
			continue
		}
		mt.Modules(pp.Cutoff())

		name := outName(mt.Name())
		if err := writeSVG(name+".svg", copyTree(mt, stepX, pp.Cutoff())); err != nil {
			return err
		}
		if plotFlag {
			if err := pValuePlot(mt, pp.Cutoff(), name+"-pvalues.png"); err != nil {
				return err
			}
		}
	}
	return nil
}

func outName(name string) string {
	if outPrefix != "" {
		return fmt.Sprintf("%s-%s", outPrefix, name)
	}
	return name
}

func writeSVG(name string, t svgTree) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := t.draw(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
