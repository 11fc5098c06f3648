// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the trees of a PhyMod project.
package terms

import (
	"fmt"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/phymod/cmd/phymod/analysis"
	"github.com/js-arias/phymod/modtree"
	"github.com/js-arias/phymod/phylo"
	"github.com/js-arias/phymod/project"
)

var Command = &command.Command{
	Usage: "terms [--tree <tree-name>] [--missing] <project-file>",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the trees from a PhyMod project and print the name of the
terminals in the standard output.

The argument of the command is the name of the project file.

By default all terminals will be printed. If the flag --tree is set, only the
terminals of the indicated tree will be printed.

If the project has a value file, a warning will be printed for the terminals
without values, and for the values without terminals. If the flag --missing
is given, only the terminals without values will be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var missing bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&missing, "missing", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	ts, err := p.Trees()
	if err != nil {
		return err
	}
	if treeName != "" {
		ts = slices.DeleteFunc(ts, func(t *phylo.Tree) bool {
			return t.Name != treeName
		})
	}

	terms := make(map[string]bool)
	if p.Path(project.Values) == "" {
		if missing {
			return c.UsageError("undefined values in project, flag --missing")
		}
		for _, t := range ts {
			for _, tax := range t.Terms() {
				terms[tax] = true
			}
		}
	} else {
		pp, err := p.Params()
		if err != nil {
			return err
		}
		d, err := p.Values(pp.Mode())
		if err != nil {
			return err
		}

		logger := analysis.NewLogger(c.Stderr())
		for _, t := range ts {
			noValue, noLeaf := modtree.Mismatch(t, d)
			for _, tax := range noValue {
				logger.Warnf("tree %q: leaf %q without value", t.Name, tax)
			}
			for _, tax := range noLeaf {
				logger.Warnf("tree %q: value %q without leaf", t.Name, tax)
			}

			ls := t.Terms()
			if missing {
				ls = noValue
			}
			for _, tax := range ls {
				terms[tax] = true
			}
		}
	}

	termList := make([]string, 0, len(terms))
	for tax := range terms {
		termList = append(termList, tax)
	}
	slices.Sort(termList)

	for _, term := range termList {
		fmt.Fprintf(c.Stdout(), "%s\n", term)
	}
	return nil
}
