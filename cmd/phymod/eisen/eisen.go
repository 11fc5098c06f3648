// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package eisen implements a command to convert
// the gene tree of Eisen's Cluster program
// into a Newick tree.
package eisen

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phymod/phylo"
	"github.com/js-arias/phymod/project"
)

var Command = &command.Command{
	Usage: `eisen [-o|--output <file>] [--project <project-file>]
	<gtr-file> <cdt-file>`,
	Short: "convert a Cluster gene tree into Newick format",
	Long: `
Command eisen reads the gene tree produced by Eisen's Cluster program (the
.gtr and .cdt files) and writes it in Newick format.

The first argument of the command is the name of the gtr file, with the joins
of the tree. The second argument is the name of the cdt file, with the data
table; the first column of the table is the gene identifier used in the gtr
file, and the second column the gene name, used as the leaf name.

The branch length of each node is the difference between the similarity of
the node and the similarity of its parent. Leaves are assumed to have a
similarity of 1.

By default the tree will be printed in the standard output. Use the flag
--output, or -o, to define an output file.

If the flag --project is defined, the output file will be stored as the Newick
dataset of the indicated project. If the project does not exist, it will be
created.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var prjFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&prjFile, "project", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting gtr and cdt files")
	}
	if prjFile != "" && output == "" {
		return c.UsageError("flag --project requires an output file")
	}

	t, err := readTree(args[0], args[1])
	if err != nil {
		return err
	}

	if output == "" {
		return phylo.WriteNewick(c.Stdout(), []*phylo.Tree{t})
	}
	if err := writeTree(output, t); err != nil {
		return err
	}

	if prjFile == "" {
		return nil
	}
	p, err := project.Read(prjFile)
	if errors.Is(err, os.ErrNotExist) {
		p = project.New()
		p.SetName(prjFile)
		err = nil
	}
	if err != nil {
		return fmt.Errorf("unable to open project %q: %v", prjFile, err)
	}
	p.Add(project.Newick, output)
	return p.Write()
}

func readTree(gtrFile, cdtFile string) (*phylo.Tree, error) {
	gtr, err := os.Open(gtrFile)
	if err != nil {
		return nil, err
	}
	defer gtr.Close()

	cdt, err := os.Open(cdtFile)
	if err != nil {
		return nil, err
	}
	defer cdt.Close()

	t, err := phylo.ReadEisen(gtr, cdt)
	if err != nil {
		return nil, fmt.Errorf("on files %q and %q: %v", gtrFile, cdtFile, err)
	}
	return t, nil
}

func writeTree(name string, t *phylo.Tree) (err error) {
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

	fmt.Fprintf(f, "[gene tree converted by phymod eisen]\n")
	if err := phylo.WriteNewick(f, []*phylo.Tree{t}); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
