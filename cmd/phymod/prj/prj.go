// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// and edit the basic information of a project.
package prj

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phymod/project"
	"github.com/js-arias/phymod/stattest"
)

var Command = &command.Command{
	Usage: "prj [--values] <project-file> [<dataset>=<path>...]",
	Short: "print or set the information of a project",
	Long: `
Command prj reads a PhyMod project and prints the information of the different
project elements into the standard output.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

Additional arguments, in the form <dataset>=<path>, set the path of the
indicated dataset. If the path is empty, the dataset will be removed from the
project. Valid datasets are:

	newick  trees in Newick (parenthetical) format
	trees   trees in tab-delimited format
	values  values observed on the tree leaves
	params  analysis parameters

See 'phymod help projects' for a description of the datasets.

If the flag --values is defined, instead of the project information, the
values observed on the leaves will be printed as a tab-delimited table, using
the mode defined in the project parameters. This is useful to check how a
value file is read, or to convert a headerless or comma delimited file into a
standard value file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var valuesFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&valuesFlag, "values", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	if len(args) > 1 {
		for _, a := range args[1:] {
			set, path, ok := strings.Cut(a, "=")
			if !ok {
				return c.UsageError(fmt.Sprintf("invalid dataset argument %q", a))
			}
			ds := project.Dataset(strings.ToLower(strings.TrimSpace(set)))
			if !ds.Valid() {
				return c.UsageError(fmt.Sprintf("unknown dataset %q", set))
			}
			p.Add(ds, strings.TrimSpace(path))
		}
		if err := p.Write(); err != nil {
			return err
		}
	}

	if valuesFlag {
		return printValues(c.Stdout(), p)
	}
	return report(c.Stdout(), p)
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func report(w io.Writer, p *project.Project) error {
	pp, err := p.Params()
	if err != nil {
		return err
	}
	if name := p.Path(project.Params); name != "" {
		fmt.Fprintf(w, "Parameters: %s\n", name)
	} else {
		fmt.Fprintf(w, "Parameters: default\n")
	}
	fmt.Fprintf(w, "\tcutoff: %g\n", pp.Cutoff())
	fmt.Fprintf(w, "\tmode: %s\n", pp.Mode())
	if pp.Collapse() > 0 {
		fmt.Fprintf(w, "\tcollapse: %g\n", pp.Collapse())
	}
	if pp.SupportLen() {
		fmt.Fprintf(w, "\tsupport stored as branch length\n")
	}
	if pp.Prune() {
		fmt.Fprintf(w, "\tprune leaves without values\n")
	}

	if p.Path(project.Trees) != "" || p.Path(project.Newick) != "" {
		ts, err := p.Trees()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Trees: %s %s\n", p.Path(project.Trees), p.Path(project.Newick))
		for _, t := range ts {
			fmt.Fprintf(w, "\t%s: %d terminals, %d nodes\n", t.Name, len(t.Terms()), t.Len())
		}
	}

	if name := p.Path(project.Values); name != "" {
		d, err := p.Values(pp.Mode())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Values: %s\n", name)
		fmt.Fprintf(w, "\tleaves: %d\n", d.Len())
		if pp.Mode() == stattest.Discrete {
			fmt.Fprintf(w, "\tcategories: %s\n", strings.Join(d.Categories(), ", "))
		}
	}
	return nil
}

func printValues(w io.Writer, p *project.Project) error {
	if p.Path(project.Values) == "" {
		return fmt.Errorf("project %q: undefined values dataset", p.Name())
	}
	pp, err := p.Params()
	if err != nil {
		return err
	}
	d, err := p.Values(pp.Mode())
	if err != nil {
		return err
	}
	return d.TSV(w)
}
