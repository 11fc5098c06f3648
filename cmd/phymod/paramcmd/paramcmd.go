// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package paramcmd implements a command to print
// and edit the analysis parameters of a project.
package paramcmd

import (
	"fmt"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phymod/param"
	"github.com/js-arias/phymod/project"
)

var Command = &command.Command{
	Usage: `param [-f|--file <file>]
	<project-file> [<parameter>=<value>...]`,
	Short: "print or set the analysis parameters of a project",
	Long: `
Command param reads the analysis parameters of a PhyMod project and prints
them in the standard output.

The first argument of the command is the name of the project file.

Additional arguments, in the form <parameter>=<value>, set the value of the
indicated parameter. Valid parameters are:

	cutoff      maximum p-value of a module
	mode        "continuous" or "discrete"
	collapse    support threshold to collapse nodes (0 for no collapse)
	supportlen  "true" if node support is stored as branch lengths
	prune       "true" to remove leaves without values

When setting values, the parameters will be stored in the parameter file
currently defined for the project. If the project does not have a parameter
file, a new one will be created with the name 'params.tab'. A different file
name can be defined using the flag --file, or -f. If the file name ends with
".toml", the parameters will be stored as a TOML file.

See 'phymod help parameter-files' for a description of the parameter file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var paramFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().StringVar(&paramFile, "f", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	pp, err := p.Params()
	if err != nil {
		return err
	}

	if len(args) > 1 {
		for _, a := range args[1:] {
			name, v, ok := strings.Cut(a, "=")
			if !ok {
				return c.UsageError(fmt.Sprintf("invalid parameter argument %q", a))
			}
			pn := param.Param(strings.ToLower(strings.TrimSpace(name)))
			switch pn {
			case param.Collapse, param.Cutoff, param.Mode, param.Prune, param.SupportLen:
			default:
				return c.UsageError(fmt.Sprintf("unknown parameter %q", name))
			}
			if err := pp.Set(pn, v); err != nil {
				return fmt.Errorf("parameter %q: %v", name, err)
			}
		}

		if paramFile == "" {
			paramFile = p.Path(project.Params)
			if paramFile == "" {
				paramFile = "params.tab"
			}
		}
		pp.SetName(paramFile)
		if err := pp.Write(); err != nil {
			return err
		}
		p.Add(project.Params, paramFile)
		if err := p.Write(); err != nil {
			return err
		}
	}

	fmt.Fprintf(c.Stdout(), "%s\t%g\n", param.Cutoff, pp.Cutoff())
	fmt.Fprintf(c.Stdout(), "%s\t%s\n", param.Mode, pp.Mode())
	fmt.Fprintf(c.Stdout(), "%s\t%g\n", param.Collapse, pp.Collapse())
	fmt.Fprintf(c.Stdout(), "%s\t%v\n", param.SupportLen, pp.SupportLen())
	fmt.Fprintf(c.Stdout(), "%s\t%v\n", param.Prune, pp.Prune())
	return nil
}
