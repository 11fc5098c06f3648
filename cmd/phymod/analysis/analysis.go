// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package analysis implements the shared steps
// of the commands that search for modules:
// reading the project data,
// transforming the trees,
// and building the annotated trees.
package analysis

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/js-arias/command"
	"github.com/js-arias/phymod/modtree"
	"github.com/js-arias/phymod/param"
	"github.com/js-arias/phymod/phylo"
	"github.com/js-arias/phymod/project"
	"github.com/js-arias/phymod/stattest"
)

// Flags are the command line options
// that override the parameters of a project.
type Flags struct {
	Cutoff     float64
	Mode       string
	Collapse   float64
	SupportLen bool
	Prune      bool
	Tree       string

	// flag set of the command,
	// used to know which flags were given
	fs *flag.FlagSet
}

// FlagsUsage is the usage of the analysis flags.
const FlagsUsage = `[--cutoff <value>] [--mode <mode>]
	[--collapse <value>] [--supportlen] [--prune]
	[--tree <tree-name>]`

// FlagsHelp is the help text of the analysis flags.
const FlagsHelp = `
By default, the analysis parameters are read from the parameter file defined
in the project (use 'phymod param' to edit them), or the default values are
used. The flags described below override the values of the parameter file.

The flag --cutoff defines the maximum p-value of a module. The default is
0.05.

The flag --mode defines the kind of values observed on the leaves. Valid
values are "continuous" (numbers, compared with a Student's t-test) and
"discrete" (category labels, compared with a one-sided Fisher's exact test).
The default is "continuous".

The flag --collapse defines a support threshold. Nodes with a support value
below the threshold will be collapsed before the analysis. Use the flag
--supportlen if the support of the nodes is stored as the branch length of
internal nodes.

By default, leaves without values are kept in the tree, but ignored in the
tests. Use the flag --prune to remove them from the tree.

By default, all the trees in the project will be analyzed. Use the flag
--tree to analyze only the indicated tree.
`

// Set sets the analysis flags of a command.
func (f *Flags) Set(c *command.Command) {
	f.fs = c.Flags()
	f.fs.Float64Var(&f.Cutoff, "cutoff", 0, "")
	f.fs.StringVar(&f.Mode, "mode", "", "")
	f.fs.Float64Var(&f.Collapse, "collapse", 0, "")
	f.fs.BoolVar(&f.SupportLen, "supportlen", false, "")
	f.fs.BoolVar(&f.Prune, "prune", false, "")
	f.fs.StringVar(&f.Tree, "tree", "", "")
}

// Params returns the parameters of a project
// with the values overridden by the flags.
//
// If the flags were set on a command,
// only the flags given in the command line
// override the parameters,
// even if they are set to a zero value
// (for example --collapse 0, or --prune=false).
// Otherwise,
// only the flags with non-zero values are used.
func (f *Flags) Params(p *project.Project) (*param.P, error) {
	pp, err := p.Params()
	if err != nil {
		return nil, err
	}

	given := f.given()
	if given["cutoff"] {
		if err := pp.SetCutoff(f.Cutoff); err != nil {
			return nil, err
		}
	}
	if given["mode"] {
		m, err := stattest.ParseMode(f.Mode)
		if err != nil {
			return nil, err
		}
		pp.SetMode(m)
	}
	if given["collapse"] {
		if err := pp.SetCollapse(f.Collapse); err != nil {
			return nil, err
		}
	}
	if given["supportlen"] {
		pp.SetSupportLen(f.SupportLen)
	}
	if given["prune"] {
		pp.SetPrune(f.Prune)
	}
	return pp, nil
}

// given returns the names of the flags
// that override the project parameters.
func (f *Flags) given() map[string]bool {
	given := make(map[string]bool)
	if f.fs != nil {
		f.fs.Visit(func(fl *flag.Flag) {
			given[fl.Name] = true
		})
		return given
	}

	given["cutoff"] = f.Cutoff != 0
	given["mode"] = f.Mode != ""
	given["collapse"] = f.Collapse != 0
	given["supportlen"] = f.SupportLen
	given["prune"] = f.Prune
	return given
}

// NewLogger returns the logger used to report warnings.
func NewLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "phymod",
		Level:  log.WarnLevel,
	})
}

// Run reads the trees and values of a project,
// and returns the annotated trees,
// with the p-values already propagated.
func Run(p *project.Project, f *Flags, logger *log.Logger) ([]*modtree.Tree, *param.P, error) {
	pp, err := f.Params(p)
	if err != nil {
		return nil, nil, err
	}

	ts, err := p.Trees()
	if err != nil {
		return nil, nil, err
	}
	if f.Tree != "" {
		ts = selectTree(ts, f.Tree)
		if len(ts) == 0 {
			return nil, nil, fmt.Errorf("tree %q not found in project %q", f.Tree, p.Name())
		}
	}

	d, err := p.Values(pp.Mode())
	if err != nil {
		return nil, nil, err
	}

	var mts []*modtree.Tree
	for _, t := range ts {
		if pp.SupportLen() {
			t.LengthAsSupport()
		}
		if pp.Collapse() > 0 {
			if n := t.Collapse(pp.Collapse()); n > 0 {
				logger.Warnf("tree %q: %d nodes collapsed (support < %g)", t.Name, n, pp.Collapse())
			}
		}

		noValue, noLeaf := modtree.Mismatch(t, d)
		if len(noValue) > 0 {
			logger.Warnf("tree %q: %d leaves without values: %s", t.Name, len(noValue), strings.Join(noValue, ", "))
		}
		if len(noLeaf) > 0 {
			logger.Warnf("tree %q: %d values without leaves: %s", t.Name, len(noLeaf), strings.Join(noLeaf, ", "))
		}
		if nt := len(t.Terms()); nt != d.Len() {
			logger.Warnf("tree %q: %d leaves, %d values", t.Name, nt, d.Len())
		}
		if pp.Prune() && len(noValue) > 0 {
			t.Prune(d.Has)
		}

		mt := modtree.Build(t, d)
		mt.Propagate()
		mts = append(mts, mt)
	}
	return mts, pp, nil
}

func selectTree(ts []*phylo.Tree, name string) []*phylo.Tree {
	for _, t := range ts {
		if t.Name == name {
			return []*phylo.Tree{t}
		}
	}
	return nil
}
