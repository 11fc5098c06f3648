// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"

	"github.com/js-arias/phymod/param"
	"github.com/js-arias/phymod/phylo"
	"github.com/js-arias/phymod/stattest"
	"github.com/js-arias/phymod/values"
)

// Name returns the file name of the project.
func (p *Project) Name() string {
	return p.name
}

// Params reads the parameter file
// as defined in a project.
// If no parameter file is defined,
// it returns the default parameters.
func (p *Project) Params() (*param.P, error) {
	name := p.Path(Params)
	if name == "" {
		return param.New(""), nil
	}
	return param.Read(name)
}

// Trees reads the trees
// as defined in a project.
// Trees from the tab-delimited tree file
// are returned before the trees from the Newick file.
func (p *Project) Trees() ([]*phylo.Tree, error) {
	var ts []*phylo.Tree
	if name := p.Path(Trees); name != "" {
		tt, err := phylo.ReadFile(name, phylo.TSV)
		if err != nil {
			return nil, err
		}
		ts = append(ts, tt...)
	}
	if name := p.Path(Newick); name != "" {
		nt, err := phylo.ReadFile(name, phylo.Newick)
		if err != nil {
			return nil, err
		}
		ts = append(ts, nt...)
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}
	return ts, nil
}

// Values reads the leaf values
// as defined in a project.
func (p *Project) Values(mode stattest.Mode) (*values.Data, error) {
	name := p.Path(Values)
	if name == "" {
		return nil, fmt.Errorf("values not defined in project %q", p.name)
	}
	return values.ReadFile(name, mode)
}
