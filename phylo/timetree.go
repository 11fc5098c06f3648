// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/timetree"
)

// MillionYears is the scale of the branch lengths
// of trees imported from time calibrated trees.
const MillionYears = 1_000_000

// FromTimeTree creates a tree from a time calibrated tree.
// Branch lengths are in million years.
func FromTimeTree(t *timetree.Tree) *Tree {
	nt := &Tree{
		Name: t.Name(),
	}
	nt.Root = copyTimeNode(t, t.Root())
	return nt
}

func copyTimeNode(t *timetree.Tree, id int) *Node {
	n := &Node{}
	if !t.IsRoot(id) {
		n.Length = float64(t.Age(t.Parent(id))-t.Age(id)) / MillionYears
	}
	if t.IsTerm(id) {
		n.ID = t.Taxon(id)
		return n
	}
	for _, c := range t.Children(id) {
		n.Children = append(n.Children, copyTimeNode(t, c))
	}
	return n
}

// ReadTimeTrees reads the trees
// from a tab-delimited time tree file.
func ReadTimeTrees(r io.Reader) ([]*Tree, error) {
	c, err := timetree.ReadTSV(r)
	if err != nil {
		return nil, err
	}

	var ts []*Tree
	for _, tn := range c.Names() {
		ts = append(ts, FromTimeTree(c.Tree(tn)))
	}
	return ts, nil
}

// Valid tree file formats.
const (
	Newick = "newick"
	TSV    = "tsv"
)

// ReadFile reads the trees stored in a file.
// Format must be either "newick" or "tsv".
// If format is empty,
// the file extension will be used:
// files ending in ".tab" or ".tsv" are read as time tree files,
// any other file is read as a Newick file.
func ReadFile(name, format string) ([]*Tree, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".tab", ".tsv":
			format = TSV
		default:
			format = Newick
		}
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ts []*Tree
	switch format {
	case Newick:
		ts, err = ReadNewick(f)
	case TSV:
		ts, err = ReadTimeTrees(f)
	default:
		return nil, fmt.Errorf("unknown tree format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	if format == Newick && len(ts) == 1 {
		ts[0].Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return ts, nil
}
