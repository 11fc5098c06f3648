// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package modtree

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/js-arias/phymod/stattest"
)

// NodeHeader is the header of the table
// with the statistics of all nodes.
const NodeHeader = "node_id\tntaxa_a\tntaxa_b\tmember_mean\tP-value\tmin_ancestor_P-value\tmin_descendant_P-value"

// Row returns the statistics of a node
// as a tab-delimited row:
// the number of members,
// the number of non-members,
// the note of the test,
// the p-value,
// and the minimum p-values of the ancestors and descendants.
func (n *Node) Row() string {
	return fmt.Sprintf("%d\t%d\t%s\t%.1g\t%.1g\t%.1g", len(n.members), len(n.nonMembers), n.note, n.p, n.ancMin, n.descMin)
}

// Direction returns the direction of the difference
// between members and non-members.
// In continuous mode it is "lo"
// if the mean of the members is smaller
// than the mean of the non-members,
// and "hi" otherwise.
// In discrete mode it is always "enriched".
func (n *Node) Direction(mode stattest.Mode) string {
	if mode == stattest.Discrete {
		return "enriched"
	}
	if n.memberMean < n.nonMemberMean {
		return "lo"
	}
	return "hi"
}

// ModuleRow returns a node as a module
// in a tab-delimited row:
// the sorted list of leaves (separated by commas),
// the direction of the difference,
// the note of the test,
// and the p-value.
func (n *Node) ModuleRow(mode stattest.Mode) string {
	leaves := n.Leaves()
	slices.Sort(leaves)
	return fmt.Sprintf("%s\t%s\t%s\t%.1g", strings.Join(leaves, ","), n.Direction(mode), n.note, n.p)
}

// WriteNodes writes the statistics of all the nodes of the tree.
// Node identifiers are the pre-order index of each node.
func (t *Tree) WriteNodes(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", NodeHeader)
	for i, n := range t.Nodes() {
		fmt.Fprintf(bw, "%d\t%s\n", i, n.Row())
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing tree %q: %v", t.name, err)
	}
	return nil
}

// ModuleHeader is the header of the table of modules.
const ModuleHeader = "tree\tleaves\tdirection\tnote\tP-value"

// WriteModules writes a list of modules,
// each row prefixed by the name of the tree.
func (t *Tree) WriteModules(w io.Writer, mods []*Node) error {
	bw := bufio.NewWriter(w)
	for _, n := range mods {
		fmt.Fprintf(bw, "%s\t%s\n", t.name, n.ModuleRow(t.mode))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing tree %q: %v", t.name, err)
	}
	return nil
}
