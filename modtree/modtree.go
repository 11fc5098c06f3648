// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package modtree implements a tree annotated
// with the statistics used to find modules:
// groups of leaves with values
// that are significantly different
// from the values of the rest of the tree.
//
// For each internal node,
// the values of the leaves descendant of the node
// (the members)
// are compared with the values of all other leaves in the tree
// (the non-members).
// A node is a module
// if its p-value is smaller than the p-value of any of its ancestors,
// the p-value of any of its descendants,
// and a given cutoff value.
package modtree

import (
	"github.com/js-arias/phymod/phylo"
	"github.com/js-arias/phymod/stattest"
	"github.com/js-arias/phymod/values"
)

// A Tree is a tree annotated with the statistics
// of each internal node.
type Tree struct {
	name  string
	mode  stattest.Mode
	root  *Node
	terms []string
}

// A Node is an internal node of an annotated tree.
type Node struct {
	src      *phylo.Node
	children []*Node

	members    []values.Value
	nonMembers []values.Value

	// means of the members and non-members
	// in continuous mode
	memberMean    float64
	nonMemberMean float64

	p    float64
	note string

	ancMin  float64
	descMin float64

	module bool
}

// Build creates an annotated tree
// from a tree and a set of leaf values.
// Leaves without values are ignored.
//
// The statistics of each node
// are calculated during the build.
// Use Propagate to calculate the minimum p-values
// of the ancestors and descendants of each node.
func Build(t *phylo.Tree, d *values.Data) *Tree {
	nt := &Tree{
		name: t.Name,
		mode: d.Mode(),
	}
	if t.Root == nil {
		return nt
	}
	nt.terms = t.Root.Leaves()
	nt.root = nt.build(t.Root, d)
	return nt
}

func (t *Tree) build(src *phylo.Node, d *values.Data) *Node {
	n := &Node{
		src:     src,
		p:       1,
		ancMin:  1,
		descMin: 1,
	}
	for _, c := range src.Children {
		if c.IsLeaf() {
			continue
		}
		n.children = append(n.children, t.build(c, d))
	}

	in := make(map[string]bool)
	for _, id := range src.Leaves() {
		in[id] = true
		if v, ok := d.Value(id); ok {
			n.members = append(n.members, v)
		}
	}
	for _, id := range t.terms {
		if in[id] {
			continue
		}
		if v, ok := d.Value(id); ok {
			n.nonMembers = append(n.nonMembers, v)
		}
	}

	if len(n.members) > 0 && len(n.nonMembers) > 0 {
		n.test(t.mode)
	}
	return n
}

func (n *Node) test(mode stattest.Mode) {
	if mode == stattest.Discrete {
		a := make([][]string, 0, len(n.members))
		for _, v := range n.members {
			a = append(a, v.Cats)
		}
		b := make([][]string, 0, len(n.nonMembers))
		for _, v := range n.nonMembers {
			b = append(b, v.Cats)
		}
		n.p, n.note = stattest.Enrichment(a, b)
		return
	}

	a := make([]float64, 0, len(n.members))
	for _, v := range n.members {
		a = append(a, v.Num)
	}
	b := make([]float64, 0, len(n.nonMembers))
	for _, v := range n.nonMembers {
		b = append(b, v.Num)
	}
	n.memberMean = stattest.Mean(a)
	n.nonMemberMean = stattest.Mean(b)
	n.p, n.note = stattest.TTest(a, b)
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.name
}

// Mode returns the mode used for the statistical tests.
func (t *Tree) Mode() stattest.Mode {
	return t.mode
}

// Root returns the root node of the tree.
// It returns nil on an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Terms returns the identifiers of all the leaves of the tree.
func (t *Tree) Terms() []string {
	return t.terms
}

// Nodes returns the nodes of the tree
// in pre-order.
// The index of a node in the returned slice
// is used as the node identifier in the reports.
func (t *Tree) Nodes() []*Node {
	if t.root == nil {
		return nil
	}
	return t.root.preOrder(nil)
}

func (n *Node) preOrder(ls []*Node) []*Node {
	ls = append(ls, n)
	for _, c := range n.children {
		ls = c.preOrder(ls)
	}
	return ls
}

// Children returns the internal descendants of the node.
func (n *Node) Children() []*Node {
	return n.children
}

// Leaves returns the identifiers of the leaves
// descendant of the node.
func (n *Node) Leaves() []string {
	return n.src.Leaves()
}

// Source returns the wrapped tree node.
func (n *Node) Source() *phylo.Node {
	return n.src
}

// Members returns the values of the leaves
// descendant of the node.
func (n *Node) Members() []values.Value {
	return n.members
}

// NonMembers returns the values of the leaves
// that are not descendant of the node.
func (n *Node) NonMembers() []values.Value {
	return n.nonMembers
}

// P returns the p-value of the node.
func (n *Node) P() float64 {
	return n.p
}

// Note returns the description of the test:
// the mean of the members in continuous mode,
// or the enriched category in discrete mode.
func (n *Node) Note() string {
	return n.note
}

// AncestorMin returns the minimum p-value
// of the ancestors of the node.
func (n *Node) AncestorMin() float64 {
	return n.ancMin
}

// DescendantMin returns the minimum p-value
// of the descendants of the node.
func (n *Node) DescendantMin() float64 {
	return n.descMin
}

// IsModule returns true if the node
// was selected as a module.
func (n *Node) IsModule() bool {
	return n.module
}

// Mismatch returns the leaves of the tree without values,
// and the leaves with values that are not in the tree.
func Mismatch(t *phylo.Tree, d *values.Data) (noValue, noLeaf []string) {
	terms := t.Terms()
	in := make(map[string]bool, len(terms))
	for _, id := range terms {
		in[id] = true
		if !d.Has(id) {
			noValue = append(noValue, id)
		}
	}
	for _, id := range d.Taxa() {
		if !in[id] {
			noLeaf = append(noLeaf, id)
		}
	}
	return noValue, noLeaf
}
