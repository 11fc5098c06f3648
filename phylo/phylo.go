// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylo implements a simple rooted tree
// (a phylogeny or a dendrogram)
// as read from tree files,
// and the transformations applied to it
// before searching for modules.
package phylo

import "slices"

// A Node is a node of a rooted tree.
type Node struct {
	// ID is the identifier of a leaf.
	// Internal nodes do not have an ID.
	ID string

	// Children are the descendants of the node,
	// in the order they were read.
	Children []*Node

	// Length is the length of the branch
	// that connects the node with its parent.
	Length float64

	// Support is the support of the node
	// (e.g., a bootstrap frequency).
	// It is only valid if HasSupport is true.
	Support    float64
	HasSupport bool
}

// IsLeaf returns true if the node is a leaf of the tree.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0 && n.ID != ""
}

// Leaves returns the identifiers of the leaves
// descendant from the node,
// in tree order.
func (n *Node) Leaves() []string {
	return n.appendLeaves(nil)
}

func (n *Node) appendLeaves(ls []string) []string {
	if n.IsLeaf() {
		return append(ls, n.ID)
	}
	for _, c := range n.Children {
		ls = c.appendLeaves(ls)
	}
	return ls
}

func (n *Node) size() int {
	sz := 1
	for _, c := range n.Children {
		sz += c.size()
	}
	return sz
}

// A Tree is a rooted tree.
type Tree struct {
	// Name of the tree.
	Name string

	// Root of the tree.
	Root *Node
}

// Terms returns the identifiers of the tree leaves,
// sorted alphabetically.
func (t *Tree) Terms() []string {
	if t.Root == nil {
		return nil
	}
	ls := t.Root.Leaves()
	slices.Sort(ls)
	return ls
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t.Root == nil {
		return 0
	}
	return t.Root.size()
}
