// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

// Collapse removes the internal nodes
// with a support value below the threshold.
// The children of a removed node
// are attached to its parent,
// at the position of the removed node,
// and its branch length is added to the branch of each child.
// Nodes without a support value,
// and the root,
// are never removed.
//
// It returns the number of removed nodes.
func (t *Tree) Collapse(threshold float64) int {
	if t.Root == nil {
		return 0
	}
	return t.Root.collapse(threshold)
}

func (n *Node) collapse(threshold float64) int {
	var removed int
	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		removed += c.collapse(threshold)
		if len(c.Children) == 0 || !c.HasSupport || c.Support >= threshold {
			children = append(children, c)
			continue
		}

		for _, gc := range c.Children {
			gc.Length += c.Length
			children = append(children, gc)
		}
		removed++
	}
	n.Children = children
	return removed
}

// LengthAsSupport is used for trees
// in which the support of the nodes
// is stored as the branch length of internal nodes.
// For each internal node,
// except the root,
// it moves the branch length into the node support,
// and set the length to 0.
//
// It returns the number of modified nodes.
func (t *Tree) LengthAsSupport() int {
	if t.Root == nil {
		return 0
	}
	var mod int
	for _, c := range t.Root.Children {
		mod += c.lengthAsSupport()
	}
	return mod
}

func (n *Node) lengthAsSupport() int {
	if len(n.Children) == 0 {
		return 0
	}

	n.Support = n.Length
	n.HasSupport = true
	n.Length = 0
	mod := 1
	for _, c := range n.Children {
		mod += c.lengthAsSupport()
	}
	return mod
}

// Prune removes the leaves
// for which keep returns false.
// Internal nodes left without descendants
// are removed too,
// and internal nodes left with a single descendant
// are replaced by that descendant
// (adding the branch lengths).
//
// It returns the number of removed leaves.
func (t *Tree) Prune(keep func(id string) bool) int {
	if t.Root == nil {
		return 0
	}
	removed := t.Root.prune(keep)
	for len(t.Root.Children) == 1 && !t.Root.Children[0].IsLeaf() {
		t.Root = t.Root.Children[0]
		t.Root.Length = 0
	}
	return removed
}

func (n *Node) prune(keep func(id string) bool) int {
	var removed int
	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.IsLeaf() {
			if !keep(c.ID) {
				removed++
				continue
			}
			children = append(children, c)
			continue
		}

		removed += c.prune(keep)
		switch len(c.Children) {
		case 0:
			continue
		case 1:
			gc := c.Children[0]
			gc.Length += c.Length
			children = append(children, gc)
		default:
			children = append(children, c)
		}
	}
	n.Children = children
	return removed
}
