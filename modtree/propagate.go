// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package modtree

// Propagate sets the minimum p-value
// of the ancestors and the descendants
// of each node in the tree.
// The root has no ancestors,
// and nodes without internal descendants have no descendants,
// in both cases the minimum is 1.
func (t *Tree) Propagate() {
	if t.root == nil {
		return
	}
	t.root.downPass()
	t.root.ancMin = 1
	t.root.upPass()
}

// DownPass sets the minimum p-value of the descendants
// from the leaves to the root.
func (n *Node) downPass() float64 {
	n.descMin = 1
	for _, c := range n.children {
		m := c.downPass()
		n.descMin = min(n.descMin, c.p, m)
	}
	return n.descMin
}

// UpPass sets the minimum p-value of the ancestors
// from the root to the leaves.
func (n *Node) upPass() {
	m := min(n.p, n.ancMin)
	for _, c := range n.children {
		c.ancMin = m
		c.upPass()
	}
}

// Modules returns the nodes selected as modules
// in pre-order.
// A node is a module if its p-value
// is smaller than the cutoff
// and the minimum p-value of its ancestors and descendants.
// Descendants of a module are not evaluated,
// so modules never overlap.
// The root is never a module.
//
// Propagate must be called before Modules.
func (t *Tree) Modules(cutoff float64) []*Node {
	if t.root == nil {
		return nil
	}
	for _, n := range t.Nodes() {
		n.module = false
	}

	var mods []*Node
	for _, c := range t.root.children {
		mods = c.modules(mods, cutoff)
	}
	return mods
}

func (n *Node) modules(mods []*Node, cutoff float64) []*Node {
	if n.p < min(n.ancMin, n.descMin, cutoff) {
		n.module = true
		return append(mods, n)
	}
	for _, c := range n.children {
		mods = c.modules(mods, cutoff)
	}
	return mods
}
