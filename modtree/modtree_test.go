// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package modtree_test

import (
	"bytes"
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/phymod/modtree"
	"github.com/js-arias/phymod/phylo"
	"github.com/js-arias/phymod/stattest"
	"github.com/js-arias/phymod/values"
)

func TestTwoClusters(t *testing.T) {
	tr := readTree(t, "((A,B),(C,D));")
	d := continuous(t, map[string]float64{
		"A": 10,
		"B": 12,
		"C": 1,
		"D": 2,
	})

	mt := modtree.Build(tr, d)
	mt.Propagate()
	mods := mt.Modules(0.05)

	var rows []string
	for _, m := range mods {
		rows = append(rows, m.ModuleRow(mt.Mode()))
	}
	want := []string{
		"A,B\thi\t11\t0.01",
		"C,D\tlo\t1.5\t0.01",
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("modules: got %q, want %q", rows, want)
	}
	if mt.Root().IsModule() {
		t.Errorf("root: selected as module")
	}
	for _, m := range mods {
		if !m.IsModule() {
			t.Errorf("module %v: not flagged", m.Leaves())
		}
	}

	var mw bytes.Buffer
	if err := mt.WriteModules(&mw, mods); err != nil {
		t.Fatalf("unable to write modules: %v", err)
	}
	if got, want := mw.String(), "tree\t"+want[0]+"\ntree\t"+want[1]+"\n"; got != want {
		t.Errorf("modules table: got %q, want %q", got, want)
	}

	var w bytes.Buffer
	if err := mt.WriteNodes(&w); err != nil {
		t.Fatalf("unable to write nodes: %v", err)
	}
	table := modtree.NodeHeader + "\n" +
		"0\t4\t0\t\t1\t1\t0.01\n" +
		"1\t2\t2\t11\t0.01\t1\t1\n" +
		"2\t2\t2\t1.5\t0.01\t1\t1\n"
	if got := w.String(); got != table {
		t.Errorf("nodes: got\n%s\nwant\n%s", got, table)
	}
}

func TestSeparatedClusters(t *testing.T) {
	tr := readTree(t, "((A,B),(C,D));")
	d := continuous(t, map[string]float64{
		"A": 10,
		"B": 11,
		"C": 1,
		"D": 2,
	})

	mt := modtree.Build(tr, d)
	mt.Propagate()
	var got [][]string
	for _, m := range mt.Modules(0.05) {
		ls := m.Leaves()
		slices.Sort(ls)
		got = append(got, ls)
	}
	want := [][]string{{"A", "B"}, {"C", "D"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("modules: got %v, want %v", got, want)
	}
}

func TestIdenticalValues(t *testing.T) {
	tr := readTree(t, "(((A,B),C),((D,E),(F,G)));")
	v := make(map[string]float64)
	for _, id := range tr.Terms() {
		v[id] = 3.5
	}
	d := continuous(t, v)

	mt := modtree.Build(tr, d)
	mt.Propagate()
	for _, cutoff := range []float64{0.01, 0.05, 0.5, 1} {
		if mods := mt.Modules(cutoff); len(mods) != 0 {
			t.Errorf("cutoff %.2f: got %d modules, want 0", cutoff, len(mods))
		}
	}
}

func TestDiscreteModules(t *testing.T) {
	tr := readTree(t, "(((A,B),(C,D)),((E,F),(G,H)));")
	d := values.New(stattest.Discrete)
	for _, id := range []string{"A", "B", "C", "D"} {
		d.AddCat(id, "x")
	}
	for _, id := range []string{"E", "F", "G", "H"} {
		d.AddCat(id, "y")
	}

	mt := modtree.Build(tr, d)
	mt.Propagate()
	mods := mt.Modules(0.05)

	var rows []string
	for _, m := range mods {
		rows = append(rows, m.ModuleRow(mt.Mode()))
	}
	want := []string{
		"A,B,C,D\tenriched\tx\t0.01",
		"E,F,G,H\tenriched\ty\t0.01",
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("modules: got %q, want %q", rows, want)
	}

	ab := mt.Root().Children()[0].Children()[0]
	if math.Abs(ab.P()-6.0/28) > 1e-6 {
		t.Errorf("node %v: p-value: got %.6f, want %.6f", ab.Leaves(), ab.P(), 6.0/28)
	}
	if math.Abs(ab.AncestorMin()-1.0/70) > 1e-6 {
		t.Errorf("node %v: ancestor min: got %.6f, want %.6f", ab.Leaves(), ab.AncestorMin(), 1.0/70)
	}
}

const bigTree = "((((A,B),(C,D)),(E,(F,G))),((H,I),(J,(K,L))),M);"

var bigValues = map[string]float64{
	"A": 1.0,
	"B": 1.2,
	"C": 0.8,
	"D": 1.1,
	"E": 4.0,
	"F": 6.5,
	"G": 5.9,
	"H": 9.0,
	"I": 9.8,
	"J": 3.0,
	"K": 8.7,
	"L": 9.1,
	// M is not in the data
	"Z": 2.0, // not in the tree
}

func TestProperties(t *testing.T) {
	tr := readTree(t, bigTree)
	d := continuous(t, bigValues)

	noValue, noLeaf := modtree.Mismatch(tr, d)
	if !reflect.DeepEqual(noValue, []string{"M"}) {
		t.Errorf("leaves without values: got %v, want %v", noValue, []string{"M"})
	}
	if !reflect.DeepEqual(noLeaf, []string{"Z"}) {
		t.Errorf("values without leaves: got %v, want %v", noLeaf, []string{"Z"})
	}

	mt := modtree.Build(tr, d)
	mt.Propagate()

	// partition completeness
	for _, n := range mt.Nodes() {
		if sz := len(n.Members()) + len(n.NonMembers()); sz != 12 {
			t.Errorf("node %v: partition size: got %d, want %d", n.Leaves(), sz, 12)
		}
	}

	// ancestor and descendant minimums
	var visit func(n *modtree.Node, anc []*modtree.Node)
	visit = func(n *modtree.Node, anc []*modtree.Node) {
		ancMin := 1.0
		for _, a := range anc {
			ancMin = min(ancMin, a.P())
		}
		if n.AncestorMin() != ancMin {
			t.Errorf("node %v: ancestor min: got %.6f, want %.6f", n.Leaves(), n.AncestorMin(), ancMin)
		}
		descMin := 1.0
		for _, c := range n.Children() {
			descMin = min(descMin, allMin(c))
		}
		if n.DescendantMin() != descMin {
			t.Errorf("node %v: descendant min: got %.6f, want %.6f", n.Leaves(), n.DescendantMin(), descMin)
		}

		anc = append(slices.Clone(anc), n)
		for _, c := range n.Children() {
			visit(c, anc)
		}
	}
	visit(mt.Root(), nil)

	// idempotence
	ot := modtree.Build(tr, d)
	ot.Propagate()
	ot.Propagate()
	on := ot.Nodes()
	for i, n := range mt.Nodes() {
		o := on[i]
		if n.P() != o.P() || n.AncestorMin() != o.AncestorMin() || n.DescendantMin() != o.DescendantMin() {
			t.Errorf("node %v: got %s, want %s", n.Leaves(), o.Row(), n.Row())
		}
	}

	for _, cutoff := range []float64{0.001, 0.05, 0.2, 1} {
		mods := mt.Modules(cutoff)

		// domination
		for _, m := range mods {
			if m.P() >= min(m.AncestorMin(), m.DescendantMin(), cutoff) {
				t.Errorf("cutoff %.3f: module %v: %s", cutoff, m.Leaves(), m.Row())
			}
		}

		// non overlap
		seen := make(map[string]bool)
		for _, m := range mods {
			for _, id := range m.Leaves() {
				if seen[id] {
					t.Errorf("cutoff %.3f: leaf %q: in more than one module", cutoff, id)
				}
				seen[id] = true
			}
		}
	}

	if mods := mt.Modules(0.05); len(mods) == 0 {
		t.Errorf("cutoff 0.05: expecting modules")
	}
}

func TestEmptyNode(t *testing.T) {
	tr := readTree(t, "((A,B)10,(C,D),E);")
	tr.Root.Children[0].Children = nil

	d := continuous(t, map[string]float64{"A": 1, "B": 2, "C": 3, "D": 4, "E": 5})
	mt := modtree.Build(tr, d)
	mt.Propagate()

	empty := mt.Root().Children()[0]
	if len(empty.Members()) != 0 || empty.P() != 1 || empty.Note() != "" {
		t.Errorf("empty node: got %s", empty.Row())
	}
	mt.Modules(0.05)
}

func allMin(n *modtree.Node) float64 {
	m := n.P()
	for _, c := range n.Children() {
		m = min(m, allMin(c))
	}
	return m
}

func readTree(t testing.TB, s string) *phylo.Tree {
	t.Helper()

	ts, err := phylo.ReadNewick(strings.NewReader(s))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	return ts[0]
}

func continuous(t testing.TB, v map[string]float64) *values.Data {
	t.Helper()

	d := values.New(stattest.Continuous)
	for tx, n := range v {
		if err := d.AddNum(tx, n); err != nil {
			t.Fatalf("unable to add value: %v", err)
		}
	}
	return d
}
