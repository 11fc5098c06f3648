// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package analysis_test

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/command"
	"github.com/js-arias/phymod/cmd/phymod/analysis"
	"github.com/js-arias/phymod/param"
	"github.com/js-arias/phymod/project"
	"github.com/js-arias/phymod/stattest"
)

func TestRun(t *testing.T) {
	p := newProject(t)

	var w bytes.Buffer
	f := &analysis.Flags{Prune: true}
	mts, pp, err := analysis.Run(p, f, analysis.NewLogger(&w))
	if err != nil {
		t.Fatalf("unable to run analysis: %v", err)
	}
	if pp.Cutoff() != 0.05 {
		t.Errorf("cutoff: got %.4f, want %.4f", pp.Cutoff(), 0.05)
	}
	if len(mts) != 1 {
		t.Fatalf("trees: got %d, want %d", len(mts), 1)
	}

	mt := mts[0]
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(mt.Terms(), want) {
		t.Errorf("terms: got %v, want %v", mt.Terms(), want)
	}
	if mods := mt.Modules(pp.Cutoff()); len(mods) != 2 {
		t.Errorf("modules: got %d, want %d", len(mods), 2)
	}

	out := w.String()
	for _, s := range []string{"E", "Z"} {
		if !strings.Contains(out, s) {
			t.Errorf("warning for %q: not found in %q", s, out)
		}
	}
}

func TestFlags(t *testing.T) {
	p := newProject(t)

	f := &analysis.Flags{
		Cutoff: 0.01,
		Mode:   "discrete",
	}
	pp, err := f.Params(p)
	if err != nil {
		t.Fatalf("unable to read parameters: %v", err)
	}
	if pp.Cutoff() != 0.01 {
		t.Errorf("cutoff: got %.4f, want %.4f", pp.Cutoff(), 0.01)
	}
	if pp.Mode() != stattest.Discrete {
		t.Errorf("mode: got %v, want %v", pp.Mode(), stattest.Discrete)
	}

	f = &analysis.Flags{Tree: "unknown"}
	if _, _, err := analysis.Run(p, f, analysis.NewLogger(&bytes.Buffer{})); err == nil {
		t.Errorf("tree %q: expecting error", f.Tree)
	}
}

func TestFlagsOverride(t *testing.T) {
	p := newProject(t)

	name := "tmp-analysis-params-for-test.tab"
	pf := param.New(name)
	if err := pf.SetCollapse(50); err != nil {
		t.Fatalf("unable to set collapse: %v", err)
	}
	pf.SetPrune(true)
	if err := pf.Write(); err != nil {
		t.Fatalf("unable to write parameters: %v", err)
	}
	defer os.Remove(name)
	p.Add(project.Params, name)

	tests := map[string]struct {
		args       []string
		collapse   float64
		prune      bool
		supportLen bool
	}{
		"no flags": {
			collapse: 50,
			prune:    true,
		},
		"collapse zero": {
			args:  []string{"--collapse", "0"},
			prune: true,
		},
		"prune false": {
			args:     []string{"--prune=false"},
			collapse: 50,
		},
		"collapse and supportlen": {
			args:       []string{"--collapse", "20", "--supportlen"},
			collapse:   20,
			prune:      true,
			supportLen: true,
		},
	}

	for name, test := range tests {
		var f analysis.Flags
		var pp *param.P
		c := &command.Command{
			Usage:    "flags [--collapse <value>] [--supportlen] [--prune]",
			SetFlags: f.Set,
			Run: func(c *command.Command, args []string) error {
				var err error
				pp, err = f.Params(p)
				return err
			},
		}
		if err := c.Execute(test.args); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if pp.Collapse() != test.collapse {
			t.Errorf("%s: collapse: got %g, want %g", name, pp.Collapse(), test.collapse)
		}
		if pp.Prune() != test.prune {
			t.Errorf("%s: prune: got %v, want %v", name, pp.Prune(), test.prune)
		}
		if pp.SupportLen() != test.supportLen {
			t.Errorf("%s: supportlen: got %v, want %v", name, pp.SupportLen(), test.supportLen)
		}
	}
}

func newProject(t testing.TB) *project.Project {
	t.Helper()

	files := map[string]string{
		"tmp-analysis-tree-for-test.tre":   "(((A:1,B:1)90:1,(C:1,D:1)80:1),E:2);\n",
		"tmp-analysis-values-for-test.tab": "taxon\tvalue\nA\t10\nB\t12\nC\t1\nD\t2\nZ\t5\n",
	}
	for name, data := range files {
		if err := os.WriteFile(name, []byte(data), 0644); err != nil {
			t.Fatalf("unable to write file %q: %v", name, err)
		}
		t.Cleanup(func() { os.Remove(name) })
	}

	p := project.New()
	p.Add(project.Newick, "tmp-analysis-tree-for-test.tre")
	p.Add(project.Values, "tmp-analysis-values-for-test.tab")
	return p
}
