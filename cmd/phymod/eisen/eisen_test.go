// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package eisen_test

import (
	"bytes"
	"os"
	"reflect"
	"testing"

	"github.com/js-arias/phymod/cmd/phymod/eisen"
	"github.com/js-arias/phymod/project"
)

func TestEisen(t *testing.T) {
	files := map[string]string{
		"tmp-eisen-for-test.gtr": "NODE1X\tGENE1X\tGENE2X\t0.75\nNODE2X\tGENE3X\tNODE1X\t0.5\n",
		"tmp-eisen-for-test.cdt": "GID\tYORF\tNAME\tGWEIGHT\te1\nEWEIGHT\t\t\t\t1\nGENE1X\tA\ta\t1\t0.1\nGENE2X\tB\tb\t1\t0.2\nGENE3X\tC c\tc\t1\t2\n",
	}
	for name, data := range files {
		if err := os.WriteFile(name, []byte(data), 0644); err != nil {
			t.Fatalf("unable to write file %q: %v", name, err)
		}
		defer os.Remove(name)
	}

	var w bytes.Buffer
	eisen.Command.SetStdout(&w)
	if err := eisen.Command.Execute([]string{"tmp-eisen-for-test.gtr", "tmp-eisen-for-test.cdt"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "('C c':0.5,(A:0.25,B:0.25):0.25);\n"
	if got := w.String(); got != want {
		t.Errorf("newick: got %q, want %q", got, want)
	}

	out := "tmp-eisen-output-for-test.tre"
	prj := "tmp-eisen-project-for-test.tab"
	defer os.Remove(out)
	defer os.Remove(prj)
	args := []string{"-o", out, "--project", prj, "tmp-eisen-for-test.gtr", "tmp-eisen-for-test.cdt"}
	if err := eisen.Command.Execute(args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := project.Read(prj)
	if err != nil {
		t.Fatalf("unable to read project: %v", err)
	}
	if p.Path(project.Newick) != out {
		t.Errorf("newick dataset: got %q, want %q", p.Path(project.Newick), out)
	}
	ts, err := p.Trees()
	if err != nil {
		t.Fatalf("unable to read trees: %v", err)
	}
	if len(ts) != 1 {
		t.Fatalf("trees: got %d, want %d", len(ts), 1)
	}
	if got := ts[0].Terms(); !reflect.DeepEqual(got, []string{"A", "B", "C c"}) {
		t.Errorf("terms: got %v, want %v", got, []string{"A", "B", "C c"})
	}

	if err := eisen.Command.Execute([]string{"--project", prj, "tmp-eisen-for-test.gtr", "tmp-eisen-for-test.cdt"}); err == nil {
		t.Errorf("project without output: expecting error")
	}
	if err := eisen.Command.Execute([]string{"tmp-eisen-for-test.gtr"}); err == nil {
		t.Errorf("missing cdt file: expecting error")
	}
}
