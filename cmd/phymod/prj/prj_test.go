// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package prj_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/js-arias/phymod/cmd/phymod/prj"
	"github.com/js-arias/phymod/param"
	"github.com/js-arias/phymod/project"
	"github.com/js-arias/phymod/stattest"
)

func TestValues(t *testing.T) {
	tests := map[string]struct {
		values string
		mode   stattest.Mode
		want   string
	}{
		"headerless csv": {
			values: "# body mass\nA,1.5\nB,2.0\nC\nD,\n",
			mode:   stattest.Continuous,
			want:   "taxon\tvalue\nA\t1.5\nB\t2\n",
		},
		"discrete csv": {
			values: "A,x;y\nB,y\nB,z\n",
			mode:   stattest.Discrete,
			want:   "taxon\tvalue\nA\tx;y\nB\ty;z\n",
		},
	}

	for name, test := range tests {
		files := map[string]string{
			"tmp-prj-values-for-test.csv": test.values,
		}
		prjFile := writeProject(t, files, test.mode)

		var w bytes.Buffer
		prj.Command.SetStdout(&w)
		if err := prj.Command.Execute([]string{"--values", prjFile}); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if got := strings.ReplaceAll(w.String(), "\r\n", "\n"); got != test.want {
			t.Errorf("%s: got %q, want %q", name, got, test.want)
		}
	}
}

func TestReport(t *testing.T) {
	files := map[string]string{
		"tmp-prj-values-for-test.csv": "A,x\nB,y\n",
	}
	prjFile := writeProject(t, files, stattest.Discrete)

	var w bytes.Buffer
	prj.Command.SetStdout(&w)
	if err := prj.Command.Execute([]string{prjFile}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := w.String()
	for _, s := range []string{"mode: discrete", "leaves: 2", "categories: x, y"} {
		if !strings.Contains(out, s) {
			t.Errorf("report: %q not found in %q", s, out)
		}
	}

	p := project.New()
	p.SetName(prjFile)
	if err := p.Write(); err != nil {
		t.Fatalf("unable to write project: %v", err)
	}
	prj.Command.SetStdout(&bytes.Buffer{})
	if err := prj.Command.Execute([]string{"--values", prjFile}); err == nil {
		t.Errorf("values without dataset: expecting error")
	}
}

func writeProject(t testing.TB, files map[string]string, mode stattest.Mode) string {
	t.Helper()

	p := project.New()
	for name, data := range files {
		if err := os.WriteFile(name, []byte(data), 0644); err != nil {
			t.Fatalf("unable to write file %q: %v", name, err)
		}
		t.Cleanup(func() { os.Remove(name) })
		p.Add(project.Values, name)
	}

	pf := "tmp-prj-params-for-test.tab"
	pp := param.New(pf)
	pp.SetMode(mode)
	if err := pp.Write(); err != nil {
		t.Fatalf("unable to write parameters: %v", err)
	}
	t.Cleanup(func() { os.Remove(pf) })
	p.Add(project.Params, pf)

	name := "tmp-prj-project-for-test.tab"
	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("unable to write project: %v", err)
	}
	t.Cleanup(func() { os.Remove(name) })
	return name
}
