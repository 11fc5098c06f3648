// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nodes_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/js-arias/phymod/cmd/phymod/nodes"
	"github.com/js-arias/phymod/modtree"
	"github.com/js-arias/phymod/project"
)

func TestNodes(t *testing.T) {
	prj := writeProject(t)
	out := "tmp-nodes-output-for-test.tab"
	defer os.Remove(out)

	tests := map[string]struct {
		args  []string
		file  string
		trees []string
		nodes []int
	}{
		"all trees": {
			args:  []string{prj},
			trees: []string{"tree.0", "tree.1"},
			nodes: []int{4, 3},
		},
		"output file": {
			args:  []string{"--output", out, prj},
			file:  out,
			trees: []string{"tree.0", "tree.1"},
			nodes: []int{4, 3},
		},
		"single tree": {
			args:  []string{"--tree", "tree.1", prj},
			trees: []string{"tree.1"},
			nodes: []int{3},
		},
		"pruned": {
			args:  []string{"--prune", "--tree", "tree.0", prj},
			trees: []string{"tree.0"},
			nodes: []int{3},
		},
		"collapsed": {
			args:  []string{"--collapse", "85", "--tree", "tree.0", prj},
			trees: []string{"tree.0"},
			nodes: []int{3},
		},
	}

	for name, test := range tests {
		var stdout bytes.Buffer
		nodes.Command.SetStdout(&stdout)
		nodes.Command.SetStderr(&bytes.Buffer{})
		if err := nodes.Command.Execute(test.args); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}

		got := stdout.String()
		if test.file != "" {
			b, err := os.ReadFile(test.file)
			if err != nil {
				t.Errorf("%s: unable to read output: %v", name, err)
				continue
			}
			got = string(b)
		}

		tables := splitTables(got)
		if len(tables) != len(test.trees) {
			t.Errorf("%s: trees: got %d, want %d", name, len(tables), len(test.trees))
			continue
		}
		for i, tab := range tables {
			if tab[0] != "# tree: "+test.trees[i] {
				t.Errorf("%s: tree comment: got %q, want %q", name, tab[0], "# tree: "+test.trees[i])
			}
			if len(tab) < 2 || tab[1] != modtree.NodeHeader {
				t.Errorf("%s: tree %q: header not found", name, test.trees[i])
				continue
			}
			rows := tab[2:]
			if len(rows) != test.nodes[i] {
				t.Errorf("%s: tree %q: nodes: got %d, want %d", name, test.trees[i], len(rows), test.nodes[i])
			}
			for j, r := range rows {
				if f := strings.Split(r, "\t"); len(f) != 7 {
					t.Errorf("%s: tree %q: row %d: got %d fields, want %d", name, test.trees[i], j, len(f), 7)
				}
			}
		}
	}
}

func TestNodesErrors(t *testing.T) {
	prj := writeProject(t)
	tests := map[string][]string{
		"no project":   {},
		"unknown tree": {"--tree", "tree.9", prj},
		"bad mode":     {"--mode", "ordinal", prj},
	}
	for name, args := range tests {
		nodes.Command.SetStdout(&bytes.Buffer{})
		nodes.Command.SetStderr(&bytes.Buffer{})
		if err := nodes.Command.Execute(args); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

// splitTables splits the output in the table of each tree,
// each one starting with the tree comment.
func splitTables(out string) [][]string {
	var tables [][]string
	for _, ln := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasPrefix(ln, "# tree:") {
			tables = append(tables, []string{ln})
			continue
		}
		if len(tables) == 0 {
			continue
		}
		tables[len(tables)-1] = append(tables[len(tables)-1], ln)
	}
	return tables
}

func writeProject(t testing.TB) string {
	t.Helper()

	files := map[string]string{
		"tmp-nodes-tree-for-test.tre": `(((A:1,B:1)90:1,(C:1,D:1)80:1),E:2);
((A:1,(B:1,C:1)70:1)60:1,D:2);
`,
		"tmp-nodes-values-for-test.tab": "taxon\tvalue\nA\t10\nB\t12\nC\t1\nD\t2\n",
	}
	for name, data := range files {
		if err := os.WriteFile(name, []byte(data), 0644); err != nil {
			t.Fatalf("unable to write file %q: %v", name, err)
		}
		t.Cleanup(func() { os.Remove(name) })
	}

	name := "tmp-nodes-project-for-test.tab"
	p := project.New()
	p.SetName(name)
	p.Add(project.Newick, "tmp-nodes-tree-for-test.tre")
	p.Add(project.Values, "tmp-nodes-values-for-test.tab")
	if err := p.Write(); err != nil {
		t.Fatalf("unable to write project: %v", err)
	}
	t.Cleanup(func() { os.Remove(name) })
	return name
}
