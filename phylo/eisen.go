// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadEisen reads a gene tree
// from the output of Eisen's Cluster program.
//
// The gtr file contains the tree joins,
// one per row,
// with four tab-delimited fields:
// the node identifier,
// the identifiers of its two children,
// and the similarity of the join.
// Children must be defined before their parents.
//
// The cdt file contains the data table,
// and it is used to assign the names of the leaves:
// the first column is the gene identifier
// used in the gtr file,
// and the second column the gene name.
// The header row,
// as well as the EWEIGHT and AID rows,
// are ignored.
//
// The branch length of a node
// is the difference between its similarity
// and the similarity of its parent.
// Leaves are assumed to have a similarity of 1.
func ReadEisen(gtr, cdt io.Reader) (*Tree, error) {
	names, err := readCDT(cdt)
	if err != nil {
		return nil, fmt.Errorf("cdt: %v", err)
	}
	root, err := readGTR(gtr, names)
	if err != nil {
		return nil, fmt.Errorf("gtr: %v", err)
	}
	return &Tree{
		Name: "tree",
		Root: root,
	}, nil
}

func readCDT(r io.Reader) (map[string]string, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.FieldsPerRecord = -1
	tab.LazyQuotes = true

	if _, err := tab.Read(); err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}

	names := make(map[string]string)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) < 2 {
			continue
		}

		id := strings.TrimSpace(row[0])
		switch strings.ToUpper(id) {
		case "", "EWEIGHT", "AID":
			continue
		}
		name := strings.Join(strings.Fields(row[1]), " ")
		if name == "" {
			return nil, fmt.Errorf("on row %d: gene %q without name", ln, id)
		}
		if _, dup := names[id]; dup {
			return nil, fmt.Errorf("on row %d: gene %q already defined", ln, id)
		}
		names[id] = name
	}
	if len(names) == 0 {
		return nil, errors.New("no genes found")
	}
	return names, nil
}

type join struct {
	node *Node
	sim  float64
}

func readGTR(r io.Reader, names map[string]string) (*Node, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.FieldsPerRecord = -1

	joins := make(map[string]join)
	used := make(map[string]bool)
	var order []string
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("on row %d: got %d fields, want 4", ln, len(row))
		}

		id := strings.TrimSpace(row[0])
		if _, dup := joins[id]; dup {
			return nil, fmt.Errorf("on row %d: node %q already defined", ln, id)
		}
		if _, ok := names[id]; ok {
			return nil, fmt.Errorf("on row %d: node %q is a gene", ln, id)
		}
		sim, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: node %q: %v", ln, id, err)
		}

		n := &Node{}
		for _, c := range row[1:3] {
			c = strings.TrimSpace(c)
			if used[c] {
				return nil, fmt.Errorf("on row %d: node %q: child %q already assigned", ln, id, c)
			}
			used[c] = true

			if name, ok := names[c]; ok {
				n.Children = append(n.Children, &Node{
					ID:     name,
					Length: 1 - sim,
				})
				continue
			}
			j, ok := joins[c]
			if !ok {
				return nil, fmt.Errorf("on row %d: node %q: unknown child %q", ln, id, c)
			}
			j.node.Length = j.sim - sim
			n.Children = append(n.Children, j.node)
		}
		joins[id] = join{node: n, sim: sim}
		order = append(order, id)
	}

	var root *Node
	for _, id := range order {
		if used[id] {
			continue
		}
		if root != nil {
			return nil, errors.New("more than one root node")
		}
		root = joins[id].node
	}
	if root == nil {
		return nil, errors.New("no nodes found")
	}
	return root, nil
}
