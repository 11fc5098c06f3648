// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of PhyMod project files.
//
// A PhyMod project is a tab-delimited file (TSV)
// used to store the different data files
// required by PhyMod commands.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"
)

// Dataset is a keyword to identify
// the type of a dataset file in a project.
type Dataset string

// Valid dataset types.
const (
	// File for trees in Newick format.
	Newick Dataset = "newick"

	// File for the analysis parameters.
	Params Dataset = "params"

	// File for trees in tab-delimited format.
	Trees Dataset = "trees"

	// File for the values observed on the tree leaves.
	Values Dataset = "values"
)

// Valid returns true if the dataset is a known dataset.
func (s Dataset) Valid() bool {
	switch s {
	case Newick, Params, Trees, Values:
		return true
	}
	return false
}

// A Project represents a collection of paths
// for particular datasets.
type Project struct {
	name  string
	paths map[Dataset]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{
		name:  "",
		paths: make(map[Dataset]string),
	}
}

// Fields of a project file.
var header = []string{
	"dataset",
	"path",
}

// Read opens a PhyMod project file.
//
// A project file is a tab-delimited table
// with one row per dataset.
// The column "dataset" holds the dataset keyword
// (newick, trees, values, or params),
// and the column "path" holds the name of the data file.
// Column names are case insensitive,
// and lines starting with '#' are ignored.
// If a dataset is repeated,
// the last path is used.
//
// For example,
// a project that analyzes body mass values
// on a set of primate trees
// would be:
//
//	# body mass of primates
//	dataset	path
//	newick	primates.tre
//	values	body-mass.csv
//	params	mass-params.toml
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	p.name = name
	return p, nil
}

func read(r io.Reader) (*Project, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	p := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		set := Dataset(strings.ToLower(strings.TrimSpace(row[fields["dataset"]])))
		if !set.Valid() {
			return nil, fmt.Errorf("on row %d: unknown dataset %q", ln, set)
		}
		p.Add(set, strings.TrimSpace(row[fields["path"]]))
	}
	return p, nil
}

// Add sets the path of a dataset,
// and returns the path previously stored.
// An empty path removes the dataset from the project.
func (p *Project) Add(set Dataset, path string) string {
	prev := p.paths[set]
	if path == "" {
		delete(p.paths, set)
		return prev
	}
	p.paths[set] = path
	return prev
}

// Path returns the path of the given dataset,
// or an empty string if the dataset is not defined.
func (p *Project) Path(set Dataset) string {
	return p.paths[set]
}

// Sets returns the defined datasets,
// in alphabetical order.
func (p *Project) Sets() []Dataset {
	return slices.Sorted(maps.Keys(p.paths))
}

// SetName sets the file name used to store the project.
func (p *Project) SetName(name string) {
	p.name = name
}

// Write stores the project in the file
// set as the project name,
// using the same layout read by Read.
// Datasets are written in alphabetical order,
// after a comment with the writing time.
func (p *Project) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := p.write(f); err != nil {
		return fmt.Errorf("on file %q: %v", p.name, err)
	}
	return nil
}

func (p *Project) write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# phymod project\n")
	fmt.Fprintf(bw, "# written on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, s := range p.Sets() {
		if err := tsv.Write([]string{string(s), p.paths[s]}); err != nil {
			return err
		}
	}
	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
