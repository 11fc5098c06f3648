// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements reading and writing
// of the parameters used to search for modules.
//
// Parameters are stored in a tab-delimited file,
// or, if the file name ends with ".toml",
// in a TOML file.
package param

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/js-arias/phymod/stattest"
)

// Param is a keyword to identify
// a parameter in a parameter file.
type Param string

// Valid parameters.
const (
	// Collapse is the support threshold
	// used to collapse nodes of the tree.
	Collapse Param = "collapse"

	// Cutoff is the maximum p-value of a module.
	Cutoff Param = "cutoff"

	// Mode is the kind of values of the leaves
	// (either continuous or discrete).
	Mode Param = "mode"

	// Prune indicates that leaves without values
	// should be removed from the tree.
	Prune Param = "prune"

	// SupportLen indicates that the support of the nodes
	// is stored as the branch length.
	SupportLen Param = "supportlen"
)

// DefCutoff is the default cutoff value.
const DefCutoff = 0.05

// P represents a collection of parameters.
type P struct {
	name string // file name

	cutoff   float64
	mode     stattest.Mode
	collapse float64

	supportLen bool
	prune      bool
}

// New creates a new parameter collection
// with default values.
func New(name string) *P {
	return &P{
		name:   name,
		cutoff: DefCutoff,
		mode:   stattest.Continuous,
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameter file.
//
// If the file name ends with ".toml"
// it is read as a TOML file,
// with the parameter names as keys:
//
//	cutoff = 0.01
//	mode = "discrete"
//	collapse = 70.0
//
// Otherwise it is read as a TSV file,
// that must contain the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Here is an example file:
//
//	# phymod parameters
//	parameter	value
//	cutoff	0.01
//	mode	discrete
//	collapse	70
//	supportlen	false
func Read(name string) (*P, error) {
	if isTOML(name) {
		return readTOML(name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	p := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "parameter"
		pn := Param(strings.ToLower(row[fields[f]]))

		f = "value"
		if err := p.Set(pn, row[fields[f]]); err != nil {
			return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
		}
	}
	return p, nil
}

type tomlParams struct {
	Cutoff     *float64 `toml:"cutoff"`
	Mode       *string  `toml:"mode"`
	Collapse   *float64 `toml:"collapse"`
	SupportLen *bool    `toml:"supportlen"`
	Prune      *bool    `toml:"prune"`
}

func readTOML(name string) (*P, error) {
	var tp tomlParams
	md, err := toml.DecodeFile(name, &tp)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, fmt.Errorf("on file %q: unknown parameter %q", name, u[0].String())
	}

	p := New(name)
	if tp.Cutoff != nil {
		if err := p.SetCutoff(*tp.Cutoff); err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
	}
	if tp.Mode != nil {
		m, err := stattest.ParseMode(*tp.Mode)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		p.mode = m
	}
	if tp.Collapse != nil {
		if err := p.SetCollapse(*tp.Collapse); err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
	}
	if tp.SupportLen != nil {
		p.supportLen = *tp.SupportLen
	}
	if tp.Prune != nil {
		p.prune = *tp.Prune
	}
	return p, nil
}

// Set sets a parameter from a string value.
// Unknown parameters are ignored.
func (p *P) Set(pn Param, v string) error {
	v = strings.TrimSpace(v)
	switch pn {
	case Collapse:
		c, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		return p.SetCollapse(c)
	case Cutoff:
		c, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		return p.SetCutoff(c)
	case Mode:
		m, err := stattest.ParseMode(v)
		if err != nil {
			return err
		}
		p.mode = m
	case Prune:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		p.prune = b
	case SupportLen:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		p.supportLen = b
	}
	return nil
}

// Collapse returns the support threshold
// used to collapse nodes.
// If it is 0,
// no node will be collapsed.
func (p *P) Collapse() float64 {
	return p.collapse
}

// Cutoff returns the maximum p-value of a module.
func (p *P) Cutoff() float64 {
	return p.cutoff
}

// Mode returns the mode of the leaf values.
func (p *P) Mode() stattest.Mode {
	return p.mode
}

// Name returns the file name of the parameters.
func (p *P) Name() string {
	return p.name
}

// Prune returns true if leaves without values
// are removed from the tree.
func (p *P) Prune() bool {
	return p.prune
}

// SupportLen returns true if the support of the nodes
// is stored as branch lengths.
func (p *P) SupportLen() bool {
	return p.supportLen
}

// SetCollapse sets the support threshold
// used to collapse nodes.
func (p *P) SetCollapse(c float64) error {
	if c < 0 {
		return fmt.Errorf("invalid collapse threshold: %.6f", c)
	}
	p.collapse = c
	return nil
}

// SetCutoff sets the maximum p-value of a module.
func (p *P) SetCutoff(c float64) error {
	if c <= 0 || c > 1 {
		return fmt.Errorf("invalid cutoff value: %.6f", c)
	}
	p.cutoff = c
	return nil
}

// SetMode sets the mode of the leaf values.
func (p *P) SetMode(m stattest.Mode) {
	p.mode = m
}

// SetName sets the file name of the parameters.
func (p *P) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	p.name = name
}

// SetPrune sets the pruning of leaves without values.
func (p *P) SetPrune(b bool) {
	p.prune = b
}

// SetSupportLen sets if the support of the nodes
// is stored as branch lengths.
func (p *P) SetSupportLen(b bool) {
	p.supportLen = b
}

// Write writes a parameter collection into a file.
func (p *P) Write() (err error) {
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

	bw := bufio.NewWriter(f)
	if isTOML(p.name) {
		err = p.writeTOML(bw)
	} else {
		err = p.writeTSV(bw)
	}
	if err != nil {
		return fmt.Errorf("on file %q: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}

func (p *P) writeTOML(w io.Writer) error {
	fmt.Fprintf(w, "# phymod parameters\n")
	fmt.Fprintf(w, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	mode := p.mode.String()
	tp := tomlParams{
		Cutoff:     &p.cutoff,
		Mode:       &mode,
		Collapse:   &p.collapse,
		SupportLen: &p.supportLen,
		Prune:      &p.prune,
	}
	return toml.NewEncoder(w).Encode(tp)
}

func (p *P) writeTSV(w io.Writer) error {
	fmt.Fprintf(w, "# phymod parameters\n")
	fmt.Fprintf(w, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	rows := [][]string{
		{string(Cutoff), strconv.FormatFloat(p.cutoff, 'g', -1, 64)},
		{string(Mode), p.mode.String()},
		{string(Collapse), strconv.FormatFloat(p.collapse, 'g', -1, 64)},
		{string(SupportLen), strconv.FormatBool(p.supportLen)},
		{string(Prune), strconv.FormatBool(p.prune)},
	}
	for _, row := range rows {
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

func isTOML(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".toml"
}
