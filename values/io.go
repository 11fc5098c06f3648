// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package values

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/js-arias/phymod/stattest"
)

// ReadTSV reads the values observed in a set of leaves
// from a delimited file.
// Use comma to define the field delimiter
// ('\t' for TSV files).
//
// The file should contain the following fields:
//
//   - taxon, the identifier of the leaf
//   - value, the observed value
//
// If the first row does not define the fields,
// the file is read without a header,
// using the first column as the leaf identifier
// and the second column as the value.
// Rows with fewer columns are ignored.
//
// In continuous mode,
// value must be a number,
// and each leaf can only have a single row.
// In discrete mode,
// value is a list of category labels
// separated by semicolons,
// and a leaf can have several rows.
//
// Here is an example file for a discrete data set:
//
//	taxon	value
//	Acer campbellii	temperate;tropical
//	Acer erythranthum	tropical
//	Acer platanoides	temperate
//	Acer saccharinum	temperate
func ReadTSV(r io.Reader, mode stattest.Mode, comma rune) (*Data, error) {
	tab := csv.NewReader(r)
	tab.Comma = comma
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}

	d := New(mode)
	var pending []string
	_, hasTax := fields["taxon"]
	_, hasVal := fields["value"]
	if !hasTax || !hasVal {
		if hasTax || hasVal {
			return nil, fmt.Errorf("expecting fields %q and %q", "taxon", "value")
		}
		fields = map[string]int{"taxon": 0, "value": 1}
		pending = head
	}

	for {
		row := pending
		pending = nil
		if row == nil {
			row, err = tab.Read()
			if errors.Is(err, io.EOF) {
				break
			}
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) <= max(fields["taxon"], fields["value"]) {
			continue
		}

		f := "taxon"
		tax := canon(row[fields[f]])
		if tax == "" {
			continue
		}

		f = "value"
		v := strings.TrimSpace(row[fields[f]])
		if v == "" {
			continue
		}

		if mode == stattest.Discrete {
			for _, c := range strings.Split(v, ";") {
				d.AddCat(tax, c)
			}
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if err := d.AddNum(tax, n); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return d, nil
}

// ReadFile reads a value file.
// Files with the extension ".csv"
// are read as comma delimited files,
// otherwise they are read as tab-delimited files.
func ReadFile(name string, mode stattest.Mode) (*Data, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	comma := '\t'
	if strings.ToLower(filepath.Ext(name)) == ".csv" {
		comma = ','
	}
	d, err := ReadTSV(f, mode, comma)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return d, nil
}

// TSV writes the values as a TSV file.
// In discrete mode,
// the categories of each leaf are written in a single row,
// separated by semicolons.
func (d *Data) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	// header
	header := []string{"taxon", "value"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	taxa := d.Taxa()
	for _, tx := range taxa {
		v, _ := d.Value(tx)
		if d.mode == stattest.Continuous {
			row := []string{
				tx,
				strconv.FormatFloat(v.Num, 'g', -1, 64),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
			continue
		}
		row := []string{
			tx,
			strings.Join(v.Cats, ";"),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
