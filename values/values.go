// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package values provides the values
// observed on the leaves of a tree.
//
// Values are either continuous
// (a single number for each leaf)
// or discrete
// (a set of category labels for each leaf).
package values

import (
	"fmt"
	"slices"
	"strings"

	"github.com/js-arias/phymod/stattest"
)

// A Value is the value observed on a leaf.
type Value struct {
	// Num is the value of a leaf in continuous mode.
	Num float64

	// Cats are the categories of a leaf in discrete mode,
	// sorted alphabetically.
	Cats []string
}

// Data is a collection of values
// observed in a set of leaves.
type Data struct {
	mode stattest.Mode
	num  map[string]float64
	cats map[string]map[string]bool
}

// New creates a new empty data set
// for the given mode.
func New(mode stattest.Mode) *Data {
	d := &Data{mode: mode}
	if mode == stattest.Discrete {
		d.cats = make(map[string]map[string]bool)
	} else {
		d.num = make(map[string]float64)
	}
	return d
}

// Mode returns the mode of the values in the data set.
func (d *Data) Mode() stattest.Mode {
	return d.mode
}

// AddNum sets the value of a leaf
// in a continuous data set.
// It returns an error if the leaf already has a value.
func (d *Data) AddNum(taxon string, v float64) error {
	if d.mode != stattest.Continuous {
		return fmt.Errorf("adding a number to a %s data set", d.mode)
	}
	taxon = canon(taxon)
	if taxon == "" {
		return nil
	}
	if _, dup := d.num[taxon]; dup {
		return fmt.Errorf("taxon %q: repeated value", taxon)
	}
	d.num[taxon] = v
	return nil
}

// AddCat adds a new category
// for a given leaf
// in a discrete data set.
func (d *Data) AddCat(taxon, cat string) error {
	if d.mode != stattest.Discrete {
		return fmt.Errorf("adding a category to a %s data set", d.mode)
	}
	taxon = canon(taxon)
	if taxon == "" {
		return nil
	}
	cat = canon(cat)
	if cat == "" {
		return nil
	}

	obs, ok := d.cats[taxon]
	if !ok {
		obs = make(map[string]bool)
		d.cats[taxon] = obs
	}
	obs[cat] = true
	return nil
}

// Value returns the value of a leaf.
// It returns false if the leaf is not
// in the data set.
func (d *Data) Value(taxon string) (Value, bool) {
	if d.mode == stattest.Discrete {
		obs, ok := d.cats[taxon]
		if !ok {
			return Value{}, false
		}
		cats := make([]string, 0, len(obs))
		for c := range obs {
			cats = append(cats, c)
		}
		slices.Sort(cats)
		return Value{Cats: cats}, true
	}

	v, ok := d.num[taxon]
	if !ok {
		return Value{}, false
	}
	return Value{Num: v}, true
}

// Has returns true if the leaf has a value.
func (d *Data) Has(taxon string) bool {
	if d.mode == stattest.Discrete {
		_, ok := d.cats[taxon]
		return ok
	}
	_, ok := d.num[taxon]
	return ok
}

// Len returns the number of leaves with values.
func (d *Data) Len() int {
	if d.mode == stattest.Discrete {
		return len(d.cats)
	}
	return len(d.num)
}

// Categories returns the categories defined
// in a discrete data set.
func (d *Data) Categories() []string {
	st := make(map[string]bool)
	for _, obs := range d.cats {
		for s := range obs {
			st[s] = true
		}
	}

	cats := make([]string, 0, len(st))
	for s := range st {
		cats = append(cats, s)
	}
	slices.Sort(cats)
	return cats
}

// Taxa returns the leaves with values
// in a data set.
func (d *Data) Taxa() []string {
	var taxa []string
	if d.mode == stattest.Discrete {
		taxa = make([]string, 0, len(d.cats))
		for tx := range d.cats {
			taxa = append(taxa, tx)
		}
	} else {
		taxa = make([]string, 0, len(d.num))
		for tx := range d.num {
			taxa = append(taxa, tx)
		}
	}
	slices.Sort(taxa)
	return taxa
}

// Canon returns a name without extra spaces.
// Leaf identifiers are case sensitive,
// so the case is kept.
func canon(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
