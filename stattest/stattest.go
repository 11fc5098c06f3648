// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stattest implements the statistical tests
// used to compare the values of two groups of leaves.
//
// All tests fail softly:
// if a test is undefined for the given groups
// the returned p-value is 1.
package stattest

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
)

// Mode is the kind of values compared by a test.
type Mode int

// Valid modes.
const (
	// Continuous values are numbers,
	// compared with a test for the difference of means.
	Continuous Mode = iota

	// Discrete values are sets of category labels,
	// compared with an enrichment test.
	Discrete
)

func (m Mode) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode returns a mode from its name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continuous", "c", "num", "numeric":
		return Continuous, nil
	case "discrete", "d", "cat", "categorical":
		return Discrete, nil
	}
	return Continuous, fmt.Errorf("unknown test mode %q", s)
}

// Mean returns the mean of a set of values.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// TTest performs a two-sample Student's t-test
// (with pooled variance)
// for the difference of the means of a and b.
// It returns the two-sided p-value,
// and the mean of a,
// formatted with two significant figures.
func TTest(a, b []float64) (p float64, note string) {
	if len(a) == 0 {
		return 1, ""
	}
	mA, vA := stat.MeanVariance(a, nil)
	note = fmt.Sprintf("%.2g", mA)
	if len(b) == 0 {
		return 1, note
	}
	mB, vB := stat.MeanVariance(b, nil)

	df := float64(len(a) + len(b) - 2)
	if df < 1 {
		return 1, note
	}
	var ss float64
	if len(a) > 1 {
		ss += vA * float64(len(a)-1)
	}
	if len(b) > 1 {
		ss += vB * float64(len(b)-1)
	}
	pooled := ss / df
	if pooled <= 0 {
		return 1, note
	}

	se := math.Sqrt(pooled * (1/float64(len(a)) + 1/float64(len(b))))
	t := (mA - mB) / se
	st := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * st.Survival(math.Abs(t))
	if math.IsNaN(p) {
		return 1, note
	}
	return math.Min(p, 1), note
}

// Enrichment performs an enrichment test
// for each category observed in a.
// Each element of a and b is the set of categories
// of an observation.
//
// For each category,
// the p-value is the right tail of the hypergeometric distribution
// (a one-sided Fisher's exact test)
// multiplied by the number of categories observed in a.
// The corrected value is not truncated,
// so it can be greater than 1.
// It returns the smallest p-value,
// and the category with that p-value.
func Enrichment(a, b [][]string) (p float64, note string) {
	inA := make(map[string]int)
	for _, obs := range a {
		for _, c := range obs {
			inA[c]++
		}
	}
	if len(inA) == 0 || len(b) == 0 {
		return 1, ""
	}
	inB := make(map[string]int)
	for _, obs := range b {
		for _, c := range obs {
			inB[c]++
		}
	}

	cats := make([]string, 0, len(inA))
	for c := range inA {
		cats = append(cats, c)
	}
	slices.Sort(cats)

	p = math.Inf(1)
	for _, c := range cats {
		cp := rightTail(inA[c], len(a), inA[c]+inB[c], len(a)+len(b))
		cp *= float64(len(cats))
		if cp < p {
			p = cp
			note = c
		}
	}
	return p, note
}

// RightTail returns the probability
// of observing at least k successes
// in a sample of n items,
// drawn without replacement from a population of total items
// with K successes.
func rightTail(k, n, K, total int) float64 {
	hi := min(n, K)
	lnDen := combin.LogGeneralizedBinomial(float64(total), float64(n))

	var p float64
	for i := k; i <= hi; i++ {
		if n-i > total-K {
			continue
		}
		lnP := combin.LogGeneralizedBinomial(float64(K), float64(i)) +
			combin.LogGeneralizedBinomial(float64(total-K), float64(n-i)) -
			lnDen
		p += math.Exp(lnP)
	}
	return math.Min(p, 1)
}
