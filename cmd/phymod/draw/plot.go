// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package draw

import (
	"fmt"
	"image/color"

	"github.com/js-arias/phymod/modtree"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PValuePlot saves a histogram
// of the p-values of the tested nodes of a tree.
// Nodes without a test
// (e.g., the root)
// are ignored.
func pValuePlot(mt *modtree.Tree, cutoff float64, name string) error {
	var vals plotter.Values
	for _, n := range mt.Nodes() {
		if len(n.Members()) == 0 || len(n.NonMembers()) == 0 {
			continue
		}
		vals = append(vals, min(n.P(), 1))
	}
	if len(vals) == 0 {
		return fmt.Errorf("tree %q: no tested nodes", mt.Name())
	}

	p := plot.New()
	p.Title.Text = mt.Name()
	p.X.Label.Text = "P-value"
	p.Y.Label.Text = "nodes"
	p.X.Min = 0
	p.X.Max = 1

	h, err := plotter.NewHist(vals, 20)
	if err != nil {
		return fmt.Errorf("while building histogram: %v", err)
	}
	h.FillColor = color.Gray{160}
	h.LineStyle.Width = vg.Length(0)
	p.Add(h)

	line, err := plotter.NewLine(plotter.XYs{{X: cutoff, Y: 0}, {X: cutoff, Y: float64(len(vals))}})
	if err != nil {
		return fmt.Errorf("while building cutoff line: %v", err)
	}
	line.Color = moduleColor(cutoff, cutoff)
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("cutoff %g", cutoff), line)
	p.Legend.Top = true

	if err := p.Save(5*vg.Inch, 3*vg.Inch, name); err != nil {
		return err
	}
	return nil
}
