// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package draw

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/js-arias/blind"
	"github.com/js-arias/phymod/modtree"
	"github.com/js-arias/phymod/phylo"
)

const yStep = 12

type node struct {
	x     float64
	y     int
	topY  int
	botY  int
	color color.RGBA

	tax   string
	label string

	anc  *node
	desc []*node
}

type svgTree struct {
	y     int
	x     float64
	taxSz int
	root  *node
}

var black = color.RGBA{0, 0, 0, 255}

// CopyTree prepares a tree for drawing.
// Branches inside a module are colored
// using a gradient of the module p-value.
func copyTree(mt *modtree.Tree, xStep, cutoff float64) svgTree {
	mods := make(map[*phylo.Node]*modtree.Node)
	for _, n := range mt.Nodes() {
		if n.IsModule() {
			mods[n.Source()] = n
		}
	}
	src := mt.Root().Source()
	useLen := hasLengths(src)

	s := svgTree{}
	s.root = s.copyNode(src, nil, mods, black, useLen, xStep, cutoff)
	s.prepare(s.root)
	s.y = s.y * yStep
	return s
}

func (s *svgTree) copyNode(src *phylo.Node, anc *node, mods map[*phylo.Node]*modtree.Node, col color.RGBA, useLen bool, xStep, cutoff float64) *node {
	n := &node{
		tax:   src.ID,
		anc:   anc,
		color: col,
		x:     10,
	}
	if anc != nil {
		l := 1.0
		if useLen {
			l = src.Length
		}
		n.x = anc.x + l*xStep
	}
	if m, ok := mods[src]; ok {
		n.color = moduleColor(m.P(), cutoff)
		n.label = fmt.Sprintf("%s p=%.1g", m.Note(), m.P())
	}
	if s.x < n.x {
		s.x = n.x
	}
	if len(n.tax) > s.taxSz {
		s.taxSz = len(n.tax)
	}

	for _, c := range src.Children {
		n.desc = append(n.desc, s.copyNode(c, n, mods, n.color, useLen, xStep, cutoff))
	}
	return n
}

func hasLengths(n *phylo.Node) bool {
	if n.Length > 0 {
		return true
	}
	for _, c := range n.Children {
		if hasLengths(c) {
			return true
		}
	}
	return false
}

// ModuleColor returns the color of a module
// scaled by its p-value:
// smaller p-values have warmer colors.
func moduleColor(p, cutoff float64) color.RGBA {
	v := 0.5
	if p > 0 && cutoff < 1 {
		v = math.Log10(p) / math.Log10(cutoff*1e-3)
	}
	v = 0.3 + 0.7*math.Min(math.Max(v, 0), 1)
	r, g, b, _ := blind.Sequential(blind.Iridescent, v).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
}

func (s *svgTree) prepare(n *node) {
	if n.desc == nil {
		n.y = s.y*yStep + 5
		s.y += 1
		return
	}

	botY := 0
	topY := math.MaxInt
	for _, d := range n.desc {
		s.prepare(d)
		if d.y < topY {
			topY = d.y
		}
		if d.y > botY {
			botY = d.y
		}
	}
	n.topY = topY
	n.botY = botY
	n.y = topY + (botY-topY)/2
}

func (s *svgTree) draw(w io.Writer) error {
	fmt.Fprintf(w, "%s", xml.Header)
	e := xml.NewEncoder(w)
	svg := xml.StartElement{
		Name: xml.Name{Local: "svg"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "height"}, Value: strconv.Itoa(s.y + 5)},
			// assume that each character has 6 pixels wide
			{Name: xml.Name{Local: "width"}, Value: strconv.Itoa(int(s.x) + s.taxSz*6 + 20)},
			{Name: xml.Name{Local: "xmlns"}, Value: "http://www.w3.org/2000/svg"},
		},
	}
	e.EncodeToken(svg)

	g := xml.StartElement{
		Name: xml.Name{Local: "g"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "stroke-width"}, Value: "2"},
			{Name: xml.Name{Local: "stroke"}, Value: "black"},
			{Name: xml.Name{Local: "stroke-linecap"}, Value: "round"},
			{Name: xml.Name{Local: "font-family"}, Value: "Verdana"},
			{Name: xml.Name{Local: "font-size"}, Value: "10"},
		},
	}
	e.EncodeToken(g)

	s.root.draw(e)
	s.root.writeLabel(e)

	e.EncodeToken(g.End())
	e.EncodeToken(svg.End())
	if err := e.Flush(); err != nil {
		return err
	}
	return nil
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func (n node) draw(e *xml.Encoder) {
	// horizontal line
	ln := xml.StartElement{
		Name: xml.Name{Local: "line"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "x1"}, Value: strconv.Itoa(int(n.x - 5))},
			{Name: xml.Name{Local: "y1"}, Value: strconv.Itoa(n.y)},
			{Name: xml.Name{Local: "x2"}, Value: strconv.Itoa(int(n.x))},
			{Name: xml.Name{Local: "y2"}, Value: strconv.Itoa(n.y)},
			{Name: xml.Name{Local: "stroke"}, Value: rgb(n.color)},
		},
	}
	if n.anc != nil {
		ln.Attr[0].Value = strconv.Itoa(int(n.anc.x))
	}
	e.EncodeToken(ln)
	e.EncodeToken(ln.End())

	if n.desc == nil {
		return
	}

	// draws vertical line
	ln.Attr[0].Value = ln.Attr[2].Value
	ln.Attr[1].Value = strconv.Itoa(n.topY)
	ln.Attr[3].Value = strconv.Itoa(n.botY)
	e.EncodeToken(ln)
	e.EncodeToken(ln.End())

	for _, d := range n.desc {
		d.draw(e)
	}
}

func (n node) writeLabel(e *xml.Encoder) {
	if n.desc == nil {
		tx := xml.StartElement{
			Name: xml.Name{Local: "text"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: strconv.Itoa(int(n.x + 10))},
				{Name: xml.Name{Local: "y"}, Value: strconv.Itoa(n.y + 5)},
				{Name: xml.Name{Local: "stroke-width"}, Value: "0"},
				{Name: xml.Name{Local: "fill"}, Value: rgb(n.color)},
				{Name: xml.Name{Local: "font-style"}, Value: "italic"},
			},
		}
		e.EncodeToken(tx)
		e.EncodeToken(xml.CharData(n.tax))
		e.EncodeToken(tx.End())
		return
	}

	if n.label != "" {
		tx := xml.StartElement{
			Name: xml.Name{Local: "text"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: strconv.Itoa(int(n.x + 3))},
				{Name: xml.Name{Local: "y"}, Value: strconv.Itoa(n.y - 3)},
				{Name: xml.Name{Local: "stroke-width"}, Value: "0"},
				{Name: xml.Name{Local: "font-size"}, Value: "8"},
			},
		}
		e.EncodeToken(tx)
		e.EncodeToken(xml.CharData(n.label))
		e.EncodeToken(tx.End())
	}

	for _, d := range n.desc {
		d.writeLabel(e)
	}
}
