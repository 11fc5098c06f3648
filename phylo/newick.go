// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/TuftsBCB/io/newick"
)

// ReadNewick reads one or more trees
// in Newick (parenthetical) format.
// Each tree must end with a semicolon.
//
// Terminal labels are used as leaf identifiers.
// Labels can be quoted with single quotes.
// Internal labels are interpreted as node support values;
// if an internal label is not a number,
// it is ignored.
// Branch lengths are given after a colon,
// as plain decimal numbers.
// Comments, enclosed in square brackets, are ignored.
//
// Here is an example with two trees:
//
//	((A:1,B:1)95:2,(C:1.5,D:1.5)60:1.5);
//	(('Acer campbellii',Acer_platanoides),Acer_saccharinum);
func ReadNewick(r io.Reader) ([]*Tree, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src, err := clean(string(b))
	if err != nil {
		return nil, err
	}
	if src == "" {
		return nil, errors.New("newick: no trees found")
	}
	if !strings.HasSuffix(src, ";") {
		return nil, errors.New("newick: expecting ';' at the end of the last tree")
	}

	nr := newick.NewReader(strings.NewReader(src))
	var ts []*Tree
	for {
		nt, err := nr.ReadTree()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("newick: tree %d: %v", len(ts)+1, err)
		}
		root, err := fromNewick(nt)
		if err != nil {
			return nil, fmt.Errorf("newick: tree %d: %v", len(ts)+1, err)
		}
		ts = append(ts, &Tree{
			Name: fmt.Sprintf("tree.%d", len(ts)),
			Root: root,
		})
	}
	if len(ts) == 0 {
		return nil, errors.New("newick: no trees found")
	}
	if len(ts) == 1 {
		ts[0].Name = "tree"
	}
	return ts, nil
}

// WriteNewick writes the trees in Newick format,
// one tree per line.
// Node support values are written as internal labels,
// and only non-zero branch lengths are written.
// Leaf names with spaces or Newick symbols
// are quoted.
func WriteNewick(w io.Writer, ts []*Tree) error {
	bw := bufio.NewWriter(w)
	for _, t := range ts {
		if t.Root == nil {
			continue
		}
		var sb strings.Builder
		t.Root.newick(&sb)
		sb.WriteString(";\n")
		if _, err := bw.WriteString(sb.String()); err != nil {
			return fmt.Errorf("newick: tree %q: %v", t.Name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("newick: %v", err)
	}
	return nil
}

func (n *Node) newick(sb *strings.Builder) {
	if n.IsLeaf() {
		sb.WriteString(quote(n.ID))
	} else {
		sb.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(',')
			}
			c.newick(sb)
		}
		sb.WriteByte(')')
		if n.HasSupport {
			sb.WriteString(strconv.FormatFloat(n.Support, 'f', -1, 64))
		}
	}
	if n.Length != 0 {
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(n.Length, 'f', -1, 64))
	}
}

func quote(label string) string {
	if !strings.ContainsAny(label, quoteBanned) {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}

func fromNewick(nt *newick.Tree) (*Node, error) {
	n := &Node{}
	if nt.Length != nil {
		n.Length = *nt.Length
	}
	label := unescape(nt.Label)
	if len(nt.Children) == 0 {
		if label == "" {
			return nil, errors.New("terminal without name")
		}
		n.ID = label
		return n, nil
	}

	if label != "" {
		if s, err := strconv.ParseFloat(label, 64); err == nil {
			n.Support = s
			n.HasSupport = true
		}
	}
	for i := range nt.Children {
		c, err := fromNewick(&nt.Children[i])
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

// quoteBanned are the characters of a quoted label
// that are not valid in an unquoted label.
const quoteBanned = " ()[]':;,\t\n\r"

// escapeBase is the first rune of a Unicode private use area,
// used to escape the banned characters of quoted labels.
const escapeBase = '\uE000'

// Clean removes comments and blanks
// and escapes the banned characters of quoted labels,
// so the result can be read as a plain Newick string.
func clean(src string) (string, error) {
	rs := []rune(src)
	var sb strings.Builder
	line := 1
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\n':
			line++
		case r == '[':
			start := line
			for i < len(rs) && rs[i] != ']' {
				if rs[i] == '\n' {
					line++
				}
				i++
			}
			if i == len(rs) {
				return "", fmt.Errorf("newick: line %d: unterminated comment", start)
			}
		case r == '\'':
			start := line
			var label strings.Builder
			closed := false
			for i++; i < len(rs); i++ {
				if rs[i] == '\n' {
					line++
				}
				if rs[i] == '\'' {
					if i+1 < len(rs) && rs[i+1] == '\'' {
						label.WriteRune('\'')
						i++
						continue
					}
					closed = true
					break
				}
				label.WriteRune(rs[i])
			}
			if !closed {
				return "", fmt.Errorf("newick: line %d: unterminated quoted label", start)
			}
			sb.WriteString(escape(strings.Join(strings.Fields(label.String()), " ")))
		case unicode.IsSpace(r):
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

func escape(label string) string {
	return strings.Map(func(r rune) rune {
		if i := strings.IndexRune(quoteBanned, r); i >= 0 {
			return escapeBase + rune(i)
		}
		return r
	}, label)
}

func unescape(label string) string {
	return strings.Map(func(r rune) rune {
		if i := int(r - escapeBase); i >= 0 && i < len(quoteBanned) {
			return rune(quoteBanned[i])
		}
		return r
	}, label)
}
