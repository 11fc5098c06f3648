// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(paramFilesGuide)
	app.Add(projectsGuide)
	app.Add(treeFilesGuide)
	app.Add(valueFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
PhyMod requires several files to read and process the data. To reduce the
burden of keeping track of many files, a single project file is used to hold
the reference of all files required in the analysis. This guide explains the
structure of the file, but most of the time, the best and most secure way to
edit or view this file is by using the command 'phymod prj'.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# phymod project files
	dataset	path
	newick	primates.tre
	values	body-mass.tab
	params	params.tab

The valid file types are:

- Newick trees. Defined by the dataset keyword "newick". This file contains
  one or more trees in Newick (parenthetical) format.
- Tab-delimited trees. Defined by the dataset keyword "trees". This file
  contains one or more time-calibrated trees in the form of a tab-delimited
  file.
- Leaf values. Defined by the dataset keyword "values". This file contains
  the values observed on the leaves of the trees.
- Analysis parameters. Defined by the dataset keyword "params". The
  recommended way to edit the parameters is by using the command
  'phymod param'.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
PhyMod reads trees in two formats.

The first one is the Newick (parenthetical) format. A Newick file can store
many trees, each one ending with a semicolon. Labels of internal nodes are
read as node support, and text between square brackets is ignored. Labels
with spaces or Newick symbols must be enclosed in single quotes. Branch
lengths must be plain decimal numbers (no exponents):

	((A:1,B:1)95:1,(C:1,D:1)80:1);
	(('Homo sapiens':6.4,'Pan troglodytes':6.4)100:2,Gorilla:8.4);

As some programs store the node support as the length of the branches, the
parameter "supportlen" can be used to read the branch lengths of internal
nodes as support values.

The second format is the tab-delimited format used for time-calibrated trees,
with the following fields:

	- tree      the name of the tree
	- node      the ID of the node
	- parent    the ID of the parent node (-1 for the root)
	- age       the age of the node (in years)
	- taxon     the taxonomic name of the node (only for terminals)

Here is an example file:

	# time calibrated phylogenetic tree
	tree	node	parent	age	taxon
	dummy	0	-1	10000000
	dummy	1	0	0	A
	dummy	2	0	5000000
	dummy	3	2	0	B
	dummy	4	2	0	C

Branch lengths of the tab-delimited trees are measured in million years.

Gene trees produced by Eisen's Cluster program can be converted into Newick
format with the command 'phymod eisen'.
	`,
}

var valueFilesGuide = &command.Command{
	Usage: "value-files",
	Short: "about the leaf value file",
	Long: `
The leaf value file contains the values observed on the leaves of the trees.
It is a tab-delimited file (or a comma-delimited file, if the file name ends
with ".csv") with the following fields:

	- taxon  the name of the leaf
	- value  the observed value

In continuous mode, each leaf must have a single numeric value:

	taxon	value
	Homo sapiens	62.0
	Pan troglodytes	45.5

In discrete mode, a value is a category, and a leaf can be assigned to
several categories, either by separating them with semicolons, or by using one
row per category:

	taxon	value
	Homo sapiens	terrestrial
	Pan troglodytes	arboreal;terrestrial
	Gorilla gorilla	terrestrial
	Gorilla gorilla	arboreal

If the first row does not contain the fields "taxon" and "value", the file is
read without a header, using the first column as the leaf name and the second
column as the value. Rows with fewer than two columns are ignored, and lines
starting with '#' are comments:

	# body mass, in kg
	Homo sapiens,62.0
	Pan troglodytes,45.5

Use 'phymod prj --values' to print the values as they are read.

Leaves without values are ignored in the analysis, and values without leaves
are reported as a warning.
	`,
}

var paramFilesGuide = &command.Command{
	Usage: "parameter-files",
	Short: "about the parameter file",
	Long: `
The parameter file stores the parameters of the module search. It is a
tab-delimited file with the fields "parameter" and "value":

	# phymod parameters
	parameter	value
	cutoff	0.05
	mode	continuous

If the name of the file ends with ".toml", the file is read as a TOML file:

	cutoff = 0.05
	mode = "discrete"
	collapse = 50.0

The valid parameters are:

	cutoff      maximum p-value of a module (default 0.05)
	mode        "continuous" (t-test) or "discrete" (enrichment test)
	collapse    support threshold to collapse nodes (0 for no collapse)
	supportlen  "true" if node support is stored as branch lengths
	prune       "true" to remove leaves without values

Parameters can be overridden using the flags of the analysis commands. The
recommended way to edit the parameter file is by using the command
'phymod param'.
	`,
}
