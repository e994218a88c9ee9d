// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Layout specifies how the rows of a report section should be drawn.
type Layout int

// Supported section layouts.
const (
	LayoutTable Layout = iota // one table row per Row, values only
	LayoutCards               // one card per Row, labelled values
)

// Report is a fully mapped data set which may be rendered by filling
// the placeholders of the Name template. Fields maps scalar placeholder
// tokens to their values and Sections maps the tokens which should be
// replaced by repeated row (or card) fragments.
// The generation date is not included since it is chosen by renderers.
type Report struct {
	Name     string
	Fields   map[string]string
	Sections map[string]Section
}

// Section is a repeated fragment of a report. When Rows is empty, the
// Empty text is rendered instead, spanning Columns table cells.
type Section struct {
	Layout  Layout
	Rows    []Row
	Empty   string
	Columns int
}

// Row is one table row or card which consists of labelled cells.
// Labels are only printed by the cards layout.
type Row []Cell

// Cell is one labelled value of a Row.
type Cell struct {
	Label string
	Value string
}

// Values creates a Row with unlabelled cells.
func Values(vs ...string) Row {
	r := make(Row, 0, len(vs))
	for _, v := range vs {
		r = append(r, Cell{Value: v})
	}
	return r
}
