// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package pdf rasterizes the small HTML subset which is used by report
// templates into PDF documents. Headings, paragraphs, generic blocks,
// list items, tables (with colspan), and line breaks are laid out with
// the core Helvetica font. Styles, scripts, images, and unknown
// attributes are ignored. Malformed markup is repaired by the HTML
// parser, so conversion only fails if the PDF could not be produced.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/net/html"
)

// Supported page sizes.
const (
	A4     = "A4"
	Letter = "Letter"
)

const (
	family     = "Helvetica"
	bodySize   = 10
	lineHeight = 5.0
	cellPad    = 1.0
)

var headingSizes = map[string]float64{"h1": 16, "h2": 14, "h3": 12}

// Converter keeps the page settings of produced documents. It is safe
// for concurrent use since every conversion uses its own document.
type Converter struct {
	pageSize   string
	compressed *bool
	now        func() time.Time
}

// Option is a functional option for the New function.
type Option func(c *Converter) error

// WithPageSize configures the paper size as A4 (default) or Letter.
func WithPageSize(size string) Option {
	return func(c *Converter) error {
		if c.pageSize != "" {
			return errors.New("page size is already configured")
		}
		switch size {
		case A4, Letter:
			c.pageSize = size
			return nil
		default:
			return fmt.Errorf("unsupported page size %q", size)
		}
	}
}

// WithCompression enables or disables the page streams compression.
// Uncompressed documents are larger but can be inspected as text.
func WithCompression(enabled bool) Option {
	return func(c *Converter) error {
		if c.compressed != nil {
			return errors.New("compression is already configured")
		}
		c.compressed = &enabled
		return nil
	}
}

// WithClock configures the time source of the document creation date.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) error {
		if now == nil {
			return errors.New("nil clock")
		}
		c.now = now
		return nil
	}
}

// New instantiates a Converter.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if c.pageSize == "" {
		c.pageSize = A4
	}
	if c.compressed == nil {
		t := true
		c.compressed = &t
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Convert parses doc as HTML and returns the rendered PDF document.
func (c *Converter) Convert(doc string) ([]byte, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	f := fpdf.New("P", "mm", c.pageSize, "")
	f.SetCompression(*c.compressed)
	f.SetCreationDate(c.now())
	f.SetMargins(15, 15, 15)
	f.SetAutoPageBreak(true, 15)
	w := &writer{f: f, tr: f.UnicodeTranslatorFromDescriptor("")}
	if title := findTitle(root); title != "" {
		f.SetTitle(title, true)
	}
	f.SetFooterFunc(func() {
		f.SetY(-12)
		f.SetFont(family, "I", 8)
		f.CellFormat(
			0, 6, fmt.Sprintf("%d", f.PageNo()), "", 0, "C", false, 0, "",
		)
	})
	f.AddPage()
	w.setFont("", bodySize)
	w.blocks(root)
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return collapse(textOf(n))
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if t := findTitle(ch); t != "" {
			return t
		}
	}
	return ""
}
