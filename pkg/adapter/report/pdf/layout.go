// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package pdf

import (
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/net/html"
)

var skipped = map[string]bool{
	"head": true, "title": true, "style": true, "script": true,
	"img": true, "svg": true, "meta": true, "link": true,
}

var inlines = map[string]bool{
	"span": true, "strong": true, "b": true, "em": true, "i": true,
	"a": true, "small": true, "label": true, "u": true, "code": true,
}

// writer walks the parsed document and flows its text into f.
// Texts are translated into the code page of the core fonts, so they
// must be measured bytewise (SplitLines) and not as UTF-8 runes.
type writer struct {
	f     *fpdf.Fpdf
	tr    func(string) string
	style string
	size  float64
	dirty bool // current line has some text
}

func (w *writer) setFont(style string, size float64) {
	w.style, w.size = style, size
	w.f.SetFont(family, style, size)
}

// flush terminates the current line, if it has any text.
func (w *writer) flush() {
	if w.dirty {
		w.f.Ln(lineHeight)
		w.dirty = false
	}
}

func (w *writer) blocks(n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		switch {
		case ch.Type == html.TextNode:
			w.text(ch.Data)
		case ch.Type != html.ElementNode, skipped[ch.Data]:
		case inlines[ch.Data]:
			w.inline(ch)
		default:
			w.block(ch)
		}
	}
}

func (w *writer) block(n *html.Node) {
	switch n.Data {
	case "br":
		w.f.Ln(lineHeight)
		w.dirty = false
	case "hr":
		w.flush()
		left, _, right, _ := w.f.GetMargins()
		pw, _ := w.f.GetPageSize()
		y := w.f.GetY() + 1
		w.f.Line(left, y, pw-right, y)
		w.f.Ln(3)
	case "table":
		w.flush()
		w.table(n)
		w.f.Ln(2)
	case "h1", "h2", "h3":
		w.flush()
		style, size := w.style, w.size
		w.setFont("B", headingSizes[n.Data])
		w.f.Ln(1)
		w.blocks(n)
		w.flush()
		w.f.Ln(1)
		w.setFont(style, size)
	case "li":
		w.flush()
		w.text("- ")
		w.blocks(n)
		w.flush()
	default:
		w.flush()
		if hasClass(n, "card") {
			w.card(n)
			return
		}
		w.blocks(n)
		w.flush()
	}
}

func (w *writer) card(n *html.Node) {
	page, y0 := w.f.PageNo(), w.f.GetY()
	w.f.Ln(1)
	w.blocks(n)
	w.flush()
	w.f.Ln(1)
	if w.f.PageNo() == page {
		left, _, right, _ := w.f.GetMargins()
		pw, _ := w.f.GetPageSize()
		w.f.Rect(left-1, y0, pw-left-right+2, w.f.GetY()-y0, "D")
	}
	w.f.Ln(3)
}

func (w *writer) inline(n *html.Node) {
	style, size := w.style, w.size
	switch {
	case n.Data == "strong" || n.Data == "b" || hasClass(n, "label"):
		w.setFont(addStyle(style, "B"), size)
	case n.Data == "em" || n.Data == "i":
		w.setFont(addStyle(style, "I"), size)
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		switch {
		case ch.Type == html.TextNode:
			w.text(ch.Data)
		case ch.Type != html.ElementNode, skipped[ch.Data]:
		case ch.Data == "br":
			w.f.Ln(lineHeight)
			w.dirty = false
		default:
			w.inline(ch)
		}
	}
	if w.style != style {
		w.setFont(style, size)
	}
}

func (w *writer) text(s string) {
	s = squeeze(s)
	if !w.dirty {
		s = strings.TrimLeft(s, " ")
	}
	if s == "" {
		return
	}
	w.f.Write(lineHeight, w.tr(s))
	w.dirty = true
}

type cell struct {
	text   string
	span   int
	header bool
}

func (w *writer) table(n *html.Node) {
	var rows [][]cell
	cols := 0
	for _, tr := range rowsOf(n) {
		var row []cell
		width := 0
		for ch := tr.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type != html.ElementNode ||
				(ch.Data != "td" && ch.Data != "th") {
				continue
			}
			c := cell{
				text:   w.tr(collapse(textOf(ch))),
				span:   colspan(ch),
				header: ch.Data == "th",
			}
			width += c.span
			row = append(row, c)
		}
		if len(row) == 0 {
			continue
		}
		cols = max(cols, width)
		rows = append(rows, row)
	}
	if cols == 0 {
		return
	}
	left, _, right, bottom := w.f.GetMargins()
	pw, ph := w.f.GetPageSize()
	colW := (pw - left - right) / float64(cols)
	style, size := w.style, w.size
	w.setFont("", bodySize-1)
	for _, row := range rows {
		h := 0.0
		for _, c := range row {
			lines := len(w.f.SplitLines([]byte(c.text), colW*float64(c.span)))
			h = max(h, float64(max(lines, 1))*lineHeight)
		}
		h += 2 * cellPad
		if w.f.GetY()+h > ph-bottom {
			w.f.AddPage()
		}
		x, y := left, w.f.GetY()
		for _, c := range row {
			cw := colW * float64(c.span)
			if c.header {
				w.f.SetFillColor(230, 230, 230)
				w.f.Rect(x, y, cw, h, "FD")
				w.setFont("B", bodySize-1)
			} else {
				w.f.Rect(x, y, cw, h, "D")
			}
			w.f.SetXY(x, y+cellPad)
			w.f.MultiCell(cw, lineHeight, c.text, "", "L", false)
			if c.header {
				w.setFont("", bodySize-1)
			}
			x += cw
		}
		w.f.SetXY(left, y+h)
	}
	w.setFont(style, size)
	w.dirty = false
}

// rowsOf returns the tr elements of the table n, including the ones
// which are nested in thead, tbody, or tfoot, but not the rows of the
// nested tables.
func rowsOf(n *html.Node) []*html.Node {
	var rows []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		switch ch.Data {
		case "tr":
			rows = append(rows, ch)
		case "thead", "tbody", "tfoot":
			rows = append(rows, rowsOf(ch)...)
		}
	}
	return rows
}

func colspan(n *html.Node) int {
	for _, a := range n.Attr {
		if a.Key == "colspan" {
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil && v > 0 {
				return v
			}
		}
	}
	return 1
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func addStyle(style, s string) string {
	if strings.Contains(style, s) {
		return style
	}
	return style + s
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && skipped[n.Data] && n.Data != "title":
			return
		case n.Type == html.ElementNode && n.Data == "br":
			sb.WriteByte(' ')
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	return sb.String()
}

// collapse replaces whitespace runs by a single space and trims s.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// squeeze works like collapse, but keeps one space at each end of s
// if it had any whitespace there, so adjacent inline texts are spaced.
func squeeze(s string) string {
	c := collapse(s)
	if c == "" {
		if s != "" {
			return " "
		}
		return ""
	}
	if strings.TrimLeft(s, " \t\r\n\f") != s {
		c = " " + c
	}
	if strings.TrimRight(s, " \t\r\n\f") != s {
		c += " "
	}
	return c
}
