// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package report

import (
	"html"
	"strconv"
	"strings"

	"github.com/momeni/repair-gateway/pkg/core/model"
)

const generatedDate = "generated_date"

func fill(tmpl string, rep model.Report, date string) string {
	pairs := make([]string, 0, 2*(len(rep.Fields)+len(rep.Sections)+1))
	for k, v := range rep.Fields {
		if k == generatedDate {
			continue
		}
		pairs = append(pairs, token(k), html.EscapeString(v))
	}
	for k, s := range rep.Sections {
		pairs = append(pairs, token(k), fragment(s))
	}
	pairs = append(pairs, token(generatedDate), html.EscapeString(date))
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func token(name string) string {
	return "{{" + name + "}}"
}

// fragment renders the rows of s as table rows or cards. Without rows,
// one table row is rendered with the s.Empty text spanning all columns.
func fragment(s model.Section) string {
	var sb strings.Builder
	if len(s.Rows) == 0 {
		cols := max(s.Columns, 1)
		if s.Layout == model.LayoutCards {
			sb.WriteString(`<p class="empty">`)
			sb.WriteString(html.EscapeString(s.Empty))
			sb.WriteString("</p>\n")
			return sb.String()
		}
		sb.WriteString(`<tr><td colspan="`)
		sb.WriteString(strconv.Itoa(cols))
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(s.Empty))
		sb.WriteString("</td></tr>\n")
		return sb.String()
	}
	for _, row := range s.Rows {
		switch s.Layout {
		case model.LayoutCards:
			sb.WriteString(`<div class="card">` + "\n")
			for _, c := range row {
				sb.WriteString(`  <div class="field"><span class="label">`)
				sb.WriteString(html.EscapeString(c.Label))
				sb.WriteString(":</span> ")
				sb.WriteString(html.EscapeString(c.Value))
				sb.WriteString("</div>\n")
			}
			sb.WriteString("</div>\n")
		default:
			sb.WriteString("<tr>")
			for _, c := range row {
				sb.WriteString("<td>")
				sb.WriteString(html.EscapeString(c.Value))
				sb.WriteString("</td>")
			}
			sb.WriteString("</tr>\n")
		}
	}
	return sb.String()
}
