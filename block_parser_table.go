// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package patitas

import "strings"

// looksLikeTableDelimiterRow reports whether line is a GFM table
// delimiter row: cells made only of '-', with optional leading/trailing
// ':' for alignment, separated by '|'.
func looksLikeTableDelimiterRow(line string) (aligns []TableAlignment, ok bool) {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "|")
	if line == "" {
		return nil, false
	}
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	out := make([]TableAlignment, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		dashes := strings.Trim(c, ":")
		if dashes == "" || strings.Trim(dashes, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			out[i] = AlignCenter
		case left:
			out[i] = AlignLeft
		case right:
			out[i] = AlignRight
		default:
			out[i] = AlignNone
		}
	}
	return out, true
}

// splitTableRow splits a GFM table row on unescaped pipes.
func splitTableRow(line string) []string {
	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			cur.WriteByte(c)
			cur.WriteByte(line[i+1])
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	cells = append(cells, cur.String())
	return cells
}

// buildTable assembles a GFM table from a header line and delimiter row
// already identified by buildParagraphOrTableOrSetext, plus every
// directly following PARAGRAPH_LINE line that contains '|' (spec.md
// §4.6.2).
func (p *blockParser) buildTable(headerLine, delimLine string, headerStart int) *Block {
	aligns, _ := looksLikeTableDelimiterRow(delimLine)
	headerCells := splitTableRow(strings.Trim(strings.TrimSpace(headerLine), "|"))

	headerRow := p.buildTableRow(headerCells, aligns, true, headerStart)
	rows := []*Block{headerRow}

	end := headerRow.span.End
	for {
		tok := p.peek()
		if tok.Type != TokenParagraphLine {
			break
		}
		line := strings.TrimSpace(string(p.source[tok.Span.Start:tok.Span.End]))
		if line == "" || !strings.Contains(line, "|") {
			break
		}
		p.advance()
		cells := splitTableRow(strings.Trim(line, "|"))
		rows = append(rows, p.buildTableRow(cells, aligns, false, tok.Span.Start))
		end = tok.Span.End
	}

	return &Block{
		kind:          TableKind,
		span:          Span{Start: headerStart, End: end},
		blockChildren: rows,
		alignments:    aligns,
	}
}

func (p *blockParser) buildTableRow(cells []string, aligns []TableAlignment, isHeader bool, offset int) *Block {
	var cellBlocks []*Block
	for i, c := range cells {
		align := AlignNone
		if i < len(aligns) {
			align = aligns[i]
		}
		cell := &Block{
			kind:           TableCellKind,
			span:           Span{Start: offset, End: offset},
			isHeaderCell:   isHeader,
			align:          align,
			inlineChildren: parseInline(strings.TrimSpace(c), p.cfg, p.refs, offset),
		}
		cellBlocks = append(cellBlocks, cell)
	}
	return &Block{
		kind:          TableRowKind,
		span:          Span{Start: offset, End: offset},
		blockChildren: cellBlocks,
		isHeaderRow:   isHeader,
	}
}
