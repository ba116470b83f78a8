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

// buildList consumes a run of same-type list item markers (same bullet
// character, or both ordered with the same delimiter) at the current
// indent, building one ListItem per marker via buildListItem, and
// determines the list's overall tightness per the blank-line decision
// table of spec.md §4.6.1: a list is loose if any blank line separates
// two of its items, or if any item's content itself contains a blank
// line between block-level children.
func (p *blockParser) buildList() *Block {
	first := p.peek()
	ordered, bulletChar, delimChar, startNum := classifyMarker(first.Value)

	start := first.Span.Start
	end := start
	var items []*Block
	loose := false

	for {
		tok := p.peek()
		if tok.Type != TokenListItemMarker {
			break
		}
		o2, b2, d2, _ := classifyMarker(tok.Value)
		if o2 != ordered || (ordered && d2 != delimChar) || (!ordered && b2 != bulletChar) {
			break
		}
		item, itemLoose := p.buildListItem(tok)
		items = append(items, item)
		end = item.span.End
		if itemLoose {
			loose = true
		}

		// A blank line between this item and the next marker of the same
		// list makes the whole list loose (spec.md §4.6.1). Blank tokens
		// are always safe to consume here: they carry no content either
		// way, matching parseBlockSequence's own unconditional skip.
		if p.peek().Type == TokenBlankLine {
			for p.peek().Type == TokenBlankLine {
				p.advance()
			}
			if nt := p.peek(); nt.Type == TokenListItemMarker {
				o3, b3, d3, _ := classifyMarker(nt.Value)
				if o3 == ordered && (!ordered || d3 == delimChar) && (ordered || b3 == bulletChar) {
					loose = true
				}
			}
		}
	}

	for _, it := range items {
		it.tight = !loose
	}

	return &Block{
		kind:          ListKind,
		span:          Span{Start: start, End: end},
		blockChildren: items,
		ordered:       ordered,
		startNum:      startNum,
		bulletChar:    bulletChar,
		delimChar:     delimChar,
		tight:         !loose,
	}
}

// classifyMarker decodes a LIST_ITEM_MARKER token's Value (the literal
// marker text, e.g. "-", "*", "12.") into its structural components.
func classifyMarker(markerText string) (ordered bool, bulletChar, delimChar byte, startNum int) {
	i := 0
	for i < len(markerText) && isASCIIDigit(markerText[i]) {
		i++
	}
	if i > 0 {
		n := 0
		for _, c := range markerText[:i] {
			n = n*10 + int(c-'0')
		}
		return true, 0, markerText[i], n
	}
	return false, markerText[0], 0, 0
}

// buildListItem extracts one list item's raw content by dedenting every
// subsequent physical line to the item's content column, then
// sub-parses it as a Markdown sub-document. It reports whether a blank
// line separated two blocks inside the item's own content (used by
// buildList's tightness decision).
func (p *blockParser) buildListItem(markerTok Token) (*Block, bool) {
	p.advance()
	markerLen := len(markerTok.Value)
	firstLineRest := ""
	if markerTok.Span.Start+markerLen <= markerTok.Span.End {
		firstLineRest = string(p.source[markerTok.Span.Start+markerLen : markerTok.Span.End])
	}
	contentIndent := markerLen
	trimmedFirst := strings.TrimLeft(firstLineRest, " \t")
	leadingSpaces := len(firstLineRest) - len(trimmedFirst)
	if leadingSpaces > 4 {
		// Code-block-like indentation after the marker: CommonMark treats
		// only one space as part of the marker, the rest is content indent.
		leadingSpaces = 1
	}
	contentIndent += leadingSpaces
	if trimmedFirst == "" {
		// Blank first line: a one-space content indent is used instead.
		contentIndent = markerLen + 1
	}

	rest, endOffset := extractIndentedContinuation(p.source, markerTok.Span.End, contentIndent)
	raw := strings.TrimLeft(firstLineRest, " \t")
	if rest != "" {
		raw += "\n" + rest
	}
	p.resyncAfter(endOffset)

	checked := NotTaskItem
	body := raw
	if p.cfg.TaskListsEnabled {
		if c, rest2, ok := parseTaskListMarker(raw); ok {
			checked = c
			body = rest2
		}
	}

	children, sawBlank := p.subParseTight(body, p.cfg)

	return &Block{
		kind:          ListItemKind,
		span:          Span{Start: markerTok.Span.Start, End: endOffset},
		blockChildren: children,
		contentIndent: contentIndent,
		tight:         !sawBlank,
		checked:       checked,
	}, sawBlank
}

// parseTaskListMarker recognizes a leading "[ ] "/"[x] "/"[X] " task
// checkbox at the start of a list item's body, per the GFM task-list
// extension.
func parseTaskListMarker(body string) (CheckedState, string, bool) {
	if len(body) < 4 || body[0] != '[' || body[2] != ']' {
		return NotTaskItem, body, false
	}
	if body[3] != ' ' && body[3] != '\t' {
		return NotTaskItem, body, false
	}
	switch body[1] {
	case ' ':
		return Unchecked, body[4:], true
	case 'x', 'X':
		return Checked, body[4:], true
	}
	return NotTaskItem, body, false
}
