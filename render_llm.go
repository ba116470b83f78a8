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

import (
	"strconv"
	"strings"
)

// RenderLLM renders doc as structured plain text meant for consumption
// by a language model rather than a browser: no HTML, normalized
// whitespace, and explicit bracketed labels in place of markup that
// would otherwise be implicit (code fences, math, images). It is not
// meant to round-trip back to Markdown.
func RenderLLM(doc *Document) string {
	state := &llmRenderState{source: doc.Source}
	state.children(doc.Root)
	return string(state.dst)
}

// llmRenderState carries the accumulated output across one render.
// Unlike renderState (render_html.go) it needs no footnote or slug
// bookkeeping: footnote references render as a bare `[^id]` marker
// wherever they occur, and footnote definitions render inline as plain
// block content the same as any other block.
type llmRenderState struct {
	source []byte
	dst    []byte
}

func (s *llmRenderState) children(parent *Block) {
	for _, c := range parent.BlockChildren() {
		s.block(c)
	}
}

// block appends the rendered plain text of one block (and its
// descendants) to s.dst.
func (s *llmRenderState) block(b *Block) {
	switch b.Kind() {
	case DocumentKind:
		s.children(b)
	case HeadingKind:
		s.dst = append(s.dst, strings.Repeat("#", b.HeadingLevel())...)
		s.dst = append(s.dst, ' ')
		s.inlines(b.InlineChildren())
		s.dst = append(s.dst, "\n\n"...)
	case ParagraphKind:
		s.inlines(b.InlineChildren())
		s.dst = append(s.dst, "\n\n"...)
	case FencedCodeKind:
		if info := strings.Fields(b.Info()); len(info) > 0 {
			s.dst = append(s.dst, "[code:"...)
			s.dst = append(s.dst, info[0]...)
			s.dst = append(s.dst, "]\n"...)
		} else {
			s.dst = append(s.dst, "[code]\n"...)
		}
		s.dst = append(s.dst, b.GetCode(s.source)...)
		s.dst = append(s.dst, "\n[/code]\n\n"...)
	case IndentedCodeKind:
		s.dst = append(s.dst, "[code]\n"...)
		s.dst = append(s.dst, b.GetCode(s.source)...)
		s.dst = append(s.dst, "\n[/code]\n\n"...)
	case BlockQuoteKind:
		s.dst = append(s.dst, "> "...)
		s.children(b)
		s.dst = append(s.dst, '\n')
	case ListKind:
		start := b.StartNumber()
		for i, item := range b.BlockChildren() {
			if b.IsOrdered() {
				s.dst = strconv.AppendInt(s.dst, int64(start+i), 10)
				s.dst = append(s.dst, '.', ' ')
			} else {
				s.dst = append(s.dst, "- "...)
			}
			s.listItem(item)
		}
		s.dst = append(s.dst, '\n')
	case ListItemKind:
		s.listItem(b)
	case ThematicBreakKind:
		s.dst = append(s.dst, "---\n\n"...)
	case HTMLBlockKind:
		s.dst = append(s.dst, b.RawHTML()...)
		s.dst = append(s.dst, "\n\n"...)
	case TableKind:
		s.table(b)
	case MathBlockKind:
		s.dst = append(s.dst, "[math] "...)
		s.dst = append(s.dst, b.GetCode(s.source)...)
		s.dst = append(s.dst, " [/math]\n\n"...)
	case DirectiveKind:
		s.children(b)
	case FootnoteDefKind:
		s.children(b)
	}
}

// listItem renders one list item's content: its first child renders as
// bare inline text if it's a paragraph (so a one-line item reads as
// "- text" rather than "- text\n\n"), and every remaining child renders
// as a normal block.
func (s *llmRenderState) listItem(item *Block) {
	children := item.BlockChildren()
	if len(children) == 0 {
		s.dst = append(s.dst, '\n')
		return
	}
	if first := children[0]; first.Kind() == ParagraphKind {
		s.inlines(first.InlineChildren())
	} else {
		s.block(first)
	}
	for _, c := range children[1:] {
		s.block(c)
	}
	s.dst = append(s.dst, '\n')
}

// table renders a GFM table as a plain-text grid, header row included,
// with no alignment markup (alignment has no plain-text equivalent).
func (s *llmRenderState) table(b *Block) {
	for _, row := range b.BlockChildren() {
		s.dst = append(s.dst, "| "...)
		for i, cell := range row.BlockChildren() {
			if i > 0 {
				s.dst = append(s.dst, " | "...)
			}
			s.dst = append(s.dst, s.inlineText(cell.InlineChildren())...)
		}
		s.dst = append(s.dst, " |\n"...)
	}
	s.dst = append(s.dst, '\n')
}

func (s *llmRenderState) inlines(children []*Inline) {
	for _, in := range children {
		s.inline(in)
	}
}

// inline appends the rendered plain text of one inline node (and its
// descendants) to s.dst.
func (s *llmRenderState) inline(in *Inline) {
	switch in.Kind() {
	case TextKind:
		s.dst = append(s.dst, in.Text()...)
	case EmphasisKind, StrongKind, StrikethroughKind:
		s.inlines(in.Children())
	case LinkKind:
		s.inlines(in.Children())
		s.dst = append(s.dst, " ("...)
		s.dst = append(s.dst, in.URL()...)
		s.dst = append(s.dst, ')')
	case ImageKind:
		s.dst = append(s.dst, "[image: "...)
		s.dst = append(s.dst, in.Alt()...)
		s.dst = append(s.dst, ']')
	case CodeSpanInlineKind:
		s.dst = append(s.dst, in.Text()...)
	case LineBreakKind, SoftBreakKind:
		s.dst = append(s.dst, ' ')
	case HTMLInlineKind:
		// Raw HTML has no plain-text equivalent; skipped entirely.
	case MathKind:
		s.dst = append(s.dst, "[math] "...)
		s.dst = append(s.dst, in.Text()...)
		s.dst = append(s.dst, " [/math]"...)
	case FootnoteRefKind:
		s.dst = append(s.dst, "[^"...)
		s.dst = append(s.dst, in.FootnoteID()...)
		s.dst = append(s.dst, ']')
	case RoleKind:
		s.dst = append(s.dst, in.Text()...)
	}
}

// inlineText flattens a cell's inline children to plain text, used for
// table cells where layout (not structure) matters.
func (s *llmRenderState) inlineText(children []*Inline) string {
	var sb strings.Builder
	for _, in := range children {
		appendInlineText(&sb, in)
	}
	return sb.String()
}

func appendInlineText(sb *strings.Builder, in *Inline) {
	switch in.Kind() {
	case TextKind, CodeSpanInlineKind, MathKind, RoleKind:
		sb.WriteString(in.Text())
	case ImageKind:
		sb.WriteString(in.Alt())
	case LinkKind, EmphasisKind, StrongKind, StrikethroughKind:
		for _, c := range in.Children() {
			appendInlineText(sb, c)
		}
	case LineBreakKind, SoftBreakKind:
		sb.WriteByte(' ')
	}
}
