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

// buildBlockQuote consumes a run of BLOCK_QUOTE_MARKER lines plus any
// lazy-continuation lines that immediately follow with no intervening
// blank line, strips the marker from each quoted line, and sub-parses
// the reconstructed text as a fresh Markdown document (spec.md §4.6:
// "sub-parse the accumulated content string"). A lazy-continuation line
// only exists while the last quoted line left a paragraph open
// (inParagraph): ordinary PARAGRAPH_LINE tokens always continue it,
// INDENTED_CODE tokens continue it too since indented code cannot
// interrupt a paragraph, and a LIST_ITEM_MARKER continues it unless the
// marker would itself be allowed to interrupt a paragraph (spec.md
// §4.6's list-marker interruption rule). When the quote absorbed any lazy
// line, setext headings are suppressed in the sub-parse, since a setext
// underline on a lazily-continued line cannot close a paragraph that
// started inside the quote.
func (p *blockParser) buildBlockQuote() *Block {
	start := p.peek().Span.Start
	end := start
	var lines []string
	inParagraph := false
	lazy := false

collect:
	for {
		tok := p.peek()
		switch tok.Type {
		case TokenBlockQuoteMarker:
			p.advance()
			markerWidth := int(tok.Value[0] - '0')
			content := p.source[tok.Span.Start:tok.Span.End]
			if markerWidth <= len(content) {
				content = content[markerWidth:]
			}
			lines = append(lines, string(content))
			end = tok.Span.End
			inParagraph = !isBlankBytes(content)
		case TokenParagraphLine, TokenIndentedCode:
			if !inParagraph {
				break collect
			}
			p.advance()
			lazy = true
			lines = append(lines, string(p.source[tok.Span.Start:tok.Span.End]))
			end = tok.Span.End
		case TokenListItemMarker:
			if !inParagraph || listMarkerInterruptsParagraph(tok, p.source) {
				break collect
			}
			p.advance()
			lazy = true
			lines = append(lines, string(p.source[tok.Span.Start:tok.Span.End]))
			end = tok.Span.End
		default:
			break collect
		}
	}
	raw := strings.Join(lines, "\n")
	cfg := p.cfg
	if lazy {
		cfg = p.cfg.withSuppressedSetext()
	}
	children := p.subParse(raw, cfg)
	return &Block{kind: BlockQuoteKind, span: Span{Start: start, End: end}, blockChildren: children}
}
