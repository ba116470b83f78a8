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

// bracketEntry tracks one open '[' or '![' while scanning for link and
// image closers.
type bracketEntry struct {
	outputIdx        int
	isImage          bool
	active           bool
	delimStackBottom int
}

// parseInline runs all three inline-parsing phases over text (already
// dedented paragraph/heading/cell content, lines joined by '\n' for
// soft breaks) and returns the resulting Inline children. baseOffset is
// the byte offset of text's start within the document's source buffer,
// folded into child spans so error locations stay meaningful; since
// text is frequently a reconstructed sub-document slice rather than a
// literal document substring, spans here are best-effort.
func parseInline(text string, cfg *Config, refs ReferenceMap, baseOffset int) []*Inline {
	if text == "" {
		return nil
	}
	tokens := tokenizeInline(text, cfg)
	children := buildInlineSequence(tokens, text, cfg, refs)
	if baseOffset != 0 {
		shiftInlineSpans(children, baseOffset)
	}
	return children
}

// shiftInlineSpans adds offset to every span in the tree, recursively.
// Joining a multi-line block's lines with '\n' before tokenizing loses
// the per-line document offsets, so this is approximate for anything
// past the first line; it is still useful for single-line content and
// for locating the start of multi-line constructs.
func shiftInlineSpans(nodes []*Inline, offset int) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.span.Start += offset
		n.span.End += offset
		shiftInlineSpans(n.children, offset)
	}
}

// buildInlineSequence is phase 2+3: link/image bracket resolution
// interleaved with the emphasis delimiter stack, per the simplification
// recorded in DESIGN.md (link resolution closes over and resolves its
// own enclosed delimiter range before splicing in the composite node;
// any delimiters left outside all brackets are resolved once at the
// end).
func buildInlineSequence(tokens []inlineToken, text string, cfg *Config, refs ReferenceMap) []*Inline {
	var output []*Inline
	var delims []*delimEntry
	var brackets []*bracketEntry

	for idx := 0; idx < len(tokens); idx++ {
		tok := tokens[idx]
		switch tok.kind {
		case itText, itEntity:
			output = append(output, &Inline{kind: TextKind, text: tok.text, span: tok.span})
		case itHardBreak:
			output = append(output, &Inline{kind: LineBreakKind, span: tok.span})
		case itSoftBreak:
			output = append(output, &Inline{kind: SoftBreakKind, span: tok.span})
		case itCodeSpan:
			output = append(output, &Inline{kind: CodeSpanInlineKind, text: tok.text, span: tok.span})
		case itAutolink:
			output = append(output, buildAutolink(tok))
		case itRawHTML:
			output = append(output, &Inline{kind: HTMLInlineKind, text: tok.text, span: tok.span})
		case itMath:
			output = append(output, &Inline{kind: MathKind, text: tok.text, span: tok.span})
		case itRoleStart:
			if idx+1 < len(tokens) && tokens[idx+1].kind == itCodeSpan {
				content := tokens[idx+1].span
				output = append(output, buildRole(tok.roleName, tokens[idx+1].text, Span{Start: tok.span.Start, End: content.End}))
				idx++
			} else {
				output = append(output, &Inline{kind: TextKind, text: text[tok.span.Start:tok.span.End], span: tok.span})
			}
		case itEmphDelim, itStrikeDelim:
			node := &Inline{kind: TextKind, text: text[tok.span.Start:tok.span.End], span: tok.span}
			output = append(output, node)
			delims = append(delims, &delimEntry{
				outputIdx: len(output) - 1,
				char:      tok.delimChar,
				count:     tok.delimCount,
				canOpen:   tok.canOpen,
				canClose:  tok.canClose,
				active:    true,
			})
		case itLinkOpen, itImageOpen:
			isImage := tok.kind == itImageOpen
			node := &Inline{kind: TextKind, text: text[tok.span.Start:tok.span.End], span: tok.span}
			output = append(output, node)
			brackets = append(brackets, &bracketEntry{
				outputIdx:        len(output) - 1,
				isImage:          isImage,
				active:           true,
				delimStackBottom: len(delims),
			})
		case itBracketClose:
			bi := findActiveBracket(brackets)
			if bi < 0 {
				output = append(output, &Inline{kind: TextKind, text: "]", span: tok.span})
				continue
			}
			br := brackets[bi]
			if !br.isImage && cfg.FootnotesEnabled {
				label := text[openBracketEnd(tokens, idx):tok.span.Start]
				if strings.HasPrefix(label, "^") && label != "^" {
					for k := br.outputIdx; k < len(output); k++ {
						output[k] = nil
					}
					for j := br.delimStackBottom; j < len(delims); j++ {
						delims[j].active = false
					}
					delims = delims[:br.delimStackBottom]
					output[br.outputIdx] = &Inline{
						kind:       FootnoteRefKind,
						footnoteID: label[1:],
						span:       Span{Start: tokens[bracketTokenIndex(tokens, br, idx)].span.Start, End: tok.span.End},
					}
					br.active = false
					continue
				}
			}
			tail, consumedEnd := scanInlineLinkTail(text, tok.span.End)
			dest, title, hasTitle, resolved := resolveLinkTail(tail, refs, text, tok, idx, tokens)
			if !resolved {
				br.active = false
				output = append(output, &Inline{kind: TextKind, text: "]", span: tok.span})
				continue
			}

			// Resolve emphasis enclosed strictly within this bracket pair
			// before collapsing it into a Link/Image node.
			inner := delims[br.delimStackBottom:]
			resolveEmphasis(output, inner)
			for j := br.delimStackBottom; j < len(delims); j++ {
				delims[j].active = false
			}
			delims = delims[:br.delimStackBottom]

			var children []*Inline
			for k := br.outputIdx + 1; k < len(output); k++ {
				if output[k] != nil {
					children = append(children, output[k])
					output[k] = nil
				}
			}
			kind := LinkKind
			if br.isImage {
				kind = ImageKind
			}
			wrapped := &Inline{kind: kind, children: children, url: dest, title: title, hasTitle: hasTitle, span: Span{Start: output[br.outputIdx].span.Start, End: consumedEnd}}
			if br.isImage {
				wrapped.alt = plainText(children)
			}
			output[br.outputIdx] = wrapped
			br.active = false

			if !br.isImage {
				// A link's text cannot contain another link; deactivate any
				// earlier '[' openers so they fall back to literal text if
				// unmatched (CommonMark link-in-link suppression).
				for j := 0; j < bi; j++ {
					if !brackets[j].isImage {
						brackets[j].active = false
					}
				}
			}

			if consumedEnd > tok.span.End {
				idx = advanceTokensPast(tokens, idx, consumedEnd) - 1
			}
		}
	}

	resolveEmphasis(output, delims)
	return compact(output)
}

func findActiveBracket(brackets []*bracketEntry) int {
	for i := len(brackets) - 1; i >= 0; i-- {
		if brackets[i].active {
			return i
		}
	}
	return -1
}

func hasActiveLink(brackets []*bracketEntry) bool {
	for _, b := range brackets {
		if b.active && !b.isImage {
			return true
		}
	}
	return false
}

func bracketTokenIndex(tokens []inlineToken, _ *bracketEntry, closeIdx int) int {
	for i := closeIdx - 1; i >= 0; i-- {
		if tokens[i].kind == itLinkOpen || tokens[i].kind == itImageOpen {
			return i
		}
	}
	return 0
}

// resolveLinkTail decides the destination/title for a just-closed
// bracket, trying (in order) an inline tail, a full/collapsed reference
// tail, and finally a shortcut reference using the bracket's own text as
// the label.
func resolveLinkTail(tail inlineLinkTail, refs ReferenceMap, text string, closeTok inlineToken, closeIdx int, tokens []inlineToken) (dest, title string, hasTitle bool, ok bool) {
	switch tail.kind {
	case tailInline:
		return tail.destination, tail.title, tail.hasTitle, true
	case tailReference:
		label := tail.refLabel
		if label == "" {
			label = text[openBracketEnd(tokens, closeIdx):closeTok.span.Start]
		}
		if def, found := refs.MatchReference(label); found {
			return def.Destination, def.Title, def.TitlePresent, true
		}
		return "", "", false, false
	default:
		label := text[openBracketEnd(tokens, closeIdx):closeTok.span.Start]
		if def, found := refs.MatchReference(label); found {
			return def.Destination, def.Title, def.TitlePresent, true
		}
		return "", "", false, false
	}
}

func openBracketEnd(tokens []inlineToken, closeIdx int) int {
	for i := closeIdx - 1; i >= 0; i-- {
		if tokens[i].kind == itLinkOpen || tokens[i].kind == itImageOpen {
			return tokens[i].span.End
		}
	}
	return 0
}

// advanceTokensPast returns the index of the first token whose span
// starts at or after byteOffset, scanning forward from idx.
func advanceTokensPast(tokens []inlineToken, idx int, byteOffset int) int {
	i := idx + 1
	for i < len(tokens) && tokens[i].span.Start < byteOffset {
		i++
	}
	return i
}

func compact(output []*Inline) []*Inline {
	out := output[:0]
	for _, n := range output {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func buildAutolink(tok inlineToken) *Inline {
	if isAutolinkEmail(tok.text) && !strings.Contains(tok.text, ":") {
		return &Inline{kind: LinkKind, url: "mailto:" + tok.text, children: []*Inline{{kind: TextKind, text: tok.text, span: tok.span}}, span: tok.span}
	}
	return &Inline{kind: LinkKind, url: tok.text, children: []*Inline{{kind: TextKind, text: tok.text, span: tok.span}}, span: tok.span}
}

// buildRole assembles a Role inline from `{name}` + the backtick
// content that followed it, splitting off an optional ` <target>`
// suffix per spec.md's role syntax.
func buildRole(name, content string, span Span) *Inline {
	target := ""
	hasTarget := false
	body := content
	if i := strings.LastIndexByte(content, '<'); i > 0 && strings.HasSuffix(content, ">") {
		target = content[i+1 : len(content)-1]
		body = strings.TrimRight(content[:i], " ")
		hasTarget = true
	}
	in := &Inline{kind: RoleKind, roleName: name, text: body, span: span}
	if hasTarget {
		in.roleTarget = target
		in.hasTarget = true
	}
	return in
}

// plainText flattens children's text content, used for an Image's Alt.
func plainText(children []*Inline) string {
	var sb strings.Builder
	var walk func(*Inline)
	walk = func(n *Inline) {
		if n == nil {
			return
		}
		switch n.kind {
		case TextKind, CodeSpanInlineKind, MathKind:
			sb.WriteString(n.text)
		default:
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	for _, c := range children {
		walk(c)
	}
	return sb.String()
}
