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
	"bytes"
	"fmt"
	"strings"
)

// blockParser drives one lexer's token stream through the recursive
// descent block builders of spec.md §4.6, sharing a single reference
// map and diagnostic sink with any sub-parses it spawns (blockquote
// content, list items, footnote definitions). Directive bodies are built
// by this same parser.
type blockParser struct {
	lx     *lexer
	peeked *Token
	source []byte
	cfg    *Config

	refs  ReferenceMap
	diags *[]Diagnostic

	// sawInternalBlank records whether a blank line ever separated two
	// sibling blocks produced by parseBlockSequence, the tightness signal
	// of spec.md §4.6.1.
	sawInternalBlank bool

	// directiveNameStack names the chain of enclosing directives
	// currently being built, innermost last, consulted by buildDirective
	// to check a handler's Contract against its actual parent.
	directiveNameStack []string
}

func (p *blockParser) peek() Token {
	if p.peeked == nil {
		t := p.lx.Next()
		p.peeked = &t
	}
	return *p.peeked
}

func (p *blockParser) advance() Token {
	t := p.peek()
	p.peeked = nil
	return t
}

func (p *blockParser) addDiag(sev Severity, msg string, loc SourceLocation) {
	*p.diags = append(*p.diags, Diagnostic{Severity: sev, Message: msg, Location: loc})
}

// Parse is the top-level entry point: it runs pass 1 (link reference
// collection) over a fresh lexer, then pass 2 (recursive descent) over
// a second fresh lexer, and returns the assembled Document.
func Parse(source []byte, cfg *Config) *Document {
	cfg = cfg.clone()
	refs := collectReferences(source)
	var diags []Diagnostic
	doc := &Block{kind: DocumentKind, span: Span{Start: 0, End: len(source)}}
	p := &blockParser{
		lx:     newLexer(source, cfg),
		source: source,
		cfg:    cfg,
		refs:   refs,
		diags:  &diags,
	}
	doc.blockChildren = p.parseBlockSequence()
	return &Document{Root: doc, Source: source, References: refs, Diagnostics: diags}
}

// collectReferences is Pass 1: a linear scan collecting link reference
// definitions, normalized first-wins, blocked while an in-paragraph flag
// is set by a preceding PARAGRAPH_LINE/INDENTED_CODE token (spec.md
// §4.6 Pass 1).
func collectReferences(source []byte) ReferenceMap {
	refs := make(ReferenceMap)
	lx := newLexer(source, DefaultConfig())
	inParagraph := false
	for {
		tok := lx.Next()
		switch tok.Type {
		case TokenEOF:
			return refs
		case TokenParagraphLine, TokenIndentedCode:
			inParagraph = true
		case TokenBlankLine:
			inParagraph = false
		case TokenLinkReferenceDef:
			if !inParagraph {
				registerReferenceToken(refs, tok)
			}
			inParagraph = false
		default:
			inParagraph = false
		}
	}
}

func registerReferenceToken(refs ReferenceMap, tok Token) {
	parts := strings.SplitN(tok.Value, "\x00", 3)
	if len(parts) < 2 {
		return
	}
	label := normalizeLabel(parts[0])
	if label == "" {
		return
	}
	if _, exists := refs[label]; exists {
		return
	}
	def := LinkDefinition{Destination: unescapeLinkText(parts[0 + 1])}
	if len(parts) == 3 {
		def.Title = unescapeLinkText(parts[2])
		def.TitlePresent = true
	}
	refs[label] = def
}

// parseBlockSequence consumes tokens from p until EOF, building a flat
// list of sibling blocks. It is used for the top-level document and for
// every sub-parse (blockquote content, list item content, footnote
// bodies), each of which runs over its own fresh blockParser.
func (p *blockParser) parseBlockSequence() []*Block {
	var out []*Block
	for p.peek().Type != TokenEOF {
		if p.peek().Type == TokenBlankLine {
			p.advance()
			if len(out) > 0 && p.peek().Type != TokenEOF {
				p.sawInternalBlank = true
			}
			continue
		}
		if b := p.buildOneBlock(); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// buildOneBlock dispatches a single token per spec.md §4.6's block
// dispatch table, returning nil for tokens that contribute no block of
// their own (blank lines, already-collected reference definitions).
func (p *blockParser) buildOneBlock() *Block {
	tok := p.peek()
	switch tok.Type {
	case TokenBlankLine:
		p.advance()
		return nil
	case TokenATXHeading:
		return p.buildATXHeading(p.advance())
	case TokenThematicBreak:
		return p.buildThematicBreak(p.advance())
	case TokenFencedCodeStart:
		return p.buildFencedCode()
	case TokenMathBlockStart:
		return p.buildMathBlock()
	case TokenIndentedCode:
		return p.buildIndentedCode()
	case TokenHTMLBlock:
		return p.buildHTMLBlock()
	case TokenBlockQuoteMarker:
		return p.buildBlockQuote()
	case TokenListItemMarker:
		return p.buildList()
	case TokenFootnoteDef:
		return p.buildFootnoteDef()
	case TokenDirectiveOpen:
		return p.buildDirective()
	case TokenLinkReferenceDef:
		p.advance() // already collected in pass 1
		return nil
	case TokenDirectiveClose:
		// Stray close with no matching open at this level: treat as
		// plain text rather than losing the line.
		return p.buildParagraphFrom([]Token{p.advance()})
	default:
		return p.buildParagraphOrTableOrSetext()
	}
}

func (p *blockParser) buildThematicBreak(tok Token) *Block {
	return &Block{kind: ThematicBreakKind, span: tok.Span}
}

func (p *blockParser) buildATXHeading(tok Token) *Block {
	value := tok.Value
	n := 0
	for n < len(value) && value[n] == '#' {
		n++
	}
	rest := strings.TrimLeft(value[n:], " \t")
	rest = strings.TrimRight(rest, " \t")
	// Strip trailing closing hashes, e.g. "Heading ###".
	rest = stripATXClosingSequence(rest)

	explicitID, hasID, rest2 := extractExplicitHeadingID(rest)

	h := &Block{
		kind:        HeadingKind,
		span:        tok.Span,
		level:       n,
		style:       ATXHeadingStyle,
		explicitID:  explicitID,
		hasExplicit: hasID,
	}
	h.inlineChildren = parseInline(rest2, p.cfg, p.refs, tok.Span.Start+(len(value)-len(rest)))
	return h
}

func stripATXClosingSequence(s string) string {
	trimmed := strings.TrimRight(s, " \t")
	i := len(trimmed)
	for i > 0 && trimmed[i-1] == '#' {
		i--
	}
	if i == len(trimmed) {
		return s
	}
	if i == 0 || trimmed[i-1] == ' ' || trimmed[i-1] == '\t' {
		return strings.TrimRight(trimmed[:i], " \t")
	}
	return s
}

func extractExplicitHeadingID(s string) (id string, ok bool, rest string) {
	i := strings.LastIndex(s, "{#")
	if i < 0 || !strings.HasSuffix(s, "}") {
		return "", false, s
	}
	if i > 0 && s[i-1] != ' ' && s[i-1] != '\t' {
		return "", false, s
	}
	candidate := s[i+2 : len(s)-1]
	if !isValidHeadingID(candidate) {
		return "", false, s
	}
	return candidate, true, strings.TrimRight(s[:i], " \t")
}

func isValidHeadingID(s string) bool {
	if s == "" || !isASCIILetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isASCIILetter(c) || isASCIIDigit(c) || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

func (p *blockParser) buildFencedCode() *Block {
	startTok := p.advance()
	fenceChar := startTok.Value[0]
	info := ""
	if len(startTok.Value) > 1 {
		info = startTok.Value[1:]
	}
	blockStart := startTok.Span.Start
	blockEnd := startTok.Span.End
	var codeSpan Span
	haveContent := false
	for {
		tok := p.peek()
		switch tok.Type {
		case TokenFencedCodeContent:
			p.advance()
			if !haveContent {
				codeSpan.Start = tok.Span.Start
				haveContent = true
			}
			codeSpan.End = tok.Span.End
			blockEnd = tok.Span.End
		case TokenFencedCodeEnd:
			p.advance()
			blockEnd = tok.Span.End
			return &Block{kind: FencedCodeKind, span: Span{Start: blockStart, End: blockEnd}, info: info, fenceChar: fenceChar, fenceLen: 3, codeSpan: codeSpan}
		case TokenEOF:
			return &Block{kind: FencedCodeKind, span: Span{Start: blockStart, End: blockEnd}, info: info, fenceChar: fenceChar, fenceLen: 3, codeSpan: codeSpan}
		default:
			// Any token type other than content/end/EOF should not occur
			// while the lexer is in fenced-code mode; skip defensively.
			p.advance()
			blockEnd = tok.Span.End
		}
	}
}

// buildMathBlock handles a `$$`-delimited math block, mirroring
// buildFencedCode's token consumption shape since the lexer produces
// the analogous START/CONTENT/END triple for it.
func (p *blockParser) buildMathBlock() *Block {
	startTok := p.advance()
	blockStart := startTok.Span.Start
	blockEnd := startTok.Span.End
	var codeSpan Span
	haveContent := false
	for {
		tok := p.peek()
		switch tok.Type {
		case TokenMathBlockContent:
			p.advance()
			if !haveContent {
				codeSpan.Start = tok.Span.Start
				haveContent = true
			}
			codeSpan.End = tok.Span.End
			blockEnd = tok.Span.End
		case TokenMathBlockEnd:
			p.advance()
			blockEnd = tok.Span.End
			return &Block{kind: MathBlockKind, span: Span{Start: blockStart, End: blockEnd}, codeSpan: codeSpan}
		case TokenEOF:
			return &Block{kind: MathBlockKind, span: Span{Start: blockStart, End: blockEnd}, codeSpan: codeSpan}
		default:
			p.advance()
			blockEnd = tok.Span.End
		}
	}
}

func (p *blockParser) buildIndentedCode() *Block {
	first := p.advance()
	blockStart := first.Span.Start
	codeStart := first.Span.Start
	codeEnd := first.Span.End
	for {
		switch p.peek().Type {
		case TokenIndentedCode:
			tok := p.advance()
			codeEnd = tok.Span.End
		case TokenBlankLine:
			var lastBlankEnd int
			for p.peek().Type == TokenBlankLine {
				lastBlankEnd = p.peek().Span.End
				p.advance()
			}
			if p.peek().Type == TokenIndentedCode {
				codeEnd = lastBlankEnd
				continue
			}
			return &Block{kind: IndentedCodeKind, span: Span{Start: blockStart, End: codeEnd}, codeSpan: Span{Start: codeStart, End: codeEnd}}
		default:
			return &Block{kind: IndentedCodeKind, span: Span{Start: blockStart, End: codeEnd}, codeSpan: Span{Start: codeStart, End: codeEnd}}
		}
	}
}

func (p *blockParser) buildHTMLBlock() *Block {
	first := p.advance()
	start := first.Span.Start
	end := first.Span.End
	for p.peek().Type == TokenHTMLBlock {
		tok := p.advance()
		end = tok.Span.End
	}
	return &Block{kind: HTMLBlockKind, span: Span{Start: start, End: end}, rawHTML: string(p.source[start:end])}
}

// buildFootnoteDef parses `[^id]: content`, including any further lines
// indented by at least 4 columns, which are dedented and sub-parsed as
// the footnote body (spec.md §4.6 footnote definition).
func (p *blockParser) buildFootnoteDef() *Block {
	tok := p.advance()
	id := tok.Value
	markerWidth := len(id) + 4 // "[^" + id + "]:"
	firstLine := ""
	if tok.Span.Start+markerWidth <= tok.Span.End {
		firstLine = string(p.source[tok.Span.Start+markerWidth : tok.Span.End])
	}
	firstLine = strings.TrimPrefix(firstLine, " ")

	rest, endOffset := extractIndentedContinuation(p.source, tok.Span.End, 4)
	raw := firstLine
	if rest != "" {
		raw += "\n" + rest
	}
	children := p.subParse(raw, p.cfg)
	p.resyncAfter(endOffset)

	return &Block{
		kind:          FootnoteDefKind,
		span:          Span{Start: tok.Span.Start, End: endOffset},
		identifier:    id,
		blockChildren: children,
	}
}

// extractIndentedContinuation scans raw physical lines in source
// starting just after afterOffset's line terminator, consuming every
// line indented by at least minIndent columns (dedenting it) or blank,
// stopping at the first insufficiently-indented non-blank line. It
// returns the dedented joined text and the byte offset just past the
// last line consumed.
func extractIndentedContinuation(source []byte, afterOffset int, minIndent int) (string, int) {
	pos := skipLineTerminator(source, afterOffset)
	var lines []string
	lastGoodPos := pos
	for pos < len(source) {
		lineStart := pos
		lineEnd := lineStart
		for lineEnd < len(source) && source[lineEnd] != '\n' && source[lineEnd] != '\r' {
			lineEnd++
		}
		line := source[lineStart:lineEnd]
		indent, content := computeIndent(line)
		nextPos := skipLineTerminator(source, lineEnd)
		if isBlankBytes(line) {
			lines = append(lines, "")
			pos = nextPos
			continue
		}
		if indent < minIndent {
			break
		}
		stripped := stripIndentColumns(line, content, minIndent)
		lines = append(lines, stripped)
		lastGoodPos = nextPos
		pos = nextPos
	}
	// Trim trailing blank lines, which terminate the continuation rather
	// than belong to it.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return "", lastGoodPos
	}
	return strings.Join(lines, "\n"), lastGoodPos
}

func skipLineTerminator(source []byte, pos int) int {
	if pos < len(source) {
		if source[pos] == '\r' {
			if pos+1 < len(source) && source[pos+1] == '\n' {
				return pos + 2
			}
			return pos + 1
		}
		if source[pos] == '\n' {
			return pos + 1
		}
	}
	return pos
}

// stripIndentColumns removes up to cols columns of leading indent from
// line (tabs expanded to the next multiple of 4), returning the rest.
func stripIndentColumns(line []byte, contentOffset int, cols int) string {
	col := 0
	i := 0
	for i < contentOffset && col < cols {
		if line[i] == '\t' {
			col += 4 - col%4
		} else {
			col++
		}
		i++
	}
	return string(line[i:])
}

// resyncAfter repositions p's lexer to continue scanning right after
// byte offset end, discarding any peeked token. Used after consuming a
// multi-line construct (footnote/list continuation) via raw byte
// scanning rather than the token stream.
func (p *blockParser) resyncAfter(end int) {
	p.peeked = nil
	p.lx.pos = end
	p.lx.line = countLinesBefore(p.source, end)
	p.lx.mode = modeBlock
	p.lx.prevLineBlank = false
}

func countLinesBefore(source []byte, offset int) int {
	n := 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			n++
		}
	}
	return n
}

// subParse runs a fresh blockParser over raw (a reconstructed Markdown
// sub-document, e.g. dedented blockquote/list/footnote content) sharing cfg and the parent's collected reference map, per
// spec.md's sanctioned "sub-parse the accumulated content string"
// strategy for nested containers.
func (p *blockParser) subParse(raw string, cfg *Config) []*Block {
	blocks, _ := p.subParseTight(raw, cfg)
	return blocks
}

// subParseTight is subParse plus the internal-blank-line signal used by
// list-item tightness determination.
func (p *blockParser) subParseTight(raw string, cfg *Config) ([]*Block, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	src := []byte(raw)
	sub := &blockParser{
		lx:                 newLexer(src, cfg),
		source:             src,
		cfg:                cfg,
		refs:               p.refs,
		diags:              p.diags,
		directiveNameStack: append([]string(nil), p.directiveNameStack...),
	}
	blocks := sub.parseBlockSequence()
	return blocks, sub.sawInternalBlank
}

func (p *blockParser) buildDirective() *Block {
	openTok := p.advance()
	parts := strings.SplitN(openTok.Value, "\x00", 2)
	name := parts[0]
	title := ""
	if len(parts) == 2 {
		title = parts[1]
	}
	rawOptions := map[string]string{}
	start := openTok.Span.Start
	end := openTok.Span.End
	bodyStart := openTok.Span.End
	var children []*Block

	p.directiveNameStack = append(p.directiveNameStack, name)
loop:
	for {
		tok := p.peek()
		switch tok.Type {
		case TokenEOF:
			break loop
		case TokenDirectiveOption:
			p.advance()
			kv := strings.SplitN(tok.Value, "\x00", 2)
			if len(kv) == 2 {
				rawOptions[kv[0]] = kv[1]
			}
			end = tok.Span.End
			bodyStart = tok.Span.End
		case TokenDirectiveClose:
			p.advance()
			end = tok.Span.End
			break loop
		default:
			if b := p.buildOneBlock(); b != nil {
				children = append(children, b)
				end = b.span.End
			}
		}
	}
	p.directiveNameStack = p.directiveNameStack[:len(p.directiveNameStack)-1]

	handler, _ := p.cfg.Directives.lookup(name)
	options, violations := bindDirectiveOptions(handler, name, rawOptions)
	if handler != nil {
		if handler.RequiresArgument && title == "" {
			violations = append(violations, ContractViolation{
				Directive:     name,
				ViolationType: "missing_argument",
				Message:       fmt.Sprintf("directive %q requires an argument", name),
			})
		}
		if handler.Contract != nil {
			parent := ""
			hasParent := len(p.directiveNameStack) > 0
			if hasParent {
				parent = p.directiveNameStack[len(p.directiveNameStack)-1]
			}
			violations = append(violations, handler.Contract.validateParent(name, parent, hasParent)...)

			var childNames []string
			for _, c := range children {
				if c.Kind() == DirectiveKind {
					childNames = append(childNames, c.Name())
				}
			}
			violations = append(violations, handler.Contract.validateChildren(name, childNames, len(children) > 0)...)
		}
	}
	rawContent := ""
	hasRawContent := false
	if handler != nil && handler.PreservesRawContent {
		rawContent = string(p.source[bodyStart:end])
		hasRawContent = true
	}

	if len(violations) > 0 {
		sev := SeverityWarning
		if p.cfg.StrictContracts {
			sev = SeverityError
		}
		loc := openTok.Location("")
		for _, v := range violations {
			s := sev
			if v.ViolationType == "suggested_parent" {
				s = SeverityWarning
			}
			p.addDiag(s, v.Message, loc)
		}
	}

	return &Block{
		kind:               DirectiveKind,
		span:               Span{Start: start, End: end},
		name:               name,
		title:              title,
		rawOptions:         rawOptions,
		options:            options,
		rawContent:         rawContent,
		hasRawContent:      hasRawContent,
		blockChildren:      children,
		contractViolations: violations,
		handlerName:        name,
	}
}

// buildParagraphOrTableOrSetext accumulates consecutive PARAGRAPH_LINE
// tokens, resolving the three ways such a run can end per spec.md
// §4.6.1: a GFM table delimiter row directly after the first line (when
// that line contains '|') makes that line a Table header, a following
// setext underline ("===" or "---" alone on a
// line, indent <=3) closes it as a Heading, and a following non-
// paragraph token simply ends it as a Paragraph.
func (p *blockParser) buildParagraphOrTableOrSetext() *Block {
	firstTok := p.advance()
	start := firstTok.Span.Start
	end := firstTok.Span.End
	lines := []string{string(p.source[firstTok.Span.Start:firstTok.Span.End])}

	if p.cfg.TablesEnabled && strings.Contains(lines[0], "|") {
		if delim, ok := p.tryConsumeDelimiterRow(); ok {
			return p.buildTable(lines[0], delim, start)
		}
	}

	for {
		if level, underlineTok, ok := p.tryPeekSetextUnderline(); ok {
			p.advance()
			h := &Block{kind: HeadingKind, span: Span{Start: start, End: underlineTok.Span.End}, level: level, style: SetextHeadingStyle}
			h.inlineChildren = parseInline(strings.Join(lines, "\n"), p.cfg, p.refs, start)
			return h
		}
		tok := p.peek()
		if !p.continuesParagraph(tok) {
			break
		}
		p.advance()
		lines = append(lines, string(p.source[tok.Span.Start:tok.Span.End]))
		end = tok.Span.End
	}

	para := &Block{kind: ParagraphKind, span: Span{Start: start, End: end}}
	para.inlineChildren = parseInline(strings.Join(lines, "\n"), p.cfg, p.refs, start)
	return para
}

// continuesParagraph reports whether tok should be absorbed as another
// line of an already-open paragraph rather than ending it. Ordinary
// paragraph lines always do. Indented code can never interrupt a
// paragraph (spec.md §4.4 step 2 assigns this interaction to the
// parser, not the lexer, since the lexer classifies indentation alone
// without regard to what block is open). A list marker only interrupts
// a paragraph if its item is non-empty and, when ordered, starts at 1
// (spec.md §4.6); any other list marker is absorbed as paragraph text
// instead.
func (p *blockParser) continuesParagraph(tok Token) bool {
	switch tok.Type {
	case TokenParagraphLine, TokenIndentedCode:
		return true
	case TokenListItemMarker:
		return !listMarkerInterruptsParagraph(tok, p.source)
	default:
		return false
	}
}

// listMarkerInterruptsParagraph reports whether tok, a TokenListItemMarker,
// is allowed to interrupt an open paragraph and start a new list: the
// item must be non-empty, and if its marker is ordered, it must start
// at 1.
func listMarkerInterruptsParagraph(tok Token, source []byte) bool {
	marker := tok.Value
	rest := source[tok.Span.Start+len(marker) : tok.Span.End]
	if len(bytes.TrimSpace(rest)) == 0 {
		return false
	}
	if last := marker[len(marker)-1]; last == '.' || last == ')' {
		if marker[:len(marker)-1] != "1" {
			return false
		}
	}
	return true
}

// tryPeekSetextUnderline reports whether the next token's raw line
// (regardless of how the lexer classified it) is a setext underline: a
// run of only '=' (level 1) or only '-' (level 2), indent <=3.
func (p *blockParser) tryPeekSetextUnderline() (level int, tok Token, ok bool) {
	if p.cfg.suppressSetext {
		return 0, Token{}, false
	}
	tok = p.peek()
	if tok.Type == TokenEOF || tok.Type == TokenBlankLine {
		return 0, Token{}, false
	}
	if tok.LineIndent > 3 {
		return 0, Token{}, false
	}
	content := strings.TrimRight(string(p.source[tok.Span.Start:tok.Span.End]), " \t")
	if content == "" {
		return 0, Token{}, false
	}
	c := content[0]
	if c != '=' && c != '-' {
		return 0, Token{}, false
	}
	for i := 0; i < len(content); i++ {
		if content[i] != c {
			return 0, Token{}, false
		}
	}
	if c == '=' {
		return 1, tok, true
	}
	return 2, tok, true
}

// tryConsumeDelimiterRow consumes and returns the next line's raw text
// if it parses as a GFM table delimiter row, regardless of how the
// lexer classified it.
func (p *blockParser) tryConsumeDelimiterRow() (string, bool) {
	tok := p.peek()
	if tok.Type == TokenEOF || tok.Type == TokenBlankLine {
		return "", false
	}
	line := string(p.source[tok.Span.Start:tok.Span.End])
	if _, ok := looksLikeTableDelimiterRow(line); !ok {
		return "", false
	}
	p.advance()
	return line, true
}

// buildParagraphFrom assembles a paragraph block directly from an
// already-consumed token list (used for stray DIRECTIVE_CLOSE tokens
// that have no matching open at the current nesting level).
func (p *blockParser) buildParagraphFrom(tokens []Token) *Block {
	if len(tokens) == 0 {
		return nil
	}
	start := tokens[0].Span.Start
	end := tokens[len(tokens)-1].Span.End
	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(p.source[t.Span.Start:t.Span.End]))
	}
	para := &Block{kind: ParagraphKind, span: Span{Start: start, End: end}}
	para.inlineChildren = parseInline(sb.String(), p.cfg, p.refs, start)
	return para
}
