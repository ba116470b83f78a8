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

import "bytes"

// lexerMode is the lexer's current scanning mode.
type lexerMode uint8

const (
	modeBlock lexerMode = iota
	modeFencedCode
	modeDirective
	modeHTMLBlock
	modeMathBlock
)

// directiveFrame tracks one open `:::{name}` directive for colon-count
// and close matching.
type directiveFrame struct {
	colons int
	name   string
}

// htmlBlockKind is which of CommonMark's seven HTML-block conditions is
// currently open.
type htmlBlockKind uint8

const (
	htmlBlockNone htmlBlockKind = iota
	htmlBlockType1
	htmlBlockType2
	htmlBlockType3
	htmlBlockType4
	htmlBlockType5
	htmlBlockType6or7
)

// lexer scans a source buffer line-by-line into Tokens, never rewinding.
// It implements the line-window protocol: save start, locate line end,
// classify without advancing, then commit past the terminator.
type lexer struct {
	source []byte
	pos    int // byte offset of the next unscanned byte
	line   int // 1-indexed line about to be scanned
	col    int // always 1 at line start; lexer never mid-line resumes

	mode lexerMode

	fenceChar   byte
	fenceLen    int
	fenceIndent int

	mathIndent int

	directiveStack []directiveFrame

	htmlKind       htmlBlockKind
	prevLineBlank  bool

	cfg *Config

	done bool
}

func newLexer(source []byte, cfg *Config) *lexer {
	return &lexer{
		source: source,
		pos:    0,
		line:   1,
		col:    1,
		cfg:    cfg.clone(),
	}
}

// lineWindow is one physical line, with leading/trailing bounds already
// located but not yet consumed.
type lineWindow struct {
	start    int // byte offset of line's first byte
	end      int // byte offset of the line terminator (or len(source))
	termLen  int // length of the terminator: 0, 1 (\n or \r), or 2 (\r\n)
	line     int
	col      int
	indent   int // effective indent, tabs expanded to next multiple of 4
	content  int // byte offset where indent-consuming content begins
}

// peekLine locates the next line's bounds without consuming it.
func (lx *lexer) peekLine() (lineWindow, bool) {
	if lx.pos >= len(lx.source) {
		return lineWindow{}, false
	}
	start := lx.pos
	end := start
	for end < len(lx.source) && lx.source[end] != '\n' && lx.source[end] != '\r' {
		end++
	}
	termLen := 0
	if end < len(lx.source) {
		if lx.source[end] == '\r' {
			if end+1 < len(lx.source) && lx.source[end+1] == '\n' {
				termLen = 2
			} else {
				termLen = 1
			}
		} else {
			termLen = 1
		}
	}
	indent, content := computeIndent(lx.source[start:end])
	return lineWindow{
		start:   start,
		end:     end,
		termLen: termLen,
		line:    lx.line,
		col:     1,
		indent:  indent,
		content: start + content,
	}, true
}

// commit advances the lexer past w's terminator.
func (lx *lexer) commit(w lineWindow) {
	lx.pos = w.end + w.termLen
	lx.line++
}

// computeIndent returns the effective indent (tab stop 4) and the byte
// offset within line where non-indent content begins.
func computeIndent(line []byte) (indent, contentOffset int) {
	i := 0
	for i < len(line) {
		switch line[i] {
		case ' ':
			indent++
			i++
		case '\t':
			indent += 4 - indent%4
			i++
		default:
			return indent, i
		}
	}
	return indent, i
}

// isBlank reports whether line (sans terminator) is empty or all
// whitespace.
func isBlankBytes(line []byte) bool {
	for _, c := range line {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

func mkToken(typ TokenType, start, end, line, col, lineIndent int, value string) Token {
	return Token{
		Type:       typ,
		Span:       Span{Start: start, End: end},
		Value:      value,
		Line:       line,
		Column:     col,
		LineIndent: lineIndent,
	}
}

// Next produces the next token in the stream. Once EOF has been
// returned, subsequent calls keep returning EOF.
func (lx *lexer) Next() Token {
	if lx.done {
		return mkToken(TokenEOF, len(lx.source), len(lx.source), lx.line, 1, 0, "")
	}
	w, ok := lx.peekLine()
	if !ok {
		lx.done = true
		return mkToken(TokenEOF, len(lx.source), len(lx.source), lx.line, 1, 0, "")
	}

	switch lx.mode {
	case modeFencedCode:
		return lx.scanFencedCodeLine(w)
	case modeHTMLBlock:
		return lx.scanHTMLBlockLine(w)
	case modeDirective:
		return lx.scanDirectiveLine(w)
	case modeMathBlock:
		return lx.scanMathBlockLine(w)
	default:
		return lx.scanBlockLine(w)
	}
}

// scanBlockLine runs the ordered classifier dispatch of spec.md §4.4.
func (lx *lexer) scanBlockLine(w lineWindow) Token {
	line := lx.source[w.start:w.end]
	trimmed := lx.source[w.content:w.end]

	// 1. Blank line.
	if isBlankBytes(line) {
		lx.prevLineBlank = true
		lx.commit(w)
		return mkToken(TokenBlankLine, w.start, w.end, w.line, w.col, w.indent, "")
	}
	wasPrevBlank := lx.prevLineBlank
	lx.prevLineBlank = false

	// 2. Indented code (>= 4 columns).
	if w.indent >= 4 {
		lx.commit(w)
		return mkToken(TokenIndentedCode, w.content, w.end, w.line, w.col, w.indent, string(lx.source[w.content:w.end]))
	}

	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '`', '~':
			if tok, ok := lx.tryFenceOpen(w, trimmed); ok {
				return tok
			}
		case '$':
			if lx.cfg.MathEnabled {
				if tok, ok := lx.tryMathBlockOpen(w, trimmed); ok {
					return tok
				}
			}
		case '<':
			if tok, ok := lx.tryHTMLBlockOpen(w, trimmed, wasPrevBlank); ok {
				return tok
			}
		case '#':
			if tok, ok := tryATXHeading(w, trimmed); ok {
				lx.commit(w)
				return tok
			}
		case '>':
			markerWidth := 1
			if len(trimmed) > 1 && (trimmed[1] == ' ' || trimmed[1] == '\t') {
				markerWidth = 2
			}
			lx.commit(w)
			return mkToken(TokenBlockQuoteMarker, w.content, w.end, w.line, w.col, w.indent, string(rune('0'+markerWidth)))
		}
		if trimmed[0] == '-' || trimmed[0] == '_' || trimmed[0] == '*' {
			if tok, ok := tryThematicBreak(w, trimmed); ok {
				lx.commit(w)
				return tok
			}
		}
		if tok, ok := tryListMarker(w, trimmed); ok {
			lx.commit(w)
			return tok
		}
		if trimmed[0] == '[' {
			if tok, ok := tryFootnoteDef(w, trimmed); ok {
				lx.commit(w)
				return tok
			}
			if tok, ok := lx.tryLinkReferenceDef(w); ok {
				return tok
			}
		}
		if bytes.HasPrefix(trimmed, []byte(":::")) {
			if tok, ok := lx.tryDirectiveOpen(w, trimmed); ok {
				return tok
			}
		}
	}

	// 12. Fallback: paragraph line.
	lx.commit(w)
	return mkToken(TokenParagraphLine, w.content, w.end, w.line, w.col, w.indent, string(trimmed))
}

func tryATXHeading(w lineWindow, trimmed []byte) (Token, bool) {
	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return Token{}, false
	}
	if n < len(trimmed) && trimmed[n] != ' ' && trimmed[n] != '\t' {
		return Token{}, false
	}
	value := string(trimmed)
	return mkToken(TokenATXHeading, w.content, w.end, w.line, w.col, w.indent, value), true
}

func tryThematicBreak(w lineWindow, trimmed []byte) (Token, bool) {
	c := trimmed[0]
	count := 0
	for _, b := range trimmed {
		switch b {
		case c:
			count++
		case ' ', '\t':
			// allowed between markers
		default:
			return Token{}, false
		}
	}
	if count < 3 {
		return Token{}, false
	}
	return mkToken(TokenThematicBreak, w.content, w.end, w.line, w.col, w.indent, string(trimmed)), true
}

// tryListMarker classifies a bullet or ordered list marker. Value is the
// marker text alone (e.g. "-", "12.").
func tryListMarker(w lineWindow, trimmed []byte) (Token, bool) {
	i := 0
	isOrdered := false
	for i < len(trimmed) && isASCIIDigit(trimmed[i]) {
		i++
		isOrdered = true
	}
	if isOrdered {
		if i == 0 || i > 9 {
			return Token{}, false
		}
		if i >= len(trimmed) || (trimmed[i] != '.' && trimmed[i] != ')') {
			return Token{}, false
		}
		i++
	} else {
		if trimmed[0] != '-' && trimmed[0] != '*' && trimmed[0] != '+' {
			return Token{}, false
		}
		i = 1
	}
	if i < len(trimmed) && trimmed[i] != ' ' && trimmed[i] != '\t' {
		return Token{}, false
	}
	markerText := string(trimmed[:i])
	// Span covers the whole line so the block parser can recover the
	// first line's content after the marker; Value is exactly the marker
	// text, so its length is the strip width.
	return mkToken(TokenListItemMarker, w.content, w.end, w.line, w.col, w.indent, markerText), true
}

func tryFootnoteDef(w lineWindow, trimmed []byte) (Token, bool) {
	if len(trimmed) < 4 || trimmed[0] != '[' || trimmed[1] != '^' {
		return Token{}, false
	}
	i := 2
	for i < len(trimmed) && trimmed[i] != ']' {
		if !isLabelIDByte(trimmed[i]) {
			return Token{}, false
		}
		i++
	}
	if i == 2 || i >= len(trimmed) || trimmed[i] != ']' {
		return Token{}, false
	}
	i++
	if i >= len(trimmed) || trimmed[i] != ':' {
		return Token{}, false
	}
	id := string(trimmed[2 : i-1])
	return mkToken(TokenFootnoteDef, w.content, w.end, w.line, w.col, w.indent, id), true
}

func isLabelIDByte(b byte) bool {
	return b == '-' || b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// isEndEscaped reports whether s ends with an odd number of trailing
// backslashes (i.e. the last character is escaped).
func isEndEscaped(s []byte) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
