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

	"golang.org/x/net/html/atom"
)

// type6Tags is the fixed set of block-level tag names that trigger
// CommonMark's HTML-block condition 6.
var type6Tags = map[string]struct{}{
	atom.Address.String():    {},
	atom.Article.String():    {},
	atom.Aside.String():      {},
	atom.Base.String():       {},
	atom.Basefont.String():   {},
	atom.Blockquote.String(): {},
	atom.Body.String():       {},
	atom.Caption.String():    {},
	atom.Center.String():     {},
	atom.Col.String():        {},
	atom.Colgroup.String():   {},
	atom.Dd.String():         {},
	atom.Details.String():    {},
	atom.Dialog.String():     {},
	atom.Dir.String():        {},
	atom.Div.String():        {},
	atom.Dl.String():         {},
	atom.Dt.String():         {},
	atom.Fieldset.String():   {},
	atom.Figcaption.String(): {},
	atom.Figure.String():     {},
	atom.Footer.String():     {},
	atom.Form.String():       {},
	atom.Frame.String():      {},
	atom.Frameset.String():   {},
	atom.H1.String():         {},
	atom.H2.String():         {},
	atom.H3.String():         {},
	atom.H4.String():         {},
	atom.H5.String():         {},
	atom.H6.String():         {},
	atom.Head.String():       {},
	atom.Header.String():     {},
	atom.Hr.String():         {},
	atom.Html.String():       {},
	atom.Iframe.String():     {},
	atom.Legend.String():     {},
	atom.Li.String():         {},
	atom.Link.String():       {},
	atom.Main.String():       {},
	atom.Menu.String():       {},
	atom.Menuitem.String():   {},
	atom.Nav.String():        {},
	atom.Noframes.String():   {},
	atom.Ol.String():         {},
	atom.Optgroup.String():   {},
	atom.Option.String():     {},
	atom.P.String():          {},
	atom.Param.String():      {},
	atom.Section.String():    {},
	atom.Summary.String():    {},
	atom.Table.String():      {},
	atom.Tbody.String():      {},
	atom.Td.String():         {},
	atom.Tfoot.String():      {},
	atom.Th.String():         {},
	atom.Thead.String():      {},
	atom.Title.String():      {},
	atom.Tr.String():         {},
	atom.Track.String():      {},
	atom.Ul.String():         {},
}

var type1Tags = map[string]struct{}{
	atom.Pre.String():      {},
	atom.Script.String():   {},
	atom.Style.String():    {},
	atom.Textarea.String(): {},
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func lowerBytes(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = toLowerASCII(c)
	}
	return string(out)
}

// tryHTMLBlockOpen recognizes the opener for one of CommonMark's seven
// HTML-block conditions.
func (lx *lexer) tryHTMLBlockOpen(w lineWindow, trimmed []byte, prevBlank bool) (Token, bool) {
	if w.indent > 3 {
		return Token{}, false
	}
	line := trimmed

	// Type 2: <!--
	if bytes.HasPrefix(line, []byte("<!--")) {
		return lx.openHTMLBlock(w, htmlBlockType2, []byte("-->"))
	}
	// Type 3: <?
	if bytes.HasPrefix(line, []byte("<?")) {
		return lx.openHTMLBlock(w, htmlBlockType3, []byte("?>"))
	}
	// Type 5: <![CDATA[
	if bytes.HasPrefix(line, []byte("<![CDATA[")) {
		return lx.openHTMLBlock(w, htmlBlockType5, []byte("]]>"))
	}
	// Type 4: <! followed by ASCII letter
	if len(line) >= 3 && line[1] == '!' && isASCIILetter(line[2]) {
		return lx.openHTMLBlock(w, htmlBlockType4, []byte(">"))
	}

	// Type 1: <pre|script|style|textarea
	if name, rest, ok := scanTagName(line[1:]); ok {
		lname := lowerBytesString(name)
		if _, isType1 := type1Tags[lname]; isType1 {
			if len(rest) == 0 || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '>' || (len(rest) >= 2 && rest[0] == '/' && rest[1] == '>') {
				return lx.openHTMLBlockSameLineCheck(w, htmlBlockType1, lname, false)
			}
		}
		if _, isType6 := type6Tags[lname]; isType6 {
			if len(rest) == 0 || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '>' || (len(rest) >= 2 && rest[0] == '/' && rest[1] == '>') {
				lx.mode = modeHTMLBlock
				lx.htmlKind = htmlBlockType6or7
				lx.commit(w)
				return mkToken(TokenHTMLBlock, w.content, w.end, w.line, w.col, w.indent, ""), true
			}
		}
	}
	// Closing tag form for type 1/6: </name ...>
	if len(line) >= 2 && line[1] == '/' {
		if name, rest, ok := scanTagName(line[2:]); ok {
			lname := lowerBytesString(name)
			_, isType1 := type1Tags[lname]
			_, isType6 := type6Tags[lname]
			if (isType1 || isType6) && (len(rest) == 0 || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '>') {
				lx.mode = modeHTMLBlock
				lx.htmlKind = htmlBlockType6or7
				lx.commit(w)
				return mkToken(TokenHTMLBlock, w.content, w.end, w.line, w.col, w.indent, ""), true
			}
		}
	}

	// Type 7: a single complete open or close tag, alone on the line,
	// whose tag is not type-1/6, can't interrupt a paragraph (handled by
	// the block parser).
	if looksLikeCompleteHTMLTag(line) {
		lx.mode = modeHTMLBlock
		lx.htmlKind = htmlBlockType6or7
		lx.commit(w)
		return mkToken(TokenHTMLBlock, w.content, w.end, w.line, w.col, w.indent, ""), true
	}

	return Token{}, false
}

func lowerBytesString(b []byte) string { return lowerBytes(b) }

func (lx *lexer) openHTMLBlockSameLineCheck(w lineWindow, kind htmlBlockKind, tagName string, _ bool) (Token, bool) {
	var terminator []byte
	switch tagName {
	case "pre":
		terminator = []byte("</pre>")
	case "script":
		terminator = []byte("</script>")
	case "style":
		terminator = []byte("</style>")
	case "textarea":
		terminator = []byte("</textarea>")
	}
	return lx.openHTMLBlock(w, kind, terminator)
}

// openHTMLBlock checks whether the terminator already appears on the
// opening line; if so it emits a single-line HTML_BLOCK token, else it
// switches mode to accumulate subsequent lines.
func (lx *lexer) openHTMLBlock(w lineWindow, kind htmlBlockKind, terminator []byte) (Token, bool) {
	line := lx.source[w.content:w.end]
	if caseInsensitiveContains(line, terminator) {
		lx.commit(w)
		return mkToken(TokenHTMLBlock, w.content, w.end, w.line, w.col, w.indent, ""), true
	}
	lx.mode = modeHTMLBlock
	lx.htmlKind = kind
	lx.commit(w)
	return mkToken(TokenHTMLBlock, w.content, w.end, w.line, w.col, w.indent, ""), true
}

// scanHTMLBlockLine handles a line while an HTML block is open.
func (lx *lexer) scanHTMLBlockLine(w lineWindow) Token {
	line := lx.source[w.start:w.end]
	var terminated bool
	switch lx.htmlKind {
	case htmlBlockType1:
		terminated = caseInsensitiveContains(line, []byte("</pre>")) ||
			caseInsensitiveContains(line, []byte("</script>")) ||
			caseInsensitiveContains(line, []byte("</style>")) ||
			caseInsensitiveContains(line, []byte("</textarea>"))
	case htmlBlockType2:
		terminated = bytes.Contains(line, []byte("-->"))
	case htmlBlockType3:
		terminated = bytes.Contains(line, []byte("?>"))
	case htmlBlockType4:
		terminated = bytes.Contains(line, []byte(">"))
	case htmlBlockType5:
		terminated = bytes.Contains(line, []byte("]]>"))
	case htmlBlockType6or7:
		terminated = isBlankBytes(line)
	}
	lx.commit(w)
	if terminated {
		lx.mode = modeBlock
		lx.htmlKind = htmlBlockNone
		if isBlankBytes(line) {
			// The blank-line terminator is not itself part of the block:
			// it is emitted as a BLANK_LINE token, and the next call
			// processes the following line in block mode.
			lx.prevLineBlank = true
			return mkToken(TokenBlankLine, w.start, w.end, w.line, w.col, w.indent, "")
		}
	}
	return mkToken(TokenHTMLBlock, w.start, w.end, w.line, w.col, w.indent, "")
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// scanTagName reads an HTML tag name (letters, digits, hyphens) from the
// start of b, returning the name and the remaining bytes.
func scanTagName(b []byte) (name, rest []byte, ok bool) {
	if len(b) == 0 || !isASCIILetter(b[0]) {
		return nil, nil, false
	}
	i := 1
	for i < len(b) && (isASCIILetter(b[i]) || isASCIIDigit(b[i]) || b[i] == '-') {
		i++
	}
	return b[:i], b[i:], true
}

func caseInsensitiveContains(haystack, needle []byte) bool {
	h := lowerBytes(haystack)
	n := lowerBytes(needle)
	return bytes.Contains([]byte(h), []byte(n))
}

// looksLikeCompleteHTMLTag reports whether line (after trimming) is a
// single complete HTML open or close tag per CommonMark's condition 7
// grammar, with nothing else on the line.
func looksLikeCompleteHTMLTag(line []byte) bool {
	line = bytes.TrimRight(line, " \t")
	if len(line) < 3 || line[0] != '<' {
		return false
	}
	i := 1
	closing := false
	if line[i] == '/' {
		closing = true
		i++
	}
	name, rest, ok := scanTagName(line[i:])
	if !ok || len(name) == 0 {
		return false
	}
	i += len(name)
	b := line
	if closing {
		rest = bytes.TrimLeft(rest, " \t")
		return len(rest) == 1 && rest[0] == '>'
	}
	// Open tag: parse zero or more attributes, then optional "/", then ">".
	k := len(b) - len(rest)
	for {
		rest = bytes.TrimLeft(b[k:], " \t")
		k = len(b) - len(rest)
		if k >= len(b) {
			return false
		}
		if b[k] == '>' {
			return k == len(b)-1
		}
		if b[k] == '/' {
			return k+1 < len(b) && b[k+1] == '>' && k+2 == len(b)
		}
		// attribute name
		if !isAttrNameStart(b[k]) {
			return false
		}
		k++
		for k < len(b) && isAttrNameChar(b[k]) {
			k++
		}
		save := k
		ws := bytes.TrimLeft(b[k:], " \t")
		k = len(b) - len(ws)
		if k < len(b) && b[k] == '=' {
			k++
			ws2 := bytes.TrimLeft(b[k:], " \t")
			k = len(b) - len(ws2)
			if k >= len(b) {
				return false
			}
			switch b[k] {
			case '\'':
				k++
				end := bytes.IndexByte(b[k:], '\'')
				if end < 0 {
					return false
				}
				k += end + 1
			case '"':
				k++
				end := bytes.IndexByte(b[k:], '"')
				if end < 0 {
					return false
				}
				k += end + 1
			default:
				start := k
				for k < len(b) && isUnquotedAttrChar(b[k]) {
					k++
				}
				if k == start {
					return false
				}
			}
		} else {
			k = save
		}
	}
}

func isAttrNameStart(b byte) bool {
	return isASCIILetter(b) || b == '_' || b == ':'
}

func isAttrNameChar(b byte) bool {
	return isAttrNameStart(b) || isASCIIDigit(b) || b == '.' || b == '-'
}

func isUnquotedAttrChar(b byte) bool {
	switch b {
	case ' ', '\t', '"', '\'', '=', '<', '>', '`':
		return false
	default:
		return true
	}
}
