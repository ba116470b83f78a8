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

// tryFenceOpen recognizes a fenced-code opener: >=3 of the same fence
// char, indent <=3, and (for backtick fences) no backtick in the info
// string.
func (lx *lexer) tryFenceOpen(w lineWindow, trimmed []byte) (Token, bool) {
	if w.indent > 3 {
		return Token{}, false
	}
	c := trimmed[0]
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return Token{}, false
	}
	info := bytes.TrimSpace(trimmed[n:])
	if c == '`' && bytes.IndexByte(info, '`') >= 0 {
		return Token{}, false
	}
	lx.mode = modeFencedCode
	lx.fenceChar = c
	lx.fenceLen = n
	lx.fenceIndent = w.indent
	lx.commit(w)
	value := string(c) + string(info)
	return mkToken(TokenFencedCodeStart, w.content, w.end, w.line, w.col, w.indent, value), true
}

// scanFencedCodeLine handles a line while inside an open fence.
func (lx *lexer) scanFencedCodeLine(w lineWindow) Token {
	line := lx.source[w.start:w.end]
	trimmed := line
	stripped := 0
	for stripped < lx.fenceIndent && stripped < len(trimmed) && (trimmed[stripped] == ' ' || trimmed[stripped] == '\t') {
		stripped++
	}
	candidate := bytes.TrimRight(trimmed[stripped:], " \t")
	if isCloseFence(candidate, lx.fenceChar, lx.fenceLen) {
		lx.mode = modeBlock
		lx.commit(w)
		return mkToken(TokenFencedCodeEnd, w.start+stripped, w.end, w.line, w.col, w.indent, "")
	}
	contentStart := w.start + stripped
	if contentStart > w.end {
		contentStart = w.end
	}
	lx.commit(w)
	return mkToken(TokenFencedCodeContent, contentStart, w.end, w.line, w.col, w.indent, "")
}

func isCloseFence(candidate []byte, fenceChar byte, fenceLen int) bool {
	if len(candidate) < fenceLen {
		return false
	}
	n := 0
	for n < len(candidate) && candidate[n] == fenceChar {
		n++
	}
	if n != len(candidate) {
		return false
	}
	return n >= fenceLen
}
