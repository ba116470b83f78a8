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

// tryMathBlockOpen recognizes a `$$` math-block opener: the trimmed
// line content is exactly "$$", at indent <=3. Unlike fenced code, math
// blocks take no info string; `$$foo` is left for the fallback
// paragraph classifier (and, if math_enabled, reconsidered as a run of
// inline math by the inline tokenizer).
func (lx *lexer) tryMathBlockOpen(w lineWindow, trimmed []byte) (Token, bool) {
	if w.indent > 3 {
		return Token{}, false
	}
	candidate := bytes.TrimRight(trimmed, " \t")
	if len(candidate) != 2 || candidate[0] != '$' || candidate[1] != '$' {
		return Token{}, false
	}
	lx.mode = modeMathBlock
	lx.mathIndent = w.indent
	lx.commit(w)
	return mkToken(TokenMathBlockStart, w.content, w.end, w.line, w.col, w.indent, ""), true
}

// scanMathBlockLine handles a line while inside an open `$$` math block.
func (lx *lexer) scanMathBlockLine(w lineWindow) Token {
	line := lx.source[w.start:w.end]
	stripped := 0
	for stripped < lx.mathIndent && stripped < len(line) && (line[stripped] == ' ' || line[stripped] == '\t') {
		stripped++
	}
	candidate := bytes.TrimRight(line[stripped:], " \t")
	if len(candidate) == 2 && candidate[0] == '$' && candidate[1] == '$' {
		lx.mode = modeBlock
		lx.commit(w)
		return mkToken(TokenMathBlockEnd, w.start+stripped, w.end, w.line, w.col, w.indent, "")
	}
	contentStart := w.start + stripped
	if contentStart > w.end {
		contentStart = w.end
	}
	lx.commit(w)
	return mkToken(TokenMathBlockContent, contentStart, w.end, w.line, w.col, w.indent, "")
}
