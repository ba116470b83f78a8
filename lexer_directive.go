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

// tryDirectiveOpen recognizes `:::{name} optional title`.
func (lx *lexer) tryDirectiveOpen(w lineWindow, trimmed []byte) (Token, bool) {
	n := 0
	for n < len(trimmed) && trimmed[n] == ':' {
		n++
	}
	if n < 3 {
		return Token{}, false
	}
	rest := trimmed[n:]
	if len(rest) == 0 || rest[0] != '{' {
		return Token{}, false
	}
	close := bytes.IndexByte(rest, '}')
	if close < 0 {
		return Token{}, false
	}
	name := string(rest[1:close])
	if name == "" {
		return Token{}, false
	}
	title := string(bytes.TrimSpace(rest[close+1:]))

	lx.directiveStack = append(lx.directiveStack, directiveFrame{colons: n, name: name})
	lx.mode = modeDirective
	lx.commit(w)
	return mkToken(TokenDirectiveOpen, w.content, w.end, w.line, w.col, w.indent, name+"\x00"+title), true
}

// scanDirectiveLine handles a line while inside an open directive.
func (lx *lexer) scanDirectiveLine(w lineWindow) Token {
	line := lx.source[w.start:w.end]
	trimmed := bytes.TrimLeft(line, " \t")

	if len(lx.directiveStack) > 0 && bytes.HasPrefix(trimmed, []byte(":::")) {
		n := 0
		for n < len(trimmed) && trimmed[n] == ':' {
			n++
		}
		top := lx.directiveStack[len(lx.directiveStack)-1]
		closesNamed := false
		afterColons := trimmed[n:]
		if len(afterColons) > 0 && afterColons[0] == '{' {
			if end := bytes.IndexByte(afterColons, '}'); end > 1 && afterColons[1] == '/' {
				name := string(afterColons[2:end])
				closesNamed = name == top.name
			}
		}
		if n >= top.colons || closesNamed {
			lx.directiveStack = lx.directiveStack[:len(lx.directiveStack)-1]
			if len(lx.directiveStack) == 0 {
				lx.mode = modeBlock
			}
			lx.commit(w)
			return mkToken(TokenDirectiveClose, w.start, w.end, w.line, w.col, w.indent, "")
		}
	}

	if bytes.HasPrefix(trimmed, []byte(":")) && len(trimmed) > 1 && trimmed[1] != ':' {
		if end := bytes.IndexByte(trimmed[1:], ':'); end >= 0 {
			key := string(trimmed[1 : 1+end])
			value := string(bytes.TrimSpace(trimmed[1+end+1:]))
			lx.commit(w)
			return mkToken(TokenDirectiveOption, w.content, w.end, w.line, w.col, w.indent, key+"\x00"+value)
		}
	}

	return lx.scanBlockLine(w)
}
