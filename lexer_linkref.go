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

// tryLinkReferenceDef attempts to parse `[label]: dest "title"`,
// possibly spanning a few lines, starting at w's content. It operates
// directly on the source buffer rather than per-line windows, since the
// construct may cross a newline between label/destination/title.
//
// On success it advances lx.pos/lx.line past the whole definition and
// returns a LINK_REFERENCE_DEF token; on failure it leaves the lexer
// untouched so the caller falls through to the paragraph classifier.
func (lx *lexer) tryLinkReferenceDef(w lineWindow) (Token, bool) {
	src := lx.source
	i := w.content
	if i >= len(src) || src[i] != '[' {
		return Token{}, false
	}
	labelStart := i + 1
	j := labelStart
	depth := 0
	for j < len(src) {
		c := src[j]
		if c == '\\' && j+1 < len(src) {
			j += 2
			continue
		}
		if c == '[' {
			depth++
			j++
			continue
		}
		if c == ']' {
			if depth == 0 {
				break
			}
			depth--
			j++
			continue
		}
		if c == '\n' {
			// a blank line inside the label is not allowed
			if j+1 < len(src) && src[j+1] == '\n' {
				return Token{}, false
			}
		}
		j++
	}
	if j >= len(src) || src[j] != ']' || j == labelStart {
		return Token{}, false
	}
	label := string(src[labelStart:j])
	k := j + 1
	if k >= len(src) || src[k] != ':' {
		return Token{}, false
	}
	k++
	k, crossedNL := skipLinkRefWhitespace(src, k)
	if k >= len(src) {
		return Token{}, false
	}
	destStart := k
	var destEnd int
	if src[k] == '<' {
		k++
		for k < len(src) && src[k] != '>' && src[k] != '\n' {
			if src[k] == '\\' && k+1 < len(src) {
				k += 2
				continue
			}
			k++
		}
		if k >= len(src) || src[k] != '>' {
			return Token{}, false
		}
		destEnd = k + 1
		k++
	} else {
		parens := 0
		for k < len(src) {
			c := src[k]
			if c == '\\' && k+1 < len(src) {
				k += 2
				continue
			}
			if c == ' ' || c == '\t' || c == '\n' {
				break
			}
			if c == '<' || c == '>' {
				return Token{}, false
			}
			if c == '(' {
				parens++
			} else if c == ')' {
				if parens == 0 {
					break
				}
				parens--
			}
			k++
		}
		if parens != 0 || k == destStart {
			return Token{}, false
		}
		destEnd = k
	}
	_ = crossedNL

	afterDest := k
	lineEndOf := func(pos int) int {
		e := pos
		for e < len(src) && src[e] != '\n' {
			e++
		}
		return e
	}

	// Try a title.
	titleK, crossedNL2 := skipLinkRefWhitespace(src, afterDest)
	var titleStart, titleEnd int
	hasTitle := false
	if titleK < len(src) && (src[titleK] == '"' || src[titleK] == '\'' || src[titleK] == '(') {
		open := src[titleK]
		closeCh := open
		if open == '(' {
			closeCh = ')'
		}
		tk := titleK + 1
		for tk < len(src) && src[tk] != closeCh {
			if src[tk] == '\\' && tk+1 < len(src) {
				tk += 2
				continue
			}
			if src[tk] == '\n' && tk+1 < len(src) && src[tk+1] == '\n' {
				break
			}
			tk++
		}
		if tk < len(src) && src[tk] == closeCh {
			rest := src[tk+1 : lineEndOf(tk+1)]
			if isBlankBytes(rest) {
				hasTitle = true
				titleStart = titleK + 1
				titleEnd = tk
				afterDest = tk + 1
			}
		}
	}
	if !hasTitle {
		_ = crossedNL2
		rest := src[afterDest:lineEndOf(afterDest)]
		if !isBlankBytes(rest) {
			return Token{}, false
		}
	}

	end := lineEndOf(afterDest)
	value := label + "\x00" + string(src[destStart:destEnd])
	if hasTitle {
		value += "\x00" + string(src[titleStart:titleEnd])
	}

	// Commit: advance pos/line past every physical line consumed.
	startLine := lx.line
	consumedLines := countNewlines(src[w.start:end])
	lx.pos = end
	// advance to just past the terminator of the final consumed line
	if lx.pos < len(src) {
		if src[lx.pos] == '\r' {
			if lx.pos+1 < len(src) && src[lx.pos+1] == '\n' {
				lx.pos += 2
			} else {
				lx.pos++
			}
		} else if src[lx.pos] == '\n' {
			lx.pos++
		}
	}
	lx.line = startLine + consumedLines + 1

	return mkToken(TokenLinkReferenceDef, w.content, end, w.line, w.col, w.indent, value), true
}

func countNewlines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}

// skipLinkRefWhitespace skips spaces/tabs and at most one newline,
// reporting whether a newline was crossed.
func skipLinkRefWhitespace(src []byte, i int) (int, bool) {
	crossed := false
	for i < len(src) {
		switch src[i] {
		case ' ', '\t':
			i++
		case '\n':
			if crossed {
				return i, crossed
			}
			crossed = true
			i++
		default:
			return i, crossed
		}
	}
	return i, crossed
}
