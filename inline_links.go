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

// inlineLinkTail is what follows a matched `]`: either an inline
// `(dest "title")`, a full/collapsed reference `[label]`/`[]`, or
// neither (a shortcut reference, resolved from the bracket's own text).
type inlineLinkTail struct {
	kind        int // 0 = inline, 1 = reference, 2 = none
	destination string
	title       string
	hasTitle    bool
	refLabel    string
}

const (
	tailInline = iota
	tailReference
	tailNone
)

// scanInlineLinkTail inspects text starting at i (the byte just past a
// matched ']') for an inline destination or reference-label tail,
// returning the tail and the byte offset in text just past it.
func scanInlineLinkTail(text string, i int) (inlineLinkTail, int) {
	n := len(text)
	if i < n && text[i] == '(' {
		if dest, title, hasTitle, end, ok := scanInlineDestination(text, i+1); ok {
			return inlineLinkTail{kind: tailInline, destination: dest, title: title, hasTitle: hasTitle}, end
		}
	}
	if i < n && text[i] == '[' {
		close := strings.IndexByte(text[i+1:], ']')
		if close >= 0 {
			label := text[i+1 : i+1+close]
			return inlineLinkTail{kind: tailReference, refLabel: label}, i + 1 + close + 1
		}
	}
	return inlineLinkTail{kind: tailNone}, i
}

// scanInlineDestination parses `dest "title")` starting just after the
// opening '(' (i.e. i points at optional whitespace then the
// destination).
func scanInlineDestination(text string, i int) (dest, title string, hasTitle bool, end int, ok bool) {
	n := len(text)
	for i < n && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n') {
		i++
	}
	destStart := i
	var destEnd int
	if i < n && text[i] == '<' {
		i++
		for i < n && text[i] != '>' && text[i] != '\n' {
			if text[i] == '\\' && i+1 < n {
				i += 2
				continue
			}
			i++
		}
		if i >= n || text[i] != '>' {
			return "", "", false, i, false
		}
		dest = unescapeLinkText(text[destStart+1 : i])
		i++
	} else {
		parens := 0
		for i < n {
			c := text[i]
			if c == '\\' && i+1 < n {
				i += 2
				continue
			}
			if c == ' ' || c == '\t' || c == '\n' {
				break
			}
			if c == ')' {
				if parens == 0 {
					break
				}
				parens--
			} else if c == '(' {
				parens++
			} else if c < 0x20 {
				return "", "", false, i, false
			}
			i++
		}
		destEnd = i
		dest = unescapeLinkText(text[destStart:destEnd])
	}
	for i < n && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n') {
		i++
	}
	if i < n && (text[i] == '"' || text[i] == '\'' || text[i] == '(') {
		open := text[i]
		closeCh := open
		if open == '(' {
			closeCh = ')'
		}
		j := i + 1
		for j < n && text[j] != closeCh {
			if text[j] == '\\' && j+1 < n {
				j += 2
				continue
			}
			j++
		}
		if j >= n {
			return "", "", false, i, false
		}
		title = unescapeLinkText(text[i+1 : j])
		hasTitle = true
		i = j + 1
		for i < n && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n') {
			i++
		}
	}
	if i >= n || text[i] != ')' {
		return "", "", false, i, false
	}
	return dest, title, hasTitle, i + 1, true
}
