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
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenizeInline runs phase 1 of the inline parser: a single left-to-
// right scan of text producing the flat inlineToken stream that phase 2
// (delimiter matching) and phase 3 (AST building) consume.
func tokenizeInline(text string, cfg *Config) []inlineToken {
	var toks []inlineToken
	i := 0
	n := len(text)
	var pendingText strings.Builder
	pendingStart := 0

	flush := func(end int) {
		if pendingText.Len() > 0 {
			s := pendingText.String()
			if cfg.TextTransformer != nil {
				s = cfg.TextTransformer(s)
			}
			toks = append(toks, inlineToken{kind: itText, span: Span{Start: pendingStart, End: end}, text: s})
			pendingText.Reset()
		}
	}

	for i < n {
		c := text[i]
		switch {
		case c == '\\' && i+1 < n && isASCIIPunct(text[i+1]):
			if pendingText.Len() == 0 {
				pendingStart = i
			}
			pendingText.WriteByte(text[i+1])
			i += 2
			continue
		case c == '\\' && i+1 < n && text[i+1] == '\n':
			flush(i)
			toks = append(toks, inlineToken{kind: itHardBreak, span: Span{Start: i, End: i + 2}})
			i += 2
			continue
		case c == '\n':
			flush(i)
			// A hard break is 2+ trailing spaces before the newline.
			j := len(toks)
			trailingSpaces := 0
			if j > 0 && toks[j-1].kind == itText {
				t := toks[j-1].text
				k := len(t)
				for k > 0 && t[k-1] == ' ' {
					k--
					trailingSpaces++
				}
				if trailingSpaces >= 2 {
					toks[j-1].text = t[:k]
				}
			}
			if trailingSpaces >= 2 {
				toks = append(toks, inlineToken{kind: itHardBreak, span: Span{Start: i, End: i + 1}})
			} else {
				toks = append(toks, inlineToken{kind: itSoftBreak, span: Span{Start: i, End: i + 1}})
			}
			i++
			continue
		case c == '`':
			if tok, next, ok := scanCodeSpan(text, i); ok {
				flush(i)
				toks = append(toks, tok)
				i = next
				continue
			}
			j := i
			for j < n && text[j] == '`' {
				j++
			}
			if pendingText.Len() == 0 {
				pendingStart = i
			}
			pendingText.WriteString(text[i:j])
			i = j
			continue
		case c == '*' || c == '_':
			tok, next := scanEmphDelimRun(text, i)
			flush(i)
			toks = append(toks, tok)
			i = next
			continue
		case c == '~' && cfg.StrikethroughEnabled && i+1 < n && text[i+1] == '~':
			flush(i)
			j := i
			for j < n && text[j] == '~' {
				j++
			}
			before, after := flankingRunes(text, i, j)
			canOpen, canClose := leftRightFlanking(before, after)
			toks = append(toks, inlineToken{kind: itStrikeDelim, span: Span{Start: i, End: j}, delimChar: '~', delimCount: j - i, canOpen: canOpen, canClose: canClose})
			i = j
			continue
		case c == '!' && i+1 < n && text[i+1] == '[':
			flush(i)
			toks = append(toks, inlineToken{kind: itImageOpen, span: Span{Start: i, End: i + 2}})
			i += 2
			continue
		case c == '[':
			flush(i)
			toks = append(toks, inlineToken{kind: itLinkOpen, span: Span{Start: i, End: i + 1}})
			i++
			continue
		case c == ']':
			flush(i)
			toks = append(toks, inlineToken{kind: itBracketClose, span: Span{Start: i, End: i + 1}})
			i++
			continue
		case c == '<':
			if tok, next, ok := scanAutolinkOrInlineHTML(text, i, cfg); ok {
				flush(i)
				toks = append(toks, tok)
				i = next
				continue
			}
		case c == '&':
			if decoded, consumed, ok := decodeEntityAt(text[i:]); ok {
				flush(i)
				toks = append(toks, inlineToken{kind: itEntity, span: Span{Start: i, End: i + consumed}, text: decoded})
				i += consumed
				continue
			}
		case c == '{':
			if tok, next, ok := scanRoleStart(text, i); ok {
				flush(i)
				toks = append(toks, tok)
				i = next
				continue
			}
		case c == '$' && cfg.MathEnabled:
			if tok, next, ok := scanInlineMath(text, i); ok {
				flush(i)
				toks = append(toks, tok)
				i = next
				continue
			}
		}

		if pendingText.Len() == 0 {
			pendingStart = i
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		pendingText.WriteRune(r)
		i += size
	}
	flush(n)
	return toks
}

// flankingRunes returns the rune immediately before start and the rune
// immediately after end, or a space rune if at a text boundary (which
// CommonMark treats as equivalent to whitespace for flanking purposes).
func flankingRunes(text string, start, end int) (before, after rune) {
	before, after = ' ', ' '
	if start > 0 {
		before, _ = utf8.DecodeLastRuneInString(text[:start])
	}
	if end < len(text) {
		after, _ = utf8.DecodeRuneInString(text[end:])
	}
	return before, after
}

// leftRightFlanking implements CommonMark's left-flanking/right-
// flanking delimiter-run determination (used directly for emphasis and,
// per the GFM extension, for strikethrough).
func leftRightFlanking(before, after rune) (canOpen, canClose bool) {
	beforeSpace := unicode.IsSpace(before)
	afterSpace := unicode.IsSpace(after)
	beforePunct := isUnicodePunct(before)
	afterPunct := isUnicodePunct(after)

	leftFlanking := !afterSpace && (!afterPunct || beforeSpace || beforePunct)
	rightFlanking := !beforeSpace && (!beforePunct || afterSpace || afterPunct)
	return leftFlanking, rightFlanking
}

func isUnicodePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func scanEmphDelimRun(text string, i int) (inlineToken, int) {
	c := text[i]
	j := i
	for j < len(text) && text[j] == c {
		j++
	}
	before, after := flankingRunes(text, i, j)
	leftFlanking, rightFlanking := leftRightFlanking(before, after)

	var canOpen, canClose bool
	if c == '*' {
		canOpen, canClose = leftFlanking, rightFlanking
	} else {
		// '_' has the extra intraword restriction.
		beforeAlnum := isAlnumRune(before)
		afterAlnum := isAlnumRune(after)
		canOpen = leftFlanking && (!rightFlanking || !beforeAlnum)
		canClose = rightFlanking && (!leftFlanking || !afterAlnum)
	}
	return inlineToken{kind: itEmphDelim, span: Span{Start: i, End: j}, delimChar: c, delimCount: j - i, canOpen: canOpen, canClose: canClose}, j
}

func isAlnumRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanCodeSpan recognizes a backtick-delimited code span: an opening
// run of N backticks, content, and a closing run of exactly N
// backticks. If no matching closer exists, ok is false and the
// backticks are left for the caller to emit as literal text.
func scanCodeSpan(text string, start int) (inlineToken, int, bool) {
	n := len(text)
	i := start
	for i < n && text[i] == '`' {
		i++
	}
	openLen := i - start
	contentStart := i
	for i < n {
		if text[i] == '`' {
			j := i
			for j < n && text[j] == '`' {
				j++
			}
			if j-i == openLen {
				content := text[contentStart:i]
				content = normalizeCodeSpanContent(content)
				return inlineToken{kind: itCodeSpan, span: Span{Start: start, End: j}, text: content}, j, true
			}
			i = j
			continue
		}
		i++
	}
	return inlineToken{}, start, false
}

// normalizeCodeSpanContent collapses any line ending to a single space,
// then strips one leading and trailing space if the content has both
// and isn't all spaces (CommonMark code span normalization).
func normalizeCodeSpanContent(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) >= 2 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.TrimSpace(s) != "" {
		s = s[1 : len(s)-1]
	}
	return s
}

// scanInlineMath recognizes a $...$ (or $$...$$) inline math span,
// closed by the first run of '$' exactly as long as the opening run.
// Backslash-escaped characters and '$' runs of any other length stay in
// the content; blank lines inside the span are not checked for.
func scanInlineMath(text string, start int) (inlineToken, int, bool) {
	n := len(text)
	i := start
	for i < n && text[i] == '$' {
		i++
	}
	delimLen := i - start
	if delimLen > 2 {
		return inlineToken{}, start, false
	}
	contentStart := i
	for i < n {
		if text[i] == '\\' && i+1 < n {
			i += 2
			continue
		}
		if text[i] == '$' {
			j := i
			for j < n && text[j] == '$' {
				j++
			}
			if j-i == delimLen {
				return inlineToken{kind: itMath, span: Span{Start: start, End: j}, text: text[contentStart:i]}, j, true
			}
			i = j
			continue
		}
		i++
	}
	return inlineToken{}, start, false
}

// scanRoleStart recognizes `{name}` immediately followed by a backtick-
// delimited code span, the MyST inline role syntax. It returns an
// itRoleStart token spanning only `{name}`; the following code span is
// tokenized separately by the normal '`' case and consumed by phase 3.
func scanRoleStart(text string, start int) (inlineToken, int, bool) {
	n := len(text)
	i := start + 1
	nameStart := i
	for i < n && (isASCIILetter(text[i]) || text[i] == '-' || text[i] == '_') {
		i++
	}
	if i == nameStart || i >= n || text[i] != '}' {
		return inlineToken{}, start, false
	}
	name := text[nameStart:i]
	i++
	if i >= n || text[i] != '`' {
		return inlineToken{}, start, false
	}
	return inlineToken{kind: itRoleStart, span: Span{Start: start, End: i}, roleName: name}, i, true
}

// scanAutolinkOrInlineHTML recognizes `<scheme:...>`, `<email>`, or a
// single complete inline HTML tag.
func scanAutolinkOrInlineHTML(text string, start int, cfg *Config) (inlineToken, int, bool) {
	n := len(text)
	close := strings.IndexByte(text[start:], '>')
	if close < 0 {
		return inlineToken{}, start, false
	}
	inner := text[start+1 : start+close]
	end := start + close + 1

	if cfg.AutolinksEnabled {
		if isAutolinkURI(inner) || isAutolinkEmail(inner) {
			return inlineToken{kind: itAutolink, span: Span{Start: start, End: end}, text: inner}, end, true
		}
	}
	if looksLikeInlineHTMLTag(text[start:end]) {
		return inlineToken{kind: itRawHTML, span: Span{Start: start, End: end}, text: text[start:end]}, end, true
	}
	_ = n
	return inlineToken{}, start, false
}

func isAutolinkURI(s string) bool {
	colon := strings.IndexByte(s, ':')
	if colon < 2 {
		return false
	}
	scheme := s[:colon]
	if !isASCIILetter(scheme[0]) {
		return false
	}
	for i := 1; i < len(scheme); i++ {
		c := scheme[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	rest := s[colon+1:]
	for i := 0; i < len(rest); i++ {
		if rest[i] <= ' ' || rest[i] == '<' || rest[i] == '>' {
			return false
		}
	}
	return true
}

func isAutolinkEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	for i := 0; i < len(local); i++ {
		if local[i] <= ' ' || local[i] == '<' || local[i] == '>' {
			return false
		}
	}
	for i := 0; i < len(domain); i++ {
		c := domain[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '.' && c != '-' {
			return false
		}
	}
	return true
}

func looksLikeInlineHTMLTag(tag string) bool {
	return looksLikeCompleteHTMLTag([]byte(tag)) || looksLikeHTMLComment(tag) || looksLikeProcessingInstruction(tag)
}

func looksLikeHTMLComment(s string) bool {
	return strings.HasPrefix(s, "<!--") && strings.HasSuffix(s, "-->") && len(s) >= 7
}

func looksLikeProcessingInstruction(s string) bool {
	return strings.HasPrefix(s, "<?") && strings.HasSuffix(s, "?>")
}
