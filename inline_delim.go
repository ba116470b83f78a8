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

// delimEntry is one entry of the emphasis/strikethrough delimiter
// stack: a pointer (by index) into the flat output node slice at the
// Text placeholder node holding that delimiter run's literal
// characters, ported from the active-opener-stack algorithm of
// EmphasisMixin._process_emphasis.
type delimEntry struct {
	outputIdx int
	char      byte
	count     int
	canOpen   bool
	canClose  bool
	active    bool
}

// resolveEmphasis runs the rule-of-3 delimiter-matching algorithm over
// stack, wrapping matched runs of output nodes in Emphasis,
// Strong, or Strikethrough nodes in place (setting consumed entries to
// nil in output and leaving a single composite node where the run
// used to be). It mutates output and stack but never changes their
// length: consumed nodes become nil and are compacted by the caller.
func resolveEmphasis(output []*Inline, stack []*delimEntry) {
	pos := 0
	for pos < len(stack) {
		closer := stack[pos]
		if !closer.active || !closer.canClose || (closer.char != '*' && closer.char != '_' && closer.char != '~') {
			pos++
			continue
		}
		openerIdx := -1
		for j := pos - 1; j >= 0; j-- {
			opener := stack[j]
			if !opener.active || opener.char != closer.char || !opener.canOpen {
				continue
			}
			if opener.char == '~' {
				// GFM strikethrough delimiters aren't subject to the rule
				// of 3; any active opener of the same char matches.
				openerIdx = j
				break
			}
			oddMatch := (opener.canOpen && opener.canClose || closer.canOpen && closer.canClose) &&
				(opener.count+closer.count)%3 == 0 &&
				!(opener.count%3 == 0 && closer.count%3 == 0)
			if !oddMatch {
				openerIdx = j
				break
			}
		}
		if openerIdx < 0 {
			if !closer.canOpen {
				closer.active = false
			}
			pos++
			continue
		}
		opener := stack[openerIdx]

		useCount := 1
		if closer.char != '~' && opener.count >= 2 && closer.count >= 2 {
			useCount = 2
		}
		if closer.char == '~' {
			useCount = min(opener.count, closer.count)
		}

		openNode := output[opener.outputIdx]
		closeNode := output[closer.outputIdx]
		openNode.text = openNode.text[:len(openNode.text)-useCount]
		closeNode.text = closeNode.text[useCount:]

		kind := EmphasisKind
		if closer.char == '~' {
			kind = StrikethroughKind
		} else if useCount == 2 {
			kind = StrongKind
		}

		var children []*Inline
		for k := opener.outputIdx + 1; k < closer.outputIdx; k++ {
			if output[k] != nil {
				children = append(children, output[k])
				output[k] = nil
			}
		}
		wrapped := &Inline{kind: kind, children: children, span: Span{Start: openNode.span.Start, End: closeNode.span.End}}

		// Deactivate/remove every stack entry strictly between opener and
		// closer: they're now enclosed and can never match anything
		// outside this pair.
		for j := openerIdx + 1; j < pos; j++ {
			stack[j].active = false
		}

		if len(openNode.text) == 0 {
			output[opener.outputIdx] = wrapped
			opener.active = false
		} else {
			// Insert the wrapped node right after the shrunk opener text,
			// into a slot its children vacated.
			insertAfter(output, opener.outputIdx, wrapped)
		}
		if len(closeNode.text) == 0 && output[closer.outputIdx] != nil {
			output[closer.outputIdx] = nil
		}

		opener.count -= useCount
		closer.count -= useCount
		if opener.count == 0 {
			opener.active = false
		}
		if closer.count == 0 {
			closer.active = false
			pos++
		}
	}
}

// insertAfter places node into the first nil slot after idx in output,
// a simple compaction-friendly splice used because resolveEmphasis
// cannot grow output (its length is fixed by the caller's indices).
func insertAfter(output []*Inline, idx int, node *Inline) {
	for k := idx + 1; k < len(output); k++ {
		if output[k] == nil {
			output[k] = node
			return
		}
	}
}

