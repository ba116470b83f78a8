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

// inlineTokenKind tags one phase-1 inline token, produced by scanning a
// paragraph's raw text left to right before delimiter matching runs.
type inlineTokenKind uint8

const (
	itText inlineTokenKind = iota
	itCodeSpan
	itEmphDelim   // run of '*' or '_'
	itStrikeDelim // run of '~'
	itLinkOpen    // '['
	itImageOpen   // '!['
	itBracketClose
	itHardBreak
	itSoftBreak
	itAutolink
	itRawHTML
	itEntity
	itRoleStart // '{name}`'
	itFootnoteRef
	itMath
)

// inlineToken is one phase-1 lexical unit of inline content. canOpen /
// canClose only apply to delimiter-run tokens (itEmphDelim,
// itStrikeDelim) and record the left/right-flanking determination of
// CommonMark's emphasis rules so the phase-2 delimiter stack doesn't
// need to re-inspect surrounding runes.
type inlineToken struct {
	kind inlineTokenKind
	span Span // offset within the paragraph's text, not the document

	text string // literal text payload: Text/CodeSpan/Autolink/RawHTML/Entity/Math content

	delimChar  byte
	delimCount int
	canOpen    bool
	canClose   bool

	roleName string
}
