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
)

// LinkDefinition is the destination/title pair registered by a link
// reference definition, keyed in a ReferenceMap by its normalized label.
type LinkDefinition struct {
	Destination  string
	Title        string
	TitlePresent bool
}

// ReferenceMap holds every link reference definition collected from a
// document during Pass 1, keyed by normalizeLabel.
type ReferenceMap map[string]LinkDefinition

// ReferenceMatcher is implemented by anything that can resolve a
// shortcut/collapsed/full reference label to its definition, so the
// inline parser does not need to know how the map was built.
type ReferenceMatcher interface {
	MatchReference(label string) (LinkDefinition, bool)
}

// MatchReference looks up label after normalization.
func (m ReferenceMap) MatchReference(label string) (LinkDefinition, bool) {
	def, ok := m[normalizeLabel(label)]
	return def, ok
}

// normalizeLabel normalizes a link label: strip leading/trailing
// whitespace, collapse internal whitespace runs to a single space, and
// lower-case with strings.ToLower. Full Unicode case folding is not
// applied, so labels that differ only by a multi-rune fold (such as
// "ẞ" and "SS") do not match.
func normalizeLabel(label string) string {
	fields := strings.FieldsFunc(label, unicode.IsSpace)
	return strings.ToLower(strings.Join(fields, " "))
}

// unescapeLinkText resolves backslash escapes and entity references in a
// link destination or title string captured verbatim by the lexer.
func unescapeLinkText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		if s[i] == '&' {
			if entity, n, ok := decodeEntityAt(s[i:]); ok {
				b.WriteString(entity)
				i += n - 1
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isASCIIPunct(b byte) bool {
	switch {
	case b >= '!' && b <= '/':
		return true
	case b >= ':' && b <= '@':
		return true
	case b >= '[' && b <= '`':
		return true
	case b >= '{' && b <= '~':
		return true
	}
	return false
}
