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

import "testing"

// TestIndentedCodeCannotInterruptParagraph is a regression test: indented
// code (lexer.go classifies any line indented >=4 columns as
// TokenIndentedCode regardless of context) must still be absorbed as a
// paragraph continuation line rather than splitting the paragraph,
// per spec.md §4.4 step 2.
func TestIndentedCodeCannotInterruptParagraph(t *testing.T) {
	doc := Parse([]byte("Foo\n    bar\n"), DefaultConfig())
	children := doc.Root.BlockChildren()
	if len(children) != 1 || children[0].Kind() != ParagraphKind {
		t.Fatalf("got %d blocks; want exactly one ParagraphKind", len(children))
	}
	inlines := children[0].InlineChildren()
	var text string
	for _, in := range inlines {
		switch in.Kind() {
		case TextKind:
			text += in.Text()
		case SoftBreakKind:
			text += "\n"
		}
	}
	if want := "Foo\nbar"; text != want {
		t.Errorf("paragraph text = %q; want %q", text, want)
	}
}

// TestIndentedCodeCannotInterruptLazyBlockQuoteContinuation is the same
// regression inside a blockquote's lazy-continuation lines.
func TestIndentedCodeCannotInterruptLazyBlockQuoteContinuation(t *testing.T) {
	doc := Parse([]byte("> Foo\n    bar\n"), DefaultConfig())
	children := doc.Root.BlockChildren()
	if len(children) != 1 || children[0].Kind() != BlockQuoteKind {
		t.Fatalf("got %d blocks; want exactly one BlockQuoteKind", len(children))
	}
	quoteChildren := children[0].BlockChildren()
	if len(quoteChildren) != 1 || quoteChildren[0].Kind() != ParagraphKind {
		t.Fatalf("blockquote has %d children; want exactly one ParagraphKind", len(quoteChildren))
	}
}

// TestOrderedMarkerOnlyInterruptsParagraphAtOne exercises spec.md §4.6's
// list-marker interruption rule: an ordered marker only starts a new
// list mid-paragraph when its start number is 1; any other start number
// is absorbed as paragraph text instead.
func TestOrderedMarkerOnlyInterruptsParagraphAtOne(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []BlockKind
	}{
		{"StartAtOneInterrupts", "Foo\n1. bar\n", []BlockKind{ParagraphKind, ListKind}},
		{"StartAtFiveDoesNotInterrupt", "Foo\n5. bar\n", []BlockKind{ParagraphKind}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := Parse([]byte(test.input), DefaultConfig())
			children := doc.Root.BlockChildren()
			if len(children) != len(test.want) {
				t.Fatalf("got %d top-level blocks; want %d", len(children), len(test.want))
			}
			for i, want := range test.want {
				if children[i].Kind() != want {
					t.Errorf("children[%d].Kind() = %v; want %v", i, children[i].Kind(), want)
				}
			}
		})
	}
}

// TestEmptyBulletDoesNotInterruptParagraph exercises the other half of
// spec.md §4.6's interruption rule: an empty list item (nothing after
// the marker) never interrupts a paragraph, ordered or not.
func TestEmptyBulletDoesNotInterruptParagraph(t *testing.T) {
	doc := Parse([]byte("Foo\n*\n"), DefaultConfig())
	children := doc.Root.BlockChildren()
	if len(children) != 1 || children[0].Kind() != ParagraphKind {
		t.Fatalf("got %d blocks (kind[0]=%v); want exactly one ParagraphKind", len(children), children[0].Kind())
	}
}

// TestNonEmptyBulletInterruptsParagraph confirms the ordinary case still
// works: a non-empty bullet marker does interrupt an open paragraph.
func TestNonEmptyBulletInterruptsParagraph(t *testing.T) {
	doc := Parse([]byte("Foo\n- bar\n"), DefaultConfig())
	children := doc.Root.BlockChildren()
	if len(children) != 2 {
		t.Fatalf("got %d blocks; want 2 (paragraph, list)", len(children))
	}
	if children[0].Kind() != ParagraphKind {
		t.Errorf("children[0].Kind() = %v; want ParagraphKind", children[0].Kind())
	}
	if children[1].Kind() != ListKind {
		t.Errorf("children[1].Kind() = %v; want ListKind", children[1].Kind())
	}
}

func TestListMarkerInterruptsParagraph(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"BulletNonEmpty", "- bar\n", true},
		{"BulletEmpty", "-\n", false},
		{"OrderedOne", "1. bar\n", true},
		{"OrderedFive", "5. bar\n", false},
		{"OrderedOneParen", "1) bar\n", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lx := newLexer([]byte(test.line), DefaultConfig())
			tok := lx.Next()
			if tok.Type != TokenListItemMarker {
				t.Fatalf("lexer produced %v; want TokenListItemMarker", tok.Type)
			}
			if got := listMarkerInterruptsParagraph(tok, []byte(test.line)); got != test.want {
				t.Errorf("listMarkerInterruptsParagraph(%q) = %v; want %v", test.line, got, test.want)
			}
		})
	}
}

func TestParseTableFromParagraphRun(t *testing.T) {
	doc := Parse([]byte("| a | b |\n| --- | --- |\n| 1 | 2 |\n"), DefaultConfig())
	children := doc.Root.BlockChildren()
	if len(children) != 1 || children[0].Kind() != TableKind {
		t.Fatalf("got %d blocks; want exactly one TableKind", len(children))
	}
	rows := children[0].BlockChildren()
	if len(rows) != 2 {
		t.Fatalf("got %d rows; want 2 (header + body)", len(rows))
	}
	if !rows[0].IsHeaderRow() {
		t.Error("rows[0].IsHeaderRow() = false; want true")
	}
}

func TestParseSetextHeading(t *testing.T) {
	doc := Parse([]byte("Title\n=====\n"), DefaultConfig())
	children := doc.Root.BlockChildren()
	if len(children) != 1 || children[0].Kind() != HeadingKind {
		t.Fatalf("got %d blocks; want exactly one HeadingKind", len(children))
	}
	if children[0].HeadingLevel() != 1 {
		t.Errorf("HeadingLevel() = %d; want 1", children[0].HeadingLevel())
	}
	if children[0].HeadingStyle() != SetextHeadingStyle {
		t.Errorf("HeadingStyle() = %v; want SetextHeadingStyle", children[0].HeadingStyle())
	}
}

func TestParseLooseListDetection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tight bool
	}{
		{"Tight", "- a\n- b\n", true},
		{"Loose", "- a\n\n- b\n", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := Parse([]byte(test.input), DefaultConfig())
			children := doc.Root.BlockChildren()
			if len(children) != 1 || children[0].Kind() != ListKind {
				t.Fatalf("got %d blocks; want exactly one ListKind", len(children))
			}
			if got := children[0].IsTight(); got != test.tight {
				t.Errorf("IsTight() = %v; want %v", got, test.tight)
			}
		})
	}
}
