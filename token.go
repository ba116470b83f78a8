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

import "fmt"

// TokenType identifies the kind of a lexer token.
type TokenType uint8

const (
	tokenInvalid TokenType = iota

	// Document structure
	TokenEOF
	TokenBlankLine

	// Headings
	TokenATXHeading
	TokenSetextHeadingUnderline

	// Code
	TokenFencedCodeStart
	TokenFencedCodeEnd
	TokenFencedCodeContent
	TokenIndentedCode

	// Quotes and lists
	TokenBlockQuoteMarker
	TokenListItemMarker

	// Other block constructs
	TokenThematicBreak
	TokenHTMLBlock

	// Paragraph / text
	TokenParagraphLine

	// Reference definitions
	TokenLinkReferenceDef

	// Directives
	TokenDirectiveOpen
	TokenDirectiveClose
	TokenDirectiveName
	TokenDirectiveTitle
	TokenDirectiveOption

	// Roles
	TokenRole

	// Tables (GFM)
	TokenTableRow
	TokenTableDelimiter

	// Strikethrough
	TokenStrikethroughMarker

	// Math
	TokenMathInline
	TokenMathBlockStart
	TokenMathBlockEnd
	TokenMathBlockContent

	// Footnotes
	TokenFootnoteRef
	TokenFootnoteDef
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenBlankLine:
		return "BLANK_LINE"
	case TokenATXHeading:
		return "ATX_HEADING"
	case TokenSetextHeadingUnderline:
		return "SETEXT_HEADING_UNDERLINE"
	case TokenFencedCodeStart:
		return "FENCED_CODE_START"
	case TokenFencedCodeEnd:
		return "FENCED_CODE_END"
	case TokenFencedCodeContent:
		return "FENCED_CODE_CONTENT"
	case TokenIndentedCode:
		return "INDENTED_CODE"
	case TokenBlockQuoteMarker:
		return "BLOCK_QUOTE_MARKER"
	case TokenListItemMarker:
		return "LIST_ITEM_MARKER"
	case TokenThematicBreak:
		return "THEMATIC_BREAK"
	case TokenHTMLBlock:
		return "HTML_BLOCK"
	case TokenParagraphLine:
		return "PARAGRAPH_LINE"
	case TokenLinkReferenceDef:
		return "LINK_REFERENCE_DEF"
	case TokenDirectiveOpen:
		return "DIRECTIVE_OPEN"
	case TokenDirectiveClose:
		return "DIRECTIVE_CLOSE"
	case TokenDirectiveName:
		return "DIRECTIVE_NAME"
	case TokenDirectiveTitle:
		return "DIRECTIVE_TITLE"
	case TokenDirectiveOption:
		return "DIRECTIVE_OPTION"
	case TokenRole:
		return "ROLE"
	case TokenTableRow:
		return "TABLE_ROW"
	case TokenTableDelimiter:
		return "TABLE_DELIMITER"
	case TokenStrikethroughMarker:
		return "STRIKETHROUGH_MARKER"
	case TokenMathInline:
		return "MATH_INLINE"
	case TokenMathBlockStart:
		return "MATH_BLOCK_START"
	case TokenMathBlockEnd:
		return "MATH_BLOCK_END"
	case TokenMathBlockContent:
		return "MATH_BLOCK_CONTENT"
	case TokenFootnoteRef:
		return "FOOTNOTE_REF"
	case TokenFootnoteDef:
		return "FOOTNOTE_DEF"
	default:
		return fmt.Sprintf("TokenType(%d)", uint8(t))
	}
}

// Token is a single lexical unit produced by the lexer. Tokens are
// immutable; SourceLocation is reconstructed on demand from the raw
// coordinates rather than stored up front, since most tokens are
// consumed by the block parser without ever having their location
// inspected.
type Token struct {
	Type TokenType
	// Span covers the token's raw bytes in the source buffer (not
	// including the line terminator).
	Span Span
	// Value is the token's semantic payload: for most block tokens this
	// is the line content after lexer-level stripping (e.g. fence
	// indent, list marker text, ATX hash count). See the builder that
	// produces each token kind for how Value is interpreted.
	Value string
	// Line is the 1-indexed source line the token starts on.
	Line int
	// Column is the 1-indexed column the token starts on.
	Column int
	// LineIndent is the effective indent (tabs expanded to the next
	// multiple of 4) of the physical line this token came from, or -1
	// if not computed for this token kind.
	LineIndent int
}

// Location reconstructs the full SourceLocation for t.
func (t Token) Location(sourceFile string) SourceLocation {
	return newSourceLocation(t.Line, t.Column, t.Span.Start, t.Span.End, sourceFile)
}
