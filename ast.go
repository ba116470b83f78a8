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

// Package patitas implements a CommonMark 0.31.2 Markdown processor with
// MyST-style directives and roles.
package patitas

import (
	"strconv"
	"unsafe"
)

// BlockKind is the tag of the closed Block sum type.
type BlockKind uint8

const (
	blockKindInvalid BlockKind = iota
	DocumentKind
	ParagraphKind
	HeadingKind
	ThematicBreakKind
	FencedCodeKind
	IndentedCodeKind
	BlockQuoteKind
	ListKind
	ListItemKind
	HTMLBlockKind
	TableKind
	TableRowKind
	TableCellKind
	MathBlockKind
	FootnoteDefKind
	DirectiveKind
)

func (k BlockKind) String() string {
	switch k {
	case DocumentKind:
		return "Document"
	case ParagraphKind:
		return "Paragraph"
	case HeadingKind:
		return "Heading"
	case ThematicBreakKind:
		return "ThematicBreak"
	case FencedCodeKind:
		return "FencedCode"
	case IndentedCodeKind:
		return "IndentedCode"
	case BlockQuoteKind:
		return "BlockQuote"
	case ListKind:
		return "List"
	case ListItemKind:
		return "ListItem"
	case HTMLBlockKind:
		return "HtmlBlock"
	case TableKind:
		return "Table"
	case TableRowKind:
		return "TableRow"
	case TableCellKind:
		return "TableCell"
	case MathBlockKind:
		return "MathBlock"
	case FootnoteDefKind:
		return "FootnoteDef"
	case DirectiveKind:
		return "Directive"
	default:
		return "Block(?)"
	}
}

// HeadingStyle distinguishes ATX from setext headings.
type HeadingStyle uint8

const (
	ATXHeadingStyle HeadingStyle = iota
	SetextHeadingStyle
)

// TableAlignment is a GFM table column alignment.
type TableAlignment uint8

const (
	AlignNone TableAlignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// CheckedState is the tri-state checkbox state of a task-list item.
type CheckedState uint8

const (
	// NotTaskItem means the list item is not a task-list item at all.
	NotTaskItem CheckedState = iota
	Unchecked
	Checked
)

// Block is one node of the closed Block sum type. A single struct
// backs every kind; field meaning is interpreted according to Kind(),
// see the accessor methods below.
type Block struct {
	kind BlockKind
	span Span

	blockChildren  []*Block
	inlineChildren []*Inline

	// Heading
	level       int
	style       HeadingStyle
	explicitID  string
	hasExplicit bool

	// FencedCode / IndentedCode / HtmlBlock raw text
	codeSpan        Span
	contentOverride []byte
	info            string
	fenceChar       byte
	fenceLen        int
	fenceIndent     int
	rawHTML         string

	// List / ListItem
	ordered       bool
	startNum      int
	bulletChar    byte
	delimChar     byte
	tight         bool
	checked       CheckedState
	contentIndent int

	// Table / TableRow / TableCell
	alignments   []TableAlignment
	isHeaderRow  bool
	isHeaderCell bool
	align        TableAlignment

	// FootnoteDef
	identifier string

	// Directive
	name               string
	title              string
	options            map[string]OptionValue
	rawOptions         map[string]string
	rawContent         string
	hasRawContent      bool
	contractViolations []ContractViolation
	handlerName        string
}

// Kind reports the variant tag of b.
func (b *Block) Kind() BlockKind { return b.kind }

// Span reports the byte range of b in its document's source buffer.
func (b *Block) Span() Span { return b.span }

// ChildCount reports the number of children of b, whether block or
// inline.
func (b *Block) ChildCount() int {
	if b.blockChildren != nil {
		return len(b.blockChildren)
	}
	return len(b.inlineChildren)
}

// Child returns the i'th child of b as a Node.
func (b *Block) Child(i int) Node {
	if b.blockChildren != nil {
		return b.blockChildren[i].AsNode()
	}
	return b.inlineChildren[i].AsNode()
}

// BlockChildren returns b's block-level children (nil if b is a leaf
// block).
func (b *Block) BlockChildren() []*Block { return b.blockChildren }

// InlineChildren returns b's inline children (nil if b has none).
func (b *Block) InlineChildren() []*Inline { return b.inlineChildren }

// HeadingLevel returns the heading level (1-6). Only valid for HeadingKind.
func (b *Block) HeadingLevel() int { return b.level }

// HeadingStyle reports whether the heading was written as ATX or setext.
func (b *Block) HeadingStyle() HeadingStyle { return b.style }

// ExplicitID returns the user-supplied `{#slug}` heading id, if any.
func (b *Block) ExplicitID() (string, bool) { return b.explicitID, b.hasExplicit }

// Info returns a fenced code block's info string.
func (b *Block) Info() string { return b.info }

// FenceChar returns the fence character ('`' or '~').
func (b *Block) FenceChar() byte { return b.fenceChar }

// GetCode returns the literal source text of a FencedCode or
// IndentedCode block: contentOverride if set, else a zero-copy slice of
// source[codeSpan.Start:codeSpan.End].
func (b *Block) GetCode(source []byte) []byte {
	if b.contentOverride != nil {
		return b.contentOverride
	}
	return b.codeSpan.Slice(source)
}

// CodeSpan exposes the raw byte offsets backing GetCode, for callers
// that want zero-copy access without allocating through GetCode.
func (b *Block) CodeSpan() Span { return b.codeSpan }

// RawHTML returns the literal HTML of an HtmlBlock.
func (b *Block) RawHTML() string { return b.rawHTML }

// IsOrdered reports whether a List is ordered.
func (b *Block) IsOrdered() bool { return b.ordered }

// StartNumber returns an ordered List's starting number.
func (b *Block) StartNumber() int { return b.startNum }

// IsTight reports whether a List is tight (spec.md invariant 8).
func (b *Block) IsTight() bool { return b.tight }

// Checked returns a ListItem's task-list checkbox state.
func (b *Block) Checked() CheckedState { return b.checked }

// Alignments returns a Table's per-column alignments.
func (b *Block) Alignments() []TableAlignment { return b.alignments }

// IsHeaderRow reports whether a TableRow is the header row.
func (b *Block) IsHeaderRow() bool { return b.isHeaderRow }

// IsHeaderCell reports whether a TableCell is a header cell.
func (b *Block) IsHeaderCell() bool { return b.isHeaderCell }

// Align returns a TableCell's column alignment.
func (b *Block) Align() TableAlignment { return b.align }

// Identifier returns a FootnoteDef's label.
func (b *Block) Identifier() string { return b.identifier }

// Name returns a Directive's name.
func (b *Block) Name() string { return b.name }

// Title returns a Directive's optional title.
func (b *Block) Title() (string, bool) { return b.title, b.title != "" }

// Options returns a Directive's typed options. For a directive with no
// registered handler, every option is an OptionString except "class",
// which is an OptionClass.
func (b *Block) Options() map[string]OptionValue { return b.options }

// RawOptions returns a Directive's raw, unparsed `:key: value` options.
func (b *Block) RawOptions() map[string]string { return b.rawOptions }

// RawContent returns a Directive's raw body text, present only when the
// handler declared PreservesRawContent.
func (b *Block) RawContent() (string, bool) { return b.rawContent, b.hasRawContent }

// ContractViolations returns any nesting-contract diagnostics attached
// directly to this directive.
func (b *Block) ContractViolations() []ContractViolation { return b.contractViolations }

// AsNode wraps b in the tagged Node union.
func (b *Block) AsNode() Node {
	return Node{typ: nodeTypeBlock, ptr: unsafe.Pointer(b)}
}

// InlineKind is the tag of the closed Inline sum type.
type InlineKind uint8

const (
	inlineKindInvalid InlineKind = iota
	TextKind
	EmphasisKind
	StrongKind
	StrikethroughKind
	LinkKind
	ImageKind
	CodeSpanInlineKind
	LineBreakKind
	SoftBreakKind
	HTMLInlineKind
	RoleKind
	MathKind
	FootnoteRefKind
)

func (k InlineKind) String() string {
	switch k {
	case TextKind:
		return "Text"
	case EmphasisKind:
		return "Emphasis"
	case StrongKind:
		return "Strong"
	case StrikethroughKind:
		return "Strikethrough"
	case LinkKind:
		return "Link"
	case ImageKind:
		return "Image"
	case CodeSpanInlineKind:
		return "CodeSpan"
	case LineBreakKind:
		return "LineBreak"
	case SoftBreakKind:
		return "SoftBreak"
	case HTMLInlineKind:
		return "HtmlInline"
	case RoleKind:
		return "Role"
	case MathKind:
		return "Math"
	case FootnoteRefKind:
		return "FootnoteRef"
	default:
		return "Inline(?)"
	}
}

// Inline is one node of the closed Inline sum type.
type Inline struct {
	kind InlineKind
	span Span

	children []*Inline

	text string // Text / CodeSpan / HtmlInline / Math content

	url      string
	title    string
	hasTitle bool
	alt      string // Image alt text (plain text, pre-extracted)

	roleName   string
	roleTarget string
	hasTarget  bool

	footnoteID string
}

// Kind reports the variant tag of in.
func (in *Inline) Kind() InlineKind { return in.kind }

// Span reports the byte range of in in its document's source buffer.
func (in *Inline) Span() Span { return in.span }

// ChildCount reports the number of inline children.
func (in *Inline) ChildCount() int { return len(in.children) }

// Child returns the i'th inline child as a Node.
func (in *Inline) Child(i int) Node { return in.children[i].AsNode() }

// Children returns in's children directly.
func (in *Inline) Children() []*Inline { return in.children }

// Text returns the literal text payload of a Text, CodeSpan, HtmlInline,
// or Math node.
func (in *Inline) Text() string { return in.text }

// URL returns a Link or Image's destination.
func (in *Inline) URL() string { return in.url }

// LinkTitle returns a Link or Image's optional title.
func (in *Inline) LinkTitle() (string, bool) { return in.title, in.hasTitle }

// Alt returns an Image's plain-text alt content.
func (in *Inline) Alt() string { return in.alt }

// RoleName returns a Role's name.
func (in *Inline) RoleName() string { return in.roleName }

// RoleTarget returns a Role's optional target (e.g. a cross-reference
// key distinct from its rendered content).
func (in *Inline) RoleTarget() (string, bool) { return in.roleTarget, in.hasTarget }

// FootnoteID returns a FootnoteRef's identifier.
func (in *Inline) FootnoteID() string { return in.footnoteID }

// AsNode wraps in in the tagged Node union.
func (in *Inline) AsNode() Node {
	return Node{typ: nodeTypeInline, ptr: unsafe.Pointer(in)}
}

type nodeType uint8

const (
	nodeTypeBlock nodeType = iota
	nodeTypeInline
)

// Node is a tagged union wrapping either a *Block or an *Inline,
// avoiding an interface-box allocation for the common case of walking
// an AST generically. The zero Node is invalid; use Block.AsNode or
// Inline.AsNode to construct one.
type Node struct {
	typ nodeType
	ptr unsafe.Pointer
}

// Block returns n's underlying block, or nil if n wraps an Inline.
func (n Node) Block() *Block {
	if n.typ != nodeTypeBlock {
		return nil
	}
	return (*Block)(n.ptr)
}

// Inline returns n's underlying inline, or nil if n wraps a Block.
func (n Node) Inline() *Inline {
	if n.typ != nodeTypeInline {
		return nil
	}
	return (*Inline)(n.ptr)
}

// Span reports the byte range of whichever node n wraps.
func (n Node) Span() Span {
	if b := n.Block(); b != nil {
		return b.span
	}
	return n.Inline().span
}

// ChildCount reports the number of children of whichever node n wraps.
func (n Node) ChildCount() int {
	if b := n.Block(); b != nil {
		return b.ChildCount()
	}
	return n.Inline().ChildCount()
}

// Child returns the i'th child of whichever node n wraps.
func (n Node) Child(i int) Node {
	if b := n.Block(); b != nil {
		return b.Child(i)
	}
	return n.Inline().Child(i)
}

// Document is the root artifact returned by Parse: a Document block plus
// the source buffer and document-wide collaborators needed to render or
// further inspect it.
type Document struct {
	Root        *Block
	Source      []byte
	References  ReferenceMap
	Diagnostics []Diagnostic
}

// Diagnostic is a non-fatal observation made during parsing (a contract
// violation, an unterminated construct). In strict mode, diagnostics
// with Severity >= SeverityError should be treated as fatal by the
// caller.
type Diagnostic struct {
	Severity Severity
	Message  string
	Location SourceLocation
}

// Severity classifies a Diagnostic.
type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (sev Severity) String() string {
	switch sev {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "severity(" + strconv.Itoa(int(sev)) + ")"
	}
}
