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
	"strconv"
	"strings"
	"unicode/utf8"

	anchorname "github.com/shurcooL/sanitized_anchor_name"
	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

//go:generate stringer -type=SoftBreakBehavior -output=render_html_string.go

// SoftBreakBehavior determines how HTMLRenderer renders a soft line
// break (a single newline inside a paragraph that is not a hard break).
type SoftBreakBehavior int

const (
	// SoftBreakPreserve renders a soft break as a literal newline.
	SoftBreakPreserve SoftBreakBehavior = iota
	// SoftBreakSpace renders a soft break as a single space.
	SoftBreakSpace
	// SoftBreakHarden renders a soft break as `<br />` followed by a
	// newline, matching a hard line break.
	SoftBreakHarden
)

// An HTMLRenderer converts a parsed Document into HTML.
//
// Raw HTML carries the same risk here as in the teacher it is adapted
// from: set IgnoreRaw to drop it entirely, or FilterTag to escape the
// leading angle bracket of specific tag names while keeping everything
// else, and pair either
// with a downstream sanitizer for untrusted input.
type HTMLRenderer struct {
	Config *Config

	SoftBreakBehavior SoftBreakBehavior

	// IgnoreRaw drops HtmlBlock and HtmlInline nodes entirely.
	IgnoreRaw bool

	// FilterTag, if non-nil, is consulted for every raw HTML tag name
	// encountered; a true result escapes that tag's leading angle
	// bracket instead of passing it through.
	FilterTag func(tag []byte) bool
}

// RenderHTML renders doc to HTML using the default HTMLRenderer options.
func RenderHTML(doc *Document, cfg *Config) string {
	return (&HTMLRenderer{Config: cfg}).Render(doc)
}

// Render renders doc to a complete HTML fragment: every top-level block
// in document order followed by a single trailing footnotes section, if
// the document referenced any defined footnotes.
func (r *HTMLRenderer) Render(doc *Document) string {
	cfg := r.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	state := &renderState{
		HTMLRenderer:        r,
		cfg:                 cfg,
		footnoteDefs:        make(map[string]*Block),
		footnoteFirstSeen:   make(map[string]bool),
		footnoteIndex:       make(map[string]int),
		footnoteOccurrences: make(map[string]int),
		footnoteBackrefs:    make(map[string][]string),
		slugSeen:            make(map[string]bool),
	}
	state.collectFootnoteDefs(doc.Root)
	state.block(doc.Source, doc.Root)
	state.renderFootnotes(doc.Source)
	return string(state.dst)
}

// renderState carries the accumulated output plus the per-render
// bookkeeping (heading slugs, footnote ordering) that can't live on the
// immutable HTMLRenderer itself.
type renderState struct {
	*HTMLRenderer
	cfg *Config
	dst []byte

	lowerBuf []byte

	footnoteDefs        map[string]*Block
	footnoteOrder       []string
	footnoteFirstSeen   map[string]bool
	footnoteIndex       map[string]int
	footnoteOccurrences map[string]int
	footnoteBackrefs    map[string][]string

	slugSeen map[string]bool
}

// collectFootnoteDefs walks the tree once before rendering begins so
// that a FootnoteRef encountered anywhere (including before its
// definition appears later in the document) can tell whether it is
// dangling.
func (s *renderState) collectFootnoteDefs(root *Block) {
	Walk(root.AsNode(), &WalkOptions{
		Pre: func(c *Cursor) bool {
			if b := c.Node().Block(); b != nil && b.Kind() == FootnoteDefKind {
				s.footnoteDefs[b.Identifier()] = b
			}
			return true
		},
	})
}

func (s *renderState) openTagAttr(name atom.Atom) {
	start := len(s.dst)
	s.dst = append(s.dst, '<')
	s.dst = append(s.dst, name.String()...)
	if s.FilterTag != nil && s.FilterTag(s.dst[start+1:]) {
		s.dst = s.dst[:start]
		s.dst = append(s.dst, "&lt;"...)
		s.dst = append(s.dst, name.String()...)
	}
}

func (s *renderState) closeOpenTag() {
	s.dst = append(s.dst, '>')
}

// closeSelfClosing ends a tag opened with openTagAttr as a
// self-closing element, e.g. `<img src="...">` becomes `<img src="..." />`.
func (s *renderState) closeSelfClosing() {
	s.dst = append(s.dst, " />"...)
}

func (s *renderState) openTag(name atom.Atom) {
	s.openTagAttr(name)
	s.closeOpenTag()
}

func (s *renderState) closeTag(name atom.Atom) {
	start := len(s.dst)
	s.dst = append(s.dst, "</"...)
	s.dst = append(s.dst, name.String()...)
	if s.FilterTag != nil && s.FilterTag(s.dst[start+1:]) {
		s.dst = s.dst[:start]
		s.dst = append(s.dst, "&lt;/"...)
		s.dst = append(s.dst, name.String()...)
	}
	s.dst = append(s.dst, '>')
}

// block appends the rendered HTML of one block (and its descendants) to
// s.dst.
func (s *renderState) block(source []byte, b *Block) {
	switch b.Kind() {
	case DocumentKind:
		s.children(source, b)
	case ParagraphKind:
		s.openTag(atom.P)
		s.renderInlines(b.InlineChildren())
		s.closeTag(atom.P)
		s.dst = append(s.dst, '\n')
	case ThematicBreakKind:
		s.openTagAttr(atom.Hr)
		s.closeSelfClosing()
		s.dst = append(s.dst, '\n')
	case HeadingKind:
		tag := headingAtom(b.HeadingLevel())
		slug := s.headingSlug(b)
		s.openTagAttr(tag)
		if slug != "" {
			s.dst = append(s.dst, ` id="`...)
			s.dst = append(s.dst, escapeHTMLAttr(slug)...)
			s.dst = append(s.dst, `"`...)
		}
		s.closeOpenTag()
		s.renderInlines(b.InlineChildren())
		s.closeTag(tag)
		s.dst = append(s.dst, '\n')
	case FencedCodeKind, IndentedCodeKind:
		s.renderCodeBlock(source, b)
	case MathBlockKind:
		s.dst = append(s.dst, `<div class="math-block">`...)
		s.dst = append(s.dst, '\n')
		s.dst = append(s.dst, escapeHTML(nil, b.GetCode(source))...)
		s.dst = append(s.dst, "</div>\n"...)
	case BlockQuoteKind:
		s.openTag(atom.Blockquote)
		s.dst = append(s.dst, '\n')
		s.children(source, b)
		s.closeTag(atom.Blockquote)
		s.dst = append(s.dst, '\n')
	case ListKind:
		s.renderList(source, b)
	case HTMLBlockKind:
		if !s.IgnoreRaw {
			if s.FilterTag == nil {
				s.dst = append(s.dst, b.RawHTML()...)
			} else {
				s.filterRaw([]byte(b.RawHTML()))
			}
		}
	case TableKind:
		s.renderTable(b)
	case FootnoteDefKind:
		// Rendered only from renderFootnotes, in first-reference order.
	case DirectiveKind:
		s.renderDirective(source, b)
	}
}

// children renders every block child of parent in order, with no
// separator beyond what each child's own rendering appends.
func (s *renderState) children(source []byte, parent *Block) {
	for _, c := range parent.BlockChildren() {
		s.block(source, c)
	}
}

func (s *renderState) renderInlines(children []*Inline) {
	for _, c := range children {
		s.inline(c)
	}
}

func headingAtom(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	case 3:
		return atom.H3
	case 4:
		return atom.H4
	case 5:
		return atom.H5
	default:
		return atom.H6
	}
}

// headingPlainText flattens a heading's inline children to plain text,
// the way a slug generator needs it: code spans and math contribute
// their literal text, images contribute their alt text, roles
// contribute their literal content, and everything else recurses into
// its children.
func headingPlainText(children []*Inline) string {
	var sb strings.Builder
	for _, in := range children {
		appendHeadingPlainText(&sb, in)
	}
	return sb.String()
}

func appendHeadingPlainText(sb *strings.Builder, in *Inline) {
	switch in.Kind() {
	case TextKind, CodeSpanInlineKind, MathKind, HTMLInlineKind:
		sb.WriteString(in.Text())
	case ImageKind:
		sb.WriteString(in.Alt())
	case RoleKind:
		sb.WriteString(in.Text())
	case SoftBreakKind:
		sb.WriteByte(' ')
	case LineBreakKind:
		sb.WriteByte(' ')
	default:
		for _, c := range in.Children() {
			appendHeadingPlainText(sb, c)
		}
	}
}

// headingSlug computes the id attribute for a heading: an explicit
// `{#id}` always wins, otherwise the configured Slugify (or
// defaultSlugify) is run over the heading's plain text, deduplicated
// against every slug already emitted in this render.
func (s *renderState) headingSlug(b *Block) string {
	var base string
	if id, ok := b.ExplicitID(); ok {
		base = id
	} else {
		slugify := s.cfg.Slugify
		if slugify == nil {
			slugify = defaultSlugify
		}
		base = slugify(headingPlainText(b.InlineChildren()))
	}
	if base == "" {
		return ""
	}
	return s.dedupeSlug(base)
}

func (s *renderState) dedupeSlug(base string) string {
	if !s.slugSeen[base] {
		s.slugSeen[base] = true
		return base
	}
	for n := 1; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !s.slugSeen[candidate] {
			s.slugSeen[candidate] = true
			return candidate
		}
	}
}

// defaultSlugify normalizes text to NFC before handing it to
// sanitized_anchor_name, matching GitHub's own heading-anchor behavior
// for combining-character input.
func defaultSlugify(text string) string {
	return anchorname.Create(norm.NFC.String(text))
}

func (s *renderState) renderCodeBlock(source []byte, b *Block) {
	s.openTag(atom.Pre)
	s.openTagAttr(atom.Code)
	if info := strings.Fields(b.Info()); len(info) > 0 {
		s.dst = append(s.dst, ` class="language-`...)
		s.dst = append(s.dst, escapeHTMLAttr(info[0])...)
		s.dst = append(s.dst, `"`...)
	} else if s.cfg.Highlight && b.Kind() == FencedCodeKind {
		s.dst = append(s.dst, ` class="language-text"`...)
	}
	s.closeOpenTag()
	s.dst = append(s.dst, escapeHTML(nil, b.GetCode(source))...)
	s.closeTag(atom.Code)
	s.closeTag(atom.Pre)
	s.dst = append(s.dst, '\n')
}

func (s *renderState) renderList(source []byte, b *Block) {
	var tag atom.Atom
	if b.IsOrdered() {
		tag = atom.Ol
		s.openTagAttr(tag)
		if n := b.StartNumber(); n != 1 {
			s.dst = append(s.dst, ` start="`...)
			s.dst = strconv.AppendInt(s.dst, int64(n), 10)
			s.dst = append(s.dst, `"`...)
		}
		s.closeOpenTag()
	} else {
		tag = atom.Ul
		s.openTag(tag)
	}
	s.dst = append(s.dst, '\n')
	for _, item := range b.BlockChildren() {
		s.renderListItem(source, item, b.IsTight())
	}
	s.closeTag(tag)
	s.dst = append(s.dst, '\n')
}

// renderListItem renders one list item. Per spec.md's tight/loose rule,
// a tight list's paragraph children are unwrapped (their inline content
// is emitted directly, with no surrounding <p> and no interior
// newline), while a loose list always gets full <p> wrapping with a
// leading newline right after <li>'s open tag.
func (s *renderState) renderListItem(source []byte, item *Block, tight bool) {
	s.openTagAttr(atom.Li)
	if item.Checked() != NotTaskItem {
		s.dst = append(s.dst, ` class="task-list-item"`...)
	}
	s.closeOpenTag()
	if !tight {
		s.dst = append(s.dst, '\n')
	}
	if item.Checked() != NotTaskItem {
		s.openTagAttr(atom.Input)
		s.dst = append(s.dst, ` disabled=""`...)
		s.dst = append(s.dst, ` type="checkbox"`...)
		if item.Checked() == Checked {
			s.dst = append(s.dst, ` checked=""`...)
		}
		s.closeSelfClosing()
		s.dst = append(s.dst, ' ')
	}
	for _, c := range item.BlockChildren() {
		if tight && c.Kind() == ParagraphKind {
			s.renderInlines(c.InlineChildren())
			continue
		}
		s.block(source, c)
	}
	s.closeTag(atom.Li)
	s.dst = append(s.dst, '\n')
}

func (s *renderState) renderTable(b *Block) {
	s.openTag(atom.Table)
	s.dst = append(s.dst, '\n')
	headerDone := false
	inBody := false
	for _, row := range b.BlockChildren() {
		if row.IsHeaderRow() && !headerDone {
			s.openTag(atom.Thead)
			s.dst = append(s.dst, '\n')
			s.renderTableRow(row)
			s.closeTag(atom.Thead)
			s.dst = append(s.dst, '\n')
			headerDone = true
			continue
		}
		if !inBody {
			s.openTag(atom.Tbody)
			s.dst = append(s.dst, '\n')
			inBody = true
		}
		s.renderTableRow(row)
	}
	if inBody {
		s.closeTag(atom.Tbody)
		s.dst = append(s.dst, '\n')
	}
	s.closeTag(atom.Table)
	s.dst = append(s.dst, '\n')
}

func (s *renderState) renderTableRow(row *Block) {
	s.openTag(atom.Tr)
	s.dst = append(s.dst, '\n')
	for _, cell := range row.BlockChildren() {
		tag := atom.Td
		if cell.IsHeaderCell() {
			tag = atom.Th
		}
		s.openTagAttr(tag)
		switch cell.Align() {
		case AlignLeft:
			s.dst = append(s.dst, ` align="left"`...)
		case AlignRight:
			s.dst = append(s.dst, ` align="right"`...)
		case AlignCenter:
			s.dst = append(s.dst, ` align="center"`...)
		}
		s.closeOpenTag()
		s.renderInlines(cell.InlineChildren())
		s.closeTag(tag)
		s.dst = append(s.dst, '\n')
	}
	s.closeTag(atom.Tr)
	s.dst = append(s.dst, '\n')
}

// renderDirective asks the registry for the declared name; a name with
// no registered handler falls back to the generic container div. Of the
// registered names, note/warning/tip/caution/dropdown get a dedicated
// rendering; every other registered name (including the builtin
// tab-set/tab-item) also gets the generic container div.
func (s *renderState) renderDirective(source []byte, b *Block) {
	if _, ok := s.cfg.Directives.lookup(b.Name()); !ok {
		s.renderGenericDirective(source, b)
		return
	}
	switch b.Name() {
	case "note", "warning", "tip", "caution":
		s.renderAdmonition(source, b)
	case "dropdown":
		s.renderDropdown(source, b)
	default:
		s.renderGenericDirective(source, b)
	}
}

func (s *renderState) renderAdmonition(source []byte, b *Block) {
	class := admonitionClass(b.Name(), b.Options())
	s.dst = append(s.dst, `<div class="`...)
	s.dst = append(s.dst, escapeHTMLAttr(class)...)
	s.dst = append(s.dst, `">`...)
	s.dst = append(s.dst, '\n')
	if title, ok := b.Title(); ok {
		s.dst = append(s.dst, `<p class="admonition-title">`...)
		s.dst = append(s.dst, escapeHTML(nil, []byte(title))...)
		s.dst = append(s.dst, "</p>\n"...)
	}
	s.children(source, b)
	s.dst = append(s.dst, "</div>\n"...)
}

func (s *renderState) renderDropdown(source []byte, b *Block) {
	class := "dropdown"
	if v, ok := b.Options()["class"]; ok && v.Kind == OptionClass {
		for _, c := range v.Classes {
			class += " " + c
		}
	}
	open := false
	if v, ok := b.Options()["open"]; ok && v.Kind == OptionBool {
		open = v.Bool
	}
	s.dst = append(s.dst, `<details class="`...)
	s.dst = append(s.dst, escapeHTMLAttr(class)...)
	s.dst = append(s.dst, `"`...)
	if open {
		s.dst = append(s.dst, ` open=""`...)
	}
	s.dst = append(s.dst, ">\n"...)
	if title, ok := b.Title(); ok {
		s.dst = append(s.dst, `<summary>`...)
		s.dst = append(s.dst, escapeHTML(nil, []byte(title))...)
		s.dst = append(s.dst, "</summary>\n"...)
	}
	s.children(source, b)
	s.dst = append(s.dst, "</details>\n"...)
}

// renderGenericDirective reproduces the byte-exact fallback format any
// unrecognized directive name gets.
func (s *renderState) renderGenericDirective(source []byte, b *Block) {
	s.dst = append(s.dst, `<div class="directive directive-`...)
	s.dst = append(s.dst, escapeHTMLAttr(b.Name())...)
	s.dst = append(s.dst, `">`...)
	s.dst = append(s.dst, '\n')
	if title, ok := b.Title(); ok {
		s.dst = append(s.dst, `<p class="directive-title">`...)
		s.dst = append(s.dst, escapeHTML(nil, []byte(title))...)
		s.dst = append(s.dst, "</p>\n"...)
	}
	s.children(source, b)
	s.dst = append(s.dst, "</div>\n"...)
}

// inline appends the rendered HTML of one inline node (and its
// descendants) to s.dst.
func (s *renderState) inline(in *Inline) {
	switch in.Kind() {
	case TextKind:
		s.dst = escapeHTML(s.dst, []byte(in.Text()))
	case CodeSpanInlineKind:
		s.openTag(atom.Code)
		s.dst = escapeHTML(s.dst, []byte(in.Text()))
		s.closeTag(atom.Code)
	case EmphasisKind:
		s.openTag(atom.Em)
		s.renderInlines(in.Children())
		s.closeTag(atom.Em)
	case StrongKind:
		s.openTag(atom.Strong)
		s.renderInlines(in.Children())
		s.closeTag(atom.Strong)
	case StrikethroughKind:
		s.openTag(atom.Del)
		s.renderInlines(in.Children())
		s.closeTag(atom.Del)
	case LinkKind:
		s.renderLink(in)
	case ImageKind:
		s.renderImage(in)
	case LineBreakKind:
		s.dst = append(s.dst, "<br />\n"...)
	case SoftBreakKind:
		switch s.SoftBreakBehavior {
		case SoftBreakHarden:
			s.dst = append(s.dst, "<br />\n"...)
		case SoftBreakSpace:
			s.dst = append(s.dst, ' ')
		default:
			s.dst = append(s.dst, '\n')
		}
	case HTMLInlineKind:
		if !s.IgnoreRaw {
			if s.FilterTag == nil {
				s.dst = append(s.dst, in.Text()...)
			} else {
				s.filterRaw([]byte(in.Text()))
			}
		}
	case MathKind:
		s.dst = append(s.dst, `<span class="math">`...)
		s.dst = escapeHTML(s.dst, []byte(in.Text()))
		s.dst = append(s.dst, `</span>`...)
	case RoleKind:
		s.renderRole(in)
	case FootnoteRefKind:
		s.renderFootnoteRef(in)
	}
}

func (s *renderState) renderLink(in *Inline) {
	title, hasTitle := in.LinkTitle()
	s.openTagAttr(atom.A)
	s.dst = append(s.dst, ` href="`...)
	s.dst = append(s.dst, escapeHTMLAttr(normalizeURI(in.URL()))...)
	s.dst = append(s.dst, `"`...)
	if hasTitle {
		s.dst = append(s.dst, ` title="`...)
		s.dst = append(s.dst, escapeHTMLAttr(title)...)
		s.dst = append(s.dst, `"`...)
	}
	s.closeOpenTag()
	s.renderInlines(in.Children())
	s.closeTag(atom.A)
}

func (s *renderState) renderImage(in *Inline) {
	title, hasTitle := in.LinkTitle()
	s.openTagAttr(atom.Img)
	s.dst = append(s.dst, ` src="`...)
	s.dst = append(s.dst, escapeHTMLAttr(normalizeURI(in.URL()))...)
	s.dst = append(s.dst, `"`...)
	s.dst = append(s.dst, ` alt="`...)
	s.dst = append(s.dst, escapeHTMLAttr(in.Alt())...)
	s.dst = append(s.dst, `"`...)
	if hasTitle {
		s.dst = append(s.dst, ` title="`...)
		s.dst = append(s.dst, escapeHTMLAttr(title)...)
		s.dst = append(s.dst, `"`...)
	}
	s.closeSelfClosing()
}

// renderRole asks the registry for the declared name; if a handler is
// found, it is delegated to (recovering from a panicking handler into
// the generic fallback, per spec.md's "never crash the renderer"
// requirement). Unregistered names render as a generic code span
// carrying their literal content.
func (s *renderState) renderRole(in *Inline) {
	name := in.RoleName()
	if handler, ok := s.cfg.Roles.lookup(name); ok {
		target, hasTarget := in.RoleTarget()
		s.dst = append(s.dst, renderRoleSafely(handler, in.Text(), target, hasTarget)...)
		return
	}
	s.dst = append(s.dst, genericRoleHTML(name, in.Text())...)
}

func renderRoleSafely(h *RoleHandler, content, target string, hasTarget bool) (out string) {
	defer func() {
		if recover() != nil {
			out = genericRoleHTML(h.Name, content)
		}
	}()
	return h.Render(content, target, hasTarget)
}

func genericRoleHTML(name, content string) string {
	return `<code class="role role-` + escapeHTMLAttr(name) + `">` + escapeHTMLText(content) + `</code>`
}

// renderFootnoteRef renders one `[^id]` reference. A reference to an
// undefined footnote gets a dangling anchor and is excluded from the
// numbered footnote list; a reference to a defined footnote is assigned
// that footnote's first-reference position as its visible number, and
// every occurrence gets its own back-reference anchor id
// (fnref-{id}, fnref-{id}-2, ...) for the footnotes section to link
// back to.
func (s *renderState) renderFootnoteRef(in *Inline) {
	id := in.FootnoteID()
	if _, defined := s.footnoteDefs[id]; !defined {
		s.dst = append(s.dst, `<sup><a href="#fn-`...)
		s.dst = append(s.dst, escapeHTMLAttr(id)...)
		s.dst = append(s.dst, `">`...)
		s.dst = escapeHTML(s.dst, []byte(id))
		s.dst = append(s.dst, "</a></sup>"...)
		return
	}
	if !s.footnoteFirstSeen[id] {
		s.footnoteFirstSeen[id] = true
		s.footnoteOrder = append(s.footnoteOrder, id)
		s.footnoteIndex[id] = len(s.footnoteOrder)
	}
	s.footnoteOccurrences[id]++
	refID := "fnref-" + id
	if n := s.footnoteOccurrences[id]; n > 1 {
		refID += "-" + strconv.Itoa(n)
	}
	s.footnoteBackrefs[id] = append(s.footnoteBackrefs[id], refID)

	s.dst = append(s.dst, `<sup id="`...)
	s.dst = append(s.dst, escapeHTMLAttr(refID)...)
	s.dst = append(s.dst, `"><a href="#fn-`...)
	s.dst = append(s.dst, escapeHTMLAttr(id)...)
	s.dst = append(s.dst, `">`...)
	s.dst = strconv.AppendInt(s.dst, int64(s.footnoteIndex[id]), 10)
	s.dst = append(s.dst, "</a></sup>"...)
}

// renderFootnotes emits the trailing footnotes section: one <li> per
// footnote definition actually referenced, in first-reference order,
// each followed by a back-reference link per occurrence. Definitions
// that were never referenced produce no output, matching spec.md's
// reference-driven (not definition-driven) footnote section.
func (s *renderState) renderFootnotes(source []byte) {
	if len(s.footnoteOrder) == 0 {
		return
	}
	s.dst = append(s.dst, `<section class="footnotes">`...)
	s.dst = append(s.dst, "\n<ol>\n"...)
	for _, id := range s.footnoteOrder {
		def := s.footnoteDefs[id]
		s.dst = append(s.dst, `<li id="fn-`...)
		s.dst = append(s.dst, escapeHTMLAttr(id)...)
		s.dst = append(s.dst, `">`...)
		s.dst = append(s.dst, '\n')
		s.children(source, def)
		for i, refID := range s.footnoteBackrefs[id] {
			s.dst = append(s.dst, `<a href="#`...)
			s.dst = append(s.dst, escapeHTMLAttr(refID)...)
			s.dst = append(s.dst, `" class="footnote-backref">`...)
			if i > 0 {
				s.dst = strconv.AppendInt(s.dst, int64(i+1), 10)
			}
			s.dst = append(s.dst, "↩</a>\n"...)
		}
		s.dst = append(s.dst, "</li>\n"...)
	}
	s.dst = append(s.dst, "</ol>\n</section>\n"...)
}

// filterRaw copies rawHTML to s.dst, consulting FilterTag for every tag
// opener or closer it finds and escaping the leading angle bracket when
// FilterTag reports true. Unlike the teacher's filterRaw this does not
// special-case comments, processing instructions, or CDATA sections
// (GFM's disallowed-raw-html extension only ever targets element tags);
// callers wanting stricter coverage should pair FilterTag with an HTML
// sanitizer, per HTMLRenderer's doc comment.
func (s *renderState) filterRaw(rawHTML []byte) {
	copyStart := 0
	for i := 0; i < len(rawHTML); i++ {
		if rawHTML[i] != '<' {
			continue
		}
		j := i + 1
		if j < len(rawHTML) && rawHTML[j] == '/' {
			j++
		}
		nameStart := j
		for j < len(rawHTML) && isTagNameByte(rawHTML[j]) {
			j++
		}
		if j == nameStart {
			continue
		}
		tagName := maybeLower(rawHTML[nameStart:j], &s.lowerBuf)
		if s.FilterTag(tagName) {
			s.dst = append(s.dst, rawHTML[copyStart:i]...)
			s.dst = append(s.dst, "&lt;"...)
			copyStart = i + 1
		}
	}
	s.dst = append(s.dst, rawHTML[copyStart:]...)
}

func isTagNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-'
}

// maybeLower returns x lowercased, reusing buf's backing array across
// calls to avoid an allocation per tag when x is already lowercase.
func maybeLower(x []byte, buf *[]byte) []byte {
	hasUpper := false
	for _, c := range x {
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return x
	}
	*buf = append((*buf)[:0], x...)
	for i, c := range *buf {
		if c >= 'A' && c <= 'Z' {
			(*buf)[i] = c + ('a' - 'A')
		}
	}
	return *buf
}

// htmlEscaper is shared by escapeHTML/escapeHTMLAttr/escapeHTMLText: per
// spec.md's escaping rule, text content and attribute values escape the
// same four characters, and single quote is deliberately left alone
// (a departure from the teacher's own escaper, which also escapes it).
var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// escapeHTML appends the HTML-escaped form of src to dst.
func escapeHTML(dst []byte, src []byte) []byte {
	return append(dst, htmlEscaper.Replace(append([]byte(nil), src...))...)
}

// escapeHTMLAttr HTML-escapes a string for use inside a double-quoted
// attribute value.
func escapeHTMLAttr(s string) string {
	return string(escapeHTML(nil, []byte(s)))
}

// escapeHTMLText HTML-escapes a string for use as element text content.
func escapeHTMLText(s string) string {
	return string(escapeHTML(nil, []byte(s)))
}

// normalizeURI percent-encodes any byte in s that is not reserved,
// unreserved, or already part of a valid percent-encoded triple,
// leaving a URI suitable for an href or src attribute. The safe set
// below is spec.md's own literal list rather than the teacher's RFC
// 3986 safe set, though the two agree on every character that appears
// in practice.
func normalizeURI(s string) string {
	const safeSet = `/:?#[]@!$&'()*+,;=-_.~%`

	var sb strings.Builder
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case (c < 0x80 && (isASCIILetter(byte(c)) || isASCIIDigit(byte(c)))) || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(urlHexDigit(b >> 4))
				sb.WriteByte(urlHexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func isHexDigit(c byte) bool { return isHexOrDecDigit(c, 16) }

func urlHexDigit(x byte) byte {
	switch {
	case x < 0xa:
		return '0' + x
	default:
		return 'A' + x - 0xa
	}
}
