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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "HeadingWithSlugAndStrong",
			input: "# Hello **World**",
			want:  "<h1 id=\"hello-world\">Hello <strong>World</strong></h1>\n",
		},
		{
			name:  "BlockQuoteThenParagraph",
			input: "> line one\n> line two\n\npara\n",
			want:  "<blockquote>\n<p>line one\nline two</p>\n</blockquote>\n<p>para</p>\n",
		},
		{
			name:  "LooseList",
			input: "- a\n\n- b\n",
			want:  "<ul>\n<li>\n<p>a</p>\n</li>\n<li>\n<p>b</p>\n</li>\n</ul>\n",
		},
		{
			name:  "LinkReference",
			input: "See [docs][d].\n\n[d]: https://example.com \"Docs\"\n",
			want:  "<p>See <a href=\"https://example.com\" title=\"Docs\">docs</a>.</p>\n",
		},
		{
			name:  "FencedCodeWithLanguage",
			input: "```python\nx = 1\n```\n",
			want:  "<pre><code class=\"language-python\">x = 1\n</code></pre>\n",
		},
		{
			name:  "GenericDirectiveFallback",
			input: ":::{note} Title\nbody **bold**\n:::\n",
			want:  "<div class=\"directive directive-note\">\n<p class=\"directive-title\">Title</p>\n<p>body <strong>bold</strong></p>\n</div>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := Parse([]byte(test.input), DefaultConfig())
			got := RenderHTML(doc, DefaultConfig())
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("RenderHTML(%q) (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestRenderHTMLTightList(t *testing.T) {
	doc := Parse([]byte("- a\n- b\n"), DefaultConfig())
	got := RenderHTML(doc, DefaultConfig())
	want := "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderHTML tight list (-want +got):\n%s", diff)
	}
}

func TestRenderHTMLHeadingSlugDedup(t *testing.T) {
	doc := Parse([]byte("# Title\n\n# Title\n"), DefaultConfig())
	got := RenderHTML(doc, DefaultConfig())
	want := "<h1 id=\"title\">Title</h1>\n<h1 id=\"title-1\">Title</h1>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderHTML heading slug dedup (-want +got):\n%s", diff)
	}
}

func TestRenderHTMLExplicitHeadingID(t *testing.T) {
	doc := Parse([]byte("# Title {#custom-id}\n"), DefaultConfig())
	got := RenderHTML(doc, DefaultConfig())
	want := "<h1 id=\"custom-id\">Title</h1>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderHTML explicit heading id (-want +got):\n%s", diff)
	}
}

func TestRenderHTMLUnregisteredRole(t *testing.T) {
	doc := Parse([]byte("See {custom}`content`.\n"), DefaultConfig())
	got := RenderHTML(doc, DefaultConfig())
	want := "<p>See <code class=\"role role-custom\">content</code>.</p>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderHTML unregistered role (-want +got):\n%s", diff)
	}
}

func TestRenderHTMLFootnotes(t *testing.T) {
	input := "One[^a] and two[^a] and dangling[^b].\n\n[^a]: Note text.\n"
	doc := Parse([]byte(input), DefaultConfig())
	got := RenderHTML(doc, DefaultConfig())
	want := "<p>One<sup id=\"fnref-a\"><a href=\"#fn-a\">1</a></sup> and two<sup id=\"fnref-a-2\"><a href=\"#fn-a\">1</a></sup> and dangling<sup><a href=\"#fn-b\">b</a></sup>.</p>\n" +
		"<section class=\"footnotes\">\n<ol>\n<li id=\"fn-a\">\n<p>Note text.</p>\n" +
		"<a href=\"#fnref-a\" class=\"footnote-backref\">↩</a>\n" +
		"<a href=\"#fnref-a-2\" class=\"footnote-backref\">2↩</a>\n</li>\n</ol>\n</section>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderHTML footnotes (-want +got):\n%s", diff)
	}
}

func TestRenderHTMLMathBlock(t *testing.T) {
	doc := Parse([]byte("$$\nx^2\n$$\n"), DefaultConfig())
	got := RenderHTML(doc, DefaultConfig())
	want := "<div class=\"math-block\">\nx^2\n</div>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderHTML math block (-want +got):\n%s", diff)
	}
}

func TestNormalizeURI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "AlreadyEncoded", input: "https://example.com/%20a", want: "https://example.com/%20a"},
		{name: "SpaceEncoded", input: "https://example.com/a b", want: "https://example.com/a%20b"},
		{name: "UnicodeEncoded", input: "https://example.com/é", want: "https://example.com/%C3%A9"},
		{name: "SafeCharsPreserved", input: "https://example.com/a-b_c.d~e", want: "https://example.com/a-b_c.d~e"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := normalizeURI(test.input)
			if got != test.want {
				t.Errorf("normalizeURI(%q) = %q; want %q", test.input, got, test.want)
			}
		})
	}
}

func TestEscapeHTMLOmitsSingleQuote(t *testing.T) {
	got := escapeHTMLAttr(`it's "quoted" & <tagged>`)
	want := `it's &quot;quoted&quot; &amp; &lt;tagged&gt;`
	if got != want {
		t.Errorf("escapeHTMLAttr(...) = %q; want %q", got, want)
	}
}
