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
	"testing"
)

func TestMarkdownZeroValue(t *testing.T) {
	var m Markdown
	got := m.Render([]byte("# Hi\n"))
	want := "<h1 id=\"hi\">Hi</h1>\n"
	if got != want {
		t.Errorf("Render() = %q; want %q", got, want)
	}
}

func TestMarkdownRenderLLM(t *testing.T) {
	m := New(nil)
	got := m.RenderLLM([]byte("# Hi\n"))
	want := "# Hi\n\n"
	if got != want {
		t.Errorf("RenderLLM() = %q; want %q", got, want)
	}
}

func TestMarkdownRenderTo(t *testing.T) {
	m := New(DefaultConfig())
	var sb strings.Builder
	if err := m.RenderTo(&sb, []byte("hi\n")); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	want := "<p>hi</p>\n"
	if sb.String() != want {
		t.Errorf("RenderTo wrote %q; want %q", sb.String(), want)
	}
}

// TestMarkdownStrictContracts exercises the dropdown directive's
// RequiresArgument contract: a dropdown with no title violates it, and
// StrictContracts controls whether that violation lands as a warning or
// an error diagnostic.
func TestMarkdownStrictContracts(t *testing.T) {
	input := []byte(":::{dropdown}\nbody\n:::\n")

	lenient := New(&Config{Directives: DefaultDirectiveRegistry()})
	doc := lenient.Parse(input)
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Severity != SeverityWarning {
		t.Fatalf("lenient mode diagnostics = %+v; want exactly one SeverityWarning", doc.Diagnostics)
	}

	strict := New(&Config{StrictContracts: true, Directives: DefaultDirectiveRegistry()})
	doc = strict.Parse(input)
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Severity != SeverityError {
		t.Fatalf("strict mode diagnostics = %+v; want exactly one SeverityError", doc.Diagnostics)
	}
}
