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

func TestRenderLLM(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "HeadingAndItem",
			input: "# Hello **World**\n\n- item\n",
			want:  "# Hello World\n\n- item\n\n",
		},
		{
			name:  "FencedCodeWithLanguage",
			input: "```python\nx = 1\n```\n",
			want:  "[code:python]\nx = 1\n[/code]\n\n",
		},
		{
			name:  "FencedCodeNoInfo",
			input: "```\nx = 1\n```\n",
			want:  "[code]\nx = 1\n[/code]\n\n",
		},
		{
			name:  "Image",
			input: "![a cat](cat.png)\n",
			want:  "[image: a cat]\n\n",
		},
		{
			name:  "Link",
			input: "See [docs](https://example.com).\n",
			want:  "See docs (https://example.com).\n\n",
		},
		{
			name:  "MathInline",
			input: "Energy $E=mc^2$ here.\n",
			want:  "Energy [math] E=mc^2 [/math] here.\n\n",
		},
		{
			name:  "MathBlock",
			input: "$$\nx^2\n$$\n",
			want:  "[math] x^2 [/math]\n\n",
		},
		{
			name:  "OrderedList",
			input: "3. a\n4. b\n",
			want:  "3. a\n4. b\n\n",
		},
		{
			name:  "ThematicBreak",
			input: "---\n",
			want:  "---\n\n",
		},
		{
			name:  "FootnoteRef",
			input: "See it[^a].\n\n[^a]: Note.\n",
			want:  "See it[^a].\n\nNote.\n\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MathEnabled = true
			doc := Parse([]byte(test.input), cfg)
			got := RenderLLM(doc)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("RenderLLM(%q) (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestRenderLLMTable(t *testing.T) {
	input := "| a | b |\n| --- | --- |\n| 1 | 2 |\n"
	doc := Parse([]byte(input), DefaultConfig())
	got := RenderLLM(doc)
	want := "| a | b |\n| 1 | 2 |\n\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderLLM table (-want +got):\n%s", diff)
	}
}
