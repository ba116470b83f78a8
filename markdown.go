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
	"fmt"
	"io"
)

// Markdown is a configured processor: it bundles a Config with the
// Parse-then-render pipeline so a caller doesn't have to thread the
// same Config through both calls by hand. The zero value is ready to
// use and behaves exactly like DefaultConfig().
type Markdown struct {
	// Config, if nil, is treated as DefaultConfig() for every call.
	Config *Config
}

// New returns a Markdown configured with cfg. A nil cfg is equivalent
// to DefaultConfig().
func New(cfg *Config) *Markdown {
	return &Markdown{Config: cfg}
}

func (m *Markdown) config() *Config {
	if m.Config == nil {
		return DefaultConfig()
	}
	return m.Config
}

// Parse parses source under m's Config.
func (m *Markdown) Parse(source []byte) *Document {
	return Parse(source, m.config())
}

// Render parses source and renders it to HTML in one call.
func (m *Markdown) Render(source []byte) string {
	return RenderHTML(m.Parse(source), m.config())
}

// RenderLLM parses source and renders it to the plain-text LLM format
// in one call.
func (m *Markdown) RenderLLM(source []byte) string {
	return RenderLLM(m.Parse(source))
}

// RenderTo parses source, renders it to HTML, and writes the result to
// w, wrapping any write failure the way the teacher's own
// HTMLRenderer.Render does — the only I/O boundary in this package that
// can fail, since parsing and rendering malformed Markdown is never an
// error.
func (m *Markdown) RenderTo(w io.Writer, source []byte) error {
	if _, err := io.WriteString(w, m.Render(source)); err != nil {
		return fmt.Errorf("patitas: render: %w", err)
	}
	return nil
}

// RenderLLMTo is RenderTo's counterpart for the LLM renderer.
func (m *Markdown) RenderLLMTo(w io.Writer, source []byte) error {
	if _, err := io.WriteString(w, m.RenderLLM(source)); err != nil {
		return fmt.Errorf("patitas: render llm: %w", err)
	}
	return nil
}
