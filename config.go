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

// Config holds the plugin flags and collaborators that shape a single
// parse or render call. A Config is read-only once a parse begins.
type Config struct {
	TablesEnabled        bool
	StrikethroughEnabled bool
	TaskListsEnabled     bool
	FootnotesEnabled     bool
	MathEnabled          bool
	AutolinksEnabled     bool

	// StrictContracts upgrades directive contract warnings to fatal
	// diagnostics.
	StrictContracts bool

	// Directives and Roles are immutable registries consulted by the
	// block and inline parsers respectively. A nil registry behaves as
	// an empty one (every name falls back to the generic node).
	Directives *DirectiveRegistry
	Roles      *RoleRegistry

	// TextTransformer, if set, is applied to plain text runs during
	// lexing.
	TextTransformer func(string) string

	// Slugify overrides the default heading-slug generator.
	Slugify func(string) string

	// Highlight makes the HTML renderer give a fenced code block that has
	// no info string a "language-text" class. A code block with an info
	// string gets a "language-<info>" class whether or not Highlight is
	// set. No syntax highlighting is performed.
	Highlight bool

	// suppressSetext disables setext-heading recognition for the
	// duration of a sub-parse; set internally when parsing a blockquote
	// lazy-continuation body, since a setext underline cannot span a
	// container boundary.
	suppressSetext bool
}

// DefaultConfig returns a Config with every CommonMark extension enabled
// and strict mode off, matching the defaults a caller gets from
// Markdown{} with no options set.
func DefaultConfig() *Config {
	return &Config{
		TablesEnabled:        true,
		StrikethroughEnabled: true,
		TaskListsEnabled:     true,
		FootnotesEnabled:     true,
		MathEnabled:          true,
		AutolinksEnabled:     true,
	}
}

func (c *Config) clone() *Config {
	if c == nil {
		return DefaultConfig()
	}
	cp := *c
	return &cp
}

// withSuppressedSetext returns a shallow copy of c with setext-heading
// recognition turned off, for blockquote lazy-continuation sub-parses.
func (c *Config) withSuppressedSetext() *Config {
	cp := c.clone()
	cp.suppressSetext = true
	return cp
}

// noConfig is a package-level default Config. The active configuration
// is not read from here: Parse clones its Config and passes it
// explicitly through the blockParser (and every sub-parse) to the lexer
// and inline parser, and an HTMLRenderer carries its own Config. Nothing
// in the package reads noConfig or calls withConfig.
var noConfig = DefaultConfig()

// withConfig runs fn with cfg bound as the active configuration for the
// duration of the call, restoring the previous binding afterward even if
// fn panics.
func withConfig(slot **Config, cfg *Config, fn func()) {
	prev := *slot
	*slot = cfg
	defer func() { *slot = prev }()
	fn()
}
