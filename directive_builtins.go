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

// builtinDirectiveHandlers returns the small set of MyST-style
// directives this package recognizes out of the box. Everything else
// falls back to generic directive handling: children parsed as blocks,
// options typed as strings except "class" (an OptionClass). tab-set/tab-item (original_source's
// directives/builtins/tabs.py) exist specifically to exercise
// DirectiveContract's parent- and child-nesting checks end to end:
// tab-item requires a tab-set parent, and tab-set requires at least one
// tab-item child.
func builtinDirectiveHandlers() []*DirectiveHandler {
	return []*DirectiveHandler{
		{
			Name:    "note",
			Options: []OptionSpec{{Name: "class", Kind: OptionClass}},
		},
		{
			Name:    "warning",
			Options: []OptionSpec{{Name: "class", Kind: OptionClass}},
		},
		{
			Name:    "tip",
			Options: []OptionSpec{{Name: "class", Kind: OptionClass}},
		},
		{
			Name:    "caution",
			Options: []OptionSpec{{Name: "class", Kind: OptionClass}},
		},
		{
			Name: "dropdown",
			Options: []OptionSpec{
				{Name: "class", Kind: OptionClass},
				{Name: "open", Kind: OptionBool},
			},
			RequiresArgument: true,
		},
		{
			Name: "tab-set",
			Options: []OptionSpec{
				{Name: "class", Kind: OptionClass},
				{Name: "sync", Kind: OptionString},
			},
			Contract: &DirectiveContract{
				RequiresChildren: []string{"tab-item"},
				AllowsChildren:   []string{"tab-item"},
			},
		},
		{
			Name: "tab-item",
			Options: []OptionSpec{
				{Name: "class", Kind: OptionClass},
				{Name: "selected", Kind: OptionBool},
			},
			RequiresArgument: true,
			Contract: &DirectiveContract{
				RequiresParent: []string{"tab-set"},
			},
		},
	}
}

// admonitionClass returns the CSS class used to render a built-in
// admonition directive, appending any user-supplied extra classes.
func admonitionClass(name string, opts map[string]OptionValue) string {
	class := "admonition admonition-" + name
	if v, ok := opts["class"]; ok && v.Kind == OptionClass {
		for _, c := range v.Classes {
			class += " " + c
		}
	}
	return class
}
