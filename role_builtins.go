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

// builtinRoleHandlers returns the small set of inline roles this
// package recognizes out of the box.
func builtinRoleHandlers() []*RoleHandler {
	return []*RoleHandler{
		{
			Name: "abbr",
			Render: func(content, target string, hasTarget bool) string {
				if hasTarget {
					return `<abbr title="` + escapeHTMLAttr(target) + `">` + escapeHTMLText(content) + `</abbr>`
				}
				return `<abbr>` + escapeHTMLText(content) + `</abbr>`
			},
		},
		{
			Name: "sub",
			Render: func(content, _ string, _ bool) string {
				return `<sub>` + escapeHTMLText(content) + `</sub>`
			},
		},
		{
			Name: "sup",
			Render: func(content, _ string, _ bool) string {
				return `<sup>` + escapeHTMLText(content) + `</sup>`
			},
		},
	}
}
