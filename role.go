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

// RoleHandler renders one registered inline role, e.g. `` {abbr}`CLI` ``.
// Render receives the role's content (the text between backticks) and
// its optional bracketed target (`` {role}`text <target>` ``) and
// returns the HTML to emit in place of the role.
type RoleHandler struct {
	Name   string
	Render func(content string, target string, hasTarget bool) string
}

// RoleRegistry is an immutable, builder-populated set of inline role
// handlers consulted by the inline parser. A nil pointer behaves as an
// empty registry; roles with no registered handler render as a `<code
// class="role role-NAME">` span carrying their literal content, per
// spec.md's generic-fallback design.
type RoleRegistry struct {
	handlers map[string]*RoleHandler
}

// NewRoleRegistry returns an empty registry ready for Register calls.
func NewRoleRegistry() *RoleRegistry {
	return &RoleRegistry{handlers: make(map[string]*RoleHandler)}
}

// Register adds h to the registry, keyed by h.Name, and returns the
// registry so calls can be chained.
func (r *RoleRegistry) Register(h *RoleHandler) *RoleRegistry {
	if r.handlers == nil {
		r.handlers = make(map[string]*RoleHandler)
	}
	r.handlers[h.Name] = h
	return r
}

func (r *RoleRegistry) lookup(name string) (*RoleHandler, bool) {
	if r == nil || r.handlers == nil {
		return nil, false
	}
	h, ok := r.handlers[name]
	return h, ok
}

// DefaultRoleRegistry returns a registry pre-populated with this
// package's builtin roles (abbr, sub, sup).
func DefaultRoleRegistry() *RoleRegistry {
	r := NewRoleRegistry()
	for _, h := range builtinRoleHandlers() {
		r.Register(h)
	}
	return r
}
