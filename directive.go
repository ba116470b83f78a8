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
	"strconv"
	"strings"
)

// OptionKind is the type tag of a directive's typed option value.
type OptionKind uint8

const (
	OptionString OptionKind = iota
	OptionInt
	OptionBool
	OptionClass // space-separated CSS class list, aliased from "class"
)

// OptionValue is one directive option after type coercion against its
// handler's declared schema.
type OptionValue struct {
	Kind    OptionKind
	Str     string
	Int     int
	Bool    bool
	Classes []string
}

// OptionSpec declares one option a directive handler accepts.
type OptionSpec struct {
	Name     string
	Kind     OptionKind
	Required bool
}

// ContractViolation records a nesting-contract or option-binding problem
// noticed while building a directive node. It never aborts parsing; the
// block parser records each one as a diagnostic, an error diagnostic in
// StrictContracts mode (except "suggested_parent", always a warning).
type ContractViolation struct {
	Directive string
	Message   string

	// ViolationType classifies the violation (original_source's
	// contracts.py: "missing_parent", "wrong_parent", "suggested_parent",
	// "missing_required_child", "forbidden_child", "too_many_children",
	// or "" for violations with no structured classification, such as
	// option-binding errors).
	ViolationType string
	// Expected names what the contract required, when applicable.
	Expected []string
	// Actual names what was found in place of Expected, when applicable.
	Actual string
}

// Suggestion returns a concrete fix for v, or "" if this violation type
// carries none.
func (v ContractViolation) Suggestion() string {
	switch v.ViolationType {
	case "missing_parent":
		if len(v.Expected) > 0 {
			return fmt.Sprintf("Wrap %q inside a ':::{%s}' block", v.Directive, v.Expected[0])
		}
	case "missing_required_child":
		if len(v.Expected) > 0 {
			return fmt.Sprintf("Add at least one ':::{%s}' inside %q", v.Expected[0], v.Directive)
		}
	}
	return ""
}

// DirectiveContract validates nesting relationships between a directive
// and its parent and children, catching structural errors at parse time
// rather than render time (original_source's directives/contracts.py).
// A nil *DirectiveContract enforces nothing. Violations are warnings by
// default; StrictContracts upgrades them to error diagnostics.
type DirectiveContract struct {
	// RequiresParent, if non-empty, restricts which directive names this
	// directive may be nested directly inside of. Violating it is an
	// error in StrictContracts mode.
	RequiresParent []string

	// AllowsParent is a softer suggestion than RequiresParent: violating
	// it is always just a warning, even in StrictContracts mode.
	// Ignored when RequiresParent is set.
	AllowsParent []string

	// RequiresChildren, checked only when the directive has at least one
	// child, requires that at least one child's name appear in this list.
	RequiresChildren []string

	// AllowsChildren, if non-empty, forbids any child directive whose
	// name is not in this list.
	AllowsChildren []string

	// ForbidsChildren names child directives that may never appear,
	// independent of AllowsChildren.
	ForbidsChildren []string

	// MaxChildren caps the number of children, if positive.
	MaxChildren int
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// validateParent checks name's actual parent (parent == "" and
// hasParent == false at the document root) against c, returning at most
// one violation.
func (c *DirectiveContract) validateParent(name, parent string, hasParent bool) []ContractViolation {
	if c == nil {
		return nil
	}
	if len(c.RequiresParent) > 0 {
		if !hasParent {
			return []ContractViolation{{
				Directive:     name,
				ViolationType: "missing_parent",
				Message:       fmt.Sprintf("%q must be inside: %s", name, strings.Join(c.RequiresParent, ", ")),
				Expected:      c.RequiresParent,
			}}
		}
		if !containsString(c.RequiresParent, parent) {
			return []ContractViolation{{
				Directive:     name,
				ViolationType: "wrong_parent",
				Message:       fmt.Sprintf("%q must be inside %s, not %q", name, strings.Join(c.RequiresParent, ", "), parent),
				Expected:      c.RequiresParent,
				Actual:        parent,
			}}
		}
		return nil
	}
	if len(c.AllowsParent) > 0 && (!hasParent || !containsString(c.AllowsParent, parent)) {
		return []ContractViolation{{
			Directive:     name,
			ViolationType: "suggested_parent",
			Message:       fmt.Sprintf("%q is intended to be inside: %s", name, strings.Join(c.AllowsParent, ", ")),
			Expected:      c.AllowsParent,
			Actual:        parent,
		}}
	}
	return nil
}

// validateChildren checks childNames (the names of any child blocks that
// are themselves directives, in document order, duplicates allowed)
// against c. hasChildren reports whether the directive has any children
// at all (directive or not) — RequiresChildren is only checked once the
// directive actually has some content, matching
// original_source/directives/contracts.py's "not has_required and
// children" (an empty directive isn't missing anything; it just has
// nothing yet).
func (c *DirectiveContract) validateChildren(name string, childNames []string, hasChildren bool) []ContractViolation {
	if c == nil {
		return nil
	}
	var violations []ContractViolation
	if len(c.RequiresChildren) > 0 && hasChildren {
		has := false
		for _, n := range childNames {
			if containsString(c.RequiresChildren, n) {
				has = true
				break
			}
		}
		if !has {
			violations = append(violations, ContractViolation{
				Directive:     name,
				ViolationType: "missing_required_child",
				Message:       fmt.Sprintf("%q requires at least one of: %s", name, strings.Join(c.RequiresChildren, ", ")),
				Expected:      c.RequiresChildren,
			})
		}
	}
	if len(c.AllowsChildren) > 0 {
		for _, n := range childNames {
			if !containsString(c.AllowsChildren, n) {
				violations = append(violations, ContractViolation{
					Directive:     name,
					ViolationType: "forbidden_child",
					Message:       fmt.Sprintf("%q is not allowed inside %q", n, name),
					Expected:      c.AllowsChildren,
					Actual:        n,
				})
			}
		}
	}
	for _, n := range childNames {
		if containsString(c.ForbidsChildren, n) {
			violations = append(violations, ContractViolation{
				Directive:     name,
				ViolationType: "forbidden_child",
				Message:       fmt.Sprintf("%q is forbidden inside %q", n, name),
				Actual:        n,
			})
		}
	}
	if c.MaxChildren > 0 && len(childNames) > c.MaxChildren {
		violations = append(violations, ContractViolation{
			Directive:     name,
			ViolationType: "too_many_children",
			Message:       fmt.Sprintf("%q allows max %d children, got %d", name, c.MaxChildren, len(childNames)),
			Actual:        strconv.Itoa(len(childNames)),
		})
	}
	return violations
}

// DirectiveHandler describes one registered directive by name: the
// options it accepts and the containers it may nest inside or contain.
// A nil *DirectiveHandler (unregistered name) falls back to generic
// handling: every option except "class" is typed as a string ("class"
// becomes an OptionClass), and no nesting contract is enforced.
type DirectiveHandler struct {
	Name    string
	Options []OptionSpec

	// Contract declares this directive's nesting requirements: required
	// or suggested parent, required/allowed/forbidden children, maximum
	// child count. Nil enforces nothing.
	Contract *DirectiveContract

	// RequiresArgument marks directives whose title (the text after
	// `{name}` on the opening line) must be non-empty.
	RequiresArgument bool

	// PreservesRawContent asks the block parser to additionally retain
	// the directive body's literal source text (e.g. for a `code`-like
	// directive that wants to bypass block parsing).
	PreservesRawContent bool
}

// DirectiveRegistry is an immutable, builder-populated set of directive
// handlers consulted by the block parser. The zero value and a nil
// pointer both behave as an empty registry.
type DirectiveRegistry struct {
	handlers map[string]*DirectiveHandler
}

// NewDirectiveRegistry returns an empty registry ready for Register
// calls, following the builder pattern used throughout this package for
// plugin-style collaborators.
func NewDirectiveRegistry() *DirectiveRegistry {
	return &DirectiveRegistry{handlers: make(map[string]*DirectiveHandler)}
}

// Register adds h to the registry, keyed by h.Name. It returns the
// registry so calls can be chained.
func (r *DirectiveRegistry) Register(h *DirectiveHandler) *DirectiveRegistry {
	if r.handlers == nil {
		r.handlers = make(map[string]*DirectiveHandler)
	}
	r.handlers[h.Name] = h
	return r
}

func (r *DirectiveRegistry) lookup(name string) (*DirectiveHandler, bool) {
	if r == nil || r.handlers == nil {
		return nil, false
	}
	h, ok := r.handlers[name]
	return h, ok
}

// DefaultDirectiveRegistry returns a registry pre-populated with this
// package's builtin directives (note, warning, tip, caution, dropdown,
// tab-set, tab-item).
func DefaultDirectiveRegistry() *DirectiveRegistry {
	r := NewDirectiveRegistry()
	for _, h := range builtinDirectiveHandlers() {
		r.Register(h)
	}
	return r
}

// bindDirectiveOptions type-coerces rawOptions against handler's
// declared OptionSpecs (or, if handler is nil, types "class" as an
// OptionClass and every other option as a plain string), returning the bound options plus any contract
// violations noticed (missing required options, bad int/bool syntax).
func bindDirectiveOptions(handler *DirectiveHandler, name string, rawOptions map[string]string) (map[string]OptionValue, []ContractViolation) {
	out := make(map[string]OptionValue, len(rawOptions))
	var violations []ContractViolation

	if handler == nil {
		for k, v := range rawOptions {
			if k == "class" {
				out[k] = OptionValue{Kind: OptionClass, Str: v, Classes: strings.Fields(v)}
				continue
			}
			out[k] = OptionValue{Kind: OptionString, Str: v}
		}
		return out, violations
	}

	specByName := make(map[string]OptionSpec, len(handler.Options))
	for _, spec := range handler.Options {
		specByName[spec.Name] = spec
	}
	for key, raw := range rawOptions {
		spec, known := specByName[key]
		if !known {
			out[key] = OptionValue{Kind: OptionString, Str: raw}
			continue
		}
		switch spec.Kind {
		case OptionInt:
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				violations = append(violations, ContractViolation{Directive: name, Message: fmt.Sprintf("option %q: %q is not an integer", key, raw)})
				continue
			}
			out[key] = OptionValue{Kind: OptionInt, Int: n}
		case OptionBool:
			b, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				violations = append(violations, ContractViolation{Directive: name, Message: fmt.Sprintf("option %q: %q is not a boolean", key, raw)})
				continue
			}
			out[key] = OptionValue{Kind: OptionBool, Bool: b}
		case OptionClass:
			out[key] = OptionValue{Kind: OptionClass, Str: raw, Classes: strings.Fields(raw)}
		default:
			out[key] = OptionValue{Kind: OptionString, Str: raw}
		}
	}
	for _, spec := range handler.Options {
		if spec.Required {
			if _, ok := rawOptions[spec.Name]; !ok {
				violations = append(violations, ContractViolation{Directive: name, Message: fmt.Sprintf("missing required option %q", spec.Name)})
			}
		}
	}
	return out, violations
}
