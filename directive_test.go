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

import "testing"

func TestDirectiveContractValidateParent(t *testing.T) {
	tests := []struct {
		name       string
		contract   *DirectiveContract
		parent     string
		hasParent  bool
		wantType   string
	}{
		{"NilContract", nil, "tab-set", true, ""},
		{"RequiresParentMissing", &DirectiveContract{RequiresParent: []string{"tab-set"}}, "", false, "missing_parent"},
		{"RequiresParentWrong", &DirectiveContract{RequiresParent: []string{"tab-set"}}, "note", true, "wrong_parent"},
		{"RequiresParentSatisfied", &DirectiveContract{RequiresParent: []string{"tab-set"}}, "tab-set", true, ""},
		{"AllowsParentSuggestion", &DirectiveContract{AllowsParent: []string{"steps"}}, "note", true, "suggested_parent"},
		{"AllowsParentSatisfied", &DirectiveContract{AllowsParent: []string{"steps"}}, "steps", true, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.contract.validateParent("tab-item", test.parent, test.hasParent)
			if test.wantType == "" {
				if len(got) != 0 {
					t.Fatalf("validateParent() = %+v; want no violations", got)
				}
				return
			}
			if len(got) != 1 || got[0].ViolationType != test.wantType {
				t.Fatalf("validateParent() = %+v; want one violation of type %q", got, test.wantType)
			}
		})
	}
}

func TestDirectiveContractValidateChildren(t *testing.T) {
	tests := []struct {
		name        string
		contract    *DirectiveContract
		children    []string
		hasChildren bool
		wantTypes   []string
	}{
		{"NilContract", nil, []string{"tab-item"}, true, nil},
		{"RequiresChildrenMissing", &DirectiveContract{RequiresChildren: []string{"tab-item"}}, []string{"note"}, true, []string{"missing_required_child"}},
		{"RequiresChildrenMissingNonDirectiveContent", &DirectiveContract{RequiresChildren: []string{"tab-item"}}, nil, true, []string{"missing_required_child"}},
		{"RequiresChildrenSatisfied", &DirectiveContract{RequiresChildren: []string{"tab-item"}}, []string{"tab-item"}, true, nil},
		{"RequiresChildrenIgnoredWhenNoContentAtAll", &DirectiveContract{RequiresChildren: []string{"tab-item"}}, nil, false, nil},
		{"AllowsChildrenForbidsOthers", &DirectiveContract{AllowsChildren: []string{"tab-item"}}, []string{"tab-item", "note"}, true, []string{"forbidden_child"}},
		{"ForbidsChildren", &DirectiveContract{ForbidsChildren: []string{"note"}}, []string{"note"}, true, []string{"forbidden_child"}},
		{"MaxChildrenExceeded", &DirectiveContract{MaxChildren: 1}, []string{"tab-item", "tab-item"}, true, []string{"too_many_children"}},
		{"MaxChildrenSatisfied", &DirectiveContract{MaxChildren: 2}, []string{"tab-item", "tab-item"}, true, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.contract.validateChildren("tab-set", test.children, test.hasChildren)
			if len(got) != len(test.wantTypes) {
				t.Fatalf("validateChildren() = %+v; want %d violations of types %v", got, len(test.wantTypes), test.wantTypes)
			}
			for i, wantType := range test.wantTypes {
				if got[i].ViolationType != wantType {
					t.Errorf("violation[%d].ViolationType = %q; want %q", i, got[i].ViolationType, wantType)
				}
			}
		})
	}
}

func TestContractViolationSuggestion(t *testing.T) {
	tests := []struct {
		name string
		v    ContractViolation
		want string
	}{
		{
			name: "MissingParent",
			v:    ContractViolation{Directive: "tab-item", ViolationType: "missing_parent", Expected: []string{"tab-set"}},
			want: `Wrap "tab-item" inside a ':::{tab-set}' block`,
		},
		{
			name: "MissingRequiredChild",
			v:    ContractViolation{Directive: "tab-set", ViolationType: "missing_required_child", Expected: []string{"tab-item"}},
			want: `Add at least one ':::{tab-item}' inside "tab-set"`,
		},
		{
			name: "NoSuggestionForWrongParent",
			v:    ContractViolation{Directive: "tab-item", ViolationType: "wrong_parent", Expected: []string{"tab-set"}},
			want: "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.v.Suggestion(); got != test.want {
				t.Errorf("Suggestion() = %q; want %q", got, test.want)
			}
		})
	}
}

// TestTabSetTabItemContractEndToEnd exercises the builtin tab-set/
// tab-item pair through the full Parse pipeline: tab-item outside a
// tab-set is a missing-parent violation, and a tab-set with no tab-item
// children is a missing-required-child violation.
func TestTabSetTabItemContractEndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directives = DefaultDirectiveRegistry()

	t.Run("TabItemOutsideTabSet", func(t *testing.T) {
		doc := Parse([]byte(":::{tab-item} Python\ncontent\n:::\n"), cfg)
		if len(doc.Diagnostics) != 1 {
			t.Fatalf("Diagnostics = %+v; want exactly one", doc.Diagnostics)
		}
		if doc.Diagnostics[0].Severity != SeverityWarning {
			t.Errorf("Severity = %v; want SeverityWarning (StrictContracts off)", doc.Diagnostics[0].Severity)
		}
	})

	t.Run("TabSetWithNoTabItems", func(t *testing.T) {
		doc := Parse([]byte(":::{tab-set}\nplain text, no tab-item children\n:::\n"), cfg)
		if len(doc.Diagnostics) != 1 {
			t.Fatalf("Diagnostics = %+v; want exactly one", doc.Diagnostics)
		}
	})

	t.Run("WellFormedTabSet", func(t *testing.T) {
		input := "::::{tab-set}\n:::{tab-item} Python\ncontent\n:::\n::::\n"
		doc := Parse([]byte(input), cfg)
		if len(doc.Diagnostics) != 0 {
			t.Fatalf("Diagnostics = %+v; want none", doc.Diagnostics)
		}
	})
}

func TestBindDirectiveOptionsTypeCoercion(t *testing.T) {
	handler := &DirectiveHandler{
		Name: "dropdown",
		Options: []OptionSpec{
			{Name: "open", Kind: OptionBool},
			{Name: "class", Kind: OptionClass},
		},
	}
	options, violations := bindDirectiveOptions(handler, "dropdown", map[string]string{
		"open":  "true",
		"class": "a b",
	})
	if len(violations) != 0 {
		t.Fatalf("violations = %+v; want none", violations)
	}
	if got := options["open"]; got.Kind != OptionBool || !got.Bool {
		t.Errorf("options[open] = %+v; want Bool=true", got)
	}
	if got := options["class"]; got.Kind != OptionClass || len(got.Classes) != 2 {
		t.Errorf("options[class] = %+v; want 2 classes", got)
	}
}

func TestBindDirectiveOptionsBadInt(t *testing.T) {
	handler := &DirectiveHandler{
		Name:    "x",
		Options: []OptionSpec{{Name: "n", Kind: OptionInt}},
	}
	_, violations := bindDirectiveOptions(handler, "x", map[string]string{"n": "not-a-number"})
	if len(violations) != 1 {
		t.Fatalf("violations = %+v; want exactly one", violations)
	}
}

func TestBindDirectiveOptionsMissingRequired(t *testing.T) {
	handler := &DirectiveHandler{
		Name:    "x",
		Options: []OptionSpec{{Name: "required", Kind: OptionString, Required: true}},
	}
	_, violations := bindDirectiveOptions(handler, "x", map[string]string{})
	if len(violations) != 1 {
		t.Fatalf("violations = %+v; want exactly one", violations)
	}
}
