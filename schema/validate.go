// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks data against the named type. Unknown fields in data are
// allowed and left untouched (forward-compatible). Returns (true, nil) on
// success; on failure returns (false, errs) — callers persist the entry
// regardless and surface errs alongside.
func (c *Catalog) Validate(typeName string, data map[string]interface{}) (bool, []string) {
	t, ok := c.Lookup(typeName)
	if !ok {
		return false, []string{"Unknown context type"}
	}

	var errs []string
	for name, spec := range t.Fields {
		value, present := data[name]
		if !present || value == nil {
			if spec.Required {
				errs = append(errs, fmt.Sprintf("missing required field %q", name))
			}
			continue
		}

		switch spec.Kind {
		case KindString:
			s, ok := value.(string)
			if !ok || (spec.Required && strings.TrimSpace(s) == "") {
				errs = append(errs, fmt.Sprintf("field %q must be a non-empty string", name))
			}
		case KindStrings:
			if !isStringSlice(value) {
				errs = append(errs, fmt.Sprintf("field %q must be a string array", name))
			}
		case KindNumber:
			if !isNumber(value) {
				errs = append(errs, fmt.Sprintf("field %q must be a number", name))
			}
		case KindBoolean:
			if _, ok := value.(bool); !ok {
				errs = append(errs, fmt.Sprintf("field %q must be a boolean", name))
			}
		case KindEnum:
			s, ok := value.(string)
			if !ok || !contains(spec.EnumValues, s) {
				errs = append(errs, fmt.Sprintf("field %q must be one of the declared enum values", name))
			}
		}
	}

	sort.Strings(errs)
	return len(errs) == 0, errs
}

func isStringSlice(v interface{}) bool {
	switch vv := v.(type) {
	case []string:
		return true
	case []interface{}:
		for _, item := range vv {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return true
	default:
		return false
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// RenderContent produces the stable, deterministic content string for a
// typed entry: "[type] key: value | key: value | …", arrays joined with
// ", ", nil/undefined fields skipped.
func RenderContent(typeName string, data map[string]interface{}) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := data[k]
		if v == nil {
			continue
		}
		rendered := renderValue(v)
		if rendered == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k, rendered))
	}

	return fmt.Sprintf("[%s] %s", typeName, strings.Join(parts, " | "))
}

func renderValue(v interface{}) string {
	switch vv := v.(type) {
	case []string:
		return strings.Join(vv, ", ")
	case []interface{}:
		items := make([]string, 0, len(vv))
		for _, item := range vv {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return strings.Join(items, ", ")
	default:
		return fmt.Sprintf("%v", vv)
	}
}

// Describe renders a human-readable description of the catalog for
// presentation to agents (the describe_schema tool).
func (c *Catalog) Describe() string {
	if c == nil || len(c.Types) == 0 {
		return "No context schema is defined. Untyped saves are used."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Context schema (version %d), %d type(s):\n\n", c.Version, len(c.Types))
	for _, t := range c.Types {
		fmt.Fprintf(&b, "- %s", t.Name)
		if t.Description != "" {
			fmt.Fprintf(&b, ": %s", t.Description)
		}
		b.WriteString("\n")

		names := make([]string, 0, len(t.Fields))
		for name := range t.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			spec := t.Fields[name]
			req := "optional"
			if spec.Required {
				req = "required"
			}
			fmt.Fprintf(&b, "    %s (%s, %s)", name, spec.Kind, req)
			if spec.Description != "" {
				fmt.Fprintf(&b, " — %s", spec.Description)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
