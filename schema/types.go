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

// Package schema loads, validates against, and renders the user-defined
// context type catalog. The catalog is read-only from the runtime's
// perspective — only the user, through the UI or REST, edits it.
package schema

// FieldKind is the declared type of a schema field.
type FieldKind string

const (
	KindString   FieldKind = "string"
	KindStrings  FieldKind = "string[]"
	KindNumber   FieldKind = "number"
	KindBoolean  FieldKind = "boolean"
	KindEnum     FieldKind = "enum"
)

// FieldSpec describes one field of a schema type.
type FieldSpec struct {
	Kind        FieldKind   `json:"kind" yaml:"kind"`
	Required    bool        `json:"required" yaml:"required"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	EnumValues  []string    `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
	Default     interface{} `json:"default,omitempty" yaml:"default,omitempty"`
}

// Type is one named entry in the catalog.
type Type struct {
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      map[string]FieldSpec `json:"fields" yaml:"fields"`
}

// Catalog is the user's declared set of context types.
type Catalog struct {
	Version int    `json:"version" yaml:"version"`
	Types   []Type `json:"types" yaml:"types"`
}

// Lookup finds a type by name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Types {
		if c.Types[i].Name == name {
			return &c.Types[i], true
		}
	}
	return nil, false
}
