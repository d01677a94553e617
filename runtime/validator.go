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

package runtime

import "fmt"

// validator validates builder configuration before assembly.
type validator struct {
	builder *Builder
	errors  []error
}

func (v *validator) addError(err error) {
	v.errors = append(v.errors, err)
}

// validateConfig delegates to Config's own field-level validation.
func (v *validator) validateConfig() {
	if v.builder.cfg == nil {
		v.addError(fmt.Errorf("config must not be nil"))
		return
	}
	if err := v.builder.cfg.Validate(); err != nil {
		v.addError(err)
	}
}

// validateSchemaPath rejects an empty path only when no catalog override
// was supplied — an override makes the on-disk path irrelevant.
func (v *validator) validateSchemaPath() {
	if v.builder.catSet {
		return
	}
	if v.builder.cfg != nil && v.builder.cfg.Store.SchemaPath == "" {
		v.addError(fmt.Errorf("store.schema_path must not be empty unless a catalog override is supplied"))
	}
}
