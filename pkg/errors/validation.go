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

package errors

// ErrInvalidInput is returned by transport/httpapi for a malformed request
// body or an unrecognized field value (e.g. an unknown analyze action).
// Schema field validation (schema.Catalog.Validate) accumulates its own
// []string messages instead of using this type, since it reports every
// failing field at once rather than failing fast on the first one.
var ErrInvalidInput = &Error{
	Category: CategoryValidation,
	Code:     "INVALID_INPUT",
	Message:  "invalid input provided",
}
