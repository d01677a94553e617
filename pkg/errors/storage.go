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

// ErrNotFound is returned by store.Store and schema.Catalog lookups for a
// context entry, group, bubble, or pending action that doesn't exist —
// transport/httpapi maps it to a 404.
var ErrNotFound = &Error{
	Category: CategoryNotFound,
	Code:     "NOT_FOUND",
	Message:  "resource not found in storage",
}

// ErrStorageConnection wraps a failed read, write, or directory-create
// against the on-disk store or schema catalog file (store/persist.go,
// schema/persist.go).
var ErrStorageConnection = &Error{
	Category: CategoryStorage,
	Code:     "CONNECTION_ERROR",
	Message:  "storage connection failed",
}
