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

package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// newEntryID derives a content-addressed ID from the entry's content,
// source, and creation time, salted with a random nonce so that two
// identical saves never collide.
func newEntryID(content, source string, createdAt time.Time) string {
	var nonce [8]byte
	_, _ = rand.Read(nonce[:])

	h, _ := blake2b.New256(nil)
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%x", content, source, createdAt.UnixNano(), nonce)
	sum := h.Sum(nil)

	return "ctx_" + hex.EncodeToString(sum[:16])
}

// newGroupID returns a random ID for a group. Groups are named
// collections, not content, so they carry no content-addressing benefit.
func newGroupID(_ string, _ time.Time) string {
	return "grp_" + uuid.NewString()
}
