// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"bytes"
	"fmt"
)

// Hash is a 32-byte cryptographic digest. It identifies a trie node by the
// keccak-256 hash of its encoding, and a committed state snapshot by the
// hash of its root node.
type Hash [32]byte

// HashFromBytes converts the given slice into a Hash. Inputs that are not
// exactly 32 bytes long cannot be a valid digest and are rejected.
func HashFromBytes(data []byte) (Hash, bool) {
	var res Hash
	if len(data) != len(res) {
		return res, false
	}
	copy(res[:], data)
	return res, true
}

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// Compare orders hashes lexicographically, for deterministic listings.
func (h *Hash) Compare(other *Hash) int {
	return bytes.Compare(h[:], other[:])
}
