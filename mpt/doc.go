// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package mpt provides the Merkle-Patricia trie primitives consumed by the
// witness package: in-memory trie construction over arbitrary byte-string
// keys, proof-node collection, and value resolution against partial tries
// reconstructed from proofs. Node encoding, hashing, and the sub-32-byte
// embedding rule follow Ethereum's trie, so roots and proofs produced here
// are byte-compatible with other implementations of that structure.
package mpt
