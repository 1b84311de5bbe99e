// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package witness implements storage proof claims: a prover with access to
// a full key/value snapshot derives a compact set of trie nodes proving the
// values (or the absence) of selected keys against a single root hash, and
// a verifier holding nothing but that trusted root checks the claim without
// trusting the prover.
//
// The flow is one-directional:
//
//	ProofBuilder -> UnverifiedClaim -> Verify -> VerifiedClaim
//
// An UnverifiedClaim is inert data; Verify is the only way to obtain a
// queryable view, and it re-derives every claimed value from the proof
// before handing anything out. Both the proof checker and the verified
// claim track what their consumers actually read, so that padded proofs and
// ignored entries are detected by the EnsureNoUnusedNodes and
// EnsureNoUnusedKeys audits.
//
// All operations are synchronous, CPU-bound, and free of internal locking;
// concurrent use of a single instance requires external synchronization.
package witness
