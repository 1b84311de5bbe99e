// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package witness

import "github.com/Fantom-foundation/Argus/common"

const (
	// ErrUnableToGenerateProof is reported by the prover-side builder when a
	// proof for the requested keys cannot be derived from the backing store.
	ErrUnableToGenerateProof = common.ConstError("unable to generate proof")

	// ErrInvalidProof is reported by Verify when the proof does not
	// cryptographically justify the claimed entries against the trusted
	// root. This covers wrong values, unsupported presence or absence
	// claims, duplicate nodes, and nodes no claimed entry needs. Callers
	// should treat the source of such a claim as faulty or malicious.
	ErrInvalidProof = common.ConstError("invalid proof")

	// ErrUnsortedEntries is reported by Verify when the claim entries are
	// not strictly sorted ascending by key, including the case of
	// duplicated keys.
	ErrUnsortedEntries = common.ConstError("claim entries not sorted by unique keys")

	// ErrUnavailableKey is reported by claim lookups for keys the claim
	// never covered. This is a lookup miss, not a trust failure, and is
	// distinct from an authenticated absence.
	ErrUnavailableKey = common.ConstError("key not covered by claim")

	// ErrEmptyValue is reported when a caller demands a value for a key the
	// claim proves absent.
	ErrEmptyValue = common.ConstError("value proven absent")

	// ErrDecode is reported when bytes do not deserialize into the
	// requested type, and by the wire codec for malformed claim encodings.
	ErrDecode = common.ConstError("decoding failed")

	// ErrUnusedKey is reported by the completeness audit when a verified
	// claim entry was never read by the consumer.
	ErrUnusedKey = common.ConstError("claim contains unused keys")

	// ErrUnusedNode is reported by the completeness audit when a proof node
	// was never dereferenced while resolving values.
	ErrUnusedNode = common.ConstError("proof contains unused nodes")

	// ErrStorageRootMismatch is reported when no node of a proof hashes to
	// the trusted storage root, making the partial trie unanchored.
	ErrStorageRootMismatch = common.ConstError("no proof node matches the storage root")

	// ErrStorageValueUnavailable is reported by reads that require a trie
	// node the proof does not contain. The proof is insufficient for the
	// requested key; it neither proves presence nor absence.
	ErrStorageValueUnavailable = common.ConstError("proof insufficient to resolve value")

	// ErrDuplicateNodes is reported when a raw proof contains byte-identical
	// node entries.
	ErrDuplicateNodes = common.ConstError("proof contains duplicate nodes")

	// ErrAlreadyFinalized is reported when a one-shot completeness audit is
	// invoked a second time.
	ErrAlreadyFinalized = common.ConstError("audit already performed")
)
