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

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/Fantom-foundation/Argus/common"
	"github.com/Fantom-foundation/Argus/common/immutable"
	"golang.org/x/exp/slices"
)

// ClaimEntry is a single prover-asserted statement: the value stored under
// Key in the committed state, or, for a nil Value, the assertion that the
// committed state holds nothing under Key. An entry is meaningless until the
// claim carrying it has been verified against a trusted root.
type ClaimEntry struct {
	Key   []byte
	Value []byte
}

// UnverifiedClaim is an untrusted bundle of raw proof nodes and the entries
// they supposedly authenticate, as received from a prover. The only useful
// operation on it is Verify; everything else must wait for the resulting
// VerifiedClaim.
type UnverifiedClaim struct {
	Proof   [][]byte
	Entries []ClaimEntry
}

// BuildClaim assembles a claim for the given keys from a trusted builder:
// it derives the proof, re-reads every key through a fresh checker to
// capture the claimed values, and bundles the entries sorted by key. The
// given root must be the root the builder proves against. This is the
// prover-side constructor; a verifier only ever receives claims off the
// wire and calls Verify.
func BuildClaim(builder *ProofBuilder, root common.Hash, keys [][]byte) (UnverifiedClaim, error) {
	if builder.Root() != root {
		return UnverifiedClaim{}, fmt.Errorf("%w: builder root %v does not match %v",
			ErrUnableToGenerateProof, builder.Root(), root)
	}
	sorted := sortedUniqueKeys(keys)
	if len(sorted) == 0 {
		return UnverifiedClaim{}, nil
	}
	proof, err := builder.Build(sorted)
	if err != nil {
		return UnverifiedClaim{}, err
	}
	checker, err := NewProofChecker(root, proof)
	if err != nil {
		return UnverifiedClaim{}, errors.Join(ErrUnableToGenerateProof, err)
	}
	entries := make([]ClaimEntry, 0, len(sorted))
	for _, key := range sorted {
		value, exists, err := checker.ReadValue(key)
		if err != nil {
			return UnverifiedClaim{}, errors.Join(ErrUnableToGenerateProof, err)
		}
		entry := ClaimEntry{Key: key}
		if exists {
			entry.Value = slices.Clone(value)
		}
		entries = append(entries, entry)
	}
	return UnverifiedClaim{Proof: proof, Entries: entries}, nil
}

// Size is the total payload size of the claim in bytes: the raw proof nodes
// plus the key and value bytes of all entries. It is meant for resource
// accounting, not for wire-format length computation.
func (c UnverifiedClaim) Size() uint32 {
	size := 0
	for _, node := range c.Proof {
		size += len(node)
	}
	for _, entry := range c.Entries {
		size += len(entry.Key) + len(entry.Value)
	}
	return uint32(size)
}

// Verify checks the claim against the trusted root and converts it into a
// VerifiedClaim. Every entry is independently re-derived from the proof and
// compared against the claimed value or absence; proofs carrying duplicate
// nodes or nodes no entry needs are rejected, as are entries that are not
// strictly sorted by unique keys. On any failure no partial result is
// observable. Verification is deterministic: retrying with the same inputs
// can never change the outcome.
func Verify(claim UnverifiedClaim, root common.Hash) (*VerifiedClaim, error) {
	// An empty claim carries no statement and verifies trivially, but only
	// if it also carries no proof material; nothing justifies extra nodes.
	if len(claim.Entries) == 0 && len(claim.Proof) == 0 {
		return &VerifiedClaim{}, nil
	}

	checker, err := NewProofChecker(root, claim.Proof)
	if err != nil {
		return nil, errors.Join(ErrInvalidProof, err)
	}
	for _, entry := range claim.Entries {
		value, exists, err := checker.ReadValue(entry.Key)
		if err != nil {
			return nil, errors.Join(ErrInvalidProof, err)
		}
		if exists != (entry.Value != nil) || !bytes.Equal(value, entry.Value) {
			return nil, fmt.Errorf("%w: claimed value not authenticated for key 0x%x",
				ErrInvalidProof, entry.Key)
		}
	}
	if err := checker.EnsureNoUnusedNodes(); err != nil {
		return nil, errors.Join(ErrInvalidProof, err)
	}

	// The sortedness of the entries is re-checked explicitly, independent
	// of the re-derivation above, which tolerates repeated keys.
	for i := 1; i < len(claim.Entries); i++ {
		if bytes.Compare(claim.Entries[i-1].Key, claim.Entries[i].Key) >= 0 {
			return nil, fmt.Errorf("%w: entry %d out of order", ErrUnsortedEntries, i)
		}
	}

	entries := make([]verifiedEntry, len(claim.Entries))
	for i, entry := range claim.Entries {
		entries[i] = verifiedEntry{
			key:     slices.Clone(entry.Key),
			value:   immutable.NewBytes(entry.Value),
			present: entry.Value != nil,
		}
	}
	return &VerifiedClaim{entries: entries}, nil
}

// verifiedEntry is a single authenticated key/value statement plus the flag
// recording whether any consumer has read it.
type verifiedEntry struct {
	key      []byte
	value    immutable.Bytes
	present  bool
	accessed bool
}

// VerifiedClaim is a trusted, read-only view over authenticated key/value
// statements. Instances are only constructible through Verify. Values are
// never mutated after construction; the only mutable state is the per-entry
// access flag, which moves from unread to read the first time a consumer
// fetches the entry. Instances assume exclusive access during reads.
type VerifiedClaim struct {
	entries []verifiedEntry
}

// Get looks up the entry for the given key and marks it read. It reports
// (nil, false, nil) for keys the claim proves absent and ErrUnavailableKey
// for keys the claim never covered; asking about an uncovered key is a
// lookup miss, not an authenticated absence.
func (c *VerifiedClaim) Get(key []byte) ([]byte, bool, error) {
	index := sort.Search(len(c.entries), func(i int) bool {
		return bytes.Compare(c.entries[i].key, key) >= 0
	})
	if index == len(c.entries) || !bytes.Equal(c.entries[index].key, key) {
		return nil, false, fmt.Errorf("%w: 0x%x", ErrUnavailableKey, key)
	}
	entry := &c.entries[index]
	entry.accessed = true
	if !entry.present {
		return nil, false, nil
	}
	return entry.value.ToBytes(), true, nil
}

// EnsureNoUnusedKeys checks that every entry of the claim has been read
// since verification. A caller failing this audit paid for proof data it
// silently discarded.
func (c *VerifiedClaim) EnsureNoUnusedKeys() error {
	for _, entry := range c.entries {
		if !entry.accessed {
			return fmt.Errorf("%w: 0x%x never read", ErrUnusedKey, entry.key)
		}
	}
	return nil
}

// GetAndDecodeMandatory fetches the value for the given key and decodes it,
// requiring the value to be present: absence is ErrEmptyValue, an uncovered
// key is ErrUnavailableKey, and undecodable bytes are ErrDecode.
func GetAndDecodeMandatory[T any](c *VerifiedClaim, key []byte, decode Decoder[T]) (T, error) {
	var zero T
	value, exists, err := c.Get(key)
	if err != nil {
		return zero, err
	}
	if !exists {
		return zero, fmt.Errorf("%w: 0x%x", ErrEmptyValue, key)
	}
	res, err := decode(value)
	if err != nil {
		return zero, fmt.Errorf("%w: key 0x%x: %v", ErrDecode, key, err)
	}
	return res, nil
}

// GetAndDecodeOptional is the lenient variant of GetAndDecodeMandatory: both
// an uncovered key and an authenticated absence fold into (zero, false, nil),
// meaning "no decodable value available". A present value that fails to
// decode remains a hard ErrDecode, as malformed present data indicates a
// real problem rather than absence. Callers needing to distinguish the two
// folded cases should use Get directly.
func GetAndDecodeOptional[T any](c *VerifiedClaim, key []byte, decode Decoder[T]) (T, bool, error) {
	var zero T
	value, exists, err := c.Get(key)
	if errors.Is(err, ErrUnavailableKey) {
		return zero, false, nil
	}
	if err != nil || !exists {
		return zero, false, err
	}
	res, err := decode(value)
	if err != nil {
		return zero, false, fmt.Errorf("%w: key 0x%x: %v", ErrDecode, key, err)
	}
	return res, true, nil
}

// sortedUniqueKeys copies and sorts the given keys, dropping repetitions.
func sortedUniqueKeys(keys [][]byte) [][]byte {
	sorted := make([][]byte, 0, len(keys))
	for _, key := range keys {
		sorted = append(sorted, slices.Clone(key))
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})
	res := sorted[:0]
	for i, key := range sorted {
		if i == 0 || !bytes.Equal(res[len(res)-1], key) {
			res = append(res, key)
		}
	}
	return res
}
