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
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Argus/common"
	"github.com/Fantom-foundation/Argus/mpt"
	"golang.org/x/exp/slices"
)

// ProofChecker is a read-only partial trie reconstructed from the raw nodes
// of a storage proof, anchored at a trusted root. It answers single-key
// reads against the partial trie while recording which nodes each read
// dereferences, so that unused proof content can be detected afterwards.
// Instances assume exclusive access during reads, as reads mutate the
// access-tracking state.
type ProofChecker struct {
	root    common.Hash
	nodes   [][]byte
	index   map[common.Hash]int
	tracker *accessTracker
}

// NewProofChecker loads the given raw proof nodes into a content-addressed
// map keyed by each node's own hash. It reports ErrDuplicateNodes if the
// proof contains byte-identical entries and ErrStorageRootMismatch if no
// node hashes to the given root.
func NewProofChecker(root common.Hash, proof [][]byte) (*ProofChecker, error) {
	nodes := make([][]byte, len(proof))
	index := make(map[common.Hash]int, len(proof))
	for i, encoded := range proof {
		hash := common.Keccak256(encoded)
		if _, exists := index[hash]; exists {
			return nil, fmt.Errorf("%w: node %d", ErrDuplicateNodes, i)
		}
		index[hash] = i
		nodes[i] = slices.Clone(encoded)
	}
	if _, exists := index[root]; !exists {
		return nil, fmt.Errorf("%w: root %v", ErrStorageRootMismatch, root)
	}
	return &ProofChecker{
		root:    root,
		nodes:   nodes,
		index:   index,
		tracker: newAccessTracker(len(proof)),
	}, nil
}

// Node retrieves the proof node with the given hash and marks it accessed.
// It implements mpt.NodeReader for the trie walk.
func (c *ProofChecker) Node(hash common.Hash) ([]byte, bool) {
	index, exists := c.index[hash]
	if !exists {
		return nil, false
	}
	c.tracker.markAccessed(index)
	return c.nodes[index], true
}

// ReadValue resolves the value stored under the given key. It reports
// (nil, false, nil) when the proof authenticates the key as absent, and an
// error wrapping ErrStorageValueUnavailable when the proof lacks the nodes
// to decide either way.
func (c *ProofChecker) ReadValue(key []byte) ([]byte, bool, error) {
	value, exists, err := mpt.ReadValue(c, c.root, key)
	if errors.Is(err, mpt.ErrMissingNode) {
		return nil, false, fmt.Errorf("%w: key 0x%x", ErrStorageValueUnavailable, key)
	}
	if err != nil {
		return nil, false, err
	}
	return value, exists, nil
}

// EnsureNoUnusedNodes checks that every proof node was dereferenced by at
// least one read since the checker was constructed. The check is one-shot;
// a second call reports ErrAlreadyFinalized.
func (c *ProofChecker) EnsureNoUnusedNodes() error {
	return c.tracker.ensureNoUnused()
}

// Decoder deserializes raw value bytes into a typed value. Decoders must
// reject trailing or truncated input, as proofs authenticate exact bytes.
type Decoder[T any] func([]byte) (T, error)

// ReadAndDecode resolves the value stored under the given key and decodes
// it. Authenticated absence is reported as (zero, false, nil); a present
// value failing to decode is an error wrapping ErrDecode, which indicates a
// real data problem rather than absence.
func ReadAndDecode[T any](c *ProofChecker, key []byte, decode Decoder[T]) (T, bool, error) {
	var zero T
	value, exists, err := c.ReadValue(key)
	if err != nil || !exists {
		return zero, false, err
	}
	res, err := decode(value)
	if err != nil {
		return zero, false, fmt.Errorf("%w: key 0x%x: %v", ErrDecode, key, err)
	}
	return res, true, nil
}
