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
	"github.com/Fantom-foundation/Argus/store"
)

// ProofBuilder derives storage proofs from a snapshot of a backing store.
// It reconstructs the trie the store commits to once, at construction time;
// individual proofs are then collected by walking the trie towards each
// requested key. Different builders may collect different node sets for the
// same keys, all of which verify.
type ProofBuilder struct {
	trie *mpt.Trie
	root common.Hash
}

// NewProofBuilder builds the trie committing to the full content of the
// given store snapshot. Store read failures are reported wrapping
// ErrUnableToGenerateProof.
func NewProofBuilder(source store.Reader) (*ProofBuilder, error) {
	trie := mpt.NewTrie()
	err := source.ForEach(func(key, value []byte) error {
		trie.Set(key, value)
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrUnableToGenerateProof, err)
	}
	return &ProofBuilder{trie: trie, root: trie.Hash()}, nil
}

// Root returns the root hash of the store snapshot this builder proves
// against.
func (b *ProofBuilder) Root() common.Hash {
	return b.root
}

// Build collects a proof sufficient to authenticate the value or absence of
// every given key against Root. The resulting node set is deduplicated and
// listed in deterministic hash order, so equal requests against equal
// snapshots produce byte-identical proofs.
func (b *ProofBuilder) Build(keys [][]byte) ([][]byte, error) {
	set := mpt.NewProofSet()
	for _, key := range keys {
		if err := b.trie.Prove(key, set); err != nil {
			return nil, fmt.Errorf("%w: key 0x%x: %v", ErrUnableToGenerateProof, key, err)
		}
	}
	return set.Nodes(), nil
}
