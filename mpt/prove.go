// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package mpt

import (
	"fmt"
	"sort"

	"github.com/Fantom-foundation/Argus/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ProofSet is a deduplicated collection of encoded trie nodes, addressed by
// the keccak-256 hash of each node's encoding. It is the raw material of a
// storage proof.
type ProofSet struct {
	nodes map[common.Hash][]byte
}

// NewProofSet creates an empty proof set.
func NewProofSet() *ProofSet {
	return &ProofSet{nodes: map[common.Hash][]byte{}}
}

// Add inserts the given encoded node into the set. Nodes already contained
// are silently skipped; the content is copied on insertion.
func (s *ProofSet) Add(encoded []byte) {
	hash := common.Keccak256(encoded)
	if _, exists := s.nodes[hash]; exists {
		return
	}
	s.nodes[hash] = slices.Clone(encoded)
}

// Nodes lists the collected nodes sorted by the hash of their encoding, so
// proofs covering the same node set are byte-identical on the wire.
func (s *ProofSet) Nodes() [][]byte {
	hashes := maps.Keys(s.nodes)
	sort.Slice(hashes, func(i, j int) bool {
		return hashes[i].Compare(&hashes[j]) < 0
	})
	res := make([][]byte, len(hashes))
	for i, hash := range hashes {
		res[i] = s.nodes[hash]
	}
	return res
}

// Prove collects into the given set every hashed node on the path from the
// root towards the given key. The walk ends at the node proving the key's
// value or, for absent keys, at the node proving the divergence, so the
// resulting set supports both presence and absence proofs. Sub-32-byte nodes
// travel embedded in their parents and are never collected individually.
func (t *Trie) Prove(key []byte, set *ProofSet) error {
	if t.root == nil {
		return fmt.Errorf("cannot prove against an empty trie")
	}
	path := KeyToNibblePath(key)
	cur := t.root
	isRoot := true
	for cur != nil {
		if _, ok := cur.(hashNode); ok {
			return fmt.Errorf("unresolved node reference in trie")
		}
		encoded := cur.encode()
		if isRoot || len(encoded) >= 32 {
			set.Add(encoded)
		}
		isRoot = false
		switch n := cur.(type) {
		case *leafNode:
			return nil
		case *extensionNode:
			if !IsPrefixOf(n.path, path) {
				return nil
			}
			path = path[len(n.path):]
			cur = n.next
		case *branchNode:
			if len(path) == 0 {
				return nil
			}
			cur = n.children[path[0]]
			path = path[1:]
		}
	}
	return nil
}
