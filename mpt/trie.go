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

	"github.com/Fantom-foundation/Argus/common"
	"github.com/Fantom-foundation/Argus/mpt/rlp"
	"golang.org/x/exp/slices"
)

// EmptyTrieHash is the root hash of a trie without any content, the
// keccak-256 hash of the encoding of an empty string.
var EmptyTrieHash = common.Keccak256(rlp.Encode(rlp.String{}))

// Trie is an in-memory Merkle-Patricia trie over byte-string keys and
// values. It is the prover-side structure: built from a full snapshot of a
// backing store, hashed once, and consulted to derive storage proofs.
// Instances are not safe for concurrent use.
type Trie struct {
	root node
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{}
}

// Set stores the given value under the given key. Values are copied on
// insertion. Empty values are ignored, as the trie cannot distinguish an
// empty value from an absent key.
func (t *Trie) Set(key, value []byte) {
	if len(value) == 0 {
		return
	}
	t.root = insert(t.root, KeyToNibblePath(key), slices.Clone(value))
}

// Get retrieves the value stored under the given key, if present.
func (t *Trie) Get(key []byte) ([]byte, bool) {
	path := KeyToNibblePath(key)
	cur := t.root
	for {
		switch n := cur.(type) {
		case nil:
			return nil, false
		case *leafNode:
			if isEqualTo(n.path, path) {
				return n.value, true
			}
			return nil, false
		case *extensionNode:
			if !IsPrefixOf(n.path, path) {
				return nil, false
			}
			path = path[len(n.path):]
			cur = n.next
		case *branchNode:
			if len(path) == 0 {
				if len(n.value) > 0 {
					return n.value, true
				}
				return nil, false
			}
			cur = n.children[path[0]]
			path = path[1:]
		default:
			panic(fmt.Sprintf("%T: unexpected node in trie", n))
		}
	}
}

// Hash computes the root hash committing to the full content of the trie.
func (t *Trie) Hash() common.Hash {
	if t.root == nil {
		return EmptyTrieHash
	}
	return hashNodeEncoding(t.root)
}

func insert(n node, path []Nibble, value []byte) node {
	switch n := n.(type) {
	case nil:
		return &leafNode{path: path, value: value}

	case *leafNode:
		prefix := GetCommonPrefixLength(n.path, path)
		if prefix == len(n.path) && prefix == len(path) {
			n.value = value
			return n
		}
		branch := &branchNode{}
		if prefix == len(n.path) {
			branch.value = n.value
		} else {
			branch.children[n.path[prefix]] = &leafNode{path: n.path[prefix+1:], value: n.value}
		}
		if prefix == len(path) {
			branch.value = value
		} else {
			branch.children[path[prefix]] = &leafNode{path: path[prefix+1:], value: value}
		}
		if prefix > 0 {
			return &extensionNode{path: path[:prefix], next: branch}
		}
		return branch

	case *extensionNode:
		prefix := GetCommonPrefixLength(n.path, path)
		if prefix == len(n.path) {
			n.next = insert(n.next, path[prefix:], value)
			return n
		}
		branch := &branchNode{}
		if prefix+1 == len(n.path) {
			branch.children[n.path[prefix]] = n.next
		} else {
			branch.children[n.path[prefix]] = &extensionNode{path: n.path[prefix+1:], next: n.next}
		}
		if prefix == len(path) {
			branch.value = value
		} else {
			branch.children[path[prefix]] = &leafNode{path: path[prefix+1:], value: value}
		}
		if prefix > 0 {
			return &extensionNode{path: path[:prefix], next: branch}
		}
		return branch

	case *branchNode:
		if len(path) == 0 {
			n.value = value
			return n
		}
		n.children[path[0]] = insert(n.children[path[0]], path[1:], value)
		return n

	default:
		panic(fmt.Sprintf("%T: unexpected node in trie construction", n))
	}
}
