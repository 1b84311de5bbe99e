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
)

// ErrMissingNode is reported when resolving a value requires a trie node the
// reader cannot provide. It signals an insufficient partial trie, which is
// different from an authenticated absence of the requested key.
const ErrMissingNode = common.ConstError("missing trie node")

// NodeReader provides the encoded nodes of a partial trie, addressed by the
// keccak-256 hash of their encoding. Implementations may record which nodes
// have been requested; ReadValue requests every hashed node it dereferences
// exactly where the walk dereferences it.
type NodeReader interface {
	Node(hash common.Hash) ([]byte, bool)
}

// ReadValue resolves the value stored under the given key in the partial
// trie anchored at the given root. It reports (nil, false, nil) if the
// partial trie proves the key absent, and an error wrapping ErrMissingNode
// if a node required to decide is not available from the reader.
func ReadValue(reader NodeReader, root common.Hash, key []byte) ([]byte, bool, error) {
	cur, err := resolveNode(reader, root)
	if err != nil {
		return nil, false, err
	}
	path := KeyToNibblePath(key)
	for {
		switch n := cur.(type) {
		case *leafNode:
			if isEqualTo(n.path, path) {
				return n.value, true, nil
			}
			return nil, false, nil
		case *extensionNode:
			if !IsPrefixOf(n.path, path) {
				return nil, false, nil
			}
			path = path[len(n.path):]
			cur = n.next
		case *branchNode:
			if len(path) == 0 {
				if len(n.value) > 0 {
					return n.value, true, nil
				}
				return nil, false, nil
			}
			if n.children[path[0]] == nil {
				return nil, false, nil
			}
			cur = n.children[path[0]]
			path = path[1:]
		default:
			return nil, false, fmt.Errorf("%T: unexpected node in partial trie", n)
		}
		if h, ok := cur.(hashNode); ok {
			cur, err = resolveNode(reader, common.Hash(h))
			if err != nil {
				return nil, false, err
			}
		}
	}
}

func resolveNode(reader NodeReader, hash common.Hash) (node, error) {
	encoded, exists := reader.Node(hash)
	if !exists {
		return nil, fmt.Errorf("%w: 0x%x", ErrMissingNode, hash)
	}
	n, err := decodeNode(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid encoding of node 0x%x: %w", hash, err)
	}
	return n, nil
}
