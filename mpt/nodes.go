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
)

// This file defines the node structure of the trie:
//
//   - branchNode ..... an inner node routing on one nibble, with 16 child
//                      references and an optional value for keys ending here
//   - extensionNode .. an inner node covering a shared path fragment of
//                      more than one nibble
//   - leafNode ....... a node storing a value under the unconsumed rest of
//                      its key's path
//   - hashNode ....... a reference to a node that is not materialized in
//                      memory, known only by the hash of its encoding; these
//                      occur in partial tries reconstructed from proofs
//
// The canonical encoding of a node is its RLP serialization as defined by
// Ethereum's Merkle-Patricia trie. A node is referenced from its parent by
// the keccak-256 hash of its encoding, unless the encoding is shorter than
// 32 bytes, in which case the encoding itself is embedded in the parent.

type node interface {
	// encode produces the canonical RLP encoding of this node.
	encode() []byte
}

type branchNode struct {
	children [16]node
	value    []byte
}

type extensionNode struct {
	path []Nibble
	next node
}

type leafNode struct {
	path  []Nibble
	value []byte
}

type hashNode common.Hash

func (n *branchNode) encode() []byte {
	items := make([]rlp.Item, 17)
	for i := 0; i < 16; i++ {
		items[i] = refItem(n.children[i])
	}
	items[16] = rlp.String{Str: n.value}
	return rlp.Encode(rlp.List{Items: items})
}

func (n *extensionNode) encode() []byte {
	return rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.String{Str: encodePartialPath(n.path, false)},
		refItem(n.next),
	}})
}

func (n *leafNode) encode() []byte {
	return rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.String{Str: encodePartialPath(n.path, true)},
		rlp.String{Str: n.value},
	}})
}

func (n hashNode) encode() []byte {
	// A hash reference has no own encoding; it stands for a node that is
	// encoded elsewhere. Parents reference it through refItem.
	panic("hash references cannot be encoded")
}

// refItem produces the RLP item referencing the given node from its parent:
// the keccak-256 hash of the node's encoding, or the encoding itself for
// nodes encoding to less than 32 bytes.
func refItem(n node) rlp.Item {
	if n == nil {
		return rlp.String{}
	}
	if h, ok := n.(hashNode); ok {
		hash := common.Hash(h)
		return rlp.String{Str: hash[:]}
	}
	encoded := n.encode()
	if len(encoded) < 32 {
		return rlp.Encoded{Data: encoded}
	}
	hash := common.Keccak256(encoded)
	return rlp.String{Str: hash[:]}
}

// hashNodeEncoding hashes the canonical encoding of a node. The root of a
// trie is always referenced by hash, independent of its encoded size.
func hashNodeEncoding(n node) common.Hash {
	return common.Keccak256(n.encode())
}

// decodeNode parses the canonical encoding of a single trie node. Inputs not
// forming a valid node encoding are rejected; embedded children are decoded
// recursively.
func decodeNode(encoded []byte) (node, error) {
	item, err := rlp.Decode(encoded)
	if err != nil {
		return nil, err
	}
	list, ok := item.(rlp.List)
	if !ok {
		return nil, fmt.Errorf("node encoding is not a list")
	}
	switch len(list.Items) {
	case 2:
		return decodeShortNode(list)
	case 17:
		return decodeBranchNode(list)
	default:
		return nil, fmt.Errorf("invalid number of node items: %d", len(list.Items))
	}
}

// decodeShortNode decodes a two-item node into a leaf or an extension,
// depending on the targets-value flag of its partial path.
func decodeShortNode(list rlp.List) (node, error) {
	pathItem, ok := list.Items[0].(rlp.String)
	if !ok {
		return nil, fmt.Errorf("partial path is not a byte string")
	}
	path, targetsValue, err := decodePartialPath(pathItem.Str)
	if err != nil {
		return nil, err
	}
	if targetsValue {
		valueItem, ok := list.Items[1].(rlp.String)
		if !ok {
			return nil, fmt.Errorf("leaf value is not a byte string")
		}
		return &leafNode{path: path, value: valueItem.Str}, nil
	}
	if len(path) == 0 {
		// An empty extension path would allow crafted proofs to form cycles
		// that never consume the key; canonical encodings never contain it.
		return nil, fmt.Errorf("extension node with empty partial path")
	}
	next, err := decodeRef(list.Items[1])
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, fmt.Errorf("extension node with empty successor")
	}
	return &extensionNode{path: path, next: next}, nil
}

func decodeBranchNode(list rlp.List) (node, error) {
	res := &branchNode{}
	for i := 0; i < 16; i++ {
		child, err := decodeRef(list.Items[i])
		if err != nil {
			return nil, err
		}
		res.children[i] = child
	}
	valueItem, ok := list.Items[16].(rlp.String)
	if !ok {
		return nil, fmt.Errorf("branch value is not a byte string")
	}
	if len(valueItem.Str) > 0 {
		res.value = valueItem.Str
	}
	return res, nil
}

// decodeRef decodes a child reference: an empty string for a missing child,
// a 32-byte string for a hash reference, or a nested list for an embedded
// sub-32-byte node.
func decodeRef(item rlp.Item) (node, error) {
	switch ref := item.(type) {
	case rlp.String:
		if len(ref.Str) == 0 {
			return nil, nil
		}
		if hash, ok := common.HashFromBytes(ref.Str); ok {
			return hashNode(hash), nil
		}
		return nil, fmt.Errorf("invalid node reference of %d bytes", len(ref.Str))
	case rlp.List:
		embedded := rlp.Encode(item)
		if len(embedded) >= 32 {
			return nil, fmt.Errorf("embedded node of %d bytes exceeds embedding limit", len(embedded))
		}
		return decodeNode(embedded)
	default:
		return nil, fmt.Errorf("unsupported node reference type: %T", item)
	}
}
