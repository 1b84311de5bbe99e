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
	"fmt"

	"github.com/Fantom-foundation/Argus/mpt/rlp"
)

// The wire format of a claim is a deterministic RLP structure:
//
//	claim  := [ [node, ...], [entry, ...] ]
//	node   := bytes
//	entry  := [ key, option ]
//	option := []           -- claimed absence
//	        | [ value ]    -- claimed presence
//
// The one-element-list option keeps "absent" distinguishable from "present
// with empty value" so that encoding and decoding round-trip exactly.

// EncodeClaim serializes the given claim into its wire representation.
func EncodeClaim(claim UnverifiedClaim) []byte {
	nodes := make([]rlp.Item, len(claim.Proof))
	for i, node := range claim.Proof {
		nodes[i] = rlp.String{Str: node}
	}
	entries := make([]rlp.Item, len(claim.Entries))
	for i, entry := range claim.Entries {
		option := rlp.List{}
		if entry.Value != nil {
			option.Items = []rlp.Item{rlp.String{Str: entry.Value}}
		}
		entries[i] = rlp.List{Items: []rlp.Item{
			rlp.String{Str: entry.Key},
			option,
		}}
	}
	return rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.List{Items: nodes},
		rlp.List{Items: entries},
	}})
}

// DecodeClaim parses a wire representation produced by EncodeClaim. Inputs
// deviating from the documented shape are rejected wrapping ErrDecode. The
// resulting claim is untrusted and must still pass Verify.
func DecodeClaim(data []byte) (UnverifiedClaim, error) {
	item, err := rlp.Decode(data)
	if err != nil {
		return UnverifiedClaim{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	top, ok := item.(rlp.List)
	if !ok || len(top.Items) != 2 {
		return UnverifiedClaim{}, fmt.Errorf("%w: claim is not a two-item list", ErrDecode)
	}
	nodeList, ok := top.Items[0].(rlp.List)
	if !ok {
		return UnverifiedClaim{}, fmt.Errorf("%w: proof is not a list", ErrDecode)
	}
	entryList, ok := top.Items[1].(rlp.List)
	if !ok {
		return UnverifiedClaim{}, fmt.Errorf("%w: entries are not a list", ErrDecode)
	}

	var claim UnverifiedClaim
	if len(nodeList.Items) > 0 {
		claim.Proof = make([][]byte, len(nodeList.Items))
	}
	for i, item := range nodeList.Items {
		node, ok := item.(rlp.String)
		if !ok {
			return UnverifiedClaim{}, fmt.Errorf("%w: proof node %d is not a byte string", ErrDecode, i)
		}
		claim.Proof[i] = node.Str
	}
	if len(entryList.Items) > 0 {
		claim.Entries = make([]ClaimEntry, len(entryList.Items))
	}
	for i, item := range entryList.Items {
		entry, err := decodeEntry(item)
		if err != nil {
			return UnverifiedClaim{}, fmt.Errorf("%w: entry %d: %v", ErrDecode, i, err)
		}
		claim.Entries[i] = entry
	}
	return claim, nil
}

func decodeEntry(item rlp.Item) (ClaimEntry, error) {
	list, ok := item.(rlp.List)
	if !ok || len(list.Items) != 2 {
		return ClaimEntry{}, fmt.Errorf("not a two-item list")
	}
	key, ok := list.Items[0].(rlp.String)
	if !ok {
		return ClaimEntry{}, fmt.Errorf("key is not a byte string")
	}
	option, ok := list.Items[1].(rlp.List)
	if !ok || len(option.Items) > 1 {
		return ClaimEntry{}, fmt.Errorf("value option is not a list of at most one item")
	}
	entry := ClaimEntry{Key: key.Str}
	if len(option.Items) == 1 {
		value, ok := option.Items[0].(rlp.String)
		if !ok {
			return ClaimEntry{}, fmt.Errorf("value is not a byte string")
		}
		entry.Value = value.Str
		if entry.Value == nil {
			entry.Value = []byte{}
		}
	}
	return entry, nil
}
