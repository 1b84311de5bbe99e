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
	"bytes"
	"testing"
)

func TestPartialPathEncoding_KnownVectors(t *testing.T) {
	// see https://ethereum.org/en/developers/docs/data-structures-and-encoding/patricia-merkle-trie
	tests := []struct {
		path         []Nibble
		targetsValue bool
		encoded      []byte
	}{
		{[]Nibble{1, 2, 3, 4, 5}, false, []byte{0x11, 0x23, 0x45}},
		{[]Nibble{0, 1, 2, 3, 4, 5}, false, []byte{0x00, 0x01, 0x23, 0x45}},
		{[]Nibble{0, 0xf, 1, 0xc, 0xb, 8}, true, []byte{0x20, 0x0f, 0x1c, 0xb8}},
		{[]Nibble{0xf, 1, 0xc, 0xb, 8}, true, []byte{0x3f, 0x1c, 0xb8}},
		{[]Nibble{}, false, []byte{0x00}},
		{[]Nibble{}, true, []byte{0x20}},
	}

	for _, test := range tests {
		if got, want := encodePartialPath(test.path, test.targetsValue), test.encoded; !bytes.Equal(got, want) {
			t.Errorf("invalid encoding of %v (targetsValue=%t), got %x, wanted %x", test.path, test.targetsValue, got, want)
		}
	}
}

func TestPartialPathEncoding_RoundTrips(t *testing.T) {
	paths := [][]Nibble{
		{},
		{5},
		{1, 2},
		{1, 2, 3},
		KeyToNibblePath([]byte("dogglesworth")),
	}
	for _, path := range paths {
		for _, targetsValue := range []bool{false, true} {
			restored, gotTarget, err := decodePartialPath(encodePartialPath(path, targetsValue))
			if err != nil {
				t.Fatalf("failed to decode encoding of %v: %v", path, err)
			}
			if !isEqualTo(restored, path) {
				t.Errorf("invalid round trip of %v, got %v", path, restored)
			}
			if gotTarget != targetsValue {
				t.Errorf("lost value-target flag for %v", path)
			}
		}
	}
}

func TestPartialPathDecoding_RejectsMalformedInput(t *testing.T) {
	tests := map[string][]byte{
		"empty input":             {},
		"invalid header flags":    {0x40},
		"non-canonical even path": {0x05},
		"non-canonical even leaf": {0x2a, 0x12},
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if path, _, err := decodePartialPath(input); err == nil {
				t.Errorf("decoding of %x should have failed, got %v", input, path)
			}
		})
	}
}
