// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestKeccak256_KnownVectors(t *testing.T) {
	tests := []struct {
		input []byte
		hash  string
	}{
		{[]byte{}, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{[]byte("abc"), "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
	}

	for _, test := range tests {
		hash := Keccak256(test.input)
		if got, want := hex.EncodeToString(hash[:]), test.hash; got != want {
			t.Errorf("invalid hash of %q, got %s, wanted %s", test.input, got, want)
		}
	}
}

func TestKeccak256_MatchesEthereumImplementation(t *testing.T) {
	for i := 0; i < 100; i++ {
		data := make([]byte, i)
		for j := range data {
			data[j] = byte(i + j)
		}
		want := crypto.Keccak256(data)
		got := Keccak256(data)
		if !equalBytes(got[:], want) {
			t.Fatalf("hash mismatch for input of length %d, got %x, wanted %x", i, got, want)
		}
	}
}

func TestKeccak256_IsReusable(t *testing.T) {
	// The pooled hasher state must not leak between calls.
	first := Keccak256([]byte("hello"))
	Keccak256([]byte("some other input"))
	second := Keccak256([]byte("hello"))
	if first != second {
		t.Errorf("hashing is not deterministic, got %v and %v", first, second)
	}
}

func TestHash_FromBytes(t *testing.T) {
	data := make([]byte, 32)
	data[0] = 1
	data[31] = 2
	hash, ok := HashFromBytes(data)
	if !ok {
		t.Fatalf("failed to convert 32-byte slice into hash")
	}
	if hash[0] != 1 || hash[31] != 2 {
		t.Errorf("hash content does not match input, got %v", hash)
	}

	for _, size := range []int{0, 1, 31, 33, 64} {
		if _, ok := HashFromBytes(make([]byte, size)); ok {
			t.Errorf("conversion of %d-byte slice should have been rejected", size)
		}
	}
}

func TestHash_Print(t *testing.T) {
	hash := Hash{0xab}
	if got, want := fmt.Sprintf("%v", hash), "0xab00000000000000000000000000000000000000000000000000000000000000"; got != want {
		t.Errorf("invalid print, got %s, wanted %s", got, want)
	}
}

func TestHash_Compare(t *testing.T) {
	a := Hash{1}
	b := Hash{2}
	if a.Compare(&b) >= 0 {
		t.Errorf("expected %v < %v", a, b)
	}
	if b.Compare(&a) <= 0 {
		t.Errorf("expected %v > %v", b, a)
	}
	if a.Compare(&a) != 0 {
		t.Errorf("expected %v == %v", a, a)
	}
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
