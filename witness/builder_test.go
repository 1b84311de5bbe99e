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
	"testing"

	"github.com/Fantom-foundation/Argus/mpt"
	"github.com/Fantom-foundation/Argus/store"
	"go.uber.org/mock/gomock"
)

func TestProofBuilder_RootMatchesDirectTrieConstruction(t *testing.T) {
	builder := newTestBuilder(t)

	trie := mpt.NewTrie()
	if err := newTestStore(t).ForEach(func(key, value []byte) error {
		trie.Set(key, value)
		return nil
	}); err != nil {
		t.Fatalf("failed to enumerate store: %v", err)
	}
	if got, want := builder.Root(), trie.Hash(); got != want {
		t.Errorf("invalid root, got %v, wanted %v", got, want)
	}
}

func TestProofBuilder_EmptyStoreYieldsEmptyTrieRoot(t *testing.T) {
	builder, err := NewProofBuilder(store.NewMemory())
	if err != nil {
		t.Fatalf("failed to create proof builder: %v", err)
	}
	if got, want := builder.Root(), mpt.EmptyTrieHash; got != want {
		t.Errorf("invalid root for empty store, got %v, wanted %v", got, want)
	}
}

func TestProofBuilder_StoreFailuresAreForwarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	injected := fmt.Errorf("injected error")
	source := store.NewMockReader(ctrl)
	source.EXPECT().ForEach(gomock.Any()).Return(injected)

	if _, err := NewProofBuilder(source); !errors.Is(err, ErrUnableToGenerateProof) || !errors.Is(err, injected) {
		t.Errorf("expected store failure to be forwarded, got %v", err)
	}
}

func TestProofBuilder_ProvingAgainstEmptyStoreFails(t *testing.T) {
	builder, err := NewProofBuilder(store.NewMemory())
	if err != nil {
		t.Fatalf("failed to create proof builder: %v", err)
	}
	if _, err := builder.Build([][]byte{[]byte("key")}); !errors.Is(err, ErrUnableToGenerateProof) {
		t.Errorf("expected proof generation to fail, got %v", err)
	}
}

func TestProofBuilder_ProofsAreDeterministic(t *testing.T) {
	builder := newTestBuilder(t)
	first, err := builder.Build([][]byte{[]byte("key1"), []byte("key2"), []byte("key22")})
	if err != nil {
		t.Fatalf("failed to build proof: %v", err)
	}
	second, err := builder.Build([][]byte{[]byte("key22"), []byte("key2"), []byte("key1")})
	if err != nil {
		t.Fatalf("failed to build proof: %v", err)
	}
	if got, want := len(first), len(second); got != want {
		t.Fatalf("proofs differ in length, got %d and %d", got, want)
	}
	for i := range first {
		if !bytes.Equal(first[i], second[i]) {
			t.Errorf("proofs differ at node %d, got %x and %x", i, first[i], second[i])
		}
	}
}

func TestProofBuilder_ProofsForOverlappingKeysAreDeduplicated(t *testing.T) {
	builder := newTestBuilder(t)
	single, err := builder.Build([][]byte{[]byte("key1")})
	if err != nil {
		t.Fatalf("failed to build proof: %v", err)
	}
	repeated, err := builder.Build([][]byte{[]byte("key1"), []byte("key1"), []byte("key1")})
	if err != nil {
		t.Fatalf("failed to build proof: %v", err)
	}
	if got, want := len(repeated), len(single); got != want {
		t.Errorf("proof nodes are not deduplicated, got %d nodes, wanted %d", got, want)
	}
}
