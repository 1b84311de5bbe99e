// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package store provides the key/value backing stores a prover derives
// storage proofs from: a plain in-memory store for tests and small data
// sets, and a LevelDB-backed store for serving proofs from a persistent
// database.
package store

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

//go:generate mockgen -source store.go -destination store_mocks.go -package store

// Reader is a read-only view on a key/value store. Proof builders consume a
// Reader snapshot to reconstruct the trie the store commits to.
type Reader interface {
	// Get retrieves the value stored under the given key, if present.
	Get(key []byte) (value []byte, exists bool, err error)

	// ForEach enumerates all key/value pairs in ascending key order. The
	// slices passed to op are only valid during the call; the enumeration
	// stops at the first error returned by op, which is passed through.
	ForEach(op func(key, value []byte) error) error
}

// Store is a mutable key/value store.
type Store interface {
	Reader

	// Put stores the given value under the given key, replacing any
	// previous value.
	Put(key, value []byte) error
}

// Memory is a map-backed Store implementation. The zero value is not
// usable; create instances with NewMemory. Instances are not safe for
// concurrent use.
type Memory struct {
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(key []byte) ([]byte, bool, error) {
	value, exists := m.data[string(key)]
	return value, exists, nil
}

func (m *Memory) Put(key, value []byte) error {
	m.data[string(key)] = slices.Clone(value)
	return nil
}

func (m *Memory) ForEach(op func(key, value []byte) error) error {
	keys := maps.Keys(m.data)
	slices.Sort(keys)
	for _, key := range keys {
		if err := op([]byte(key), m.data[key]); err != nil {
			return err
		}
	}
	return nil
}
