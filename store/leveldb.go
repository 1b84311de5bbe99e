// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package store

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelDb is a Store backed by a LevelDB instance. LevelDB iterates keys in
// ascending order natively, which makes the ForEach contract free.
type LevelDb struct {
	db *leveldb.DB
}

// OpenLevelDb opens (or creates) the LevelDB database in the given
// directory.
func OpenLevelDb(path string) (*LevelDb, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, err
	}
	return &LevelDb{db: db}, nil
}

func (l *LevelDb) Get(key []byte) ([]byte, bool, error) {
	value, err := l.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (l *LevelDb) Put(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *LevelDb) ForEach(op func(key, value []byte) error) error {
	iter := l.db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		if err := op(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Close flushes and closes the underlying database.
func (l *LevelDb) Close() error {
	return l.db.Close()
}
