// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package entity

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Keys are versioned so a model change can invalidate old entries by bumping it.
const badgerKeyPrefix = "entities:v1:"

// Store persists extracted entity sets across restarts.
type Store interface {
	Get(ctx context.Context, title string) (Set, bool, error)
	Put(ctx context.Context, title string, set Set) error
}

// BadgerStore is a Store backed by BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a store in dir. An empty dir opens an
// in-memory database.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil).WithValueLogFileSize(16 << 20)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger entity store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context, title string) (Set, bool, error) {
	var set Set
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + title))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &set)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get entities for %q: %w", title, err)
	}
	if set == nil {
		set = Set{}
	}
	return set, true, nil
}

// Put implements Store.
func (s *BadgerStore) Put(_ context.Context, title string, set Set) error {
	if set == nil {
		set = Set{}
	}
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal entities: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerKeyPrefix+title), data)
	})
}

// Count returns the number of persisted titles.
func (s *BadgerStore) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// RunGC reclaims value log space. badger.ErrNoRewrite means there was nothing
// to collect and is not reported.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)
