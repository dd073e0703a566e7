// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package store persists wardrobe records in BadgerDB. Records are
// JSON-encoded under per-user key prefixes, so listing a user's items is
// a single prefix scan. The compute packages never touch this store
// directly; they receive snapshots fetched by the caller.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/garderobe/garderobe/internal/wardrobe"
)

// Key prefixes for BadgerDB storage.
const (
	itemKeyPrefix    = "item:"
	outfitKeyPrefix  = "outfit:"
	profileKeyPrefix = "profile:"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is a BadgerDB-backed wardrobe store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store at path. An empty path opens an
// in-memory store, used by tests and ephemeral deployments.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func itemKey(userID, itemID string) []byte {
	return []byte(itemKeyPrefix + userID + ":" + itemID)
}

func outfitKey(userID, outfitID string) []byte {
	return []byte(outfitKeyPrefix + userID + ":" + outfitID)
}

func profileKey(userID string) []byte {
	return []byte(profileKeyPrefix + userID)
}

// PutItem stores an item, overwriting any previous version. The usage
// counter is clamped on every write so the bound invariant holds no
// matter what the caller passes or how concurrent saves interleave.
func (s *Store) PutItem(ctx context.Context, item *wardrobe.Item) error {
	if item.ID == "" || item.UserID == "" {
		return fmt.Errorf("put item: id and user_id are required")
	}
	item.Usage = item.Usage.Clamp()

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(itemKey(item.UserID, item.ID), data)
	})
}

// GetItem fetches one item. Returns ErrNotFound when absent.
func (s *Store) GetItem(ctx context.Context, userID, itemID string) (*wardrobe.Item, error) {
	var item wardrobe.Item
	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(itemKey(userID, itemID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns all of a user's items, newest first.
func (s *Store) ListItems(ctx context.Context, userID string) ([]wardrobe.Item, error) {
	prefix := []byte(itemKeyPrefix + userID + ":")
	var items []wardrobe.Item

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			var item wardrobe.Item
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return fmt.Errorf("decode item: %w", err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// DeleteItem removes an item. Deleting an absent item is not an error.
func (s *Store) DeleteItem(ctx context.Context, userID, itemID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(itemKey(userID, itemID))
	})
}

// IncrementUsage advances an item's usage counter through the clamped
// ledger semantics and persists the result. The returned counter is the
// post-write state; at-limit items come back unchanged.
func (s *Store) IncrementUsage(ctx context.Context, userID, itemID string) (wardrobe.UsageCounter, error) {
	return s.updateUsage(ctx, userID, itemID, func(c wardrobe.UsageCounter) wardrobe.UsageCounter {
		return c.Increment()
	})
}

// ResetUsage zeroes an item's usage counter and persists the result.
func (s *Store) ResetUsage(ctx context.Context, userID, itemID string) (wardrobe.UsageCounter, error) {
	return s.updateUsage(ctx, userID, itemID, func(c wardrobe.UsageCounter) wardrobe.UsageCounter {
		return c.Reset()
	})
}

// updateUsage applies a counter transition inside a single read-modify-
// write transaction.
func (s *Store) updateUsage(ctx context.Context, userID, itemID string, apply func(wardrobe.UsageCounter) wardrobe.UsageCounter) (wardrobe.UsageCounter, error) {
	var updated wardrobe.UsageCounter
	err := s.db.Update(func(txn *badger.Txn) error {
		entry, err := txn.Get(itemKey(userID, itemID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}

		var item wardrobe.Item
		if err := entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		}); err != nil {
			return fmt.Errorf("decode item: %w", err)
		}

		item.Usage = apply(item.Usage.Clamp())
		updated = item.Usage

		data, err := json.Marshal(&item)
		if err != nil {
			return fmt.Errorf("marshal item: %w", err)
		}
		return txn.Set(itemKey(userID, itemID), data)
	})
	if err != nil {
		return wardrobe.UsageCounter{}, err
	}
	return updated, nil
}

// PutOutfit stores a saved outfit.
func (s *Store) PutOutfit(ctx context.Context, outfit *wardrobe.Outfit) error {
	if outfit.ID == "" || outfit.UserID == "" {
		return fmt.Errorf("put outfit: id and user_id are required")
	}

	data, err := json.Marshal(outfit)
	if err != nil {
		return fmt.Errorf("marshal outfit: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(outfitKey(outfit.UserID, outfit.ID), data)
	})
}

// ListOutfits returns all of a user's saved outfits, newest first.
func (s *Store) ListOutfits(ctx context.Context, userID string) ([]wardrobe.Outfit, error) {
	prefix := []byte(outfitKeyPrefix + userID + ":")
	var outfits []wardrobe.Outfit

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			var outfit wardrobe.Outfit
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &outfit)
			}); err != nil {
				return fmt.Errorf("decode outfit: %w", err)
			}
			outfits = append(outfits, outfit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(outfits, func(i, j int) bool {
		return outfits[i].CreatedAt.After(outfits[j].CreatedAt)
	})
	return outfits, nil
}

// PutProfile stores a user's style profile.
func (s *Store) PutProfile(ctx context.Context, profile *wardrobe.Profile) error {
	if profile.UserID == "" {
		return fmt.Errorf("put profile: user_id is required")
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(profile.UserID), data)
	})
}

// GetProfile fetches a user's style profile. Returns ErrNotFound when
// the user never saved one.
func (s *Store) GetProfile(ctx context.Context, userID string) (*wardrobe.Profile, error) {
	var profile wardrobe.Profile
	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(profileKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
