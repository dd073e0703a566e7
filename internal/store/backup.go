// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package store

import (
	"fmt"
	"io"
)

// Backup streams a full backup of the store to w in Badger's backup
// format. Returns the version watermark of the backup, usable as a
// since marker for incremental backups.
func (s *Store) Backup(w io.Writer, since uint64) (uint64, error) {
	version, err := s.db.Backup(w, since)
	if err != nil {
		return 0, fmt.Errorf("backup store: %w", err)
	}
	return version, nil
}

// Restore loads a backup stream into the store. Existing keys present in
// the stream are overwritten; keys absent from the stream are kept.
func (s *Store) Restore(r io.Reader) error {
	if err := s.db.Load(r, 16); err != nil {
		return fmt.Errorf("restore store: %w", err)
	}
	return nil
}
