package walletdata

import (
	"errors"

	"github.com/asdine/storm"
	"github.com/asdine/storm/q"
)

// Get returns the entry stored under key. storm.ErrNotFound is returned for
// unknown keys.
func (db *DB) Get(key string) (*Entry, error) {
	entry := new(Entry)
	if err := db.stateDB.One("Key", key, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Entries returns every stored entry.
func (db *DB) Entries() ([]Entry, error) {
	var entries []Entry
	err := db.stateDB.All(&entries)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return nil, err
	}
	return entries, nil
}

// Transfers returns up to limit transfers sent from the address from, newest
// first. limit <= 0 returns all of them.
func (db *DB) Transfers(from string, offset, limit int) ([]TransferRecord, error) {
	query := db.stateDB.Select(q.Eq("From", from)).OrderBy("Timestamp").Reverse()
	if offset > 0 {
		query = query.Skip(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []TransferRecord
	err := query.Find(&records)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return nil, err
	}
	return records, nil
}

// CountTransfers returns the number of transfers sent from the address from.
func (db *DB) CountTransfers(from string) (int, error) {
	return db.stateDB.Select(q.Eq("From", from)).Count(&TransferRecord{})
}
