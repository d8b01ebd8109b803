package walletdata

import (
	"errors"
	"fmt"
	"time"

	"github.com/asdine/storm"
)

// Put stores value under key, replacing any previous value.
func (db *DB) Put(key, value string, sealed bool) error {
	return db.stateDB.Save(&Entry{
		Key:       key,
		Value:     value,
		Sealed:    sealed,
		UpdatedAt: time.Now().Unix(),
	})
}

// PutAll stores every entry in a single transaction.
func (db *DB) PutAll(entries []Entry) error {
	tx, err := db.stateDB.Begin(true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for i := range entries {
		entry := entries[i]
		entry.UpdatedAt = now
		if err := tx.Save(&entry); err != nil {
			return fmt.Errorf("save %q: %w", entry.Key, err)
		}
	}
	return tx.Commit()
}

// Delete removes key. Deleting an unknown key is not an error.
func (db *DB) Delete(key string) error {
	err := db.stateDB.DeleteStruct(&Entry{Key: key})
	if errors.Is(err, storm.ErrNotFound) {
		return nil
	}
	return err
}

// SaveTransfer records a submitted transfer. Records with the hash of an
// existing record are rejected with storm.ErrAlreadyExists.
func (db *DB) SaveTransfer(record *TransferRecord) error {
	if record.Timestamp == 0 {
		record.Timestamp = time.Now().Unix()
	}
	return db.stateDB.Save(record)
}
