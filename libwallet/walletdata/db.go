package walletdata

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/asdine/storm"
	bolt "go.etcd.io/bbolt"
)

const (
	DbName = "appstate.db"

	MetaBucketName = "Meta"
	KeyDbVersion   = "DbVersion"

	// DbVersion is bumped whenever the layout of Entry or TransferRecord
	// changes. A database with another version is reset on open.
	DbVersion uint32 = 1

	// lockTimeout bounds the wait for the file lock held by another
	// process.
	lockTimeout = 2 * time.Second
)

// ErrInUse is returned when another process holds the database lock.
var ErrInUse = errors.New("app state database is in use by another process")

type DB struct {
	stateDB *storm.DB
	Close   func() error
}

// Initialize opens the existing storm db at `dbPath`
// and checks the database version for compatibility.
// If there is a version mismatch or the db does not exist at `dbPath`,
// a new db is created and the current db version number saved to the db.
func Initialize(dbPath string, opts ...func(*storm.Options) error) (*DB, error) {
	stateDB, err := openOrCreateDB(dbPath, opts...)
	if err != nil {
		return nil, err
	}

	if err = ensureDatabaseVersion(stateDB); err != nil {
		stateDB.Close()
		return nil, err
	}

	for _, bucket := range []interface{}{&Entry{}, &TransferRecord{}} {
		if err = stateDB.Init(bucket); err != nil {
			stateDB.Close()
			return nil, fmt.Errorf("error initializing app state bucket: %w", err)
		}
	}

	log.Debugf("Opened app state database at %s", dbPath)
	return &DB{
		stateDB: stateDB,
		Close:   stateDB.Close,
	}, nil
}

func openOrCreateDB(dbPath string, opts ...func(*storm.Options) error) (*storm.DB, error) {
	var isNewDbFile bool

	// first check if db file exists at dbPath, if not we'll need to create it and set the db version
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			isNewDbFile = true
		} else {
			return nil, fmt.Errorf("error checking app state database file: %w", err)
		}
	}

	if len(opts) == 0 {
		opts = append(opts, storm.BoltOptions(0600, &bolt.Options{Timeout: lockTimeout}))
	}
	stateDB, err := storm.Open(dbPath, opts...)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			// timeout error occurs if storm fails to acquire a lock on the database file
			return nil, fmt.Errorf("%w: %v", ErrInUse, err)
		}
		return nil, fmt.Errorf("error opening app state database: %w", err)
	}

	if isNewDbFile {
		err = stateDB.Set(MetaBucketName, KeyDbVersion, DbVersion)
		if err != nil {
			stateDB.Close()
			os.RemoveAll(dbPath)
			return nil, fmt.Errorf("error initializing app state db: %w", err)
		}
	}

	return stateDB, nil
}

// ensureDatabaseVersion checks the version of the existing db against
// DbVersion and drops the stored records if they differ.
func ensureDatabaseVersion(stateDB *storm.DB) error {
	var currentDbVersion uint32
	err := stateDB.Get(MetaBucketName, KeyDbVersion, &currentDbVersion)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return fmt.Errorf("error checking app state database version: %w", err)
	}
	if currentDbVersion == DbVersion {
		return nil
	}

	log.Infof("Resetting app state database from version %d to %d", currentDbVersion, DbVersion)
	for _, bucket := range []interface{}{&Entry{}, &TransferRecord{}} {
		if err = stateDB.Drop(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("error deleting outdated app state database: %w", err)
		}
	}
	if err = stateDB.Set(MetaBucketName, KeyDbVersion, DbVersion); err != nil {
		return fmt.Errorf("error updating app state db version: %w", err)
	}
	return nil
}
