package load

import (
	"sort"
	"sync"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/libwallet/walletdata"
)

const (
	// KeyPassword holds the sealed password check.
	KeyPassword = "PWD"
	// KeyPhrase holds the recovery phrase sealed with the user password.
	KeyPhrase = "PHRASE"
)

// sealedKeys are stored encrypted. AppState does not encrypt them itself;
// the flag tells the store and the logs to treat them as secrets.
var sealedKeys = map[string]bool{
	KeyPassword: true,
	KeyPhrase:   true,
}

// StateStore persists AppState entries.
type StateStore interface {
	Entries() ([]walletdata.Entry, error)
	Put(key, value string, sealed bool) error
	PutAll(entries []walletdata.Entry) error
}

// AppState is the string key/value store shared by every activity. Each
// call is atomic on its own; there are no multi-key transactions. Writes go
// through to the store when there is one.
type AppState struct {
	mtx    sync.Mutex
	values map[string]string
	store  StateStore
}

var _ app.State = (*AppState)(nil)

// NewAppState loads every entry of store. A nil store keeps the state in
// memory only.
func NewAppState(store StateStore) (*AppState, error) {
	s := &AppState{
		values: make(map[string]string),
		store:  store,
	}
	if store == nil {
		return s, nil
	}

	entries, err := store.Entries()
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		s.values[entry.Key] = entry.Value
	}
	log.Debugf("Loaded %d app state entries", len(entries))
	return s, nil
}

func (s *AppState) Get(key string) (string, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *AppState) Set(key, value string) {
	s.mtx.Lock()
	s.values[key] = value
	s.mtx.Unlock()

	if s.store == nil {
		return
	}
	if err := s.store.Put(key, value, sealedKeys[key]); err != nil {
		// The value stays in memory and is retried by Save on shutdown.
		log.Errorf("Unable to persist app state key %s: %v", key, err)
	}
}

func (s *AppState) Exists(key string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	_, ok := s.values[key]
	return ok
}

// Keys returns the stored keys in sorted order.
func (s *AppState) Keys() []string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes every value to the store in one transaction.
func (s *AppState) Save() error {
	if s.store == nil {
		return nil
	}

	s.mtx.Lock()
	entries := make([]walletdata.Entry, 0, len(s.values))
	for k, v := range s.values {
		entries = append(entries, walletdata.Entry{Key: k, Value: v, Sealed: sealedKeys[k]})
	}
	s.mtx.Unlock()

	return s.store.PutAll(entries)
}
