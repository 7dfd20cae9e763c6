package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"ouroverse/internal/app/ports"
	"ouroverse/internal/domain/serpent"
)

// Store keeps the run snapshot in process, for DSN-less dev and tests. The
// snapshot passes through its JSON payload so the store never aliases live
// session state.
type Store struct {
	mu      sync.RWMutex
	payload []byte
	savedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) (*serpent.RunState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.payload == nil {
		return nil, ports.ErrNotFound
	}
	var state serpent.RunState
	if err := sonic.Unmarshal(s.payload, &state); err != nil {
		return nil, ports.ErrNotFound
	}
	return &state, nil
}

func (s *Store) Save(_ context.Context, state *serpent.RunState, savedAt time.Time) error {
	payload, err := sonic.Marshal(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = payload
	s.savedAt = savedAt
	return nil
}

func (s *Store) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = nil
	return nil
}

// SavedAt reports when the snapshot was last written, zero when empty.
func (s *Store) SavedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savedAt
}

// MetaStore keeps the singleton meta record in process.
type MetaStore struct {
	mu   sync.Mutex
	meta ports.MetaRecord
}

func NewMetaStore() *MetaStore {
	return &MetaStore{}
}

func (s *MetaStore) Get(_ context.Context) (ports.MetaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta, nil
}

func (s *MetaStore) Save(_ context.Context, record ports.MetaRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = record
	return nil
}
