package session

import (
	"context"
	"sync"
	"time"
)

// Store persists session records keyed by session id.
type Store interface {
	Load(ctx context.Context, sid string) (*Record, error)
	Save(ctx context.Context, sid string, rec *Record) error
	Delete(ctx context.Context, sid string) error
}

type memEntry struct {
	rec       Record
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Expired entries are invisible to Load
// and removed by Purge.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memEntry),
	}
}

func (m *MemoryStore) Load(_ context.Context, sid string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[sid]
	if !ok || !m.now().Before(e.expiresAt) {
		return nil, ErrSessionNotFound
	}
	rec := e.rec
	if rec.Identity != nil {
		id := *rec.Identity
		rec.Identity = &id
	}
	return &rec, nil
}

func (m *MemoryStore) Save(_ context.Context, sid string, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *rec
	if rec.Identity != nil {
		id := *rec.Identity
		cp.Identity = &id
	}
	m.entries[sid] = memEntry{rec: cp, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, sid)
	return nil
}

// Purge drops expired sessions and reports how many were removed.
func (m *MemoryStore) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for sid, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, sid)
			n++
		}
	}
	return n
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
