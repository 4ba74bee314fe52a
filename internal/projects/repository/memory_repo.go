package repository

import (
	"cmp"
	"context"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
)

type memItem struct {
	p   domain.Project
	seq uint64
}

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	now   func() time.Time
	seq   uint64
	items map[string]memItem
}

// NewMemoryStore uses now as the "server" clock; nil means time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now, items: make(map[string]memItem)}
}

func (m *MemoryStore) List(_ context.Context) iter.Seq2[domain.Project, error] {
	return oneShot(func(yield func(domain.Project, error) bool) {
		m.mu.RLock()
		snap := make([]memItem, 0, len(m.items))
		for _, it := range m.items {
			snap = append(snap, it)
		}
		m.mu.RUnlock()

		// equal ordem values keep creation order
		slices.SortFunc(snap, func(a, b memItem) int {
			if c := cmp.Compare(a.p.Order, b.p.Order); c != 0 {
				return c
			}
			return cmp.Compare(a.seq, b.seq)
		})

		for _, it := range snap {
			if !yield(clone(it.p), nil) {
				return
			}
		}
	})
}

func (m *MemoryStore) Get(_ context.Context, id string) (*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := clone(it.p)
	return &p, nil
}

func (m *MemoryStore) Create(_ context.Context, in domain.ProjectInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	p := fromInput(uuid.NewString(), in)
	p.CreatedAt = now
	p.UpdatedAt = now

	m.seq++
	m.items[p.ID] = memItem{p: p, seq: m.seq}
	return p.ID, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, in domain.ProjectInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	p := fromInput(id, in)
	p.CreatedAt = it.p.CreatedAt
	p.UpdatedAt = m.now()

	it.p = p
	m.items[id] = it
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, id)
	return nil
}

func fromInput(id string, in domain.ProjectInput) domain.Project {
	return domain.Project{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		Order:        in.Order,
		Link:         in.Link,
		Icon:         in.Icon,
		Color:        in.Color,
		Technologies: append([]string(nil), in.Technologies...),
	}
}

func clone(p domain.Project) domain.Project {
	p.Technologies = append([]string(nil), p.Technologies...)
	return p
}
