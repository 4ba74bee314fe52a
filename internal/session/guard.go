package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Change is delivered to subscribers on every sign-in or sign-out.
type Change struct {
	SessionID string
	State     State
}

type Listener func(Change)

// Guard tracks who is signed in for each browser session and decides whether
// that identity is an admin. All other components query it; none keep their
// own copy of the current user.
type Guard struct {
	allow AllowList
	store Store

	mu        sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
}

func NewGuard(allow AllowList, store Store) *Guard {
	return &Guard{
		allow:     allow,
		store:     store,
		listeners: make(map[uint64]Listener),
	}
}

// IsAdmin reports allow-list membership of email.
func (g *Guard) IsAdmin(email string) bool {
	return g.allow.Contains(email)
}

// Derive computes the session state for an identity (nil means signed out).
func (g *Guard) Derive(id *Identity) State {
	if id == nil {
		return State{}
	}
	return State{Identity: id, Admin: g.IsAdmin(id.Email)}
}

// Current loads the state of sid. Unknown or expired sessions are signed out.
func (g *Guard) Current(ctx context.Context, sid string) (State, error) {
	if sid == "" {
		return State{}, nil
	}
	rec, err := g.store.Load(ctx, sid)
	if errors.Is(err, ErrSessionNotFound) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}
	return g.Derive(rec.Identity), nil
}

// SignIn records id as the identity of sid and notifies subscribers.
func (g *Guard) SignIn(ctx context.Context, sid string, id Identity) (State, error) {
	if sid == "" {
		return State{}, fmt.Errorf("session id required")
	}
	rec, err := g.load(ctx, sid)
	if err != nil {
		return State{}, err
	}
	rec.Identity = &id
	if err := g.store.Save(ctx, sid, rec); err != nil {
		return State{}, fmt.Errorf("save session: %w", err)
	}

	st := g.Derive(rec.Identity)
	g.publish(Change{SessionID: sid, State: st})
	return st, nil
}

// SignOut clears the identity of sid. Pending notices survive so the user
// still sees why they were signed out; a record with nothing left is deleted.
func (g *Guard) SignOut(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	rec, err := g.load(ctx, sid)
	if err != nil {
		return err
	}
	rec.Identity = nil
	if err := g.persist(ctx, sid, rec); err != nil {
		return err
	}

	g.publish(Change{SessionID: sid, State: State{}})
	return nil
}

// SetNotice queues a one-shot message for the next page the session renders.
func (g *Guard) SetNotice(ctx context.Context, sid, msg string) error {
	if sid == "" {
		return nil
	}
	rec, err := g.load(ctx, sid)
	if err != nil {
		return err
	}
	rec.Notice = msg
	return g.store.Save(ctx, sid, rec)
}

// TakeNotice returns and clears the pending notice of sid.
func (g *Guard) TakeNotice(ctx context.Context, sid string) (string, error) {
	if sid == "" {
		return "", nil
	}
	rec, err := g.store.Load(ctx, sid)
	if errors.Is(err, ErrSessionNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if rec.Notice == "" {
		return "", nil
	}
	msg := rec.Notice
	rec.Notice = ""
	if err := g.persist(ctx, sid, rec); err != nil {
		return "", err
	}
	return msg, nil
}

// Subscribe registers l for every transition. The returned func removes it.
func (g *Guard) Subscribe(l Listener) (cancel func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = l
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

func (g *Guard) publish(c Change) {
	g.mu.RLock()
	ls := make([]Listener, 0, len(g.listeners))
	for _, l := range g.listeners {
		ls = append(ls, l)
	}
	g.mu.RUnlock()

	for _, l := range ls {
		l(c)
	}
}

// persist saves rec, or deletes it once it holds neither identity nor notice.
func (g *Guard) persist(ctx context.Context, sid string, rec *Record) error {
	if rec.Identity == nil && rec.Notice == "" {
		if err := g.store.Delete(ctx, sid); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	}
	if err := g.store.Save(ctx, sid, rec); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (g *Guard) load(ctx context.Context, sid string) (*Record, error) {
	rec, err := g.store.Load(ctx, sid)
	if errors.Is(err, ErrSessionNotFound) {
		return &Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return rec, nil
}
