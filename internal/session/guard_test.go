package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard() *Guard {
	return NewGuard(NewAllowList([]string{"admin@example.com"}), NewMemoryStore(time.Hour))
}

func TestGuard_SignInAndOut(t *testing.T) {
	ctx := context.Background()
	g := newTestGuard()
	sid := NewID()

	st, err := g.Current(ctx, sid)
	require.NoError(t, err)
	assert.False(t, st.SignedIn())
	assert.False(t, st.Admin)

	st, err = g.SignIn(ctx, sid, Identity{UID: "u1", Email: "admin@example.com", Provider: "google"})
	require.NoError(t, err)
	assert.True(t, st.SignedIn())
	assert.True(t, st.Admin)

	st, err = g.Current(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", st.Email())
	assert.True(t, st.Admin)

	require.NoError(t, g.SignOut(ctx, sid))
	st, err = g.Current(ctx, sid)
	require.NoError(t, err)
	assert.False(t, st.SignedIn())
	assert.Equal(t, "", st.Email())
}

func TestGuard_NonAdminIdentity(t *testing.T) {
	ctx := context.Background()
	g := newTestGuard()

	st, err := g.SignIn(ctx, NewID(), Identity{UID: "u2", Email: "visitor@example.com"})
	require.NoError(t, err)
	assert.True(t, st.SignedIn())
	assert.False(t, st.Admin)
}

func TestGuard_EmptySessionID(t *testing.T) {
	ctx := context.Background()
	g := newTestGuard()

	st, err := g.Current(ctx, "")
	require.NoError(t, err)
	assert.False(t, st.SignedIn())

	_, err = g.SignIn(ctx, "", Identity{Email: "admin@example.com"})
	assert.Error(t, err)
	assert.NoError(t, g.SignOut(ctx, ""))
}

func TestGuard_SubscribeReceivesEveryTransition(t *testing.T) {
	ctx := context.Background()
	g := newTestGuard()
	sid := NewID()

	var changes []Change
	cancel := g.Subscribe(func(c Change) { changes = append(changes, c) })

	_, err := g.SignIn(ctx, sid, Identity{Email: "admin@example.com"})
	require.NoError(t, err)
	require.NoError(t, g.SignOut(ctx, sid))

	require.Len(t, changes, 2)
	assert.Equal(t, sid, changes[0].SessionID)
	assert.True(t, changes[0].State.Admin)
	assert.False(t, changes[1].State.SignedIn())

	cancel()
	_, err = g.SignIn(ctx, sid, Identity{Email: "admin@example.com"})
	require.NoError(t, err)
	assert.Len(t, changes, 2)
}

func TestGuard_Notices(t *testing.T) {
	ctx := context.Background()
	g := newTestGuard()
	sid := NewID()

	msg, err := g.TakeNotice(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, msg)

	require.NoError(t, g.SetNotice(ctx, sid, "Você saiu da sua conta."))
	require.NoError(t, g.SignOut(ctx, sid))

	msg, err = g.TakeNotice(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "Você saiu da sua conta.", msg)

	msg, err = g.TakeNotice(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, msg)
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) (*Record, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) Save(context.Context, string, *Record) error { return errors.New("connection refused") }
func (failingStore) Delete(context.Context, string) error        { return errors.New("connection refused") }

func TestGuard_StoreFailure(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(NewAllowList([]string{"admin@example.com"}), failingStore{})

	var notified bool
	g.Subscribe(func(Change) { notified = true })

	_, err := g.Current(ctx, "sid")
	assert.Error(t, err)
	_, err = g.SignIn(ctx, "sid", Identity{Email: "admin@example.com"})
	assert.Error(t, err)
	assert.False(t, notified)
}

func TestGuard_EmptyRecordsAreDeleted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	g := NewGuard(NewAllowList([]string{"admin@example.com"}), store)
	sid := NewID()

	_, err := g.SignIn(ctx, sid, Identity{Email: "admin@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, g.SignOut(ctx, sid))
	assert.Equal(t, 0, store.Len(), "signed out without a notice")

	_, err = g.SignIn(ctx, sid, Identity{Email: "visitor@example.com"})
	require.NoError(t, err)
	require.NoError(t, g.SetNotice(ctx, sid, "bye"))
	require.NoError(t, g.SignOut(ctx, sid))
	assert.Equal(t, 1, store.Len(), "notice keeps the record")

	msg, err := g.TakeNotice(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "bye", msg)
	assert.Equal(t, 0, store.Len())
}
