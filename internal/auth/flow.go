package auth

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

// Flow signs browser sessions in and out. Only allow-listed identities stay
// signed in.
type Flow struct {
	guard          *session.Guard
	authenticators map[Provider]Authenticator
}

func NewFlow(guard *session.Guard, authenticators map[Provider]Authenticator) *Flow {
	return &Flow{guard: guard, authenticators: authenticators}
}

// Enabled lists the configured providers in display order.
func (f *Flow) Enabled() []Provider {
	var out []Provider
	for _, p := range Providers {
		if _, ok := f.authenticators[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (f *Flow) Authenticator(p Provider) (Authenticator, bool) {
	a, ok := f.authenticators[p]
	return a, ok
}

// SignIn authenticates credential with provider p and binds the identity to
// sid. A failed authentication leaves the session as it was. An identity that
// is not on the allow-list is signed straight back out.
func (f *Flow) SignIn(ctx context.Context, sid string, p Provider, credential string) (session.State, error) {
	a, ok := f.authenticators[p]
	if !ok {
		return session.State{}, ErrUnknownProvider
	}

	id, err := a.Authenticate(ctx, credential)
	if err != nil {
		logutils.Log.WithFields(logutils.Fields{"provider": p, "error": err}).Warn("sign-in failed")
		return session.State{}, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	st, err := f.guard.SignIn(ctx, sid, *id)
	if err != nil {
		return session.State{}, err
	}

	if !f.guard.IsAdmin(id.Email) {
		logutils.Log.WithFields(logutils.Fields{"provider": p, "email": id.Email}).Warn("non-admin sign-in rejected")
		if err := f.guard.SignOut(ctx, sid); err != nil {
			return session.State{}, fmt.Errorf("sign out non-admin: %w", err)
		}
		return session.State{}, ErrNotAuthorized
	}

	logutils.Log.WithFields(logutils.Fields{"provider": p, "email": id.Email}).Info("admin signed in")
	return st, nil
}

func (f *Flow) SignOut(ctx context.Context, sid string) error {
	return f.guard.SignOut(ctx, sid)
}
