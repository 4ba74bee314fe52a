package session

import (
	"errors"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Identity is the signed-in user as reported by the identity provider.
// Only Email takes part in authorization decisions.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Provider    string `json:"provider"`
}

// State is the session as seen by the rest of the service.
type State struct {
	Identity *Identity
	Admin    bool
}

func (s State) SignedIn() bool { return s.Identity != nil }

func (s State) Email() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Email
}

// Record is what a Store persists per browser session.
type Record struct {
	Identity *Identity `json:"identity,omitempty"`
	Notice   string    `json:"notice,omitempty"`
}

// NewID returns a fresh opaque session id.
func NewID() string {
	return uuid.NewString()
}
