package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

var (
	ErrUnknownProvider = errors.New("unknown sign-in provider")
	ErrAuthentication  = errors.New("authentication failed")
	ErrNotAuthorized   = errors.New("signed-in user is not an admin")
)

// Provider names an identity provider the site accepts.
type Provider string

const (
	Google Provider = "google"
	GitHub Provider = "github"
)

// Providers lists the supported providers in display order.
var Providers = []Provider{Google, GitHub}

func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case Google, GitHub:
		return p, nil
	}
	return "", ErrUnknownProvider
}

// FirebaseID is the sign_in_provider value Firebase puts in ID tokens.
func (p Provider) FirebaseID() string {
	switch p {
	case Google:
		return "google.com"
	case GitHub:
		return "github.com"
	}
	return ""
}

func (p Provider) Label() string {
	switch p {
	case Google:
		return "Google"
	case GitHub:
		return "GitHub"
	}
	return string(p)
}

// Authenticator turns a provider credential (ID token or authorization code)
// into an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (*session.Identity, error)
}

// Redirector is implemented by authenticators that start with a browser
// redirect to the provider.
type Redirector interface {
	AuthCodeURL(state string) string
}
