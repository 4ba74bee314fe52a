package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/GoSim-25-26J-441/portfolio/config"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

// InitializeFirebase initializes the Firebase Admin SDK app shared by the
// Auth and Firestore clients.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*firebase.App, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, appCfg, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	return app, nil
}

// TokenVerifier is the part of the Firebase Auth client used here.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseAuthenticator accepts ID tokens minted by the Firebase client SDK
// after its sign-in popup, and only those issued through its provider.
type FirebaseAuthenticator struct {
	verifier TokenVerifier
	provider Provider
}

func NewFirebaseAuthenticator(verifier TokenVerifier, provider Provider) *FirebaseAuthenticator {
	return &FirebaseAuthenticator{verifier: verifier, provider: provider}
}

func (a *FirebaseAuthenticator) Authenticate(ctx context.Context, idToken string) (*session.Identity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, errors.New("missing id token")
	}

	tok, err := a.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	if got := tok.Firebase.SignInProvider; got != a.provider.FirebaseID() {
		return nil, fmt.Errorf("token issued by %q, expected %q", got, a.provider.FirebaseID())
	}

	email, _ := tok.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("identity has no email")
	}
	name, _ := tok.Claims["name"].(string)

	return &session.Identity{
		UID:         tok.UID,
		Email:       email,
		DisplayName: name,
		Provider:    string(a.provider),
	}, nil
}
