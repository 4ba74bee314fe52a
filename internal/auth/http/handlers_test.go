package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

const cookieName = "sid"

type stubAuthenticator struct {
	byCredential map[string]string
}

func (s stubAuthenticator) Authenticate(_ context.Context, credential string) (*session.Identity, error) {
	email, ok := s.byCredential[credential]
	if !ok {
		return nil, errors.New("invalid credential")
	}
	return &session.Identity{UID: credential, Email: email}, nil
}

type stubRedirector struct{ stubAuthenticator }

func (stubRedirector) AuthCodeURL(state string) string {
	return "https://provider.example/authorize?state=" + url.QueryEscape(state)
}

type fixture struct {
	router *gin.Engine
	guard  *session.Guard
	states *auth.StateSigner
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)

	guard := session.NewGuard(session.NewAllowList([]string{"admin@example.com"}), session.NewMemoryStore(time.Hour))
	creds := stubAuthenticator{byCredential: map[string]string{
		"admin":   "admin@example.com",
		"visitor": "visitor@example.com",
	}}
	redirect := auth.NewFlow(guard, map[auth.Provider]auth.Authenticator{auth.GitHub: stubRedirector{creds}})
	token := auth.NewFlow(guard, map[auth.Provider]auth.Authenticator{auth.Google: creds})
	states := auth.NewStateSigner("test-secret")

	r := gin.New()
	r.Use(session.Middleware(session.CookieConfig{Name: cookieName, TTL: time.Hour}))
	NewHandler(redirect, token, guard, states).Register(r)

	return &fixture{router: r, guard: guard, states: states}
}

func (f *fixture) do(method, target, body, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) notice(t *testing.T, sid string) string {
	t.Helper()
	msg, err := f.guard.TakeNotice(context.Background(), sid)
	require.NoError(t, err)
	return msg
}

func TestToken_Admin(t *testing.T) {
	f := newFixture()
	sid := session.NewID()

	w := f.do(http.MethodPost, "/auth/google/token", `{"id_token":"admin"}`, sid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin":true`)
	assert.Equal(t, MsgSignedIn, f.notice(t, sid))

	st, err := f.guard.Current(context.Background(), sid)
	require.NoError(t, err)
	assert.True(t, st.Admin)
}

func TestToken_NonAdmin(t *testing.T) {
	f := newFixture()
	sid := session.NewID()

	w := f.do(http.MethodPost, "/auth/google/token", `{"id_token":"visitor"}`, sid)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, MsgNotAdmin, f.notice(t, sid))

	st, err := f.guard.Current(context.Background(), sid)
	require.NoError(t, err)
	assert.False(t, st.SignedIn())
}

func TestToken_Failure(t *testing.T) {
	f := newFixture()
	sid := session.NewID()

	w := f.do(http.MethodPost, "/auth/google/token", `{"id_token":"forged"}`, sid)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, MsgSignInFailed+"invalid credential", f.notice(t, sid))

	w = f.do(http.MethodPost, "/auth/google/token", `{}`, sid)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/auth/github/token", `{"id_token":"admin"}`, sid)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartAndCallback(t *testing.T) {
	f := newFixture()
	sid := session.NewID()

	w := f.do(http.MethodGet, "/auth/github/start", "", sid)
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	w = f.do(http.MethodGet, "/auth/github/callback?code=admin&state="+url.QueryEscape(state), "", sid)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, MsgSignedIn, f.notice(t, sid))
}

func TestCallback_RejectsForeignState(t *testing.T) {
	f := newFixture()
	state, err := f.states.Issue("someone-else", auth.GitHub)
	require.NoError(t, err)

	sid := session.NewID()
	w := f.do(http.MethodGet, "/auth/github/callback?code=admin&state="+url.QueryEscape(state), "", sid)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.True(t, strings.HasPrefix(f.notice(t, sid), MsgSignInFailed))

	st, err := f.guard.Current(context.Background(), sid)
	require.NoError(t, err)
	assert.False(t, st.SignedIn())
}

func TestCallback_ProviderError(t *testing.T) {
	f := newFixture()
	sid := session.NewID()

	w := f.do(http.MethodGet, "/auth/github/callback?error=access_denied", "", sid)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, MsgSignInFailed+"access_denied", f.notice(t, sid))
}

func TestStart_UnknownProvider(t *testing.T) {
	f := newFixture()
	sid := session.NewID()

	w := f.do(http.MethodGet, "/auth/google/start", "", sid)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSignOut(t *testing.T) {
	f := newFixture()
	sid := session.NewID()
	_, err := f.guard.SignIn(context.Background(), sid, session.Identity{Email: "admin@example.com"})
	require.NoError(t, err)

	w := f.do(http.MethodPost, "/auth/signout", "", sid)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, MsgSignedOut, f.notice(t, sid))

	st, err := f.guard.Current(context.Background(), sid)
	require.NoError(t, err)
	assert.False(t, st.SignedIn())
}
