package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

// Start redirects the browser to the provider's consent screen.
func (h *Handler) Start(c *gin.Context) {
	sid := session.ID(c)
	p, redirector, ok := h.redirector(c.Param("provider"))
	if !ok {
		h.notice(c.Request.Context(), sid, MsgSignInFailed+auth.ErrUnknownProvider.Error())
		c.Redirect(http.StatusFound, "/login")
		return
	}

	state, err := h.states.Issue(sid, p)
	if err != nil {
		logutils.Log.WithField("error", err).Error("issue oauth state")
		h.notice(c.Request.Context(), sid, MsgSignInFailed+err.Error())
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, redirector.AuthCodeURL(state))
}

// Callback finishes the code flow started by Start.
func (h *Handler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	sid := session.ID(c)

	p, _, ok := h.redirector(c.Param("provider"))
	if !ok {
		h.notice(ctx, sid, MsgSignInFailed+auth.ErrUnknownProvider.Error())
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if e := c.Query("error"); e != "" {
		h.notice(ctx, sid, MsgSignInFailed+e)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.states.Verify(c.Query("state"), sid, p); err != nil {
		h.notice(ctx, sid, MsgSignInFailed+err.Error())
		c.Redirect(http.StatusFound, "/login")
		return
	}

	_, err := h.redirect.SignIn(ctx, sid, p, c.Query("code"))
	msg, _ := outcome(err)
	h.notice(ctx, sid, msg)

	if err != nil && !errors.Is(err, auth.ErrNotAuthorized) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Token signs the session in with a Firebase ID token.
func (h *Handler) Token(c *gin.Context) {
	ctx := c.Request.Context()
	sid := session.ID(c)

	p, err := auth.ParseProvider(c.Param("provider"))
	if err != nil || h.token == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": auth.ErrUnknownProvider.Error()})
		return
	}
	if _, ok := h.token.Authenticator(p); !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": auth.ErrUnknownProvider.Error()})
		return
	}

	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	st, err := h.token.SignIn(ctx, sid, p, req.IDToken)
	msg, status := outcome(err)
	h.notice(ctx, sid, msg)

	if err != nil {
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "email": st.Email(), "admin": st.Admin, "message": msg})
}

func (h *Handler) SignOut(c *gin.Context) {
	ctx := c.Request.Context()
	sid := session.ID(c)

	if err := h.guard.SignOut(ctx, sid); err != nil {
		logutils.Log.WithField("error", err).Error("sign out")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to sign out"})
		return
	}
	h.notice(ctx, sid, MsgSignedOut)

	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) redirector(name string) (auth.Provider, auth.Redirector, bool) {
	if h.redirect == nil {
		return "", nil, false
	}
	p, err := auth.ParseProvider(name)
	if err != nil {
		return "", nil, false
	}
	a, ok := h.redirect.Authenticator(p)
	if !ok {
		return "", nil, false
	}
	r, ok := a.(auth.Redirector)
	return p, r, ok
}

func (h *Handler) notice(ctx context.Context, sid, msg string) {
	if err := h.guard.SetNotice(ctx, sid, msg); err != nil {
		logutils.Log.WithField("error", err).Warn("set notice")
	}
}

// outcome maps a sign-in result to its notice and JSON status.
func outcome(err error) (string, int) {
	switch {
	case err == nil:
		return MsgSignedIn, http.StatusOK
	case errors.Is(err, auth.ErrNotAuthorized):
		return MsgNotAdmin, http.StatusForbidden
	case errors.Is(err, auth.ErrAuthentication):
		reason := strings.TrimPrefix(err.Error(), auth.ErrAuthentication.Error()+": ")
		return MsgSignInFailed + reason, http.StatusUnauthorized
	default:
		return MsgSignInFailed + err.Error(), http.StatusInternalServerError
	}
}
