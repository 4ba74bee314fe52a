package http

import (
	"github.com/GoSim-25-26J-441/portfolio/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

// Notices shown to the user after each sign-in outcome.
const (
	MsgSignedIn     = "Login realizado com sucesso!"
	MsgNotAdmin     = "Você não tem permissão de administrador."
	MsgSignInFailed = "Erro ao fazer login: "
	MsgSignedOut    = "Você saiu da sua conta."
)

// Handler serves both sign-in paths. Redirect runs the server-side OAuth
// code flow; Token accepts ID tokens minted by the Firebase web SDK popup.
// Either flow may be nil when it is not configured.
type Handler struct {
	redirect *auth.Flow
	token    *auth.Flow
	guard    *session.Guard
	states   *auth.StateSigner
}

func NewHandler(redirect, token *auth.Flow, guard *session.Guard, states *auth.StateSigner) *Handler {
	return &Handler{redirect: redirect, token: token, guard: guard, states: states}
}

type tokenRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}
