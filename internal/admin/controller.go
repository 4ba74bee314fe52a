package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

var (
	ErrAdminRequired        = errors.New("admin sign-in required")
	ErrConfirmationRequired = errors.New("delete must be confirmed")
)

// Notices shown when an admin interaction is refused or cannot complete.
const (
	MsgAdminRequired = "Você precisa estar logado como administrador para gerenciar projetos."
	MsgLoadFailed    = "Erro ao carregar projetos. Tente novamente mais tarde."
	MsgNoProjects    = "Nenhum projeto encontrado."
	MsgCreateFailed  = "Erro ao adicionar projeto. Tente novamente."
	MsgUpdateFailed  = "Erro ao atualizar projeto. Tente novamente."
	MsgDeleteFailed  = "Erro ao excluir projeto. Tente novamente."
	MsgCreated       = "Projeto adicionado com sucesso!"
	MsgUpdated       = "Projeto atualizado com sucesso!"
	MsgDeleted       = "Projeto excluído com sucesso!"
)

// Affordances is what the page shows for a given session state.
type Affordances struct {
	AdminMenu   bool
	AddProject  bool
	EditButtons bool
	LoginLink   bool
	Email       string
}

type Controller struct {
	guard *session.Guard
}

func NewController(guard *session.Guard) *Controller {
	return &Controller{guard: guard}
}

// Reconcile derives the affordances from st alone. It is called on every
// render, so nothing shown can outlive the state it came from.
func (ctl *Controller) Reconcile(st session.State) Affordances {
	if !st.Admin {
		return Affordances{LoginLink: true}
	}
	return Affordances{
		AdminMenu:   true,
		AddProject:  true,
		EditButtons: true,
		Email:       st.Email(),
	}
}

// Authorize re-reads the session at interaction time. A page rendered while
// signed in does not grant anything once the session has expired.
func (ctl *Controller) Authorize(ctx context.Context, sid string) (session.State, error) {
	st, err := ctl.guard.Current(ctx, sid)
	if err != nil {
		return session.State{}, fmt.Errorf("load session: %w", err)
	}
	if err := ctl.check(st); err != nil {
		return session.State{}, err
	}
	return st, nil
}

func (ctl *Controller) check(st session.State) error {
	if !st.SignedIn() || !ctl.guard.IsAdmin(st.Email()) {
		return ErrAdminRequired
	}
	return nil
}

// Watch logs the affordances of every session transition until cancel is called.
func (ctl *Controller) Watch() (cancel func()) {
	return ctl.guard.Subscribe(func(c session.Change) {
		a := ctl.Reconcile(c.State)
		logutils.Log.WithFields(logutils.Fields{
			"session":    c.SessionID,
			"admin_menu": a.AdminMenu,
			"email":      a.Email,
		}).Debug("session state changed")
	})
}
