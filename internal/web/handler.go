package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio/internal/admin"
	"github.com/GoSim-25-26J-441/portfolio/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/portfolio/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	msgContactIncomplete = "Por favor, preencha todos os campos."
	msgContactOpened     = "Obrigado! Seu cliente de email será aberto para enviar a mensagem."
)

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// ProjectLister is the read side of the project service.
type ProjectLister interface {
	Snapshot(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
}

// FirebaseWeb is the public configuration of the Firebase web SDK used by
// the login popup. An empty APIKey hides the popup buttons.
type FirebaseWeb struct {
	APIKey     string
	AuthDomain string
	ProjectID  string
}

type Options struct {
	Content  *Content
	Projects ProjectLister
	Guard    *session.Guard
	Admin    *admin.Controller
	Forms    *admin.FormController
	Redirect []auth.Provider
	Popup    []auth.Provider
	Firebase FirebaseWeb
}

type Handler struct {
	opts Options
	now  func() time.Time
}

func NewHandler(opts Options) *Handler {
	return &Handler{opts: opts, now: time.Now}
}

// Register mounts the pages on r. mw runs before every page handler and must
// include the session cookie middleware.
func (h *Handler) Register(r *gin.Engine, mw ...gin.HandlerFunc) {
	r.SetHTMLTemplate(Templates())
	if static, err := fs.Sub(staticFS, "static"); err == nil {
		r.StaticFS("/static", http.FS(static))
	}

	pages := r.Group("", mw...)
	pages.GET("/", h.Index)
	pages.GET("/login", h.Login)
	pages.POST("/contact", h.Contact)

	g := pages.Group("/admin/projects")
	g.GET("/new", h.NewProject)
	g.GET("/:id/edit", h.EditProject)
	g.POST("", h.CreateProject)
	g.POST("/:id", h.UpdateProject)
	g.GET("/:id/delete", h.ConfirmDelete)
	g.POST("/:id/delete", h.DeleteProject)
}

type basePage struct {
	Title  string
	Notice string
}

type indexPage struct {
	basePage
	Content       *Content
	Affordances   admin.Affordances
	Projects      []domain.Project
	ProjectsError string
	Empty         string
	Year          int
}

type loginPage struct {
	basePage
	Redirect []auth.Provider
	Popup    []auth.Provider
	Firebase FirebaseWeb
}

type formPage struct {
	basePage
	State  *admin.FormState
	Action string
}

type confirmPage struct {
	basePage
	Project *domain.Project
}

// Index renders the whole site. The affordances come from the session state
// of this request only.
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	sid := session.ID(c)

	st, err := h.opts.Guard.Current(ctx, sid)
	if err != nil {
		logutils.Log.WithField("error", err).Warn("load session state")
	}

	page := indexPage{
		basePage:    basePage{Title: h.opts.Content.Owner.Name + " | Portfólio", Notice: h.takeNotice(ctx, sid)},
		Content:     h.opts.Content,
		Affordances: h.opts.Admin.Reconcile(st),
		Empty:       admin.MsgNoProjects,
		Year:        h.now().Year(),
	}

	projects, err := h.opts.Projects.Snapshot(ctx)
	if err != nil {
		page.ProjectsError = admin.MsgLoadFailed
	} else {
		page.Projects = projects
	}

	c.HTML(http.StatusOK, "index.html", page)
}

func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	c.HTML(http.StatusOK, "login.html", loginPage{
		basePage: basePage{Title: "Login", Notice: h.takeNotice(ctx, session.ID(c))},
		Redirect: h.opts.Redirect,
		Popup:    h.opts.Popup,
		Firebase: h.opts.Firebase,
	})
}

func (h *Handler) NewProject(c *gin.Context) {
	h.openForm(c, "")
}

func (h *Handler) EditProject(c *gin.Context) {
	h.openForm(c, c.Param("id"))
}

func (h *Handler) openForm(c *gin.Context, id string) {
	st, ok := h.authorize(c)
	if !ok {
		return
	}

	state, err := h.opts.Forms.Open(c.Request.Context(), st, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.renderForm(c, http.StatusOK, state, "")
}

func (h *Handler) CreateProject(c *gin.Context) {
	h.submit(c, "")
}

func (h *Handler) UpdateProject(c *gin.Context) {
	h.submit(c, c.Param("id"))
}

func (h *Handler) submit(c *gin.Context, id string) {
	st, ok := h.authorize(c)
	if !ok {
		return
	}

	mode := admin.ModeCreate
	if id != "" {
		mode = admin.ModeEdit
	}

	var form admin.Form
	bindErr := c.ShouldBind(&form)
	state := &admin.FormState{Mode: mode, ID: id, Form: form}

	var verr *admin.ValidationError
	if bindErr != nil {
		if errors.As(admin.FieldErrors(bindErr), &verr) {
			state.Errors = verr.Fields
			h.renderForm(c, http.StatusBadRequest, state, "")
			return
		}
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	ctx := c.Request.Context()
	out, err := h.opts.Forms.Submit(ctx, st, id, form)
	switch {
	case err == nil:
		if out.ListErr != nil {
			logutils.Log.WithField("error", out.ListErr).Warn("reload after save")
		}
		h.notice(ctx, session.ID(c), mode.SavedNotice())
		c.Redirect(http.StatusSeeOther, "/#projetos")
	case errors.As(err, &verr):
		state.Errors = verr.Fields
		h.renderForm(c, http.StatusBadRequest, state, "")
	case errors.Is(err, domain.ErrStore):
		h.renderForm(c, http.StatusBadGateway, state, mode.FailedNotice())
	default:
		h.fail(c, err)
	}
}

func (h *Handler) ConfirmDelete(c *gin.Context) {
	if _, ok := h.authorize(c); !ok {
		return
	}

	p, err := h.opts.Projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.renderConfirm(c, http.StatusOK, p, "")
}

func (h *Handler) DeleteProject(c *gin.Context) {
	st, ok := h.authorize(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	_, err := h.opts.Forms.Delete(ctx, st, id, c.PostForm("confirm") == "true")
	switch {
	case err == nil:
		h.notice(ctx, session.ID(c), admin.MsgDeleted)
		c.Redirect(http.StatusSeeOther, "/#projetos")
	case errors.Is(err, admin.ErrConfirmationRequired):
		c.Redirect(http.StatusSeeOther, "/admin/projects/"+id+"/delete")
	case errors.Is(err, domain.ErrStore):
		// the confirmation stays open so the admin can retry
		p, getErr := h.opts.Projects.Get(ctx, id)
		if getErr != nil {
			p = &domain.Project{ID: id}
		}
		h.renderConfirm(c, http.StatusBadGateway, p, admin.MsgDeleteFailed)
	default:
		h.fail(c, err)
	}
}

// Contact hands the message to the visitor's mail client.
func (h *Handler) Contact(c *gin.Context) {
	ctx := c.Request.Context()
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	subject := strings.TrimSpace(c.PostForm("subject"))
	message := strings.TrimSpace(c.PostForm("message"))

	if name == "" || email == "" || subject == "" || message == "" {
		h.notice(ctx, session.ID(c), msgContactIncomplete)
		c.Redirect(http.StatusSeeOther, "/#contato")
		return
	}

	h.notice(ctx, session.ID(c), msgContactOpened)
	c.Redirect(http.StatusSeeOther, h.opts.Content.Contact.MailTo(name, email, subject, message))
}

// authorize re-checks admin status for an admin interaction. On failure the
// visitor is sent to the login page with a notice.
func (h *Handler) authorize(c *gin.Context) (session.State, bool) {
	st, err := h.opts.Admin.Authorize(c.Request.Context(), session.ID(c))
	if err == nil {
		return st, true
	}
	h.fail(c, err)
	return session.State{}, false
}

func (h *Handler) fail(c *gin.Context, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, admin.ErrAdminRequired):
		h.notice(ctx, session.ID(c), admin.MsgAdminRequired)
		c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, domain.ErrNotFound):
		h.notice(ctx, session.ID(c), "Projeto não encontrado.")
		c.Redirect(http.StatusSeeOther, "/#projetos")
	default:
		logutils.Log.WithFields(logutils.Fields{
			"error":      err,
			"request_id": middleware.GetRequestID(ctx),
		}).Error("admin request failed")
		h.notice(ctx, session.ID(c), admin.MsgLoadFailed)
		c.Redirect(http.StatusSeeOther, "/#projetos")
	}
}

func (h *Handler) renderConfirm(c *gin.Context, status int, p *domain.Project, notice string) {
	c.HTML(status, "confirm_delete.html", confirmPage{
		basePage: basePage{Title: "Excluir projeto", Notice: notice},
		Project:  p,
	})
}

func (h *Handler) renderForm(c *gin.Context, status int, state *admin.FormState, notice string) {
	action := "/admin/projects"
	title := "Adicionar Projeto"
	if state.Mode == admin.ModeEdit {
		action += "/" + state.ID
		title = "Editar Projeto"
	}
	c.HTML(status, "project_form.html", formPage{
		basePage: basePage{Title: title, Notice: notice},
		State:    state,
		Action:   action,
	})
}

func (h *Handler) notice(ctx context.Context, sid, msg string) {
	if err := h.opts.Guard.SetNotice(ctx, sid, msg); err != nil {
		logutils.Log.WithField("error", err).Warn("set notice")
	}
}

func (h *Handler) takeNotice(ctx context.Context, sid string) string {
	msg, err := h.opts.Guard.TakeNotice(ctx, sid)
	if err != nil {
		logutils.Log.WithField("error", err).Warn("take notice")
	}
	return msg
}
