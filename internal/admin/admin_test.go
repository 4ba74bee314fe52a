package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/repository"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/service"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

const adminEmail = "admin@example.com"

// brokenWrites fails every write with a store error.
type brokenWrites struct {
	*repository.MemoryStore
}

func (brokenWrites) Create(context.Context, domain.ProjectInput) (string, error) {
	return "", fmt.Errorf("create: %w", domain.ErrStore)
}

func (brokenWrites) Update(context.Context, string, domain.ProjectInput) error {
	return fmt.Errorf("update: %w", domain.ErrStore)
}

type fixture struct {
	guard *session.Guard
	ctl   *Controller
	forms *FormController
	svc   *service.ProjectService
}

func newFixture(store repository.Store) *fixture {
	guard := session.NewGuard(session.NewAllowList([]string{adminEmail}), session.NewMemoryStore(time.Hour))
	ctl := NewController(guard)
	svc := service.NewProjectService(store)
	return &fixture{guard: guard, ctl: ctl, forms: NewFormController(ctl, svc), svc: svc}
}

func adminState() session.State {
	return session.State{Identity: &session.Identity{Email: adminEmail}, Admin: true}
}

func animuForm() Form {
	return Form{
		Title:        "Animu",
		Description:  "Rede social para fãs de anime",
		Order:        "1",
		Link:         "https://github.com/example/animu",
		Technologies: "Tailwind CSS, Quill.js, Firebase",
	}
}

func TestReconcile(t *testing.T) {
	f := newFixture(repository.NewMemoryStore(nil))

	a := f.ctl.Reconcile(adminState())
	assert.Equal(t, Affordances{AdminMenu: true, AddProject: true, EditButtons: true, Email: adminEmail}, a)

	visitor := session.State{Identity: &session.Identity{Email: "visitor@example.com"}}
	assert.Equal(t, Affordances{LoginLink: true}, f.ctl.Reconcile(visitor))
	assert.Equal(t, Affordances{LoginLink: true}, f.ctl.Reconcile(session.State{}))
}

func TestAuthorize_ReadsSessionAtInteractionTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repository.NewMemoryStore(nil))
	sid := session.NewID()

	_, err := f.guard.SignIn(ctx, sid, session.Identity{Email: adminEmail})
	require.NoError(t, err)
	st, err := f.ctl.Authorize(ctx, sid)
	require.NoError(t, err)
	assert.True(t, st.Admin)

	require.NoError(t, f.guard.SignOut(ctx, sid))
	_, err = f.ctl.Authorize(ctx, sid)
	assert.ErrorIs(t, err, ErrAdminRequired)

	_, err = f.ctl.Authorize(ctx, session.NewID())
	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestWatch(t *testing.T) {
	ctx := context.Background()
	hooks := logutils.Log.ReplaceHooks(make(logrus.LevelHooks))
	level := logutils.Log.GetLevel()
	hook := test.NewLocal(logutils.Log)
	logutils.Log.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logutils.Log.SetLevel(level)
		logutils.Log.ReplaceHooks(hooks)
	})

	f := newFixture(repository.NewMemoryStore(nil))
	cancel := f.ctl.Watch()

	sid := session.NewID()
	_, err := f.guard.SignIn(ctx, sid, session.Identity{Email: adminEmail})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "session state changed", entry.Message)
	assert.Equal(t, sid, entry.Data["session"])
	assert.Equal(t, true, entry.Data["admin_menu"])
	assert.Equal(t, adminEmail, entry.Data["email"])

	require.NoError(t, f.guard.SignOut(ctx, sid))
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, false, entry.Data["admin_menu"])
	assert.Equal(t, "", entry.Data["email"])

	cancel()
	hook.Reset()
	_, err = f.guard.SignIn(ctx, sid, session.Identity{Email: adminEmail})
	require.NoError(t, err)
	assert.Nil(t, hook.LastEntry(), "cancelled watchers stay quiet")
}

func TestSubmit_AnimuScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repository.NewMemoryStore(nil))

	out, err := f.forms.Submit(ctx, adminState(), "", animuForm())
	require.NoError(t, err)
	require.NoError(t, out.ListErr)
	require.Len(t, out.Projects, 1)

	p, err := f.svc.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Animu", p.Title)
	assert.Equal(t, 1, p.Order)
	assert.Equal(t, []string{"Tailwind CSS", "Quill.js", "Firebase"}, p.Technologies)
	assert.Equal(t, domain.DefaultIcon, p.Icon)
	assert.Equal(t, domain.DefaultColor, p.Color)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repository.NewMemoryStore(nil))

	fs, err := f.forms.Open(ctx, adminState(), "")
	require.NoError(t, err)
	assert.Equal(t, ModeCreate, fs.Mode)
	assert.Equal(t, "1", fs.Form.Order)
	assert.Equal(t, domain.DefaultIcon, fs.Form.Icon)
	assert.Equal(t, domain.DefaultColor, fs.Form.Color)

	out, err := f.forms.Submit(ctx, adminState(), "", animuForm())
	require.NoError(t, err)

	fs, err = f.forms.Open(ctx, adminState(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeEdit, fs.Mode)
	assert.Equal(t, out.ID, fs.ID)
	assert.Equal(t, "Tailwind CSS, Quill.js, Firebase", fs.Form.Technologies)

	_, err = f.forms.Open(ctx, adminState(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.forms.Open(ctx, session.State{}, "")
	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestSubmit_Edit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repository.NewMemoryStore(nil))

	out, err := f.forms.Submit(ctx, adminState(), "", animuForm())
	require.NoError(t, err)

	form := animuForm()
	form.Order = "3"
	form.Color = "#FF00AA"
	out, err = f.forms.Submit(ctx, adminState(), out.ID, form)
	require.NoError(t, err)

	p, err := f.svc.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Order)
	assert.Equal(t, "#FF00AA", p.Color)
}

func TestSubmit_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repository.NewMemoryStore(nil))

	_, err := f.forms.Submit(ctx, adminState(), "", Form{Order: "zero", Link: "not a url", Color: "red", Technologies: " , "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgRequired, verr.Fields["titulo"])
	assert.Equal(t, msgRequired, verr.Fields["descricao"])
	assert.Equal(t, msgOrder, verr.Fields["ordem"])
	assert.Equal(t, msgLink, verr.Fields["link"])
	assert.Equal(t, msgColor, verr.Fields["color"])
	assert.Equal(t, msgTechnologies, verr.Fields["tecnologias"])

	items, err := f.svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "nothing is written on validation failure")
}

func TestSave_TrimsTypedInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repository.NewMemoryStore(nil))

	in := domain.ProjectInput{
		Title:        "  Padded ",
		Description:  " d ",
		Order:        1,
		Link:         "https://example.com",
		Technologies: []string{"  Go  ", "", "   ", "Gin"},
	}
	out, err := f.forms.Save(ctx, adminState(), "", in)
	require.NoError(t, err)

	p, err := f.svc.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Padded", p.Title)
	assert.Equal(t, "d", p.Description)
	assert.Equal(t, []string{"Go", "Gin"}, p.Technologies)

	in.Technologies = []string{"", "   "}
	_, err = f.forms.Save(ctx, adminState(), "", in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgTechnologies, verr.Fields["tecnologias"])

	in.Technologies = []string{"Go"}
	in.Title = "   "
	in.Color = "#FFF"
	_, err = f.forms.Save(ctx, adminState(), "", in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgRequired, verr.Fields["titulo"])
	assert.Equal(t, msgColor, verr.Fields["color"])

	items, err := f.svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestFieldErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, plain, FieldErrors(plain))
	assert.NoError(t, FieldErrors(nil))

	err := Validate(domain.ProjectInput{Title: "t", Description: "d", Order: 1, Link: "ftp://example.com", Technologies: []string{"Go", ""}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"link": msgLink, "tecnologias": msgTechnologies}, verr.Fields)
}

func TestMode_Notices(t *testing.T) {
	assert.Equal(t, MsgCreated, ModeCreate.SavedNotice())
	assert.Equal(t, MsgUpdated, ModeEdit.SavedNotice())
	assert.Equal(t, MsgCreateFailed, ModeCreate.FailedNotice())
	assert.Equal(t, MsgUpdateFailed, ModeEdit.FailedNotice())
}

func TestSubmit_RequiresAdmin(t *testing.T) {
	f := newFixture(repository.NewMemoryStore(nil))
	visitor := session.State{Identity: &session.Identity{Email: "visitor@example.com"}}

	_, err := f.forms.Submit(context.Background(), visitor, "", animuForm())
	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestSubmit_StoreFailureKeepsForm(t *testing.T) {
	f := newFixture(brokenWrites{repository.NewMemoryStore(nil)})

	out, err := f.forms.Submit(context.Background(), adminState(), "", animuForm())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(repository.NewMemoryStore(nil))

	out, err := f.forms.Submit(ctx, adminState(), "", animuForm())
	require.NoError(t, err)

	_, err = f.forms.Delete(ctx, adminState(), out.ID, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	_, err = f.svc.Get(ctx, out.ID)
	require.NoError(t, err, "unconfirmed delete keeps the record")

	_, err = f.forms.Delete(ctx, adminState(), "", true)
	assert.Error(t, err)

	res, err := f.forms.Delete(ctx, adminState(), out.ID, true)
	require.NoError(t, err)
	assert.Empty(t, res.Projects)
	_, err = f.svc.Get(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParseTechnologies(t *testing.T) {
	assert.Equal(t, []string{"Go", "Gin"}, ParseTechnologies(" Go ,, Gin ,"))
	assert.Empty(t, ParseTechnologies(""))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"titulo": "a", "link": "b"}}
	assert.Equal(t, "invalid project: link: b; titulo: a", err.Error())
	assert.False(t, errors.Is(err, ErrAdminRequired))
}
