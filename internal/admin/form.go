package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// SavedNotice is shown after a successful submit in this mode.
func (m Mode) SavedNotice() string {
	if m == ModeEdit {
		return MsgUpdated
	}
	return MsgCreated
}

// FailedNotice is shown when the store rejects a submit in this mode.
func (m Mode) FailedNotice() string {
	if m == ModeEdit {
		return MsgUpdateFailed
	}
	return MsgCreateFailed
}

// Form is the project modal as submitted by the browser. Every field is raw
// text; Parse turns it into a domain.ProjectInput.
type Form struct {
	Title        string `form:"titulo"      binding:"required"`
	Description  string `form:"descricao"   binding:"required"`
	Order        string `form:"ordem"       binding:"required"`
	Link         string `form:"link"        binding:"required"`
	Icon         string `form:"icon"`
	Color        string `form:"color"`
	Technologies string `form:"tecnologias" binding:"required"`
}

// FormState is the modal to render: which mode, which record, what values.
type FormState struct {
	Mode   Mode
	ID     string
	Form   Form
	Errors map[string]string
}

// Outcome of a successful write: the modal closes and the grid is reloaded
// from the store. ListErr is set when only the reload failed.
type Outcome struct {
	ID       string
	Projects []domain.Project
	ListErr  error
}

// ValidationError carries one message per invalid field, keyed by the
// field's form name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid project: " + strings.Join(parts, "; ")
}

// Projects is the part of the project service the form needs.
type Projects interface {
	Snapshot(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, in domain.ProjectInput) (string, error)
	Update(ctx context.Context, id string, in domain.ProjectInput) error
	Delete(ctx context.Context, id string) error
}

type FormController struct {
	ctl      *Controller
	projects Projects
}

func NewFormController(ctl *Controller, projects Projects) *FormController {
	return &FormController{ctl: ctl, projects: projects}
}

// Open prepares the modal. An empty id opens it in create mode with the
// default icon, color and ordem; otherwise the record is loaded for editing.
func (fc *FormController) Open(ctx context.Context, st session.State, id string) (*FormState, error) {
	if err := fc.ctl.check(st); err != nil {
		return nil, err
	}

	if id == "" {
		return &FormState{
			Mode: ModeCreate,
			Form: Form{Order: "1", Icon: domain.DefaultIcon, Color: domain.DefaultColor},
		}, nil
	}

	p, err := fc.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FormState{Mode: ModeEdit, ID: p.ID, Form: FormFromProject(p)}, nil
}

// Submit parses f and saves it, creating when id is empty.
func (fc *FormController) Submit(ctx context.Context, st session.State, id string, f Form) (*Outcome, error) {
	if err := fc.ctl.check(st); err != nil {
		return nil, err
	}
	in, err := f.Parse()
	if err != nil {
		return nil, err
	}
	return fc.Save(ctx, st, id, in)
}

// Save trims an already typed input, validates it and writes it.
func (fc *FormController) Save(ctx context.Context, st session.State, id string, in domain.ProjectInput) (*Outcome, error) {
	if err := fc.ctl.check(st); err != nil {
		return nil, err
	}
	in = Normalize(in)
	if err := Validate(in); err != nil {
		return nil, err
	}
	in = in.WithDefaults()

	if id == "" {
		newID, err := fc.projects.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		id = newID
	} else if err := fc.projects.Update(ctx, id, in); err != nil {
		return nil, err
	}

	return fc.refresh(ctx, id), nil
}

// Delete removes an existing record. Nothing is deleted until confirmed.
func (fc *FormController) Delete(ctx context.Context, st session.State, id string, confirmed bool) (*Outcome, error) {
	if err := fc.ctl.check(st); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("delete needs an existing project")
	}
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	if err := fc.projects.Delete(ctx, id); err != nil {
		return nil, err
	}
	return fc.refresh(ctx, id), nil
}

func (fc *FormController) refresh(ctx context.Context, id string) *Outcome {
	items, err := fc.projects.Snapshot(ctx)
	if err != nil {
		return &Outcome{ID: id, ListErr: fmt.Errorf("reload projects: %w", err)}
	}
	return &Outcome{ID: id, Projects: items}
}

// FormFromProject fills the modal with an existing record.
func FormFromProject(p *domain.Project) Form {
	return Form{
		Title:        p.Title,
		Description:  p.Description,
		Order:        strconv.Itoa(p.Order),
		Link:         p.Link,
		Icon:         p.Icon,
		Color:        p.Color,
		Technologies: strings.Join(p.Technologies, ", "),
	}
}

// Parse converts the raw form into a project input, collecting every field
// error instead of stopping at the first.
func (f Form) Parse() (domain.ProjectInput, error) {
	errs := map[string]string{}
	in := Normalize(domain.ProjectInput{
		Title:        f.Title,
		Description:  f.Description,
		Link:         f.Link,
		Icon:         f.Icon,
		Color:        f.Color,
		Technologies: ParseTechnologies(f.Technologies),
	})

	switch raw := strings.TrimSpace(f.Order); {
	case raw == "":
		errs["ordem"] = msgRequired
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs["ordem"] = msgOrder
		}
		in.Order = n
	}

	var verr *ValidationError
	if errors.As(Validate(in), &verr) {
		for k, v := range verr.Fields {
			if _, seen := errs[k]; !seen {
				errs[k] = v
			}
		}
	}
	if len(errs) > 0 {
		return domain.ProjectInput{}, &ValidationError{Fields: errs}
	}
	return in, nil
}

// ParseTechnologies splits on commas, trims each entry and drops empty ones.
func ParseTechnologies(raw string) []string {
	return trimAll(strings.Split(raw, ","))
}

// Normalize trims every text field and drops blank technologies.
func Normalize(in domain.ProjectInput) domain.ProjectInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Link = strings.TrimSpace(in.Link)
	in.Icon = strings.TrimSpace(in.Icon)
	in.Color = strings.TrimSpace(in.Color)
	in.Technologies = trimAll(in.Technologies)
	return in
}

func trimAll(parts []string) []string {
	out := []string{}
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
