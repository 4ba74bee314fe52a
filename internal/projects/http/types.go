package http

import (
	"github.com/GoSim-25-26J-441/portfolio/internal/admin"
	"github.com/GoSim-25-26J-441/portfolio/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/service"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	projects *service.ProjectService
	forms    *admin.FormController
	guard    *session.Guard
	verifier auth.TokenVerifier
}

func New(projects *service.ProjectService, forms *admin.FormController, guard *session.Guard, verifier auth.TokenVerifier) *Handler {
	return &Handler{projects: projects, forms: forms, guard: guard, verifier: verifier}
}
