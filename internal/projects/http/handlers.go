package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio/internal/admin"
	"github.com/GoSim-25-26J-441/portfolio/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	items := []domain.Project{}
	for p, err := range h.projects.List(c.Request.Context()) {
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to load projects"})
			return
		}
		items = append(items, p)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) create(c *gin.Context) {
	var req domain.ProjectInput
	if !bindProject(c, &req) {
		return
	}

	out, err := h.forms.Save(c.Request.Context(), middleware.AdminState(c, h.guard), "", req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": out.ID, "projects": out.Projects})
}

func (h *Handler) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req domain.ProjectInput
	if !bindProject(c, &req) {
		return
	}

	out, err := h.forms.Save(c.Request.Context(), middleware.AdminState(c, h.guard), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": out.ID, "projects": out.Projects})
}

func (h *Handler) delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	confirmed := c.Query("confirm") == "true"

	out, err := h.forms.Delete(c.Request.Context(), middleware.AdminState(c, h.guard), id, confirmed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": out.Projects})
}

// bindProject decodes the body and runs the binding rules. Rule failures get
// the same per-field answer as a rejected Save.
func bindProject(c *gin.Context, req *domain.ProjectInput) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verr *admin.ValidationError
	if errors.As(admin.FieldErrors(err), &verr) {
		writeError(c, verr)
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
	return false
}

func writeError(c *gin.Context, err error) {
	var verr *admin.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project", "fields": verr.Fields})
	case errors.Is(err, admin.ErrAdminRequired):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin access required"})
	case errors.Is(err, admin.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "delete must be confirmed with ?confirm=true"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrStore):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "project store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
