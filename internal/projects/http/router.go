package http

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio/internal/auth/middleware"
)

// Register attaches project routes to the given router group. Reads are
// public; writes need a Firebase ID token of an allow-listed admin. Without
// a token verifier the write routes are not mounted.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)

	if h.verifier == nil {
		return
	}
	protected := rg.Group("", middleware.FirebaseAuthMiddleware(h.verifier), middleware.RequireAdmin(h.guard))
	protected.POST("", h.create)
	protected.PUT("/:id", h.update)
	protected.DELETE("/:id", h.delete)
}
