package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/auth")
	g.GET("/:provider/start", h.Start)
	g.GET("/:provider/callback", h.Callback)
	g.POST("/:provider/token", h.Token)
	g.POST("/signout", h.SignOut)
}
