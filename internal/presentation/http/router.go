package http

import "github.com/gin-gonic/gin"

// Register attaches presentation routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/options", h.options)
	rg.GET("/overview", h.overview)
	rg.POST("/assign", h.assign)
	rg.POST("/best-effort", h.runBestEffort)
	rg.GET("/project/:id", h.byProject)
	rg.DELETE("/project/:id", h.unassign)
}
