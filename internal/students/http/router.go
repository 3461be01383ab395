package http

import "github.com/gin-gonic/gin"

// Register attaches student routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/unassigned", h.listUnassigned)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
}
