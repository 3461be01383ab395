package http

import "github.com/gin-gonic/gin"

// Register attaches room routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.rename)
	rg.PUT("/:id/availability", h.updateAvailability)
	rg.DELETE("/:id", h.delete)
}
