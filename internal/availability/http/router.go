package http

import "github.com/gin-gonic/gin"

// Register attaches availability routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:kind/:user_id", h.get)
	rg.PUT("/:kind/:user_id", h.update)
}
