package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vv-pms/pms-backend/internal/availability/domain"
	"github.com/vv-pms/pms-backend/internal/timegrid"
)

func (h *Handler) get(c *gin.Context) {
	kind, userID, ok := pathUser(c)
	if !ok {
		return
	}

	avail, err := h.svc.Get(c.Request.Context(), userID, kind)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "availability": avail})
}

type updateReq struct {
	Slots timegrid.Grid `json:"slots"`
}

func (h *Handler) update(c *gin.Context) {
	kind, userID, ok := pathUser(c)
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	avail, err := h.svc.Update(c.Request.Context(), userID, kind, req.Slots)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "availability": avail})
}

func pathUser(c *gin.Context) (domain.UserKind, int64, bool) {
	kind, err := domain.ParseUserKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return "", 0, false
	}
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid user id"})
		return "", 0, false
	}
	return kind, userID, true
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidUserKind), errors.Is(err, domain.ErrInvalidGrid):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotSet):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
