package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vv-pms/pms-backend/internal/presentation/domain"
	projectdomain "github.com/vv-pms/pms-backend/internal/projects/domain"
	roomdomain "github.com/vv-pms/pms-backend/internal/rooms/domain"
)

func (h *Handler) options(c *gin.Context) {
	projectID, ok := queryID(c, "project_id")
	if !ok {
		return
	}
	roomID, ok := queryID(c, "room_id")
	if !ok {
		return
	}

	slots, err := h.svc.AvailableSlots(c.Request.Context(), projectID, roomID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "slots": slots})
}

type assignReq struct {
	ProjectID     int64 `json:"project_id"`
	RoomID        int64 `json:"room_id"`
	DayIndex      int   `json:"day_index"`
	StartBinIndex int   `json:"start_bin_index"`
}

func (h *Handler) assign(c *gin.Context) {
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	slot, err := h.svc.AssignPresentation(c.Request.Context(), req.ProjectID, req.RoomID, req.DayIndex, req.StartBinIndex)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "slot": slot, "label": h.svc.DescribeSlot(slot)})
}

func (h *Handler) unassign(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return
	}
	if err := h.svc.UnassignPresentation(c.Request.Context(), projectID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) byProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return
	}

	slot, err := h.svc.FindByProjectID(c.Request.Context(), projectID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "slot": slot, "label": h.svc.DescribeSlot(slot)})
}

func (h *Handler) overview(c *gin.Context) {
	rows, err := h.svc.PresentationRows(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "rows": rows})
}

func (h *Handler) runBestEffort(c *gin.Context) {
	if err := h.svc.RunBestEffortSchedule(c.Request.Context()); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func queryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSlot):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrSlotNotFound),
		errors.Is(err, projectdomain.ErrProjectNotFound),
		errors.Is(err, roomdomain.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrRoomBooked):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
