package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	allocdomain "github.com/vv-pms/pms-backend/internal/allocation/domain"
	professordomain "github.com/vv-pms/pms-backend/internal/professors/domain"
	"github.com/vv-pms/pms-backend/internal/projects/domain"
)

type createReq struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	RequiredStudents    int      `json:"required_students"`
	ProgramRestrictions []string `json:"program_restrictions"`
	ProfessorID         int64    `json:"professor_id"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	restrictions, err := parsePrograms(req.ProgramRestrictions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	p, err := h.svc.Add(c.Request.Context(), req.Title, req.Description, restrictions, req.RequiredStudents, req.ProfessorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type updateReq struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	RequiredStudents    int      `json:"required_students"`
	ProgramRestrictions []string `json:"program_restrictions"`
	Status              string   `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	restrictions, err := parsePrograms(req.ProgramRestrictions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), &domain.Project{
		ID:                  id,
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		ProgramRestrictions: restrictions,
		RequiredStudents:    req.RequiredStudents,
		Status:              domain.Status(req.Status),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func parsePrograms(raw []string) ([]domain.Program, error) {
	out := make([]domain.Program, 0, len(raw))
	for _, s := range raw {
		p := domain.Program(strings.TrimSpace(s))
		if !p.Valid() {
			return nil, errors.New("unknown program " + s)
		}
		out = append(out, p)
	}
	return out, nil
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return 0, false
	}
	return id, true
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProject):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, professordomain.ErrProfessorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, allocdomain.ErrAllocationConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
