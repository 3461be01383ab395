package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vv-pms/pms-backend/internal/allocation/domain"
	professordomain "github.com/vv-pms/pms-backend/internal/professors/domain"
	projectdomain "github.com/vv-pms/pms-backend/internal/projects/domain"
	studentdomain "github.com/vv-pms/pms-backend/internal/students/domain"
)

type assignProfessorReq struct {
	ProjectID   int64 `json:"project_id"`
	ProfessorID int64 `json:"professor_id"`
}

func (h *Handler) assignProfessor(c *gin.Context) {
	var req assignProfessorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	allocation, err := h.svc.AssignProfessor(c.Request.Context(), req.ProjectID, req.ProfessorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "allocation": allocation})
}

func (h *Handler) removeProfessor(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RemoveProfessorAllocation(c.Request.Context(), projectID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type assignStudentReq struct {
	ProjectID int64 `json:"project_id"`
	StudentID int64 `json:"student_id"`
}

func (h *Handler) assignStudent(c *gin.Context) {
	var req assignStudentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	allocation, err := h.svc.AssignStudent(c.Request.Context(), req.ProjectID, req.StudentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "allocation": allocation})
}

func (h *Handler) unassignStudent(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	allocation, err := h.svc.UnassignStudent(c.Request.Context(), projectID, studentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "allocation": allocation})
}

func (h *Handler) byProject(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	allocation, err := h.svc.FindByProjectID(c.Request.Context(), projectID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "allocation": allocation})
}

func (h *Handler) studentsByProject(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ids, err := h.svc.StudentsByProjectID(c.Request.Context(), projectID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "student_ids": ids})
}

func (h *Handler) byStudent(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	allocation, err := h.svc.FindByStudentID(c.Request.Context(), studentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "allocation": allocation})
}

func (h *Handler) projectsByProfessor(c *gin.Context) {
	professorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	projects, err := h.svc.ProjectsByProfessorID(c.Request.Context(), professorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects})
}

func (h *Handler) list(c *gin.Context) {
	allocations, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "allocations": allocations})
}

func (h *Handler) runBestEffort(c *gin.Context) {
	if err := h.svc.RunBestEffortAllocation(c.Request.Context()); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAllocationNotFound),
		errors.Is(err, projectdomain.ErrProjectNotFound),
		errors.Is(err, professordomain.ErrProfessorNotFound),
		errors.Is(err, studentdomain.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAllocationConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
