package http

import "github.com/gin-gonic/gin"

// Register attaches allocation routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("/professor", h.assignProfessor)
	rg.POST("/student", h.assignStudent)
	rg.POST("/best-effort", h.runBestEffort)
	rg.GET("/project/:id", h.byProject)
	rg.GET("/project/:id/students", h.studentsByProject)
	rg.DELETE("/project/:id/professor", h.removeProfessor)
	rg.DELETE("/project/:id/student/:student_id", h.unassignStudent)
	rg.GET("/student/:id", h.byStudent)
	rg.GET("/professor/:id/projects", h.projectsByProfessor)
}
