package http

import "github.com/vv-pms/pms-backend/internal/students/service"

// Handler bundles the dependencies for student HTTP endpoints.
type Handler struct {
	svc *service.StudentService
}

func New(svc *service.StudentService) *Handler {
	return &Handler{svc: svc}
}
