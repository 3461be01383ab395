package http

import "github.com/vv-pms/pms-backend/internal/professors/service"

// Handler bundles the dependencies for professor HTTP endpoints.
type Handler struct {
	svc *service.ProfessorService
}

func New(svc *service.ProfessorService) *Handler {
	return &Handler{svc: svc}
}
