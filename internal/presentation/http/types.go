package http

import "github.com/vv-pms/pms-backend/internal/presentation/service"

// Handler bundles the dependencies for presentation HTTP endpoints.
type Handler struct {
	svc *service.PresentationService
}

func New(svc *service.PresentationService) *Handler {
	return &Handler{svc: svc}
}
