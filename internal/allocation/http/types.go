package http

import "github.com/vv-pms/pms-backend/internal/allocation/service"

// Handler bundles the dependencies for allocation HTTP endpoints.
type Handler struct {
	svc *service.AllocationService
}

func New(svc *service.AllocationService) *Handler {
	return &Handler{svc: svc}
}
