package http

import "github.com/vv-pms/pms-backend/internal/availability/service"

// Handler bundles the dependencies for availability HTTP endpoints.
type Handler struct {
	svc *service.AvailabilityService
}

func New(svc *service.AvailabilityService) *Handler {
	return &Handler{svc: svc}
}
