package http

import "github.com/vv-pms/pms-backend/internal/rooms/service"

// Handler bundles the dependencies for room HTTP endpoints.
type Handler struct {
	svc *service.RoomService
}

func New(svc *service.RoomService) *Handler {
	return &Handler{svc: svc}
}
