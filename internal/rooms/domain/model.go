package domain

import (
	"errors"

	"github.com/vv-pms/pms-backend/internal/timegrid"
)

// Room is a bookable presentation space with its own weekly availability
// grid. New rooms default to fully available.
type Room struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Availability timegrid.Grid `json:"availability"`
}

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomNameTaken = errors.New("room with that name already exists")
	ErrInvalidRoom   = errors.New("invalid room")
)
