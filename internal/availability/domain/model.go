package domain

import (
	"errors"
	"fmt"

	"github.com/vv-pms/pms-backend/internal/timegrid"
)

// UserKind is the closed set of availability owners. Raw role strings never
// cross package boundaries.
type UserKind string

const (
	KindStudent   UserKind = "STUDENT"
	KindProfessor UserKind = "PROFESSOR"
)

// ParseUserKind validates a kind string from the outside world.
func ParseUserKind(s string) (UserKind, error) {
	switch UserKind(s) {
	case KindStudent:
		return KindStudent, nil
	case KindProfessor:
		return KindProfessor, nil
	}
	return "", fmt.Errorf("unknown user kind %q: %w", s, ErrInvalidUserKind)
}

// Availability is a user's weekly free/busy grid. Slots[day][bin] is true
// when the user is free.
type Availability struct {
	UserID int64         `json:"user_id"`
	Kind   UserKind      `json:"kind"`
	Slots  timegrid.Grid `json:"slots"`
}

var (
	ErrNotSet          = errors.New("availability not set")
	ErrInvalidUserKind = errors.New("invalid user kind")
	ErrInvalidGrid     = errors.New("invalid availability grid")
)
