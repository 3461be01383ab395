package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vv-pms/pms-backend/internal/rooms/domain"
	"github.com/vv-pms/pms-backend/internal/timegrid"
)

// RoomStore is the persistence contract this service needs.
type RoomStore interface {
	Create(ctx context.Context, name string, availability timegrid.Grid) (*domain.Room, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	UpdateName(ctx context.Context, id int64, name string) error
	UpdateAvailability(ctx context.Context, id int64, availability timegrid.Grid) error
	Delete(ctx context.Context, id int64) error
}

// RoomService handles room directory business logic
type RoomService struct {
	store RoomStore
	grid  timegrid.Config
}

// NewRoomService creates a new room service
func NewRoomService(store RoomStore, grid timegrid.Config) *RoomService {
	return &RoomService{store: store, grid: grid}
}

// Create registers a room with a case-insensitively unique name. The room
// starts fully available.
func (s *RoomService) Create(ctx context.Context, name string) (*domain.Room, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return nil, fmt.Errorf("room name is required: %w", domain.ErrInvalidRoom)
	}

	taken, err := s.store.ExistsByName(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%q: %w", cleaned, domain.ErrRoomNameTaken)
	}

	return s.store.Create(ctx, cleaned, s.grid.FullGrid())
}

// Rename changes a room's name, keeping the uniqueness rule.
func (s *RoomService) Rename(ctx context.Context, id int64, name string) (*domain.Room, error) {
	room, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return nil, fmt.Errorf("room name is required: %w", domain.ErrInvalidRoom)
	}

	if !strings.EqualFold(cleaned, room.Name) {
		taken, err := s.store.ExistsByName(ctx, cleaned)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%q: %w", cleaned, domain.ErrRoomNameTaken)
		}
	}

	if err := s.store.UpdateName(ctx, id, cleaned); err != nil {
		return nil, err
	}
	room.Name = cleaned
	return room, nil
}

// UpdateAvailability replaces a room's weekly grid. The grid must have the
// canonical shape.
func (s *RoomService) UpdateAvailability(ctx context.Context, id int64, availability timegrid.Grid) (*domain.Room, error) {
	if !s.grid.ValidShape(availability) {
		return nil, fmt.Errorf("availability must be %dx%d: %w", s.grid.Days, s.grid.Bins, domain.ErrInvalidRoom)
	}

	room, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateAvailability(ctx, id, availability); err != nil {
		return nil, err
	}
	room.Availability = availability
	return room, nil
}

// GetByID returns a single room.
func (s *RoomService) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all rooms in id order.
func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	return s.store.List(ctx)
}

// Delete removes a room from the directory.
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
