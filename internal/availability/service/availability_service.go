package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vv-pms/pms-backend/internal/availability/domain"
	"github.com/vv-pms/pms-backend/internal/timegrid"
)

// Store is the persistence contract this service needs.
type Store interface {
	Get(ctx context.Context, userID int64, kind domain.UserKind) (*domain.Availability, error)
	Set(ctx context.Context, avail *domain.Availability) error
}

// AvailabilityService hands out weekly free/busy grids for students and
// professors. Users that never saved a grid get an all-busy default.
type AvailabilityService struct {
	store Store
	grid  timegrid.Config
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(store Store, grid timegrid.Config) *AvailabilityService {
	return &AvailabilityService{store: store, grid: grid}
}

// Get returns the user's grid, creating the all-busy default on first read.
func (s *AvailabilityService) Get(ctx context.Context, userID int64, kind domain.UserKind) (*domain.Availability, error) {
	avail, err := s.store.Get(ctx, userID, kind)
	if err == nil {
		avail.Slots = s.grid.Normalize(avail.Slots)
		return avail, nil
	}
	if !errors.Is(err, domain.ErrNotSet) {
		return nil, err
	}

	avail = &domain.Availability{
		UserID: userID,
		Kind:   kind,
		Slots:  s.grid.NewGrid(),
	}
	if err := s.store.Set(ctx, avail); err != nil {
		return nil, err
	}
	return avail, nil
}

// Update replaces the user's grid. The grid must have the canonical shape.
func (s *AvailabilityService) Update(ctx context.Context, userID int64, kind domain.UserKind, slots timegrid.Grid) (*domain.Availability, error) {
	if !s.grid.ValidShape(slots) {
		return nil, fmt.Errorf("grid must be %dx%d: %w", s.grid.Days, s.grid.Bins, domain.ErrInvalidGrid)
	}

	avail := &domain.Availability{
		UserID: userID,
		Kind:   kind,
		Slots:  slots,
	}
	if err := s.store.Set(ctx, avail); err != nil {
		return nil, err
	}
	return avail, nil
}
