package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vv-pms/pms-backend/internal/availability/domain"
	"github.com/vv-pms/pms-backend/internal/timegrid"
)

type fakeStore struct {
	grids map[string]*domain.Availability
}

func newFakeStore() *fakeStore {
	return &fakeStore{grids: make(map[string]*domain.Availability)}
}

func key(userID int64, kind domain.UserKind) string {
	return fmt.Sprintf("%s:%d", kind, userID)
}

func (f *fakeStore) Get(_ context.Context, userID int64, kind domain.UserKind) (*domain.Availability, error) {
	a, ok := f.grids[key(userID, kind)]
	if !ok {
		return nil, domain.ErrNotSet
	}
	c := *a
	return &c, nil
}

func (f *fakeStore) Set(_ context.Context, avail *domain.Availability) error {
	c := *avail
	f.grids[key(avail.UserID, avail.Kind)] = &c
	return nil
}

func TestAvailabilityGet(t *testing.T) {
	ctx := context.Background()
	cfg := timegrid.Default()

	t.Run("first read creates and persists the all-busy default", func(t *testing.T) {
		store := newFakeStore()
		svc := NewAvailabilityService(store, cfg)

		got, err := svc.Get(ctx, 7, domain.KindStudent)
		require.NoError(t, err)
		require.True(t, cfg.ValidShape(got.Slots))
		for d := range got.Slots {
			for _, free := range got.Slots[d] {
				assert.False(t, free)
			}
		}

		// The default was written through, not just returned.
		_, err = store.Get(ctx, 7, domain.KindStudent)
		require.NoError(t, err)
	})

	t.Run("stored ragged grids are normalized on read", func(t *testing.T) {
		store := newFakeStore()
		require.NoError(t, store.Set(ctx, &domain.Availability{
			UserID: 8,
			Kind:   domain.KindProfessor,
			Slots:  timegrid.Grid{{true, true}},
		}))
		svc := NewAvailabilityService(store, cfg)

		got, err := svc.Get(ctx, 8, domain.KindProfessor)
		require.NoError(t, err)
		require.True(t, cfg.ValidShape(got.Slots))
		assert.True(t, got.Slots[0][0])
		assert.True(t, got.Slots[0][1])
		assert.False(t, got.Slots[0][2])
		assert.False(t, got.Slots[1][0])
	})
}

func TestAvailabilityUpdate(t *testing.T) {
	ctx := context.Background()
	cfg := timegrid.Default()

	t.Run("rejects a grid of the wrong shape", func(t *testing.T) {
		svc := NewAvailabilityService(newFakeStore(), cfg)

		_, err := svc.Update(ctx, 7, domain.KindStudent, timegrid.Grid{{true}})
		require.ErrorIs(t, err, domain.ErrInvalidGrid)
	})

	t.Run("stores a canonical grid", func(t *testing.T) {
		store := newFakeStore()
		svc := NewAvailabilityService(store, cfg)

		grid := cfg.NewGrid()
		grid[2][5] = true

		got, err := svc.Update(ctx, 7, domain.KindStudent, grid)
		require.NoError(t, err)
		assert.True(t, got.Slots[2][5])

		stored, err := store.Get(ctx, 7, domain.KindStudent)
		require.NoError(t, err)
		assert.True(t, stored.Slots[2][5])
	})
}
