package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vv-pms/pms-backend/internal/presentation/domain"
)

func setupRepo(t *testing.T) (*SlotRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewSlotRepository(db), mock, db
}

func TestSlotRepository_Upsert(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO presentation_slots`).
		WithArgs(int64(1), int64(5), 0, 3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	slot, err := repo.Upsert(context.Background(), &domain.PresentationSlot{
		ProjectID: 1, RoomID: 5, DayIndex: 0, StartBinIndex: 3, DurationBins: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), slot.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepository_FindByProjectID(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM presentation_slots WHERE project_id`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "room_id", "day_index", "start_bin_index", "duration_bins"}).
				AddRow(int64(7), int64(1), int64(5), 2, 6, 1))

		slot, err := repo.FindByProjectID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(5), slot.RoomID)
		assert.Equal(t, 2, slot.DayIndex)
		assert.Equal(t, 6, slot.StartBinIndex)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM presentation_slots WHERE project_id`).
			WithArgs(int64(42)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByProjectID(context.Background(), 42)
		require.ErrorIs(t, err, domain.ErrSlotNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSlotRepository_FindByRoomID(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM presentation_slots WHERE room_id`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "room_id", "day_index", "start_bin_index", "duration_bins"}).
			AddRow(int64(7), int64(1), int64(5), 0, 0, 1).
			AddRow(int64(8), int64(2), int64(5), 0, 1, 1))

	slots, err := repo.FindByRoomID(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, int64(1), slots[0].ProjectID)
	assert.Equal(t, int64(2), slots[1].ProjectID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepository_Delete(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("removes the slot", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM presentation_slots`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		removed, err := repo.Delete(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("no slot is a quiet no-op", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM presentation_slots`).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		removed, err := repo.Delete(context.Background(), 42)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
