package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vv-pms/pms-backend/internal/presentation/domain"
)

// SlotRepository provides persistence operations for presentation slots
type SlotRepository struct {
	db *sql.DB
}

// NewSlotRepository creates a new slot repository
func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

const columns = `id, project_id, room_id, day_index, start_bin_index, duration_bins`

// Upsert writes a project's slot, overwriting any previous booking for the
// same project in place.
func (r *SlotRepository) Upsert(ctx context.Context, slot *domain.PresentationSlot) (*domain.PresentationSlot, error) {
	const q = `
INSERT INTO presentation_slots (project_id, room_id, day_index, start_bin_index, duration_bins)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (project_id) DO UPDATE
SET room_id = excluded.room_id,
    day_index = excluded.day_index,
    start_bin_index = excluded.start_bin_index,
    duration_bins = excluded.duration_bins
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q,
		slot.ProjectID, slot.RoomID, slot.DayIndex, slot.StartBinIndex, slot.DurationBins).
		Scan(&slot.ID)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// FindByProjectID returns a project's slot.
func (r *SlotRepository) FindByProjectID(ctx context.Context, projectID int64) (*domain.PresentationSlot, error) {
	const q = `SELECT ` + columns + ` FROM presentation_slots WHERE project_id = $1;`
	var s domain.PresentationSlot
	err := r.db.QueryRowContext(ctx, q, projectID).
		Scan(&s.ID, &s.ProjectID, &s.RoomID, &s.DayIndex, &s.StartBinIndex, &s.DurationBins)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByRoomID returns every slot booked in a room.
func (r *SlotRepository) FindByRoomID(ctx context.Context, roomID int64) ([]domain.PresentationSlot, error) {
	const q = `SELECT ` + columns + ` FROM presentation_slots WHERE room_id = $1 ORDER BY day_index, start_bin_index;`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// FindAll returns every booked slot.
func (r *SlotRepository) FindAll(ctx context.Context) ([]domain.PresentationSlot, error) {
	const q = `SELECT ` + columns + ` FROM presentation_slots ORDER BY room_id, day_index, start_bin_index;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// Delete removes a project's slot. Deleting a project without a slot is a
// no-op, reported through the bool.
func (r *SlotRepository) Delete(ctx context.Context, projectID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM presentation_slots WHERE project_id = $1;`, projectID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanAll(rows *sql.Rows) ([]domain.PresentationSlot, error) {
	out := make([]domain.PresentationSlot, 0, 16)
	for rows.Next() {
		var s domain.PresentationSlot
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.RoomID, &s.DayIndex, &s.StartBinIndex, &s.DurationBins); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
