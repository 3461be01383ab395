package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vv-pms/pms-backend/internal/rooms/domain"
	"github.com/vv-pms/pms-backend/internal/timegrid"
)

// RoomRepository provides persistence operations for rooms. The availability
// grid is stored as a JSON text column.
type RoomRepository struct {
	db *sql.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a new room.
func (r *RoomRepository) Create(ctx context.Context, name string, availability timegrid.Grid) (*domain.Room, error) {
	data, err := json.Marshal(availability)
	if err != nil {
		return nil, fmt.Errorf("marshal availability: %w", err)
	}

	const q = `
INSERT INTO rooms (name, availability)
VALUES ($1, $2)
RETURNING id;
`
	room := &domain.Room{Name: name, Availability: availability}
	if err := r.db.QueryRowContext(ctx, q, name, string(data)).Scan(&room.ID); err != nil {
		return nil, err
	}
	return room, nil
}

// ExistsByName reports whether a room with the given name exists,
// case-insensitively.
func (r *RoomRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM rooms WHERE lower(name) = lower($1));`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetByID returns a single room.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	const q = `SELECT id, name, availability FROM rooms WHERE id = $1;`
	var room domain.Room
	var data string
	err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Name, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &room.Availability); err != nil {
		return nil, fmt.Errorf("unmarshal availability for room %d: %w", id, err)
	}
	return &room, nil
}

// List returns all rooms ordered by id.
func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	const q = `SELECT id, name, availability FROM rooms ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Room, 0, 8)
	for rows.Next() {
		var room domain.Room
		var data string
		if err := rows.Scan(&room.ID, &room.Name, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &room.Availability); err != nil {
			return nil, fmt.Errorf("unmarshal availability for room %d: %w", room.ID, err)
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateName renames a room.
func (r *RoomRepository) UpdateName(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET name = $2 WHERE id = $1;`, id, name)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// UpdateAvailability replaces a room's weekly grid.
func (r *RoomRepository) UpdateAvailability(ctx context.Context, id int64, availability timegrid.Grid) error {
	data, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET availability = $2 WHERE id = $1;`, id, string(data))
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// Delete removes a room.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
