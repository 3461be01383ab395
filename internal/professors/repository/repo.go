package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/vv-pms/pms-backend/internal/professors/domain"
)

// ProfessorRepository provides persistence operations for professors
type ProfessorRepository struct {
	db *sql.DB
}

// NewProfessorRepository creates a new professor repository
func NewProfessorRepository(db *sql.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

// Create inserts a new professor.
func (r *ProfessorRepository) Create(ctx context.Context, name, email string) (*domain.Professor, error) {
	const q = `
INSERT INTO professors (name, email)
VALUES ($1, $2)
RETURNING id, name, email;
`
	var p domain.Professor
	err := r.db.QueryRowContext(ctx, q, name, email).Scan(&p.ID, &p.Name, &p.Email)
	if err != nil {
		// unique violation on email
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return &p, nil
}

// GetByID returns a single professor.
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*domain.Professor, error) {
	const q = `SELECT id, name, email FROM professors WHERE id = $1;`
	var p domain.Professor
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfessorNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByEmail returns the professor registered under the given email.
func (r *ProfessorRepository) GetByEmail(ctx context.Context, email string) (*domain.Professor, error) {
	const q = `SELECT id, name, email FROM professors WHERE lower(email) = lower($1);`
	var p domain.Professor
	err := r.db.QueryRowContext(ctx, q, email).Scan(&p.ID, &p.Name, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfessorNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all professors ordered by id.
func (r *ProfessorRepository) List(ctx context.Context) ([]domain.Professor, error) {
	const q = `SELECT id, name, email FROM professors ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Professor, 0, 16)
	for rows.Next() {
		var p domain.Professor
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByIDs returns professors keyed by id.
func (r *ProfessorRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Professor, error) {
	out := make(map[int64]domain.Professor, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	const q = `SELECT id, name, email FROM professors WHERE id = ANY($1);`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Professor
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites name and email.
func (r *ProfessorRepository) Update(ctx context.Context, p *domain.Professor) error {
	const q = `UPDATE professors SET name = $2, email = $3 WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Email)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrProfessorNotFound
	}
	return nil
}

// Delete removes a professor.
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM professors WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrProfessorNotFound
	}
	return nil
}
