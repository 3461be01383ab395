package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/vv-pms/pms-backend/internal/allocation/domain"
)

// AllocationRepository provides persistence operations for project
// allocations and their student rosters.
type AllocationRepository struct {
	db *sql.DB
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(db *sql.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// Create inserts an allocation with an empty roster.
func (r *AllocationRepository) Create(ctx context.Context, projectID, professorID int64) (*domain.ProjectAllocation, error) {
	const q = `
INSERT INTO project_allocations (project_id, professor_id)
VALUES ($1, $2)
RETURNING id;
`
	a := &domain.ProjectAllocation{
		ProjectID:   projectID,
		ProfessorID: professorID,
		StudentIDs:  []int64{},
	}
	err := r.db.QueryRowContext(ctx, q, projectID, professorID).Scan(&a.ID)
	if err != nil {
		// unique violation on project_id
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAllocationConflict
		}
		return nil, err
	}
	return a, nil
}

// FindByProjectID returns the allocation for a project with its roster.
func (r *AllocationRepository) FindByProjectID(ctx context.Context, projectID int64) (*domain.ProjectAllocation, error) {
	const q = `SELECT id, project_id, professor_id FROM project_allocations WHERE project_id = $1;`
	var a domain.ProjectAllocation
	err := r.db.QueryRowContext(ctx, q, projectID).Scan(&a.ID, &a.ProjectID, &a.ProfessorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAllocationNotFound
		}
		return nil, err
	}
	if a.StudentIDs, err = r.roster(ctx, a.ID); err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByProfessorID returns all allocations owned by a professor.
func (r *AllocationRepository) FindByProfessorID(ctx context.Context, professorID int64) ([]domain.ProjectAllocation, error) {
	const q = `SELECT id, project_id, professor_id FROM project_allocations WHERE professor_id = $1 ORDER BY id;`
	return r.queryMany(ctx, q, professorID)
}

// FindAll returns every allocation with its roster, in id order.
func (r *AllocationRepository) FindAll(ctx context.Context) ([]domain.ProjectAllocation, error) {
	const q = `SELECT id, project_id, professor_id FROM project_allocations ORDER BY id;`
	return r.queryMany(ctx, q)
}

// FindByProjectIDs returns allocations for the given projects, keyed by
// project id.
func (r *AllocationRepository) FindByProjectIDs(ctx context.Context, projectIDs []int64) (map[int64]domain.ProjectAllocation, error) {
	out := make(map[int64]domain.ProjectAllocation, len(projectIDs))
	if len(projectIDs) == 0 {
		return out, nil
	}

	const q = `SELECT id, project_id, professor_id FROM project_allocations WHERE project_id = ANY($1) ORDER BY id;`
	list, err := r.queryMany(ctx, q, pq.Array(projectIDs))
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		out[a.ProjectID] = a
	}
	return out, nil
}

// AddStudent appends a student to an allocation's roster.
func (r *AllocationRepository) AddStudent(ctx context.Context, allocationID, studentID int64) error {
	const q = `INSERT INTO allocation_students (allocation_id, student_id) VALUES ($1, $2);`
	_, err := r.db.ExecContext(ctx, q, allocationID, studentID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAllocationConflict
		}
		return err
	}
	return nil
}

// RemoveStudent drops a student from an allocation's roster.
func (r *AllocationRepository) RemoveStudent(ctx context.Context, allocationID, studentID int64) error {
	const q = `DELETE FROM allocation_students WHERE allocation_id = $1 AND student_id = $2;`
	res, err := r.db.ExecContext(ctx, q, allocationID, studentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}

// Delete removes an allocation and its roster rows in one transaction.
func (r *AllocationRepository) Delete(ctx context.Context, projectID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const delStudents = `
DELETE FROM allocation_students
WHERE allocation_id IN (SELECT id FROM project_allocations WHERE project_id = $1);
`
	if _, err := tx.ExecContext(ctx, delStudents, projectID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM project_allocations WHERE project_id = $1;`, projectID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAllocationNotFound
	}

	return tx.Commit()
}

func (r *AllocationRepository) queryMany(ctx context.Context, q string, args ...any) ([]domain.ProjectAllocation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectAllocation, 0, 16)
	for rows.Next() {
		var a domain.ProjectAllocation
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.ProfessorID); err != nil {
			return nil, err
		}
		a.StudentIDs = []int64{}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].StudentIDs, err = r.roster(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *AllocationRepository) roster(ctx context.Context, allocationID int64) ([]int64, error) {
	const q = `SELECT student_id FROM allocation_students WHERE allocation_id = $1 ORDER BY student_id;`
	rows, err := r.db.QueryContext(ctx, q, allocationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0, 4)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
