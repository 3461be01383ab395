package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/vv-pms/pms-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	const q = `
INSERT INTO projects (title, description, program_restrictions, required_students, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id;
`
	if p.Status == "" {
		p.Status = domain.StatusOpen
	}
	err := r.db.QueryRowContext(ctx, q,
		p.Title, p.Description, pq.Array(programsToStrings(p.ProgramRestrictions)),
		p.RequiredStudents, string(p.Status)).
		Scan(&p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID returns a single project.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `
SELECT id, title, description, program_restrictions, required_students, status
FROM projects
WHERE id = $1;
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// List returns all projects ordered by id.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT id, title, description, program_restrictions, required_students, status
FROM projects
ORDER BY id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// FindByIDs returns the projects with the given ids, keyed by id.
func (r *ProjectRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Project, error) {
	out := make(map[int64]domain.Project, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	const q = `
SELECT id, title, description, program_restrictions, required_students, status
FROM projects
WHERE id = ANY($1)
ORDER BY id;
`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := scanAll(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// Update overwrites title, description, restrictions, capacity and status.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	const q = `
UPDATE projects
SET title = $2, description = $3, program_restrictions = $4, required_students = $5, status = $6
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		p.ID, p.Title, p.Description, pq.Array(programsToStrings(p.ProgramRestrictions)),
		p.RequiredStudents, string(p.Status))
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

// Delete removes a project.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) scanOne(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var programs pq.StringArray
	var status string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &programs, &p.RequiredStudents, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	p.ProgramRestrictions = stringsToPrograms(programs)
	p.Status = domain.Status(status)
	return &p, nil
}

func scanAll(rows *sql.Rows) ([]domain.Project, error) {
	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		var programs pq.StringArray
		var status string
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &programs, &p.RequiredStudents, &status); err != nil {
			return nil, err
		}
		p.ProgramRestrictions = stringsToPrograms(programs)
		p.Status = domain.Status(status)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func programsToStrings(ps []domain.Program) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, string(p))
	}
	return out
}

func stringsToPrograms(ss []string) []domain.Program {
	out := make([]domain.Program, 0, len(ss))
	for _, s := range ss {
		out = append(out, domain.Program(s))
	}
	return out
}
