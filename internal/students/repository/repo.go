package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	projectdomain "github.com/vv-pms/pms-backend/internal/projects/domain"
	"github.com/vv-pms/pms-backend/internal/students/domain"
)

// StudentRepository provides persistence operations for students
type StudentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const columns = `id, name, student_number, email, program, has_project`

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *domain.Student) (*domain.Student, error) {
	const q = `
INSERT INTO students (name, student_number, email, program, has_project)
VALUES ($1, $2, $3, $4, false)
RETURNING id, has_project;
`
	err := r.db.QueryRowContext(ctx, q, s.Name, s.StudentNumber, s.Email, string(s.Program)).
		Scan(&s.ID, &s.HasProject)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateEntry
		}
		return nil, err
	}
	return s, nil
}

// GetByID returns a single student.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM students WHERE id = $1;`, id))
}

// GetByEmail returns the student registered under the given email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM students WHERE lower(email) = lower($1);`, email))
}

// List returns all students ordered by id.
func (r *StudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM students ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// FindByIDs returns students keyed by id.
func (r *StudentRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Student, error) {
	out := make(map[int64]domain.Student, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columns+` FROM students WHERE id = ANY($1);`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := scanAll(rows)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		out[s.ID] = s
	}
	return out, nil
}

// SetHasProject flips the single-team-membership flag.
func (r *StudentRepository) SetHasProject(ctx context.Context, id int64, hasProject bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE students SET has_project = $2 WHERE id = $1;`, id, hasProject)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

// Update overwrites a student's directory fields (not the has_project flag).
func (r *StudentRepository) Update(ctx context.Context, s *domain.Student) error {
	const q = `
UPDATE students
SET name = $2, student_number = $3, email = $4, program = $5
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, s.ID, s.Name, s.StudentNumber, s.Email, string(s.Program))
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateEntry
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

func toProgram(s string) projectdomain.Program {
	return projectdomain.Program(s)
}

func (r *StudentRepository) scanOne(row *sql.Row) (*domain.Student, error) {
	var s domain.Student
	var program string
	err := row.Scan(&s.ID, &s.Name, &s.StudentNumber, &s.Email, &program, &s.HasProject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	s.Program = toProgram(program)
	return &s, nil
}

func scanAll(rows *sql.Rows) ([]domain.Student, error) {
	out := make([]domain.Student, 0, 16)
	for rows.Next() {
		var s domain.Student
		var program string
		if err := rows.Scan(&s.ID, &s.Name, &s.StudentNumber, &s.Email, &program, &s.HasProject); err != nil {
			return nil, err
		}
		s.Program = toProgram(program)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
