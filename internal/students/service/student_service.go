package service

import (
	"context"
	"fmt"
	"strings"

	projectdomain "github.com/vv-pms/pms-backend/internal/projects/domain"
	"github.com/vv-pms/pms-backend/internal/students/domain"
	"github.com/vv-pms/pms-backend/internal/students/repository"
)

// StudentService handles student directory business logic
type StudentService struct {
	repo *repository.StudentRepository
}

// NewStudentService creates a new student service
func NewStudentService(repo *repository.StudentRepository) *StudentService {
	return &StudentService{repo: repo}
}

// Add registers a new student. Student number and email must be unique.
func (s *StudentService) Add(ctx context.Context, name, studentNumber, email string, program projectdomain.Program) (*domain.Student, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(studentNumber) == "" || strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("name, student number and email are required: %w", domain.ErrInvalidStudent)
	}
	if !program.Valid() {
		return nil, fmt.Errorf("unknown program %q: %w", program, domain.ErrInvalidStudent)
	}

	student := &domain.Student{
		Name:          strings.TrimSpace(name),
		StudentNumber: strings.TrimSpace(studentNumber),
		Email:         strings.TrimSpace(email),
		Program:       program,
	}
	return s.repo.Create(ctx, student)
}

// GetByID returns a single student.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail returns the student registered under the given email.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return s.repo.GetByEmail(ctx, email)
}

// List returns all students in id order.
func (s *StudentService) List(ctx context.Context) ([]domain.Student, error) {
	return s.repo.List(ctx)
}

// ListWithoutProject returns students that are not on any team yet.
func (s *StudentService) ListWithoutProject(ctx context.Context) ([]domain.Student, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Student, 0, len(all))
	for _, st := range all {
		if !st.HasProject {
			out = append(out, st)
		}
	}
	return out, nil
}

// FindByIDs returns students keyed by id for fast lookups.
func (s *StudentService) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Student, error) {
	return s.repo.FindByIDs(ctx, ids)
}

// SetHasProject flips the single-team-membership flag. Called by the
// allocation engine after a successful (un)assignment.
func (s *StudentService) SetHasProject(ctx context.Context, id int64, hasProject bool) error {
	return s.repo.SetHasProject(ctx, id, hasProject)
}

// Update changes a student's directory fields.
func (s *StudentService) Update(ctx context.Context, id int64, name, studentNumber, email string, program projectdomain.Program) (*domain.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(studentNumber) == "" || strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("name, student number and email are required: %w", domain.ErrInvalidStudent)
	}
	if !program.Valid() {
		return nil, fmt.Errorf("unknown program %q: %w", program, domain.ErrInvalidStudent)
	}

	student.Name = strings.TrimSpace(name)
	student.StudentNumber = strings.TrimSpace(studentNumber)
	student.Email = strings.TrimSpace(email)
	student.Program = program
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}
