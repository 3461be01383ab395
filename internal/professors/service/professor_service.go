package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vv-pms/pms-backend/internal/professors/domain"
	"github.com/vv-pms/pms-backend/internal/professors/repository"
)

// ProfessorService handles professor directory business logic
type ProfessorService struct {
	repo *repository.ProfessorRepository
}

// NewProfessorService creates a new professor service
func NewProfessorService(repo *repository.ProfessorRepository) *ProfessorService {
	return &ProfessorService{repo: repo}
}

// Add registers a new professor with a unique email.
func (s *ProfessorService) Add(ctx context.Context, name, email string) (*domain.Professor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalidProfessor)
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("email is required: %w", domain.ErrInvalidProfessor)
	}
	return s.repo.Create(ctx, strings.TrimSpace(name), strings.TrimSpace(email))
}

// GetByID returns a single professor.
func (s *ProfessorService) GetByID(ctx context.Context, id int64) (*domain.Professor, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail returns the professor registered under the given email.
func (s *ProfessorService) GetByEmail(ctx context.Context, email string) (*domain.Professor, error) {
	return s.repo.GetByEmail(ctx, email)
}

// List returns all professors in id order.
func (s *ProfessorService) List(ctx context.Context) ([]domain.Professor, error) {
	return s.repo.List(ctx)
}

// FindByIDs returns professors keyed by id for fast lookups.
func (s *ProfessorService) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Professor, error) {
	return s.repo.FindByIDs(ctx, ids)
}

// Modify updates a professor's name and email.
func (s *ProfessorService) Modify(ctx context.Context, id int64, name, email string) (*domain.Professor, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("name and email are required: %w", domain.ErrInvalidProfessor)
	}
	p.Name = strings.TrimSpace(name)
	p.Email = strings.TrimSpace(email)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a professor from the directory.
func (s *ProfessorService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
