package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vv-pms/pms-backend/internal/projects/domain"
	"github.com/vv-pms/pms-backend/internal/projects/repository"
)

// OwnershipGateway is the slice of the allocation engine this module needs:
// on creation a project is immediately bound to its proposing professor.
type OwnershipGateway interface {
	AssignProjectOwner(ctx context.Context, projectID, professorID int64) error
	FindProjectOwnerID(ctx context.Context, projectID int64) (int64, bool, error)
}

// ProjectService handles project directory business logic
type ProjectService struct {
	repo    *repository.ProjectRepository
	gateway OwnershipGateway
}

// NewProjectService creates a new project service. The gateway is set after
// construction because the allocation engine depends on this service too.
func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// SetOwnershipGateway wires the allocation engine in once it exists.
func (s *ProjectService) SetOwnershipGateway(g OwnershipGateway) {
	s.gateway = g
}

// Add creates a project and assigns its owning professor through the
// allocation engine.
func (s *ProjectService) Add(ctx context.Context, title, description string, restrictions []domain.Program, requiredStudents int, professorID int64) (*domain.Project, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrInvalidProject)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is required: %w", domain.ErrInvalidProject)
	}
	if requiredStudents < 0 {
		return nil, fmt.Errorf("required students must not be negative: %w", domain.ErrInvalidProject)
	}
	for _, p := range restrictions {
		if !p.Valid() {
			return nil, fmt.Errorf("unknown program %q: %w", p, domain.ErrInvalidProject)
		}
	}

	project := &domain.Project{
		Title:               strings.TrimSpace(title),
		Description:         description,
		ProgramRestrictions: restrictions,
		RequiredStudents:    requiredStudents,
		Status:              domain.StatusOpen,
	}
	project, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	if s.gateway != nil && professorID != 0 {
		if err := s.gateway.AssignProjectOwner(ctx, project.ID, professorID); err != nil {
			return nil, err
		}
	}

	return project, nil
}

// GetByID returns a single project.
func (s *ProjectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all projects in id order.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx)
}

// FindByIDs returns projects keyed by id for fast lookups.
func (s *ProjectService) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Project, error) {
	return s.repo.FindByIDs(ctx, ids)
}

// Update overwrites an existing project.
func (s *ProjectService) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("project id is required: %w", domain.ErrInvalidProject)
	}
	return s.repo.Update(ctx, p)
}

// Delete removes a project from the directory.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
