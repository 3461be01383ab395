package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/vv-pms/pms-backend/internal/allocation/domain"
	professordomain "github.com/vv-pms/pms-backend/internal/professors/domain"
	projectdomain "github.com/vv-pms/pms-backend/internal/projects/domain"
	studentdomain "github.com/vv-pms/pms-backend/internal/students/domain"
)

// ProjectDirectory is the slice of the project collaborator this engine reads.
type ProjectDirectory interface {
	GetByID(ctx context.Context, id int64) (*projectdomain.Project, error)
	List(ctx context.Context) ([]projectdomain.Project, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]projectdomain.Project, error)
}

// ProfessorDirectory is the slice of the professor collaborator this engine reads.
type ProfessorDirectory interface {
	GetByID(ctx context.Context, id int64) (*professordomain.Professor, error)
	List(ctx context.Context) ([]professordomain.Professor, error)
}

// StudentDirectory reads students and writes through the has-project flag.
type StudentDirectory interface {
	GetByID(ctx context.Context, id int64) (*studentdomain.Student, error)
	List(ctx context.Context) ([]studentdomain.Student, error)
	SetHasProject(ctx context.Context, id int64, hasProject bool) error
}

// Store is the persistence contract for allocation records.
type Store interface {
	Create(ctx context.Context, projectID, professorID int64) (*domain.ProjectAllocation, error)
	FindByProjectID(ctx context.Context, projectID int64) (*domain.ProjectAllocation, error)
	FindByProfessorID(ctx context.Context, professorID int64) ([]domain.ProjectAllocation, error)
	FindAll(ctx context.Context) ([]domain.ProjectAllocation, error)
	FindByProjectIDs(ctx context.Context, projectIDs []int64) (map[int64]domain.ProjectAllocation, error)
	AddStudent(ctx context.Context, allocationID, studentID int64) error
	RemoveStudent(ctx context.Context, allocationID, studentID int64) error
	Delete(ctx context.Context, projectID int64) error
}

// AllocationService owns the project-professor ownership relation and the
// project-student rosters, and enforces capacity, single-team-membership
// and program-eligibility.
type AllocationService struct {
	store      Store
	projects   ProjectDirectory
	professors ProfessorDirectory
	students   StudentDirectory
}

// NewAllocationService creates a new allocation service
func NewAllocationService(store Store, projects ProjectDirectory, professors ProfessorDirectory, students StudentDirectory) *AllocationService {
	return &AllocationService{
		store:      store,
		projects:   projects,
		professors: professors,
		students:   students,
	}
}

// AssignProfessor binds a project to its owning professor, creating a new
// allocation with an empty roster. Fails if either side is missing or the
// project is already allocated.
func (s *AllocationService) AssignProfessor(ctx context.Context, projectID, professorID int64) (*domain.ProjectAllocation, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.professors.GetByID(ctx, professorID); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByProjectID(ctx, projectID); err == nil {
		return nil, fmt.Errorf("project %d is already allocated to a professor: %w", projectID, domain.ErrAllocationConflict)
	} else if !errors.Is(err, domain.ErrAllocationNotFound) {
		return nil, err
	}

	return s.store.Create(ctx, projectID, professorID)
}

// RemoveProfessorAllocation deletes a project's allocation and frees every
// student on its roster.
func (s *AllocationService) RemoveProfessorAllocation(ctx context.Context, projectID int64) error {
	allocation, err := s.store.FindByProjectID(ctx, projectID)
	if err != nil {
		return err
	}

	for _, studentID := range allocation.StudentIDs {
		if err := s.students.SetHasProject(ctx, studentID, false); err != nil {
			return err
		}
	}

	return s.store.Delete(ctx, projectID)
}

// AssignStudent adds a student to a project's roster. Checks run in a fixed
// order so failure messages are deterministic: allocation exists, project
// and student exist, not already on this roster, not on any other team,
// capacity not reached, program allowed.
func (s *AllocationService) AssignStudent(ctx context.Context, projectID, studentID int64) (*domain.ProjectAllocation, error) {
	allocation, err := s.store.FindByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrAllocationNotFound) {
			return nil, fmt.Errorf("project %d is not yet allocated: %w", projectID, domain.ErrAllocationNotFound)
		}
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if allocation.HasStudent(studentID) {
		return nil, fmt.Errorf("student %d is already assigned to this project: %w", studentID, domain.ErrAllocationConflict)
	}
	if student.HasProject {
		return nil, fmt.Errorf("student %d already has an assigned project: %w", studentID, domain.ErrAllocationConflict)
	}
	if len(allocation.StudentIDs) >= project.RequiredStudents {
		return nil, fmt.Errorf("project %d is already full: %w", projectID, domain.ErrAllocationConflict)
	}
	if !project.IsProgramAllowed(student.Program) {
		return nil, fmt.Errorf("student's program (%s) does not match restrictions: %w", student.Program, domain.ErrAllocationConflict)
	}

	if err := s.store.AddStudent(ctx, allocation.ID, studentID); err != nil {
		return nil, err
	}
	if err := s.students.SetHasProject(ctx, studentID, true); err != nil {
		return nil, err
	}

	allocation.StudentIDs = append(allocation.StudentIDs, studentID)
	return allocation, nil
}

// UnassignStudent removes a student from a project's roster and clears
// their has-project flag.
func (s *AllocationService) UnassignStudent(ctx context.Context, projectID, studentID int64) (*domain.ProjectAllocation, error) {
	allocation, err := s.store.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !allocation.HasStudent(studentID) {
		return nil, fmt.Errorf("student %d is not assigned to this project: %w", studentID, domain.ErrAllocationNotFound)
	}

	if err := s.store.RemoveStudent(ctx, allocation.ID, studentID); err != nil {
		return nil, err
	}
	if err := s.students.SetHasProject(ctx, studentID, false); err != nil {
		return nil, err
	}

	kept := allocation.StudentIDs[:0]
	for _, id := range allocation.StudentIDs {
		if id != studentID {
			kept = append(kept, id)
		}
	}
	allocation.StudentIDs = kept
	return allocation, nil
}

// FindByProjectID returns the allocation for a project.
func (s *AllocationService) FindByProjectID(ctx context.Context, projectID int64) (*domain.ProjectAllocation, error) {
	return s.store.FindByProjectID(ctx, projectID)
}

// FindByStudentID returns the allocation whose roster contains the student.
// Allocations are a small set, so a linear scan is fine.
func (s *AllocationService) FindByStudentID(ctx context.Context, studentID int64) (*domain.ProjectAllocation, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].HasStudent(studentID) {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("student %d has no allocation: %w", studentID, domain.ErrAllocationNotFound)
}

// StudentsByProjectID returns a project's roster, empty when the project
// has no allocation.
func (s *AllocationService) StudentsByProjectID(ctx context.Context, projectID int64) ([]int64, error) {
	allocation, err := s.store.FindByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrAllocationNotFound) {
			return []int64{}, nil
		}
		return nil, err
	}
	return allocation.StudentIDs, nil
}

// ProjectsByProfessorID returns the projects allocated to a professor.
func (s *AllocationService) ProjectsByProfessorID(ctx context.Context, professorID int64) ([]projectdomain.Project, error) {
	allocations, err := s.store.FindByProfessorID(ctx, professorID)
	if err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		return []projectdomain.Project{}, nil
	}

	ids := make([]int64, 0, len(allocations))
	for _, a := range allocations {
		ids = append(ids, a.ProjectID)
	}
	byID, err := s.projects.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]projectdomain.Project, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// FindAll returns every allocation.
func (s *AllocationService) FindAll(ctx context.Context) ([]domain.ProjectAllocation, error) {
	return s.store.FindAll(ctx)
}

// AllocationsByProjectIDs batch-looks-up allocations keyed by project id.
func (s *AllocationService) AllocationsByProjectIDs(ctx context.Context, projectIDs []int64) (map[int64]domain.ProjectAllocation, error) {
	return s.store.FindByProjectIDs(ctx, projectIDs)
}

// StudentToProjectIDs maps every assigned student to their project.
func (s *AllocationService) StudentToProjectIDs(ctx context.Context) (map[int64]int64, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]int64)
	for _, a := range all {
		for _, sid := range a.StudentIDs {
			out[sid] = a.ProjectID
		}
	}
	return out, nil
}

// RunBestEffortAllocation greedily fills the system in two phases. Phase 1
// gives every unallocated project to the first professor in directory
// order; phase 2 fills each roster from the student directory in order.
// Every inner failure is inspected, logged and skipped; the pass itself
// always completes. No choice is ever revisited.
func (s *AllocationService) RunBestEffortAllocation(ctx context.Context) error {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return err
	}

	professors, err := s.professors.List(ctx)
	if err != nil {
		return err
	}

	for _, project := range projects {
		if _, err := s.store.FindByProjectID(ctx, project.ID); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrAllocationNotFound) {
			return err
		}
		if len(professors) == 0 {
			continue
		}
		if _, err := s.AssignProfessor(ctx, project.ID, professors[0].ID); err != nil {
			log.Printf("[allocation] best-effort: skip owner for project %d: %v", project.ID, err)
		}
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return err
	}

	allocations, err := s.store.FindAll(ctx)
	if err != nil {
		return err
	}

	for _, allocation := range allocations {
		project, err := s.projects.GetByID(ctx, allocation.ProjectID)
		if err != nil {
			continue
		}

		assigned := len(allocation.StudentIDs)
		for i := range students {
			student := &students[i]
			if student.HasProject {
				continue
			}
			if assigned >= project.RequiredStudents {
				break
			}
			if !project.IsProgramAllowed(student.Program) {
				continue
			}

			if _, err := s.AssignStudent(ctx, project.ID, student.ID); err != nil {
				log.Printf("[allocation] best-effort: skip student %d for project %d: %v", student.ID, project.ID, err)
				continue
			}
			student.HasProject = true
			assigned++
		}
	}

	return nil
}

// AssignProjectOwner implements the ownership gateway the project
// directory uses when a professor proposes a new project.
func (s *AllocationService) AssignProjectOwner(ctx context.Context, projectID, professorID int64) error {
	_, err := s.AssignProfessor(ctx, projectID, professorID)
	return err
}

// FindProjectOwnerID reports the owning professor of a project, if any.
func (s *AllocationService) FindProjectOwnerID(ctx context.Context, projectID int64) (int64, bool, error) {
	allocation, err := s.store.FindByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrAllocationNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return allocation.ProfessorID, true, nil
}
