package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	allocdomain "github.com/vv-pms/pms-backend/internal/allocation/domain"
	availdomain "github.com/vv-pms/pms-backend/internal/availability/domain"
	"github.com/vv-pms/pms-backend/internal/presentation/domain"
	professordomain "github.com/vv-pms/pms-backend/internal/professors/domain"
	projectdomain "github.com/vv-pms/pms-backend/internal/projects/domain"
	roomdomain "github.com/vv-pms/pms-backend/internal/rooms/domain"
	studentdomain "github.com/vv-pms/pms-backend/internal/students/domain"
	"github.com/vv-pms/pms-backend/internal/timegrid"
)

// AllocationDirectory is the slice of the allocation engine this engine reads.
type AllocationDirectory interface {
	FindByProjectID(ctx context.Context, projectID int64) (*allocdomain.ProjectAllocation, error)
	FindAll(ctx context.Context) ([]allocdomain.ProjectAllocation, error)
}

// RoomDirectory is the slice of the room collaborator this engine reads.
type RoomDirectory interface {
	GetByID(ctx context.Context, id int64) (*roomdomain.Room, error)
	List(ctx context.Context) ([]roomdomain.Room, error)
}

// AvailabilityStore hands out per-user weekly grids.
type AvailabilityStore interface {
	Get(ctx context.Context, userID int64, kind availdomain.UserKind) (*availdomain.Availability, error)
}

// ProjectDirectory is the slice of the project collaborator this engine reads.
type ProjectDirectory interface {
	GetByID(ctx context.Context, id int64) (*projectdomain.Project, error)
}

// ProfessorDirectory is the slice of the professor collaborator this engine reads.
type ProfessorDirectory interface {
	GetByID(ctx context.Context, id int64) (*professordomain.Professor, error)
}

// StudentDirectory is the slice of the student collaborator this engine reads.
type StudentDirectory interface {
	GetByID(ctx context.Context, id int64) (*studentdomain.Student, error)
}

// SlotStore is the persistence contract for presentation slots.
type SlotStore interface {
	Upsert(ctx context.Context, slot *domain.PresentationSlot) (*domain.PresentationSlot, error)
	FindByProjectID(ctx context.Context, projectID int64) (*domain.PresentationSlot, error)
	FindByRoomID(ctx context.Context, roomID int64) ([]domain.PresentationSlot, error)
	FindAll(ctx context.Context) ([]domain.PresentationSlot, error)
	Delete(ctx context.Context, projectID int64) (bool, error)
}

// PresentationService schedules allocated projects into room/time slots
// that every participant (room, professor, all assigned students) is free
// for.
type PresentationService struct {
	slots        SlotStore
	rooms        RoomDirectory
	availability AvailabilityStore
	allocations  AllocationDirectory
	projects     ProjectDirectory
	professors   ProfessorDirectory
	students     StudentDirectory
	grid         timegrid.Config
}

// NewPresentationService creates a new presentation service
func NewPresentationService(
	slots SlotStore,
	rooms RoomDirectory,
	availability AvailabilityStore,
	allocations AllocationDirectory,
	projects ProjectDirectory,
	professors ProfessorDirectory,
	students StudentDirectory,
	grid timegrid.Config,
) *PresentationService {
	return &PresentationService{
		slots:        slots,
		rooms:        rooms,
		availability: availability,
		allocations:  allocations,
		projects:     projects,
		professors:   professors,
		students:     students,
		grid:         grid,
	}
}

// AvailableSlots enumerates every valid start position for a project's
// presentation in the given room: the cell-wise intersection of room,
// professor and all assigned students' grids, minus bins already booked by
// other projects in that room. A project with no allocation or an empty
// roster has no candidates.
func (s *PresentationService) AvailableSlots(ctx context.Context, projectID, roomID int64) ([]domain.SlotOption, error) {
	allocation, err := s.allocations.FindByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, allocdomain.ErrAllocationNotFound) {
			return []domain.SlotOption{}, nil
		}
		return nil, err
	}
	if len(allocation.StudentIDs) == 0 {
		return []domain.SlotOption{}, nil
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomdomain.ErrRoomNotFound) {
			return []domain.SlotOption{}, nil
		}
		return nil, err
	}

	if _, err := s.professors.GetByID(ctx, allocation.ProfessorID); err != nil {
		if errors.Is(err, professordomain.ErrProfessorNotFound) {
			return []domain.SlotOption{}, nil
		}
		return nil, err
	}
	profGrid, err := s.gridFor(ctx, allocation.ProfessorID, availdomain.KindProfessor)
	if err != nil {
		return nil, err
	}

	grids := []timegrid.Grid{room.Availability, profGrid}
	for _, studentID := range allocation.StudentIDs {
		if _, err := s.students.GetByID(ctx, studentID); err != nil {
			if errors.Is(err, studentdomain.ErrStudentNotFound) {
				continue // stale roster entry, not a scheduling failure
			}
			return nil, err
		}
		sg, err := s.gridFor(ctx, studentID, availdomain.KindStudent)
		if err != nil {
			return nil, err
		}
		grids = append(grids, sg)
	}

	intersection := s.grid.Intersect(grids...)

	occupied, err := s.occupiedBinsForRoom(ctx, roomID, projectID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SlotOption, 0, 16)
	for d := 0; d < s.grid.Days; d++ {
		for t := 0; t <= s.grid.Bins-s.grid.DurationBins; t++ {
			if !windowFree(intersection[d], t, s.grid.DurationBins) {
				continue
			}
			if overlapsOccupied(occupied, d, t, s.grid.DurationBins) {
				continue
			}
			out = append(out, domain.SlotOption{
				DayIndex:      d,
				StartBinIndex: t,
				Label:         s.grid.SlotLabel(d, t, s.grid.DurationBins),
			})
		}
	}
	return out, nil
}

// AssignPresentation books a project into a room at a weekly position,
// overwriting the project's previous slot in place if one exists. The
// project's own booking never counts as a conflict, so rescheduling within
// the same room works.
func (s *PresentationService) AssignPresentation(ctx context.Context, projectID, roomID int64, dayIndex, startBinIndex int) (*domain.PresentationSlot, error) {
	if !s.grid.ValidDay(dayIndex) {
		return nil, fmt.Errorf("invalid day index %d: %w", dayIndex, domain.ErrInvalidSlot)
	}
	if !s.grid.ValidBin(startBinIndex) || startBinIndex+s.grid.DurationBins > s.grid.Bins {
		return nil, fmt.Errorf("invalid start-bin index %d: %w", startBinIndex, domain.ErrInvalidSlot)
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	occupied, err := s.occupiedBinsForRoom(ctx, roomID, projectID)
	if err != nil {
		return nil, err
	}
	if overlapsOccupied(occupied, dayIndex, startBinIndex, s.grid.DurationBins) {
		return nil, domain.ErrRoomBooked
	}

	slot := &domain.PresentationSlot{
		ProjectID:     projectID,
		RoomID:        roomID,
		DayIndex:      dayIndex,
		StartBinIndex: startBinIndex,
		DurationBins:  s.grid.DurationBins,
	}
	return s.slots.Upsert(ctx, slot)
}

// UnassignPresentation removes a project's slot. Unassigning an
// unscheduled project is not an error.
func (s *PresentationService) UnassignPresentation(ctx context.Context, projectID int64) error {
	_, err := s.slots.Delete(ctx, projectID)
	return err
}

// FindByProjectID returns a project's slot.
func (s *PresentationService) FindByProjectID(ctx context.Context, projectID int64) (*domain.PresentationSlot, error) {
	return s.slots.FindByProjectID(ctx, projectID)
}

// DescribeSlot renders the human label for a slot, or "" for nil.
func (s *PresentationService) DescribeSlot(slot *domain.PresentationSlot) string {
	if slot == nil {
		return ""
	}
	return s.grid.SlotLabel(slot.DayIndex, slot.StartBinIndex, slot.DurationBins)
}

// RunBestEffortSchedule walks every allocated project with students and no
// slot yet, and books the first room and earliest candidate that works.
// Failed attempts are logged and skipped; nothing is ever revisited.
func (s *PresentationService) RunBestEffortSchedule(ctx context.Context) error {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		return nil
	}

	allocations, err := s.allocations.FindAll(ctx)
	if err != nil {
		return err
	}

	for _, allocation := range allocations {
		if len(allocation.StudentIDs) == 0 {
			continue
		}
		if _, err := s.projects.GetByID(ctx, allocation.ProjectID); err != nil {
			continue
		}
		if _, err := s.slots.FindByProjectID(ctx, allocation.ProjectID); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrSlotNotFound) {
			return err
		}

		for _, room := range rooms {
			options, err := s.AvailableSlots(ctx, allocation.ProjectID, room.ID)
			if err != nil {
				log.Printf("[presentation] best-effort: slots for project %d room %d: %v", allocation.ProjectID, room.ID, err)
				continue
			}
			if len(options) == 0 {
				continue
			}

			first := options[0]
			if _, err := s.AssignPresentation(ctx, allocation.ProjectID, room.ID, first.DayIndex, first.StartBinIndex); err != nil {
				log.Printf("[presentation] best-effort: assign project %d room %d: %v", allocation.ProjectID, room.ID, err)
				continue
			}
			break
		}
	}

	return nil
}

// PresentationRows builds the overview rows for every allocated project
// with a non-empty roster.
func (s *PresentationService) PresentationRows(ctx context.Context) ([]domain.PresentationRow, error) {
	allocations, err := s.allocations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.PresentationRow, 0, len(allocations))
	for _, allocation := range allocations {
		if len(allocation.StudentIDs) == 0 {
			continue
		}

		project, err := s.projects.GetByID(ctx, allocation.ProjectID)
		if err != nil {
			continue
		}

		profName := "(unknown)"
		if prof, err := s.professors.GetByID(ctx, allocation.ProfessorID); err == nil {
			profName = prof.Name
		}

		names := make([]string, 0, len(allocation.StudentIDs))
		for _, sid := range allocation.StudentIDs {
			if student, err := s.students.GetByID(ctx, sid); err == nil {
				names = append(names, student.Name)
			}
		}

		row := domain.PresentationRow{
			ProjectID:     allocation.ProjectID,
			ProjectTitle:  project.Title,
			ProfessorName: profName,
			StudentNames:  strings.Join(names, ", "),
		}
		if slot, err := s.slots.FindByProjectID(ctx, allocation.ProjectID); err == nil {
			row.RoomID = slot.RoomID
			row.SlotLabel = s.DescribeSlot(slot)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// gridFor fetches and normalizes a user's availability; a never-saved grid
// reads as all-busy.
func (s *PresentationService) gridFor(ctx context.Context, userID int64, kind availdomain.UserKind) (timegrid.Grid, error) {
	avail, err := s.availability.Get(ctx, userID, kind)
	if err != nil {
		if errors.Is(err, availdomain.ErrNotSet) {
			return s.grid.NewGrid(), nil
		}
		return nil, err
	}
	return s.grid.Normalize(avail.Slots), nil
}

// occupiedBinsForRoom collects, per day, the bins taken by other projects'
// bookings in the room. The ignored project's own slot is excluded so it
// can reclaim its position.
func (s *PresentationService) occupiedBinsForRoom(ctx context.Context, roomID, projectIDToIgnore int64) (map[int]map[int]bool, error) {
	booked, err := s.slots.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	occupied := make(map[int]map[int]bool)
	for _, slot := range booked {
		if slot.ProjectID == projectIDToIgnore {
			continue
		}
		day := occupied[slot.DayIndex]
		if day == nil {
			day = make(map[int]bool)
			occupied[slot.DayIndex] = day
		}
		for t := slot.StartBinIndex; t < slot.StartBinIndex+slot.DurationBins; t++ {
			day[t] = true
		}
	}
	return occupied, nil
}

func windowFree(row []bool, start, dur int) bool {
	for k := 0; k < dur; k++ {
		if !row[start+k] {
			return false
		}
	}
	return true
}

func overlapsOccupied(occupied map[int]map[int]bool, day, start, dur int) bool {
	used := occupied[day]
	if used == nil {
		return false
	}
	for t := start; t < start+dur; t++ {
		if used[t] {
			return true
		}
	}
	return false
}
