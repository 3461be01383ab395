package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	allocdomain "github.com/vv-pms/pms-backend/internal/allocation/domain"
	availdomain "github.com/vv-pms/pms-backend/internal/availability/domain"
	"github.com/vv-pms/pms-backend/internal/presentation/domain"
	professordomain "github.com/vv-pms/pms-backend/internal/professors/domain"
	projectdomain "github.com/vv-pms/pms-backend/internal/projects/domain"
	roomdomain "github.com/vv-pms/pms-backend/internal/rooms/domain"
	studentdomain "github.com/vv-pms/pms-backend/internal/students/domain"
	"github.com/vv-pms/pms-backend/internal/timegrid"
)

type fakeSlots struct {
	nextID    int64
	byProject map[int64]*domain.PresentationSlot
}

func newFakeSlots() *fakeSlots {
	return &fakeSlots{byProject: make(map[int64]*domain.PresentationSlot)}
}

func (f *fakeSlots) Upsert(_ context.Context, slot *domain.PresentationSlot) (*domain.PresentationSlot, error) {
	if existing, ok := f.byProject[slot.ProjectID]; ok {
		slot.ID = existing.ID
	} else {
		f.nextID++
		slot.ID = f.nextID
	}
	c := *slot
	f.byProject[slot.ProjectID] = &c
	return slot, nil
}

func (f *fakeSlots) FindByProjectID(_ context.Context, projectID int64) (*domain.PresentationSlot, error) {
	s, ok := f.byProject[projectID]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	c := *s
	return &c, nil
}

func (f *fakeSlots) FindByRoomID(_ context.Context, roomID int64) ([]domain.PresentationSlot, error) {
	out := []domain.PresentationSlot{}
	for _, s := range f.byProject {
		if s.RoomID == roomID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSlots) FindAll(_ context.Context) ([]domain.PresentationSlot, error) {
	out := []domain.PresentationSlot{}
	for _, s := range f.byProject {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSlots) Delete(_ context.Context, projectID int64) (bool, error) {
	if _, ok := f.byProject[projectID]; !ok {
		return false, nil
	}
	delete(f.byProject, projectID)
	return true, nil
}

type fakeRooms struct {
	items []roomdomain.Room
}

func (f *fakeRooms) GetByID(_ context.Context, id int64) (*roomdomain.Room, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			r := f.items[i]
			return &r, nil
		}
	}
	return nil, roomdomain.ErrRoomNotFound
}

func (f *fakeRooms) List(_ context.Context) ([]roomdomain.Room, error) {
	return append([]roomdomain.Room{}, f.items...), nil
}

type fakeAvailability struct {
	grids map[string]timegrid.Grid
}

func availKey(userID int64, kind availdomain.UserKind) string {
	return fmt.Sprintf("%s:%d", kind, userID)
}

func (f *fakeAvailability) set(userID int64, kind availdomain.UserKind, g timegrid.Grid) {
	if f.grids == nil {
		f.grids = make(map[string]timegrid.Grid)
	}
	f.grids[availKey(userID, kind)] = g
}

func (f *fakeAvailability) Get(_ context.Context, userID int64, kind availdomain.UserKind) (*availdomain.Availability, error) {
	g, ok := f.grids[availKey(userID, kind)]
	if !ok {
		return nil, availdomain.ErrNotSet
	}
	return &availdomain.Availability{UserID: userID, Kind: kind, Slots: g}, nil
}

type fakeAllocations struct {
	items []allocdomain.ProjectAllocation
}

func (f *fakeAllocations) FindByProjectID(_ context.Context, projectID int64) (*allocdomain.ProjectAllocation, error) {
	for i := range f.items {
		if f.items[i].ProjectID == projectID {
			a := f.items[i]
			return &a, nil
		}
	}
	return nil, allocdomain.ErrAllocationNotFound
}

func (f *fakeAllocations) FindAll(_ context.Context) ([]allocdomain.ProjectAllocation, error) {
	return append([]allocdomain.ProjectAllocation{}, f.items...), nil
}

type fakeProjects struct {
	items []projectdomain.Project
}

func (f *fakeProjects) GetByID(_ context.Context, id int64) (*projectdomain.Project, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			p := f.items[i]
			return &p, nil
		}
	}
	return nil, projectdomain.ErrProjectNotFound
}

type fakeProfessors struct {
	items []professordomain.Professor
}

func (f *fakeProfessors) GetByID(_ context.Context, id int64) (*professordomain.Professor, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			p := f.items[i]
			return &p, nil
		}
	}
	return nil, professordomain.ErrProfessorNotFound
}

type fakeStudents struct {
	items []studentdomain.Student
}

func (f *fakeStudents) GetByID(_ context.Context, id int64) (*studentdomain.Student, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			s := f.items[i]
			return &s, nil
		}
	}
	return nil, studentdomain.ErrStudentNotFound
}

// gridWith returns an all-busy grid with the given (day, bin) cells free.
func gridWith(cfg timegrid.Config, cells ...[2]int) timegrid.Grid {
	g := cfg.NewGrid()
	for _, c := range cells {
		g[c[0]][c[1]] = true
	}
	return g
}

type fixture struct {
	cfg   timegrid.Config
	slots *fakeSlots
	rooms *fakeRooms
	avail *fakeAvailability
	alloc *fakeAllocations
	svc   *PresentationService
}

func newFixture() *fixture {
	cfg := timegrid.Default()
	f := &fixture{
		cfg:   cfg,
		slots: newFakeSlots(),
		rooms: &fakeRooms{},
		avail: &fakeAvailability{},
		alloc: &fakeAllocations{},
	}
	f.svc = NewPresentationService(
		f.slots,
		f.rooms,
		f.avail,
		f.alloc,
		&fakeProjects{items: []projectdomain.Project{
			{ID: 1, Title: "Compilers", RequiredStudents: 2},
			{ID: 2, Title: "Databases", RequiredStudents: 1},
		}},
		&fakeProfessors{items: []professordomain.Professor{{ID: 10, Name: "Ada Lovelace"}}},
		&fakeStudents{items: []studentdomain.Student{
			{ID: 100, Name: "Sam"},
			{ID: 101, Name: "Kim"},
		}},
		cfg,
	)
	return f
}

func TestAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("intersection of room, professor and student grids", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100}}}
		f.rooms.items = []roomdomain.Room{{ID: 5, Name: "B101", Availability: gridWith(f.cfg, [2]int{0, 0})}}
		f.avail.set(10, availdomain.KindProfessor, gridWith(f.cfg, [2]int{0, 0}, [2]int{0, 1}))
		f.avail.set(100, availdomain.KindStudent, gridWith(f.cfg, [2]int{0, 0}))

		options, err := f.svc.AvailableSlots(ctx, 1, 5)
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, 0, options[0].DayIndex)
		assert.Equal(t, 0, options[0].StartBinIndex)
		assert.Equal(t, "Monday 08:00-08:30", options[0].Label)
	})

	t.Run("no allocation means no candidates", func(t *testing.T) {
		f := newFixture()
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.FullGrid()}}

		options, err := f.svc.AvailableSlots(ctx, 1, 5)
		require.NoError(t, err)
		assert.Empty(t, options)
	})

	t.Run("empty roster means no candidates", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{}}}
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.FullGrid()}}

		options, err := f.svc.AvailableSlots(ctx, 1, 5)
		require.NoError(t, err)
		assert.Empty(t, options)
	})

	t.Run("missing room means no candidates", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100}}}

		options, err := f.svc.AvailableSlots(ctx, 1, 42)
		require.NoError(t, err)
		assert.Empty(t, options)
	})

	t.Run("unset availability reads as all busy", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100}}}
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.FullGrid()}}
		// Professor grid set, student grid never saved.
		f.avail.set(10, availdomain.KindProfessor, f.cfg.FullGrid())

		options, err := f.svc.AvailableSlots(ctx, 1, 5)
		require.NoError(t, err)
		assert.Empty(t, options)
	})

	t.Run("missing students are skipped", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100, 999}}}
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: gridWith(f.cfg, [2]int{2, 3})}}
		f.avail.set(10, availdomain.KindProfessor, f.cfg.FullGrid())
		f.avail.set(100, availdomain.KindStudent, f.cfg.FullGrid())

		options, err := f.svc.AvailableSlots(ctx, 1, 5)
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, 2, options[0].DayIndex)
		assert.Equal(t, 3, options[0].StartBinIndex)
	})

	t.Run("bins booked by other projects are excluded", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100}}}
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: gridWith(f.cfg, [2]int{0, 0}, [2]int{0, 1})}}
		f.avail.set(10, availdomain.KindProfessor, f.cfg.FullGrid())
		f.avail.set(100, availdomain.KindStudent, f.cfg.FullGrid())

		_, err := f.slots.Upsert(ctx, &domain.PresentationSlot{ProjectID: 2, RoomID: 5, DayIndex: 0, StartBinIndex: 0, DurationBins: 1})
		require.NoError(t, err)

		options, err := f.svc.AvailableSlots(ctx, 1, 5)
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, 1, options[0].StartBinIndex)
	})

	t.Run("the project's own slot does not block it", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100}}}
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: gridWith(f.cfg, [2]int{0, 0})}}
		f.avail.set(10, availdomain.KindProfessor, f.cfg.FullGrid())
		f.avail.set(100, availdomain.KindStudent, f.cfg.FullGrid())

		_, err := f.slots.Upsert(ctx, &domain.PresentationSlot{ProjectID: 1, RoomID: 5, DayIndex: 0, StartBinIndex: 0, DurationBins: 1})
		require.NoError(t, err)

		options, err := f.svc.AvailableSlots(ctx, 1, 5)
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, 0, options[0].StartBinIndex)
	})

	t.Run("candidates come out in day then bin order", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100}}}
		free := [][2]int{{1, 4}, {0, 7}, {1, 2}}
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: gridWith(f.cfg, free...)}}
		f.avail.set(10, availdomain.KindProfessor, f.cfg.FullGrid())
		f.avail.set(100, availdomain.KindStudent, f.cfg.FullGrid())

		options, err := f.svc.AvailableSlots(ctx, 1, 5)
		require.NoError(t, err)
		require.Len(t, options, 3)
		assert.Equal(t, [2]int{0, 7}, [2]int{options[0].DayIndex, options[0].StartBinIndex})
		assert.Equal(t, [2]int{1, 2}, [2]int{options[1].DayIndex, options[1].StartBinIndex})
		assert.Equal(t, [2]int{1, 4}, [2]int{options[2].DayIndex, options[2].StartBinIndex})
	})
}

func TestAssignPresentation(t *testing.T) {
	ctx := context.Background()

	t.Run("range checks run before any lookup", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.AssignPresentation(ctx, 999, 999, -1, 0)
		require.ErrorIs(t, err, domain.ErrInvalidSlot)

		_, err = f.svc.AssignPresentation(ctx, 999, 999, 0, f.cfg.Bins)
		require.ErrorIs(t, err, domain.ErrInvalidSlot)
	})

	t.Run("missing project", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.AssignPresentation(ctx, 999, 5, 0, 0)
		require.ErrorIs(t, err, projectdomain.ErrProjectNotFound)
	})

	t.Run("missing room", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.AssignPresentation(ctx, 1, 42, 0, 0)
		require.ErrorIs(t, err, roomdomain.ErrRoomNotFound)
	})

	t.Run("books the slot", func(t *testing.T) {
		f := newFixture()
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.FullGrid()}}

		slot, err := f.svc.AssignPresentation(ctx, 1, 5, 2, 6)
		require.NoError(t, err)
		assert.Equal(t, int64(5), slot.RoomID)
		assert.Equal(t, 2, slot.DayIndex)
		assert.Equal(t, 6, slot.StartBinIndex)
		assert.Equal(t, 1, slot.DurationBins)
	})

	t.Run("rejects a bin another project holds", func(t *testing.T) {
		f := newFixture()
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.FullGrid()}}

		_, err := f.svc.AssignPresentation(ctx, 1, 5, 0, 0)
		require.NoError(t, err)

		_, err = f.svc.AssignPresentation(ctx, 2, 5, 0, 0)
		require.ErrorIs(t, err, domain.ErrRoomBooked)
	})

	t.Run("reschedules in place", func(t *testing.T) {
		f := newFixture()
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.FullGrid()}}

		first, err := f.svc.AssignPresentation(ctx, 1, 5, 0, 0)
		require.NoError(t, err)

		// Same position again: the project's own booking is not a conflict.
		_, err = f.svc.AssignPresentation(ctx, 1, 5, 0, 0)
		require.NoError(t, err)

		second, err := f.svc.AssignPresentation(ctx, 1, 5, 3, 8)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		stored, err := f.svc.FindByProjectID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.DayIndex)
		assert.Equal(t, 8, stored.StartBinIndex)

		// The old position is free again.
		_, err = f.svc.AssignPresentation(ctx, 2, 5, 0, 0)
		require.NoError(t, err)
	})
}

func TestUnassignPresentation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.FullGrid()}}

	_, err := f.svc.AssignPresentation(ctx, 1, 5, 0, 0)
	require.NoError(t, err)

	require.NoError(t, f.svc.UnassignPresentation(ctx, 1))
	_, err = f.svc.FindByProjectID(ctx, 1)
	require.ErrorIs(t, err, domain.ErrSlotNotFound)

	// Unassigning an unscheduled project is a quiet no-op.
	require.NoError(t, f.svc.UnassignPresentation(ctx, 1))
}

func TestRunBestEffortSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("books first-fit room and earliest slot", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{
			{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100}},
			{ID: 2, ProjectID: 2, ProfessorID: 10, StudentIDs: []int64{101}},
		}
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: gridWith(f.cfg, [2]int{0, 0}, [2]int{0, 1})}}
		f.avail.set(10, availdomain.KindProfessor, f.cfg.FullGrid())
		f.avail.set(100, availdomain.KindStudent, f.cfg.FullGrid())
		f.avail.set(101, availdomain.KindStudent, f.cfg.FullGrid())

		require.NoError(t, f.svc.RunBestEffortSchedule(ctx))

		s1, err := f.svc.FindByProjectID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, s1.StartBinIndex)

		s2, err := f.svc.FindByProjectID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, s2.StartBinIndex)
	})

	t.Run("scheduled projects are left alone", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100}}}
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.FullGrid()}}
		f.avail.set(10, availdomain.KindProfessor, f.cfg.FullGrid())
		f.avail.set(100, availdomain.KindStudent, f.cfg.FullGrid())

		_, err := f.svc.AssignPresentation(ctx, 1, 5, 4, 9)
		require.NoError(t, err)

		require.NoError(t, f.svc.RunBestEffortSchedule(ctx))

		s, err := f.svc.FindByProjectID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 4, s.DayIndex)
		assert.Equal(t, 9, s.StartBinIndex)
	})

	t.Run("unschedulable projects are skipped", func(t *testing.T) {
		f := newFixture()
		f.alloc.items = []allocdomain.ProjectAllocation{{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100}}}
		f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.NewGrid()}}
		f.avail.set(10, availdomain.KindProfessor, f.cfg.FullGrid())
		f.avail.set(100, availdomain.KindStudent, f.cfg.FullGrid())

		require.NoError(t, f.svc.RunBestEffortSchedule(ctx))

		_, err := f.svc.FindByProjectID(ctx, 1)
		require.ErrorIs(t, err, domain.ErrSlotNotFound)
	})
}

func TestDescribeSlot(t *testing.T) {
	f := newFixture()

	assert.Equal(t, "", f.svc.DescribeSlot(nil))
	assert.Equal(t, "Wednesday 11:00-11:30", f.svc.DescribeSlot(&domain.PresentationSlot{
		DayIndex: 2, StartBinIndex: 6, DurationBins: 1,
	}))
}

func TestPresentationRows(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.alloc.items = []allocdomain.ProjectAllocation{
		{ID: 1, ProjectID: 1, ProfessorID: 10, StudentIDs: []int64{100, 101}},
		{ID: 2, ProjectID: 2, ProfessorID: 10, StudentIDs: []int64{}},
	}
	f.rooms.items = []roomdomain.Room{{ID: 5, Availability: f.cfg.FullGrid()}}

	_, err := f.svc.AssignPresentation(ctx, 1, 5, 0, 2)
	require.NoError(t, err)

	rows, err := f.svc.PresentationRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1, "empty rosters are left out")

	row := rows[0]
	assert.Equal(t, int64(1), row.ProjectID)
	assert.Equal(t, "Compilers", row.ProjectTitle)
	assert.Equal(t, "Ada Lovelace", row.ProfessorName)
	assert.Equal(t, "Sam, Kim", row.StudentNames)
	assert.Equal(t, int64(5), row.RoomID)
	assert.Equal(t, "Monday 09:00-09:30", row.SlotLabel)
}
