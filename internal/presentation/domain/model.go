package domain

import "errors"

// PresentationSlot books one project into one room at one weekly position.
// There is at most one slot per project.
type PresentationSlot struct {
	ID            int64 `json:"id"`
	ProjectID     int64 `json:"project_id"`
	RoomID        int64 `json:"room_id"`
	DayIndex      int   `json:"day_index"`
	StartBinIndex int   `json:"start_bin_index"`
	DurationBins  int   `json:"duration_bins"`
}

// SlotOption is a valid candidate start position for a presentation.
type SlotOption struct {
	DayIndex      int    `json:"day_index"`
	StartBinIndex int    `json:"start_bin_index"`
	Label         string `json:"label"`
}

// PresentationRow is the flattened overview row for one allocated project:
// who presents, where and when (empty when unscheduled).
type PresentationRow struct {
	ProjectID     int64  `json:"project_id"`
	ProjectTitle  string `json:"project_title"`
	ProfessorName string `json:"professor_name"`
	StudentNames  string `json:"student_names"`
	RoomID        int64  `json:"room_id,omitempty"`
	SlotLabel     string `json:"slot_label,omitempty"`
}

var (
	ErrSlotNotFound = errors.New("presentation slot not found")
	ErrRoomBooked   = errors.New("room is already booked at that time")
	ErrInvalidSlot  = errors.New("invalid slot position")
)
