package domain

import (
	"errors"

	projectdomain "github.com/vv-pms/pms-backend/internal/projects/domain"
)

// Student is a directory entry for an enrolled student. HasProject is the
// single-team-membership flag the allocation engine writes through.
type Student struct {
	ID            int64                 `json:"id"`
	Name          string                `json:"name"`
	StudentNumber string                `json:"student_number"`
	Email         string                `json:"email"`
	Program       projectdomain.Program `json:"program"`
	HasProject    bool                  `json:"has_project"`
}

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicateEntry  = errors.New("student number or email already exists")
	ErrInvalidStudent  = errors.New("invalid student")
)
