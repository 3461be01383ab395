package domain

import "errors"

// Professor supervises projects and sits in every presentation of their teams.
type Professor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var (
	ErrProfessorNotFound = errors.New("professor not found")
	ErrEmailTaken        = errors.New("professor email already exists")
	ErrInvalidProfessor  = errors.New("invalid professor")
)
