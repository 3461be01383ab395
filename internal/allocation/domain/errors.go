package domain

import "errors"

var (
	// ErrAllocationNotFound covers a missing allocation record and a
	// student missing from a roster.
	ErrAllocationNotFound = errors.New("allocation not found")
	// ErrAllocationConflict covers every violated assignment rule:
	// duplicate allocation, duplicate roster entry, student already on a
	// team, full project, program mismatch.
	ErrAllocationConflict = errors.New("allocation conflict")
)
