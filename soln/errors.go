package soln

import "errors"

var (
	// ErrDuplicateID is returned when an entity id is already in use.
	ErrDuplicateID = errors.New("soln: duplicate id")

	// ErrForeignEntity is returned when an entity from another instance or
	// solution is passed in.
	ErrForeignEntity = errors.New("soln: entity belongs to another solution")

	// ErrBadDuration is returned for non-positive meet durations.
	ErrBadDuration = errors.New("soln: duration must be positive")

	// ErrBadOffset is returned for offsets outside a meet.
	ErrBadOffset = errors.New("soln: offset out of range")
)
