package booking

import (
	"errors"
)

var (
	// ErrNotFound is returned by storage when nothing has been persisted yet.
	ErrNotFound     = errors.New("persisted hotels not found")
	ErrUnknownHotel = errors.New("unknown hotel")
)
