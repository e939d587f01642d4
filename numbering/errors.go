package numbering

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfRange is returned when a dense index lies outside the
	// range a mapper was made for.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidExtent is returned for malformed extent tuples.
	ErrInvalidExtent = errors.New("invalid extent")
)
