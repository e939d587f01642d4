package gridcheck

import "github.com/pkg/errors"

var (
	// ErrGrid marks a numbering inconsistency, checks stop at the first one
	ErrGrid = errors.New("grid error")
	// ErrNotSupported is returned by views lacking an optional feature
	ErrNotSupported = errors.New("not supported")
)

func gridError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrGrid, format, args...)
}
