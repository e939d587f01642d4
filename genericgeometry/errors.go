package genericgeometry

import "github.com/pkg/errors"

var (
	ErrUnknownGeometry = errors.New("unknown geometry type")
	ErrInvalidTwist    = errors.New("no twist maps the vertex lists onto each other")
)
