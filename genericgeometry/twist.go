package genericgeometry

import (
	"github.com/pkg/errors"
)

// QuadGenericToCyclic maps generic (lexicographic) quadrilateral vertices to
// cyclic order and back, the map is its own inverse
var QuadGenericToCyclic = [4]int{0, 1, 3, 2}

/*
FaceTwist applies twist to vertex i of a face of type gt. Non negative twists
rotate, negative twists reflect. Quadrilateral vertices are counted cyclically.

	line          twist in [0,1]
	triangle      twist in [-3,2]
	quadrilateral twist in [-4,3]
*/
func FaceTwist(gt GeometryType, i, twist int) int {
	switch {
	case gt.Dim == 0:
		return 0
	case gt.Dim == 1:
		return ((i+twist)%2 + 2) % 2
	case gt == Triangle:
		if twist < 0 {
			return (7 - i + twist) % 3
		}
		return (i + twist) % 3
	case gt == Quadrilateral:
		if twist < 0 {
			return (9 - i + twist) % 4
		}
		return (i + twist) % 4
	}
	panic(errors.Wrapf(ErrUnknownGeometry, "no face twist for %s", gt))
}

// InvFaceTwist undoes FaceTwist
func InvFaceTwist(gt GeometryType, i, twist int) int {
	switch {
	case gt.Dim == 0:
		return 0
	case gt.Dim == 1:
		return ((i-twist)%2 + 2) % 2
	case gt == Triangle:
		if twist < 0 {
			return (7 - i + twist) % 3
		}
		return (3 + i - twist) % 3
	case gt == Quadrilateral:
		if twist < 0 {
			return (9 - i + twist) % 4
		}
		return (4 + i - twist) % 4
	}
	panic(errors.Wrapf(ErrUnknownGeometry, "no face twist for %s", gt))
}

// TwistRange is the closed interval of valid twists of gt
func TwistRange(gt GeometryType) (lo, hi int, err error) {
	switch {
	case gt.Dim == 0:
		return 0, 0, nil
	case gt.Dim == 1:
		return 0, 1, nil
	case gt == Triangle:
		return -3, 2, nil
	case gt == Quadrilateral:
		return -4, 3, nil
	}
	err = errors.Wrapf(ErrUnknownGeometry, "no face twist for %s", gt)
	return
}

// TwistedCorner is the generic corner number of the canonical face that
// generic corner k of a face with the given twist corresponds to
func TwistedCorner(gt GeometryType, k, twist int) int {
	if gt == Quadrilateral {
		return QuadGenericToCyclic[FaceTwist(gt, QuadGenericToCyclic[k], twist)]
	}
	return FaceTwist(gt, k, twist)
}

/*
FindTwist finds the twist taking the canonical vertex list of a face onto an
element's local view of the same face, both in generic vertex order:

	local[k] == canonical[TwistedCorner(gt, k, twist)]
*/
func FindTwist(gt GeometryType, canonical, local []int) (twist int, err error) {
	var lo, hi int
	if lo, hi, err = TwistRange(gt); err != nil {
		return
	}
	if len(canonical) != len(local) {
		err = errors.Wrapf(ErrInvalidTwist, "%s: %d canonical vertices, %d local", gt, len(canonical), len(local))
		return
	}
	for twist = lo; twist <= hi; twist++ {
		match := true
		for k := range local {
			if local[k] != canonical[TwistedCorner(gt, k, twist)] {
				match = false
				break
			}
		}
		if match {
			return
		}
	}
	err = errors.Wrapf(ErrInvalidTwist, "%s: %v is no twist of %v", gt, local, canonical)
	return
}
