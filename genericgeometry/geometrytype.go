package genericgeometry

import (
	"fmt"

	"github.com/pkg/errors"
)

type BasicType uint8

const (
	Simplex BasicType = iota
	Cube
	Prism
	Pyramid
	None
)

func (b BasicType) String() string {
	return [...]string{"simplex", "cube", "prism", "pyramid", "none"}[b]
}

// GeometryType names a reference element by its basic shape and dimension.
// Vertices and lines are stored as cubes.
type GeometryType struct {
	Basic BasicType
	Dim   int
}

var (
	Vertex        = GeometryType{Cube, 0}
	Line          = GeometryType{Cube, 1}
	Triangle      = GeometryType{Simplex, 2}
	Quadrilateral = GeometryType{Cube, 2}
	Tetrahedron   = GeometryType{Simplex, 3}
	Hexahedron    = GeometryType{Cube, 3}
	PrismType     = GeometryType{Prism, 3}
	PyramidType   = GeometryType{Pyramid, 3}
)

func NewGeometryType(basic BasicType, dim int) GeometryType {
	if dim <= 1 && (basic == Simplex || basic == Cube) {
		basic = Cube
	}
	return GeometryType{Basic: basic, Dim: dim}
}

func SimplexType(dim int) GeometryType { return NewGeometryType(Simplex, dim) }
func CubeType(dim int) GeometryType    { return NewGeometryType(Cube, dim) }

func (gt GeometryType) IsSimplex() bool {
	return gt.Basic == Simplex || gt.Dim <= 1 && gt.Basic == Cube
}
func (gt GeometryType) IsCube() bool { return gt.Basic == Cube }
func (gt GeometryType) IsNone() bool { return gt.Basic == None }

func (gt GeometryType) String() string {
	switch gt {
	case Vertex:
		return "vertex"
	case Line:
		return "line"
	case Triangle:
		return "triangle"
	case Quadrilateral:
		return "quadrilateral"
	case Tetrahedron:
		return "tetrahedron"
	case Hexahedron:
		return "hexahedron"
	case PrismType:
		return "prism"
	case PyramidType:
		return "pyramid"
	}
	return fmt.Sprintf("%s(%d)", gt.Basic, gt.Dim)
}

// CompareGeometryTypes orders by dimension, then by basic type
func CompareGeometryTypes(a, b GeometryType) int {
	if a.Dim != b.Dim {
		return a.Dim - b.Dim
	}
	return int(a.Basic) - int(b.Basic)
}

func TopologyID(gt GeometryType) (id uint32, err error) {
	switch {
	case gt.Dim < 0:
	case gt.Basic == Simplex:
		return 0, nil
	case gt.Basic == Cube:
		return 1<<uint(gt.Dim) - 1, nil
	case gt.Basic == Prism && gt.Dim == 3:
		return 4, nil
	case gt.Basic == Pyramid && gt.Dim == 3:
		return 3, nil
	}
	err = errors.Wrapf(ErrUnknownGeometry, "no topology for %s", gt)
	return
}

func TopologyFor(gt GeometryType) (t Topology, err error) {
	var id uint32
	if id, err = TopologyID(gt); err != nil {
		return
	}
	t = TopologyFromID(id, gt.Dim)
	return
}

func GeometryTypeOf(t Topology) GeometryType {
	var (
		dim = t.Dim()
		id  = t.ID() | 1
	)
	switch {
	case dim == 0:
		return Vertex
	case dim == 1:
		return Line
	case id == 1:
		return SimplexType(dim)
	case id == 1<<uint(dim)-1:
		return CubeType(dim)
	case dim == 3 && id == 5:
		return PrismType
	case dim == 3 && id == 3:
		return PyramidType
	}
	return GeometryType{None, dim}
}
