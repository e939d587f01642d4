package genericgeometry

import (
	"github.com/pkg/errors"
)

/*
EngineNumbering is the vertex numbering a concrete grid engine or file format
uses for one element type, given as the permutation from Dune vertex numbers
to engine vertex numbers.
*/
type EngineNumbering struct {
	Name     string
	Type     GeometryType
	dune2eng []int
	eng2dune []int
}

func NewEngineNumbering(name string, gt GeometryType, dune2engine []int) (en EngineNumbering) {
	en = EngineNumbering{
		Name:     name,
		Type:     gt,
		dune2eng: dune2engine,
		eng2dune: make([]int, len(dune2engine)),
	}
	for d, e := range dune2engine {
		en.eng2dune[e] = d
	}
	return
}

var (
	ALUHexa  = NewEngineNumbering("alu-hexa", Hexahedron, []int{0, 1, 3, 2, 4, 5, 7, 6})
	ALUTetra = NewEngineNumbering("alu-tetra", Tetrahedron, []int{0, 1, 2, 3})

	GmshLine     = NewEngineNumbering("gmsh-line", Line, []int{0, 1})
	GmshTriangle = NewEngineNumbering("gmsh-triangle", Triangle, []int{0, 1, 2})
	GmshQuad     = NewEngineNumbering("gmsh-quad", Quadrilateral, []int{0, 1, 3, 2})
	GmshTetra    = NewEngineNumbering("gmsh-tetra", Tetrahedron, []int{0, 1, 2, 3})
	GmshHexa     = NewEngineNumbering("gmsh-hexa", Hexahedron, []int{0, 1, 3, 2, 4, 5, 7, 6})
	GmshPrism    = NewEngineNumbering("gmsh-prism", PrismType, []int{0, 1, 2, 3, 4, 5})
	GmshPyramid  = NewEngineNumbering("gmsh-pyramid", PyramidType, []int{0, 1, 2, 3, 4})
)

var gmshNumberings = map[GeometryType]EngineNumbering{
	Line:          GmshLine,
	Triangle:      GmshTriangle,
	Quadrilateral: GmshQuad,
	Tetrahedron:   GmshTetra,
	Hexahedron:    GmshHexa,
	PrismType:     GmshPrism,
	PyramidType:   GmshPyramid,
}

func GmshNumbering(gt GeometryType) (en EngineNumbering, err error) {
	var ok bool
	if en, ok = gmshNumberings[gt]; !ok {
		err = errors.Wrapf(ErrUnknownGeometry, "no gmsh numbering for %s", gt)
	}
	return
}

func (en EngineNumbering) Vertices() int { return len(en.dune2eng) }

func (en EngineNumbering) Dune2Engine(i int) int { return en.dune2eng[i] }

func (en EngineNumbering) Engine2Dune(i int) int { return en.eng2dune[i] }

// Generic2Engine composes the generic to Dune vertex map with the engine map
func (en EngineNumbering) Generic2Engine(i int) int {
	return en.dune2eng[Generic2Dune(en.Type, en.Type.Dim, i)]
}

func (en EngineNumbering) Engine2Generic(i int) int {
	return Dune2Generic(en.Type, en.Type.Dim, en.eng2dune[i])
}

/*
Dune2EngineFaceVertex is the engine element vertex number of the i-th vertex
of Dune face duneFace. The result numbers the vertices of the element, not
the position of the vertex within the engine's own face, which depends on the
engine's face definitions and twists (ALU's dune2aluFaceVertex is face local).
*/
func (en EngineNumbering) Dune2EngineFaceVertex(duneFace, i int) (int, error) {
	verts, err := DuneVertices(en.Type, 1, duneFace)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(verts) {
		return 0, errors.Errorf("%s face %d has no vertex %d", en.Name, duneFace, i)
	}
	return en.dune2eng[verts[i]], nil
}
