package genericgeometry

import (
	"github.com/notargets/gogrid/types"
	"github.com/pkg/errors"
)

// generic2dune[gt][codim][i] is the Dune number of generic sub-entity i,
// missing entries are the identity
var generic2dune = map[GeometryType]map[int][]int{
	Triangle: {
		1: {2, 1, 0},
	},
	Tetrahedron: {
		1: {3, 2, 1, 0},
		2: {0, 2, 1, 3, 4, 5},
	},
	Hexahedron: {
		2: {8, 9, 10, 11, 0, 1, 2, 3, 4, 5, 6, 7},
	},
	PrismType: {
		1: {1, 3, 2, 0, 4},
		2: {3, 4, 5, 0, 2, 1, 6, 8, 7},
	},
	PyramidType: {
		1: {0, 4, 2, 1, 3},
		2: {3, 1, 0, 2, 4, 5, 7, 6},
		3: {0, 1, 3, 2, 4},
	},
}

var dune2generic = invertTables(generic2dune)

func invertTables(tables map[GeometryType]map[int][]int) (inv map[GeometryType]map[int][]int) {
	inv = make(map[GeometryType]map[int][]int, len(tables))
	for gt, byCodim := range tables {
		inv[gt] = make(map[int][]int, len(byCodim))
		for codim, perm := range byCodim {
			p := make([]int, len(perm))
			for i, d := range perm {
				p[d] = i
			}
			inv[gt][codim] = p
		}
	}
	return
}

// Generic2Dune maps the generic number of sub-entity (codim, i) of gt onto
// the historical Dune numbering
func Generic2Dune(gt GeometryType, codim, i int) int {
	if perm, ok := generic2dune[gt][codim]; ok {
		return perm[i]
	}
	return i
}

func Dune2Generic(gt GeometryType, codim, i int) int {
	if perm, ok := dune2generic[gt][codim]; ok {
		return perm[i]
	}
	return i
}

// duneVertices lists the vertices (Dune vertex numbering) of the Dune
// numbered sub-entities whose numbering differs from the generic one
var duneVertices = map[GeometryType]map[int][][]int{
	Triangle: {
		1: {{1, 2}, {0, 2}, {0, 1}},
	},
	Tetrahedron: {
		1: {{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}},
		2: {{0, 1}, {1, 2}, {0, 2}, {0, 3}, {1, 3}, {2, 3}},
	},
	Hexahedron: {
		2: {{0, 2}, {1, 3}, {0, 1}, {2, 3}, {4, 6}, {5, 7}, {4, 5}, {6, 7},
			{0, 4}, {1, 5}, {2, 6}, {3, 7}},
	},
	PrismType: {
		1: {{0, 1, 2}, {0, 1, 4, 3}, {1, 2, 5, 4}, {2, 0, 3, 5}, {3, 4, 5}},
		2: {{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 4}, {2, 5}, {3, 4}, {4, 5}, {5, 3}},
	},
	PyramidType: {
		1: {{0, 1, 2, 3}, {0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4}},
		2: {{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 4}, {1, 4}, {2, 4}, {3, 4}},
	},
}

// DuneVertices is the vertex list, in Dune vertex numbering, of the Dune
// numbered sub-entity (codim, i) of gt
func DuneVertices(gt GeometryType, codim, i int) (verts []int, err error) {
	var re *ReferenceElement
	if re, err = ReferenceElementForType(gt); err != nil {
		return
	}
	if codim < 0 || codim > re.Dimension() || i < 0 || i >= re.Size(codim) {
		err = errors.Errorf("%s has no sub-entity %d of codim %d", gt, i, codim)
		return
	}
	if lists, ok := duneVertices[gt][codim]; ok {
		verts = append(verts, lists[i]...)
		return
	}
	for _, v := range re.Vertices(Dune2Generic(gt, codim, i), codim) {
		verts = append(verts, Generic2Dune(gt, re.Dimension(), v))
	}
	return
}

// ValidateMapNumbering checks that every table is a permutation of the
// sub-entities of its codimension and that the Dune numbered sub-entities
// span the same vertices as their generic counterparts
func ValidateMapNumbering() (err error) {
	for gt, byCodim := range generic2dune {
		re, e := ReferenceElementForType(gt)
		if e != nil {
			return e
		}
		for codim, perm := range byCodim {
			if len(perm) != re.Size(codim) {
				return errors.Errorf("%s codim %d: table has %d entries, want %d",
					gt, codim, len(perm), re.Size(codim))
			}
			seen := make([]bool, len(perm))
			for _, d := range perm {
				if d < 0 || d >= len(perm) || seen[d] {
					return errors.Errorf("%s codim %d: %v is not a permutation", gt, codim, perm)
				}
				seen[d] = true
			}
		}
	}
	for gt, byCodim := range duneVertices {
		re := MustReferenceElement(gt)
		for codim, lists := range byCodim {
			for d, dv := range lists {
				g := Dune2Generic(gt, codim, d)
				want := re.Vertices(g, codim)
				got := make([]int, len(dv))
				for k, v := range dv {
					got[k] = Dune2Generic(gt, re.Dimension(), v)
				}
				if types.NewVertexKey(want) != types.NewVertexKey(got) {
					return errors.Errorf("%s codim %d: Dune sub-entity %d spans %v, generic %d spans %v",
						gt, codim, d, got, g, want)
				}
			}
		}
	}
	return
}
