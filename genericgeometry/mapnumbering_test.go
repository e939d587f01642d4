package genericgeometry

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapNumbering(t *testing.T) {
	require.NoError(t, ValidateMapNumbering())
	{ // Round trip over every sub-entity
		for _, gt := range []GeometryType{Vertex, Line, Triangle, Quadrilateral, Tetrahedron, Hexahedron, PrismType, PyramidType} {
			re := MustReferenceElement(gt)
			for codim := 0; codim <= re.Dimension(); codim++ {
				for i := 0; i < re.Size(codim); i++ {
					assert.Equal(t, i, Dune2Generic(gt, codim, Generic2Dune(gt, codim, i)))
					assert.Equal(t, i, Generic2Dune(gt, codim, Dune2Generic(gt, codim, i)))
				}
			}
		}
	}
	{ // Historical Dune numbering
		assert.Equal(t, 2, Generic2Dune(Triangle, 1, 0))
		assert.Equal(t, 8, Generic2Dune(Hexahedron, 2, 0))
		assert.Equal(t, 3, Generic2Dune(PyramidType, 3, 2))
		assert.Equal(t, 5, Generic2Dune(Hexahedron, 1, 5))
		verts, err := DuneVertices(Tetrahedron, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, verts)
		verts, err = DuneVertices(Hexahedron, 1, 4)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3}, verts)
		// Pyramid base in Dune vertex numbering is cyclic
		verts, err = DuneVertices(PyramidType, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3}, verts)
		_, err = DuneVertices(Hexahedron, 1, 6)
		assert.Error(t, err)
	}
}

func TestEngineNumbering(t *testing.T) {
	{ // ALU hexahedra swap vertices 2,3 and 6,7
		for i, e := range []int{0, 1, 3, 2, 4, 5, 7, 6} {
			assert.Equal(t, e, ALUHexa.Dune2Engine(i))
			assert.Equal(t, i, ALUHexa.Engine2Dune(e))
		}
		for i := 0; i < ALUTetra.Vertices(); i++ {
			assert.Equal(t, i, ALUTetra.Dune2Engine(i))
		}
	}
	{ // Face vertices of the bottom hexahedron face in ALU numbering
		var verts []int
		for i := 0; i < 4; i++ {
			v, err := ALUHexa.Dune2EngineFaceVertex(4, i)
			require.NoError(t, err)
			verts = append(verts, v)
		}
		assert.Equal(t, []int{0, 1, 3, 2}, verts)
		_, err := ALUHexa.Dune2EngineFaceVertex(4, 4)
		assert.Error(t, err)
		// element vertex numbers, face x+ spans Dune vertices 1, 3, 5, 7
		verts = verts[:0]
		for i := 0; i < 4; i++ {
			v, err := ALUHexa.Dune2EngineFaceVertex(1, i)
			require.NoError(t, err)
			verts = append(verts, v)
		}
		assert.Equal(t, []int{1, 2, 5, 6}, verts)
	}
	{ // Gmsh numbering through the generic numbering
		en, err := GmshNumbering(PyramidType)
		require.NoError(t, err)
		assert.Equal(t, 3, en.Generic2Engine(2))
		assert.Equal(t, 2, en.Engine2Generic(3))
		en, err = GmshNumbering(Quadrilateral)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 3, 2}, []int{en.Generic2Engine(0), en.Generic2Engine(1), en.Generic2Engine(2), en.Generic2Engine(3)})
		_, err = GmshNumbering(GeometryType{None, 2})
		assert.Equal(t, ErrUnknownGeometry, errors.Cause(err))
	}
}

func TestFaceTwist(t *testing.T) {
	for _, gt := range []GeometryType{Vertex, Line, Triangle, Quadrilateral} {
		lo, hi, err := TwistRange(gt)
		require.NoError(t, err)
		n := gt.Dim + 1
		if gt == Quadrilateral {
			n = 4
		}
		perms := make(map[string]bool)
		for tw := lo; tw <= hi; tw++ {
			img := make([]int, n)
			seen := make(map[int]bool)
			for i := 0; i < n; i++ {
				img[i] = FaceTwist(gt, i, tw)
				seen[img[i]] = true
				// inverse
				assert.Equal(t, i, InvFaceTwist(gt, img[i], tw), "%s twist %d", gt, tw)
				assert.Equal(t, i, FaceTwist(gt, InvFaceTwist(gt, i, tw), tw), "%s twist %d", gt, tw)
			}
			assert.Equal(t, n, len(seen), "%s twist %d is no permutation", gt, tw)
			perms[fmt.Sprint(img)] = true
		}
		// every twist is a different symmetry
		assert.Equal(t, hi-lo+1, len(perms), "%s", gt)
	}
	{ // Triangle twists
		assert.Equal(t, 1, FaceTwist(Triangle, 0, 1))
		assert.Equal(t, 0, FaceTwist(Triangle, 0, -1))
		assert.Equal(t, 2, FaceTwist(Triangle, 1, -1))
		assert.Equal(t, 2, FaceTwist(Triangle, 0, -2))
		assert.Equal(t, 1, FaceTwist(Triangle, 0, -3))
	}
	{ // Reflections are involutions
		for tw := -4; tw < 0; tw++ {
			for i := 0; i < 4; i++ {
				assert.Equal(t, i, FaceTwist(Quadrilateral, FaceTwist(Quadrilateral, i, tw), tw))
			}
		}
	}
	_, _, err := TwistRange(Hexahedron)
	assert.Error(t, err)
	assert.Panics(t, func() { FaceTwist(Tetrahedron, 0, 0) })
}

func TestFindTwist(t *testing.T) {
	{ // Every twist of a quadrilateral is found again
		canonical := []int{10, 11, 12, 13}
		for tw := -4; tw <= 3; tw++ {
			local := make([]int, 4)
			for k := range local {
				local[k] = canonical[TwistedCorner(Quadrilateral, k, tw)]
			}
			got, err := FindTwist(Quadrilateral, canonical, local)
			require.NoError(t, err)
			assert.Equal(t, tw, got)
		}
	}
	{ // Quadrilaterals twist cyclically, generic diagonals never become edges
		_, err := FindTwist(Quadrilateral, []int{0, 1, 2, 3}, []int{0, 3, 1, 2})
		assert.Equal(t, ErrInvalidTwist, errors.Cause(err))
		tw, err := FindTwist(Quadrilateral, []int{0, 1, 2, 3}, []int{1, 3, 0, 2})
		require.NoError(t, err)
		assert.Equal(t, 1, tw)
	}
	{ // Triangles and lines
		tw, err := FindTwist(Triangle, []int{5, 6, 7}, []int{6, 7, 5})
		require.NoError(t, err)
		assert.Equal(t, 1, tw)
		tw, err = FindTwist(Triangle, []int{5, 6, 7}, []int{5, 7, 6})
		require.NoError(t, err)
		assert.Equal(t, -1, tw)
		tw, err = FindTwist(Line, []int{3, 9}, []int{9, 3})
		require.NoError(t, err)
		assert.Equal(t, 1, tw)
		_, err = FindTwist(Line, []int{3, 9}, []int{3})
		assert.Error(t, err)
	}
}
