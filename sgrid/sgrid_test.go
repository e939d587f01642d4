package sgrid

import (
	"bytes"
	"testing"

	"github.com/notargets/gogrid/genericgeometry"
	"github.com/notargets/gogrid/gridcheck"
	"github.com/notargets/gogrid/numbering"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	{ // 2x2x2 cells
		g, err := New([]int{2, 2, 2}, []float64{1, 1, 1})
		require.NoError(t, err)
		assert.Equal(t, 3, g.Dimension())
		assert.Equal(t, []int{8, 36, 54, 27}, []int{g.Size(0), g.Size(1), g.Size(2), g.Size(3)})
		assert.Equal(t, 27, g.SizeOfType(genericgeometry.Vertex))
		assert.Equal(t, 8, g.SizeOfType(genericgeometry.Hexahedron))
		assert.Equal(t, 0, g.SizeOfType(genericgeometry.Tetrahedron))
		assert.Equal(t, []genericgeometry.GeometryType{genericgeometry.Quadrilateral}, g.GeomTypes(1))
		var buf bytes.Buffer
		g.Print(&buf)
		assert.Contains(t, buf.String(), "27 elements of codim 3")
	}
	{ // Bad input
		_, err := New([]int{2, 2}, []float64{1})
		assert.Equal(t, numbering.ErrInvalidExtent, errors.Cause(err))
		_, err = New([]int{2, 0}, []float64{1, 1})
		assert.Equal(t, numbering.ErrInvalidExtent, errors.Cause(err))
		_, err = New([]int{2}, []float64{-1})
		assert.Equal(t, numbering.ErrInvalidExtent, errors.Cause(err))
	}
}

func TestEntity(t *testing.T) {
	g, err := New([]int{2, 3}, []float64{2, 3})
	require.NoError(t, err)
	{ // Element in the middle of the second column
		e, err := g.Entity([]int{3, 3})
		require.NoError(t, err)
		assert.Equal(t, genericgeometry.Quadrilateral, e.Type())
		assert.Equal(t, 4, e.Corners())
		assert.Equal(t, []float64{1, 1}, e.Corner(0))
		assert.Equal(t, []float64{2, 1}, e.Corner(1))
		assert.Equal(t, []float64{1, 2}, e.Corner(2))
		assert.Equal(t, []float64{2, 2}, e.Corner(3))
		assert.Equal(t, 4, e.Count(1))
		assert.Equal(t, 4, e.Count(2))
		// Edges follow the reference quadrilateral: x=0, x=1, y=0, y=1
		exp := [][]int{{2, 3}, {4, 3}, {3, 2}, {3, 4}}
		for i, z := range exp {
			assert.Equal(t, z, e.SubEntity(1, i).(*Entity).Z())
		}
		for i := 0; i < 4; i++ {
			assert.Equal(t, e.Corner(i), e.SubEntity(2, i).Corner(0))
			assert.Equal(t, g.Index(e.SubEntity(2, i)), g.SubIndex(e, i, 2))
		}
		assert.Same(t, e, e.SubEntity(0, 0))
	}
	{ // Edge corners
		e, err := g.Entity([]int{2, 3})
		require.NoError(t, err)
		assert.Equal(t, 1, e.Codim())
		assert.Equal(t, genericgeometry.Line, e.Type())
		assert.Equal(t, []float64{1, 1}, e.Corner(0))
		assert.Equal(t, []float64{1, 2}, e.Corner(1))
		assert.Equal(t, 2, e.Count(2))
		assert.Equal(t, 0, e.Count(0))
	}
	{
		_, err := g.Entity([]int{5, 0})
		assert.Equal(t, numbering.ErrIndexOutOfRange, errors.Cause(err))
		_, err = g.Entity([]int{1})
		assert.Error(t, err)
	}
	{ // Neighbors across interior faces
		e, _ := g.Entity([]int{1, 3})
		nbs, err := g.Neighbors(e)
		require.NoError(t, err)
		assert.Equal(t, 3, len(nbs))
		e, _ = g.Entity([]int{3, 3})
		nbs, err = g.Neighbors(e)
		require.NoError(t, err)
		assert.Equal(t, 3, len(nbs))
		e, _ = g.Entity([]int{2, 3})
		_, err = g.Neighbors(e)
		assert.Error(t, err)
	}
}

func TestIterator(t *testing.T) {
	g, err := New([]int{2, 2}, []float64{1, 1})
	require.NoError(t, err)
	for codim := 0; codim <= 2; codim++ {
		n := 0
		for it := g.Begin(codim); it.Next(); {
			assert.Equal(t, n, g.Index(it.Entity()))
			assert.Equal(t, codim, it.Entity().(*Entity).Codim())
			n++
		}
		assert.Equal(t, g.Size(codim), n)
	}
	it := g.Begin(1).(*Iterator)
	require.NoError(t, it.Seek(5))
	assert.Equal(t, 5, g.Index(it.Entity()))
	assert.True(t, it.Next())
	assert.Equal(t, 6, it.Position())
	assert.Error(t, it.Seek(13))
}

func TestChecker(t *testing.T) {
	for _, N := range [][]int{{3}, {2, 3}, {2, 2, 2}, {1, 2, 1}} {
		L := make([]float64, len(N))
		for i := range L {
			L[i] = float64(i + 1)
		}
		g, err := New(N, L)
		require.NoError(t, err)
		var (
			buf bytes.Buffer
			c   = gridcheck.Checker{Out: &buf}
		)
		rep, err := c.CheckIndexSet(g)
		require.NoError(t, err, "N=%v", N)
		assert.Empty(t, rep.Warnings, "N=%v", N)
		assert.Contains(t, buf.String(), "end check sub entities")
		require.NoError(t, c.CheckRandomAccessIterators(g), "N=%v", N)
	}
	{ // Level views skip the intersection part once
		g, err := New([]int{2, 2}, []float64{1, 1})
		require.NoError(t, err)
		c := gridcheck.Checker{LevelIndex: true}
		rep, err := c.CheckIndexSet(g)
		require.NoError(t, err)
		assert.Equal(t, 1, len(rep.Warnings))
		rep, err = c.CheckIndexSetForCodim(g, 1)
		require.NoError(t, err)
		assert.Empty(t, rep.Warnings)
		c = gridcheck.Checker{LevelIndex: true, EnableLevelIntersectionCheck: true}
		rep, err = c.CheckIndexSet(g)
		require.NoError(t, err)
		assert.Empty(t, rep.Warnings)
	}
}
