package numbering

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexOrder(t *testing.T) {
	{ // Mixed radix, least significant axis first
		lo := NewLexOrder([]int{3, 4, 2})
		assert.Equal(t, 24, lo.Tupels())
		assert.Equal(t, []int{1, 3, 12, 24}, lo.P)
		assert.Equal(t, 0, lo.N([]int{0, 0, 0}))
		assert.Equal(t, 1, lo.N([]int{1, 0, 0}))
		assert.Equal(t, 3, lo.N([]int{0, 1, 0}))
		assert.Equal(t, 12, lo.N([]int{0, 0, 1}))
		assert.Equal(t, 23, lo.N([]int{2, 3, 1}))
		assert.Equal(t, []int{2, 3, 1}, lo.Z(23))
	}
	{ // Bijection over a collection of extents
		for _, N := range [][]int{{1}, {5}, {2, 2}, {3, 1}, {2, 3, 4}, {1, 1, 1, 1}, {2, 1, 3, 2}} {
			lo := NewLexOrder(N)
			seen := make(map[int]bool)
			for k := 0; k < lo.Tupels(); k++ {
				z := lo.Z(k)
				for i := range z {
					require.True(t, z[i] >= 0 && z[i] < N[i], "N=%v k=%d z=%v", N, k, z)
				}
				assert.Equal(t, k, lo.N(z), "N=%v", N)
				seen[lo.N(z)] = true
			}
			assert.Equal(t, lo.Tupels(), len(seen))
		}
	}
	{ // Zero extent has no tupels
		lo := NewLexOrder([]int{3, 0})
		assert.Equal(t, 0, lo.Tupels())
	}
}

func TestJoinOrder(t *testing.T) {
	jo := NewJoinOrder([]int{3, 0, 2, 0, 4})
	assert.Equal(t, 9, jo.Size())
	assert.Equal(t, []int{0, 3, 3, 5, 5, 9}, jo.Offset)
	{ // Concatenation and its inverse
		expSubset := []int{0, 0, 0, 2, 2, 4, 4, 4, 4}
		expIndex := []int{0, 1, 2, 0, 1, 0, 1, 2, 3}
		for n := 0; n < jo.Size(); n++ {
			s, err := jo.Subset(n)
			require.NoError(t, err)
			i, err := jo.Index(n)
			require.NoError(t, err)
			assert.Equal(t, expSubset[n], s)
			assert.Equal(t, expIndex[n], i)
			assert.Equal(t, n, jo.N(s, i))
		}
	}
	{ // Out of range fails loudly
		_, err := jo.Index(9)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = jo.Subset(-1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		empty := NewJoinOrder([]int{0, 0})
		_, err = empty.Subset(0)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
}

func TestCubeMapper_Counts(t *testing.T) {
	{ // 2x2x2 cells
		cm, err := NewCubeMapper([]int{2, 2, 2})
		require.NoError(t, err)
		assert.Equal(t, 27, cm.Elements(3))
		assert.Equal(t, 54, cm.Elements(2))
		assert.Equal(t, 36, cm.Elements(1))
		assert.Equal(t, 8, cm.Elements(0))
		assert.Equal(t, 0, cm.Elements(4))
	}
	{ // Partition completeness: all doubled coordinates are numbered
		for _, N := range [][]int{{4}, {3, 2}, {1, 1}, {2, 3, 1}, {1, 2, 1, 2}} {
			cm, err := NewCubeMapper(N)
			require.NoError(t, err)
			total, sum := 1, 0
			for _, Ni := range N {
				total *= 2*Ni + 1
			}
			for c := 0; c <= cm.Dim(); c++ {
				sum += cm.Elements(c)
			}
			assert.Equal(t, total, sum, "N=%v", N)
		}
	}
	{ // 2D: 3x2 cells
		cm, err := NewCubeMapper([]int{3, 2})
		require.NoError(t, err)
		assert.Equal(t, 6, cm.Elements(0))
		assert.Equal(t, 3*3+4*2, cm.Elements(1))
		assert.Equal(t, 12, cm.Elements(2))
	}
	{ // Default is a single cell
		cm, err := DefaultCubeMapper(3)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 1, 1}, cm.Extent)
		assert.Equal(t, 1, cm.Elements(0))
		assert.Equal(t, 6, cm.Elements(1))
		assert.Equal(t, 12, cm.Elements(2))
		assert.Equal(t, 8, cm.Elements(3))
	}
}

func TestCubeMapper_RoundTrip(t *testing.T) {
	for _, N := range [][]int{{2, 2, 2}, {3}, {3, 2}, {1, 3, 2}, {2, 1, 1, 2}, {0, 2}} {
		cm, err := NewCubeMapper(N)
		require.NoError(t, err)
		dim := cm.Dim()
		{ // index -> tuple -> index
			for c := 0; c <= dim; c++ {
				for i := 0; i < cm.Elements(c); i++ {
					z, err := cm.Z(i, c)
					require.NoError(t, err)
					assert.Equal(t, c, cm.Codim(z), "N=%v i=%d z=%v", N, i, z)
					for k := range z {
						require.True(t, z[k] >= 0 && z[k] <= 2*N[k])
					}
					assert.Equal(t, i, cm.N(z), "N=%v codim=%d z=%v", N, c, z)
				}
			}
		}
		{ // tuple -> index -> tuple over the whole doubled box
			ext := make([]int, dim)
			for k := range ext {
				ext[k] = 2*N[k] + 1
			}
			box := NewLexOrder(ext)
			seen := make([]map[int]bool, dim+1)
			for c := range seen {
				seen[c] = make(map[int]bool)
			}
			for k := 0; k < box.Tupels(); k++ {
				z := box.Z(k)
				c := cm.Codim(z)
				n := cm.N(z)
				require.True(t, n >= 0 && n < cm.Elements(c), "N=%v z=%v n=%d", N, z, n)
				zz, err := cm.Z(n, c)
				require.NoError(t, err)
				assert.Equal(t, z, zz)
				seen[c][n] = true
			}
			for c := 0; c <= dim; c++ {
				assert.Equal(t, cm.Elements(c), len(seen[c]), "codim %d is not dense", c)
			}
		}
	}
}

func TestCubeMapper_Helpers(t *testing.T) {
	cm, err := DefaultCubeMapper(3)
	require.NoError(t, err)
	assert.Equal(t, 0, cm.Ones(0))
	assert.Equal(t, 2, cm.Ones(5))
	assert.Equal(t, 3, cm.Ones(7))
	assert.Equal(t, 3, cm.Ones(15)) // only dim bits count
	z := []int{3, 4, 1}
	assert.Equal(t, 2, cm.Partition(z))
	assert.Equal(t, []int{1, 2, 0}, cm.Compress(z))
	assert.Equal(t, z, cm.Expand(cm.Compress(z), cm.Partition(z)))
	assert.Equal(t, 1, cm.Codim(z))
}

func TestCubeMapper_Errors(t *testing.T) {
	_, err := NewCubeMapper(nil)
	assert.ErrorIs(t, err, ErrInvalidExtent)
	_, err = NewCubeMapper([]int{2, -1})
	assert.ErrorIs(t, err, ErrInvalidExtent)
	_, err = DefaultCubeMapper(0)
	assert.ErrorIs(t, err, ErrInvalidExtent)

	cm, err := NewCubeMapper([]int{2, 2})
	require.NoError(t, err)
	_, err = cm.Z(cm.Elements(1), 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = cm.Z(0, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = cm.Z(-1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestCubeMapper_Concurrent(t *testing.T) {
	cm, err := NewCubeMapper([]int{2, 3, 2})
	require.NoError(t, err)
	var (
		wg       sync.WaitGroup
		failures = make([]int, 8)
	)
	for k := range failures {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			for c := 0; c <= cm.Dim(); c++ {
				for i := 0; i < cm.Elements(c); i++ {
					z, err := cm.Z(i, c)
					if err != nil || cm.N(z) != i || cm.Codim(z) != c {
						failures[k]++
					}
				}
			}
		}(k)
	}
	wg.Wait()
	assert.Equal(t, make([]int, 8), failures)
}

func TestCubeMapper_Print(t *testing.T) {
	cm, err := NewCubeMapper([]int{2, 2, 2})
	require.NoError(t, err)
	var buf bytes.Buffer
	cm.Print(&buf, 2)
	assert.Equal(t, "  CubeMapper [2 2 2]\n"+
		"    8 elements of codim 0 in dimension 3\n"+
		"    36 elements of codim 1 in dimension 3\n"+
		"    54 elements of codim 2 in dimension 3\n"+
		"    27 elements of codim 3 in dimension 3\n", buf.String())
}
