package numbering

import (
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

/*
CubeMapper numbers all sub-entities of a structured hypercube grid with
Extent[i] cells along axis i, one dense index space per codimension.

A sub-entity is addressed by a tuple z in doubled coordinates,
0 <= z[i] <= 2*Extent[i]. An even component lies on a vertex layer, an odd
component is a cell midpoint, so the number of even components is the
codimension. The parity pattern of z selects one of 2^dim binary partitions
b (bit i set when z[i] is even); every partition is numbered
lexicographically and the partitions sharing a codimension are joined.
*/
type CubeMapper struct {
	Extent []int
	lex    []*LexOrder  // [partition]
	nb     []int        // Number of tupels in partition
	cb     []int        // Codimension of partition
	ne     []int        // Number of entities per codimension
	join   []*JoinOrder // [codim]
}

// DefaultCubeMapper is a single cell in dim dimensions, dim < 1 returns
// ErrInvalidExtent
func DefaultCubeMapper(dim int) (cm *CubeMapper, err error) {
	if dim < 1 {
		return nil, errors.Wrapf(ErrInvalidExtent, "dimension %d", dim)
	}
	N := make([]int, dim)
	for i := range N {
		N[i] = 1
	}
	return NewCubeMapper(N)
}

func NewCubeMapper(N []int) (cm *CubeMapper, err error) {
	cm = &CubeMapper{}
	if err = cm.Make(N); err != nil {
		return nil, err
	}
	return
}

// Make configures the mapper for the given cell extents. It must complete
// before the mapper is shared between goroutines.
func (cm *CubeMapper) Make(N []int) (err error) {
	var (
		dim = len(N)
	)
	if dim < 1 {
		return errors.Wrap(ErrInvalidExtent, "cube mapper needs at least one axis")
	}
	for i, Ni := range N {
		if Ni < 0 {
			return errors.Wrapf(ErrInvalidExtent, "extent[%d] = %d is negative", i, Ni)
		}
	}
	np := 1 << dim
	cm.Extent = make([]int, dim)
	copy(cm.Extent, N)
	cm.lex = make([]*LexOrder, np)
	cm.nb = make([]int, np)
	cm.cb = make([]int, np)
	cm.ne = make([]int, dim+1)

	t := make([]int, dim)
	for b := 0; b < np; b++ {
		for i := 0; i < dim; i++ {
			t[i] = N[i] // odd component
			if b&(1<<i) != 0 {
				t[i]++ // even component, one more vertex layer than cells
			}
		}
		cm.lex[b] = NewLexOrder(t)
		cm.nb[b] = cm.lex[b].Tupels()
		cm.cb[b] = cm.Ones(b)
		cm.ne[cm.cb[b]] += cm.nb[b]
	}

	cm.join = make([]*JoinOrder, dim+1)
	for c := 0; c <= dim; c++ {
		sizes := make([]int, np)
		for b := 0; b < np; b++ {
			if cm.cb[b] == c {
				sizes[b] = cm.nb[b]
			}
		}
		cm.join[c] = NewJoinOrder(sizes)
	}
	return
}

func (cm *CubeMapper) Dim() int { return len(cm.Extent) }

// Extents is a copy of the number of cells along each axis
func (cm *CubeMapper) Extents() (N []int) {
	N = make([]int, len(cm.Extent))
	copy(N, cm.Extent)
	return
}

// Elements is the number of sub-entities of the given codimension
func (cm *CubeMapper) Elements(codim int) int {
	if codim < 0 || codim > cm.Dim() {
		return 0
	}
	return cm.ne[codim]
}

// Codim counts the even components of z
func (cm *CubeMapper) Codim(z []int) (c int) {
	for _, zi := range z {
		if zi%2 == 0 {
			c++
		}
	}
	return
}

func (cm *CubeMapper) N(z []int) int {
	var (
		p   = cm.Partition(z)
		r   = cm.Compress(z)
		all = len(cm.lex) - 1
	)
	if p == 0 || p == all {
		// partition owns its codimension alone
		return cm.lex[p].N(r)
	}
	return cm.join[cm.Ones(p)].N(p, cm.lex[p].N(r))
}

func (cm *CubeMapper) Z(i, codim int) (z []int, err error) {
	var (
		dim = cm.Dim()
		all = len(cm.lex) - 1
		p   int
		n   int
	)
	if codim < 0 || codim > dim {
		err = errors.Wrapf(ErrIndexOutOfRange, "codim %d not in [0,%d]", codim, dim)
		return
	}
	if i < 0 || i >= cm.ne[codim] {
		err = errors.Wrapf(ErrIndexOutOfRange, "index %d not in [0,%d) for codim %d",
			i, cm.ne[codim], codim)
		return
	}
	switch codim {
	case 0:
		return cm.Expand(cm.lex[0].Z(i), 0), nil
	case dim:
		return cm.Expand(cm.lex[all].Z(i), all), nil
	}
	if p, err = cm.join[codim].Subset(i); err != nil {
		return
	}
	if n, err = cm.join[codim].Index(i); err != nil {
		return
	}
	z = cm.Expand(cm.lex[p].Z(n), p)
	return
}

// Ones is the number of set bits in the low dim bits of b
func (cm *CubeMapper) Ones(b int) int {
	return bits.OnesCount(uint(b) & (1<<cm.Dim() - 1))
}

func (cm *CubeMapper) Partition(z []int) (b int) {
	for i, zi := range z {
		if zi%2 == 0 {
			b |= 1 << i
		}
	}
	return
}

func (cm *CubeMapper) Compress(z []int) (r []int) {
	r = make([]int, len(z))
	for i, zi := range z {
		if zi%2 == 0 {
			r[i] = zi / 2
		} else {
			r[i] = (zi - 1) / 2
		}
	}
	return
}

func (cm *CubeMapper) Expand(r []int, b int) (z []int) {
	z = make([]int, len(r))
	for i, ri := range r {
		if b&(1<<i) != 0 {
			z[i] = 2 * ri
		} else {
			z[i] = 2*ri + 1
		}
	}
	return
}

func (cm *CubeMapper) Print(w io.Writer, indent int) {
	var (
		pad  = strings.Repeat(" ", indent)
		dims = make([]string, len(cm.Extent))
	)
	for i, Ni := range cm.Extent {
		dims[i] = fmt.Sprintf("%d", Ni)
	}
	fmt.Fprintf(w, "%sCubeMapper [%s]\n", pad, strings.Join(dims, " "))
	for c := 0; c <= cm.Dim(); c++ {
		fmt.Fprintf(w, "%s  %d elements of codim %d in dimension %d\n",
			pad, cm.ne[c], c, cm.Dim())
	}
}
