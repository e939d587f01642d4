package numbering

import (
	"github.com/pkg/errors"
)

/*
JoinOrder concatenates several dense ranges ("subsets") into one dense range.
Subset i occupies [Offset[i], Offset[i]+Sizes[i]). Empty subsets own no
indices and are never reported by Subset.
*/
type JoinOrder struct {
	Sizes  []int
	Offset []int
}

func NewJoinOrder(N []int) (jo *JoinOrder) {
	var (
		nsub = len(N)
	)
	jo = &JoinOrder{
		Sizes:  make([]int, nsub),
		Offset: make([]int, nsub+1),
	}
	copy(jo.Sizes, N)
	for i := 1; i <= nsub; i++ {
		jo.Offset[i] = jo.Offset[i-1] + jo.Sizes[i-1]
	}
	return
}

// Size is the total number of indices over all subsets
func (jo *JoinOrder) Size() int {
	return jo.Offset[len(jo.Sizes)]
}

func (jo *JoinOrder) N(subset, index int) int {
	return index + jo.Offset[subset]
}

// Index returns the position of n within its owning subset
func (jo *JoinOrder) Index(n int) (index int, err error) {
	_, index, err = jo.locate(n)
	return
}

// Subset returns the subset owning n
func (jo *JoinOrder) Subset(n int) (subset int, err error) {
	subset, _, err = jo.locate(n)
	return
}

func (jo *JoinOrder) locate(n int) (subset, index int, err error) {
	if n < 0 || n >= jo.Size() {
		err = errors.Wrapf(ErrIndexOutOfRange, "join index %d not in [0,%d)", n, jo.Size())
		return
	}
	index = n
	for i, Ni := range jo.Sizes {
		if Ni == 0 {
			continue
		}
		if index < Ni {
			subset = i
			return
		}
		index -= Ni
	}
	// unreachable with a consistent offset table
	err = errors.Wrapf(ErrIndexOutOfRange, "join index %d", n)
	return
}
