package numbering

/*
LexOrder linearizes a dim-dimensional integer tuple with per axis extents,
least significant axis first:

	n(z) = z[0] + Extent[0]*(z[1] + Extent[1]*(z[2] + ...))

Components are not range checked, the caller guarantees 0 <= z[i] < Extent[i].
*/
type LexOrder struct {
	Extent []int // Extent per axis
	P      []int // Prefix products, P[dim] is the number of tupels
}

func NewLexOrder(N []int) (lo *LexOrder) {
	var (
		dim = len(N)
	)
	lo = &LexOrder{
		Extent: make([]int, dim),
		P:      make([]int, dim+1),
	}
	copy(lo.Extent, N)
	lo.P[0] = 1
	for i := 1; i <= dim; i++ {
		lo.P[i] = lo.P[i-1] * lo.Extent[i-1]
	}
	return
}

func (lo *LexOrder) Dim() int { return len(lo.Extent) }

// Tupels is the number of distinct tuples, the product of all extents
func (lo *LexOrder) Tupels() int {
	return lo.P[len(lo.Extent)]
}

func (lo *LexOrder) N(z []int) (n int) {
	for i := range lo.Extent {
		n += z[i] * lo.P[i]
	}
	return
}

func (lo *LexOrder) Z(n int) (z []int) {
	z = make([]int, len(lo.Extent))
	for i, Ni := range lo.Extent {
		z[i] = n % Ni
		n = n / Ni
	}
	return
}
