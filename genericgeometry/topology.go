package genericgeometry

import "fmt"

type construction uint8

const (
	pointConstruction construction = iota
	prismConstruction
	pyramidConstruction
)

/*
Topology is a reference element topology built from a point by repeated
extensions. A prism extension sweeps the base along a new axis (bottom and top
copy), a pyramid extension connects every base point to one new apex.

	Line        = Prism(Point)  (or Pyramid(Point))
	Triangle    = Pyramid(Line)
	Quad        = Prism(Line)
	Tetrahedron = Pyramid(Triangle)
	Hexahedron  = Prism(Quad)
	Prism       = Prism(Triangle)
	Pyramid     = Pyramid(Quad)

The topology id has bit k set when the (k+1)-th extension is a prism, bit 0
is meaningless since both extensions of a point are the line.
*/
type Topology struct {
	kind construction
	base *Topology
	dim  int
	id   uint32
}

func NewPoint() Topology {
	return Topology{kind: pointConstruction}
}

func NewPrism(base Topology) Topology {
	b := base
	return Topology{
		kind: prismConstruction,
		base: &b,
		dim:  base.dim + 1,
		id:   base.id | 1<<uint(base.dim),
	}
}

func NewPyramid(base Topology) Topology {
	b := base
	return Topology{
		kind: pyramidConstruction,
		base: &b,
		dim:  base.dim + 1,
		id:   base.id,
	}
}

func SimplexTopology(dim int) (t Topology) {
	t = NewPoint()
	for d := 0; d < dim; d++ {
		t = NewPyramid(t)
	}
	return
}

func CubeTopology(dim int) (t Topology) {
	t = NewPoint()
	for d := 0; d < dim; d++ {
		t = NewPrism(t)
	}
	return
}

// TopologyFromID rebuilds the topology of dimension dim with the given id
func TopologyFromID(id uint32, dim int) (t Topology) {
	t = NewPoint()
	for k := 0; k < dim; k++ {
		if id&(1<<uint(k)) != 0 {
			t = NewPrism(t)
		} else {
			t = NewPyramid(t)
		}
	}
	return
}

func (t Topology) Dim() int      { return t.dim }
func (t Topology) ID() uint32    { return t.id }
func (t Topology) IsPoint() bool { return t.kind == pointConstruction }
func (t Topology) IsPrism() bool { return t.kind == prismConstruction }

func (t Topology) IsPyramid() bool { return t.kind == pyramidConstruction }

// Base is the topology this one extends, a point has no base
func (t Topology) Base() (base Topology, ok bool) {
	if t.base == nil {
		return
	}
	return *t.base, true
}

// Equal compares topologies up to the line ambiguity of bit 0
func (t Topology) Equal(o Topology) bool {
	return t.dim == o.dim && (t.id|1) == (o.id|1)
}

// Name spells the construction, "p" for the point, "l" for every prism and
// "o" for every pyramid extension
func (t Topology) Name() string {
	switch t.kind {
	case prismConstruction:
		return t.base.Name() + "l"
	case pyramidConstruction:
		return t.base.Name() + "o"
	default:
		return "p"
	}
}

func (t Topology) String() string {
	return fmt.Sprintf("%s(id=%d,dim=%d)", t.Name(), t.id, t.dim)
}

// size is the number of sub-entities of the given codimension
func (t Topology) size(codim int) int {
	if codim < 0 || codim > t.dim {
		return 0
	}
	if t.kind == pointConstruction || codim == 0 {
		return 1
	}
	b := t.base
	m := b.size(codim - 1)
	switch t.kind {
	case prismConstruction:
		n := 0
		if codim < t.dim {
			n = b.size(codim)
		}
		return n + 2*m
	default:
		n := 1 // apex
		if codim < t.dim {
			n = b.size(codim)
		}
		return m + n
	}
}

/*
subEntityNumber follows the construction recursively. Within a codimension a
prism lists the sides over the base entities first, then the bottom copies,
then the top copies. A pyramid lists the base entities first, then the cones
over the base entities, then the apex.
*/
func (t Topology) subEntityNumber(codim, i, subcodim, j int) int {
	if subcodim == 0 {
		return i
	}
	if codim == 0 {
		return j
	}
	var (
		b  = t.base
		cc = codim + subcodim
		m  = b.size(codim - 1)
		mc = b.size(cc - 1)
	)
	switch t.kind {
	case prismConstruction:
		n, nc := 0, 0
		if codim < t.dim {
			n = b.size(codim)
		}
		if cc < t.dim {
			nc = b.size(cc)
		}
		switch {
		case i < n:
			// side over base entity (codim, i)
			var (
				s  = b.subTopology(codim, i)
				ns = 0
				ms = s.size(subcodim - 1)
			)
			if subcodim < t.dim-codim {
				ns = s.size(subcodim)
			}
			switch {
			case j < ns:
				return b.subEntityNumber(codim, i, subcodim, j)
			case j < ns+ms:
				return nc + b.subEntityNumber(codim, i, subcodim-1, j-ns)
			default:
				return nc + mc + b.subEntityNumber(codim, i, subcodim-1, j-ns-ms)
			}
		case i < n+m:
			return nc + b.subEntityNumber(codim-1, i-n, subcodim, j)
		default:
			return nc + mc + b.subEntityNumber(codim-1, i-n-m, subcodim, j)
		}
	default:
		if i < m {
			return b.subEntityNumber(codim-1, i, subcodim, j)
		}
		// cone over base entity (codim, i-m), the apex never has children
		var (
			s  = b.subTopology(codim, i-m)
			ms = s.size(subcodim - 1)
			ns = 0
		)
		if subcodim < t.dim-codim {
			ns = s.size(subcodim)
		}
		switch {
		case j < ms:
			return b.subEntityNumber(codim, i-m, subcodim-1, j)
		case j < ms+ns:
			return mc + b.subEntityNumber(codim, i-m, subcodim, j-ms)
		default:
			return mc
		}
	}
}

func (t Topology) subTopology(codim, i int) Topology {
	if codim == 0 || t.kind == pointConstruction {
		return t
	}
	var (
		b = t.base
		m = b.size(codim - 1)
	)
	switch t.kind {
	case prismConstruction:
		n := 0
		if codim < t.dim {
			n = b.size(codim)
		}
		switch {
		case i < n:
			return NewPrism(b.subTopology(codim, i))
		case i < n+m:
			return b.subTopology(codim-1, i-n)
		default:
			return b.subTopology(codim-1, i-n-m)
		}
	default:
		switch {
		case i < m:
			return b.subTopology(codim-1, i)
		case codim < t.dim:
			return NewPyramid(b.subTopology(codim, i-m))
		default:
			return NewPoint()
		}
	}
}
