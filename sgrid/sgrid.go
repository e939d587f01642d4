package sgrid

import (
	"fmt"
	"io"

	"github.com/notargets/gogrid/genericgeometry"
	"github.com/notargets/gogrid/gridcheck"
	"github.com/notargets/gogrid/numbering"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

/*
Grid is a structured cube grid with N[i] cells of length L[i]/N[i] along axis
i. Entities are addressed by doubled coordinates z, 0 <= z[i] <= 2N[i]: even
components lie on a vertex layer, odd components in the middle of a cell, so
the codimension of an entity is its number of even components.
*/
type Grid struct {
	cm   *numbering.CubeMapper
	L    []float64
	half []float64 // half cell widths
}

func New(N []int, L []float64) (g *Grid, err error) {
	if len(N) != len(L) {
		err = errors.Wrapf(numbering.ErrInvalidExtent, "%d extents for %d lengths", len(N), len(L))
		return
	}
	for i := range N {
		if N[i] < 1 || L[i] <= 0 {
			err = errors.Wrapf(numbering.ErrInvalidExtent, "axis %d: %d cells on length %g", i, N[i], L[i])
			return
		}
	}
	g = &Grid{
		L:    append([]float64{}, L...),
		half: make([]float64, len(L)),
	}
	if g.cm, err = numbering.NewCubeMapper(N); err != nil {
		return nil, err
	}
	for i := range L {
		g.half[i] = 0.5 * L[i] / float64(N[i])
	}
	return
}

func (g *Grid) Dimension() int                     { return g.cm.Dim() }
func (g *Grid) Mapper() *numbering.CubeMapper      { return g.cm }
func (g *Grid) IndexSet() gridcheck.IndexSet       { return g }
func (g *Grid) LocalIDSet() gridcheck.LocalIDSet   { return g }
func (g *Grid) HasEntities(codim int) bool         { return codim >= 0 && codim <= g.Dimension() }
func (g *Grid) Print(w io.Writer)                  { g.cm.Print(w, 0) }
func (g *Grid) Begin(codim int) gridcheck.Iterator { return g.iterator(codim) }
func (g *Grid) String() string                     { return fmt.Sprintf("sgrid %v", g.cm.Extents()) }

// Entity returns the entity at doubled coordinates z
func (g *Grid) Entity(z []int) (e *Entity, err error) {
	if len(z) != g.Dimension() {
		err = errors.Wrapf(numbering.ErrIndexOutOfRange, "%d coordinates in dimension %d", len(z), g.Dimension())
		return
	}
	for i, N := range g.cm.Extents() {
		if z[i] < 0 || z[i] > 2*N {
			err = errors.Wrapf(numbering.ErrIndexOutOfRange, "z=%v outside the grid", z)
			return
		}
	}
	return g.entity(append([]int{}, z...)), nil
}

func (g *Grid) entity(z []int) *Entity {
	return &Entity{g: g, z: z, codim: g.cm.Codim(z)}
}

// Neighbors are the elements across the interior faces of element e
func (g *Grid) Neighbors(e gridcheck.Entity) (nbs []gridcheck.Entity, err error) {
	el, ok := e.(*Entity)
	if !ok || el.g != g || el.codim != 0 {
		return nil, errors.Errorf("neighbors of %v: not an element of %s", e, g)
	}
	N := g.cm.Extents()
	for i := range el.z {
		for _, step := range []int{-2, 2} {
			z := append([]int{}, el.z...)
			z[i] += step
			if z[i] < 0 || z[i] > 2*N[i] {
				continue
			}
			nbs = append(nbs, g.entity(z))
		}
	}
	return
}

func (g *Grid) asEntity(e gridcheck.Entity) *Entity {
	el, ok := e.(*Entity)
	if !ok || el.g != g {
		panic(fmt.Errorf("entity %v does not belong to %s", e, g))
	}
	return el
}

func (g *Grid) Index(e gridcheck.Entity) int { return g.cm.N(g.asEntity(e).z) }

func (g *Grid) SubIndex(e gridcheck.Entity, i, codim int) int {
	return g.cm.N(g.asEntity(e).subEntity(codim, i).z)
}

func (g *Grid) GeomTypes(codim int) []genericgeometry.GeometryType {
	if codim < 0 || codim > g.Dimension() {
		return nil
	}
	return []genericgeometry.GeometryType{genericgeometry.CubeType(g.Dimension() - codim)}
}

func (g *Grid) Size(codim int) int { return g.cm.Elements(codim) }

func (g *Grid) SizeOfType(gt genericgeometry.GeometryType) int {
	if !gt.IsCube() || gt.Dim > g.Dimension() {
		return 0
	}
	return g.cm.Elements(g.Dimension() - gt.Dim)
}

func (g *Grid) Contains(e gridcheck.Entity) bool {
	el, ok := e.(*Entity)
	if !ok || el.g != g {
		return false
	}
	for i, N := range g.cm.Extents() {
		if el.z[i] < 0 || el.z[i] > 2*N {
			return false
		}
	}
	return true
}

// ID packs the codimension above the index
func (g *Grid) ID(e gridcheck.Entity) uint64 {
	el := g.asEntity(e)
	return uint64(el.codim)<<48 | uint64(g.cm.N(el.z))
}

// Entity is a sub-entity of the structured grid
type Entity struct {
	g     *Grid
	z     []int
	codim int
}

func (e *Entity) Z() []int       { return append([]int{}, e.z...) }
func (e *Entity) Codim() int     { return e.codim }
func (e *Entity) Level() int     { return 0 }
func (e *Entity) String() string { return fmt.Sprintf("z=%v", e.z) }

func (e *Entity) Type() genericgeometry.GeometryType {
	return genericgeometry.CubeType(e.g.Dimension() - e.codim)
}

func (e *Entity) Corners() int { return 1 << uint(e.g.Dimension()-e.codim) }

// Corner k sets the m-th odd axis to its upper vertex layer when bit m of k
// is set, corners are lexicographic like the reference cube
func (e *Entity) Corner(k int) (x []float64) {
	var (
		zc = make([]float64, len(e.z))
		m  = 0
	)
	for i, zi := range e.z {
		zc[i] = float64(zi)
		if zi%2 == 1 {
			if k&(1<<uint(m)) != 0 {
				zc[i]++
			} else {
				zc[i]--
			}
			m++
		}
	}
	x = make([]float64, len(zc))
	floats.MulTo(x, zc, e.g.half)
	return
}

func (e *Entity) reference() *genericgeometry.ReferenceElement {
	return genericgeometry.MustReferenceElement(e.Type())
}

func (e *Entity) Count(codim int) int {
	if codim < e.codim {
		return 0
	}
	return e.reference().Size(codim - e.codim)
}

func (e *Entity) SubEntity(codim, i int) gridcheck.Entity { return e.subEntity(codim, i) }

// subEntity locates sub-entity i through the barycenter of the matching
// reference cube sub-entity, each odd axis moves by -1, 0 or +1
func (e *Entity) subEntity(codim, i int) *Entity {
	if codim == e.codim {
		return e
	}
	var (
		p = e.reference().Position(i, codim-e.codim)
		z = append([]int{}, e.z...)
		m = 0
	)
	for k, zk := range z {
		if zk%2 == 1 {
			z[k] += int(2*p[m]) - 1
			m++
		}
	}
	return e.g.entity(z)
}
