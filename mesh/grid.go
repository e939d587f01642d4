package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/gogrid/genericgeometry"
	"github.com/notargets/gogrid/gridcheck"
	"github.com/notargets/gogrid/numbering"
	"github.com/notargets/gogrid/types"
	"github.com/pkg/errors"
)

type subEntity struct {
	gt    genericgeometry.GeometryType
	verts []int // canonical vertex order, the view of the first element naming it
	index int   // index within the geometry type
}

/*
Grid is the grid view of a mesh. Every sub-entity is numbered once per
codimension and geometry type in the order elements first name it, and keeps
the vertex order of that first element as its canonical order. An element
sees each of its sub-entities with a twist relative to the canonical order,
its sub-entity geometries present the corners in the element's own order.
*/
type Grid struct {
	m        *Mesh
	dim      int
	entities [][]subEntity                          // [codim][k]
	lookup   []map[types.VertexKey]int              // [codim] vertex key -> k
	byType   []map[genericgeometry.GeometryType]int // [codim] entities per type
	elemSub  [][][]int                              // [elem][codim][i] -> k
	twists   [][][]int                              // [elem][codim][i]
}

func NewGrid(m *Mesh) (g *Grid, err error) {
	if m.NumElements == 0 {
		return nil, errors.Wrap(ErrMeshFormat, "mesh has no elements")
	}
	if m.EToE == nil {
		m.BuildConnectivity()
	}
	g = &Grid{
		m:       m,
		dim:     m.Dim(),
		elemSub: make([][][]int, m.NumElements),
		twists:  make([][][]int, m.NumElements),
	}
	g.entities = make([][]subEntity, g.dim+1)
	g.lookup = make([]map[types.VertexKey]int, g.dim+1)
	g.byType = make([]map[genericgeometry.GeometryType]int, g.dim+1)
	for c := range g.lookup {
		g.lookup[c] = make(map[types.VertexKey]int)
		g.byType[c] = make(map[genericgeometry.GeometryType]int)
	}
	for e, verts := range m.EtoV {
		gt := m.ElementTypes[e].GeometryType()
		re := genericgeometry.MustReferenceElement(gt)
		g.elemSub[e] = make([][]int, g.dim+1)
		g.twists[e] = make([][]int, g.dim+1)
		for c := 0; c <= g.dim; c++ {
			g.elemSub[e][c] = make([]int, re.Size(c))
			g.twists[e][c] = make([]int, re.Size(c))
			for i := 0; i < re.Size(c); i++ {
				local := make([]int, 0, re.SizeOf(i, c, g.dim))
				for _, v := range re.Vertices(i, c) {
					local = append(local, verts[v])
				}
				sgt := re.Type(i, c)
				key := types.NewVertexKey(local)
				k, ok := g.lookup[c][key]
				if ok && c == 0 {
					return nil, errors.Wrapf(ErrMeshFormat, "element %d repeats element %d", e, k)
				}
				if !ok {
					k = len(g.entities[c])
					g.lookup[c][key] = k
					g.entities[c] = append(g.entities[c], subEntity{
						gt:    sgt,
						verts: local,
						index: g.byType[c][sgt],
					})
					g.byType[c][sgt]++
				}
				canonical := g.entities[c][k]
				if canonical.gt != sgt {
					return nil, errors.Wrapf(ErrMeshFormat, "vertices %s are a %s and a %s",
						key, canonical.gt, sgt)
				}
				if c > 0 {
					var twist int
					if twist, err = genericgeometry.FindTwist(sgt, canonical.verts, local); err != nil {
						return nil, errors.Wrapf(ErrMeshFormat, "element %d sub-entity (%d,%d): %v", e, c, i, err)
					}
					g.twists[e][c][i] = twist
				}
				g.elemSub[e][c][i] = k
			}
		}
	}
	return
}

func (g *Grid) Mesh() *Mesh                        { return g.m }
func (g *Grid) Dimension() int                     { return g.dim }
func (g *Grid) IndexSet() gridcheck.IndexSet       { return g }
func (g *Grid) LocalIDSet() gridcheck.LocalIDSet   { return g }
func (g *Grid) Begin(codim int) gridcheck.Iterator { return &Iterator{g: g, codim: codim, pos: -1} }

// Twist of sub-entity (codim, i) of element e relative to its canonical order
func (g *Grid) Twist(e, codim, i int) int { return g.twists[e][codim][i] }

// ElementEdges are the edges of element e in reference element order, each
// oriented by the element's local vertex order
func (g *Grid) ElementEdges(e int) (edges []types.OrientedEdge) {
	c := g.dim - 1
	if c < 0 {
		return
	}
	el := g.Element(e)
	for i := 0; i < el.Count(c); i++ {
		verts := el.SubEntity(c, i).(*Entity).verts
		edges = append(edges, types.NewOrientedEdge([2]int{verts[0], verts[1]}))
	}
	return
}

// Element returns element e in its own vertex order
func (g *Grid) Element(e int) *Entity {
	return &Entity{g: g, codim: 0, k: e, verts: g.entities[0][e].verts}
}

// entity is the canonical view of entity k of a codimension
func (g *Grid) entity(codim, k int) *Entity {
	return &Entity{g: g, codim: codim, k: k, verts: g.entities[codim][k].verts}
}

func (g *Grid) Neighbors(e gridcheck.Entity) (nbs []gridcheck.Entity, err error) {
	el, ok := e.(*Entity)
	if !ok || el.g != g || el.codim != 0 {
		return nil, errors.Errorf("neighbors of %v: not an element", e)
	}
	for _, nb := range g.m.EToE[el.k] {
		if nb >= 0 {
			nbs = append(nbs, g.Element(nb))
		}
	}
	return
}

func (g *Grid) asEntity(e gridcheck.Entity) *Entity {
	el, ok := e.(*Entity)
	if !ok || el.g != g {
		panic(fmt.Errorf("entity %v does not belong to the grid", e))
	}
	return el
}

func (g *Grid) Index(e gridcheck.Entity) int {
	el := g.asEntity(e)
	return g.entities[el.codim][el.k].index
}

func (g *Grid) SubIndex(e gridcheck.Entity, i, codim int) int {
	return g.Index(g.asEntity(e).SubEntity(codim, i))
}

func (g *Grid) GeomTypes(codim int) (gts []genericgeometry.GeometryType) {
	if codim < 0 || codim > g.dim {
		return
	}
	for gt := range g.byType[codim] {
		gts = append(gts, gt)
	}
	sort.Slice(gts, func(i, j int) bool {
		return genericgeometry.CompareGeometryTypes(gts[i], gts[j]) < 0
	})
	return
}

func (g *Grid) Size(codim int) int {
	if codim < 0 || codim > g.dim {
		return 0
	}
	return len(g.entities[codim])
}

func (g *Grid) SizeOfType(gt genericgeometry.GeometryType) int {
	codim := g.dim - gt.Dim
	if codim < 0 || codim > g.dim {
		return 0
	}
	return g.byType[codim][gt]
}

func (g *Grid) Contains(e gridcheck.Entity) bool {
	el, ok := e.(*Entity)
	return ok && el.g == g && el.codim >= 0 && el.codim <= g.dim && el.k < len(g.entities[el.codim])
}

func (g *Grid) ID(e gridcheck.Entity) uint64 {
	el := g.asEntity(e)
	return uint64(el.codim)<<48 | uint64(el.k)
}

// Entity is a mesh entity seen in a given vertex order
type Entity struct {
	g     *Grid
	codim int
	k     int
	verts []int
}

func (e *Entity) Codim() int      { return e.codim }
func (e *Entity) Level() int      { return 0 }
func (e *Entity) Corners() int    { return len(e.verts) }
func (e *Entity) Vertices() []int { return append([]int{}, e.verts...) }

func (e *Entity) Type() genericgeometry.GeometryType { return e.g.entities[e.codim][e.k].gt }

func (e *Entity) String() string { return fmt.Sprintf("%s %v", e.Type(), e.verts) }

func (e *Entity) Corner(i int) []float64 {
	return append([]float64{}, e.g.m.Vertices[e.verts[i]][:e.g.dim]...)
}

func (e *Entity) Count(codim int) int {
	if codim < e.codim {
		return 0
	}
	return genericgeometry.MustReferenceElement(e.Type()).Size(codim - e.codim)
}

// SubEntity i of codimension codim, with corners in this entity's order. For
// elements the corners are the canonical ones permuted by the stored twist.
func (e *Entity) SubEntity(codim, i int) gridcheck.Entity {
	if codim == e.codim {
		return e
	}
	g := e.g
	if e.codim == 0 {
		k := g.elemSub[e.k][codim][i]
		canonical := g.entities[codim][k]
		twist := g.twists[e.k][codim][i]
		verts := make([]int, len(canonical.verts))
		for j := range verts {
			verts[j] = canonical.verts[genericgeometry.TwistedCorner(canonical.gt, j, twist)]
		}
		return &Entity{g: g, codim: codim, k: k, verts: verts}
	}
	re := genericgeometry.MustReferenceElement(e.Type())
	var local []int
	for _, v := range re.Vertices(i, codim-e.codim) {
		local = append(local, e.verts[v])
	}
	k, ok := g.lookup[codim][types.NewVertexKey(local)]
	if !ok {
		panic(errors.Wrapf(numbering.ErrIndexOutOfRange, "sub-entity %v of %v", local, e))
	}
	return &Entity{g: g, codim: codim, k: k, verts: local}
}

// Iterator walks one codimension in index creation order, it is random access
type Iterator struct {
	g     *Grid
	codim int
	pos   int
}

func (it *Iterator) Next() bool {
	if it.pos < it.Len() {
		it.pos++
	}
	return it.pos < it.Len()
}

func (it *Iterator) Entity() gridcheck.Entity {
	if it.codim == 0 {
		return it.g.Element(it.pos)
	}
	return it.g.entity(it.codim, it.pos)
}

func (it *Iterator) Len() int      { return it.g.Size(it.codim) }
func (it *Iterator) Position() int { return it.pos }

func (it *Iterator) Seek(k int) error {
	if k < 0 || k > it.Len() {
		return errors.Wrapf(numbering.ErrIndexOutOfRange, "seek to %d of %d entities", k, it.Len())
	}
	it.pos = k
	return nil
}
