package gridcheck

import (
	"github.com/notargets/gogrid/genericgeometry"
	"github.com/notargets/gogrid/types"
)

// mockGrid is a two dimensional quadrilateral grid. Edges are numbered in the
// order elements name them and keep the first element's vertex order.
type mockGrid struct {
	coords [][]float64
	elems  [][]int
	edges  [][]int
	lookup map[types.VertexKey]int

	ignoreTwist  bool // edges of elements show the canonical corner order
	neighbors    bool
	noEdges      bool
	sizeOffset   int
	extraElement bool // advertise triangles that are not there
	noElements   bool // iterate vertices and edges only
	sharedIndex  bool // every edge reports index 0
}

func newMockGrid(coords [][]float64, elems [][]int) (g *mockGrid) {
	g = &mockGrid{coords: coords, elems: elems, lookup: make(map[types.VertexKey]int)}
	re := genericgeometry.MustReferenceElement(genericgeometry.Quadrilateral)
	for _, verts := range elems {
		for i := 0; i < re.Size(1); i++ {
			local := g.localEdge(verts, i)
			key := types.NewVertexKey(local)
			if _, ok := g.lookup[key]; !ok {
				g.lookup[key] = len(g.edges)
				g.edges = append(g.edges, local)
			}
		}
	}
	return
}

// twoQuads share the edge x=1, the second quad has local axes (-y, x)
func twoQuads() *mockGrid {
	var coords [][]float64
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			coords = append(coords, []float64{float64(x), float64(y)})
		}
	}
	return newMockGrid(coords, [][]int{{0, 1, 3, 4}, {4, 1, 5, 2}})
}

func (g *mockGrid) localEdge(verts []int, i int) (local []int) {
	re := genericgeometry.MustReferenceElement(genericgeometry.Quadrilateral)
	for _, v := range re.Vertices(i, 1) {
		local = append(local, verts[v])
	}
	return
}

type mockEntity struct {
	g     *mockGrid
	codim int
	k     int
	verts []int
}

func (e *mockEntity) Type() genericgeometry.GeometryType {
	return genericgeometry.CubeType(2 - e.codim)
}
func (e *mockEntity) Level() int             { return 0 }
func (e *mockEntity) Corners() int           { return len(e.verts) }
func (e *mockEntity) Corner(i int) []float64 { return e.g.coords[e.verts[i]] }

func (e *mockEntity) Count(codim int) int {
	if codim < e.codim {
		return 0
	}
	return genericgeometry.MustReferenceElement(e.Type()).Size(codim - e.codim)
}

func (e *mockEntity) SubEntity(codim, i int) Entity {
	switch {
	case codim == e.codim:
		return e
	case codim == 2:
		v := e.verts[i]
		if e.codim == 0 {
			re := genericgeometry.MustReferenceElement(genericgeometry.Quadrilateral)
			v = e.verts[re.SubEntity(0, 0, i, 2)]
		}
		return &mockEntity{g: e.g, codim: 2, k: v, verts: []int{v}}
	}
	local := e.g.localEdge(e.verts, i)
	k := e.g.lookup[types.NewVertexKey(local)]
	if e.g.ignoreTwist {
		local = e.g.edges[k]
	}
	return &mockEntity{g: e.g, codim: 1, k: k, verts: local}
}

type mockIterator struct {
	entities []Entity
	pos      int
}

func (it *mockIterator) Next() bool {
	it.pos++
	return it.pos < len(it.entities)
}

func (it *mockIterator) Entity() Entity { return it.entities[it.pos] }

func (g *mockGrid) element(k int) *mockEntity {
	return &mockEntity{g: g, codim: 0, k: k, verts: g.elems[k]}
}

func (g *mockGrid) Dimension() int         { return 2 }
func (g *mockGrid) IndexSet() IndexSet     { return g }
func (g *mockGrid) HasEntities(c int) bool { return !(g.noEdges && c == 1) }

func (g *mockGrid) Begin(codim int) Iterator {
	it := &mockIterator{pos: -1}
	switch codim {
	case 0:
		if g.noElements {
			break
		}
		for k := range g.elems {
			it.entities = append(it.entities, g.element(k))
		}
	case 1:
		for k, verts := range g.edges {
			it.entities = append(it.entities, &mockEntity{g: g, codim: 1, k: k, verts: verts})
		}
	case 2:
		for k := range g.coords {
			it.entities = append(it.entities, &mockEntity{g: g, codim: 2, k: k, verts: []int{k}})
		}
	}
	return it
}

func (g *mockGrid) Neighbors(e Entity) ([]Entity, error) {
	if !g.neighbors {
		return nil, ErrNotSupported
	}
	return []Entity{g.element(1 - e.(*mockEntity).k)}, nil
}

func (g *mockGrid) Index(e Entity) int {
	me := e.(*mockEntity)
	if g.sharedIndex && me.codim == 1 {
		return 0
	}
	return me.k
}

func (g *mockGrid) SubIndex(e Entity, i, codim int) int { return g.Index(e.SubEntity(codim, i)) }

func (g *mockGrid) GeomTypes(codim int) []genericgeometry.GeometryType {
	gts := []genericgeometry.GeometryType{genericgeometry.CubeType(2 - codim)}
	if codim == 0 && g.extraElement {
		gts = append(gts, genericgeometry.Triangle)
	}
	return gts
}

func (g *mockGrid) Size(codim int) int {
	return []int{len(g.elems), len(g.edges), len(g.coords)}[codim] + g.sizeOffset
}

func (g *mockGrid) SizeOfType(gt genericgeometry.GeometryType) int {
	return g.Size(2 - gt.Dim)
}

func (g *mockGrid) Contains(e Entity) bool {
	me, ok := e.(*mockEntity)
	return ok && me.g == g
}
