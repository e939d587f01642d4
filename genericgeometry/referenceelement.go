package genericgeometry

import (
	"fmt"
	"sync"

	"github.com/notargets/gogrid/types"
)

type refSubEntity struct {
	topology Topology
	vertices []int // Element vertex numbers, in the sub-entity's own vertex order
}

/*
ReferenceElement tabulates the sub-entity structure of one topology: for each
codimension the sub-entities in generic order, their vertices, and for every
pair (codim, i), (subcodim, j) the number of the j-th sub-entity of (codim, i)
within the element's own numbering of codimension codim+subcodim.

Reference elements are built once per topology and never modified.
*/
type ReferenceElement struct {
	topology  Topology
	gt        GeometryType
	corners   [][]float64
	entities  [][]refSubEntity // [codim][i]
	numbering [][][][]int      // [codim][i][subcodim][j]
}

type refKey struct {
	id  uint32
	dim int
}

var referenceElements sync.Map // refKey -> *ReferenceElement

func ReferenceElementFor(t Topology) *ReferenceElement {
	key := refKey{t.ID(), t.Dim()}
	if re, ok := referenceElements.Load(key); ok {
		return re.(*ReferenceElement)
	}
	re, _ := referenceElements.LoadOrStore(key, newReferenceElement(t))
	return re.(*ReferenceElement)
}

func ReferenceElementForType(gt GeometryType) (re *ReferenceElement, err error) {
	var t Topology
	if t, err = TopologyFor(gt); err != nil {
		return
	}
	return ReferenceElementFor(t), nil
}

// MustReferenceElement panics for geometry types without a topology
func MustReferenceElement(gt GeometryType) *ReferenceElement {
	re, err := ReferenceElementForType(gt)
	if err != nil {
		panic(err)
	}
	return re
}

func newReferenceElement(t Topology) (re *ReferenceElement) {
	var (
		dim = t.Dim()
	)
	re = &ReferenceElement{
		topology: t,
		gt:       GeometryTypeOf(t),
		corners:  buildCorners(t),
		entities: buildSubEntities(t),
	}
	lookup := make([]map[types.VertexKey]int, dim+1)
	for c := 0; c <= dim; c++ {
		lookup[c] = make(map[types.VertexKey]int, len(re.entities[c]))
		for i, e := range re.entities[c] {
			lookup[c][types.NewVertexKey(e.vertices)] = i
		}
	}
	re.numbering = make([][][][]int, dim+1)
	for c := 0; c <= dim; c++ {
		re.numbering[c] = make([][][]int, len(re.entities[c]))
		for i, e := range re.entities[c] {
			children := re.entities
			if c > 0 {
				children = ReferenceElementFor(e.topology).entities
			}
			re.numbering[c][i] = make([][]int, dim-c+1)
			for sc := 0; sc <= dim-c; sc++ {
				nums := make([]int, len(children[sc]))
				for j, child := range children[sc] {
					global := make([]int, len(child.vertices))
					for k, v := range child.vertices {
						global[k] = e.vertices[v]
					}
					num, ok := lookup[c+sc][types.NewVertexKey(global)]
					if !ok {
						panic(fmt.Errorf("%s: sub-entity %v of (%d,%d) not found in codim %d",
							t.Name(), global, c, i, c+sc))
					}
					nums[j] = num
				}
				re.numbering[c][i][sc] = nums
			}
		}
	}
	return
}

func buildSubEntities(t Topology) (out [][]refSubEntity) {
	var (
		dim = t.Dim()
	)
	out = make([][]refSubEntity, dim+1)
	if t.IsPoint() {
		out[0] = []refSubEntity{{topology: t, vertices: []int{0}}}
		return
	}
	base := buildSubEntities(*t.base)
	nb := len(base[dim-1])
	shift := func(vertices []int, s int) (r []int) {
		r = make([]int, len(vertices))
		for k, v := range vertices {
			r[k] = v + s
		}
		return
	}
	for c := 0; c <= dim; c++ {
		if t.IsPrism() {
			if c < dim {
				for _, e := range base[c] {
					out[c] = append(out[c], refSubEntity{
						topology: NewPrism(e.topology),
						vertices: append(shift(e.vertices, 0), shift(e.vertices, nb)...),
					})
				}
			}
			if c > 0 {
				for _, s := range []int{0, nb} {
					for _, e := range base[c-1] {
						out[c] = append(out[c], refSubEntity{
							topology: e.topology,
							vertices: shift(e.vertices, s),
						})
					}
				}
			}
			continue
		}
		if c > 0 {
			for _, e := range base[c-1] {
				out[c] = append(out[c], refSubEntity{
					topology: e.topology,
					vertices: shift(e.vertices, 0),
				})
			}
		}
		if c < dim {
			for _, e := range base[c] {
				out[c] = append(out[c], refSubEntity{
					topology: NewPyramid(e.topology),
					vertices: append(shift(e.vertices, 0), nb),
				})
			}
		} else {
			out[c] = append(out[c], refSubEntity{topology: NewPoint(), vertices: []int{nb}})
		}
	}
	return
}

func buildCorners(t Topology) (corners [][]float64) {
	if t.IsPoint() {
		return [][]float64{{}}
	}
	var (
		dim  = t.Dim()
		base = buildCorners(*t.base)
	)
	lift := func(x []float64, h float64) (r []float64) {
		r = make([]float64, dim)
		copy(r, x)
		r[dim-1] = h
		return
	}
	for _, x := range base {
		corners = append(corners, lift(x, 0))
	}
	if t.IsPrism() {
		for _, x := range base {
			corners = append(corners, lift(x, 1))
		}
	} else {
		corners = append(corners, lift(nil, 1))
	}
	return
}

func (re *ReferenceElement) Dimension() int             { return re.topology.Dim() }
func (re *ReferenceElement) Topology() Topology         { return re.topology }
func (re *ReferenceElement) GeometryType() GeometryType { return re.gt }

// Size is the number of sub-entities of codimension codim
func (re *ReferenceElement) Size(codim int) int {
	if codim < 0 || codim > re.Dimension() {
		return 0
	}
	return len(re.entities[codim])
}

// SizeOf is the number of sub-entities of codimension cc (absolute) within
// sub-entity (i, codim)
func (re *ReferenceElement) SizeOf(i, codim, cc int) int {
	if cc < codim || cc > re.Dimension() {
		return 0
	}
	return len(re.numbering[codim][i][cc-codim])
}

// SubEntity is the number, within codimension cc, of the j-th codimension cc
// sub-entity of sub-entity (i, codim)
func (re *ReferenceElement) SubEntity(i, codim, j, cc int) int {
	return re.numbering[codim][i][cc-codim][j]
}

func (re *ReferenceElement) SubTopology(i, codim int) Topology {
	return re.entities[codim][i].topology
}

func (re *ReferenceElement) Type(i, codim int) GeometryType {
	return GeometryTypeOf(re.entities[codim][i].topology)
}

// Vertices lists the element vertices of sub-entity (i, codim) in the
// sub-entity's own vertex order
func (re *ReferenceElement) Vertices(i, codim int) (verts []int) {
	verts = make([]int, len(re.entities[codim][i].vertices))
	copy(verts, re.entities[codim][i].vertices)
	return
}

func (re *ReferenceElement) Corners() int { return len(re.corners) }

func (re *ReferenceElement) Corner(i int) (x []float64) {
	x = make([]float64, len(re.corners[i]))
	copy(x, re.corners[i])
	return
}

// Position is the barycenter of the corners of sub-entity (i, codim)
func (re *ReferenceElement) Position(i, codim int) (x []float64) {
	var (
		verts = re.entities[codim][i].vertices
	)
	x = make([]float64, re.Dimension())
	for _, v := range verts {
		for k, xk := range re.corners[v] {
			x[k] += xk
		}
	}
	for k := range x {
		x[k] /= float64(len(verts))
	}
	return
}
