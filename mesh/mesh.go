package mesh

import (
	"fmt"
	"io"
	"sort"

	"github.com/notargets/gogrid/genericgeometry"
	"github.com/notargets/gogrid/types"
	"github.com/pkg/errors"
)

var ErrMeshFormat = errors.New("invalid mesh")

// ElementType represents the first order element types
type ElementType int

const (
	Line ElementType = iota
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
)

func (e ElementType) String() string {
	return [...]string{"Line", "Triangle", "Quad", "Tet", "Hex", "Prism", "Pyramid"}[e]
}

func (e ElementType) GeometryType() genericgeometry.GeometryType {
	return [...]genericgeometry.GeometryType{
		genericgeometry.Line,
		genericgeometry.Triangle,
		genericgeometry.Quadrilateral,
		genericgeometry.Tetrahedron,
		genericgeometry.Hexahedron,
		genericgeometry.PrismType,
		genericgeometry.PyramidType,
	}[e]
}

func (e ElementType) Dim() int { return e.GeometryType().Dim }

func (e ElementType) NumVertices() int {
	return genericgeometry.MustReferenceElement(e.GeometryType()).Size(e.Dim())
}

func ElementTypeOf(gt genericgeometry.GeometryType) (et ElementType, err error) {
	for et = Line; et <= Pyramid; et++ {
		if et.GeometryType() == gt {
			return
		}
	}
	err = errors.Wrapf(genericgeometry.ErrUnknownGeometry, "no element type for %s", gt)
	return
}

// Face represents a face of an element
type Face struct {
	Vertices []int // Sorted vertex indices
	Element  int   // Parent element
	LocalID  int   // Local face ID within element
}

/*
Mesh is an unstructured mesh of one element dimension. Element vertices are
stored in generic reference element order.
*/
type Mesh struct {
	// Geometry
	Vertices [][]float64 // Vertex coordinates [nvertices][3]

	// Element data
	EtoV         [][]int       // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []ElementType // Element type for each element
	ElementTags  [][]int       // Gmsh tags for each element

	// Connectivity, built by BuildConnectivity
	EToE [][]int // Element to element connectivity [nelems][nfaces_per_elem], -1 on the boundary
	EToF [][]int // Element to face connectivity [nelems][nfaces_per_elem]

	Faces   []Face
	FaceMap map[types.VertexKey]int

	PhysicalNames map[int]string
	NodeIDMap     map[int]int // File node id -> vertex index

	NumElements int
	NumVertices int
	NumFaces    int
}

func NewMesh() *Mesh {
	return &Mesh{
		FaceMap:       make(map[types.VertexKey]int),
		PhysicalNames: make(map[int]string),
		NodeIDMap:     make(map[int]int),
	}
}

// AddNode appends a vertex, coordinates beyond three are ignored
func (m *Mesh) AddNode(nodeID int, coords []float64) {
	x := make([]float64, 3)
	copy(x, coords)
	m.NodeIDMap[nodeID] = len(m.Vertices)
	m.Vertices = append(m.Vertices, x)
	m.NumVertices = len(m.Vertices)
}

// AddElement appends an element given by vertex indices in generic order
func (m *Mesh) AddElement(et ElementType, tags []int, verts []int) (err error) {
	if len(verts) != et.NumVertices() {
		return errors.Wrapf(ErrMeshFormat, "%s with %d vertices", et, len(verts))
	}
	for _, v := range verts {
		if v < 0 || v >= len(m.Vertices) {
			return errors.Wrapf(ErrMeshFormat, "%s references vertex %d of %d", et, v, len(m.Vertices))
		}
	}
	if len(m.ElementTypes) > 0 && m.ElementTypes[0].Dim() != et.Dim() {
		return errors.Wrapf(ErrMeshFormat, "%s mixed with %s", et, m.ElementTypes[0])
	}
	m.EtoV = append(m.EtoV, append([]int{}, verts...))
	m.ElementTypes = append(m.ElementTypes, et)
	m.ElementTags = append(m.ElementTags, append([]int{}, tags...))
	m.NumElements = len(m.EtoV)
	return
}

func (m *Mesh) Dim() int {
	if len(m.ElementTypes) == 0 {
		return 0
	}
	return m.ElementTypes[0].Dim()
}

// GetElementFaces returns the faces of an element, each in the element's
// generic face vertex order
func GetElementFaces(elemType ElementType, vertices []int) (faces [][]int) {
	re := genericgeometry.MustReferenceElement(elemType.GeometryType())
	faces = make([][]int, re.Size(1))
	for f := range faces {
		for _, v := range re.Vertices(f, 1) {
			faces[f] = append(faces[f], vertices[v])
		}
	}
	return
}

// BuildConnectivity builds element-to-element and face connectivity
func (m *Mesh) BuildConnectivity() {
	m.EToE = make([][]int, m.NumElements)
	m.EToF = make([][]int, m.NumElements)
	m.Faces = m.Faces[:0]
	m.FaceMap = make(map[types.VertexKey]int)

	for elemID := 0; elemID < m.NumElements; elemID++ {
		faceVertices := GetElementFaces(m.ElementTypes[elemID], m.EtoV[elemID])

		m.EToE[elemID] = make([]int, len(faceVertices))
		m.EToF[elemID] = make([]int, len(faceVertices))
		for i := range m.EToE[elemID] {
			m.EToE[elemID][i] = -1
		}

		for localFaceID, faceVerts := range faceVertices {
			key := types.NewVertexKey(faceVerts)
			if faceID, exists := m.FaceMap[key]; exists {
				// interior face
				face := &m.Faces[faceID]
				m.EToE[elemID][localFaceID] = face.Element
				m.EToE[face.Element][face.LocalID] = elemID
				m.EToF[elemID][localFaceID] = faceID
				continue
			}
			faceID := len(m.Faces)
			m.Faces = append(m.Faces, Face{
				Vertices: key.Vertices(),
				Element:  elemID,
				LocalID:  localFaceID,
			})
			m.FaceMap[key] = faceID
			m.EToF[elemID][localFaceID] = faceID
		}
	}
	m.NumFaces = len(m.Faces)
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices)
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements)
	fmt.Fprintf(w, "  Faces: %d\n", m.NumFaces)

	typeCounts := make(map[ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	ets := make([]ElementType, 0, len(typeCounts))
	for t := range typeCounts {
		ets = append(ets, t)
	}
	sort.Slice(ets, func(i, j int) bool { return ets[i] < ets[j] })
	fmt.Fprintf(w, "  Element types:\n")
	for _, t := range ets {
		fmt.Fprintf(w, "    %s: %d\n", t, typeCounts[t])
	}

	boundaryFaces := 0
	for i := 0; i < m.NumElements; i++ {
		for _, neighbor := range m.EToE[i] {
			if neighbor < 0 {
				boundaryFaces++
			}
		}
	}
	fmt.Fprintf(w, "  Boundary faces: %d\n", boundaryFaces)
}
