package mesh

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gogrid/genericgeometry"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// rawElementType maps the first order Gmsh element types to ours
var rawElementType = map[int]ElementType{
	1: Line,
	2: Triangle,
	3: Quad,
	4: Tet,
	5: Hex,
	6: Prism,
	7: Pyramid,
}

// addTopDimension adds the elements of the highest dimension present, their
// nodes converted from Gmsh/VTK to generic reference element order
func (m *Mesh) addTopDimension(elements []rawElement) (err error) {
	var dim, dropped int
	for _, el := range elements {
		if d := el.et.Dim(); d > dim {
			dim = d
		}
	}
	for _, el := range elements {
		if el.et.Dim() != dim {
			dropped++
			continue
		}
		en, e := genericgeometry.GmshNumbering(el.et.GeometryType())
		if e != nil {
			return e
		}
		verts := make([]int, len(el.nodes))
		for g := range verts {
			id := el.nodes[en.Generic2Engine(g)]
			v, ok := m.NodeIDMap[id]
			if !ok {
				return errors.Wrapf(ErrMeshFormat, "element references unknown node %d", id)
			}
			verts[g] = v
		}
		if err = m.AddElement(el.et, el.tags, verts); err != nil {
			return
		}
	}
	if dropped > 0 {
		klog.V(2).Infof("dropped %d elements below dimension %d", dropped, dim)
	}
	return
}

// ReadGmsh reads an ASCII Gmsh 2.2 file
func ReadGmsh(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := ReadGmshFrom(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return m, nil
}

// rawElement is an element as read from a file, nodes are file node ids in
// the file's vertex order
type rawElement struct {
	et    ElementType
	tags  []int
	nodes []int
}

/*
ReadGmshFrom reads an ASCII Gmsh 2.2 mesh. Only elements of the highest
dimension present are kept, lower dimensional elements (boundary tags) and
points are dropped. Element vertices are converted from Gmsh to generic
reference element order.
*/
func ReadGmshFrom(r io.Reader) (m *Mesh, err error) {
	var elements []rawElement
	m = NewMesh()
	scanner := bufio.NewScanner(r)
	const maxScanTokenSize = 1024 * 1024 * 10
	scanner.Buffer(make([]byte, 64*1024), maxScanTokenSize)

	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "$MeshFormat":
			err = readMeshFormat(scanner)
		case "$PhysicalNames":
			err = readPhysicalNames(scanner, m)
		case "$Nodes":
			err = readNodes(scanner, m)
		case "$Elements":
			elements, err = readElements(scanner)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrap(ErrMeshFormat, err.Error())
	}

	if err = m.addTopDimension(elements); err != nil {
		return nil, err
	}
	m.BuildConnectivity()
	return
}

func readMeshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return errors.Wrap(ErrMeshFormat, "unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return errors.Wrap(ErrMeshFormat, "invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2") {
		return errors.Wrapf(ErrMeshFormat, "unsupported Gmsh version: %s", parts[0])
	}
	if parts[1] != "0" {
		return errors.Wrap(ErrMeshFormat, "binary Gmsh files are not supported")
	}
	return skipSection(scanner, "$EndMeshFormat")
}

func readPhysicalNames(scanner *bufio.Scanner, m *Mesh) error {
	if !scanner.Scan() {
		return errors.Wrap(ErrMeshFormat, "unexpected EOF in PhysicalNames")
	}
	num, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return errors.Wrapf(ErrMeshFormat, "invalid number of physical names: %v", err)
	}
	for i := 0; i < num; i++ {
		if !scanner.Scan() {
			return errors.Wrapf(ErrMeshFormat, "unexpected EOF in PhysicalNames at %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return errors.Wrapf(ErrMeshFormat, "invalid physical name entry %d", i)
		}
		tag, err := strconv.Atoi(fields[1])
		if err != nil {
			return errors.Wrapf(ErrMeshFormat, "invalid physical tag: %v", err)
		}
		m.PhysicalNames[tag] = strings.Trim(strings.Join(fields[2:], " "), "\"")
	}
	return skipSection(scanner, "$EndPhysicalNames")
}

func readNodes(scanner *bufio.Scanner, m *Mesh) error {
	if !scanner.Scan() {
		return errors.Wrap(ErrMeshFormat, "unexpected EOF in Nodes")
	}
	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return errors.Wrapf(ErrMeshFormat, "invalid number of nodes: %v", err)
	}
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return errors.Wrapf(ErrMeshFormat, "unexpected EOF in Nodes at node %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return errors.Wrapf(ErrMeshFormat, "invalid node entry %d", i)
		}
		nodeID, err := strconv.Atoi(fields[0])
		if err != nil {
			return errors.Wrapf(ErrMeshFormat, "invalid node ID: %v", err)
		}
		coords := make([]float64, 3)
		for j := range coords {
			if coords[j], err = strconv.ParseFloat(fields[j+1], 64); err != nil {
				return errors.Wrapf(ErrMeshFormat, "invalid coordinate: %v", err)
			}
		}
		m.AddNode(nodeID, coords)
	}
	return skipSection(scanner, "$EndNodes")
}

func readElements(scanner *bufio.Scanner) (elements []rawElement, err error) {
	if !scanner.Scan() {
		return nil, errors.Wrap(ErrMeshFormat, "unexpected EOF in Elements")
	}
	numElems, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, errors.Wrapf(ErrMeshFormat, "invalid number of elements: %v", err)
	}
	for i := 0; i < numElems; i++ {
		if !scanner.Scan() {
			return nil, errors.Wrapf(ErrMeshFormat, "unexpected EOF in Elements at element %d", i)
		}
		fields := strings.Fields(scanner.Text())
		ints := make([]int, len(fields))
		for j, f := range fields {
			if ints[j], err = strconv.Atoi(f); err != nil {
				return nil, errors.Wrapf(ErrMeshFormat, "invalid element entry %d: %v", i, err)
			}
		}
		if len(ints) < 3 || len(ints) < 3+ints[2] {
			return nil, errors.Wrapf(ErrMeshFormat, "invalid element entry %d", i)
		}
		et, ok := rawElementType[ints[1]]
		if !ok {
			// points and higher order elements
			klog.V(2).Infof("skipping gmsh element type %d", ints[1])
			continue
		}
		var (
			numTags = ints[2]
			nodes   = ints[3+numTags:]
		)
		if len(nodes) != et.NumVertices() {
			return nil, errors.Wrapf(ErrMeshFormat, "element type %v expects %d nodes, got %d",
				et, et.NumVertices(), len(nodes))
		}
		elements = append(elements, rawElement{et: et, tags: ints[3 : 3+numTags], nodes: nodes})
	}
	return elements, skipSection(scanner, "$EndElements")
}

func skipSection(scanner *bufio.Scanner, endTag string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endTag {
			return nil
		}
	}
	return errors.Wrapf(ErrMeshFormat, "missing %s", endTag)
}
