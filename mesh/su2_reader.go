package mesh

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// su2ElementType maps the SU2 (VTK) element types to ours, from
// https://su2code.github.io/docs_v7/Mesh-File/
var su2ElementType = map[int]ElementType{
	3:  Line,
	5:  Triangle,
	9:  Quad,
	10: Tet,
	12: Hex,
	13: Prism,
	14: Pyramid,
}

// ReadSU2 reads an SU2 native format file
func ReadSU2(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := ReadSU2From(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return m, nil
}

/*
ReadSU2From reads a single zone SU2 mesh. Marker names are kept in
PhysicalNames by marker number, marker elements are dropped. VTK vertex order
of linear elements is the Gmsh order.
*/
func ReadSU2From(r io.Reader) (m *Mesh, err error) {
	var (
		ndime    int
		elements []rawElement
		nmark    int
	)
	m = NewMesh()
	scanner := bufio.NewScanner(r)
	next := func() (fields []string, ok bool) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "%") {
				continue
			}
			return strings.Fields(line), true
		}
		return
	}
	for {
		fields, ok := next()
		if !ok {
			break
		}
		key, value := su2KeyValue(fields)
		switch key {
		case "NDIME":
			if ndime, err = strconv.Atoi(value); err != nil || ndime < 1 || ndime > 3 {
				return nil, errors.Wrapf(ErrMeshFormat, "dimension %q", value)
			}
		case "NELEM":
			var nelem int
			if nelem, err = strconv.Atoi(value); err != nil {
				return nil, errors.Wrap(ErrMeshFormat, err.Error())
			}
			for i := 0; i < nelem; i++ {
				if fields, ok = next(); !ok {
					return nil, errors.Wrapf(ErrMeshFormat, "%d of %d elements", i, nelem)
				}
				var el rawElement
				if el, err = parseSU2Element(fields); err != nil {
					return nil, err
				}
				elements = append(elements, el)
			}
		case "NPOIN":
			if ndime == 0 {
				return nil, errors.Wrap(ErrMeshFormat, "NPOIN before NDIME")
			}
			var npoin int
			if vals := strings.Fields(value); len(vals) == 0 {
				return nil, errors.Wrap(ErrMeshFormat, "NPOIN without a count")
			} else if npoin, err = strconv.Atoi(vals[0]); err != nil {
				return nil, errors.Wrap(ErrMeshFormat, err.Error())
			}
			for i := 0; i < npoin; i++ {
				if fields, ok = next(); !ok || len(fields) < ndime {
					return nil, errors.Wrapf(ErrMeshFormat, "point %d of %d", i, npoin)
				}
				coords := make([]float64, ndime)
				for j := range coords {
					if coords[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, errors.Wrap(ErrMeshFormat, err.Error())
					}
				}
				id := i
				if len(fields) > ndime {
					if id, err = strconv.Atoi(fields[ndime]); err != nil {
						return nil, errors.Wrap(ErrMeshFormat, err.Error())
					}
				}
				m.AddNode(id, coords)
			}
		case "NMARK":
			if nmark, err = strconv.Atoi(value); err != nil {
				return nil, errors.Wrap(ErrMeshFormat, err.Error())
			}
		case "MARKER_TAG":
			m.PhysicalNames[len(m.PhysicalNames)+1] = value
		case "MARKER_ELEMS":
			var n int
			if n, err = strconv.Atoi(value); err != nil {
				return nil, errors.Wrap(ErrMeshFormat, err.Error())
			}
			for i := 0; i < n; i++ {
				if _, ok = next(); !ok {
					return nil, errors.Wrapf(ErrMeshFormat, "marker element %d of %d", i, n)
				}
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrap(ErrMeshFormat, err.Error())
	}
	if len(m.PhysicalNames) != nmark {
		return nil, errors.Wrapf(ErrMeshFormat, "%d of %d markers", len(m.PhysicalNames), nmark)
	}
	if err = m.addTopDimension(elements); err != nil {
		return nil, err
	}
	m.BuildConnectivity()
	return
}

// su2KeyValue splits "KEY= value" lines, the value may be separated from the
// key by blanks
func su2KeyValue(fields []string) (key, value string) {
	line := strings.Join(fields, " ")
	i := strings.Index(line, "=")
	if i < 0 {
		return
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
}

// parseSU2Element reads "type n0 n1 ... [id]"
func parseSU2Element(fields []string) (el rawElement, err error) {
	var (
		code int
		ok   bool
	)
	if code, err = strconv.Atoi(fields[0]); err != nil {
		return el, errors.Wrap(ErrMeshFormat, err.Error())
	}
	if el.et, ok = su2ElementType[code]; !ok {
		return el, errors.Wrapf(ErrMeshFormat, "unsupported SU2 element type %d", code)
	}
	nv := el.et.NumVertices()
	if len(fields) < nv+1 {
		return el, errors.Wrapf(ErrMeshFormat, "%s with %d nodes", el.et, len(fields)-1)
	}
	el.nodes = make([]int, nv)
	for j := range el.nodes {
		if el.nodes[j], err = strconv.Atoi(fields[1+j]); err != nil {
			return el, errors.Wrap(ErrMeshFormat, err.Error())
		}
	}
	return
}
