package genericgeometry

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// SubEntityNumbering answers sub-entity queries from the tabulated
// reference element of a topology
type SubEntityNumbering struct {
	re *ReferenceElement
}

func NewSubEntityNumbering(t Topology) SubEntityNumbering {
	return SubEntityNumbering{re: ReferenceElementFor(t)}
}

func (sn SubEntityNumbering) Size(codim int) int { return sn.re.Size(codim) }

// SubEntity is the number of the j-th codimension subcodim sub-entity of
// sub-entity (codim, i), counted in codimension codim+subcodim
func (sn SubEntityNumbering) SubEntity(codim, subcodim, i, j int) int {
	return sn.re.SubEntity(i, codim, j, codim+subcodim)
}

func (sn SubEntityNumbering) NumSubSubEntities(codim, i, subcodim int) int {
	return sn.re.SizeOf(i, codim, codim+subcodim)
}

// NumSubEntities is the number of codimension codim sub-entities of t
func NumSubEntities(t Topology, codim int) int {
	return t.size(codim)
}

// SubEntityNumber computes the sub-entity number directly from the
// construction of t, without building a reference element table
func SubEntityNumber(t Topology, codim, i, subcodim, j int) (n int, err error) {
	var (
		dim = t.Dim()
	)
	if codim < 0 || subcodim < 0 || codim+subcodim > dim {
		err = errors.Errorf("codim %d + subcodim %d out of range for dimension %d", codim, subcodim, dim)
		return
	}
	if i < 0 || i >= t.size(codim) {
		err = errors.Errorf("sub-entity %d of codim %d out of range [0,%d)", i, codim, t.size(codim))
		return
	}
	sub := t.subTopology(codim, i)
	if j < 0 || j >= sub.size(subcodim) {
		err = errors.Errorf("sub-sub-entity %d of codim %d out of range [0,%d)", j, subcodim, sub.size(subcodim))
		return
	}
	return t.subEntityNumber(codim, i, subcodim, j), nil
}

// SubGeometry is the topology of sub-entity (codim, i) of t
func SubGeometry(t Topology, codim, i int) Topology {
	return t.subTopology(codim, i)
}

/*
CheckSubEntities walks every (codim, i, subcodim, j) of t and compares the
recursive SubEntityNumber with the tabulated SubEntityNumbering. It also
checks that codim 0 maps j to itself, subcodim 0 maps i to itself and that
every number is in range. The number of violations is returned, each one is
reported on w, verbose reports every visited sub-entity.
*/
func CheckSubEntities(t Topology, w io.Writer, verbose bool) (nerr int) {
	var (
		dim   = t.Dim()
		table = NewSubEntityNumbering(t)
	)
	fmt.Fprintf(w, "Generic geometry type: %s\n", t.Name())
	for codim := 0; codim <= dim; codim++ {
		for i := 0; i < NumSubEntities(t, codim); i++ {
			sub := SubGeometry(t, codim, i)
			if verbose {
				fmt.Fprintf(w, "SubEntity< %d > %d: type = %s\n", codim, i, sub.Name())
			}
			for subcodim := 0; subcodim <= sub.Dim(); subcodim++ {
				nsub := NumSubEntities(sub, subcodim)
				if verbose {
					fmt.Fprintf(w, "SubEntity< %d > %d: size< %d > = %d\n", codim, i, subcodim, nsub)
				}
				if nsub != table.NumSubSubEntities(codim, i, subcodim) {
					fmt.Fprintf(w, "SubEntity< %d > %d: size< %d > = %d, reference element has %d\n",
						codim, i, subcodim, nsub, table.NumSubSubEntities(codim, i, subcodim))
					nerr++
					continue
				}
				for j := 0; j < nsub; j++ {
					n, err := SubEntityNumber(t, codim, i, subcodim, j)
					bad := err != nil
					bad = bad || (codim == 0 && n != j)
					bad = bad || (subcodim == 0 && n != i)
					bad = bad || n >= NumSubEntities(t, codim+subcodim)
					bad = bad || n != table.SubEntity(codim, subcodim, i, j)
					if verbose || bad {
						fmt.Fprintf(w, "SubEntityNumber< %d, %d, %d, %d > = %d\n", codim, i, subcodim, j, n)
					}
					if bad {
						nerr++
					}
				}
			}
		}
	}
	fmt.Fprintf(w, "Number of errors: %d\n", nerr)
	return
}
