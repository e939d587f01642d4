package gridcheck

import (
	"fmt"

	"github.com/pkg/errors"
)

/*
CheckRandomAccessIterators checks every codimension whose iterators are
random access: the iterator length equals the index set size, seeking to k
yields the k-th entity of a sequential walk, seeking to Len() is the end and
positions outside [0, Len()] are rejected. It fails with ErrNotSupported when
no codimension has random access iterators.
*/
func (c *Checker) CheckRandomAccessIterators(view GridView) (err error) {
	var (
		w              = c.out()
		lset           = view.IndexSet()
		haveRandAccess bool
	)
	caps, hasCaps := view.(CodimCapabilities)
	fmt.Fprintf(w, "Checking iterators for higher codimension...\n")
	for codim := 0; codim <= view.Dimension(); codim++ {
		if hasCaps && !caps.HasEntities(codim) {
			continue
		}
		it, ok := view.Begin(codim).(RandomAccessIterator)
		if !ok {
			continue
		}
		haveRandAccess = true
		fmt.Fprintf(w, "Checking random-access iterators for codim %d\n", codim)
		size := lset.Size(codim)
		if it.Len() != size {
			return gridError("codim %d: iterator length %d != size %d", codim, it.Len(), size)
		}
		if it.Position() != -1 {
			return gridError("codim %d: begin is at position %d", codim, it.Position())
		}
		var sequential []int
		for seq := view.Begin(codim); seq.Next(); {
			sequential = append(sequential, lset.Index(seq.Entity()))
		}
		for k := len(sequential) - 1; k >= 0; k-- {
			if err = it.Seek(k); err != nil {
				return gridError("codim %d: seek to %d: %v", codim, k, err)
			}
			if it.Position() != k {
				return gridError("codim %d: seek to %d is at position %d", codim, k, it.Position())
			}
			if idx := lset.Index(it.Entity()); idx != sequential[k] {
				return gridError("codim %d: entity %d has index %d, sequential walk has %d",
					codim, k, idx, sequential[k])
			}
		}
		if err = it.Seek(size); err != nil {
			return gridError("codim %d: seek to end: %v", codim, err)
		}
		if it.Next() {
			return gridError("codim %d: begin + size != end", codim)
		}
		if it.Seek(size+1) == nil || it.Seek(-1) == nil {
			return gridError("codim %d: seek outside [0,%d] accepted", codim, size)
		}
	}
	if !haveRandAccess {
		return errors.Wrap(ErrNotSupported, "none of the iterators for any codim are random access")
	}
	return
}
