package sgrid

import (
	"github.com/notargets/gogrid/gridcheck"
	"github.com/notargets/gogrid/numbering"
	"github.com/pkg/errors"
)

// Iterator walks one codimension in index order, it is random access
type Iterator struct {
	g     *Grid
	codim int
	pos   int
	len   int
}

func (g *Grid) iterator(codim int) *Iterator {
	return &Iterator{g: g, codim: codim, pos: -1, len: g.cm.Elements(codim)}
}

func (it *Iterator) Next() bool {
	if it.pos < it.len {
		it.pos++
	}
	return it.pos < it.len
}

func (it *Iterator) Entity() gridcheck.Entity {
	z, err := it.g.cm.Z(it.pos, it.codim)
	if err != nil {
		panic(err)
	}
	return it.g.entity(z)
}

func (it *Iterator) Len() int      { return it.len }
func (it *Iterator) Position() int { return it.pos }

func (it *Iterator) Seek(k int) error {
	if k < 0 || k > it.len {
		return errors.Wrapf(numbering.ErrIndexOutOfRange, "seek to %d of %d entities", k, it.len)
	}
	it.pos = k
	return nil
}
