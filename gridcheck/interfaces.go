package gridcheck

import (
	"github.com/notargets/gogrid/genericgeometry"
)

// Entity is a grid entity of any codimension together with its geometry
type Entity interface {
	Type() genericgeometry.GeometryType
	Level() int
	// Corners is the number of corners of the entity's geometry
	Corners() int
	Corner(i int) []float64
	// Count is the number of sub-entities of the given codimension,
	// counted relative to the grid dimension
	Count(codim int) int
	SubEntity(codim, i int) Entity
}

type IndexSet interface {
	Index(e Entity) int
	SubIndex(e Entity, i, codim int) int
	GeomTypes(codim int) []genericgeometry.GeometryType
	Size(codim int) int
	SizeOfType(gt genericgeometry.GeometryType) int
	Contains(e Entity) bool
}

/*
Iterator walks the entities of one codimension. It starts before the first
entity:

	for it := view.Begin(codim); it.Next(); {
		e := it.Entity()
	}
*/
type Iterator interface {
	Next() bool
	Entity() Entity
}

// RandomAccessIterator can be positioned on any entity, Seek(Len()) is the
// end position
type RandomAccessIterator interface {
	Iterator
	Len() int
	Seek(k int) error
	Position() int
}

type GridView interface {
	Dimension() int
	IndexSet() IndexSet
	Begin(codim int) Iterator
	// Neighbors are the elements sharing a face with e, ErrNotSupported when
	// the view has no intersections
	Neighbors(e Entity) ([]Entity, error)
}

// CodimCapabilities is implemented by views that only provide entities for
// some codimensions
type CodimCapabilities interface {
	HasEntities(codim int) bool
}

type LocalIDSet interface {
	ID(e Entity) uint64
}

// IDProvider is implemented by views with a local id set
type IDProvider interface {
	LocalIDSet() LocalIDSet
}
