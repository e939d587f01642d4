package types

import (
	"fmt"
	"math"
)

/*
EdgeKey packs the two vertices of an edge in ascending order into one
uint64, an edge between [4] and [0] is stored as [0,4]
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) EdgeKey {
	lo, hi := verts[0], verts[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 || hi > math.MaxUint32 {
		panic(fmt.Errorf("unable to pack %d and %d into an edge key", verts[0], verts[1]))
	}
	return EdgeKey(uint64(lo) | uint64(hi)<<32)
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	verts[0] = int(ek & math.MaxUint32)
	verts[1] = int(ek >> 32)
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

/*
OrientedEdge keeps the direction of an edge in its sign, negative when the
first vertex is the larger one. Vertices are limited to 31 bits.
*/
type OrientedEdge int64

func NewOrientedEdge(verts [2]int) (oe OrientedEdge) {
	var (
		limit = math.MaxUint32 >> 1
	)
	for _, v := range verts {
		if v < 0 || v > limit {
			panic(fmt.Errorf("unable to pack %d and %d into an oriented edge", verts[0], verts[1]))
		}
	}
	oe = OrientedEdge(NewEdgeKey(verts))
	if verts[0] > verts[1] {
		oe = -oe
	}
	return
}

// Reversed reports whether the edge runs from the larger vertex to the smaller
func (oe OrientedEdge) Reversed() bool { return oe < 0 }

func (oe OrientedEdge) GetVertices() (verts [2]int) {
	if oe < 0 {
		return EdgeKey(-oe).GetVertices(true)
	}
	return EdgeKey(oe).GetVertices(false)
}

func (oe OrientedEdge) GetKey() EdgeKey {
	if oe < 0 {
		return EdgeKey(-oe)
	}
	return EdgeKey(oe)
}
