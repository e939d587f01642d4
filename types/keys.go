package types

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

/*
VertexKey identifies a sub-entity by its vertex set regardless of the order
the vertices are given in. The sorted vertex indices are packed as big endian
uint32 values, so the byte order of two keys of equal length is the order of
their sorted vertex lists.
*/
type VertexKey string

func NewVertexKey(verts []int) VertexKey {
	sorted := make([]int, len(verts))
	copy(sorted, verts)
	sort.Ints(sorted)
	buf := make([]byte, 4*len(sorted))
	for i, v := range sorted {
		if v < 0 || v > math.MaxUint32 {
			panic(fmt.Errorf("unable to pack vertex %d into a vertex key", v))
		}
		binary.BigEndian.PutUint32(buf[4*i:], uint32(v))
	}
	return VertexKey(buf)
}

// Vertices are the sorted vertex indices of the key
func (vk VertexKey) Vertices() (verts []int) {
	verts = make([]int, len(vk)/4)
	for i := range verts {
		verts[i] = int(binary.BigEndian.Uint32([]byte(vk[4*i : 4*i+4])))
	}
	return
}

func (vk VertexKey) Len() int { return len(vk) / 4 }

func (vk VertexKey) String() string { return fmt.Sprint(vk.Vertices()) }

// CompareVertexKeys orders keys by vertex count, then by sorted vertex list
func CompareVertexKeys(a, b interface{}) int {
	ka, kb := a.(VertexKey), b.(VertexKey)
	switch {
	case len(ka) != len(kb):
		return len(ka) - len(kb)
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	}
	return 0
}

// SubEntityKey is a vertex key qualified by the codimension of the entity
type SubEntityKey struct {
	Codim int
	Key   VertexKey
}

func NewSubEntityKey(codim int, verts []int) SubEntityKey {
	return SubEntityKey{Codim: codim, Key: NewVertexKey(verts)}
}

func (sk SubEntityKey) String() string {
	return fmt.Sprintf("codim %d %s", sk.Codim, sk.Key)
}

func CompareSubEntityKeys(a, b interface{}) int {
	ka, kb := a.(SubEntityKey), b.(SubEntityKey)
	if ka.Codim != kb.Codim {
		return ka.Codim - kb.Codim
	}
	return CompareVertexKeys(ka.Key, kb.Key)
}
