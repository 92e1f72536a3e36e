package types

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// EdgeKeyOf is the slice form of NewEdgeKey, for two-node sub-entities
func EdgeKeyOf(verts []int) EdgeKey {
	if len(verts) != 2 {
		panic(fmt.Errorf("edge key needs exactly two vertices, have %d", len(verts)))
	}
	return NewEdgeKey([2]int{verts[0], verts[1]})
}

/*
EntityKey identifies a sub-entity (face, edge, point) independently of the
order its vertices were listed in. It holds the vertex indices sorted
ascending, each packed as a fixed width unsigned integer, so two keys are
equal exactly when the sorted vertex tuples are equal. Usable as a map key.
*/
type EntityKey string

func NewEntityKey(verts []int) EntityKey {
	sorted := make([]int, len(verts))
	copy(sorted, verts)
	sort.Ints(sorted)
	buf := make([]byte, 8*len(sorted))
	for i, v := range sorted {
		if v < 0 {
			panic(fmt.Errorf("negative vertex index %d in entity key", v))
		}
		binary.BigEndian.PutUint64(buf[8*i:], uint64(v))
	}
	return EntityKey(buf)
}

func (k EntityKey) GetVertices() (verts []int) {
	n := len(k) / 8
	verts = make([]int, n)
	for i := 0; i < n; i++ {
		verts[i] = int(binary.BigEndian.Uint64([]byte(k[8*i : 8*i+8])))
	}
	return
}

func (k EntityKey) Len() int { return len(k) / 8 }
