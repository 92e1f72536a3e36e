package mesh

import (
	"fmt"
	"sort"
	"strings"

	"github.com/notargets/meshtopo/utils"
)

/*
ConnEntry is one entry of a cell connectivity: either a node index or the
separator between two faces of a polyhedron.
*/
type ConnEntry struct {
	node      int
	separator bool
}

// FaceSeparator ends one polyhedron face and starts the next
var FaceSeparator = ConnEntry{separator: true}

func Node(index int) ConnEntry { return ConnEntry{node: index} }

func (ce ConnEntry) IsSeparator() bool { return ce.separator }

// Index returns the node index, or -1 for a separator
func (ce ConnEntry) Index() int {
	if ce.separator {
		return -1
	}
	return ce.node
}

func (ce ConnEntry) String() string {
	if ce.separator {
		return "|"
	}
	return fmt.Sprintf("%d", ce.node)
}

// Cell is a typed connectivity into the node table of its mesh
type Cell struct {
	Type ElementType
	Conn []ConnEntry
}

// SubEntity is one boundary entity of a cell, in the node order of the cell
type SubEntity struct {
	Type  ElementType
	Nodes []int
}

func NewCell(et ElementType, nodes ...int) (c Cell) {
	c.Type = et
	c.Conn = make([]ConnEntry, len(nodes))
	for i, n := range nodes {
		c.Conn[i] = Node(n)
	}
	return
}

// NewPolyhedron builds a polyhedron from its face node lists
func NewPolyhedron(faces ...[]int) (c Cell) {
	c.Type = Polyhedron
	for i, f := range faces {
		if i > 0 {
			c.Conn = append(c.Conn, FaceSeparator)
		}
		for _, n := range f {
			c.Conn = append(c.Conn, Node(n))
		}
	}
	return
}

// Nodes returns the node entries of the connectivity in order, separators
// dropped. Polyhedron nodes shared by several faces are repeated.
func (c Cell) Nodes() (nodes []int) {
	nodes = make([]int, 0, len(c.Conn))
	for _, ce := range c.Conn {
		if !ce.separator {
			nodes = append(nodes, ce.node)
		}
	}
	return
}

// UniqueNodes returns the distinct nodes of the cell in ascending order
func (c Cell) UniqueNodes() (nodes []int) {
	nodes = c.Nodes()
	sort.Ints(nodes)
	var n int
	for i, v := range nodes {
		if i == 0 || v != nodes[n-1] {
			nodes[n] = v
			n++
		}
	}
	nodes = nodes[:n]
	return
}

/*
Faces splits a polyhedron connectivity at its separators. An empty
connectivity, a face with fewer than three nodes, and a leading, trailing or
doubled separator are all malformed.
*/
func (c Cell) Faces() (faces [][]int, err error) {
	if c.Type != Polyhedron {
		err = fmt.Errorf("%w: %s cell has no explicit face list", utils.ErrInvalidArgument, c.Type)
		return
	}
	if len(c.Conn) == 0 {
		err = fmt.Errorf("%w: polyhedron with an empty face list", utils.ErrMalformedConnectivity)
		return
	}
	var face []int
	closeFace := func(pos int) error {
		switch {
		case len(face) == 0:
			return fmt.Errorf("%w: dangling face separator at position %d",
				utils.ErrMalformedConnectivity, pos)
		case len(face) < 3:
			return fmt.Errorf("%w: polyhedron face %d has %d nodes, need at least 3",
				utils.ErrMalformedConnectivity, len(faces), len(face))
		}
		faces = append(faces, face)
		face = nil
		return nil
	}
	for pos, ce := range c.Conn {
		if ce.separator {
			if err = closeFace(pos); err != nil {
				faces = nil
				return
			}
			continue
		}
		face = append(face, ce.node)
	}
	if err = closeFace(len(c.Conn)); err != nil {
		faces = nil
	}
	return
}

/*
SubEntities decomposes the cell into its boundary entities, one dimension
down, using the template of its type. Polygons yield one edge per pair of
consecutive nodes, polyhedra one face per declared face.
*/
func (c Cell) SubEntities() (subs []SubEntity, err error) {
	if err = c.checkArity(); err != nil {
		return
	}
	switch c.Type {
	case Polyhedron:
		var faces [][]int
		if faces, err = c.Faces(); err != nil {
			return
		}
		subs = make([]SubEntity, len(faces))
		for i, f := range faces {
			subs[i] = SubEntity{Type: faceType(len(f)), Nodes: f}
		}
	case Polygon:
		nodes := c.Nodes()
		subs = make([]SubEntity, len(nodes))
		for i := range nodes {
			subs[i] = SubEntity{Type: Line, Nodes: []int{nodes[i], nodes[(i+1)%len(nodes)]}}
		}
	default:
		var (
			tmpl  = subEntityTemplate(c.Type)
			nodes = c.Nodes()
		)
		if tmpl == nil {
			err = fmt.Errorf("%w: no decomposition for %s", utils.ErrUnsupportedCellType, c.Type)
			return
		}
		subs = make([]SubEntity, len(tmpl))
		for i, local := range tmpl {
			sub := SubEntity{Nodes: make([]int, len(local))}
			for j, l := range local {
				sub.Nodes[j] = nodes[l]
			}
			sub.Type = subEntityType(c.Type, len(local))
			subs[i] = sub
		}
	}
	return
}

// checkArity verifies the node count against the type and the placement of
// separators, without looking at node ranges
func (c Cell) checkArity() (err error) {
	if !c.Type.IsValid() {
		err = fmt.Errorf("%w: element type %d", utils.ErrUnsupportedCellType, int(c.Type))
		return
	}
	if c.Type == Polyhedron {
		_, err = c.Faces()
		return
	}
	for pos, ce := range c.Conn {
		if ce.separator {
			err = fmt.Errorf("%w: face separator at position %d in a %s cell",
				utils.ErrMalformedConnectivity, pos, c.Type)
			return
		}
	}
	switch {
	case c.Type == Polygon && len(c.Conn) < 3:
		err = fmt.Errorf("%w: polygon with %d nodes, need at least 3",
			utils.ErrMalformedConnectivity, len(c.Conn))
	case !c.Type.IsDynamic() && len(c.Conn) != c.Type.NumNodes():
		err = fmt.Errorf("%w: %s cell has %d nodes, expected %d",
			utils.ErrMalformedConnectivity, c.Type, len(c.Conn), c.Type.NumNodes())
	}
	return
}

// Validate checks the cell shape and that every node lies in [0, nNodes)
func (c Cell) Validate(nNodes int) (err error) {
	if err = c.checkArity(); err != nil {
		return
	}
	for _, n := range c.Nodes() {
		if n < 0 || n >= nNodes {
			err = fmt.Errorf("%w: node %d outside the node table of %d nodes",
				utils.ErrInvalidArgument, n, nNodes)
			return
		}
	}
	return
}

// Renumber returns a copy of the cell with every node n replaced by o2n[n]
func (c Cell) Renumber(o2n utils.Index) (r Cell) {
	r.Type = c.Type
	r.Conn = make([]ConnEntry, len(c.Conn))
	for i, ce := range c.Conn {
		if ce.separator {
			r.Conn[i] = ce
			continue
		}
		r.Conn[i] = Node(o2n[ce.node])
	}
	return
}

func (c Cell) Clone() (r Cell) {
	r.Type = c.Type
	r.Conn = make([]ConnEntry, len(c.Conn))
	copy(r.Conn, c.Conn)
	return
}

func (c Cell) String() string {
	parts := make([]string, len(c.Conn))
	for i, ce := range c.Conn {
		parts[i] = ce.String()
	}
	return fmt.Sprintf("%s(%s)", c.Type, strings.Join(parts, " "))
}
