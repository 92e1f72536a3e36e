package mesh

import (
	"fmt"
	"strings"

	"github.com/notargets/meshtopo/utils"
)

// ElementType is the geometric shape of a cell
type ElementType int

const (
	// 0D elements
	Point ElementType = iota
	// 1D elements
	Line
	// 2D elements
	Triangle
	Quad
	Polygon
	// 3D elements
	Tet
	Hex
	Prism
	Pyramid
	Polyhedron
)

var elementTypeNames = [...]string{
	"Point",
	"Line",
	"Triangle", "Quad", "Polygon",
	"Tet", "Hex", "Prism", "Pyramid", "Polyhedron",
}

func (e ElementType) String() string {
	if e.IsValid() {
		return elementTypeNames[e]
	}
	return fmt.Sprintf("Invalid(%d)", int(e))
}

func (e ElementType) IsValid() bool {
	return e >= Point && e <= Polyhedron
}

// ParseElementType is the inverse of String, ignoring case
func ParseElementType(name string) (e ElementType, err error) {
	for i, n := range elementTypeNames {
		if strings.EqualFold(n, name) {
			e = ElementType(i)
			return
		}
	}
	err = fmt.Errorf("%w: unknown element type %q", utils.ErrUnsupportedCellType, name)
	return
}

func (e ElementType) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("%w: element type %d", utils.ErrUnsupportedCellType, int(e))
	}
	return []byte(e.String()), nil
}

func (e *ElementType) UnmarshalText(text []byte) (err error) {
	*e, err = ParseElementType(string(text))
	return
}

// Dimension returns the topological dimension of the element, -1 if invalid
func (e ElementType) Dimension() int {
	switch e {
	case Point:
		return 0
	case Line:
		return 1
	case Triangle, Quad, Polygon:
		return 2
	case Tet, Hex, Prism, Pyramid, Polyhedron:
		return 3
	default:
		return -1
	}
}

// NumNodes returns the number of nodes of fixed size elements, 0 for
// polygons, polyhedra and invalid types
func (e ElementType) NumNodes() int {
	switch e {
	case Point:
		return 1
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// IsDynamic reports types whose node count is carried by the cell
func (e ElementType) IsDynamic() bool {
	return e == Polygon || e == Polyhedron
}

// NumSubEntities returns how many sub-entities a fixed size element has
func (e ElementType) NumSubEntities() int {
	return len(subEntityTemplate(e))
}

// subEntityTemplate lists the local node indices of every sub-entity of a
// fixed size element. 3D faces are ordered with outward normals for a
// positively oriented element.
func subEntityTemplate(e ElementType) [][]int {
	switch e {
	case Line:
		return [][]int{{0}, {1}}
	case Triangle:
		return [][]int{{0, 1}, {1, 2}, {2, 0}}
	case Quad:
		return [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	case Tet:
		return [][]int{
			{0, 2, 1}, // Face 0
			{0, 1, 3}, // Face 1
			{1, 2, 3}, // Face 2
			{0, 3, 2}, // Face 3
		}
	case Hex:
		return [][]int{
			{0, 3, 2, 1}, // Face 0 (bottom)
			{4, 5, 6, 7}, // Face 1 (top)
			{0, 1, 5, 4}, // Face 2
			{1, 2, 6, 5}, // Face 3
			{2, 3, 7, 6}, // Face 4
			{3, 0, 4, 7}, // Face 5
		}
	case Prism:
		return [][]int{
			{0, 2, 1},    // Face 0 (bottom tri)
			{3, 4, 5},    // Face 1 (top tri)
			{0, 1, 4, 3}, // Face 2 (quad)
			{1, 2, 5, 4}, // Face 3 (quad)
			{2, 0, 3, 5}, // Face 4 (quad)
		}
	case Pyramid:
		return [][]int{
			{0, 3, 2, 1}, // Face 0 (base quad)
			{0, 1, 4},    // Face 1 (tri)
			{1, 2, 4},    // Face 2 (tri)
			{2, 3, 4},    // Face 3 (tri)
			{3, 0, 4},    // Face 4 (tri)
		}
	default:
		return nil
	}
}

// faceType names a polygonal face by its node count
func faceType(nNodes int) ElementType {
	switch nNodes {
	case 3:
		return Triangle
	case 4:
		return Quad
	default:
		return Polygon
	}
}

// subEntityType is the type of the sub-entities of e holding nNodes nodes
func subEntityType(e ElementType, nNodes int) ElementType {
	switch e.Dimension() {
	case 1:
		return Point
	case 2:
		return Line
	default:
		return faceType(nNodes)
	}
}
