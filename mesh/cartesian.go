package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/meshtopo/tuples"
	"github.com/notargets/meshtopo/utils"
)

/*
NewCartesianMesh builds the unstructured mesh of a tensor product grid. One
axis gives lines, two give quads and three give hexes. Each axis lists its
node coordinates in strictly increasing order and needs at least two of them.

Nodes are numbered with the first axis fastest. Quads run counter-clockwise
in the (x,y) plane and hexes stack two such quads along z.
*/
func NewCartesianMesh(name string, axes ...[]float64) (m *Mesh, err error) {
	dim := len(axes)
	if dim < 1 || dim > 3 {
		err = fmt.Errorf("%w: %d axes, need 1 to 3", utils.ErrInvalidArgument, dim)
		return
	}
	n := [3]int{1, 1, 1}
	for a, ax := range axes {
		if len(ax) < 2 || !sort.SliceIsSorted(ax, func(i, j int) bool { return ax[i] < ax[j] }) ||
			hasRepeat(ax) {
			err = fmt.Errorf("%w: axis %d must hold at least 2 strictly increasing values",
				utils.ErrInvalidArgument, a)
			return
		}
		n[a] = len(ax)
	}
	var coords *tuples.Table
	if coords, err = tuples.Empty(dim); err != nil {
		return
	}
	row := make([]float64, dim)
	for k := 0; k < n[2]; k++ {
		for j := 0; j < n[1]; j++ {
			for i := 0; i < n[0]; i++ {
				idx := [3]int{i, j, k}
				for a := range row {
					row[a] = axes[a][idx[a]]
				}
				if err = coords.Append(row...); err != nil {
					return
				}
			}
		}
	}
	if m, err = NewMesh(name, dim, coords); err != nil {
		return
	}
	node := func(i, j, k int) int { return i + n[0]*(j+n[1]*k) }
	switch dim {
	case 1:
		for i := 0; i < n[0]-1; i++ {
			m.Cells = append(m.Cells, NewCell(Line, i, i+1))
		}
	case 2:
		for j := 0; j < n[1]-1; j++ {
			for i := 0; i < n[0]-1; i++ {
				m.Cells = append(m.Cells, NewCell(Quad,
					node(i, j, 0), node(i+1, j, 0), node(i+1, j+1, 0), node(i, j+1, 0)))
			}
		}
	case 3:
		for k := 0; k < n[2]-1; k++ {
			for j := 0; j < n[1]-1; j++ {
				for i := 0; i < n[0]-1; i++ {
					m.Cells = append(m.Cells, NewCell(Hex,
						node(i, j, k), node(i+1, j, k), node(i+1, j+1, k), node(i, j+1, k),
						node(i, j, k+1), node(i+1, j, k+1), node(i+1, j+1, k+1), node(i, j+1, k+1)))
				}
			}
		}
	}
	return
}

func hasRepeat(ax []float64) bool {
	for i := 1; i < len(ax); i++ {
		if ax[i] == ax[i-1] {
			return true
		}
	}
	return false
}
