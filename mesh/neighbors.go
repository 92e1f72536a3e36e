package mesh

import (
	"sort"

	"github.com/james-bowman/sparse"

	"github.com/notargets/meshtopo/utils"
)

/*
CellNeighbors lists, for every cell, the other cells sharing at least one
sub-entity with it, in increasing order. In a conforming volume mesh these
are the face neighbours.
*/
func (d *Descending) CellNeighbors() utils.IndirectIndex {
	var (
		nc     = d.Desc.GroupCount()
		groups = make([][]int, nc)
		seen   = make([]int, nc)
	)
	for k := range seen {
		seen[k] = -1
	}
	for k := 0; k < nc; k++ {
		subs, _ := d.Desc.Group(k)
		var nbrs []int
		for _, s := range subs {
			parents, _ := d.RevDesc.Group(s)
			for _, p := range parents {
				if p != k && seen[p] != k {
					seen[p] = k
					nbrs = append(nbrs, p)
				}
			}
		}
		sort.Ints(nbrs)
		groups[k] = nbrs
	}
	return utils.FromGroups(groups)
}

/*
CellAdjacency returns the cell to cell matrix D*D^T, where D is the cell to
sub-entity incidence matrix. Entry (i,j) counts the sub-entities cells i and j
share, and the diagonal holds the sub-entity count of each cell.
*/
func (d *Descending) CellAdjacency() (a *sparse.CSR, err error) {
	var inc *sparse.CSR
	if inc, err = d.Desc.ToCSR(d.NumSubEntities()); err != nil {
		return
	}
	nc := d.Desc.GroupCount()
	if nc == 0 {
		a = sparse.NewCSR(0, 0, []int{0}, nil, nil)
		return
	}
	a = sparse.NewCSR(nc, nc, nil, nil, nil)
	a.Mul(inc, inc.T())
	return
}
