package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/meshtopo/tuples"
	"github.com/notargets/meshtopo/utils"
)

// BuildPartOfMySelf extracts the cells ids, in the order given, into a new
// mesh that keeps the full node table
func BuildPartOfMySelf(m *Mesh, ids utils.Index) (part *Mesh, err error) {
	if err = ids.CheckRange(m.NumCells()); err != nil {
		return
	}
	if part, err = NewMesh(m.Name, m.MeshDim, m.Coords); err != nil {
		return
	}
	part.Cells = make([]Cell, len(ids))
	for i, id := range ids {
		part.Cells[i] = m.Cells[id].Clone()
	}
	return
}

/*
ZipCoords drops the nodes no cell references and renumbers the rest in their
original order. o2n maps every original node to its new index, or -1 when it
was dropped.
*/
func ZipCoords(m *Mesh) (zipped *Mesh, o2n utils.Index, err error) {
	if err = m.CheckConsistency(); err != nil {
		return
	}
	used := make([]bool, m.NumNodes())
	for _, c := range m.Cells {
		for _, n := range c.Nodes() {
			used[n] = true
		}
	}
	var (
		kept     = make(utils.Index, 0, m.NumNodes())
		newCount int
	)
	o2n = make(utils.Index, m.NumNodes())
	for i, u := range used {
		if u {
			o2n[i] = newCount
			kept = append(kept, i)
			newCount++
		} else {
			o2n[i] = -1
		}
	}
	var coords *tuples.Table
	if coords, err = selectRows(m.Coords, kept); err != nil {
		return
	}
	if zipped, err = renumberedMesh(m, coords, o2n); err != nil {
		o2n = nil
	}
	return
}

/*
MergeNodes merges the nodes of m lying within eps of each other, component
wise, and rewrites the connectivity onto the merged node table. Each merged
node keeps the coordinates of its lowest original index.
*/
func MergeNodes(m *Mesh, eps float64) (merged *Mesh, ct *tuples.CommonTuples, err error) {
	if err = m.CheckConsistency(); err != nil {
		return
	}
	if ct, err = tuples.FindCommonTuples(m.Coords, eps); err != nil {
		return
	}
	var coords *tuples.Table
	if coords, err = ct.Reduce(m.Coords); err != nil {
		ct = nil
		return
	}
	if merged, err = renumberedMesh(m, coords, ct.Old2New); err != nil {
		ct = nil
	}
	return
}

/*
MergeMeshes concatenates meshes of the same mesh and space dimension. Node
tables are aggregated in order and the connectivity of every mesh after the
first is shifted by the node count before it. Coincident nodes are not merged.
*/
func MergeMeshes(meshes ...*Mesh) (merged *Mesh, err error) {
	if len(meshes) == 0 {
		err = fmt.Errorf("%w: no meshes to merge", utils.ErrInvalidArgument)
		return
	}
	var (
		first  = meshes[0]
		tables = make([]*tuples.Table, len(meshes))
	)
	for i, m := range meshes {
		if m.MeshDim != first.MeshDim || m.SpaceDim() != first.SpaceDim() {
			err = fmt.Errorf("%w: mesh %d is %dD in %dD space, mesh 0 is %dD in %dD space",
				utils.ErrInvalidArgument, i, m.MeshDim, m.SpaceDim(), first.MeshDim, first.SpaceDim())
			return
		}
		tables[i] = m.Coords
	}
	var coords *tuples.Table
	if coords, err = tuples.Aggregate(tables...); err != nil {
		return
	}
	if merged, err = NewMesh(first.Name, first.MeshDim, coords); err != nil {
		return
	}
	var shift int
	for _, m := range meshes {
		o2n := utils.NewRange(0, m.NumNodes()-1).Add(shift)
		for _, c := range m.Cells {
			merged.Cells = append(merged.Cells, c.Renumber(o2n))
		}
		shift += m.NumNodes()
	}
	return
}

// CellCentroids returns the barycenter of the distinct nodes of every cell
func CellCentroids(m *Mesh) (centroids *tuples.Table, err error) {
	if err = m.CheckConsistency(); err != nil {
		return
	}
	var (
		dim  = m.SpaceDim()
		data = make([]float64, dim*m.NumCells())
	)
	for k, c := range m.Cells {
		var (
			nodes = c.UniqueNodes()
			ctr   = data[k*dim : (k+1)*dim]
		)
		for _, n := range nodes {
			floats.Add(ctr, m.Coords.Row(n))
		}
		floats.Scale(1./float64(len(nodes)), ctr)
	}
	return tuples.NewTable(dim, data)
}

// renumberedMesh builds a copy of m over coords with every node n replaced by
// o2n[n]
func renumberedMesh(m *Mesh, coords *tuples.Table, o2n utils.Index) (r *Mesh, err error) {
	if r, err = NewMesh(m.Name, m.MeshDim, coords); err != nil {
		return
	}
	r.Cells = make([]Cell, len(m.Cells))
	for k, c := range m.Cells {
		r.Cells[k] = c.Renumber(o2n)
	}
	return
}

func selectRows(t *tuples.Table, ids utils.Index) (r *tuples.Table, err error) {
	if r, err = tuples.Empty(t.Arity()); err != nil {
		return
	}
	for _, i := range ids {
		if err = r.Append(t.Row(i)...); err != nil {
			return
		}
	}
	return
}
