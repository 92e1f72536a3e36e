package mesh

import (
	"fmt"

	"github.com/notargets/meshtopo/types"
	"github.com/notargets/meshtopo/utils"
)

// Below this many cells per partition the decomposition stays on one goroutine
const minCellsPerPartition = 2048

/*
Descending is the descending connectivity of a mesh of dimension n:
  - SubMesh holds every distinct (n-1)-dimensional boundary entity once, over
    a copy of the parent node table. Each entity keeps the node order of the
    first cell that introduced it.
  - Desc maps each cell to its sub-entities, in the template order of the
    cell type.
  - RevDesc maps each sub-entity to its parent cells in increasing order.
*/
type Descending struct {
	SubMesh *Mesh
	Desc    utils.IndirectIndex
	RevDesc utils.IndirectIndex
}

/*
BuildDescendingConnectivity decomposes every cell of m into its boundary
entities and merges the entities shared between cells.

Two entities are the same when they hold the same node indices in any order;
no coordinate comparison is made, so coincident nodes must be merged first
(see MergeNodes). Cells are decomposed in parallel and numbered sequentially
in cell order, so the result depends only on the input.
*/
func BuildDescendingConnectivity(m *Mesh) (d *Descending, err error) {
	if m.MeshDim < 1 || m.MeshDim > 3 {
		err = fmt.Errorf("%w: cannot descend from a mesh of dimension %d",
			utils.ErrInvalidArgument, m.MeshDim)
		return
	}
	var subs [][]SubEntity
	if subs, err = m.decompose(); err != nil {
		return
	}
	var (
		desc   [][]int
		unique []SubEntity
	)
	if m.MeshDim == 2 {
		desc, unique = numberSubEntities(subs, types.EdgeKeyOf)
	} else {
		desc, unique = numberSubEntities(subs, types.NewEntityKey)
	}
	d = &Descending{}
	if d.SubMesh, err = NewMesh(m.Name, m.MeshDim-1, m.Coords); err != nil {
		d = nil
		return
	}
	d.SubMesh.Cells = make([]Cell, len(unique))
	for i, s := range unique {
		d.SubMesh.Cells[i] = NewCell(s.Type, s.Nodes...)
	}
	d.Desc = utils.FromGroups(desc)
	if d.RevDesc, err = d.Desc.Invert(len(unique)); err != nil {
		d = nil
	}
	return
}

// decompose builds the sub-entities of every cell. When several cells fail the
// error of the lowest cell index is returned.
func (m *Mesh) decompose() (subs [][]SubEntity, err error) {
	var (
		nc   = m.NumCells()
		errs = make([]error, nc)
		pm   = utils.NewPartitionMap(utils.ParallelDegreeFor(nc, minCellsPerPartition), nc)
	)
	subs = make([][]SubEntity, nc)
	pm.Run(func(np, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			c := m.Cells[k]
			if errs[k] = m.checkCell(c); errs[k] != nil {
				return
			}
			if subs[k], errs[k] = c.SubEntities(); errs[k] != nil {
				return
			}
		}
	})
	for k, e := range errs {
		if e != nil {
			err = fmt.Errorf("cell %d: %w", k, e)
			subs = nil
			return
		}
	}
	return
}

// numberSubEntities assigns ids to distinct sub-entities in order of first
// appearance, walking cells in order
func numberSubEntities[K comparable](subs [][]SubEntity, key func([]int) K) (desc [][]int, unique []SubEntity) {
	var (
		ids   = make(map[K]int)
		total int
	)
	for _, s := range subs {
		total += len(s)
	}
	desc = make([][]int, len(subs))
	unique = make([]SubEntity, 0, total/2+1)
	for k, cellSubs := range subs {
		desc[k] = make([]int, len(cellSubs))
		for i, s := range cellSubs {
			kk := key(s.Nodes)
			id, exists := ids[kk]
			if !exists {
				id = len(unique)
				ids[kk] = id
				unique = append(unique, s)
			}
			desc[k][i] = id
		}
	}
	return
}

// NumSubEntities is the number of distinct sub-entities
func (d *Descending) NumSubEntities() int { return d.SubMesh.NumCells() }

// PrintStatistics prints descending connectivity statistics
func (d *Descending) PrintStatistics() {
	var (
		skin     = d.SkinIds()
		interior = d.InteriorIds()
		maxPar   int
	)
	for _, n := range d.RevDesc.GroupSizes() {
		if n > maxPar {
			maxPar = n
		}
	}
	fmt.Printf("Descending Connectivity:\n")
	fmt.Printf("  Cells: %d\n", d.Desc.GroupCount())
	fmt.Printf("  Sub-entities (dim %d): %d\n", d.SubMesh.MeshDim, d.NumSubEntities())
	fmt.Printf("  Incidences: %d\n", d.Desc.PayloadLen())
	fmt.Printf("  Skin: %d\n", len(skin))
	fmt.Printf("  Interior: %d\n", len(interior))
	fmt.Printf("  Max parents per sub-entity: %d\n", maxPar)
}
