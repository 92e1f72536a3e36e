package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/meshtopo/tuples"
	"github.com/notargets/meshtopo/utils"
)

// Mesh is an ordered set of cells of one topological dimension sharing a
// node table. The spatial dimension is the arity of Coords.
type Mesh struct {
	Name    string
	MeshDim int
	Coords  *tuples.Table
	Cells   []Cell
}

// NewMesh creates an empty mesh over a copy of coords
func NewMesh(name string, meshDim int, coords *tuples.Table) (m *Mesh, err error) {
	if meshDim < 0 || meshDim > 3 {
		err = fmt.Errorf("%w: mesh dimension %d, must be in [0,3]", utils.ErrInvalidArgument, meshDim)
		return
	}
	if coords == nil {
		err = fmt.Errorf("%w: nil node table", utils.ErrInvalidArgument)
		return
	}
	if coords.Arity() < meshDim {
		err = fmt.Errorf("%w: %dD cells in a %dD space", utils.ErrInvalidArgument, meshDim, coords.Arity())
		return
	}
	m = &Mesh{
		Name:    name,
		MeshDim: meshDim,
		Coords:  coords.Clone(),
		Cells:   make([]Cell, 0),
	}
	return
}

func (m *Mesh) NumCells() int { return len(m.Cells) }
func (m *Mesh) NumNodes() int { return m.Coords.Len() }
func (m *Mesh) SpaceDim() int { return m.Coords.Arity() }

// InsertNextCell validates c against the mesh and appends a copy of it
func (m *Mesh) InsertNextCell(c Cell) (err error) {
	if err = m.checkCell(c); err != nil {
		return
	}
	m.Cells = append(m.Cells, c.Clone())
	return
}

func (m *Mesh) checkCell(c Cell) (err error) {
	if err = c.Validate(m.NumNodes()); err != nil {
		return
	}
	if c.Type.Dimension() != m.MeshDim {
		err = fmt.Errorf("%w: %dD %s cell in a mesh of dimension %d",
			utils.ErrInvalidArgument, c.Type.Dimension(), c.Type, m.MeshDim)
	}
	return
}

// CheckConsistency validates every cell, reporting the first failing one
func (m *Mesh) CheckConsistency() (err error) {
	if m.Coords == nil {
		err = fmt.Errorf("%w: mesh %q has no node table", utils.ErrInvalidArgument, m.Name)
		return
	}
	for k, c := range m.Cells {
		if err = m.checkCell(c); err != nil {
			err = fmt.Errorf("cell %d: %w", k, err)
			return
		}
	}
	return
}

// Clone returns a deep copy of the mesh
func (m *Mesh) Clone() (r *Mesh) {
	r = &Mesh{
		Name:    m.Name,
		MeshDim: m.MeshDim,
		Coords:  m.Coords.Clone(),
		Cells:   make([]Cell, len(m.Cells)),
	}
	for k, c := range m.Cells {
		r.Cells[k] = c.Clone()
	}
	return
}

// CellTypeCounts counts the cells of every type present in the mesh
func (m *Mesh) CellTypeCounts() (counts map[ElementType]int) {
	counts = make(map[ElementType]int)
	for _, c := range m.Cells {
		counts[c.Type]++
	}
	return
}

// ConnectivityLength is the total number of connectivity entries, separators
// included
func (m *Mesh) ConnectivityLength() (n int) {
	for _, c := range m.Cells {
		n += len(c.Conn)
	}
	return
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics: %s\n", m.Name)
	fmt.Printf("  Mesh dimension: %d\n", m.MeshDim)
	fmt.Printf("  Space dimension: %d\n", m.SpaceDim())
	fmt.Printf("  Nodes: %d\n", m.NumNodes())
	fmt.Printf("  Cells: %d\n", m.NumCells())

	counts := m.CellTypeCounts()
	types := make([]ElementType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	fmt.Printf("  Cell types:\n")
	for _, t := range types {
		fmt.Printf("    %s: %d\n", t, counts[t])
	}
	if m.NumNodes() > 0 {
		fmt.Printf("  Bounding box:\n")
		for k, b := range m.Coords.MinMaxPerComponent() {
			fmt.Printf("    [%d]: %g .. %g\n", k, b[0], b[1])
		}
	}
}
