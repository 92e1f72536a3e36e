package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notargets/meshtopo/mesh"
	"github.com/notargets/meshtopo/tuples"
)

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*mesh.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".neu":
		return ReadGambitNeutral(filename)
	case ".su2":
		return ReadSU2(filename)
	case ".yaml", ".yml":
		return ReadYAMLMesh(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// rawCell is a cell as read from a file, before the mesh dimension is known
type rawCell struct {
	etype mesh.ElementType
	nodes []int
}

// assemble keeps the cells of the highest dimension found and drops the
// lower dimensional ones, which mesh generators write for boundary markers
func assemble(name string, coords [][]float64, spaceDim int, cells []rawCell) (msh *mesh.Mesh, err error) {
	var table *tuples.Table
	if len(coords) == 0 {
		table, err = tuples.Empty(spaceDim)
	} else {
		table, err = tuples.FromRows(coords)
	}
	if err != nil {
		return
	}
	meshDim := 0
	for _, c := range cells {
		if d := c.etype.Dimension(); d > meshDim {
			meshDim = d
		}
	}
	if msh, err = mesh.NewMesh(name, meshDim, table); err != nil {
		return
	}
	for i, c := range cells {
		if c.etype.Dimension() != meshDim {
			continue
		}
		if err = msh.InsertNextCell(mesh.NewCell(c.etype, c.nodes...)); err != nil {
			err = fmt.Errorf("element %d: %w", i+1, err)
			msh = nil
			return
		}
	}
	return
}
