package readers

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/notargets/meshtopo/mesh"
	"github.com/notargets/meshtopo/tuples"
	"github.com/notargets/meshtopo/utils"
)

// YAMLCell is the file form of a cell. Polyhedra list their faces, every
// other type its nodes.
type YAMLCell struct {
	Type  mesh.ElementType `json:"type"`
	Nodes []int            `json:"nodes,omitempty"`
	Faces [][]int          `json:"faces,omitempty"`
}

type YAMLMesh struct {
	Name     string      `json:"name"`
	MeshDim  int         `json:"meshDim"`
	SpaceDim int         `json:"spaceDim"`
	Coords   [][]float64 `json:"coords"`
	Cells    []YAMLCell  `json:"cells"`
}

type YAMLIndirectIndex struct {
	Payload []int `json:"payload"`
	Offsets []int `json:"offsets"`
}

// YAMLDescending is the file form of a descending connectivity
type YAMLDescending struct {
	SubMesh  YAMLMesh          `json:"subMesh"`
	Desc     YAMLIndirectIndex `json:"desc"`
	RevDesc  YAMLIndirectIndex `json:"revDesc"`
	Skin     []int             `json:"skin"`
	Interior []int             `json:"interior"`
}

func NewYAMLMesh(m *mesh.Mesh) (ym YAMLMesh, err error) {
	ym = YAMLMesh{
		Name:     m.Name,
		MeshDim:  m.MeshDim,
		SpaceDim: m.SpaceDim(),
		Coords:   m.Coords.Rows(),
		Cells:    make([]YAMLCell, len(m.Cells)),
	}
	for k, c := range m.Cells {
		yc := YAMLCell{Type: c.Type}
		if c.Type == mesh.Polyhedron {
			if yc.Faces, err = c.Faces(); err != nil {
				err = fmt.Errorf("cell %d: %w", k, err)
				return
			}
		} else {
			yc.Nodes = c.Nodes()
		}
		ym.Cells[k] = yc
	}
	return
}

// ToMesh rebuilds and validates the mesh
func (ym YAMLMesh) ToMesh() (m *mesh.Mesh, err error) {
	var coords *tuples.Table
	if len(ym.Coords) == 0 {
		coords, err = tuples.Empty(ym.SpaceDim)
	} else {
		coords, err = tuples.FromRows(ym.Coords)
	}
	if err != nil {
		return
	}
	if coords.Arity() != ym.SpaceDim {
		err = fmt.Errorf("%w: coordinates have %d components, spaceDim is %d",
			utils.ErrInvalidArgument, coords.Arity(), ym.SpaceDim)
		return
	}
	if m, err = mesh.NewMesh(ym.Name, ym.MeshDim, coords); err != nil {
		return
	}
	for k, yc := range ym.Cells {
		var c mesh.Cell
		if yc.Type == mesh.Polyhedron {
			c = mesh.NewPolyhedron(yc.Faces...)
		} else {
			c = mesh.NewCell(yc.Type, yc.Nodes...)
		}
		if err = m.InsertNextCell(c); err != nil {
			err = fmt.Errorf("cell %d: %w", k, err)
			m = nil
			return
		}
	}
	return
}

func NewYAMLIndirectIndex(ii utils.IndirectIndex) YAMLIndirectIndex {
	return YAMLIndirectIndex{Payload: ii.Payload(), Offsets: ii.Offsets()}
}

func (yi YAMLIndirectIndex) ToIndirectIndex() (utils.IndirectIndex, error) {
	return utils.NewIndirectIndex(yi.Payload, yi.Offsets)
}

func NewYAMLDescending(d *mesh.Descending) (yd YAMLDescending, err error) {
	if yd.SubMesh, err = NewYAMLMesh(d.SubMesh); err != nil {
		return
	}
	yd.Desc = NewYAMLIndirectIndex(d.Desc)
	yd.RevDesc = NewYAMLIndirectIndex(d.RevDesc)
	yd.Skin = d.SkinIds()
	yd.Interior = d.InteriorIds()
	return
}

// ToDescending rebuilds the sub-mesh and both incidence maps. The reverse map
// must have one group per sub-entity and be the inverse of desc.
func (yd YAMLDescending) ToDescending() (d *mesh.Descending, err error) {
	d = &mesh.Descending{}
	if d.SubMesh, err = yd.SubMesh.ToMesh(); err == nil {
		if d.Desc, err = yd.Desc.ToIndirectIndex(); err == nil {
			if d.RevDesc, err = yd.RevDesc.ToIndirectIndex(); err == nil {
				err = checkIncidence(d)
			}
		}
	}
	if err != nil {
		d = nil
	}
	return
}

func checkIncidence(d *mesh.Descending) (err error) {
	var (
		n   = d.SubMesh.NumCells()
		inv utils.IndirectIndex
	)
	if d.RevDesc.GroupCount() != n {
		return fmt.Errorf("%w: revDesc has %d groups for %d sub-entities",
			utils.ErrInvalidArgument, d.RevDesc.GroupCount(), n)
	}
	if inv, err = d.Desc.Invert(n); err != nil {
		return fmt.Errorf("desc: %w", err)
	}
	if !d.RevDesc.Equal(inv) {
		return fmt.Errorf("%w: revDesc is not the inverse of desc", utils.ErrInvalidArgument)
	}
	return
}

// ReadYAMLMesh reads a mesh written by WriteYAMLMesh
func ReadYAMLMesh(filename string) (m *mesh.Mesh, err error) {
	var (
		data []byte
		ym   YAMLMesh
	)
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	if err = yaml.Unmarshal(data, &ym); err != nil {
		err = fmt.Errorf("parsing %s: %w", filename, err)
		return
	}
	return ym.ToMesh()
}

func WriteYAMLMesh(filename string, m *mesh.Mesh) (err error) {
	var ym YAMLMesh
	if ym, err = NewYAMLMesh(m); err != nil {
		return
	}
	return writeYAML(filename, ym)
}

func ReadYAMLDescending(filename string) (d *mesh.Descending, err error) {
	var (
		data []byte
		yd   YAMLDescending
	)
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	if err = yaml.Unmarshal(data, &yd); err != nil {
		err = fmt.Errorf("parsing %s: %w", filename, err)
		return
	}
	return yd.ToDescending()
}

func WriteYAMLDescending(filename string, d *mesh.Descending) (err error) {
	var yd YAMLDescending
	if yd, err = NewYAMLDescending(d); err != nil {
		return
	}
	return writeYAML(filename, yd)
}

func writeYAML(filename string, v interface{}) (err error) {
	var data []byte
	if data, err = yaml.Marshal(v); err != nil {
		return
	}
	return os.WriteFile(filename, data, 0644)
}
