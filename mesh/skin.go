package mesh

import (
	"fmt"

	"github.com/notargets/meshtopo/utils"
)

// EntityClass tells boundary sub-entities from shared ones
type EntityClass uint8

const (
	Skin     EntityClass = iota // exactly one parent cell
	Interior                    // two or more parent cells
)

func (ec EntityClass) String() string {
	switch ec {
	case Skin:
		return "Skin"
	case Interior:
		return "Interior"
	default:
		return fmt.Sprintf("EntityClass(%d)", uint8(ec))
	}
}

// SkinIds returns the sub-entities bounding exactly one cell
func (d *Descending) SkinIds() utils.Index {
	return d.RevDesc.GroupSizes().FindIdsEqual(1)
}

// InteriorIds returns the sub-entities shared by more than one cell
func (d *Descending) InteriorIds() utils.Index {
	return d.RevDesc.GroupSizes().FindIds(utils.NotEqual, 1)
}

func (d *Descending) Classify() (classes []EntityClass) {
	sizes := d.RevDesc.GroupSizes()
	classes = make([]EntityClass, len(sizes))
	for i, n := range sizes {
		if n != 1 {
			classes[i] = Interior
		}
	}
	return
}

// SkinParents returns, for every skin entity in SkinIds order, its one
// parent cell
func (d *Descending) SkinParents() (parents utils.Index, err error) {
	var sel utils.IndirectIndex
	if sel, err = d.RevDesc.Select(d.SkinIds()); err != nil {
		return
	}
	parents = sel.Payload()
	return
}

// ComputeSkin returns the mesh of the boundary sub-entities of m, over a copy
// of its node table
func ComputeSkin(m *Mesh) (skin *Mesh, err error) {
	var d *Descending
	if d, err = BuildDescendingConnectivity(m); err != nil {
		return
	}
	return BuildPartOfMySelf(d.SubMesh, d.SkinIds())
}
