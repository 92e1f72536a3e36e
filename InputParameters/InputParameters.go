package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML job file
type MeshJob struct {
	Title      string      `yaml:"Title"`
	MeshFile   string      `yaml:"MeshFile"`
	Grid       [][]float64 `yaml:"Grid"` // Node coordinates per axis, used when no MeshFile is given
	Tolerance  float64     `yaml:"Tolerance"`
	MergeNodes bool        `yaml:"MergeNodes"`
	ZipCoords  bool        `yaml:"ZipCoords"`
	Output     string      `yaml:"Output"`
	SkinOutput string      `yaml:"SkinOutput"`
	Neighbors  bool        `yaml:"Neighbors"` // Report cell neighbor counts
	Profile    string      `yaml:"Profile"`
}

func (mj *MeshJob) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, mj); err != nil {
		return
	}
	return mj.Check()
}

func (mj *MeshJob) Check() (err error) {
	switch {
	case len(mj.MeshFile) == 0 && len(mj.Grid) == 0:
		err = fmt.Errorf("job %q names neither a MeshFile nor a Grid", mj.Title)
	case len(mj.Grid) > 3:
		err = fmt.Errorf("job %q: Grid has %d axes, at most 3 allowed", mj.Title, len(mj.Grid))
	case mj.Tolerance < 0:
		err = fmt.Errorf("job %q: negative tolerance %g", mj.Title, mj.Tolerance)
	case mj.Profile != "" && mj.Profile != "cpu" && mj.Profile != "mem":
		err = fmt.Errorf("job %q: profile must be cpu or mem, have %q", mj.Title, mj.Profile)
	}
	return
}

func (mj *MeshJob) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", mj.Title)
	if len(mj.Grid) != 0 {
		for i, ax := range mj.Grid {
			fmt.Printf("[%d nodes]\t\t= Grid axis %c\n", len(ax), 'X'+rune(i))
		}
	} else {
		fmt.Printf("[%s]\t\t= Mesh File\n", mj.MeshFile)
	}
	fmt.Printf("%8.5g\t\t= Tolerance\n", mj.Tolerance)
	fmt.Printf("[%v]\t\t\t= Merge Nodes\n", mj.MergeNodes)
	fmt.Printf("[%v]\t\t\t= Zip Coords\n", mj.ZipCoords)
	if mj.Output != "" {
		fmt.Printf("[%s]\t= Output\n", mj.Output)
	}
	if mj.SkinOutput != "" {
		fmt.Printf("[%s]\t= Skin Output\n", mj.SkinOutput)
	}
	if mj.Profile != "" {
		fmt.Printf("[%s]\t\t\t= Profile\n", mj.Profile)
	}
}
