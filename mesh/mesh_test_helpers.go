package mesh

import (
	"fmt"

	"github.com/notargets/meshtopo/tuples"
)

// TestMeshes provides a collection of standard test meshes shared by the
// connectivity tests and the file format readers
type TestMeshes struct {
	// Node definitions
	CubeNodes    NodeSet
	TetraNodes   NodeSet
	PyramidNodes NodeSet

	// Element definitions
	SingleTet     ElementSet
	SingleHex     ElementSet
	SinglePrism   ElementSet
	SinglePyramid ElementSet

	// Complete mesh definitions
	TwoTetMesh     CompleteMesh
	MixedMesh      CompleteMesh
	CubeMesh       CompleteMesh
	TwoSquareMesh  CompleteMesh
	PolyhedronCube CompleteMesh
}

// NodeSet represents a set of nodes with their coordinates
type NodeSet struct {
	Nodes   [][]float64    // Coordinates [N][dim]
	NodeMap map[string]int // Logical name -> array index
}

// ElementSet represents a set of elements with connectivity
type ElementSet struct {
	Type     ElementType
	Elements [][]string // Connectivity using logical node names
	// Faces holds polyhedron face lists, one [][]string per element
	Faces [][][]string
}

// CompleteMesh represents a complete mesh with nodes and elements
type CompleteMesh struct {
	Nodes       NodeSet
	Elements    []ElementSet
	Dimension   int
	BoundingBox [2][3]float64 // Min and max coordinates
}

// GetStandardTestMeshes returns a set of standard test meshes
func GetStandardTestMeshes() *TestMeshes {
	tm := &TestMeshes{}

	tm.CubeNodes = createCubeNodes()
	tm.TetraNodes = createTetraNodes()
	tm.PyramidNodes = createPyramidNodes()

	tm.SingleTet = createSingleTet()
	tm.SingleHex = createSingleHex()
	tm.SinglePrism = createSinglePrism()
	tm.SinglePyramid = createSinglePyramid()

	tm.TwoTetMesh = createTwoTetMesh()
	tm.MixedMesh = createMixedMesh()
	tm.CubeMesh = createCubeMesh()
	tm.TwoSquareMesh = createTwoSquareMesh()
	tm.PolyhedronCube = createPolyhedronCube()

	return tm
}

// Node set creators

func createCubeNodes() NodeSet {
	nodes := [][]float64{
		{0, 0, 0}, // 0: origin
		{1, 0, 0}, // 1: x
		{1, 1, 0}, // 2: xy
		{0, 1, 0}, // 3: y
		{0, 0, 1}, // 4: z
		{1, 0, 1}, // 5: xz
		{1, 1, 1}, // 6: xyz
		{0, 1, 1}, // 7: yz
		// Additional nodes for mixed elements
		{0.5, 0.5, 0},   // 8: center_bottom
		{0.5, 0.5, 1},   // 9: center_top
		{0.5, 0.5, 0.5}, // 10: center
	}

	nodeMap := map[string]int{
		"origin": 0, "x": 1, "xy": 2, "y": 3,
		"z": 4, "xz": 5, "xyz": 6, "yz": 7,
		"center_bottom": 8, "center_top": 9, "center": 10,
	}

	return NodeSet{
		Nodes:   nodes,
		NodeMap: nodeMap,
	}
}

func createTetraNodes() NodeSet {
	// Standard tetrahedron with vertices at:
	// (0,0,0), (1,0,0), (0,1,0), (0,0,1)
	nodes := [][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	nodeMap := map[string]int{
		"v0": 0, "v1": 1, "v2": 2, "v3": 3,
	}

	return NodeSet{
		Nodes:   nodes,
		NodeMap: nodeMap,
	}
}

func createPyramidNodes() NodeSet {
	// Standard pyramid with square base and apex
	nodes := [][]float64{
		{0, 0, 0},     // 0: base corner 1
		{1, 0, 0},     // 1: base corner 2
		{1, 1, 0},     // 2: base corner 3
		{0, 1, 0},     // 3: base corner 4
		{0.5, 0.5, 1}, // 4: apex
	}

	nodeMap := map[string]int{
		"base0": 0, "base1": 1, "base2": 2, "base3": 3, "apex": 4,
	}

	return NodeSet{
		Nodes:   nodes,
		NodeMap: nodeMap,
	}
}

func createSquareNodes() NodeSet {
	// Two unit squares side by side
	//  3----4----5
	//  |    |    |
	//  0----1----2
	nodes := [][]float64{
		{0, 0}, {1, 0}, {2, 0},
		{0, 1}, {1, 1}, {2, 1},
	}

	nodeMap := map[string]int{
		"sw": 0, "s": 1, "se": 2,
		"nw": 3, "n": 4, "ne": 5,
	}

	return NodeSet{
		Nodes:   nodes,
		NodeMap: nodeMap,
	}
}

// Element set creators

func createSingleTet() ElementSet {
	return ElementSet{
		Type: Tet,
		Elements: [][]string{
			{"v0", "v1", "v2", "v3"},
		},
	}
}

func createSingleHex() ElementSet {
	return ElementSet{
		Type: Hex,
		Elements: [][]string{
			{"origin", "x", "xy", "y", "z", "xz", "xyz", "yz"},
		},
	}
}

func createSinglePrism() ElementSet {
	return ElementSet{
		Type: Prism,
		Elements: [][]string{
			{"origin", "x", "y", "z", "xz", "yz"},
		},
	}
}

func createSinglePyramid() ElementSet {
	return ElementSet{
		Type: Pyramid,
		Elements: [][]string{
			{"base0", "base1", "base2", "base3", "apex"},
		},
	}
}

// Complete mesh creators

func createTwoTetMesh() CompleteMesh {
	// Two tetrahedra sharing a face
	nodes := NodeSet{
		Nodes: [][]float64{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
			{1, 1, 1},
		},
		NodeMap: map[string]int{
			"v0": 0, "v1": 1, "v2": 2, "v3": 3, "v4": 4,
		},
	}

	elements := []ElementSet{
		{
			Type: Tet,
			Elements: [][]string{
				{"v0", "v1", "v2", "v3"},
				{"v1", "v2", "v3", "v4"},
			},
		},
	}

	return CompleteMesh{
		Nodes:     nodes,
		Elements:  elements,
		Dimension: 3,
		BoundingBox: [2][3]float64{
			{0, 0, 0},
			{1, 1, 1},
		},
	}
}

func createMixedMesh() CompleteMesh {
	// A unit hex with a pyramid on its top face and a prism against its
	// x=1 face, two shared faces in all
	nodes := NodeSet{
		Nodes: [][]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
			{0.5, 0.5, 2},
			{2, 0, 0}, {2, 0, 1},
		},
		NodeMap: map[string]int{
			"b0": 0, "b1": 1, "b2": 2, "b3": 3,
			"t0": 4, "t1": 5, "t2": 6, "t3": 7,
			"apex": 8,
			"p0":   9, "p1": 10,
		},
	}

	elements := []ElementSet{
		{
			Type: Hex,
			Elements: [][]string{
				{"b0", "b1", "b2", "b3", "t0", "t1", "t2", "t3"},
			},
		},
		{
			Type: Pyramid,
			Elements: [][]string{
				{"t0", "t1", "t2", "t3", "apex"},
			},
		},
		{
			// Quad face b2,b1,t1,t2 is the hex face b1,b2,t2,t1
			Type: Prism,
			Elements: [][]string{
				{"b1", "p0", "b2", "t1", "p1", "t2"},
			},
		},
	}

	return CompleteMesh{
		Nodes:     nodes,
		Elements:  elements,
		Dimension: 3,
		BoundingBox: [2][3]float64{
			{0, 0, 0},
			{2, 1, 2},
		},
	}
}

func createCubeMesh() CompleteMesh {
	// The unit cube split into 6 tetrahedra along the origin-xyz diagonal
	nodes := createCubeNodes()

	elements := []ElementSet{
		{
			Type: Tet,
			Elements: [][]string{
				{"origin", "x", "xy", "xyz"},
				{"origin", "xy", "y", "xyz"},
				{"origin", "y", "yz", "xyz"},
				{"origin", "yz", "z", "xyz"},
				{"origin", "z", "xz", "xyz"},
				{"origin", "xz", "x", "xyz"},
			},
		},
	}

	return CompleteMesh{
		Nodes:     nodes,
		Elements:  elements,
		Dimension: 3,
		BoundingBox: [2][3]float64{
			{0, 0, 0},
			{1, 1, 1},
		},
	}
}

func createTwoSquareMesh() CompleteMesh {
	nodes := createSquareNodes()

	elements := []ElementSet{
		{
			Type: Quad,
			Elements: [][]string{
				{"sw", "s", "n", "nw"},
				{"s", "se", "ne", "n"},
			},
		},
	}

	return CompleteMesh{
		Nodes:     nodes,
		Elements:  elements,
		Dimension: 2,
		BoundingBox: [2][3]float64{
			{0, 0, 0},
			{2, 1, 0},
		},
	}
}

func createPolyhedronCube() CompleteMesh {
	// The unit cube as one polyhedron plus a hex stacked on top of it, so
	// the shared face is declared in two different node orders
	nodes := createCubeNodes()
	nodes.Nodes = append(nodes.Nodes,
		[]float64{0, 0, 2}, []float64{1, 0, 2}, []float64{1, 1, 2}, []float64{0, 1, 2})
	nodes.NodeMap["z2"] = 11
	nodes.NodeMap["xz2"] = 12
	nodes.NodeMap["xyz2"] = 13
	nodes.NodeMap["yz2"] = 14

	elements := []ElementSet{
		{
			Type: Polyhedron,
			Faces: [][][]string{
				{
					{"origin", "y", "xy", "x"},
					{"z", "xz", "xyz", "yz"},
					{"origin", "x", "xz", "z"},
					{"x", "xy", "xyz", "xz"},
					{"xy", "y", "yz", "xyz"},
					{"y", "origin", "z", "yz"},
				},
			},
		},
		{
			Type: Hex,
			Elements: [][]string{
				{"z", "xz", "xyz", "yz", "z2", "xz2", "xyz2", "yz2"},
			},
		},
	}

	return CompleteMesh{
		Nodes:     nodes,
		Elements:  elements,
		Dimension: 3,
		BoundingBox: [2][3]float64{
			{0, 0, 0},
			{1, 1, 2},
		},
	}
}

// Conversion helpers

// ConvertToMesh converts a CompleteMesh to a Mesh, panicking on invalid input
func (cm *CompleteMesh) ConvertToMesh() *Mesh {
	coords, err := tuples.FromRows(cm.Nodes.Nodes)
	if err != nil {
		panic(err)
	}
	m, err := NewMesh("test", cm.Dimension, coords)
	if err != nil {
		panic(err)
	}

	for _, elemSet := range cm.Elements {
		if elemSet.Type == Polyhedron {
			for _, faceNames := range elemSet.Faces {
				faces := make([][]int, len(faceNames))
				for i, f := range faceNames {
					faces[i] = cm.Nodes.lookup(f)
				}
				if err = m.InsertNextCell(NewPolyhedron(faces...)); err != nil {
					panic(err)
				}
			}
			continue
		}
		for _, elemNodes := range elemSet.Elements {
			if err = m.InsertNextCell(NewCell(elemSet.Type, cm.Nodes.lookup(elemNodes)...)); err != nil {
				panic(err)
			}
		}
	}
	return m
}

func (ns NodeSet) lookup(names []string) (ids []int) {
	ids = make([]int, len(names))
	for i, name := range names {
		id, ok := ns.NodeMap[name]
		if !ok {
			panic(fmt.Errorf("unknown node name %q", name))
		}
		ids[i] = id
	}
	return
}
