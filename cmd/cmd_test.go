package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/meshtopo/InputParameters"
	"github.com/notargets/meshtopo/mesh"
	"github.com/notargets/meshtopo/mesh/readers"
	"github.com/notargets/meshtopo/tuples"
)

func TestRunDescend(t *testing.T) {
	var (
		dir = t.TempDir()
		job InputParameters.MeshJob
	)
	fileInput := []byte(`
Title: Plate
Grid:
  - [0, 1, 2, 3]
  - [0, 1, 2]
Neighbors: true
`)
	require.NoError(t, job.Parse(fileInput))
	job.Output = filepath.Join(dir, "plate_desc.yaml")
	job.SkinOutput = filepath.Join(dir, "plate_skin.yaml")

	d, err := RunDescend(&job)
	require.NoError(t, err)
	// 9 horizontal and 8 vertical edges, 10 on the boundary
	assert.Equal(t, 17, d.NumSubEntities())
	assert.Equal(t, 10, len(d.SkinIds()))

	back, err := readers.ReadYAMLDescending(job.Output)
	require.NoError(t, err)
	assert.True(t, d.Desc.Equal(back.Desc))
	assert.True(t, d.RevDesc.Equal(back.RevDesc))

	skin, err := readers.ReadMeshFile(job.SkinOutput)
	require.NoError(t, err)
	assert.Equal(t, 1, skin.MeshDim)
	assert.Equal(t, 10, skin.NumCells())
	assert.Equal(t, 12, skin.NumNodes())

	{ // Four corner cells touch two others, the middle pair touch three
		perCell, perPair, err := neighborCounts(d)
		require.NoError(t, err)
		assert.Equal(t, map[int]int{2: 4, 3: 2}, perCell)
		assert.Equal(t, map[int]int{1: 7}, perPair)
	}
	{ // No mesh source
		_, err = RunDescend(&InputParameters.MeshJob{Title: "empty"})
		assert.Error(t, err)
	}
	{ // Unreadable mesh file
		_, err = RunDescend(&InputParameters.MeshJob{MeshFile: filepath.Join(dir, "missing.su2")})
		assert.Error(t, err)
	}
}

func TestProcessInput(t *testing.T) {
	dir := t.TempDir()
	jobFile := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(jobFile, []byte(`
Title: Duct
Tolerance: 1.0e-6
MergeNodes: true
`), 0644))

	// The job file lacks a mesh, the command line supplies it
	job := processInput("duct.su2", jobFile)
	assert.Equal(t, "Duct", job.Title)
	assert.Equal(t, "duct.su2", job.MeshFile)
	assert.Equal(t, 1.0e-6, job.Tolerance)
	assert.True(t, job.MergeNodes)

	job = processInput("duct.neu", "")
	assert.Equal(t, "duct.neu", job.Title)
	assert.False(t, job.MergeNodes)
	assert.True(t, job.Tolerance > 0)
}

// twoLooseSquares returns two unit squares side by side with the shared edge
// duplicated, plus a node no cell uses
func twoLooseSquares(t *testing.T) *mesh.Mesh {
	coords, err := tuples.FromRows([][]float64{
		{0, 0}, {1, 0}, {1, 1}, {0, 1},
		{1, 0}, {2, 0}, {2, 1}, {1, 1},
		{5, 5},
	})
	require.NoError(t, err)
	m, err := mesh.NewMesh("loose", 2, coords)
	require.NoError(t, err)
	require.NoError(t, m.InsertNextCell(mesh.NewCell(mesh.Quad, 0, 1, 2, 3)))
	require.NoError(t, m.InsertNextCell(mesh.NewCell(mesh.Quad, 4, 5, 6, 7)))
	return m
}

func TestRunMerge(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "loose.yaml")
	out := filepath.Join(dir, "merged.yaml")
	require.NoError(t, readers.WriteYAMLMesh(in, twoLooseSquares(t)))

	m, err := RunMerge(in, 1.e-10, out)
	require.NoError(t, err)
	assert.Equal(t, 6, m.NumNodes())
	assert.Equal(t, mesh.NewCell(mesh.Quad, 0, 1, 2, 3), m.Cells[0])
	assert.Equal(t, mesh.NewCell(mesh.Quad, 1, 4, 5, 2), m.Cells[1])

	back, err := readers.ReadMeshFile(out)
	require.NoError(t, err)
	assert.Equal(t, m.Cells, back.Cells)
	assert.True(t, m.Coords.Equal(back.Coords))

	// Merged, the squares share their middle edge
	d, err := mesh.BuildDescendingConnectivity(back)
	require.NoError(t, err)
	assert.Equal(t, 7, d.NumSubEntities())

	{
		_, err = RunMerge(in, -1, out)
		assert.Error(t, err)
	}
}

func TestRunSkin(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "box.yaml")
	out := filepath.Join(dir, "box_skin.yaml")
	box, err := mesh.NewCartesianMesh("box", []float64{0, 1, 2}, []float64{0, 1, 2}, []float64{0, 1, 2})
	require.NoError(t, err)
	require.NoError(t, readers.WriteYAMLMesh(in, box))

	{ // Skin on the full node table
		skin, err := RunSkin(in, out, false)
		require.NoError(t, err)
		assert.Equal(t, 2, skin.MeshDim)
		assert.Equal(t, 24, skin.NumCells())
		assert.Equal(t, 27, skin.NumNodes())
	}
	{ // The center node is the only one off the skin
		skin, err := RunSkin(in, out, true)
		require.NoError(t, err)
		assert.Equal(t, 26, skin.NumNodes())
		back, err := readers.ReadMeshFile(out)
		require.NoError(t, err)
		assert.Equal(t, skin.Cells, back.Cells)
		assert.Equal(t, map[mesh.ElementType]int{mesh.Quad: 24}, back.CellTypeCounts())
	}
}

func TestStartProfile(t *testing.T) {
	p, err := startProfile("", ".")
	assert.NoError(t, err)
	assert.Nil(t, p)
	_, err = startProfile("gpu", ".")
	assert.Error(t, err)

	{ // The job file turns on profiling when the command line does not
		dir := t.TempDir()
		require.Nil(t, profiler)
		require.NoError(t, startJobProfile(&InputParameters.MeshJob{Profile: ""}, dir))
		assert.Nil(t, profiler)
		require.NoError(t, startJobProfile(&InputParameters.MeshJob{Profile: "mem"}, dir))
		require.NotNil(t, profiler)
		profiler.Stop()
		profiler = nil
		assert.FileExists(t, filepath.Join(dir, "mem.pprof"))
	}
}
