/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/james-bowman/sparse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/meshtopo/InputParameters"
	"github.com/notargets/meshtopo/mesh"
	"github.com/notargets/meshtopo/mesh/readers"
	"github.com/notargets/meshtopo/tuples"
	"github.com/notargets/meshtopo/utils"
)

// DescendCmd represents the descend command
var DescendCmd = &cobra.Command{
	Use:   "descend",
	Short: "Build the descending connectivity of a mesh",
	Long: `
Reads a mesh, optionally merges coincident nodes, and builds the cell to
sub-entity (face in 3D, edge in 2D) incidence and its reverse.

meshtopo descend -F mesh.su2 -o mesh_desc.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		meshFile, _ := cmd.Flags().GetString("meshFile")
		jobFile, _ := cmd.Flags().GetString("inputFile")
		job := processInput(meshFile, jobFile)
		if out, _ := cmd.Flags().GetString("output"); out != "" {
			job.Output = out
		}
		if out, _ := cmd.Flags().GetString("skinOutput"); out != "" {
			job.SkinOutput = out
		}
		if zip, _ := cmd.Flags().GetBool("zip"); zip {
			job.ZipCoords = true
		}
		if nbrs, _ := cmd.Flags().GetBool("neighbors"); nbrs {
			job.Neighbors = true
		}
		job.Print()
		if err = startJobProfile(job, "."); err != nil {
			log.Fatalf("descend failed: %v", err)
		}
		if _, err = RunDescend(job); err != nil {
			log.Fatalf("descend failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(DescendCmd)
	DescendCmd.Flags().StringP("meshFile", "F", "", "Mesh file to read, Gambit (.neu), SU2 (.su2) or YAML (.yaml)")
	DescendCmd.Flags().StringP("inputFile", "I", "", "YAML job file, see the example printed when no mesh is given")
	DescendCmd.Flags().StringP("output", "o", "", "YAML file for the descending connectivity")
	DescendCmd.Flags().StringP("skinOutput", "s", "", "YAML file for the skin mesh")
	DescendCmd.Flags().BoolP("zip", "z", false, "drop nodes no cell references before building")
	DescendCmd.Flags().BoolP("neighbors", "n", false, "report cell neighbor counts")
}

/*
processInput assembles the job from the job file and the command line. The
mesh file flag overrides the job's MeshFile, and a tolerance set by flag,
environment or config file overrides the job's and turns on node merging. A
job without a tolerance gets the default one.
*/
func processInput(meshFile, jobFile string) (job *InputParameters.MeshJob) {
	var (
		err error
	)
	if len(meshFile) == 0 && len(jobFile) == 0 {
		err = fmt.Errorf("must supply a mesh file (-F, --meshFile) or a job file (-I, --inputFile)")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Duct"
MeshFile: duct.neu   # Or a structured grid, one list per axis:
#Grid:
#  - [0, 0.5, 1]
#  - [0, 1]
Tolerance: 1.e-8
MergeNodes: true
Output: duct_desc.yaml
SkinOutput: duct_skin.yaml
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	job = &InputParameters.MeshJob{}
	if len(jobFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(jobFile); err != nil {
			log.Fatalf("Failed to read job file: %v", err)
		}
		if len(meshFile) != 0 {
			// Parse checks for a mesh source, the command line may supply it
			job.MeshFile = meshFile
		}
		if err = job.Parse(data); err != nil {
			log.Fatalf("Failed to parse job file %s: %v", jobFile, err)
		}
	}
	if len(meshFile) != 0 {
		job.MeshFile = meshFile
	}
	if len(job.Title) == 0 {
		job.Title = job.MeshFile
	}
	if viper.IsSet("tolerance") {
		job.Tolerance = viper.GetFloat64("tolerance")
		job.MergeNodes = true
	} else if job.Tolerance == 0 {
		job.Tolerance = viper.GetFloat64("tolerance")
	}
	return
}

// loadMesh reads the job's mesh file, or builds its structured grid
func loadMesh(job *InputParameters.MeshJob) (m *mesh.Mesh, err error) {
	if len(job.MeshFile) == 0 {
		if len(job.Grid) == 0 {
			err = fmt.Errorf("job %q has no mesh source", job.Title)
			return
		}
		log.Printf("Building structured grid %q", job.Title)
		return mesh.NewCartesianMesh(job.Title, job.Grid...)
	}
	log.Printf("Reading mesh from %s", job.MeshFile)
	return readers.ReadMeshFile(job.MeshFile)
}

// prepareMesh applies node merging and unused node removal as the job asks
func prepareMesh(m *mesh.Mesh, job *InputParameters.MeshJob) (r *mesh.Mesh, err error) {
	r = m
	if job.MergeNodes {
		var (
			merged *mesh.Mesh
			ct     *tuples.CommonTuples
		)
		if merged, ct, err = mesh.MergeNodes(r, job.Tolerance); err != nil {
			return nil, err
		}
		log.Printf("Merged %d coincident node groups, %d nodes -> %d",
			ct.Groups.GroupCount(), r.NumNodes(), merged.NumNodes())
		r = merged
	}
	if job.ZipCoords {
		var zipped *mesh.Mesh
		if zipped, _, err = mesh.ZipCoords(r); err != nil {
			return nil, err
		}
		log.Printf("Dropped %d unused nodes", r.NumNodes()-zipped.NumNodes())
		r = zipped
	}
	return
}

// RunDescend executes a descend job and writes the requested outputs
func RunDescend(job *InputParameters.MeshJob) (d *mesh.Descending, err error) {
	var m *mesh.Mesh
	if m, err = loadMesh(job); err != nil {
		return
	}
	if m, err = prepareMesh(m, job); err != nil {
		return
	}
	m.PrintStatistics()
	if d, err = mesh.BuildDescendingConnectivity(m); err != nil {
		return
	}
	d.PrintStatistics()
	log.Printf("Memory: %s", utils.GetMemUsage())
	if job.Neighbors {
		if err = printNeighborCounts(d); err != nil {
			return
		}
	}
	if job.Output != "" {
		log.Printf("Writing descending connectivity to %s", job.Output)
		if err = readers.WriteYAMLDescending(job.Output, d); err != nil {
			return
		}
	}
	if job.SkinOutput != "" {
		var skin *mesh.Mesh
		if skin, err = mesh.BuildPartOfMySelf(d.SubMesh, d.SkinIds()); err != nil {
			return
		}
		log.Printf("Writing skin mesh to %s", job.SkinOutput)
		if err = readers.WriteYAMLMesh(job.SkinOutput, skin); err != nil {
			return
		}
	}
	return
}

/*
neighborCounts reads the cell adjacency matrix. perCell counts cells by their
number of neighbours; perPair counts neighbouring cell pairs by the number of
sub-entities they share.
*/
func neighborCounts(d *mesh.Descending) (perCell, perPair map[int]int, err error) {
	var adj *sparse.CSR
	if adj, err = d.CellAdjacency(); err != nil {
		return
	}
	var (
		nbrs = make([]int, d.Desc.GroupCount())
	)
	perCell, perPair = make(map[int]int), make(map[int]int)
	adj.DoNonZero(func(i, j int, v float64) {
		if i == j {
			return
		}
		nbrs[i]++
		if i < j {
			perPair[int(v)]++
		}
	})
	for _, n := range nbrs {
		perCell[n]++
	}
	return
}

func printNeighborCounts(d *mesh.Descending) (err error) {
	var perCell, perPair map[int]int
	if perCell, perPair, err = neighborCounts(d); err != nil {
		return
	}
	printHistogram := func(title, label string, hist map[int]int) {
		keys := make([]int, 0, len(hist))
		for k := range hist {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		fmt.Printf("%s:\n", title)
		for _, k := range keys {
			fmt.Printf("  %d %s: %d\n", k, label, hist[k])
		}
	}
	printHistogram("Cell neighbor counts", "neighbors", perCell)
	printHistogram("Shared sub-entities per neighbor pair", "shared", perPair)
	return
}
