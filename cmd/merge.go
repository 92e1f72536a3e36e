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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/meshtopo/mesh"
	"github.com/notargets/meshtopo/mesh/readers"
)

// MergeCmd represents the merge command
var MergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge coincident nodes and drop unused ones",
	Long: `
Merges the nodes of a mesh lying within the tolerance of each other, component
by component, drops the nodes no cell references and writes the result as YAML.

meshtopo merge -F mesh.neu -t 1.e-8 -o merged.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		meshFile, _ := cmd.Flags().GetString("meshFile")
		output, _ := cmd.Flags().GetString("output")
		if len(meshFile) == 0 || len(output) == 0 {
			fmt.Printf("error: must supply a mesh file (-F, --meshFile) and an output file (-o, --output)\n")
			os.Exit(1)
		}
		if _, err = RunMerge(meshFile, viper.GetFloat64("tolerance"), output); err != nil {
			log.Fatalf("merge failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(MergeCmd)
	MergeCmd.Flags().StringP("meshFile", "F", "", "Mesh file to read, Gambit (.neu), SU2 (.su2) or YAML (.yaml)")
	MergeCmd.Flags().StringP("output", "o", "", "YAML file for the merged mesh")
}

// RunMerge merges, zips and writes one mesh
func RunMerge(meshFile string, tol float64, output string) (m *mesh.Mesh, err error) {
	log.Printf("Reading mesh from %s", meshFile)
	if m, err = readers.ReadMeshFile(meshFile); err != nil {
		return
	}
	nNodes := m.NumNodes()
	if m, _, err = mesh.MergeNodes(m, tol); err != nil {
		return
	}
	if m, _, err = mesh.ZipCoords(m); err != nil {
		return
	}
	log.Printf("Nodes: %d -> %d at tolerance %g", nNodes, m.NumNodes(), tol)
	m.PrintStatistics()
	log.Printf("Writing merged mesh to %s", output)
	err = readers.WriteYAMLMesh(output, m)
	return
}
