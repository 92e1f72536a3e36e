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

	"github.com/notargets/meshtopo/mesh"
	"github.com/notargets/meshtopo/mesh/readers"
)

// SkinCmd represents the skin command
var SkinCmd = &cobra.Command{
	Use:   "skin",
	Short: "Extract the skin of a mesh",
	Long: `
Writes the sub-entities bounding exactly one cell as a mesh one dimension
lower, on the node table of the input mesh or, with --zip, on the nodes the
skin uses.

meshtopo skin -F mesh.su2 -o skin.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		meshFile, _ := cmd.Flags().GetString("meshFile")
		output, _ := cmd.Flags().GetString("output")
		zip, _ := cmd.Flags().GetBool("zip")
		if len(meshFile) == 0 || len(output) == 0 {
			fmt.Printf("error: must supply a mesh file (-F, --meshFile) and an output file (-o, --output)\n")
			os.Exit(1)
		}
		if _, err = RunSkin(meshFile, output, zip); err != nil {
			log.Fatalf("skin failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(SkinCmd)
	SkinCmd.Flags().StringP("meshFile", "F", "", "Mesh file to read, Gambit (.neu), SU2 (.su2) or YAML (.yaml)")
	SkinCmd.Flags().StringP("output", "o", "", "YAML file for the skin mesh")
	SkinCmd.Flags().BoolP("zip", "z", false, "keep only the nodes the skin uses")
}

func RunSkin(meshFile, output string, zip bool) (skin *mesh.Mesh, err error) {
	var m *mesh.Mesh
	log.Printf("Reading mesh from %s", meshFile)
	if m, err = readers.ReadMeshFile(meshFile); err != nil {
		return
	}
	if skin, err = mesh.ComputeSkin(m); err != nil {
		return
	}
	if zip {
		if skin, _, err = mesh.ZipCoords(skin); err != nil {
			return
		}
	}
	skin.PrintStatistics()
	log.Printf("Writing skin mesh to %s", output)
	err = readers.WriteYAMLMesh(output, skin)
	return
}
