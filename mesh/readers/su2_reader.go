package readers

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/meshtopo/mesh"
)

// su2ElementTypeMap maps SU2/VTK element type identifiers to our ElementType
var su2ElementTypeMap = map[int]mesh.ElementType{
	3:  mesh.Line,     // VTK_LINE
	5:  mesh.Triangle, // VTK_TRIANGLE
	7:  mesh.Polygon,  // VTK_POLYGON
	9:  mesh.Quad,     // VTK_QUAD
	10: mesh.Tet,      // VTK_TETRA
	12: mesh.Hex,      // VTK_HEXAHEDRON
	13: mesh.Prism,    // VTK_WEDGE
	14: mesh.Pyramid,  // VTK_PYRAMID
}

// ReadSU2 reads an SU2 native format file. Boundary markers are skipped.
func ReadSU2(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	var ndime int
	var hasNDIME, hasNPOIN bool
	var coords [][]float64
	var cells []rawCell

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments (text after %)
		if idx := strings.Index(line, "%"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "NDIME=") {
			hasNDIME = true
			fmt.Sscanf(line, "NDIME=%d", &ndime)
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d", ndime)
			}

		} else if strings.HasPrefix(line, "NPOIN=") {
			if !hasNDIME {
				return nil, fmt.Errorf("NPOIN= before NDIME=")
			}
			hasNPOIN = true
			var npoin int
			fmt.Sscanf(line, "NPOIN=%d", &npoin)

			coords = make([][]float64, npoin)
			for i := 0; i < npoin; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}

				fields := strings.Fields(scanner.Text())
				if len(fields) < ndime {
					return nil, fmt.Errorf("invalid node line: expected at least %d coordinates", ndime)
				}

				xyz := make([]float64, ndime)
				for j := 0; j < ndime; j++ {
					xyz[j], err = strconv.ParseFloat(fields[j], 64)
					if err != nil {
						return nil, fmt.Errorf("invalid coordinate: %v", err)
					}
				}
				// Node ID is implicit (0-based) based on order
				coords[i] = xyz
			}

		} else if strings.HasPrefix(line, "NELEM=") {
			var nelem int
			fmt.Sscanf(line, "NELEM=%d", &nelem)

			cells = make([]rawCell, 0, nelem)
			for i := 0; i < nelem; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}

				fields := strings.Fields(scanner.Text())
				if len(fields) < 2 {
					return nil, fmt.Errorf("invalid element line")
				}

				su2Type, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("invalid element type: %v", err)
				}

				etype, ok := su2ElementTypeMap[su2Type]
				if !ok {
					return nil, fmt.Errorf("unknown element type: %d", su2Type)
				}

				// Polygons carry their node count first
				numNodes := etype.NumNodes()
				first := 1
				if etype == mesh.Polygon {
					if numNodes, err = strconv.Atoi(fields[1]); err != nil {
						return nil, fmt.Errorf("invalid polygon node count: %v", err)
					}
					first = 2
				}
				if len(fields) < numNodes+first {
					return nil, fmt.Errorf("element type %v expects %d nodes, got %d fields",
						etype, numNodes, len(fields)-first)
				}

				nodes := make([]int, numNodes)
				for j := 0; j < numNodes; j++ {
					nodes[j], err = strconv.Atoi(fields[first+j])
					if err != nil {
						return nil, fmt.Errorf("invalid node index: %v", err)
					}
				}
				// Element ID is implicit (0-based) based on order
				cells = append(cells, rawCell{etype: etype, nodes: nodes})
			}

		} else if strings.HasPrefix(line, "NMARK=") {
			// Boundary markers close the volume description
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}

	// Validate that we read the required sections
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}

	if !hasNPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return assemble(name, coords, ndime, cells)
}
