package readers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/meshtopo/mesh"
)

// gambitTypes maps Gambit NTYPE codes to element types
var gambitTypes = map[int]mesh.ElementType{
	1: mesh.Line,     // Edge
	2: mesh.Quad,     // Quadrilateral
	3: mesh.Triangle, // Triangle
	4: mesh.Hex,      // Brick
	5: mesh.Prism,    // Wedge
	6: mesh.Tet,      // Tetrahedron
	7: mesh.Pyramid,  // Pyramid
}

// gambitNodeOrder permutes Gambit node lists into the local numbering of the
// element templates. Bricks and pyramid bases are numbered lexicographically
// in Gambit, counter-clockwise here.
var gambitNodeOrder = map[mesh.ElementType][]int{
	mesh.Hex:     {0, 1, 3, 2, 4, 5, 7, 6},
	mesh.Pyramid: {0, 1, 3, 2, 4},
}

// ReadGambitNeutral reads a Gambit neutral file (.neu)
func ReadGambitNeutral(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	// Control variables from header
	var numnp, nelem, ndfcd int
	var title string

	// Read control info section
	for lineNo := 0; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 2 {
			title = line
		}
		if strings.Contains(line, "NUMNP") && strings.Contains(line, "NELEM") {
			// Next line contains the actual values
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected EOF after control header")
			}
			values := strings.Fields(scanner.Text())
			if len(values) < 5 {
				return nil, fmt.Errorf("control line has %d values, expected at least 5", len(values))
			}
			numnp, _ = strconv.Atoi(values[0]) // Number of nodes
			nelem, _ = strconv.Atoi(values[1]) // Number of elements
			ndfcd, _ = strconv.Atoi(values[4]) // Coordinate directions
			break
		}
	}
	if ndfcd < 1 || ndfcd > 3 {
		return nil, fmt.Errorf("unsupported coordinate dimension: NDFCD=%d", ndfcd)
	}

	var (
		coords [][]float64
		cells  []rawCell
	)

	// Continue reading sections, skipping groups and boundary conditions
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.Contains(line, "NODAL COORDINATES") {
			coords = make([][]float64, numnp)
			for i := 0; i < numnp; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}

				fields := strings.Fields(scanner.Text())
				if len(fields) < 1+ndfcd {
					return nil, fmt.Errorf("invalid node line: expected %d coordinates", ndfcd)
				}
				nodeID, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("invalid node id: %v", err)
				}
				// Gambit uses 1-based node IDs
				idx := nodeID - 1
				if idx < 0 || idx >= numnp {
					return nil, fmt.Errorf("node id %d out of range [1,%d]", nodeID, numnp)
				}
				xyz := make([]float64, ndfcd)
				for j := range xyz {
					if xyz[j], err = strconv.ParseFloat(fields[1+j], 64); err != nil {
						return nil, fmt.Errorf("invalid coordinate: %v", err)
					}
				}
				coords[idx] = xyz
			}

		} else if strings.Contains(line, "ELEMENTS/CELLS") {
			cells = make([]rawCell, 0, nelem)
			for i := 0; i < nelem; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}

				fields := strings.Fields(scanner.Text())
				if len(fields) < 3 {
					return nil, fmt.Errorf("invalid element line: %q", scanner.Text())
				}
				gambitType, _ := strconv.Atoi(fields[1])
				numNodes, _ := strconv.Atoi(fields[2])

				// Long node lists continue on the following lines
				for len(fields) < 3+numNodes {
					if !scanner.Scan() {
						return nil, fmt.Errorf("unexpected EOF reading element %s", fields[0])
					}
					fields = append(fields, strings.Fields(scanner.Text())...)
				}

				etype, ok := gambitTypes[gambitType]
				if !ok {
					return nil, fmt.Errorf("unknown element type: %d", gambitType)
				}
				if numNodes != etype.NumNodes() {
					return nil, fmt.Errorf("element type %v expects %d nodes, got %d",
						etype, etype.NumNodes(), numNodes)
				}

				nodes := make([]int, numNodes)
				for j := 0; j < numNodes; j++ {
					nodeID, err := strconv.Atoi(fields[3+j])
					if err != nil {
						return nil, fmt.Errorf("invalid node index: %v", err)
					}
					// Convert from 1-based to 0-based
					nodes[j] = nodeID - 1
				}
				if order, ok := gambitNodeOrder[etype]; ok {
					permuted := make([]int, numNodes)
					for j, o := range order {
						permuted[j] = nodes[o]
					}
					nodes = permuted
				}
				cells = append(cells, rawCell{etype: etype, nodes: nodes})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	for i, c := range coords {
		if c == nil {
			return nil, fmt.Errorf("node %d missing from NODAL COORDINATES", i+1)
		}
	}

	return assemble(title, coords, ndfcd, cells)
}
