package utils

import (
	"github.com/james-bowman/sparse"
)

// ToCSR exposes the container as an incidence matrix with one row per group
// and nCols columns. Repeated references within a group accumulate into one
// entry. An empty container gives a matrix without rows.
func (ii IndirectIndex) ToCSR(nCols int) (m *sparse.CSR, err error) {
	if err = ii.payload.CheckRange(nCols); err != nil {
		return
	}
	var (
		nr   = ii.GroupCount()
		ia   = make([]int, nr+1)
		ja   = make([]int, 0, len(ii.payload))
		data = make([]float64, 0, len(ii.payload))
	)
	for i := 0; i < nr; i++ {
		rowStart := len(ja)
		for _, col := range ii.payload[ii.offsets[i]:ii.offsets[i+1]] {
			var found bool
			for p := rowStart; p < len(ja); p++ {
				if ja[p] == col {
					data[p]++
					found = true
					break
				}
			}
			if !found {
				ja = append(ja, col)
				data = append(data, 1)
			}
		}
		sortRow(ja[rowStart:], data[rowStart:])
		ia[i+1] = len(ja)
	}
	m = sparse.NewCSR(nr, nCols, ia, ja, data)
	return
}

// sortRow orders one CSR row by column index, carrying the values along
func sortRow(cols []int, vals []float64) {
	for i := 1; i < len(cols); i++ {
		for j := i; j > 0 && cols[j] < cols[j-1]; j-- {
			cols[j], cols[j-1] = cols[j-1], cols[j]
			vals[j], vals[j-1] = vals[j-1], vals[j]
		}
	}
}
