package tuples

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/meshtopo/utils"
)

func TestFindCommonTuples(t *testing.T) {
	{ // Two coincident corners of a unit square
		tb, err := FromRows([][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}, {1, 0}})
		require.NoError(t, err)
		ct, err := FindCommonTuples(tb, 1.e-12)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{0, 4}, {1, 5}}, ct.Groups.Groups())
		assert.Equal(t, utils.Index{0, 1, 2, 3, 0, 1}, ct.Old2New)
		assert.Equal(t, 4, ct.NewCount)

		red, err := ct.Reduce(tb)
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, red.Rows())

		// A second pass finds nothing left to merge
		ct2, err := FindCommonTuples(red, 1.e-12)
		require.NoError(t, err)
		assert.Equal(t, 0, ct2.Groups.GroupCount())
		assert.Equal(t, utils.NewRange(0, 3), ct2.Old2New)
		assert.Equal(t, 4, ct2.NewCount)
	}
	{ // All distinct
		tb, _ := FromRows([][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
		ct, err := FindCommonTuples(tb, 0.1)
		require.NoError(t, err)
		assert.Equal(t, 0, ct.Groups.GroupCount())
		assert.Equal(t, utils.Index{0, 1, 2}, ct.Old2New)
		assert.Equal(t, 3, ct.NewCount)
	}
	{ // Empty table
		tb, _ := Empty(3)
		ct, err := FindCommonTuples(tb, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, ct.NewCount)
		assert.Equal(t, utils.Index{0}, ct.Groups.Offsets())
	}
	{ // Zero tolerance still merges exact copies
		tb, _ := FromRows([][]float64{{0.5}, {0.25}, {0.5}, {0.5}})
		ct, err := FindCommonTuples(tb, 0)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{0, 2, 3}}, ct.Groups.Groups())
		assert.Equal(t, utils.Index{0, 1, 0, 0}, ct.Old2New)
		assert.Equal(t, 2, ct.NewCount)
	}
	{ // Chains close transitively: 0~1 and 1~2 but 0 and 2 are 2 eps apart
		tb, _ := FromRows([][]float64{{0, 0}, {0.1, 0}, {0.2, 0}, {5, 5}})
		ct, err := FindCommonTuples(tb, 0.1+1.e-12)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{0, 1, 2}}, ct.Groups.Groups())
		assert.Equal(t, utils.Index{0, 0, 0, 1}, ct.Old2New)
	}
	{ // Every component has to be within tolerance
		tb, _ := FromRows([][]float64{{0, 0}, {0, 1}, {1.e-3, 0}})
		ct, err := FindCommonTuples(tb, 1.e-2)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{0, 2}}, ct.Groups.Groups())
		assert.Equal(t, utils.Index{0, 1, 0}, ct.Old2New)
	}
	{ // Invalid tolerances
		tb, _ := FromRows([][]float64{{0}})
		_, err := FindCommonTuples(tb, -1)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, err = FindCommonTuples(tb, math.NaN())
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	}
	{ // Non finite values only match themselves, NaN matches nothing
		tb, _ := FromRows([][]float64{{math.Inf(1)}, {math.NaN()}, {math.Inf(1)}, {math.NaN()}, {1}})
		ct, err := FindCommonTuples(tb, 0.5)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{0, 2}}, ct.Groups.Groups())
		assert.Equal(t, 4, ct.NewCount)
	}
}

// bruteForceGroups is the O(n^2) reference closure
func bruteForceGroups(tb *Table, eps float64) [][]int {
	ds := newDisjointSet(tb.Len())
	for i := 0; i < tb.Len(); i++ {
		for j := i + 1; j < tb.Len(); j++ {
			if withinTolerance(tb.Row(i), tb.Row(j), eps) {
				ds.union(i, j)
			}
		}
	}
	return ds.groups(2)
}

func TestFindCommonTuples_BruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for trial := 0; trial < 40; trial++ {
		var (
			arity = 1 + rnd.Intn(3)
			n     = rnd.Intn(200)
			eps   = 0.05 * rnd.Float64()
			data  = make([]float64, n*arity)
		)
		for i := range data {
			// A coarse lattice plus jitter produces plenty of near hits
			data[i] = float64(rnd.Intn(6))*0.1 + 0.02*rnd.Float64()
		}
		tb, err := NewTable(arity, data)
		require.NoError(t, err)
		ct, err := FindCommonTuples(tb, eps)
		require.NoError(t, err)
		assert.Equal(t, bruteForceGroups(tb, eps), ct.Groups.Groups(), "trial %d", trial)

		var removed int
		for _, size := range ct.Groups.GroupSizes() {
			removed += size - 1
		}
		assert.Equal(t, n-removed, ct.NewCount)

		// Every slot holds its first original tuple
		red, err := ct.Reduce(tb)
		require.NoError(t, err)
		assert.Equal(t, ct.NewCount, red.Len())
		for j := 0; j < red.Len(); j++ {
			first := ct.Old2New.FindIdsEqual(j)[0]
			assert.Equal(t, tb.Row(first), red.Row(j))
		}
	}
}

func TestFindCommonTuples_Idempotent(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	var (
		n    = 500
		rows = make([][]float64, 0, 2*n)
	)
	for i := 0; i < n; i++ {
		rows = append(rows, []float64{float64(i), float64(rnd.Intn(3)), 0})
	}
	// Duplicate every third row with a perturbation well inside eps
	for i := 0; i < n; i += 3 {
		r := append([]float64{}, rows[i]...)
		r[2] += 1.e-10
		rows = append(rows, r)
	}
	tb, err := FromRows(rows)
	require.NoError(t, err)
	ct, err := FindCommonTuples(tb, 1.e-8)
	require.NoError(t, err)
	assert.Equal(t, n, ct.NewCount)
	red, err := ct.Reduce(tb)
	require.NoError(t, err)
	ct2, err := FindCommonTuples(red, 1.e-8)
	require.NoError(t, err)
	assert.Equal(t, 0, ct2.Groups.GroupCount())
}

func TestFindCommonTuples_Deterministic(t *testing.T) {
	rnd := rand.New(rand.NewSource(17))
	// Large enough to be split over several partitions
	n := 4 * minTuplesPerPartition
	data := make([]float64, 3*n)
	for i := range data {
		data[i] = float64(rnd.Intn(20))
	}
	t1, err := NewTable(3, data)
	require.NoError(t, err)
	t2, err := NewTable(3, data)
	require.NoError(t, err)
	ct1, err := FindCommonTuples(t1, 0)
	require.NoError(t, err)
	ct2, err := FindCommonTuples(t2, 0)
	require.NoError(t, err)
	assert.True(t, ct1.Groups.Equal(ct2.Groups))
	assert.Equal(t, ct1.Old2New, ct2.Old2New)
	assert.Equal(t, ct1.NewCount, ct2.NewCount)
	r1, _ := ct1.Reduce(t1)
	r2, _ := ct2.Reduce(t2)
	assert.True(t, r1.Equal(r2))
}

func TestConvertIndexArrayToO2N(t *testing.T) {
	{
		o2n, newCount, err := ConvertIndexArrayToO2N(6, utils.FromGroups([][]int{{0, 4}, {1, 5}}))
		require.NoError(t, err)
		assert.Equal(t, utils.Index{0, 1, 2, 3, 0, 1}, o2n)
		assert.Equal(t, 4, newCount)
	}
	{ // A group whose first member comes late takes the slot of that member
		o2n, newCount, err := ConvertIndexArrayToO2N(5, utils.FromGroups([][]int{{2, 4}, {1, 3}}))
		require.NoError(t, err)
		assert.Equal(t, utils.Index{0, 1, 2, 1, 2}, o2n)
		assert.Equal(t, 3, newCount)
	}
	{ // No groups is the identity
		o2n, newCount, err := ConvertIndexArrayToO2N(3, utils.IndirectIndex{})
		require.NoError(t, err)
		assert.Equal(t, utils.Index{0, 1, 2}, o2n)
		assert.Equal(t, 3, newCount)
	}
	{ // Errors
		_, _, err := ConvertIndexArrayToO2N(3, utils.FromGroups([][]int{{0, 3}}))
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, _, err = ConvertIndexArrayToO2N(4, utils.FromGroups([][]int{{0, 1}, {1, 2}}))
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, _, err = ConvertIndexArrayToO2N(-1, utils.IndirectIndex{})
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	}
}

func TestRenumberAndReduce(t *testing.T) {
	tb, _ := FromRows([][]float64{{0}, {1}, {2}, {3}})
	{ // The first original index wins
		r, err := RenumberAndReduce(tb, utils.Index{1, 0, 1, 0}, 2)
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{1}, {0}}, r.Rows())
	}
	{ // Output never aliases the input
		r, err := RenumberAndReduce(tb, utils.Index{0, 1, 2, 3}, 4)
		require.NoError(t, err)
		require.NoError(t, r.Translate([]float64{10}))
		assert.Equal(t, 0., tb.At(0, 0))
	}
	{ // Errors
		_, err := RenumberAndReduce(tb, utils.Index{0, 1, 2}, 3)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, err = RenumberAndReduce(tb, utils.Index{0, 1, 2, 3}, 3)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, err = RenumberAndReduce(tb, utils.Index{0, 1, 2, 1}, 4)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, err = RenumberAndReduce(tb, utils.Index{0, 0, 0, -1}, 1)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, err = RenumberAndReduce(tb, utils.Index{0, 0, 0, 0}, -1)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	}
	{
		n2o, err := InvertO2N(utils.Index{2, 0, 1, 0, 2}, 3)
		require.NoError(t, err)
		assert.Equal(t, utils.Index{1, 2, 0}, n2o)
	}
}
