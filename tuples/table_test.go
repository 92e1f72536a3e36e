package tuples

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/meshtopo/utils"
)

func TestTable(t *testing.T) {
	{ // Construction
		_, err := NewTable(0, nil)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, err = NewTable(2, []float64{1, 2, 3})
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, err = FromRows([][]float64{{1, 2}, {3}})
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, err = FromRows(nil)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)

		data := []float64{0, 1, 2, 3, 4, 5}
		tb, err := NewTable(3, data)
		require.NoError(t, err)
		data[0] = 99
		assert.Equal(t, 0., tb.At(0, 0))
		assert.Equal(t, 2, tb.Len())
		assert.Equal(t, 3, tb.Arity())
		assert.Equal(t, []float64{3, 4, 5}, tb.Row(1))
		assert.Equal(t, [][]float64{{0, 1, 2}, {3, 4, 5}}, tb.Rows())

		r := tb.Row(1)
		r[0] = -1
		assert.Equal(t, 3., tb.At(1, 0))

		cl := tb.Clone()
		assert.True(t, cl.Equal(tb))
		require.NoError(t, cl.Append(6, 7, 8))
		assert.False(t, cl.Equal(tb))
		assert.Equal(t, 3, cl.Len())
		assert.ErrorIs(t, cl.Append(1, 2), utils.ErrInvalidArgument)
	}
	{ // Aggregate keeps the order of its inputs
		a, _ := FromRows([][]float64{{0, 0}, {1, 0}})
		b, _ := FromRows([][]float64{{2, 0}})
		c, err := Aggregate(a, b)
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{0, 0}, {1, 0}, {2, 0}}, c.Rows())
		d, _ := FromRows([][]float64{{2, 0, 0}})
		_, err = Aggregate(a, d)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
		_, err = Aggregate()
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	}
	{ // Geometric edits
		tb, _ := FromRows([][]float64{{0, 0}, {1, 0}, {1, 1}})
		require.NoError(t, tb.Translate([]float64{1, 2}))
		assert.Equal(t, [][]float64{{1, 2}, {2, 2}, {2, 3}}, tb.Rows())
		require.NoError(t, tb.Scale([]float64{1, 2}, 2))
		assert.Equal(t, [][]float64{{1, 2}, {3, 2}, {3, 4}}, tb.Rows())
		assert.ErrorIs(t, tb.Translate([]float64{1}), utils.ErrInvalidArgument)
		assert.ErrorIs(t, tb.Scale([]float64{1}, 2), utils.ErrInvalidArgument)

		mag := tb.Magnitude()
		assert.InDeltaSlice(t, []float64{math.Sqrt(5), math.Sqrt(13), 5}, mag, 1.e-14)
		assert.Equal(t, [][2]float64{{1, 3}, {2, 4}}, tb.MinMaxPerComponent())
	}
	{ // Bitwise equality separates signed zeros
		a, _ := FromRows([][]float64{{0}})
		b, _ := FromRows([][]float64{{math.Copysign(0, -1)}})
		assert.False(t, a.Equal(b))
		assert.False(t, a.Equal(nil))
	}
	{ // Empty table bounds are inverted infinities
		tb, _ := Empty(2)
		assert.Equal(t, 0, tb.Len())
		b := tb.MinMaxPerComponent()
		assert.True(t, math.IsInf(b[0][0], 1))
		assert.True(t, math.IsInf(b[1][1], -1))
	}
}
