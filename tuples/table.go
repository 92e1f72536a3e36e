// Package tuples holds fixed-arity numeric tuple tables (mesh node
// coordinates) and the tolerance based search for coincident tuples.
package tuples

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/meshtopo/utils"
)

// Table is an ordered sequence of tuples sharing one arity, stored row major
type Table struct {
	arity int
	data  []float64
}

// NewTable copies data, which must hold a whole number of tuples
func NewTable(arity int, data []float64) (t *Table, err error) {
	if arity < 1 {
		err = fmt.Errorf("%w: arity %d, must be >= 1", utils.ErrInvalidArgument, arity)
		return
	}
	if len(data)%arity != 0 {
		err = fmt.Errorf("%w: %d values do not divide into tuples of %d",
			utils.ErrInvalidArgument, len(data), arity)
		return
	}
	t = &Table{arity: arity, data: make([]float64, len(data))}
	copy(t.data, data)
	return
}

// FromRows builds a table from one slice per tuple
func FromRows(rows [][]float64) (t *Table, err error) {
	if len(rows) == 0 {
		err = fmt.Errorf("%w: no rows to infer the arity from", utils.ErrInvalidArgument)
		return
	}
	arity := len(rows[0])
	data := make([]float64, 0, arity*len(rows))
	for i, row := range rows {
		if len(row) != arity {
			err = fmt.Errorf("%w: row %d has %d components, expected %d",
				utils.ErrInvalidArgument, i, len(row), arity)
			return
		}
		data = append(data, row...)
	}
	return NewTable(arity, data)
}

// Empty returns a table of the given arity holding no tuples
func Empty(arity int) (t *Table, err error) {
	return NewTable(arity, nil)
}

func (t *Table) Len() int   { return len(t.data) / t.arity }
func (t *Table) Arity() int { return t.arity }

func (t *Table) At(i, k int) float64 { return t.data[i*t.arity+k] }

// Row returns a copy of tuple i
func (t *Table) Row(i int) (row []float64) {
	row = make([]float64, t.arity)
	copy(row, t.data[i*t.arity:(i+1)*t.arity])
	return
}

// row aliases the storage of tuple i, for read-only use inside the package
func (t *Table) row(i int) []float64 {
	return t.data[i*t.arity : (i+1)*t.arity]
}

// Data returns a copy of the flat row major storage
func (t *Table) Data() (data []float64) {
	data = make([]float64, len(t.data))
	copy(data, t.data)
	return
}

func (t *Table) Rows() (rows [][]float64) {
	rows = make([][]float64, t.Len())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return
}

func (t *Table) Clone() *Table {
	return &Table{arity: t.arity, data: t.Data()}
}

// Append adds one tuple at the end
func (t *Table) Append(row ...float64) (err error) {
	if len(row) != t.arity {
		err = fmt.Errorf("%w: tuple has %d components, table arity is %d",
			utils.ErrInvalidArgument, len(row), t.arity)
		return
	}
	t.data = append(t.data, row...)
	return
}

// Aggregate concatenates tables of equal arity, preserving their order
func Aggregate(tables ...*Table) (t *Table, err error) {
	if len(tables) == 0 {
		err = fmt.Errorf("%w: nothing to aggregate", utils.ErrInvalidArgument)
		return
	}
	arity := tables[0].arity
	var total int
	for i, tb := range tables {
		if tb.arity != arity {
			err = fmt.Errorf("%w: table %d has arity %d, expected %d",
				utils.ErrInvalidArgument, i, tb.arity, arity)
			return
		}
		total += len(tb.data)
	}
	t = &Table{arity: arity, data: make([]float64, 0, total)}
	for _, tb := range tables {
		t.data = append(t.data, tb.data...)
	}
	return
}

// Translate adds vec to every tuple in place
func (t *Table) Translate(vec []float64) (err error) {
	if len(vec) != t.arity {
		err = fmt.Errorf("%w: translation has %d components, table arity is %d",
			utils.ErrInvalidArgument, len(vec), t.arity)
		return
	}
	for i := 0; i < t.Len(); i++ {
		floats.Add(t.row(i), vec)
	}
	return
}

// Scale applies a homothety of the given factor about center, in place
func (t *Table) Scale(center []float64, factor float64) (err error) {
	if len(center) != t.arity {
		err = fmt.Errorf("%w: center has %d components, table arity is %d",
			utils.ErrInvalidArgument, len(center), t.arity)
		return
	}
	for i := 0; i < t.Len(); i++ {
		r := t.row(i)
		floats.Sub(r, center)
		floats.Scale(factor, r)
		floats.Add(r, center)
	}
	return
}

// Magnitude returns the Euclidean norm of every tuple
func (t *Table) Magnitude() (mag []float64) {
	mag = make([]float64, t.Len())
	for i := range mag {
		mag[i] = floats.Norm(t.row(i), 2)
	}
	return
}

// MinMaxPerComponent returns the bounding box of the table, [k][0] is the
// minimum and [k][1] the maximum of component k
func (t *Table) MinMaxPerComponent() (bounds [][2]float64) {
	bounds = make([][2]float64, t.arity)
	for k := range bounds {
		bounds[k] = [2]float64{math.Inf(1), math.Inf(-1)}
	}
	col := make([]float64, t.Len())
	for k := 0; k < t.arity; k++ {
		if len(col) == 0 {
			break
		}
		for i := range col {
			col[i] = t.At(i, k)
		}
		bounds[k] = [2]float64{floats.Min(col), floats.Max(col)}
	}
	return
}

// Equal reports bitwise equality of two tables
func (t *Table) Equal(other *Table) bool {
	if other == nil || t.arity != other.arity || len(t.data) != len(other.data) {
		return false
	}
	for i, v := range t.data {
		if math.Float64bits(v) != math.Float64bits(other.data[i]) {
			return false
		}
	}
	return true
}

func (t *Table) String() string {
	return fmt.Sprintf("Table[%d x %d] %v", t.Len(), t.arity, t.Rows())
}
