package tuples

import (
	"fmt"

	"github.com/notargets/meshtopo/utils"
)

/*
ConvertIndexArrayToO2N turns groups of equivalent items, out of n items, into
an old-to-new map.

Items are visited in increasing original index. An item that has no new index
yet takes the next one, and so does every other member of its group, so each
group collapses onto the slot of its first member and the remaining items keep
their relative order.
*/
func ConvertIndexArrayToO2N(n int, groups utils.IndirectIndex) (o2n utils.Index, newCount int, err error) {
	if n < 0 {
		err = fmt.Errorf("%w: item count %d", utils.ErrInvalidArgument, n)
		return
	}
	groupOf := make(utils.Index, n)
	for i := range groupOf {
		groupOf[i] = -1
	}
	for g := 0; g < groups.GroupCount(); g++ {
		members, _ := groups.Group(g)
		for _, m := range members {
			switch {
			case m < 0 || m >= n:
				err = fmt.Errorf("%w: group %d references item %d, have %d items",
					utils.ErrInvalidArgument, g, m, n)
				return
			case groupOf[m] != -1 && groupOf[m] != g:
				err = fmt.Errorf("%w: item %d belongs to groups %d and %d",
					utils.ErrInvalidArgument, m, groupOf[m], g)
				return
			}
			groupOf[m] = g
		}
	}
	o2n = make(utils.Index, n)
	for i := range o2n {
		o2n[i] = -1
	}
	for i := 0; i < n; i++ {
		if o2n[i] != -1 {
			continue
		}
		if g := groupOf[i]; g == -1 {
			o2n[i] = newCount
		} else {
			members, _ := groups.Group(g)
			for _, m := range members {
				o2n[m] = newCount
			}
		}
		newCount++
	}
	return
}

/*
RenumberAndReduce builds a table of newCount tuples where slot j holds the
tuple of the first original index that old2new sends to j.
*/
func RenumberAndReduce(t *Table, old2new utils.Index, newCount int) (r *Table, err error) {
	switch {
	case len(old2new) != t.Len():
		err = fmt.Errorf("%w: old-to-new map has %d entries, table has %d tuples",
			utils.ErrInvalidArgument, len(old2new), t.Len())
		return
	case newCount < 0:
		err = fmt.Errorf("%w: new count %d", utils.ErrInvalidArgument, newCount)
		return
	}
	var n2o utils.Index
	if n2o, err = InvertO2N(old2new, newCount); err != nil {
		return
	}
	data := make([]float64, newCount*t.arity)
	for j, i := range n2o {
		copy(data[j*t.arity:(j+1)*t.arity], t.row(i))
	}
	r = &Table{arity: t.arity, data: data}
	return
}

// InvertO2N returns, for every new slot, the first original index mapped to it
func InvertO2N(old2new utils.Index, newCount int) (n2o utils.Index, err error) {
	if err = old2new.CheckRange(newCount); err != nil {
		return
	}
	n2o = make(utils.Index, newCount)
	for j := range n2o {
		n2o[j] = -1
	}
	for i, j := range old2new {
		if n2o[j] == -1 {
			n2o[j] = i
		}
	}
	for j, i := range n2o {
		if i == -1 {
			err = fmt.Errorf("%w: no original index maps to new slot %d",
				utils.ErrInvalidArgument, j)
			n2o = nil
			return
		}
	}
	return
}
