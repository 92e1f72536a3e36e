package utils

import (
	"fmt"
)

// Index is an ordered sequence of integer identifiers (cell ids, node ids,
// old-to-new maps).
type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size < 0 {
		size = 0
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

func (I Index) Subset(J Index) (r Index) {
	r = make(Index, len(J))
	for j, val := range J {
		r[j] = I[val]
	}
	return
}

// Max returns the largest value, or -1 for an empty index
func (I Index) Max() (imax int) {
	imax = -1
	for _, val := range I {
		if val > imax {
			imax = val
		}
	}
	return
}

// DeltaShift returns the first difference r[i] = I[i+1]-I[i], one shorter
// than the receiver. Applied to the offsets of an indirect index it yields the
// group sizes.
func (I Index) DeltaShift() (r Index) {
	if len(I) < 2 {
		return Index{}
	}
	r = make(Index, len(I)-1)
	for i := range r {
		r[i] = I[i+1] - I[i]
	}
	return
}

// FindIds returns the positions i where (I[i] op val) holds
func (I Index) FindIds(op EvalOp, val int) (J Index) {
	J = Index{}
	for i, ival := range I {
		var hit bool
		switch op {
		case Equal:
			hit = ival == val
		case NotEqual:
			hit = ival != val
		case Less:
			hit = ival < val
		case Greater:
			hit = ival > val
		case LessOrEqual:
			hit = ival <= val
		case GreaterOrEqual:
			hit = ival >= val
		}
		if hit {
			J = append(J, i)
		}
	}
	return
}

func (I Index) FindIdsEqual(val int) Index { return I.FindIds(Equal, val) }

// FindIdsInRange returns the positions whose value lies in [vmin, vmax)
func (I Index) FindIdsInRange(vmin, vmax int) (J Index) {
	J = Index{}
	for i, val := range I {
		if val >= vmin && val < vmax {
			J = append(J, i)
		}
	}
	return
}

// BuildComplement returns the sorted ids of [0,n) absent from the receiver
func (I Index) BuildComplement(n int) (J Index, err error) {
	present := make([]bool, n)
	for _, val := range I {
		if val < 0 || val >= n {
			err = fmt.Errorf("%w: id %d out of range [0,%d)", ErrInvalidArgument, val, n)
			return
		}
		present[val] = true
	}
	J = Index{}
	for i, p := range present {
		if !p {
			J = append(J, i)
		}
	}
	return
}

// CheckRange verifies every value lies in [0, n)
func (I Index) CheckRange(n int) (err error) {
	for i, val := range I {
		if val < 0 || val >= n {
			err = fmt.Errorf("%w: value %d at position %d out of range [0,%d)",
				ErrInvalidArgument, val, i, n)
			return
		}
	}
	return
}
