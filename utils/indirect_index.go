package utils

import (
	"fmt"
)

/*
IndirectIndex partitions a flat payload into contiguous, variably sized,
ordered groups. Group i occupies Payload[Offsets[i]:Offsets[i+1]].

The trailing offset is always present, so a container with no groups has
Offsets = [0]. The zero value behaves as an empty container.
*/
type IndirectIndex struct {
	payload Index
	offsets Index
}

// NewIndirectIndex validates and copies the supplied payload and offsets
func NewIndirectIndex(payload, offsets Index) (ii IndirectIndex, err error) {
	switch {
	case len(offsets) == 0:
		err = fmt.Errorf("%w: offsets must hold at least the trailing entry", ErrInvalidArgument)
		return
	case offsets[0] != 0:
		err = fmt.Errorf("%w: offsets[0] = %d, must be 0", ErrInvalidArgument, offsets[0])
		return
	case offsets[len(offsets)-1] != len(payload):
		err = fmt.Errorf("%w: last offset %d does not match payload length %d",
			ErrInvalidArgument, offsets[len(offsets)-1], len(payload))
		return
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			err = fmt.Errorf("%w: offsets decrease at position %d (%d < %d)",
				ErrInvalidArgument, i, offsets[i], offsets[i-1])
			return
		}
	}
	ii = IndirectIndex{
		payload: payload.Copy(),
		offsets: offsets.Copy(),
	}
	return
}

// FromGroups concatenates the groups into a payload and computes the offsets
func FromGroups(groups [][]int) (ii IndirectIndex) {
	var total int
	for _, g := range groups {
		total += len(g)
	}
	ii.payload = make(Index, 0, total)
	ii.offsets = make(Index, len(groups)+1)
	for i, g := range groups {
		ii.payload = append(ii.payload, g...)
		ii.offsets[i+1] = len(ii.payload)
	}
	return
}

func (ii IndirectIndex) GroupCount() int {
	if len(ii.offsets) == 0 {
		return 0
	}
	return len(ii.offsets) - 1
}

func (ii IndirectIndex) PayloadLen() int { return len(ii.payload) }

// Group returns a copy of group i
func (ii IndirectIndex) Group(i int) (g Index, err error) {
	if i < 0 || i >= ii.GroupCount() {
		err = fmt.Errorf("%w: group %d, have %d groups", ErrOutOfRange, i, ii.GroupCount())
		return
	}
	g = ii.payload[ii.offsets[i]:ii.offsets[i+1]].Copy()
	return
}

// GroupSize returns the size of group i, or 0 when i is out of range
func (ii IndirectIndex) GroupSize(i int) int {
	if i < 0 || i >= ii.GroupCount() {
		return 0
	}
	return ii.offsets[i+1] - ii.offsets[i]
}

// GroupSizes is the first difference of the offsets
func (ii IndirectIndex) GroupSizes() Index {
	if len(ii.offsets) == 0 {
		return Index{}
	}
	return ii.offsets.DeltaShift()
}

func (ii IndirectIndex) Payload() Index { return ii.payload.Copy() }

func (ii IndirectIndex) Offsets() Index {
	if len(ii.offsets) == 0 {
		return Index{0}
	}
	return ii.offsets.Copy()
}

// Groups expands the container into one slice per group
func (ii IndirectIndex) Groups() (groups [][]int) {
	groups = make([][]int, ii.GroupCount())
	for i := range groups {
		groups[i] = ii.payload[ii.offsets[i]:ii.offsets[i+1]].Copy()
	}
	return
}

// Select builds a new container holding the chosen groups, in the order given
func (ii IndirectIndex) Select(ids Index) (r IndirectIndex, err error) {
	if err = ids.CheckRange(ii.GroupCount()); err != nil {
		return
	}
	groups := make([][]int, len(ids))
	for j, id := range ids {
		groups[j] = ii.payload[ii.offsets[id]:ii.offsets[id+1]]
	}
	r = FromGroups(groups)
	return
}

/*
Invert builds the reverse incidence: group j of the result lists, in increasing
order, every group i of the receiver whose payload contains j. A group that
references j twice appears twice. nTargets is the number of result groups and
every payload value must lie in [0, nTargets).
*/
func (ii IndirectIndex) Invert(nTargets int) (r IndirectIndex, err error) {
	if err = ii.payload.CheckRange(nTargets); err != nil {
		return
	}
	counts := make(Index, nTargets+1)
	for _, val := range ii.payload {
		counts[val+1]++
	}
	for j := 1; j <= nTargets; j++ {
		counts[j] += counts[j-1]
	}
	r.offsets = counts.Copy()
	r.payload = make(Index, len(ii.payload))
	fill := counts[:nTargets]
	for i := 0; i < ii.GroupCount(); i++ {
		for _, val := range ii.payload[ii.offsets[i]:ii.offsets[i+1]] {
			r.payload[fill[val]] = i
			fill[val]++
		}
	}
	return
}

func (ii IndirectIndex) Equal(other IndirectIndex) bool {
	if ii.GroupCount() != other.GroupCount() || len(ii.payload) != len(other.payload) {
		return false
	}
	for i, val := range ii.payload {
		if other.payload[i] != val {
			return false
		}
	}
	a, b := ii.Offsets(), other.Offsets()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (ii IndirectIndex) String() string {
	return fmt.Sprintf("payload = %v, offsets = %v", ii.payload, ii.Offsets())
}
