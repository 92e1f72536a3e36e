package tuples

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/notargets/meshtopo/utils"
)

// Below this many tuples per partition the sweep stays on one goroutine
const minTuplesPerPartition = 4096

// CommonTuples is the outcome of a coincident tuple search
type CommonTuples struct {
	// Groups lists, per equivalence class of two or more tuples, the original
	// indices in increasing order. Classes are ordered by their first member.
	Groups utils.IndirectIndex
	// Old2New maps every original tuple to its slot after deduplication
	Old2New  utils.Index
	NewCount int
}

/*
FindCommonTuples finds the tuples of t that coincide within the absolute
tolerance eps.

Two tuples are related when every component pair satisfies |a_k - b_k| <= eps.
The relation is closed transitively, so a chain of tuples that are pairwise
close only to their neighbours ends up in one group. Singletons are not
reported in Groups but still receive a slot in Old2New.

Tuples are swept in order of the component with the largest spread; only
tuples whose swept component lies within eps of each other are compared.
*/
func FindCommonTuples(t *Table, eps float64) (ct *CommonTuples, err error) {
	if eps < 0 || math.IsNaN(eps) {
		err = fmt.Errorf("%w: tolerance %v, must be >= 0", utils.ErrInvalidArgument, eps)
		return
	}
	var (
		n     = t.Len()
		pairs = candidatePairs(t, eps)
		ds    = newDisjointSet(n)
	)
	for _, p := range pairs {
		ds.union(p[0], p[1])
	}
	ct = &CommonTuples{
		Groups: utils.FromGroups(ds.groups(2)),
	}
	if ct.Old2New, ct.NewCount, err = ConvertIndexArrayToO2N(n, ct.Groups); err != nil {
		ct = nil
	}
	return
}

// Reduce applies the renumbering to a table of the same length as the one
// searched, keeping the first tuple of every group
func (ct *CommonTuples) Reduce(t *Table) (*Table, error) {
	return RenumberAndReduce(t, ct.Old2New, ct.NewCount)
}

func (ct *CommonTuples) String() string {
	return fmt.Sprintf("groups: %s\nold2new: %v\nnew count: %d",
		ct.Groups, ct.Old2New, ct.NewCount)
}

// sweepComponent picks the component with the widest finite range
func sweepComponent(t *Table) (comp int) {
	var widest = -1.
	for k := 0; k < t.arity; k++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < t.Len(); i++ {
			v := t.At(i, k)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		if spread := hi - lo; spread > widest {
			widest, comp = spread, k
		}
	}
	return
}

// candidatePairs returns every pair (i, j), i < j, of tuples that are within
// eps on all components. Pairs are grouped by sweep partition, in partition
// order.
func candidatePairs(t *Table, eps float64) (pairs [][2]int) {
	var (
		n     = t.Len()
		comp  = sweepComponent(t)
		order = make([]int, n)
		key   = make([]float64, n)
	)
	if n < 2 {
		return
	}
	for i := range order {
		order[i] = i
		key[i] = t.At(i, comp)
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		va, vb := key[ia], key[ib]
		nanA, nanB := math.IsNaN(va), math.IsNaN(vb)
		switch {
		case nanA != nanB:
			return nanB
		case !nanA && va != vb:
			return va < vb
		}
		return ia < ib
	})
	var (
		pm        = utils.NewPartitionMap(utils.ParallelDegreeFor(n, minTuplesPerPartition), n)
		partPairs = make([][][2]int, pm.ParallelDegree)
	)
	pm.Run(func(np, kMin, kMax int) {
		var found [][2]int
		for a := kMin; a < kMax; a++ {
			ia := order[a]
			for b := a + 1; b < n; b++ {
				ib := order[b]
				if !(key[ib] == key[ia] || key[ib]-key[ia] <= eps) {
					break
				}
				if withinTolerance(t.row(ia), t.row(ib), eps) {
					if ia < ib {
						found = append(found, [2]int{ia, ib})
					} else {
						found = append(found, [2]int{ib, ia})
					}
				}
			}
		}
		partPairs[np] = found
	})
	for _, found := range partPairs {
		pairs = append(pairs, found...)
	}
	return
}

func withinTolerance(a, b []float64, eps float64) bool {
	for k := range a {
		if !scalar.EqualWithinAbs(a[k], b[k], eps) {
			return false
		}
	}
	return true
}

// disjointSet is a union-find forest with path compression and union by rank
type disjointSet struct {
	parent, rank []int
}

func newDisjointSet(n int) (ds *disjointSet) {
	ds = &disjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return
}

func (ds *disjointSet) find(u int) int {
	root := u
	for ds.parent[root] != root {
		root = ds.parent[root]
	}
	for ds.parent[u] != root {
		ds.parent[u], u = root, ds.parent[u]
	}
	return root
}

func (ds *disjointSet) union(u, v int) {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return
	}
	switch {
	case ds.rank[ru] < ds.rank[rv]:
		ds.parent[ru] = rv
	case ds.rank[ru] > ds.rank[rv]:
		ds.parent[rv] = ru
	default:
		ds.parent[rv] = ru
		ds.rank[ru]++
	}
}

// groups lists the members of every set holding at least minSize elements,
// members ascending, sets ordered by their smallest member
func (ds *disjointSet) groups(minSize int) (groups [][]int) {
	var (
		n       = len(ds.parent)
		slot    = make([]int, n)
		members [][]int
	)
	for i := range slot {
		slot[i] = -1
	}
	for i := 0; i < n; i++ {
		r := ds.find(i)
		if slot[r] == -1 {
			slot[r] = len(members)
			members = append(members, nil)
		}
		members[slot[r]] = append(members[slot[r]], i)
	}
	groups = make([][]int, 0)
	for _, m := range members {
		if len(m) >= minSize {
			groups = append(groups, m)
		}
	}
	return
}
