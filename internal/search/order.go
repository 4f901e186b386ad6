package search

import "github.com/rhartert/yagh"

// bestAtoms returns every atom in 1..numAtoms whose score equals
// max(actual highest score, 0) — spec.md §4.4's documented baseline
// behavior, where an untouched atom (score 0) is a legal suggestion
// whenever no atom scores strictly higher. The highest score is found via a
// freshly built yagh.IntMap keyed by negated score — the same
// min-heap-as-max-selector trick internal/sat/ordering.go uses for variable
// activity (rebuilt each call, the way VarOrder.UpdateAll rebuilds the
// whole heap rather than maintaining it incrementally) — then the tie set
// is re-derived from the scores slice, since the baseline comparison needs
// the whole set, not just the heap's extremal element.
//
// When every atom scores strictly below 0 (a contradictory pair of
// constraints can keep every flip net-negative forever), the 0 baseline is
// uninhabited and the tie set falls back to the true maximum score instead,
// so the caller always has at least one candidate to flip.
//
// scores is indexed by atom id; scores[0] (TrueAtom) is ignored since it is
// never a flip candidate.
func bestAtoms(scores []float64, numAtoms int) []int {
	heap := yagh.New[float64](numAtoms + 1)
	for a := 1; a <= numAtoms; a++ {
		heap.Put(a, -scores[a])
	}

	actualMax := scores[1]
	if next, ok := heap.Pop(); ok {
		actualMax = scores[next.Elem]
	}

	best := actualMax
	if best < 0 {
		best = 0
	}

	ties := tiesAt(scores, numAtoms, best)
	if len(ties) == 0 {
		ties = tiesAt(scores, numAtoms, actualMax)
	}
	return ties
}

func tiesAt(scores []float64, numAtoms int, value float64) []int {
	var ties []int
	for a := 1; a <= numAtoms; a++ {
		if scores[a] == value {
			ties = append(ties, a)
		}
	}
	return ties
}
