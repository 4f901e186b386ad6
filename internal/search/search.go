// Package search implements the stochastic local search engine: a
// GSAT/WalkSAT-family procedure with adaptive noise that finds a total
// assignment satisfying every generalized-cardinality clause in a problem.
package search

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/wiretrail/pcgsat/internal/engine"
)

// Failsafe is the fixed iteration cap beyond which Search gives up and
// returns ErrTimeout. Unsatisfiability of the overall conjunction is not
// distinguishable from a timeout (spec.md §7).
const Failsafe = 50_000

// ErrTimeout is returned when Search reaches the failsafe without finding a
// satisfying assignment.
var ErrTimeout = errors.New("solve timeout: failsafe iteration cap reached")

// Options configures one Search call.
type Options struct {
	// MaxIterations overrides Failsafe. Zero means Failsafe.
	MaxIterations int
	// Seed, if HasSeed is true, makes the search deterministic, for
	// reproducible test runs and the CLI's -seed flag.
	Seed    int64
	HasSeed bool
	// Trace, if non-nil, receives periodic progress lines the way
	// Solver.printSearchStats writes to stdout in the teacher.
	Trace io.Writer
}

// DefaultOptions is the zero-configuration default: failsafe cap, random
// seed, no trace output.
var DefaultOptions = Options{MaxIterations: Failsafe}

// Stats reports what happened during a Search call.
type Stats struct {
	Iterations int
	FinalNoise float64
}

// Search runs the WalkSAT-family loop over clauses, which range over atoms
// 1..numAtoms (atom 0 is engine.TrueAtom and is never a flip candidate).
func Search(clauses []engine.Clause, numAtoms int, opts Options) (engine.Assignment, Stats, error) {
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = Failsafe
	}

	var rng *rand.Rand
	if opts.HasSeed {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	assignment := randomAssignment(numAtoms, rng)
	scores, satisfied := computeScores(clauses, assignment, numAtoms)
	if satisfied == len(clauses) {
		return assignment, Stats{}, nil
	}

	w := windowSize(len(clauses))
	window := make([]int, w)
	for i := range window {
		window[i] = -1 // sentinel: never looks stalled before the window fills
	}

	noise := 0.0
	satRatio := newEMA(0.98)

	for iter := 0; iter < maxIter; iter++ {
		var flip int
		if rng.Float64() >= noise {
			candidates := bestAtoms(scores, numAtoms)
			flip = candidates[rng.Intn(len(candidates))]
		} else {
			flip = 1 + rng.Intn(numAtoms)
		}
		assignment.Flip(engine.AtomID(flip))

		stalled := true
		for _, v := range window {
			if v < satisfied {
				stalled = false
				break
			}
		}
		if stalled {
			noise += 0.2 * (1 - noise)
		} else {
			noise *= 0.95
		}
		window[iter%w] = satisfied

		scores, satisfied = computeScores(clauses, assignment, numAtoms)
		satRatio.add(float64(satisfied) / float64(len(clauses)))

		if opts.Trace != nil && iter%1000 == 0 {
			fmt.Fprintf(opts.Trace, "c iter %8d  satisfied %d/%d  ema %.4f  noise %.4f\n",
				iter, satisfied, len(clauses), satRatio.val(), noise)
		}

		if satisfied == len(clauses) {
			return assignment, Stats{Iterations: iter + 1, FinalNoise: noise}, nil
		}
	}

	return engine.Assignment{}, Stats{Iterations: maxIter, FinalNoise: noise}, ErrTimeout
}

func windowSize(numClauses int) int {
	w := int(math.Ceil(float64(numClauses) / 6))
	if w < 3 {
		w = 3
	}
	return w
}

func randomAssignment(numAtoms int, rng *rand.Rand) engine.Assignment {
	a := engine.NewAssignment(numAtoms)
	for i := 1; i <= numAtoms; i++ {
		a.Set(engine.AtomID(i), rng.Intn(2) == 1)
	}
	return a
}

// computeScores performs the scoring pass described in spec.md §4.4: one
// pass over all clauses computing the number of currently satisfied clauses
// and, per atom, the net benefit of flipping it.
func computeScores(clauses []engine.Clause, a engine.Assignment, numAtoms int) ([]float64, int) {
	scores := make([]float64, numAtoms+1)
	satisfied := 0

	for _, c := range clauses {
		n := c.SatisfiedCount(a)

		switch {
		case n >= c.Lo && n <= c.Hi:
			satisfied++
			if n == c.Lo {
				for _, l := range c.Literals {
					if a.LitValue(l) {
						scores[l.Atom()]--
					}
				}
			}
			if n == c.Hi {
				for _, l := range c.Literals {
					if !a.LitValue(l) {
						scores[l.Atom()]--
					}
				}
			}
		case n == c.Lo-1:
			for _, l := range c.Literals {
				if !a.LitValue(l) {
					scores[l.Atom()]++
				}
			}
		case n == c.Hi+1:
			for _, l := range c.Literals {
				if a.LitValue(l) {
					scores[l.Atom()]++
				}
			}
		default:
			// Violated by two or more: no single flip helps, no
			// contribution.
		}
	}

	return scores, satisfied
}
