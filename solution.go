package pcgsat

import (
	"fmt"
	"sort"

	"github.com/wiretrail/pcgsat/internal/engine"
	"github.com/wiretrail/pcgsat/internal/registry"
	"github.com/wiretrail/pcgsat/internal/search"
)

// Solution is an immutable snapshot of one satisfying assignment, together
// with enough of the registry to resolve attribute names back to truth
// values. A Solution outlives later mutation of the Problem it came from,
// but attributes declared after the solve are unreachable through it.
type Solution struct {
	registry   *registry.Registry
	assignment engine.Assignment
	stats      search.Stats
}

// Solve runs the local search over the current constraints and returns one
// satisfying assignment. Calling Solve again without intervening constraint
// changes re-runs the search over the same encoding (no duplicate
// completion clauses are appended); adding a constraint first invalidates
// the previous completion clauses and they are regenerated.
func (p *Problem) Solve() (*Solution, error) {
	p.store.Checkpoint()

	searchOpts := search.Options{
		MaxIterations: p.options.MaxIterations,
		Seed:          p.options.Seed,
		HasSeed:       p.options.HasSeed,
		Trace:         p.options.Trace,
	}

	assignment, stats, err := search.Search(p.store.Clauses(), p.registry.NumAtoms(), searchOpts)
	p.lastStats = stats
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolveTimeout, err)
	}

	return &Solution{
		registry:   p.registry,
		assignment: assignment,
		stats:      stats,
	}, nil
}

// Iterations reports how many local-search iterations the solve took.
func (s *Solution) Iterations() int {
	return s.stats.Iterations
}

// TrueAttributes returns the names of every non-anonymous attribute the
// solution assigns true, sorted lexicographically.
func (s *Solution) TrueAttributes() []string {
	var out []string
	for id := engine.AtomID(1); int(id) <= s.assignment.NumAtoms(); id++ {
		if s.registry.IsAnonymous(id) {
			continue
		}
		if !s.assignment.Value(id) {
			continue
		}
		out = append(out, s.registry.Name(id))
	}
	sort.Strings(out)
	return out
}

// Lookup returns the truth value the solution assigns to attribute. It
// fails with ErrReference if attribute was never declared, or with
// ErrStaleLookup if attribute was declared only after this solution was
// produced.
func (s *Solution) Lookup(attribute string) (bool, error) {
	lit, err := s.registry.Resolve(attribute)
	if err != nil {
		return false, wrapRegistryErr(err)
	}

	if int(lit.Atom()) > s.assignment.NumAtoms() {
		return false, fmt.Errorf("attribute %q did not exist when this solution was produced: %w", attribute, ErrStaleLookup)
	}

	return s.assignment.LitValue(lit), nil
}
