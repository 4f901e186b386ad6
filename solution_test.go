package pcgsat

import (
	"errors"
	"testing"
)

func TestSolutionLookupAndTrueAttributes(t *testing.T) {
	p := NewDefaultProblem()
	mustAttr(t, p, "a")
	mustAttr(t, p, "b")
	if err := p.Assert("a"); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	if err := p.Assert("!b"); err != nil {
		t.Fatalf("Assert: %v", err)
	}

	sol, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	v, err := sol.Lookup("a")
	if err != nil || !v {
		t.Fatalf("Lookup(a) = %v, %v; want true, nil", v, err)
	}
	v, err = sol.Lookup("b")
	if err != nil || v {
		t.Fatalf("Lookup(b) = %v, %v; want false, nil", v, err)
	}

	if ta := sol.TrueAttributes(); len(ta) != 1 || ta[0] != "a" {
		t.Fatalf("TrueAttributes() = %v, want [a]", ta)
	}
}

func TestSolutionLookupUndeclaredAttribute(t *testing.T) {
	p := NewDefaultProblem()
	mustAttr(t, p, "a")
	if err := p.Assert("a"); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	sol, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if _, err := sol.Lookup("neverDeclared"); !errors.Is(err, ErrReference) {
		t.Fatalf("Lookup(undeclared) = %v, want ErrReference", err)
	}
}

// TestSolutionStaleLookup covers spec.md §5: attributes declared after a
// solution was produced must be rejected, not silently resolved.
func TestSolutionStaleLookup(t *testing.T) {
	p := NewDefaultProblem()
	mustAttr(t, p, "a")
	if err := p.Assert("a"); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	sol, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	mustAttr(t, p, "late")
	if err := p.Assert("late"); err != nil {
		t.Fatalf("Assert: %v", err)
	}

	if _, err := sol.Lookup("late"); !errors.Is(err, ErrStaleLookup) {
		t.Fatalf("Lookup(late) on stale solution = %v, want ErrStaleLookup", err)
	}

	// The problem itself can still solve again and see "late".
	sol2, err := p.Solve()
	if err != nil {
		t.Fatalf("second Solve: %v", err)
	}
	v, err := sol2.Lookup("late")
	if err != nil || !v {
		t.Fatalf("Lookup(late) on fresh solution = %v, %v; want true, nil", v, err)
	}
}

// TestSolveIdempotentCheckpoint covers invariant 5 from spec.md §8: solving
// twice without intervening mutation does not duplicate completion clauses,
// and adding a constraint between solves truncates and regenerates them.
func TestSolveIdempotentCheckpoint(t *testing.T) {
	p := NewDefaultProblem()
	mustAttr(t, p, "a")
	mustAttr(t, p, "b")
	if err := p.Rule("a", []string{"b"}); err != nil {
		t.Fatalf("Rule: %v", err)
	}
	if err := p.Assert("b"); err != nil {
		t.Fatalf("Assert: %v", err)
	}

	if _, err := p.Solve(); err != nil {
		t.Fatalf("first Solve: %v", err)
	}
	firstLen := len(p.store.Clauses())

	if _, err := p.Solve(); err != nil {
		t.Fatalf("second Solve: %v", err)
	}
	if got := len(p.store.Clauses()); got != firstLen {
		t.Fatalf("clause count changed across idempotent solves: %d -> %d", firstLen, got)
	}

	mustAttr(t, p, "c")
	if err := p.Assert("c"); err != nil {
		t.Fatalf("Assert(c): %v", err)
	}
	sol, err := p.Solve()
	if err != nil {
		t.Fatalf("third Solve: %v", err)
	}
	for _, want := range []string{"a", "b", "c"} {
		if v, err := sol.Lookup(want); err != nil || !v {
			t.Fatalf("Lookup(%s) = %v, %v; want true, nil", want, v, err)
		}
	}
}
