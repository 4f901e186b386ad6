package engine

import "testing"

func TestClauseSatisfied(t *testing.T) {
	a := NewAssignment(3)
	a.Set(1, true)
	a.Set(2, false)
	a.Set(3, true)

	c := NewClause(1, 2, []Literal{Lit(1), Lit(2), Lit(3)})
	if got, want := c.SatisfiedCount(a), 2; got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
	if !c.Satisfied(a) {
		t.Fatalf("expected clause to be satisfied")
	}

	c2 := NewClause(0, 0, []Literal{Lit(1)})
	if c2.Satisfied(a) {
		t.Fatalf("expected clause to be violated: atom 1 is true but band is [0,0]")
	}
}

func TestAssignmentTrueAtomInvariant(t *testing.T) {
	a := NewAssignment(5)
	if !a.Value(TrueAtom) {
		t.Fatalf("TrueAtom must start true")
	}
	a.Set(TrueAtom, false)
	if !a.Value(TrueAtom) {
		t.Fatalf("TrueAtom must be unassignable")
	}
	a.Flip(TrueAtom)
	if !a.Value(TrueAtom) {
		t.Fatalf("TrueAtom must not be flippable")
	}
}

func TestLiteralNegate(t *testing.T) {
	l := Lit(4)
	if !l.IsPositive() {
		t.Fatalf("expected positive literal")
	}
	n := l.Negate()
	if n.IsPositive() {
		t.Fatalf("expected negative literal")
	}
	if n.Atom() != AtomID(4) {
		t.Fatalf("got atom %d, want 4", n.Atom())
	}
}
