package engine

import "testing"

func TestStoreCheckpointTruncatesOnMutation(t *testing.T) {
	s := NewStore()
	s.AddClause(NewClause(1, 1, []Literal{Lit(1)}))
	s.AddRule(AtomID(2), Lit(1))

	s.Checkpoint()
	if got, want := len(s.Clauses()), 2; got != want {
		t.Fatalf("after checkpoint: got %d clauses, want %d", got, want)
	}

	// Adding a constraint after a solve must drop the completion clause
	// first, then append the new one.
	s.AddClause(NewClause(1, 1, []Literal{Lit(3)}))
	if got, want := len(s.Clauses()), 2; got != want {
		t.Fatalf("after mutation: got %d clauses, want %d", got, want)
	}

	s.Checkpoint()
	if got, want := len(s.Clauses()), 3; got != want {
		t.Fatalf("after second checkpoint: got %d clauses, want %d", got, want)
	}
}

func TestStoreCheckpointIdempotent(t *testing.T) {
	s := NewStore()
	s.AddRule(AtomID(1), Lit(2))
	s.Checkpoint()
	n := len(s.Clauses())

	s.Checkpoint() // no intervening mutation
	if got := len(s.Clauses()); got != n {
		t.Fatalf("duplicate completion clause appended: got %d clauses, want %d", got, n)
	}
}

func TestStoreMultipleJustificationsPerHead(t *testing.T) {
	s := NewStore()
	s.AddRule(AtomID(1), Lit(2))
	s.AddRule(AtomID(1), Lit(3))
	s.Checkpoint()

	clauses := s.Clauses()
	if len(clauses) != 1 {
		t.Fatalf("got %d clauses, want 1", len(clauses))
	}
	c := clauses[0]
	if c.Lo != 1 || c.Hi != 3 {
		t.Fatalf("got (lo,hi)=(%d,%d), want (1,3)", c.Lo, c.Hi)
	}
	if len(c.Literals) != 3 {
		t.Fatalf("got %d literals, want 3", len(c.Literals))
	}
	if c.Literals[0] != Neg(1) {
		t.Fatalf("got head literal %v, want %v", c.Literals[0], Neg(1))
	}
}
