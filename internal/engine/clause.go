package engine

import (
	"fmt"
	"strings"
)

// Clause is a generalized-cardinality clause: satisfied by an assignment iff
// the number of its literals assigned true lies in [Lo, Hi].
//
// An ordinary CNF clause is the special case Lo=1, Hi=len(Literals).
type Clause struct {
	Lo, Hi   int
	Literals []Literal
}

// NewClause returns a cardinality clause over the given literals. It does
// not validate lo/hi against len(literals); callers (the rule completion
// encoder) are responsible for bounds-checking per their own vacuity and
// infeasibility rules, since those differ per constructor.
func NewClause(lo, hi int, literals []Literal) Clause {
	lits := make([]Literal, len(literals))
	copy(lits, literals)
	return Clause{Lo: lo, Hi: hi, Literals: lits}
}

// SatisfiedCount returns the number of literals assigned true under a.
func (c Clause) SatisfiedCount(a Assignment) int {
	n := 0
	for _, l := range c.Literals {
		if a.LitValue(l) {
			n++
		}
	}
	return n
}

// Satisfied reports whether the clause's satisfied-literal count lies in
// [Lo, Hi] under a.
func (c Clause) Satisfied(a Assignment) bool {
	n := c.SatisfiedCount(a)
	return c.Lo <= n && n <= c.Hi
}

func (c Clause) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "Clause[%d,%d:", c.Lo, c.Hi)
	for _, l := range c.Literals {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
