package pcgsat

import "errors"

// Error kinds raised synchronously at the call site (spec.md §7). Callers
// distinguish them with errors.Is, never by matching error text.
var (
	// ErrGrammar is returned when an attribute name or argument fails the
	// identifier grammar ^[a-z][A-Za-z0-9_]*$.
	ErrGrammar = errors.New("grammar error")
	// ErrDeclaration is returned when a predicate is redeclared or
	// declared with arity >= 4.
	ErrDeclaration = errors.New("declaration error")
	// ErrReference is returned when a proposition names an undeclared
	// predicate, supplies the wrong arity, or an out-of-domain argument.
	ErrReference = errors.New("reference error")
	// ErrShape is returned for structurally invalid constraints: a rule
	// with a negated head, equal([],[]), unique([]).
	ErrShape = errors.New("shape error")
	// ErrVacuity is returned when a constraint is trivially true given
	// its arguments (atLeast(0,...), all([]), a fully-inclusive
	// quantify band, ...).
	ErrVacuity = errors.New("vacuity error")
	// ErrInfeasible is returned when a constraint is unsatisfiable in
	// isolation (atLeast(n>|P|,...), an inverted quantify band, a
	// non-integer exactly/atLeast bound, ...).
	ErrInfeasible = errors.New("infeasibility error")
	// ErrSolveTimeout is returned when the local search reaches the
	// failsafe iteration cap. Unsatisfiability of the overall
	// conjunction is not distinguishable from a timeout.
	ErrSolveTimeout = errors.New("solve timeout")
	// ErrStaleLookup is returned when a Solution is queried for an
	// attribute minted after the solution was produced.
	ErrStaleLookup = errors.New("stale lookup")
)
