// Package pcgsat implements a declarative, randomized constraint solver for
// procedural content generation: a vocabulary of boolean attributes
// (optionally parameterized by finite domains), cardinality/implication/
// equivalence/rule constraints over them, and a stochastic local search that
// returns a satisfying — and, across repeated solves, varied — assignment.
//
// A Problem is not safe for concurrent mutation or concurrent solving;
// callers that need parallelism run independent Problem instances.
package pcgsat

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wiretrail/pcgsat/internal/engine"
	"github.com/wiretrail/pcgsat/internal/registry"
	"github.com/wiretrail/pcgsat/internal/search"
)

// Options configures attribute/constraint validation is always strict, but
// solving behavior (the failsafe cap, diagnostic tracing, and — for tests
// only — a deterministic seed) is tunable. This mirrors the teacher's
// Options/DefaultOptions pair (sat.Options/sat.DefaultOptions).
type Options struct {
	// MaxIterations overrides the 50,000-iteration failsafe. Zero means
	// the default failsafe.
	MaxIterations int
	// Seed makes Solve deterministic when HasSeed is true. Exists for
	// testing only — production callers should leave HasSeed false so
	// that repeated solves of the same Problem sample varied models.
	Seed    int64
	HasSeed bool
	// Trace, if non-nil, receives periodic search progress lines.
	Trace io.Writer
}

// DefaultOptions is the zero-configuration default.
var DefaultOptions = Options{MaxIterations: search.Failsafe}

// Problem is a declarative constraint problem: a vocabulary of attributes
// plus the constraints attached to them.
type Problem struct {
	registry  *registry.Registry
	store     *engine.Store
	options   Options
	lastStats search.Stats
}

// Stats reports counters from the most recent Solve call, mirroring the
// teacher's TotalConflicts/TotalRestarts/TotalIterations public counters on
// Solver.
type Stats struct {
	Iterations int
	FinalNoise float64
}

// Stats returns counters from the most recent Solve call. The zero value
// is returned if Solve has never been called.
func (p *Problem) Stats() Stats {
	return Stats{Iterations: p.lastStats.Iterations, FinalNoise: p.lastStats.FinalNoise}
}

// NewProblem returns an empty problem configured with opts.
func NewProblem(opts Options) *Problem {
	return &Problem{
		registry: registry.New(),
		store:    engine.NewStore(),
		options:  opts,
	}
}

// NewDefaultProblem returns an empty problem configured with DefaultOptions.
func NewDefaultProblem() *Problem {
	return NewProblem(DefaultOptions)
}

// Attribute declares a named boolean attribute, optionally parameterized by
// up to three finite-domain argument positions. Arity 0 (no domains) is a
// plain boolean attribute.
func (p *Problem) Attribute(name string, domains ...[]string) error {
	if err := p.registry.Intern(name, domains...); err != nil {
		return wrapRegistryErr(err)
	}
	return nil
}

// resolveProp resolves one textual proposition ("[!]name arg1 arg2...").
func (p *Problem) resolveProp(prop string) (engine.Literal, error) {
	lit, err := p.registry.Resolve(prop)
	if err != nil {
		return 0, wrapRegistryErr(err)
	}
	return lit, nil
}

// resolveProps resolves a list of propositions in order, stopping at the
// first error.
func (p *Problem) resolveProps(props []string) ([]engine.Literal, error) {
	lits := make([]engine.Literal, 0, len(props))
	for _, prop := range props {
		lit, err := p.resolveProp(prop)
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
	}
	return lits, nil
}

// wrapRegistryErr maps a registry error onto the matching top-level error
// kind from spec.md §7, keeping the original error reachable via errors.Is.
func wrapRegistryErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, registry.ErrMalformedIdentifier):
		return fmt.Errorf("%w: %w", ErrGrammar, err)
	case errors.Is(err, registry.ErrArityTooLarge), errors.Is(err, registry.ErrRedeclared):
		return fmt.Errorf("%w: %w", ErrDeclaration, err)
	case errors.Is(err, registry.ErrUndeclared), errors.Is(err, registry.ErrWrongArity), errors.Is(err, registry.ErrOutOfDomain):
		return fmt.Errorf("%w: %w", ErrReference, err)
	default:
		return err
	}
}

func infeasible(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInfeasible)
}

func vacuous(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrVacuity)
}

func shaped(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrShape)
}

// quantifyClause implements spec.md §4.3's quantify validation and bound
// normalization, returning the clause to append.
func (p *Problem) quantifyClause(lo, hi float64, props []string) (engine.Clause, error) {
	lits, err := p.resolveProps(props)
	if err != nil {
		return engine.Clause{}, err
	}
	n := len(lits)

	if hi < 0 {
		return engine.Clause{}, infeasible("quantify(%v,%v,...): hi must be >= 0", lo, hi)
	}
	if lo > float64(n) {
		return engine.Clause{}, infeasible("quantify(%v,%v,...): lo exceeds the number of propositions (%d)", lo, hi, n)
	}

	loC, hiF := math.Ceil(lo), math.Floor(hi)
	if loC > hiF {
		return engine.Clause{}, infeasible("quantify(%v,%v,...): band is inverted (ceil(lo)=%v > floor(hi)=%v)", lo, hi, loC, hiF)
	}
	if loC <= 0 && hiF >= float64(n) {
		return engine.Clause{}, vacuous("quantify(%v,%v,...): band [%v,%v] admits every subset of %d proposition(s)", lo, hi, lo, hi, n)
	}

	loInt, hiInt := int(math.Max(0, loC)), int(math.Min(float64(n), hiF))
	return engine.NewClause(loInt, hiInt, lits), nil
}

// Quantify requires the number of props assigned true to lie in [lo, hi].
func (p *Problem) Quantify(lo, hi float64, props []string) error {
	c, err := p.quantifyClause(lo, hi, props)
	if err != nil {
		return err
	}
	p.store.AddClause(c)
	return nil
}

// Exactly requires exactly n of props to be true.
func (p *Problem) Exactly(n float64, props []string) error {
	if n != math.Trunc(n) {
		return infeasible("exactly(%v, ...) requires an integer count", n)
	}
	return p.Quantify(n, n, props)
}

// AtLeast requires at least n of props to be true.
func (p *Problem) AtLeast(n float64, props []string) error {
	if n != math.Trunc(n) {
		return infeasible("atLeast(%v, ...) requires an integer count", n)
	}
	return p.Quantify(n, float64(len(props)), props)
}

// AtMost requires at most n of props to be true.
func (p *Problem) AtMost(n float64, props []string) error {
	return p.Quantify(0, n, props)
}

// All requires every proposition in props to be true.
func (p *Problem) All(props []string) error {
	return p.Exactly(float64(len(props)), props)
}

// Unique requires exactly one proposition in props to be true.
func (p *Problem) Unique(props []string) error {
	if len(props) == 0 {
		return shaped("unique([]) is not well-formed")
	}
	return p.Exactly(1, props)
}

// Inconsistent forbids a and b from being simultaneously true.
func (p *Problem) Inconsistent(a, b string) error {
	return p.AtMost(1, []string{a, b})
}

// Assert requires prop to be true.
func (p *Problem) Assert(prop string) error {
	return p.All([]string{prop})
}

// Implies requires conclusion to hold whenever every proposition in
// premises holds.
func (p *Problem) Implies(premises []string, conclusion string) error {
	premLits, err := p.resolveProps(premises)
	if err != nil {
		return err
	}
	cLit, err := p.resolveProp(conclusion)
	if err != nil {
		return err
	}

	lits := make([]engine.Literal, 0, len(premLits)+1)
	for _, l := range premLits {
		lits = append(lits, l.Negate())
	}
	lits = append(lits, cLit)
	p.store.AddClause(engine.NewClause(1, len(lits), lits))
	return nil
}

// iff emits the clauses making conclusion equivalent to the conjunction of
// premises: conclusion -> p_i for each premise, and (p_1 /\ ... /\ p_k) ->
// conclusion (spec.md §4.3's private iff helper).
func (p *Problem) iff(premises []engine.Literal, conclusion engine.Literal) {
	for _, premise := range premises {
		p.store.AddClause(engine.NewClause(1, 2, []engine.Literal{premise, conclusion.Negate()}))
	}

	lits := make([]engine.Literal, 0, len(premises)+1)
	for _, premise := range premises {
		lits = append(lits, premise.Negate())
	}
	lits = append(lits, conclusion)
	p.store.AddClause(engine.NewClause(1, len(lits), lits))
}

// Equal requires the conjunction of a to have the same truth value as the
// conjunction of b.
func (p *Problem) Equal(a, b []string) error {
	if len(a) == 0 && len(b) == 0 {
		return shaped("equal([], []) is not well-formed")
	}
	if len(a) == 0 {
		return p.All(b)
	}
	if len(b) == 0 {
		return p.All(a)
	}

	aLits, err := p.resolveProps(a)
	if err != nil {
		return err
	}
	bLits, err := p.resolveProps(b)
	if err != nil {
		return err
	}

	switch {
	case len(aLits) == 1 && len(bLits) == 1:
		p.store.AddClause(engine.NewClause(1, 2, []engine.Literal{aLits[0].Negate(), bLits[0]}))
		p.store.AddClause(engine.NewClause(1, 2, []engine.Literal{bLits[0].Negate(), aLits[0]}))
	case len(aLits) == 1:
		p.iff(bLits, aLits[0])
	case len(bLits) == 1:
		p.iff(aLits, bLits[0])
	default:
		h := engine.Lit(p.registry.MintAnonymous())
		p.iff(aLits, h)
		p.iff(bLits, h)
	}
	return nil
}

// Rule declares conclusion to be justified by the conjunction of premises,
// in addition to emitting the plain implication premises -> conclusion.
// Rule heads accumulate justifications across multiple Rule calls; at Solve
// time, every head gets the iff-completion clause from spec.md §4.3.
func (p *Problem) Rule(conclusion string, premises []string) error {
	if strings.HasPrefix(strings.TrimSpace(conclusion), "!") {
		return shaped("rule conclusion %q must not be negated", conclusion)
	}
	cLit, err := p.resolveProp(conclusion)
	if err != nil {
		return err
	}
	premLits, err := p.resolveProps(premises)
	if err != nil {
		return err
	}

	lits := make([]engine.Literal, 0, len(premLits)+1)
	for _, l := range premLits {
		lits = append(lits, l.Negate())
	}
	lits = append(lits, cLit)
	p.store.AddClause(engine.NewClause(1, len(lits), lits))

	head := cLit.Atom()
	switch len(premLits) {
	case 0:
		p.store.AddRule(head, engine.Literal(0))
	case 1:
		p.store.AddRule(head, premLits[0])
	default:
		h := p.registry.MintAnonymous()
		p.iff(premLits, engine.Lit(h))
		p.store.AddRule(head, engine.Lit(h))
	}
	return nil
}

func (p *Problem) formatLiteral(l engine.Literal) string {
	if l == 0 {
		return "TRUE"
	}
	name := p.registry.Name(l.Atom())
	if name == "" {
		name = fmt.Sprintf("_%d", l.Atom())
	}
	if l.IsPositive() {
		return name
	}
	return "!" + name
}

// ShowConstraints returns a human-readable dump of the store: one line per
// clause, then one line per rule head listing its recorded justifications,
// both in declaration order.
func (p *Problem) ShowConstraints() string {
	var sb strings.Builder
	for _, c := range p.store.Clauses() {
		fmt.Fprintf(&sb, "[%d,%d:", c.Lo, c.Hi)
		for _, l := range c.Literals {
			sb.WriteByte(' ')
			sb.WriteString(p.formatLiteral(l))
		}
		sb.WriteString(" ]\n")
	}
	for _, h := range p.store.Heads() {
		fmt.Fprintf(&sb, "rule %s <-", p.formatLiteral(engine.Lit(h)))
		for _, j := range p.store.Justifications(h) {
			sb.WriteByte(' ')
			sb.WriteString(p.formatLiteral(j))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

