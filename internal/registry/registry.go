// Package registry implements the identifier registry: the bijection
// between textual attribute names (optionally parameterized by finite
// domains, arity 0-3) and dense positive atom ids, plus minting of
// anonymous temporaries for the encoder.
package registry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/wiretrail/pcgsat/internal/engine"
)

// identRe is the grammar shared by attribute names and domain arguments:
// ^[a-z][A-Za-z0-9_]*$
var identRe = regexp.MustCompile(`^[a-z][A-Za-z0-9_]*$`)

// MaxArity is the largest number of arguments a predicate may declare.
const MaxArity = 3

var (
	// ErrMalformedIdentifier is returned when a name or argument fails the
	// identifier grammar.
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// ErrArityTooLarge is returned when a predicate is declared with more
	// than MaxArity arguments.
	ErrArityTooLarge = errors.New("arity too large")
	// ErrRedeclared is returned when a predicate name is declared twice.
	ErrRedeclared = errors.New("predicate redeclared")
	// ErrUndeclared is returned when a proposition references a predicate
	// that was never declared.
	ErrUndeclared = errors.New("undeclared predicate")
	// ErrWrongArity is returned when a proposition supplies the wrong
	// number of arguments for its predicate.
	ErrWrongArity = errors.New("wrong arity")
	// ErrOutOfDomain is returned when a proposition's argument is not a
	// member of the predicate's declared domain for that position.
	ErrOutOfDomain = errors.New("argument out of domain")
)

// predicate is one declared attribute family.
type predicate struct {
	domains [][]string        // one domain per argument position
	ids     map[string]engine.AtomID // tuple-key ("" for arity 0) -> id
}

func tupleKey(args []string) string {
	return strings.Join(args, "\x00")
}

func domainContains(domain []string, v string) bool {
	for _, d := range domain {
		if d == v {
			return true
		}
	}
	return false
}

// Registry is the name<->id bijection for one Problem.
type Registry struct {
	predicates map[string]*predicate
	names      []string // dense id -> name, index 0 unused (TrueAtom has no name)
	nextID     engine.AtomID
}

// New returns an empty registry. Atom 0 (engine.TrueAtom) is reserved and
// never interned.
func New() *Registry {
	return &Registry{
		predicates: map[string]*predicate{},
		names:      []string{""}, // index 0 reserved for TrueAtom
		nextID:     1,
	}
}

func validIdent(s string) bool {
	return identRe.MatchString(s)
}

// Intern declares a predicate of the given name with one domain per
// argument position (nil or empty slice for arity 0) and eagerly mints one
// atom per element of the Cartesian product of the domains.
func (r *Registry) Intern(name string, domains ...[]string) error {
	if !validIdent(name) {
		return fmt.Errorf("attribute %q: %w", name, ErrMalformedIdentifier)
	}
	if len(domains) > MaxArity {
		return fmt.Errorf("attribute %q: arity %d exceeds %d: %w", name, len(domains), MaxArity, ErrArityTooLarge)
	}
	for _, domain := range domains {
		for _, v := range domain {
			if !validIdent(v) {
				return fmt.Errorf("attribute %q: domain value %q: %w", name, v, ErrMalformedIdentifier)
			}
		}
	}
	if _, ok := r.predicates[name]; ok {
		return fmt.Errorf("attribute %q: %w", name, ErrRedeclared)
	}

	p := &predicate{domains: domains, ids: map[string]engine.AtomID{}}
	r.predicates[name] = p

	for _, tuple := range cartesian(domains) {
		id := r.mint(displayName(name, tuple))
		p.ids[tupleKey(tuple)] = id
	}
	return nil
}

// cartesian returns every argument tuple in the product of the domains,
// following each domain's declared value order with the first position
// varying slowest. A zero-arity predicate returns a single empty tuple.
func cartesian(domains [][]string) [][]string {
	tuples := [][]string{{}}
	for _, domain := range domains {
		next := make([][]string, 0, len(tuples)*len(domain))
		for _, t := range tuples {
			for _, v := range domain {
				nt := make([]string, len(t)+1)
				copy(nt, t)
				nt[len(t)] = v
				next = append(next, nt)
			}
		}
		tuples = next
	}
	return tuples
}

func displayName(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func (r *Registry) mint(name string) engine.AtomID {
	id := r.nextID
	r.nextID++
	r.names = append(r.names, name)
	return id
}

// MintAnonymous mints a fresh atom with no name, for solver-internal
// temporaries (multi-premise rule bodies, equal()'s anonymous heads).
func (r *Registry) MintAnonymous() engine.AtomID {
	return r.mint("")
}

// IsAnonymous reports whether id was minted by MintAnonymous (or is
// otherwise nameless).
func (r *Registry) IsAnonymous(id engine.AtomID) bool {
	if int(id) >= len(r.names) {
		return false
	}
	return r.names[id] == ""
}

// Name returns the display name of id ("" for anonymous atoms).
func (r *Registry) Name(id engine.AtomID) string {
	if int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

// NumAtoms returns the number of minted atoms, not counting TrueAtom.
func (r *Registry) NumAtoms() int {
	return len(r.names) - 1
}

// Resolve parses a proposition of the form "[!]name arg1 arg2 ..." and
// returns its signed literal.
func (r *Registry) Resolve(text string) (engine.Literal, error) {
	text = strings.TrimSpace(text)
	negated := false
	if strings.HasPrefix(text, "!") {
		negated = true
		text = text[1:]
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty proposition: %w", ErrMalformedIdentifier)
	}
	name, args := fields[0], fields[1:]

	if !validIdent(name) {
		return 0, fmt.Errorf("proposition %q: %w", text, ErrMalformedIdentifier)
	}
	for _, a := range args {
		if !validIdent(a) {
			return 0, fmt.Errorf("proposition %q: argument %q: %w", text, a, ErrMalformedIdentifier)
		}
	}

	p, ok := r.predicates[name]
	if !ok {
		return 0, fmt.Errorf("proposition %q: %w", text, ErrUndeclared)
	}
	if len(args) != len(p.domains) {
		return 0, fmt.Errorf("proposition %q: predicate %q has arity %d: %w", text, name, len(p.domains), ErrWrongArity)
	}
	for i, a := range args {
		if !domainContains(p.domains[i], a) {
			return 0, fmt.Errorf("proposition %q: argument %q not in domain of position %d: %w", text, a, i, ErrOutOfDomain)
		}
	}

	id := p.ids[tupleKey(args)]
	if negated {
		return engine.Neg(id), nil
	}
	return engine.Lit(id), nil
}
