package script

import (
	"strings"
	"testing"

	"github.com/wiretrail/pcgsat"
)

func TestLoadRunsFullScript(t *testing.T) {
	src := `
# declare attributes
attribute a
attribute b
attribute c

rule a <-
rule b <- c
rule c <- a
assert !d
`
	p := pcgsat.NewDefaultProblem()
	if err := p.Attribute("d"); err != nil {
		t.Fatalf("Attribute(d): %v", err)
	}

	if _, err := Load(p, strings.NewReader(src)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	sol, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for _, want := range []string{"a", "b", "c"} {
		if v, err := sol.Lookup(want); err != nil || !v {
			t.Fatalf("Lookup(%s) = %v, %v; want true, nil", want, v, err)
		}
	}
	if v, err := sol.Lookup("d"); err != nil || v {
		t.Fatalf("Lookup(d) = %v, %v; want false, nil", v, err)
	}
}

func TestLoadQuantifyAndSolveDirective(t *testing.T) {
	src := `
attribute a
attribute b
attribute c
exactly 2 a b c
solve
`
	p := pcgsat.NewDefaultProblem()
	out, err := Load(p, strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 || !strings.HasPrefix(out[0], "model: ") {
		t.Fatalf("unexpected transcript: %v", out)
	}
}

func TestLoadRejectsUnknownDirective(t *testing.T) {
	p := pcgsat.NewDefaultProblem()
	if _, err := Load(p, strings.NewReader("bogus x y")); err == nil {
		t.Fatalf("expected an error for an unknown directive")
	}
}

func TestLoadPropagatesConstraintErrors(t *testing.T) {
	p := pcgsat.NewDefaultProblem()
	src := "attribute a\nall\n"
	if _, err := Load(p, strings.NewReader(src)); err == nil {
		t.Fatalf("expected all([]) to raise a vacuity error")
	}
}
