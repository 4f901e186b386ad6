// Package script implements a small line-oriented declarative format that
// drives the public pcgsat.Problem API: one directive per line, comments
// introduced by '#'. It plays the role the teacher's internal/dimacs plays
// for CNF instances, translating a textual problem description into calls
// against the engine.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wiretrail/pcgsat"
)

// Load reads a script from r and applies each directive to p in order,
// returning the transcript lines produced by "show" and "solve" directives.
// It stops at the first error, reporting the 1-based line number.
func Load(p *pcgsat.Problem, r io.Reader) ([]string, error) {
	var transcript []string

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		out, err := runLine(p, line)
		if err != nil {
			return transcript, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if out != "" {
			transcript = append(transcript, out)
		}
	}
	if err := scanner.Err(); err != nil {
		return transcript, err
	}
	return transcript, nil
}

func runLine(p *pcgsat.Problem, line string) (string, error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "attribute":
		return "", runAttribute(p, args)
	case "assert":
		return "", p.Assert(strings.Join(args, " "))
	case "quantify":
		return "", runQuantify(p, args)
	case "exactly":
		return "", runCount(p.Exactly, args, "exactly")
	case "atLeast":
		return "", runCount(p.AtLeast, args, "atLeast")
	case "atMost":
		return "", runCount(p.AtMost, args, "atMost")
	case "all":
		return "", p.All(args)
	case "unique":
		return "", p.Unique(args)
	case "inconsistent":
		return "", runInconsistent(p, args)
	case "implies":
		return "", runImplies(p, args)
	case "rule":
		return "", runRule(p, args)
	case "equal":
		return "", runEqual(p, args)
	case "show":
		return p.ShowConstraints(), nil
	case "solve":
		return runSolve(p)
	default:
		return "", fmt.Errorf("unknown directive %q", cmd)
	}
}

func runAttribute(p *pcgsat.Problem, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("attribute: missing name")
	}
	name := args[0]
	var domains [][]string
	for _, d := range args[1:] {
		domains = append(domains, strings.Split(d, ","))
	}
	return p.Attribute(name, domains...)
}

func runQuantify(p *pcgsat.Problem, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("quantify: need lo and hi")
	}
	lo, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("quantify: lo: %w", err)
	}
	hi, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("quantify: hi: %w", err)
	}
	return p.Quantify(lo, hi, args[2:])
}

func runCount(f func(n float64, props []string) error, args []string, name string) error {
	if len(args) < 1 {
		return fmt.Errorf("%s: missing count", name)
	}
	n, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return f(n, args[1:])
}

func runInconsistent(p *pcgsat.Problem, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("inconsistent: need exactly 2 propositions, got %d", len(args))
	}
	return p.Inconsistent(args[0], args[1])
}

// splitArrow parses "head <- premise...", the notation shared by implies
// and rule directives.
func splitArrow(args []string) (head string, body []string, err error) {
	if len(args) < 2 || args[1] != "<-" {
		return "", nil, fmt.Errorf(`expected "head <- premise..."`)
	}
	return args[0], args[2:], nil
}

func runImplies(p *pcgsat.Problem, args []string) error {
	head, body, err := splitArrow(args)
	if err != nil {
		return fmt.Errorf("implies: %w", err)
	}
	return p.Implies(body, head)
}

func runRule(p *pcgsat.Problem, args []string) error {
	head, body, err := splitArrow(args)
	if err != nil {
		return fmt.Errorf("rule: %w", err)
	}
	return p.Rule(head, body)
}

func runEqual(p *pcgsat.Problem, args []string) error {
	idx := -1
	for i, a := range args {
		if a == "=" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf(`equal: expected "lhs... = rhs..."`)
	}
	return p.Equal(args[:idx], args[idx+1:])
}

func runSolve(p *pcgsat.Problem) (string, error) {
	sol, err := p.Solve()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("model: %s", strings.Join(sol.TrueAttributes(), " ")), nil
}
