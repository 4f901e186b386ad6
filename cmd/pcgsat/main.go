package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wiretrail/pcgsat"
	"github.com/wiretrail/pcgsat/internal/script"
)

var flagSeed = flag.Int64(
	"seed",
	-1,
	"deterministic search seed for reproducible runs (-1 = random)",
)

var flagMaxIterations = flag.Int(
	"max_iterations",
	-1,
	"maximum local-search iterations allowed per solve (-1 = default failsafe)",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing script file")
	}
	return &config{
		scriptFile:    flag.Arg(0),
		seed:          *flagSeed,
		maxIterations: *flagMaxIterations,
	}, nil
}

type config struct {
	scriptFile    string
	seed          int64
	maxIterations int
}

func problemOptions(cfg *config) pcgsat.Options {
	opts := pcgsat.DefaultOptions
	if cfg.seed >= 0 {
		opts.Seed = cfg.seed
		opts.HasSeed = true
	}
	if cfg.maxIterations >= 0 {
		opts.MaxIterations = cfg.maxIterations
	}
	return opts
}

func run(cfg *config) error {
	f, err := os.Open(cfg.scriptFile)
	if err != nil {
		return fmt.Errorf("could not open script: %w", err)
	}
	defer f.Close()

	p := pcgsat.NewProblem(problemOptions(cfg))

	transcript, err := script.Load(p, f)
	for _, line := range transcript {
		fmt.Println(line)
	}
	if err != nil {
		return fmt.Errorf("could not run script: %w", err)
	}

	stats := p.Stats()
	fmt.Printf("c iterations: %d\n", stats.Iterations)
	fmt.Printf("c final noise: %.4f\n", stats.FinalNoise)
	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}
