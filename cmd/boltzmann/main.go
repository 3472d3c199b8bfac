package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/tikz/secstruct/boltzmann"
)

func main() {
	cfg := boltzmann.DefaultConfig()
	var (
		patterns int
		jsonOut  bool
	)

	flag.IntVar(&cfg.Neurons, "neurons", cfg.Neurons, "Number of neurons")
	flag.IntVar(&cfg.SampleSteps, "sample-steps", cfg.SampleSteps, "Glauber updates per free phase")
	flag.IntVar(&cfg.LearningSteps, "learning-steps", cfg.LearningSteps, "Weight updates")
	flag.Float64Var(&cfg.Rate, "rate", cfg.Rate, "Learning rate")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.IntVar(&patterns, "patterns", 500, "Number of random training patterns")
	flag.BoolVar(&jsonOut, "json", false, "Output JSON")
	flag.Parse()

	log.SetFlags(0)

	m, err := boltzmann.New(cfg)
	if err != nil {
		log.Fatalf("[boltzmann] %v", err)
	}

	data := boltzmann.RandomPatterns(rand.New(rand.NewSource(cfg.Seed+1)), cfg.Neurons, patterns)
	deltas, err := m.Train(data)
	if err != nil {
		log.Fatalf("[boltzmann] train: %v", err)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"weight_change": deltas}); err != nil {
			log.Fatal(err)
		}
		return
	}

	for i, d := range deltas {
		fmt.Printf("%d\t%.6f\n", i+1, d)
	}
}
