package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/tikz/secstruct/perceptron"
)

func main() {
	var (
		dim        int
		inputs     int
		iterations int
		rate       float64
		seed       int64
	)

	flag.IntVar(&dim, "dim", 50, "Input dimension")
	flag.IntVar(&inputs, "inputs", 120, "Number of random training patterns")
	flag.IntVar(&iterations, "iterations", 10000, "Training iterations")
	flag.Float64Var(&rate, "rate", 0.1, "Learning rate")
	flag.Int64Var(&seed, "seed", 1, "Random seed")
	flag.Parse()

	log.SetFlags(0)

	rng := rand.New(rand.NewSource(seed))
	x := perceptron.RandomInputs(rng, inputs, dim)
	labels := perceptron.Labels(x)

	p := perceptron.New(dim, rate)
	updates, err := p.Train(rng, x, labels, iterations)
	if err != nil {
		log.Fatalf("[perceptron] %v", err)
	}

	fmt.Printf("updates: %d\n", updates)
	fmt.Printf("bias: %.3f\n", p.Bias)
	fmt.Printf("weights: %v\n", mat.Formatted(p.Weights.T(), mat.Prefix("         "), mat.Squeeze()))
	fmt.Printf("accuracy: %.3f\n", perceptron.Accuracy(p.Predict(x), labels))
}
