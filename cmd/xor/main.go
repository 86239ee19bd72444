package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pixquant/internal/mlp"
)

func main() {
	hidden := flag.Int("hidden", 8, "Hidden layer width")
	epochs := flag.Int("epochs", 20000, "Training epochs")
	lr := flag.Float64("lr", 2.0, "Learning rate")
	seed := flag.Int64("seed", 0, "Random seed for weight initialization (0 = time-derived)")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *hidden < 1 {
		fmt.Fprintf(os.Stderr, "Error: hidden must be positive\n")
		flag.Usage()
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	targets := [][]float64{{0}, {1}, {1}, {0}}

	net := mlp.New(2, *hidden, 1, rand.New(rand.NewSource(*seed)))

	losses, err := net.Train(inputs, targets, *epochs, *lr)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	milestone := *epochs / 10
	if milestone == 0 {
		milestone = 1
	}
	for epoch := 0; epoch < len(losses); epoch += milestone {
		log.Info().Int("epoch", epoch).Float64("loss", losses[epoch]).Msg("training")
	}
	log.Info().Int("epoch", len(losses)).Float64("loss", losses[len(losses)-1]).Msg("trained")

	for i, in := range inputs {
		out, err := net.Predict(in)
		if err != nil {
			log.Fatal().Err(err).Msg("prediction failed")
		}
		fmt.Printf("%v XOR -> %.4f (want %v)\n", in, out[0], targets[i][0])
	}
}
