package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pixquant/internal/display"
	"pixquant/internal/imageproc"
	"pixquant/internal/kmeans"
)

func main() {
	colors := flag.Int("colors", 16, "Number of quantized colors")
	imagePath := flag.String("image", "", "Path to image to compress")
	iters := flag.Int("iters", 10, "Maximum number of k-means iterations")
	show := flag.Bool("show", false, "Show the compressed image")
	seed := flag.Int64("seed", 0, "Random seed for centroid initialization (0 = time-derived)")
	workers := flag.Int("workers", runtime.NumCPU(), "Parallelism of the assignment step")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *imagePath == "" {
		fmt.Fprintf(os.Stderr, "Error: image path is required\n")
		flag.Usage()
		os.Exit(1)
	}
	if *colors < 1 || *iters < 1 {
		fmt.Fprintf(os.Stderr, "Error: colors and iters must be positive\n")
		flag.Usage()
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	start := time.Now()

	pixels, bounds, err := imageproc.LoadPixels(*imagePath)
	if err != nil {
		log.Fatal().Err(err).Str("image", *imagePath).Msg("could not read image")
	}
	log.Info().
		Str("image", *imagePath).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Int("colors", *colors).
		Int64("seed", *seed).
		Msg("clustering pixels")

	result, err := kmeans.Cluster(pixels, *colors, kmeans.Options{
		Iterations: *iters,
		Workers:    *workers,
		Rand:       rng,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("clustering failed")
	}
	log.Info().
		Int("iterations", result.Iterations).
		Bool("converged", result.Converged).
		Float64("distortion", kmeans.Distortion(pixels, result.Centroids, result.Assignments)).
		Msg("clustering finished")

	img, err := imageproc.Reconstruct(result.Centroids, result.Assignments, bounds)
	if err != nil {
		log.Fatal().Err(err).Msg("could not reconstruct image")
	}

	outPath := imageproc.CompressedPath(*imagePath)
	if err := imageproc.WriteImage(outPath, img); err != nil {
		log.Fatal().Err(err).Str("output", outPath).Msg("could not write compressed image")
	}

	rate, err := imageproc.CompressionRate(*imagePath, outPath)
	if err != nil {
		log.Warn().Err(err).Msg("could not compute compression rate")
	} else {
		log.Info().
			Str("output", outPath).
			Str("rate", fmt.Sprintf("%.3f%%", 100*rate)).
			Msg("image compressed")
	}

	for i, p := range imageproc.PaletteStats(result.Centroids, result.Assignments) {
		if i >= 5 {
			break
		}
		log.Info().
			Ints("rgb", []int{int(p.Color[0]), int(p.Color[1]), int(p.Color[2])}).
			Float64("proportion", p.Proportion).
			Float64("hue", p.Hue).
			Msg("palette color")
	}

	if *show {
		if err := display.Show(context.Background(), outPath); err != nil {
			log.Warn().Err(err).Msg("could not open image viewer")
		}
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg("done")
}
