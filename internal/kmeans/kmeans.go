package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Argument errors, all detected before the first iteration.
var (
	ErrNoSamples      = errors.New("kmeans: no input samples")
	ErrClusterCount   = errors.New("kmeans: cluster count out of range")
	ErrIterationCount = errors.New("kmeans: iteration count must be at least 1")
	ErrBadDimension   = errors.New("kmeans: samples must share a non-zero dimension")
)

// Options control a single clustering run.
type Options struct {
	// Iterations caps the number of assignment/update passes. Must be >= 1.
	Iterations int
	// Workers sets the fan-out of the assignment step. Values below 2 keep
	// the assignment serial. The update step is always serial.
	Workers int
	// Rand is the source used for centroid initialization. A nil source
	// falls back to the global one.
	Rand *rand.Rand
}

// Result is the frozen outcome of a clustering run.
type Result struct {
	// Centroids holds k vectors in the sample space, ordered by index.
	Centroids [][]float64
	// Assignments maps every input sample to a centroid index in [0, k).
	Assignments []int
	// Iterations is the number of passes actually executed.
	Iterations int
	// Converged reports whether assignments stabilized before the cap.
	Converged bool
}

// Cluster partitions samples into k clusters with Lloyd's algorithm.
//
// Centroids are seeded by sampling k samples uniformly without replacement,
// then refined for at most opts.Iterations passes or until no assignment
// changes. A centroid that loses all members keeps its previous position.
// Ties in the assignment step go to the lowest centroid index, so runs with
// the same rand source are deterministic regardless of opts.Workers.
func Cluster(samples [][]float64, k int, opts Options) (*Result, error) {
	n := len(samples)
	if n == 0 {
		return nil, ErrNoSamples
	}
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d with %d samples", ErrClusterCount, k, n)
	}
	if opts.Iterations < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrIterationCount, opts.Iterations)
	}
	dim := len(samples[0])
	if dim == 0 {
		return nil, ErrBadDimension
	}
	for i, s := range samples {
		if len(s) != dim {
			return nil, fmt.Errorf("%w: sample %d has dimension %d, want %d", ErrBadDimension, i, len(s), dim)
		}
	}

	centroids := initCentroids(samples, k, opts.Rand)
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}

	sums := make([][]float64, k)
	counts := make([]int, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	result := &Result{Centroids: centroids, Assignments: assignments}

	for iter := 0; iter < opts.Iterations; iter++ {
		result.Iterations = iter + 1

		// Assignment step: every sample is independent.
		changed := assign(samples, centroids, assignments, opts.Workers)

		if !changed {
			result.Converged = true
			break
		}

		// Update step: per-dimension mean of the members, serial over the
		// stable assignment map.
		for i := range sums {
			counts[i] = 0
			for d := range sums[i] {
				sums[i][d] = 0
			}
		}
		for i, a := range assignments {
			counts[a]++
			for d, v := range samples[i] {
				sums[a][d] += v
			}
		}
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				// Empty cluster: retain the previous position.
				continue
			}
			inv := 1.0 / float64(counts[j])
			for d := 0; d < dim; d++ {
				centroids[j][d] = sums[j][d] * inv
			}
		}
	}

	return result, nil
}

// Nearest returns the index of the centroid closest to sample under squared
// Euclidean distance, ties going to the lowest index.
func Nearest(sample []float64, centroids [][]float64) int {
	best := 0
	minDist := math.MaxFloat64
	for i, c := range centroids {
		d := 0.0
		for j := range c {
			delta := sample[j] - c[j]
			d += delta * delta
		}
		if d < minDist {
			minDist = d
			best = i
		}
	}
	return best
}

// Distortion sums the squared distances from every sample to its assigned
// centroid. Successive Lloyd iterations never increase it.
func Distortion(samples, centroids [][]float64, assignments []int) float64 {
	total := 0.0
	for i, a := range assignments {
		c := centroids[a]
		for j := range c {
			delta := samples[i][j] - c[j]
			total += delta * delta
		}
	}
	return total
}

// initCentroids copies k samples chosen uniformly without replacement.
func initCentroids(samples [][]float64, k int, rng *rand.Rand) [][]float64 {
	var perm []int
	if rng != nil {
		perm = rng.Perm(len(samples))
	} else {
		perm = rand.Perm(len(samples))
	}
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		c := make([]float64, len(samples[perm[i]]))
		copy(c, samples[perm[i]])
		centroids[i] = c
	}
	return centroids
}
