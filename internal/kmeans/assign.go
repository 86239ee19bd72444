package kmeans

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// assign recomputes the full assignment map and reports whether any entry
// changed. With workers > 1 the samples are split into contiguous chunks and
// scored concurrently; each chunk only writes its own slice of assignments,
// and centroids are read-only for the duration, so the result is identical
// to the serial pass.
func assign(samples, centroids [][]float64, assignments []int, workers int) bool {
	n := len(samples)
	if workers < 2 || n < workers {
		changed := false
		for i, s := range samples {
			if next := Nearest(s, centroids); next != assignments[i] {
				assignments[i] = next
				changed = true
			}
		}
		return changed
	}

	var changed atomic.Bool
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if next := Nearest(samples[i], centroids); next != assignments[i] {
					assignments[i] = next
					changed.Store(true)
				}
			}
			return nil
		})
	}
	// Workers never return errors; Wait is only the join point.
	_ = g.Wait()

	return changed.Load()
}
