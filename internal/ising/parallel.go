package ising

import (
	"context"
	"fmt"
	"sync"
)

// Builder constructs the ensemble for one independent run. Each call must
// return an ensemble with its own lattice and its own source.
type Builder func(seed int64) *Ensemble

// RunIndependent builds n ensembles with seeds seedStart, seedStart+1, ...
// and sweeps each of them on its own goroutine. Nothing is shared between
// the runs. It returns the ensembles in seed order, or the first error.
func RunIndependent(ctx context.Context, n int, seedStart int64, sweeps int, build Builder) ([]*Ensemble, error) {
	results := make([]*Ensemble, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			e := build(seedStart + int64(idx))
			for s := 0; s < sweeps; s++ {
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					return
				}
				if err := e.Sweep(); err != nil {
					errs[idx] = fmt.Errorf("replica %d sweep %d: %w", idx, s, err)
					return
				}
			}
			results[idx] = e
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
