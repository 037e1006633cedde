package dungeon

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one seed in GenerateBatch.
type BatchResult struct {
	Seed   string
	Layout *Layout
	Err    error
}

// GenerateBatch runs one independent generation per seed on up to workers
// goroutines. Results are returned in seed order; a failed seed does not stop
// the others. UseRandomSeed is ignored so every result maps to its seed.
// Seeds not started before ctx is done carry ctx.Err() and no layout.
func GenerateBatch(ctx context.Context, p Params, seeds []string, workers int) []BatchResult {
	results := make([]BatchResult, len(seeds))
	if workers <= 0 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{Seed: seed, Err: err}
				return nil
			}
			params := p
			params.Seed = seed
			params.UseRandomSeed = false
			layout, err := GenerateContext(ctx, params)
			results[i] = BatchResult{Seed: seed, Layout: layout, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
