package engine

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"finance-engine/internal/model"
	"finance-engine/internal/random"
)

// DefaultTrialCount matches the number of trials the planner runs by default.
const DefaultTrialCount = 1000

var ErrNoTrials = errors.New("trial count must be at least 1")

// Options controls a batch of trials.
type Options struct {
	TrialCount int
	// Workers bounds parallelism. Zero uses GOMAXPROCS.
	Workers int
	// Seed feeds every trial's generator; trial i uses stream i, so output
	// does not depend on Workers.
	Seed int64
	// NewVariate overrides the per-trial generator.
	NewVariate func(trial int) random.Variate
}

// RunTrials runs independent trials from fresh state and returns their
// year-by-year output indexed by trial.
func RunTrials(ctx context.Context, in *Inputs, opts Options) ([][]model.YearResult, error) {
	if opts.TrialCount < 1 {
		return nil, ErrNoTrials
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, opts.TrialCount)

	newVariate := opts.NewVariate
	if newVariate == nil {
		newVariate = func(trial int) random.Variate {
			return random.NewSeeded(opts.Seed, uint64(trial))
		}
	}

	results := make([][]model.YearResult, opts.TrialCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = RunTrial(in, newVariate(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
