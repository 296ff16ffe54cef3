package ranking

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jonathan/teammatch/internal/matching"
	"github.com/jonathan/teammatch/internal/types"
	"golang.org/x/sync/errgroup"
)

// ScoreFunc scores the i-th item of a batch.
type ScoreFunc func(i int) (*types.Match, error)

// SkipFunc is told about items whose scoring failed recoverably.
type SkipFunc func(i int, err error)

// ScoreAll runs score for every index in [0, n) on up to workers goroutines.
// Results keep input order. Items failing with a *matching.ScoreError are
// reported to onSkip and left out; any other error cancels the batch.
// workers <= 0 uses GOMAXPROCS.
func ScoreAll(ctx context.Context, n, workers int, score ScoreFunc, onSkip SkipFunc) ([]types.Match, error) {
	if n == 0 {
		return []types.Match{}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	slots := make([]*types.Match, n)
	skipErrs := make([]error, n)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			m, err := score(i)
			if err != nil {
				if matching.IsScoreError(err) {
					skipErrs[i] = err
					return nil
				}
				return fmt.Errorf("scoring item %d: %w", i, err)
			}
			slots[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]types.Match, 0, n)
	for i, m := range slots {
		if skipErrs[i] != nil {
			if onSkip != nil {
				onSkip(i, skipErrs[i])
			}
			continue
		}
		if m != nil {
			matches = append(matches, *m)
		}
	}
	return matches, nil
}
