package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one source in EvaluateBatch.
type BatchResult struct {
	Value  any
	Errors []EvalError
	Err    error
}

// EvaluateBatch evaluates independent sources concurrently, at most
// Config.Workers at a time, and returns their results in input order.
//
// Batch items never supersede each other or a concurrent Evaluate. Item i
// is seeded with the configured seed plus i, so a batch is reproducible
// when a seed is configured; otherwise the base seed comes from the clock.
//
// Per-item failures are reported in BatchResult.Err. The returned error is
// only set when ctx ends before all items ran; items that never ran carry
// it in their Err.
func (e *Engine) EvaluateBatch(ctx context.Context, sources []string) ([]BatchResult, error) {
	gen := e.gen.current()
	base := e.cfg.Seed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}

	results := make([]BatchResult, len(sources))
	ran := make([]bool, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	for i, src := range sources {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ran[i] = true
			v, evalErrs, err := e.run(gctx, src, base+uint64(i), gen, nil)
			results[i] = BatchResult{Value: v, Errors: evalErrs, Err: err}
			return nil
		})
	}

	werr := g.Wait()
	if werr == nil {
		werr = ctx.Err()
	}
	missed := false
	for i := range results {
		if !ran[i] {
			missed = true
			results[i] = BatchResult{Err: werr}
		}
	}
	if !missed {
		return results, nil
	}
	return results, werr
}
