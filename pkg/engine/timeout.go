package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// evalResult is the internal type used to pass evaluation results through
// channels.
type evalResult struct {
	value  any
	errors []EvalError
	err    error
}

// generation counts Evaluate calls so that stale results can be told apart
// from current ones.
type generation struct {
	mu sync.Mutex
	n  uint64
}

func (g *generation) next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.n
}

func (g *generation) current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// waitWithTimeout waits for a result from ch, but returns ErrTimeout if the
// evaluation exceeds timeout. When current is non-nil, a result whose gen
// is no longer current is discarded with ErrSuperseded.
//
// On timeout, the goroutine may still be running; its result is dropped
// into the buffered channel and never read.
func waitWithTimeout(
	ctx context.Context,
	ch <-chan evalResult,
	timeout time.Duration,
	gen uint64,
	current *generation,
) (any, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if current != nil && gen != current.current() {
			return nil, nil, ErrSuperseded
		}
		return res.value, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)

	case <-ctx.Done():
		return nil, nil, fmt.Errorf("engine: evaluation cancelled: %w", ctx.Err())
	}
}
