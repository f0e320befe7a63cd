package cli

import (
	"context"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/calc"
)

// Evaluate runs op in its own goroutine and returns as soon as either the
// operation finishes or ctx is done. The engine is not interruptible, so on
// cancellation the computation is abandoned and its result discarded.
func Evaluate(ctx context.Context, registry *calc.Registry, op string, env calc.Env, args []*bigint.Int) ([]*bigint.Int, error) {
	type outcome struct {
		results []*bigint.Int
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := registry.Eval(ctx, op, env, args...)
		done <- outcome{r, err}
	}()
	select {
	case o := <-done:
		return o.results, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
