package cubicspiral

import (
	"context"

	"go.viam.com/cubicspiral/utils"
)

// Executor runs work once for every index in [0, size). Calls may happen concurrently and in any order; each call
// must only touch state belonging to its own index.
type Executor interface {
	Run(ctx context.Context, size int, work func(i int)) error
}

// ParallelExecutor spreads work over utils.ParallelFactor goroutines.
type ParallelExecutor struct{}

// Run implements Executor.
func (ParallelExecutor) Run(ctx context.Context, size int, work func(i int)) error {
	return utils.ParallelMap(ctx, size, work)
}

// SerialExecutor runs work on the calling goroutine, in index order.
type SerialExecutor struct{}

// Run implements Executor.
func (SerialExecutor) Run(ctx context.Context, size int, work func(i int)) error {
	for i := 0; i < size; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		work(i)
	}
	return nil
}
