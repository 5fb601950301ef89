package gridastar

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Request is one start/goal pair submitted to SearchAll.
type Request struct {
	Start Point
	Goal  Point
}

// Response is the worker's answer to the Request at the same index.
// Err is ErrOutOfBounds or ErrNoPath (wrapped) when the search failed.
type Response[T any] struct {
	Request Request
	Result  Result[T]
	Err     error
}

type searchTask struct {
	index   int
	request Request
}

// SearchAll answers every request using a pool of engines over the same grid,
// one engine per worker. The grid is only read and must not be mutated until
// SearchAll returns. Responses are index-aligned with requests. Cancelling ctx
// stops dispatching new requests and the context error is returned; once every
// request has been dispatched and answered the error is nil, even if ctx was
// cancelled meanwhile.
func SearchAll[T Walkable[T]](
	ctx context.Context,
	grid *Grid[T],
	requests []Request,
	options ...Option,
) ([]Response[T], error) {
	searchOptions := buildOptions(options)
	numberOfWorkers := min(searchOptions.NumberOfWorkers, max(len(requests), 1))

	responses := make([]Response[T], len(requests))
	taskChannel := make(chan searchTask)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(taskChannel)
		for i, request := range requests {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case taskChannel <- searchTask{index: i, request: request}:
			}
		}
		return nil
	})

	// --- Start worker pool ---
	for i := 0; i < numberOfWorkers; i++ {
		group.Go(func() error {
			engine := New(grid, options...)
			for task := range taskChannel {
				result, err := engine.Find(task.request.Start, task.request.Goal)
				responses[task.index] = Response[T]{Request: task.request, Result: result, Err: err}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return responses, err
	}
	return responses, nil
}
