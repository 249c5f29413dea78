package contio

import (
	"context"
	"sync"
)

// Future holds the single result of an asynchronous request.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(v T) {
	f.once.Do(func() {
		f.value = v
		close(f.done)
	})
}

// Done is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result returns the value and whether the future resolved
func (f *Future[T]) Result() (T, bool) {
	select {
	case <-f.done:
		return f.value, true
	default:
		var zero T
		return zero, false
	}
}

// Wait blocks until the result is available or ctx is done. Cancelling ctx
// abandons the wait, not the request.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
