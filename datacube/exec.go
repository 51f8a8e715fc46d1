package datacube

import "sync"

// ExecContext is the execution backend for the final concatenation step: a
// bounded worker pool with explicit lifecycle, created before a pipeline run
// and shut down after. A nil ExecContext runs everything sequentially.
type ExecContext struct {
	workers int

	mu       sync.Mutex
	shutdown bool
}

// NewExecContext creates an execution context with the given worker count
func NewExecContext(workers int) *ExecContext {
	if workers < 1 {
		workers = 1
	}
	return &ExecContext{workers: workers}
}

// Shutdown marks the context unusable for further work
func (ec *ExecContext) Shutdown() {
	if ec == nil {
		return
	}
	ec.mu.Lock()
	ec.shutdown = true
	ec.mu.Unlock()
}

// Do runs fn for every index in [0, n) with bounded concurrency, returning
// the first error encountered. Ordering of side effects is the caller's
// responsibility; Do only guarantees completion.
func (ec *ExecContext) Do(n int, fn func(i int) error) error {
	if ec == nil {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	ec.mu.Lock()
	if ec.shutdown {
		ec.mu.Unlock()
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	ec.mu.Unlock()

	semaphore := make(chan struct{}, ec.workers)
	errChan := make(chan error, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			if err := fn(i); err != nil {
				errChan <- err
			}
		}(i)
	}
	wg.Wait()

	select {
	case err := <-errChan:
		return err
	default:
		return nil
	}
}
