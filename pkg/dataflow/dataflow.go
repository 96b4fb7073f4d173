package dataflow

import (
	"context"
	"sync"
)

// From emits items on a channel that closes after the last item or when ctx
// is done.
func From(ctx context.Context, items ...interface{}) <-chan interface{} {
	out := make(chan interface{})
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case out <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Map applies fn to every item from in using the configured number of
// workers. Output order is not preserved when workers > 1. Items whose fn
// fails are dropped; if an error handler is set and returns false, the stage
// stops taking new items.
func Map(ctx context.Context, in <-chan interface{}, fn func(interface{}) (interface{}, error), opts ...Option) <-chan interface{} {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	out := make(chan interface{}, cfg.bufferSize)
	stop := make(chan struct{})
	var stopOnce sync.Once

	var wg sync.WaitGroup
	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go func() {
			defer wg.Done()
			for {
				var item interface{}
				var ok bool
				select {
				case <-ctx.Done():
					return
				case <-stop:
					return
				case item, ok = <-in:
					if !ok {
						return
					}
				}

				res, err := fn(item)
				if err != nil {
					if cfg.errorHandler != nil && !cfg.errorHandler(err) {
						stopOnce.Do(func() { close(stop) })
						return
					}
					continue
				}

				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ForEach consumes in until it closes. The first error from fn is returned
// and the rest of the channel is drained in the background.
func ForEach(ctx context.Context, in <-chan interface{}, fn func(interface{}) error) error {
	for {
		if err := ctx.Err(); err != nil {
			go drain(in)
			return err
		}
		select {
		case <-ctx.Done():
			go drain(in)
			return ctx.Err()
		case item, ok := <-in:
			if !ok {
				return nil
			}
			if err := fn(item); err != nil {
				go drain(in)
				return err
			}
		}
	}
}

func drain(in <-chan interface{}) {
	for range in {
	}
}
