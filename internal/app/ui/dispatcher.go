// Package ui provides the single UI-affine queue. Render surfaces and user
// notifications are only touched from tasks running on it.
package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrStopped = errors.New("ui dispatcher stopped")

type Dispatcher struct {
	tasks chan func()

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

func NewDispatcher(buffer int) *Dispatcher {
	return &Dispatcher{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run executes queued tasks one at a time on the calling goroutine until ctx
// is done. The goroutine that calls Run is the UI goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	defer func() {
		// close done first: blocked Posts hold the read lock until they see it
		close(d.done)
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()
		log.Info().Str("module", "ui").Msg("dispatcher stopped")
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-d.tasks:
			d.exec(fn)
		}
	}
}

func (d *Dispatcher) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("module", "ui").Interface("panic", r).Msg("ui task panicked")
		}
	}()
	fn()
}

// Post queues fn without waiting for it to run.
func (d *Dispatcher) Post(ctx context.Context, fn func()) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}
	select {
	case d.tasks <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		return ErrStopped
	}
}

// Do runs fn on the UI goroutine and waits for its result.
func (d *Dispatcher) Do(ctx context.Context, fn func() error) error {
	res := make(chan error, 1)
	if err := d.Post(ctx, func() { res <- fn() }); err != nil {
		return err
	}
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		// the task may still have run; prefer its result when available
		select {
		case err := <-res:
			return err
		default:
			return ErrStopped
		}
	}
}

// Done is closed once Run has returned.
func (d *Dispatcher) Done() <-chan struct{} { return d.done }
