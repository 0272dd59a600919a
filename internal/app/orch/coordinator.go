// Package orch drives one participant through context setup, capture,
// room join, publishing and auto-subscribe.
package orch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/voicejoin/internal/app"
	"github.com/dkeye/voicejoin/internal/app/mediactx"
	"github.com/dkeye/voicejoin/internal/app/ui"
	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const teardownTimeout = 3 * time.Second

// MediaContext is the part of mediactx.Context the coordinator needs.
type MediaContext interface {
	Setup(ctx context.Context, opts mediactx.Options) (mediactx.State, error)
}

type Settings struct {
	Credential   string
	LogVerbosity zerolog.Level
	RoomName     domain.RoomName
	MemberName   string
	Facing       core.Facing
	Capture      core.CaptureOptions
}

// Coordinator holds the collaborators shared by every attempt. Each call to
// Start owns a fresh RoomSession.
type Coordinator struct {
	Context       MediaContext
	Devices       core.DeviceAcquirer
	Permissions   core.PermissionGate
	Backend       core.RoomBackend
	UI            *ui.Dispatcher
	Notifier      core.Notifier
	Binder        *app.RenderBinder
	LocalSurface  core.Surface
	RemoteSurface core.Surface
	Policy        app.Policy
	Settings      Settings
}

// Result is what a settled attempt produced. Publish errors are per stream
// and do not fail the attempt.
type Result struct {
	Membership *core.Membership
	Video      domain.Publication
	Audio      domain.Publication
	VideoErr   error
	AudioErr   error
}

// Attempt is one background join attempt.
type Attempt struct {
	lc      *app.Lifecycle
	session *app.RoomSession
	cancel  context.CancelFunc

	// subscriber loop and its handlers
	loop errgroup.Group

	settleOnce sync.Once
	settled    chan struct{}
	result     *Result
	err        error

	done chan struct{}
}

// Start launches the attempt. It keeps reacting to remote publications
// until ctx is done or Cancel is called.
func (c *Coordinator) Start(parent context.Context) *Attempt {
	ctx, cancel := context.WithCancel(parent)
	a := &Attempt{
		lc:      app.NewLifecycle(),
		session: app.NewRoomSession(c.Backend),
		cancel:  cancel,
		settled: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.run(ctx, a)
	return a
}

// Run starts an attempt and waits until it has settled.
func (c *Coordinator) Run(ctx context.Context) (*Attempt, *Result, error) {
	a := c.Start(ctx)
	res, err := a.Wait(ctx)
	return a, res, err
}

func (c *Coordinator) run(ctx context.Context, a *Attempt) {
	defer close(a.done)
	defer a.cancel()

	res, err := c.sequence(ctx, a)
	if err != nil {
		if ctx.Err() != nil {
			if !errors.Is(err, ctx.Err()) {
				err = errors.Join(err, ctx.Err())
			}
			a.lc.Close()
			log.Info().Str("module", "orch").Str("phase", a.lc.Phase().String()).Msg("attempt cancelled")
		} else {
			a.lc.Fail(err)
			c.report(ctx, err)
		}
		a.settle(nil, err)
		a.cancel()
		_ = a.loop.Wait()
		c.teardown(a)
		return
	}
	a.settle(res, nil)

	<-ctx.Done()
	_ = a.loop.Wait()
	c.teardown(a)
	a.lc.Close()
}

func (c *Coordinator) teardown(a *Attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()

	if err := a.session.Leave(ctx); err != nil {
		log.Warn().Err(err).Str("module", "orch").Msg("leave on teardown")
	}
	for _, s := range []core.Surface{c.LocalSurface, c.RemoteSurface} {
		if s == nil || c.Binder == nil {
			continue
		}
		if err := c.Binder.Detach(ctx, s); err != nil && !errors.Is(err, ui.ErrStopped) {
			log.Warn().Err(err).Str("module", "orch").Str("surface", s.Name()).Msg("detach on teardown")
		}
	}
	if err := c.Devices.StopCapture(); err != nil {
		log.Warn().Err(err).Str("module", "orch").Msg("stop capture")
	}
	log.Info().Str("module", "orch").Msg("attempt torn down")
}

func (a *Attempt) settle(res *Result, err error) {
	a.settleOnce.Do(func() {
		a.result, a.err = res, err
		close(a.settled)
	})
}

// Wait blocks until the join sequence has settled.
func (a *Attempt) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-a.settled:
		return a.result, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Settled is closed once the sequence reached Joined or gave up.
func (a *Attempt) Settled() <-chan struct{} { return a.settled }

// Done is closed after teardown.
func (a *Attempt) Done() <-chan struct{} { return a.done }

// Cancel abandons the attempt. No further step runs and capture is stopped.
func (a *Attempt) Cancel() { a.cancel() }

func (a *Attempt) Phase() app.Phase { return a.lc.Phase() }

func (a *Attempt) Session() *app.RoomSession { return a.session }
