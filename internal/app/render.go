package app

import (
	"context"
	"errors"

	"github.com/dkeye/voicejoin/internal/app/ui"
	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog/log"
)

// RenderBinder binds streams to surfaces. Every surface call is marshalled
// onto the UI dispatcher; bindings is only touched from there.
type RenderBinder struct {
	ui       *ui.Dispatcher
	bindings map[string]core.Stream
}

func NewRenderBinder(d *ui.Dispatcher) *RenderBinder {
	return &RenderBinder{ui: d, bindings: make(map[string]core.Stream)}
}

// Attach binds s to surface. The surface must already be set up.
func (b *RenderBinder) Attach(ctx context.Context, s core.Stream, surface core.Surface) error {
	return b.ui.Do(ctx, func() error { return b.attach(s, surface) })
}

// SetupAndAttach runs the surface setup, if needed, and the attach in the
// same UI task so setup strictly precedes the attach.
func (b *RenderBinder) SetupAndAttach(ctx context.Context, s core.Stream, surface core.Surface) error {
	return b.ui.Do(ctx, func() error {
		if surface == nil {
			return errors.Join(core.ErrPrecondition, errors.New("nil surface"))
		}
		if !surface.IsSetup() {
			if err := surface.Setup(); err != nil {
				return err
			}
		}
		return b.attach(s, surface)
	})
}

func (b *RenderBinder) attach(s core.Stream, surface core.Surface) error {
	if s == nil || surface == nil {
		return errors.Join(core.ErrPrecondition, errors.New("nil stream or surface"))
	}
	if s.Kind() != domain.ContentVideo {
		return errors.Join(core.ErrPrecondition, core.ErrIncompatibleContent)
	}
	if !surface.IsSetup() {
		return errors.Join(core.ErrPrecondition, core.ErrSurfaceNotReady)
	}

	name := surface.Name()
	if prev, ok := b.bindings[name]; ok {
		if prev.ID() == s.ID() {
			return nil
		}
		surface.RemoveRenderer(prev)
		delete(b.bindings, name)
		log.Debug().Str("module", "render").Str("surface", name).Str("stream", prev.ID()).Msg("detached previous stream")
	}
	if err := surface.AddRenderer(s); err != nil {
		return err
	}
	b.bindings[name] = s
	log.Info().Str("module", "render").Str("surface", name).Str("stream", s.ID()).Msg("attached")
	return nil
}

// Detach unbinds whatever stream is attached to surface.
func (b *RenderBinder) Detach(ctx context.Context, surface core.Surface) error {
	return b.ui.Do(ctx, func() error {
		name := surface.Name()
		if prev, ok := b.bindings[name]; ok {
			surface.RemoveRenderer(prev)
			delete(b.bindings, name)
		}
		return nil
	})
}

// Bound returns the stream currently attached to the named surface.
func (b *RenderBinder) Bound(ctx context.Context, surfaceName string) (core.Stream, error) {
	var s core.Stream
	err := b.ui.Do(ctx, func() error {
		s = b.bindings[surfaceName]
		return nil
	})
	return s, err
}
