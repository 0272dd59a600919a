package orch

import (
	"context"
	"errors"

	"github.com/dkeye/voicejoin/internal/app"
	"github.com/dkeye/voicejoin/internal/app/mediactx"
	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	msgJoined     = "Joined room"
	msgJoinFailed = "Join failed"
)

// sequence runs every step up to and including publishing. ctx is checked
// after each suspension point.
func (c *Coordinator) sequence(ctx context.Context, a *Attempt) (*Result, error) {
	if err := c.setupContext(ctx, a); err != nil {
		return nil, err
	}
	video, audio, err := c.acquireDevices(ctx, a)
	if err != nil {
		return nil, err
	}

	if err := a.lc.Advance(app.PhaseRoomResolving); err != nil {
		return nil, err
	}
	name := c.Settings.RoomName
	if name == "" {
		name = domain.DefaultRoomName()
	}
	room, err := a.session.FindOrCreate(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := a.lc.Advance(app.PhaseJoining); err != nil {
		return nil, err
	}
	member := c.Settings.MemberName
	if member == "" {
		member = domain.NewMemberName(domain.DefaultMemberPrefix)
	}
	m := a.session.Join(ctx, room, domain.MemberInit{Name: member})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		c.notify(ctx, core.Notice{Kind: core.NoticeJoinFailed, Message: msgJoinFailed, Err: core.ErrJoin})
		return nil, core.ErrJoin
	}
	c.notify(ctx, core.Notice{Kind: core.NoticeJoined, Message: msgJoined})
	if err := a.lc.Advance(app.PhaseJoined); err != nil {
		return nil, err
	}

	a.loop.Go(func() error {
		c.subscribeLoop(ctx, a, m)
		return nil
	})

	res := c.publish(ctx, a, m, video, audio)
	return res, nil
}

func (c *Coordinator) setupContext(ctx context.Context, a *Attempt) error {
	if err := a.lc.Advance(app.PhaseContextInitializing); err != nil {
		return err
	}
	state, err := c.Context.Setup(ctx, mediactx.Options{
		Credential:   c.Settings.Credential,
		LogVerbosity: c.Settings.LogVerbosity,
	})
	if err != nil {
		return err
	}
	if state != mediactx.Ready {
		return errors.Join(core.ErrContextInit, core.ErrContextNotReady)
	}
	return a.lc.Advance(app.PhaseContextReady)
}

func (c *Coordinator) notify(ctx context.Context, n core.Notice) {
	if c.Notifier == nil {
		return
	}
	err := c.UI.Post(ctx, func() { c.Notifier.Notify(n) })
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("notice", n.Message).Msg("notice not delivered")
	}
}

// report turns a sequence failure into one notice. Join failures were
// already reported when they happened.
func (c *Coordinator) report(ctx context.Context, err error) {
	var msg string
	switch {
	case errors.Is(err, core.ErrJoin):
		return
	case errors.Is(err, core.ErrContextInit):
		msg = "Media setup failed"
	case errors.Is(err, core.ErrDevice):
		msg = "Camera or microphone unavailable"
	case errors.Is(err, core.ErrRoom):
		msg = "Room unavailable"
	default:
		msg = "Session failed"
	}
	c.notify(ctx, core.Notice{Kind: core.NoticeError, Message: msg, Err: err})
}
