package orch

import (
	"context"
	"errors"

	"github.com/dkeye/voicejoin/internal/app"
	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func deviceErr(err error) error {
	return errors.Join(core.ErrDevice, err)
}

// acquireDevices starts the first matching camera and the microphone and
// shows the local preview.
func (c *Coordinator) acquireDevices(ctx context.Context, a *Attempt) (video, audio *core.LocalStream, err error) {
	if err := a.lc.Advance(app.PhaseDeviceAcquiring); err != nil {
		return nil, nil, err
	}
	if c.Permissions != nil && (!c.Permissions.CameraGranted() || !c.Permissions.MicrophoneGranted()) {
		return nil, nil, deviceErr(core.ErrPermissionDenied)
	}

	cams, err := c.Devices.ListCameras(ctx, c.Settings.Facing)
	if err != nil {
		return nil, nil, deviceErr(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if len(cams) == 0 {
		return nil, nil, deviceErr(core.ErrNoCamera)
	}
	cam := cams[0]

	if err := c.Devices.StartCapture(ctx, cam, c.Settings.Capture); err != nil {
		return nil, nil, deviceErr(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	video, err = c.Devices.CreateVideoStream()
	if err != nil {
		return nil, nil, deviceErr(err)
	}
	if c.LocalSurface != nil {
		if err := c.Binder.SetupAndAttach(ctx, video, c.LocalSurface); err != nil {
			return nil, nil, deviceErr(err)
		}
	}

	if err := c.Devices.StartAudioCapture(ctx); err != nil {
		return nil, nil, deviceErr(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	audio, err = c.Devices.CreateAudioStream()
	if err != nil {
		return nil, nil, deviceErr(err)
	}
	log.Info().Str("module", "orch").Str("camera", cam.Label).Str("video", video.ID()).Str("audio", audio.ID()).Msg("devices ready")
	return video, audio, a.lc.Advance(app.PhaseDeviceReady)
}

// publish sends both local streams. Neither outcome affects the other.
func (c *Coordinator) publish(ctx context.Context, a *Attempt, m *core.Membership, video, audio *core.LocalStream) *Result {
	res := &Result{Membership: m}
	var g errgroup.Group
	g.Go(func() error {
		res.Video, res.VideoErr = a.session.Publish(ctx, m, video)
		return res.VideoErr
	})
	g.Go(func() error {
		res.Audio, res.AudioErr = a.session.Publish(ctx, m, audio)
		return res.AudioErr
	})
	if err := g.Wait(); err == nil {
		return res
	}

	for _, e := range []struct {
		kind string
		err  error
	}{{"video", res.VideoErr}, {"audio", res.AudioErr}} {
		if e.err != nil && ctx.Err() == nil {
			log.Warn().Err(e.err).Str("module", "orch").Str("kind", e.kind).Msg("publish failed")
			c.notify(ctx, core.Notice{Kind: core.NoticeError, Message: "Publish " + e.kind + " failed", Err: e.err})
		}
	}
	return res
}

// subscribeLoop reacts to remote publications for as long as the attempt
// lives. It only starts once m is valid; anything announced earlier waits in
// the registry.
func (c *Coordinator) subscribeLoop(ctx context.Context, a *Attempt, m *core.Membership) {
	reg := a.session.Registry()
	for {
		pub, err := reg.Next(ctx)
		if err != nil {
			return
		}
		if c.Policy != nil && c.Policy.OnPublication(pub) == app.SkipPublication {
			log.Debug().Str("module", "orch").Str("publication", string(pub.ID)).Msg("skipped by policy")
			continue
		}
		a.loop.Go(func() error {
			c.onRemotePublication(ctx, a, m, pub)
			return nil
		})
	}
}

func (c *Coordinator) onRemotePublication(ctx context.Context, a *Attempt, m *core.Membership, pub domain.Publication) {
	rec, err := a.session.Subscribe(ctx, m, pub)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Str("module", "orch").Str("publication", string(pub.ID)).Msg("subscribe failed")
			c.notify(ctx, core.Notice{Kind: core.NoticeError, Message: "Subscribe failed", Err: err})
		}
		return
	}
	if rec.Stream.Kind() != domain.ContentVideo || c.RemoteSurface == nil {
		return
	}
	if err := c.Binder.SetupAndAttach(ctx, rec.Stream, c.RemoteSurface); err != nil && ctx.Err() == nil {
		log.Warn().Err(err).Str("module", "orch").Str("publication", string(pub.ID)).Msg("remote attach failed")
		c.notify(ctx, core.Notice{Kind: core.NoticeError, Message: "Remote video unavailable", Err: err})
	}
}
