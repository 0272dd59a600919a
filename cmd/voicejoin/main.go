package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/dkeye/voicejoin/internal/adapters/device"
	"github.com/dkeye/voicejoin/internal/adapters/loopback"
	"github.com/dkeye/voicejoin/internal/adapters/remote"
	"github.com/dkeye/voicejoin/internal/adapters/render"
	"github.com/dkeye/voicejoin/internal/app"
	"github.com/dkeye/voicejoin/internal/app/mediactx"
	"github.com/dkeye/voicejoin/internal/app/orch"
	"github.com/dkeye/voicejoin/internal/app/ui"
	"github.com/dkeye/voicejoin/internal/config"
	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/dkeye/voicejoin/internal/hub"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	fs := pflag.NewFlagSet("voicejoin", pflag.ExitOnError)
	config.ClientFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Err(err).Str("log_level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}

	var backend core.RoomBackend
	switch cfg.Backend {
	case config.BackendLoopback:
		backend = loopback.New(hub.NewManager(0))
	default:
		rb, err := remote.Dial(ctx, cfg.ServerURL, nil)
		if err != nil {
			log.Fatal().Err(err).Str("url", cfg.ServerURL).Msg("failed to reach roomd")
		}
		defer rb.Close()
		backend = rb
	}

	media := mediactx.Default()
	perms := device.StaticPermissions{Camera: cfg.CameraPermission, Microphone: cfg.MicrophonePermission}
	dispatcher := ui.NewDispatcher(64)
	local, remoteView := render.NewLogSurface("local"), render.NewLogSurface("remote")

	coord := &orch.Coordinator{
		Context:       media,
		Devices:       device.NewSynthetic(device.ParseCameras(cfg.Cameras), media, perms),
		Permissions:   perms,
		Backend:       backend,
		UI:            dispatcher,
		Notifier:      render.NewToast(16),
		Binder:        app.NewRenderBinder(dispatcher),
		LocalSurface:  local,
		RemoteSurface: remoteView,
		Policy:        app.NewPolicy(cfg.SubscribeAllow),
		Settings: orch.Settings{
			Credential:   cfg.Credential,
			LogVerbosity: level,
			RoomName:     domain.RoomName(cfg.Room),
			MemberName:   domain.NewMemberName(cfg.MemberPrefix),
			Facing:       core.ParseFacing(cfg.Facing),
			Capture:      core.CaptureOptions{Width: cfg.CaptureWidth, Height: cfg.CaptureHeight},
		},
	}

	attempt := coord.Start(ctx)

	uiCtx, stopUI := context.WithCancel(context.Background())
	go func() {
		<-attempt.Done()
		stopUI()
	}()
	go func() {
		res, err := attempt.Wait(ctx)
		if err != nil {
			log.Error().Err(err).Str("phase", attempt.Phase().String()).Msg("session ended")
			return
		}
		log.Info().
			Str("room", string(res.Membership.Room.Name)).
			Str("member", res.Membership.Member.Name).
			Msg("session live, press Ctrl+C to leave")
	}()

	// the main goroutine is the UI goroutine
	dispatcher.Run(uiCtx)
	log.Info().Msg("voicejoin exited")
}
