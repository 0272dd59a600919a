// Package mediactx holds the process-wide media runtime gate. No room,
// device or stream operation is valid until Setup has reached Ready.
package mediactx

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/voicejoin/internal/core"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type State int

const (
	Uninitialized State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Options configures the runtime. An empty Credential is accepted (dev mode).
type Options struct {
	Credential   string
	LogVerbosity zerolog.Level
}

// Runtime performs the one-time initialization of the underlying media stack.
type Runtime interface {
	Init(ctx context.Context, opts Options) error
}

// Context is the initialization gate. The zero value is not usable; use
// Default or New.
type Context struct {
	mu     sync.Mutex
	rt     Runtime
	state  State
	reason error
	codecs map[webrtc.RTPCodecType]webrtc.RTPCodecCapability
}

var global = New(PionRuntime{})

// Default returns the process-wide context.
func Default() *Context { return global }

// New returns an independent context. Only tests and embedders need this.
func New(rt Runtime) *Context {
	return &Context{rt: rt}
}

// Setup initializes the runtime once. Concurrent callers are serialized and
// all observe the same terminal state. Failed is terminal for the process.
func (c *Context) Setup(ctx context.Context, opts Options) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Ready:
		return Ready, nil
	case Failed:
		return Failed, c.reason
	}

	if err := ctx.Err(); err != nil {
		// cancelled before we touched the runtime; stay Uninitialized
		return Uninitialized, err
	}

	if err := c.rt.Init(ctx, opts); err != nil {
		c.state = Failed
		c.reason = errors.Join(core.ErrContextInit, err)
		log.Error().Err(err).Str("module", "mediactx").Msg("setup failed")
		return Failed, c.reason
	}
	c.state = Ready
	c.codecs = defaultCodecs()
	log.Info().Str("module", "mediactx").Str("verbosity", opts.LogVerbosity.String()).Msg("setup succeeded")
	return Ready, nil
}

func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the failure reason, if any.
func (c *Context) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

// Codec returns the capability used for new local tracks of kind.
func (c *Context) Codec(kind webrtc.RTPCodecType) (webrtc.RTPCodecCapability, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Ready {
		return webrtc.RTPCodecCapability{}, core.ErrContextNotReady
	}
	capability, ok := c.codecs[kind]
	if !ok {
		return webrtc.RTPCodecCapability{}, core.ErrIncompatibleContent
	}
	return capability, nil
}

func defaultCodecs() map[webrtc.RTPCodecType]webrtc.RTPCodecCapability {
	return map[webrtc.RTPCodecType]webrtc.RTPCodecCapability{
		webrtc.RTPCodecTypeVideo: {MimeType: webrtc.MimeTypeVP8, ClockRate: 90000},
		webrtc.RTPCodecTypeAudio: {MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2},
	}
}

// PionRuntime validates the credential, registers the default codecs with a
// pion media engine and applies the log verbosity.
type PionRuntime struct {
	// Now is used for token expiry checks; nil means time.Now.
	Now func() time.Time
}

func (r PionRuntime) Init(_ context.Context, opts Options) error {
	if err := r.checkCredential(opts.Credential); err != nil {
		return err
	}
	m := &webrtc.MediaEngine{}
	if err := m.RegisterDefaultCodecs(); err != nil {
		return errors.Join(core.ErrRuntimeConflict, err)
	}
	zerolog.SetGlobalLevel(opts.LogVerbosity)
	return nil
}

func (r PionRuntime) checkCredential(token string) error {
	if token == "" {
		return nil
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return errors.Join(core.ErrInvalidCredential, err)
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(now()) {
		return errors.Join(core.ErrInvalidCredential, jwt.ErrTokenExpired)
	}
	return nil
}
