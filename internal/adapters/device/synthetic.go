// Package device provides a capture device set backed by pion local tracks
// instead of real hardware.
package device

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dkeye/voicejoin/internal/core"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

const (
	maxWidth  = 1920
	maxHeight = 1080
)

// CodecSource resolves the capability a new track is created with.
type CodecSource interface {
	Codec(kind webrtc.RTPCodecType) (webrtc.RTPCodecCapability, error)
}

// StaticPermissions is a PermissionGate with fixed answers.
type StaticPermissions struct {
	Camera     bool
	Microphone bool
}

func (p StaticPermissions) CameraGranted() bool     { return p.Camera }
func (p StaticPermissions) MicrophoneGranted() bool { return p.Microphone }

// ParseCameras turns "facing:label" entries into descriptors. A missing
// facing prefix means any.
func ParseCameras(entries []string) []core.CameraDescriptor {
	out := make([]core.CameraDescriptor, 0, len(entries))
	for i, s := range entries {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		facing, label := core.FacingAny, s
		if f, l, ok := strings.Cut(s, ":"); ok {
			facing, label = core.ParseFacing(f), l
		}
		out = append(out, core.CameraDescriptor{
			DeviceID: fmt.Sprintf("cam-%d", i),
			Label:    label,
			Facing:   facing,
		})
	}
	return out
}

// Synthetic implements core.DeviceAcquirer.
type Synthetic struct {
	cameras []core.CameraDescriptor
	codecs  CodecSource
	perms   core.PermissionGate

	mu     sync.Mutex
	camera *core.CameraDescriptor
	opts   core.CaptureOptions
	audio  bool
}

func NewSynthetic(cameras []core.CameraDescriptor, codecs CodecSource, perms core.PermissionGate) *Synthetic {
	return &Synthetic{cameras: cameras, codecs: codecs, perms: perms}
}

var _ core.DeviceAcquirer = (*Synthetic)(nil)

func (d *Synthetic) ListCameras(ctx context.Context, facing core.Facing) ([]core.CameraDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !d.perms.CameraGranted() {
		return nil, core.ErrPermissionDenied
	}
	out := make([]core.CameraDescriptor, 0, len(d.cameras))
	for _, c := range d.cameras {
		if facing == core.FacingAny || c.Facing == facing {
			out = append(out, c)
		}
	}
	log.Debug().Str("module", "device").Str("facing", facing.String()).Int("found", len(out)).Msg("cameras listed")
	return out, nil
}

// StartCapture treats the requested size as a hint and clamps it.
func (d *Synthetic) StartCapture(ctx context.Context, cam core.CameraDescriptor, opts core.CaptureOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !d.perms.CameraGranted() {
		return core.ErrPermissionDenied
	}
	known := false
	for _, c := range d.cameras {
		if c.DeviceID == cam.DeviceID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown camera %q", cam.DeviceID)
	}
	opts.Width = min(max(opts.Width, 1), maxWidth)
	opts.Height = min(max(opts.Height, 1), maxHeight)

	d.mu.Lock()
	d.camera = &cam
	d.opts = opts
	d.mu.Unlock()
	log.Info().Str("module", "device").Str("camera", cam.Label).Int("width", opts.Width).Int("height", opts.Height).Msg("video capture started")
	return nil
}

func (d *Synthetic) CreateVideoStream() (*core.LocalStream, error) {
	d.mu.Lock()
	started := d.camera != nil
	d.mu.Unlock()
	if !started {
		return nil, errors.Join(core.ErrPrecondition, core.ErrCaptureNotStarted)
	}
	return d.track(webrtc.RTPCodecTypeVideo)
}

func (d *Synthetic) StartAudioCapture(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !d.perms.MicrophoneGranted() {
		return core.ErrPermissionDenied
	}
	d.mu.Lock()
	d.audio = true
	d.mu.Unlock()
	log.Info().Str("module", "device").Msg("audio capture started")
	return nil
}

func (d *Synthetic) CreateAudioStream() (*core.LocalStream, error) {
	d.mu.Lock()
	started := d.audio
	d.mu.Unlock()
	if !started {
		return nil, errors.Join(core.ErrPrecondition, core.ErrCaptureNotStarted)
	}
	return d.track(webrtc.RTPCodecTypeAudio)
}

func (d *Synthetic) track(kind webrtc.RTPCodecType) (*core.LocalStream, error) {
	capability, err := d.codecs.Codec(kind)
	if err != nil {
		return nil, err
	}
	id := kind.String() + "-" + uuid.NewString()
	t, err := webrtc.NewTrackLocalStaticRTP(capability, id, "voicejoin")
	if err != nil {
		return nil, err
	}
	return core.NewLocalStream(t), nil
}

func (d *Synthetic) StopCapture() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.camera == nil && !d.audio {
		return nil
	}
	d.camera = nil
	d.audio = false
	log.Info().Str("module", "device").Msg("capture stopped")
	return nil
}

// Capturing reports whether any source is active.
func (d *Synthetic) Capturing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.camera != nil || d.audio
}
