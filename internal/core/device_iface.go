package core

import "context"

type Facing int

const (
	FacingAny Facing = iota
	FacingFront
	FacingBack
)

func (f Facing) String() string {
	switch f {
	case FacingFront:
		return "front"
	case FacingBack:
		return "back"
	default:
		return "any"
	}
}

func ParseFacing(s string) Facing {
	switch s {
	case "front", "user":
		return FacingFront
	case "back", "environment":
		return FacingBack
	default:
		return FacingAny
	}
}

// CameraDescriptor identifies one capture device.
type CameraDescriptor struct {
	DeviceID string
	Label    string
	Facing   Facing
}

// CaptureOptions is a best-effort resolution request.
type CaptureOptions struct {
	Width  int
	Height int
}

// DeviceAcquirer wraps camera and microphone capture.
// CreateVideoStream is only valid after StartCapture succeeded and
// CreateAudioStream only after StartAudioCapture succeeded.
type DeviceAcquirer interface {
	ListCameras(ctx context.Context, facing Facing) ([]CameraDescriptor, error)
	StartCapture(ctx context.Context, cam CameraDescriptor, opts CaptureOptions) error
	CreateVideoStream() (*LocalStream, error)
	StartAudioCapture(ctx context.Context) error
	CreateAudioStream() (*LocalStream, error)
	// StopCapture releases every started source. Safe to call repeatedly.
	StopCapture() error
}

// PermissionGate reports whether the user granted device access.
type PermissionGate interface {
	CameraGranted() bool
	MicrophoneGranted() bool
}
