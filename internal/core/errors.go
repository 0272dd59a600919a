package core

import "errors"

// Categories. Concrete causes are joined with one of these so callers can
// branch with errors.Is on either level.
var (
	ErrContextInit  = errors.New("media context init failed")
	ErrDevice       = errors.New("device unavailable")
	ErrRoom         = errors.New("room unavailable")
	ErrJoin         = errors.New("join failed")
	ErrPublish      = errors.New("publish failed")
	ErrSubscribe    = errors.New("subscribe failed")
	ErrPrecondition = errors.New("precondition violated")
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrRuntimeConflict   = errors.New("media runtime in incompatible state")
	ErrContextNotReady   = errors.New("media context not ready")

	ErrNoCamera          = errors.New("no camera available")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrCaptureNotStarted = errors.New("capture not started")

	ErrNotJoined           = errors.New("membership is not valid")
	ErrSurfaceNotReady     = errors.New("render surface not set up")
	ErrIncompatibleContent = errors.New("stream content type cannot be rendered")
)
