package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dkeye/voicejoin/internal/core"
	"github.com/rs/zerolog/log"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseContextInitializing
	PhaseContextReady
	PhaseDeviceAcquiring
	PhaseDeviceReady
	PhaseRoomResolving
	PhaseJoining
	PhaseJoined
	PhaseClosed
	PhaseFailed
)

var phaseNames = [...]string{
	"idle", "context_initializing", "context_ready", "device_acquiring",
	"device_ready", "room_resolving", "joining", "joined", "closed", "failed",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

func (p Phase) Terminal() bool { return p == PhaseClosed || p == PhaseFailed }

// Lifecycle is the state machine of one join attempt. It only moves
// forward; Failed and Closed are terminal and a retry needs a new Lifecycle.
type Lifecycle struct {
	mu     sync.Mutex
	phase  Phase
	reason error
}

func NewLifecycle() *Lifecycle { return &Lifecycle{} }

func (l *Lifecycle) Advance(to Phase) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase.Terminal() || to != l.phase+1 || to == PhaseFailed {
		return errors.Join(core.ErrPrecondition, fmt.Errorf("illegal transition %s -> %s", l.phase, to))
	}
	log.Debug().Str("module", "app.session").Str("from", l.phase.String()).Str("to", to.String()).Msg("phase")
	l.phase = to
	return nil
}

// Fail moves to Failed unless already terminal.
func (l *Lifecycle) Fail(reason error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase.Terminal() {
		return
	}
	log.Warn().Str("module", "app.session").Str("from", l.phase.String()).Err(reason).Msg("session failed")
	l.phase = PhaseFailed
	l.reason = reason
}

func (l *Lifecycle) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reason
}

// Close moves to Closed unless already terminal.
func (l *Lifecycle) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase.Terminal() {
		return
	}
	log.Debug().Str("module", "app.session").Str("from", l.phase.String()).Msg("session closed")
	l.phase = PhaseClosed
}
