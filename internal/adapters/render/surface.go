// Package render has headless render surfaces and notifications. Both log
// what a screen would show.
package render

import (
	"errors"
	"sync"

	"github.com/dkeye/voicejoin/internal/core"
	"github.com/rs/zerolog/log"
)

var ErrNotSetUp = errors.New("surface not set up")

// LogSurface records attached renderers. Only touched from the UI queue;
// the mutex guards reads from tests and status output.
type LogSurface struct {
	name string

	mu       sync.Mutex
	setup    bool
	renderer core.Stream
	frames   int
}

func NewLogSurface(name string) *LogSurface {
	return &LogSurface{name: name}
}

var _ core.Surface = (*LogSurface)(nil)

func (s *LogSurface) Name() string { return s.name }

func (s *LogSurface) Setup() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.setup {
		s.setup = true
		log.Debug().Str("module", "render").Str("surface", s.name).Msg("surface set up")
	}
	return nil
}

func (s *LogSurface) IsSetup() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setup
}

func (s *LogSurface) AddRenderer(st core.Stream) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.setup {
		return ErrNotSetUp
	}
	s.renderer = st
	s.frames++
	log.Info().Str("module", "render").Str("surface", s.name).Str("stream", st.ID()).Str("kind", st.Kind().String()).Msg("rendering")
	return nil
}

func (s *LogSurface) RemoveRenderer(st core.Stream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderer != nil && s.renderer.ID() == st.ID() {
		s.renderer = nil
		log.Info().Str("module", "render").Str("surface", s.name).Str("stream", st.ID()).Msg("renderer removed")
	}
}

// Renderer returns the attached stream, nil when idle.
func (s *LogSurface) Renderer() core.Stream {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer
}
