package render

import (
	"sync"

	"github.com/dkeye/voicejoin/internal/core"
	"github.com/rs/zerolog/log"
)

// Toast shows notices as log lines and keeps the last few for inspection.
type Toast struct {
	mu     sync.Mutex
	keep   int
	recent []core.Notice
}

func NewToast(keep int) *Toast {
	return &Toast{keep: keep}
}

var _ core.Notifier = (*Toast)(nil)

func (t *Toast) Notify(n core.Notice) {
	ev := log.Info()
	if n.Kind != core.NoticeJoined {
		ev = log.Warn().Err(n.Err)
	}
	ev.Str("module", "render").Msg(n.Message)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.recent = append(t.recent, n)
	if t.keep > 0 && len(t.recent) > t.keep {
		t.recent = t.recent[len(t.recent)-t.keep:]
	}
}

func (t *Toast) Recent() []core.Notice {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]core.Notice(nil), t.recent...)
}
