package app

import (
	"context"
	"sync"

	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog/log"
)

type pubEntry struct {
	pub domain.Publication
	sub *core.SubscriptionRecord
}

// PublicationRegistry tracks the publications of one room session. It only
// reports facts: each newly announced remote publication is queued exactly
// once and handed out by Next. The queue is unbounded so announcements that
// arrive before anyone consumes them are kept.
type PublicationRegistry struct {
	mu      sync.Mutex
	self    domain.MemberID
	entries map[domain.PublicationID]*pubEntry
	order   []domain.PublicationID
	pending []domain.Publication
	wake    chan struct{}
}

func NewPublicationRegistry() *PublicationRegistry {
	return &PublicationRegistry{
		entries: make(map[domain.PublicationID]*pubEntry),
		wake:    make(chan struct{}, 1),
	}
}

// SetSelf records the local member so its own publications are never
// reported as remote.
func (r *PublicationRegistry) SetSelf(id domain.MemberID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.self = id
}

// Announce implements core.Announcer.
func (r *PublicationRegistry) Announce(pub domain.Publication) {
	r.Ingest(pub)
}

// Ingest records a remote publication. It reports false when the
// publication was already known.
func (r *PublicationRegistry) Ingest(pub domain.Publication) bool {
	r.mu.Lock()
	if _, ok := r.entries[pub.ID]; ok {
		r.mu.Unlock()
		return false
	}
	if r.self != "" && pub.Publisher == r.self {
		pub.Origin = domain.OriginLocal
		r.add(pub)
		r.mu.Unlock()
		return false
	}
	pub.Origin = domain.OriginRemote
	r.add(pub)
	r.pending = append(r.pending, pub)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	log.Debug().Str("module", "app.registry").Str("publication", string(pub.ID)).Str("kind", pub.Kind).Msg("remote publication announced")
	return true
}

// AddLocal records one of our own publications.
func (r *PublicationRegistry) AddLocal(pub domain.Publication) {
	pub.Origin = domain.OriginLocal
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[pub.ID]; ok {
		e.pub.Origin = domain.OriginLocal
		return
	}
	r.add(pub)
}

func (r *PublicationRegistry) add(pub domain.Publication) {
	r.entries[pub.ID] = &pubEntry{pub: pub}
	r.order = append(r.order, pub.ID)
}

// Next blocks until a remote publication is queued or ctx is done.
func (r *PublicationRegistry) Next(ctx context.Context) (domain.Publication, error) {
	for {
		r.mu.Lock()
		if len(r.pending) > 0 {
			pub := r.pending[0]
			r.pending[0] = domain.Publication{}
			r.pending = r.pending[1:]
			more := len(r.pending) > 0
			r.mu.Unlock()
			if more {
				select {
				case r.wake <- struct{}{}:
				default:
				}
			}
			return pub, nil
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return domain.Publication{}, ctx.Err()
		case <-r.wake:
		}
	}
}

func (r *PublicationRegistry) Get(id domain.PublicationID) (domain.Publication, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return domain.Publication{}, false
	}
	return e.pub, true
}

func (r *PublicationRegistry) Subscription(id domain.PublicationID) (*core.SubscriptionRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.sub == nil {
		return nil, false
	}
	return e.sub, true
}

// BindSubscription stores rec unless a subscription already exists for the
// publication, in which case the existing one is returned with false.
func (r *PublicationRegistry) BindSubscription(id domain.PublicationID, rec *core.SubscriptionRecord) (*core.SubscriptionRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		e = &pubEntry{pub: rec.Stream.Publication()}
		r.entries[id] = e
		r.order = append(r.order, id)
	}
	if e.sub != nil {
		return e.sub, false
	}
	e.sub = rec
	return rec, true
}

// Snapshot returns every known publication in arrival order.
func (r *PublicationRegistry) Snapshot() []domain.Publication {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Publication, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].pub)
	}
	return out
}

// Subscriptions returns the active subscription count.
func (r *PublicationRegistry) Subscriptions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.sub != nil {
			n++
		}
	}
	return n
}
