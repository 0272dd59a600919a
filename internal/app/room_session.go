package app

import (
	"context"
	"errors"
	"sync"

	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// RoomSession is one joined (or joining) room. It owns the membership and
// the publication registry and is not shared between attempts.
type RoomSession struct {
	backend  core.RoomBackend
	registry *PublicationRegistry
	inflight singleflight.Group

	mu         sync.RWMutex
	room       *domain.Room
	membership *core.Membership
}

func NewRoomSession(backend core.RoomBackend) *RoomSession {
	return &RoomSession{
		backend:  backend,
		registry: NewPublicationRegistry(),
	}
}

func (s *RoomSession) Registry() *PublicationRegistry { return s.registry }

// FindOrCreate resolves the room by name.
func (s *RoomSession) FindOrCreate(ctx context.Context, name domain.RoomName) (domain.Room, error) {
	room, err := s.backend.FindOrCreate(ctx, name)
	if err != nil {
		return domain.Room{}, errors.Join(core.ErrRoom, err)
	}
	s.mu.Lock()
	s.room = &room
	s.mu.Unlock()
	log.Info().Str("module", "app.session").Str("room", string(room.Name)).Str("room_id", string(room.ID)).Msg("room resolved")
	return room, nil
}

// Join returns nil when the join did not succeed. The registry is handed to
// the backend before the join so early announcements are queued.
func (s *RoomSession) Join(ctx context.Context, room domain.Room, init domain.MemberInit) *core.Membership {
	m, err := s.backend.Join(ctx, room, init, s.registry)
	if err != nil || m == nil {
		log.Warn().Err(err).Str("module", "app.session").Str("room", string(room.Name)).Str("name", init.Name).Msg("join failed")
		return nil
	}
	s.registry.SetSelf(m.Member.ID)
	s.mu.Lock()
	s.membership = m
	s.mu.Unlock()
	log.Info().Str("module", "app.session").Str("room", string(room.Name)).Str("member", string(m.Member.ID)).Msg("joined")
	return m
}

func (s *RoomSession) Membership() *core.Membership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.membership
}

func preconditionErr(category, cause error) error {
	return errors.Join(category, core.ErrPrecondition, cause)
}

// Publish announces a local stream. A nil membership is a precondition error.
func (s *RoomSession) Publish(ctx context.Context, m *core.Membership, stream *core.LocalStream) (domain.Publication, error) {
	if m == nil {
		return domain.Publication{}, preconditionErr(core.ErrPublish, core.ErrNotJoined)
	}
	if stream == nil || stream.TrackLocalStaticRTP == nil {
		return domain.Publication{}, preconditionErr(core.ErrPublish, errors.New("nil stream"))
	}
	pub, err := s.backend.Publish(ctx, m, stream.Kind(), stream.ID())
	if err != nil {
		return domain.Publication{}, errors.Join(core.ErrPublish, err)
	}
	s.registry.AddLocal(pub)
	log.Info().Str("module", "app.session").Str("publication", string(pub.ID)).Str("kind", pub.Kind).Msg("published")
	return pub, nil
}

// Subscribe yields at most one subscription per publication: concurrent and
// repeated calls share the first successful result.
func (s *RoomSession) Subscribe(ctx context.Context, m *core.Membership, pub domain.Publication) (*core.SubscriptionRecord, error) {
	if m == nil {
		return nil, preconditionErr(core.ErrSubscribe, core.ErrNotJoined)
	}
	if pub.Origin == domain.OriginLocal || pub.Publisher == m.Member.ID {
		return nil, preconditionErr(core.ErrSubscribe, errors.New("cannot subscribe to own publication"))
	}
	if rec, ok := s.registry.Subscription(pub.ID); ok {
		return rec, nil
	}

	v, err, _ := s.inflight.Do(string(pub.ID), func() (any, error) {
		if rec, ok := s.registry.Subscription(pub.ID); ok {
			return rec, nil
		}
		sub, err := s.backend.Subscribe(ctx, m, pub)
		if err != nil {
			return nil, errors.Join(core.ErrSubscribe, err)
		}
		rec, _ := s.registry.BindSubscription(pub.ID, &core.SubscriptionRecord{
			Subscription: sub,
			Stream:       core.NewRemoteStream(pub),
		})
		log.Info().Str("module", "app.session").Str("publication", string(pub.ID)).Str("subscription", string(rec.ID)).Msg("subscribed")
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.SubscriptionRecord), nil
}

// Leave drops the membership. It is a no-op when not joined.
func (s *RoomSession) Leave(ctx context.Context) error {
	s.mu.Lock()
	m := s.membership
	s.membership = nil
	s.mu.Unlock()
	if m == nil {
		return nil
	}
	if err := s.backend.Leave(ctx, m); err != nil {
		return errors.Join(core.ErrRoom, err)
	}
	log.Info().Str("module", "app.session").Str("member", string(m.Member.ID)).Msg("left room")
	return nil
}
