package hub

import (
	"errors"
	"sync"

	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrRoomFull           = errors.New("room is full")
	ErrNotMember          = errors.New("not a member of this room")
	ErrUnknownPublication = errors.New("unknown publication")
	ErrOwnPublication     = errors.New("cannot subscribe to own publication")
)

type memberEntry struct {
	member domain.Member
	ann    core.Announcer
}

type subKey struct {
	member domain.MemberID
	pub    domain.PublicationID
}

// Room is a threadsafe in-memory room. Announcers are called with the room
// lock held and must not block.
type Room struct {
	info       domain.Room
	maxMembers int

	mu      sync.RWMutex
	members map[domain.MemberID]*memberEntry
	pubs    map[domain.PublicationID]domain.Publication
	order   []domain.PublicationID
	subs    map[subKey]domain.Subscription
}

func NewRoom(info domain.Room, maxMembers int) *Room {
	return &Room{
		info:       info,
		maxMembers: maxMembers,
		members:    make(map[domain.MemberID]*memberEntry),
		pubs:       make(map[domain.PublicationID]domain.Publication),
		subs:       make(map[subKey]domain.Subscription),
	}
}

func (r *Room) Info() domain.Room { return r.info }

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Join admits a new member. ann is registered before any publication is
// delivered and immediately receives every publication already in the room.
func (r *Room) Join(init domain.MemberInit, ann core.Announcer) (domain.Member, error) {
	if err := init.Validate(); err != nil {
		return domain.Member{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maxMembers > 0 && len(r.members) >= r.maxMembers {
		log.Warn().Str("module", "hub.room").Str("room", string(r.info.Name)).Int("max", r.maxMembers).Msg("join refused: room full")
		return domain.Member{}, ErrRoomFull
	}

	m := domain.Member{ID: domain.NewMemberID(), Name: init.Name, RoomID: r.info.ID}
	r.members[m.ID] = &memberEntry{member: m, ann: ann}
	log.Info().Str("module", "hub.room").Str("room", string(r.info.Name)).Str("member", string(m.ID)).Str("name", m.Name).Msg("member joined")

	if ann != nil {
		for _, id := range r.order {
			ann.Announce(r.pubs[id])
		}
	}
	return m, nil
}

// Publish records a publication and announces it to every other member.
func (r *Room) Publish(member domain.MemberID, kind domain.ContentType, streamID string) (domain.Publication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.members[member]
	if !ok {
		return domain.Publication{}, ErrNotMember
	}
	pub := domain.NewPublication(r.info.ID, e.member, kind, streamID)
	r.pubs[pub.ID] = pub
	r.order = append(r.order, pub.ID)

	sent := 0
	for id, other := range r.members {
		if id == member || other.ann == nil {
			continue
		}
		other.ann.Announce(pub)
		sent++
	}
	log.Debug().Str("module", "hub.room").Str("publication", string(pub.ID)).Str("kind", pub.Kind).Int("sent_to", sent).Msg("publication announced")
	return pub, nil
}

// Subscribe is idempotent per member and publication.
func (r *Room) Subscribe(member domain.MemberID, pubID domain.PublicationID) (domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[member]; !ok {
		return domain.Subscription{}, ErrNotMember
	}
	pub, ok := r.pubs[pubID]
	if !ok {
		return domain.Subscription{}, ErrUnknownPublication
	}
	if pub.Publisher == member {
		return domain.Subscription{}, ErrOwnPublication
	}
	key := subKey{member: member, pub: pubID}
	if sub, ok := r.subs[key]; ok {
		return sub, nil
	}
	sub := domain.Subscription{ID: domain.NewSubscriptionID(), PublicationID: pubID, Subscriber: member}
	r.subs[key] = sub
	log.Info().Str("module", "hub.room").Str("publication", string(pubID)).Str("subscriber", string(member)).Msg("subscribed")
	return sub, nil
}

// Leave removes the member together with its publications and
// subscriptions.
func (r *Room) Leave(member domain.MemberID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[member]; !ok {
		return ErrNotMember
	}
	delete(r.members, member)

	kept := r.order[:0]
	for _, id := range r.order {
		if r.pubs[id].Publisher == member {
			delete(r.pubs, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	for k := range r.subs {
		if k.member == member {
			delete(r.subs, k)
		} else if _, ok := r.pubs[k.pub]; !ok {
			delete(r.subs, k)
		}
	}
	log.Info().Str("module", "hub.room").Str("room", string(r.info.Name)).Str("member", string(member)).Msg("member left")
	return nil
}

// Publications returns the room's publications in announcement order.
func (r *Room) Publications() []domain.Publication {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Publication, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.pubs[id])
	}
	return out
}

func (r *Room) Member(id domain.MemberID) (domain.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.members[id]
	if !ok {
		return domain.Member{}, false
	}
	return e.member, true
}
