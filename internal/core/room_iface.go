package core

import (
	"context"

	"github.com/dkeye/voicejoin/internal/domain"
)

// Membership is the handle returned by a successful join.
// A nil *Membership means the join failed.
type Membership struct {
	Room   domain.Room
	Member domain.Member
}

// Announcer receives publications announced in a joined room.
// Implementations must not block.
type Announcer interface {
	Announce(pub domain.Publication)
}

// RoomBackend is the network side of a room.
type RoomBackend interface {
	// FindOrCreate resolves an existing room by name or creates it.
	FindOrCreate(ctx context.Context, name domain.RoomName) (domain.Room, error)
	// Join registers ann before the join takes effect, so no announcement
	// emitted during or right after the join is lost.
	Join(ctx context.Context, room domain.Room, init domain.MemberInit, ann Announcer) (*Membership, error)
	Publish(ctx context.Context, m *Membership, kind domain.ContentType, streamID string) (domain.Publication, error)
	Subscribe(ctx context.Context, m *Membership, pub domain.Publication) (domain.Subscription, error)
	Leave(ctx context.Context, m *Membership) error
}
