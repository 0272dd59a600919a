// Package loopback is an in-process RoomBackend over a hub.Manager.
package loopback

import (
	"context"
	"errors"

	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/dkeye/voicejoin/internal/hub"
)

type Backend struct {
	rooms *hub.Manager
}

func New(rooms *hub.Manager) *Backend {
	return &Backend{rooms: rooms}
}

var _ core.RoomBackend = (*Backend)(nil)

func (b *Backend) FindOrCreate(ctx context.Context, name domain.RoomName) (domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return domain.Room{}, err
	}
	return b.rooms.FindOrCreate(name).Info(), nil
}

func (b *Backend) Join(ctx context.Context, room domain.Room, init domain.MemberInit, ann core.Announcer) (*core.Membership, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := b.room(room.ID)
	if err != nil {
		return nil, err
	}
	m, err := r.Join(init, ann)
	if err != nil {
		return nil, err
	}
	return &core.Membership{Room: r.Info(), Member: m}, nil
}

func (b *Backend) Publish(ctx context.Context, m *core.Membership, kind domain.ContentType, streamID string) (domain.Publication, error) {
	if err := ctx.Err(); err != nil {
		return domain.Publication{}, err
	}
	r, err := b.room(m.Room.ID)
	if err != nil {
		return domain.Publication{}, err
	}
	return r.Publish(m.Member.ID, kind, streamID)
}

func (b *Backend) Subscribe(ctx context.Context, m *core.Membership, pub domain.Publication) (domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return domain.Subscription{}, err
	}
	r, err := b.room(m.Room.ID)
	if err != nil {
		return domain.Subscription{}, err
	}
	return r.Subscribe(m.Member.ID, pub.ID)
}

func (b *Backend) Leave(_ context.Context, m *core.Membership) error {
	r, err := b.room(m.Room.ID)
	if err != nil {
		return err
	}
	return r.Leave(m.Member.ID)
}

func (b *Backend) room(id domain.RoomID) (*hub.Room, error) {
	r, ok := b.rooms.Lookup(id)
	if !ok {
		return nil, errors.New("unknown room " + string(id))
	}
	return r, nil
}
