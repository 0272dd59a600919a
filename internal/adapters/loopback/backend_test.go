package loopback

import (
	"context"
	"errors"
	"testing"

	"github.com/dkeye/voicejoin/internal/app"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/dkeye/voicejoin/internal/hub"
)

type sink struct{ pubs []domain.Publication }

func (s *sink) Announce(pub domain.Publication) { s.pubs = append(s.pubs, pub) }

func TestLoopbackRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := New(hub.NewManager(0))

	room, err := b.FindOrCreate(ctx, "lobby")
	if err != nil {
		t.Fatal(err)
	}
	again, _ := b.FindOrCreate(ctx, "lobby")
	if again.ID != room.ID {
		t.Fatal("find-or-create must be idempotent by name")
	}

	bobSink := &sink{}
	alice, err := b.Join(ctx, room, domain.MemberInit{Name: "alice"}, &sink{})
	if err != nil {
		t.Fatal(err)
	}
	bob, err := b.Join(ctx, room, domain.MemberInit{Name: "bob"}, bobSink)
	if err != nil {
		t.Fatal(err)
	}

	pub, err := b.Publish(ctx, alice, domain.ContentVideo, "v")
	if err != nil {
		t.Fatal(err)
	}
	if len(bobSink.pubs) != 1 || bobSink.pubs[0].ID != pub.ID {
		t.Fatalf("bob announcements %+v", bobSink.pubs)
	}
	sub, err := b.Subscribe(ctx, bob, pub)
	if err != nil || sub.PublicationID != pub.ID {
		t.Fatalf("subscribe %+v %v", sub, err)
	}
	if err := b.Leave(ctx, bob); err != nil {
		t.Fatal(err)
	}
}

func TestLoopbackHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := New(hub.NewManager(0))
	if _, err := b.FindOrCreate(ctx, "lobby"); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestLoopbackEmptyRoomName(t *testing.T) {
	ctx := context.Background()
	b := New(hub.NewManager(0))

	first, err := app.NewRoomSession(b).FindOrCreate(ctx, "")
	if err != nil {
		t.Fatalf("empty name must resolve: %v", err)
	}
	second, err := app.NewRoomSession(b).FindOrCreate(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Fatalf("two sessions got rooms %s and %s", first.ID, second.ID)
	}
}
