package core

import (
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/pion/webrtc/v4"
)

// Stream is anything a render surface can be bound to.
type Stream interface {
	ID() string
	Kind() domain.ContentType
}

// LocalStream is a captured stream owned by the coordinator until published.
type LocalStream struct {
	*webrtc.TrackLocalStaticRTP
}

func NewLocalStream(track *webrtc.TrackLocalStaticRTP) *LocalStream {
	return &LocalStream{TrackLocalStaticRTP: track}
}

// RemoteStream is the consumable side of a subscription.
type RemoteStream struct {
	id          string
	kind        domain.ContentType
	publication domain.Publication
}

func NewRemoteStream(pub domain.Publication) *RemoteStream {
	return &RemoteStream{id: pub.StreamID, kind: pub.ContentType, publication: pub}
}

func (s *RemoteStream) ID() string                      { return s.id }
func (s *RemoteStream) Kind() domain.ContentType        { return s.kind }
func (s *RemoteStream) Publication() domain.Publication { return s.publication }

// SubscriptionRecord is a subscription plus its stream.
type SubscriptionRecord struct {
	domain.Subscription
	Stream *RemoteStream
}
