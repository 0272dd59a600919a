package domain

import (
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
)

// ContentType tags a stream as audio or video.
type ContentType = webrtc.RTPCodecType

const (
	ContentUnknown = webrtc.RTPCodecTypeUnknown
	ContentAudio   = webrtc.RTPCodecTypeAudio
	ContentVideo   = webrtc.RTPCodecTypeVideo
)

// ParseContentType accepts "audio" and "video".
func ParseContentType(s string) ContentType {
	return webrtc.NewRTPCodecType(s)
}

type Origin int

const (
	OriginRemote Origin = iota
	OriginLocal
)

func (o Origin) String() string {
	if o == OriginLocal {
		return "local"
	}
	return "remote"
}

type (
	PublicationID  string
	SubscriptionID string
)

// Publication is an announced stream.
// Origin is relative to the observer and never travels on the wire.
type Publication struct {
	ID            PublicationID `json:"id"`
	RoomID        RoomID        `json:"room_id"`
	Publisher     MemberID      `json:"publisher"`
	PublisherName string        `json:"publisher_name"`
	ContentType   ContentType   `json:"-"`
	Kind          string        `json:"kind"`
	StreamID      string        `json:"stream_id"`
	Origin        Origin        `json:"-"`
}

// Subscription binds one member to one publication.
type Subscription struct {
	ID            SubscriptionID `json:"id"`
	PublicationID PublicationID  `json:"publication_id"`
	Subscriber    MemberID       `json:"subscriber"`
}

func NewPublication(room RoomID, publisher Member, kind ContentType, streamID string) Publication {
	return Publication{
		ID:            PublicationID(uuid.NewString()),
		RoomID:        room,
		Publisher:     publisher.ID,
		PublisherName: publisher.Name,
		ContentType:   kind,
		Kind:          kind.String(),
		StreamID:      streamID,
	}
}

// Normalize restores ContentType after a publication crossed the wire.
func (p Publication) Normalize() Publication {
	p.ContentType = ParseContentType(p.Kind)
	return p
}

func NewSubscriptionID() SubscriptionID {
	return SubscriptionID(uuid.NewString())
}
