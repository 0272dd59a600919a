package signal

import "github.com/dkeye/voicejoin/internal/domain"

// Message types. Requests carry a Req id that the matching result echoes.
const (
	TypeFindOrCreate = "find_or_create"
	TypeJoin         = "join"
	TypePublish      = "publish"
	TypeSubscribe    = "subscribe"
	TypeLeave        = "leave"
	TypePing         = "ping"

	TypeResult      = "result"
	TypePublication = "publication"
)

const MaxRoomNameLen = 64

// Envelope is the single JSON frame shape used in both directions.
type Envelope struct {
	Type  string `json:"type"`
	Req   uint64 `json:"req,omitempty"`
	Error string `json:"error,omitempty"`

	RoomName     domain.RoomName      `json:"room_name,omitempty"`
	Room         *domain.Room         `json:"room,omitempty"`
	Name         string               `json:"name,omitempty"`
	Member       *domain.Member       `json:"member,omitempty"`
	Kind         string               `json:"kind,omitempty"`
	StreamID     string               `json:"stream_id,omitempty"`
	Publication  *domain.Publication  `json:"publication,omitempty"`
	Subscription *domain.Subscription `json:"subscription,omitempty"`
}
