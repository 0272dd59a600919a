package domain

import "github.com/google/uuid"

type (
	RoomName string
	RoomID   string
)

// Room is the resolved identity of a named room.
type Room struct {
	ID   RoomID   `json:"id"`
	Name RoomName `json:"name"`
}

func NewRoomID() RoomID {
	return RoomID(uuid.NewString())
}

// DefaultRoomName mirrors a freshly opened client: a random identifier the
// user may overwrite.
func DefaultRoomName() RoomName {
	return RoomName(uuid.NewString())
}
