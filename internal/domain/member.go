package domain

import (
	"errors"

	"github.com/google/uuid"
)

const (
	MaxMemberNameLen    = 64
	DefaultMemberPrefix = "member_"
)

var (
	ErrMemberNameEmpty   = errors.New("member name empty")
	ErrMemberNameTooLong = errors.New("member name too long")
)

type MemberID string

// Member represents one participant's identity inside a joined room.
// The name is display-only; uniqueness comes from the random suffix.
type Member struct {
	ID     MemberID `json:"id"`
	Name   string   `json:"name"`
	RoomID RoomID   `json:"room_id"`
}

// MemberInit is what a client sends when asking to join.
type MemberInit struct {
	Name string `json:"name"`
}

func NewMemberID() MemberID {
	return MemberID(uuid.NewString())
}

// MaxMemberPrefixLen leaves room for the UUID suffix within MaxMemberNameLen.
const MaxMemberPrefixLen = MaxMemberNameLen - 36

// NewMemberName returns prefix followed by a random UUID. Prefixes longer
// than MaxMemberPrefixLen are truncated so the name always validates.
func NewMemberName(prefix string) string {
	if prefix == "" {
		prefix = DefaultMemberPrefix
	}
	if len(prefix) > MaxMemberPrefixLen {
		prefix = prefix[:MaxMemberPrefixLen]
	}
	return prefix + uuid.NewString()
}

func (i MemberInit) Validate() error {
	if len(i.Name) == 0 {
		return ErrMemberNameEmpty
	}
	if len(i.Name) > MaxMemberNameLen {
		return ErrMemberNameTooLong
	}
	return nil
}
