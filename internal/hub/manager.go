// Package hub holds the room backend state shared by every transport.
package hub

import (
	"sort"
	"sync"

	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomInfo is a listing entry.
type RoomInfo struct {
	domain.Room
	Members      int `json:"members"`
	Publications int `json:"publications"`
}

// Manager resolves rooms by name. Rooms live as long as the manager.
type Manager struct {
	maxMembers int

	mu    sync.RWMutex
	rooms map[domain.RoomName]*Room
}

// NewManager creates a manager whose rooms admit at most maxMembers
// members; zero means unlimited.
func NewManager(maxMembers int) *Manager {
	return &Manager{maxMembers: maxMembers, rooms: make(map[domain.RoomName]*Room)}
}

// FindOrCreate returns the room named name, creating it on first use.
func (m *Manager) FindOrCreate(name domain.RoomName) *Room {
	m.mu.RLock()
	room, ok := m.rooms[name]
	m.mu.RUnlock()
	if ok {
		return room
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if room, ok = m.rooms[name]; ok {
		return room
	}
	room = NewRoom(domain.Room{ID: domain.NewRoomID(), Name: name}, m.maxMembers)
	m.rooms[name] = room
	log.Info().Str("module", "hub").Str("room", string(name)).Str("room_id", string(room.Info().ID)).Msg("room created")
	return room
}

func (m *Manager) Get(name domain.RoomName) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[name]
	return room, ok
}

// Lookup finds a room by id.
func (m *Manager) Lookup(id domain.RoomID) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		if r.Info().ID == id {
			return r, true
		}
	}
	return nil, false
}

// List returns every room sorted by name.
func (m *Manager) List() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, RoomInfo{Room: r.Info(), Members: r.MemberCount(), Publications: len(r.Publications())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
