package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/voicejoin/internal/adapters/signal"
	"github.com/dkeye/voicejoin/internal/config"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/dkeye/voicejoin/internal/hub"
)

func newTestRouter(t *testing.T) (http.Handler, *hub.Manager) {
	t.Helper()
	rooms := hub.NewManager(0)
	ctl := signal.NewController(rooms, signal.NewRoomRateLimiter(0, time.Minute), 0)
	cfg := &config.Config{Mode: "release", Secret: "test-secret"}
	return SetupRouter(context.Background(), cfg, rooms, ctl), rooms
}

func TestRoomsAPI(t *testing.T) {
	h, rooms := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`{"name":"lobby"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}
	var created domain.Room
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Name != "lobby" || created.ID == "" {
		t.Fatalf("created %+v", created)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("expected a session cookie")
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	var list []hub.RoomInfo
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list %+v", list)
	}

	room, _ := rooms.Get("lobby")
	m, _ := room.Join(domain.MemberInit{Name: "alice"}, nil)
	room.Publish(m.ID, domain.ContentVideo, "v")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms/lobby/publications", nil))
	var pubs []domain.Publication
	if err := json.Unmarshal(w.Body.Bytes(), &pubs); err != nil {
		t.Fatal(err)
	}
	if len(pubs) != 1 || pubs[0].Kind != "video" {
		t.Fatalf("publications %+v", pubs)
	}
}

func TestRoomsAPIErrors(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"name too long", http.MethodPost, "/api/rooms", `{"name":"` + strings.Repeat("x", signal.MaxRoomNameLen+1) + `"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/rooms", `{`, http.StatusBadRequest},
		{"unknown room", http.MethodGet, "/api/rooms/nope/publications", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			if w.Code != tt.want {
				t.Fatalf("got %d want %d", w.Code, tt.want)
			}
		})
	}
}
