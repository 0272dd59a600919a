// Package signal serves the room protocol over websocket.
package signal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/dkeye/voicejoin/internal/hub"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

type Controller struct {
	Rooms      *hub.Manager
	Limiter    *RoomRateLimiter
	PingPeriod time.Duration
	ReadLimit  int64
}

func NewController(rooms *hub.Manager, limiter *RoomRateLimiter, pingPeriod time.Duration) *Controller {
	return &Controller{
		Rooms:      rooms,
		Limiter:    limiter,
		PingPeriod: pingPeriod,
		ReadLimit:  32768,
	}
}

// wsConn is one client connection. It is also the hub announcer of the
// membership it holds, so announcements go straight onto its send queue.
type wsConn struct {
	sid  string
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool

	stateMu sync.Mutex
	room    *hub.Room
	member  domain.Member
}

func (c *wsConn) TrySend(f []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

// Announce implements core.Announcer. A client too slow to drain its queue
// is disconnected rather than silently missing a publication.
func (c *wsConn) Announce(pub domain.Publication) {
	b, err := json.Marshal(Envelope{Type: TypePublication, Publication: &pub})
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("announce marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", c.sid).Str("publication", string(pub.ID)).Msg("announce failed, dropping client")
		go c.Close()
	}
}

func (c *wsConn) joined() (*hub.Room, domain.Member, bool) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.room, c.member, c.room != nil
}

func (c *wsConn) setJoined(room *hub.Room, m domain.Member) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.room, c.member = room, m
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades a gin request. The connection lives until the peer
// goes away or ctx is done.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ctl.ServeWS(ctx, c.Writer, c.Request, c.GetString("client_token"))
}

func (ctl *Controller) ServeWS(ctx context.Context, w http.ResponseWriter, r *http.Request, sid string) {
	log.Info().Str("module", "signal").Str("sid", sid).Msg("new WS connection")

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &wsConn{
		sid:  sid,
		conn: ws,
		send: make(chan []byte, 64),
	}
	ctx, cancel := context.WithCancel(ctx)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, conn)
}
