// Package remote is a RoomBackend talking to roomd over websocket.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/voicejoin/internal/adapters/signal"
	"github.com/dkeye/voicejoin/internal/core"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var ErrClosed = errors.New("signal connection closed")

const writeWait = 5 * time.Second

// Backend multiplexes request/result pairs over one connection. Publication
// pushes go to the announcer registered by the latest Join.
type Backend struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	nextReq uint64
	pending map[uint64]chan signal.Envelope
	ann     core.Announcer

	closeOnce sync.Once
	closed    chan struct{}
}

// Dial connects to a roomd signal endpoint such as
// ws://host:8080/api/ws/signal.
func Dial(ctx context.Context, url string, header http.Header) (*Backend, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	b := &Backend{
		conn:    conn,
		pending: make(map[uint64]chan signal.Envelope),
		closed:  make(chan struct{}),
	}
	go b.readLoop()
	log.Info().Str("module", "remote").Str("url", url).Msg("connected")
	return b, nil
}

var _ core.RoomBackend = (*Backend)(nil)

func (b *Backend) Close() error {
	var err error
	b.closeOnce.Do(func() {
		close(b.closed)
		b.writeMu.Lock()
		_ = b.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		b.writeMu.Unlock()
		err = b.conn.Close()
	})
	return err
}

func (b *Backend) readLoop() {
	defer b.Close()
	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			select {
			case <-b.closed:
			default:
				log.Warn().Err(err).Str("module", "remote").Msg("read error")
			}
			return
		}
		var env signal.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Error().Err(err).Str("module", "remote").Msg("bad json")
			continue
		}
		switch env.Type {
		case signal.TypePublication:
			b.announce(env)
		case signal.TypeResult:
			b.mu.Lock()
			ch, ok := b.pending[env.Req]
			delete(b.pending, env.Req)
			b.mu.Unlock()
			if ok {
				ch <- env
			}
		default:
			log.Warn().Str("module", "remote").Str("type", env.Type).Msg("unknown frame")
		}
	}
}

func (b *Backend) announce(env signal.Envelope) {
	if env.Publication == nil {
		return
	}
	b.mu.Lock()
	ann := b.ann
	b.mu.Unlock()
	if ann == nil {
		log.Debug().Str("module", "remote").Str("publication", string(env.Publication.ID)).Msg("publication without announcer")
		return
	}
	ann.Announce(env.Publication.Normalize())
}

func (b *Backend) call(ctx context.Context, env signal.Envelope) (signal.Envelope, error) {
	ch := make(chan signal.Envelope, 1)
	b.mu.Lock()
	b.nextReq++
	env.Req = b.nextReq
	b.pending[env.Req] = ch
	b.mu.Unlock()

	drop := func() {
		b.mu.Lock()
		delete(b.pending, env.Req)
		b.mu.Unlock()
	}

	data, err := json.Marshal(env)
	if err != nil {
		drop()
		return signal.Envelope{}, err
	}
	b.writeMu.Lock()
	if dl, ok := ctx.Deadline(); ok {
		_ = b.conn.SetWriteDeadline(dl)
	} else {
		_ = b.conn.SetWriteDeadline(time.Now().Add(writeWait))
	}
	err = b.conn.WriteMessage(websocket.TextMessage, data)
	b.writeMu.Unlock()
	if err != nil {
		drop()
		return signal.Envelope{}, err
	}

	select {
	case res := <-ch:
		if res.Error != "" {
			return res, errors.New(res.Error)
		}
		return res, nil
	case <-ctx.Done():
		drop()
		return signal.Envelope{}, ctx.Err()
	case <-b.closed:
		drop()
		return signal.Envelope{}, ErrClosed
	}
}

func (b *Backend) FindOrCreate(ctx context.Context, name domain.RoomName) (domain.Room, error) {
	res, err := b.call(ctx, signal.Envelope{Type: signal.TypeFindOrCreate, RoomName: name})
	if err != nil {
		return domain.Room{}, err
	}
	if res.Room == nil {
		return domain.Room{}, errors.New("missing room in result")
	}
	return *res.Room, nil
}

func (b *Backend) Join(ctx context.Context, room domain.Room, init domain.MemberInit, ann core.Announcer) (*core.Membership, error) {
	// publications already in the room arrive before the result
	b.mu.Lock()
	b.ann = ann
	b.mu.Unlock()

	res, err := b.call(ctx, signal.Envelope{Type: signal.TypeJoin, Room: &room, Name: init.Name})
	if err == nil && (res.Member == nil || res.Room == nil) {
		err = errors.New("missing membership in result")
	}
	if err != nil {
		b.mu.Lock()
		if b.ann == ann {
			b.ann = nil
		}
		b.mu.Unlock()
		return nil, err
	}
	return &core.Membership{Room: *res.Room, Member: *res.Member}, nil
}

func (b *Backend) Publish(ctx context.Context, _ *core.Membership, kind domain.ContentType, streamID string) (domain.Publication, error) {
	res, err := b.call(ctx, signal.Envelope{Type: signal.TypePublish, Kind: kind.String(), StreamID: streamID})
	if err != nil {
		return domain.Publication{}, err
	}
	if res.Publication == nil {
		return domain.Publication{}, errors.New("missing publication in result")
	}
	return res.Publication.Normalize(), nil
}

func (b *Backend) Subscribe(ctx context.Context, _ *core.Membership, pub domain.Publication) (domain.Subscription, error) {
	res, err := b.call(ctx, signal.Envelope{Type: signal.TypeSubscribe, Publication: &pub})
	if err != nil {
		return domain.Subscription{}, err
	}
	if res.Subscription == nil {
		return domain.Subscription{}, errors.New("missing subscription in result")
	}
	return *res.Subscription, nil
}

func (b *Backend) Leave(ctx context.Context, _ *core.Membership) error {
	_, err := b.call(ctx, signal.Envelope{Type: signal.TypeLeave})
	b.mu.Lock()
	b.ann = nil
	b.mu.Unlock()
	return err
}

// Ping round-trips a no-op request.
func (b *Backend) Ping(ctx context.Context) error {
	_, err := b.call(ctx, signal.Envelope{Type: signal.TypePing})
	return err
}
