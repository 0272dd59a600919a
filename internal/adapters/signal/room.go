package signal

import (
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *Controller) handleFindOrCreate(c *wsConn, env Envelope) {
	if len(env.RoomName) > MaxRoomNameLen {
		ctl.fail(c, env.Req, "invalid_room_name")
		return
	}
	room := ctl.Rooms.FindOrCreate(env.RoomName).Info()
	log.Info().Str("module", "signal").Str("sid", c.sid).Str("room", string(room.Name)).Msg("find_or_create")
	ctl.reply(c, Envelope{Req: env.Req, Room: &room})
}

func (ctl *Controller) handleJoin(c *wsConn, env Envelope) {
	if _, _, ok := c.joined(); ok {
		ctl.fail(c, env.Req, "already_joined")
		return
	}
	if env.Room == nil {
		ctl.fail(c, env.Req, "bad_payload")
		return
	}
	if !ctl.Limiter.Allow(c.sid) {
		log.Warn().Str("module", "signal").Str("sid", c.sid).Msg("join rate limited")
		ctl.fail(c, env.Req, "rate_limited")
		return
	}
	room, ok := ctl.Rooms.Lookup(env.Room.ID)
	if !ok {
		log.Error().Str("module", "signal").Str("room_id", string(env.Room.ID)).Msg("room does not exist")
		ctl.fail(c, env.Req, "unknown_room")
		return
	}

	// existing publications are queued to c before the result
	m, err := room.Join(domain.MemberInit{Name: env.Name}, c)
	if err != nil {
		ctl.fail(c, env.Req, err.Error())
		return
	}
	c.setJoined(room, m)
	info := room.Info()
	log.Info().Str("module", "signal").Str("sid", c.sid).Str("room", string(info.Name)).Str("member", string(m.ID)).Msg("join")
	ctl.reply(c, Envelope{Req: env.Req, Room: &info, Member: &m})
}

func (ctl *Controller) handleLeave(c *wsConn, env Envelope) {
	ctl.leave(c)
	ctl.reply(c, Envelope{Req: env.Req})
}

func (ctl *Controller) leave(c *wsConn) {
	room, m, ok := c.joined()
	if !ok {
		return
	}
	c.setJoined(nil, domain.Member{})
	if err := room.Leave(m.ID); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", c.sid).Msg("leave")
		return
	}
	log.Info().Str("module", "signal").Str("sid", c.sid).Str("member", string(m.ID)).Msg("leave")
}
