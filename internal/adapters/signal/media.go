package signal

import (
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *Controller) handlePublish(c *wsConn, env Envelope) {
	room, m, ok := c.joined()
	if !ok {
		ctl.fail(c, env.Req, "not_joined")
		return
	}
	kind := domain.ParseContentType(env.Kind)
	if kind == domain.ContentUnknown {
		ctl.fail(c, env.Req, "invalid_kind")
		return
	}
	pub, err := room.Publish(m.ID, kind, env.StreamID)
	if err != nil {
		ctl.fail(c, env.Req, err.Error())
		return
	}
	log.Info().Str("module", "signal").Str("sid", c.sid).Str("publication", string(pub.ID)).Str("kind", pub.Kind).Msg("publish")
	ctl.reply(c, Envelope{Req: env.Req, Publication: &pub})
}

func (ctl *Controller) handleSubscribe(c *wsConn, env Envelope) {
	room, m, ok := c.joined()
	if !ok {
		ctl.fail(c, env.Req, "not_joined")
		return
	}
	if env.Publication == nil {
		ctl.fail(c, env.Req, "bad_payload")
		return
	}
	sub, err := room.Subscribe(m.ID, env.Publication.ID)
	if err != nil {
		ctl.fail(c, env.Req, err.Error())
		return
	}
	log.Info().Str("module", "signal").Str("sid", c.sid).Str("subscription", string(sub.ID)).Msg("subscribe")
	ctl.reply(c, Envelope{Req: env.Req, Subscription: &sub})
}
