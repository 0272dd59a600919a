package signal

func (ctl *Controller) handlePing(c *wsConn, env Envelope) {
	ctl.reply(c, Envelope{Req: env.Req})
}

func (ctl *Controller) reply(c *wsConn, env Envelope) {
	env.Type = TypeResult
	ctl.sendJSON(c, env)
}

func (ctl *Controller) fail(c *wsConn, req uint64, reason string) {
	ctl.sendJSON(c, Envelope{Type: TypeResult, Req: req, Error: reason})
}
