package app

import "github.com/dkeye/voicejoin/internal/domain"

type SubscribeAction int

const (
	SubscribeNow SubscribeAction = iota
	SkipPublication
)

// Policy decides what to do with a newly announced remote publication.
type Policy interface {
	OnPublication(pub domain.Publication) SubscribeAction
}

// SubscribeAll subscribes to everything announced.
type SubscribeAll struct{}

func (SubscribeAll) OnPublication(domain.Publication) SubscribeAction {
	return SubscribeNow
}

// AllowList only subscribes to publishers whose display name is listed.
type AllowList struct {
	names map[string]struct{}
}

// NewPolicy returns SubscribeAll for an empty list.
func NewPolicy(allow []string) Policy {
	if len(allow) == 0 {
		return SubscribeAll{}
	}
	names := make(map[string]struct{}, len(allow))
	for _, n := range allow {
		names[n] = struct{}{}
	}
	return AllowList{names: names}
}

func (p AllowList) OnPublication(pub domain.Publication) SubscribeAction {
	if _, ok := p.names[pub.PublisherName]; ok {
		return SubscribeNow
	}
	return SkipPublication
}
