package notifymock

import (
	"context"
	"sync"

	"vivim-backend/internal/domain/event"
)

var _ event.Publisher = (*Publisher)(nil)

// Publisher records every published event, in order.
type Publisher struct {
	mu     sync.Mutex
	Events []event.Event
}

func New() *Publisher { return &Publisher{} }

func (p *Publisher) Publish(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, e)
}

// Types returns just the event types, in publish order.
func (p *Publisher) Types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.Events))
	for _, e := range p.Events {
		out = append(out, e.Type)
	}
	return out
}
