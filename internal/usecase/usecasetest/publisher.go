package usecasetest

import (
	"context"
	"sync"

	"github.com/swapo-org/swapo-backend/internal/domain/event"
)

// Publisher запоминает события и, если задан Next, передаёт их дальше.
type Publisher struct {
	mu     sync.Mutex
	Events []event.Event
	Next   event.Publisher
	Err    error
	// Ctx - контекст последнего вызова Publish.
	Ctx context.Context
}

func (p *Publisher) Publish(ctx context.Context, events ...event.Event) error {
	p.mu.Lock()
	p.Events = append(p.Events, events...)
	p.Ctx = ctx
	p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	if p.Next != nil {
		return p.Next.Publish(ctx, events...)
	}
	return nil
}

// Names возвращает имена опубликованных событий по порядку.
func (p *Publisher) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.Events))
	for i, e := range p.Events {
		names[i] = e.EventName()
	}
	return names
}
