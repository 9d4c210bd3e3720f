package eventbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/swapo-org/swapo-backend/internal/domain/event"
)

// Dispatcher доставляет события обработчикам в том же процессе, по порядку.
type Dispatcher struct {
	handlers []event.Handler
}

func NewDispatcher(handlers ...event.Handler) *Dispatcher {
	return &Dispatcher{handlers: handlers}
}

func (d *Dispatcher) Subscribe(h event.Handler) {
	d.handlers = append(d.handlers, h)
}

// Publish вызывает все обработчики для каждого события. Ошибка одного
// обработчика не останавливает остальные.
func (d *Dispatcher) Publish(ctx context.Context, events ...event.Event) error {
	var errs []error
	for _, e := range events {
		for _, h := range d.handlers {
			if err := h.Handle(ctx, e); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", e.EventName(), err))
			}
		}
	}
	return errors.Join(errs...)
}
