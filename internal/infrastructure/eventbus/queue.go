package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/swapo-org/swapo-backend/internal/domain/event"
	"github.com/swapo-org/swapo-backend/internal/logger"
)

const (
	QueueNotifications = "notifications"
	maxRetry           = 5
)

// RedisOpt строит опции asynq из уже настроенного клиента go-redis.
func RedisOpt(rdb *redis.Client) asynq.RedisClientOpt {
	o := rdb.Options()
	return asynq.RedisClientOpt{
		Addr:      o.Addr,
		Username:  o.Username,
		Password:  o.Password,
		DB:        o.DB,
		TLSConfig: o.TLSConfig,
	}
}

// enqueuer - часть *asynq.Client, нужная издателю.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuePublisher кладёт события в Redis. Доставка at-least-once.
type QueuePublisher struct {
	client enqueuer
}

func NewQueuePublisher(client *asynq.Client) *QueuePublisher {
	return &QueuePublisher{client: client}
}

func (p *QueuePublisher) Publish(ctx context.Context, events ...event.Event) error {
	var errs []error
	for _, e := range events {
		task, err := newTask(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := p.client.EnqueueContext(ctx, task,
			asynq.Queue(QueueNotifications),
			asynq.MaxRetry(maxRetry),
			asynq.Timeout(30*time.Second),
		); err != nil {
			errs = append(errs, fmt.Errorf("enqueue %s: %w", e.EventName(), err))
		}
	}
	return errors.Join(errs...)
}

func newTask(e event.Event) (*asynq.Task, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", e.EventName(), err)
	}
	return asynq.NewTask(e.EventName(), payload), nil
}

// Worker читает события из очереди и передаёт их обработчику.
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	handler event.Handler
}

func NewWorker(opt asynq.RedisClientOpt, concurrency int, handler event.Handler) *Worker {
	log := logger.WithComponent("queue-worker")

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueNotifications: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			log.WithFields(logrus.Fields{
				"task":    task.Type(),
				"payload": string(task.Payload()),
				"retried": retried,
			}).WithError(err).Warn("не удалось обработать событие")
		}),
		Logger:   log,
		LogLevel: asynq.WarnLevel,
	})

	w := &Worker{srv: srv, mux: asynq.NewServeMux(), handler: handler}
	for _, name := range []string{
		event.NameMessageSent,
		event.NameProposalCreated,
		event.NameProposalAccepted,
		event.NameProposalRejected,
		event.NameTradeCreated,
		event.NameTradeStatusChanged,
		event.NameTradeCompleted,
	} {
		w.mux.HandleFunc(name, w.process)
	}
	return w
}

func (w *Worker) process(ctx context.Context, task *asynq.Task) error {
	e, err := event.Decode(task.Type(), task.Payload())
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return w.handler.Handle(ctx, e)
}

// Start запускает обработку в фоне.
func (w *Worker) Start() error {
	return w.srv.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
