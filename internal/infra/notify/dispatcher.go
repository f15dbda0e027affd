package notify

import (
	"context"
	"log/slog"
	"time"

	"facility-reservation/internal/pkg/config"
	"facility-reservation/internal/usecase/shared"
)

// Dispatcher drains the notification outbox: each tick it claims a batch of
// unsent messages in one short transaction, publishes them with no database
// lock held, and marks the successes sent in a second transaction. Messages
// whose publish fails keep their claim until it expires and are retried on a
// later tick.
type Dispatcher struct {
	uow       shared.UnitOfWork
	publisher Publisher
	interval  time.Duration
	batchSize int

	stop chan struct{}
	done chan struct{}
}

func NewDispatcher(uow shared.UnitOfWork, publisher Publisher, cfg config.AMQPConfig) *Dispatcher {
	return &Dispatcher{
		uow:       uow,
		publisher: publisher,
		interval:  cfg.PollInterval,
		batchSize: cfg.BatchSize,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	go d.run()
}

func (d *Dispatcher) Stop(ctx context.Context) error {
	close(d.stop)
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			if err := d.drainOnce(context.Background()); err != nil {
				slog.Error("outbox drain failed", "error", err.Error())
			}
		}
	}
}

// drainOnce keeps claiming batches until the outbox is empty so a burst of
// notifications does not wait one poll interval per batch. The publish runs
// between the claim and the mark-sent transactions, never inside one.
func (d *Dispatcher) drainOnce(ctx context.Context) error {
	for {
		var msgs []shared.OutboxMessage
		err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			msgs, err = tx.Outbox().ClaimBatch(ctx, d.batchSize)
			return err
		})
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			return nil
		}

		sent := make([]int64, 0, len(msgs))
		for _, m := range msgs {
			if err := d.publisher.Publish(ctx, m.Topic, m.Payload); err != nil {
				slog.Warn("notification publish failed, message stays queued",
					"id", m.ID, "topic", m.Topic, "error", err.Error())
				continue
			}
			sent = append(sent, m.ID)
		}

		if len(sent) > 0 {
			err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				return tx.Outbox().MarkSent(ctx, sent)
			})
			if err != nil {
				return err
			}
		}
		if len(msgs) < d.batchSize {
			return nil
		}
	}
}
