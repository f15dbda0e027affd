package repository

import (
	"context"
	"time"

	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/usecase/shared"
)

// OutboxRepository implements the transactional outbox: notifications are
// enqueued inside the business transaction and published by the dispatcher
// only after commit, so no message ever describes a rolled-back change.
type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: dbtx}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, topic string, payload []byte) error {
	const q = `INSERT INTO notification_outbox (topic, payload) VALUES ($1, $2)`

	if _, err := r.db.Exec(ctx, q, topic, payload); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox message", err)
	}
	return nil
}

// ClaimBatch stamps a batch of unsent, unclaimed messages as claimed and
// returns them. SKIP LOCKED keeps concurrent claimers from blocking on each
// other; the claim stamp is what outlives the transaction, so no row lock is
// ever held while the dispatcher talks to the broker. A claim lapses after a
// minute, which re-queues messages whose publish failed or whose dispatcher
// died between claim and mark-sent.
func (r *OutboxRepository) ClaimBatch(ctx context.Context, limit int) ([]shared.OutboxMessage, error) {
	const q = `
		UPDATE notification_outbox
		SET claimed_at = now()
		WHERE id IN (
			SELECT id
			FROM notification_outbox
			WHERE sent_at IS NULL
			  AND (claimed_at IS NULL OR claimed_at < now() - interval '1 minute')
			ORDER BY id
			LIMIT $1
			FOR UPDATE SKIP LOCKED)
		RETURNING id, topic, payload, created_at`

	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox batch", err)
	}
	defer rows.Close()

	var msgs []shared.OutboxMessage
	for rows.Next() {
		var (
			m         shared.OutboxMessage
			createdAt time.Time
		)
		if err := rows.Scan(&m.ID, &m.Topic, &m.Payload, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox message", err)
		}
		m.CreatedAt = createdAt
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate outbox messages", err)
	}
	return msgs, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	const q = `UPDATE notification_outbox SET sent_at = now() WHERE id = ANY($1)`

	if _, err := r.db.Exec(ctx, q, ids); err != nil {
		return infra.WrapRepoErr("failed to mark outbox messages sent", err)
	}
	return nil
}
