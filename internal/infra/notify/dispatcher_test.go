//go:build unit

package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility-reservation/internal/pkg/config"
	"facility-reservation/internal/usecase/shared"
	"facility-reservation/tests/common/fake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	published []string
	failOn    map[string]bool
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ []byte) error {
	if p.failOn[topic] {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func enqueueTopics(t *testing.T, u *fake.UnitOfWork, topics ...string) {
	t.Helper()
	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		for _, topic := range topics {
			if err := tx.Outbox().Enqueue(ctx, topic, []byte(`{}`)); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func newTestDispatcher(u *fake.UnitOfWork, pub Publisher, batchSize int) *Dispatcher {
	return NewDispatcher(u, pub, config.AMQPConfig{
		PollInterval: time.Minute,
		BatchSize:    batchSize,
	})
}

func TestDrainOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		u := fake.NewUnitOfWork()
		pub := &recordingPublisher{}
		enqueueTopics(t, u, "booking_created", "event_approved")

		require.NoError(t, newTestDispatcher(u, pub, 10).drainOnce(ctx))

		assert.Equal(t, []string{"booking_created", "event_approved"}, pub.published)

		// Nothing left to claim.
		require.NoError(t, newTestDispatcher(u, pub, 10).drainOnce(ctx))
		assert.Len(t, pub.published, 2)
	})

	t.Run("drains a burst across multiple batches", func(t *testing.T) {
		u := fake.NewUnitOfWork()
		pub := &recordingPublisher{}
		enqueueTopics(t, u, "a", "b", "c", "d", "e")

		require.NoError(t, newTestDispatcher(u, pub, 2).drainOnce(ctx))
		assert.Len(t, pub.published, 5)
	})

	t.Run("failed publish stays queued", func(t *testing.T) {
		u := fake.NewUnitOfWork()
		pub := &recordingPublisher{failOn: map[string]bool{"event_approved": true}}
		enqueueTopics(t, u, "booking_created", "event_approved")

		require.NoError(t, newTestDispatcher(u, pub, 10).drainOnce(ctx))
		assert.Equal(t, []string{"booking_created"}, pub.published)

		// Broker recovers and the claim lapses; the queued message goes out
		// on the next drain.
		pub.failOn = nil
		u.ExpireClaims()
		require.NoError(t, newTestDispatcher(u, pub, 10).drainOnce(ctx))
		assert.Equal(t, []string{"booking_created", "event_approved"}, pub.published)
	})

	t.Run("failed message keeps its claim within a drain", func(t *testing.T) {
		u := fake.NewUnitOfWork()
		pub := &recordingPublisher{failOn: map[string]bool{"event_approved": true}}
		enqueueTopics(t, u, "event_approved", "booking_created")

		// Batch size 1 forces a second claim round; the failed message must
		// not be handed out again mid-drain.
		require.NoError(t, newTestDispatcher(u, pub, 1).drainOnce(ctx))
		assert.Equal(t, []string{"booking_created"}, pub.published)
	})
}

func TestDispatcherStop(t *testing.T) {
	u := fake.NewUnitOfWork()
	d := newTestDispatcher(u, &recordingPublisher{}, 10)

	d.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, d.Stop(ctx))
}
