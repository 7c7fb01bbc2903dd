// Package kafka publishes notifications to a Kafka topic.
//
// Records are keyed by wallet id, so the notifications of a wallet keep
// their order within a partition, and carry the JSON encoding of the
// notification as value.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gabapcia/bcmonitor/internal/notification"
	"github.com/gabapcia/bcmonitor/internal/pkg/logger"

	"github.com/twmb/franz-go/pkg/kgo"
)

// producer is the subset of *kgo.Client used by the broker.
type producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
}

type broker struct {
	kcl producer
}

var _ notification.Broker = (*broker)(nil)

// NewBroker wraps a client whose default produce topic is set.
func NewBroker(kcl producer) *broker {
	return &broker{kcl: kcl}
}

// Send produces n asynchronously. Failures are logged.
func (b *broker) Send(ctx context.Context, n notification.Notification) {
	record, err := createRecord(n)
	if err != nil {
		logger.Error(ctx, "could not encode notification", "notification_id", n.ID, "error", err)
		return
	}

	ctx = context.WithoutCancel(ctx)
	b.kcl.Produce(ctx, record, func(r *kgo.Record, err error) {
		if err != nil {
			logger.Error(ctx, "could not publish notification", "notification_id", n.ID, "wallet_id", n.WalletID, "error", err)
			return
		}
		logger.Debug(ctx, "notification published", "notification_id", n.ID, "partition", r.Partition, "offset", r.Offset)
	})
}

func createRecord(n notification.Notification) (*kgo.Record, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshalling to json: %w", err)
	}

	return &kgo.Record{
		Key:   []byte(n.WalletID),
		Value: payload,
	}, nil
}

// NewClient connects to the seed brokers and checks that at least one of
// them answers.
func NewClient(ctx context.Context, seeds []string, topic string) (*kgo.Client, error) {
	kcl, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.ZstdCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kafka client: %w", err)
	}

	if err := kcl.Ping(ctx); err != nil {
		kcl.Close()
		return nil, fmt.Errorf("pinging kafka: %w", err)
	}

	return kcl, nil
}
