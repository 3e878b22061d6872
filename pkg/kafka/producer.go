package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	deliveryTimeout = 5 * time.Second
	flushTimeout    = 5 * time.Second
)

// KafkaProducer produces records asynchronously. Callers learn the delivery
// outcome through a callback and never wait on the broker.
type KafkaProducer struct {
	client    *kgo.Client
	logger    *logrus.Logger
	clusterID string
}

// NewKafkaProducer creates a producer. The client connects lazily, so an
// unreachable broker surfaces on the first delivery or health check.
func NewKafkaProducer(brokers []string, clusterID, clientID string, logger *logrus.Logger) (*KafkaProducer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProducerLinger(10 * time.Millisecond),
		kgo.ProducerBatchMaxBytes(1000000),
		kgo.RecordDeliveryTimeout(deliveryTimeout),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &KafkaProducer{
		client:    client,
		logger:    logger,
		clusterID: clusterID,
	}, nil
}

// Close flushes buffered records for up to flushTimeout, then closes the
// client. Records still unsent fail through their callbacks.
func (p *KafkaProducer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil && p.logger != nil {
		p.logger.WithError(err).Warn("Kafka flush incomplete on close")
	}
	p.client.Close()
	return nil
}

// ProduceMessage buffers one record and returns immediately. done, when not
// nil, runs once with the delivery error (nil on ack). The record outlives
// cancellation of ctx.
func (p *KafkaProducer) ProduceMessage(ctx context.Context, topic string, key, value []byte, headers map[string]string, done func(error)) {
	p.client.TryProduce(context.WithoutCancel(ctx), NewRecord(topic, key, value, headers), func(_ *kgo.Record, err error) {
		if err != nil {
			err = fmt.Errorf("failed to produce message: %w", err)
		}
		if done != nil {
			done(err)
		}
	})
}

// PublishJSON marshals v and buffers it under key. Only marshal errors are
// returned; delivery errors go to done.
func (p *KafkaProducer) PublishJSON(ctx context.Context, topic, key string, v any, headers map[string]string, done func(error)) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	p.ProduceMessage(ctx, topic, []byte(key), value, headers, done)
	return nil
}

// GetClient returns the underlying kgo.Client for health checks
func (p *KafkaProducer) GetClient() *kgo.Client {
	return p.client
}

func (p *KafkaProducer) ClusterID() string {
	return p.clusterID
}

// NewRecord builds a record with headers sorted by key.
func NewRecord(topic string, key, value []byte, headers map[string]string) *kgo.Record {
	record := &kgo.Record{
		Topic: topic,
		Key:   key,
		Value: value,
	}
	if len(headers) == 0 {
		return record
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: k, Value: []byte(headers[k])})
	}
	return record
}
