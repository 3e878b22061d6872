package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
)

func TestNewRecordSortsHeaders(t *testing.T) {
	record := NewRecord("lookout.queries", []byte("k"), []byte("v"), map[string]string{
		"source":     "lookout",
		"event_type": "query_handled",
	})
	if record.Topic != "lookout.queries" || string(record.Key) != "k" || string(record.Value) != "v" {
		t.Fatalf("unexpected record %+v", record)
	}
	if len(record.Headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(record.Headers))
	}
	if record.Headers[0].Key != "event_type" || record.Headers[1].Key != "source" {
		t.Fatalf("expected sorted headers, got %+v", record.Headers)
	}
}

func TestNewRecordWithoutHeaders(t *testing.T) {
	if record := NewRecord("t", nil, []byte("{}"), nil); len(record.Headers) != 0 {
		t.Fatalf("expected no headers, got %+v", record.Headers)
	}
}

func TestNewKafkaProducerRequiresBrokers(t *testing.T) {
	logger, _ := test.NewNullLogger()
	if _, err := NewKafkaProducer(nil, "cluster", "lookout", logger); err == nil {
		t.Fatal("expected error without brokers")
	}
}

func TestNewKafkaProducerIsLazy(t *testing.T) {
	logger, _ := test.NewNullLogger()
	producer, err := NewKafkaProducer([]string{"127.0.0.1:1"}, "cluster", "lookout", logger)
	if err != nil {
		t.Fatalf("new producer: %v", err)
	}
	defer producer.Close()
	if producer.ClusterID() != "cluster" || producer.GetClient() == nil {
		t.Fatal("expected client and cluster id")
	}
}

func TestPublishJSONDoesNotWaitForBroker(t *testing.T) {
	logger, _ := test.NewNullLogger()
	producer, err := NewKafkaProducer([]string{"127.0.0.1:1"}, "cluster", "lookout", logger)
	if err != nil {
		t.Fatalf("new producer: %v", err)
	}

	delivered := make(chan error, 1)
	start := time.Now()
	err = producer.PublishJSON(context.Background(), "lookout.queries", "k", map[string]string{"a": "b"}, nil, func(err error) {
		delivered <- err
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("publish blocked for %s", elapsed)
	}

	go func() { _ = producer.Close() }()
	select {
	case err := <-delivered:
		if err == nil {
			t.Fatal("expected a delivery error for an unreachable broker")
		}
	case <-time.After(15 * time.Second):
		t.Fatal("delivery callback never ran")
	}
}

func TestPublishJSONMarshalError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	producer, err := NewKafkaProducer([]string{"127.0.0.1:1"}, "cluster", "lookout", logger)
	if err != nil {
		t.Fatalf("new producer: %v", err)
	}
	defer producer.Close()

	called := false
	err = producer.PublishJSON(context.Background(), "t", "k", make(chan int), nil, func(error) { called = true })
	if err == nil {
		t.Fatal("expected marshal error")
	}
	if called {
		t.Fatal("callback should not run when nothing was buffered")
	}
}
