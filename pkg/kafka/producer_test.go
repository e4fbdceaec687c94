package kafka

import (
	"context"
	"testing"
	"time"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers: []string{"localhost:9092", "localhost:9093"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.writers == nil {
		t.Fatal("expected writers map to be initialized")
	}
	if p.transport != nil {
		t.Error("expected default transport when TLS/SASL are disabled")
	}
	if p.batch != 10*time.Millisecond {
		t.Errorf("expected default batch timeout 10ms, got %v", p.batch)
	}
}

func TestNewProducerWithSASL(t *testing.T) {
	tests := []struct {
		name      string
		mechanism string
		wantErr   bool
	}{
		{name: "plain", mechanism: "PLAIN"},
		{name: "empty defaults to plain", mechanism: ""},
		{name: "scram 256", mechanism: "SCRAM-SHA-256"},
		{name: "scram 512", mechanism: "SCRAM-SHA-512"},
		{name: "unknown", mechanism: "GSSAPI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProducer(Config{
				Brokers:       []string{"kafka:9092"},
				SASLEnabled:   true,
				SASLMechanism: tt.mechanism,
				SASLUsername:  "user",
				SASLPassword:  "pass",
				TLS:           true,
			})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unsupported mechanism")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.transport == nil || p.transport.SASL == nil {
				t.Fatal("expected SASL transport")
			}
			if p.transport.TLS == nil {
				t.Error("expected TLS config on transport")
			}
		})
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w1 := p.getOrCreateWriter("bnpl.orders")
	w2 := p.getOrCreateWriter("bnpl.orders")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	w3 := p.getOrCreateWriter("bnpl.audit")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}
	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestPublishNoMessagesIsNoop(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Publish(context.Background(), "bnpl.orders"); err != nil {
		t.Fatalf("expected nil error for empty publish, got %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected no writer to be created, got %d", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = p.getOrCreateWriter("topic-a")
	_ = p.getOrCreateWriter("topic-b")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}
