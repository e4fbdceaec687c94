package kafka

import "time"

// Config holds Kafka connection parameters for producers.
type Config struct {
	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	ClientID string
	Brokers  []string

	// BatchTimeout bounds how long a writer waits to fill a batch. Zero means 10ms.
	BatchTimeout time.Duration

	// TLS enables TLS for Kafka connections.
	TLS         bool
	SASLEnabled bool
}
