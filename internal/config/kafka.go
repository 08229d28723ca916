package config

// Kafka configures the audit log mirror. Leaving Addresses empty disables it.
type Kafka struct {
	Addresses  []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	AuditTopic string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"inventory.audit"`
}

func (k Kafka) Enabled() bool {
	return len(k.Addresses) > 0
}
