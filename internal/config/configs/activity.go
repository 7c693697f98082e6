package configs

import "time"

// Activity log drivers.
const (
	ActivityMemory   = "memory"
	ActivityPostgres = "postgres"
)

// Activity selects the activity log that backs provider metrics.
type Activity struct {
	Driver string `env:"DRIVER" envDefault:"memory"`
}

// Kafka configures the optional activity event stream. Publishing is
// enabled when Brokers is set.
type Kafka struct {
	Brokers string        `env:"BROKERS"`
	Topic   string        `env:"TOPIC" envDefault:"campaign-activity"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"3s"`
}
