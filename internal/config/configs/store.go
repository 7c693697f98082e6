package configs

import "time"

// Campaign store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreDynamoDB = "dynamodb"
)

// Store selects where campaign state is persisted.
type Store struct {
	Driver string `env:"DRIVER" envDefault:"memory"`
}

// Dynamo configures the DynamoDB campaign table. Endpoint overrides the
// AWS endpoint, which is useful against DynamoDB Local.
type Dynamo struct {
	Table    string `env:"TABLE" envDefault:"campaigns"`
	Endpoint string `env:"ENDPOINT"`
}

// AWS holds settings shared by every AWS client.
type AWS struct {
	Region string `env:"REGION" envDefault:"us-east-1"`
}

// Redis configures the distributed campaign locker. When URL is empty an
// in-process locker is used, which is only safe with a single replica.
type Redis struct {
	URL       string        `env:"URL"`
	LockTTL   time.Duration `env:"LOCK_TTL" envDefault:"30s"`
	LockRetry time.Duration `env:"LOCK_RETRY" envDefault:"100ms"`
}
