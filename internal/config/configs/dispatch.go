package configs

import "time"

// Email dispatch drivers.
const (
	DispatchSandbox = "sandbox"
	DispatchSES     = "ses"
)

// Dispatch configures how variant emails are sent. Workers bounds the
// number of concurrent sends of one variant. CommitAttempts and
// CommitBackoff bound the retries of storing a sent variant's result.
type Dispatch struct {
	Driver         string        `env:"DRIVER" envDefault:"sandbox"`
	Workers        int           `env:"WORKERS" envDefault:"8"`
	CommitAttempts int           `env:"COMMIT_ATTEMPTS" envDefault:"5"`
	CommitBackoff  time.Duration `env:"COMMIT_BACKOFF" envDefault:"200ms"`
	// SandboxRejectDomain makes the sandbox dispatcher reject recipients
	// of this domain, for exercising failure handling.
	SandboxRejectDomain string `env:"SANDBOX_REJECT_DOMAIN"`
}

// SES configures the Amazon SES v2 dispatcher.
type SES struct {
	From             string `env:"FROM"`
	ConfigurationSet string `env:"CONFIGURATION_SET"`
}

// Metrics configures reconciliation at finalization. Wait is the pause
// before the activity log is queried; Timeout bounds the query itself.
type Metrics struct {
	Wait    time.Duration `env:"WAIT" envDefault:"5s"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
