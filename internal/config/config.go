package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"mesa-campaigns/internal/config/configs"
	"mesa-campaigns/internal/core/domain"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is
	// attached to every log record.
	Env string `env:"ENV" envDefault:"prod"`

	HTTP configs.HTTP   `envPrefix:"HTTP_"`
	Log  configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection used by the postgres
	// store and activity drivers.
	Psql   configs.Postgres `envPrefix:"PSQL_"`
	Store  configs.Store    `envPrefix:"STORE_"`
	Dynamo configs.Dynamo   `envPrefix:"DYNAMO_"`
	AWS    configs.AWS      `envPrefix:"AWS_"`
	Redis  configs.Redis    `envPrefix:"REDIS_"`

	Dispatch configs.Dispatch `envPrefix:"DISPATCH_"`
	SES      configs.SES      `envPrefix:"SES_"`
	Metrics  configs.Metrics  `envPrefix:"METRICS_"`
	Activity configs.Activity `envPrefix:"ACTIVITY_"`
	Kafka    configs.Kafka    `envPrefix:"KAFKA_"`

	Workflow configs.Workflow `envPrefix:"WORKFLOW_"`
	Audience configs.Audience `envPrefix:"AUDIENCE_"`
	Results  configs.Results  `envPrefix:"RESULTS_"`
	GenAI    configs.GenAI    `envPrefix:"GENAI_"`
}

// Load reads configuration from environment variables into a Config and
// validates it. All fields are loaded with their specified defaults when
// no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks driver names and value ranges. All problems are
// reported together.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case configs.StoreMemory, configs.StorePostgres, configs.StoreDynamoDB:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}
	switch c.Activity.Driver {
	case configs.ActivityMemory, configs.ActivityPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown ACTIVITY_DRIVER %q", c.Activity.Driver))
	}
	switch c.Dispatch.Driver {
	case configs.DispatchSandbox:
	case configs.DispatchSES:
		if c.SES.From == "" {
			errs = append(errs, errors.New("SES_FROM is required with DISPATCH_DRIVER=ses"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DISPATCH_DRIVER %q", c.Dispatch.Driver))
	}
	if c.Dispatch.Workers < 1 {
		errs = append(errs, fmt.Errorf("DISPATCH_WORKERS must be positive, got %d", c.Dispatch.Workers))
	}
	if c.Dispatch.CommitAttempts < 1 {
		errs = append(errs, fmt.Errorf("DISPATCH_COMMIT_ATTEMPTS must be positive, got %d", c.Dispatch.CommitAttempts))
	}
	if c.Workflow.Variants < 1 || c.Workflow.Variants > len(domain.Labels) {
		errs = append(errs, fmt.Errorf("WORKFLOW_VARIANTS must be between 1 and %d, got %d", len(domain.Labels), c.Workflow.Variants))
	}
	switch c.Workflow.PrimaryMetric {
	case domain.MetricOpenRate, domain.MetricClickRate, domain.MetricConversionRate, domain.MetricClickThroughRate:
	default:
		errs = append(errs, fmt.Errorf("unknown WORKFLOW_PRIMARY_METRIC %q", c.Workflow.PrimaryMetric))
	}
	if c.Metrics.Wait < 0 || c.Metrics.Timeout <= 0 {
		errs = append(errs, errors.New("METRICS_WAIT must not be negative and METRICS_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// NeedsPostgres reports whether any configured driver uses PostgreSQL.
func (c Config) NeedsPostgres() bool {
	return c.Store.Driver == configs.StorePostgres || c.Activity.Driver == configs.ActivityPostgres
}
