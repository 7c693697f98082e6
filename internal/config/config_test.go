package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/config/configs"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, configs.StoreMemory, cfg.Store.Driver)
	assert.Equal(t, configs.DispatchSandbox, cfg.Dispatch.Driver)
	assert.Equal(t, 8, cfg.Dispatch.Workers)
	assert.Equal(t, 5, cfg.Dispatch.CommitAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Dispatch.CommitBackoff)
	assert.Equal(t, 5*time.Second, cfg.Metrics.Wait)
	assert.Equal(t, 10*time.Second, cfg.Metrics.Timeout)
	assert.Equal(t, 2, cfg.Workflow.Variants)
	assert.Equal(t, "open_rate", cfg.Workflow.PrimaryMetric)
	assert.False(t, cfg.NeedsPostgres())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DISPATCH_DRIVER", "ses")
	t.Setenv("SES_FROM", "news@example.com")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("WORKFLOW_VARIANTS", "3")
	t.Setenv("REDIS_LOCK_TTL", "1m")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.NeedsPostgres())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 3, cfg.Workflow.Variants)
	assert.Equal(t, time.Minute, cfg.Redis.LockTTL)
	assert.Equal(t, "json", cfg.Log.SlogFormat())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DISPATCH_DRIVER", "ses")
	t.Setenv("WORKFLOW_VARIANTS", "4")
	t.Setenv("WORKFLOW_PRIMARY_METRIC", "revenue")
	t.Setenv("DISPATCH_COMMIT_ATTEMPTS", "0")

	_, err := Load()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "STORE_DRIVER")
	assert.Contains(t, msg, "SES_FROM")
	assert.Contains(t, msg, "WORKFLOW_VARIANTS")
	assert.Contains(t, msg, "WORKFLOW_PRIMARY_METRIC")
	assert.Contains(t, msg, "DISPATCH_COMMIT_ATTEMPTS")
}
