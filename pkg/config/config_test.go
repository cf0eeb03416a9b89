package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
app:
  name: "tradein-sync"
mysql:
  dsn: "root@tcp(127.0.0.1:3306)/tradein"
redis:
  addr: "127.0.0.1:6379"
lmstfy:
  host: "127.0.0.1"
  port: 7777
  queue: "sync_full"
cornerlogis:
  base_url: "https://fulfillment.example.com"
shopby:
  base_url: "https://commerce.example.com"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Cornerlogis.PageSize)
	assert.Equal(t, 20, cfg.Cornerlogis.MaxPages)
	assert.Equal(t, 14, cfg.Cornerlogis.DaysBack)
	assert.Equal(t, "1.1", cfg.Shopby.Version)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.LookupInterval)
	assert.Equal(t, time.Second, cfg.Sync.MutationInterval)
	assert.Equal(t, 10*time.Minute, cfg.Sync.LeaseTTL)
	assert.Equal(t, "Asia/Seoul", cfg.Scheduler.Timezone)
	assert.Equal(t, 9, cfg.Scheduler.StartHour)
	assert.Equal(t, 19, cfg.Scheduler.EndHour)
	assert.Equal(t, 30, cfg.Scheduler.IntervalMinutes)
	assert.Equal(t, "POST", cfg.Carriers.DefaultCarrier)
	assert.False(t, cfg.Sync.DryRun)
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+`
sync:
  lookup_interval: 250ms
  lease_ttl: 5m
scheduler:
  timezone: "UTC"
  interval_minutes: 15
`))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Sync.LookupInterval)
	assert.Equal(t, 5*time.Minute, cfg.Sync.LeaseTTL)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
	assert.Equal(t, 15, cfg.Scheduler.IntervalMinutes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		strip func(*Config)
		want  string
	}{
		{"app name", func(c *Config) { c.App.Name = "" }, "app.name"},
		{"fulfillment url", func(c *Config) { c.Cornerlogis.BaseURL = "" }, "cornerlogis.base_url"},
		{"commerce url", func(c *Config) { c.Shopby.BaseURL = "" }, "shopby.base_url"},
		{"queue host", func(c *Config) { c.Lmstfy.Host = "" }, "lmstfy.host"},
		{"queue name", func(c *Config) { c.Lmstfy.Queue = "" }, "lmstfy.queue"},
		{"redis addr", func(c *Config) { c.Redis.Addr = "" }, "redis.addr"},
		{"mysql dsn", func(c *Config) { c.MySQL.DSN = "" }, "mysql.dsn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, minimalYAML))
			require.NoError(t, err)

			tt.strip(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
