package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config global configuration
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	MySQL       MySQLConfig       `mapstructure:"mysql"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Lmstfy      LmstfyConfig      `mapstructure:"lmstfy"`
	Cornerlogis CornerlogisConfig `mapstructure:"cornerlogis"`
	Shopby      ShopbyConfig      `mapstructure:"shopby"`
	Sync        SyncConfig        `mapstructure:"sync"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Slack       SlackConfig       `mapstructure:"slack"`
	Carriers    CarriersConfig    `mapstructure:"carriers"`
}

// AppConfig application identity
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig HTTP server
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// MySQLConfig sync-run history store
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig run-lease backend
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig sync-job queue
type LmstfyConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Token     string `mapstructure:"token"`
	Queue     string `mapstructure:"queue"`
}

// CornerlogisConfig fulfillment platform API
type CornerlogisConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	PageSize int    `mapstructure:"page_size"`
	MaxPages int    `mapstructure:"max_pages"`
	DaysBack int    `mapstructure:"days_back"`
}

// ShopbyConfig commerce platform admin API
type ShopbyConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	SystemKey string `mapstructure:"system_key"`
	AuthToken string `mapstructure:"auth_token"`
	Version   string `mapstructure:"version"`
}

// SyncConfig reconciliation run tuning
type SyncConfig struct {
	DryRun           bool          `mapstructure:"dry_run"`           // default for manual triggers
	LookupInterval   time.Duration `mapstructure:"lookup_interval"`   // pacing between commerce lookups
	MutationInterval time.Duration `mapstructure:"mutation_interval"` // pacing between mutations
	LeaseTTL         time.Duration `mapstructure:"lease_ttl"`         // single-flight lease lifetime
}

// SchedulerConfig business-window scheduler
type SchedulerConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Timezone        string `mapstructure:"timezone"`
	StartHour       int    `mapstructure:"start_hour"`
	EndHour         int    `mapstructure:"end_hour"`
	IntervalMinutes int    `mapstructure:"interval_minutes"`
}

// SlackConfig webhook notification
type SlackConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

// CarriersConfig carrier-code mapping sheet
type CarriersConfig struct {
	MappingFile    string `mapstructure:"mapping_file"`
	DefaultCarrier string `mapstructure:"default_carrier"`
}

// Load reads the YAML config file
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills the values a minimal config may omit
func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Cornerlogis.PageSize == 0 {
		c.Cornerlogis.PageSize = 100
	}
	if c.Cornerlogis.MaxPages == 0 {
		c.Cornerlogis.MaxPages = 20
	}
	if c.Cornerlogis.DaysBack == 0 {
		c.Cornerlogis.DaysBack = 14
	}
	if c.Shopby.Version == "" {
		c.Shopby.Version = "1.1"
	}
	if c.Sync.LookupInterval == 0 {
		c.Sync.LookupInterval = 500 * time.Millisecond
	}
	if c.Sync.MutationInterval == 0 {
		c.Sync.MutationInterval = time.Second
	}
	if c.Sync.LeaseTTL == 0 {
		c.Sync.LeaseTTL = 10 * time.Minute
	}
	if c.Scheduler.Timezone == "" {
		c.Scheduler.Timezone = "Asia/Seoul"
	}
	if c.Scheduler.StartHour == 0 {
		c.Scheduler.StartHour = 9
	}
	if c.Scheduler.EndHour == 0 {
		c.Scheduler.EndHour = 19
	}
	if c.Scheduler.IntervalMinutes == 0 {
		c.Scheduler.IntervalMinutes = 30
	}
	if c.Carriers.DefaultCarrier == "" {
		c.Carriers.DefaultCarrier = "POST"
	}
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Cornerlogis.BaseURL == "" {
		return fmt.Errorf("cornerlogis.base_url is required")
	}
	if c.Shopby.BaseURL == "" {
		return fmt.Errorf("shopby.base_url is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	if c.Lmstfy.Queue == "" {
		return fmt.Errorf("lmstfy.queue is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	return nil
}
