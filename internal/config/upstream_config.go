package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// UpstreamConfig represents the complete integration configuration
type UpstreamConfig struct {
	Upstream UpstreamAPI   `toml:"upstream"`
	Queuing  QueuingConfig `toml:"queuing"`
	Sync     SyncConfig    `toml:"sync"`
}

// UpstreamAPI contains connection settings for the salon core backend
type UpstreamAPI struct {
	APIEndpoint    string `toml:"api_endpoint"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// QueuingConfig contains Redis and concurrency settings
type QueuingConfig struct {
	RedisAddr       string         `toml:"redis_addr"`
	RedisPassword   string         `toml:"redis_password"`
	RedisDB         int            `toml:"redis_db"`
	Concurrency     int            `toml:"concurrency"`
	Queues          []string       `toml:"queues"`
	QueuePriorities map[string]int `toml:"queue_priorities"`
}

// SyncConfig contains cache lifetimes and background refresh cadence
type SyncConfig struct {
	PayloadTTLSeconds      int `toml:"payload_ttl_seconds"`
	DashboardTTLSeconds    int `toml:"dashboard_ttl_seconds"`
	RefreshIntervalMinutes int `toml:"refresh_interval_minutes"`
	AlertIntervalMinutes   int `toml:"alert_interval_minutes"`
	DefaultRangeDays       int `toml:"default_range_days"`
}

// LoadUpstreamConfig loads configuration from a TOML file
func LoadUpstreamConfig(filename string) (*UpstreamConfig, error) {
	config := &UpstreamConfig{}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return config, nil
}
