package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Sync       SyncConfig       `yaml:"sync"`
	Governance GovernanceConfig `yaml:"governance"`
	Index      IndexConfig      `yaml:"index"`
	Log        LogConfig        `yaml:"log"`
}

// DatabaseConfig holds canonical-store (PostgreSQL) connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SyncConfig holds settings for the periodic cache reconciliation loop and
// best-effort remote propagation.
type SyncConfig struct {
	Interval         time.Duration `yaml:"interval"          env:"SYNC_INTERVAL"          env-default:"5s"`
	RemoteTimeout    time.Duration `yaml:"remote_timeout"    env:"SYNC_REMOTE_TIMEOUT"    env-default:"3s"`
	EphemeralTTL     time.Duration `yaml:"ephemeral_ttl"     env:"SYNC_EPHEMERAL_TTL"     env-default:"24h"`
	EvictionInterval time.Duration `yaml:"eviction_interval" env:"SYNC_EVICTION_INTERVAL" env-default:"1m"`
}

// GovernanceConfig holds promotion-gate settings.
type GovernanceConfig struct {
	TrustThreshold float64 `yaml:"trust_threshold" env:"GOVERNANCE_TRUST_THRESHOLD" env-default:"0.7"`
}

// IndexConfig holds settings for the external semantic index collaborator.
// An empty base URL disables search (the stub index is used).
type IndexConfig struct {
	BaseURL string        `yaml:"base_url" env:"INDEX_BASE_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"INDEX_TIMEOUT" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
