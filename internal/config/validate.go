package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("sync.interval must be > 0 (got %v)", c.Sync.Interval)
	}
	if c.Sync.RemoteTimeout <= 0 {
		return fmt.Errorf("sync.remote_timeout must be > 0 (got %v)", c.Sync.RemoteTimeout)
	}
	if c.Sync.EphemeralTTL <= 0 {
		return fmt.Errorf("sync.ephemeral_ttl must be > 0 (got %v)", c.Sync.EphemeralTTL)
	}
	if c.Sync.EvictionInterval <= 0 {
		return fmt.Errorf("sync.eviction_interval must be > 0 (got %v)", c.Sync.EvictionInterval)
	}

	if c.Governance.TrustThreshold < 0 || c.Governance.TrustThreshold > 1 {
		return fmt.Errorf("governance.trust_threshold must be in [0,1] (got %v)", c.Governance.TrustThreshold)
	}

	if c.Index.BaseURL != "" && c.Index.Timeout <= 0 {
		return fmt.Errorf("index.timeout must be > 0 when index.base_url is set (got %v)", c.Index.Timeout)
	}

	return nil
}
