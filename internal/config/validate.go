package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if err := c.Waitlist.validate(); err != nil {
		return fmt.Errorf("waitlist: %w", err)
	}

	if c.Notify.Enabled && c.Notify.APIKey == "" {
		return fmt.Errorf("notify.api_key is required when notify.enabled is true")
	}

	return nil
}

func (w *WaitlistConfig) validate() error {
	if w.AdvanceDelta < 1 {
		return fmt.Errorf("advance_delta must be >= 1 (got %d)", w.AdvanceDelta)
	}
	if w.TopSize < 1 {
		return fmt.Errorf("top_size must be >= 1 (got %d)", w.TopSize)
	}
	if w.CodeLength < 6 {
		return fmt.Errorf("code_length must be >= 6 (got %d)", w.CodeLength)
	}
	if w.CodeMaxAttempts < 1 {
		return fmt.Errorf("code_max_attempts must be >= 1 (got %d)", w.CodeMaxAttempts)
	}
	return nil
}
