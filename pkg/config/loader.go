package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct pointer. Field
// mappings come from `env` tags, with `envDefault` supplying fallbacks and
// `envSeparator` splitting list values.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config from environment: %w", err)
	}
	return nil
}
