package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks that the configuration satisfies its struct tags and the
// oracle-provider-specific requirements the tags alone cannot express.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration file: %w", err)
	}

	if c.Oracle.Provider != "dummy" && c.Oracle.ApiKeyEnv == "" {
		return fmt.Errorf("oracle.apiKeyEnv is required for provider %q", c.Oracle.Provider)
	}

	return nil
}
