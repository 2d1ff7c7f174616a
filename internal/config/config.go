// Package config loads and validates the treecached runtime configuration:
// cache capacity, default summarization batch size, store location, and
// oracle provider selection.
package config

// Config is the unified configuration structure for the treecached binary.
type Config struct {
	// CacheCapacity is the fixed positive capacity of the TreeCache (spec.md §4.3).
	CacheCapacity int `yaml:"cacheCapacity" json:"cacheCapacity" validate:"required,gt=0"`

	// DefaultSummaryBatchSize is used by the add-message subcommand when
	// --batch-size is not set. The dispatch envelope (dispatch subcommand and
	// POST /dispatch) passes summary_batch_size through unchanged.
	DefaultSummaryBatchSize int `yaml:"defaultSummaryBatchSize" json:"defaultSummaryBatchSize" validate:"required,gt=0"`

	// DatabasePath is the SQLite file backing the durable Store. ":memory:"
	// is accepted for ephemeral runs.
	DatabasePath string `yaml:"databasePath" json:"databasePath" validate:"required"`

	// Oracle selects and configures the LanguageOracle backend.
	Oracle OracleConfig `yaml:"oracle" json:"oracle" validate:"required"`
}

// OracleConfig selects a LanguageOracle provider and its credentials.
type OracleConfig struct {
	// Provider is one of "dummy", "anthropic", "openai".
	Provider string `yaml:"provider" json:"provider" validate:"required,oneof=dummy anthropic openai"`

	// Model is the provider-specific model identifier. Ignored for "dummy".
	Model string `yaml:"model,omitempty" json:"model,omitempty"`

	// BaseURL overrides the provider's default API endpoint, if set.
	BaseURL string `yaml:"baseUrl,omitempty" json:"baseUrl,omitempty" validate:"omitempty,http_url|https_url"`

	// ApiKeyEnv names the environment variable holding the provider API
	// key. Ignored for "dummy".
	ApiKeyEnv string `yaml:"apiKeyEnv,omitempty" json:"apiKeyEnv,omitempty"`

	// MaxRetries bounds the oracle.Retry wrapper's attempt count.
	MaxRetries int `yaml:"maxRetries,omitempty" json:"maxRetries,omitempty" validate:"omitempty,gt=0"`
}

// Default returns the baseline configuration used when no config file is
// supplied: an in-memory store and the deterministic DummyOracle.
func Default() Config {
	return Config{
		CacheCapacity:           16,
		DefaultSummaryBatchSize: 4,
		DatabasePath:            ":memory:",
		Oracle:                  OracleConfig{Provider: "dummy"},
	}
}
