package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v3"

	"github.com/sagan-labs/treecache/internal/config"
	"github.com/sagan-labs/treecache/internal/oracle"
)

const (
	defaultAnthropicModel = "claude-3-5-haiku-20241022"
	defaultOpenAIModel    = "gpt-4o-mini"
)

// buildOracle constructs the LanguageOracle named by cfg.Provider, wrapped
// in oracle.Retry for all but the dummy provider.
func buildOracle(cfg config.OracleConfig, logger *slog.Logger) (oracle.LanguageOracle, error) {
	switch cfg.Provider {
	case "dummy":
		return oracle.Dummy{}, nil
	case "anthropic":
		apiKey := os.Getenv(cfg.ApiKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("environment variable %s is not set", cfg.ApiKeyEnv)
		}
		model := cfg.Model
		if model == "" {
			model = defaultAnthropicModel
		}
		return oracle.NewRetryWithMaxTries(oracle.NewAnthropic(apiKey, cfg.BaseURL, anthropic.Model(model), logger), cfg.MaxRetries), nil
	case "openai":
		apiKey := os.Getenv(cfg.ApiKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("environment variable %s is not set", cfg.ApiKeyEnv)
		}
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return oracle.NewRetryWithMaxTries(oracle.NewOpenAI(apiKey, cfg.BaseURL, openai.ChatModel(model), logger), cfg.MaxRetries), nil
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
	}
}
