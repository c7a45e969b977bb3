package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ecosift/ecosift/internal/model"
)

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (extraction disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config, filling the
// API key and base URL from the environment when the file leaves them
// empty. Keys belong in the environment, not on disk.
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	cfg := Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		MaxTokens:  modelConfig.MaxTokens,
		HTTPProxy:  modelConfig.HTTPProxy,
		HTTPSProxy: modelConfig.HTTPSProxy,
		NoProxy:    modelConfig.NoProxy,
	}

	if cfg.APIKey == "" {
		switch strings.ToLower(cfg.Provider) {
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if cfg.BaseURL == "" && strings.ToLower(cfg.Provider) == "ollama" {
		cfg.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	return cfg
}
