// Package config loads run configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"m2demo/pkg/cost"
	"m2demo/pkg/log"
)

// Provider names accepted by Config.Provider.
const (
	ProviderMiniMax = "minimax"
	ProviderGemini  = "gemini"
)

// MiniMaxConfig holds credentials for the MiniMax OpenAI-compatible API.
type MiniMaxConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// GeminiConfig holds credentials for the Gemini backend.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// PricingConfig overrides the per-million-token rates used in the cost
// summary, in USD.
type PricingConfig struct {
	InputPerMTok  float64 `mapstructure:"input_per_mtok"`
	OutputPerMTok float64 `mapstructure:"output_per_mtok"`
}

// Config is the full demo configuration.
type Config struct {
	Provider string        `mapstructure:"provider"`
	MiniMax  MiniMaxConfig `mapstructure:"minimax"`
	Gemini   GeminiConfig  `mapstructure:"gemini"`

	LogDir  string `mapstructure:"log_dir"`
	DocsDir string `mapstructure:"docs_dir"` // empty = embedded sample docs

	// MaxTurns bounds the conversation loop; 0 disables the guard and
	// restores unbounded behavior.
	MaxTurns int `mapstructure:"max_turns"`

	Pricing PricingConfig `mapstructure:"pricing"`

	Log log.Config `mapstructure:"log"`
}

// Load reads .env (when present) and the environment. It does not
// validate credentials; call Validate once the provider choice is known.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars win either way.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("provider", ProviderMiniMax)
	v.SetDefault("minimax.base_url", "https://api.minimax.io/v1")
	v.SetDefault("minimax.model", "MiniMax-M2")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("log_dir", "demo_logs")
	v.SetDefault("max_turns", 32)
	v.SetDefault("pricing.input_per_mtok", 0.3)
	v.SetDefault("pricing.output_per_mtok", 1.2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	bind := func(key string, envs ...string) error {
		return v.BindEnv(append([]string{key}, envs...)...)
	}

	for key, envs := range map[string][]string{
		"provider": {"M2DEMO_PROVIDER"},
		// MINIMAX_API_KEY preferred, OPENAI_API_KEY accepted as fallback
		// since the endpoint speaks the OpenAI wire format.
		"minimax.api_key":         {"MINIMAX_API_KEY", "OPENAI_API_KEY"},
		"minimax.base_url":        {"MINIMAX_BASE_URL"},
		"minimax.model":           {"MINIMAX_MODEL"},
		"gemini.api_key":          {"GEMINI_API_KEY"},
		"gemini.model":            {"GEMINI_MODEL"},
		"log_dir":                 {"M2DEMO_LOG_DIR"},
		"docs_dir":                {"M2DEMO_DOCS_DIR"},
		"max_turns":               {"M2DEMO_MAX_TURNS"},
		"pricing.input_per_mtok":  {"M2DEMO_INPUT_PER_MTOK"},
		"pricing.output_per_mtok": {"M2DEMO_OUTPUT_PER_MTOK"},
		"log.level":               {"M2DEMO_LOG_LEVEL"},
		"log.format":              {"M2DEMO_LOG_FORMAT"},
	} {
		if err := bind(key, envs...); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Rates converts the configured per-million-token prices to per-token
// rates for the cost calculator.
func (c *Config) Rates() cost.Rates {
	return cost.Rates{
		Input:  c.Pricing.InputPerMTok / 1_000_000,
		Output: c.Pricing.OutputPerMTok / 1_000_000,
	}
}

// Validate checks that the selected provider has what it needs. Offline
// runs use the scripted provider and need no credentials.
func (c *Config) Validate(offline bool) error {
	if offline {
		return nil
	}

	switch c.Provider {
	case ProviderMiniMax:
		if c.MiniMax.APIKey == "" {
			return fmt.Errorf("missing MINIMAX_API_KEY; copy env.example and set your key")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("missing GEMINI_API_KEY for the gemini provider")
		}
	default:
		return fmt.Errorf("unknown provider %q (options: %s, %s)", c.Provider, ProviderMiniMax, ProviderGemini)
	}
	return nil
}
