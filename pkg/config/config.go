package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KanishkSogani/VocaLearn/pkg/llm"
)

var ErrMissingAPIKey = errors.New("no API key configured for the selected LLM provider")

// Config holds application configuration loaded from files and environment
// variables.
type Config struct {
	Addr  string `mapstructure:"addr"` // HTTP listen address
	Redis Redis  `mapstructure:"redis"`
	LLM   LLM    `mapstructure:"llm"`
}

// Redis contains result-archive connection parameters.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"-"` // loaded from environment only
	DB       int    `mapstructure:"db"`
}

// LLM selects and configures the generation provider.
type LLM struct {
	Provider     string        `mapstructure:"provider"` // "openai", "gemini", "mock"
	OpenAIKey    string        `mapstructure:"-"`
	OpenAIModel  string        `mapstructure:"openai_model"`
	GeminiKey    string        `mapstructure:"-"`
	GeminiModel  string        `mapstructure:"gemini_model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RetryMax     int           `mapstructure:"retry_max"`
	RetryInitial time.Duration `mapstructure:"retry_initial"`
	RetryMaxWait time.Duration `mapstructure:"retry_max_wait"`
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetDefault("addr", ":4001")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.openai_model", "gpt-4o-mini")
	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.retry_max", 3)
	v.SetDefault("llm.retry_initial", "1s")
	v.SetDefault("llm.retry_max_wait", "10s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Secrets come from the environment only.
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("llm.provider", "LLM_PROVIDER")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("addr", "SERVER_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Redis.Password = v.GetString("redis_password")
	cfg.LLM.OpenAIKey = v.GetString("openai_api_key")
	cfg.LLM.GeminiKey = v.GetString("gemini_api_key")

	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.OpenAIKey == "" {
			return nil, fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingAPIKey)
		}
	case "gemini":
		if cfg.LLM.GeminiKey == "" {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingAPIKey)
		}
	case "mock":
		// No key needed.
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.LLM.Provider)
	}

	return &cfg, nil
}

// LLMConfig translates the loaded configuration into the llm package config.
func (c *Config) LLMConfig() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	cfg.OpenAI.APIKey = c.LLM.OpenAIKey
	cfg.OpenAI.Model = c.LLM.OpenAIModel
	cfg.Gemini.APIKey = c.LLM.GeminiKey
	cfg.Gemini.Model = c.LLM.GeminiModel
	cfg.Timeout = c.LLM.Timeout
	cfg.Retry.MaxAttempts = c.LLM.RetryMax
	cfg.Retry.InitialWait = c.LLM.RetryInitial
	cfg.Retry.MaxWait = c.LLM.RetryMaxWait
	return cfg
}
