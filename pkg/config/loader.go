package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Documented defaults. Every knob has one; malformed values fall back to
// these and are logged by Normalize.
const (
	defaultHTTPHost    = "0.0.0.0"
	defaultHTTPPort    = 1200
	defaultLLMHost     = "127.0.0.1"
	defaultLLMPort     = 1234
	defaultModel       = "gemma:7b"
	defaultMaxTokens   = 512
	defaultTemperature = 0.3
	defaultTopP        = 0.95
	defaultTimeout     = 120 * time.Second
	defaultRetries     = 2
	defaultAnnotator   = "rules-pt"
	defaultLogLevel    = "info"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("ALOY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow the historical env var names without the ALOY_ prefix
	viper.BindEnv("http.host", "NLP_API_HOST", "ALOY_HTTP_HOST")
	viper.BindEnv("http.port", "NLP_API_PORT", "ALOY_HTTP_PORT")
	viper.BindEnv("llm.host", "LLM_HOST", "ALOY_LLM_HOST")
	viper.BindEnv("llm.port", "LLM_PORT", "ALOY_LLM_PORT")
	viper.BindEnv("llm.url", "LLM_URL", "ALOY_LLM_URL")
	viper.BindEnv("llm.model", "LLM_MODEL_NAME", "ALOY_LLM_MODEL")
	viper.BindEnv("llm.max_tokens", "LLM_MAX_TOKENS")
	viper.BindEnv("llm.temperature", "LLM_TEMPERATURE")
	viper.BindEnv("llm.top_p", "LLM_TOP_P")
	viper.BindEnv("llm.timeout", "LLM_TIMEOUT")
	viper.BindEnv("llm.retries", "LLM_RETRIES")
	viper.BindEnv("llm.fallback", "LLM_FALLBACK")
	viper.BindEnv("nlp.annotator", "NLP_ANNOTATOR")
	viper.BindEnv("logging.level", "LOG_LEVEL")
	viper.BindEnv("logging.debug", "ENABLE_DEBUG")

	viper.SetDefault("app.name", "aloy-nlp")
	viper.SetDefault("app.version", "v1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("http.host", defaultHTTPHost)
	viper.SetDefault("http.port", defaultHTTPPort)
	viper.SetDefault("llm.host", defaultLLMHost)
	viper.SetDefault("llm.port", defaultLLMPort)
	viper.SetDefault("llm.url", "")
	viper.SetDefault("llm.model", defaultModel)
	viper.SetDefault("llm.max_tokens", defaultMaxTokens)
	viper.SetDefault("llm.temperature", defaultTemperature)
	viper.SetDefault("llm.top_p", defaultTopP)
	viper.SetDefault("llm.timeout", defaultTimeout)
	viper.SetDefault("llm.retries", defaultRetries)
	viper.SetDefault("llm.fallback", true)
	viper.SetDefault("nlp.annotator", defaultAnnotator)
	viper.SetDefault("logging.level", defaultLogLevel)
	viper.SetDefault("logging.debug", false)
	viper.SetDefault("cors.allowed_origins", []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: env vars plus defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Normalize replaces out-of-range values with their defaults, logging
// each replacement. The effective LLM URL is also resolved here.
func (c *Config) Normalize(log *zap.Logger) {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		log.Warn("Invalid http.port, using default",
			zap.Int("value", c.HTTP.Port), zap.Int("default", defaultHTTPPort))
		c.HTTP.Port = defaultHTTPPort
	}
	if c.LLM.MaxTokens <= 0 {
		log.Warn("Invalid llm.max_tokens, using default",
			zap.Int("value", c.LLM.MaxTokens), zap.Int("default", defaultMaxTokens))
		c.LLM.MaxTokens = defaultMaxTokens
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		log.Warn("Invalid llm.temperature, using default",
			zap.Float64("value", c.LLM.Temperature), zap.Float64("default", defaultTemperature))
		c.LLM.Temperature = defaultTemperature
	}
	if c.LLM.TopP <= 0 || c.LLM.TopP > 1 {
		log.Warn("Invalid llm.top_p, using default",
			zap.Float64("value", c.LLM.TopP), zap.Float64("default", defaultTopP))
		c.LLM.TopP = defaultTopP
	}
	if c.LLM.Timeout <= 0 {
		log.Warn("Invalid llm.timeout, using default",
			zap.Duration("value", c.LLM.Timeout), zap.Duration("default", defaultTimeout))
		c.LLM.Timeout = defaultTimeout
	}
	if c.LLM.Retries < 0 {
		log.Warn("Invalid llm.retries, using default",
			zap.Int("value", c.LLM.Retries), zap.Int("default", defaultRetries))
		c.LLM.Retries = defaultRetries
	}
	if c.LLM.URL == "" {
		c.LLM.URL = fmt.Sprintf("http://%s:%d/v1/completions", c.LLM.Host, c.LLM.Port)
	}
}
