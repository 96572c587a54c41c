package config

import "time"

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	LLM     LLMConfig     `mapstructure:"llm"`
	NLP     NLPConfig     `mapstructure:"nlp"`
	Logging LoggingConfig `mapstructure:"logging"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// LLMConfig is the remote completion-service surface. Retries counts the
// retries after the first attempt; URL, when set, overrides host/port.
type LLMConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	URL         string        `mapstructure:"url"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	TopP        float64       `mapstructure:"top_p"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Retries     int           `mapstructure:"retries"`
	Fallback    bool          `mapstructure:"fallback"`
}

type NLPConfig struct {
	Annotator string `mapstructure:"annotator"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Debug bool   `mapstructure:"debug"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
