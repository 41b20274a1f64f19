package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the analysis service.
type Config struct {
	Port      int
	Version   string
	OpenAI    OpenAIConfig
	GitHub    GitHubConfig
	Telemetry TelemetryConfig
}

// OpenAIConfig configures the upstream structured-generation provider.
type OpenAIConfig struct {
	// APIKey may be empty; its absence is reported per request as a
	// configuration error, never as a client error.
	APIKey          string
	Model           string
	Endpoint        string
	Timeout         time.Duration
	MaxOutputTokens int
	Temperature     float64
}

// GitHubConfig configures the repository-listing collaborator.
type GitHubConfig struct {
	APIURL string
	Token  string
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envInt("PORT", 8787),
		Version: envStr("SERVICE_VERSION", "0.1.0"),
		OpenAI: OpenAIConfig{
			APIKey:          os.Getenv("OPENAI_API_KEY"),
			Model:           envStr("OPENAI_MODEL", "gpt-4o-mini"),
			Endpoint:        envStr("OPENAI_ENDPOINT", "https://api.openai.com/v1/responses"),
			Timeout:         envDur("UPSTREAM_TIMEOUT", 60*time.Second),
			MaxOutputTokens: envInt("OPENAI_MAX_OUTPUT_TOKENS", 900),
			Temperature:     0.2,
		},
		GitHub: GitHubConfig{
			APIURL: envStr("GITHUB_API_URL", "https://api.github.com"),
			Token:  os.Getenv("GITHUB_TOKEN"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      envBool("OTEL_ENABLED", false),
			OTLPEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  envStr("OTEL_SERVICE_NAME", "analysis-proxy"),
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
