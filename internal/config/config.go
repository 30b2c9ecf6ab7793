package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	AI      AI      `mapstructure:"ai"`
	Images  Images  `mapstructure:"images"`
	Enrich  Enrich  `mapstructure:"enrich"`
	Feeds   Feeds   `mapstructure:"feeds"`
	Server  Server  `mapstructure:"server"`
	Logging Logging `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// AI holds text-generation provider configuration
type AI struct {
	DefaultProvider string       `mapstructure:"default_provider"`
	Gemini          GeminiConfig `mapstructure:"gemini"`
	OpenAI          OpenAIConfig `mapstructure:"openai"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// OpenAIConfig holds OpenAI configuration
type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Timeout     string  `mapstructure:"timeout"`
	Temperature float32 `mapstructure:"temperature"`
}

// Images holds image-generation pipeline configuration
type Images struct {
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	Model           string `mapstructure:"model"`
	StageTimeout    string `mapstructure:"stage_timeout"`
	PollinationsURL string `mapstructure:"pollinations_url"`
	PlaceholderURL  string `mapstructure:"placeholder_url"`
}

// Enrich holds article-enrichment configuration
type Enrich struct {
	FetchTimeout   string `mapstructure:"fetch_timeout"`
	MaxConcurrency int    `mapstructure:"max_concurrency"`
	UserAgent      string `mapstructure:"user_agent"`
}

// Feeds holds news-source aggregation configuration
type Feeds struct {
	Timeout         string `mapstructure:"timeout"`
	UserAgent       string `mapstructure:"user_agent"`
	MaxItemsPerFeed int    `mapstructure:"max_items_per_feed"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	AuthToken    string        `mapstructure:"auth_token"`
	CORS         CORS          `mapstructure:"cors"`
}

// CORS holds CORS middleware configuration
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load reads configuration from file, environment, and defaults.
// It is safe to call multiple times; the first successful load wins.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".newsmith")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// AI defaults
	viper.SetDefault("ai.default_provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.timeout", "30s")
	viper.SetDefault("ai.gemini.max_tokens", 8192)
	viper.SetDefault("ai.gemini.temperature", 0.7)
	viper.SetDefault("ai.openai.model", "gpt-4o-mini")
	viper.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("ai.openai.timeout", "30s")
	viper.SetDefault("ai.openai.temperature", 0.7)

	// Image pipeline defaults
	viper.SetDefault("images.model", "gpt-image-1")
	viper.SetDefault("images.stage_timeout", "5s")
	viper.SetDefault("images.pollinations_url", "https://image.pollinations.ai/prompt")
	viper.SetDefault("images.placeholder_url", "https://placehold.co")

	// Enrichment defaults
	viper.SetDefault("enrich.fetch_timeout", "10s")
	viper.SetDefault("enrich.max_concurrency", 5)
	viper.SetDefault("enrich.user_agent", "Newsmith/1.0 (+https://newsmith.dev)")

	// Feeds defaults
	viper.SetDefault("feeds.timeout", "30s")
	viper.SetDefault("feeds.user_agent", "Newsmith/1.0")
	viper.SetDefault("feeds.max_items_per_feed", 50)

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.cors.enabled", false)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	// OpenAI API key, shared by the text and image providers
	bindEnvKeys("ai.openai.api_key", []string{
		"OPENAI_API_KEY",
	})
	bindEnvKeys("images.openai_api_key", []string{
		"OPENAI_API_KEY",
	})

	bindEnvKeys("ai.default_provider", []string{
		"AI_PROVIDER",
		"DEFAULT_AI_PROVIDER",
	})

	bindEnvKeys("server.auth_token", []string{
		"NEWSMITH_AUTH_TOKEN",
		"AUTH_TOKEN",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"NEWSMITH_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig checks cross-field constraints that viper cannot express
func validateConfig(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.AI.DefaultProvider {
	case "gemini", "openai", "mock":
	default:
		return fmt.Errorf("unknown ai.default_provider: %q", config.AI.DefaultProvider)
	}

	for key, raw := range map[string]string{
		"ai.gemini.timeout":    config.AI.Gemini.Timeout,
		"ai.openai.timeout":    config.AI.OpenAI.Timeout,
		"images.stage_timeout": config.Images.StageTimeout,
		"enrich.fetch_timeout": config.Enrich.FetchTimeout,
		"feeds.timeout":        config.Feeds.Timeout,
	} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("invalid duration for %s: %q", key, raw)
		}
	}

	return nil
}

// Convenience accessors for commonly used values
func GetApp() App         { return Get().App }
func GetAI() AI           { return Get().AI }
func GetImages() Images   { return Get().Images }
func GetEnrich() Enrich   { return Get().Enrich }
func GetFeeds() Feeds     { return Get().Feeds }
func GetServer() Server   { return Get().Server }
func GetLogging() Logging { return Get().Logging }

func GetGeminiAPIKey() string { return Get().AI.Gemini.APIKey }
func GetOpenAIAPIKey() string { return Get().AI.OpenAI.APIKey }
func IsDebugMode() bool       { return Get().App.Debug }

// Duration parses a duration string with a fallback for empty/invalid values
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
