package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/docsift/docsift/pkg/fetcher"
)

// Config holds all application configuration
type Config struct {
	// Fetcher configuration
	Fetcher FetcherConfig `mapstructure:"fetcher"`

	// Scraper configuration
	Scraper ScraperConfig `mapstructure:"scraper"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// FetcherConfig holds HTTP client configuration
type FetcherConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ScraperConfig holds pipeline configuration
type ScraperConfig struct {
	Output      string `mapstructure:"output"`
	ContentOnly bool   `mapstructure:"content_only"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"` // empty means console only
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig holds log-file rotation settings
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"` // megabytes
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"` // days
	Compress   bool `mapstructure:"compress"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.docsift")
	}

	setDefaults(v)

	// DOCSIFT_FETCHER_TIMEOUT overrides fetcher.timeout, and so on.
	v.SetEnvPrefix("DOCSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not found is not an error; defaults and env apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Fetcher defaults mirror the client's own fallbacks
	fetcherDefaults := fetcher.DefaultConfig()
	v.SetDefault("fetcher.timeout", fetcherDefaults.Timeout)
	v.SetDefault("fetcher.user_agent", fetcherDefaults.UserAgent)

	// Scraper defaults
	v.SetDefault("scraper.output", "documentation.txt")
	v.SetDefault("scraper.content_only", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be positive")
	}
	if c.Scraper.Output == "" {
		return fmt.Errorf("scraper.output must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}
	return nil
}
