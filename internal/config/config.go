package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main structure mapping the entire application configuration.
// This struct uses mapstructure tags to map YAML/JSON keys to Go struct fields.
type Config struct {
	// Server configuration section containing HTTP server settings
	Server struct {
		Port        int      `mapstructure:"port"`        // HTTP server port (default: 8080)
		Environment string   `mapstructure:"environment"` // "development" or "production", drives logger setup
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"server"`

	// Database configuration section for SQLite settings
	Database struct {
		Name string `mapstructure:"name"` // SQLite database file name
	} `mapstructure:"database"`

	// Tracking configuration for the view dedup gate
	Tracking struct {
		DebounceSeconds int `mapstructure:"debounce_seconds"` // Window within which repeat views are suppressed
	} `mapstructure:"tracking"`

	// Audit configuration for the asynchronous audit log writer
	Audit struct {
		BufferSize  int `mapstructure:"buffer_size"`  // Size of the audit entry channel buffer
		WorkerCount int `mapstructure:"worker_count"` // Number of worker goroutines persisting audit entries
	} `mapstructure:"audit"`

	// Cleanup configuration for the periodic duplicate-view sweep
	Cleanup struct {
		IntervalMinutes int `mapstructure:"interval_minutes"` // Interval in minutes between cleanup passes (0 disables)
	} `mapstructure:"cleanup"`
}

// LoadConfig loads the application configuration using Viper.
// It supports environment variable overrides and YAML configuration files.
// Returns a populated Config struct or an error if configuration loading fails.
func LoadConfig() (*Config, error) {
	// Enable automatic environment variable binding so any config value can
	// be overridden via the environment (e.g. "server.port" -> SERVER_PORT).
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Defaults used when no config file is found or specific keys are missing
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	viper.SetDefault("database.name", "newsboard.db")
	viper.SetDefault("tracking.debounce_seconds", 5)
	viper.SetDefault("audit.buffer_size", 1000)
	viper.SetDefault("audit.worker_count", 2)
	viper.SetDefault("cleanup.interval_minutes", 60)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Not fatal - the defaults above cover everything
			log.Println("Config file not found, using default values")
		} else {
			// Any other error (permissions, malformed YAML, etc.) is fatal
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	log.Printf("Configuration loaded: Server Port=%d, DB Name=%s, Debounce=%ds, Audit Buffer=%d",
		cfg.Server.Port, cfg.Database.Name, cfg.Tracking.DebounceSeconds, cfg.Audit.BufferSize)

	return &cfg, nil
}
