package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"tracker/database"
	"tracker/models"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken     string
	DiscordGuildID   string
	DiscordChannelID string // channel that receives game-end notices

	// Store configuration
	StoreDriver string // "postgres" or "sqlite"
	DatabaseURL string
	SQLitePath  string

	// Session defaults applied to fresh sessions
	SessionDefaultsFile string
	SessionDefaults     models.SessionSettings

	// Logging
	LogLevel string
	LogFile  string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from a .env file (if any) and environment variables
func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to read .env file")
	}

	config := &Config{
		// Discord
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID:   os.Getenv("DISCORD_GUILD_ID"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),

		// Store
		StoreDriver: os.Getenv("STORE_DRIVER"),
		DatabaseURL: database.ConstructDatabaseURL(os.Getenv("DATABASE_URL"), os.Getenv("DATABASE_NAME")),
		SQLitePath:  os.Getenv("SQLITE_PATH"),

		SessionDefaultsFile: os.Getenv("SESSION_DEFAULTS_FILE"),

		LogLevel: os.Getenv("LOG_LEVEL"),
		LogFile:  os.Getenv("LOG_FILE"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Set defaults if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.StoreDriver == "" {
		config.StoreDriver = database.DriverPostgres
	}
	if config.SQLitePath == "" {
		config.SQLitePath = database.DefaultSQLitePath
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	defaults, err := LoadSessionDefaults(config.SessionDefaultsFile)
	if err != nil {
		return nil, err
	}
	config.SessionDefaults = defaults

	if config.Environment == "test" {
		return config, nil
	}

	// Validate required configuration
	switch config.StoreDriver {
	case database.DriverPostgres:
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case database.DriverSQLite:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", database.DriverPostgres, database.DriverSQLite, config.StoreDriver)
	}

	return config, nil
}

// RequireDiscord checks the settings only the bot needs
func (c *Config) RequireDiscord() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	return nil
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
