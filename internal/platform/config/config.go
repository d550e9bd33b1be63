package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	FixturesDir   string
	DefaultEntity string
	RateLimit     string

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("FIXTURES_DIR", "fixtures")
	viper.SetDefault("DEFAULT_ENTITY", "ParentCo")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	// Environment variables override defaults and .env values
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.FixturesDir = viper.GetString("FIXTURES_DIR")
	if cfg.FixturesDir == "" {
		cfg.FixturesDir = "fixtures"
		log.Printf("Warning: FIXTURES_DIR not set. Defaulting to %s\n", cfg.FixturesDir)
	}

	cfg.DefaultEntity = viper.GetString("DEFAULT_ENTITY")
	if cfg.DefaultEntity == "" {
		log.Println("Warning: DEFAULT_ENTITY not set. Questions without an entity will use the first known entity.")
	}

	// ulule/limiter formatted rate, e.g. "120-M" for 120 requests per minute
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = "120-M"
		log.Printf("Warning: RATE_LIMIT not set. Defaulting to %s\n", cfg.RateLimit)
	}

	if origins := viper.GetString("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	}

	return cfg, nil
}
