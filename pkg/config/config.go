package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Database (player ID cache). Postgres URL or a sqlite file path.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Yahoo Fantasy API
	YahooClientID     string `mapstructure:"YAHOO_CLIENT_ID"`
	YahooClientSecret string `mapstructure:"YAHOO_CLIENT_SECRET"`
	YahooRefreshToken string `mapstructure:"YAHOO_REFRESH_TOKEN"`
	YahooLeagueID     string `mapstructure:"YAHOO_LEAGUE_ID"`
	YahooTeamKey      string `mapstructure:"YAHOO_TEAM_KEY"`

	// MLB Stats API
	MLBRateLimit            int           `mapstructure:"MLB_RATE_LIMIT"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Caching
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	// Analysis defaults
	TargetDays         []string `mapstructure:"TARGET_DAYS"`
	OwnershipThreshold float64  `mapstructure:"OWNERSHIP_THRESHOLD"`
	IncludeWaivers     bool     `mapstructure:"INCLUDE_WAIVERS"`

	// Background refresh
	EnableBackgroundRefresh bool   `mapstructure:"ENABLE_BACKGROUND_REFRESH"`
	RefreshSchedule         string `mapstructure:"REFRESH_SCHEDULE"`
	SkipInitialRefresh      bool   `mapstructure:"SKIP_INITIAL_REFRESH"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "pitchplan.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")

	viper.SetDefault("YAHOO_CLIENT_ID", "")
	viper.SetDefault("YAHOO_CLIENT_SECRET", "")
	viper.SetDefault("YAHOO_REFRESH_TOKEN", "")
	viper.SetDefault("YAHOO_LEAGUE_ID", "")
	viper.SetDefault("YAHOO_TEAM_KEY", "")

	viper.SetDefault("MLB_RATE_LIMIT", 10)           // requests per second
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "10s")  // conservative timeout
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5) // half-open probe count

	viper.SetDefault("CACHE_TTL", "1h")

	viper.SetDefault("TARGET_DAYS", "Monday,Tuesday")
	viper.SetDefault("OWNERSHIP_THRESHOLD", 0.0)
	viper.SetDefault("INCLUDE_WAIVERS", true)

	viper.SetDefault("ENABLE_BACKGROUND_REFRESH", false)
	viper.SetDefault("REFRESH_SCHEDULE", "0 18 * * 0") // Sunday 6 PM
	viper.SetDefault("SKIP_INITIAL_REFRESH", false)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse comma-separated lists
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}
	if daysStr := viper.GetString("TARGET_DAYS"); daysStr != "" {
		config.TargetDays = splitAndTrim(daysStr)
	}

	return &config, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
