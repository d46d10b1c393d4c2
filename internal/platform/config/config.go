package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret          = "a-very-secret-key-should-be-longer-and-random"
	defaultRefreshTokenSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
	defaultJWTExpiry          = 15 * time.Minute
	defaultRefreshTokenExpiry = 7 * 24 * time.Hour
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	Host           string
	IsProduction   bool
	EnableDBCheck  bool
	RunMigrations  bool
	MigrationsPath string
	CORSOrigins    []string
	LogLevel       string
	MetricsEnabled bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// LoginRateLimit uses the limiter format, e.g. "5-M".
	LoginRateLimit string
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	v.SetDefault("JWT_ISSUER", "opahours-backend")
	v.SetDefault("REFRESH_TOKEN_SECRET", "")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", defaultRefreshTokenExpiry.String())
	v.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	v.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")

	v.AutomaticEnv()

	cfg := &Config{
		Port:                   v.GetString("PORT"),
		Host:                   v.GetString("HOST"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:          v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		LogLevel:               strings.ToLower(v.GetString("LOG_LEVEL")),
		MetricsEnabled:         v.GetBool("METRICS_ENABLED"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		RefreshTokenCookieName: v.GetString("REFRESH_TOKEN_COOKIE_NAME"),
		RefreshTokenCookiePath: v.GetString("REFRESH_TOKEN_COOKIE_PATH"),
		LoginRateLimit:         v.GetString("LOGIN_RATE_LIMIT"),
	}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = v.GetString("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	for _, origin := range strings.Split(v.GetString("CORS_ORIGIN"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.RefreshTokenSecret = v.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "" {
		cfg.RefreshTokenSecret = defaultRefreshTokenSecret
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	cfg.JWTExpiryDuration = parseDuration(v, "JWT_EXPIRY_DURATION", defaultJWTExpiry)
	cfg.RefreshTokenExpiryDuration = parseDuration(v, "REFRESH_TOKEN_EXPIRY_DURATION", defaultRefreshTokenExpiry)

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}
