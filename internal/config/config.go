package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes
const (
	AuthModeAuthorizer = "authorizer"
	AuthModeJWT        = "jwt"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port           string
	LogLevel       string
	AllowedOrigins string
	CookieSecure   bool
	RateLimit      int

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlite-pure, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBConnectAttempts int

	// Authentication configuration
	AuthMode      string
	AuthzURL      string
	AuthzClientID string
	JWTSecret     string
	AdminUserID   string

	// Community configuration
	TermsVersion     int
	TermsEnforce     bool
	SiteTimezone     string
	EditWindow       time.Duration
	CommentPageSize  int
	ReplyPageSize    int
	AnnouncementList int
	BannerList       int

	// Cache configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StatsCacheTTL time.Duration
}

// Load loads configuration from environment variables.
// ENV_FILE names an optional dotenv file read before the environment.
func Load() (*Config, error) {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:    getEnv("ALLOWED_ORIGINS", ""),
		CookieSecure:      getEnvAsBool("COOKIE_SECURE", true),
		RateLimit:         getEnvAsInt("RATE_LIMIT", 120),
		DBType:            getEnv("DB_TYPE", "mysql"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 10),
		DBConnectAttempts: getEnvAsInt("DB_CONNECT_ATTEMPTS", 10),
		AuthMode:          strings.ToLower(getEnv("AUTH_MODE", AuthModeAuthorizer)),
		AuthzURL:          getEnv("AUTHZ_URL", ""),
		AuthzClientID:     getEnv("AUTHZ_CLIENT_ID", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminUserID:       getEnv("ADMIN_USER_ID", ""),
		TermsVersion:      getEnvAsInt("TERMS_VERSION", 1),
		TermsEnforce:      getEnvAsBool("TERMS_ENFORCE", true),
		SiteTimezone:      getEnv("SITE_TIMEZONE", "UTC"),
		EditWindow:        getEnvAsDuration("EDIT_WINDOW", time.Hour),
		CommentPageSize:   getEnvAsInt("COMMENT_PAGE_SIZE", 30),
		ReplyPageSize:     getEnvAsInt("REPLY_PAGE_SIZE", 50),
		AnnouncementList:  getEnvAsInt("ANNOUNCEMENT_LIST_SIZE", 8),
		BannerList:        getEnvAsInt("ANNOUNCEMENT_BANNER_SIZE", 10),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		StatsCacheTTL:     getEnvAsDuration("STATS_CACHE_TTL", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and cross-field constraints
func (cfg *Config) Validate() error {
	if cfg.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if !strings.HasPrefix(cfg.DBType, "sqlite") && cfg.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}

	switch cfg.AuthMode {
	case AuthModeAuthorizer:
		if cfg.AuthzURL == "" {
			return fmt.Errorf("AUTHZ_URL is required")
		}
		if cfg.AuthzClientID == "" {
			return fmt.Errorf("AUTHZ_CLIENT_ID is required")
		}
	case AuthModeJWT:
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required")
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE: %s", cfg.AuthMode)
	}

	if cfg.TermsVersion < 1 {
		return fmt.Errorf("TERMS_VERSION must be at least 1")
	}
	if _, err := time.LoadLocation(cfg.SiteTimezone); err != nil {
		return fmt.Errorf("invalid SITE_TIMEZONE %q: %w", cfg.SiteTimezone, err)
	}

	return nil
}

// Location returns the site timezone, falling back to UTC
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.SiteTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration ("90s", "1h") or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
