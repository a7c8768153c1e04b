package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config is the whole application configuration.
// Populated once from environment variables and never mutated afterwards.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Session SessionConfig
	CORS    CORSConfig
	Jobs    JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// TTL of issued session tokens
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpiryHours) * time.Hour
}

// SessionConfig holds the session cookie attributes
type SessionConfig struct {
	CookieName   string
	CookiePath   string
	CookieDomain string
	Secure       bool
	SameSite     http.SameSite
}

type CORSConfig struct {
	AllowedOrigins []string
}

type JobConfig struct {
	ReconcileCron string // cron expression for the like counter reconciliation
}

// IsProduction reports whether APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Load reads config from environment variables
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Historical Artifacts Tracker"),
			Environment: env,
			Port:        getEnv("APP_PORT", getEnv("PORT", "9000")),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", getEnv("ACCESS_TOKEN_SECRET", defaultJWTSecret)),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 10),
		},
		Session: LoadSessionConfig(env),
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Jobs: JobConfig{
			ReconcileCron: getEnv("JOB_RECONCILE_CRON", "0 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadSessionConfig derives cookie attributes from the environment:
// production → SameSite=None + Secure, otherwise SameSite=Strict, not secure.
// SESSION_COOKIE_SECURE / SESSION_COOKIE_SAMESITE override the defaults.
func LoadSessionConfig(env string) SessionConfig {
	production := env == "production"

	sameSite := http.SameSiteStrictMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	if v := os.Getenv("SESSION_COOKIE_SAMESITE"); v != "" {
		sameSite = parseSameSite(v, sameSite)
	}

	return SessionConfig{
		CookieName:   getEnv("SESSION_COOKIE_NAME", "token"),
		CookiePath:   getEnv("SESSION_COOKIE_PATH", "/"),
		CookieDomain: getEnv("SESSION_COOKIE_DOMAIN", ""),
		Secure:       getEnvBool("SESSION_COOKIE_SECURE", production),
		SameSite:     sameSite,
	}
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive")
	}
	// SameSite=None is rejected by browsers without Secure
	if c.Session.SameSite == http.SameSiteNoneMode && !c.Session.Secure {
		return fmt.Errorf("SESSION_COOKIE_SAMESITE=none requires SESSION_COOKIE_SECURE=true")
	}

	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	return nil
}

func parseSameSite(v string, fallback http.SameSite) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	}
	return fallback
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
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

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
