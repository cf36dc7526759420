package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// RedisConfig points at the optional CMS response cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port             string
	SiteURL          string
	CMSBaseURL       string
	CMSAudience      string
	CMSTimeout       time.Duration
	DefaultTemplate  string
	RevalidateSecret string
	Redis            RedisConfig
	CacheTTL         time.Duration
	DatabaseURL      string
	JWTSecret        string
	TokenTTL         time.Duration
	RateLimitLeads   RateLimitConfig
	PhoneRegion      string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		SiteURL:          strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		CMSBaseURL:       strings.TrimRight(os.Getenv("CMS_BASE_URL"), "/"),
		CMSAudience:      os.Getenv("CMS_AUDIENCE"),
		CMSTimeout:       parseDuration(getEnv("CMS_TIMEOUT", "10s"), 10*time.Second),
		DefaultTemplate:  getEnv("DEFAULT_TEMPLATE", "barbershop"),
		RevalidateSecret: os.Getenv("REVALIDATE_SECRET"),
		CacheTTL:         parseDuration(getEnv("CACHE_TTL", "1h"), time.Hour),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PhoneRegion:      strings.ToUpper(getEnv("PHONE_REGION", "US")),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_URL"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	cfg.JWTSecret, cfg.TokenTTL = LoadJWT()

	if cfg.CMSBaseURL == "" {
		return nil, errors.New("CMS_BASE_URL is required")
	}
	if cfg.RevalidateSecret == "" {
		return nil, errors.New("REVALIDATE_SECRET is required")
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, fmt.Errorf("invalid REDIS_DB value: %q", raw)
		}
		cfg.Redis.DB = db
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_LEADS", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LEADS value: %w", err)
	}
	cfg.RateLimitLeads = rl

	return cfg, nil
}

// LoadJWT reads only the token settings, for tools that mint tokens
// without running the server.
func LoadJWT() (secret string, ttl time.Duration) {
	return getEnv("JWT_SECRET", "dev-secret"), parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour)
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
