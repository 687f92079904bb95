package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultUpstreamURL     = "https://api.doorstepsnepal.com"
	defaultUpstreamTimeout = "15s"
	defaultCacheTTL        = "5m"
	defaultSnapshotDSN     = "doorsteps.db"
	defaultListenAddr      = ":8090"
	defaultCookieMaxAge    = "168h" // 7 days
	defaultCookieSameSite  = "Lax"
	defaultCookieSecure    = "false"
	defaultLocale          = "en"
)

type Config struct {
	AppEnv          string
	ListenAddr      string
	UpstreamURL     string
	UpstreamTimeout time.Duration
	CacheTTL        time.Duration
	SnapshotDSN     string
	DefaultLocale   string
	Cookie          CookieConfig
	StreamEnabled   bool
}

// CookieConfig controls the session cookies mirrored for the
// route-gating middleware.
type CookieConfig struct {
	MaxAge   time.Duration
	SameSite string
	Secure   bool
	Domain   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(getEnv("APP_ENV", ""))
	if appEnv == "" {
		appEnv = strings.TrimSpace(getEnv("ENV", "dev"))
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.UpstreamURL = strings.TrimRight(getEnv("UPSTREAM_URL", defaultUpstreamURL), "/")
	cfg.SnapshotDSN = getEnv("SNAPSHOT_DSN", defaultSnapshotDSN)
	cfg.DefaultLocale = getEnv("DEFAULT_LOCALE", defaultLocale)
	cfg.StreamEnabled = parseBoolEnv("NOTIFICATION_STREAM", "true")

	var err error
	cfg.UpstreamTimeout, err = parseDurationEnv("UPSTREAM_TIMEOUT", defaultUpstreamTimeout)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL, err = parseDurationEnv("CACHE_TTL", defaultCacheTTL)
	if err != nil {
		return nil, err
	}

	cfg.Cookie.MaxAge, err = parseDurationEnv("COOKIE_MAX_AGE", defaultCookieMaxAge)
	if err != nil {
		return nil, err
	}
	cfg.Cookie.SameSite = strings.TrimSpace(getEnv("COOKIE_SAMESITE", defaultCookieSameSite))
	cfg.Cookie.Secure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.Cookie.Domain = strings.TrimSpace(getEnv("COOKIE_DOMAIN", ""))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.UpstreamURL == "" {
		return fmt.Errorf("UPSTREAM_URL must not be empty")
	}
	if cfg.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be > 0")
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}
	if cfg.Cookie.MaxAge <= 0 {
		return fmt.Errorf("COOKIE_MAX_AGE must be > 0")
	}
	sameSite := strings.ToLower(cfg.Cookie.SameSite)
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.Cookie.Secure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}
	if isProdLike(cfg.AppEnv) && !cfg.Cookie.Secure {
		return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
