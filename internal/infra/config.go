package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	DBMaxConns       int
	RedisURL         string
	JWTSecret        string
	GeoIPDBPath      string
	DefaultLocale    string
	CORSOrigins      []string
	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiTimeout    time.Duration
	Models           ModelConfig
	AuthDelay        time.Duration
	PaymentDelay     time.Duration
	SessionTTL       time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// ModelConfig names the model used for each tier of tool.
type ModelConfig struct {
	Flash string
	Lite  string
	Pro   string
	TTS   string
	Image string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		GeoIPDBPath:   os.Getenv("GEOIP_DB_PATH"),
		DBMaxConns:    getEnvInt("DB_MAX_CONNS", 10),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiTimeout: time.Second * time.Duration(getEnvInt("GEMINI_TIMEOUT_SECONDS", 90)),
		Models: ModelConfig{
			Flash: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Lite:  getEnv("GEMINI_LITE_MODEL", "gemini-2.5-flash-lite"),
			Pro:   getEnv("GEMINI_PRO_MODEL", "gemini-3-pro-preview"),
			TTS:   getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
			Image: getEnv("GEMINI_IMAGE_MODEL", "gemini-3-pro-image-preview"),
		},
		AuthDelay:        time.Millisecond * time.Duration(getEnvInt("AUTH_DELAY_MS", 1500)),
		PaymentDelay:     time.Millisecond * time.Duration(getEnvInt("PAYMENT_DELAY_MS", 2000)),
		SessionTTL:       time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 24*60)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if cfg.AuthDelay < 0 || cfg.PaymentDelay < 0 {
		return nil, fmt.Errorf("simulated delays must not be negative")
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in the local development profile.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
