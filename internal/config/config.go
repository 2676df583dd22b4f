// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	Port           string
	StoreURI       string
	StoreTimeout   time.Duration
	WeatherAPIKey  string
	WeatherBaseURL string
	WeatherTimeout time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
	EnableHSTS     bool
	LogLevel       string
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// LoadEnvFiles reads .env and .env.local if present.
// Variables already set in the environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from the environment, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "5000"),
		StoreURI:       getEnv("MONGO_URI", "mongodb://localhost:27017/bookstore"),
		WeatherAPIKey:  os.Getenv("WEATHER_API_KEY"),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org"),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WeatherTimeout, err = getDuration("WEATHER_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.EnableHSTS, err = getBool("ENABLE_HSTS", false); err != nil {
		return Config{}, err
	}
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 1<<20); err != nil {
		return Config{}, err
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false, got %q", key, v)
	}
	return b, nil
}

func getInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
