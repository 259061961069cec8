package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host string
	Port string

	SurveyDuration time.Duration
	DefaultTitle   string
	DefaultChoices []string

	VoteRatePerMinute int
	VoteBurst         int
	EventBuffer       int

	LogLevel  slog.Level
	LogFormat string
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads .env (if present) and the process environment. Invalid values
// stop the process.
func Load() Config {
	_ = godotenv.Load()

	cfg, err := Parse(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Parse builds a Config from lookup, applying defaults for empty values.
func Parse(lookup func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Host:           get("APP_HOST", "127.0.0.1"),
		Port:           get("APP_PORT", "3000"),
		DefaultTitle:   get("SURVEY_DEFAULT_TITLE", "New Survey"),
		DefaultChoices: splitList(get("SURVEY_DEFAULT_CHOICES", "A,B,C,D,E")),
		LogFormat:      strings.ToLower(get("LOG_FORMAT", "text")),
	}

	d, err := time.ParseDuration(get("SURVEY_DURATION", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("SURVEY_DURATION: %w", err)
	}
	if d <= 0 {
		return Config{}, fmt.Errorf("SURVEY_DURATION must be positive, got %s", d)
	}
	cfg.SurveyDuration = d

	if cfg.VoteRatePerMinute, err = nonNegativeInt(get("VOTE_RATE_PER_MINUTE", "600")); err != nil {
		return Config{}, fmt.Errorf("VOTE_RATE_PER_MINUTE: %w", err)
	}
	if cfg.VoteBurst, err = nonNegativeInt(get("VOTE_RATE_BURST", "50")); err != nil {
		return Config{}, fmt.Errorf("VOTE_RATE_BURST: %w", err)
	}
	if cfg.EventBuffer, err = nonNegativeInt(get("EVENT_BUFFER", "100")); err != nil {
		return Config{}, fmt.Errorf("EVENT_BUFFER: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func nonNegativeInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", n)
	}
	return n, nil
}
